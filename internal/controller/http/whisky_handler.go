package http

import (
	"net/http"

	"maltlog/internal/entity"
	"maltlog/internal/usecase"
	"maltlog/pkg/format"
	"maltlog/pkg/logger"

	"github.com/gin-gonic/gin"
)

type WhiskyHandler struct {
	whiskyUseCase usecase.WhiskyUseCase
	likeUseCase   usecase.LikeUseCase
	logger        *logger.Logger
}

func NewWhiskyHandler(whiskyUseCase usecase.WhiskyUseCase, likeUseCase usecase.LikeUseCase, logger *logger.Logger) *WhiskyHandler {
	return &WhiskyHandler{
		whiskyUseCase: whiskyUseCase,
		likeUseCase:   likeUseCase,
		logger:        logger,
	}
}

// List godoc
// @Summary      List the whisky catalog
// @Description  Non-featured whiskies sorted by name, with resolved image URLs and like labels
// @Tags         whiskies
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      500  {object}  map[string]string
// @Router       /whiskies [get]
func (h *WhiskyHandler) List(c *gin.Context) {
	viewerID := c.GetString("user_id")

	items, err := h.whiskyUseCase.Catalog(c.Request.Context(), viewerID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"whiskies": items, "count": len(items)})
}

// Featured godoc
// @Summary      List featured whiskies
// @Tags         whiskies
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      500  {object}  map[string]string
// @Router       /whiskies/featured [get]
func (h *WhiskyHandler) Featured(c *gin.Context) {
	viewerID := c.GetString("user_id")

	items, err := h.whiskyUseCase.Featured(c.Request.Context(), viewerID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"whiskies": items, "count": len(items)})
}

// Get godoc
// @Summary      Get a whisky by ID
// @Tags         whiskies
// @Produce      json
// @Param        id path string true "Whisky ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]string
// @Router       /whiskies/{id} [get]
func (h *WhiskyHandler) Get(c *gin.Context) {
	whisky, err := h.whiskyUseCase.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"whisky": whisky})
}

// ToggleLike godoc
// @Summary      Toggle a like on a whisky
// @Tags         whiskies
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Whisky ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /whiskies/{id}/like [post]
func (h *WhiskyHandler) ToggleLike(c *gin.Context) {
	whiskyID := c.Param("id")
	userID := c.GetString("user_id")

	liked, err := h.likeUseCase.Toggle(c.Request.Context(), userID, whiskyID, entity.LikeKindWhisky)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"whisky_id": whiskyID, "liked": liked})
}

// LikeCount godoc
// @Summary      Get the like count for a whisky
// @Tags         whiskies
// @Produce      json
// @Param        id path string true "Whisky ID"
// @Success      200  {object}  map[string]interface{}
// @Router       /whiskies/{id}/likes [get]
func (h *WhiskyHandler) LikeCount(c *gin.Context) {
	whiskyID := c.Param("id")

	count, err := h.likeUseCase.Count(c.Request.Context(), whiskyID, entity.LikeKindWhisky)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"whisky_id":   whiskyID,
		"likes_count": count,
		"likes_label": format.LikeCount(count),
	})
}

// Liked godoc
// @Summary      List whisky IDs liked by the authenticated user
// @Tags         whiskies
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Router       /whiskies/liked [get]
func (h *WhiskyHandler) Liked(c *gin.Context) {
	userID := c.GetString("user_id")

	ids, err := h.likeUseCase.LikedIDs(c.Request.Context(), userID, entity.LikeKindWhisky)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"whisky_ids": ids, "count": len(ids)})
}
