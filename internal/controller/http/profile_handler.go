package http

import (
	"net/http"
	"strconv"

	"maltlog/internal/usecase"
	"maltlog/pkg/logger"

	"github.com/gin-gonic/gin"
)

type ProfileHandler struct {
	profileUseCase usecase.ProfileUseCase
	logger         *logger.Logger
}

func NewProfileHandler(profileUseCase usecase.ProfileUseCase, logger *logger.Logger) *ProfileHandler {
	return &ProfileHandler{
		profileUseCase: profileUseCase,
		logger:         logger,
	}
}

// checkUserIDParam validates the userId query param. "me" is the only
// supported value; it scopes the request to the session identity, which the
// auth middleware already put on the context.
func checkUserIDParam(c *gin.Context) bool {
	switch c.Query("userId") {
	case "", "me":
		return true
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "unsupported userId value"})
		return false
	}
}

// Summary godoc
// @Summary      Get a profile summary
// @Description  Review count, post count and mean rating for a profile. Targets the handle query param or the session user.
// @Tags         profile
// @Produce      json
// @Param        handle query string false "Profile handle"
// @Param        userId query string false "Only \"me\" is supported"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /profile/summary [get]
func (h *ProfileHandler) Summary(c *gin.Context) {
	if !checkUserIDParam(c) {
		return
	}

	summary, err := h.profileUseCase.Summary(c.Request.Context(), c.Query("handle"), c.GetString("user_id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"profile": summary})
}

// Reviews godoc
// @Summary      List a profile's reviews
// @Description  Newest first, cursor paginated. The response carries the cursor for the next page or null on the last one.
// @Tags         profile
// @Produce      json
// @Param        handle query string false "Profile handle"
// @Param        userId query string false "Only \"me\" is supported"
// @Param        cursor query string false "Opaque page cursor"
// @Param        limit  query int    false "Page size (1-50, default 10)"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /profile/reviews [get]
func (h *ProfileHandler) Reviews(c *gin.Context) {
	if !checkUserIDParam(c) {
		return
	}

	limit := 0
	if limitStr := c.Query("limit"); limitStr != "" {
		l, err := strconv.Atoi(limitStr)
		if err != nil || l < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
			return
		}
		limit = l
	}

	page, err := h.profileUseCase.ListReviews(
		c.Request.Context(),
		c.Query("handle"),
		c.GetString("user_id"),
		c.Query("cursor"),
		limit,
	)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"reviews": page.Items, "next_cursor": page.NextCursor})
}

// FirstReviewed godoc
// @Summary      List a profile's first-reviewed whiskies
// @Description  The earliest review per distinct whisky, oldest first, at most three.
// @Tags         profile
// @Produce      json
// @Param        handle query string false "Profile handle"
// @Param        userId query string false "Only \"me\" is supported"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /profile/first-reviewed [get]
func (h *ProfileHandler) FirstReviewed(c *gin.Context) {
	if !checkUserIDParam(c) {
		return
	}

	reviews, err := h.profileUseCase.FirstReviewed(c.Request.Context(), c.Query("handle"), c.GetString("user_id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"reviews": reviews, "count": len(reviews)})
}
