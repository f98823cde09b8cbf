package http

import (
	"net/http"
	"strconv"

	"maltlog/internal/usecase"
	"maltlog/pkg/logger"

	"github.com/gin-gonic/gin"
)

type ReviewHandler struct {
	reviewUseCase usecase.ReviewUseCase
	logger        *logger.Logger
}

func NewReviewHandler(reviewUseCase usecase.ReviewUseCase, logger *logger.Logger) *ReviewHandler {
	return &ReviewHandler{
		reviewUseCase: reviewUseCase,
		logger:        logger,
	}
}

// Create godoc
// @Summary      Create a whisky review
// @Tags         reviews
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        whisky_id formData string true  "Whisky ID"
// @Param        rating    formData number true  "Rating in half-star steps, 0.5-5.0"
// @Param        body      formData string true  "Review text"
// @Param        image     formData file   false "Review image"
// @Success      201  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /reviews [post]
func (h *ReviewHandler) Create(c *gin.Context) {
	userID := c.GetString("user_id")

	rating, err := strconv.ParseFloat(c.PostForm("rating"), 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "rating must be a number"})
		return
	}

	input := usecase.CreateReviewInput{
		WhiskyID: c.PostForm("whisky_id"),
		Rating:   rating,
		Body:     c.PostForm("body"),
	}

	if fileHeader, err := c.FormFile("image"); err == nil {
		file, err := fileHeader.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read image file"})
			return
		}
		defer file.Close()
		input.Image = file
		input.ContentType = fileHeader.Header.Get("Content-Type")
	}

	review, err := h.reviewUseCase.Create(userID, input)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"review": review})
}
