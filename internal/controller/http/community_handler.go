package http

import (
	"net/http"
	"strconv"

	"maltlog/internal/entity"
	"maltlog/internal/usecase"
	"maltlog/pkg/format"
	"maltlog/pkg/logger"

	"github.com/gin-gonic/gin"
)

type CommunityHandler struct {
	communityUseCase usecase.CommunityUseCase
	likeUseCase      usecase.LikeUseCase
	logger           *logger.Logger
}

func NewCommunityHandler(communityUseCase usecase.CommunityUseCase, likeUseCase usecase.LikeUseCase, logger *logger.Logger) *CommunityHandler {
	return &CommunityHandler{
		communityUseCase: communityUseCase,
		likeUseCase:      likeUseCase,
		logger:           logger,
	}
}

// Latest godoc
// @Summary      Latest community posts preview
// @Description  Up to three newest posts. Always 200; failures yield an empty list.
// @Tags         community
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Router       /community/latest [get]
func (h *CommunityHandler) Latest(c *gin.Context) {
	posts := h.communityUseCase.LatestPosts(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"posts": posts, "count": len(posts)})
}

// ListPosts godoc
// @Summary      List community posts
// @Tags         community
// @Produce      json
// @Param        limit query int false "Number of posts to return (max 100, default 20)"
// @Success      200  {object}  map[string]interface{}
// @Failure      500  {object}  map[string]string
// @Router       /community/posts [get]
func (h *CommunityHandler) ListPosts(c *gin.Context) {
	limit := 0
	if limitStr := c.Query("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 {
			limit = l
		}
	}

	posts, err := h.communityUseCase.ListPosts(c.Request.Context(), limit)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"posts": posts, "count": len(posts)})
}

// CreatePost godoc
// @Summary      Create a community post
// @Tags         community
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        title formData string true  "Post title"
// @Param        body  formData string true  "Post body"
// @Param        image formData file   false "Post image"
// @Success      201  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Router       /community/posts [post]
func (h *CommunityHandler) CreatePost(c *gin.Context) {
	userID := c.GetString("user_id")

	input := usecase.CreatePostInput{
		Title: c.PostForm("title"),
		Body:  c.PostForm("body"),
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

	post, err := h.communityUseCase.CreatePost(userID, input)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"post": post})
}

// GetPost godoc
// @Summary      Get a post by ID
// @Tags         community
// @Produce      json
// @Param        post_id path string true "Post ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]string
// @Router       /community/posts/{post_id} [get]
func (h *CommunityHandler) GetPost(c *gin.Context) {
	post, err := h.communityUseCase.GetPost(c.Request.Context(), c.Param("post_id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"post": post})
}

// ToggleLike godoc
// @Summary      Toggle a like on a post
// @Tags         community
// @Produce      json
// @Security     BearerAuth
// @Param        post_id path string true "Post ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /community/posts/{post_id}/like [post]
func (h *CommunityHandler) ToggleLike(c *gin.Context) {
	postID := c.Param("post_id")
	userID := c.GetString("user_id")

	liked, err := h.likeUseCase.Toggle(c.Request.Context(), userID, postID, entity.LikeKindPost)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"post_id": postID, "liked": liked})
}

// LikeCount godoc
// @Summary      Get the like count for a post
// @Tags         community
// @Produce      json
// @Param        post_id path string true "Post ID"
// @Success      200  {object}  map[string]interface{}
// @Router       /community/posts/{post_id}/likes [get]
func (h *CommunityHandler) LikeCount(c *gin.Context) {
	postID := c.Param("post_id")

	count, err := h.likeUseCase.Count(c.Request.Context(), postID, entity.LikeKindPost)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"post_id":     postID,
		"likes_count": count,
		"likes_label": format.LikeCount(count),
	})
}

type commentRequest struct {
	Body string `json:"body" binding:"required"`
}

// AddComment godoc
// @Summary      Comment on a post
// @Tags         community
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        post_id path string true "Post ID"
// @Param        request body commentRequest true "Comment body"
// @Success      201  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /community/posts/{post_id}/comments [post]
func (h *CommunityHandler) AddComment(c *gin.Context) {
	var req commentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	comment, err := h.communityUseCase.AddComment(c.GetString("user_id"), c.Param("post_id"), req.Body)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"comment": comment})
}

// Comments godoc
// @Summary      List comments on a post
// @Tags         community
// @Produce      json
// @Param        post_id path string true "Post ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]string
// @Router       /community/posts/{post_id}/comments [get]
func (h *CommunityHandler) Comments(c *gin.Context) {
	comments, err := h.communityUseCase.Comments(c.Param("post_id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"comments": comments, "count": len(comments)})
}
