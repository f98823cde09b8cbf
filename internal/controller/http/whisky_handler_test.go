package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"maltlog/internal/entity"
	"maltlog/internal/usecase"
	"maltlog/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockWhiskyUseCase is a mock implementation of WhiskyUseCase
type MockWhiskyUseCase struct {
	mock.Mock
}

func (m *MockWhiskyUseCase) Catalog(ctx context.Context, viewerID string) ([]*entity.WhiskyListItem, error) {
	args := m.Called(ctx, viewerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.WhiskyListItem), args.Error(1)
}

func (m *MockWhiskyUseCase) Featured(ctx context.Context, viewerID string) ([]*entity.WhiskyListItem, error) {
	args := m.Called(ctx, viewerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.WhiskyListItem), args.Error(1)
}

func (m *MockWhiskyUseCase) Get(ctx context.Context, id string) (*entity.Whisky, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Whisky), args.Error(1)
}

func jsonBody(t *testing.T, v interface{}) *bytes.Reader {
	t.Helper()
	raw, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewReader(raw)
}

func setupWhiskyRouter(uc usecase.WhiskyUseCase, likes usecase.LikeUseCase, userID string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	handler := NewWhiskyHandler(uc, likes, logger.New())

	router := gin.New()
	router.Use(fakeAuth(userID))
	router.GET("/api/whiskies", handler.List)
	router.GET("/api/whiskies/:id", handler.Get)
	router.GET("/api/whiskies/:id/likes", handler.LikeCount)
	router.POST("/api/whiskies/:id/like", handler.ToggleLike)
	return router
}

func TestWhiskyListEndpoint(t *testing.T) {
	uc := new(MockWhiskyUseCase)
	uc.On("Catalog", mock.Anything, "").Return([]*entity.WhiskyListItem{
		{ID: "w1", Name: "Ardbeg 10", LikesLabel: "12"},
		{ID: "w2", Name: "Lagavulin 16", LikesLabel: "50+"},
	}, nil)

	router := setupWhiskyRouter(uc, new(MockLikeUseCase), "")
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/api/whiskies", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Whiskies []entity.WhiskyListItem `json:"whiskies"`
		Count    int                     `json:"count"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.Count)
	assert.Equal(t, "50+", resp.Whiskies[1].LikesLabel)
}

func TestWhiskyGetEndpoint_NotFound(t *testing.T) {
	uc := new(MockWhiskyUseCase)
	uc.On("Get", mock.Anything, "ghost").Return(nil, usecase.ErrNotFound)

	router := setupWhiskyRouter(uc, new(MockLikeUseCase), "")
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/api/whiskies/ghost", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestWhiskyLikeCountEndpoint(t *testing.T) {
	likes := new(MockLikeUseCase)
	likes.On("Count", mock.Anything, "w1", entity.LikeKindWhisky).Return(int64(120), nil)

	router := setupWhiskyRouter(new(MockWhiskyUseCase), likes, "")
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/api/whiskies/w1/likes", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		LikesCount int64  `json:"likes_count"`
		LikesLabel string `json:"likes_label"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, int64(120), resp.LikesCount)
	assert.Equal(t, "50+", resp.LikesLabel)
}

func TestWhiskyToggleLikeEndpoint(t *testing.T) {
	likes := new(MockLikeUseCase)
	likes.On("Toggle", mock.Anything, "user-1", "w1", entity.LikeKindWhisky).Return(true, nil)

	router := setupWhiskyRouter(new(MockWhiskyUseCase), likes, "user-1")
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/api/whiskies/w1/like", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Liked bool `json:"liked"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Liked)
}

func TestAgeGateEndpoint(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewAgeGateHandler()
	router := gin.New()
	router.POST("/api/age-gate", handler.Confirm)
	router.GET("/api/age-gate", handler.Status)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/api/age-gate", nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = httptest.NewRecorder()
	req, _ = http.NewRequest(http.MethodPost, "/api/age-gate", jsonBody(t, map[string]bool{"confirmed": true}))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "age_verified", cookies[0].Name)
	assert.Equal(t, 365*24*60*60, cookies[0].MaxAge)
}
