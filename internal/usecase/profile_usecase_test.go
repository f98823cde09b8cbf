package usecase

import (
	"context"
	"fmt"
	"sort"
	"testing"
	"time"

	"maltlog/internal/entity"
	"maltlog/internal/repo/persistent"
	"maltlog/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Create(user *entity.User) error {
	return m.Called(user).Error(0)
}

func (m *MockUserRepo) GetByEmail(email string) (*entity.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserRepo) GetByID(id string) (*entity.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserRepo) GetByHandle(handle string) (*entity.User, error) {
	args := m.Called(handle)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserRepo) Update(user *entity.User) error {
	return m.Called(user).Error(0)
}

type MockPostRepo struct {
	mock.Mock
}

func (m *MockPostRepo) Create(post *entity.Post) error {
	return m.Called(post).Error(0)
}

func (m *MockPostRepo) GetByID(id string) (*entity.Post, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Post), args.Error(1)
}

func (m *MockPostRepo) GetAuthorID(postID string) (string, error) {
	args := m.Called(postID)
	return args.String(0), args.Error(1)
}

func (m *MockPostRepo) ListLatest(max int) ([]*persistent.PostWithAuthor, error) {
	args := m.Called(max)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*persistent.PostWithAuthor), args.Error(1)
}

func (m *MockPostRepo) CountByUser(userID string) (int64, error) {
	args := m.Called(userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockPostRepo) Exists(id string) (bool, error) {
	args := m.Called(id)
	return args.Bool(0), args.Error(1)
}

func (m *MockPostRepo) CreateComment(comment *entity.Comment) error {
	return m.Called(comment).Error(0)
}

func (m *MockPostRepo) ListComments(postID string) ([]*entity.Comment, error) {
	args := m.Called(postID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Comment), args.Error(1)
}

// fakeReviewRepo serves a fixed in-memory dataset with the same cursor filter
// and ordering the SQL layer applies.
type fakeReviewRepo struct {
	reviews []*persistent.ReviewWithWhisky
	ratings []float64
}

func (f *fakeReviewRepo) Create(review *entity.Review) error { return nil }

func (f *fakeReviewRepo) ListByUser(userID string, cursor *entity.Cursor, limit int) ([]*persistent.ReviewWithWhisky, error) {
	var rows []*persistent.ReviewWithWhisky
	for _, r := range f.reviews {
		if r.Review.UserID != userID {
			continue
		}
		if cursor != nil {
			if !r.Review.CreatedAt.Before(cursor.CreatedAt) || r.Review.ID == cursor.ID {
				continue
			}
		}
		rows = append(rows, r)
	}
	sort.Slice(rows, func(i, j int) bool {
		if !rows[i].Review.CreatedAt.Equal(rows[j].Review.CreatedAt) {
			return rows[i].Review.CreatedAt.After(rows[j].Review.CreatedAt)
		}
		return rows[i].Review.ID > rows[j].Review.ID
	})
	if len(rows) > limit {
		rows = rows[:limit]
	}
	return rows, nil
}

func (f *fakeReviewRepo) RatingsByUser(userID string) ([]float64, error) {
	return f.ratings, nil
}

func (f *fakeReviewRepo) CountByUser(userID string) (int64, error) {
	return int64(len(f.ratings)), nil
}

func (f *fakeReviewRepo) FirstReviewedByUser(userID string, max int) ([]*persistent.ReviewWithWhisky, error) {
	if len(f.reviews) > max {
		return f.reviews[:max], nil
	}
	return f.reviews, nil
}

func fixedReviews(userID string, n int) []*persistent.ReviewWithWhisky {
	base := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	rows := make([]*persistent.ReviewWithWhisky, n)
	for i := 0; i < n; i++ {
		rows[i] = &persistent.ReviewWithWhisky{
			Review: &entity.Review{
				ID:        fmt.Sprintf("r-%03d", i),
				UserID:    userID,
				WhiskyID:  fmt.Sprintf("w-%03d", i%7),
				Rating:    3.5,
				Body:      "peaty",
				CreatedAt: base.Add(time.Duration(i) * time.Minute),
			},
			WhiskyName:     "Lagavulin 16",
			AuthorNickname: "islayfan",
		}
	}
	return rows
}

func newProfileFixture(reviewRepo persistent.ReviewRepository) (ProfileUseCase, *MockUserRepo, *MockPostRepo) {
	userRepo := new(MockUserRepo)
	postRepo := new(MockPostRepo)
	uc := NewProfileUseCase(userRepo, reviewRepo, postRepo, "http://cdn.local", logger.New())
	return uc, userRepo, postRepo
}

func TestProfileListReviews_WalksAllPagesInOrder(t *testing.T) {
	const total = 37
	user := &entity.User{ID: "user-1", Handle: "islayfan", Nickname: "islayfan"}
	repo := &fakeReviewRepo{reviews: fixedReviews(user.ID, total)}

	for _, limit := range []int{1, 2, 3, 10, 50} {
		uc, userRepo, _ := newProfileFixture(repo)
		userRepo.On("GetByHandle", "islayfan").Return(user, nil)

		var collected []string
		cursor := ""
		for pages := 0; ; pages++ {
			require.Less(t, pages, total+1, "limit %d: pagination did not terminate", limit)

			page, err := uc.ListReviews(context.Background(), "islayfan", "", cursor, limit)
			require.NoError(t, err)

			for _, item := range page.Items {
				collected = append(collected, item.ID)
			}
			if page.NextCursor == nil {
				break
			}
			cursor = *page.NextCursor
		}

		assert.Len(t, collected, total, "limit %d", limit)
		assert.True(t, sort.SliceIsSorted(collected, func(i, j int) bool {
			return collected[i] > collected[j]
		}), "limit %d: out of order", limit)

		seen := make(map[string]bool)
		for _, id := range collected {
			assert.False(t, seen[id], "limit %d: duplicate %s", limit, id)
			seen[id] = true
		}
	}
}

func TestProfileListReviews_SameTimestampCursorBoundary(t *testing.T) {
	// Three reviews share one created_at. When a page ends inside the tied
	// group, the next page keeps only rows strictly older than the cursor's
	// timestamp; the remaining tied rows never surface.
	user := &entity.User{ID: "user-1", Handle: "islayfan"}
	base := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	tied := base.Add(time.Minute)
	mk := func(id string, at time.Time) *persistent.ReviewWithWhisky {
		return &persistent.ReviewWithWhisky{
			Review: &entity.Review{
				ID:        id,
				UserID:    user.ID,
				WhiskyID:  "w-001",
				Rating:    4.0,
				Body:      "peaty",
				CreatedAt: at,
			},
			WhiskyName:     "Lagavulin 16",
			AuthorNickname: "islayfan",
		}
	}
	repo := &fakeReviewRepo{reviews: []*persistent.ReviewWithWhisky{
		mk("r-old", base),
		mk("r-tie-a", tied),
		mk("r-tie-b", tied),
		mk("r-tie-c", tied),
		mk("r-new", base.Add(2*time.Minute)),
	}}
	uc, userRepo, _ := newProfileFixture(repo)
	userRepo.On("GetByHandle", "islayfan").Return(user, nil)

	page, err := uc.ListReviews(context.Background(), "islayfan", "", "", 2)
	require.NoError(t, err)
	require.Len(t, page.Items, 2)
	assert.Equal(t, "r-new", page.Items[0].ID)
	assert.Equal(t, "r-tie-c", page.Items[1].ID)
	require.NotNil(t, page.NextCursor)

	// Cursor sits on r-tie-c; r-tie-b and r-tie-a are skipped.
	page, err = uc.ListReviews(context.Background(), "islayfan", "", *page.NextCursor, 2)
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "r-old", page.Items[0].ID)
	assert.Nil(t, page.NextCursor)
}

func TestProfileListReviews_ClampsLimit(t *testing.T) {
	user := &entity.User{ID: "user-1", Handle: "islayfan"}
	repo := &fakeReviewRepo{reviews: fixedReviews(user.ID, 60)}
	uc, userRepo, _ := newProfileFixture(repo)
	userRepo.On("GetByHandle", "islayfan").Return(user, nil)

	page, err := uc.ListReviews(context.Background(), "islayfan", "", "", 500)
	require.NoError(t, err)
	assert.Len(t, page.Items, 50)

	page, err = uc.ListReviews(context.Background(), "islayfan", "", "", 0)
	require.NoError(t, err)
	assert.Len(t, page.Items, 10)
}

func TestProfileListReviews_BadCursor(t *testing.T) {
	user := &entity.User{ID: "user-1", Handle: "islayfan"}
	uc, userRepo, _ := newProfileFixture(&fakeReviewRepo{})
	userRepo.On("GetByHandle", "islayfan").Return(user, nil)

	_, err := uc.ListReviews(context.Background(), "islayfan", "", "???", 10)
	assert.ErrorIs(t, err, ErrBadCursor)
}

func TestProfileListReviews_LastPageHasNoCursor(t *testing.T) {
	user := &entity.User{ID: "user-1", Handle: "islayfan"}
	repo := &fakeReviewRepo{reviews: fixedReviews(user.ID, 5)}
	uc, userRepo, _ := newProfileFixture(repo)
	userRepo.On("GetByHandle", "islayfan").Return(user, nil)

	page, err := uc.ListReviews(context.Background(), "islayfan", "", "", 10)
	require.NoError(t, err)
	assert.Len(t, page.Items, 5)
	assert.Nil(t, page.NextCursor)
}

func TestProfileSummary_AveragesAndCounts(t *testing.T) {
	user := &entity.User{ID: "user-1", Handle: "islayfan", Nickname: "Islay Fan"}
	repo := &fakeReviewRepo{ratings: []float64{1.0, 1.0, 2.0}}
	uc, userRepo, postRepo := newProfileFixture(repo)
	userRepo.On("GetByHandle", "islayfan").Return(user, nil)
	userRepo.On("GetByID", "user-1").Return(user, nil)
	postRepo.On("CountByUser", "user-1").Return(int64(4), nil)

	summary, err := uc.Summary(context.Background(), "islayfan", "")
	require.NoError(t, err)

	assert.Equal(t, "Islay Fan", summary.Nickname)
	assert.Equal(t, int64(3), summary.ReviewCount)
	assert.Equal(t, int64(4), summary.PostCount)
	assert.Equal(t, 1.33, summary.AverageRating)
}

func TestProfileSummary_EmptyRatingsAverageZero(t *testing.T) {
	user := &entity.User{ID: "user-1", Handle: "newbie", Nickname: ""}
	uc, userRepo, postRepo := newProfileFixture(&fakeReviewRepo{})
	userRepo.On("GetByHandle", "newbie").Return(user, nil)
	userRepo.On("GetByID", "user-1").Return(user, nil)
	postRepo.On("CountByUser", "user-1").Return(int64(0), nil)

	summary, err := uc.Summary(context.Background(), "newbie", "")
	require.NoError(t, err)

	assert.Zero(t, summary.AverageRating)
	assert.Equal(t, "anonymous", summary.Nickname)
}

func TestProfileSummary_UnknownHandle(t *testing.T) {
	uc, userRepo, _ := newProfileFixture(&fakeReviewRepo{})
	userRepo.On("GetByHandle", "ghost").Return(nil, persistent.ErrNotFound)

	_, err := uc.Summary(context.Background(), "ghost", "")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestProfileSummary_NoHandleNoSession(t *testing.T) {
	uc, _, _ := newProfileFixture(&fakeReviewRepo{})

	_, err := uc.Summary(context.Background(), "", "")
	assert.ErrorIs(t, err, ErrAuthRequired)
}

func TestMeanRatingRounding(t *testing.T) {
	assert.Equal(t, 3.67, meanRating([]float64{3.0, 4.0, 4.0}))
	assert.Equal(t, 4.5, meanRating([]float64{4.5}))
	assert.Zero(t, meanRating(nil))
}
