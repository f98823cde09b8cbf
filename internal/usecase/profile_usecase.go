package usecase

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"

	"maltlog/internal/entity"
	"maltlog/internal/repo/persistent"
	"maltlog/pkg/logger"
	"maltlog/pkg/s3"
)

const (
	defaultReviewPageSize = 10
	maxReviewPageSize     = 50
	maxFirstReviewed      = 3

	anonymousNickname = "anonymous"
)

type ProfileUseCase interface {
	Summary(ctx context.Context, handle, sessionUserID string) (*entity.ProfileSummary, error)
	ListReviews(ctx context.Context, handle, sessionUserID, cursorToken string, limit int) (*entity.ReviewPage, error)
	FirstReviewed(ctx context.Context, handle, sessionUserID string) ([]*entity.ReviewSummary, error)
}

type profileUseCase struct {
	userRepo    persistent.UserRepository
	reviewRepo  persistent.ReviewRepository
	postRepo    persistent.PostRepository
	storageBase string
	logger      *logger.Logger
}

func NewProfileUseCase(
	userRepo persistent.UserRepository,
	reviewRepo persistent.ReviewRepository,
	postRepo persistent.PostRepository,
	storageBase string,
	logger *logger.Logger,
) ProfileUseCase {
	return &profileUseCase{
		userRepo:    userRepo,
		reviewRepo:  reviewRepo,
		postRepo:    postRepo,
		storageBase: storageBase,
		logger:      logger,
	}
}

// resolveUser picks the profile owner: an explicit handle wins, otherwise the
// session user is the target.
func (uc *profileUseCase) resolveUser(handle, sessionUserID string) (*entity.User, error) {
	if handle != "" {
		user, err := uc.userRepo.GetByHandle(handle)
		if err != nil {
			if errors.Is(err, persistent.ErrNotFound) {
				return nil, ErrNotFound
			}
			return nil, fmt.Errorf("failed to fetch user: %w", err)
		}
		return user, nil
	}

	if sessionUserID == "" {
		return nil, ErrAuthRequired
	}
	user, err := uc.userRepo.GetByID(sessionUserID)
	if err != nil {
		if errors.Is(err, persistent.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch user: %w", err)
	}
	return user, nil
}

// Summary aggregates the profile from three independent fetches run
// concurrently. All three always run to completion; the first error wins
// after the join.
func (uc *profileUseCase) Summary(ctx context.Context, handle, sessionUserID string) (*entity.ProfileSummary, error) {
	target, err := uc.resolveUser(handle, sessionUserID)
	if err != nil {
		return nil, err
	}

	var (
		wg        sync.WaitGroup
		ratings   []float64
		postCount int64
		freshUser *entity.User

		ratingsErr, postErr, userErr error
	)

	wg.Add(3)
	go func() {
		defer wg.Done()
		freshUser, userErr = uc.userRepo.GetByID(target.ID)
	}()
	go func() {
		defer wg.Done()
		ratings, ratingsErr = uc.reviewRepo.RatingsByUser(target.ID)
	}()
	go func() {
		defer wg.Done()
		postCount, postErr = uc.postRepo.CountByUser(target.ID)
	}()
	wg.Wait()

	for _, err := range []error{userErr, ratingsErr, postErr} {
		if err != nil {
			uc.logger.Error("Failed to aggregate profile for %s: %v", target.ID, err)
			return nil, fmt.Errorf("failed to aggregate profile: %w", err)
		}
	}

	nickname := freshUser.Nickname
	if nickname == "" {
		nickname = anonymousNickname
	}

	return &entity.ProfileSummary{
		UserID:        freshUser.ID,
		Handle:        freshUser.Handle,
		Nickname:      nickname,
		AvatarURL:     s3.PublicURL(uc.storageBase, freshUser.AvatarURL),
		ReviewCount:   int64(len(ratings)),
		PostCount:     postCount,
		AverageRating: meanRating(ratings),
	}, nil
}

// meanRating rounds to two decimals; an empty slice averages to zero.
func meanRating(ratings []float64) float64 {
	if len(ratings) == 0 {
		return 0
	}
	var sum float64
	for _, r := range ratings {
		sum += r
	}
	return math.Round(sum/float64(len(ratings))*100) / 100
}

func (uc *profileUseCase) ListReviews(ctx context.Context, handle, sessionUserID, cursorToken string, limit int) (*entity.ReviewPage, error) {
	target, err := uc.resolveUser(handle, sessionUserID)
	if err != nil {
		return nil, err
	}

	if limit <= 0 {
		limit = defaultReviewPageSize
	}
	if limit > maxReviewPageSize {
		limit = maxReviewPageSize
	}

	var cursor *entity.Cursor
	if cursorToken != "" {
		c, err := DecodeCursor(cursorToken)
		if err != nil {
			return nil, err
		}
		cursor = &c
	}

	// Probe one row past the page to learn whether another page exists.
	rows, err := uc.reviewRepo.ListByUser(target.ID, cursor, limit+1)
	if err != nil {
		uc.logger.Error("Failed to list reviews for %s: %v", target.ID, err)
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}

	page := &entity.ReviewPage{Items: make([]*entity.ReviewSummary, 0, limit)}
	hasMore := len(rows) > limit
	if hasMore {
		rows = rows[:limit]
	}

	for _, row := range rows {
		page.Items = append(page.Items, uc.toSummary(row))
	}

	if hasMore && len(rows) > 0 {
		last := rows[len(rows)-1]
		token := EncodeCursor(entity.Cursor{CreatedAt: last.Review.CreatedAt, ID: last.Review.ID})
		page.NextCursor = &token
	}

	return page, nil
}

func (uc *profileUseCase) FirstReviewed(ctx context.Context, handle, sessionUserID string) ([]*entity.ReviewSummary, error) {
	target, err := uc.resolveUser(handle, sessionUserID)
	if err != nil {
		return nil, err
	}

	rows, err := uc.reviewRepo.FirstReviewedByUser(target.ID, maxFirstReviewed)
	if err != nil {
		uc.logger.Error("Failed to list first-reviewed whiskies for %s: %v", target.ID, err)
		return nil, fmt.Errorf("failed to list first-reviewed whiskies: %w", err)
	}

	summaries := make([]*entity.ReviewSummary, len(rows))
	for i, row := range rows {
		summaries[i] = uc.toSummary(row)
	}
	return summaries, nil
}

func (uc *profileUseCase) toSummary(row *persistent.ReviewWithWhisky) *entity.ReviewSummary {
	nickname := row.AuthorNickname
	if nickname == "" {
		nickname = anonymousNickname
	}
	return &entity.ReviewSummary{
		ID:             row.Review.ID,
		WhiskyID:       row.Review.WhiskyID,
		WhiskyName:     row.WhiskyName,
		WhiskyImageURL: s3.PublicURL(uc.storageBase, row.WhiskyImagePath),
		Rating:         row.Review.Rating,
		Body:           row.Review.Body,
		ImageURL:       s3.PublicURL(uc.storageBase, row.Review.ImageURL),
		AuthorNickname: nickname,
		CreatedAt:      row.Review.CreatedAt,
	}
}
