package usecase

import (
	"fmt"
	"io"
	"math"
	"strings"

	"maltlog/internal/entity"
	"maltlog/internal/repo/persistent"
	"maltlog/pkg/logger"
	"maltlog/pkg/s3"

	"github.com/google/uuid"
)

type CreateReviewInput struct {
	WhiskyID    string
	Rating      float64
	Body        string
	Image       io.Reader
	ContentType string
}

type ReviewUseCase interface {
	Create(userID string, input CreateReviewInput) (*entity.Review, error)
}

type reviewUseCase struct {
	reviewRepo persistent.ReviewRepository
	whiskyRepo persistent.WhiskyRepository
	s3Client   *s3.Client
	logger     *logger.Logger
}

func NewReviewUseCase(reviewRepo persistent.ReviewRepository, whiskyRepo persistent.WhiskyRepository, s3Client *s3.Client, logger *logger.Logger) ReviewUseCase {
	return &reviewUseCase{
		reviewRepo: reviewRepo,
		whiskyRepo: whiskyRepo,
		s3Client:   s3Client,
		logger:     logger,
	}
}

func (uc *reviewUseCase) Create(userID string, input CreateReviewInput) (*entity.Review, error) {
	if userID == "" {
		return nil, ErrAuthRequired
	}
	if err := validateRating(input.Rating); err != nil {
		return nil, err
	}
	if strings.TrimSpace(input.Body) == "" {
		return nil, fmt.Errorf("%w: review body is required", ErrInvalidInput)
	}

	exists, err := uc.whiskyRepo.Exists(input.WhiskyID)
	if err != nil {
		return nil, fmt.Errorf("failed to check whisky: %w", err)
	}
	if !exists {
		return nil, ErrNotFound
	}

	imagePath := ""
	if input.Image != nil {
		key := fmt.Sprintf("reviews/%s/%s", userID, uuid.New().String())
		imagePath, err = uc.s3Client.UploadFile(key, input.Image, input.ContentType)
		if err != nil {
			uc.logger.Error("Failed to upload review image: %v", err)
			return nil, fmt.Errorf("failed to upload review image: %w", err)
		}
	}

	review := &entity.Review{
		UserID:   userID,
		WhiskyID: input.WhiskyID,
		Rating:   input.Rating,
		Body:     strings.TrimSpace(input.Body),
		ImageURL: imagePath,
	}
	if err := uc.reviewRepo.Create(review); err != nil {
		uc.logger.Error("Failed to create review: %v", err)
		return nil, fmt.Errorf("failed to create review: %w", err)
	}

	uc.logger.Info("Review created: %s for whisky %s", review.ID, review.WhiskyID)
	return review, nil
}

// validateRating accepts half-star steps between 0.5 and 5.0.
func validateRating(rating float64) error {
	if rating < 0.5 || rating > 5.0 {
		return fmt.Errorf("%w: rating must be between 0.5 and 5.0", ErrInvalidInput)
	}
	if math.Mod(rating*2, 1) != 0 {
		return fmt.Errorf("%w: rating must be in half-star steps", ErrInvalidInput)
	}
	return nil
}
