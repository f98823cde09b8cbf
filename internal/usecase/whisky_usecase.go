package usecase

import (
	"context"
	"errors"
	"fmt"

	"maltlog/internal/entity"
	"maltlog/internal/repo/persistent"
	"maltlog/pkg/format"
	"maltlog/pkg/logger"
	"maltlog/pkg/s3"
)

type WhiskyUseCase interface {
	Catalog(ctx context.Context, viewerID string) ([]*entity.WhiskyListItem, error)
	Featured(ctx context.Context, viewerID string) ([]*entity.WhiskyListItem, error)
	Get(ctx context.Context, id string) (*entity.Whisky, error)
}

type whiskyUseCase struct {
	whiskyRepo  persistent.WhiskyRepository
	likes       LikeUseCase
	storageBase string
	logger      *logger.Logger
}

func NewWhiskyUseCase(whiskyRepo persistent.WhiskyRepository, likes LikeUseCase, storageBase string, logger *logger.Logger) WhiskyUseCase {
	return &whiskyUseCase{
		whiskyRepo:  whiskyRepo,
		likes:       likes,
		storageBase: storageBase,
		logger:      logger,
	}
}

func (uc *whiskyUseCase) Catalog(ctx context.Context, viewerID string) ([]*entity.WhiskyListItem, error) {
	whiskies, err := uc.whiskyRepo.ListCatalog()
	if err != nil {
		uc.logger.Error("Failed to list catalog: %v", err)
		return nil, fmt.Errorf("failed to list catalog: %w", err)
	}
	return uc.assemble(ctx, viewerID, whiskies), nil
}

func (uc *whiskyUseCase) Featured(ctx context.Context, viewerID string) ([]*entity.WhiskyListItem, error) {
	whiskies, err := uc.whiskyRepo.ListFeatured()
	if err != nil {
		uc.logger.Error("Failed to list featured whiskies: %v", err)
		return nil, fmt.Errorf("failed to list featured whiskies: %w", err)
	}
	return uc.assemble(ctx, viewerID, whiskies), nil
}

func (uc *whiskyUseCase) Get(ctx context.Context, id string) (*entity.Whisky, error) {
	whisky, err := uc.whiskyRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, persistent.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch whisky: %w", err)
	}
	whisky.ImageURL = s3.PublicURL(uc.storageBase, whisky.ImageURL)
	return whisky, nil
}

// assemble turns whiskies into display rows. Like counts degrade to zero on
// lookup failure so the catalog never breaks over a counter.
func (uc *whiskyUseCase) assemble(ctx context.Context, viewerID string, whiskies []*entity.Whisky) []*entity.WhiskyListItem {
	items := make([]*entity.WhiskyListItem, len(whiskies))
	for i, w := range whiskies {
		count, err := uc.likes.Count(ctx, w.ID, entity.LikeKindWhisky)
		if err != nil {
			uc.logger.Warn("Failed to count likes for whisky %s: %v", w.ID, err)
			count = 0
		}

		items[i] = &entity.WhiskyListItem{
			ID:         w.ID,
			Name:       w.Name,
			Distillery: w.Distillery,
			Region:     w.Region,
			ABV:        w.ABV,
			ImageURL:   s3.PublicURL(uc.storageBase, w.ImageURL),
			LikesLabel: format.LikeCount(count),
			IsLiked:    uc.likes.IsLiked(ctx, viewerID, w.ID, entity.LikeKindWhisky),
		}
	}
	return items
}
