package persistent

import (
	"maltlog/internal/entity"
	"maltlog/internal/model"

	"gorm.io/gorm"
)

type WhiskyRepository interface {
	ListCatalog() ([]*entity.Whisky, error)
	ListFeatured() ([]*entity.Whisky, error)
	GetByID(id string) (*entity.Whisky, error)
	Exists(id string) (bool, error)
}

type whiskyRepository struct {
	db *gorm.DB
}

func NewWhiskyRepository(db *gorm.DB) WhiskyRepository {
	return &whiskyRepository{db: db}
}

// ListCatalog returns the browsable catalog: non-featured whiskies sorted by
// name. Featured bottles are served separately.
func (r *whiskyRepository) ListCatalog() ([]*entity.Whisky, error) {
	var whiskyModels []model.WhiskyModel
	err := r.db.Where("featured = ?", false).Order("name ASC").Find(&whiskyModels).Error
	if err != nil {
		return nil, err
	}

	whiskies := make([]*entity.Whisky, len(whiskyModels))
	for i := range whiskyModels {
		whiskies[i] = ToWhiskyEntity(&whiskyModels[i])
	}
	return whiskies, nil
}

func (r *whiskyRepository) ListFeatured() ([]*entity.Whisky, error) {
	var whiskyModels []model.WhiskyModel
	err := r.db.Where("featured = ?", true).Order("name ASC").Find(&whiskyModels).Error
	if err != nil {
		return nil, err
	}

	whiskies := make([]*entity.Whisky, len(whiskyModels))
	for i := range whiskyModels {
		whiskies[i] = ToWhiskyEntity(&whiskyModels[i])
	}
	return whiskies, nil
}

func (r *whiskyRepository) GetByID(id string) (*entity.Whisky, error) {
	var whiskyModel model.WhiskyModel
	if err := r.db.Where("id = ?", id).First(&whiskyModel).Error; err != nil {
		return nil, translate(err)
	}
	return ToWhiskyEntity(&whiskyModel), nil
}

func (r *whiskyRepository) Exists(id string) (bool, error) {
	var count int64
	err := r.db.Model(&model.WhiskyModel{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}
