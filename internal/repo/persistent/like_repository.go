package persistent

import (
	"maltlog/internal/entity"
	"maltlog/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type LikeRepository interface {
	CreateLike(userID, targetID string, kind entity.LikeKind) error
	DeleteLike(userID, targetID string, kind entity.LikeKind) error
	IsLiked(userID, targetID string, kind entity.LikeKind) (bool, error)
	LikedTargetIDs(userID string, kind entity.LikeKind) ([]string, error)
	CountLikes(targetID string, kind entity.LikeKind) (int64, error)
}

type likeRepository struct {
	db *gorm.DB
}

func NewLikeRepository(db *gorm.DB) LikeRepository {
	return &likeRepository{db: db}
}

// CreateLike revives a soft-deleted row when one exists so the unique index
// on (user_id, target_id, target_kind) is never violated by a re-like.
func (r *likeRepository) CreateLike(userID, targetID string, kind entity.LikeKind) error {
	var existing model.LikeModel
	err := r.db.Unscoped().
		Where("user_id = ? AND target_id = ? AND target_kind = ?", userID, targetID, string(kind)).
		First(&existing).Error
	if err == nil {
		if existing.DeletedAt.Valid {
			return r.db.Unscoped().Model(&existing).Update("deleted_at", nil).Error
		}
		return nil
	}

	likeModel := &model.LikeModel{
		ID:         uuid.New().String(),
		UserID:     userID,
		TargetID:   targetID,
		TargetKind: string(kind),
	}
	return r.db.Create(likeModel).Error
}

func (r *likeRepository) DeleteLike(userID, targetID string, kind entity.LikeKind) error {
	return r.db.
		Where("user_id = ? AND target_id = ? AND target_kind = ?", userID, targetID, string(kind)).
		Delete(&model.LikeModel{}).Error
}

func (r *likeRepository) IsLiked(userID, targetID string, kind entity.LikeKind) (bool, error) {
	var count int64
	err := r.db.Model(&model.LikeModel{}).
		Where("user_id = ? AND target_id = ? AND target_kind = ?", userID, targetID, string(kind)).
		Count(&count).Error
	return count > 0, err
}

func (r *likeRepository) LikedTargetIDs(userID string, kind entity.LikeKind) ([]string, error) {
	var ids []string
	err := r.db.Model(&model.LikeModel{}).
		Where("user_id = ? AND target_kind = ?", userID, string(kind)).
		Pluck("target_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *likeRepository) CountLikes(targetID string, kind entity.LikeKind) (int64, error) {
	var count int64
	err := r.db.Model(&model.LikeModel{}).
		Where("target_id = ? AND target_kind = ?", targetID, string(kind)).
		Count(&count).Error
	return count, err
}
