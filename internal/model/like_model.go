package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// LikeModel has a unique index on (user_id, target_id, target_kind); a
// soft-deleted row is revived instead of inserting a duplicate.
type LikeModel struct {
	ID         string         `gorm:"type:uuid;primary_key" json:"id"`
	UserID     string         `gorm:"type:uuid;not null;uniqueIndex:idx_likes_user_target" json:"user_id"`
	TargetID   string         `gorm:"type:uuid;not null;uniqueIndex:idx_likes_user_target" json:"target_id"`
	TargetKind string         `gorm:"type:varchar(10);not null;uniqueIndex:idx_likes_user_target" json:"target_kind"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}

func (LikeModel) TableName() string {
	return "likes"
}

func (l *LikeModel) BeforeCreate(tx *gorm.DB) error {
	if l.ID == "" {
		l.ID = uuid.New().String()
	}
	return nil
}
