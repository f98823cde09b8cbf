package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ReviewModel struct {
	ID        string         `gorm:"type:uuid;primary_key" json:"id"`
	UserID    string         `gorm:"type:uuid;not null;index" json:"user_id"`
	WhiskyID  string         `gorm:"type:uuid;not null;index" json:"whisky_id"`
	Rating    float64        `gorm:"type:numeric(2,1);not null" json:"rating"`
	Body      string         `gorm:"type:text" json:"body"`
	ImagePath string         `gorm:"type:varchar(500)" json:"image_path"`
	CreatedAt time.Time      `gorm:"index" json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	User   UserModel   `gorm:"foreignKey:UserID" json:"-"`
	Whisky WhiskyModel `gorm:"foreignKey:WhiskyID" json:"-"`
}

func (ReviewModel) TableName() string {
	return "reviews"
}

func (r *ReviewModel) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	return nil
}
