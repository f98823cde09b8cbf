package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type WhiskyModel struct {
	ID         string         `gorm:"type:uuid;primary_key" json:"id"`
	Name       string         `gorm:"type:varchar(255);not null;index" json:"name"`
	Distillery string         `gorm:"type:varchar(255)" json:"distillery"`
	Region     string         `gorm:"type:varchar(100);index" json:"region"`
	ABV        float64        `gorm:"type:numeric(4,1)" json:"abv"`
	ImagePath  string         `gorm:"type:varchar(500)" json:"image_path"`
	Featured   bool           `gorm:"default:false;index" json:"featured"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}

func (WhiskyModel) TableName() string {
	return "whiskies"
}

func (w *WhiskyModel) BeforeCreate(tx *gorm.DB) error {
	if w.ID == "" {
		w.ID = uuid.New().String()
	}
	return nil
}
