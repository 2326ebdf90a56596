package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Base is the base model for all entities.
type Base struct {
	ID        string    `json:"id"      gorm:"type:char(36);primaryKey"`
	CreatedAt time.Time `json:"created"`
}

func (b *Base) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.New().String()
	}
	return nil
}

// PublishBase adds the publication flag shared by Post, Category and Location.
// An unpublished row is hidden from all public listings but stays in the store.
type PublishBase struct {
	Base
	IsPublished bool `json:"is_published" gorm:"default:true;index"`
}
