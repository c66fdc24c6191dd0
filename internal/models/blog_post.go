package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BlogPost struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Title     string    `gorm:"not null" json:"title"`
	Slug      string    `gorm:"uniqueIndex;not null" json:"slug"`
	Excerpt   string    `gorm:"size:1000" json:"excerpt"`
	Content   string    `gorm:"type:text" json:"content"`
	ImageURL  string    `gorm:"size:1024" json:"image_url"`
	Author    string    `gorm:"size:255" json:"author"`
	Published bool      `gorm:"default:false" json:"published"`
	Featured  bool      `gorm:"default:false" json:"featured"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (b *BlogPost) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}
