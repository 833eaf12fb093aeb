package model

import (
	"time"

	"gorm.io/gorm"
)

/*

PostLinkPreview is a "many-to-many" relation of a post referencing a link
preview.

PostID: post id
LinkPreviewID: link preview id
CreatedAt: time when relation is created

Same idempotent insert contract as PostHashtag.

*/

type PostLinkPreview struct {
	PostID        string `gorm:"primaryKey"`
	LinkPreviewID string `gorm:"primaryKey"`
	CreatedAt     time.Time
}

func (PostLinkPreview) BeforeCreate(db *gorm.DB) error {
	return nil
}
