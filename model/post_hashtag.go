package model

import (
	"time"

	"gorm.io/gorm"
)

/*

PostHashtag is a "many-to-many" relation of a post using a hashtag.

PostID: post id
HashtagID: hashtag id
CreatedAt: time when relation is created

Inserts are idempotent: writers use an ON CONFLICT DO NOTHING clause so
linking the same pair twice leaves exactly one row.

*/

type PostHashtag struct {
	PostID    string `gorm:"primaryKey"`
	HashtagID string `gorm:"primaryKey"`
	CreatedAt time.Time
}

func (PostHashtag) BeforeCreate(db *gorm.DB) error {
	return nil
}
