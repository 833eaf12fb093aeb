package model

import (
	"time"
)

/*

LinkPreview caches metadata for a url referenced by one or more posts.

Id: primary key
Url: the exact url as extracted from post text, unique
Title: page title (og:title or <title>), empty until fetched
Description: page description, empty until fetched
ImageUrl: preview image url (og:image), empty until fetched
CreatedAt: time when entity is created

Created lazily as a bare row on first use and shared across posts. Metadata
is filled best-effort once, shortly after creation; there is no refresh.

*/

type LinkPreview struct {
	Id          string `gorm:"primaryKey"`
	Url         string `gorm:"uniqueIndex;not null"`
	Title       string
	Description string
	ImageUrl    string
	CreatedAt   time.Time
	Posts       []*Post `json:"posts" gorm:"many2many;"`
}
