package model

import (
	"time"
)

/*

Hashtag is a normalized (lowercased) tag shared across posts.

Id: primary key
Tag: the normalized tag text, unique
CreatedAt: time when entity is created

Rows are created lazily on first use and are append-only: once a tag exists
it is shared by every post that mentions it and never mutated.

*/

type Hashtag struct {
	Id        string `gorm:"primaryKey"`
	Tag       string `gorm:"uniqueIndex;not null"`
	CreatedAt time.Time
	Posts     []*Post `json:"posts" gorm:"many2many;"`
}
