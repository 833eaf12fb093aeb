package model

import (
	"time"
)

/*

Mention records that a post @-mentioned a user.

PostID: the mentioning post
UserID: the mentioned user, resolved from the handle at post-creation time
CreatedAt: time when relation is created

Written once during enrichment, never updated.

*/

type Mention struct {
	PostID    string `gorm:"primaryKey"`
	UserID    string `gorm:"primaryKey"`
	CreatedAt time.Time
}
