package model

import (
	"time"
)

/*

Like is a "many-to-many" relation of user liking a post.

UserID: user id
PostID: post id
CreatedAt: time when relation is created

The composite primary key guarantees at most one like per (user, post) pair.

*/

type Like struct {
	UserID    string `gorm:"primaryKey"`
	PostID    string `gorm:"primaryKey;index"`
	CreatedAt time.Time
}
