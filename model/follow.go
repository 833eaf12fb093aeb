package model

import (
	"time"
)

/*

Follow is a directed edge in the social graph: follower sees followee's posts
in their home feed.

FollowerID: the user who follows
FolloweeID: the user being followed
CreatedAt: time when relation is created

The composite primary key makes the pair unique; the check constraint rejects
self-follows at the storage layer so the invariant holds no matter which code
path inserts.

*/

type Follow struct {
	FollowerID string `gorm:"primaryKey"`
	FolloweeID string `gorm:"primaryKey"`
	CreatedAt  time.Time
}

func (Follow) TableName() string {
	return "follows"
}
