package model

import (
	"time"

	"gorm.io/datatypes"
)

/*

User is the profile record for an authenticated identity.

Id: primary key, the opaque identity key minted by the auth provider
CreatedAt: time when entity is created
UpdatedAt: time when entity is last updated

Handle: unique human-chosen username, 3-30 chars of [A-Za-z0-9_]
DisplayName: free-form display name shown next to posts
Bio: free-form profile text
AvatarUrl: url of the profile image, empty if never set
IsAdmin: grants moderation rights (soft-deleting other users' posts)
Preferences: free-form client preferences blob, owned by the frontend

Posts: all posts authored by this user, "has-many" relation

The row is never hard-deleted by the application; it only goes away when the
identity itself is deleted upstream and the cascade fires.

*/

type User struct {
	Id          string `gorm:"primaryKey"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
	Handle      string `gorm:"uniqueIndex;not null"`
	DisplayName string
	Bio         string
	AvatarUrl   string
	IsAdmin     bool           `gorm:"default:false"`
	Preferences datatypes.JSON `json:"preferences"`
	Posts       []*Post        `json:"posts" gorm:"foreignKey:AuthorID"`
}
