package model

import (
	"time"
)

/*

Post is a single piece of user generated content.

Id: primary key
CreatedAt: time when entity is created
AuthorID:
Author: user who wrote the post, "belongs-to" relation

Content: post body in plain text, 1-280 characters
ImageUrl: optional url of an attached image, already uploaded to the image
store by the time the post is created

IsDeleted: moderation soft-delete flag. A soft-deleted post is excluded from
every feed read but the row is kept for audit, which is why this is a plain
flag and not gorm.DeletedAt (gorm's soft delete would hide the row from the
moderation queries too).
DeletedByID: user who soft-deleted the post (author or an admin)
DeletedAt: time of the soft delete

Hashtags: hashtags extracted from Content, "many-to-many" via PostHashtag
LinkPreviews: previews of urls in Content, "many-to-many" via PostLinkPreview

*/

type Post struct {
	Id           string    `gorm:"primaryKey"`
	CreatedAt    time.Time `gorm:"index"`
	AuthorID     string    `gorm:"index;not null"`
	Author       User      `gorm:"constraint:OnDelete:CASCADE;"`
	Content      string    `gorm:"not null"`
	ImageUrl     string
	IsDeleted    bool `gorm:"default:false;index"`
	DeletedByID  *string
	DeletedAt    *time.Time
	Hashtags     []*Hashtag     `json:"hashtags" gorm:"many2many;"`
	LinkPreviews []*LinkPreview `json:"link_previews" gorm:"many2many;"`
}
