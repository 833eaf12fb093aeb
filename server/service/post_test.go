package service

import (
	"strings"
	"testing"
	"time"

	"github.com/murmurapp/murmur/model"
	"github.com/stretchr/testify/require"
)

func TestCreatePostValidation(t *testing.T) {
	s := createTestService(t)
	author := createTestUser(t, s, "poster")

	_, err := s.CreatePost(author.Id, "", "")
	require.NotNil(t, err)

	_, err = s.CreatePost(author.Id, strings.Repeat("x", 281), "")
	require.NotNil(t, err)

	// 280 runes exactly is fine, and multi-byte runes count as one.
	post, err := s.CreatePost(author.Id, strings.Repeat("ä", 280), "")
	require.Nil(t, err)
	require.NotEmpty(t, post.Id)

	_, err = s.CreatePost("no-such-author", "hello", "")
	require.NotNil(t, err)
}

func TestHardDeletePostAuthorOnly(t *testing.T) {
	s := createTestService(t)
	author := createTestUser(t, s, "owner_user")
	admin := createTestAdmin(t, s, "admin_user")
	post, err := s.CreatePost(author.Id, "mine to destroy #gone", "")
	require.Nil(t, err)
	s.EnrichPost(post.Id, post.Content)
	require.Nil(t, s.LikePost(admin.Id, post.Id))

	// Even an admin cannot hard-delete someone else's post.
	require.NotNil(t, s.HardDeletePost(admin.Id, post.Id))

	require.Nil(t, s.HardDeletePost(author.Id, post.Id))

	_, err = s.GetPost(post.Id)
	require.NotNil(t, err)

	// Dependents are gone, shared hashtag rows stay.
	var likeCount, linkCount, tagCount int64
	require.Nil(t, s.DB.Model(&model.Like{}).Where("post_id = ?", post.Id).Count(&likeCount).Error)
	require.Nil(t, s.DB.Model(&model.PostHashtag{}).Where("post_id = ?", post.Id).Count(&linkCount).Error)
	require.Nil(t, s.DB.Model(&model.Hashtag{}).Count(&tagCount).Error)
	require.Equal(t, int64(0), likeCount)
	require.Equal(t, int64(0), linkCount)
	require.Equal(t, int64(1), tagCount)
}

func TestSoftDeletePostByAuthorAndAdmin(t *testing.T) {
	s := createTestService(t)
	author := createTestUser(t, s, "soft_author")
	admin := createTestAdmin(t, s, "soft_admin")
	bystander := createTestUser(t, s, "soft_bystander")

	t.Run("author can soft delete", func(t *testing.T) {
		post := createTestPostAt(t, s, author.Id, "author removes", time.Now())
		require.Nil(t, s.SoftDeletePost(author.Id, post.Id))

		var row model.Post
		require.Nil(t, s.DB.Where("id = ?", post.Id).First(&row).Error)
		require.True(t, row.IsDeleted)
		require.Equal(t, author.Id, *row.DeletedByID)
		require.NotNil(t, row.DeletedAt)
	})

	t.Run("admin can soft delete", func(t *testing.T) {
		post := createTestPostAt(t, s, author.Id, "admin removes", time.Now())
		require.Nil(t, s.SoftDeletePost(admin.Id, post.Id))
	})

	t.Run("bystander cannot", func(t *testing.T) {
		post := createTestPostAt(t, s, author.Id, "bystander tries", time.Now())
		require.NotNil(t, s.SoftDeletePost(bystander.Id, post.Id))
	})

	t.Run("double soft delete fails", func(t *testing.T) {
		post := createTestPostAt(t, s, author.Id, "twice", time.Now())
		require.Nil(t, s.SoftDeletePost(author.Id, post.Id))
		require.NotNil(t, s.SoftDeletePost(author.Id, post.Id))
	})
}

func TestSoftDeletedPostKeptForAudit(t *testing.T) {
	s := createTestService(t)
	author := createTestUser(t, s, "audited")
	post := createTestPostAt(t, s, author.Id, "to be hidden", time.Now())

	require.Nil(t, s.SoftDeletePost(author.Id, post.Id))

	// Hidden from feeds but the row is still there.
	items, err := s.ProfileFeed(author.Id, author.Id, nil, 20)
	require.Nil(t, err)
	require.Len(t, items, 0)

	var row model.Post
	require.Nil(t, s.DB.Where("id = ?", post.Id).First(&row).Error)
	require.Equal(t, "to be hidden", row.Content)
}
