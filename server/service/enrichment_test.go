package service

import (
	"testing"

	"github.com/murmurapp/murmur/model"
	"github.com/stretchr/testify/require"
)

func TestEnrichPostHashtags(t *testing.T) {
	s := createTestService(t)
	author := createTestUser(t, s, "tagger")
	post, err := s.CreatePost(author.Id, "Hot take: #typescript is great. #TypeScript rules #go", "")
	require.Nil(t, err)

	s.EnrichPost(post.Id, post.Content)

	var tags []model.Hashtag
	require.Nil(t, s.DB.Order("tag").Find(&tags).Error)
	require.Len(t, tags, 2)
	require.Equal(t, "go", tags[0].Tag)
	require.Equal(t, "typescript", tags[1].Tag)

	var links []model.PostHashtag
	require.Nil(t, s.DB.Where("post_id = ?", post.Id).Find(&links).Error)
	require.Len(t, links, 2)
}

func TestEnrichPostIsIdempotent(t *testing.T) {
	s := createTestService(t)
	author := createTestUser(t, s, "repeater")
	post, err := s.CreatePost(author.Id, "#once https://example.com/page @repeater", "")
	require.Nil(t, err)

	s.EnrichPost(post.Id, post.Content)
	s.EnrichPost(post.Id, post.Content)

	var tagCount, tagLinkCount, previewCount, previewLinkCount, mentionCount int64
	require.Nil(t, s.DB.Model(&model.Hashtag{}).Count(&tagCount).Error)
	require.Nil(t, s.DB.Model(&model.PostHashtag{}).Count(&tagLinkCount).Error)
	require.Nil(t, s.DB.Model(&model.LinkPreview{}).Count(&previewCount).Error)
	require.Nil(t, s.DB.Model(&model.PostLinkPreview{}).Count(&previewLinkCount).Error)
	require.Nil(t, s.DB.Model(&model.Mention{}).Count(&mentionCount).Error)

	require.Equal(t, int64(1), tagCount)
	require.Equal(t, int64(1), tagLinkCount)
	require.Equal(t, int64(1), previewCount)
	require.Equal(t, int64(1), previewLinkCount)
	require.Equal(t, int64(1), mentionCount)
}

func TestEnrichPostMentionResolution(t *testing.T) {
	s := createTestService(t)
	author := createTestUser(t, s, "author_here")
	alice := createTestUser(t, s, "alice_dev")
	post, err := s.CreatePost(author.Id, "Thanks @alice_dev and @Alice_Dev and @nobody_like_this", "")
	require.Nil(t, err)

	s.EnrichPost(post.Id, post.Content)

	// The two casings collapse to one mention; the unresolvable handle is
	// silently dropped.
	var mentions []model.Mention
	require.Nil(t, s.DB.Where("post_id = ?", post.Id).Find(&mentions).Error)
	require.Len(t, mentions, 1)
	require.Equal(t, alice.Id, mentions[0].UserID)
}

func TestEnrichPostSharedRowsAcrossPosts(t *testing.T) {
	s := createTestService(t)
	author := createTestUser(t, s, "sharer")

	first, err := s.CreatePost(author.Id, "#shared https://example.com/same", "")
	require.Nil(t, err)
	second, err := s.CreatePost(author.Id, "also #shared https://example.com/same", "")
	require.Nil(t, err)

	s.EnrichPost(first.Id, first.Content)
	s.EnrichPost(second.Id, second.Content)

	// One shared hashtag row and one shared preview row, two links each.
	var tagCount, previewCount, tagLinkCount, previewLinkCount int64
	require.Nil(t, s.DB.Model(&model.Hashtag{}).Count(&tagCount).Error)
	require.Nil(t, s.DB.Model(&model.LinkPreview{}).Count(&previewCount).Error)
	require.Nil(t, s.DB.Model(&model.PostHashtag{}).Count(&tagLinkCount).Error)
	require.Nil(t, s.DB.Model(&model.PostLinkPreview{}).Count(&previewLinkCount).Error)

	require.Equal(t, int64(1), tagCount)
	require.Equal(t, int64(1), previewCount)
	require.Equal(t, int64(2), tagLinkCount)
	require.Equal(t, int64(2), previewLinkCount)
}

func TestEnrichPostBarePreviewWithoutFetcher(t *testing.T) {
	s := createTestService(t)
	author := createTestUser(t, s, "linker")
	post, err := s.CreatePost(author.Id, "see https://example.com/article", "")
	require.Nil(t, err)

	s.EnrichPost(post.Id, post.Content)

	var preview model.LinkPreview
	require.Nil(t, s.DB.Where("url = ?", "https://example.com/article").First(&preview).Error)
	require.Empty(t, preview.Title)
	require.Empty(t, preview.Description)
	require.Empty(t, preview.ImageUrl)
}
