package service

import (
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/murmurapp/murmur/event"
	"github.com/murmurapp/murmur/model"
	Logger "github.com/murmurapp/murmur/utils/log"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

const maxPostContentLength = 280

// CreatePost persists the post and announces it on the event bus. The post
// is the source of truth: enrichment runs after the fact and its outcome
// never surfaces here.
func (s *Service) CreatePost(authorId string, content string, imageUrl string) (*model.Post, error) {
	length := utf8.RuneCountInString(content)
	if length == 0 || length > maxPostContentLength {
		return nil, errors.Wrapf(ErrInvalidInput, "post content must be 1-%d characters", maxPostContentLength)
	}

	var author model.User
	res := s.DB.Where("id = ?", authorId).First(&author)
	if res.RowsAffected != 1 {
		return nil, errors.Wrap(ErrNotFound, "invalid author id")
	}

	post := model.Post{
		Id:        uuid.New().String(),
		CreatedAt: time.Now(),
		AuthorID:  authorId,
		Author:    author,
		Content:   content,
		ImageUrl:  imageUrl,
	}
	if err := s.DB.Create(&post).Error; err != nil {
		return nil, err
	}

	if s.Bus != nil {
		if err := s.Bus.PublishPostCreated(event.PostCreated{
			PostId:  post.Id,
			Content: post.Content,
		}); err != nil {
			// Fire-and-forget: the post is committed, a lost event only costs
			// annotations.
			Logger.Log.Error("fail to publish post.created for post ", post.Id, ": ", err)
		}
	}

	return &post, nil
}

func (s *Service) GetPost(postId string) (*model.Post, error) {
	var post model.Post
	res := s.DB.Preload("Author").Where("id = ?", postId).First(&post)
	if res.RowsAffected != 1 {
		return nil, errors.Wrap(ErrNotFound, "invalid post id")
	}
	return &post, nil
}

// HardDeletePost permanently removes the post and everything hanging off it.
// Author only; admins use the soft delete so the audit trail survives.
func (s *Service) HardDeletePost(actorId string, postId string) error {
	post, err := s.GetPost(postId)
	if err != nil {
		return err
	}
	if post.AuthorID != actorId {
		return errors.Wrap(ErrForbidden, "only the author can hard-delete a post")
	}

	return s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", postId).Delete(&model.Like{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", postId).Delete(&model.Mention{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", postId).Delete(&model.PostHashtag{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", postId).Delete(&model.PostLinkPreview{}).Error; err != nil {
			return err
		}
		// Hashtag and LinkPreview rows stay: they are shared and append-only.
		return tx.Where("id = ?", postId).Delete(&model.Post{}).Error
	})
}

// SoftDeletePost hides the post from every feed read while keeping the row
// for moderation audit. Author or admin.
func (s *Service) SoftDeletePost(actorId string, postId string) error {
	post, err := s.GetPost(postId)
	if err != nil {
		return err
	}
	if post.IsDeleted {
		return errors.Wrap(ErrInvalidInput, "post is already deleted")
	}

	actor, err := s.GetUserById(actorId)
	if err != nil {
		return err
	}
	if post.AuthorID != actorId && !actor.IsAdmin {
		return errors.Wrap(ErrForbidden, "only the author or an admin can soft-delete a post")
	}

	now := time.Now()
	return s.DB.Model(&model.Post{}).Where("id = ?", postId).Updates(map[string]interface{}{
		"is_deleted":    true,
		"deleted_by_id": actorId,
		"deleted_at":    now,
	}).Error
}
