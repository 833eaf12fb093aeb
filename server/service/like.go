package service

import (
	"time"

	"github.com/murmurapp/murmur/model"
	Logger "github.com/murmurapp/murmur/utils/log"
	"github.com/pkg/errors"
)

// LikePost records the (user, post) like. A duplicate like surfaces the
// unique violation verbatim so the client can revert its optimistic toggle.
func (s *Service) LikePost(userId string, postId string) error {
	var post model.Post
	res := s.DB.Where("id = ?", postId).First(&post)
	if res.RowsAffected != 1 {
		return errors.Wrap(ErrNotFound, "invalid post id")
	}

	if err := s.DB.Create(&model.Like{
		UserID:    userId,
		PostID:    postId,
		CreatedAt: time.Now(),
	}).Error; err != nil {
		return err
	}

	s.invalidateLikeCount(postId)
	return nil
}

// UnlikePost removes the like. Removing a like that doesn't exist is a
// no-op, matching the unfollow contract.
func (s *Service) UnlikePost(userId string, postId string) error {
	if err := s.DB.Where("user_id = ? AND post_id = ?", userId, postId).
		Delete(&model.Like{}).Error; err != nil {
		return err
	}

	s.invalidateLikeCount(postId)
	return nil
}

func (s *Service) LikeCount(postId string) (int64, error) {
	var count int64
	err := s.DB.Model(&model.Like{}).Where("post_id = ?", postId).Count(&count).Error
	return count, err
}

func (s *Service) HasLiked(userId string, postId string) (bool, error) {
	var count int64
	err := s.DB.Model(&model.Like{}).
		Where("user_id = ? AND post_id = ?", userId, postId).
		Count(&count).Error
	return count > 0, err
}

func (s *Service) invalidateLikeCount(postId string) {
	if s.LikeCache == nil {
		return
	}
	if err := s.LikeCache.InvalidateLikeCount(postId); err != nil {
		// Stale cache, not a failed like. Next read repairs it.
		Logger.Log.Warn("fail to invalidate like count cache for post ", postId, ": ", err)
	}
}
