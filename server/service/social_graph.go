package service

import (
	"time"

	"github.com/murmurapp/murmur/model"
	"github.com/pkg/errors"
)

// Follow makes follower see followee's posts in their home feed. The storage
// layer owns the invariants: the composite primary key rejects a duplicate
// pair and the check constraint rejects a self-follow, both surface verbatim.
func (s *Service) Follow(followerId string, followeeId string) error {
	var followee model.User
	res := s.DB.Where("id = ?", followeeId).First(&followee)
	if res.RowsAffected != 1 {
		return errors.Wrap(ErrNotFound, "invalid followee id")
	}

	return s.DB.Create(&model.Follow{
		FollowerID: followerId,
		FolloweeID: followeeId,
		CreatedAt:  time.Now(),
	}).Error
}

// Unfollow deletes the relation. Deleting a pair that doesn't exist is a
// no-op, not an error.
func (s *Service) Unfollow(followerId string, followeeId string) error {
	return s.DB.Where("follower_id = ? AND followee_id = ?", followerId, followeeId).
		Delete(&model.Follow{}).Error
}

func (s *Service) IsFollowing(followerId string, followeeId string) (bool, error) {
	var count int64
	err := s.DB.Model(&model.Follow{}).
		Where("follower_id = ? AND followee_id = ?", followerId, followeeId).
		Count(&count).Error
	return count > 0, err
}

func (s *Service) FollowerCount(userId string) (int64, error) {
	var count int64
	err := s.DB.Model(&model.Follow{}).Where("followee_id = ?", userId).Count(&count).Error
	return count, err
}

func (s *Service) FollowingCount(userId string) (int64, error) {
	var count int64
	err := s.DB.Model(&model.Follow{}).Where("follower_id = ?", userId).Count(&count).Error
	return count, err
}

// followedAuthorIds returns everyone the viewer follows. Used by the home
// feed to compute the author set.
func (s *Service) followedAuthorIds(viewerId string) ([]string, error) {
	var followeeIds []string
	err := s.DB.Model(&model.Follow{}).
		Where("follower_id = ?", viewerId).
		Pluck("followee_id", &followeeIds).Error
	if err != nil {
		return nil, err
	}
	return followeeIds, nil
}
