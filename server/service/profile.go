package service

import (
	"regexp"
	"time"

	"github.com/murmurapp/murmur/model"
	"github.com/pkg/errors"
	"gorm.io/datatypes"
)

var handlePattern = regexp.MustCompile(`^[A-Za-z0-9_]{3,30}$`)

// ValidHandle reports whether the handle satisfies the 3-30 chars
// alphanumeric/underscore rule the unique index assumes.
func ValidHandle(handle string) bool {
	return handlePattern.MatchString(handle)
}

// EnsureUser creates the profile row on first login and returns the existing
// one afterwards. The id comes from the auth provider, never minted here.
func (s *Service) EnsureUser(userId string, handle string, displayName string) (*model.User, error) {
	var user model.User
	res := s.DB.Model(&model.User{}).Where("id = ?", userId).First(&user)
	if res.RowsAffected == 0 {
		if !ValidHandle(handle) {
			return nil, errors.Wrap(ErrInvalidInput, "handle must be 3-30 chars of letters, digits or underscore")
		}
		t := model.User{
			Id:          userId,
			Handle:      handle,
			DisplayName: displayName,
			// Default avatar until the user uploads one.
			AvatarUrl: "https://robohash.org/" + userId + "?set=set4&size=400x400",
			CreatedAt: time.Now(),
		}
		if err := s.DB.Create(&t).Error; err != nil {
			// Duplicate handle surfaces verbatim, per the error taxonomy.
			return nil, err
		}
		return &t, nil
	}

	// otherwise
	return &user, nil
}

func (s *Service) GetUserById(userId string) (*model.User, error) {
	var user model.User
	res := s.DB.Where("id = ?", userId).First(&user)
	if res.RowsAffected != 1 {
		return nil, errors.Wrap(ErrNotFound, "invalid user id")
	}
	return &user, nil
}

func (s *Service) GetUserByHandle(handle string) (*model.User, error) {
	var user model.User
	res := s.DB.Where("handle = ?", handle).First(&user)
	if res.RowsAffected != 1 {
		return nil, errors.Wrap(ErrNotFound, "no user with this handle")
	}
	return &user, nil
}

// ProfileUpdateInput carries the mutable profile fields. Nil means "leave
// unchanged".
type ProfileUpdateInput struct {
	Handle      *string
	DisplayName *string
	Bio         *string
	AvatarUrl   *string
	Preferences datatypes.JSON
}

// UpdateProfile applies the input to the actor's own profile. Self-only: the
// subject is always the actor, there is no editing someone else's profile.
func (s *Service) UpdateProfile(actorId string, input ProfileUpdateInput) (*model.User, error) {
	user, err := s.GetUserById(actorId)
	if err != nil {
		return nil, err
	}

	if input.Handle != nil {
		if !ValidHandle(*input.Handle) {
			return nil, errors.Wrap(ErrInvalidInput, "handle must be 3-30 chars of letters, digits or underscore")
		}
		user.Handle = *input.Handle
	}
	if input.DisplayName != nil {
		user.DisplayName = *input.DisplayName
	}
	if input.Bio != nil {
		user.Bio = *input.Bio
	}
	if input.AvatarUrl != nil {
		user.AvatarUrl = *input.AvatarUrl
	}
	if input.Preferences != nil {
		user.Preferences = input.Preferences
	}

	if err := s.DB.Save(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}
