package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func TestValidHandle(t *testing.T) {
	assert.True(t, ValidHandle("alice_dev"))
	assert.True(t, ValidHandle("abc"))
	assert.True(t, ValidHandle("A_1"))

	assert.False(t, ValidHandle("ab"))
	assert.False(t, ValidHandle("this_handle_is_way_too_long_to_use"))
	assert.False(t, ValidHandle("has space"))
	assert.False(t, ValidHandle("dash-not-ok"))
	assert.False(t, ValidHandle(""))
}

func TestEnsureUserCreatesOnce(t *testing.T) {
	s := createTestService(t)

	first, err := s.EnsureUser("identity-1", "ensure_me", "Ensure Me")
	require.Nil(t, err)
	require.Equal(t, "identity-1", first.Id)
	require.NotEmpty(t, first.AvatarUrl)

	// Second call with a different handle returns the existing row untouched.
	second, err := s.EnsureUser("identity-1", "other_handle", "Other")
	require.Nil(t, err)
	require.Equal(t, "ensure_me", second.Handle)
}

func TestEnsureUserRejectsBadHandle(t *testing.T) {
	s := createTestService(t)

	_, err := s.EnsureUser("identity-2", "x", "Too Short")
	require.NotNil(t, err)
}

func TestEnsureUserDuplicateHandleSurfaces(t *testing.T) {
	s := createTestService(t)

	_, err := s.EnsureUser("identity-3", "taken_handle", "First")
	require.Nil(t, err)

	_, err = s.EnsureUser("identity-4", "taken_handle", "Second")
	require.NotNil(t, err)
}

func TestUpdateProfile(t *testing.T) {
	s := createTestService(t)
	user := createTestUser(t, s, "mutable_user")

	bio := "new bio"
	name := "New Name"
	prefs := datatypes.JSON([]byte(`{"theme":"dark"}`))
	updated, err := s.UpdateProfile(user.Id, ProfileUpdateInput{
		DisplayName: &name,
		Bio:         &bio,
		Preferences: prefs,
	})
	require.Nil(t, err)
	require.Equal(t, "New Name", updated.DisplayName)
	require.Equal(t, "new bio", updated.Bio)
	// Untouched fields stay.
	require.Equal(t, "mutable_user", updated.Handle)

	badHandle := "no"
	_, err = s.UpdateProfile(user.Id, ProfileUpdateInput{Handle: &badHandle})
	require.NotNil(t, err)

	_, err = s.UpdateProfile("no-such-user", ProfileUpdateInput{Bio: &bio})
	require.NotNil(t, err)
}
