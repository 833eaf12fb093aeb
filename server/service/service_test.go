package service

import (
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/murmurapp/murmur/app_setting"
	"github.com/murmurapp/murmur/model"
	"github.com/murmurapp/murmur/utils"
	"github.com/murmurapp/murmur/utils/dotenv"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	dotenv.LoadDotEnvsInTests()
	os.Exit(m.Run())
}

func createTestService(t *testing.T) *Service {
	t.Helper()
	db, _ := utils.CreateTempDB(t)
	return NewService(db, nil, app_setting.DefaultServerAppSetting())
}

func createTestUser(t *testing.T, s *Service, handle string) *model.User {
	t.Helper()
	user, err := s.EnsureUser(uuid.New().String(), handle, "user "+handle)
	require.Nil(t, err)
	return user
}

func createTestAdmin(t *testing.T, s *Service, handle string) *model.User {
	t.Helper()
	user := createTestUser(t, s, handle)
	require.Nil(t, s.DB.Model(&model.User{}).Where("id = ?", user.Id).Update("is_admin", true).Error)
	user.IsAdmin = true
	return user
}

// createTestPost inserts directly so tests can control the creation time for
// cursor assertions.
func createTestPostAt(t *testing.T, s *Service, authorId string, content string, createdAt time.Time) *model.Post {
	t.Helper()
	post := &model.Post{
		Id:        uuid.New().String(),
		CreatedAt: createdAt,
		AuthorID:  authorId,
		Content:   content,
	}
	require.Nil(t, s.DB.Create(post).Error)
	return post
}
