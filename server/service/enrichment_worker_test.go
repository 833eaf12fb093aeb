package service

import (
	"context"
	"testing"
	"time"

	"github.com/murmurapp/murmur/app_setting"
	"github.com/murmurapp/murmur/event"
	"github.com/murmurapp/murmur/model"
	"github.com/murmurapp/murmur/utils"
	"github.com/stretchr/testify/require"
)

func TestEnrichmentWorkerConsumesPostCreated(t *testing.T) {
	db, _ := utils.CreateTempDB(t)
	bus := event.NewBus()
	defer bus.Close()
	s := NewService(db, bus, app_setting.DefaultServerAppSetting())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go s.RunEnrichmentWorker(ctx)

	author := createTestUser(t, s, "worker_author")
	post, err := s.CreatePost(author.Id, "event driven #enrichment", "")
	require.Nil(t, err)

	// Enrichment is fire-and-forget, poll until the link lands.
	deadline := time.Now().Add(10 * time.Second)
	for {
		var count int64
		require.Nil(t, s.DB.Model(&model.PostHashtag{}).Where("post_id = ?", post.Id).Count(&count).Error)
		if count == 1 {
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("enrichment never linked the hashtag")
		}
		time.Sleep(50 * time.Millisecond)
	}
}
