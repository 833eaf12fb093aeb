package service

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/murmurapp/murmur/model"
	Logger "github.com/murmurapp/murmur/utils/log"
	"gorm.io/gorm/clause"
)

const enrichmentResultCounter = "murmur.enrichment.result"

/*

EnrichPost derives the annotation index for a freshly created post: hashtag
rows and links, resolved mentions, and link preview rows and links.

The three sub-operations are independent and best-effort. They run
concurrently, may settle in any order, and each one logs and swallows its
own error: the post is already committed and stays the source of truth, a
failed annotation is just a hole in a derived index. Nothing here ever
reaches the post-creation caller.

Every write is idempotent (upsert-or-ignore), so re-running enrichment for
the same post is safe. That covers both redelivered events and the benign
race where two posts introduce the same new tag or url at once: the loser of
the insert race re-reads the winner's row.

*/

func (s *Service) EnrichPost(postId string, content string) {
	var wg sync.WaitGroup

	ops := []struct {
		name string
		run  func(string, string) error
	}{
		{"hashtags", s.linkHashtags},
		{"mentions", s.linkMentions},
		{"link_previews", s.linkPreviews},
	}

	for _, op := range ops {
		wg.Add(1)
		go func(name string, run func(string, string) error) {
			defer wg.Done()
			err := run(postId, content)
			if err != nil {
				Logger.Log.Error("enrichment op ", name, " failed for post ", postId, ": ", err)
			}
			s.reportEnrichmentResult(name, err)
		}(op.name, op.run)
	}

	wg.Wait()
}

func (s *Service) reportEnrichmentResult(op string, opErr error) {
	if s.Statsd == nil {
		return
	}
	state := "success"
	if opErr != nil {
		state = "failure"
	}
	if err := s.Statsd.Incr(enrichmentResultCounter, []string{"op:" + op, "state:" + state}, 1); err != nil {
		Logger.Log.Infoln("cannot report enrichment result")
	}
}

// linkHashtags get-or-creates one Hashtag row per distinct tag and links the
// post to it. The upsert with DO NOTHING plus re-read closes the concurrent
// first-use race structurally instead of retrying on duplicate-key.
func (s *Service) linkHashtags(postId string, content string) error {
	tags := Distinct(ParseHashtags(content))

	for _, tag := range tags {
		if err := s.DB.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "tag"}},
			DoNothing: true,
		}).Create(&model.Hashtag{
			Id:        uuid.New().String(),
			Tag:       tag,
			CreatedAt: time.Now(),
		}).Error; err != nil {
			return err
		}

		// Re-read to get the canonical row, ours or another writer's.
		var hashtag model.Hashtag
		if err := s.DB.Where("tag = ?", tag).First(&hashtag).Error; err != nil {
			return err
		}

		if err := s.DB.Clauses(clause.OnConflict{DoNothing: true}).Create(&model.PostHashtag{
			PostID:    postId,
			HashtagID: hashtag.Id,
			CreatedAt: time.Now(),
		}).Error; err != nil {
			return err
		}
	}
	return nil
}

// linkMentions resolves the distinct handles in one batch lookup and records
// a mention per resolved user. Handles that don't resolve are silently
// dropped.
func (s *Service) linkMentions(postId string, content string) error {
	handles := Distinct(ParseMentions(content))
	if len(handles) == 0 {
		return nil
	}

	var users []model.User
	if err := s.DB.Where("handle IN ?", handles).Find(&users).Error; err != nil {
		return err
	}

	for _, user := range users {
		if err := s.DB.Clauses(clause.OnConflict{DoNothing: true}).Create(&model.Mention{
			PostID:    postId,
			UserID:    user.Id,
			CreatedAt: time.Now(),
		}).Error; err != nil {
			return err
		}
	}
	return nil
}

// linkPreviews get-or-creates one LinkPreview row per distinct url, links
// the post to it, and kicks off the one-shot metadata fill for rows that
// are still bare.
func (s *Service) linkPreviews(postId string, content string) error {
	urls := Distinct(ParseUrls(content))

	for _, url := range urls {
		if err := s.DB.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "url"}},
			DoNothing: true,
		}).Create(&model.LinkPreview{
			Id:        uuid.New().String(),
			Url:       url,
			CreatedAt: time.Now(),
		}).Error; err != nil {
			return err
		}

		var preview model.LinkPreview
		if err := s.DB.Where("url = ?", url).First(&preview).Error; err != nil {
			return err
		}

		if err := s.DB.Clauses(clause.OnConflict{DoNothing: true}).Create(&model.PostLinkPreview{
			PostID:        postId,
			LinkPreviewID: preview.Id,
			CreatedAt:     time.Now(),
		}).Error; err != nil {
			return err
		}

		if preview.Title == "" {
			s.fillPreviewMetadata(&preview)
		}
	}
	return nil
}

// fillPreviewMetadata fetches the page once and fills title/description/
// image on the still-bare row. First write wins, there is no refresh.
// Best-effort: a dead link leaves the row bare forever, which renders fine.
func (s *Service) fillPreviewMetadata(preview *model.LinkPreview) {
	if s.Fetcher == nil {
		return
	}

	meta, err := s.Fetcher.Fetch(preview.Url)
	if err != nil {
		Logger.Log.Info("fail to fetch preview metadata for ", preview.Url, ": ", err)
		return
	}
	if meta.Title == "" && meta.Description == "" && meta.ImageUrl == "" {
		return
	}

	// The title guard keeps a concurrent filler from overwriting.
	if err := s.DB.Model(&model.LinkPreview{}).
		Where("id = ? AND title = ''", preview.Id).
		Updates(map[string]interface{}{
			"title":       meta.Title,
			"description": meta.Description,
			"image_url":   meta.ImageUrl,
		}).Error; err != nil {
		Logger.Log.Warn("fail to store preview metadata for ", preview.Url, ": ", err)
	}
}
