package service

import (
	"sync"
	"time"

	"github.com/murmurapp/murmur/model"
	Logger "github.com/murmurapp/murmur/utils/log"
)

// FeedItem is one post annotated for a specific viewer.
type FeedItem struct {
	Post        *model.Post
	LikeCount   int64
	ViewerLiked bool
}

// HomeFeed returns a page of the viewer's timeline: their own posts plus
// posts of everyone they follow, newest first. The viewer always sees their
// own posts even when they follow no one.
func (s *Service) HomeFeed(viewerId string, cursor *time.Time, limit int) ([]*FeedItem, error) {
	followeeIds, err := s.followedAuthorIds(viewerId)
	if err != nil {
		return nil, err
	}
	authorIds := append([]string{viewerId}, followeeIds...)
	return s.assembleFeed(viewerId, authorIds, cursor, limit)
}

// ProfileFeed returns a page of the subject's own posts, annotated for the
// viewer.
func (s *Service) ProfileFeed(viewerId string, subjectId string, cursor *time.Time, limit int) ([]*FeedItem, error) {
	return s.assembleFeed(viewerId, []string{subjectId}, cursor, limit)
}

// assembleFeed runs the shared algorithm: page of posts first, then the
// per-post like aggregates concurrently. cursor is the created_at of the
// last item of the previous page, an exclusive bound (descending order, so
// strictly older). A page shorter than limit means "no more pages" to the
// caller; this misreads an exact-multiple final page as having more, a known
// limitation we keep rather than paying an extra count query.
func (s *Service) assembleFeed(viewerId string, authorIds []string, cursor *time.Time, limit int) ([]*FeedItem, error) {
	limit = s.normalizePageSize(limit)

	if len(authorIds) == 0 {
		return []*FeedItem{}, nil
	}

	var posts []*model.Post
	query := s.DB.Model(&model.Post{}).
		Preload("Author").
		Where("author_id IN ? AND NOT is_deleted", authorIds)
	if cursor != nil {
		query = query.Where("created_at < ?", *cursor)
	}
	if err := query.
		Order("created_at desc").
		Limit(limit).
		Find(&posts).Error; err != nil {
		return nil, err
	}

	if len(posts) == 0 {
		return []*FeedItem{}, nil
	}

	postIds := make([]string, 0, len(posts))
	for _, post := range posts {
		postIds = append(postIds, post.Id)
	}

	// Both annotation queries only need the post ids, so they run in
	// parallel once the page query is done.
	var (
		wg          sync.WaitGroup
		likeCounts  map[string]int64
		viewerLikes map[string]bool
		countErr    error
		likedErr    error
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		likeCounts, countErr = s.likeCountsForPosts(postIds)
	}()
	go func() {
		defer wg.Done()
		viewerLikes, likedErr = s.viewerLikedPosts(viewerId, postIds)
	}()
	wg.Wait()

	if countErr != nil {
		return nil, countErr
	}
	if likedErr != nil {
		return nil, likedErr
	}

	items := make([]*FeedItem, 0, len(posts))
	for _, post := range posts {
		items = append(items, &FeedItem{
			Post:        post,
			LikeCount:   likeCounts[post.Id],
			ViewerLiked: viewerLikes[post.Id],
		})
	}
	return items, nil
}

func (s *Service) normalizePageSize(limit int) int {
	if limit <= 0 {
		limit = s.Setting.FEED_DEFAULT_PAGE_SIZE
	}
	if limit <= 0 {
		limit = 20
	}
	if s.Setting.FEED_MAX_PAGE_SIZE > 0 && limit > s.Setting.FEED_MAX_PAGE_SIZE {
		limit = s.Setting.FEED_MAX_PAGE_SIZE
	}
	return limit
}

// likeCountsForPosts returns post id -> like count, consulting the redis
// cache first and recounting only the misses.
func (s *Service) likeCountsForPosts(postIds []string) (map[string]int64, error) {
	counts := make(map[string]int64, len(postIds))

	missing := postIds
	if s.LikeCache != nil {
		cached, found, err := s.LikeCache.GetLikeCounts(postIds)
		if err != nil {
			// Cache down, recount everything from the database.
			Logger.Log.Warn("like count cache read failed: ", err)
		} else {
			missing = []string{}
			for i, pid := range postIds {
				if found[i] {
					counts[pid] = cached[i]
				} else {
					missing = append(missing, pid)
				}
			}
		}
	}

	if len(missing) == 0 {
		return counts, nil
	}

	type likeCountRow struct {
		PostID string
		Count  int64
	}
	var rows []likeCountRow
	if err := s.DB.Model(&model.Like{}).
		Select("post_id, count(*) as count").
		Where("post_id IN ?", missing).
		Group("post_id").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	for _, row := range rows {
		counts[row.PostID] = row.Count
	}

	if s.LikeCache != nil {
		for _, pid := range missing {
			if err := s.LikeCache.SetLikeCount(pid, counts[pid]); err != nil {
				Logger.Log.Warn("like count cache write failed for post ", pid, ": ", err)
				break
			}
		}
	}
	return counts, nil
}

// viewerLikedPosts returns the subset of postIds the viewer has liked, as a
// membership map.
func (s *Service) viewerLikedPosts(viewerId string, postIds []string) (map[string]bool, error) {
	var likedIds []string
	if err := s.DB.Model(&model.Like{}).
		Where("user_id = ? AND post_id IN ?", viewerId, postIds).
		Pluck("post_id", &likedIds).Error; err != nil {
		return nil, err
	}

	liked := make(map[string]bool, len(likedIds))
	for _, pid := range likedIds {
		liked[pid] = true
	}
	return liked, nil
}
