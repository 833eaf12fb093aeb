package utils

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/go-redis/redis/v8"
)

/*

RedisLikeCache is a read-through cache for per-post like counts, keeping the
feed's hottest aggregate off the database. The cache is strictly an
optimization: every getter degrades to "miss" on redis failure and callers
fall back to counting rows, so a dead redis only costs latency.

Keys are "likes__<postId>" holding the decimal count.

*/

type RedisLikeCache struct {
	inner     *redis.Client
	keyParser RedisKeyParser
}

var ctx = context.Background()

func GetRedisLikeCache() (*RedisLikeCache, error) {
	redisClient := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", os.Getenv("REDIS_HOST"), os.Getenv("REDIS_PORT")),
		Password: os.Getenv("REDIS_PASSWD"),
		DB:       0, // use default DB
	})
	_, err := redisClient.Ping(ctx).Result()
	if err != nil {
		return nil, err
	}
	return &RedisLikeCache{
		inner:     redisClient,
		keyParser: RedisKeyParser{delimiter: "__", prefix: "likes"},
	}, nil
}

type RedisKeyParser struct {
	delimiter string
	prefix    string
}

func (r RedisKeyParser) ValidateId(id string) bool {
	return !strings.Contains(id, r.delimiter)
}

func (r RedisKeyParser) EncodeLikeCountKey(postId string) (string, error) {
	if !r.ValidateId(postId) {
		return "", fmt.Errorf("invalid postId: %s", postId)
	}
	return fmt.Sprintf("%s%s%s", r.prefix, r.delimiter, postId), nil
}

// GetLikeCounts returns one count per post id, with found=false entries for
// ids not in cache (or on any redis failure).
func (r *RedisLikeCache) GetLikeCounts(postIds []string) (counts []int64, found []bool, err error) {
	if len(postIds) == 0 {
		return []int64{}, []bool{}, nil
	}

	keys := make([]string, 0, len(postIds))
	for _, pid := range postIds {
		key, err := r.keyParser.EncodeLikeCountKey(pid)
		if err != nil {
			return nil, nil, err
		}
		keys = append(keys, key)
	}

	res, err := r.inner.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, nil, err
	}

	counts = make([]int64, 0, len(postIds))
	found = make([]bool, 0, len(postIds))
	for _, v := range res {
		s, ok := v.(string)
		if !ok {
			counts = append(counts, 0)
			found = append(found, false)
			continue
		}
		n, convErr := strconv.ParseInt(s, 10, 64)
		if convErr != nil {
			counts = append(counts, 0)
			found = append(found, false)
			continue
		}
		counts = append(counts, n)
		found = append(found, true)
	}
	return counts, found, nil
}

// SetLikeCount stores the authoritative count for a post.
func (r *RedisLikeCache) SetLikeCount(postId string, count int64) error {
	key, err := r.keyParser.EncodeLikeCountKey(postId)
	if err != nil {
		return err
	}
	return r.inner.Set(ctx, key, strconv.FormatInt(count, 10), 0).Err()
}

// InvalidateLikeCount drops the cached count after a like/unlike so the next
// read recomputes from the database.
func (r *RedisLikeCache) InvalidateLikeCount(postId string) error {
	key, err := r.keyParser.EncodeLikeCountKey(postId)
	if err != nil {
		return err
	}
	return r.inner.Del(ctx, key).Err()
}
