package service

import (
	"github.com/DataDog/datadog-go/statsd"
	"github.com/murmurapp/murmur/app_setting"
	"github.com/murmurapp/murmur/event"
	"github.com/murmurapp/murmur/utils"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// Sentinel errors the handler layer maps to http statuses. Wrapped errors
// still match via errors.Is.
var (
	ErrNotFound     = errors.New("not found")
	ErrForbidden    = errors.New("forbidden")
	ErrInvalidInput = errors.New("invalid input")
)

/*

Service owns all reads and writes of the social data model. One instance is
shared by every request.

DB: the backing Postgres connection pool.
Bus: in-process event bus; post creation publishes here, the enrichment
worker consumes. Nil means post creation skips the event (tests that call
EnrichPost directly).
LikeCache: optional redis like-count cache. Nil or unreachable degrades to
counting rows.
Statsd: optional Datadog counter sink for enrichment outcomes.
Fetcher: optional link preview metadata fetcher. Nil leaves previews bare.
Setting: server tunables (page sizes etc.).

*/

type Service struct {
	DB        *gorm.DB
	Bus       *event.Bus
	LikeCache *utils.RedisLikeCache
	Statsd    *statsd.Client
	Fetcher   *PreviewFetcher
	Setting   app_setting.ServerAppSetting
}

func NewService(db *gorm.DB, bus *event.Bus, setting app_setting.ServerAppSetting) *Service {
	return &Service{
		DB:      db,
		Bus:     bus,
		Setting: setting,
	}
}
