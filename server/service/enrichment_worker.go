package service

import (
	"context"

	Logger "github.com/murmurapp/murmur/utils/log"
)

// RunEnrichmentWorker consumes post.created events until ctx is cancelled.
// Each event is enriched in its own goroutine so one slow metadata fetch
// doesn't back up the bus.
func (s *Service) RunEnrichmentWorker(ctx context.Context) error {
	events, err := s.Bus.SubscribePostCreated(ctx)
	if err != nil {
		return err
	}

	Logger.Log.Info("enrichment worker started")
	for e := range events {
		go s.EnrichPost(e.PostId, e.Content)
	}
	Logger.Log.Info("enrichment worker stopped")
	return nil
}
