package workflow

import (
	"context"
	"log/slog"
	"time"
)

// Sweeper periodically expires idle conversations
type Sweeper struct {
	store *MemoryStore
	ttl   time.Duration
	log   *slog.Logger
}

// NewSweeper creates a sweeper for store; a non-positive ttl disables it
func NewSweeper(store *MemoryStore, ttl time.Duration, log *slog.Logger) *Sweeper {
	return &Sweeper{store: store, ttl: ttl, log: log}
}

// Start runs the sweep loop until ctx is done
func (s *Sweeper) Start(ctx context.Context, interval time.Duration) {
	if s.ttl <= 0 {
		s.log.Info("state sweeper disabled: STATE_TTL not set")
		return
	}

	s.log.Info("state sweeper started", "ttl", s.ttl, "interval", interval)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := s.store.Sweep(s.ttl); n > 0 {
				s.log.Info("expired idle conversations", "count", n, "active", s.store.Len())
			}
		}
	}
}
