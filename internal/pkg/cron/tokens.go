package cron

import (
	"context"
	"log/slog"
	"time"
)

// Pruner drops expired entries from an in-process store.
type Pruner interface {
	Prune(ctx context.Context) int
}

// RegisterPruneJob schedules p when the revocation store is in-process.
func RegisterPruneJob(scheduler *Scheduler, p Pruner) {
	scheduler.AddJob("prune_revoked_tokens", 15*time.Minute, func(ctx context.Context) error {
		if n := p.Prune(ctx); n > 0 {
			slog.Debug("Cron: pruned revoked tokens", "count", n)
		}
		return nil
	})
}
