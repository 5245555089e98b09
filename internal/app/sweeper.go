package app

import (
	"context"
	"time"

	"github.com/Syedsafwan24/Gradvy-sub002/internal/platform/logger"
)

type sweepFunc func(ctx context.Context) (int64, error)

// runSweeper deletes expired recommendation cache entries every interval until ctx is done.
func runSweeper(ctx context.Context, log *logger.Logger, interval time.Duration, sweep sweepFunc) {
	if interval <= 0 {
		log.Info("Recommendation cache sweeper disabled")
		return
	}
	log = log.With("worker", "RecCacheSweeper")
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := sweep(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				log.Warn("sweep failed", "error", err)
				continue
			}
			if n > 0 {
				log.Info("swept expired recommendations", "deleted", n)
			}
		}
	}
}
