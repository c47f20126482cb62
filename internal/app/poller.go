package app

import (
	"context"
	"time"

	"github.com/go-kit/kit/log"
	"github.com/go-kit/kit/log/level"

	"github.com/five82/scout/internal/state"
)

const (
	defaultPollInterval = 2 * time.Second
	maxBackoff          = 30 * time.Second
)

// ConnectionSource is anything that can report the current connection.
type ConnectionSource interface {
	DiscoverConnection(ctx context.Context) ConnectionResult
}

// StartPoller launches a background goroutine that refreshes the store. It
// waits before the first refresh, so callers seed the store with Refresh. After
// failures the wait grows exponentially up to maxBackoff; a success returns it
// to interval. It returns immediately.
func StartPoller(ctx context.Context, store *state.Store, source ConnectionSource, interval time.Duration, logger log.Logger) {
	if interval <= 0 {
		interval = defaultPollInterval
	}
	if logger == nil {
		logger = log.NewNopLogger()
	}
	go func() {
		failures := store.Snapshot().ConsecutiveFailures
		for {
			timer := time.NewTimer(calculateBackoff(failures, interval))
			select {
			case <-ctx.Done():
				timer.Stop()
				return
			case <-timer.C:
			}
			failures = Refresh(ctx, store, source, logger)
		}
	}()
}

// Refresh runs one discovery, records it and returns the consecutive failure
// count.
func Refresh(ctx context.Context, store *state.Store, source ConnectionSource, logger log.Logger) int {
	if logger == nil {
		logger = log.NewNopLogger()
	}
	conn := source.DiscoverConnection(ctx)
	store.Update(&conn, nil)
	snap := store.Snapshot()
	if snap.LastError != nil && snap.ConsecutiveFailures == 2 {
		level.Info(logger).Log("msg", "league client offline", "err", snap.LastError)
	}
	return snap.ConsecutiveFailures
}

func calculateBackoff(failures int, base time.Duration) time.Duration {
	if failures <= 0 {
		return base
	}
	wait := base
	for i := 0; i < failures; i++ {
		wait *= 2
		if wait >= maxBackoff {
			return maxBackoff
		}
	}
	return wait
}
