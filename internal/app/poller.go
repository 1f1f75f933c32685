package app

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/ragdeck/ragdeck/internal/scribe"
	"github.com/ragdeck/ragdeck/internal/state"
)

const (
	defaultPollInterval = 5 * time.Second
	maxBackoff          = 30 * time.Second
)

// StartPoller launches a background goroutine that refreshes the
// service status at a fixed cadence, stretching the interval while the
// backend stays unreachable. It returns immediately.
func StartPoller(ctx context.Context, store *state.Store, client scribe.API, interval time.Duration, logger *zap.Logger) {
	if interval <= 0 {
		interval = defaultPollInterval
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	go func() {
		for {
			refresh(ctx, store, client, logger)

			wait := calculateBackoff(store.Snapshot().ConsecutiveFailures, interval)
			select {
			case <-ctx.Done():
				return
			case <-time.After(wait):
			}
		}
	}()
}

func refresh(ctx context.Context, store *state.Store, client scribe.API, logger *zap.Logger) {
	status, err := client.FetchStatus(ctx)
	if err != nil {
		store.SetStatus(false, err)
		logger.Warn("status poll failed", zap.Error(err))
		return
	}
	store.SetStatus(status.Running, nil)
}

// calculateBackoff doubles the base interval per consecutive failure,
// capped at maxBackoff.
func calculateBackoff(failures int, base time.Duration) time.Duration {
	wait := base
	for i := 0; i < failures; i++ {
		wait *= 2
		if wait >= maxBackoff {
			return maxBackoff
		}
	}
	return wait
}
