package sched

import (
	"context"
	"time"

	"article-hub/internal/domain/ports/repository"
	"article-hub/internal/infra/metrics"

	"github.com/rs/zerolog"
)

// SessionCleanupWorker periodically removes expired refresh sessions so the
// sessions table does not grow without bound.
type SessionCleanupWorker struct {
	interval time.Duration
	sessions repository.SessionRepository
	log      *zerolog.Logger
}

func NewSessionCleanupWorker(interval time.Duration, sessions repository.SessionRepository, logger *zerolog.Logger) *SessionCleanupWorker {
	workerLog := logger.With().Str("component", "SessionCleanupWorker").Logger()
	return &SessionCleanupWorker{
		interval: interval,
		sessions: sessions,
		log:      &workerLog,
	}
}

func (w *SessionCleanupWorker) Run(ctx context.Context) error {
	w.log.Info().Msg("Starting session cleanup worker")
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.log.Info().Msg("Stopping session cleanup worker")
			return ctx.Err()
		case <-ticker.C:
			n, err := w.sessions.PurgeExpired(ctx, repository.NoTX, time.Now())
			if err != nil {
				w.log.Error().Err(err).Msg("session cleanup error")
				continue
			}
			if n > 0 {
				metrics.AddSessionsPurged(n)
				w.log.Info().Int("count", n).Msg("expired sessions purged")
			}
		}
	}
}
