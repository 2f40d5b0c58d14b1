package worker

import (
	"context"
	"time"

	"github.com/athletichub/athletichub/internal/service"

	"github.com/sirupsen/logrus"
)

// SessionCleanupWorker periodically revokes sessions whose application
// token has expired, so a stale cookie cannot keep a dead session alive.
type SessionCleanupWorker struct {
	sessions service.SessionService
	interval time.Duration
}

func NewSessionCleanupWorker(sessions service.SessionService, interval time.Duration) *SessionCleanupWorker {
	return &SessionCleanupWorker{
		sessions: sessions,
		interval: interval,
	}
}

func (w *SessionCleanupWorker) Start(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	logrus.Info("Session cleanup worker started")

	for {
		select {
		case <-ctx.Done():
			logrus.Info("Session cleanup worker stopped")
			return
		case <-ticker.C:
			w.cleanupExpiredSessions(ctx)
		}
	}
}

func (w *SessionCleanupWorker) cleanupExpiredSessions(ctx context.Context) {
	revoked := w.sessions.RevokeExpired(ctx)
	if revoked == 0 {
		logrus.Debug("No expired sessions found for cleanup")
		return
	}
	logrus.Infof("Expired session cleanup completed: %d revoked", revoked)
}
