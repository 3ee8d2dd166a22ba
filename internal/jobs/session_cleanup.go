package jobs

import (
	"context"
	"log/slog"
	"time"
)

const JobSessionCleanup = "session-cleanup"

type SessionPurger interface {
	CleanupExpired(ctx context.Context) (int64, error)
}

// SessionCleanup deletes refresh tokens that expired or were revoked by
// rotation or logout.
type SessionCleanup struct {
	sessions SessionPurger
	now      func() time.Time
	logger   *slog.Logger
}

func NewSessionCleanup(sessions SessionPurger, now func() time.Time, logger *slog.Logger) *SessionCleanup {
	if now == nil {
		now = time.Now
	}
	return &SessionCleanup{
		sessions: sessions,
		now:      now,
		logger:   logger.With("component", "jobs."+JobSessionCleanup),
	}
}

func (j *SessionCleanup) Name() string { return JobSessionCleanup }

func (j *SessionCleanup) Run(ctx context.Context) Report {
	rep := newReport(JobSessionCleanup, j.now())

	n, err := j.sessions.CleanupExpired(ctx)
	if err != nil {
		j.logger.Error("session cleanup failed", "error", err)
		return rep.finish(j.now(), err)
	}
	rep.Removed = n
	j.logger.Info("sessions cleaned up", "removed", n)
	return rep.finish(j.now(), nil)
}
