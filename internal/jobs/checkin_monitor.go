package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/wldnd519/BE/internal/model"
	"github.com/wldnd519/BE/internal/notify"
)

const (
	JobCheckIn = "checkin"

	// StalenessWindow is how long a senior may go without checking in before the guardian is alerted.
	StalenessWindow = 24 * time.Hour
)

// AlertMessage is the SMS text sent to a guardian.
func AlertMessage(name string) string {
	return fmt.Sprintf("%s님이 24시간 넘게 체크인하지 않았습니다. 확인이 필요합니다.", name)
}

// IsStale reports whether a senior has no check-in within StalenessWindow of now.
func IsStale(s *model.Senior, now time.Time) bool {
	return !s.CheckedInSince(now.Add(-StalenessWindow))
}

// CheckInMonitor texts the guardian of every senior who has not checked in
// within StalenessWindow.
type CheckInMonitor struct {
	seniors  SeniorLister
	sms      SMSSender
	pageSize int
	now      func() time.Time
	logger   *slog.Logger
}

func NewCheckInMonitor(seniors SeniorLister, sms SMSSender, pageSize int, now func() time.Time, logger *slog.Logger) *CheckInMonitor {
	if now == nil {
		now = time.Now
	}
	return &CheckInMonitor{
		seniors:  seniors,
		sms:      sms,
		pageSize: pageSize,
		now:      now,
		logger:   logger.With("component", "jobs."+JobCheckIn),
	}
}

func (m *CheckInMonitor) Name() string { return JobCheckIn }

func (m *CheckInMonitor) Run(ctx context.Context) Report {
	now := m.now()
	rep := newReport(JobCheckIn, now)
	m.logger.Info("checking for missed check-ins", "cutoff", now.Add(-StalenessWindow))

	err := forEachSenior(ctx, m.seniors, m.pageSize, func(s model.Senior) {
		rep.add(m.process(ctx, &s, now))
	})
	if err != nil {
		m.logger.Error("check-in scan aborted", "error", err)
	}

	out := rep.finish(m.now(), err)
	m.logger.Info("check-in scan finished", "sent", out.Sent(), "skipped", out.Skipped(), "failed", out.Failed())
	return out
}

func (m *CheckInMonitor) process(ctx context.Context, s *model.Senior, now time.Time) ItemResult {
	item := ItemResult{SeniorID: s.ID, SeniorName: s.Name}
	if !IsStale(s, now) {
		item.Status = StatusSkipped
		return item
	}

	lastSeen := "never"
	if s.LastCheckIn != nil {
		lastSeen = humanize.RelTime(*s.LastCheckIn, now, "ago", "from now")
	}
	to := notify.ToE164KR(s.GuardianContact)
	m.logger.Warn("senior missed check-in", "senior", s.Name, "last_check_in", lastSeen, "guardian", s.GuardianContact)

	if err := m.sms.SendSMS(ctx, to, AlertMessage(s.Name)); err != nil {
		m.logger.Error("guardian alert failed", "senior", s.Name, "to", to, "error", err)
		item.Status = StatusFailed
		item.Reason = err.Error()
		return item
	}

	m.logger.Info("guardian alerted", "senior", s.Name, "to", to)
	item.Status = StatusSent
	return item
}
