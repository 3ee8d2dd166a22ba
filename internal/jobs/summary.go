package jobs

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/wldnd519/BE/internal/ai"
	"github.com/wldnd519/BE/internal/model"
	"github.com/wldnd519/BE/internal/notify"
)

const (
	JobSummary = "summary"

	SummaryFallback = "대화 요약 생성 실패"
	EmotionFallback = "감정 분석 생성 실패"
)

var errEmptyCompletion = errors.New("empty completion")

// DayBounds returns local midnight and 23:59:59.999 of t's calendar day in t's location.
func DayBounds(t time.Time) (time.Time, time.Time) {
	start, end := DayRange(t)
	return start, end.Add(-time.Millisecond)
}

// DayRange returns the half-open window [midnight, next midnight) of t's calendar day.
func DayRange(t time.Time) (time.Time, time.Time) {
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return start, start.AddDate(0, 0, 1)
}

// ComposeSummaryEmail renders the guardian email: summary, every raw user
// message as a bullet, then the emotion analysis.
func ComposeSummaryEmail(summary string, turns []model.ChatLog, emotion string) string {
	lines := make([]string, len(turns))
	for i, t := range turns {
		lines[i] = "- " + t.UserMessage
	}

	var b strings.Builder
	b.WriteString("📌 오늘의 대화 요약\n")
	b.WriteString(summary)
	b.WriteString("\n\n🗣️ 오늘 사용자가 입력한 메시지들:\n")
	b.WriteString(strings.Join(lines, "\n"))
	b.WriteString("\n\n💬 감정 분석 결과:\n")
	b.WriteString(emotion)
	return strings.TrimSpace(b.String())
}

// SummaryGenerator emails each guardian a digest of the senior's conversations today.
type SummaryGenerator struct {
	seniors  SeniorLister
	chats    ChatLogReader
	ai       ai.Client
	mail     EmailSender
	pageSize int
	loc      *time.Location
	now      func() time.Time
	logger   *slog.Logger
}

type SummaryConfig struct {
	PageSize int
	Location *time.Location
	Now      func() time.Time
}

func NewSummaryGenerator(seniors SeniorLister, chats ChatLogReader, client ai.Client, mail EmailSender, cfg SummaryConfig, logger *slog.Logger) *SummaryGenerator {
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.Location == nil {
		cfg.Location = time.Local
	}
	return &SummaryGenerator{
		seniors:  seniors,
		chats:    chats,
		ai:       client,
		mail:     mail,
		pageSize: cfg.PageSize,
		loc:      cfg.Location,
		now:      cfg.Now,
		logger:   logger.With("component", "jobs."+JobSummary),
	}
}

func (g *SummaryGenerator) Name() string { return JobSummary }

func (g *SummaryGenerator) Run(ctx context.Context) Report {
	now := g.now().In(g.loc)
	from, last := DayBounds(now)
	_, to := DayRange(now)
	rep := newReport(JobSummary, now)
	g.logger.Info("sending daily summaries", "from", from, "to", last)

	err := forEachSenior(ctx, g.seniors, g.pageSize, func(s model.Senior) {
		rep.add(g.process(ctx, &s, from, to))
	})
	if err != nil {
		g.logger.Error("summary run aborted", "error", err)
	}

	out := rep.finish(g.now(), err)
	g.logger.Info("daily summaries finished",
		"sent", out.Sent(), "skipped", out.Skipped(), "failed", out.Failed(), "degraded", out.Degraded())
	return out
}

func (g *SummaryGenerator) process(ctx context.Context, s *model.Senior, from, to time.Time) ItemResult {
	item := ItemResult{SeniorID: s.ID, SeniorName: s.Name}

	turns, err := g.chats.ListBetween(ctx, s.ID, from, to)
	if err != nil {
		g.logger.Error("load conversations failed", "senior", s.Name, "error", err)
		item.Status = StatusFailed
		item.Reason = err.Error()
		return item
	}
	if len(turns) == 0 {
		item.Status = StatusSkipped
		item.Reason = "no conversations today"
		return item
	}

	summary, sumErr := g.complete(ctx, s, ai.SummaryInstruction, turns, SummaryFallback)
	emotion, emoErr := g.complete(ctx, s, ai.EmotionInstruction, turns, EmotionFallback)
	body := ComposeSummaryEmail(summary, turns, emotion)

	if err := g.mail.SendEmail(ctx, s.GuardianEmail, notify.DailySummarySubject, body); err != nil {
		g.logger.Error("summary email failed", "senior", s.Name, "to", s.GuardianEmail, "error", err)
		item.Status = StatusFailed
		item.Reason = err.Error()
		return item
	}

	item.Status = StatusSent
	if sumErr != nil || emoErr != nil {
		item.Degraded = true
		item.Reason = errors.Join(sumErr, emoErr).Error()
	}
	return item
}

// complete asks the model and substitutes fallback when the call fails or
// comes back empty. The returned error is informational only.
func (g *SummaryGenerator) complete(ctx context.Context, s *model.Senior, instruction string, turns []model.ChatLog, fallback string) (string, error) {
	out, err := g.ai.Complete(ctx, ai.ConversationPrompt(instruction, turns))
	if err == nil && out == "" {
		err = errEmptyCompletion
	}
	if err != nil {
		g.logger.Warn("completion fell back", "senior", s.Name, "fallback", fallback, "error", err)
		return fallback, fmt.Errorf("%s: %w", fallback, err)
	}
	return out, nil
}
