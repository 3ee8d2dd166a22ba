package jobs

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/wldnd519/BE/internal/ai"
	"github.com/wldnd519/BE/internal/logging"
	"github.com/wldnd519/BE/internal/model"
)

type mockSeniors struct{ mock.Mock }

func (m *mockSeniors) ListPage(ctx context.Context, afterID string, limit int) ([]model.Senior, error) {
	args := m.Called(ctx, afterID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Senior), args.Error(1)
}

type mockChats struct{ mock.Mock }

func (m *mockChats) ListBetween(ctx context.Context, seniorID string, from, to time.Time) ([]model.ChatLog, error) {
	args := m.Called(ctx, seniorID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.ChatLog), args.Error(1)
}

type mockSMS struct{ mock.Mock }

func (m *mockSMS) SendSMS(ctx context.Context, to, text string) error {
	return m.Called(ctx, to, text).Error(0)
}

type mockMail struct{ mock.Mock }

func (m *mockMail) SendEmail(ctx context.Context, to, subject, body string) error {
	return m.Called(ctx, to, subject, body).Error(0)
}

type mockAI struct{ mock.Mock }

func (m *mockAI) Complete(ctx context.Context, messages []ai.Message) (string, error) {
	args := m.Called(ctx, messages)
	return args.String(0), args.Error(1)
}

var discard = logging.Discard()

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func ptr(t time.Time) *time.Time { return &t }

// withSystemPrompt matches a prompt whose first message carries instruction.
func withSystemPrompt(instruction string) any {
	return mock.MatchedBy(func(msgs []ai.Message) bool {
		return len(msgs) > 0 && msgs[0].Role == ai.RoleSystem && msgs[0].Content == instruction
	})
}
