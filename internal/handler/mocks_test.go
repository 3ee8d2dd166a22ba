package handler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/wldnd519/BE/internal/jobs"
	"github.com/wldnd519/BE/internal/logging"
	"github.com/wldnd519/BE/internal/middleware"
	"github.com/wldnd519/BE/internal/model"
)

var discard = logging.Discard()

type mockAuth struct{ mock.Mock }

func (m *mockAuth) Register(ctx context.Context, req *model.RegisterRequest) (*model.Senior, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Senior), args.Error(1)
}

func (m *mockAuth) Login(ctx context.Context, req *model.LoginRequest) (*model.TokenPair, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.TokenPair), args.Error(1)
}

func (m *mockAuth) Refresh(ctx context.Context, token string) (*model.TokenPair, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.TokenPair), args.Error(1)
}

func (m *mockAuth) Logout(ctx context.Context, token string) error {
	return m.Called(ctx, token).Error(0)
}

type mockCompanion struct{ mock.Mock }

func (m *mockCompanion) Chat(ctx context.Context, seniorID, message string) (string, error) {
	args := m.Called(ctx, seniorID, message)
	return args.String(0), args.Error(1)
}

func (m *mockCompanion) AnalyzeEmotion(ctx context.Context, seniorID string) (string, error) {
	args := m.Called(ctx, seniorID)
	return args.String(0), args.Error(1)
}

type mockMail struct{ mock.Mock }

func (m *mockMail) SendEmail(ctx context.Context, to, subject, body string) error {
	return m.Called(ctx, to, subject, body).Error(0)
}

type mockBoard struct{ mock.Mock }

func (m *mockBoard) Post(ctx context.Context, seniorID, message string) (*model.RegionMessage, error) {
	args := m.Called(ctx, seniorID, message)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.RegionMessage), args.Error(1)
}

func (m *mockBoard) Feed(ctx context.Context, seniorID string) (*model.RegionFeed, error) {
	args := m.Called(ctx, seniorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.RegionFeed), args.Error(1)
}

type mockCheckIns struct{ mock.Mock }

func (m *mockCheckIns) CheckIn(ctx context.Context, seniorID string) (*model.Senior, error) {
	args := m.Called(ctx, seniorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Senior), args.Error(1)
}

type mockRunner struct{ mock.Mock }

func (m *mockRunner) RunNow(ctx context.Context, name string) (jobs.Report, error) {
	args := m.Called(ctx, name)
	return args.Get(0).(jobs.Report), args.Error(1)
}

func (m *mockRunner) LastReports() map[string]jobs.Report {
	return m.Called().Get(0).(map[string]jobs.Report)
}

type fakeCounter struct {
	n   int
	err error
}

func (f fakeCounter) CountTotal(context.Context) (int, error) { return f.n, f.err }

type fakeHub struct{ sent []*model.WSEvent }

func (h *fakeHub) OnlineCount() int { return 3 }

func (h *fakeHub) OnlineByRegion() map[model.Region]int {
	return map[model.Region]int{model.RegionSeoul: 3}
}

func (h *fakeHub) Broadcast(ev *model.WSEvent) { h.sent = append(h.sent, ev) }

type fakePinger struct{ err error }

func (p fakePinger) Ping(context.Context) error { return p.err }

// asSenior stands in for the auth middleware.
func asSenior(id string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals(middleware.LocalSeniorID, id)
		c.Locals(middleware.LocalName, "tester")
		return c.Next()
	}
}

func do(t *testing.T, app *fiber.App, method, path, body string) (int, map[string]any) {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	out := map[string]any{}
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) > 0 && strings.HasPrefix(resp.Header.Get("Content-Type"), fiber.MIMEApplicationJSON) {
		require.NoError(t, json.Unmarshal(raw, &out))
	}
	return resp.StatusCode, out
}

var errBoom = errors.New("boom")
