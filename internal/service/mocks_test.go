package service

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/wldnd519/BE/internal/ai"
	"github.com/wldnd519/BE/internal/logging"
	"github.com/wldnd519/BE/internal/model"
)

type mockSeniors struct{ mock.Mock }

func (m *mockSeniors) Create(ctx context.Context, in model.NewSenior) (*model.Senior, error) {
	args := m.Called(ctx, in)
	return seniorOrNil(args.Get(0)), args.Error(1)
}

func (m *mockSeniors) GetByID(ctx context.Context, id string) (*model.Senior, error) {
	args := m.Called(ctx, id)
	return seniorOrNil(args.Get(0)), args.Error(1)
}

func (m *mockSeniors) GetByName(ctx context.Context, name string) (*model.Senior, error) {
	args := m.Called(ctx, name)
	return seniorOrNil(args.Get(0)), args.Error(1)
}

func (m *mockSeniors) TouchCheckIn(ctx context.Context, id string, at time.Time) (*model.Senior, error) {
	args := m.Called(ctx, id, at)
	return seniorOrNil(args.Get(0)), args.Error(1)
}

func seniorOrNil(v any) *model.Senior {
	if v == nil {
		return nil
	}
	return v.(*model.Senior)
}

type mockSessions struct{ mock.Mock }

func (m *mockSessions) StoreRefreshToken(ctx context.Context, seniorID, tokenHash string, expiresAt time.Time) error {
	return m.Called(ctx, seniorID, tokenHash, expiresAt).Error(0)
}

func (m *mockSessions) ValidateRefreshToken(ctx context.Context, tokenHash string) (string, error) {
	args := m.Called(ctx, tokenHash)
	return args.String(0), args.Error(1)
}

func (m *mockSessions) RevokeRefreshToken(ctx context.Context, tokenHash string) error {
	return m.Called(ctx, tokenHash).Error(0)
}

type mockChats struct{ mock.Mock }

func (m *mockChats) Insert(ctx context.Context, seniorID, userMessage, botReply string) (*model.ChatLog, error) {
	args := m.Called(ctx, seniorID, userMessage, botReply)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ChatLog), args.Error(1)
}

func (m *mockChats) Recent(ctx context.Context, seniorID string, limit int) ([]model.ChatLog, error) {
	args := m.Called(ctx, seniorID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.ChatLog), args.Error(1)
}

type mockRegionStore struct{ mock.Mock }

func (m *mockRegionStore) Insert(ctx context.Context, region model.Region, seniorID, seniorName, message string) (*model.RegionMessage, error) {
	args := m.Called(ctx, region, seniorID, seniorName, message)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.RegionMessage), args.Error(1)
}

func (m *mockRegionStore) ListByRegion(ctx context.Context, region model.Region) ([]model.RegionMessage, error) {
	args := m.Called(ctx, region)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.RegionMessage), args.Error(1)
}

type mockAI struct{ mock.Mock }

func (m *mockAI) Complete(ctx context.Context, messages []ai.Message) (string, error) {
	args := m.Called(ctx, messages)
	return args.String(0), args.Error(1)
}

type recordingHub struct {
	region model.Region
	events []*model.WSEvent
}

func (h *recordingHub) BroadcastToRegion(region model.Region, event *model.WSEvent) {
	h.region = region
	h.events = append(h.events, event)
}

var discard = logging.Discard()
