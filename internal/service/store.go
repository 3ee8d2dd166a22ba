package service

import (
	"context"
	"time"

	"github.com/wldnd519/BE/internal/model"
)

// Stores the services depend on. The pgx repositories satisfy them.

type SeniorStore interface {
	Create(ctx context.Context, in model.NewSenior) (*model.Senior, error)
	GetByID(ctx context.Context, id string) (*model.Senior, error)
	GetByName(ctx context.Context, name string) (*model.Senior, error)
	TouchCheckIn(ctx context.Context, id string, at time.Time) (*model.Senior, error)
}

type SessionStore interface {
	StoreRefreshToken(ctx context.Context, seniorID, tokenHash string, expiresAt time.Time) error
	ValidateRefreshToken(ctx context.Context, tokenHash string) (string, error)
	RevokeRefreshToken(ctx context.Context, tokenHash string) error
}

type ChatStore interface {
	Insert(ctx context.Context, seniorID, userMessage, botReply string) (*model.ChatLog, error)
	Recent(ctx context.Context, seniorID string, limit int) ([]model.ChatLog, error)
}

type RegionStore interface {
	Insert(ctx context.Context, region model.Region, seniorID, seniorName, message string) (*model.RegionMessage, error)
	ListByRegion(ctx context.Context, region model.Region) ([]model.RegionMessage, error)
}
