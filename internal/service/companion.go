package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/wldnd519/BE/internal/ai"
)

var (
	ErrEmptyMessage = errors.New("message is empty")
	ErrEmptyReply   = errors.New("model returned no reply")
	ErrNoHistory    = errors.New("no conversation history")
)

// analysisWindow is how many recent turns the on-demand emotion analysis reads.
const analysisWindow = 10

// CompanionService is the chat partner: it relays the senior's words to the
// model and keeps every completed turn.
type CompanionService struct {
	chats  ChatStore
	ai     ai.Client
	logger *slog.Logger
}

func NewCompanionService(chats ChatStore, client ai.Client, logger *slog.Logger) *CompanionService {
	return &CompanionService{chats: chats, ai: client, logger: logger.With("component", "companion")}
}

// Chat answers one message. Nothing is stored unless the model replied.
func (s *CompanionService) Chat(ctx context.Context, seniorID, message string) (string, error) {
	if strings.TrimSpace(message) == "" {
		return "", ErrEmptyMessage
	}

	reply, err := s.ai.Complete(ctx, []ai.Message{{Role: ai.RoleUser, Content: message}})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if reply == "" {
		return "", ErrEmptyReply
	}

	if _, err := s.chats.Insert(ctx, seniorID, message, reply); err != nil {
		return "", fmt.Errorf("save chat turn: %w", err)
	}
	return reply, nil
}

// AnalyzeEmotion reads the latest turns, oldest first, and asks the model for
// the senior's current mood.
func (s *CompanionService) AnalyzeEmotion(ctx context.Context, seniorID string) (string, error) {
	turns, err := s.chats.Recent(ctx, seniorID, analysisWindow)
	if err != nil {
		return "", fmt.Errorf("load recent turns: %w", err)
	}
	if len(turns) == 0 {
		return "", ErrNoHistory
	}

	out, err := s.ai.Complete(ctx, ai.ConversationPrompt(ai.AnalystInstruction, turns))
	if err != nil {
		return "", fmt.Errorf("emotion analysis: %w", err)
	}
	if out == "" {
		return "", ErrEmptyReply
	}
	s.logger.Debug("emotion analysed", "senior_id", seniorID, "turns", len(turns))
	return out, nil
}

