package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/wldnd519/BE/internal/model"
)

var ErrEmptyTurn = errors.New("chat turn needs both a user message and a reply")

type ChatLogRepository struct {
	db DBTX
}

func NewChatLogRepository(db DBTX) *ChatLogRepository {
	return &ChatLogRepository{db: db}
}

// Insert stores a single turn. created_at is assigned by the database.
func (r *ChatLogRepository) Insert(ctx context.Context, seniorID, userMessage, botReply string) (*model.ChatLog, error) {
	if strings.TrimSpace(userMessage) == "" || strings.TrimSpace(botReply) == "" {
		return nil, ErrEmptyTurn
	}

	var c model.ChatLog
	err := r.db.QueryRow(ctx, `
		INSERT INTO chat_logs (id, senior_id, user_message, bot_reply)
		VALUES ($1, $2, $3, $4)
		RETURNING id, senior_id, user_message, bot_reply, created_at
	`, uuid.NewString(), seniorID, userMessage, botReply).Scan(&c.ID, &c.SeniorID, &c.UserMessage, &c.BotReply, &c.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// ListBetween returns the senior's turns with from <= created_at < to, oldest first.
func (r *ChatLogRepository) ListBetween(ctx context.Context, seniorID string, from, to time.Time) ([]model.ChatLog, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, senior_id, user_message, bot_reply, created_at
		FROM chat_logs
		WHERE senior_id = $1 AND created_at >= $2 AND created_at < $3
		ORDER BY created_at ASC
	`, seniorID, from, to)
	if err != nil {
		return nil, fmt.Errorf("list chat logs: %w", err)
	}
	return collectChatLogs(rows)
}

// Recent returns the senior's latest limit turns, oldest first.
func (r *ChatLogRepository) Recent(ctx context.Context, seniorID string, limit int) ([]model.ChatLog, error) {
	if limit <= 0 || limit > 100 {
		limit = 10
	}

	rows, err := r.db.Query(ctx, `
		SELECT id, senior_id, user_message, bot_reply, created_at
		FROM chat_logs
		WHERE senior_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`, seniorID, limit)
	if err != nil {
		return nil, fmt.Errorf("recent chat logs: %w", err)
	}
	logs, err := collectChatLogs(rows)
	if err != nil {
		return nil, err
	}

	for i, j := 0, len(logs)-1; i < j; i, j = i+1, j-1 {
		logs[i], logs[j] = logs[j], logs[i]
	}
	return logs, nil
}

func collectChatLogs(rows pgx.Rows) ([]model.ChatLog, error) {
	defer rows.Close()

	var logs []model.ChatLog
	for rows.Next() {
		var c model.ChatLog
		if err := rows.Scan(&c.ID, &c.SeniorID, &c.UserMessage, &c.BotReply, &c.CreatedAt); err != nil {
			return nil, err
		}
		logs = append(logs, c)
	}
	return logs, rows.Err()
}
