package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/wldnd519/BE/internal/model"
)

var ErrEmptyMessage = errors.New("message is empty")

type RegionMessageRepository struct {
	db DBTX
}

func NewRegionMessageRepository(db DBTX) *RegionMessageRepository {
	return &RegionMessageRepository{db: db}
}

func (r *RegionMessageRepository) Insert(ctx context.Context, region model.Region, seniorID, seniorName, message string) (*model.RegionMessage, error) {
	if !region.Valid() {
		return nil, model.ErrInvalidRegion
	}
	if strings.TrimSpace(message) == "" {
		return nil, ErrEmptyMessage
	}

	m := model.RegionMessage{Region: region}
	err := r.db.QueryRow(ctx, `
		INSERT INTO region_messages (id, region, senior_id, senior_name, message)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, senior_id, senior_name, message, created_at
	`, uuid.NewString(), string(region), seniorID, seniorName, message).Scan(&m.ID, &m.SeniorID, &m.SeniorName, &m.Message, &m.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// ListByRegion returns every message posted to region, oldest first.
func (r *RegionMessageRepository) ListByRegion(ctx context.Context, region model.Region) ([]model.RegionMessage, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, senior_id, senior_name, message, created_at
		FROM region_messages
		WHERE region = $1
		ORDER BY created_at ASC
	`, string(region))
	if err != nil {
		return nil, fmt.Errorf("list region messages: %w", err)
	}
	defer rows.Close()

	msgs := []model.RegionMessage{}
	for rows.Next() {
		m := model.RegionMessage{Region: region}
		if err := rows.Scan(&m.ID, &m.SeniorID, &m.SeniorName, &m.Message, &m.CreatedAt); err != nil {
			return nil, err
		}
		msgs = append(msgs, m)
	}
	return msgs, rows.Err()
}
