package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/wldnd519/BE/internal/model"
	"github.com/wldnd519/BE/internal/repository"
)

type RegionBroadcaster interface {
	BroadcastToRegion(region model.Region, event *model.WSEvent)
}

// RegionService runs the per-region message board.
type RegionService struct {
	seniors  SeniorStore
	messages RegionStore
	hub      RegionBroadcaster
}

func NewRegionService(seniors SeniorStore, messages RegionStore, hub RegionBroadcaster) *RegionService {
	return &RegionService{seniors: seniors, messages: messages, hub: hub}
}

// Post stores message on the author's region board with a snapshot of their
// name, then pushes it to connected members of that region.
func (s *RegionService) Post(ctx context.Context, seniorID, message string) (*model.RegionMessage, error) {
	if strings.TrimSpace(message) == "" {
		return nil, ErrEmptyMessage
	}
	senior, err := s.lookup(ctx, seniorID)
	if err != nil {
		return nil, err
	}

	msg, err := s.messages.Insert(ctx, senior.Region, senior.ID, senior.Name, message)
	if err != nil {
		if errors.Is(err, repository.ErrEmptyMessage) {
			return nil, ErrEmptyMessage
		}
		return nil, fmt.Errorf("insert region message: %w", err)
	}

	if s.hub != nil {
		data, _ := json.Marshal(msg)
		s.hub.BroadcastToRegion(msg.Region, &model.WSEvent{Type: model.WSEventRegionMessage, Data: data})
	}
	return msg, nil
}

// Feed returns the caller's region and its messages, oldest first.
func (s *RegionService) Feed(ctx context.Context, seniorID string) (*model.RegionFeed, error) {
	senior, err := s.lookup(ctx, seniorID)
	if err != nil {
		return nil, err
	}
	msgs, err := s.messages.ListByRegion(ctx, senior.Region)
	if err != nil {
		return nil, fmt.Errorf("list region messages: %w", err)
	}
	return &model.RegionFeed{Region: senior.Region, Messages: msgs}, nil
}

// RegionOf resolves the senior's region, used to scope websocket subscriptions.
func (s *RegionService) RegionOf(ctx context.Context, seniorID string) (model.Region, error) {
	senior, err := s.lookup(ctx, seniorID)
	if err != nil {
		return "", err
	}
	return senior.Region, nil
}

func (s *RegionService) lookup(ctx context.Context, seniorID string) (*model.Senior, error) {
	senior, err := s.seniors.GetByID(ctx, seniorID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrSeniorNotFound
		}
		return nil, fmt.Errorf("get senior: %w", err)
	}
	return senior, nil
}
