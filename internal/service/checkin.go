package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/wldnd519/BE/internal/model"
	"github.com/wldnd519/BE/internal/repository"
)

type CheckInService struct {
	seniors SeniorStore
	now     func() time.Time
}

func NewCheckInService(seniors SeniorStore) *CheckInService {
	return &CheckInService{seniors: seniors, now: time.Now}
}

// CheckIn records that the senior is alive and well right now.
func (s *CheckInService) CheckIn(ctx context.Context, seniorID string) (*model.Senior, error) {
	senior, err := s.seniors.TouchCheckIn(ctx, seniorID, s.now())
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrSeniorNotFound
		}
		return nil, fmt.Errorf("touch check-in: %w", err)
	}
	return senior, nil
}
