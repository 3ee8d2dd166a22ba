package jobs

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockSessions struct{ mock.Mock }

func (m *mockSessions) CleanupExpired(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func TestSessionCleanup_ReportsRemovedRows(t *testing.T) {
	sessions := new(mockSessions)
	sessions.On("CleanupExpired", mock.Anything).Return(int64(7), nil).Once()

	rep := NewSessionCleanup(sessions, fixedClock(runAt), discard).Run(context.Background())

	require.NoError(t, rep.Err)
	assert.Equal(t, JobSessionCleanup, rep.Job)
	assert.Equal(t, int64(7), rep.Removed)
	assert.Empty(t, rep.Items)
	sessions.AssertExpectations(t)
}

func TestSessionCleanup_Failure(t *testing.T) {
	sessions := new(mockSessions)
	sessions.On("CleanupExpired", mock.Anything).Return(int64(0), errors.New("db down"))

	rep := NewSessionCleanup(sessions, fixedClock(runAt), discard).Run(context.Background())

	assert.EqualError(t, rep.Err, "db down")
	assert.Equal(t, "db down", rep.Error)
	assert.Zero(t, rep.Removed)
}

func TestSessionCleanup_RegistersOnScheduler(t *testing.T) {
	s := NewScheduler(fixedClock(runAt), discard)
	sessions := new(mockSessions)
	sessions.On("CleanupExpired", mock.Anything).Return(int64(2), nil)
	require.NoError(t, s.Register(NewSessionCleanup(sessions, nil, discard), "0 4 * * *"))

	rep, err := s.RunNow(context.Background(), JobSessionCleanup)
	require.NoError(t, err)
	assert.Equal(t, int64(2), rep.Removed)
	assert.WithinDuration(t, time.Now(), rep.FinishedAt, time.Minute)
}
