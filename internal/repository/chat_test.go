package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wldnd519/BE/internal/model"
)

var chatCols = []string{"id", "senior_id", "user_message", "bot_reply", "created_at"}

func TestChatLogRepository_Insert(t *testing.T) {
	mock := newMock(t)
	repo := NewChatLogRepository(mock)
	at := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO chat_logs")).
		WithArgs(pgxmock.AnyArg(), "s1", "안녕하세요", "반갑습니다").
		WillReturnRows(pgxmock.NewRows(chatCols).AddRow("c1", "s1", "안녕하세요", "반갑습니다", at))

	c, err := repo.Insert(context.Background(), "s1", "안녕하세요", "반갑습니다")
	require.NoError(t, err)
	assert.Equal(t, "c1", c.ID)
	assert.Equal(t, at, c.CreatedAt)
}

func TestChatLogRepository_Insert_RejectsEmptyReply(t *testing.T) {
	repo := NewChatLogRepository(newMock(t))
	_, err := repo.Insert(context.Background(), "s1", "hi", "  ")
	assert.ErrorIs(t, err, ErrEmptyTurn)
}

func TestChatLogRepository_ListBetween(t *testing.T) {
	mock := newMock(t)
	repo := NewChatLogRepository(mock)
	from := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	to := from.Add(24 * time.Hour)

	mock.ExpectQuery(regexp.QuoteMeta("created_at >= $2 AND created_at < $3")).
		WithArgs("s1", from, to).
		WillReturnRows(pgxmock.NewRows(chatCols).
			AddRow("c1", "s1", "first", "r1", from.Add(time.Hour)).
			AddRow("c2", "s1", "second", "r2", from.Add(2*time.Hour)))

	logs, err := repo.ListBetween(context.Background(), "s1", from, to)
	require.NoError(t, err)
	require.Len(t, logs, 2)
	assert.Equal(t, "first", logs[0].UserMessage)
	assert.Equal(t, "second", logs[1].UserMessage)
}

func TestChatLogRepository_Recent_ReturnsOldestFirst(t *testing.T) {
	mock := newMock(t)
	repo := NewChatLogRepository(mock)
	base := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY created_at DESC")).
		WithArgs("s1", 10).
		WillReturnRows(pgxmock.NewRows(chatCols).
			AddRow("c3", "s1", "third", "r3", base.Add(3*time.Hour)).
			AddRow("c2", "s1", "second", "r2", base.Add(2*time.Hour)).
			AddRow("c1", "s1", "first", "r1", base.Add(time.Hour)))

	logs, err := repo.Recent(context.Background(), "s1", 0)
	require.NoError(t, err)
	got := make([]string, len(logs))
	for i, l := range logs {
		got[i] = l.UserMessage
	}
	assert.Equal(t, []string{"first", "second", "third"}, got)
}

func TestRegionMessageRepository_InsertAndList(t *testing.T) {
	mock := newMock(t)
	repo := NewRegionMessageRepository(mock)
	at := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	cols := []string{"id", "senior_id", "senior_name", "message", "created_at"}

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO region_messages")).
		WithArgs(pgxmock.AnyArg(), "부산", "s1", "박철수", "오늘 날씨 좋네요").
		WillReturnRows(pgxmock.NewRows(cols).AddRow("m1", "s1", "박철수", "오늘 날씨 좋네요", at))
	mock.ExpectQuery(regexp.QuoteMeta("WHERE region = $1")).
		WithArgs("부산").
		WillReturnRows(pgxmock.NewRows(cols).AddRow("m1", "s1", "박철수", "오늘 날씨 좋네요", at))

	m, err := repo.Insert(context.Background(), model.RegionBusan, "s1", "박철수", "오늘 날씨 좋네요")
	require.NoError(t, err)
	assert.Equal(t, model.RegionBusan, m.Region)

	msgs, err := repo.ListByRegion(context.Background(), model.RegionBusan)
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	assert.Equal(t, "박철수", msgs[0].SeniorName)
	assert.Equal(t, model.RegionBusan, msgs[0].Region)
}

func TestRegionMessageRepository_InsertValidation(t *testing.T) {
	repo := NewRegionMessageRepository(newMock(t))

	_, err := repo.Insert(context.Background(), "평양", "s1", "n", "hi")
	assert.ErrorIs(t, err, model.ErrInvalidRegion)

	_, err = repo.Insert(context.Background(), model.RegionSeoul, "s1", "n", " ")
	assert.ErrorIs(t, err, ErrEmptyMessage)
}

func TestSessionRepository(t *testing.T) {
	mock := newMock(t)
	repo := NewSessionRepository(mock)
	exp := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO refresh_tokens")).
		WithArgs("s1", "hash", exp).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT senior_id FROM refresh_tokens")).
		WithArgs("hash").
		WillReturnRows(pgxmock.NewRows([]string{"senior_id"}).AddRow("s1"))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE refresh_tokens SET revoked = TRUE")).
		WithArgs("hash").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	require.NoError(t, repo.StoreRefreshToken(context.Background(), "s1", "hash", exp))
	id, err := repo.ValidateRefreshToken(context.Background(), "hash")
	require.NoError(t, err)
	assert.Equal(t, "s1", id)
	require.NoError(t, repo.RevokeRefreshToken(context.Background(), "hash"))
}
