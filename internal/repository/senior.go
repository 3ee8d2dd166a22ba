package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/wldnd519/BE/internal/model"
)

const seniorColumns = `id, name, password_hash, guardian_contact, guardian_email, last_check_in, region, created_at`

type SeniorRepository struct {
	db DBTX
}

func NewSeniorRepository(db DBTX) *SeniorRepository {
	return &SeniorRepository{db: db}
}

func (r *SeniorRepository) Create(ctx context.Context, in model.NewSenior) (*model.Senior, error) {
	if !in.Region.Valid() {
		return nil, model.ErrInvalidRegion
	}

	row := r.db.QueryRow(ctx, `
		INSERT INTO seniors (id, name, password_hash, guardian_contact, guardian_email, region)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+seniorColumns,
		uuid.NewString(), in.Name, in.PasswordHash, in.GuardianContact, in.GuardianEmail, string(in.Region))

	s, err := scanSenior(row)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicate
		}
		return nil, err
	}
	return s, nil
}

func (r *SeniorRepository) GetByID(ctx context.Context, id string) (*model.Senior, error) {
	return r.getOne(ctx, `SELECT `+seniorColumns+` FROM seniors WHERE id = $1`, id)
}

func (r *SeniorRepository) GetByName(ctx context.Context, name string) (*model.Senior, error) {
	return r.getOne(ctx, `SELECT `+seniorColumns+` FROM seniors WHERE name = $1`, name)
}

// TouchCheckIn stamps the senior's last check-in and returns the updated row.
func (r *SeniorRepository) TouchCheckIn(ctx context.Context, id string, at time.Time) (*model.Senior, error) {
	return r.getOne(ctx, `
		UPDATE seniors SET last_check_in = $2 WHERE id = $1
		RETURNING `+seniorColumns, id, at)
}

// ListPage returns up to limit seniors ordered by id, starting after afterID.
// An empty afterID starts from the beginning.
func (r *SeniorRepository) ListPage(ctx context.Context, afterID string, limit int) ([]model.Senior, error) {
	if limit <= 0 {
		return nil, fmt.Errorf("list seniors: limit must be positive, got %d", limit)
	}

	var (
		rows pgx.Rows
		err  error
	)
	if afterID == "" {
		rows, err = r.db.Query(ctx, `SELECT `+seniorColumns+` FROM seniors ORDER BY id LIMIT $1`, limit)
	} else {
		rows, err = r.db.Query(ctx, `SELECT `+seniorColumns+` FROM seniors WHERE id > $1 ORDER BY id LIMIT $2`, afterID, limit)
	}
	if err != nil {
		return nil, fmt.Errorf("list seniors: %w", err)
	}
	defer rows.Close()

	var out []model.Senior
	for rows.Next() {
		s, err := scanSenior(rows)
		if err != nil {
			return nil, fmt.Errorf("scan senior: %w", err)
		}
		out = append(out, *s)
	}
	return out, rows.Err()
}

func (r *SeniorRepository) CountTotal(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM seniors`).Scan(&count)
	return count, err
}

func (r *SeniorRepository) getOne(ctx context.Context, sql string, args ...any) (*model.Senior, error) {
	s, err := scanSenior(r.db.QueryRow(ctx, sql, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return s, err
}

func scanSenior(row pgx.Row) (*model.Senior, error) {
	var (
		s      model.Senior
		region string
	)
	if err := row.Scan(&s.ID, &s.Name, &s.PasswordHash, &s.GuardianContact, &s.GuardianEmail,
		&s.LastCheckIn, &region, &s.CreatedAt); err != nil {
		return nil, err
	}
	r, err := model.ParseRegion(region)
	if err != nil {
		return nil, fmt.Errorf("senior %s: %w: %q", s.ID, err, region)
	}
	s.Region = r
	return &s, nil
}
