package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"blogpress-backend/internal/domains/otp"
)

type postgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository tạo repository instance
func NewPostgresRepository(pool *pgxpool.Pool) otp.Repository {
	return &postgresRepository{pool: pool}
}

func (r *postgresRepository) Create(ctx context.Context, o *otp.OTP) error {
	query := `
		INSERT INTO otps (id, email, code, type, expires_at, verified, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.pool.Exec(ctx, query,
		o.ID,
		o.Email,
		o.Code,
		o.Type,
		o.ExpiresAt,
		o.Verified,
		o.CreatedAt,
		o.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert otp: %w", err)
	}

	return nil
}

func (r *postgresRepository) FindActiveByCode(ctx context.Context, code string, t otp.Type) (*otp.OTP, error) {
	query := `
		SELECT id, email, code, type, expires_at, verified, created_at, updated_at
		FROM otps
		WHERE code = $1 AND type = $2 AND verified = FALSE AND expires_at > NOW()
		ORDER BY created_at DESC
		LIMIT 1
	`

	return r.scanOne(ctx, query, code, t)
}

func (r *postgresRepository) FindActiveByEmailAndCode(ctx context.Context, email, code string, t otp.Type) (*otp.OTP, error) {
	query := `
		SELECT id, email, code, type, expires_at, verified, created_at, updated_at
		FROM otps
		WHERE email = LOWER($1) AND code = $2 AND type = $3 AND verified = FALSE AND expires_at > NOW()
		ORDER BY created_at DESC
		LIMIT 1
	`

	return r.scanOne(ctx, query, email, code, t)
}

func (r *postgresRepository) MarkVerified(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE otps SET verified = TRUE, updated_at = NOW() WHERE id = $1`

	tag, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("mark otp verified: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return otp.ErrOTPNotFound
	}

	return nil
}

func (r *postgresRepository) DeleteUnverified(ctx context.Context, email string, t otp.Type) error {
	query := `DELETE FROM otps WHERE email = LOWER($1) AND type = $2 AND verified = FALSE`

	if _, err := r.pool.Exec(ctx, query, email, t); err != nil {
		return fmt.Errorf("delete unverified otps: %w", err)
	}

	return nil
}

func (r *postgresRepository) DeleteExpired(ctx context.Context) (int64, error) {
	query := `DELETE FROM otps WHERE expires_at <= NOW()`

	tag, err := r.pool.Exec(ctx, query)
	if err != nil {
		return 0, fmt.Errorf("delete expired otps: %w", err)
	}

	return tag.RowsAffected(), nil
}

func (r *postgresRepository) scanOne(ctx context.Context, query string, args ...interface{}) (*otp.OTP, error) {
	var o otp.OTP
	err := r.pool.QueryRow(ctx, query, args...).Scan(
		&o.ID,
		&o.Email,
		&o.Code,
		&o.Type,
		&o.ExpiresAt,
		&o.Verified,
		&o.CreatedAt,
		&o.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, otp.ErrOTPNotFound
		}
		return nil, fmt.Errorf("query otp: %w", err)
	}

	return &o, nil
}
