package repository

import (
	"context"
	"errors"
	"fmt"

	pgx "github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"github.com/recipevault/backend/internal/auth/domain"
)

var ErrTokenNotFound = errors.New("auth token not found")

type TokenRepository interface {
	Replace(ctx context.Context, token domain.AuthToken) error
	FindByTokenHash(ctx context.Context, hash string) (domain.AuthToken, error)
}

type PgTokenRepository struct {
	pool *pgxpool.Pool
}

func NewPgTokenRepository(pool *pgxpool.Pool) *PgTokenRepository {
	return &PgTokenRepository{pool: pool}
}

// Replace upserts the single active token row for the user; concurrent
// issuance is last-writer-wins on the user_id uniqueness.
func (r *PgTokenRepository) Replace(ctx context.Context, token domain.AuthToken) error {
	_, err := r.pool.Exec(
		ctx,
		`INSERT INTO auth_tokens (id, user_id, token_hash, created_at)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (user_id)
		 DO UPDATE SET token_hash = EXCLUDED.token_hash, created_at = EXCLUDED.created_at`,
		token.ID,
		token.UserID,
		token.TokenHash,
		token.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to replace auth token: %w", err)
	}
	return nil
}

func (r *PgTokenRepository) FindByTokenHash(ctx context.Context, hash string) (domain.AuthToken, error) {
	row := r.pool.QueryRow(
		ctx,
		`SELECT id, user_id, token_hash, created_at FROM auth_tokens WHERE token_hash = $1`,
		hash,
	)

	var token domain.AuthToken
	err := row.Scan(&token.ID, &token.UserID, &token.TokenHash, &token.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.AuthToken{}, ErrTokenNotFound
		}
		return domain.AuthToken{}, fmt.Errorf("failed to find auth token: %w", err)
	}

	return token, nil
}
