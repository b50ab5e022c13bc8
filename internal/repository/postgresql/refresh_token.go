package postgresql

import (
	"context"
	"crypto/sha256"
	"encoding/base64"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/shiftlog-app/shiftlog-backend-go/internal/domain/auth"
	"github.com/shiftlog-app/shiftlog-backend-go/internal/pkg/database"
)

// RefreshTokenRepository stores hashed refresh tokens so they can be
// revoked server-side.
type RefreshTokenRepository interface {
	CreateRefreshToken(ctx context.Context, userID string, token string, expiresAt int64) error
	GetUserIDByToken(ctx context.Context, token string) (string, error)
	RevokeRefreshToken(ctx context.Context, token string) error
}

type refreshTokenRepositoryImpl struct {
	db *database.DB
}

func NewRefreshTokenRepository(db *database.DB) RefreshTokenRepository {
	return &refreshTokenRepositoryImpl{db: db}
}

// hashToken hashes the input string using SHA256 and encodes the result in base64.
func (r *refreshTokenRepositoryImpl) hashToken(input string) string {
	hash := sha256.Sum256([]byte(input))
	return base64.StdEncoding.EncodeToString(hash[:])
}

func (r *refreshTokenRepositoryImpl) CreateRefreshToken(ctx context.Context, userID string, token string, expiresAt int64) error {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO refresh_tokens (user_id, token_hash, expires_at)
		VALUES ($1, $2, $3)
	`
	_, err := q.Exec(ctx, query, userID, r.hashToken(token), time.Unix(expiresAt, 0).UTC())
	return err
}

// GetUserIDByToken returns the owner of a live refresh token;
// auth.ErrRefreshTokenRevoked when the token is revoked or expired,
// auth.ErrInvalidToken when it was never issued.
func (r *refreshTokenRepositoryImpl) GetUserIDByToken(ctx context.Context, token string) (string, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT user_id, revoked_at, expires_at
		FROM refresh_tokens
		WHERE token_hash = $1
		ORDER BY expires_at DESC
		LIMIT 1
	`

	var userID string
	var revokedAt *time.Time
	var expiresAt time.Time

	err := q.QueryRow(ctx, query, r.hashToken(token)).Scan(&userID, &revokedAt, &expiresAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return "", auth.ErrInvalidToken
		}
		return "", err
	}

	if revokedAt != nil || !expiresAt.After(time.Now()) {
		return "", auth.ErrRefreshTokenRevoked
	}

	return userID, nil
}

func (r *refreshTokenRepositoryImpl) RevokeRefreshToken(ctx context.Context, token string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE refresh_tokens
		SET revoked_at = NOW()
		WHERE token_hash = $1 AND revoked_at IS NULL
	`
	_, err := q.Exec(ctx, query, r.hashToken(token))
	return err
}
