package postgresql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/shiftlog-app/shiftlog-backend-go/internal/domain/user"
	"github.com/shiftlog-app/shiftlog-backend-go/internal/pkg/database"
)

type userRepositoryImpl struct {
	db *database.DB
}

func NewUserRepository(db *database.DB) user.UserRepository {
	return &userRepositoryImpl{db: db}
}

const userColumns = `id, email, password_hash, oauth_provider, oauth_provider_id, created_at, updated_at`

func scanUser(row pgx.Row) (user.User, error) {
	var u user.User
	err := row.Scan(
		&u.ID, &u.Email, &u.PasswordHash, &u.OAuthProvider, &u.OAuthProviderID,
		&u.CreatedAt, &u.UpdatedAt,
	)
	return u, err
}

// GetByEmail implements user.UserRepository.
func (r *userRepositoryImpl) GetByEmail(ctx context.Context, email string) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	u, err := scanUser(q.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = $1`, email))
	if err != nil {
		if err == pgx.ErrNoRows {
			return user.User{}, user.ErrUserNotFound
		}
		return user.User{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	return u, nil
}

// GetByID implements user.UserRepository.
func (r *userRepositoryImpl) GetByID(ctx context.Context, id string) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	u, err := scanUser(q.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return user.User{}, user.ErrUserNotFound
		}
		return user.User{}, fmt.Errorf("failed to get user by id: %w", err)
	}

	return u, nil
}

// Create implements user.UserRepository.
func (r *userRepositoryImpl) Create(ctx context.Context, newUser user.User) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO users (id, email, password_hash, oauth_provider, oauth_provider_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		newUser.ID, newUser.Email, newUser.PasswordHash,
		newUser.OAuthProvider, newUser.OAuthProviderID,
	).Scan(&newUser.CreatedAt, &newUser.UpdatedAt)
	if err != nil {
		return user.User{}, fmt.Errorf("failed to create user: %w", err)
	}

	return newUser, nil
}

// ExistsByEmail implements user.UserRepository.
func (r *userRepositoryImpl) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	var exists bool
	err := q.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM users WHERE email = $1)`, email).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check user existence: %w", err)
	}

	return exists, nil
}

// ListIDs implements user.UserRepository.
func (r *userRepositoryImpl) ListIDs(ctx context.Context) ([]string, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `SELECT id FROM users ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("failed to list user ids: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan user id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate user ids: %w", err)
	}

	return ids, nil
}

// LinkGoogleAccount implements user.UserRepository.
func (r *userRepositoryImpl) LinkGoogleAccount(ctx context.Context, googleID string, email string) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE users
		SET oauth_provider = 'google', oauth_provider_id = $1, updated_at = NOW()
		WHERE email = $2
		RETURNING ` + userColumns

	u, err := scanUser(q.QueryRow(ctx, query, googleID, email))
	if err != nil {
		if err == pgx.ErrNoRows {
			return user.User{}, user.ErrUserNotFound
		}
		return user.User{}, fmt.Errorf("failed to link google account: %w", err)
	}

	return u, nil
}
