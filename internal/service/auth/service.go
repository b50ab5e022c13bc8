package auth

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/shiftlog-app/shiftlog-backend-go/internal/domain/auth"
	"github.com/shiftlog-app/shiftlog-backend-go/internal/domain/user"
	"github.com/shiftlog-app/shiftlog-backend-go/internal/pkg/database"
	"github.com/shiftlog-app/shiftlog-backend-go/internal/pkg/jwt"
	"github.com/shiftlog-app/shiftlog-backend-go/internal/repository/postgresql"
)

const googleProvider = "google"

type AuthServiceImpl struct {
	db               *database.DB
	userRepo         user.UserRepository
	refreshTokenRepo postgresql.RefreshTokenRepository
	jwtService       jwt.Service

	// runTx is swappable in tests
	runTx func(ctx context.Context, fn func(tx pgx.Tx) error) error
}

func NewAuthService(
	db *database.DB,
	userRepo user.UserRepository,
	refreshTokenRepo postgresql.RefreshTokenRepository,
	jwtService jwt.Service,
) auth.AuthService {
	return &AuthServiceImpl{
		db:               db,
		userRepo:         userRepo,
		refreshTokenRepo: refreshTokenRepo,
		jwtService:       jwtService,
		runTx: func(ctx context.Context, fn func(tx pgx.Tx) error) error {
			return postgresql.WithTransaction(ctx, db, fn)
		},
	}
}

// Register implements auth.AuthService.
func (a *AuthServiceImpl) Register(ctx context.Context, req auth.RegisterRequest) (auth.TokenResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.TokenResponse{}, err
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	exists, err := a.userRepo.ExistsByEmail(ctx, email)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to check email: %w", err)
	}
	if exists {
		return auth.TokenResponse{}, user.ErrUserEmailExists
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to hash password: %w", err)
	}
	passwordHash := string(hashed)

	var tokenResponse auth.TokenResponse
	err = a.runTx(ctx, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		created, err := a.userRepo.Create(txCtx, user.User{
			ID:           uuid.NewString(),
			Email:        email,
			PasswordHash: &passwordHash,
		})
		if err != nil {
			return fmt.Errorf("failed to create user: %w", err)
		}

		tokenResponse, err = a.issueTokens(txCtx, created)
		return err
	})
	if err != nil {
		return auth.TokenResponse{}, err
	}

	return tokenResponse, nil
}

// Login implements auth.AuthService.
func (a *AuthServiceImpl) Login(ctx context.Context, req auth.LoginRequest) (auth.TokenResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.TokenResponse{}, err
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	userData, err := a.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if err == user.ErrUserNotFound {
			return auth.TokenResponse{}, auth.ErrInvalidCredentials
		}
		return auth.TokenResponse{}, err
	}

	if !userData.HasPassword() {
		return auth.TokenResponse{}, auth.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(*userData.PasswordHash), []byte(req.Password)); err != nil {
		return auth.TokenResponse{}, auth.ErrInvalidCredentials
	}

	var tokenResponse auth.TokenResponse
	err = a.runTx(ctx, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		tokenResponse, err = a.issueTokens(txCtx, userData)
		return err
	})
	if err != nil {
		return auth.TokenResponse{}, err
	}

	return tokenResponse, nil
}

// LoginWithGoogle implements auth.AuthService. The email arrives already
// verified by the OAuth callback handler.
func (a *AuthServiceImpl) LoginWithGoogle(ctx context.Context, email string, googleID string) (auth.TokenResponse, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	var tokenResponse auth.TokenResponse
	err := a.runTx(ctx, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		userData, err := a.userRepo.GetByEmail(txCtx, email)
		switch {
		case err == user.ErrUserNotFound:
			provider := googleProvider
			providerID := googleID
			userData, err = a.userRepo.Create(txCtx, user.User{
				ID:              uuid.NewString(),
				Email:           email,
				OAuthProvider:   &provider,
				OAuthProviderID: &providerID,
			})
			if err != nil {
				return fmt.Errorf("failed to create user from google account: %w", err)
			}
		case err != nil:
			return err
		case userData.OAuthProviderID == nil:
			// First Google sign-in on a password account links the two.
			userData, err = a.userRepo.LinkGoogleAccount(txCtx, googleID, email)
			if err != nil {
				return fmt.Errorf("failed to link google account: %w", err)
			}
		}

		tokenResponse, err = a.issueTokens(txCtx, userData)
		return err
	})
	if err != nil {
		return auth.TokenResponse{}, err
	}

	return tokenResponse, nil
}

// RefreshToken implements auth.AuthService. The refresh token itself is not
// rotated; only a fresh access token is issued.
func (a *AuthServiceImpl) RefreshToken(ctx context.Context, req auth.RefreshTokenRequest) (auth.AccessTokenResponse, error) {
	if req.RefreshToken == "" {
		return auth.AccessTokenResponse{}, auth.ErrInvalidToken
	}

	userID, err := a.refreshTokenRepo.GetUserIDByToken(ctx, req.RefreshToken)
	if err != nil {
		return auth.AccessTokenResponse{}, err
	}

	userData, err := a.userRepo.GetByID(ctx, userID)
	if err != nil {
		if err == user.ErrUserNotFound {
			return auth.AccessTokenResponse{}, auth.ErrUserNotFound
		}
		return auth.AccessTokenResponse{}, err
	}

	accessToken, expiresAt, err := a.jwtService.GenerateAccessToken(userData.ID, userData.Email)
	if err != nil {
		return auth.AccessTokenResponse{}, fmt.Errorf("failed to create access token: %w", err)
	}

	return auth.AccessTokenResponse{
		AccessToken:          accessToken,
		AccessTokenExpiresIn: expiresAt,
	}, nil
}

// Logout implements auth.AuthService. Revoking an already revoked or unknown
// token is not an error; logout is idempotent.
func (a *AuthServiceImpl) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}

	return a.refreshTokenRepo.RevokeRefreshToken(ctx, refreshToken)
}

// issueTokens creates an access and refresh token pair and stores the
// refresh token hash for later revocation.
func (a *AuthServiceImpl) issueTokens(ctx context.Context, userData user.User) (auth.TokenResponse, error) {
	var tokenResponse auth.TokenResponse
	var err error

	tokenResponse.AccessToken, tokenResponse.AccessTokenExpiresIn, err = a.jwtService.GenerateAccessToken(userData.ID, userData.Email)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to create access token: %w", err)
	}

	tokenResponse.RefreshToken, tokenResponse.RefreshTokenExpiresIn, err = a.jwtService.GenerateRefreshToken(userData.ID)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to create refresh token: %w", err)
	}

	err = a.refreshTokenRepo.CreateRefreshToken(ctx, userData.ID, tokenResponse.RefreshToken, tokenResponse.RefreshTokenExpiresIn)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to store refresh token: %w", err)
	}

	return tokenResponse, nil
}
