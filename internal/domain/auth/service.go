package auth

import (
	"context"
)

type AuthService interface {
	Register(ctx context.Context, req RegisterRequest) (TokenResponse, error)
	Login(ctx context.Context, req LoginRequest) (TokenResponse, error)

	// LoginWithGoogle resolves a verified Google account to a local user,
	// creating one on first sign-in, and issues tokens.
	LoginWithGoogle(ctx context.Context, email string, googleID string) (TokenResponse, error)

	RefreshToken(ctx context.Context, req RefreshTokenRequest) (AccessTokenResponse, error)
	Logout(ctx context.Context, refreshToken string) error
}
