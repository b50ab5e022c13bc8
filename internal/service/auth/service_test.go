package auth

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/shiftlog-app/shiftlog-backend-go/internal/domain/auth"
	"github.com/shiftlog-app/shiftlog-backend-go/internal/domain/user"
	"github.com/shiftlog-app/shiftlog-backend-go/internal/pkg/jwt"
)

const (
	testSecret     = "test-secret-key-for-jwt"
	testAccessExp  = "1h"
	testRefreshExp = "24h"
)

type fakeUserRepo struct {
	users map[string]user.User // keyed by id
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]user.User)}
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (user.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return user.User{}, user.ErrUserNotFound
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (user.User, error) {
	u, ok := f.users[id]
	if !ok {
		return user.User{}, user.ErrUserNotFound
	}
	return u, nil
}

func (f *fakeUserRepo) Create(ctx context.Context, newUser user.User) (user.User, error) {
	f.users[newUser.ID] = newUser
	return newUser, nil
}

func (f *fakeUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := f.GetByEmail(ctx, email)
	if err == user.ErrUserNotFound {
		return false, nil
	}
	return err == nil, err
}

func (f *fakeUserRepo) LinkGoogleAccount(ctx context.Context, googleID string, email string) (user.User, error) {
	u, err := f.GetByEmail(ctx, email)
	if err != nil {
		return user.User{}, err
	}
	provider := "google"
	u.OAuthProvider = &provider
	u.OAuthProviderID = &googleID
	f.users[u.ID] = u
	return u, nil
}

func (f *fakeUserRepo) ListIDs(ctx context.Context) ([]string, error) {
	ids := make([]string, 0, len(f.users))
	for id := range f.users {
		ids = append(ids, id)
	}
	return ids, nil
}

// fakeRefreshTokenRepo mirrors the real repository's error contract:
// unknown tokens are invalid, revoked tokens are revoked, revocation of an
// unknown token succeeds silently.
type fakeRefreshTokenRepo struct {
	owners  map[string]string // token -> user id
	revoked map[string]bool
}

func newFakeRefreshTokenRepo() *fakeRefreshTokenRepo {
	return &fakeRefreshTokenRepo{owners: make(map[string]string), revoked: make(map[string]bool)}
}

func (f *fakeRefreshTokenRepo) CreateRefreshToken(ctx context.Context, userID string, token string, expiresAt int64) error {
	f.owners[token] = userID
	return nil
}

func (f *fakeRefreshTokenRepo) GetUserIDByToken(ctx context.Context, token string) (string, error) {
	userID, ok := f.owners[token]
	if !ok {
		return "", auth.ErrInvalidToken
	}
	if f.revoked[token] {
		return "", auth.ErrRefreshTokenRevoked
	}
	return userID, nil
}

func (f *fakeRefreshTokenRepo) RevokeRefreshToken(ctx context.Context, token string) error {
	if _, ok := f.owners[token]; ok {
		f.revoked[token] = true
	}
	return nil
}

type authFixture struct {
	svc       *AuthServiceImpl
	userRepo  *fakeUserRepo
	tokenRepo *fakeRefreshTokenRepo
}

func newAuthFixture() authFixture {
	userRepo := newFakeUserRepo()
	tokenRepo := newFakeRefreshTokenRepo()
	jwtService := jwt.NewJWTService(testSecret, testAccessExp, testRefreshExp)

	svc := NewAuthService(nil, userRepo, tokenRepo, jwtService).(*AuthServiceImpl)
	svc.runTx = func(ctx context.Context, fn func(tx pgx.Tx) error) error {
		return fn(nil)
	}

	return authFixture{svc: svc, userRepo: userRepo, tokenRepo: tokenRepo}
}

func registerReq(email string) auth.RegisterRequest {
	return auth.RegisterRequest{Email: email, Password: "password123", ConfirmPassword: "password123"}
}

func TestRegister(t *testing.T) {
	f := newAuthFixture()
	ctx := context.Background()

	tokens, err := f.svc.Register(ctx, registerReq("new@example.com"))
	require.NoError(t, err)

	assert.NotEmpty(t, tokens.AccessToken)
	assert.NotEmpty(t, tokens.RefreshToken)
	assert.Greater(t, tokens.AccessTokenExpiresIn, int64(0))
	assert.Greater(t, tokens.RefreshTokenExpiresIn, int64(0))

	// Refresh token is stored and resolves to the new account.
	userID, err := f.tokenRepo.GetUserIDByToken(ctx, tokens.RefreshToken)
	require.NoError(t, err)
	stored, err := f.userRepo.GetByID(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, "new@example.com", stored.Email)

	// Password is stored hashed, never verbatim.
	require.True(t, stored.HasPassword())
	assert.NotEqual(t, "password123", *stored.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(*stored.PasswordHash), []byte("password123")))
}

func TestRegisterNormalizesEmailAndRejectsDuplicates(t *testing.T) {
	f := newAuthFixture()
	ctx := context.Background()

	_, err := f.svc.Register(ctx, registerReq("Someone@Example.com"))
	require.NoError(t, err)

	stored, err := f.userRepo.GetByEmail(ctx, "someone@example.com")
	require.NoError(t, err)
	assert.Equal(t, "someone@example.com", stored.Email)

	_, err = f.svc.Register(ctx, registerReq("someone@example.com"))
	assert.ErrorIs(t, err, user.ErrUserEmailExists)
}

func TestRegisterValidation(t *testing.T) {
	f := newAuthFixture()

	_, err := f.svc.Register(context.Background(), auth.RegisterRequest{
		Email: "not-an-email", Password: "password123", ConfirmPassword: "password123",
	})
	assert.Error(t, err)

	_, err = f.svc.Register(context.Background(), auth.RegisterRequest{
		Email: "a@b.com", Password: "short", ConfirmPassword: "short",
	})
	assert.Error(t, err)

	_, err = f.svc.Register(context.Background(), auth.RegisterRequest{
		Email: "a@b.com", Password: "password123", ConfirmPassword: "different-123",
	})
	assert.Error(t, err)
}

func TestLogin(t *testing.T) {
	f := newAuthFixture()
	ctx := context.Background()

	_, err := f.svc.Register(ctx, registerReq("login@example.com"))
	require.NoError(t, err)

	tokens, err := f.svc.Login(ctx, auth.LoginRequest{Email: "login@example.com", Password: "password123"})
	require.NoError(t, err)
	assert.NotEmpty(t, tokens.AccessToken)
	assert.NotEmpty(t, tokens.RefreshToken)

	_, err = f.svc.Login(ctx, auth.LoginRequest{Email: "login@example.com", Password: "wrong-password"})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)

	// Unknown accounts fail the same way as bad passwords.
	_, err = f.svc.Login(ctx, auth.LoginRequest{Email: "nobody@example.com", Password: "password123"})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestLoginRejectsPasswordlessAccount(t *testing.T) {
	f := newAuthFixture()
	ctx := context.Background()

	// Accounts created through Google sign-in have no password hash.
	_, err := f.svc.LoginWithGoogle(ctx, "oauth@example.com", "google-123")
	require.NoError(t, err)

	_, err = f.svc.Login(ctx, auth.LoginRequest{Email: "oauth@example.com", Password: "password123"})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestLoginWithGoogleCreatesAccount(t *testing.T) {
	f := newAuthFixture()
	ctx := context.Background()

	tokens, err := f.svc.LoginWithGoogle(ctx, "Fresh@Example.com", "google-456")
	require.NoError(t, err)
	assert.NotEmpty(t, tokens.AccessToken)

	created, err := f.userRepo.GetByEmail(ctx, "fresh@example.com")
	require.NoError(t, err)
	require.NotNil(t, created.OAuthProvider)
	assert.Equal(t, "google", *created.OAuthProvider)
	require.NotNil(t, created.OAuthProviderID)
	assert.Equal(t, "google-456", *created.OAuthProviderID)

	// A second sign-in reuses the account.
	_, err = f.svc.LoginWithGoogle(ctx, "fresh@example.com", "google-456")
	require.NoError(t, err)
	assert.Len(t, f.userRepo.users, 1)
}

func TestLoginWithGoogleLinksPasswordAccount(t *testing.T) {
	f := newAuthFixture()
	ctx := context.Background()

	_, err := f.svc.Register(ctx, registerReq("both@example.com"))
	require.NoError(t, err)

	_, err = f.svc.LoginWithGoogle(ctx, "both@example.com", "google-789")
	require.NoError(t, err)

	linked, err := f.userRepo.GetByEmail(ctx, "both@example.com")
	require.NoError(t, err)
	require.NotNil(t, linked.OAuthProviderID)
	assert.Equal(t, "google-789", *linked.OAuthProviderID)
	assert.True(t, linked.HasPassword(), "linking keeps the password login")
	assert.Len(t, f.userRepo.users, 1)
}

func TestRefreshTokenIssuesAccessOnly(t *testing.T) {
	f := newAuthFixture()
	ctx := context.Background()

	tokens, err := f.svc.Register(ctx, registerReq("refresh@example.com"))
	require.NoError(t, err)

	refreshed, err := f.svc.RefreshToken(ctx, auth.RefreshTokenRequest{RefreshToken: tokens.RefreshToken})
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)
	assert.Greater(t, refreshed.AccessTokenExpiresIn, int64(0))

	// The refresh token is not rotated; it keeps working.
	_, err = f.svc.RefreshToken(ctx, auth.RefreshTokenRequest{RefreshToken: tokens.RefreshToken})
	assert.NoError(t, err)
}

func TestRefreshTokenRejectsBadTokens(t *testing.T) {
	f := newAuthFixture()
	ctx := context.Background()

	_, err := f.svc.RefreshToken(ctx, auth.RefreshTokenRequest{})
	assert.ErrorIs(t, err, auth.ErrInvalidToken)

	_, err = f.svc.RefreshToken(ctx, auth.RefreshTokenRequest{RefreshToken: "never-issued"})
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestLogoutRevokesAndIsIdempotent(t *testing.T) {
	f := newAuthFixture()
	ctx := context.Background()

	tokens, err := f.svc.Register(ctx, registerReq("logout@example.com"))
	require.NoError(t, err)

	require.NoError(t, f.svc.Logout(ctx, tokens.RefreshToken))

	_, err = f.svc.RefreshToken(ctx, auth.RefreshTokenRequest{RefreshToken: tokens.RefreshToken})
	assert.ErrorIs(t, err, auth.ErrRefreshTokenRevoked)

	// Logging out again, with an unknown token, or without one is a no-op.
	assert.NoError(t, f.svc.Logout(ctx, tokens.RefreshToken))
	assert.NoError(t, f.svc.Logout(ctx, "never-issued"))
	assert.NoError(t, f.svc.Logout(ctx, ""))
}
