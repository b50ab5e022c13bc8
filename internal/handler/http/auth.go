package http

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/shiftlog-app/shiftlog-backend-go/internal/domain/auth"
	"github.com/shiftlog-app/shiftlog-backend-go/internal/handler/http/response"
	"github.com/shiftlog-app/shiftlog-backend-go/internal/pkg/jwt"
	"github.com/shiftlog-app/shiftlog-backend-go/internal/pkg/oauth"
)

type AuthHandler interface {
	Register(w http.ResponseWriter, r *http.Request)
	Login(w http.ResponseWriter, r *http.Request)
	LoginWithGoogle(w http.ResponseWriter, r *http.Request)
	OAuthCallbackGoogle(w http.ResponseWriter, r *http.Request)
	RefreshToken(w http.ResponseWriter, r *http.Request)
	Logout(w http.ResponseWriter, r *http.Request)
}

type AuthHandlerImpl struct {
	jwtService    jwt.Service
	authService   auth.AuthService
	googleService oauth.GoogleService
	frontendURL   string
}

func NewAuthHandler(jwtService jwt.Service, authService auth.AuthService, googleService oauth.GoogleService, frontendURL string) AuthHandler {
	return &AuthHandlerImpl{
		jwtService:    jwtService,
		authService:   authService,
		googleService: googleService,
		frontendURL:   frontendURL,
	}
}

// Register implements AuthHandler.
func (a *AuthHandlerImpl) Register(w http.ResponseWriter, r *http.Request) {
	var registerReq auth.RegisterRequest

	if err := json.NewDecoder(r.Body).Decode(&registerReq); err != nil {
		slog.Error("Register decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	tokenResponse, err := a.authService.Register(r.Context(), registerReq)
	if err != nil {
		slog.Error("Register service error", "error", err)
		response.HandleError(w, err)
		return
	}

	refreshTokenCookie := a.jwtService.RefreshTokenCookie(tokenResponse.RefreshToken, tokenResponse.RefreshTokenExpiresIn)
	http.SetCookie(w, refreshTokenCookie)
	slog.Info("User registered successfully")
	response.Created(w, "User created successfully", tokenResponse)
}

// Login implements AuthHandler.
func (a *AuthHandlerImpl) Login(w http.ResponseWriter, r *http.Request) {
	var loginReq auth.LoginRequest

	if err := json.NewDecoder(r.Body).Decode(&loginReq); err != nil {
		slog.Error("Login decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	tokenResponse, err := a.authService.Login(r.Context(), loginReq)
	if err != nil {
		slog.Error("Login service error", "error", err)
		response.HandleError(w, err)
		return
	}

	refreshTokenCookie := a.jwtService.RefreshTokenCookie(tokenResponse.RefreshToken, tokenResponse.RefreshTokenExpiresIn)
	http.SetCookie(w, refreshTokenCookie)
	slog.Info("User logged in successfully")
	response.SuccessWithMessage(w, "User logged in successfully", tokenResponse)
}

// LoginWithGoogle implements AuthHandler.
func (a *AuthHandlerImpl) LoginWithGoogle(w http.ResponseWriter, r *http.Request) {
	state := a.googleService.GenerateState()
	cookie := &http.Cookie{
		Name:     "state",
		Value:    state,
		Path:     "/api/v1/auth/oauth/callback/google",
		Expires:  time.Now().Add(5 * time.Minute),
		HttpOnly: true,
		Secure:   false,
		SameSite: http.SameSiteLaxMode,
	}
	http.SetCookie(w, cookie)
	url := a.googleService.RedirectURL(state)
	http.Redirect(w, r, url, http.StatusTemporaryRedirect)
}

// OAuthCallbackGoogle implements AuthHandler.
func (a *AuthHandlerImpl) OAuthCallbackGoogle(w http.ResponseWriter, r *http.Request) {
	redirectWithError := func(errorMsg string) {
		redirectURL := fmt.Sprintf("%s/auth/callback/google?error=%s", a.frontendURL, url.QueryEscape(errorMsg))
		http.Redirect(w, r, redirectURL, http.StatusTemporaryRedirect)
	}

	stateReq, err := r.Cookie("state")
	if err != nil {
		slog.Error("State cookie not found", "error", err)
		redirectWithError("state_cookie_not_found")
		return
	}

	if errorValue := r.URL.Query().Get("error"); errorValue != "" {
		slog.Error("Error in OAuth callback", "error", errorValue)
		redirectWithError(errorValue)
		return
	}

	stateParam := r.URL.Query().Get("state")
	if stateParam == "" || stateParam != stateReq.Value {
		slog.Error("State mismatch", "error", auth.ErrInvalidOAuthState)
		redirectWithError("state_mismatch")
		return
	}

	code := r.URL.Query().Get("code")
	if code == "" {
		slog.Error("Code value is empty")
		redirectWithError("code_empty")
		return
	}

	token, err := a.googleService.VerifyToken(r.Context(), code)
	if err != nil {
		slog.Error("Failed to verify token", "error", err)
		redirectWithError("token_verification_failed")
		return
	}

	userGoogle, err := a.googleService.VerifyUser(r.Context(), token)
	if err != nil {
		slog.Error("Failed to verify user", "error", err)
		redirectWithError("user_verification_failed")
		return
	}

	tokenResponse, err := a.authService.LoginWithGoogle(r.Context(), userGoogle.Email, userGoogle.GoogleID)
	if err != nil {
		slog.Error("Failed to login with Google", "error", err)
		redirectWithError("login_failed")
		return
	}

	refreshTokenCookie := a.jwtService.RefreshTokenCookie(tokenResponse.RefreshToken, tokenResponse.RefreshTokenExpiresIn)
	http.SetCookie(w, refreshTokenCookie)

	slog.Info("User logged in successfully via Google OAuth")

	redirectURL := fmt.Sprintf("%s/auth/callback/google?access_token=%s&expires_in=%d",
		a.frontendURL,
		url.QueryEscape(tokenResponse.AccessToken),
		tokenResponse.AccessTokenExpiresIn,
	)
	http.Redirect(w, r, redirectURL, http.StatusTemporaryRedirect)
}

// RefreshToken implements AuthHandler.
func (a *AuthHandlerImpl) RefreshToken(w http.ResponseWriter, r *http.Request) {
	var refreshTokenReq auth.RefreshTokenRequest

	// Cookie is the preferred carrier; JSON body is the fallback for
	// clients that cannot send cookies.
	refreshTokenCookie, err := r.Cookie("refresh_token")
	if err == nil && refreshTokenCookie.Value != "" {
		refreshTokenReq.RefreshToken = refreshTokenCookie.Value
	} else {
		if err := json.NewDecoder(r.Body).Decode(&refreshTokenReq); err != nil {
			slog.Error("Refresh token decode error", "error", err)
			response.BadRequest(w, "Invalid request format", nil)
			return
		}
	}

	tokenResponse, err := a.authService.RefreshToken(r.Context(), refreshTokenReq)
	if err != nil {
		slog.Error("Refresh token service error", "error", err)
		response.HandleError(w, err)
		return
	}

	slog.Info("Token refreshed successfully")
	response.SuccessWithMessage(w, "Token refreshed successfully", tokenResponse)
}

// Logout implements AuthHandler.
func (a *AuthHandlerImpl) Logout(w http.ResponseWriter, r *http.Request) {
	refreshToken := ""
	if cookie, err := r.Cookie("refresh_token"); err == nil {
		refreshToken = cookie.Value
	}

	if err := a.authService.Logout(r.Context(), refreshToken); err != nil {
		response.HandleError(w, err)
		return
	}

	// Clear the refresh token cookie
	clearedCookie := &http.Cookie{
		Name:     "refresh_token",
		Value:    "",
		Path:     "/api/v1/auth",
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		Secure:   false,
		SameSite: http.SameSiteStrictMode,
	}
	http.SetCookie(w, clearedCookie)
	response.SuccessWithMessage(w, "User logged out successfully", nil)
}
