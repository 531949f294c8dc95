package http

import (
	"net/http"
	"time"

	"github.com/hourbank/overtime/internal/overtime/domain"
	"github.com/hourbank/overtime/internal/overtime/service"
	"github.com/hourbank/overtime/pkg/httpx"
	"github.com/hourbank/overtime/pkg/slogx"
)

// AuthHandler handles login and logout.
type AuthHandler struct {
	AuthService *service.AuthService

	// SecureCookies marks the session cookie Secure; disabled for local dev.
	SecureCookies bool
}

// LoginRequest carries credentials, plus a TOTP code when the account has
// MFA active.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
	TOTPCode string `json:"totp_code,omitempty" validate:"omitempty,numeric,len=6"`
}

// LoginResponse is the data payload of a successful login. The token is also
// set as an HTTP-only cookie; the body copy serves non-browser clients.
type LoginResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
	User      UserResponse `json:"user"`
}

// UserResponse is the public shape of a user.
type UserResponse struct {
	ID       string      `json:"id"`
	Username string      `json:"username"`
	Name     string      `json:"name"`
	Role     domain.Role `json:"role"`
	MFA      bool        `json:"mfa_enabled"`
}

func newUserResponse(u domain.User) UserResponse {
	return UserResponse{
		ID:       u.ID,
		Username: u.Username,
		Name:     u.Name,
		Role:     u.Role,
		MFA:      u.MFAActive(),
	}
}

// HandleLogin handles POST /v1/auth/login
//
//	@Summary		Log in
//	@Description	Verifies username and password (plus a TOTP code when MFA is active) and issues a session token.
//	@Description	The token is returned in the body and set as an HTTP-only cookie.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		LoginRequest	true	"Credentials"
//	@Success		200		{object}	httpx.Envelope{data=LoginResponse}
//	@Failure		400		{object}	httpx.Envelope	"Malformed request"
//	@Failure		401		{object}	httpx.Envelope	"Invalid username or password"
//	@Failure		409		{object}	httpx.Envelope	"MFA code required"
//	@Router			/v1/auth/login [post].
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req LoginRequest
	if err := decodeJSON(r, &req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "username and password are required")
		return
	}

	user, err := h.AuthService.Authenticate(ctx, req.Username, req.Password, req.TOTPCode)
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}

	token, expiresAt, err := h.AuthService.IssueSession(user)
	if err != nil {
		log.Error("failed to issue session", "user_id", user.ID, "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    token,
		Path:     "/",
		Expires:  expiresAt,
		HttpOnly: true,
		Secure:   h.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	})

	log.Info("login", "user_id", user.ID, "username", user.Username)
	httpx.WriteSuccess(w, http.StatusOK, "logged in", LoginResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      newUserResponse(user),
	})
}

// HandleLogout handles POST /v1/auth/logout
//
//	@Summary		Log out
//	@Description	Clears the session cookie. Tokens held by non-browser clients simply expire.
//	@Tags			Auth
//	@Produce		json
//	@Success		200	{object}	httpx.Envelope
//	@Router			/v1/auth/logout [post].
func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	})

	httpx.WriteSuccess(w, http.StatusOK, "logged out", nil)
}

// MeHandler returns the caller's identity.
type MeHandler struct {
	UserService *service.UserService
}

// ServeHTTP handles GET /v1/me
//
//	@Summary		Current user
//	@Description	Returns the authenticated user's profile.
//	@Tags			Auth
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	httpx.Envelope{data=UserResponse}
//	@Failure		401	{object}	httpx.Envelope
//	@Router			/v1/me [get].
func (h *MeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sess := sessionFrom(ctx)

	user, err := h.UserService.GetByID(ctx, sess.UserID)
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}

	httpx.WriteSuccess(w, http.StatusOK, "ok", newUserResponse(user))
}
