package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/hourbank/overtime/internal/overtime/domain"
	"github.com/hourbank/overtime/internal/overtime/store"
	"github.com/hourbank/overtime/pkg/cryptox"
	"github.com/hourbank/overtime/pkg/jwtx"
	"github.com/pquerna/otp/totp"
)

var (
	// ErrInvalidCredentials covers both unknown username and wrong password
	// so login responses cannot be used to enumerate accounts.
	ErrInvalidCredentials = errors.New("invalid username or password")

	// ErrMFARequired is returned when the account has TOTP active and no
	// code was supplied.
	ErrMFARequired = errors.New("mfa code required")

	// ErrInvalidTOTPCode is returned when a supplied TOTP code does not
	// verify against the account's secret.
	ErrInvalidTOTPCode = errors.New("invalid mfa code")
)

// AuthService verifies credentials and issues session tokens.
type AuthService struct {
	Store      store.Store
	Signer     *jwtx.EdDSA
	Issuer     string
	SessionTTL time.Duration
}

// Authenticate verifies a username/password pair, plus a TOTP code when the
// account has MFA active. Username lookup is case-insensitive.
func (s *AuthService) Authenticate(ctx context.Context, username, password, totpCode string) (domain.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return domain.User{}, ErrInvalidCredentials
	}

	user, err := s.Store.Users().GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.User{}, ErrInvalidCredentials
		}
		return domain.User{}, repositoryError(err)
	}

	if err := cryptox.VerifyPassword(password, user.PasswordHash); err != nil {
		return domain.User{}, ErrInvalidCredentials
	}

	if user.MFAActive() {
		if strings.TrimSpace(totpCode) == "" {
			return domain.User{}, ErrMFARequired
		}
		if !totp.Validate(strings.TrimSpace(totpCode), *user.MFASecret) {
			return domain.User{}, ErrInvalidTOTPCode
		}
	}

	return user, nil
}

// IssueSession signs a session token for the given user. The returned expiry
// matches the token's exp claim so the transport can align cookie lifetimes.
func (s *AuthService) IssueSession(user domain.User) (string, time.Time, error) {
	ttl := s.SessionTTL
	if ttl <= 0 {
		ttl = jwtx.DefaultSessionTTL
	}

	now := time.Now().UTC()
	claims := jwtx.NewSessionClaims(
		user.ID, user.Username, user.Name, string(user.Role),
		ttl, s.Issuer, now,
	)

	token, err := s.Signer.Sign(claims)
	if err != nil {
		return "", time.Time{}, err
	}
	return token, now.Add(ttl), nil
}

// SessionFromToken verifies a session token and rebuilds the session value
// passed into every service operation.
func (s *AuthService) SessionFromToken(token string) (domain.Session, error) {
	claims, err := s.Signer.Verify(token)
	if err != nil {
		return domain.Session{}, err
	}

	return domain.Session{
		UserID:   claims.Subject,
		Username: claims.Username,
		Name:     claims.Name,
		Role:     domain.Role(claims.Role),
	}, nil
}
