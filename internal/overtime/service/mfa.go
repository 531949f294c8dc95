package service

import (
	"context"
	"errors"
	"strings"

	"github.com/hourbank/overtime/internal/overtime/domain"
	"github.com/hourbank/overtime/internal/overtime/store"
	"github.com/pquerna/otp/totp"
)

var (
	// ErrMFANotEnrolled is returned when activation or disable is attempted
	// without a stored secret.
	ErrMFANotEnrolled = errors.New("mfa not enrolled")

	// ErrMFAAlreadyActive is returned when enrollment is attempted while
	// TOTP is already active.
	ErrMFAAlreadyActive = errors.New("mfa already active")
)

// MFAService manages optional TOTP second factors. Enrollment stores a
// pending secret; activation requires the first valid code so a user cannot
// lock themselves out with an unscanned QR.
type MFAService struct {
	Store  store.Store
	Issuer string
}

// Enrollment is returned from EnrollTOTP so the client can render a QR code.
type Enrollment struct {
	Secret string
	URL    string
}

// EnrollTOTP generates a fresh secret for the session's user and stores it
// pending activation. Re-enrolling before activation replaces the secret.
func (s *MFAService) EnrollTOTP(ctx context.Context, sess domain.Session) (Enrollment, error) {
	if !sess.Authenticated() {
		return Enrollment{}, ErrUnauthenticated
	}

	user, err := s.Store.Users().GetUserByID(ctx, sess.UserID)
	if err != nil {
		return Enrollment{}, repositoryError(err)
	}
	if user.MFAActive() {
		return Enrollment{}, ErrMFAAlreadyActive
	}

	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      s.Issuer,
		AccountName: user.Username,
	})
	if err != nil {
		return Enrollment{}, err
	}

	if err := s.Store.Users().UpdateMFASecret(ctx, user.ID, key.Secret()); err != nil {
		return Enrollment{}, repositoryError(err)
	}

	return Enrollment{Secret: key.Secret(), URL: key.URL()}, nil
}

// ActivateTOTP verifies the first code against the pending secret and marks
// MFA active.
func (s *MFAService) ActivateTOTP(ctx context.Context, sess domain.Session, code string) error {
	if !sess.Authenticated() {
		return ErrUnauthenticated
	}

	user, err := s.Store.Users().GetUserByID(ctx, sess.UserID)
	if err != nil {
		return repositoryError(err)
	}
	if user.MFASecret == nil || *user.MFASecret == "" {
		return ErrMFANotEnrolled
	}

	if !totp.Validate(strings.TrimSpace(code), *user.MFASecret) {
		return ErrInvalidTOTPCode
	}

	if err := s.Store.Users().EnableMFA(ctx, user.ID); err != nil {
		return repositoryError(err)
	}
	return nil
}

// DisableTOTP removes the second factor. A valid current code is required so
// a hijacked session cannot silently weaken the account.
func (s *MFAService) DisableTOTP(ctx context.Context, sess domain.Session, code string) error {
	if !sess.Authenticated() {
		return ErrUnauthenticated
	}

	user, err := s.Store.Users().GetUserByID(ctx, sess.UserID)
	if err != nil {
		return repositoryError(err)
	}
	if !user.MFAActive() {
		return ErrMFANotEnrolled
	}

	if !totp.Validate(strings.TrimSpace(code), *user.MFASecret) {
		return ErrInvalidTOTPCode
	}

	if err := s.Store.Users().DisableMFA(ctx, user.ID); err != nil {
		return repositoryError(err)
	}
	return nil
}
