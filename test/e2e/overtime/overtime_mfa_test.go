package overtime_test

import (
	"testing"
	"time"

	"github.com/hourbank/overtime/pkg/overtimesdk"
	"github.com/pquerna/otp/totp"
	"github.com/stretchr/testify/require"
)

// TestMFALifecycle walks the full TOTP flow: enroll, activate with a real
// code, log in with MFA required, then disable.
func TestMFALifecycle(t *testing.T) {
	baseURL, cleanup := setupOvertimeContainer(t)
	defer cleanup()

	client := overtimesdk.NewClient(baseURL)
	session := loginAdmin(t, client)
	ctx := t.Context()

	enrollment, err := session.EnrollTOTP(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, enrollment.Secret)
	require.Contains(t, enrollment.URL, "otpauth://")

	// MFA does not take effect until the first code confirms the secret
	relogin, err := client.Login(ctx, adminUsername, adminPassword, "")
	require.NoError(t, err)
	require.False(t, relogin.User.MFA)

	code, err := totp.GenerateCode(enrollment.Secret, time.Now())
	require.NoError(t, err)
	require.NoError(t, session.ActivateTOTP(ctx, code))

	// Plain credentials are no longer enough
	_, err = client.Login(ctx, adminUsername, adminPassword, "")
	require.Error(t, err)

	code, err = totp.GenerateCode(enrollment.Secret, time.Now())
	require.NoError(t, err)
	mfaSession, err := client.Login(ctx, adminUsername, adminPassword, code)
	require.NoError(t, err)
	require.True(t, mfaSession.User.MFA)

	code, err = totp.GenerateCode(enrollment.Secret, time.Now())
	require.NoError(t, err)
	require.NoError(t, mfaSession.DisableTOTP(ctx, code))

	plain, err := client.Login(ctx, adminUsername, adminPassword, "")
	require.NoError(t, err)
	require.False(t, plain.User.MFA)
}

// TestMFAActivateRejectsWrongCode verifies a wrong first code leaves MFA
// inactive.
func TestMFAActivateRejectsWrongCode(t *testing.T) {
	baseURL, cleanup := setupOvertimeContainer(t)
	defer cleanup()

	client := overtimesdk.NewClient(baseURL)
	session := loginAdmin(t, client)
	ctx := t.Context()

	_, err := session.EnrollTOTP(ctx)
	require.NoError(t, err)

	require.Error(t, session.ActivateTOTP(ctx, "000000"))

	relogin, err := client.Login(ctx, adminUsername, adminPassword, "")
	require.NoError(t, err)
	require.False(t, relogin.User.MFA)
}
