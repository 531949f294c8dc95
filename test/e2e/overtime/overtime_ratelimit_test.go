package overtime_test

import (
	"testing"

	"github.com/hourbank/overtime/pkg/overtimesdk"
	"github.com/stretchr/testify/require"
)

// TestRateLimitLoginEndpoint verifies the login endpoint enforces its strict
// limit (5 req/min keyed on IP plus username).
func TestRateLimitLoginEndpoint(t *testing.T) {
	baseURL, cleanup := setupOvertimeContainerWithDefaultRateLimits(t)
	defer cleanup()

	client := overtimesdk.NewClient(baseURL)
	ctx := t.Context()

	var lastErr error
	for i := range 6 {
		_, err := client.Login(ctx, "wronguser", "wrongpass", "")
		if i < 5 {
			require.Error(t, err, "invalid credentials should fail")
			require.False(t, overtimesdk.IsRateLimited(err), "should not be rate limited yet (request %d)", i+1)
		} else {
			lastErr = err
		}
	}

	require.Error(t, lastErr)
	require.True(t, overtimesdk.IsRateLimited(lastErr), "sixth login attempt should be rate limited")
}

// TestRateLimitKeyedPerUsername verifies attempts against one username do not
// exhaust the budget for another from the same address.
func TestRateLimitKeyedPerUsername(t *testing.T) {
	baseURL, cleanup := setupOvertimeContainerWithDefaultRateLimits(t)
	defer cleanup()

	client := overtimesdk.NewClient(baseURL)
	ctx := t.Context()

	for range 5 {
		_, err := client.Login(ctx, "wronguser", "wrongpass", "")
		require.Error(t, err)
	}

	// A different username still gets through to credential checking
	session, err := client.Login(ctx, adminUsername, adminPassword, "")
	require.NoError(t, err)
	require.Equal(t, adminUsername, session.User.Username)
}
