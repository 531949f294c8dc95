package overtime_test

import (
	"net/http"
	"testing"

	"github.com/hourbank/overtime/pkg/overtimesdk"
	"github.com/stretchr/testify/require"
)

// TestLoginAndMe verifies the bootstrapped admin can log in and fetch its
// own profile with the issued token.
func TestLoginAndMe(t *testing.T) {
	baseURL, cleanup := setupOvertimeContainer(t)
	defer cleanup()

	client := overtimesdk.NewClient(baseURL)
	session := loginAdmin(t, client)

	require.NotEmpty(t, session.Token())

	me, err := session.Me(t.Context())
	require.NoError(t, err)
	require.Equal(t, adminUsername, me.Username)
	require.Equal(t, adminName, me.Name)
	require.Equal(t, "ADMIN", me.Role)
	require.False(t, me.MFA)
}

// TestLoginCaseInsensitiveUsername verifies usernames resolve regardless of
// case at login.
func TestLoginCaseInsensitiveUsername(t *testing.T) {
	baseURL, cleanup := setupOvertimeContainer(t)
	defer cleanup()

	client := overtimesdk.NewClient(baseURL)

	session, err := client.Login(t.Context(), "ADMIN", adminPassword, "")
	require.NoError(t, err)

	// The stored spelling is returned, not the one typed at login
	require.Equal(t, adminUsername, session.User.Username)
}

// TestLoginRejectsBadCredentials verifies wrong passwords and unknown
// usernames fail with the same indistinguishable error.
func TestLoginRejectsBadCredentials(t *testing.T) {
	baseURL, cleanup := setupOvertimeContainer(t)
	defer cleanup()

	client := overtimesdk.NewClient(baseURL)

	_, wrongPass := client.Login(t.Context(), adminUsername, "not-the-password", "")
	require.Error(t, wrongPass)
	require.True(t, overtimesdk.IsUnauthorized(wrongPass))

	_, unknownUser := client.Login(t.Context(), "nobody", adminPassword, "")
	require.Error(t, unknownUser)
	require.True(t, overtimesdk.IsUnauthorized(unknownUser))

	// Same message for both, so usernames cannot be enumerated
	require.Equal(t, wrongPass.Error(), unknownUser.Error())
}

// TestProtectedEndpointsRequireAuth verifies requests without a token are
// rejected.
func TestProtectedEndpointsRequireAuth(t *testing.T) {
	baseURL, cleanup := setupOvertimeContainer(t)
	defer cleanup()

	for _, path := range []string{"/v1/me", "/v1/entries", "/v1/entries/export", "/v1/dashboard"} {
		resp, err := http.Get(baseURL + path)
		require.NoError(t, err)
		resp.Body.Close()
		require.Equal(t, http.StatusUnauthorized, resp.StatusCode, "GET %s without a token", path)
	}
}
