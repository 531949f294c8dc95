package overtime_test

import (
	"testing"

	"github.com/hourbank/overtime/pkg/overtimesdk"
)

// TestLivezEndpoint verifies the liveness check endpoint works without auth.
func TestLivezEndpoint(t *testing.T) {
	baseURL, cleanup := setupOvertimeContainer(t)
	defer cleanup()

	client := overtimesdk.NewClient(baseURL)

	health, err := client.GetLiveness(t.Context())
	assertHealthy(t, health, err)

	t.Logf("Livez endpoint is healthy")
}

// TestReadyzEndpoint verifies the readiness check endpoint works without auth.
func TestReadyzEndpoint(t *testing.T) {
	baseURL, cleanup := setupOvertimeContainer(t)
	defer cleanup()

	client := overtimesdk.NewClient(baseURL)

	health, err := client.GetReadiness(t.Context())
	assertHealthy(t, health, err)

	t.Logf("Readyz endpoint is healthy")
}
