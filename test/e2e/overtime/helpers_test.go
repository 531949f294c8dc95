package overtime_test

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"testing"
	"time"

	"github.com/hourbank/overtime/pkg/overtimesdk"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

/*
 * Common constants and helper functions for overtime service end-to-end
 * tests. This includes container setup, login helpers, and assertions.
 */

const (
	testImageName = "overtime-test:latest"

	adminUsername = "admin"
	adminName     = "Administrator"
	adminPassword = "Admin123!"
)

// TestMain manages the test lifecycle, builds the Docker image once before
// all tests and cleans it up after all tests complete.
func TestMain(m *testing.M) {
	fmt.Fprintf(os.Stdout, "Building Overtime Service Docker image...")

	if err := buildDockerImage(); err != nil {
		fmt.Fprintf(os.Stderr, "\nFailed to build Docker image: %v\n", err)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stdout, " done\n")

	exitCode := m.Run()

	fmt.Fprintf(os.Stdout, "Cleaning up Overtime Service Docker image...")
	cleanupDockerImage()
	fmt.Fprintf(os.Stdout, " done\n")

	os.Exit(exitCode)
}

func buildDockerImage() error {
	ctx := context.Background()
	cmd := exec.CommandContext(ctx, "docker", "build",
		"-t", testImageName,
		"-f", "../../../cmd/overtime/Dockerfile",
		"../../../")
	cmd.Dir = "."
	cmd.Stdout = os.Stdout
	cmd.Stderr = nil

	return cmd.Run()
}

func cleanupDockerImage() {
	ctx := context.Background()
	cmd := exec.CommandContext(ctx, "docker", "rmi", "-f", testImageName)
	_ = cmd.Run() // Ignore errors - image might not exist
}

func baseEnv() map[string]string {
	return map[string]string{
		"OVERTIME_DATABASE_FILE":    "/tmp/overtime.db",
		"OVERTIME_PEPPER_FILE":      "/tmp/pepper",
		"OVERTIME_SESSION_KEY_FILE": "/tmp/session.pem",
		"OVERTIME_ISSUER":           "overtime-e2e",
		"OVERTIME_ADMIN_USERNAME":   adminUsername,
		"OVERTIME_ADMIN_NAME":       adminName,
		"OVERTIME_ADMIN_PASSWORD":   adminPassword,
		"ENV":                       "test",
		"LOG_LEVEL":                 "info",
		"LOG_FORMAT":                "json",
	}
}

// setupOvertimeContainer starts the service with relaxed rate limits so that
// rapid test requests never trip the production defaults.
func setupOvertimeContainer(t *testing.T) (string, func()) {
	t.Helper()

	env := baseEnv()
	env["RATELIMIT_STRICT_REQUESTS"] = "1000"
	env["RATELIMIT_STRICT_BURST"] = "1000"
	env["RATELIMIT_MODERATE_REQUESTS"] = "1000"
	env["RATELIMIT_MODERATE_BURST"] = "1000"
	env["RATELIMIT_LENIENT_REQUESTS"] = "1000"
	env["RATELIMIT_LENIENT_BURST"] = "1000"

	return startContainer(t, env)
}

// setupOvertimeContainerWithDefaultRateLimits starts the service with the
// production rate limits. Only the rate limiting tests use this.
func setupOvertimeContainerWithDefaultRateLimits(t *testing.T) (string, func()) {
	t.Helper()
	return startContainer(t, baseEnv())
}

func startContainer(t *testing.T, env map[string]string) (string, func()) {
	t.Helper()
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        testImageName,
		ExposedPorts: []string{"8080/tcp"},
		Env:          env,
		WaitingFor: wait.ForHTTP("/livez").
			WithPort("8080/tcp").
			WithStartupTimeout(60 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)

	mappedPort, err := container.MappedPort(ctx, "8080")
	require.NoError(t, err)

	host, err := container.Host(ctx)
	require.NoError(t, err)

	baseURL := fmt.Sprintf("http://%s:%s", host, mappedPort.Port())

	cleanup := func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	}

	return baseURL, cleanup
}

// loginAdmin authenticates as the bootstrapped admin account.
func loginAdmin(t *testing.T, client *overtimesdk.Client) *overtimesdk.Session {
	t.Helper()

	session, err := client.Login(context.Background(), adminUsername, adminPassword, "")
	require.NoError(t, err, "admin login should succeed")
	require.Equal(t, "ADMIN", session.User.Role)

	return session
}

// assertHealthy fails the test unless the health response reports ok.
func assertHealthy(t *testing.T, health *overtimesdk.HealthResponse, err error) {
	t.Helper()
	require.NoError(t, err)
	require.NotNil(t, health)
	require.Equal(t, "ok", health.Status)
}
