package coolcare_test

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/exec"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/coolcare/coolcare/pkg/coolcaresdk"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcexec "github.com/testcontainers/testcontainers-go/exec"
	"github.com/testcontainers/testcontainers-go/wait"
)

/*
 * Container setup and shared assertions for the CoolCare API end-to-end
 * tests. The image is built once in TestMain from cmd/coolcare/Dockerfile.
 */

const (
	testImageName = "coolcare-api-test:latest"
	testJWTSecret = "e2e-secret-0123456789abcdef0123456789"
)

func TestMain(m *testing.M) {
	flag.Parse()
	if testing.Short() {
		os.Exit(m.Run())
	}

	fmt.Fprintf(os.Stdout, "Building CoolCare API Docker image...")
	if err := buildDockerImage(); err != nil {
		fmt.Fprintf(os.Stderr, "\nFailed to build Docker image: %v\n", err)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stdout, " done\n")

	exitCode := m.Run()

	fmt.Fprintf(os.Stdout, "Cleaning up CoolCare API Docker image...")
	cleanupDockerImage()
	fmt.Fprintf(os.Stdout, " done\n")

	os.Exit(exitCode)
}

func buildDockerImage() error {
	ctx := context.Background()
	cmd := exec.CommandContext(ctx, "docker", "build",
		"-t", testImageName,
		"-f", "../../../cmd/coolcare/Dockerfile",
		"../../../")
	cmd.Dir = "."
	cmd.Stdout = os.Stdout
	cmd.Stderr = nil

	return cmd.Run()
}

func cleanupDockerImage() {
	ctx := context.Background()
	cmd := exec.CommandContext(ctx, "docker", "rmi", "-f", testImageName)
	_ = cmd.Run()
}

// apiContainer is a running API server plus the handle needed to run the
// admin CLI inside it.
type apiContainer struct {
	testcontainers.Container
	BaseURL string
}

func relaxedRateLimits() map[string]string {
	return map[string]string{
		"RATELIMIT_STRICT_REQUESTS":   "1000",
		"RATELIMIT_STRICT_WINDOW_SEC": "60",
		"RATELIMIT_STRICT_BURST":      "1000",
		"RATELIMIT_MODERATE_REQUESTS": "1000",
		"RATELIMIT_MODERATE_BURST":    "1000",
		"RATELIMIT_LENIENT_REQUESTS":  "1000",
		"RATELIMIT_LENIENT_BURST":     "1000",
	}
}

// setupContainer starts the API with debug codes exposed and relaxed rate
// limits. extra overrides or adds environment variables.
func setupContainer(t *testing.T, extra map[string]string) *apiContainer {
	t.Helper()
	if testing.Short() {
		t.Skip("end-to-end tests need Docker")
	}
	ctx := context.Background()

	env := map[string]string{
		"ENV":                "test",
		"LOG_LEVEL":          "info",
		"LOG_FORMAT":         "json",
		"JWT_SECRET":         testJWTSecret,
		"EXPOSE_DEBUG_CODES": "true",
		"APP_TIMEZONE":       "Europe/Moscow",
	}
	for k, v := range relaxedRateLimits() {
		env[k] = v
	}
	for k, v := range extra {
		env[k] = v
	}

	req := testcontainers.ContainerRequest{
		Image:        testImageName,
		ExposedPorts: []string{"8000/tcp"},
		Env:          env,
		WaitingFor: wait.ForHTTP("/livez").
			WithPort("8000/tcp").
			WithStartupTimeout(60 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	mappedPort, err := container.MappedPort(ctx, "8000")
	require.NoError(t, err)

	host, err := container.Host(ctx)
	require.NoError(t, err)

	return &apiContainer{
		Container: container,
		BaseURL:   fmt.Sprintf("http://%s:%s", host, mappedPort.Port()),
	}
}

// admin runs coolcare-admin inside the container and returns its output.
func (c *apiContainer) admin(t *testing.T, args ...string) string {
	t.Helper()

	code, reader, err := c.Exec(t.Context(), append([]string{"coolcare-admin"}, args...), tcexec.Multiplexed())
	require.NoError(t, err)
	out, err := io.ReadAll(reader)
	require.NoError(t, err)
	require.Zero(t, code, "coolcare-admin %v: %s", args, out)
	return string(out)
}

// signIn runs the phone flow using the debug code from send-code.
func signIn(t *testing.T, client *coolcaresdk.Client, phone string) *coolcaresdk.Session {
	t.Helper()

	sent, err := client.SendCode(t.Context(), phone)
	require.NoError(t, err)
	require.Len(t, sent.DebugCode, 6, "debug code should be exposed in test env")

	session, err := client.SignIn(t.Context(), phone, sent.DebugCode)
	require.NoError(t, err)
	return session
}

func assertHealthy(t *testing.T, health *coolcaresdk.HealthResponse, err error) {
	t.Helper()
	require.NoError(t, err)
	require.NotNil(t, health)
	require.Equal(t, "ok", health.Status)
}

func assertAPIError(t *testing.T, err error, status int, code string) {
	t.Helper()
	require.Error(t, err)
	var apiErr *coolcaresdk.APIError
	require.True(t, errors.As(err, &apiErr), "expected *APIError, got %T: %v", err, err)
	require.Equal(t, status, apiErr.StatusCode)
	require.Equal(t, code, apiErr.Code)
}

func ptr[T any](v T) *T { return &v }
