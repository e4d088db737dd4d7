package testutils

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// DiscardLogger returns a logger that drops everything.
func DiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

const redisImage = "redis:7.0.5"

// StartRedis runs a throwaway Redis container and returns its URL. Tests
// calling it are skipped under -short.
func StartRedis(tb testing.TB) string {
	tb.Helper()
	if testing.Short() {
		tb.Skip("redis container skipped in short mode")
	}
	ctx := context.Background()
	redisC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        redisImage,
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForListeningPort("6379/tcp"),
		},
		Started: true,
	})
	if err != nil {
		tb.Fatalf("start %s: %v", redisImage, err)
	}
	tb.Cleanup(func() { _ = redisC.Terminate(ctx) })

	endpoint, err := redisC.Endpoint(ctx, "")
	if err != nil {
		tb.Fatalf("redis endpoint: %v", err)
	}
	return "redis://" + endpoint + "/0"
}

// NewRequest builds a test request; a non-empty body is sent as JSON.
func NewRequest(method, path, body string) *http.Request {
	if body == "" {
		return httptest.NewRequest(method, path, nil)
	}
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

// MakeRequest runs a request through app without a timeout.
func MakeRequest(app *fiber.App, method, path, body string) *http.Response {
	resp, err := app.Test(NewRequest(method, path, body), -1)
	if err != nil {
		panic(err)
	}
	return resp
}

// DecodeJSON reads resp's body into a value of type T.
func DecodeJSON[T any](tb testing.TB, resp *http.Response) T {
	tb.Helper()
	defer resp.Body.Close() //nolint:errcheck
	var v T
	if err := json.NewDecoder(resp.Body).Decode(&v); err != nil {
		tb.Fatalf("decode response: %v", err)
	}
	return v
}
