//go:build e2e

package e2e_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// getenv returns the value of the environment variable k or def if empty.
func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func baseURL() string { return getenv("E2E_BASE_URL", "http://localhost:8080") }

func newClient() *http.Client {
	timeout := 2 * time.Minute
	if testing.Short() {
		timeout = 10 * time.Second
	}
	return &http.Client{Timeout: timeout}
}

func postJSON(t *testing.T, c *http.Client, path string, body any) (*http.Response, map[string]any) {
	t.Helper()
	b, err := json.Marshal(body)
	require.NoError(t, err)
	resp, err := c.Post(baseURL()+path, "application/json", bytes.NewReader(b))
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	var m map[string]any
	_ = json.NewDecoder(resp.Body).Decode(&m)
	return resp, m
}

// skipUnlessUp skips when no server answers /healthz.
func skipUnlessUp(t *testing.T) {
	t.Helper()
	resp, err := (&http.Client{Timeout: 2 * time.Second}).Get(baseURL() + "/healthz")
	if err != nil {
		t.Skipf("server not reachable at %s: %v", baseURL(), err)
	}
	_ = resp.Body.Close()
}
