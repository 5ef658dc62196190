package mcp

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
)

// newStagingBackend starts a fake staging API. Each registered route
// returns its canned JSON body; unknown paths echo the request back as
// {"method":..., "path":..., "body":...} so payload assertions can be
// made from tool results.
func newStagingBackend(t *testing.T, routes map[string]string) *httptest.Server {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		if body, ok := routes[r.URL.Path]; ok {
			_, _ = w.Write([]byte(body))
			return
		}

		var reqBody interface{}
		if raw, _ := io.ReadAll(r.Body); len(raw) > 0 {
			_ = json.Unmarshal(raw, &reqBody)
		}
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"method": r.Method,
			"path":   r.URL.Path,
			"body":   reqBody,
		})
	}))
	t.Cleanup(srv.Close)

	return srv
}

// setupTestEnvironment points the server at a temp data dir and the
// given staging backend.
func setupTestEnvironment(t *testing.T, backendURL string) {
	t.Helper()

	t.Setenv("STMS_MCP_DATA_DIR", t.TempDir())
	t.Setenv("STMS_STAGING_URL", backendURL)
	t.Setenv("STMS_STAGING_COOKIE", "session=test-cookie")
}

// newTestServer creates a Server wired to a fake staging backend.
func newTestServer(t *testing.T, routes map[string]string) *Server {
	t.Helper()

	backend := newStagingBackend(t, routes)
	setupTestEnvironment(t, backend.URL)

	srv, err := NewServer()
	if err != nil {
		t.Fatalf("failed to create server: %v", err)
	}
	return srv
}
