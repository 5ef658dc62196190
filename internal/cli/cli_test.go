package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"stms-mcp/internal/errors"
)

// setupTestEnv points the CLI at a temp data dir and the given staging
// backend URL.
func setupTestEnv(t *testing.T, backendURL string) {
	t.Helper()

	t.Setenv("STMS_MCP_DATA_DIR", t.TempDir())
	t.Setenv("STMS_STAGING_URL", backendURL)
	t.Setenv("STMS_STAGING_COOKIE", "session=test-cookie")
}

// newStagingBackend starts a fake staging API that returns the given
// JSON body for every request.
func newStagingBackend(t *testing.T, body string) *httptest.Server {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)

	return srv
}

// executeCommand executes a cobra command with args and returns output.
// Captures real os.Stdout/os.Stderr since CLI commands use fmt.Printf.
func executeCommand(t *testing.T, cmd *cobra.Command, args ...string) (stdout, stderr string, err error) {
	t.Helper()

	// Save and restore original stdout/stderr
	oldStdout := os.Stdout
	oldStderr := os.Stderr
	defer func() {
		os.Stdout = oldStdout
		os.Stderr = oldStderr
	}()

	// Create pipes
	stdoutR, stdoutW, pipeErr := os.Pipe()
	if pipeErr != nil {
		t.Fatalf("failed to create stdout pipe: %v", pipeErr)
	}
	stderrR, stderrW, pipeErr := os.Pipe()
	if pipeErr != nil {
		t.Fatalf("failed to create stderr pipe: %v", pipeErr)
	}

	os.Stdout = stdoutW
	os.Stderr = stderrW

	// Also set cobra's output to the pipes
	cmd.SetOut(stdoutW)
	cmd.SetErr(stderrW)
	cmd.SetArgs(args)

	// Execute in goroutine so pipe reads don't block
	errChan := make(chan error, 1)
	go func() {
		errChan <- cmd.Execute()
		stdoutW.Close()
		stderrW.Close()
	}()

	// Read all output
	var stdoutBuf, stderrBuf bytes.Buffer
	stdoutDone := make(chan struct{})
	stderrDone := make(chan struct{})
	go func() {
		_, _ = io.Copy(&stdoutBuf, stdoutR)
		close(stdoutDone)
	}()
	go func() {
		_, _ = io.Copy(&stderrBuf, stderrR)
		close(stderrDone)
	}()

	err = <-errChan
	<-stdoutDone
	<-stderrDone

	return stdoutBuf.String(), stderrBuf.String(), err
}

func TestHelpers_GetExitCode(t *testing.T) {
	tests := []struct {
		err  error
		name string
		want int
	}{
		{
			name: "nil error",
			err:  nil,
			want: 0,
		},
		{
			name: "config invalid",
			err:  errors.ConfigInvalid(fmt.Errorf("bad url")),
			want: 2,
		},
		{
			name: "request failed",
			err:  errors.RequestFailed("GET", "/user/whoami", fmt.Errorf("refused")),
			want: 3,
		},
		{
			name: "invalid params",
			err:  errors.InvalidParams("bad body"),
			want: 4,
		},
		{
			name: "unsupported method",
			err:  errors.UnsupportedMethod("PATCH"),
			want: 4,
		},
		{
			name: "unsupported format",
			err:  errors.UnsupportedFormat("xml"),
			want: 4,
		},
		{
			name: "plain error",
			err:  fmt.Errorf("boom"),
			want: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := getExitCode(tt.err)
			if got != tt.want {
				t.Errorf("getExitCode() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestHelpers_ParseBodyArg(t *testing.T) {
	t.Run("no body", func(t *testing.T) {
		body, err := parseBodyArg([]string{"GET", "/user/whoami"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if body != nil {
			t.Errorf("expected nil body, got %v", body)
		}
	})

	t.Run("valid object", func(t *testing.T) {
		body, err := parseBodyArg([]string{"POST", "/user/list", `{"page":1}`})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		obj, ok := body.(map[string]interface{})
		if !ok {
			t.Fatalf("expected object, got %T", body)
		}
		if obj["page"] != float64(1) {
			t.Errorf("expected page 1, got %v", obj["page"])
		}
	})

	t.Run("invalid JSON", func(t *testing.T) {
		_, err := parseBodyArg([]string{"POST", "/user/list", `{not json`})
		if err == nil {
			t.Fatal("expected error")
		}
		if !errors.Is(err, errors.CodeInvalidParams) {
			t.Errorf("expected INVALID_PARAMS, got %v", err)
		}
	})

	t.Run("array body rejected", func(t *testing.T) {
		_, err := parseBodyArg([]string{"POST", "/user/list", `[1,2]`})
		if err == nil {
			t.Fatal("expected error for non-object body")
		}
	})
}

func TestWhoamiCommand(t *testing.T) {
	backend := newStagingBackend(t, `{"username":"jdoe"}`)
	setupTestEnv(t, backend.URL)

	flagJSON = true
	defer func() { flagJSON = false }()

	stdout, _, err := executeCommand(t, rootCmd, "whoami", "--json")
	if err != nil {
		t.Fatalf("whoami failed: %v", err)
	}

	var resp map[string]interface{}
	if err := json.Unmarshal([]byte(stdout), &resp); err != nil {
		t.Fatalf("invalid JSON output %q: %v", stdout, err)
	}
	if resp["status_code"] != float64(200) {
		t.Errorf("expected status_code 200, got %v", resp["status_code"])
	}
	data := resp["data"].(map[string]interface{})
	if data["username"] != "jdoe" {
		t.Errorf("expected username jdoe, got %v", data["username"])
	}
}

func TestCallCommand_UnsupportedMethod(t *testing.T) {
	backend := newStagingBackend(t, `{}`)
	setupTestEnv(t, backend.URL)

	_, _, err := executeCommand(t, rootCmd, "call", "PATCH", "/user/list")
	if err == nil {
		t.Fatal("expected error for unsupported method")
	}
	if !errors.Is(err, errors.CodeUnsupportedMethod) {
		t.Errorf("expected UNSUPPORTED_METHOD, got %v", err)
	}
}

func TestConfigCommand_JSON(t *testing.T) {
	setupTestEnv(t, "https://stms-api.example.test")

	flagJSON = true
	defer func() { flagJSON = false }()

	stdout, _, err := executeCommand(t, rootCmd, "config", "--json")
	if err != nil {
		t.Fatalf("config failed: %v", err)
	}

	var resolved map[string]interface{}
	if err := json.Unmarshal([]byte(stdout), &resolved); err != nil {
		t.Fatalf("invalid JSON output %q: %v", stdout, err)
	}
	if resolved["staging_url"] != "https://stms-api.example.test" {
		t.Errorf("expected staging_url from env, got %v", resolved["staging_url"])
	}
	if resolved["cookie_configured"] != true {
		t.Error("expected cookie_configured true")
	}
	if strings.Contains(stdout, "test-cookie") {
		t.Errorf("config output leaks cookie: %s", stdout)
	}
}

func TestVersionCommand(t *testing.T) {
	setupTestEnv(t, "https://stms-api.example.test")

	stdout, _, err := executeCommand(t, rootCmd, "version")
	if err != nil {
		t.Fatalf("version failed: %v", err)
	}
	if !strings.Contains(stdout, "stms-mcp version") {
		t.Errorf("unexpected version output: %q", stdout)
	}
}
