package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		expected string
	}{
		{
			name:     "simple error",
			err:      New(CodeInvalidParams, "path is required"),
			expected: "INVALID_PARAMS: path is required",
		},
		{
			name:     "wrapped error",
			err:      Wrap(CodeRequestFailed, "GET /user/whoami failed", fmt.Errorf("connection refused")),
			expected: "REQUEST_FAILED: GET /user/whoami failed: connection refused",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.err.Error()
			if got != tt.expected {
				t.Errorf("Error() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestError_Unwrap(t *testing.T) {
	t.Run("no wrapped error", func(t *testing.T) {
		err := New(CodeInvalidParams, "missing param")
		if err.Unwrap() != nil {
			t.Errorf("Unwrap() = %v, want nil", err.Unwrap())
		}
	})

	t.Run("with wrapped error", func(t *testing.T) {
		underlying := fmt.Errorf("network error")
		err := Wrap(CodeRequestFailed, "request failed", underlying)

		unwrapped := err.Unwrap()
		if unwrapped == nil {
			t.Fatal("Unwrap() = nil, want error")
		}
		if unwrapped.Error() != "network error" {
			t.Errorf("Unwrap() = %q, want %q", unwrapped.Error(), "network error")
		}
	})

	t.Run("stdlib errors.Is compatibility", func(t *testing.T) {
		underlying := fmt.Errorf("network error")
		err := Wrap(CodeRequestFailed, "request failed", underlying)

		if !errors.Is(err, underlying) {
			t.Error("errors.Is() = false, want true for wrapped error")
		}
	})

	t.Run("stdlib errors.As compatibility", func(t *testing.T) {
		err := New(CodeUnsupportedMethod, "unsupported method: PATCH")

		var stmsErr *Error
		if !errors.As(err, &stmsErr) {
			t.Error("errors.As() = false, want true for stms error")
		}
		if stmsErr.Code != CodeUnsupportedMethod {
			t.Errorf("errors.As() code = %q, want %q", stmsErr.Code, CodeUnsupportedMethod)
		}
	})
}

func TestNew(t *testing.T) {
	err := New("TEST_CODE", "test message")

	if err.Code != "TEST_CODE" {
		t.Errorf("Code = %q, want %q", err.Code, "TEST_CODE")
	}
	if err.Message != "test message" {
		t.Errorf("Message = %q, want %q", err.Message, "test message")
	}
	if err.wrapped != nil {
		t.Errorf("wrapped = %v, want nil", err.wrapped)
	}
}

func TestWrap(t *testing.T) {
	underlying := fmt.Errorf("underlying error")
	err := Wrap("TEST_CODE", "test message", underlying)

	if err.Code != "TEST_CODE" {
		t.Errorf("Code = %q, want %q", err.Code, "TEST_CODE")
	}
	if err.Message != "test message" {
		t.Errorf("Message = %q, want %q", err.Message, "test message")
	}
	if err.wrapped != underlying {
		t.Errorf("wrapped = %v, want %v", err.wrapped, underlying)
	}
}

func TestCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{
			name:     "nil error",
			err:      nil,
			expected: "",
		},
		{
			name:     "stms error",
			err:      New(CodeConfigInvalid, "bad config"),
			expected: "CONFIG_INVALID",
		},
		{
			name:     "plain error",
			err:      fmt.Errorf("plain"),
			expected: "",
		},
		{
			name:     "stms error wrapped by fmt.Errorf",
			err:      fmt.Errorf("outer: %w", New(CodeRequestFailed, "inner")),
			expected: "REQUEST_FAILED",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Code(tt.err)
			if got != tt.expected {
				t.Errorf("Code() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestIs(t *testing.T) {
	err := UnsupportedMethod("PATCH")

	if !Is(err, CodeUnsupportedMethod) {
		t.Error("Is() = false, want true for matching code")
	}
	if Is(err, CodeRequestFailed) {
		t.Error("Is() = true, want false for non-matching code")
	}
	if Is(nil, CodeRequestFailed) {
		t.Error("Is(nil) = true, want false")
	}
}

func TestConvenienceConstructors(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		code string
	}{
		{"ConfigInvalid", ConfigInvalid(fmt.Errorf("bad url")), CodeConfigInvalid},
		{"InvalidParams", InvalidParams("path is required"), CodeInvalidParams},
		{"CookieMissing", CookieMissing(), CodeCookieMissing},
		{"RequestFailed", RequestFailed("GET", "/dropdowns", fmt.Errorf("timeout")), CodeRequestFailed},
		{"InvalidResponse", InvalidResponse("truncated body"), CodeInvalidResponse},
		{"UnsupportedMethod", UnsupportedMethod("PATCH"), CodeUnsupportedMethod},
		{"UnsupportedFormat", UnsupportedFormat("xml"), CodeUnsupportedFormat},
		{"Internal", Internal(fmt.Errorf("boom")), CodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Code != tt.code {
				t.Errorf("Code = %q, want %q", tt.err.Code, tt.code)
			}
			if tt.err.Message == "" {
				t.Error("expected non-empty message")
			}
		})
	}
}
