// Package stms provides an authenticated client for the sc-stms-api
// staging service.
//
// Responses are normalized into a Response value that always carries the
// HTTP status code: staging regularly answers 4xx/5xx with a JSON body
// that is itself the interesting payload, so HTTP-level failures are
// reported rather than turned into Go errors. Only transport failures
// (DNS, refused connections, timeouts) produce errors.
package stms

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/avast/retry-go"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"stms-mcp/internal/core"
	"stms-mcp/internal/errors"
)

// Client is an authenticated HTTP client for the staging API.
type Client struct {
	baseURL        string
	cookie         string
	http           *http.Client
	retries        uint
	rawTextLimit   int
	reportMaxBytes int
	log            *log.Entry
}

// New returns a new client. If httpClient is nil, a default with a 30s
// timeout is used.
func New(baseURL, cookie string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &Client{
		baseURL:        strings.TrimRight(baseURL, "/"),
		cookie:         cookie,
		http:           httpClient,
		retries:        3,
		rawTextLimit:   1000,
		reportMaxBytes: 5000,
		log:            log.WithField("component", "stms-client"),
	}
}

// FromConfig builds a client from resolved configuration.
func FromConfig(cfg *core.Config) *Client {
	c := New(cfg.API.BaseURL, cfg.API.Cookie, &http.Client{Timeout: cfg.Timeout()})
	if cfg.API.RetryAttempts > 0 {
		c.retries = cfg.API.RetryAttempts
	}
	if cfg.Defaults.RawTextBytes > 0 {
		c.rawTextLimit = cfg.Defaults.RawTextBytes
	}
	if cfg.Defaults.ReportMaxBytes > 0 {
		c.reportMaxBytes = cfg.Defaults.ReportMaxBytes
	}
	return c
}

// Response is the normalized view of a staging API response.
type Response struct {
	StatusCode int         `json:"status_code"`
	Data       interface{} `json:"data,omitempty"`
	Error      string      `json:"error,omitempty"`
	RawText    string      `json:"raw_text,omitempty"`
}

// allowedMethods are the verbs the generic Request accepts.
var allowedMethods = map[string]bool{
	http.MethodGet:    true,
	http.MethodPost:   true,
	http.MethodPut:    true,
	http.MethodDelete: true,
}

// Request performs a generic API request. Use this for endpoints not
// covered by the typed methods. POST and PUT requests with a nil body
// send an empty JSON object.
func (c *Client) Request(ctx context.Context, method, path string, body interface{}) (*Response, error) {
	method = strings.ToUpper(method)
	if !allowedMethods[method] {
		return nil, errors.UnsupportedMethod(method)
	}

	switch method {
	case http.MethodGet, http.MethodDelete:
		return c.do(ctx, method, path, nil)
	default:
		if body == nil {
			body = map[string]interface{}{}
		}
		return c.do(ctx, method, path, body)
	}
}

// HealthCheck checks if the staging API is healthy and responding.
func (c *Client) HealthCheck(ctx context.Context) (*Response, error) {
	return c.do(ctx, http.MethodGet, "/public/hc", nil)
}

// GetDropdowns returns all dropdown/reference values (facilities,
// designations, vendors, etc.).
func (c *Client) GetDropdowns(ctx context.Context) (*Response, error) {
	return c.do(ctx, http.MethodGet, "/dropdowns", nil)
}

// do executes a request and normalizes the response body.
func (c *Client) do(ctx context.Context, method, path string, body interface{}) (*Response, error) {
	status, raw, err := c.roundTrip(ctx, method, path, body, "application/json")
	if err != nil {
		return nil, err
	}
	return c.formatResponse(status, raw), nil
}

// doText executes a request expecting a non-JSON body (reports in csv
// or tsv form). The returned text is capped at the configured report
// size limit.
func (c *Client) doText(ctx context.Context, method, path, accept string) (*Response, error) {
	status, raw, err := c.roundTrip(ctx, method, path, nil, accept)
	if err != nil {
		return nil, err
	}
	text := string(raw)
	if len(text) > c.reportMaxBytes {
		text = text[:c.reportMaxBytes]
	}
	return &Response{StatusCode: status, Data: text}, nil
}

// roundTrip builds and executes the HTTP request. Idempotent GETs are
// retried on transport errors.
func (c *Client) roundTrip(ctx context.Context, method, path string, body interface{}, accept string) (int, []byte, error) {
	var payload []byte
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return 0, nil, errors.Internal(fmt.Errorf("failed to encode request body: %w", err))
		}
		payload = data
	}

	requestID := uuid.New().String()
	logger := c.log.WithFields(log.Fields{
		"method":     method,
		"path":       path,
		"request_id": requestID,
	})

	attempt := func() (*http.Response, error) {
		var reader io.Reader
		if payload != nil {
			reader = bytes.NewReader(payload)
		}
		req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
		if err != nil {
			return nil, err
		}
		if c.cookie != "" {
			req.Header.Set("Cookie", c.cookie)
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Accept", accept)
		req.Header.Set("X-Request-ID", requestID)
		return c.http.Do(req)
	}

	var resp *http.Response
	var err error
	if method == http.MethodGet && c.retries > 1 {
		err = retry.Do(
			func() error {
				resp, err = attempt()
				return err
			},
			retry.Context(ctx),
			retry.Attempts(c.retries),
			retry.Delay(200*time.Millisecond),
			retry.LastErrorOnly(true),
		)
	} else {
		resp, err = attempt()
	}
	if err != nil {
		logger.WithError(err).Debug("request failed")
		return 0, nil, errors.RequestFailed(method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		logger.WithError(err).Debug("failed to read response body")
		return 0, nil, errors.RequestFailed(method, path, err)
	}

	logger.WithField("status", resp.StatusCode).Debug("request complete")
	return resp.StatusCode, raw, nil
}

// formatResponse normalizes a raw response body. JSON bodies are decoded
// into Data; anything else is reported as an error with a truncated
// snippet of the raw text.
func (c *Client) formatResponse(status int, raw []byte) *Response {
	var data interface{}
	if err := json.Unmarshal(raw, &data); err != nil {
		text := string(raw)
		if len(text) > c.rawTextLimit {
			text = text[:c.rawTextLimit]
		}
		resp := &Response{
			StatusCode: status,
			Error:      err.Error(),
		}
		if text != "" {
			resp.RawText = text
		}
		return resp
	}
	return &Response{StatusCode: status, Data: data}
}
