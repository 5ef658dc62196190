package stms

import (
	"context"
	"fmt"
	"net/http"

	"stms-mcp/internal/errors"
)

// Report output formats.
const (
	FormatJSON = "json"
	FormatCSV  = "csv"
	FormatTSV  = "tsv"
)

// ListReports returns the list of available report types.
func (c *Client) ListReports(ctx context.Context) (*Response, error) {
	return c.do(ctx, http.MethodGet, "/reports", nil)
}

// GetReport fetches a specific report by name. The format selects the
// Accept header: json (default), csv or tsv. Text formats are truncated
// to the configured report size cap.
func (c *Client) GetReport(ctx context.Context, reportName, format string) (*Response, error) {
	path := fmt.Sprintf("/reports/%s", reportName)

	switch format {
	case "", FormatJSON:
		return c.do(ctx, http.MethodGet, path, nil)
	case FormatCSV:
		return c.doText(ctx, http.MethodGet, path, "text/csv")
	case FormatTSV:
		return c.doText(ctx, http.MethodGet, path, "text/tab-separated-values")
	default:
		return nil, errors.UnsupportedFormat(format)
	}
}
