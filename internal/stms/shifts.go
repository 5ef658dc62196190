package stms

import (
	"context"
	"net/http"
)

// ListShiftsParams holds optional filters for ListShifts.
type ListShiftsParams struct {
	FacilityCode string
	ShiftType    string
	Page         int
	PageSize     int
}

// ListShifts lists shifts with optional filters.
func (c *Client) ListShifts(ctx context.Context, p ListShiftsParams) (*Response, error) {
	payload := pagedPayload(p.Page, p.PageSize, 50)
	if p.FacilityCode != "" {
		payload["facility_code"] = p.FacilityCode
	}
	if p.ShiftType != "" {
		payload["shift_type"] = p.ShiftType
	}
	return c.do(ctx, http.MethodPost, "/shifts", payload)
}

// RosterParams identifies a facility and date range for GetRoster.
// Dates use the YYYY-MM-DD form.
type RosterParams struct {
	FacilityCode    string
	StartDate       string
	EndDate         string
	DesignationCode string
}

// GetRoster returns roster data for a facility and date range.
func (c *Client) GetRoster(ctx context.Context, p RosterParams) (*Response, error) {
	payload := map[string]interface{}{
		"facility_code": p.FacilityCode,
		"start_date":    p.StartDate,
		"end_date":      p.EndDate,
	}
	if p.DesignationCode != "" {
		payload["designation_code"] = p.DesignationCode
	}
	return c.do(ctx, http.MethodPost, "/roster", payload)
}
