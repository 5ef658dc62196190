package stms

import (
	"context"
	"net/http"
)

// TaskParams holds optional filters for the onboarding and offboarding
// task dashboards.
type TaskParams struct {
	FacilityCode string
	Status       string
	Page         int
	PageSize     int
}

// GetOnboardingTasks returns the onboarding tasks dashboard.
func (c *Client) GetOnboardingTasks(ctx context.Context, p TaskParams) (*Response, error) {
	return c.do(ctx, http.MethodPost, "/dashboard/onboarding/tasks", taskPayload(p))
}

// GetOffboardingTasks returns the offboarding tasks dashboard.
func (c *Client) GetOffboardingTasks(ctx context.Context, p TaskParams) (*Response, error) {
	return c.do(ctx, http.MethodPost, "/dashboard/offboarding/tasks", taskPayload(p))
}

func taskPayload(p TaskParams) map[string]interface{} {
	payload := pagedPayload(p.Page, p.PageSize, 20)
	if p.FacilityCode != "" {
		payload["facility_code"] = p.FacilityCode
	}
	if p.Status != "" {
		payload["status"] = p.Status
	}
	return payload
}
