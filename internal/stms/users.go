package stms

import (
	"context"
	"fmt"
	"net/http"
)

// Whoami returns the current authenticated user context
// (business_unit, idp_user_code and username).
func (c *Client) Whoami(ctx context.Context) (*Response, error) {
	return c.do(ctx, http.MethodGet, "/user/whoami", nil)
}

// GetUserProfile returns detailed profile information for a user.
func (c *Client) GetUserProfile(ctx context.Context, idpUserCode string) (*Response, error) {
	return c.do(ctx, http.MethodGet, fmt.Sprintf("/user/%s/profile", idpUserCode), nil)
}

// GetUserByCode returns user details by IDP user code.
func (c *Client) GetUserByCode(ctx context.Context, idpUserCode string) (*Response, error) {
	return c.do(ctx, http.MethodPost, "/user/idp_user_code/", map[string]interface{}{
		"idp_user_code": idpUserCode,
	})
}

// ListUsersParams holds optional filters for ListUsers.
type ListUsersParams struct {
	FacilityCode    string
	DesignationCode string
	Search          string
	Page            int
	PageSize        int
}

// ListUsers lists users with optional filters.
func (c *Client) ListUsers(ctx context.Context, p ListUsersParams) (*Response, error) {
	payload := pagedPayload(p.Page, p.PageSize, 20)
	if p.FacilityCode != "" {
		payload["facility_code"] = p.FacilityCode
	}
	if p.DesignationCode != "" {
		payload["designation_code"] = p.DesignationCode
	}
	if p.Search != "" {
		payload["search"] = p.Search
	}
	return c.do(ctx, http.MethodPost, "/user/list", payload)
}

// pagedPayload builds the common pagination payload, applying defaults
// for unset values.
func pagedPayload(page, pageSize, defaultPageSize int) map[string]interface{} {
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	return map[string]interface{}{
		"page":      page,
		"page_size": pageSize,
	}
}
