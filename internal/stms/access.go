package stms

import (
	"context"
	"net/http"
)

// AccessGrant describes an access request to create for a user.
type AccessGrant struct {
	IDPUserCode string
	EntityType  string
	EntityCode  string
	ScopeType   string
	ScopeCode   string
}

// GiveAccess creates an access request granting a user access to an
// entity. An unset scope type defaults to "default" with a null scope
// code.
func (c *Client) GiveAccess(ctx context.Context, g AccessGrant) (*Response, error) {
	scopeType := g.ScopeType
	if scopeType == "" {
		scopeType = "default"
	}
	var scopeCode interface{}
	if g.ScopeCode != "" {
		scopeCode = g.ScopeCode
	}

	payload := map[string]interface{}{
		"action":        "create",
		"idp_user_code": g.IDPUserCode,
		"entity": map[string]interface{}{
			"entity_type": g.EntityType,
			"entity_code": g.EntityCode,
		},
		"scope": map[string]interface{}{
			"scope_type": scopeType,
			"scope_code": scopeCode,
		},
		"reason": "Access granted by MCP server",
	}
	return c.do(ctx, http.MethodPost, "/access-control/access-requests", payload)
}

// GetUserPermissions returns all permissions (direct and group-based)
// for the current user.
func (c *Client) GetUserPermissions(ctx context.Context) (*Response, error) {
	return c.do(ctx, http.MethodPost, "/access-control/users/permissions", map[string]interface{}{})
}

// GetUserAccess returns current and historical access permissions for a
// specific user.
func (c *Client) GetUserAccess(ctx context.Context, idpUserCode string) (*Response, error) {
	return c.do(ctx, http.MethodPost, "/access-control/users/access", map[string]interface{}{
		"idp_user_code": idpUserCode,
	})
}

// AccessCheck describes an entity/scope pair to test the current user
// against.
type AccessCheck struct {
	EntityType string
	EntityCode string
	ScopeType  string
	ScopeCode  string
}

// CheckHasAccess checks if the current user has access to a specific
// entity/scope.
func (c *Client) CheckHasAccess(ctx context.Context, check AccessCheck) (*Response, error) {
	payload := map[string]interface{}{
		"entity_type": check.EntityType,
		"entity_code": check.EntityCode,
	}
	if check.ScopeType != "" {
		payload["scope_type"] = check.ScopeType
	}
	if check.ScopeCode != "" {
		payload["scope_code"] = check.ScopeCode
	}
	return c.do(ctx, http.MethodPost, "/access-control/users/has-access", payload)
}

// GetFlattenedPermissions returns the flattened permissions view for a
// user (all effective permissions).
func (c *Client) GetFlattenedPermissions(ctx context.Context, idpUserCode string) (*Response, error) {
	return c.do(ctx, http.MethodPost, "/access-control/users/flattened-permissions", map[string]interface{}{
		"idp_user_code": idpUserCode,
	})
}

// GetPendingAccessRequests returns pending access requests waiting for
// approval, with the current user as approver.
func (c *Client) GetPendingAccessRequests(ctx context.Context) (*Response, error) {
	return c.do(ctx, http.MethodPost, "/access-control/users/approver/pending/access-requests", map[string]interface{}{})
}

// AccessRequestHistoryParams holds optional filters for
// GetAccessRequestHistory.
type AccessRequestHistoryParams struct {
	IDPUserCode string
	Status      string
	Page        int
	PageSize    int
}

// GetAccessRequestHistory returns a filtered history of access requests.
// Status may be "pending", "approved", "rejected" or "cancelled".
func (c *Client) GetAccessRequestHistory(ctx context.Context, p AccessRequestHistoryParams) (*Response, error) {
	payload := pagedPayload(p.Page, p.PageSize, 20)
	if p.IDPUserCode != "" {
		payload["idp_user_code"] = p.IDPUserCode
	}
	if p.Status != "" {
		payload["status"] = p.Status
	}
	return c.do(ctx, http.MethodPost, "/access-control/users/access-requests", payload)
}
