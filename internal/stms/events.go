package stms

import (
	"context"
	"net/http"
)

// PushEvent pushes an event to the event queue (admin only).
func (c *Client) PushEvent(ctx context.Context, eventType string, payload map[string]interface{}) (*Response, error) {
	return c.do(ctx, http.MethodPost, "/events/push", map[string]interface{}{
		"event_type": eventType,
		"payload":    payload,
	})
}

// TriggerCDMSync triggers CDM ID sync for active users (admin only).
func (c *Client) TriggerCDMSync(ctx context.Context) (*Response, error) {
	return c.do(ctx, http.MethodPost, "/trigger_cdm_id_sync", map[string]interface{}{})
}
