package mcp

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"stms-mcp/internal/errors"
)

// registerPrompts registers the debugging workflow prompts.
func (s *Server) registerPrompts() {
	s.mcp.AddPrompt(mcp.NewPrompt("debug_user_access",
		mcp.WithPromptDescription("Generate a debugging workflow for user access issues"),
		mcp.WithArgument("idp_user_code",
			mcp.ArgumentDescription("The user code to debug"),
			mcp.RequiredArgument()),
	), s.handleDebugUserAccess)

	s.mcp.AddPrompt(mcp.NewPrompt("debug_sync_issue",
		mcp.WithPromptDescription("Generate a debugging workflow for sync issues"),
		mcp.WithArgument("entity_type",
			mcp.ArgumentDescription("Type of entity with sync issues (e.g., 'user', 'attendance')"),
			mcp.RequiredArgument()),
	), s.handleDebugSyncIssue)
}

// handleDebugUserAccess renders the user access debugging workflow.
func (s *Server) handleDebugUserAccess(ctx context.Context, request mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	idpUserCode := request.Params.Arguments["idp_user_code"]
	if idpUserCode == "" {
		return nil, errors.InvalidParams("idp_user_code is required")
	}

	text := fmt.Sprintf(`Debug access issues for user: %[1]s

Steps to follow:
1. First, get user profile: get_user_profile(%[1]q)
2. Check their current access: get_user_access(%[1]q)
3. Get their flattened permissions: get_flattened_permissions(%[1]q)
4. Check pending access requests: get_pending_access_requests()

If the user is missing expected permissions:
- Check if there's a pending access request
- Verify the user's facility and designation assignments
- Check if permissions are granted via groups vs directly
`, idpUserCode)

	return mcp.NewGetPromptResult(
		"Generate a debugging workflow for user access issues",
		[]mcp.PromptMessage{
			mcp.NewPromptMessage(mcp.RoleUser, mcp.NewTextContent(text)),
		},
	), nil
}

// handleDebugSyncIssue renders the entity sync debugging workflow.
func (s *Server) handleDebugSyncIssue(ctx context.Context, request mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	entityType := request.Params.Arguments["entity_type"]
	if entityType == "" {
		return nil, errors.InvalidParams("entity_type is required")
	}

	text := fmt.Sprintf(`Debug sync issue for entity type: %s

Steps to follow:
1. Check API health: health_check()
2. Get current user context: whoami()
3. If user sync issue:
   - Get user profile to see last_wf_sync timestamp
   - Check entity_event table for pending events
   - Verify WF integration is returning data

4. Review recent events in the event queue using push_event tool to trace flow
5. Check if the entity exists in both source (WF) and target (STMS) systems
`, entityType)

	return mcp.NewGetPromptResult(
		"Generate a debugging workflow for sync issues",
		[]mcp.PromptMessage{
			mcp.NewPromptMessage(mcp.RoleUser, mcp.NewTextContent(text)),
		},
	), nil
}
