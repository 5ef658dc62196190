package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"stms-mcp/internal/errors"
	"stms-mcp/internal/stms"
)

// handleWhoami implements whoami: returns the current authenticated user context.
func (s *Server) handleWhoami(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	resp, err := s.client.Whoami(ctx)
	if err != nil {
		return mcpErrorResult(err), nil
	}
	return jsonResult(resp), nil
}

// handleGiveAccess implements give_access_to_user.
func (s *Server) handleGiveAccess(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	idpUserCode, err := request.RequireString("idp_user_code")
	if err != nil {
		return errorResult(errors.CodeInvalidParams, "idp_user_code is required"), nil
	}
	entityType, err := request.RequireString("entity_type")
	if err != nil {
		return errorResult(errors.CodeInvalidParams, "entity_type is required"), nil
	}
	entityCode, err := request.RequireString("entity_code")
	if err != nil {
		return errorResult(errors.CodeInvalidParams, "entity_code is required"), nil
	}

	resp, err := s.client.GiveAccess(ctx, stms.AccessGrant{
		IDPUserCode: idpUserCode,
		EntityType:  entityType,
		EntityCode:  entityCode,
		ScopeType:   request.GetString("scope_type", ""),
		ScopeCode:   request.GetString("scope_code", ""),
	})
	if err != nil {
		return mcpErrorResult(err), nil
	}
	return jsonResult(resp), nil
}

// handleGetUserProfile implements get_user_profile.
func (s *Server) handleGetUserProfile(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	idpUserCode, err := request.RequireString("idp_user_code")
	if err != nil {
		return errorResult(errors.CodeInvalidParams, "idp_user_code is required"), nil
	}

	resp, err := s.client.GetUserProfile(ctx, idpUserCode)
	if err != nil {
		return mcpErrorResult(err), nil
	}
	return jsonResult(resp), nil
}

// handleGetUserByCode implements get_user_by_code.
func (s *Server) handleGetUserByCode(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	idpUserCode, err := request.RequireString("idp_user_code")
	if err != nil {
		return errorResult(errors.CodeInvalidParams, "idp_user_code is required"), nil
	}

	resp, err := s.client.GetUserByCode(ctx, idpUserCode)
	if err != nil {
		return mcpErrorResult(err), nil
	}
	return jsonResult(resp), nil
}

// handleListUsers implements list_users.
func (s *Server) handleListUsers(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	resp, err := s.client.ListUsers(ctx, stms.ListUsersParams{
		FacilityCode:    request.GetString("facility_code", ""),
		DesignationCode: request.GetString("designation_code", ""),
		Search:          request.GetString("search", ""),
		Page:            request.GetInt("page", 1),
		PageSize:        request.GetInt("page_size", s.cfg.Defaults.PageSize),
	})
	if err != nil {
		return mcpErrorResult(err), nil
	}
	return jsonResult(resp), nil
}

// handleGetUserPermissions implements get_user_permissions.
func (s *Server) handleGetUserPermissions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	resp, err := s.client.GetUserPermissions(ctx)
	if err != nil {
		return mcpErrorResult(err), nil
	}
	return jsonResult(resp), nil
}

// handleGetUserAccess implements get_user_access.
func (s *Server) handleGetUserAccess(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	idpUserCode, err := request.RequireString("idp_user_code")
	if err != nil {
		return errorResult(errors.CodeInvalidParams, "idp_user_code is required"), nil
	}

	resp, err := s.client.GetUserAccess(ctx, idpUserCode)
	if err != nil {
		return mcpErrorResult(err), nil
	}
	return jsonResult(resp), nil
}

// handleCheckHasAccess implements check_has_access.
func (s *Server) handleCheckHasAccess(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	entityType, err := request.RequireString("entity_type")
	if err != nil {
		return errorResult(errors.CodeInvalidParams, "entity_type is required"), nil
	}
	entityCode, err := request.RequireString("entity_code")
	if err != nil {
		return errorResult(errors.CodeInvalidParams, "entity_code is required"), nil
	}

	resp, err := s.client.CheckHasAccess(ctx, stms.AccessCheck{
		EntityType: entityType,
		EntityCode: entityCode,
		ScopeType:  request.GetString("scope_type", ""),
		ScopeCode:  request.GetString("scope_code", ""),
	})
	if err != nil {
		return mcpErrorResult(err), nil
	}
	return jsonResult(resp), nil
}

// handleGetFlattenedPermissions implements get_flattened_permissions.
func (s *Server) handleGetFlattenedPermissions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	idpUserCode, err := request.RequireString("idp_user_code")
	if err != nil {
		return errorResult(errors.CodeInvalidParams, "idp_user_code is required"), nil
	}

	resp, err := s.client.GetFlattenedPermissions(ctx, idpUserCode)
	if err != nil {
		return mcpErrorResult(err), nil
	}
	return jsonResult(resp), nil
}

// handleGetPendingAccessRequests implements get_pending_access_requests.
func (s *Server) handleGetPendingAccessRequests(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	resp, err := s.client.GetPendingAccessRequests(ctx)
	if err != nil {
		return mcpErrorResult(err), nil
	}
	return jsonResult(resp), nil
}

// handleGetAccessRequestHistory implements get_access_request_history.
func (s *Server) handleGetAccessRequestHistory(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	resp, err := s.client.GetAccessRequestHistory(ctx, stms.AccessRequestHistoryParams{
		IDPUserCode: request.GetString("idp_user_code", ""),
		Status:      request.GetString("status", ""),
		Page:        request.GetInt("page", 1),
		PageSize:    request.GetInt("page_size", s.cfg.Defaults.PageSize),
	})
	if err != nil {
		return mcpErrorResult(err), nil
	}
	return jsonResult(resp), nil
}

// handlePushEvent implements push_event.
func (s *Server) handlePushEvent(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	eventType, err := request.RequireString("event_type")
	if err != nil {
		return errorResult(errors.CodeInvalidParams, "event_type is required"), nil
	}

	payload, ok := request.GetArguments()["payload"].(map[string]interface{})
	if !ok {
		return errorResult(errors.CodeInvalidParams, "payload must be a JSON object"), nil
	}

	resp, err := s.client.PushEvent(ctx, eventType, payload)
	if err != nil {
		return mcpErrorResult(err), nil
	}
	return jsonResult(resp), nil
}

// handleTriggerCDMSync implements trigger_cdm_sync.
func (s *Server) handleTriggerCDMSync(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	resp, err := s.client.TriggerCDMSync(ctx)
	if err != nil {
		return mcpErrorResult(err), nil
	}
	return jsonResult(resp), nil
}

// handleGetDropdowns implements get_dropdowns.
func (s *Server) handleGetDropdowns(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	resp, err := s.client.GetDropdowns(ctx)
	if err != nil {
		return mcpErrorResult(err), nil
	}
	return jsonResult(resp), nil
}

// handleListShifts implements list_shifts.
func (s *Server) handleListShifts(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	resp, err := s.client.ListShifts(ctx, stms.ListShiftsParams{
		FacilityCode: request.GetString("facility_code", ""),
		ShiftType:    request.GetString("shift_type", ""),
		Page:         request.GetInt("page", 1),
		PageSize:     request.GetInt("page_size", s.cfg.Defaults.ShiftPageSize),
	})
	if err != nil {
		return mcpErrorResult(err), nil
	}
	return jsonResult(resp), nil
}

// handleGetRoster implements get_roster.
func (s *Server) handleGetRoster(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	facilityCode, err := request.RequireString("facility_code")
	if err != nil {
		return errorResult(errors.CodeInvalidParams, "facility_code is required"), nil
	}
	startDate, err := request.RequireString("start_date")
	if err != nil {
		return errorResult(errors.CodeInvalidParams, "start_date is required"), nil
	}
	endDate, err := request.RequireString("end_date")
	if err != nil {
		return errorResult(errors.CodeInvalidParams, "end_date is required"), nil
	}

	resp, err := s.client.GetRoster(ctx, stms.RosterParams{
		FacilityCode:    facilityCode,
		StartDate:       startDate,
		EndDate:         endDate,
		DesignationCode: request.GetString("designation_code", ""),
	})
	if err != nil {
		return mcpErrorResult(err), nil
	}
	return jsonResult(resp), nil
}

// handleListReports implements list_reports.
func (s *Server) handleListReports(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	resp, err := s.client.ListReports(ctx)
	if err != nil {
		return mcpErrorResult(err), nil
	}
	return jsonResult(resp), nil
}

// handleGetReport implements get_report.
func (s *Server) handleGetReport(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	reportName, err := request.RequireString("report_name")
	if err != nil {
		return errorResult(errors.CodeInvalidParams, "report_name is required"), nil
	}
	format := request.GetString("format", stms.FormatJSON)

	resp, err := s.client.GetReport(ctx, reportName, format)
	if err != nil {
		return mcpErrorResult(err), nil
	}
	return jsonResult(resp), nil
}

// handleGetOnboardingTasks implements get_onboarding_tasks.
func (s *Server) handleGetOnboardingTasks(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	resp, err := s.client.GetOnboardingTasks(ctx, s.taskParams(request))
	if err != nil {
		return mcpErrorResult(err), nil
	}
	return jsonResult(resp), nil
}

// handleGetOffboardingTasks implements get_offboarding_tasks.
func (s *Server) handleGetOffboardingTasks(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	resp, err := s.client.GetOffboardingTasks(ctx, s.taskParams(request))
	if err != nil {
		return mcpErrorResult(err), nil
	}
	return jsonResult(resp), nil
}

// taskParams extracts the shared dashboard filter parameters.
func (s *Server) taskParams(request mcp.CallToolRequest) stms.TaskParams {
	return stms.TaskParams{
		FacilityCode: request.GetString("facility_code", ""),
		Status:       request.GetString("status", ""),
		Page:         request.GetInt("page", 1),
		PageSize:     request.GetInt("page_size", s.cfg.Defaults.PageSize),
	}
}

// handleHealthCheck implements health_check.
func (s *Server) handleHealthCheck(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	resp, err := s.client.HealthCheck(ctx)
	if err != nil {
		return mcpErrorResult(err), nil
	}
	return jsonResult(resp), nil
}

// handleAPIRequest implements api_request: a generic staging API request.
func (s *Server) handleAPIRequest(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	method, err := request.RequireString("method")
	if err != nil {
		return errorResult(errors.CodeInvalidParams, "method is required"), nil
	}
	path, err := request.RequireString("path")
	if err != nil {
		return errorResult(errors.CodeInvalidParams, "path is required"), nil
	}

	var body interface{}
	if raw, ok := request.GetArguments()["body"]; ok && raw != nil {
		obj, ok := raw.(map[string]interface{})
		if !ok {
			return errorResult(errors.CodeInvalidParams, "body must be a JSON object"), nil
		}
		body = obj
	}

	resp, err := s.client.Request(ctx, method, path, body)
	if err != nil {
		return mcpErrorResult(err), nil
	}
	return jsonResult(resp), nil
}

// Helper functions

// mcpErrorResult converts a stms-mcp error to an MCP error result.
func mcpErrorResult(err error) *mcp.CallToolResult {
	code := errors.Code(err)
	if code == "" {
		code = errors.CodeInternal
	}

	return errorResult(code, err.Error())
}

// errorResult creates an MCP error result.
func errorResult(code, message string) *mcp.CallToolResult {
	errorData := map[string]interface{}{
		"error": map[string]interface{}{
			"code":    code,
			"message": message,
		},
	}

	jsonBytes, err := json.Marshal(errorData)
	if err != nil {
		// Fallback to simple text
		return mcp.NewToolResultText(fmt.Sprintf("Error: %s - %s", code, message))
	}

	return mcp.NewToolResultText(string(jsonBytes))
}

// jsonResult creates an MCP success result from a JSON-serializable object.
func jsonResult(data interface{}) *mcp.CallToolResult {
	jsonBytes, err := json.Marshal(data)
	if err != nil {
		return errorResult(errors.CodeInternal, fmt.Sprintf("failed to marshal response: %s", err))
	}

	return mcp.NewToolResultText(string(jsonBytes))
}
