package mcp

import (
	"context"
	"fmt"
	"os"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	log "github.com/sirupsen/logrus"

	"stms-mcp/internal/core"
	"stms-mcp/internal/stms"
)

const (
	serverName    = "sc-stms-api"
	serverVersion = "0.1.0"
)

// Server wraps the MCP server with the staging API client and
// configuration.
type Server struct {
	mcp    *server.MCPServer
	cfg    *core.Config
	client *stms.Client
}

// NewServer creates and configures the MCP server with all staging tools,
// resources and prompts registered.
func NewServer() (*Server, error) {
	// Load configuration
	dataDir, err := core.DataDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get data directory: %w", err)
	}

	cfg, err := core.LoadConfig(dataDir)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	s := &Server{
		cfg:    cfg,
		client: stms.FromConfig(cfg),
	}

	if !cfg.CookieConfigured() {
		log.Warn("STMS_STAGING_COOKIE is not set; authenticated endpoints will be rejected by staging")
	}

	// Create MCP server
	s.mcp = server.NewMCPServer(serverName, serverVersion,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(true, true),
		server.WithPromptCapabilities(true),
	)

	// Register all tools, resources and prompts
	if err := s.registerTools(); err != nil {
		return nil, fmt.Errorf("failed to register tools: %w", err)
	}
	s.registerResources()
	s.registerPrompts()

	return s, nil
}

// registerTools registers all staging API tools.
func (s *Server) registerTools() error {
	// whoami
	s.mcp.AddTool(mcp.NewTool("whoami",
		mcp.WithDescription("Get the current authenticated user context. Returns business_unit, idp_user_code, and username."),
	), s.handleWhoami)

	// give_access_to_user
	s.mcp.AddTool(mcp.NewTool("give_access_to_user",
		mcp.WithDescription("Give access to a user for a specific entity"),
		mcp.WithString("idp_user_code",
			mcp.Required(),
			mcp.Description("The IDP user code (e.g., 'stg-xxx@idp.noon.partners')")),
		mcp.WithString("entity_type",
			mcp.Required(),
			mcp.Description("Type of entity (e.g., 'permission', 'role')")),
		mcp.WithString("entity_code",
			mcp.Required(),
			mcp.Description("Code of the entity")),
		mcp.WithString("scope_type",
			mcp.Description("Type of scope (default: \"default\")")),
		mcp.WithString("scope_code",
			mcp.Description("Code of scope (optional)")),
	), s.handleGiveAccess)

	// get_user_profile
	s.mcp.AddTool(mcp.NewTool("get_user_profile",
		mcp.WithDescription("Get detailed profile information for a user"),
		mcp.WithString("idp_user_code",
			mcp.Required(),
			mcp.Description("The IDP user code (e.g., 'stg-xxx@idp.noon.partners')")),
	), s.handleGetUserProfile)

	// get_user_by_code
	s.mcp.AddTool(mcp.NewTool("get_user_by_code",
		mcp.WithDescription("Get user details by IDP user code"),
		mcp.WithString("idp_user_code",
			mcp.Required(),
			mcp.Description("The IDP user code to look up")),
	), s.handleGetUserByCode)

	// list_users
	s.mcp.AddTool(mcp.NewTool("list_users",
		mcp.WithDescription("List users with optional filters"),
		mcp.WithString("facility_code",
			mcp.Description("Filter by facility code (optional)")),
		mcp.WithString("designation_code",
			mcp.Description("Filter by designation code (optional)")),
		mcp.WithString("search",
			mcp.Description("Search term for user name/email (optional)")),
		mcp.WithNumber("page",
			mcp.Description("Page number (default 1)")),
		mcp.WithNumber("page_size",
			mcp.Description("Results per page (default 20)")),
	), s.handleListUsers)

	// get_user_permissions
	s.mcp.AddTool(mcp.NewTool("get_user_permissions",
		mcp.WithDescription("Get all permissions (direct and group-based) for the current user"),
	), s.handleGetUserPermissions)

	// get_user_access
	s.mcp.AddTool(mcp.NewTool("get_user_access",
		mcp.WithDescription("Get current and historical access permissions for a specific user"),
		mcp.WithString("idp_user_code",
			mcp.Required(),
			mcp.Description("The IDP user code")),
	), s.handleGetUserAccess)

	// check_has_access
	s.mcp.AddTool(mcp.NewTool("check_has_access",
		mcp.WithDescription("Check if the current user has access to a specific entity/scope"),
		mcp.WithString("entity_type",
			mcp.Required(),
			mcp.Description("Type of entity (e.g., 'permission', 'role')")),
		mcp.WithString("entity_code",
			mcp.Required(),
			mcp.Description("Code of the entity")),
		mcp.WithString("scope_type",
			mcp.Description("Type of scope (optional, e.g., 'facility')")),
		mcp.WithString("scope_code",
			mcp.Description("Code of scope (optional)")),
	), s.handleCheckHasAccess)

	// get_flattened_permissions
	s.mcp.AddTool(mcp.NewTool("get_flattened_permissions",
		mcp.WithDescription("Get flattened permissions view for a user (shows all effective permissions)"),
		mcp.WithString("idp_user_code",
			mcp.Required(),
			mcp.Description("The IDP user code")),
	), s.handleGetFlattenedPermissions)

	// get_pending_access_requests
	s.mcp.AddTool(mcp.NewTool("get_pending_access_requests",
		mcp.WithDescription("Get pending access requests waiting for approval (for current user as approver)"),
	), s.handleGetPendingAccessRequests)

	// get_access_request_history
	s.mcp.AddTool(mcp.NewTool("get_access_request_history",
		mcp.WithDescription("Get filtered history of access requests"),
		mcp.WithString("idp_user_code",
			mcp.Description("Filter by user (optional)")),
		mcp.WithString("status",
			mcp.Description("Filter by status - 'pending', 'approved', 'rejected', 'cancelled' (optional)")),
		mcp.WithNumber("page",
			mcp.Description("Page number (default 1)")),
		mcp.WithNumber("page_size",
			mcp.Description("Results per page (default 20)")),
	), s.handleGetAccessRequestHistory)

	// push_event
	s.mcp.AddTool(mcp.NewTool("push_event",
		mcp.WithDescription("Push an event to the event queue (admin only)"),
		mcp.WithString("event_type",
			mcp.Required(),
			mcp.Description("Type of event (e.g., 'user_created', 'user_updated')")),
		mcp.WithObject("payload",
			mcp.Required(),
			mcp.Description("Event payload as a JSON object")),
	), s.handlePushEvent)

	// trigger_cdm_sync
	s.mcp.AddTool(mcp.NewTool("trigger_cdm_sync",
		mcp.WithDescription("Trigger CDM ID sync for active users (admin only)"),
	), s.handleTriggerCDMSync)

	// get_dropdowns
	s.mcp.AddTool(mcp.NewTool("get_dropdowns",
		mcp.WithDescription("Get all dropdown/reference values (facilities, designations, vendors, etc.)"),
	), s.handleGetDropdowns)

	// list_shifts
	s.mcp.AddTool(mcp.NewTool("list_shifts",
		mcp.WithDescription("List shifts with optional filters"),
		mcp.WithString("facility_code",
			mcp.Description("Filter by facility (optional)")),
		mcp.WithString("shift_type",
			mcp.Description("Filter by shift type (optional)")),
		mcp.WithNumber("page",
			mcp.Description("Page number (default 1)")),
		mcp.WithNumber("page_size",
			mcp.Description("Results per page (default 50)")),
	), s.handleListShifts)

	// get_roster
	s.mcp.AddTool(mcp.NewTool("get_roster",
		mcp.WithDescription("Get roster data for a facility and date range"),
		mcp.WithString("facility_code",
			mcp.Required(),
			mcp.Description("The facility code")),
		mcp.WithString("start_date",
			mcp.Required(),
			mcp.Description("Start date (YYYY-MM-DD)")),
		mcp.WithString("end_date",
			mcp.Required(),
			mcp.Description("End date (YYYY-MM-DD)")),
		mcp.WithString("designation_code",
			mcp.Description("Filter by designation (optional)")),
	), s.handleGetRoster)

	// list_reports
	s.mcp.AddTool(mcp.NewTool("list_reports",
		mcp.WithDescription("Get list of available report types"),
	), s.handleListReports)

	// get_report
	s.mcp.AddTool(mcp.NewTool("get_report",
		mcp.WithDescription("Get a specific report by name"),
		mcp.WithString("report_name",
			mcp.Required(),
			mcp.Description("Name of the report")),
		mcp.WithString("format",
			mcp.Description("Output format - 'json', 'csv', or 'tsv' (default 'json')")),
	), s.handleGetReport)

	// get_onboarding_tasks
	s.mcp.AddTool(mcp.NewTool("get_onboarding_tasks",
		mcp.WithDescription("Get onboarding tasks dashboard"),
		mcp.WithString("facility_code",
			mcp.Description("Filter by facility (optional)")),
		mcp.WithString("status",
			mcp.Description("Filter by status (optional)")),
		mcp.WithNumber("page",
			mcp.Description("Page number (default 1)")),
		mcp.WithNumber("page_size",
			mcp.Description("Results per page (default 20)")),
	), s.handleGetOnboardingTasks)

	// get_offboarding_tasks
	s.mcp.AddTool(mcp.NewTool("get_offboarding_tasks",
		mcp.WithDescription("Get offboarding tasks dashboard"),
		mcp.WithString("facility_code",
			mcp.Description("Filter by facility (optional)")),
		mcp.WithString("status",
			mcp.Description("Filter by status (optional)")),
		mcp.WithNumber("page",
			mcp.Description("Page number (default 1)")),
		mcp.WithNumber("page_size",
			mcp.Description("Results per page (default 20)")),
	), s.handleGetOffboardingTasks)

	// health_check
	s.mcp.AddTool(mcp.NewTool("health_check",
		mcp.WithDescription("Check if the staging API is healthy and responding"),
	), s.handleHealthCheck)

	// api_request
	s.mcp.AddTool(mcp.NewTool("api_request",
		mcp.WithDescription("Make a generic API request to staging. Use this for endpoints not covered by other tools."),
		mcp.WithString("method",
			mcp.Required(),
			mcp.Description("HTTP method - 'GET', 'POST', 'PUT', 'DELETE'")),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("API path (e.g., '/user/list')")),
		mcp.WithObject("body",
			mcp.Description("Request body for POST/PUT requests (optional)")),
	), s.handleAPIRequest)

	return nil
}

// Serve starts the MCP server on stdio transport.
func (s *Server) Serve() error {
	stdioServer := server.NewStdioServer(s.mcp)
	ctx := context.Background()
	if err := stdioServer.Listen(ctx, os.Stdin, os.Stdout); err != nil {
		return fmt.Errorf("failed to serve MCP: %w", err)
	}
	return nil
}

// Serve creates a new MCP server and starts serving on stdio.
func Serve() error {
	srv, err := NewServer()
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	if err := srv.Serve(); err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}
