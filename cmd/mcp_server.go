package cmd

import (
	"context"
	"fmt"
	"sync"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"gopkg.in/yaml.v3"

	"winctl/internal/control"
	"winctl/internal/model"
	"winctl/internal/platform"
	"winctl/internal/proctree"
)

// mcpServer wraps the MCP server with the platform provider and the
// orchestrators. Native calls are serialized: UI automation is synchronous
// and not reentrant.
type mcpServer struct {
	provider   *platform.Provider
	ctrl       *control.Controller
	procs      *proctree.Manager
	providerMu sync.Mutex
	mcp        *mcpserver.MCPServer
}

// MCPConfig holds MCP server configuration.
type MCPConfig struct {
	Transport string
	Port      int
}

// newMCPServer creates and configures an MCP server with all winctl tools.
func newMCPServer(cfg MCPConfig) (*mcpServer, error) {
	provider, err := platform.NewProvider()
	if err != nil {
		return nil, err
	}

	s := &mcpServer{
		provider: provider,
		ctrl:     control.New(provider, log),
		procs:    proctree.New(provider.Apps, log),
	}

	s.mcp = mcpserver.NewMCPServer(
		"winctl",
		"1.0.0",
	)

	s.registerTools()
	return s, nil
}

// serve starts the MCP server with the configured transport.
func (s *mcpServer) serve(cfg MCPConfig) error {
	switch cfg.Transport {
	case "stdio":
		return mcpserver.ServeStdio(s.mcp)
	case "streamable-http":
		httpServer := mcpserver.NewStreamableHTTPServer(s.mcp)
		return httpServer.Start(fmt.Sprintf(":%d", cfg.Port))
	default:
		return fmt.Errorf("unsupported transport: %s (use stdio or streamable-http)", cfg.Transport)
	}
}

func (s *mcpServer) registerTools() {
	s.mcp.AddTool(
		mcp.NewTool("list_windows",
			mcp.WithDescription("List on-screen windows with id, title, app, pid, bounds, and layer. All filters combine with AND."),
			mcp.WithString("title", mcp.Description("Exact window title")),
			mcp.WithString("title-contains", mcp.Description("Title substring")),
			mcp.WithString("title-wildcard", mcp.Description("Title wildcard pattern (* and ?)")),
			mcp.WithString("app", mcp.Description("Owning application name")),
			mcp.WithNumber("pid", mcp.Description("Owning process ID")),
			mcp.WithBoolean("all", mcp.Description("Include windows with empty titles")),
		),
		s.handleListWindows,
	)

	s.mcp.AddTool(
		mcp.NewTool("close_window",
			mcp.WithDescription("Close a window via its close button through the accessibility layer, switching Spaces when needed. Returns a tagged result with a failure reason."),
			mcp.WithNumber("window-id", mcp.Description("Target window by system ID")),
			mcp.WithString("title", mcp.Description("Target window by title substring")),
			mcp.WithString("app", mcp.Description("Target window by application name")),
		),
		s.handleCloseWindow,
	)

	s.mcp.AddTool(
		mcp.NewTool("focus_window",
			mcp.WithDescription("Bring a window to the foreground: set it as the app's main window, activate the process, and raise it."),
			mcp.WithNumber("window-id", mcp.Description("Target window by system ID")),
			mcp.WithString("title", mcp.Description("Target window by title substring")),
			mcp.WithString("app", mcp.Description("Target window by application name")),
		),
		s.handleFocusWindow,
	)

	s.mcp.AddTool(
		mcp.NewTool("process_children",
			mcp.WithDescription("List the direct children of a process from a fresh process-table snapshot."),
			mcp.WithNumber("pid", mcp.Description("Parent process ID"), mcp.Required()),
		),
		s.handleProcessChildren,
	)

	s.mcp.AddTool(
		mcp.NewTool("terminate_process",
			mcp.WithDescription("Terminate a process, or its whole tree children-first. An already-dead pid counts as success. Failures are aggregated per pid."),
			mcp.WithNumber("pid", mcp.Description("Process ID"), mcp.Required()),
			mcp.WithBoolean("tree", mcp.Description("Terminate all descendants first")),
			mcp.WithBoolean("force", mcp.Description("Force termination (immediate signal)")),
		),
		s.handleTerminateProcess,
	)

	s.mcp.AddTool(
		mcp.NewTool("permissions",
			mcp.WithDescription("Report the screen recording and accessibility permission flags."),
		),
		s.handlePermissions,
	)
}

// stringParam, intParam, and boolParam read loosely-typed tool arguments.
func stringParam(params map[string]interface{}, key, def string) string {
	if v, ok := params[key].(string); ok {
		return v
	}
	return def
}

func intParam(params map[string]interface{}, key string, def int) int {
	if v, ok := params[key].(float64); ok {
		return int(v)
	}
	return def
}

func boolParam(params map[string]interface{}, key string, def bool) bool {
	if v, ok := params[key].(bool); ok {
		return v
	}
	return def
}

// yamlResult marshals v as a YAML tool result.
func yamlResult(v interface{}) (*mcp.CallToolResult, error) {
	b, err := yaml.Marshal(v)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(string(b)), nil
}

func (s *mcpServer) handleListWindows(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()

	filter, err := buildFilter(
		stringParam(params, "title", ""),
		stringParam(params, "title-contains", ""),
		stringParam(params, "title-wildcard", ""),
		stringParam(params, "app", ""),
		false,
		0,
		intParam(params, "pid", 0),
		-1,
		nil,
	)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	s.providerMu.Lock()
	defer s.providerMu.Unlock()

	windows, err := s.provider.Windows.ListWindows(platform.ListOptions{
		IncludeUntitled: boolParam(params, "all", false),
	})
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return yamlResult(filter.Apply(windows))
}

func (s *mcpServer) handleCloseWindow(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.handleWindowAction(request, "close", s.ctrl.CloseWindow)
}

func (s *mcpServer) handleFocusWindow(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.handleWindowAction(request, "focus", s.ctrl.FocusWindow)
}

func (s *mcpServer) handleWindowAction(request mcp.CallToolRequest, action string, act func(int) (model.ActionResult, error)) (*mcp.CallToolResult, error) {
	params := request.GetArguments()

	s.providerMu.Lock()
	defer s.providerMu.Unlock()

	id, err := resolveWindowID(s.provider.Windows,
		intParam(params, "window-id", 0),
		stringParam(params, "title", ""),
		stringParam(params, "app", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if id == 0 {
		failure := model.Fail(model.ReasonWindowNotFound)
		return yamlResult(model.ActionResult{
			Action:  action,
			Reason:  failure.Reason,
			Message: failure.Message(),
			Remedy:  failure.Remedy(),
		})
	}

	result, err := act(id)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return yamlResult(result)
}

func (s *mcpServer) handleProcessChildren(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	pid := intParam(params, "pid", 0)
	if pid == 0 {
		return mcp.NewToolResultError("pid is required"), nil
	}

	children, err := s.procs.Children(pid)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return yamlResult(children)
}

func (s *mcpServer) handleTerminateProcess(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	pid := intParam(params, "pid", 0)
	if pid == 0 {
		return mcp.NewToolResultError("pid is required"), nil
	}
	force := boolParam(params, "force", false)

	if boolParam(params, "tree", false) {
		result, err := s.procs.TerminateTree(pid, force)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return yamlResult(result)
	}

	outcome := s.procs.Terminate(pid, force)
	return yamlResult(model.TreeResult{OK: outcome.OK, Outcomes: []model.TerminateOutcome{outcome}})
}

func (s *mcpServer) handlePermissions(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.providerMu.Lock()
	defer s.providerMu.Unlock()
	return yamlResult(checkOnce(s.provider.Permissions))
}
