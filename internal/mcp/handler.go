// Package mcp implements the MCP request handler: JSON-RPC methods on top of
// the module registry. The handler is transport-agnostic; stdio and HTTP both
// feed requests through ProcessRequest.
package mcp

import (
	"context"
	"time"

	"github.com/go-faster/errors"

	"mcpgithub/server/internal/db"
	"mcpgithub/server/internal/jsonrpc"
	"mcpgithub/server/internal/middleware"
	"mcpgithub/server/internal/modules"
	"mcpgithub/server/internal/observability"
)

const serverName = "mcp-github"

const serverInstructions = "Read-only GitHub lookups: repositories, issues, pull requests, " +
	"commits, branches, releases, tags, file contents, code search, and Actions runs. " +
	"Tools accept an optional 'owner' parameter; when the server is configured with a " +
	"default owner it may be omitted. No tool mutates any GitHub state."

// Handler processes MCP requests against the module registry.
type Handler struct {
	version string
	metrics *observability.Metrics
	usage   *db.Recorder
}

// NewHandler creates a handler. usage may be nil when no database is
// configured.
func NewHandler(version string, usage *db.Recorder) *Handler {
	return &Handler{
		version: version,
		metrics: observability.Default(),
		usage:   usage,
	}
}

// ProcessRequest handles a single JSON-RPC request. A nil return means no
// response should be sent (notifications).
func (h *Handler) ProcessRequest(ctx context.Context, req *jsonrpc.Request) *jsonrpc.Response {
	switch req.Method {
	case "initialize":
		return h.handleInitialize(req)
	case "notifications/initialized":
		return nil
	case "ping":
		return result(req.ID, struct{}{})
	case "tools/list":
		return h.handleToolsList(req)
	case "tools/call":
		return h.handleToolsCall(ctx, req)
	default:
		if req.ID == nil {
			// Unknown notification, nothing to answer.
			return nil
		}
		return rpcError(req.ID, jsonrpc.MethodNotFound, "method not found: "+req.Method)
	}
}

func (h *Handler) handleInitialize(req *jsonrpc.Request) *jsonrpc.Response {
	return result(req.ID, InitializeResult{
		ProtocolVersion: protocolVersion,
		Capabilities:    Capabilities{Tools: ToolsCapability{ListChanged: false}},
		ServerInfo:      ServerInfo{Name: serverName, Version: h.version},
		Instructions:    serverInstructions,
	})
}

func (h *Handler) handleToolsList(req *jsonrpc.Request) *jsonrpc.Response {
	return result(req.ID, ToolsListResult{Tools: modules.AllTools()})
}

func (h *Handler) handleToolsCall(ctx context.Context, req *jsonrpc.Request) *jsonrpc.Response {
	params, ok := req.Params.(map[string]any)
	if !ok {
		return rpcError(req.ID, jsonrpc.InvalidParams, "invalid params")
	}
	toolName, ok := params["name"].(string)
	if !ok || toolName == "" {
		return rpcError(req.ID, jsonrpc.InvalidParams, "missing tool name")
	}
	arguments, _ := params["arguments"].(map[string]any)

	mod, tool, ok := modules.FindTool(toolName)
	if !ok {
		return rpcError(req.ID, jsonrpc.InvalidParams, "unknown tool: "+toolName)
	}

	start := time.Now()
	text, err := modules.Run(ctx, mod, tool, arguments)
	elapsed := time.Since(start)

	requestID := middleware.GetRequestID(ctx)
	status := "ok"
	errMsg := ""
	if err != nil {
		status = "error"
		errMsg = err.Error()
	}
	h.metrics.ObserveToolCall(ctx, toolName, status, elapsed)
	observability.LogToolCall(requestID, toolName, elapsed.Milliseconds(), status, errMsg)
	h.usage.Record(toolName, requestID, elapsed.Milliseconds(), status, errMsg)

	if err != nil {
		return rpcError(req.ID, toolErrorCode(err), err.Error())
	}
	return result(req.ID, modules.ToolCallResult{
		Content: []modules.ContentBlock{{Type: "text", Text: text}},
	})
}

// toolErrorCode maps a tool failure onto the two-way JSON-RPC split: errors
// the caller can fix become invalid-params, everything else is internal.
func toolErrorCode(err error) int {
	var toolErr *modules.ToolError
	if errors.As(err, &toolErr) && toolErr.ClientError() {
		return jsonrpc.InvalidParams
	}
	return jsonrpc.InternalError
}

func result(id any, res any) *jsonrpc.Response {
	return &jsonrpc.Response{JSONRPC: "2.0", ID: id, Result: res}
}

func rpcError(id any, code int, message string) *jsonrpc.Response {
	return &jsonrpc.Response{
		JSONRPC: "2.0",
		ID:      id,
		Error:   &jsonrpc.Error{Code: code, Message: message},
	}
}
