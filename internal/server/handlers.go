package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"toolhub/internal/toolset"
	"toolhub/pkg/logging"

	"github.com/mark3labs/mcp-go/mcp"
)

const protocolVersion = "2024-11-05"

// JSON-RPC 2.0 error codes, plus implementation-defined codes for the two
// resolution failures clients are expected to distinguish.
const (
	codeParseError     = -32700
	codeInvalidRequest = -32600
	codeMethodNotFound = -32601
	codeInvalidParams  = -32602
	codeInternalError  = -32603
	codeNotAllowed     = -32001
	codeNotFound       = -32002
)

type rpcRequest struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id,omitempty"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type rpcResponse struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id,omitempty"`
	Result  any             `json:"result,omitempty"`
	Error   *rpcError       `json:"error,omitempty"`
}

type callParams struct {
	Name      string         `json:"name"`
	Arguments map[string]any `json:"arguments,omitempty"`
	Toolset   string         `json:"toolset,omitempty"`
}

type listParams struct {
	Toolset string `json:"toolset,omitempty"`
}

func (s *Server) handleMCP(w http.ResponseWriter, r *http.Request) {
	var req rpcRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeRPC(w, rpcResponse{JSONRPC: "2.0", Error: &rpcError{Code: codeParseError, Message: "parse error"}})
		return
	}

	logging.Debug("Server", "MCP request: method=%s", req.Method)

	switch req.Method {
	case "initialize":
		s.handleInitialize(w, req)
	case "ping":
		writeResult(w, req, struct{}{})
	case "tools/list":
		s.handleToolsList(w, r, req)
	case "tools/call":
		s.handleToolsCall(w, r, req)
	default:
		writeError(w, req, codeMethodNotFound, "method not found: "+req.Method)
	}
}

func (s *Server) handleInitialize(w http.ResponseWriter, req rpcRequest) {
	writeResult(w, req, mcp.InitializeResult{
		ProtocolVersion: protocolVersion,
		ServerInfo: mcp.Implementation{
			Name:    "toolhub",
			Version: s.version,
		},
		Capabilities: mcp.ServerCapabilities{
			Tools: &struct {
				ListChanged bool `json:"listChanged,omitempty"`
			}{},
		},
	})
}

func (s *Server) handleToolsList(w http.ResponseWriter, r *http.Request, req rpcRequest) {
	var params listParams
	if len(req.Params) > 0 {
		if err := json.Unmarshal(req.Params, &params); err != nil {
			writeError(w, req, codeInvalidParams, "invalid params")
			return
		}
	}

	id := toolsetID(r, params.Toolset)
	if id == "" {
		writeError(w, req, codeInvalidParams, "no toolset specified")
		return
	}

	tools, err := s.registry.Resolve(r.Context(), id)
	if err != nil {
		writeResolveError(w, req, err)
		return
	}
	writeResult(w, req, mcp.ListToolsResult{Tools: tools})
}

func (s *Server) handleToolsCall(w http.ResponseWriter, r *http.Request, req rpcRequest) {
	var params callParams
	if err := json.Unmarshal(req.Params, &params); err != nil || params.Name == "" {
		writeError(w, req, codeInvalidParams, "invalid params: tool name required")
		return
	}

	id := toolsetID(r, params.Toolset)
	if id == "" {
		writeError(w, req, codeInvalidParams, "no toolset specified")
		return
	}

	result, err := s.registry.Invoke(r.Context(), id, params.Name, params.Arguments)
	if err != nil {
		writeResolveError(w, req, err)
		return
	}

	if result.IsError {
		writeResult(w, req, mcp.NewToolResultError(result.Message))
		return
	}
	writeResult(w, req, mcp.NewToolResultText(resultText(result.Result)))
}

// toolsetID extracts the toolset id for a request: the X-Toolset header
// wins, then the toolset query parameter, then the body field.
func toolsetID(r *http.Request, fromBody string) string {
	if id := r.Header.Get("X-Toolset"); id != "" {
		return toolset.NormalizeID(id)
	}
	if id := r.URL.Query().Get("toolset"); id != "" {
		return toolset.NormalizeID(id)
	}
	return toolset.NormalizeID(fromBody)
}

// resultText renders a tool result as text content. Strings pass through;
// everything else is JSON-encoded.
func resultText(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	default:
		data, err := json.Marshal(v)
		if err != nil {
			return ""
		}
		return string(data)
	}
}

func writeResolveError(w http.ResponseWriter, req rpcRequest, err error) {
	switch {
	case errors.Is(err, toolset.ErrNotAllowed):
		writeError(w, req, codeNotAllowed, err.Error())
	case errors.Is(err, toolset.ErrNotFound):
		writeError(w, req, codeNotFound, err.Error())
	default:
		writeError(w, req, codeInternalError, err.Error())
	}
}

func writeResult(w http.ResponseWriter, req rpcRequest, result any) {
	writeRPC(w, rpcResponse{JSONRPC: "2.0", ID: req.ID, Result: result})
}

func writeError(w http.ResponseWriter, req rpcRequest, code int, message string) {
	writeRPC(w, rpcResponse{JSONRPC: "2.0", ID: req.ID, Error: &rpcError{Code: code, Message: message}})
}

func writeRPC(w http.ResponseWriter, resp rpcResponse) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		logging.Error("Server", err, "Failed to encode response")
	}
}
