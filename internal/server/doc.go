// Package server exposes the registry over HTTP.
//
// The MCP front is JSON-RPC 2.0 at POST /mcp with the methods initialize,
// ping, tools/list and tools/call. MCP binds one session to one tool
// table, so the toolset id travels with each request instead: the
// X-Toolset header, the toolset query parameter, or a toolset field in the
// request params, checked in that order.
//
// Tool failures are returned as results with isError set, not as JSON-RPC
// errors. Only malformed requests, unknown methods, allow-list rejections
// and load failures use the error channel.
//
// A small management API lives under /api/toolsets for inspecting and
// evicting cached toolsets.
package server
