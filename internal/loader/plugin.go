package loader

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"toolhub/internal/toolset"
	"toolhub/pkg/logging"

	"github.com/mark3labs/mcp-go/client"
	"github.com/mark3labs/mcp-go/mcp"
)

// PluginBinding maps a toolset id to an external MCP server command. The
// plugin runs as a subprocess speaking MCP over stdio; its code never
// executes inside this process.
type PluginBinding struct {
	ID      string
	Command string
	Args    []string
	Env     map[string]string
}

// PluginStrategy resolves ids against explicit plugin bindings from
// configuration. Clients are started and initialized lazily, then cached
// per id so a pool reload after TTL expiry reuses the running subprocess.
type PluginStrategy struct {
	bindings map[string]PluginBinding

	mu      sync.Mutex
	clients map[string]*pluginClient
}

// NewPluginStrategy creates a plugin strategy from explicit bindings.
// Binding ids are normalized.
func NewPluginStrategy(bindings []PluginBinding) *PluginStrategy {
	m := make(map[string]PluginBinding, len(bindings))
	for _, b := range bindings {
		m[toolset.NormalizeID(b.ID)] = b
	}
	return &PluginStrategy{bindings: m, clients: make(map[string]*pluginClient)}
}

func (s *PluginStrategy) Name() string {
	return "plugin"
}

func (s *PluginStrategy) Resolve(ctx context.Context, id string) ([]any, error) {
	binding, ok := s.bindings[id]
	if !ok {
		return nil, toolset.ErrNotFound
	}

	c, err := s.clientFor(ctx, id, binding)
	if err != nil {
		return nil, err
	}
	return []any{&pluginProvider{id: id, client: c}}, nil
}

// Close shuts down all running plugin subprocesses.
func (s *PluginStrategy) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var firstErr error
	for id, c := range s.clients {
		if err := c.close(); err != nil && firstErr == nil {
			firstErr = err
		}
		delete(s.clients, id)
	}
	return firstErr
}

func (s *PluginStrategy) clientFor(ctx context.Context, id string, binding PluginBinding) (*pluginClient, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if c, ok := s.clients[id]; ok {
		return c, nil
	}

	c := &pluginClient{
		command: binding.Command,
		args:    binding.Args,
		env:     binding.Env,
	}
	if err := c.initialize(ctx); err != nil {
		return nil, err
	}
	s.clients[id] = c
	return c, nil
}

// pluginClient wraps a stdio MCP client for one plugin subprocess.
type pluginClient struct {
	command string
	args    []string
	env     map[string]string

	mu        sync.RWMutex
	client    client.MCPClient
	connected bool
}

func (c *pluginClient) initialize(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.connected {
		return nil
	}

	logging.Debug("Plugin", "Starting plugin process: %s %v", c.command, c.args)

	var envStrings []string
	for k, v := range c.env {
		envStrings = append(envStrings, fmt.Sprintf("%s=%s", k, v))
	}

	mcpClient, err := client.NewStdioMCPClient(c.command, envStrings, c.args...)
	if err != nil {
		return fmt.Errorf("failed to create stdio client: %w", err)
	}

	// Bound the handshake when the caller did not.
	initCtx := ctx
	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		initCtx, cancel = context.WithTimeout(ctx, 10*time.Second)
		defer cancel()
	}

	_, err = mcpClient.Initialize(initCtx, mcp.InitializeRequest{
		Params: struct {
			ProtocolVersion string                 `json:"protocolVersion"`
			Capabilities    mcp.ClientCapabilities `json:"capabilities"`
			ClientInfo      mcp.Implementation     `json:"clientInfo"`
		}{
			ProtocolVersion: "2024-11-05",
			ClientInfo: mcp.Implementation{
				Name:    "toolhub",
				Version: "1.0.0",
			},
			Capabilities: mcp.ClientCapabilities{},
		},
	})
	if err != nil {
		logging.Error("Plugin", err, "Failed to initialize MCP protocol for %s", c.command)
		if closeErr := mcpClient.Close(); closeErr != nil {
			logging.Debug("Plugin", "Error closing failed client for %s: %v", c.command, closeErr)
		}
		return fmt.Errorf("failed to initialize MCP protocol: %w", err)
	}

	logging.Debug("Plugin", "MCP protocol initialized for %s", c.command)

	c.client = mcpClient
	c.connected = true
	return nil
}

func (c *pluginClient) close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.connected || c.client == nil {
		return nil
	}

	err := c.client.Close()
	c.connected = false
	c.client = nil
	return err
}

func (c *pluginClient) listTools(ctx context.Context) ([]mcp.Tool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if !c.connected || c.client == nil {
		return nil, fmt.Errorf("client not connected")
	}

	result, err := c.client.ListTools(ctx, mcp.ListToolsRequest{})
	if err != nil {
		return nil, fmt.Errorf("failed to list tools: %w", err)
	}
	return result.Tools, nil
}

func (c *pluginClient) callTool(ctx context.Context, name string, args map[string]interface{}) (*mcp.CallToolResult, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if !c.connected || c.client == nil {
		return nil, fmt.Errorf("client not connected")
	}

	result, err := c.client.CallTool(ctx, mcp.CallToolRequest{
		Params: struct {
			Name      string    `json:"name"`
			Arguments any       `json:"arguments,omitempty"`
			Meta      *mcp.Meta `json:"_meta,omitempty"`
		}{
			Name:      name,
			Arguments: args,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to call tool: %w", err)
	}
	return result, nil
}

// pluginProvider exposes a plugin's remote tools as local definitions. The
// plugin already describes its own schemas, so the schema builder takes
// them as-is instead of reflecting.
type pluginProvider struct {
	id     string
	client *pluginClient
}

func (p *pluginProvider) ToolDefinitions(ctx context.Context) ([]*toolset.ToolDefinition, error) {
	tools, err := p.client.listTools(ctx)
	if err != nil {
		return nil, err
	}

	defs := make([]*toolset.ToolDefinition, 0, len(tools))
	for _, tool := range tools {
		defs = append(defs, p.definitionFor(tool))
	}
	logging.Debug("Plugin", "Plugin %s exposes %d tools", p.id, len(defs))
	return defs, nil
}

func (p *pluginProvider) definitionFor(tool mcp.Tool) *toolset.ToolDefinition {
	name := tool.Name
	handler := func(ctx context.Context, args map[string]any) (any, error) {
		result, err := p.client.callTool(ctx, name, args)
		if err != nil {
			return nil, err
		}
		text := extractText(result)
		if result.IsError {
			return nil, fmt.Errorf("plugin tool %s failed: %s", name, text)
		}
		return text, nil
	}
	return toolset.NewToolDefinition(tool.Name, tool.Description, paramsFromSchema(tool.InputSchema), handler)
}

// paramsFromSchema converts an MCP input schema to parameter declarations.
// Property order in JSON schema objects is not significant, so names are
// sorted for a stable schema.
func paramsFromSchema(schema mcp.ToolInputSchema) []toolset.Param {
	required := make(map[string]bool, len(schema.Required))
	for _, name := range schema.Required {
		required[name] = true
	}

	names := make([]string, 0, len(schema.Properties))
	for name := range schema.Properties {
		names = append(names, name)
	}
	sort.Strings(names)

	params := make([]toolset.Param, 0, len(names))
	for _, name := range names {
		kind := toolset.KindString
		description := ""
		if prop, ok := schema.Properties[name].(map[string]interface{}); ok {
			if t, ok := prop["type"].(string); ok {
				switch toolset.Kind(t) {
				case toolset.KindInteger, toolset.KindNumber, toolset.KindBoolean:
					kind = toolset.Kind(t)
				}
			}
			if d, ok := prop["description"].(string); ok {
				description = d
			}
		}
		params = append(params, toolset.Param{
			Name:        name,
			Kind:        kind,
			Description: description,
			Required:    required[name],
		})
	}
	return params
}

func extractText(result *mcp.CallToolResult) string {
	var text string
	for _, content := range result.Content {
		if tc, ok := mcp.AsTextContent(content); ok {
			if text != "" {
				text += "\n"
			}
			text += tc.Text
		}
	}
	return text
}
