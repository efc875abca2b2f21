package toolset

import (
	"context"
	"strings"
	"sync/atomic"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
)

// Kind is the declared type of a tool parameter in the exposed schema.
type Kind string

const (
	KindString  Kind = "string"
	KindInteger Kind = "integer"
	KindNumber  Kind = "number"
	KindBoolean Kind = "boolean"
)

// Param describes one schema parameter of a tool, in declaration order.
type Param struct {
	Name        string
	Kind        Kind
	Description string
	Required    bool
}

// Handler is the bound callable behind a tool definition. Arguments arrive
// already coerced to their declared kinds (string, int64, float64, bool).
type Handler func(ctx context.Context, args map[string]any) (any, error)

// ToolDefinition is a named, schema-described invocable operation. The
// handler closure is captured once at load time; invocation is a plain
// function call, not per-call introspection.
type ToolDefinition struct {
	Name        string
	Description string
	Params      []Param
	handler     Handler
}

// NewToolDefinition creates a tool definition with an explicit handler.
// Used by the plugin proxy and by tests; reflection-built definitions come
// from Build.
func NewToolDefinition(name, description string, params []Param, handler Handler) *ToolDefinition {
	return &ToolDefinition{
		Name:        name,
		Description: description,
		Params:      params,
		handler:     handler,
	}
}

// Invoke calls the bound handler with coerced arguments.
func (d *ToolDefinition) Invoke(ctx context.Context, args map[string]any) (any, error) {
	return d.handler(ctx, args)
}

// MCPTool converts the definition to its MCP wire representation
// (name, description, and a JSON-Schema-like input schema).
func (d *ToolDefinition) MCPTool() mcp.Tool {
	properties := make(map[string]interface{}, len(d.Params))
	var required []string
	for _, p := range d.Params {
		prop := map[string]interface{}{"type": string(p.Kind)}
		if p.Description != "" {
			prop["description"] = p.Description
		}
		properties[p.Name] = prop
		if p.Required {
			required = append(required, p.Name)
		}
	}
	return mcp.Tool{
		Name:        d.Name,
		Description: d.Description,
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: properties,
			Required:   required,
		},
	}
}

// Toolset is a resolved collection of tool definitions for one toolset id.
// The definition list is immutable after construction; only the last-access
// timestamp mutates.
type Toolset struct {
	ID          string
	Name        string
	Description string
	Tools       []*ToolDefinition
	CreatedAt   time.Time

	lastAccess atomic.Int64 // unix nanos
}

// NewToolset creates a resolved toolset owning the given definitions.
func NewToolset(id, name, description string, tools []*ToolDefinition) *Toolset {
	ts := &Toolset{
		ID:          id,
		Name:        name,
		Description: description,
		Tools:       tools,
		CreatedAt:   time.Now(),
	}
	ts.lastAccess.Store(ts.CreatedAt.UnixNano())
	return ts
}

// Touch records an access to the toolset.
func (t *Toolset) Touch() {
	t.lastAccess.Store(time.Now().UnixNano())
}

// LastAccessed returns the time of the most recent access.
func (t *Toolset) LastAccessed() time.Time {
	return time.Unix(0, t.lastAccess.Load())
}

// Find returns the first definition whose name equals the requested name,
// or nil if none matches. First match wins on duplicates.
func (t *Toolset) Find(name string) *ToolDefinition {
	for _, d := range t.Tools {
		if d.Name == name {
			return d
		}
	}
	return nil
}

// MCPTools returns the wire representation of every tool in the set,
// preserving load order. No handlers are exposed.
func (t *Toolset) MCPTools() []mcp.Tool {
	tools := make([]mcp.Tool, 0, len(t.Tools))
	for _, d := range t.Tools {
		tools = append(tools, d.MCPTool())
	}
	return tools
}

// NormalizeID canonicalizes a toolset id for lookups. Equality of toolset
// ids is case- and surrounding-whitespace-insensitive.
func NormalizeID(id string) string {
	return strings.ToLower(strings.TrimSpace(id))
}

// ContextAware is implemented by providers that want the shared, request-
// independent context injected before first use. The loader calls
// BindContext once per instantiated provider.
type ContextAware interface {
	BindContext(*Context)
}

// Info is implemented by providers that carry a display name and
// description for the toolsets they back.
type Info interface {
	ToolsetInfo() (name, description string)
}

// DefinitionProvider is implemented by providers that already know their
// tool definitions, such as proxies for external plugin processes. The
// schema builder uses the supplied definitions instead of reflection.
type DefinitionProvider interface {
	ToolDefinitions(ctx context.Context) ([]*ToolDefinition, error)
}

// ParamAnnotation overrides metadata for one method parameter.
type ParamAnnotation struct {
	Name        string
	Description string
	// Required defaults to true when nil.
	Required *bool
}

// ToolAnnotation overrides metadata for one provider method.
type ToolAnnotation struct {
	Name        string
	Description string
	Params      []ParamAnnotation
}

// ToolAnnotator is implemented by providers that supply explicit tool and
// parameter metadata, keyed by Go method name. Go reflection cannot recover
// parameter names, so this is the only way to give parameters meaningful
// names.
type ToolAnnotator interface {
	ToolAnnotations() map[string]ToolAnnotation
}

// Optional marks a parameter annotation as not required.
func Optional() *bool {
	v := false
	return &v
}
