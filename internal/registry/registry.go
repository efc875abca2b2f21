package registry

import (
	"context"
	"fmt"

	"toolhub/internal/pool"
	"toolhub/internal/toolset"
	"toolhub/pkg/logging"

	"github.com/mark3labs/mcp-go/mcp"
)

// ToolsetLoader resolves a toolset id to a fully built toolset. It is
// satisfied by *loader.Loader.
type ToolsetLoader interface {
	Load(ctx context.Context, id string) (*toolset.Toolset, error)
}

// Registry is the front door for toolset access. Every resolution passes
// the allow-list gate before touching the pool, and the pool consults the
// loader only on a miss.
type Registry struct {
	allow  *AllowList
	pool   *pool.Pool
	loader ToolsetLoader
}

// New creates a registry from its three collaborators.
func New(allow *AllowList, p *pool.Pool, loader ToolsetLoader) *Registry {
	return &Registry{allow: allow, pool: p, loader: loader}
}

// Resolve returns the wire representation of the tools in the given
// toolset, loading and caching the toolset if needed.
func (r *Registry) Resolve(ctx context.Context, id string) ([]mcp.Tool, error) {
	ts, err := r.resolve(ctx, id)
	if err != nil {
		return nil, err
	}
	return ts.MCPTools(), nil
}

// Invoke executes the named tool from the given toolset. Security and
// resolution failures return an error; failures inside the tool itself are
// reported in the result envelope with IsError set.
func (r *Registry) Invoke(ctx context.Context, id, tool string, args map[string]any) (*CallResult, error) {
	ts, err := r.resolve(ctx, id)
	if err != nil {
		return nil, err
	}
	logging.Debug("Registry", "Invoking tool %s in toolset %s", tool, ts.ID)
	return invoke(ctx, ts, tool, args), nil
}

// Register builds a toolset from the given provider instances and inserts
// it into the pool under the given id, replacing any cached toolset with
// that id. Registration bypasses the allow-list: it is a programmatic act
// by the embedding process, not an external request.
func (r *Registry) Register(ctx context.Context, id string, providers ...any) error {
	id = toolset.NormalizeID(id)
	if id == "" {
		return fmt.Errorf("empty toolset id")
	}
	if len(providers) == 0 {
		return fmt.Errorf("no providers for toolset %s", id)
	}

	var (
		defs        []*toolset.ToolDefinition
		seen        = map[string]bool{}
		name        string
		description string
	)
	for _, p := range providers {
		if info, ok := p.(toolset.Info); ok && name == "" {
			name, description = info.ToolsetInfo()
		}
		built, err := toolset.Build(ctx, p)
		if err != nil {
			return fmt.Errorf("failed to register toolset %s: %w", id, err)
		}
		for _, def := range built {
			if seen[def.Name] {
				logging.Warn("Registry", "Duplicate tool name %s while registering toolset %s, keeping earlier definition", def.Name, id)
				continue
			}
			seen[def.Name] = true
			defs = append(defs, def)
		}
	}
	if len(defs) == 0 {
		return fmt.Errorf("toolset %s has no tools", id)
	}

	r.pool.Put(id, toolset.NewToolset(id, name, description, defs))
	logging.Info("Registry", "Registered toolset %s with %d tools", id, len(defs))
	return nil
}

// IsRegistered reports whether the toolset is currently cached. It does not
// trigger a load.
func (r *Registry) IsRegistered(id string) bool {
	_, ok := r.pool.Get(id)
	return ok
}

// IDs returns the ids of all currently cached toolsets.
func (r *Registry) IDs() []string {
	return r.pool.Keys()
}

// Describe returns the cached toolset for id without triggering a load.
func (r *Registry) Describe(id string) (*toolset.Toolset, bool) {
	return r.pool.Get(id)
}

// Evict removes a toolset from the cache. The next resolution reloads it.
func (r *Registry) Evict(id string) bool {
	return r.pool.Evict(id)
}

// AllowList exposes the security gate for status reporting.
func (r *Registry) AllowList() *AllowList {
	return r.allow
}

func (r *Registry) resolve(ctx context.Context, id string) (*toolset.Toolset, error) {
	id = toolset.NormalizeID(id)
	if !r.allow.Allows(id) {
		logging.Warn("Registry", "Rejected toolset not on allow-list: %s", id)
		return nil, fmt.Errorf("%w: %s", toolset.ErrNotAllowed, id)
	}
	return r.pool.GetOrLoad(ctx, id, r.loader.Load)
}
