package loader

import (
	"context"
	"errors"
	"fmt"

	"toolhub/internal/toolset"
	"toolhub/pkg/logging"
)

// Strategy resolves a toolset id to provider instances. A strategy that
// does not recognize the id returns toolset.ErrNotFound; any other error
// means the strategy matched but failed.
type Strategy interface {
	Name() string
	Resolve(ctx context.Context, id string) ([]any, error)
}

// Loader turns toolset ids into resolved toolsets by running the strategy
// chain and the schema builder. It holds the shared context injected into
// context-aware providers.
type Loader struct {
	strategies []Strategy
	shared     *toolset.Context
}

// New creates a loader trying the given strategies in order.
func New(shared *toolset.Context, strategies ...Strategy) *Loader {
	if shared == nil {
		shared = toolset.NewContext()
	}
	return &Loader{strategies: strategies, shared: shared}
}

// Load resolves id via the strategy chain, first success wins.
func (l *Loader) Load(ctx context.Context, id string) (*toolset.Toolset, error) {
	id = toolset.NormalizeID(id)
	if id == "" {
		return nil, fmt.Errorf("%w: empty toolset id", toolset.ErrNotFound)
	}

	for _, s := range l.strategies {
		instances, err := s.Resolve(ctx, id)
		if errors.Is(err, toolset.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, &toolset.LoadError{ID: id, Strategy: s.Name(), Err: err}
		}

		ts, err := l.buildToolset(ctx, id, s.Name(), instances)
		if err != nil {
			return nil, err
		}
		logging.Info("Loader", "Loaded toolset %s via %s strategy (%d tools)", id, s.Name(), len(ts.Tools))
		return ts, nil
	}

	logging.Debug("Loader", "No strategy resolved toolset: %s", id)
	return nil, fmt.Errorf("%w: %s", toolset.ErrNotFound, id)
}

// buildToolset runs each instance through the schema builder and
// concatenates the definitions. When two instances expose the same tool
// name, the earlier definition is retained.
func (l *Loader) buildToolset(ctx context.Context, id, strategy string, instances []any) (*toolset.Toolset, error) {
	var (
		defs        []*toolset.ToolDefinition
		seen        = map[string]bool{}
		name        string
		description string
	)

	for _, instance := range instances {
		if aware, ok := instance.(toolset.ContextAware); ok {
			aware.BindContext(l.shared)
		}
		if info, ok := instance.(toolset.Info); ok && name == "" {
			name, description = info.ToolsetInfo()
		}

		built, err := toolset.Build(ctx, instance)
		if err != nil {
			return nil, &toolset.LoadError{ID: id, Strategy: strategy, Err: err}
		}
		for _, def := range built {
			if seen[def.Name] {
				logging.Warn("Loader", "Duplicate tool name %s in toolset %s, keeping earlier definition", def.Name, id)
				continue
			}
			seen[def.Name] = true
			defs = append(defs, def)
		}
	}

	return toolset.NewToolset(id, name, description, defs), nil
}
