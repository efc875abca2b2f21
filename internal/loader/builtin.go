package loader

import (
	"context"
	"fmt"

	"toolhub/internal/toolset"
	"toolhub/pkg/logging"
)

// Constructor creates a fresh provider instance. Each resolved toolset
// owns its own instances; constructors are invoked per load so state is
// never shared between sets.
type Constructor func() any

// BuiltinStrategy resolves ids against a static table of known toolsets
// and their aliases, compiled into the binary.
type BuiltinStrategy struct {
	table map[string][]Constructor
}

// NewBuiltinStrategy creates a builtin strategy from an id -> constructors
// table. Keys are normalized.
func NewBuiltinStrategy(table map[string][]Constructor) *BuiltinStrategy {
	normalized := make(map[string][]Constructor, len(table))
	for id, ctors := range table {
		normalized[toolset.NormalizeID(id)] = ctors
	}
	return &BuiltinStrategy{table: normalized}
}

func (s *BuiltinStrategy) Name() string {
	return "builtin"
}

func (s *BuiltinStrategy) Resolve(_ context.Context, id string) ([]any, error) {
	ctors, ok := s.table[id]
	if !ok {
		return nil, toolset.ErrNotFound
	}

	instances := make([]any, 0, len(ctors))
	for _, ctor := range ctors {
		instance := ctor()
		if instance == nil {
			return nil, fmt.Errorf("builtin constructor for %s returned nil", id)
		}
		instances = append(instances, instance)
	}
	logging.Debug("Loader", "Resolved builtin toolset: %s", id)
	return instances, nil
}
