package loader

import (
	"context"
	"strings"

	"toolhub/internal/toolset"
	"toolhub/pkg/logging"
)

// Namespace is a named collection of provider types registered under their
// type names. It is the Go analog of probing a package for a class: Go has
// no runtime class loading, so resolvable types are registered explicitly.
type Namespace struct {
	Name  string
	Types map[string]Constructor
}

// NamespaceStrategy derives a type name from the toolset id and probes a
// short ordered list of namespaces for it. The first namespace containing
// the type wins.
type NamespaceStrategy struct {
	namespaces []Namespace
}

// NewNamespaceStrategy creates a namespace strategy probing the given
// namespaces in order.
func NewNamespaceStrategy(namespaces ...Namespace) *NamespaceStrategy {
	return &NamespaceStrategy{namespaces: namespaces}
}

func (s *NamespaceStrategy) Name() string {
	return "namespace"
}

func (s *NamespaceStrategy) Resolve(_ context.Context, id string) ([]any, error) {
	typeName := TypeNameForID(id)
	if typeName == "" {
		return nil, toolset.ErrNotFound
	}

	for _, ns := range s.namespaces {
		ctor, ok := ns.Types[typeName]
		if !ok {
			continue
		}
		instance := ctor()
		if instance == nil {
			continue
		}
		logging.Debug("Loader", "Resolved toolset %s to type %s in namespace %s", id, typeName, ns.Name)
		return []any{instance}, nil
	}

	return nil, toolset.ErrNotFound
}

// TypeNameForID derives a provider type name from a toolset id by
// capitalizing and concatenating its hyphen-delimited tokens, e.g.
// "order-tools" -> "OrderTools".
func TypeNameForID(id string) string {
	var b strings.Builder
	for _, part := range strings.Split(toolset.NormalizeID(id), "-") {
		if part == "" {
			continue
		}
		b.WriteString(strings.ToUpper(part[:1]))
		b.WriteString(part[1:])
	}
	return b.String()
}
