package registry

import (
	"toolhub/internal/toolset"
	"toolhub/pkg/logging"
)

// AllowList is the security gate in front of the loader. Only ids on the
// list may be resolved; an empty list permits everything and is intended
// for development only.
type AllowList struct {
	entries map[string]bool
	ordered []string
}

// NewAllowList creates an allow-list from configured ids. Ids are
// normalized. An empty list logs a startup warning because it disables the
// gate entirely.
func NewAllowList(ids []string) *AllowList {
	l := &AllowList{entries: make(map[string]bool, len(ids))}
	for _, id := range ids {
		id = toolset.NormalizeID(id)
		if id == "" || l.entries[id] {
			continue
		}
		l.entries[id] = true
		l.ordered = append(l.ordered, id)
	}

	if len(l.entries) == 0 {
		logging.Warn("Registry", "Toolset allow-list is empty, ALL toolsets are loadable. Configure toolsets.allowed for production use.")
	} else {
		logging.Info("Registry", "Toolset allow-list active with %d entries", len(l.entries))
	}
	return l
}

// Allows reports whether the given id may be loaded. The id is normalized
// before the check.
func (l *AllowList) Allows(id string) bool {
	if len(l.entries) == 0 {
		return true
	}
	return l.entries[toolset.NormalizeID(id)]
}

// Empty reports whether the gate is disabled.
func (l *AllowList) Empty() bool {
	return len(l.entries) == 0
}

// Entries returns the configured ids in configuration order.
func (l *AllowList) Entries() []string {
	out := make([]string, len(l.ordered))
	copy(out, l.ordered)
	return out
}
