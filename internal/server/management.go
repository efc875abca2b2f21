package server

import (
	"encoding/json"
	"net/http"
	"sort"
	"time"

	"toolhub/internal/toolset"
	"toolhub/pkg/logging"
)

// toolsetSummary is the management view of one cached toolset.
type toolsetSummary struct {
	ID             string    `json:"id"`
	Name           string    `json:"name,omitempty"`
	Description    string    `json:"description,omitempty"`
	ToolCount      int       `json:"toolCount"`
	CreatedAt      time.Time `json:"createdAt"`
	LastAccessedAt time.Time `json:"lastAccessedAt"`
}

type toolSummary struct {
	Name        string         `json:"name"`
	Description string         `json:"description,omitempty"`
	Params      []paramSummary `json:"params,omitempty"`
}

type paramSummary struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	Description string `json:"description,omitempty"`
	Required    bool   `json:"required"`
}

func (s *Server) handleListToolsets(w http.ResponseWriter, r *http.Request) {
	ids := s.registry.IDs()
	sort.Strings(ids)

	cached := make([]toolsetSummary, 0, len(ids))
	for _, id := range ids {
		if ts, ok := s.registry.Describe(id); ok {
			cached = append(cached, summarize(ts))
		}
	}

	allow := s.registry.AllowList()
	writeJSON(w, http.StatusOK, map[string]any{
		"allowAll": allow.Empty(),
		"allowed":  allow.Entries(),
		"cached":   cached,
	})
}

func (s *Server) handleGetToolset(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	ts, ok := s.registry.Describe(id)
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]any{"error": "toolset not cached: " + toolset.NormalizeID(id)})
		return
	}

	tools := make([]toolSummary, 0, len(ts.Tools))
	for _, def := range ts.Tools {
		t := toolSummary{Name: def.Name, Description: def.Description}
		for _, p := range def.Params {
			t.Params = append(t.Params, paramSummary{
				Name:        p.Name,
				Type:        string(p.Kind),
				Description: p.Description,
				Required:    p.Required,
			})
		}
		tools = append(tools, t)
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"toolset": summarize(ts),
		"tools":   tools,
	})
}

func (s *Server) handleEvictToolset(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if !s.registry.Evict(id) {
		writeJSON(w, http.StatusNotFound, map[string]any{"error": "toolset not cached: " + toolset.NormalizeID(id)})
		return
	}
	logging.Info("Server", "Evicted toolset via management API: %s", toolset.NormalizeID(id))
	w.WriteHeader(http.StatusNoContent)
}

func summarize(ts *toolset.Toolset) toolsetSummary {
	return toolsetSummary{
		ID:             ts.ID,
		Name:           ts.Name,
		Description:    ts.Description,
		ToolCount:      len(ts.Tools),
		CreatedAt:      ts.CreatedAt,
		LastAccessedAt: ts.LastAccessed(),
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.Error("Server", err, "Failed to encode response")
	}
}
