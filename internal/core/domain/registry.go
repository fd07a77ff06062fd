package domain

import (
	"sort"
	"strings"
)

// ServiceEntry maps one HR domain peer to its base URL. The gateway relays
// requests under PathPrefix to BaseURL, preserving the full inbound path.
type ServiceEntry struct {
	Name       string `json:"name"`
	BaseURL    string `json:"url"`
	PathPrefix string `json:"path_prefix"`
}

// Registry is the startup-loaded set of domain peers. It is immutable once
// built; observed health lives elsewhere and never mutates the registry.
type Registry struct {
	entries []ServiceEntry
}

// NewRegistry builds a Registry from the given entries, ordered so that
// Resolve performs a longest-prefix match.
func NewRegistry(entries []ServiceEntry) *Registry {
	ordered := make([]ServiceEntry, len(entries))
	copy(ordered, entries)
	sort.SliceStable(ordered, func(i, j int) bool {
		return len(ordered[i].PathPrefix) > len(ordered[j].PathPrefix)
	})
	return &Registry{entries: ordered}
}

// Resolve returns the entry whose prefix is the longest match for path.
func (r *Registry) Resolve(path string) (ServiceEntry, bool) {
	for _, e := range r.entries {
		if path == e.PathPrefix || strings.HasPrefix(path, e.PathPrefix+"/") {
			return e, true
		}
	}
	return ServiceEntry{}, false
}

// Entries returns a copy of the registered entries in match order.
func (r *Registry) Entries() []ServiceEntry {
	out := make([]ServiceEntry, len(r.entries))
	copy(out, r.entries)
	return out
}

// Names returns the registered domain names in match order.
func (r *Registry) Names() []string {
	names := make([]string, len(r.entries))
	for i, e := range r.entries {
		names[i] = e.Name
	}
	return names
}

// Len reports the number of registered domains.
func (r *Registry) Len() int {
	return len(r.entries)
}
