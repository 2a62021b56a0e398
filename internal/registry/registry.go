package registry

import (
	"sync"

	"github.com/flowtable/compute/internal/enginerr"
)

// Registry holds the ordered, composed set of function entries. Lookup by
// name returns the latest (last-wins) entry, so a later-registered group
// can shadow an earlier one's function of the same name without removing
// it.
type Registry struct {
	mu     sync.RWMutex
	order  []Entry
	byName map[string]int
}

// New composes a registry from ordered groups: base group first, then
// extension groups in the order given. Where two entries share a name, the
// later one wins.
func New(groups ...[]Entry) *Registry {
	r := &Registry{byName: make(map[string]int)}
	for _, g := range groups {
		r.Register(g)
	}
	return r
}

// Register appends a group of entries, extending the registry (spec
// §4.2.1's documented override/merge rule: base ++ extension, last-wins).
func (r *Registry) Register(group []Entry) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range group {
		r.order = append(r.order, e)
		r.byName[e.Name] = len(r.order) - 1
	}
}

// Lookup resolves a function name to its latest entry.
func (r *Registry) Lookup(name string) (Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	idx, ok := r.byName[name]
	if !ok {
		return Entry{}, &enginerr.ResolutionError{Msg: "unknown function: " + name}
	}
	return r.order[idx], nil
}

// Names returns the set of currently resolvable function names.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.byName))
	for name := range r.byName {
		out = append(out, name)
	}
	return out
}
