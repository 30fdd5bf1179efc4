package coderules

import (
	"fmt"
	"sort"
	"sync"

	"github.com/alexiusacademia/gobeam/internal/design"
)

// Registry maps rule names to code rules
type Registry struct {
	mu    sync.RWMutex
	rules map[string]design.CodeRules
}

// NewRegistry returns a registry holding the built-in rules
func NewRegistry() *Registry {
	r := &Registry{rules: make(map[string]design.CodeRules)}
	r.Register(Timber{})
	r.Register(Concrete{})
	return r
}

// Register adds or replaces rules under their name
func (r *Registry) Register(rules design.CodeRules) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rules[rules.Name()] = rules
}

// Lookup returns the rules registered under name
func (r *Registry) Lookup(name string) (design.CodeRules, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rules, ok := r.rules[name]
	if !ok {
		return nil, fmt.Errorf("unknown code rules %q (available: %v)", name, r.namesLocked())
	}
	return rules, nil
}

// Names returns the registered rule names in sorted order
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.namesLocked()
}

func (r *Registry) namesLocked() []string {
	names := make([]string, 0, len(r.rules))
	for name := range r.rules {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// LoadFile registers every rules definition of a YAML or JSON file
func (r *Registry) LoadFile(path string) error {
	rules, err := LoadFile(path)
	if err != nil {
		return err
	}
	for _, e := range rules {
		r.Register(e)
	}
	return nil
}
