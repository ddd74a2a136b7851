// SPDX-License-Identifier: MPL-2.0

package applet

import (
	"context"
	"fmt"
	"sort"
	"sync"
)

// DefaultRegistry holds every applet in the binary. Applets add themselves
// in their init functions.
var DefaultRegistry = NewRegistry()

// Registry maps tool names to applets. It is safe for concurrent use.
type Registry struct {
	mu      sync.RWMutex
	applets map[string]Applet
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{applets: make(map[string]Applet)}
}

// Register adds an applet, panicking on an empty or duplicate name; both
// indicate a programming error caught at startup.
func (r *Registry) Register(a Applet) {
	r.mu.Lock()
	defer r.mu.Unlock()

	name := a.Name()
	if name == "" {
		panic("applet: cannot register an applet with an empty name")
	}
	if _, exists := r.applets[name]; exists {
		panic(fmt.Sprintf("applet: %q registered twice", name))
	}
	r.applets[name] = a
}

// Lookup retrieves an applet by name.
func (r *Registry) Lookup(name string) (Applet, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.applets[name]
	return a, ok
}

// Names returns all registered tool names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.applets))
	for name := range r.applets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Run dispatches to the named applet. args must include the tool name as
// args[0].
func (r *Registry) Run(ctx context.Context, name string, args []string) error {
	a, ok := r.Lookup(name)
	if !ok {
		return fmt.Errorf("applet: %s: not found", name)
	}
	return a.Run(ctx, args)
}

// RegisterDefault adds an applet to DefaultRegistry; called from init
// functions in the per-tool files.
func RegisterDefault(a Applet) {
	DefaultRegistry.Register(a)
}
