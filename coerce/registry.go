package coerce

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/goliatone/go-vulcanize/form"
)

// Registry maps type names to coercers so schemas can be declared from data,
// see package schemafile. It is safe for concurrent use.
type Registry struct {
	mu       sync.RWMutex
	coercers map[string]form.Coercer
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{coercers: make(map[string]form.Coercer)}
}

// Default returns a registry preloaded with the builtin coercers:
// string, trimmed, int, float, bool, checkbox, duration, date, datetime,
// time, uuid, sanitized, yesno and strings.
func Default() *Registry {
	r := NewRegistry()
	r.MustRegister("string", String)
	r.MustRegister("trimmed", Trimmed)
	r.MustRegister("int", Int)
	r.MustRegister("float", Float)
	r.MustRegister("bool", Bool)
	r.MustRegister("checkbox", CheckBox)
	r.MustRegister("duration", Duration)
	r.MustRegister("date", Time(time.DateOnly))
	r.MustRegister("datetime", Time("2006-01-02T15:04"))
	r.MustRegister("time", Time(time.RFC3339))
	r.MustRegister("uuid", UUID)
	r.MustRegister("sanitized", Sanitized)
	r.MustRegister("yesno", YesNo)
	r.MustRegister("strings", List(String))
	return r
}

// Register adds c under name. Names are unique.
func (r *Registry) Register(name string, c form.Coercer) error {
	if name == "" {
		return fmt.Errorf("coerce: registry name cannot be empty")
	}
	if c == nil {
		return fmt.Errorf("coerce: nil coercer for %q", name)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.coercers[name]; exists {
		return fmt.Errorf("coerce: %q already registered", name)
	}
	r.coercers[name] = c
	return nil
}

// MustRegister is Register that panics on error.
func (r *Registry) MustRegister(name string, c form.Coercer) {
	if err := r.Register(name, c); err != nil {
		panic(err)
	}
}

// Lookup returns the coercer registered under name.
func (r *Registry) Lookup(name string) (form.Coercer, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.coercers[name]
	return c, ok
}

// Names lists the registered names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.coercers))
	for name := range r.coercers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
