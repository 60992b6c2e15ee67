package toolbar

import (
	"fmt"
	"sort"
	"sync"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Registry maps action categories to factories. Factories are keyed by
// their type name, "textColor" becoming "TextColorAction".
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory // type name -> factory
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]Factory)}
}

var upper = cases.Upper(language.Und)

// TypeName derives the action type name of a category: the first rune
// upper-cased, the rest kept, and "Action" appended.
func TypeName(category string) string {
	r, size := utf8.DecodeRuneInString(category)
	if r == utf8.RuneError {
		return "Action"
	}
	return upper.String(string(r)) + category[size:] + "Action"
}

// Register adds the factory for category.
func (r *Registry) Register(category string, f Factory) error {
	if category == "" || f == nil {
		return fmt.Errorf("%w: %q", ErrInvalidCategory, category)
	}
	name := TypeName(category)

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.factories[name]; ok {
		return fmt.Errorf("%w: %q", ErrDuplicateCategory, category)
	}
	r.factories[name] = f
	return nil
}

// MustRegister is Register for static tables. It panics on error.
func (r *Registry) MustRegister(category string, f Factory) {
	if err := r.Register(category, f); err != nil {
		panic(err)
	}
}

// Lookup returns the factory registered under a type name.
func (r *Registry) Lookup(typeName string) (Factory, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	f, ok := r.factories[typeName]
	return f, ok
}

// Resolve returns the factory for an identifier such as "heading:2".
func (r *Registry) Resolve(identifier string) (Factory, error) {
	category, _ := SplitIdentifier(identifier)
	name := TypeName(category)
	f, ok := r.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("%w '%s'", ErrUnknownAction, name)
	}
	return f, nil
}

// TypeNames returns the registered type names, sorted.
func (r *Registry) TypeNames() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of registered categories.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.factories)
}
