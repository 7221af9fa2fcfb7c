package field

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Registry stores skins by normalised namespace. It is safe for concurrent
// use.
type Registry struct {
	mu      sync.RWMutex
	skins   map[string]*Skin
	aliases map[string]string
}

// NewRegistry creates an empty registry instance.
func NewRegistry() *Registry {
	return &Registry{
		skins:   make(map[string]*Skin),
		aliases: make(map[string]string),
	}
}

// DefaultNamespace is the alias callers use when no namespace is given.
const DefaultNamespace = "Default"

// DefaultRegistry returns a registry holding the Frontend and Backend skins.
// "FooForms" and "Default" are aliases of Frontend.
func DefaultRegistry() *Registry {
	reg := NewRegistry()
	reg.MustRegister(FrontendSkin())
	reg.MustRegister(BackendSkin())
	reg.MustAlias("FooForms", SkinFrontend)
	reg.MustAlias(DefaultNamespace, SkinFrontend)
	return reg
}

// NormalizeNamespace trims and title-cases a namespace so lookups are case
// insensitive ("fooforms", "FOOFORMS" and "FooForms" all become "Fooforms").
func NormalizeNamespace(namespace string) string {
	trimmed := strings.TrimSpace(namespace)
	if trimmed == "" {
		return ""
	}
	return cases.Title(language.Und).String(strings.ToLower(trimmed))
}

// Register adds a skin under its normalised Name. Duplicate names return an
// error.
func (r *Registry) Register(skin *Skin) error {
	if skin == nil {
		return fmt.Errorf("field: skin is required")
	}
	key := NormalizeNamespace(skin.Name)
	if key == "" {
		return fmt.Errorf("field: skin name is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.skins[key]; exists {
		return fmt.Errorf("field: skin %q already registered", skin.Name)
	}
	if _, exists := r.aliases[key]; exists {
		return fmt.Errorf("field: skin %q collides with an alias", skin.Name)
	}
	r.skins[key] = skin
	return nil
}

// MustRegister panics on registration failure. Useful for init-time wiring.
func (r *Registry) MustRegister(skin *Skin) {
	if err := r.Register(skin); err != nil {
		panic(err)
	}
}

// Alias makes alias resolve to the registered skin target.
func (r *Registry) Alias(alias, target string) error {
	aliasKey := NormalizeNamespace(alias)
	targetKey := NormalizeNamespace(target)
	if aliasKey == "" || targetKey == "" {
		return fmt.Errorf("field: alias and target are required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.skins[targetKey]; !ok {
		return fmt.Errorf("%w %q", ErrUnknownSkin, target)
	}
	if _, exists := r.skins[aliasKey]; exists {
		return fmt.Errorf("field: alias %q collides with a skin", alias)
	}
	r.aliases[aliasKey] = targetKey
	return nil
}

// MustAlias panics when Alias fails.
func (r *Registry) MustAlias(alias, target string) {
	if err := r.Alias(alias, target); err != nil {
		panic(err)
	}
}

// Get retrieves a skin by namespace or alias.
func (r *Registry) Get(namespace string) (*Skin, error) {
	key := NormalizeNamespace(namespace)

	r.mu.RLock()
	defer r.mu.RUnlock()

	if target, ok := r.aliases[key]; ok {
		key = target
	}
	skin, ok := r.skins[key]
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownSkin, namespace)
	}
	return skin, nil
}

// Has reports whether a namespace resolves to a skin.
func (r *Registry) Has(namespace string) bool {
	_, err := r.Get(namespace)
	return err == nil
}

// List returns the sorted names of registered skins, aliases excluded.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.skins))
	for _, skin := range r.skins {
		names = append(names, skin.Name)
	}
	sort.Strings(names)
	return names
}
