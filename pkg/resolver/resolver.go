package resolver

import (
	"fmt"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog"

	"github.com/goliatone/go-formfield/pkg/field"
)

// Request describes a field to build. The zero value of every optional
// member matches the documented defaults: no options, not required, empty
// name/id/class, enabled.
type Request struct {
	Namespace string
	Label     string
	// Kind is the numeric kind code (see field.KindFromCode). Unknown codes
	// render as text.
	Kind     int
	Value    string
	Options  string
	Required bool
	Name     string
	ID       string
	Class    string
	Disabled bool
}

// Observer receives resolution events. Implementations must be safe for
// concurrent use.
type Observer interface {
	FieldResolved(skin string, kind field.Kind)
	KindFallback(code int)
}

// Resolver turns requests into field trees using a skin registry.
type Resolver struct {
	registry    *field.Registry
	namespace   string
	logger      zerolog.Logger
	observer    Observer
	labelPolicy *bluemonday.Policy
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithRegistry overrides the skin registry (defaults to
// field.DefaultRegistry()).
func WithRegistry(registry *field.Registry) Option {
	return func(r *Resolver) {
		if registry != nil {
			r.registry = registry
		}
	}
}

// WithDefaultNamespace sets the namespace used for requests that leave it
// empty. Defaults to field.DefaultNamespace.
func WithDefaultNamespace(namespace string) Option {
	return func(r *Resolver) {
		if ns := strings.TrimSpace(namespace); ns != "" {
			r.namespace = ns
		}
	}
}

// WithLogger sets the logger used to report kind fallbacks and lookups.
func WithLogger(logger zerolog.Logger) Option {
	return func(r *Resolver) {
		r.logger = logger
	}
}

// WithObserver registers an observer for resolution events.
func WithObserver(observer Observer) Option {
	return func(r *Resolver) {
		if observer != nil {
			r.observer = observer
		}
	}
}

// WithLabelPolicy sanitises every label (option and radio labels included)
// with the given policy before it is stored. Labels are written verbatim by
// default. Sanitising escapes text, so an option label containing &, < or >
// no longer equals the decoded value and will not be pre-selected.
func WithLabelPolicy(policy *bluemonday.Policy) Option {
	return func(r *Resolver) {
		r.labelPolicy = policy
	}
}

// New constructs a Resolver with the default skin registry, a no-op logger
// and no observer.
func New(options ...Option) *Resolver {
	r := &Resolver{
		registry:  field.DefaultRegistry(),
		namespace: field.DefaultNamespace,
		logger:    zerolog.Nop(),
		observer:  nopObserver{},
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}
	return r
}

// Registry exposes the skin registry used by the resolver.
func (r *Resolver) Registry() *field.Registry {
	return r.registry
}

// Skin returns the skin for namespace, applying the default namespace when
// it is empty.
func (r *Resolver) Skin(namespace string) (*field.Skin, error) {
	skin, err := r.registry.Get(r.namespaceOrDefault(namespace))
	if err != nil {
		return nil, fmt.Errorf("resolver: %w", err)
	}
	return skin, nil
}

func (r *Resolver) namespaceOrDefault(namespace string) string {
	if strings.TrimSpace(namespace) == "" {
		return r.namespace
	}
	return namespace
}

// Resolve builds the field described by req. Composite kinds get one child
// per option line, built eagerly. An unknown namespace returns an error
// wrapping field.ErrUnknownSkin.
func (r *Resolver) Resolve(req Request) (*field.Field, error) {
	kind, ok := field.KindFromCode(req.Kind)
	if !ok {
		r.logger.Debug().
			Int("kind_code", req.Kind).
			Str("name", req.Name).
			Msg("unknown kind code, rendering as text")
		r.observer.KindFallback(req.Kind)
	}
	return r.resolve(r.namespaceOrDefault(req.Namespace), kind, req)
}

// Render resolves req and returns its markup.
func (r *Resolver) Render(req Request) (string, error) {
	f, err := r.Resolve(req)
	if err != nil {
		return "", err
	}
	return f.Render(), nil
}

func (r *Resolver) resolve(namespace string, kind field.Kind, req Request) (*field.Field, error) {
	skin, err := r.Skin(namespace)
	if err != nil {
		return nil, err
	}
	variant, ok := skin.Variant(kind)
	if !ok {
		return nil, fmt.Errorf("resolver: %w %q in skin %q", field.ErrUnknownKind, kind, skin.Name)
	}

	attrs := field.Attributes{
		Label:    r.sanitizeLabel(req.Label),
		Value:    field.Escape(req.Value),
		Name:     req.Name,
		ID:       req.ID,
		Class:    req.Class,
		Disabled: req.Disabled,
		Required: req.Required,
	}

	var children []*field.Field
	if childKind, composite := kind.ChildKind(); composite {
		childNamespace := skin.ChildSkin
		if childNamespace == "" {
			childNamespace = skin.Name
		}
		for _, option := range SplitOptions(req.Options) {
			// Children compare against the decoded parent value.
			child, err := r.resolve(childNamespace, childKind, Request{
				Label:    option,
				Value:    field.Unescape(attrs.Value),
				Name:     req.Name,
				Disabled: req.Disabled,
			})
			if err != nil {
				return nil, err
			}
			children = append(children, child)
		}
	}

	r.observer.FieldResolved(skin.Name, kind)
	return field.New(kind, variant, attrs, children...), nil
}

// SplitOptions splits a newline-delimited option list. An empty string
// yields a single empty option.
func SplitOptions(options string) []string {
	return strings.Split(options, "\n")
}

func (r *Resolver) sanitizeLabel(label string) string {
	if r.labelPolicy == nil {
		return label
	}
	return r.labelPolicy.Sanitize(label)
}

type nopObserver struct{}

func (nopObserver) FieldResolved(string, field.Kind) {}
func (nopObserver) KindFallback(int)                 {}
