package layout

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"sync"

	"github.com/flosch/pongo2/v6"
	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-formfield/pkg/document"
	"github.com/goliatone/go-formfield/pkg/field"
	"github.com/goliatone/go-formfield/pkg/resolver"
)

// Theme keys read from a go-theme selection.
const (
	// TokenSkin overrides the document namespace when set.
	TokenSkin = "formfield.skin"
	// AssetStylesheet names the stylesheet linked from the page head.
	AssetStylesheet = "formfield.stylesheet"
)

const templateExt = ".tpl"

// Option configures the engine before construction.
type Option func(*config)

type config struct {
	baseDir   string
	templates fs.FS
	template  string
	resolver  *resolver.Resolver
	selector  theme.ThemeSelector
	themeName string
	variant   string
}

// WithBaseDir loads templates from a directory on disk ahead of the embedded
// ones.
func WithBaseDir(dir string) Option {
	return func(cfg *config) {
		cfg.baseDir = strings.TrimSpace(dir)
	}
}

// WithFS loads templates from fsys ahead of the embedded ones.
func WithFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templates = files
	}
}

// WithTemplate forces a template name (without extension) instead of picking
// one from the skin.
func WithTemplate(name string) Option {
	return func(cfg *config) {
		cfg.template = strings.TrimSuffix(strings.TrimSpace(name), templateExt)
	}
}

// WithResolver sets the resolver used to render document fields.
func WithResolver(r *resolver.Resolver) Option {
	return func(cfg *config) {
		if r != nil {
			cfg.resolver = r
		}
	}
}

// WithThemeSelector resolves a go-theme selection before every render. The
// selection may override the skin (token formfield.skin) and provide a
// stylesheet (asset formfield.stylesheet).
func WithThemeSelector(selector theme.ThemeSelector, name, variant string) Option {
	return func(cfg *config) {
		cfg.selector = selector
		cfg.themeName = strings.TrimSpace(name)
		cfg.variant = strings.TrimSpace(variant)
	}
}

// Engine renders documents into full HTML pages using pongo2 templates.
type Engine struct {
	mu sync.RWMutex

	templateSet *pongo2.TemplateSet
	templates   map[string]*pongo2.Template

	forced    string
	resolver  *resolver.Resolver
	selector  theme.ThemeSelector
	themeName string
	variant   string
}

// New constructs an Engine. Custom template sources are searched before the
// embedded list and table templates.
func New(options ...Option) (*Engine, error) {
	cfg := &config{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(cfg)
	}
	if cfg.resolver == nil {
		cfg.resolver = resolver.New()
	}

	var loaders []pongo2.TemplateLoader
	if cfg.baseDir != "" {
		loader, err := pongo2.NewLocalFileSystemLoader(cfg.baseDir)
		if err != nil {
			return nil, fmt.Errorf("layout: create local loader: %w", err)
		}
		loaders = append(loaders, loader)
	}
	if cfg.templates != nil {
		loaders = append(loaders, pongo2.NewFSLoader(cfg.templates))
	}
	loaders = append(loaders, pongo2.NewFSLoader(TemplatesFS()))

	return &Engine{
		templateSet: pongo2.NewSet("formfield", loaders...),
		templates:   make(map[string]*pongo2.Template),
		forced:      cfg.template,
		resolver:    cfg.resolver,
		selector:    cfg.selector,
		themeName:   cfg.themeName,
		variant:     cfg.variant,
	}, nil
}

// Page is the data handed to page templates.
type Page struct {
	Title      string
	Skin       string
	Template   string
	Stylesheet string
	Tokens     map[string]string
	Fields     []string
}

// Render renders every field of doc and wraps them in a page.
func (e *Engine) Render(ctx context.Context, doc document.Document) ([]byte, error) {
	if e == nil || e.templateSet == nil {
		return nil, errors.New("layout: engine is nil")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	page, err := e.Prepare(doc)
	if err != nil {
		return nil, err
	}

	tmpl, err := e.getTemplate(page.Template + templateExt)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	err = tmpl.ExecuteWriter(pongo2.Context{
		"title":      page.Title,
		"skin":       page.Skin,
		"stylesheet": page.Stylesheet,
		"tokens":     page.Tokens,
		"fields":     page.Fields,
	}, &buf)
	if err != nil {
		return nil, fmt.Errorf("layout: execute template %q: %w", page.Template, err)
	}
	return buf.Bytes(), nil
}

// Prepare resolves the theme, skin and field markup for doc without
// executing a template.
func (e *Engine) Prepare(doc document.Document) (Page, error) {
	page := Page{Title: doc.Title}
	if page.Title == "" {
		page.Title = "Form"
	}

	if e.selector != nil {
		selection, err := e.selector.Select(e.themeName, e.variant)
		if err != nil {
			return Page{}, fmt.Errorf("layout: select theme %q: %w", e.themeName, err)
		}
		page.Tokens = selectionTokens(selection)
		page.Stylesheet = selectionAsset(selection, AssetStylesheet)
		if skin := strings.TrimSpace(page.Tokens[TokenSkin]); skin != "" {
			doc.Namespace = skin
		}
	}

	skin, err := e.resolver.Skin(doc.Namespace)
	if err != nil {
		return Page{}, fmt.Errorf("layout: %w", err)
	}
	page.Skin = skin.Name

	page.Template = e.forced
	if page.Template == "" {
		page.Template = TemplateList
		if skin.Name == field.SkinBackend {
			page.Template = TemplateTable
		}
	}

	page.Fields, err = document.RenderAll(e.resolver, doc)
	if err != nil {
		return Page{}, err
	}
	return page, nil
}

func (e *Engine) getTemplate(path string) (*pongo2.Template, error) {
	e.mu.RLock()
	if tmpl, ok := e.templates[path]; ok {
		e.mu.RUnlock()
		return tmpl, nil
	}
	e.mu.RUnlock()

	e.mu.Lock()
	defer e.mu.Unlock()

	if tmpl, ok := e.templates[path]; ok {
		return tmpl, nil
	}
	tmpl, err := e.templateSet.FromFile(path)
	if err != nil {
		return nil, fmt.Errorf("layout: load template %q: %w", path, err)
	}
	e.templates[path] = tmpl
	return tmpl, nil
}

// selectionTokens merges manifest tokens with the selected variant's tokens.
func selectionTokens(selection *theme.Selection) map[string]string {
	if selection == nil || selection.Manifest == nil {
		return nil
	}
	tokens := make(map[string]string, len(selection.Manifest.Tokens))
	for key, value := range selection.Manifest.Tokens {
		tokens[key] = value
	}
	if variant, ok := selection.Manifest.Variants[selection.Variant]; ok {
		for key, value := range variant.Tokens {
			tokens[key] = value
		}
	}
	return tokens
}

// selectionAsset returns the URL of an asset, preferring the variant's file
// and prefix over the manifest's.
func selectionAsset(selection *theme.Selection, key string) string {
	if selection == nil || selection.Manifest == nil {
		return ""
	}
	manifest := selection.Manifest
	prefix := manifest.Assets.Prefix
	file := manifest.Assets.Files[key]
	if variant, ok := manifest.Variants[selection.Variant]; ok {
		if variant.Assets.Prefix != "" {
			prefix = variant.Assets.Prefix
		}
		if name := variant.Assets.Files[key]; name != "" {
			file = name
		}
	}
	if file == "" {
		return ""
	}
	if prefix == "" || strings.Contains(file, "://") || strings.HasPrefix(file, "/") {
		return file
	}
	return strings.TrimSuffix(prefix, "/") + "/" + file
}
