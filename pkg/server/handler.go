package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/goliatone/go-formfield/pkg/document"
	"github.com/goliatone/go-formfield/pkg/field"
	"github.com/goliatone/go-formfield/pkg/layout"
	"github.com/goliatone/go-formfield/pkg/resolver"
)

const maxDocumentBytes = 1 << 20

// ErrUnsafeAttribute is returned when name, id or class would break out of
// its attribute.
var ErrUnsafeAttribute = errors.New("server: unsafe attribute value")

// Option configures the handler.
type Option func(*handler)

// WithMetrics exposes gatherer on GET /metrics.
func WithMetrics(gatherer prometheus.Gatherer) Option {
	return func(h *handler) {
		h.gatherer = gatherer
	}
}

// WithLabelPolicy replaces the policy applied to labels and options taken
// from requests. A nil policy passes them through verbatim.
func WithLabelPolicy(policy *bluemonday.Policy) Option {
	return func(h *handler) {
		h.labels = policy
	}
}

// WithEngine enables POST /page, which renders a JSON or YAML document body
// into a full page.
func WithEngine(engine *layout.Engine) Option {
	return func(h *handler) {
		h.engine = engine
	}
}

type handler struct {
	resolver *resolver.Resolver
	logger   zerolog.Logger
	gatherer prometheus.Gatherer
	engine   *layout.Engine
	labels   *bluemonday.Policy
}

// KindInfo describes one entry of the kind table served on /kinds.
type KindInfo struct {
	Code      int    `json:"code"`
	Name      string `json:"name"`
	Tag       string `json:"tag"`
	Composite bool   `json:"composite"`
}

// NewHandler serves the resolver over HTTP. Labels and options from
// requests are sanitised with resolver.LabelPolicy unless WithLabelPolicy
// says otherwise:
//
//	GET|POST /render  render one field from query or form parameters
//	GET      /kinds   list the kind table as JSON
//	POST     /page    render a document body (with WithEngine)
//	GET      /metrics Prometheus metrics (with WithMetrics)
func NewHandler(r *resolver.Resolver, logger zerolog.Logger, opts ...Option) http.Handler {
	if r == nil {
		r = resolver.New()
	}
	h := &handler{resolver: r, logger: logger, labels: resolver.LabelPolicy()}
	for _, opt := range opts {
		if opt != nil {
			opt(h)
		}
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/render", h.handleRender)
	mux.HandleFunc("/kinds", h.handleKinds)
	if h.engine != nil {
		mux.HandleFunc("/page", h.handlePage)
	}
	if h.gatherer != nil {
		mux.Handle("/metrics", promhttp.HandlerFor(h.gatherer, promhttp.HandlerOpts{}))
	}
	return mux
}

func (h *handler) handleRender(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodGet+", "+http.MethodPost)
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	req, err := requestFromForm(r)
	if err == nil {
		err = h.clean(&req.Label, &req.Options, req.Name, req.ID, req.Class)
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	markup, err := h.resolver.Render(req)
	if err != nil {
		h.writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = io.WriteString(w, markup)
}

func (h *handler) handleKinds(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}
	kinds := field.Kinds()
	out := make([]KindInfo, 0, len(kinds))
	for _, kind := range kinds {
		out = append(out, KindInfo{
			Code:      kind.Code(),
			Name:      kind.String(),
			Tag:       kind.Tag(),
			Composite: kind.Composite(),
		})
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(out); err != nil {
		h.logger.Error().Err(err).Msg("encode kinds")
	}
}

func (h *handler) handlePage(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}
	body, err := io.ReadAll(io.LimitReader(r.Body, maxDocumentBytes))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	doc, err := document.Parse(body, "request")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if ns := r.URL.Query().Get("namespace"); ns != "" {
		doc.Namespace = ns
	}
	if err := h.cleanDocument(&doc); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	page, err := h.engine.Render(r.Context(), doc)
	if err != nil {
		h.writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(page)
}

// clean sanitises label and options in place and rejects attribute values
// that carry quotes or angle brackets.
func (h *handler) clean(label, options *string, attrs ...string) error {
	for _, value := range attrs {
		if strings.ContainsAny(value, `"<>`) {
			return fmt.Errorf("%w: %q", ErrUnsafeAttribute, value)
		}
	}
	if h.labels == nil {
		return nil
	}
	*label = h.labels.Sanitize(*label)
	*options = h.labels.Sanitize(*options)
	return nil
}

func (h *handler) cleanDocument(doc *document.Document) error {
	for i := range doc.Fields {
		entry := &doc.Fields[i]
		options := strings.Join(entry.Options, "\n")
		if err := h.clean(&entry.Label, &options, entry.Name, entry.ID, entry.Class); err != nil {
			return err
		}
		if len(entry.Options) > 0 {
			entry.Options = strings.Split(options, "\n")
		}
	}
	return nil
}

func (h *handler) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	if errors.Is(err, field.ErrUnknownSkin) || errors.Is(err, field.ErrUnknownKind) {
		status = http.StatusBadRequest
	}
	if status == http.StatusInternalServerError {
		h.logger.Error().Err(err).Msg("render failed")
	} else {
		h.logger.Debug().Err(err).Int("status", status).Msg("render rejected")
	}
	http.Error(w, err.Error(), status)
}

// requestFromForm maps form values onto a resolver request. kind accepts a
// numeric code or a kind name; a missing kind means text.
func requestFromForm(r *http.Request) (resolver.Request, error) {
	form := r.Form
	req := resolver.Request{
		Namespace: form.Get("namespace"),
		Label:     form.Get("label"),
		Value:     form.Get("value"),
		Options:   form.Get("options"),
		Name:      form.Get("name"),
		ID:        form.Get("id"),
		Class:     form.Get("class"),
		Required:  truthy(form.Get("required")),
		Disabled:  truthy(form.Get("disabled")),
	}
	if opts, ok := form["option"]; ok && req.Options == "" {
		req.Options = strings.Join(opts, "\n")
	}

	raw := strings.TrimSpace(form.Get("kind"))
	if raw == "" {
		return req, nil
	}
	if code, err := strconv.Atoi(raw); err == nil {
		req.Kind = code
		return req, nil
	}
	kind, err := field.ParseKind(raw)
	if err != nil {
		return resolver.Request{}, err
	}
	req.Kind = kind.Code()
	return req, nil
}

func truthy(raw string) bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "1", "true", "on", "yes":
		return true
	default:
		return false
	}
}
