package layout

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-formfield/pkg/document"
	"github.com/goliatone/go-formfield/pkg/field"
	"github.com/goliatone/go-formfield/pkg/testsupport"
)

func sampleDocument(namespace string) document.Document {
	return document.Document{
		Source:    "inline",
		Title:     "Contact",
		Namespace: namespace,
		Fields: []document.Entry{
			{Label: "Name", Code: 0, Value: "Ada", Name: "name", ID: "name"},
			{Label: "Agree", Code: 4, Value: "1", Name: "agree"},
		},
	}
}

func TestEngine_RenderListTemplate(t *testing.T) {
	engine, err := New()
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}

	out, err := engine.Render(context.Background(), sampleDocument("FooForms"))
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	html := string(out)

	for _, want := range []string{
		"<title>Contact</title>",
		`class="formfield formfield-frontend"`,
		"<ol>",
		`<label for="name">Name</label><input type="text" name="name" id="name" value="Ada" />`,
		`<input type="checkbox" name="agree" checked="checked" />`,
	} {
		if !strings.Contains(html, want) {
			t.Fatalf("expected output to contain %q\n%s", want, html)
		}
	}
	if strings.Contains(html, "stylesheet") {
		t.Fatalf("expected no stylesheet link without a theme\n%s", html)
	}
}

func TestEngine_BackendUsesTableTemplate(t *testing.T) {
	engine, err := New()
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}

	page, err := engine.Prepare(sampleDocument("backend"))
	if err != nil {
		t.Fatalf("prepare: %v", err)
	}
	if page.Skin != field.SkinBackend || page.Template != TemplateTable {
		t.Fatalf("expected backend table page, got skin=%q template=%q", page.Skin, page.Template)
	}

	out, err := engine.Render(context.Background(), sampleDocument("backend"))
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(string(out), "<table>") {
		t.Fatalf("expected table markup\n%s", out)
	}
	if !strings.Contains(string(out), `<label class="edit">Name</label></td><td>`) {
		t.Fatalf("expected backend cell label\n%s", out)
	}
}

func TestEngine_ThemeSelection(t *testing.T) {
	selection := &theme.Selection{
		Theme:   "acme",
		Variant: "admin",
		Manifest: &theme.Manifest{
			Name:    "acme",
			Version: "1.0.0",
			Tokens:  map[string]string{"brand": "#123456"},
			Assets: theme.Assets{
				Prefix: "/static/acme",
				Files:  map[string]string{AssetStylesheet: "form.css"},
			},
			Variants: map[string]theme.Variant{
				"admin": {
					Tokens: map[string]string{TokenSkin: "Backend"},
					Assets: theme.Assets{
						Files: map[string]string{AssetStylesheet: "admin.css"},
					},
				},
			},
		},
	}
	selector := &stubThemeSelector{selection: selection}

	engine, err := New(WithThemeSelector(selector, " acme ", "admin"))
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}

	page, err := engine.Prepare(sampleDocument("Frontend"))
	if err != nil {
		t.Fatalf("prepare: %v", err)
	}
	if len(selector.calls) != 1 || selector.calls[0] != (selectorCall{name: "acme", variant: "admin"}) {
		t.Fatalf("unexpected selector calls: %+v", selector.calls)
	}
	if page.Skin != field.SkinBackend {
		t.Fatalf("expected theme token to switch skin, got %q", page.Skin)
	}
	if page.Stylesheet != "/static/acme/admin.css" {
		t.Fatalf("expected variant stylesheet, got %q", page.Stylesheet)
	}
	if page.Tokens["brand"] != "#123456" {
		t.Fatalf("expected manifest tokens to be kept, got %+v", page.Tokens)
	}

	out, err := engine.Render(context.Background(), sampleDocument("Frontend"))
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(string(out), `href="/static/acme/admin.css"`) {
		t.Fatalf("expected stylesheet link\n%s", out)
	}
}

func TestEngine_ThemeSelectorError(t *testing.T) {
	boom := errors.New("boom")
	engine, err := New(WithThemeSelector(&stubThemeSelector{err: boom}, "missing", ""))
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	if _, err := engine.Render(context.Background(), sampleDocument("")); !errors.Is(err, boom) {
		t.Fatalf("expected selector error, got %v", err)
	}
}

func TestEngine_CustomTemplate(t *testing.T) {
	files := fstest.MapFS{
		"compact.tpl": {Data: []byte(`{{ skin }}:{% for markup in fields %}[{{ markup|safe }}]{% endfor %}`)},
	}
	engine, err := New(WithFS(files), WithTemplate("compact.tpl"))
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}

	doc := document.Document{Fields: []document.Entry{{Label: "A", Name: "a"}}}
	out, err := engine.Render(context.Background(), doc)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	want := `Frontend:[<label for="a">A</label><input type="text" name="a" />]`
	if string(out) != want {
		t.Fatalf("unexpected output:\nwant %s\ngot  %s", want, out)
	}
}

func TestEngine_Errors(t *testing.T) {
	engine, err := New(WithTemplate("absent"))
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	if _, err := engine.Render(context.Background(), sampleDocument("")); err == nil {
		t.Fatalf("expected missing template to fail")
	}

	engine, err = New()
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	if _, err := engine.Render(context.Background(), sampleDocument("Nowhere")); !errors.Is(err, field.ErrUnknownSkin) {
		t.Fatalf("expected ErrUnknownSkin, got %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := engine.Render(ctx, sampleDocument("")); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context cancellation, got %v", err)
	}
}

type selectorCall struct {
	name    string
	variant string
}

type stubThemeSelector struct {
	selection *theme.Selection
	err       error
	calls     []selectorCall
}

func (s *stubThemeSelector) Select(name, variant string, _ ...theme.QueryOption) (*theme.Selection, error) {
	s.calls = append(s.calls, selectorCall{name: name, variant: variant})
	return s.selection, s.err
}

func TestEngine_Golden(t *testing.T) {
	doc := testsupport.LoadDocument(t, filepath.Join("testdata", "contact.yaml"))

	engine, err := New()
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	out, err := engine.Render(context.Background(), doc)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	testsupport.AssertGolden(t, filepath.Join("testdata", "contact_list.golden.html"), out)
}
