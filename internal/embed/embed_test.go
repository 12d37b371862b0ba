package embed

import (
	"errors"
	"strings"
	"testing"

	"embedkit/internal/config"
	"embedkit/internal/registry"
)

func testConfig() *config.Config {
	cfg := config.Default()
	cfg.Hostname = "wiki.example.org"
	return cfg
}

func testRenderer(t *testing.T) *Renderer {
	t.Helper()

	custom := map[string]registry.Profile{
		"acme": {
			URLTemplate:  "https://acme.example/embed/{id}?w={width}&h={height}",
			DefaultWidth: 300,
		},
		"boxed": {
			Extern:       `<object data="{base}/player?id={id}" width="{width}" height="{height}"></object>`,
			DefaultWidth: 400,
		},
	}
	reg, err := registry.New(custom, nil)
	if err != nil {
		t.Fatalf("registry.New() error = %v", err)
	}
	return New(reg, testConfig())
}

func TestResolvePlain(t *testing.T) {
	rd := testRenderer(t)

	html, err := rd.Resolve(Request{Service: "acme", ID: "42", Width: "300"})
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}

	// 300 wide at the default 4:3 ratio gives height 225.
	if !strings.Contains(html, "https://acme.example/embed/42?w=300&h=225") {
		t.Errorf("markup missing substituted URL: %q", html)
	}
	if !strings.HasPrefix(html, "<iframe") {
		t.Errorf("plain variant should be a bare player element: %q", html)
	}
	if strings.Contains(html, "embed-caption") || strings.Contains(html, `<div`) {
		t.Errorf("unaligned embed must carry no wrapper or caption: %q", html)
	}
	if !strings.Contains(html, `width="300"`) || !strings.Contains(html, `height="225"`) {
		t.Errorf("element not sized to resolved dimensions: %q", html)
	}
}

func TestResolveDefaultWidths(t *testing.T) {
	rd := testRenderer(t)

	tests := []struct {
		name       string
		service    string
		width      string
		wantWidth  string
		wantHeight string
	}{
		{"profile default", "acme", "", `w=300`, `h=225`},
		{"wildcard width", "acme", "*", `w=300`, `h=225`},
		{"explicit width", "acme", "400", `w=400`, `h=300`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			html, err := rd.Resolve(Request{Service: tt.service, ID: "42", Width: tt.width})
			if err != nil {
				t.Fatalf("Resolve() error = %v", err)
			}
			if !strings.Contains(html, tt.wantWidth) || !strings.Contains(html, tt.wantHeight) {
				t.Errorf("markup = %q, want %s and %s", html, tt.wantWidth, tt.wantHeight)
			}
		})
	}
}

func TestResolveGlobalDefaultWidth(t *testing.T) {
	reg, err := registry.New(map[string]registry.Profile{
		"nodefault": {URLTemplate: "https://n.example/{id}?w={width}"},
	}, nil)
	if err != nil {
		t.Fatal(err)
	}
	rd := New(reg, testConfig())

	html, err := rd.Resolve(Request{Service: "nodefault", ID: "7"})
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if !strings.Contains(html, "w=425") {
		t.Errorf("blank width should fall back to the global default 425: %q", html)
	}
}

func TestResolveWidthErrors(t *testing.T) {
	rd := testRenderer(t)

	tests := []struct {
		name  string
		width string
	}{
		{"non-numeric", "wide"},
		{"below minimum", "50"},
		{"above maximum", "2000"},
		{"negative", "-300"},
		{"float", "300.5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := rd.Resolve(Request{Service: "acme", ID: "42", Width: tt.width})
			if !errors.Is(err, ErrInvalidWidth) {
				t.Errorf("width %q: got %v, want ErrInvalidWidth", tt.width, err)
			}
		})
	}

	// Widths inside the bounds are accepted verbatim.
	for _, w := range []string{"100", "512", "1024"} {
		if _, err := rd.Resolve(Request{Service: "acme", ID: "42", Width: w}); err != nil {
			t.Errorf("width %q should be accepted, got %v", w, err)
		}
	}
}

func TestResolveAlignment(t *testing.T) {
	rd := testRenderer(t)

	tests := []struct {
		align     string
		wantClass string
	}{
		{"left", "tleft"},
		{"right", "tright"},
		{"center", "center"},
		{"auto", "auto"},
	}

	for _, tt := range tests {
		t.Run(tt.align, func(t *testing.T) {
			html, err := rd.Resolve(Request{Service: "acme", ID: "42", Align: tt.align})
			if err != nil {
				t.Fatalf("Resolve() error = %v", err)
			}
			if !strings.Contains(html, `<div class="embed `+tt.wantClass+`">`) {
				t.Errorf("markup = %q, want wrapper with class %q", html, tt.wantClass)
			}
		})
	}

	for _, bad := range []string{"top", "middle", "LEFTish"} {
		if _, err := rd.Resolve(Request{Service: "acme", ID: "42", Align: bad}); !errors.Is(err, ErrInvalidAlignment) {
			t.Errorf("align %q: got %v, want ErrInvalidAlignment", bad, err)
		}
	}
}

func TestResolveCaption(t *testing.T) {
	rd := testRenderer(t)

	// Caption present only when alignment is requested.
	html, err := rd.Resolve(Request{Service: "acme", ID: "42", Align: "left", Description: "A short film"})
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if !strings.Contains(html, `<p class="embed-caption">A short film</p>`) {
		t.Errorf("aligned embed should carry the caption: %q", html)
	}

	html, err = rd.Resolve(Request{Service: "acme", ID: "42", Description: "A short film"})
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if strings.Contains(html, "embed-caption") {
		t.Errorf("unaligned embed must render no caption: %q", html)
	}
}

func TestResolveCaptionExpander(t *testing.T) {
	rd := testRenderer(t)
	rd.Expand = func(text string) string {
		return "<em>" + text + "</em>"
	}

	html, err := rd.Resolve(Request{Service: "acme", ID: "42", Align: "right", Description: "credits"})
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if !strings.Contains(html, "<em>credits</em>") {
		t.Errorf("caption should pass through the inline-markup expander: %q", html)
	}
}

func TestResolveCaptionEscapedByDefault(t *testing.T) {
	rd := testRenderer(t)

	html, err := rd.Resolve(Request{Service: "acme", ID: "42", Align: "left", Description: `<b>bold</b>`})
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if strings.Contains(html, "<b>") {
		t.Errorf("default expander must escape caption markup: %q", html)
	}
}

func TestResolveParameterErrors(t *testing.T) {
	rd := testRenderer(t)

	if _, err := rd.Resolve(Request{Service: "", ID: "42"}); !errors.Is(err, ErrMissingParameters) {
		t.Errorf("missing service: got %v", err)
	}
	if _, err := rd.Resolve(Request{Service: "acme", ID: ""}); !errors.Is(err, ErrMissingParameters) {
		t.Errorf("missing id: got %v", err)
	}
	if _, err := rd.Resolve(Request{Service: "nosuch", ID: "42"}); !errors.Is(err, ErrUnknownService) {
		t.Errorf("unknown service: got %v", err)
	}
	if _, err := rd.Resolve(Request{Service: "acme", ID: "   "}); !errors.Is(err, ErrInvalidIdentifier) {
		t.Errorf("blank id: got %v, want ErrInvalidIdentifier", err)
	}
}

func TestResolveEscapesIdentifier(t *testing.T) {
	rd := testRenderer(t)

	html, err := rd.Resolve(Request{Service: "acme", ID: `42"><script>`})
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if strings.Contains(html, "<script>") {
		t.Errorf("identifier must be escaped before substitution: %q", html)
	}
}

func TestResolveExternClause(t *testing.T) {
	rd := testRenderer(t)

	html, err := rd.Resolve(Request{Service: "boxed", ID: "99"})
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if !strings.Contains(html, `data="https://wiki.example.org/player?id=99"`) {
		t.Errorf("extern clause should substitute {base} and {id}: %q", html)
	}
	if !strings.Contains(html, `width="400" height="300"`) {
		t.Errorf("extern clause should substitute dimensions: %q", html)
	}
	if strings.HasPrefix(html, `<div`) {
		t.Errorf("unaligned extern clause should not be wrapped: %q", html)
	}
}

func TestResolveAlignedExtern(t *testing.T) {
	rd := testRenderer(t)

	html, err := rd.Resolve(Request{Service: "boxed", ID: "99", Align: "right", Description: "demo"})
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if !strings.HasPrefix(html, `<div class="embed tright">`) {
		t.Errorf("aligned-extern variant should use the same wrapper: %q", html)
	}
	if !strings.Contains(html, "<object") || !strings.Contains(html, "embed-caption") {
		t.Errorf("wrapper should contain extern markup and caption: %q", html)
	}
}

func TestRenderFailureMarkup(t *testing.T) {
	rd := testRenderer(t)

	m := rd.Render(Request{Service: "nosuch", ID: "42"})
	if !m.NoParse || !m.Raw {
		t.Errorf("failure markup should still be flagged raw/no-parse: %+v", m)
	}
	if !strings.Contains(m.HTML, "embed-error") {
		t.Errorf("HTML = %q, want inline failure markup", m.HTML)
	}
	if !strings.Contains(m.HTML, "nosuch") {
		t.Errorf("HTML = %q, want the offending service named", m.HTML)
	}
}

func TestRenderLocalizedMessages(t *testing.T) {
	rd := testRenderer(t)
	rd.Messages = func(err error, service string) string {
		if errors.Is(err, ErrUnknownService) {
			return "service inconnu: " + service
		}
		return "erreur"
	}

	m := rd.Render(Request{Service: "nosuch", ID: "42"})
	if !strings.Contains(m.HTML, "service inconnu: nosuch") {
		t.Errorf("HTML = %q, want catalog-provided text", m.HTML)
	}
}

func TestRenderSuccessFlags(t *testing.T) {
	rd := testRenderer(t)

	m := rd.Render(Request{Service: "acme", ID: "42", Width: "300"})
	if !m.NoParse || !m.Raw {
		t.Errorf("rendered markup must be flagged raw/no-parse: %+v", m)
	}
	if !strings.Contains(m.HTML, "acme.example") {
		t.Errorf("HTML = %q, want embed markup", m.HTML)
	}
}

func TestRenderLegacyParameterOrder(t *testing.T) {
	rd := testRenderer(t)

	legacy := rd.RenderLegacy("acme", "42", "caption text", "left", "300")
	direct := rd.Render(Request{Service: "acme", ID: "42", Width: "300", Align: "left", Description: "caption text"})

	if legacy != direct {
		t.Errorf("legacy call shape diverged:\n  legacy  %+v\n  direct  %+v", legacy, direct)
	}
}

func TestDefaultMessagesCoverTaxonomy(t *testing.T) {
	errs := []error{
		ErrMissingParameters, ErrUnknownService, ErrInvalidWidth,
		ErrInvalidAlignment, ErrInvalidIdentifier, ErrInvalidServiceID,
		ErrUnresolvedPlayback,
	}
	seen := make(map[string]bool)
	for _, err := range errs {
		msg := DefaultMessages(err, "svc")
		if msg == "" {
			t.Errorf("no message for %v", err)
		}
		if seen[msg] {
			t.Errorf("duplicate message %q", msg)
		}
		seen[msg] = true
	}
}
