package preview_test

import (
	"errors"
	"strings"
	"testing"
	"testing/fstest"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-blockkit/pkg/blockkit"
	"github.com/goliatone/go-blockkit/pkg/preview"
	"github.com/goliatone/go-blockkit/pkg/testsupport"
)

func newRenderer(t *testing.T, opts ...preview.Option) *preview.Renderer {
	t.Helper()
	r, err := preview.New(opts...)
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	return r
}

func TestRender_Modal(t *testing.T) {
	section, err := blockkit.NewSectionBlock(blockkit.SectionBlockConfig{
		Text:    testsupport.MustMrkdwn(t, "*Deploy* to _prod_?"),
		BlockID: "question",
	})
	if err != nil {
		t.Fatalf("section: %v", err)
	}
	field, err := blockkit.NewPlainTextInput(blockkit.PlainTextInputConfig{ActionID: "reason"})
	if err != nil {
		t.Fatalf("text input: %v", err)
	}
	input, err := blockkit.NewInputBlock(blockkit.InputBlockConfig{
		Label:    testsupport.MustPlainText(t, "Reason"),
		Element:  field,
		Optional: true,
	})
	if err != nil {
		t.Fatalf("input: %v", err)
	}
	divider, err := blockkit.NewDividerBlock("")
	if err != nil {
		t.Fatalf("divider: %v", err)
	}
	modal, err := blockkit.NewModal(blockkit.ModalConfig{
		Title:  testsupport.MustPlainText(t, "Deploy"),
		Submit: testsupport.MustPlainText(t, "Ship it"),
		Blocks: []blockkit.Block{section, divider, input},
	})
	if err != nil {
		t.Fatalf("modal: %v", err)
	}

	out, err := newRenderer(t).Render(testsupport.Context(), modal)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	html := string(out)

	for _, want := range []string{
		`<title>Deploy</title>`,
		`class="bk-surface bk-modal"`,
		`id="question"`,
		`<strong>Deploy</strong> to <em>prod</em>?`,
		`<hr>`,
		`<label>Reason <small>(optional)</small></label>`,
		`<button type="submit">Ship it</button>`,
	} {
		if !strings.Contains(html, want) {
			t.Fatalf("expected %q in output:\n%s", want, html)
		}
	}
}

func TestRenderJSON_EscapesMarkup(t *testing.T) {
	raw := []byte(`{
		"type": "home",
		"blocks": [
			{"type": "section", "block_id": "\"><script>x</script>", "text": {"type": "mrkdwn", "text": "<script>alert(1)</script> <javascript:alert(1)|click>"}},
			{"type": "image", "image_url": "javascript:alert(1)", "alt_text": "bad"},
			{"type": "header", "text": {"type": "plain_text", "text": "<b>hi</b>"}}
		]
	}`)

	out, err := newRenderer(t).RenderJSON(testsupport.Context(), "home", raw)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	html := string(out)

	if strings.Contains(html, "<script>") {
		t.Fatalf("script tag leaked:\n%s", html)
	}
	if strings.Contains(html, `href="javascript`) || strings.Contains(html, `src="javascript`) {
		t.Fatalf("javascript url leaked:\n%s", html)
	}
	if !strings.Contains(html, "&lt;b&gt;hi&lt;/b&gt;") {
		t.Fatalf("expected escaped header text:\n%s", html)
	}
}

func TestRenderJSON_Message(t *testing.T) {
	raw := []byte(`{"text": "see <https://example.com|the docs>", "blocks": [{"type": "file", "external_id": "F1", "source": "remote"}]}`)

	out, err := newRenderer(t).RenderJSON(testsupport.Context(), "message", raw)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	html := string(out)
	if !strings.Contains(html, `href="https://example.com"`) || !strings.Contains(html, ">the docs</a>") {
		t.Fatalf("expected a rendered link:\n%s", html)
	}
	if !strings.Contains(html, "File F1") {
		t.Fatalf("expected file placeholder:\n%s", html)
	}
}

func TestRenderPayload_UnknownKind(t *testing.T) {
	_, err := newRenderer(t).RenderPayload(testsupport.Context(), "workflow_step", map[string]any{})
	if !errors.Is(err, preview.ErrUnknownSurface) {
		t.Fatalf("expected ErrUnknownSurface, got %v", err)
	}
}

func TestRender_ThemeConfig(t *testing.T) {
	cfg := &theme.RendererConfig{
		Theme:   "acme",
		Variant: "dark",
		CSSVars: map[string]string{"--brand": "#123456", "--accent": "#abcdef"},
		AssetURL: func(key string) string {
			if key == preview.AssetStylesheet {
				return "/assets/acme.css"
			}
			return ""
		},
	}

	out, err := newRenderer(t, preview.WithTheme(cfg)).RenderJSON(testsupport.Context(), "home", []byte(`{"type":"home","blocks":[]}`))
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	html := string(out)
	for _, want := range []string{
		":root {\n--accent: #abcdef;\n--brand: #123456;\n}",
		`<link rel="stylesheet" href="/assets/acme.css">`,
		`data-theme="acme"`,
		`data-variant="dark"`,
	} {
		if !strings.Contains(html, want) {
			t.Fatalf("expected %q in output:\n%s", want, html)
		}
	}
	if strings.Contains(html, "bk-logo") {
		t.Fatalf("logo rendered without an asset:\n%s", html)
	}
}

type stubSelector struct {
	selection *theme.Selection
	err       error
	calls     int
}

func (s *stubSelector) Select(name, variant string, _ ...theme.QueryOption) (*theme.Selection, error) {
	s.calls++
	return s.selection, s.err
}

func TestRender_ThemeSelector(t *testing.T) {
	selector := &stubSelector{selection: &theme.Selection{
		Theme:   "acme",
		Variant: "dark",
		Manifest: &theme.Manifest{
			Name:   "acme",
			Tokens: map[string]string{"brand": "#123456"},
			Assets: theme.Assets{Prefix: "/static/acme", Files: map[string]string{preview.AssetLogo: "logo.svg"}},
			Variants: map[string]theme.Variant{
				"dark": {Tokens: map[string]string{"brand": "#000000"}},
			},
		},
	}}

	r := newRenderer(t, preview.WithThemeSelector(selector, "acme", "dark"))
	out, err := r.RenderJSON(testsupport.Context(), "home", []byte(`{"type":"home","blocks":[]}`))
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	html := string(out)
	if !strings.Contains(html, "--brand: #000000;") {
		t.Fatalf("expected variant token to win:\n%s", html)
	}
	if !strings.Contains(html, `src="/static/acme/logo.svg"`) {
		t.Fatalf("expected resolved logo asset:\n%s", html)
	}
	if selector.calls != 1 {
		t.Fatalf("expected one selector call, got %d", selector.calls)
	}

	selector.err = errors.New("boom")
	if _, err := r.RenderJSON(testsupport.Context(), "home", []byte(`{"type":"home","blocks":[]}`)); err == nil {
		t.Fatalf("expected selector error to fail the render")
	}
}

func TestWithTemplatesFS(t *testing.T) {
	files := fstest.MapFS{
		"templates/surface.tmpl": {Data: []byte(`{{ kind }}:{% for block in blocks %}{{ block.type }} {% endfor %}`)},
	}
	out, err := newRenderer(t, preview.WithTemplatesFS(files)).RenderJSON(
		testsupport.Context(), "home", []byte(`{"type":"home","blocks":[{"type":"divider"},{"type":"divider"}]}`))
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got := string(out); got != "home:divider divider " {
		t.Fatalf("unexpected output %q", got)
	}
}
