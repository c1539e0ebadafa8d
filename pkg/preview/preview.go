// Package preview renders surfaces as standalone HTML pages for review in a
// browser. The output approximates the platform's layout; it is not a
// pixel-accurate client.
package preview

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"strings"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-blockkit/pkg/blockkit"
)

//go:embed templates/*.tmpl
var templatesFS embed.FS

const surfaceTemplate = "templates/surface"

// ErrUnknownSurface is returned for payloads whose kind is not home, modal
// or message.
var ErrUnknownSurface = errors.New("preview: unknown surface kind")

// Option configures a Renderer.
type Option func(*Renderer)

// WithTemplateRenderer replaces the built-in engine. The renderer must be able
// to resolve "templates/surface".
func WithTemplateRenderer(r TemplateRenderer) Option {
	return func(p *Renderer) {
		if r != nil {
			p.templates = r
		}
	}
}

// WithTemplatesFS loads templates from files instead of the embedded set.
func WithTemplatesFS(files fs.FS) Option {
	return func(p *Renderer) {
		if files != nil {
			p.files = files
		}
	}
}

// WithTheme applies a fixed theme configuration.
func WithTheme(cfg *theme.RendererConfig) Option {
	return func(p *Renderer) {
		p.theme = cfg
	}
}

// WithThemeSelector resolves the theme on every render. A selector error
// fails the render.
func WithThemeSelector(selector theme.ThemeSelector, name, variant string) Option {
	return func(p *Renderer) {
		p.selector = selector
		p.themeName = name
		p.themeVariant = variant
	}
}

// Renderer turns surfaces into HTML.
type Renderer struct {
	templates    TemplateRenderer
	files        fs.FS
	theme        *theme.RendererConfig
	selector     theme.ThemeSelector
	themeName    string
	themeVariant string
}

// New builds a Renderer.
func New(options ...Option) (*Renderer, error) {
	r := &Renderer{files: templatesFS}
	for _, opt := range options {
		if opt != nil {
			opt(r)
		}
	}
	if r.templates == nil {
		engine, err := NewEngine(WithEngineFS(r.files))
		if err != nil {
			return nil, err
		}
		r.templates = engine
	}
	return r, nil
}

// Render builds s and renders it.
func (r *Renderer) Render(ctx context.Context, s blockkit.Surface) ([]byte, error) {
	if s == nil {
		return nil, errors.New("preview: surface is nil")
	}
	body := blockkit.Build(s)
	if body == nil {
		return nil, errors.New("preview: surface is nil")
	}
	return r.RenderPayload(ctx, s.Kind(), body.Map())
}

// RenderJSON renders a raw payload of the given kind. Messages carry no type
// key, so kind is always required.
func (r *Renderer) RenderJSON(ctx context.Context, kind string, raw []byte) ([]byte, error) {
	var payload map[string]any
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, fmt.Errorf("preview: decode payload: %w", err)
	}
	return r.RenderPayload(ctx, kind, payload)
}

// RenderPayload renders decoded surface data.
func (r *Renderer) RenderPayload(ctx context.Context, kind string, payload map[string]any) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	switch kind {
	case "home", "modal", "message":
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownSurface, kind)
	}

	cfg, err := r.themeConfig()
	if err != nil {
		return nil, err
	}
	view := buildSurfaceView(kind, payload)
	view.Theme = buildThemeView(cfg)

	out, err := r.templates.RenderTemplate(surfaceTemplate, view)
	if err != nil {
		return nil, err
	}
	return []byte(out), nil
}

func (r *Renderer) themeConfig() (*theme.RendererConfig, error) {
	if r.selector == nil {
		return r.theme, nil
	}
	sel, err := r.selector.Select(r.themeName, r.themeVariant)
	if err != nil {
		return nil, fmt.Errorf("preview: select theme %q: %w", r.themeName, err)
	}
	return ConfigFromSelection(sel), nil
}

type surfaceView struct {
	Kind   string      `json:"kind"`
	Title  string      `json:"title,omitempty"`
	Submit string      `json:"submit,omitempty"`
	Close  string      `json:"close,omitempty"`
	Text   string      `json:"text,omitempty"`
	Blocks []blockView `json:"blocks"`
	Theme  themeView   `json:"theme"`
}

type blockView struct {
	Type      string        `json:"type"`
	BlockID   string        `json:"block_id,omitempty"`
	HTML      string        `json:"html,omitempty"`
	Fields    []string      `json:"fields,omitempty"`
	Elements  []elementView `json:"elements,omitempty"`
	Accessory *elementView  `json:"accessory,omitempty"`
	Image     string        `json:"image,omitempty"`
	Label     string        `json:"label,omitempty"`
	Hint      string        `json:"hint,omitempty"`
	Optional  bool          `json:"optional,omitempty"`
}

type elementView struct {
	Type  string `json:"type"`
	HTML  string `json:"html"`
	Style string `json:"style,omitempty"`
}

func buildSurfaceView(kind string, payload map[string]any) surfaceView {
	view := surfaceView{
		Kind:   kind,
		Title:  textOf(payload["title"]),
		Submit: textOf(payload["submit"]),
		Close:  textOf(payload["close"]),
		Blocks: []blockView{},
	}
	if kind == "message" {
		view.Text = Mrkdwn(str(payload["text"]))
	}
	for _, raw := range list(payload["blocks"]) {
		if block, ok := raw.(map[string]any); ok {
			view.Blocks = append(view.Blocks, buildBlockView(block))
		}
	}
	return view
}

func buildBlockView(block map[string]any) blockView {
	view := blockView{
		Type:    str(block["type"]),
		BlockID: str(block["block_id"]),
	}
	switch view.Type {
	case "section":
		view.HTML = textHTML(block["text"])
		for _, f := range list(block["fields"]) {
			view.Fields = append(view.Fields, textHTML(f))
		}
		if acc, ok := block["accessory"].(map[string]any); ok {
			el := buildElementView(acc)
			view.Accessory = &el
		}
	case "header":
		view.HTML = textHTML(block["text"])
	case "context":
		parts := make([]string, 0)
		for _, raw := range list(block["elements"]) {
			el, _ := raw.(map[string]any)
			if str(el["type"]) == "image" {
				parts = append(parts, imageHTML(str(el["image_url"]), str(el["alt_text"])))
				continue
			}
			parts = append(parts, textHTML(el))
		}
		view.HTML = strings.Join(parts, " ")
	case "actions":
		for _, raw := range list(block["elements"]) {
			if el, ok := raw.(map[string]any); ok {
				view.Elements = append(view.Elements, buildElementView(el))
			}
		}
	case "input":
		view.Label = textOf(block["label"])
		view.Hint = textOf(block["hint"])
		view.Optional, _ = block["optional"].(bool)
		if el, ok := block["element"].(map[string]any); ok {
			view.Elements = []elementView{buildElementView(el)}
		}
	case "image":
		view.HTML = textHTML(block["title"])
		view.Image = imageHTML(str(block["image_url"]), str(block["alt_text"]))
	case "video":
		view.HTML = textHTML(block["title"])
		view.Image = linkHTML(str(block["title_url"]), imageHTML(str(block["thumbnail_url"]), str(block["alt_text"])))
	case "file":
		view.HTML = PlainText("File " + str(block["external_id"]))
	}
	return view
}

func buildElementView(el map[string]any) elementView {
	view := elementView{Type: str(el["type"]), Style: str(el["style"])}
	switch view.Type {
	case "button":
		view.HTML = linkHTML(str(el["url"]), PlainText(textOf(el["text"])))
	case "image":
		view.HTML = imageHTML(str(el["image_url"]), str(el["alt_text"]))
	case "overflow":
		view.HTML = PlainText("⋯")
	case "checkboxes", "radio_buttons":
		labels := make([]string, 0)
		for _, raw := range list(el["options"]) {
			opt, _ := raw.(map[string]any)
			labels = append(labels, textHTML(opt["text"]))
		}
		view.HTML = strings.Join(labels, "<br>")
	default:
		view.HTML = PlainText(elementLabel(el))
	}
	return view
}

// elementLabel picks what an input shows before interaction.
func elementLabel(el map[string]any) string {
	if opt, ok := el["initial_option"].(map[string]any); ok {
		return textOf(opt["text"])
	}
	for _, key := range []string{"initial_value", "initial_date", "initial_time", "initial_user", "initial_conversation", "initial_channel"} {
		if v := str(el[key]); v != "" {
			return v
		}
	}
	if p := textOf(el["placeholder"]); p != "" {
		return p
	}
	return str(el["type"])
}

func textHTML(v any) string {
	t, ok := v.(map[string]any)
	if !ok {
		return ""
	}
	if str(t["type"]) == "mrkdwn" {
		return Mrkdwn(str(t["text"]))
	}
	return PlainText(str(t["text"]))
}

func textOf(v any) string {
	t, ok := v.(map[string]any)
	if !ok {
		return ""
	}
	return str(t["text"])
}

func str(v any) string {
	s, _ := v.(string)
	return s
}

func list(v any) []any {
	l, _ := v.([]any)
	return l
}

// TemplatesFS exposes the embedded templates so callers can copy or extend
// them and pass the result to WithTemplatesFS.
func TemplatesFS() fs.FS {
	return templatesFS
}
