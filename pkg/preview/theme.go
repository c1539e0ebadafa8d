package preview

import (
	"sort"
	"strings"

	theme "github.com/goliatone/go-theme"
)

// Theme asset keys the surface template looks up through AssetURL.
const (
	AssetStylesheet = "preview.stylesheet"
	AssetLogo       = "preview.logo"
)

type themeView struct {
	Name         string            `json:"name,omitempty"`
	Variant      string            `json:"variant,omitempty"`
	Tokens       map[string]string `json:"tokens,omitempty"`
	CSSVarsStyle string            `json:"css_vars_style,omitempty"`
	Stylesheet   string            `json:"stylesheet,omitempty"`
	Logo         string            `json:"logo,omitempty"`
}

// ConfigFromSelection flattens a theme selection into a renderer config.
// Variant tokens, templates and assets override the manifest's; every token
// becomes a "--token" CSS variable.
func ConfigFromSelection(sel *theme.Selection) *theme.RendererConfig {
	if sel == nil {
		return nil
	}
	cfg := &theme.RendererConfig{
		Theme:   sel.Theme,
		Variant: sel.Variant,
	}
	manifest := sel.Manifest
	if manifest == nil {
		return cfg
	}

	tokens := mergeStrings(manifest.Tokens, nil)
	partials := mergeStrings(manifest.Templates, nil)
	prefix := manifest.Assets.Prefix
	files := mergeStrings(manifest.Assets.Files, nil)
	if variant, ok := manifest.Variants[sel.Variant]; ok {
		tokens = mergeStrings(tokens, variant.Tokens)
		partials = mergeStrings(partials, variant.Templates)
		files = mergeStrings(files, variant.Assets.Files)
		if variant.Assets.Prefix != "" {
			prefix = variant.Assets.Prefix
		}
	}

	cfg.Tokens = tokens
	cfg.Partials = partials
	if len(tokens) > 0 {
		cfg.CSSVars = make(map[string]string, len(tokens))
		for key, value := range tokens {
			cfg.CSSVars["--"+key] = value
		}
	}
	cfg.AssetURL = func(key string) string {
		file, ok := files[key]
		if !ok || file == "" {
			return ""
		}
		if prefix == "" || strings.Contains(file, "://") {
			return file
		}
		return strings.TrimRight(prefix, "/") + "/" + strings.TrimLeft(file, "/")
	}
	return cfg
}

func buildThemeView(cfg *theme.RendererConfig) themeView {
	if cfg == nil {
		return themeView{}
	}
	view := themeView{
		Name:         cfg.Theme,
		Variant:      cfg.Variant,
		Tokens:       mergeStrings(cfg.Tokens, nil),
		CSSVarsStyle: cssVarsStyle(cfg.CSSVars),
	}
	if cfg.AssetURL != nil {
		view.Stylesheet = cfg.AssetURL(AssetStylesheet)
		view.Logo = cfg.AssetURL(AssetLogo)
	}
	return view
}

func cssVarsStyle(vars map[string]string) string {
	if len(vars) == 0 {
		return ""
	}
	keys := make([]string, 0, len(vars))
	for key := range vars {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(":root {\n")
	for _, key := range keys {
		b.WriteString(key)
		b.WriteString(": ")
		b.WriteString(vars[key])
		b.WriteString(";\n")
	}
	b.WriteString("}")
	return b.String()
}

func mergeStrings(base, override map[string]string) map[string]string {
	if len(base) == 0 && len(override) == 0 {
		return nil
	}
	out := make(map[string]string, len(base)+len(override))
	for key, value := range base {
		out[key] = value
	}
	for key, value := range override {
		out[key] = value
	}
	return out
}
