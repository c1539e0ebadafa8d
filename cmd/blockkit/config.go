package main

import (
	"errors"
	"fmt"
	"strings"

	theme "github.com/goliatone/go-theme"
	"github.com/spf13/viper"

	"github.com/goliatone/go-blockkit/pkg/preview"
)

const (
	configFileName = "blockkit"
	configFileType = "yaml"
	envPrefix      = "BLOCKKIT"

	cfgKeyFormat          = "format"
	cfgKeyIndent          = "indent"
	cfgKeyValidate        = "validate"
	cfgKeyThemeName       = "theme.name"
	cfgKeyThemeVariant    = "theme.variant"
	cfgKeyThemeStylesheet = "theme.stylesheet"
	cfgKeyThemeTokens     = "theme.tokens"
)

type config struct {
	Format   string
	Indent   int
	Validate bool

	ThemeName       string
	ThemeVariant    string
	ThemeStylesheet string
	ThemeTokens     map[string]string
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetDefault(cfgKeyFormat, "json")
	v.SetDefault(cfgKeyIndent, 2)
	v.SetDefault(cfgKeyValidate, true)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// loadConfig reads blockkit.yaml from the working directory, or path when
// set. A missing default file is not an error; a missing explicit file is.
func loadConfig(v *viper.Viper, path string) (config, error) {
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(configFileName)
		v.SetConfigType(configFileType)
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return config{}, fmt.Errorf("read config: %w", err)
		}
	}

	cfg := config{
		Format:          strings.ToLower(v.GetString(cfgKeyFormat)),
		Indent:          v.GetInt(cfgKeyIndent),
		Validate:        v.GetBool(cfgKeyValidate),
		ThemeName:       v.GetString(cfgKeyThemeName),
		ThemeVariant:    v.GetString(cfgKeyThemeVariant),
		ThemeStylesheet: v.GetString(cfgKeyThemeStylesheet),
		ThemeTokens:     v.GetStringMapString(cfgKeyThemeTokens),
	}
	switch cfg.Format {
	case "json", "yaml":
	default:
		return config{}, fmt.Errorf("unsupported format %q (want json or yaml)", cfg.Format)
	}
	if cfg.Indent < 0 {
		return config{}, fmt.Errorf("indent must not be negative, got %d", cfg.Indent)
	}
	return cfg, nil
}

// themeConfig turns the theme section into renderer settings, nil when no
// theme is configured.
func (c config) themeConfig() *theme.RendererConfig {
	if c.ThemeName == "" && len(c.ThemeTokens) == 0 && c.ThemeStylesheet == "" {
		return nil
	}
	manifest := &theme.Manifest{
		Name:   c.ThemeName,
		Tokens: c.ThemeTokens,
	}
	if c.ThemeStylesheet != "" {
		manifest.Assets = theme.Assets{Files: map[string]string{preview.AssetStylesheet: c.ThemeStylesheet}}
	}
	return preview.ConfigFromSelection(&theme.Selection{
		Theme:    c.ThemeName,
		Variant:  c.ThemeVariant,
		Manifest: manifest,
	})
}
