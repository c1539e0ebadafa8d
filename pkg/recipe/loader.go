// Package recipe turns YAML or JSON surface descriptions into typed entities.
// Every value passes through the blockkit constructors, so a recipe that
// builds is a payload that satisfies the platform's constraints.
package recipe

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

var ErrEmpty = errors.New("recipe: document is empty")

// Parse decodes a recipe from JSON or YAML. source names the document in
// errors.
func Parse(data []byte, source string) (Recipe, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return Recipe{}, fmt.Errorf("%w: %s", ErrEmpty, source)
	}

	var r Recipe
	if isJSON(source, data) {
		if err := json.Unmarshal(data, &r); err != nil {
			return Recipe{}, fmt.Errorf("recipe: parse %s: %w", source, err)
		}
		return r, nil
	}
	if err := yaml.Unmarshal(data, &r); err != nil {
		return Recipe{}, fmt.Errorf("recipe: parse %s: %w", source, err)
	}
	return r, nil
}

// LoadFile reads and parses one recipe from fsys.
func LoadFile(fsys fs.FS, path string) (Recipe, error) {
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return Recipe{}, fmt.Errorf("recipe: read %s: %w", path, err)
	}
	return Parse(data, path)
}

// LoadFS parses every .json, .yaml and .yml file in fsys, keyed by path.
func LoadFS(fsys fs.FS) (map[string]Recipe, error) {
	out := make(map[string]Recipe)
	if fsys == nil {
		return out, nil
	}
	err := fs.WalkDir(fsys, ".", func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() || !isRecipeFile(path) {
			return nil
		}
		r, err := LoadFile(fsys, path)
		if err != nil {
			return err
		}
		out[path] = r
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Marshal encodes r as YAML.
func Marshal(r Recipe) ([]byte, error) {
	return yaml.Marshal(r)
}

func isJSON(source string, data []byte) bool {
	if strings.EqualFold(filepath.Ext(source), ".json") {
		return true
	}
	trimmed := strings.TrimSpace(string(data))
	return strings.HasPrefix(trimmed, "{")
}

func isRecipeFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml":
		return true
	default:
		return false
	}
}
