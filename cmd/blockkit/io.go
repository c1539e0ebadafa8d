package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	blockkit "github.com/goliatone/go-blockkit"
	"github.com/goliatone/go-blockkit/pkg/recipe"
)

// readInput reads path, or stdin when path is "-".
func readInput(cmd *cobra.Command, path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return data, nil
}

// writeOutput writes data to path, or stdout when path is empty.
func writeOutput(cmd *cobra.Command, path string, data []byte) error {
	if path == "" {
		_, err := cmd.OutOrStdout().Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "written to %s\n", path)
	return nil
}

func loadSurface(cmd *cobra.Command, path string) (blockkit.Surface, error) {
	data, err := readInput(cmd, path)
	if err != nil {
		return nil, err
	}
	r, err := recipe.Parse(data, path)
	if err != nil {
		return nil, err
	}
	return recipe.Build(r)
}

// encodeEntity renders e in the configured format.
func encodeEntity(e blockkit.Entity, cfg config) ([]byte, error) {
	if cfg.Format == "yaml" {
		return blockkit.MarshalYAML(e)
	}
	return encodeJSON(blockkit.Build(e), cfg.Indent)
}

// encodeValue renders plain Go values (reports, recipes) in the configured
// format.
func encodeValue(v any, cfg config) ([]byte, error) {
	if cfg.Format == "yaml" {
		return yaml.Marshal(v)
	}
	return encodeJSON(v, cfg.Indent)
}

func encodeJSON(v any, indent int) ([]byte, error) {
	var (
		data []byte
		err  error
	)
	if indent == 0 {
		data, err = json.Marshal(v)
	} else {
		data, err = json.MarshalIndent(v, "", strings.Repeat(" ", indent))
	}
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}
