package main

import (
	"encoding/json"
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-blockkit/pkg/conformance"
)

func newValidateCmd(a *app) *cobra.Command {
	var (
		schema     string
		fromRecipe bool
	)
	cmd := &cobra.Command{
		Use:   "validate <payload>",
		Short: "Check a JSON payload against the wire schema",
		Long: `Validate checks a payload and prints the report. The schema is taken
from --schema, or from the payload's "type" key, falling back to "message".
With --recipe the input is built from a recipe first.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			checker, err := conformance.New(cmd.Context())
			if err != nil {
				return err
			}

			var report conformance.Report
			if fromRecipe {
				surface, err := loadSurface(cmd, args[0])
				if err != nil {
					return err
				}
				report, err = checker.CheckEntity(surface)
				if err != nil {
					return err
				}
			} else {
				data, err := readInput(cmd, args[0])
				if err != nil {
					return err
				}
				name := schema
				if name == "" {
					name = inferSchema(data, checker.Schemas())
				}
				report, err = checker.CheckJSON(name, data)
				if err != nil {
					return err
				}
			}

			out, err := encodeValue(report, a.cfg)
			if err != nil {
				return err
			}
			if err := writeOutput(cmd, "", out); err != nil {
				return err
			}
			if !report.OK() {
				return fmt.Errorf("%s: %d issue(s)", report.Schema, len(report.Issues))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&schema, "schema", "", "schema name (home, modal, message, block, element, ...)")
	cmd.Flags().BoolVar(&fromRecipe, "recipe", false, "treat the input as a recipe")
	return cmd
}

// inferSchema picks a schema from the payload's type key. Messages carry no
// type; block types map to the block union.
func inferSchema(data []byte, known []string) string {
	var probe struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return "message"
	}
	switch probe.Type {
	case "home", "modal":
		return probe.Type
	case "":
		return "message"
	case "plain_text", "mrkdwn":
		return "text"
	}
	if slices.Contains(known, probe.Type+"_block") {
		return "block"
	}
	if slices.Contains(known, probe.Type) {
		return probe.Type
	}
	return "element"
}
