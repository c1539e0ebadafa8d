package main

import (
	"github.com/spf13/cobra"

	blockkit "github.com/goliatone/go-blockkit"
)

func newBuildCmd(a *app) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "build <recipe>",
		Short: "Build a surface payload from a YAML or JSON recipe",
		Long: `Build reads a recipe, constructs the surface through the typed
constructors and prints the platform payload. Use "-" to read from stdin.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			surface, err := loadSurface(cmd, args[0])
			if err != nil {
				return err
			}
			if a.cfg.Validate {
				if err := checkEntity(cmd, surface); err != nil {
					return err
				}
			}
			data, err := encodeEntity(surface, a.cfg)
			if err != nil {
				return err
			}
			return writeOutput(cmd, output, data)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (stdout if empty)")
	return cmd
}

func checkEntity(cmd *cobra.Command, e blockkit.Entity) error {
	report, err := blockkit.Validate(cmd.Context(), e)
	if err != nil {
		return err
	}
	return report.Err()
}
