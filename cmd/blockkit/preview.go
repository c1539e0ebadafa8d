package main

import (
	"github.com/spf13/cobra"

	"github.com/goliatone/go-blockkit/pkg/preview"
)

func newPreviewCmd(a *app) *cobra.Command {
	var (
		output string
		kind   string
	)
	cmd := &cobra.Command{
		Use:   "preview <recipe|payload>",
		Short: "Render a surface as an HTML page",
		Long: `Preview renders a recipe as HTML. With --kind the input is a raw JSON
payload of that surface kind (home, modal or message). The theme section of
the config file sets CSS variables and a stylesheet.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			renderer, err := preview.New(preview.WithTheme(a.cfg.themeConfig()))
			if err != nil {
				return err
			}

			var html []byte
			if kind != "" {
				data, err := readInput(cmd, args[0])
				if err != nil {
					return err
				}
				html, err = renderer.RenderJSON(cmd.Context(), kind, data)
				if err != nil {
					return err
				}
			} else {
				surface, err := loadSurface(cmd, args[0])
				if err != nil {
					return err
				}
				html, err = renderer.Render(cmd.Context(), surface)
				if err != nil {
					return err
				}
			}
			return writeOutput(cmd, output, html)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (stdout if empty)")
	cmd.Flags().StringVar(&kind, "kind", "", "treat the input as a raw payload of this surface kind")
	return cmd
}
