// Command blockkit builds, checks and previews Block Kit surfaces from YAML
// recipes or raw payloads.
package main

import (
	"log"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/goliatone/go-blockkit/internal/prompt"
)

// app carries state shared by every subcommand.
type app struct {
	configFile string
	v          *viper.Viper
	cfg        config

	prompts prompt.Driver
	newID   func() string
}

func main() {
	log.SetFlags(0)
	a := &app{newID: uuid.NewString}
	if err := newRootCmd(a).Execute(); err != nil {
		log.Fatalf("blockkit: %v", err)
	}
}

func newRootCmd(a *app) *cobra.Command {
	if a.v == nil {
		a.v = newViper()
	}
	if a.newID == nil {
		a.newID = uuid.NewString
	}

	root := &cobra.Command{
		Use:           "blockkit",
		Short:         "Build, validate and preview Block Kit surfaces",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(a.v, a.configFile)
			if err != nil {
				return err
			}
			a.cfg = cfg
			return nil
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.configFile, "config", "", "config file (default: ./blockkit.yaml)")
	flags.String("format", "json", "output format: json or yaml")
	flags.Int("indent", 2, "JSON indentation width")
	flags.Bool("validate", true, "check payloads against the wire schema before writing")
	for _, key := range []string{cfgKeyFormat, cfgKeyIndent, cfgKeyValidate} {
		if err := a.v.BindPFlag(key, flags.Lookup(key)); err != nil {
			log.Fatalf("blockkit: bind flag %s: %v", key, err)
		}
	}

	root.AddCommand(
		newBuildCmd(a),
		newValidateCmd(a),
		newPreviewCmd(a),
		newComposeCmd(a),
	)
	return root
}
