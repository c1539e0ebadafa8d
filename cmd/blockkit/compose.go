package main

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-blockkit/internal/prompt"
	"github.com/goliatone/go-blockkit/pkg/recipe"
)

const (
	blockHeader    = "header"
	blockSection   = "section"
	blockDivider   = "divider"
	blockButton    = "button"
	blockTextInput = "text input"
	blockCheckbox  = "checkboxes"
	blockDone      = "done"

	maxComposedBlocks = 50
	maxCheckboxes     = 10
)

var composeChoices = []string{blockHeader, blockSection, blockDivider, blockButton, blockTextInput, blockCheckbox, blockDone}

func newComposeCmd(a *app) *cobra.Command {
	var (
		output   string
		asRecipe bool
	)
	cmd := &cobra.Command{
		Use:   "compose",
		Short: "Compose a surface interactively",
		Long: `Compose asks for a surface kind and its blocks, generating action and
block ids. It prints the built payload, or the recipe with --recipe.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			driver := a.prompts
			if driver == nil {
				driver = prompt.NewSurvey(cmd.ErrOrStderr())
			}
			r, err := composeRecipe(cmd.Context(), driver, a.newID)
			if err != nil {
				return err
			}

			surface, err := recipe.Build(r)
			if err != nil {
				return err
			}
			if a.cfg.Validate {
				if err := checkEntity(cmd, surface); err != nil {
					return err
				}
			}

			var data []byte
			if asRecipe {
				data, err = recipe.Marshal(r)
			} else {
				data, err = encodeEntity(surface, a.cfg)
			}
			if err != nil {
				return err
			}
			return writeOutput(cmd, output, data)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (stdout if empty)")
	cmd.Flags().BoolVar(&asRecipe, "recipe", false, "print the recipe instead of the payload")
	return cmd
}

func composeRecipe(ctx context.Context, driver prompt.Driver, newID func() string) (recipe.Recipe, error) {
	surfaces := []string{"message", "modal", "home"}
	idx, err := driver.Select(ctx, prompt.SelectConfig{Message: "Surface", Options: surfaces})
	if err != nil {
		return recipe.Recipe{}, err
	}
	r := recipe.Recipe{Surface: surfaces[idx]}

	switch r.Surface {
	case "message":
		if r.Text, err = driver.Input(ctx, prompt.InputConfig{
			Message: "Fallback text",
			Help:    "Shown in notifications and clients that cannot render blocks",
		}); err != nil {
			return recipe.Recipe{}, err
		}
	case "modal":
		if r.Title, err = driver.Input(ctx, prompt.InputConfig{Message: "Title", Validator: maxChars(24)}); err != nil {
			return recipe.Recipe{}, err
		}
		if r.Submit, err = driver.Input(ctx, prompt.InputConfig{Message: "Submit label", Default: "Submit", Validator: maxChars(24)}); err != nil {
			return recipe.Recipe{}, err
		}
		if r.Close, err = driver.Input(ctx, prompt.InputConfig{Message: "Close label", Default: "Cancel", Validator: maxChars(24)}); err != nil {
			return recipe.Recipe{}, err
		}
		r.CallbackID = "modal-" + newID()
	}

	for len(r.Blocks) < maxComposedBlocks {
		choice, err := driver.Select(ctx, prompt.SelectConfig{
			Message:      "Add a block",
			Options:      composeChoices,
			DefaultIndex: len(composeChoices) - 1,
		})
		if err != nil {
			return recipe.Recipe{}, err
		}
		kind := composeChoices[choice]
		if kind == blockDone {
			break
		}
		block, err := composeBlock(ctx, driver, kind, newID)
		if err != nil {
			return recipe.Recipe{}, err
		}
		r.Blocks = append(r.Blocks, block)
	}

	if err := driver.Info(ctx, fmt.Sprintf("composed a %s with %d block(s)", r.Surface, len(r.Blocks))); err != nil {
		return recipe.Recipe{}, err
	}
	return r, nil
}

func composeBlock(ctx context.Context, driver prompt.Driver, kind string, newID func() string) (recipe.Block, error) {
	block := recipe.Block{BlockID: "block-" + newID()}
	switch kind {
	case blockHeader:
		text, err := driver.Input(ctx, prompt.InputConfig{Message: "Header text", Validator: maxChars(150)})
		if err != nil {
			return recipe.Block{}, err
		}
		block.Type, block.Text = "header", text
	case blockSection:
		text, err := driver.Input(ctx, prompt.InputConfig{Message: "Section text (mrkdwn)", Validator: maxChars(3000)})
		if err != nil {
			return recipe.Block{}, err
		}
		block.Type, block.Text = "section", text
	case blockDivider:
		block.Type = "divider"
	case blockButton:
		label, err := driver.Input(ctx, prompt.InputConfig{Message: "Button label", Validator: maxChars(75)})
		if err != nil {
			return recipe.Block{}, err
		}
		primary, err := driver.Confirm(ctx, prompt.ConfirmConfig{Message: "Primary style?"})
		if err != nil {
			return recipe.Block{}, err
		}
		button := recipe.Element{Type: "button", Text: label, ActionID: "action-" + newID()}
		if primary {
			button.Style = "primary"
		}
		block.Type, block.Elements = "actions", []recipe.Element{button}
	case blockTextInput:
		label, err := driver.Input(ctx, prompt.InputConfig{Message: "Input label", Validator: maxChars(2000)})
		if err != nil {
			return recipe.Block{}, err
		}
		multiline, err := driver.Confirm(ctx, prompt.ConfirmConfig{Message: "Multiline?"})
		if err != nil {
			return recipe.Block{}, err
		}
		block.Type, block.Label = "input", label
		block.Element = &recipe.Element{Type: "plain_text_input", ActionID: "action-" + newID(), Multiline: multiline}
	case blockCheckbox:
		label, err := driver.Input(ctx, prompt.InputConfig{Message: "Input label", Validator: maxChars(2000)})
		if err != nil {
			return recipe.Block{}, err
		}
		raw, err := driver.Input(ctx, prompt.InputConfig{
			Message:   "Options",
			Help:      "Comma separated labels",
			Validator: optionList,
		})
		if err != nil {
			return recipe.Block{}, err
		}
		labels := splitOptions(raw)
		checked, err := driver.MultiSelect(ctx, prompt.SelectConfig{Message: "Checked by default", Options: labels})
		if err != nil {
			return recipe.Block{}, err
		}
		element := &recipe.Element{Type: "checkboxes", ActionID: "action-" + newID()}
		for _, l := range labels {
			element.Options = append(element.Options, recipe.Option{Text: l, Value: l})
		}
		for _, i := range checked {
			element.InitialValues = append(element.InitialValues, labels[i])
		}
		block.Type, block.Label, block.Element = "input", label, element
	default:
		return recipe.Block{}, fmt.Errorf("unknown block choice %q", kind)
	}
	return block, nil
}

func maxChars(n int) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return errors.New("a value is required")
		}
		if utf8.RuneCountInString(s) > n {
			return fmt.Errorf("at most %d characters", n)
		}
		return nil
	}
}

func splitOptions(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" && !slices.Contains(out, part) {
			out = append(out, part)
		}
	}
	return out
}

func optionList(raw string) error {
	labels := splitOptions(raw)
	switch {
	case len(labels) == 0:
		return errors.New("at least one option is required")
	case len(labels) > maxCheckboxes:
		return fmt.Errorf("at most %d options", maxCheckboxes)
	}
	for _, l := range labels {
		if utf8.RuneCountInString(l) > 75 {
			return fmt.Errorf("option %q is longer than 75 characters", l)
		}
	}
	return nil
}
