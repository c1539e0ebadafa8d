package blockkit

import (
	"github.com/goliatone/go-blockkit/pkg/constraint"
)

// Shared field limits.
const (
	maxActionID    = 255
	maxBlockID     = 255
	maxPlaceholder = 150
)

// checkActionID validates the action_id every interactive element carries.
func checkActionID(id string) error {
	return constraint.Length("action_id", id, 1, maxActionID)
}

func (b *base) setActionID(id string) error {
	if err := checkActionID(id); err != nil {
		return err
	}
	b.store("action_id", id)
	return nil
}

// checkBlockID validates an optional block_id; the empty string means unset.
func checkBlockID(id string) error {
	if id == "" {
		return nil
	}
	return constraint.Length("block_id", id, 1, maxBlockID)
}

func (b *base) setBlockID(id string) error {
	if err := checkBlockID(id); err != nil {
		return err
	}
	b.setOptional("block_id", id, id != "")
	return nil
}

func checkPlaceholder(t *Text) error {
	if t == nil {
		return nil
	}
	return checkText("placeholder", t, 1, maxPlaceholder, constraint.PlainText)
}

func (b *base) setPlaceholder(t *Text) error {
	if err := checkPlaceholder(t); err != nil {
		return err
	}
	b.setOptional("placeholder", t, t != nil)
	return nil
}

func (b *base) setConfirm(c *ConfirmationDialog) {
	b.setOptional("confirm", c, c != nil)
}

func (b *base) setFocusOnLoad(focus bool) {
	b.store("focus_on_load", focus)
}

func (b *base) setDispatchActionConfig(c *DispatchActionConfig) {
	b.setOptional("dispatch_action_config", c, c != nil)
}

// setOptional writes value under key when present, otherwise removes the key.
func (b *base) setOptional(key string, value any, present bool) {
	if present {
		b.store(key, value)
		return
	}
	b.body.del(key)
}

// setOptionalString validates a non-empty optional string against [min,max]
// and writes or removes it.
func (b *base) setOptionalString(key, value string, min, max int) error {
	if value != "" {
		if err := constraint.Length(key, value, min, max); err != nil {
			return err
		}
	}
	b.setOptional(key, value, value != "")
	return nil
}

// checkText validates a nested text object: presence, length of its text and
// optionally its kind.
func checkText(field string, t *Text, min, max int, kinds ...string) error {
	if t == nil {
		return constraint.Newf(constraint.KindRange, field, "text object is required")
	}
	if err := constraint.Length(field, t.Text(), min, max); err != nil {
		return err
	}
	if len(kinds) > 0 {
		if err := constraint.ValidType(field, t.Type(), kinds...); err != nil {
			return err
		}
	}
	return nil
}

// checkOptionalText is checkText where nil means unset.
func checkOptionalText(field string, t *Text, min, max int, kinds ...string) error {
	if t == nil {
		return nil
	}
	return checkText(field, t, min, max, kinds...)
}

// checkOptionsNoURL rejects options carrying a url; only overflow menus accept
// them.
func checkOptionsNoURL(field string, options []*Option) error {
	for _, opt := range options {
		if opt == nil {
			return constraint.Newf(constraint.KindRange, field, "nil option")
		}
		if opt.URL() != "" {
			return constraint.Newf(constraint.KindCrossField, field, "option %q has a url, only overflow menus accept option urls", opt.Value())
		}
	}
	return nil
}

// containsOption reports structural membership of opt in options.
func containsOption(options []*Option, opt *Option) bool {
	return countOption(options, opt) > 0
}

func countOption(options []*Option, opt *Option) int {
	n := 0
	for _, candidate := range options {
		if Equal(candidate, opt) {
			n++
		}
	}
	return n
}

// checkSubset requires every initial option to be a member of options.
func checkSubset(field string, options, initial []*Option) error {
	for _, opt := range initial {
		if !containsOption(options, opt) {
			return constraint.Newf(constraint.KindCrossField, field, "initial option %q must match the options list", optionValue(opt))
		}
	}
	return nil
}

// checkGroupSubset requires the initial options to all fall into exactly one
// option group.
func checkGroupSubset(field string, groups []*OptionGroup, initial []*Option) error {
	matches := 0
	for _, group := range groups {
		options := group.Options()
		all := true
		for _, opt := range initial {
			if !containsOption(options, opt) {
				all = false
				break
			}
		}
		if all {
			matches++
		}
	}
	if matches != 1 {
		return constraint.Newf(constraint.KindCrossField, field, "initial options must match exactly one option group, matched %d", matches)
	}
	return nil
}

func optionValue(opt *Option) string {
	if opt == nil {
		return ""
	}
	return opt.Value()
}

func cloneSlice[T any](in []T) []T {
	if in == nil {
		return nil
	}
	out := make([]T, len(in))
	copy(out, in)
	return out
}
