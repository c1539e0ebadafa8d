package blockkit

import (
	"github.com/goliatone/go-blockkit/pkg/constraint"
)

// TextInputConfig holds the fields shared by the email and url inputs.
type TextInputConfig struct {
	ActionID             string
	InitialValue         string
	DispatchActionConfig *DispatchActionConfig
	FocusOnLoad          bool
	Placeholder          *Text
}

// textInput is the shape shared by email_text_input and url_text_input.
type textInput struct {
	base
}

func newTextInput(kind string, cfg TextInputConfig) (textInput, error) {
	if err := checkActionID(cfg.ActionID); err != nil {
		return textInput{}, err
	}
	if err := checkPlaceholder(cfg.Placeholder); err != nil {
		return textInput{}, err
	}
	in := textInput{base: newBase(kind)}
	in.store("type", kind)
	in.store("action_id", cfg.ActionID)
	in.setOptional("initial_value", cfg.InitialValue, cfg.InitialValue != "")
	in.setDispatchActionConfig(cfg.DispatchActionConfig)
	in.setFocusOnLoad(cfg.FocusOnLoad)
	in.setOptional("placeholder", cfg.Placeholder, cfg.Placeholder != nil)
	return in, nil
}

func (in *textInput) Type() string         { return in.kind }
func (in *textInput) ActionID() string     { return stringField(&in.base, "action_id") }
func (in *textInput) InitialValue() string { return stringField(&in.base, "initial_value") }
func (in *textInput) FocusOnLoad() bool    { return boolField(&in.base, "focus_on_load") }
func (in *textInput) Placeholder() *Text   { t, _ := field[*Text](&in.base, "placeholder"); return t }

func (in *textInput) DispatchActionConfig() *DispatchActionConfig {
	c, _ := field[*DispatchActionConfig](&in.base, "dispatch_action_config")
	return c
}

func (in *textInput) SetActionID(id string) error  { return in.setActionID(id) }
func (in *textInput) SetPlaceholder(t *Text) error { return in.setPlaceholder(t) }
func (in *textInput) SetFocusOnLoad(focus bool)    { in.setFocusOnLoad(focus) }

// SetInitialValue updates the prefilled value; the empty string removes it.
func (in *textInput) SetInitialValue(v string) {
	in.setOptional("initial_value", v, v != "")
}

// SetDispatchActionConfig updates the dispatch triggers; nil removes them.
func (in *textInput) SetDispatchActionConfig(c *DispatchActionConfig) {
	in.setDispatchActionConfig(c)
}

func (*textInput) inputElement() {}

// EmailInput collects an email address.
type EmailInput struct {
	textInput
}

// NewEmailInput validates and constructs an email input.
func NewEmailInput(cfg TextInputConfig) (*EmailInput, error) {
	in, err := newTextInput("email_text_input", cfg)
	if err != nil {
		return nil, err
	}
	return &EmailInput{textInput: in}, nil
}

// URLInput collects a url.
type URLInput struct {
	textInput
}

// NewURLInput validates and constructs a url input.
func NewURLInput(cfg TextInputConfig) (*URLInput, error) {
	in, err := newTextInput("url_text_input", cfg)
	if err != nil {
		return nil, err
	}
	return &URLInput{textInput: in}, nil
}

// NumberInput collects a number. Values are numeric strings; decimals are
// accepted only when IsDecimalAllowed is set.
type NumberInput struct {
	base
}

// NumberInputConfig holds the number input fields. ActionID is optional for
// this element.
type NumberInputConfig struct {
	IsDecimalAllowed     bool
	ActionID             string
	InitialValue         string
	MinValue             string
	MaxValue             string
	DispatchActionConfig *DispatchActionConfig
	FocusOnLoad          bool
	Placeholder          *Text
}

func checkNumbers(decimal bool, initial, min, max string) error {
	for _, v := range []struct{ field, value string }{
		{"initial_value", initial},
		{"min_value", min},
		{"max_value", max},
	} {
		if v.value == "" {
			continue
		}
		if err := constraint.IsNumber(v.field, v.value, decimal); err != nil {
			return err
		}
	}
	return constraint.Ordered("min_value", min, max)
}

// NewNumberInput validates and constructs a number input.
func NewNumberInput(cfg NumberInputConfig) (*NumberInput, error) {
	if cfg.ActionID != "" {
		if err := checkActionID(cfg.ActionID); err != nil {
			return nil, err
		}
	}
	if err := checkNumbers(cfg.IsDecimalAllowed, cfg.InitialValue, cfg.MinValue, cfg.MaxValue); err != nil {
		return nil, err
	}
	if err := checkPlaceholder(cfg.Placeholder); err != nil {
		return nil, err
	}

	n := &NumberInput{base: newBase("number_input")}
	n.store("type", "number_input")
	n.store("is_decimal_allowed", cfg.IsDecimalAllowed)
	n.setOptional("action_id", cfg.ActionID, cfg.ActionID != "")
	n.setOptional("initial_value", cfg.InitialValue, cfg.InitialValue != "")
	n.setOptional("min_value", cfg.MinValue, cfg.MinValue != "")
	n.setOptional("max_value", cfg.MaxValue, cfg.MaxValue != "")
	n.setDispatchActionConfig(cfg.DispatchActionConfig)
	n.setFocusOnLoad(cfg.FocusOnLoad)
	n.setOptional("placeholder", cfg.Placeholder, cfg.Placeholder != nil)
	return n, nil
}

func (n *NumberInput) Type() string           { return "number_input" }
func (n *NumberInput) IsDecimalAllowed() bool { return boolField(&n.base, "is_decimal_allowed") }
func (n *NumberInput) ActionID() string       { return stringField(&n.base, "action_id") }
func (n *NumberInput) InitialValue() string   { return stringField(&n.base, "initial_value") }
func (n *NumberInput) MinValue() string       { return stringField(&n.base, "min_value") }
func (n *NumberInput) MaxValue() string       { return stringField(&n.base, "max_value") }
func (n *NumberInput) FocusOnLoad() bool      { return boolField(&n.base, "focus_on_load") }
func (n *NumberInput) Placeholder() *Text     { t, _ := field[*Text](&n.base, "placeholder"); return t }

func (n *NumberInput) DispatchActionConfig() *DispatchActionConfig {
	c, _ := field[*DispatchActionConfig](&n.base, "dispatch_action_config")
	return c
}

func (n *NumberInput) SetPlaceholder(t *Text) error { return n.setPlaceholder(t) }
func (n *NumberInput) SetFocusOnLoad(focus bool)    { n.setFocusOnLoad(focus) }

func (n *NumberInput) SetDispatchActionConfig(c *DispatchActionConfig) {
	n.setDispatchActionConfig(c)
}

// SetActionID updates the action id; the empty string removes it.
func (n *NumberInput) SetActionID(id string) error {
	return n.setOptionalString("action_id", id, 1, maxActionID)
}

// SetIsDecimalAllowed toggles decimal support. Disallowing decimals truncates
// any decimal initial, min and max values toward zero; a value whose integer
// part does not fit an int64 fails with a Range violation and nothing changes.
func (n *NumberInput) SetIsDecimalAllowed(allowed bool) error {
	truncated := map[string]string{}
	if !allowed {
		for _, key := range []string{"initial_value", "min_value", "max_value"} {
			raw := stringField(&n.base, key)
			if raw == "" {
				continue
			}
			num, err := constraint.ParseNumber(raw)
			if err != nil || !num.IsDecimal {
				continue
			}
			whole, ok := num.Truncate()
			if !ok {
				return constraint.Newf(constraint.KindRange, key, "%s is outside the integer range", raw)
			}
			truncated[key] = whole.String()
		}
	}
	for key, value := range truncated {
		n.store(key, value)
	}
	n.store("is_decimal_allowed", allowed)
	return nil
}

// SetInitialValue updates the prefilled value; the empty string removes it.
func (n *NumberInput) SetInitialValue(v string) error {
	if err := checkNumbers(n.IsDecimalAllowed(), v, "", ""); err != nil {
		return err
	}
	n.setOptional("initial_value", v, v != "")
	return nil
}

// SetMinValue updates the lower bound; the empty string removes it.
func (n *NumberInput) SetMinValue(v string) error {
	if err := checkNumbers(n.IsDecimalAllowed(), "", v, n.MaxValue()); err != nil {
		return err
	}
	n.setOptional("min_value", v, v != "")
	return nil
}

// SetMaxValue updates the upper bound; the empty string removes it.
func (n *NumberInput) SetMaxValue(v string) error {
	if err := checkNumbers(n.IsDecimalAllowed(), "", n.MinValue(), v); err != nil {
		return err
	}
	n.setOptional("max_value", v, v != "")
	return nil
}

func (*NumberInput) inputElement() {}

// PlainTextInput collects free-form text.
type PlainTextInput struct {
	base
}

// PlainTextInputConfig holds the plain text input fields. Zero MinLength and
// MaxLength leave the keys off the wire.
type PlainTextInputConfig struct {
	ActionID             string
	Placeholder          *Text
	InitialValue         string
	Multiline            bool
	MinLength            int
	MaxLength            int
	FocusOnLoad          bool
	DispatchActionConfig *DispatchActionConfig
}

const maxInputLength = 3000

func checkInputLengths(min, max int) error {
	if err := constraint.Between("min_length", min, 0, maxInputLength); err != nil {
		return err
	}
	if max == 0 {
		return nil
	}
	if err := constraint.Between("max_length", max, 1, maxInputLength); err != nil {
		return err
	}
	if min > max {
		return constraint.Newf(constraint.KindCrossField, "min_length", "min_length %d must be less or equal to max_length %d", min, max)
	}
	return nil
}

// NewPlainTextInput validates and constructs a plain text input.
func NewPlainTextInput(cfg PlainTextInputConfig) (*PlainTextInput, error) {
	if err := checkActionID(cfg.ActionID); err != nil {
		return nil, err
	}
	if err := checkPlaceholder(cfg.Placeholder); err != nil {
		return nil, err
	}
	if err := checkInputLengths(cfg.MinLength, cfg.MaxLength); err != nil {
		return nil, err
	}

	p := &PlainTextInput{base: newBase("plain_text_input")}
	p.store("type", "plain_text_input")
	p.store("action_id", cfg.ActionID)
	p.setOptional("placeholder", cfg.Placeholder, cfg.Placeholder != nil)
	p.setOptional("initial_value", cfg.InitialValue, cfg.InitialValue != "")
	p.store("multiline", cfg.Multiline)
	p.setOptional("min_length", cfg.MinLength, cfg.MinLength > 0)
	p.setOptional("max_length", cfg.MaxLength, cfg.MaxLength > 0)
	p.setFocusOnLoad(cfg.FocusOnLoad)
	p.setDispatchActionConfig(cfg.DispatchActionConfig)
	return p, nil
}

func (p *PlainTextInput) Type() string         { return "plain_text_input" }
func (p *PlainTextInput) ActionID() string     { return stringField(&p.base, "action_id") }
func (p *PlainTextInput) Placeholder() *Text   { t, _ := field[*Text](&p.base, "placeholder"); return t }
func (p *PlainTextInput) InitialValue() string { return stringField(&p.base, "initial_value") }
func (p *PlainTextInput) Multiline() bool      { return boolField(&p.base, "multiline") }
func (p *PlainTextInput) MinLength() int       { n, _ := field[int](&p.base, "min_length"); return n }
func (p *PlainTextInput) MaxLength() int       { n, _ := field[int](&p.base, "max_length"); return n }
func (p *PlainTextInput) FocusOnLoad() bool    { return boolField(&p.base, "focus_on_load") }

func (p *PlainTextInput) DispatchActionConfig() *DispatchActionConfig {
	c, _ := field[*DispatchActionConfig](&p.base, "dispatch_action_config")
	return c
}

func (p *PlainTextInput) SetActionID(id string) error  { return p.setActionID(id) }
func (p *PlainTextInput) SetPlaceholder(t *Text) error { return p.setPlaceholder(t) }
func (p *PlainTextInput) SetMultiline(multiline bool)  { p.store("multiline", multiline) }
func (p *PlainTextInput) SetFocusOnLoad(focus bool)    { p.setFocusOnLoad(focus) }

func (p *PlainTextInput) SetDispatchActionConfig(c *DispatchActionConfig) {
	p.setDispatchActionConfig(c)
}

// SetInitialValue updates the prefilled value; the empty string removes it.
func (p *PlainTextInput) SetInitialValue(v string) {
	p.setOptional("initial_value", v, v != "")
}

// SetMinLength updates the minimum length; zero removes it.
func (p *PlainTextInput) SetMinLength(n int) error {
	if err := checkInputLengths(n, p.MaxLength()); err != nil {
		return err
	}
	p.setOptional("min_length", n, n > 0)
	return nil
}

// SetMaxLength updates the maximum length; zero removes it.
func (p *PlainTextInput) SetMaxLength(n int) error {
	if err := checkInputLengths(p.MinLength(), n); err != nil {
		return err
	}
	p.setOptional("max_length", n, n > 0)
	return nil
}

func (*PlainTextInput) inputElement() {}
