package blockkit

import (
	"github.com/goliatone/go-blockkit/pkg/constraint"
)

const maxText = 3000

// Text is a text composition object of kind plain_text or mrkdwn. Plain text
// carries "emoji", mrkdwn carries "verbatim"; the value of the inactive flag
// is remembered so switching kinds back and forth is lossless.
type Text struct {
	base
}

// TextOption configures optional text flags at construction.
type TextOption func(*textConfig)

type textConfig struct {
	emoji    bool
	verbatim bool
}

// WithEmoji sets the plain_text emoji flag (default true).
func WithEmoji(emoji bool) TextOption {
	return func(cfg *textConfig) { cfg.emoji = emoji }
}

// WithVerbatim sets the mrkdwn verbatim flag (default false).
func WithVerbatim(verbatim bool) TextOption {
	return func(cfg *textConfig) { cfg.verbatim = verbatim }
}

// NewText constructs a text object of the given kind.
func NewText(kind, text string, options ...TextOption) (*Text, error) {
	cfg := textConfig{emoji: true}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}
	if err := constraint.ValidType("type", kind); err != nil {
		return nil, err
	}
	if err := constraint.Length("text", text, 1, maxText); err != nil {
		return nil, err
	}

	t := &Text{base: newBase("text")}
	t.store("type", kind)
	t.store("text", text)
	t.retain("emoji", cfg.emoji)
	t.retain("verbatim", cfg.verbatim)
	t.applyFlags()
	return t, nil
}

// NewPlainText constructs a plain_text object with emoji enabled.
func NewPlainText(text string, options ...TextOption) (*Text, error) {
	return NewText(constraint.PlainText, text, options...)
}

// NewMrkdwn constructs a mrkdwn object.
func NewMrkdwn(text string, options ...TextOption) (*Text, error) {
	return NewText(constraint.Mrkdwn, text, options...)
}

// applyFlags writes the flag belonging to the active kind and drops the other.
func (t *Text) applyFlags() {
	if t.Type() == constraint.PlainText {
		t.body.del("verbatim")
		t.store("emoji", t.Emoji())
		return
	}
	t.body.del("emoji")
	t.store("verbatim", t.Verbatim())
}

// Type returns the text kind.
func (t *Text) Type() string { return stringField(&t.base, "type") }

// Text returns the text content.
func (t *Text) Text() string { return stringField(&t.base, "text") }

// Emoji returns the emoji flag, also when the kind is mrkdwn.
func (t *Text) Emoji() bool {
	v, _ := t.recall("emoji")
	b, _ := v.(bool)
	return b
}

// Verbatim returns the verbatim flag, also when the kind is plain_text.
func (t *Text) Verbatim() bool {
	v, _ := t.recall("verbatim")
	b, _ := v.(bool)
	return b
}

// SetType switches the text kind, swapping the emoji and verbatim keys.
func (t *Text) SetType(kind string) error {
	if err := constraint.ValidType("type", kind); err != nil {
		return err
	}
	t.store("type", kind)
	t.applyFlags()
	return nil
}

// SetText replaces the text content.
func (t *Text) SetText(text string) error {
	if err := constraint.Length("text", text, 1, maxText); err != nil {
		return err
	}
	t.store("text", text)
	return nil
}

// SetEmoji updates the emoji flag. It reaches the wire only for plain_text.
func (t *Text) SetEmoji(emoji bool) {
	t.retain("emoji", emoji)
	t.applyFlags()
}

// SetVerbatim updates the verbatim flag. It reaches the wire only for mrkdwn.
func (t *Text) SetVerbatim(verbatim bool) {
	t.retain("verbatim", verbatim)
	t.applyFlags()
}

// ConfirmationDialog asks the user to confirm an interactive action.
type ConfirmationDialog struct {
	base
}

// ConfirmationDialogConfig holds the dialog fields. Style is optional.
type ConfirmationDialogConfig struct {
	Title   *Text
	Text    *Text
	Confirm *Text
	Deny    *Text
	Style   string
}

func checkDialogTitle(t *Text) error {
	return checkText("title", t, 1, 100, constraint.PlainText)
}

func checkDialogText(t *Text) error {
	return checkText("text", t, 1, 300)
}

func checkDialogButton(field string, t *Text) error {
	return checkText(field, t, 1, 30, constraint.PlainText)
}

// NewConfirmationDialog validates and constructs a confirmation dialog.
func NewConfirmationDialog(cfg ConfirmationDialogConfig) (*ConfirmationDialog, error) {
	if err := checkDialogTitle(cfg.Title); err != nil {
		return nil, err
	}
	if err := checkDialogText(cfg.Text); err != nil {
		return nil, err
	}
	if err := checkDialogButton("confirm", cfg.Confirm); err != nil {
		return nil, err
	}
	if err := checkDialogButton("deny", cfg.Deny); err != nil {
		return nil, err
	}
	if err := constraint.Style(cfg.Style); err != nil {
		return nil, err
	}

	c := &ConfirmationDialog{base: newBase("confirm")}
	c.store("title", cfg.Title)
	c.store("text", cfg.Text)
	c.store("confirm", cfg.Confirm)
	c.store("deny", cfg.Deny)
	c.setOptional("style", cfg.Style, cfg.Style != constraint.StyleDefault)
	return c, nil
}

func (c *ConfirmationDialog) Title() *Text   { t, _ := field[*Text](&c.base, "title"); return t }
func (c *ConfirmationDialog) Text() *Text    { t, _ := field[*Text](&c.base, "text"); return t }
func (c *ConfirmationDialog) Confirm() *Text { t, _ := field[*Text](&c.base, "confirm"); return t }
func (c *ConfirmationDialog) Deny() *Text    { t, _ := field[*Text](&c.base, "deny"); return t }
func (c *ConfirmationDialog) Style() string  { return stringField(&c.base, "style") }

func (c *ConfirmationDialog) SetTitle(t *Text) error {
	if err := checkDialogTitle(t); err != nil {
		return err
	}
	c.store("title", t)
	return nil
}

func (c *ConfirmationDialog) SetText(t *Text) error {
	if err := checkDialogText(t); err != nil {
		return err
	}
	c.store("text", t)
	return nil
}

func (c *ConfirmationDialog) SetConfirm(t *Text) error {
	if err := checkDialogButton("confirm", t); err != nil {
		return err
	}
	c.store("confirm", t)
	return nil
}

func (c *ConfirmationDialog) SetDeny(t *Text) error {
	if err := checkDialogButton("deny", t); err != nil {
		return err
	}
	c.store("deny", t)
	return nil
}

// SetStyle updates the style; the default style removes the key.
func (c *ConfirmationDialog) SetStyle(style string) error {
	if err := constraint.Style(style); err != nil {
		return err
	}
	c.setOptional("style", style, style != constraint.StyleDefault)
	return nil
}

// Option is a selectable item in menus, checkboxes and radio groups.
type Option struct {
	base
}

// OptionConfig holds the option fields. Description and URL are optional; URL
// is only accepted by overflow menus.
type OptionConfig struct {
	Text        *Text
	Value       string
	Description *Text
	URL         string
}

const maxOptionText = 75

func checkOptionText(t *Text) error {
	return checkText("text", t, 1, maxOptionText, constraint.PlainText)
}

func checkOptionValue(v string) error {
	return constraint.Length("value", v, 1, maxOptionText)
}

func checkOptionDescription(t *Text) error {
	return checkOptionalText("description", t, 1, maxOptionText, constraint.PlainText)
}

// NewOption validates and constructs an option.
func NewOption(cfg OptionConfig) (*Option, error) {
	if err := checkOptionText(cfg.Text); err != nil {
		return nil, err
	}
	if err := checkOptionValue(cfg.Value); err != nil {
		return nil, err
	}
	if err := checkOptionDescription(cfg.Description); err != nil {
		return nil, err
	}
	if cfg.URL != "" {
		if err := constraint.Length("url", cfg.URL, 1, maxText); err != nil {
			return nil, err
		}
	}

	o := &Option{base: newBase("option")}
	o.store("text", cfg.Text)
	o.store("value", cfg.Value)
	o.setOptional("description", cfg.Description, cfg.Description != nil)
	o.setOptional("url", cfg.URL, cfg.URL != "")
	return o, nil
}

// NewPlainOption is a shorthand for an option with plain text and a value.
func NewPlainOption(text, value string) (*Option, error) {
	t, err := NewPlainText(text)
	if err != nil {
		return nil, err
	}
	return NewOption(OptionConfig{Text: t, Value: value})
}

func (o *Option) Text() *Text        { t, _ := field[*Text](&o.base, "text"); return t }
func (o *Option) Value() string      { return stringField(&o.base, "value") }
func (o *Option) Description() *Text { t, _ := field[*Text](&o.base, "description"); return t }
func (o *Option) URL() string        { return stringField(&o.base, "url") }

func (o *Option) SetText(t *Text) error {
	if err := checkOptionText(t); err != nil {
		return err
	}
	o.store("text", t)
	return nil
}

func (o *Option) SetValue(v string) error {
	if err := checkOptionValue(v); err != nil {
		return err
	}
	o.store("value", v)
	return nil
}

// SetDescription updates the description; nil removes it.
func (o *Option) SetDescription(t *Text) error {
	if err := checkOptionDescription(t); err != nil {
		return err
	}
	o.setOptional("description", t, t != nil)
	return nil
}

// SetURL updates the url; the empty string removes it.
func (o *Option) SetURL(u string) error {
	return o.setOptionalString("url", u, 1, maxText)
}

// OptionGroup groups options under a label.
type OptionGroup struct {
	base
}

func checkGroupLabel(t *Text) error {
	return checkText("label", t, 1, maxOptionText, constraint.PlainText)
}

func checkGroupOptions(options []*Option) error {
	return constraint.Items("options", options, 1, 100)
}

// NewOptionGroup validates and constructs an option group.
func NewOptionGroup(label *Text, options []*Option) (*OptionGroup, error) {
	if err := checkGroupLabel(label); err != nil {
		return nil, err
	}
	if err := checkGroupOptions(options); err != nil {
		return nil, err
	}
	g := &OptionGroup{base: newBase("option_group")}
	g.store("label", label)
	g.store("options", options)
	return g, nil
}

func (g *OptionGroup) Label() *Text { t, _ := field[*Text](&g.base, "label"); return t }

// Options returns a copy of the grouped options.
func (g *OptionGroup) Options() []*Option {
	opts, _ := field[[]*Option](&g.base, "options")
	return cloneSlice(opts)
}

func (g *OptionGroup) SetLabel(t *Text) error {
	if err := checkGroupLabel(t); err != nil {
		return err
	}
	g.store("label", t)
	return nil
}

func (g *OptionGroup) SetOptions(options []*Option) error {
	if err := checkGroupOptions(options); err != nil {
		return err
	}
	g.store("options", options)
	return nil
}

// ConversationFilter narrows the conversations offered by a conversations
// select.
type ConversationFilter struct {
	base
}

// ConversationFilterConfig holds the filter fields. A nil or empty Include
// leaves the key off the wire.
type ConversationFilterConfig struct {
	Include                       []string
	ExcludeExternalSharedChannels bool
	ExcludeBotUsers               bool
}

// NewConversationFilter validates and constructs a conversation filter.
func NewConversationFilter(cfg ConversationFilterConfig) (*ConversationFilter, error) {
	if err := constraint.FilterOptions(cfg.Include); err != nil {
		return nil, err
	}
	f := &ConversationFilter{base: newBase("conversation_filter")}
	f.setOptional("include", cloneSlice(cfg.Include), len(cfg.Include) > 0)
	f.store("exclude_external_shared_channels", cfg.ExcludeExternalSharedChannels)
	f.store("exclude_bot_users", cfg.ExcludeBotUsers)
	return f, nil
}

// Include returns the included conversation scopes, nil when unset.
func (f *ConversationFilter) Include() []string {
	v, _ := field[[]string](&f.base, "include")
	return cloneSlice(v)
}

func (f *ConversationFilter) ExcludeExternalSharedChannels() bool {
	return boolField(&f.base, "exclude_external_shared_channels")
}

func (f *ConversationFilter) ExcludeBotUsers() bool {
	return boolField(&f.base, "exclude_bot_users")
}

// SetInclude replaces the included scopes; nil or empty removes the key.
func (f *ConversationFilter) SetInclude(include []string) error {
	if err := constraint.FilterOptions(include); err != nil {
		return err
	}
	f.setOptional("include", cloneSlice(include), len(include) > 0)
	return nil
}

func (f *ConversationFilter) SetExcludeExternalSharedChannels(v bool) {
	f.store("exclude_external_shared_channels", v)
}

func (f *ConversationFilter) SetExcludeBotUsers(v bool) {
	f.store("exclude_bot_users", v)
}

// DispatchActionConfig selects which interactions dispatch block_actions from
// a text input.
type DispatchActionConfig struct {
	base
}

// NewDispatchActionConfig validates and constructs a dispatch configuration.
func NewDispatchActionConfig(triggers ...string) (*DispatchActionConfig, error) {
	if err := constraint.ConfigOptions(triggers); err != nil {
		return nil, err
	}
	d := &DispatchActionConfig{base: newBase("dispatch_action_config")}
	d.store("trigger_actions_on", triggers)
	return d, nil
}

// TriggerActionsOn returns a copy of the triggers.
func (d *DispatchActionConfig) TriggerActionsOn() []string {
	v, _ := field[[]string](&d.base, "trigger_actions_on")
	return cloneSlice(v)
}

func (d *DispatchActionConfig) SetTriggerActionsOn(triggers ...string) error {
	if err := constraint.ConfigOptions(triggers); err != nil {
		return err
	}
	d.store("trigger_actions_on", triggers)
	return nil
}
