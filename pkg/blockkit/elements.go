package blockkit

import (
	"time"

	"github.com/goliatone/go-blockkit/components/timezones"
	"github.com/goliatone/go-blockkit/pkg/constraint"
)

// Wire layouts for date and time pickers.
const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

// Element is an entity that carries a "type" key and can be placed inside a
// block.
type Element interface {
	Entity
	Type() string
}

// ActionsElement can be placed in an actions block.
type ActionsElement interface {
	Element
	actionsElement()
}

// AccessoryElement can be the accessory of a section block.
type AccessoryElement interface {
	Element
	accessoryElement()
}

// InputElement can be the element of an input block.
type InputElement interface {
	Element
	inputElement()
}

// ContextElement can be placed in a context block: images and text objects.
type ContextElement interface {
	Entity
	contextElement()
}

// multiVariant is implemented by elements that have a multi-select spelling.
type multiVariant interface {
	IsMulti() bool
}

func (t *Text) contextElement() {}

// Button sends a block_actions payload or opens a link.
type Button struct {
	base
}

// ButtonConfig holds the button fields. Everything but Text and ActionID is
// optional.
type ButtonConfig struct {
	Text               *Text
	ActionID           string
	URL                string
	Value              string
	Style              string
	Confirm            *ConfirmationDialog
	AccessibilityLabel string
}

const (
	maxButtonText  = 75
	maxButtonValue = 2000
	maxURL         = 3000
	maxButtonLabel = 75
)

func checkButtonText(t *Text) error {
	return checkText("text", t, 1, maxButtonText, constraint.PlainText)
}

// NewButton validates and constructs a button.
func NewButton(cfg ButtonConfig) (*Button, error) {
	if err := checkButtonText(cfg.Text); err != nil {
		return nil, err
	}
	if err := checkActionID(cfg.ActionID); err != nil {
		return nil, err
	}
	if cfg.URL != "" {
		if err := constraint.Length("url", cfg.URL, 1, maxURL); err != nil {
			return nil, err
		}
	}
	if cfg.Value != "" {
		if err := constraint.Length("value", cfg.Value, 1, maxButtonValue); err != nil {
			return nil, err
		}
	}
	if err := constraint.Style(cfg.Style); err != nil {
		return nil, err
	}
	if cfg.AccessibilityLabel != "" {
		if err := constraint.Length("accessibility_label", cfg.AccessibilityLabel, 1, maxButtonLabel); err != nil {
			return nil, err
		}
	}

	b := &Button{base: newBase("button")}
	b.store("type", "button")
	b.store("text", cfg.Text)
	b.store("action_id", cfg.ActionID)
	b.setOptional("url", cfg.URL, cfg.URL != "")
	b.setOptional("value", cfg.Value, cfg.Value != "")
	b.setOptional("style", cfg.Style, cfg.Style != constraint.StyleDefault)
	b.setConfirm(cfg.Confirm)
	b.setOptional("accessibility_label", cfg.AccessibilityLabel, cfg.AccessibilityLabel != "")
	return b, nil
}

func (b *Button) Type() string                      { return "button" }
func (b *Button) Text() *Text                       { t, _ := field[*Text](&b.base, "text"); return t }
func (b *Button) ActionID() string                  { return stringField(&b.base, "action_id") }
func (b *Button) URL() string                       { return stringField(&b.base, "url") }
func (b *Button) Value() string                     { return stringField(&b.base, "value") }
func (b *Button) Style() string                     { return stringField(&b.base, "style") }
func (b *Button) AccessibilityLabel() string        { return stringField(&b.base, "accessibility_label") }
func (b *Button) Confirm() *ConfirmationDialog      { c, _ := field[*ConfirmationDialog](&b.base, "confirm"); return c }
func (b *Button) SetActionID(id string) error       { return b.setActionID(id) }
func (b *Button) SetConfirm(c *ConfirmationDialog) { b.setConfirm(c) }
func (b *Button) SetURL(u string) error             { return b.setOptionalString("url", u, 1, maxURL) }
func (b *Button) SetValue(v string) error           { return b.setOptionalString("value", v, 1, maxButtonValue) }

func (b *Button) SetAccessibilityLabel(label string) error {
	return b.setOptionalString("accessibility_label", label, 1, maxButtonLabel)
}

func (b *Button) SetText(t *Text) error {
	if err := checkButtonText(t); err != nil {
		return err
	}
	b.store("text", t)
	return nil
}

// SetStyle updates the style; the default style removes the key.
func (b *Button) SetStyle(style string) error {
	if err := constraint.Style(style); err != nil {
		return err
	}
	b.setOptional("style", style, style != constraint.StyleDefault)
	return nil
}

func (*Button) actionsElement()   {}
func (*Button) accessoryElement() {}

// Checkboxes is a group of checkboxes.
type Checkboxes struct {
	base
}

// CheckboxesConfig holds the checkbox group fields.
type CheckboxesConfig struct {
	ActionID       string
	Options        []*Option
	InitialOptions []*Option
	Confirm        *ConfirmationDialog
	FocusOnLoad    bool
}

const maxGroupOptions = 10

func checkGroupedOptions(options []*Option) error {
	if err := constraint.Items("options", options, 1, maxGroupOptions); err != nil {
		return err
	}
	return checkOptionsNoURL("options", options)
}

func checkInitialOptions(options, initial []*Option) error {
	if len(initial) == 0 {
		return nil
	}
	if err := constraint.Items("initial_options", initial, 1, maxGroupOptions); err != nil {
		return err
	}
	return checkSubset("initial_options", options, initial)
}

// NewCheckboxes validates and constructs a checkbox group.
func NewCheckboxes(cfg CheckboxesConfig) (*Checkboxes, error) {
	if err := checkActionID(cfg.ActionID); err != nil {
		return nil, err
	}
	if err := checkGroupedOptions(cfg.Options); err != nil {
		return nil, err
	}
	if err := checkInitialOptions(cfg.Options, cfg.InitialOptions); err != nil {
		return nil, err
	}

	c := &Checkboxes{base: newBase("checkboxes")}
	c.store("type", "checkboxes")
	c.store("action_id", cfg.ActionID)
	c.store("options", cfg.Options)
	c.setOptional("initial_options", cloneSlice(cfg.InitialOptions), len(cfg.InitialOptions) > 0)
	c.setConfirm(cfg.Confirm)
	c.setFocusOnLoad(cfg.FocusOnLoad)
	return c, nil
}

func (c *Checkboxes) Type() string                 { return "checkboxes" }
func (c *Checkboxes) ActionID() string             { return stringField(&c.base, "action_id") }
func (c *Checkboxes) FocusOnLoad() bool            { return boolField(&c.base, "focus_on_load") }
func (c *Checkboxes) Confirm() *ConfirmationDialog { d, _ := field[*ConfirmationDialog](&c.base, "confirm"); return d }

func (c *Checkboxes) Options() []*Option {
	v, _ := field[[]*Option](&c.base, "options")
	return cloneSlice(v)
}

func (c *Checkboxes) InitialOptions() []*Option {
	v, _ := field[[]*Option](&c.base, "initial_options")
	return cloneSlice(v)
}

func (c *Checkboxes) SetActionID(id string) error       { return c.setActionID(id) }
func (c *Checkboxes) SetConfirm(d *ConfirmationDialog) { c.setConfirm(d) }
func (c *Checkboxes) SetFocusOnLoad(focus bool)         { c.setFocusOnLoad(focus) }

// SetOptions replaces the options. Current initial options must remain members
// of the new list.
func (c *Checkboxes) SetOptions(options []*Option) error {
	if err := checkGroupedOptions(options); err != nil {
		return err
	}
	if err := checkInitialOptions(options, c.InitialOptions()); err != nil {
		return err
	}
	c.store("options", options)
	return nil
}

// SetInitialOptions replaces the checked options; nil or empty removes them.
func (c *Checkboxes) SetInitialOptions(initial []*Option) error {
	if err := checkInitialOptions(c.Options(), initial); err != nil {
		return err
	}
	c.setOptional("initial_options", cloneSlice(initial), len(initial) > 0)
	return nil
}

func (*Checkboxes) actionsElement()   {}
func (*Checkboxes) accessoryElement() {}
func (*Checkboxes) inputElement()     {}

// DatePicker lets users pick a calendar date.
type DatePicker struct {
	base
}

// DatePickerConfig holds the date picker fields. InitialDate uses DateLayout.
type DatePickerConfig struct {
	ActionID    string
	Placeholder *Text
	InitialDate string
	Confirm     *ConfirmationDialog
	FocusOnLoad bool
}

func checkDate(field, value string) error {
	if value == "" {
		return nil
	}
	if _, err := time.Parse(DateLayout, value); err != nil {
		return constraint.Newf(constraint.KindFormat, field, "%q is not a YYYY-MM-DD date", value)
	}
	return nil
}

// NewDatePicker validates and constructs a date picker.
func NewDatePicker(cfg DatePickerConfig) (*DatePicker, error) {
	if err := checkActionID(cfg.ActionID); err != nil {
		return nil, err
	}
	if err := checkPlaceholder(cfg.Placeholder); err != nil {
		return nil, err
	}
	if err := checkDate("initial_date", cfg.InitialDate); err != nil {
		return nil, err
	}

	d := &DatePicker{base: newBase("datepicker")}
	d.store("type", "datepicker")
	d.store("action_id", cfg.ActionID)
	d.setOptional("placeholder", cfg.Placeholder, cfg.Placeholder != nil)
	d.setOptional("initial_date", cfg.InitialDate, cfg.InitialDate != "")
	d.setConfirm(cfg.Confirm)
	d.setFocusOnLoad(cfg.FocusOnLoad)
	return d, nil
}

func (d *DatePicker) Type() string                 { return "datepicker" }
func (d *DatePicker) ActionID() string             { return stringField(&d.base, "action_id") }
func (d *DatePicker) Placeholder() *Text           { t, _ := field[*Text](&d.base, "placeholder"); return t }
func (d *DatePicker) InitialDate() string          { return stringField(&d.base, "initial_date") }
func (d *DatePicker) FocusOnLoad() bool            { return boolField(&d.base, "focus_on_load") }
func (d *DatePicker) Confirm() *ConfirmationDialog { c, _ := field[*ConfirmationDialog](&d.base, "confirm"); return c }

func (d *DatePicker) SetActionID(id string) error       { return d.setActionID(id) }
func (d *DatePicker) SetPlaceholder(t *Text) error      { return d.setPlaceholder(t) }
func (d *DatePicker) SetConfirm(c *ConfirmationDialog) { d.setConfirm(c) }
func (d *DatePicker) SetFocusOnLoad(focus bool)         { d.setFocusOnLoad(focus) }

// SetInitialDate updates the preselected date; the empty string removes it.
func (d *DatePicker) SetInitialDate(date string) error {
	if err := checkDate("initial_date", date); err != nil {
		return err
	}
	d.setOptional("initial_date", date, date != "")
	return nil
}

// SetInitialTime is SetInitialDate for a time value, formatted in its own
// location.
func (d *DatePicker) SetInitialTime(t time.Time) error {
	if t.IsZero() {
		return d.SetInitialDate("")
	}
	return d.SetInitialDate(t.Format(DateLayout))
}

func (*DatePicker) actionsElement()   {}
func (*DatePicker) accessoryElement() {}
func (*DatePicker) inputElement()     {}

// DateTimePicker lets users pick a date and a time together.
type DateTimePicker struct {
	base
}

// DateTimePickerConfig holds the date time picker fields. A zero
// InitialDateTime leaves the key off the wire.
type DateTimePickerConfig struct {
	ActionID        string
	InitialDateTime time.Time
	Confirm         *ConfirmationDialog
	FocusOnLoad     bool
}

// NewDateTimePicker validates and constructs a date time picker.
func NewDateTimePicker(cfg DateTimePickerConfig) (*DateTimePicker, error) {
	if err := checkActionID(cfg.ActionID); err != nil {
		return nil, err
	}

	d := &DateTimePicker{base: newBase("datetimepicker")}
	d.store("type", "datetimepicker")
	d.store("action_id", cfg.ActionID)
	d.setInitial(cfg.InitialDateTime)
	d.setConfirm(cfg.Confirm)
	d.setFocusOnLoad(cfg.FocusOnLoad)
	return d, nil
}

func (d *DateTimePicker) setInitial(t time.Time) {
	d.setOptional("initial_date_time", t.Unix(), !t.IsZero())
}

func (d *DateTimePicker) Type() string                 { return "datetimepicker" }
func (d *DateTimePicker) ActionID() string             { return stringField(&d.base, "action_id") }
func (d *DateTimePicker) FocusOnLoad() bool            { return boolField(&d.base, "focus_on_load") }
func (d *DateTimePicker) Confirm() *ConfirmationDialog { c, _ := field[*ConfirmationDialog](&d.base, "confirm"); return c }

// InitialDateTime returns the preselected instant in UTC, or the zero time.
func (d *DateTimePicker) InitialDateTime() time.Time {
	sec, ok := field[int64](&d.base, "initial_date_time")
	if !ok {
		return time.Time{}
	}
	return time.Unix(sec, 0).UTC()
}

func (d *DateTimePicker) SetActionID(id string) error       { return d.setActionID(id) }
func (d *DateTimePicker) SetConfirm(c *ConfirmationDialog) { d.setConfirm(c) }
func (d *DateTimePicker) SetFocusOnLoad(focus bool)         { d.setFocusOnLoad(focus) }

// SetInitialDateTime updates the preselected instant; the zero time removes it.
func (d *DateTimePicker) SetInitialDateTime(t time.Time) { d.setInitial(t) }

func (*DateTimePicker) actionsElement() {}
func (*DateTimePicker) inputElement()   {}

// ImageElement is an image shown inside a section accessory or a context
// block. It is not interactive.
type ImageElement struct {
	base
}

const (
	maxImageURL = 3000
	maxAltText  = 2000
)

func checkImage(imageURL, altText string) error {
	if err := constraint.Length("image_url", imageURL, 1, maxImageURL); err != nil {
		return err
	}
	return constraint.Length("alt_text", altText, 1, maxAltText)
}

// NewImageElement validates and constructs an image element.
func NewImageElement(imageURL, altText string) (*ImageElement, error) {
	if err := checkImage(imageURL, altText); err != nil {
		return nil, err
	}
	i := &ImageElement{base: newBase("image")}
	i.store("type", "image")
	i.store("image_url", imageURL)
	i.store("alt_text", altText)
	return i, nil
}

func (i *ImageElement) Type() string     { return "image" }
func (i *ImageElement) ImageURL() string { return stringField(&i.base, "image_url") }
func (i *ImageElement) AltText() string  { return stringField(&i.base, "alt_text") }

func (i *ImageElement) SetImageURL(u string) error {
	if err := constraint.Length("image_url", u, 1, maxImageURL); err != nil {
		return err
	}
	i.store("image_url", u)
	return nil
}

func (i *ImageElement) SetAltText(alt string) error {
	if err := constraint.Length("alt_text", alt, 1, maxAltText); err != nil {
		return err
	}
	i.store("alt_text", alt)
	return nil
}

func (*ImageElement) accessoryElement() {}
func (*ImageElement) contextElement()   {}

// Overflow is a compact menu of up to five options. Its options may link to a
// url.
type Overflow struct {
	base
}

const maxOverflowOptions = 5

func checkOverflowOptions(options []*Option) error {
	if err := constraint.Items("options", options, 1, maxOverflowOptions); err != nil {
		return err
	}
	for _, opt := range options {
		if opt == nil {
			return constraint.Newf(constraint.KindRange, "options", "nil option")
		}
	}
	return nil
}

// NewOverflow validates and constructs an overflow menu. confirm may be nil.
func NewOverflow(actionID string, options []*Option, confirm *ConfirmationDialog) (*Overflow, error) {
	if err := checkActionID(actionID); err != nil {
		return nil, err
	}
	if err := checkOverflowOptions(options); err != nil {
		return nil, err
	}
	o := &Overflow{base: newBase("overflow")}
	o.store("type", "overflow")
	o.store("action_id", actionID)
	o.store("options", options)
	o.setConfirm(confirm)
	return o, nil
}

func (o *Overflow) Type() string                 { return "overflow" }
func (o *Overflow) ActionID() string             { return stringField(&o.base, "action_id") }
func (o *Overflow) Confirm() *ConfirmationDialog { c, _ := field[*ConfirmationDialog](&o.base, "confirm"); return c }

func (o *Overflow) Options() []*Option {
	v, _ := field[[]*Option](&o.base, "options")
	return cloneSlice(v)
}

func (o *Overflow) SetActionID(id string) error       { return o.setActionID(id) }
func (o *Overflow) SetConfirm(c *ConfirmationDialog) { o.setConfirm(c) }

func (o *Overflow) SetOptions(options []*Option) error {
	if err := checkOverflowOptions(options); err != nil {
		return err
	}
	o.store("options", options)
	return nil
}

func (*Overflow) actionsElement()   {}
func (*Overflow) accessoryElement() {}

// RadioButtons is a group of mutually exclusive choices.
type RadioButtons struct {
	base
}

// RadioButtonsConfig holds the radio group fields.
type RadioButtonsConfig struct {
	ActionID      string
	Options       []*Option
	InitialOption *Option
	Confirm       *ConfirmationDialog
	FocusOnLoad   bool
}

func checkInitialOption(options []*Option, initial *Option) error {
	if initial == nil {
		return nil
	}
	if n := countOption(options, initial); n != 1 {
		return constraint.Newf(constraint.KindCrossField, "initial_option", "initial option %q must match exactly one option, matched %d", initial.Value(), n)
	}
	return nil
}

// NewRadioButtons validates and constructs a radio group.
func NewRadioButtons(cfg RadioButtonsConfig) (*RadioButtons, error) {
	if err := checkActionID(cfg.ActionID); err != nil {
		return nil, err
	}
	if err := checkGroupedOptions(cfg.Options); err != nil {
		return nil, err
	}
	if err := checkInitialOption(cfg.Options, cfg.InitialOption); err != nil {
		return nil, err
	}

	r := &RadioButtons{base: newBase("radio_buttons")}
	r.store("type", "radio_buttons")
	r.store("action_id", cfg.ActionID)
	r.store("options", cfg.Options)
	r.setOptional("initial_option", cfg.InitialOption, cfg.InitialOption != nil)
	r.setConfirm(cfg.Confirm)
	r.setFocusOnLoad(cfg.FocusOnLoad)
	return r, nil
}

func (r *RadioButtons) Type() string                 { return "radio_buttons" }
func (r *RadioButtons) ActionID() string             { return stringField(&r.base, "action_id") }
func (r *RadioButtons) InitialOption() *Option       { o, _ := field[*Option](&r.base, "initial_option"); return o }
func (r *RadioButtons) FocusOnLoad() bool            { return boolField(&r.base, "focus_on_load") }
func (r *RadioButtons) Confirm() *ConfirmationDialog { c, _ := field[*ConfirmationDialog](&r.base, "confirm"); return c }

func (r *RadioButtons) Options() []*Option {
	v, _ := field[[]*Option](&r.base, "options")
	return cloneSlice(v)
}

func (r *RadioButtons) SetActionID(id string) error       { return r.setActionID(id) }
func (r *RadioButtons) SetConfirm(c *ConfirmationDialog) { r.setConfirm(c) }
func (r *RadioButtons) SetFocusOnLoad(focus bool)         { r.setFocusOnLoad(focus) }

// SetOptions replaces the options. A current initial option must still match
// exactly one of them.
func (r *RadioButtons) SetOptions(options []*Option) error {
	if err := checkGroupedOptions(options); err != nil {
		return err
	}
	if err := checkInitialOption(options, r.InitialOption()); err != nil {
		return err
	}
	r.store("options", options)
	return nil
}

// SetInitialOption updates the preselected option; nil removes it.
func (r *RadioButtons) SetInitialOption(initial *Option) error {
	if err := checkInitialOption(r.Options(), initial); err != nil {
		return err
	}
	r.setOptional("initial_option", initial, initial != nil)
	return nil
}

func (*RadioButtons) actionsElement()   {}
func (*RadioButtons) accessoryElement() {}
func (*RadioButtons) inputElement()     {}

// TimePicker lets users pick a time of day.
type TimePicker struct {
	base
}

// TimePickerConfig holds the time picker fields. InitialTime uses TimeLayout;
// Timezone is an IANA name.
type TimePickerConfig struct {
	ActionID    string
	InitialTime string
	Confirm     *ConfirmationDialog
	Placeholder *Text
	Timezone    string
	FocusOnLoad bool
}

func checkTime(field, value string) error {
	if value == "" {
		return nil
	}
	if _, err := time.Parse(TimeLayout, value); err != nil || len(value) != len(TimeLayout) {
		return constraint.Newf(constraint.KindFormat, field, "%q is not a HH:mm time", value)
	}
	return nil
}

func checkTimezone(field, name string) error {
	if name == "" {
		return nil
	}
	ok, err := timezones.Contains(name)
	if err != nil {
		return err
	}
	if !ok {
		return constraint.Newf(constraint.KindFormat, field, "%q is not an IANA time zone", name)
	}
	return nil
}

// NewTimePicker validates and constructs a time picker.
func NewTimePicker(cfg TimePickerConfig) (*TimePicker, error) {
	if err := checkActionID(cfg.ActionID); err != nil {
		return nil, err
	}
	if err := checkTime("initial_time", cfg.InitialTime); err != nil {
		return nil, err
	}
	if err := checkPlaceholder(cfg.Placeholder); err != nil {
		return nil, err
	}
	if err := checkTimezone("timezone", cfg.Timezone); err != nil {
		return nil, err
	}

	p := &TimePicker{base: newBase("timepicker")}
	p.store("type", "timepicker")
	p.store("action_id", cfg.ActionID)
	p.setOptional("initial_time", cfg.InitialTime, cfg.InitialTime != "")
	p.setConfirm(cfg.Confirm)
	p.setOptional("placeholder", cfg.Placeholder, cfg.Placeholder != nil)
	p.setOptional("timezone", cfg.Timezone, cfg.Timezone != "")
	p.setFocusOnLoad(cfg.FocusOnLoad)
	return p, nil
}

func (p *TimePicker) Type() string                 { return "timepicker" }
func (p *TimePicker) ActionID() string             { return stringField(&p.base, "action_id") }
func (p *TimePicker) InitialTime() string          { return stringField(&p.base, "initial_time") }
func (p *TimePicker) Placeholder() *Text           { t, _ := field[*Text](&p.base, "placeholder"); return t }
func (p *TimePicker) Timezone() string             { return stringField(&p.base, "timezone") }
func (p *TimePicker) FocusOnLoad() bool            { return boolField(&p.base, "focus_on_load") }
func (p *TimePicker) Confirm() *ConfirmationDialog { c, _ := field[*ConfirmationDialog](&p.base, "confirm"); return c }

func (p *TimePicker) SetActionID(id string) error       { return p.setActionID(id) }
func (p *TimePicker) SetPlaceholder(t *Text) error      { return p.setPlaceholder(t) }
func (p *TimePicker) SetConfirm(c *ConfirmationDialog) { p.setConfirm(c) }
func (p *TimePicker) SetFocusOnLoad(focus bool)         { p.setFocusOnLoad(focus) }

// SetInitialTime updates the preselected time; the empty string removes it.
func (p *TimePicker) SetInitialTime(value string) error {
	if err := checkTime("initial_time", value); err != nil {
		return err
	}
	p.setOptional("initial_time", value, value != "")
	return nil
}

// SetTimezone updates the time zone; the empty string removes it.
func (p *TimePicker) SetTimezone(name string) error {
	if err := checkTimezone("timezone", name); err != nil {
		return err
	}
	p.setOptional("timezone", name, name != "")
	return nil
}

func (*TimePicker) actionsElement()   {}
func (*TimePicker) accessoryElement() {}
func (*TimePicker) inputElement()     {}
