package blockkit_test

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-blockkit/pkg/blockkit"
	"github.com/goliatone/go-blockkit/pkg/constraint"
	"github.com/goliatone/go-blockkit/pkg/testsupport"
)

func newButton(t *testing.T, actionID string) *blockkit.Button {
	t.Helper()
	b, err := blockkit.NewButton(blockkit.ButtonConfig{
		Text:     testsupport.MustPlainText(t, "Click"),
		ActionID: actionID,
	})
	if err != nil {
		t.Fatalf("new button: %v", err)
	}
	return b
}

func TestButtonWithoutURLHasNoURLKey(t *testing.T) {
	b := newButton(t, "click")
	want := map[string]any{
		"type":      "button",
		"text":      map[string]any{"type": "plain_text", "text": "Click", "emoji": true},
		"action_id": "click",
	}
	if diff := cmp.Diff(want, testsupport.Plain(t, b)); diff != "" {
		t.Fatalf("button mismatch (-want +got):\n%s", diff)
	}
}

func TestButtonOptionalFields(t *testing.T) {
	b, err := blockkit.NewButton(blockkit.ButtonConfig{
		Text:               testsupport.MustPlainText(t, "Open"),
		ActionID:           "open",
		URL:                "https://example.com",
		Value:              "v1",
		Style:              constraint.StylePrimary,
		AccessibilityLabel: "Open the example site",
	})
	if err != nil {
		t.Fatalf("new button: %v", err)
	}
	got := testsupport.Plain(t, b)
	for _, key := range []string{"url", "value", "style", "accessibility_label"} {
		if _, ok := got[key]; !ok {
			t.Fatalf("expected %q in %v", key, got)
		}
	}

	if err := b.SetStyle(""); err != nil {
		t.Fatalf("reset style: %v", err)
	}
	if b.Build().Has("style") {
		t.Fatalf("default style must be absent")
	}
}

func TestButtonBoundaries(t *testing.T) {
	text := testsupport.MustPlainText(t, "Click")
	tests := []struct {
		name    string
		cfg     blockkit.ButtonConfig
		wantErr error
	}{
		{name: "action id max", cfg: blockkit.ButtonConfig{Text: text, ActionID: strings.Repeat("a", 255)}},
		{name: "action id too long", cfg: blockkit.ButtonConfig{Text: text, ActionID: strings.Repeat("a", 256)}, wantErr: constraint.ErrRange},
		{name: "missing action id", cfg: blockkit.ButtonConfig{Text: text}, wantErr: constraint.ErrRange},
		{name: "value max", cfg: blockkit.ButtonConfig{Text: text, ActionID: "a", Value: strings.Repeat("v", 2000)}},
		{name: "value too long", cfg: blockkit.ButtonConfig{Text: text, ActionID: "a", Value: strings.Repeat("v", 2001)}, wantErr: constraint.ErrRange},
		{name: "label too long", cfg: blockkit.ButtonConfig{Text: text, ActionID: "a", AccessibilityLabel: strings.Repeat("l", 76)}, wantErr: constraint.ErrRange},
		{name: "bad style", cfg: blockkit.ButtonConfig{Text: text, ActionID: "a", Style: "warning"}, wantErr: constraint.ErrEnum},
		{name: "mrkdwn text", cfg: blockkit.ButtonConfig{Text: testsupport.MustMrkdwn(t, "*x*"), ActionID: "a"}, wantErr: constraint.ErrEnum},
		{name: "missing text", cfg: blockkit.ButtonConfig{ActionID: "a"}, wantErr: constraint.ErrRange},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := blockkit.NewButton(tt.cfg)
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestCheckboxesInitialOptionsMustBeMembers(t *testing.T) {
	options := testsupport.MustOptions(t, "a", "b", "c")
	_, err := blockkit.NewCheckboxes(blockkit.CheckboxesConfig{
		ActionID:       "boxes",
		Options:        options,
		InitialOptions: testsupport.MustOptions(t, "z"),
	})
	if !errors.Is(err, constraint.ErrCrossField) {
		t.Fatalf("expected ErrCrossField, got %v", err)
	}

	boxes, err := blockkit.NewCheckboxes(blockkit.CheckboxesConfig{
		ActionID:       "boxes",
		Options:        options,
		InitialOptions: testsupport.MustOptions(t, "b"),
	})
	if err != nil {
		t.Fatalf("new checkboxes: %v", err)
	}

	if err := boxes.SetOptions(testsupport.MustOptions(t, "a", "c")); !errors.Is(err, constraint.ErrCrossField) {
		t.Fatalf("dropping a checked option: expected ErrCrossField, got %v", err)
	}
	if len(boxes.Options()) != 3 {
		t.Fatalf("failed SetOptions must leave options unchanged")
	}
}

func TestCheckboxesCapacityAndURLs(t *testing.T) {
	values := make([]string, 11)
	for i := range values {
		values[i] = string(rune('a' + i))
	}
	if _, err := blockkit.NewCheckboxes(blockkit.CheckboxesConfig{ActionID: "x", Options: testsupport.MustOptions(t, values[:10]...)}); err != nil {
		t.Fatalf("10 options should be accepted: %v", err)
	}
	if _, err := blockkit.NewCheckboxes(blockkit.CheckboxesConfig{ActionID: "x", Options: testsupport.MustOptions(t, values...)}); !errors.Is(err, constraint.ErrRange) {
		t.Fatalf("11 options: expected ErrRange, got %v", err)
	}

	linked := testsupport.MustOption(t, "Docs", "docs")
	if err := linked.SetURL("https://example.com/docs"); err != nil {
		t.Fatalf("set url: %v", err)
	}
	if _, err := blockkit.NewCheckboxes(blockkit.CheckboxesConfig{ActionID: "x", Options: []*blockkit.Option{linked}}); !errors.Is(err, constraint.ErrCrossField) {
		t.Fatalf("option url outside overflow: expected ErrCrossField, got %v", err)
	}
	if _, err := blockkit.NewOverflow("more", []*blockkit.Option{linked}, nil); err != nil {
		t.Fatalf("overflow should accept option urls: %v", err)
	}
}

func TestOverflowCapacity(t *testing.T) {
	if _, err := blockkit.NewOverflow("more", testsupport.MustOptions(t, "1", "2", "3", "4", "5", "6"), nil); !errors.Is(err, constraint.ErrRange) {
		t.Fatalf("expected ErrRange, got %v", err)
	}
}

func TestRadioButtonsInitialOption(t *testing.T) {
	options := testsupport.MustOptions(t, "yes", "no")
	radio, err := blockkit.NewRadioButtons(blockkit.RadioButtonsConfig{
		ActionID:      "answer",
		Options:       options,
		InitialOption: testsupport.MustOption(t, "no", "no"),
	})
	if err != nil {
		t.Fatalf("new radio buttons: %v", err)
	}
	if err := radio.SetInitialOption(testsupport.MustOption(t, "maybe", "maybe")); !errors.Is(err, constraint.ErrCrossField) {
		t.Fatalf("expected ErrCrossField, got %v", err)
	}
	if got := radio.InitialOption().Value(); got != "no" {
		t.Fatalf("initial option = %q, want no", got)
	}
	if err := radio.SetInitialOption(nil); err != nil {
		t.Fatalf("clear initial option: %v", err)
	}
	if radio.Build().Has("initial_option") {
		t.Fatalf("cleared initial option must be absent")
	}
}

func TestDatePickerFormats(t *testing.T) {
	if _, err := blockkit.NewDatePicker(blockkit.DatePickerConfig{ActionID: "d", InitialDate: "2024-02-30"}); !errors.Is(err, constraint.ErrFormat) {
		t.Fatalf("expected ErrFormat, got %v", err)
	}
	picker, err := blockkit.NewDatePicker(blockkit.DatePickerConfig{ActionID: "d"})
	if err != nil {
		t.Fatalf("new date picker: %v", err)
	}
	if err := picker.SetInitialTime(time.Date(2024, 3, 9, 15, 0, 0, 0, time.UTC)); err != nil {
		t.Fatalf("set initial time: %v", err)
	}
	if got := picker.InitialDate(); got != "2024-03-09" {
		t.Fatalf("initial date = %q", got)
	}
	if got := testsupport.Plain(t, picker)["focus_on_load"]; got != false {
		t.Fatalf("focus_on_load must always be present, got %v", got)
	}
}

func TestDateTimePickerUsesUnixSeconds(t *testing.T) {
	at := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	picker, err := blockkit.NewDateTimePicker(blockkit.DateTimePickerConfig{ActionID: "when", InitialDateTime: at})
	if err != nil {
		t.Fatalf("new datetime picker: %v", err)
	}
	if got := testsupport.Plain(t, picker)["initial_date_time"]; got != float64(at.Unix()) {
		t.Fatalf("initial_date_time = %v, want %d", got, at.Unix())
	}
	if !picker.InitialDateTime().Equal(at) {
		t.Fatalf("InitialDateTime = %v", picker.InitialDateTime())
	}
	picker.SetInitialDateTime(time.Time{})
	if picker.Build().Has("initial_date_time") {
		t.Fatalf("zero time must clear the key")
	}
}

func TestTimePickerValidatesTimeAndZone(t *testing.T) {
	if _, err := blockkit.NewTimePicker(blockkit.TimePickerConfig{ActionID: "t", InitialTime: "25:00"}); !errors.Is(err, constraint.ErrFormat) {
		t.Fatalf("bad time: expected ErrFormat, got %v", err)
	}
	if _, err := blockkit.NewTimePicker(blockkit.TimePickerConfig{ActionID: "t", InitialTime: "9:30"}); !errors.Is(err, constraint.ErrFormat) {
		t.Fatalf("unpadded time: expected ErrFormat, got %v", err)
	}
	if _, err := blockkit.NewTimePicker(blockkit.TimePickerConfig{ActionID: "t", Timezone: "Mars/Olympus_Mons"}); !errors.Is(err, constraint.ErrFormat) {
		t.Fatalf("bad zone: expected ErrFormat, got %v", err)
	}
	picker, err := blockkit.NewTimePicker(blockkit.TimePickerConfig{ActionID: "t", InitialTime: "09:30", Timezone: "Europe/Madrid"})
	if err != nil {
		t.Fatalf("new time picker: %v", err)
	}
	if picker.Timezone() != "Europe/Madrid" || picker.InitialTime() != "09:30" {
		t.Fatalf("unexpected picker state: %v", testsupport.Plain(t, picker))
	}
}

func TestImageElementAltText(t *testing.T) {
	if _, err := blockkit.NewImageElement("https://example.com/a.png", strings.Repeat("a", 2000)); err != nil {
		t.Fatalf("max alt text: %v", err)
	}
	if _, err := blockkit.NewImageElement("https://example.com/a.png", strings.Repeat("a", 2001)); !errors.Is(err, constraint.ErrRange) {
		t.Fatalf("expected ErrRange, got %v", err)
	}
}

func TestNumberInputBounds(t *testing.T) {
	_, err := blockkit.NewNumberInput(blockkit.NumberInputConfig{MinValue: "10", MaxValue: "5"})
	if !errors.Is(err, constraint.ErrCrossField) {
		t.Fatalf("min > max: expected ErrCrossField, got %v", err)
	}

	in, err := blockkit.NewNumberInput(blockkit.NumberInputConfig{MinValue: "5", MaxValue: "10"})
	if err != nil {
		t.Fatalf("new number input: %v", err)
	}
	if in.Build().Has("action_id") {
		t.Fatalf("action_id is optional for number inputs")
	}
	if err := in.SetMinValue("11"); !errors.Is(err, constraint.ErrCrossField) {
		t.Fatalf("expected ErrCrossField, got %v", err)
	}
	if err := in.SetInitialValue("7.5"); !errors.Is(err, constraint.ErrFormat) {
		t.Fatalf("decimal without decimals allowed: expected ErrFormat, got %v", err)
	}
}

func TestNumberInputDisallowingDecimalsTruncates(t *testing.T) {
	in, err := blockkit.NewNumberInput(blockkit.NumberInputConfig{
		IsDecimalAllowed: true,
		InitialValue:     "4.9",
		MinValue:         "-1.5",
		MaxValue:         "10",
	})
	if err != nil {
		t.Fatalf("new number input: %v", err)
	}
	if err := in.SetIsDecimalAllowed(false); err != nil {
		t.Fatalf("disallow decimals: %v", err)
	}

	got := []string{in.InitialValue(), in.MinValue(), in.MaxValue()}
	if diff := cmp.Diff([]string{"4", "-1", "10"}, got); diff != "" {
		t.Fatalf("truncated values mismatch (-want +got):\n%s", diff)
	}
	if in.IsDecimalAllowed() {
		t.Fatalf("decimals should be disallowed")
	}
}

func TestNumberInputRefusesUnrepresentableTruncation(t *testing.T) {
	in, err := blockkit.NewNumberInput(blockkit.NumberInputConfig{
		IsDecimalAllowed: true,
		MinValue:         "-1.5",
		MaxValue:         "1e30",
	})
	if err != nil {
		t.Fatalf("new number input: %v", err)
	}
	if err := in.SetIsDecimalAllowed(false); !errors.Is(err, constraint.ErrRange) {
		t.Fatalf("expected ErrRange, got %v", err)
	}

	got := []string{in.MinValue(), in.MaxValue()}
	if diff := cmp.Diff([]string{"-1.5", "1e30"}, got); diff != "" {
		t.Fatalf("bounds changed (-want +got):\n%s", diff)
	}
	if !in.IsDecimalAllowed() {
		t.Fatalf("decimals should still be allowed")
	}
}

func TestPlainTextInputLengths(t *testing.T) {
	if _, err := blockkit.NewPlainTextInput(blockkit.PlainTextInputConfig{ActionID: "p", MinLength: 10, MaxLength: 5}); !errors.Is(err, constraint.ErrCrossField) {
		t.Fatalf("expected ErrCrossField, got %v", err)
	}
	if _, err := blockkit.NewPlainTextInput(blockkit.PlainTextInputConfig{ActionID: "p", MaxLength: 3001}); !errors.Is(err, constraint.ErrRange) {
		t.Fatalf("expected ErrRange, got %v", err)
	}
	in, err := blockkit.NewPlainTextInput(blockkit.PlainTextInputConfig{ActionID: "p", Multiline: true, MaxLength: 3000})
	if err != nil {
		t.Fatalf("new input: %v", err)
	}
	got := testsupport.Plain(t, in)
	if _, ok := got["min_length"]; ok {
		t.Fatalf("unset min_length must be absent")
	}
	if got["max_length"] != float64(3000) || got["multiline"] != true {
		t.Fatalf("unexpected payload: %v", got)
	}
}

func TestPlaceholderIsPlainTextUpTo150(t *testing.T) {
	long := testsupport.MustPlainText(t, strings.Repeat("p", 151))
	if _, err := blockkit.NewEmailInput(blockkit.TextInputConfig{ActionID: "e", Placeholder: long}); !errors.Is(err, constraint.ErrRange) {
		t.Fatalf("expected ErrRange, got %v", err)
	}
	in, err := blockkit.NewURLInput(blockkit.TextInputConfig{ActionID: "u"})
	if err != nil {
		t.Fatalf("new url input: %v", err)
	}
	if err := in.SetPlaceholder(testsupport.MustMrkdwn(t, "_hint_")); !errors.Is(err, constraint.ErrEnum) {
		t.Fatalf("expected ErrEnum, got %v", err)
	}
	if got := in.Type(); got != "url_text_input" {
		t.Fatalf("type = %q", got)
	}
}
