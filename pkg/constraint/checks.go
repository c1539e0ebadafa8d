package constraint

import (
	"fmt"
	"math"
	"net/url"
	"slices"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Text object kinds.
const (
	PlainText = "plain_text"
	Mrkdwn    = "mrkdwn"
)

// Button and confirmation dialog styles. StyleDefault leaves the key off the
// wire.
const (
	StyleDefault = ""
	StylePrimary = "primary"
	StyleDanger  = "danger"
)

// Dispatch action triggers.
const (
	TriggerOnEnterPressed     = "on_enter_pressed"
	TriggerOnCharacterEntered = "on_character_entered"
)

var (
	textKinds      = []string{PlainText, Mrkdwn}
	filterScopes   = []string{"im", "mpim", "private", "public"}
	configTriggers = []string{TriggerOnEnterPressed, TriggerOnCharacterEntered}
)

// FilterScopes returns the conversation filter tokens accepted by
// FilterOptions.
func FilterScopes() []string {
	return slices.Clone(filterScopes)
}

// Length checks that value holds between min and max characters.
func Length(field, value string, min, max int) error {
	if min > max {
		return fmt.Errorf("%w: [%d, %d] for %q", ErrMalformedRange, min, max, field)
	}
	n := utf8.RuneCountInString(value)
	if n < min || n > max {
		return Newf(KindRange, field, "length must be in [%d, %d], is %d", min, max, n)
	}
	return nil
}

// Count checks a collection size against [min,max].
func Count(field string, n, min, max int) error {
	if min > max {
		return fmt.Errorf("%w: [%d, %d] for %q", ErrMalformedRange, min, max, field)
	}
	if n < min || n > max {
		return Newf(KindRange, field, "item count must be in [%d, %d], is %d", min, max, n)
	}
	return nil
}

// Items is Count over a slice.
func Items[T any](field string, items []T, min, max int) error {
	return Count(field, len(items), min, max)
}

// Capacity checks the number of children held by a container.
func Capacity(field string, n, min, max int) error {
	if min > max {
		return fmt.Errorf("%w: [%d, %d] for %q", ErrMalformedRange, min, max, field)
	}
	if n < min || n > max {
		return Newf(KindCardinality, field, "container holds %d, must hold between %d and %d", n, min, max)
	}
	return nil
}

// Between checks an integer value against [min,max].
func Between(field string, v, min, max int) error {
	if min > max {
		return fmt.Errorf("%w: [%d, %d] for %q", ErrMalformedRange, min, max, field)
	}
	if v < min || v > max {
		return Newf(KindRange, field, "value must be in [%d, %d], is %d", min, max, v)
	}
	return nil
}

// ValidType checks value against allowed. With no allowed set the two text
// kinds are accepted. An allowed set naming anything other than a text kind is
// itself rejected.
func ValidType(field, value string, allowed ...string) error {
	if len(allowed) == 0 {
		allowed = textKinds
	}
	for _, kind := range allowed {
		if !slices.Contains(textKinds, kind) {
			return Newf(KindEnum, field, "unknown text kind %q in allowed set, can only be %v", kind, textKinds)
		}
	}
	if !slices.Contains(allowed, value) {
		return Newf(KindEnum, field, "expected one of %v, got %q", allowed, value)
	}
	return nil
}

// Enum checks value against an arbitrary allowed set.
func Enum(field, value string, allowed ...string) error {
	if !slices.Contains(allowed, value) {
		return Newf(KindEnum, field, "expected one of %v, got %q", allowed, value)
	}
	return nil
}

// Style accepts the default style or one of the named styles.
func Style(value string) error {
	switch value {
	case StyleDefault, StylePrimary, StyleDanger:
		return nil
	}
	return Newf(KindEnum, "style", "expected %q or %q, got %q", StylePrimary, StyleDanger, value)
}

// FilterOptions checks that every token is a known conversation scope.
func FilterOptions(include []string) error {
	for _, token := range include {
		if !slices.Contains(filterScopes, token) {
			return Newf(KindEnum, "include", "unknown scope %q, can only be %v", token, filterScopes)
		}
	}
	return nil
}

// ConfigOptions checks dispatch triggers: the list must be non-empty and name
// at least one recognised token. Other tokens are passed through.
func ConfigOptions(triggers []string) error {
	if len(triggers) == 0 {
		return Newf(KindRange, "trigger_actions_on", "at least one trigger is required")
	}
	if !slices.ContainsFunc(triggers, func(token string) bool { return slices.Contains(configTriggers, token) }) {
		return Newf(KindEnum, "trigger_actions_on", "%v has no known trigger, expected one of %v", triggers, configTriggers)
	}
	return nil
}

// IsNumber checks that value parses as an integer, or as a decimal when
// decimalAllowed is set.
func IsNumber(field, value string, decimalAllowed bool) error {
	n, err := ParseNumber(value)
	if err != nil {
		return Newf(KindFormat, field, "%q is not a number", value)
	}
	if n.IsDecimal && !decimalAllowed {
		return Newf(KindFormat, field, "decimal %q is not allowed", value)
	}
	return nil
}

// Number is a parsed numeric string. Int is set when the string parses as an
// integer; otherwise Float holds the decimal value.
type Number struct {
	Int       int64
	Float     float64
	IsDecimal bool
}

// ParseNumber returns an integer Number when s parses as one, else a decimal.
func ParseNumber(s string) (Number, error) {
	trimmed := strings.TrimSpace(s)
	if i, err := strconv.ParseInt(trimmed, 10, 64); err == nil {
		return Number{Int: i, Float: float64(i)}, nil
	}
	f, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return Number{}, fmt.Errorf("constraint: parse number %q: %w", s, err)
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return Number{}, fmt.Errorf("constraint: parse number %q: not finite", s)
	}
	return Number{Float: f, IsDecimal: true}, nil
}

// Compare returns -1, 0 or 1 ordering n against other.
func (n Number) Compare(other Number) int {
	if !n.IsDecimal && !other.IsDecimal {
		switch {
		case n.Int < other.Int:
			return -1
		case n.Int > other.Int:
			return 1
		}
		return 0
	}
	switch {
	case n.Float < other.Float:
		return -1
	case n.Float > other.Float:
		return 1
	}
	return 0
}

// Truncate drops the fractional part of a decimal, rounding toward zero. It
// reports false when the result does not fit an int64.
func (n Number) Truncate() (Number, bool) {
	if !n.IsDecimal {
		return n, true
	}
	t := math.Trunc(n.Float)
	if t < -0x1p63 || t >= 0x1p63 {
		return Number{}, false
	}
	return Number{Int: int64(t), Float: t}, true
}

// String formats the number the way it would be written in a payload.
func (n Number) String() string {
	if n.IsDecimal {
		return strconv.FormatFloat(n.Float, 'f', -1, 64)
	}
	return strconv.FormatInt(n.Int, 10)
}

// Ordered checks min <= max for numeric strings. Empty bounds are skipped.
func Ordered(field, min, max string) error {
	if min == "" || max == "" {
		return nil
	}
	lo, err := ParseNumber(min)
	if err != nil {
		return Newf(KindFormat, field, "%q is not a number", min)
	}
	hi, err := ParseNumber(max)
	if err != nil {
		return Newf(KindFormat, field, "%q is not a number", max)
	}
	if lo.Compare(hi) > 0 {
		return Newf(KindCrossField, field, "min %s must be less or equal to max %s", min, max)
	}
	return nil
}

// HTTPS checks that raw is an absolute https URL.
func HTTPS(field, raw string) error {
	u, err := url.Parse(raw)
	if err != nil || u.Scheme != "https" || u.Host == "" {
		return Newf(KindFormat, field, "%q must be an https URL", raw)
	}
	return nil
}

// OneOf checks that exactly one of the named fields is present.
func OneOf(fields []string, present ...bool) error {
	count := 0
	for _, p := range present {
		if p {
			count++
		}
	}
	switch {
	case count == 0:
		return Newf(KindMutualExclusion, strings.Join(fields, "|"), "exactly one of %v must be specified, got none", fields)
	case count > 1:
		return Newf(KindMutualExclusion, strings.Join(fields, "|"), "exactly one of %v must be specified, got %d", fields, count)
	}
	return nil
}

// AnyOf checks that at least one of the named fields is present.
func AnyOf(fields []string, present ...bool) error {
	for _, p := range present {
		if p {
			return nil
		}
	}
	return Newf(KindMutualExclusion, strings.Join(fields, "|"), "at least one of %v must be specified", fields)
}
