package constraint_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-blockkit/pkg/constraint"
)

func TestLength(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		min     int
		max     int
		wantErr error
	}{
		{name: "min", value: "a", min: 1, max: 3},
		{name: "max", value: "abc", min: 1, max: 3},
		{name: "below min", value: "", min: 1, max: 3, wantErr: constraint.ErrRange},
		{name: "above max", value: "abcd", min: 1, max: 3, wantErr: constraint.ErrRange},
		{name: "counts characters not bytes", value: "ééé", min: 1, max: 3},
		{name: "malformed range", value: "a", min: 3, max: 1, wantErr: constraint.ErrMalformedRange},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := constraint.Length("text", tt.value, tt.min, tt.max)
			if !errors.Is(err, tt.wantErr) || (tt.wantErr == nil && err != nil) {
				t.Fatalf("Length(%q, %d, %d) = %v, want %v", tt.value, tt.min, tt.max, err, tt.wantErr)
			}
		})
	}
}

func TestViolationCarriesKindAndField(t *testing.T) {
	err := constraint.Length("title", "", 1, 24)

	var v *constraint.Violation
	if !errors.As(err, &v) {
		t.Fatalf("expected *Violation, got %T", err)
	}
	if v.Kind != constraint.KindRange || v.Field != "title" {
		t.Fatalf("unexpected violation: %+v", v)
	}
	if kind, ok := constraint.KindOf(err); !ok || kind != constraint.KindRange {
		t.Fatalf("KindOf = %q, %v", kind, ok)
	}
	if errors.Is(err, constraint.ErrEnum) {
		t.Fatalf("range violation must not match ErrEnum")
	}
}

func TestCapacityReportsCardinality(t *testing.T) {
	if err := constraint.Capacity("elements", 25, 1, 25); err != nil {
		t.Fatalf("unexpected error at capacity: %v", err)
	}
	if err := constraint.Capacity("elements", 26, 1, 25); !errors.Is(err, constraint.ErrCardinality) {
		t.Fatalf("expected ErrCardinality, got %v", err)
	}
}

func TestValidType(t *testing.T) {
	if err := constraint.ValidType("type", constraint.Mrkdwn); err != nil {
		t.Fatalf("default set should accept mrkdwn: %v", err)
	}
	if err := constraint.ValidType("type", constraint.Mrkdwn, constraint.PlainText); !errors.Is(err, constraint.ErrEnum) {
		t.Fatalf("expected ErrEnum, got %v", err)
	}
	if err := constraint.ValidType("type", "html"); !errors.Is(err, constraint.ErrEnum) {
		t.Fatalf("expected ErrEnum, got %v", err)
	}
	if err := constraint.ValidType("type", constraint.PlainText, "button"); !errors.Is(err, constraint.ErrEnum) {
		t.Fatalf("unknown kinds in the allowed set must be rejected, got %v", err)
	}
}

func TestStyle(t *testing.T) {
	for _, style := range []string{constraint.StyleDefault, constraint.StylePrimary, constraint.StyleDanger} {
		if err := constraint.Style(style); err != nil {
			t.Fatalf("Style(%q): %v", style, err)
		}
	}
	if err := constraint.Style("secondary"); !errors.Is(err, constraint.ErrEnum) {
		t.Fatalf("expected ErrEnum, got %v", err)
	}
}

func TestFilterOptions(t *testing.T) {
	if err := constraint.FilterOptions(constraint.FilterScopes()); err != nil {
		t.Fatalf("all scopes should be accepted: %v", err)
	}
	if err := constraint.FilterOptions([]string{"im", "group"}); !errors.Is(err, constraint.ErrEnum) {
		t.Fatalf("expected ErrEnum, got %v", err)
	}
}

func TestConfigOptions(t *testing.T) {
	if err := constraint.ConfigOptions(nil); !errors.Is(err, constraint.ErrRange) {
		t.Fatalf("empty triggers: expected ErrRange, got %v", err)
	}
	if err := constraint.ConfigOptions([]string{"on_blur"}); !errors.Is(err, constraint.ErrEnum) {
		t.Fatalf("unknown trigger: expected ErrEnum, got %v", err)
	}
	if err := constraint.ConfigOptions([]string{constraint.TriggerOnEnterPressed, "on_blur"}); err != nil {
		t.Fatalf("a known trigger alongside an unknown one should pass: %v", err)
	}
	if err := constraint.ConfigOptions([]string{constraint.TriggerOnEnterPressed, constraint.TriggerOnCharacterEntered}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestIsNumber(t *testing.T) {
	tests := []struct {
		value   string
		decimal bool
		wantErr bool
	}{
		{value: "10", decimal: false},
		{value: "-3", decimal: false},
		{value: "1.5", decimal: true},
		{value: "1.5", decimal: false, wantErr: true},
		{value: "ten", decimal: true, wantErr: true},
		{value: "NaN", decimal: true, wantErr: true},
	}
	for _, tt := range tests {
		err := constraint.IsNumber("min_value", tt.value, tt.decimal)
		if (err != nil) != tt.wantErr {
			t.Fatalf("IsNumber(%q, %v) = %v, wantErr %v", tt.value, tt.decimal, err, tt.wantErr)
		}
		if err != nil && !errors.Is(err, constraint.ErrFormat) {
			t.Fatalf("expected ErrFormat, got %v", err)
		}
	}
}

func TestParseNumber(t *testing.T) {
	got, err := constraint.ParseNumber("42")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if diff := cmp.Diff(constraint.Number{Int: 42, Float: 42}, got); diff != "" {
		t.Fatalf("integer mismatch (-want +got):\n%s", diff)
	}

	got, err = constraint.ParseNumber("-2.75")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if !got.IsDecimal || got.Float != -2.75 {
		t.Fatalf("unexpected decimal: %+v", got)
	}
	if trunc, ok := got.Truncate(); !ok || trunc.String() != "-2" {
		t.Fatalf("Truncate = %q, %v, want -2", trunc.String(), ok)
	}
}

func TestNumberTruncateRange(t *testing.T) {
	cases := []struct {
		in   string
		want string
		ok   bool
	}{
		{in: "9.2e18", want: "9200000000000000000", ok: true},
		{in: "-9223372036854775808.5", want: "-9223372036854775808", ok: true},
		{in: "1e30", ok: false},
		{in: "-1e30", ok: false},
		{in: "9223372036854775807.5", ok: false},
	}
	for _, tc := range cases {
		n, err := constraint.ParseNumber(tc.in)
		if err != nil {
			t.Fatalf("parse %q: %v", tc.in, err)
		}
		got, ok := n.Truncate()
		if ok != tc.ok {
			t.Fatalf("Truncate(%s) ok = %v, want %v", tc.in, ok, tc.ok)
		}
		if ok && got.String() != tc.want {
			t.Errorf("Truncate(%s) = %q, want %q", tc.in, got.String(), tc.want)
		}
	}
}

func TestOrdered(t *testing.T) {
	if err := constraint.Ordered("min_value", "10", "5"); !errors.Is(err, constraint.ErrCrossField) {
		t.Fatalf("expected ErrCrossField, got %v", err)
	}
	if err := constraint.Ordered("min_value", "5", "10"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := constraint.Ordered("min_value", "9.5", "10"); err != nil {
		t.Fatalf("mixed integer and decimal bounds: %v", err)
	}
	if err := constraint.Ordered("min_value", "", "1"); err != nil {
		t.Fatalf("missing bound should be skipped: %v", err)
	}
}

func TestHTTPS(t *testing.T) {
	if err := constraint.HTTPS("video_url", "https://example.com/v.mp4"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, raw := range []string{"http://example.com", "https://", "example.com"} {
		if err := constraint.HTTPS("video_url", raw); !errors.Is(err, constraint.ErrFormat) {
			t.Fatalf("HTTPS(%q): expected ErrFormat, got %v", raw, err)
		}
	}
}

func TestOneOfAndAnyOf(t *testing.T) {
	fields := []string{"options", "option_groups"}
	if err := constraint.OneOf(fields, true, true); !errors.Is(err, constraint.ErrMutualExclusion) {
		t.Fatalf("both: expected ErrMutualExclusion, got %v", err)
	}
	if err := constraint.OneOf(fields, false, false); !errors.Is(err, constraint.ErrMutualExclusion) {
		t.Fatalf("neither: expected ErrMutualExclusion, got %v", err)
	}
	if err := constraint.OneOf(fields, false, true); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := constraint.AnyOf([]string{"text", "fields"}, true, true); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := constraint.AnyOf([]string{"text", "fields"}, false, false); !errors.Is(err, constraint.ErrMutualExclusion) {
		t.Fatalf("expected ErrMutualExclusion, got %v", err)
	}
}
