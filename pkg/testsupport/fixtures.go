package testsupport

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-blockkit/pkg/blockkit"
)

// MustPlainText builds a plain_text object or fails the test.
func MustPlainText(t *testing.T, text string) *blockkit.Text {
	t.Helper()

	out, err := blockkit.NewPlainText(text)
	if err != nil {
		t.Fatalf("plain text %q: %v", text, err)
	}
	return out
}

// MustMrkdwn builds a mrkdwn object or fails the test.
func MustMrkdwn(t *testing.T, text string) *blockkit.Text {
	t.Helper()

	out, err := blockkit.NewMrkdwn(text)
	if err != nil {
		t.Fatalf("mrkdwn %q: %v", text, err)
	}
	return out
}

// MustOption builds a plain option or fails the test.
func MustOption(t *testing.T, text, value string) *blockkit.Option {
	t.Helper()

	out, err := blockkit.NewPlainOption(text, value)
	if err != nil {
		t.Fatalf("option %q: %v", value, err)
	}
	return out
}

// MustOptions builds one option per value, using the value as label.
func MustOptions(t *testing.T, values ...string) []*blockkit.Option {
	t.Helper()

	out := make([]*blockkit.Option, 0, len(values))
	for _, v := range values {
		out = append(out, MustOption(t, v, v))
	}
	return out
}

// Plain lowers an entity and decodes it back into generic JSON data so tests
// can diff payloads with cmp without caring about key order.
func Plain(t *testing.T, e blockkit.Entity) map[string]any {
	t.Helper()

	data, err := json.Marshal(blockkit.Build(e))
	if err != nil {
		t.Fatalf("marshal %s: %v", e.Kind(), err)
	}
	return DecodeJSON(t, data)
}

// DecodeJSON decodes a JSON object or fails the test.
func DecodeJSON(t *testing.T, data []byte) map[string]any {
	t.Helper()

	var out map[string]any
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("decode json: %v", err)
	}
	return out
}

// LoadGoldenJSON reads a golden JSON object from disk.
func LoadGoldenJSON(path string) (map[string]any, error) {
	if path == "" {
		return nil, errors.New("testsupport: golden path is required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("testsupport: read golden: %w", err)
	}
	var out map[string]any
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("testsupport: unmarshal golden: %w", err)
	}
	return out, nil
}

// AssertGoldenEntity compares the built entity against the golden file at
// path, rewriting the golden first when UPDATE_GOLDENS is set.
func AssertGoldenEntity(t *testing.T, path string, e blockkit.Entity) {
	t.Helper()

	payload, err := blockkit.MarshalIndent(e, "", "  ")
	if err != nil {
		t.Fatalf("marshal %s: %v", e.Kind(), err)
	}
	if WriteMaybeGolden(t, path, append(payload, '\n')) {
		return
	}
	want, err := LoadGoldenJSON(path)
	if err != nil {
		t.Fatalf("load golden: %v", err)
	}
	if diff := CompareGolden(want, DecodeJSON(t, payload)); diff != "" {
		t.Fatalf("%s mismatch (-want +got):\n%s", filepath.Base(path), diff)
	}
}

// CompareGolden returns a diff string if the values differ.
func CompareGolden(want, got any) string {
	return cmp.Diff(want, got)
}

// WriteMaybeGolden updates a golden file when UPDATE_GOLDENS is set. Returns
// true if the golden was written (test should exit early).
func WriteMaybeGolden(t *testing.T, path string, data []byte) bool {
	t.Helper()
	if os.Getenv("UPDATE_GOLDENS") == "" {
		return false
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
	return true
}

// Context returns a background context for tests.
func Context() context.Context {
	return context.Background()
}

