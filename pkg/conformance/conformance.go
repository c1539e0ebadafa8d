// Package conformance checks payloads against an OpenAPI components document
// describing the platform's wire shapes. It accepts built entities as well as
// plain JSON from recipes, fixtures or hand written files.
package conformance

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-blockkit/pkg/blockkit"
)

//go:embed schema/blockkit.yaml
var defaultSchema []byte

var (
	ErrUnknownSchema = errors.New("conformance: unknown schema")
	ErrNilPayload    = errors.New("conformance: payload is nil")
)

// Option configures a Checker.
type Option func(*config)

type config struct {
	schema []byte
	strict bool
}

// WithSchema replaces the embedded document. It must be an OpenAPI 3 document
// whose components.schemas use the same names as the embedded one.
func WithSchema(raw []byte) Option {
	return func(cfg *config) {
		if len(raw) > 0 {
			cfg.schema = append([]byte(nil), raw...)
		}
	}
}

// WithDocumentValidation validates the schema document itself on load.
func WithDocumentValidation(enabled bool) Option {
	return func(cfg *config) {
		cfg.strict = enabled
	}
}

// Checker validates payloads. It is safe for concurrent use once built.
type Checker struct {
	doc *openapi3.T
}

// New loads and resolves the schema document.
func New(ctx context.Context, options ...Option) (*Checker, error) {
	cfg := &config{schema: defaultSchema, strict: true}
	for _, opt := range options {
		if opt != nil {
			opt(cfg)
		}
	}

	loader := &openapi3.Loader{Context: ctx}
	doc, err := loader.LoadFromData(cfg.schema)
	if err != nil {
		return nil, fmt.Errorf("conformance: load schema: %w", err)
	}
	if cfg.strict {
		if err := doc.Validate(ctx, openapi3.DisableExamplesValidation()); err != nil {
			return nil, fmt.Errorf("conformance: validate schema: %w", err)
		}
	}
	if doc.Components == nil || len(doc.Components.Schemas) == 0 {
		return nil, errors.New("conformance: schema document has no components")
	}
	return &Checker{doc: doc}, nil
}

// Schemas lists the schema names the checker knows, sorted.
func (c *Checker) Schemas() []string {
	names := make([]string, 0, len(c.doc.Components.Schemas))
	for name := range c.doc.Components.Schemas {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// SchemaFor returns the schema name used for e: surfaces by kind, blocks as
// "block", elements as "element", composition objects by kind.
func SchemaFor(e blockkit.Entity) string {
	switch e.(type) {
	case blockkit.Surface:
		return e.Kind()
	case blockkit.Block:
		return "block"
	case blockkit.Element:
		return "element"
	}
	return e.Kind()
}

// CheckEntity builds e and validates the result.
func (c *Checker) CheckEntity(e blockkit.Entity) (Report, error) {
	if e == nil {
		return Report{}, ErrNilPayload
	}
	raw, err := json.Marshal(blockkit.Build(e))
	if err != nil {
		return Report{}, fmt.Errorf("conformance: marshal %s: %w", e.Kind(), err)
	}
	return c.CheckJSON(SchemaFor(e), raw)
}

// CheckJSON validates raw JSON against the named schema.
func (c *Checker) CheckJSON(schema string, raw []byte) (Report, error) {
	var data any
	if err := json.Unmarshal(raw, &data); err != nil {
		return Report{}, fmt.Errorf("conformance: decode payload: %w", err)
	}
	return c.Check(schema, data)
}

// Check validates decoded JSON data (maps, slices, float64 numbers) against
// the named schema. A payload that does not conform yields a report with
// issues and a nil error; the error is reserved for caller mistakes.
func (c *Checker) Check(schema string, data any) (Report, error) {
	if data == nil {
		return Report{}, ErrNilPayload
	}
	ref, ok := c.doc.Components.Schemas[schema]
	if !ok || ref == nil || ref.Value == nil {
		return Report{}, fmt.Errorf("%w: %q", ErrUnknownSchema, schema)
	}

	report := Report{Schema: schema}
	err := ref.Value.VisitJSON(data, openapi3.MultiErrors())
	if err == nil {
		return report, nil
	}
	report.Issues = collectIssues(err)
	return report, nil
}

// collectIssues flattens nested MultiErrors. A oneOf or anyOf failure stays a
// single issue at the position of the value that matched no branch.
func collectIssues(err error) []Issue {
	switch e := err.(type) {
	case openapi3.MultiError:
		var out []Issue
		for _, inner := range e {
			out = append(out, collectIssues(inner)...)
		}
		return out
	case *openapi3.SchemaError:
		return []Issue{{
			Pointer: pointer(e.JSONPointer()),
			Rule:    e.SchemaField,
			Reason:  e.Reason,
		}}
	}
	return []Issue{{Reason: err.Error()}}
}

func pointer(parts []string) string {
	if len(parts) == 0 {
		return ""
	}
	escaped := make([]string, len(parts))
	for i, p := range parts {
		p = strings.ReplaceAll(p, "~", "~0")
		escaped[i] = strings.ReplaceAll(p, "/", "~1")
	}
	return "/" + strings.Join(escaped, "/")
}

// Schema returns a copy of the embedded OpenAPI document.
func Schema() []byte {
	return append([]byte(nil), defaultSchema...)
}
