// Package blockkit is the module entry point. It re-exports the entity
// contract from pkg/blockkit and wires the conformance checker and the HTML
// preview renderer behind a few helpers.
package blockkit

import (
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"sync"

	"gopkg.in/yaml.v3"

	pkgblockkit "github.com/goliatone/go-blockkit/pkg/blockkit"
	"github.com/goliatone/go-blockkit/pkg/conformance"
	"github.com/goliatone/go-blockkit/pkg/preview"
)

// Entity is any typed Block Kit object.
type Entity = pkgblockkit.Entity

// Surface is a message, modal or home view.
type Surface = pkgblockkit.Surface

// Body is the ordered plain data an entity builds into.
type Body = pkgblockkit.Body

// Report aliases conformance.Report for callers of Validate.
type Report = conformance.Report

var (
	checkerOnce sync.Once
	checker     *conformance.Checker
	checkerErr  error
)

// Build lowers e into plain data.
func Build(e Entity) *Body {
	return pkgblockkit.Build(e)
}

// MarshalJSON encodes the built entity.
func MarshalJSON(e Entity) ([]byte, error) {
	if e == nil {
		return nil, errors.New("blockkit: entity is nil")
	}
	return json.Marshal(pkgblockkit.Build(e))
}

// MarshalIndent encodes the built entity with two-space indentation.
func MarshalIndent(e Entity) ([]byte, error) {
	if e == nil {
		return nil, errors.New("blockkit: entity is nil")
	}
	return pkgblockkit.MarshalIndent(e, "", "  ")
}

// MarshalYAML encodes the built entity as YAML, keeping key order.
func MarshalYAML(e Entity) ([]byte, error) {
	if e == nil {
		return nil, errors.New("blockkit: entity is nil")
	}
	return yaml.Marshal(pkgblockkit.Build(e))
}

// Validate checks the built entity against the embedded wire schema. The
// checker is loaded once per process, detached from the caller's
// cancellation.
func Validate(ctx context.Context, e Entity) (Report, error) {
	c, err := defaultChecker(ctx)
	if err != nil {
		return Report{}, err
	}
	return c.CheckEntity(e)
}

func defaultChecker(ctx context.Context) (*conformance.Checker, error) {
	checkerOnce.Do(func() {
		checker, checkerErr = conformance.New(context.WithoutCancel(ctx))
	})
	return checker, checkerErr
}

// Preview renders s as a standalone HTML page.
func Preview(ctx context.Context, s Surface, options ...preview.Option) ([]byte, error) {
	r, err := preview.New(options...)
	if err != nil {
		return nil, err
	}
	return r.Render(ctx, s)
}

// PreviewTemplates exposes the built-in preview templates so callers can
// extend them and pass the result to preview.WithTemplatesFS.
func PreviewTemplates() fs.FS {
	return preview.TemplatesFS()
}
