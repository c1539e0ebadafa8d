package constraint

import (
	"errors"
	"fmt"
)

// Kind classifies a validation failure.
type Kind string

const (
	// KindRange reports a sized value outside its declared [min,max].
	KindRange Kind = "range"
	// KindEnum reports a value outside its allowed set.
	KindEnum Kind = "enum"
	// KindMutualExclusion reports fields that must be exactly-one-of (or
	// at-least-one-of) being both present or both absent.
	KindMutualExclusion Kind = "mutual_exclusion"
	// KindCrossField reports a failed dependent-field rule.
	KindCrossField Kind = "cross_field"
	// KindCardinality reports a container over capacity or holding a forbidden
	// child variant.
	KindCardinality Kind = "cardinality"
	// KindFormat reports a value that does not parse in its expected syntax.
	KindFormat Kind = "format"
)

var (
	ErrRange           = errors.New("constraint: range violation")
	ErrEnum            = errors.New("constraint: enum violation")
	ErrMutualExclusion = errors.New("constraint: mutual exclusion violation")
	ErrCrossField      = errors.New("constraint: cross-field violation")
	ErrCardinality     = errors.New("constraint: container cardinality violation")
	ErrFormat          = errors.New("constraint: format violation")

	// ErrMalformedRange is returned when a check is called with min > max.
	// It signals a programming error in the caller, not bad input.
	ErrMalformedRange = errors.New("constraint: malformed range")
)

var sentinels = map[Kind]error{
	KindRange:           ErrRange,
	KindEnum:            ErrEnum,
	KindMutualExclusion: ErrMutualExclusion,
	KindCrossField:      ErrCrossField,
	KindCardinality:     ErrCardinality,
	KindFormat:          ErrFormat,
}

// Violation is the single error type produced by every check. Field names the
// wire key that failed (empty when the rule spans the whole entity).
type Violation struct {
	Kind    Kind
	Field   string
	Message string
}

// Error implements the error interface.
func (v *Violation) Error() string {
	if v.Field == "" {
		return fmt.Sprintf("%s violation: %s", v.Kind, v.Message)
	}
	return fmt.Sprintf("%s violation on %q: %s", v.Kind, v.Field, v.Message)
}

// Is matches the sentinel for the violation kind so callers can use
// errors.Is(err, constraint.ErrRange).
func (v *Violation) Is(target error) bool {
	sentinel, ok := sentinels[v.Kind]
	return ok && sentinel == target
}

// Unwrap exposes the kind sentinel.
func (v *Violation) Unwrap() error {
	return sentinels[v.Kind]
}

// Newf builds a Violation with a formatted message.
func Newf(kind Kind, field, format string, args ...any) *Violation {
	return &Violation{Kind: kind, Field: field, Message: fmt.Sprintf(format, args...)}
}

// KindOf reports the kind of a violation anywhere in err's chain.
func KindOf(err error) (Kind, bool) {
	var v *Violation
	if errors.As(err, &v) {
		return v.Kind, true
	}
	return "", false
}
