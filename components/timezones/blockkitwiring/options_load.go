// Package blockkitwiring serves the timezone list to external select menus.
//
// The platform loads external select options by POSTing a form encoded
// "payload" field holding a block_suggestion event. The handler answers with
// {"options":[...]} where every entry is a built option object.
package blockkitwiring

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/goliatone/go-blockkit/components/timezones"
	"github.com/goliatone/go-blockkit/pkg/blockkit"
)

// MaxOptions is the largest option list the platform accepts in one load.
const MaxOptions = 100

const suggestionType = "block_suggestion"

var (
	ErrMissingPayload = errors.New("blockkitwiring: missing payload")
	ErrNotSuggestion  = errors.New("blockkitwiring: payload is not a block_suggestion")
	ErrActionMismatch = errors.New("blockkitwiring: unexpected action_id")
)

// Suggestion is the subset of a block_suggestion payload the handler reads.
type Suggestion struct {
	Type     string `json:"type"`
	ActionID string `json:"action_id"`
	BlockID  string `json:"block_id"`
	Value    string `json:"value"`
}

// ParseSuggestion reads the block_suggestion event from r's form payload.
func ParseSuggestion(r *http.Request) (Suggestion, error) {
	if err := r.ParseForm(); err != nil {
		return Suggestion{}, timezones.StatusError{Code: http.StatusBadRequest, Err: err}
	}
	raw := r.PostForm.Get("payload")
	if raw == "" {
		return Suggestion{}, timezones.StatusError{Code: http.StatusBadRequest, Err: ErrMissingPayload}
	}
	var s Suggestion
	if err := json.Unmarshal([]byte(raw), &s); err != nil {
		return Suggestion{}, timezones.StatusError{
			Code: http.StatusBadRequest,
			Err:  fmt.Errorf("blockkitwiring: decode payload: %w", err),
		}
	}
	if s.Type != suggestionType {
		return Suggestion{}, timezones.StatusError{Code: http.StatusBadRequest, Err: ErrNotSuggestion}
	}
	return s, nil
}

type optionsLoad struct {
	Options []*blockkit.Option `json:"options"`
}

// EncodeOptions builds one plain option per zone, using the zone name as both
// label and value.
func EncodeOptions(zones []string) (any, error) {
	out := optionsLoad{Options: make([]*blockkit.Option, 0, len(zones))}
	for _, zone := range zones {
		opt, err := blockkit.NewPlainOption(zone, zone)
		if err != nil {
			return nil, fmt.Errorf("blockkitwiring: option %q: %w", zone, err)
		}
		out.Options = append(out.Options, opt)
	}
	return out, nil
}

// QueryFor returns a timezones.QueryFunc reading the suggestion value. When
// actionID is not empty, suggestions for other actions are rejected with 404.
func QueryFor(actionID string) timezones.QueryFunc {
	return func(r *http.Request) (string, error) {
		s, err := ParseSuggestion(r)
		if err != nil {
			return "", err
		}
		if actionID != "" && s.ActionID != actionID {
			return "", timezones.StatusError{
				Code: http.StatusNotFound,
				Err:  fmt.Errorf("%w: %q", ErrActionMismatch, s.ActionID),
			}
		}
		return s.Value, nil
	}
}

// Options returns the timezones options for an options load endpoint. Caller
// overrides are applied after the wiring defaults, except that MaxLimit never
// exceeds MaxOptions.
func Options(actionID string, fns ...timezones.OptionFn) timezones.Options {
	base := []timezones.OptionFn{
		timezones.WithRoutePath("/api/timezones/options"),
		timezones.WithMethods(http.MethodPost),
		timezones.WithQuery(QueryFor(actionID)),
		timezones.WithEncoder(EncodeOptions),
		timezones.WithMaxLimit(MaxOptions),
	}
	opts := timezones.NewOptions(append(base, fns...)...)
	if opts.MaxLimit > MaxOptions {
		opts.MaxLimit = MaxOptions
	}
	return opts
}

// OptionsLoadHandler answers external select option loads for actionID.
func OptionsLoadHandler(actionID string, fns ...timezones.OptionFn) http.Handler {
	return timezones.HandlerWithOptions(Options(actionID, fns...))
}

// RegisterOptionsLoad mounts OptionsLoadHandler under basePath on mux.
func RegisterOptionsLoad(mux timezones.Mux, basePath, actionID string, fns ...timezones.OptionFn) (string, error) {
	return timezones.RegisterRoutesWithOptions(mux, basePath, Options(actionID, fns...))
}

// ExternalSelect builds an external select bound to the endpoint. The
// platform sends queries once minQueryLength characters were typed.
func ExternalSelect(actionID string, placeholder *blockkit.Text, minQueryLength int) (*blockkit.ExternalSelectMenu, error) {
	return blockkit.NewExternalSelect(blockkit.ExternalSelectConfig{
		ActionID:       actionID,
		Placeholder:    placeholder,
		MinQueryLength: minQueryLength,
	})
}
