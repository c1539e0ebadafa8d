package timezones

import (
	"net/http"
	"slices"
)

// GuardFunc authorises a request before any work is done. A returned error is
// answered with its StatusCode when it implements HTTPError, 403 otherwise.
type GuardFunc func(r *http.Request) error

// QueryFunc extracts the search text from a request. A returned error is
// answered with its StatusCode when it implements HTTPError, 400 otherwise.
type QueryFunc func(r *http.Request) (string, error)

// EncodeFunc turns the matched zones into the response document.
type EncodeFunc func(zones []string) (any, error)

// Options configures the handler and its route.
type Options struct {
	RoutePath string
	// Methods lists the accepted HTTP methods. Defaults to GET and HEAD.
	Methods []string

	DefaultLimit int
	MaxLimit     int
	// ListOnEmpty answers an empty query with the first zones instead of
	// nothing.
	ListOnEmpty bool

	Guard GuardFunc
	// Query defaults to the "q" URL parameter.
	Query QueryFunc
	// Encode defaults to {"data":[{"value":...,"label":...}]}.
	Encode EncodeFunc

	// Zones replaces the embedded list when not nil.
	Zones []string
}

type OptionFn func(*Options)

const (
	defaultRoutePath = "/api/timezones"
	defaultLimit     = 50
	defaultMaxLimit  = 200
)

func DefaultOptions() Options {
	return Options{
		RoutePath:    defaultRoutePath,
		Methods:      []string{http.MethodGet, http.MethodHead},
		DefaultLimit: defaultLimit,
		MaxLimit:     defaultMaxLimit,
	}
}

// NewOptions applies fns over DefaultOptions and fills any zeroed field back
// with its default. Slices are copied.
func NewOptions(fns ...OptionFn) Options {
	opts := DefaultOptions()
	for _, fn := range fns {
		if fn != nil {
			fn(&opts)
		}
	}
	if opts.RoutePath == "" {
		opts.RoutePath = defaultRoutePath
	}
	if len(opts.Methods) == 0 {
		opts.Methods = []string{http.MethodGet, http.MethodHead}
	} else {
		opts.Methods = slices.Clone(opts.Methods)
	}
	if opts.DefaultLimit <= 0 {
		opts.DefaultLimit = defaultLimit
	}
	if opts.MaxLimit <= 0 {
		opts.MaxLimit = defaultMaxLimit
	}
	opts.Zones = slices.Clone(opts.Zones)
	return opts
}

// limit resolves a requested result count: 0 means DefaultLimit, negative
// means none, and MaxLimit caps the rest.
func (o Options) limit(requested int) int {
	switch {
	case requested < 0:
		return 0
	case requested == 0:
		requested = o.DefaultLimit
	}
	return min(requested, o.MaxLimit)
}

func WithRoutePath(path string) OptionFn {
	return func(o *Options) { o.RoutePath = path }
}

// WithMethods replaces the accepted HTTP methods.
func WithMethods(methods ...string) OptionFn {
	return func(o *Options) { o.Methods = slices.Clone(methods) }
}

func WithDefaultLimit(limit int) OptionFn {
	return func(o *Options) { o.DefaultLimit = limit }
}

func WithMaxLimit(limit int) OptionFn {
	return func(o *Options) { o.MaxLimit = limit }
}

func WithListOnEmpty(list bool) OptionFn {
	return func(o *Options) { o.ListOnEmpty = list }
}

func WithGuard(guard GuardFunc) OptionFn {
	return func(o *Options) { o.Guard = guard }
}

func WithQuery(fn QueryFunc) OptionFn {
	return func(o *Options) { o.Query = fn }
}

func WithEncoder(fn EncodeFunc) OptionFn {
	return func(o *Options) { o.Encode = fn }
}

func WithZones(zones []string) OptionFn {
	return func(o *Options) { o.Zones = slices.Clone(zones) }
}
