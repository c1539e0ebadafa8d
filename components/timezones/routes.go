package timezones

import (
	"errors"
	"net/http"
	"path"
	"slices"
	"strings"
)

var ErrNilMux = errors.New("timezones: missing mux")

// Mux registers handlers under method-qualified patterns ("POST /path"), as
// *http.ServeMux does.
type Mux interface {
	Handle(pattern string, handler http.Handler)
}

// MountPath joins basePath and the configured route path.
func MountPath(basePath string, fns ...OptionFn) string {
	return mountPath(basePath, NewOptions(fns...).RoutePath)
}

// RegisterRoutes mounts the handler on mux and returns its path.
func RegisterRoutes(mux Mux, basePath string, fns ...OptionFn) (string, error) {
	return RegisterRoutesWithOptions(mux, basePath, NewOptions(fns...))
}

// RegisterRoutesWithOptions registers one pattern per accepted method. HEAD is
// folded into GET since the mux routes it there already.
func RegisterRoutesWithOptions(mux Mux, basePath string, opts Options) (string, error) {
	if mux == nil {
		return "", ErrNilMux
	}
	opts = NewOptions(func(o *Options) { *o = opts })
	mounted := mountPath(basePath, opts.RoutePath)
	handler := HandlerWithOptions(opts)
	for _, method := range Patterns(mounted, opts.Methods) {
		mux.Handle(method, handler)
	}
	return mounted, nil
}

// Patterns lists the mux patterns for route under methods.
func Patterns(route string, methods []string) []string {
	hasGet := slices.Contains(methods, http.MethodGet)
	out := make([]string, 0, len(methods))
	for _, method := range methods {
		if method == http.MethodHead && hasGet {
			continue
		}
		out = append(out, method+" "+route)
	}
	return out
}

func mountPath(basePath, routePath string) string {
	joined := path.Join("/", strings.TrimSpace(basePath), strings.TrimSpace(routePath))
	return path.Clean(joined)
}
