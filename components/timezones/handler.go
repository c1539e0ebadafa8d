package timezones

import (
	"encoding/json"
	"errors"
	"net/http"
	"slices"
	"strconv"
	"strings"
)

// HTTPError is an error that picks its own response status.
type HTTPError interface {
	error
	StatusCode() int
}

// StatusError pairs an error with the status it should be answered with.
type StatusError struct {
	Code int
	Err  error
}

func (e StatusError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return http.StatusText(e.StatusCode())
}

func (e StatusError) Unwrap() error { return e.Err }

func (e StatusError) StatusCode() int {
	if e.Code <= 0 {
		return http.StatusInternalServerError
	}
	return e.Code
}

const (
	queryParam = "q"
	limitParam = "limit"
)

// Choice is one entry of the default response document.
type Choice struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

type choices struct {
	Data []Choice `json:"data"`
}

func encodeChoices(zones []string) (any, error) {
	out := choices{Data: make([]Choice, 0, len(zones))}
	for _, zone := range zones {
		out.Data = append(out.Data, Choice{Value: zone, Label: zone})
	}
	return out, nil
}

func readQueryParam(r *http.Request) (string, error) {
	return r.URL.Query().Get(queryParam), nil
}

type handler struct {
	opts Options
}

// NewHandler builds a handler from DefaultOptions plus fns.
func NewHandler(fns ...OptionFn) http.Handler {
	return HandlerWithOptions(NewOptions(fns...))
}

// HandlerWithOptions builds a handler from opts, normalised through
// NewOptions.
func HandlerWithOptions(opts Options) http.Handler {
	opts = NewOptions(func(o *Options) { *o = opts })
	if opts.Query == nil {
		opts.Query = readQueryParam
	}
	if opts.Encode == nil {
		opts.Encode = encodeChoices
	}
	return &handler{opts: opts}
}

func (h *handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if !slices.ContainsFunc(h.opts.Methods, func(m string) bool { return strings.EqualFold(m, r.Method) }) {
		w.Header().Set("Allow", strings.Join(h.opts.Methods, ", "))
		writeError(w, nil, http.StatusMethodNotAllowed)
		return
	}
	if h.opts.Guard != nil {
		if err := h.opts.Guard(r); err != nil {
			writeError(w, err, http.StatusForbidden)
			return
		}
	}

	zones := h.opts.Zones
	if zones == nil {
		var err error
		if zones, err = embeddedZones(); err != nil {
			writeError(w, err, http.StatusInternalServerError)
			return
		}
	}

	query, err := h.opts.Query(r)
	if err != nil {
		writeError(w, err, http.StatusBadRequest)
		return
	}
	requested, _ := strconv.Atoi(r.URL.Query().Get(limitParam))
	limit := h.opts.limit(requested)

	matches := Search(zones, query, limit)
	if strings.TrimSpace(query) == "" && h.opts.ListOnEmpty {
		matches = zones[:min(limit, len(zones))]
	}
	doc, err := h.opts.Encode(matches)
	if err != nil {
		writeError(w, err, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if r.Method == http.MethodHead {
		return
	}
	_ = json.NewEncoder(w).Encode(doc)
}

// writeError answers with the error's own status when it has one, fallback
// otherwise. Only the status text is written.
func writeError(w http.ResponseWriter, err error, fallback int) {
	code := fallback
	var httpErr HTTPError
	if errors.As(err, &httpErr) && httpErr.StatusCode() > 0 {
		code = httpErr.StatusCode()
	}
	http.Error(w, http.StatusText(code), code)
}
