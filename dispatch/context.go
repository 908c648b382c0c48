package dispatch

import (
	"context"
	"net/http"
)

// paramsContextKey is an unexported type for the params context key.
type paramsContextKey struct{}

// ctxKey is the single context key used to store the parameter mapping.
var ctxKey = paramsContextKey{}

// Params returns the parameter mapping for the current request, if any.
// The map is nil for requests resolved without captured parameters.
func Params(r *http.Request) map[string]string {
	if vars, ok := r.Context().Value(ctxKey).(map[string]string); ok {
		return vars
	}

	return nil
}

// ParamValue returns the value of a single parameter by name and a
// boolean indicating whether the parameter is bound.
func ParamValue(r *http.Request, name string) (string, bool) {
	if vars, ok := r.Context().Value(ctxKey).(map[string]string); ok {
		val, exists := vars[name]
		return val, exists
	}

	return "", false
}

// WithParams returns a request carrying the given parameter mapping in
// its context. The dispatcher calls this after a successful match; it
// is also useful for testing handlers and hooks in isolation.
func WithParams(r *http.Request, vars map[string]string) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), ctxKey, vars))
}
