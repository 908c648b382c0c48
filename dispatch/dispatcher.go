package dispatch

import (
	"fmt"
	"net/http"
	"strings"
)

// HandlerFunc is the signature of a route handler.
type HandlerFunc func(w http.ResponseWriter, r *http.Request)

// MiddlewareFunc is the signature of a middleware entry. It may write to
// the response and returns a continuation signal: false stops the
// pipeline immediately, anything else continues it. An aborting
// middleware is responsible for having written a complete response.
type MiddlewareFunc func(w http.ResponseWriter, r *http.Request) bool

// ParamHookFunc is the signature of a per-parameter hook. It receives
// the bound value and the parameter name alongside the request and
// response, and returns the same continuation signal as middleware.
type ParamHookFunc func(w http.ResponseWriter, r *http.Request, value, name string) bool

// Route is a registered (method, pattern, handler) triple. Routes are
// created at registration time and immutable thereafter.
type Route struct {
	method     string
	pattern    string
	paramNames []string
	matcher    *pattern
	handler    HandlerFunc
}

// Method returns the route's HTTP method.
func (r *Route) Method() string { return r.method }

// Pattern returns the route's normalized path pattern.
func (r *Route) Pattern() string { return r.pattern }

// ParamNames returns the route's declared parameter names in
// left-to-right order.
func (r *Route) ParamNames() []string {
	names := make([]string, len(r.paramNames))
	copy(names, r.paramNames)
	return names
}

// static reports whether the route's pattern is a literal path.
func (r *Route) static() bool { return r.matcher.static() }

// Match is the transient result of resolving a request against the
// route table. It is recomputed per request and never persisted.
type Match struct {
	// Route is the matched route.
	Route *Route

	// Handler is the matched route's handler.
	Handler HandlerFunc

	// Params maps parameter names to the captured path values. Empty
	// for routes resolved through the exact-match fast path.
	Params map[string]string
}

// middlewareEntry pairs a middleware handler with its compiled path
// pattern. The pattern is only a prefix/wildcard test; captures are
// ignored.
type middlewareEntry struct {
	pattern *pattern
	handler MiddlewareFunc
}

// Dispatcher owns the registered-route table and the middleware and
// param-hook lists. All registration happens during a single-goroutine
// setup phase; the tables are read-only while serving.
type Dispatcher struct {
	// routes is the insertion-ordered route table, keyed by
	// "METHOD:normalizedPath". The map detects duplicates; order
	// preserves registration order for the matching scan.
	routes map[string]*Route
	order  []*Route

	// static indexes literal routes for the exact-match fast path.
	// A literal route shadowed by an earlier-registered pattern route
	// of the same method is excluded, preserving registration-order
	// precedence.
	static map[string]*Route

	middleware []middlewareEntry

	// hooks holds one hook per parameter name; hookNames preserves
	// first-registration order for firing.
	hooks     map[string]ParamHookFunc
	hookNames []string
}

// New returns an empty dispatcher ready for registration.
func New() *Dispatcher {
	return &Dispatcher{
		routes: make(map[string]*Route),
		static: make(map[string]*Route),
		hooks:  make(map[string]ParamHookFunc),
	}
}

// Register adds a route for the given method and path. The path is
// normalized before registration. Registering a duplicate (method,
// normalized path) pair returns ErrDuplicateRoute and leaves the
// original route unchanged.
func (d *Dispatcher) Register(method, path string, handler HandlerFunc) error {
	method = strings.ToUpper(method)
	normalized := Normalize(path)
	key := method + ":" + normalized

	if _, exists := d.routes[key]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateRoute, key)
	}

	route := &Route{
		method:     method,
		pattern:    normalized,
		paramNames: ParamNames(normalized),
		matcher:    compilePattern(normalized),
		handler:    handler,
	}

	d.routes[key] = route
	d.order = append(d.order, route)

	if route.static() && !d.shadowed(route) {
		d.static[key] = route
	}

	return nil
}

// shadowed reports whether an earlier-registered pattern route of the
// same method already matches the literal route's exact path. Shadowed
// literals stay out of the fast-path index so the earlier route wins,
// as registration order requires.
func (d *Dispatcher) shadowed(route *Route) bool {
	for _, prev := range d.order {
		if prev == route {
			break
		}
		if prev.method != route.method || prev.static() {
			continue
		}
		if prev.matcher.matches(route.pattern) {
			return true
		}
	}

	return false
}

// Get registers a GET route.
func (d *Dispatcher) Get(path string, handler HandlerFunc) error {
	return d.Register(http.MethodGet, path, handler)
}

// Post registers a POST route.
func (d *Dispatcher) Post(path string, handler HandlerFunc) error {
	return d.Register(http.MethodPost, path, handler)
}

// Put registers a PUT route.
func (d *Dispatcher) Put(path string, handler HandlerFunc) error {
	return d.Register(http.MethodPut, path, handler)
}

// Delete registers a DELETE route.
func (d *Dispatcher) Delete(path string, handler HandlerFunc) error {
	return d.Register(http.MethodDelete, path, handler)
}

// Patch registers a PATCH route.
func (d *Dispatcher) Patch(path string, handler HandlerFunc) error {
	return d.Register(http.MethodPatch, path, handler)
}

// Head registers a HEAD route.
func (d *Dispatcher) Head(path string, handler HandlerFunc) error {
	return d.Register(http.MethodHead, path, handler)
}

// Options registers an OPTIONS route.
func (d *Dispatcher) Options(path string, handler HandlerFunc) error {
	return d.Register(http.MethodOptions, path, handler)
}

// Use appends middleware that runs for every request. Each handler
// becomes an independent entry preserving relative order.
func (d *Dispatcher) Use(mw ...MiddlewareFunc) {
	d.UseOn("*", mw...)
}

// UseOn appends middleware that runs for every request whose normalized
// path matches the given pattern, compiled the same way as route
// patterns. Middleware runs regardless of which route eventually
// matches.
func (d *Dispatcher) UseOn(pathPattern string, mw ...MiddlewareFunc) {
	p := compilePattern(Normalize(pathPattern))

	for _, handler := range mw {
		d.middleware = append(d.middleware, middlewareEntry{pattern: p, handler: handler})
	}
}

// Param associates a hook with a parameter name. Only one hook per name
// is retained: a later registration replaces the earlier handler but
// keeps the name's original position in the firing order.
func (d *Dispatcher) Param(name string, hook ParamHookFunc) {
	if _, exists := d.hooks[name]; !exists {
		d.hookNames = append(d.hookNames, name)
	}

	d.hooks[name] = hook
}

// Match resolves a method and normalized path against the route table.
//
// Resolution order: an exact-string lookup of "METHOD:path" in the
// fast-path index returns immediately with an empty parameter mapping;
// otherwise a linear scan over all registered routes in registration
// order, filtered to the requested method, returns the first route
// whose matcher accepts the path. Overlapping patterns are
// disambiguated purely by registration order, not by specificity.
func (d *Dispatcher) Match(method, path string) (*Match, bool) {
	method = strings.ToUpper(method)

	if route, ok := d.static[method+":"+path]; ok {
		return &Match{Route: route, Handler: route.handler}, true
	}

	for _, route := range d.order {
		if route.method != method {
			continue
		}

		captures, ok := route.matcher.match(path)
		if !ok {
			continue
		}

		var params map[string]string
		if len(route.paramNames) > 0 {
			params = make(map[string]string, len(route.paramNames))
			for i, name := range route.paramNames {
				if i < len(captures) {
					params[name] = captures[i]
				}
			}
		}

		return &Match{Route: route, Handler: route.handler, Params: params}, true
	}

	return nil, false
}

// Lookup is the error-shaped variant of Match. A miss returns
// ErrNotFound wrapped with the method and path, so callers can use
// errors.Is to distinguish the no-result outcome.
func (d *Dispatcher) Lookup(method, path string) (*Match, error) {
	match, ok := d.Match(method, path)
	if !ok {
		return nil, fmt.Errorf("%w: %s %s", ErrNotFound, strings.ToUpper(method), path)
	}

	return match, nil
}

// Dispatch runs the full pipeline for one request: middleware in
// registration order (each may abort), match resolution, param hooks in
// hook-table registration order (each may abort), then the matched
// handler. An unmatched request receives the structured 404 response.
//
// Panics from middleware, hooks, or the handler are not recovered here;
// the caller's outer boundary owns 500 conversion.
func (d *Dispatcher) Dispatch(w http.ResponseWriter, r *http.Request) {
	path := Normalize(r.URL.Path)

	for _, entry := range d.middleware {
		if !entry.pattern.matches(path) {
			continue
		}
		if !entry.handler(w, r) {
			return
		}
	}

	match, err := d.Lookup(r.Method, path)
	if err != nil {
		writeNotFound(w, r.URL.Path)
		return
	}

	r = WithParams(r, match.Params)

	for _, name := range d.hookNames {
		value, bound := match.Params[name]
		if !bound {
			continue
		}
		if !d.hooks[name](w, r, value, name) {
			return
		}
	}

	match.Handler(w, r)
}

// ServeHTTP implements http.Handler so the standard library's network
// layer can own the connection lifecycle and hand each request to
// Dispatch.
func (d *Dispatcher) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	d.Dispatch(w, r)
}
