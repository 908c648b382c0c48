// Package dispatch implements a minimal HTTP request dispatcher: it
// registers handlers against (method, path pattern) pairs, matches
// incoming requests against those patterns, extracts path parameters,
// and runs a chain of middleware and per-parameter hooks before
// invoking the matched handler.
//
// # Dispatcher
//
// Create a dispatcher, register routes during setup, then serve:
//
//	d := dispatch.New()
//	d.Get("/users/:id", userHandler)
//	http.ListenAndServe(":8080", d)
//
// Route paths are normalized before registration and matching: a leading
// slash is enforced and a single trailing slash is stripped (except for
// the root path "/"). Registering the same (method, normalized path)
// pair twice returns ErrDuplicateRoute; this is a setup error and must
// not be ignored.
//
// # Path Patterns
//
// A segment beginning with a colon declares a named parameter matching
// one or more characters excluding "/":
//
//	d.Get("/articles/:category/:id", articleHandler)
//
// A bare "*" segment matches any remainder, including slashes:
//
//	d.Get("/files/*", filesHandler)
//
// Parameter values are extracted into the request context and read with
// Params or ParamValue:
//
//	id, ok := dispatch.ParamValue(r, "id")
//
// # Match Resolution
//
// Literal paths resolve through an exact-key fast path. Everything else
// is a linear scan over the route table in registration order: the first
// route whose compiled matcher accepts the path wins. Overlapping
// patterns are disambiguated purely by registration order, never by
// specificity, so catch-all routes must be registered last.
//
// Match reports a miss as a boolean; Lookup is the error-shaped variant
// returning ErrNotFound, usable with errors.Is.
//
// # Middleware
//
// Middleware runs before matching, in registration order, for every
// request whose path matches the middleware's pattern (all paths when
// registered with Use):
//
//	d.Use(func(w http.ResponseWriter, r *http.Request) bool {
//	    w.Header().Set("X-Frame-Options", "DENY")
//	    return true
//	})
//	d.UseOn("/api/*", apiAuth)
//
// A middleware returns a continuation signal: false stops the pipeline
// immediately. No further middleware, no param hooks, and no route
// handler run, and no fallback response is generated; the aborting
// middleware is expected to have written a complete response (a CORS
// preflight reply, a rate-limit rejection).
//
// # Param Hooks
//
// A hook bound to a parameter name runs once per request when that name
// is present in the match result, after all middleware and before the
// handler:
//
//	d.Param("id", func(w http.ResponseWriter, r *http.Request, value, name string) bool {
//	    return validateID(value)
//	})
//
// Only one hook per name is retained; a later registration replaces the
// earlier one. Hooks fire sequentially in hook-table registration order
// and may abort the pipeline by returning false.
//
// # Not Found
//
// An unmatched request receives status 404 with Content-Type
// application/json and the body
//
//	{"error":"Not Found","message":"Route <path> not found"}
//
// Field order and key names are part of the contract.
//
// # Failure Semantics
//
// A panic raised by a middleware, hook, or handler is not recovered
// here; it propagates to the caller. Wrap the dispatcher with an outer
// error boundary (see the dispatchhandlers package) to convert panics
// into 500 responses. The dispatcher has no timeout or cancellation of
// its own; those belong to the network layer.
//
// # Concurrency
//
// The route table, middleware list, and param-hook table are populated
// during a single-goroutine setup phase before serving begins and are
// read-only afterwards, so concurrent request dispatch needs no
// synchronization.
package dispatch
