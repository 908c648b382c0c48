package dispatchhandlers

import "net/http"

// Middleware is a function which receives an http.Handler and returns
// another http.Handler. Used for collaborators that wrap the dispatcher
// from the outside.
type Middleware func(http.Handler) http.Handler

// Chain wraps a handler with the given middleware, outermost first.
func Chain(h http.Handler, mw ...Middleware) http.Handler {
	for i := len(mw) - 1; i >= 0; i-- {
		h = mw[i](h)
	}

	return h
}

// RecoveryConfig configures the Recovery boundary behaviour.
type RecoveryConfig struct {
	// LogFunc is an optional callback invoked with the request and the
	// recovered value when a panic occurs. When nil, no logging is
	// performed.
	LogFunc func(r *http.Request, err any)
}

// Recovery returns the outer error boundary the dispatch core requires:
// panics escaping middleware, param hooks, or handlers are converted
// into 500 Internal Server Error responses here, since the dispatcher
// itself never recovers them.
func Recovery(cfg RecoveryConfig) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					if cfg.LogFunc != nil {
						cfg.LogFunc(r, err)
					}

					http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
