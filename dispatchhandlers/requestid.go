package dispatchhandlers

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

type ridContextKey struct{}

// RequestIDConfig configures the request ID wrapper.
type RequestIDConfig struct {
	// HeaderName is the header carrying the ID on request and response.
	// Defaults to "X-Request-ID" when empty.
	HeaderName string

	// GenerateFunc produces a fresh ID for requests that need one.
	// Defaults to GenerateUUIDv4.
	GenerateFunc func(r *http.Request) string

	// TrustIncoming reuses an ID already present on the incoming request
	// header instead of minting a new one. Off by default: client-supplied
	// IDs are only honored when explicitly opted into.
	TrustIncoming bool
}

// RequestID returns a wrapper that stamps every response with a request
// ID and makes it available to downstream handlers via the request
// header and context. It wraps the dispatcher from the outside, so 404s
// and pipeline-aborted responses carry an ID too.
func RequestID(cfg RequestIDConfig) Middleware {
	header := cfg.HeaderName
	if header == "" {
		header = "X-Request-ID"
	}

	newID := cfg.GenerateFunc
	if newID == nil {
		newID = GenerateUUIDv4
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var id string
			if cfg.TrustIncoming {
				id = r.Header.Get(header)
			}
			if id == "" {
				id = newID(r)
			}

			if id == "" {
				next.ServeHTTP(w, r)
				return
			}

			r.Header.Set(header, id)
			w.Header().Set(header, id)

			ctx := context.WithValue(r.Context(), ridContextKey{}, id)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequestIDFromContext returns the ID RequestID attached to the context,
// or the empty string when the request was not wrapped.
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(ridContextKey{}).(string)

	return id
}

// GenerateUUIDv4 returns a random UUID v4 string (RFC 9562 §5.4).
func GenerateUUIDv4(_ *http.Request) string {
	return uuid.New().String()
}

// GenerateUUIDv7 returns a time-ordered UUID v7 string (RFC 9562 §5.7):
// an ID generated later sorts lexicographically after an earlier one,
// which keeps log searches by ID roughly chronological.
func GenerateUUIDv7(_ *http.Request) string {
	return uuid.Must(uuid.NewV7()).String()
}
