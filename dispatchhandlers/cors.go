package dispatchhandlers

import (
	"errors"
	"net/http"
	"slices"
	"strconv"
	"strings"

	"github.com/voralek/relay/dispatch"
)

// ErrWildcardCredentials is returned when AllowedOrigins contains "*"
// and AllowCredentials is true. Use AllowOriginFunc for dynamic origin
// checks with credentials.
var ErrWildcardCredentials = errors.New("wildcard origin \"*\" cannot be used with AllowCredentials; use AllowOriginFunc instead")

// CORSConfig configures the CORS middleware behaviour.
//
// Spec references:
//   - CORS protocol: https://fetch.spec.whatwg.org/#http-cors-protocol
//   - Web Origin:    https://www.rfc-editor.org/rfc/rfc6454
type CORSConfig struct {
	// AllowedOrigins is a list of exact origin strings, "*" for
	// wildcard, or subdomain wildcard patterns like
	// "https://*.example.com".
	AllowedOrigins []string

	// AllowOriginFunc is an optional dynamic callback invoked when the
	// origin does not match any entry in AllowedOrigins. Return true to
	// allow.
	AllowOriginFunc func(origin string) bool

	// AllowedMethods lists the methods advertised in preflight
	// responses. Defaults to GET, POST, PUT, PATCH, DELETE, OPTIONS.
	AllowedMethods []string

	// AllowedHeaders lists the headers the client may send in the
	// actual request. When empty, the Access-Control-Request-Headers
	// value from the preflight request is reflected.
	AllowedHeaders []string

	// ExposeHeaders lists the headers the browser may expose to client
	// code.
	ExposeHeaders []string

	// AllowCredentials sets Access-Control-Allow-Credentials: true.
	// Per the Fetch Standard, "*" cannot be used as Allow-Origin when
	// credentials are enabled; CORS returns ErrWildcardCredentials.
	AllowCredentials bool

	// MaxAge is the duration in seconds a preflight result may be
	// cached. Positive values are sent as-is, zero omits the header.
	MaxAge int
}

// wildcardPattern represents a subdomain wildcard pattern split at "*".
type wildcardPattern struct {
	prefix string
	suffix string
}

// parseOrigins normalizes AllowedOrigins to lowercase and splits them
// into exact matches and wildcard patterns. Returns an error if a
// pattern contains multiple wildcards.
func parseOrigins(origins []string) ([]string, []wildcardPattern, error) {
	var exact []string
	var patterns []wildcardPattern

	for _, o := range origins {
		if o == "*" {
			exact = append(exact, o)
			continue
		}

		lower := strings.ToLower(o)

		if strings.Contains(lower, "*") {
			parts := strings.SplitN(lower, "*", 2)
			if strings.Contains(parts[1], "*") {
				return nil, nil, errors.New("origin pattern contains multiple wildcards: " + o)
			}

			patterns = append(patterns, wildcardPattern{prefix: parts[0], suffix: parts[1]})
		} else {
			exact = append(exact, lower)
		}
	}

	return exact, patterns, nil
}

// matchOrigin reports whether originLower matches any exact origin or
// wildcard pattern.
func matchOrigin(originLower string, exact []string, patterns []wildcardPattern) bool {
	for _, o := range exact {
		if o == "*" || o == originLower {
			return true
		}
	}

	for _, wp := range patterns {
		if len(originLower) >= len(wp.prefix)+len(wp.suffix) &&
			strings.HasPrefix(originLower, wp.prefix) &&
			strings.HasSuffix(originLower, wp.suffix) {
			return true
		}
	}

	return false
}

// CORS returns a pipeline middleware implementing the CORS protocol per
// the Fetch Standard. It validates the Origin header, sets response
// headers for allowed origins, and answers preflight OPTIONS requests
// itself: a preflight reply aborts the pipeline (the middleware has
// written the complete response), so no route handler runs.
//
// It returns an error if the configuration is invalid (wildcard origin
// combined with AllowCredentials, or a malformed origin pattern).
func CORS(cfg CORSConfig) (dispatch.MiddlewareFunc, error) {
	hasWildcard := slices.Contains(cfg.AllowedOrigins, "*")

	if hasWildcard && cfg.AllowCredentials {
		return nil, ErrWildcardCredentials
	}

	exactOrigins, wildcardPatterns, err := parseOrigins(cfg.AllowedOrigins)
	if err != nil {
		return nil, err
	}

	methods := cfg.AllowedMethods
	if len(methods) == 0 {
		methods = []string{
			http.MethodGet, http.MethodPost, http.MethodPut,
			http.MethodPatch, http.MethodDelete, http.MethodOptions,
		}
	}
	allowMethods := strings.Join(methods, ",")

	isAllowed := func(originLower, rawOrigin string) bool {
		if matchOrigin(originLower, exactOrigins, wildcardPatterns) {
			return true
		}

		if cfg.AllowOriginFunc != nil {
			return cfg.AllowOriginFunc(rawOrigin)
		}

		return false
	}

	return func(w http.ResponseWriter, r *http.Request) bool {
		rawOrigin := r.Header.Get("Origin")
		if rawOrigin == "" {
			return true
		}

		if !isAllowed(strings.ToLower(rawOrigin), rawOrigin) {
			return true
		}

		if hasWildcard && !cfg.AllowCredentials {
			w.Header().Set("Access-Control-Allow-Origin", "*")
		} else {
			w.Header().Set("Access-Control-Allow-Origin", rawOrigin)
			w.Header().Add("Vary", "Origin")
		}

		if cfg.AllowCredentials {
			w.Header().Set("Access-Control-Allow-Credentials", "true")
		}

		if r.Method == http.MethodOptions && r.Header.Get("Access-Control-Request-Method") != "" {
			w.Header().Set("Access-Control-Allow-Methods", allowMethods)

			if len(cfg.AllowedHeaders) > 0 {
				w.Header().Set("Access-Control-Allow-Headers", strings.Join(cfg.AllowedHeaders, ","))
			} else if reqHeaders := r.Header.Get("Access-Control-Request-Headers"); reqHeaders != "" {
				w.Header().Set("Access-Control-Allow-Headers", reqHeaders)
			}

			if cfg.MaxAge > 0 {
				w.Header().Set("Access-Control-Max-Age", strconv.Itoa(cfg.MaxAge))
			}

			w.Header().Add("Vary", "Access-Control-Request-Method")
			w.Header().Add("Vary", "Access-Control-Request-Headers")
			w.WriteHeader(http.StatusNoContent)

			return false
		}

		if len(cfg.ExposeHeaders) > 0 {
			w.Header().Set("Access-Control-Expose-Headers", strings.Join(cfg.ExposeHeaders, ","))
		}

		return true
	}, nil
}
