package dispatchhandlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voralek/relay/dispatch"
)

func TestCORS(t *testing.T) {
	t.Run("wildcard with credentials is rejected", func(t *testing.T) {
		_, err := CORS(CORSConfig{
			AllowedOrigins:   []string{"*"},
			AllowCredentials: true,
		})
		assert.ErrorIs(t, err, ErrWildcardCredentials)
	})

	t.Run("multiple wildcards in a pattern are rejected", func(t *testing.T) {
		_, err := CORS(CORSConfig{AllowedOrigins: []string{"https://*.*.example.com"}})
		assert.Error(t, err)
	})

	t.Run("request without origin passes untouched", func(t *testing.T) {
		mw, err := CORS(CORSConfig{AllowedOrigins: []string{"https://example.com"}})
		require.NoError(t, err)

		w := httptest.NewRecorder()
		cont := mw(w, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.True(t, cont)
		assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("disallowed origin gets no headers", func(t *testing.T) {
		mw, err := CORS(CORSConfig{AllowedOrigins: []string{"https://example.com"}})
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Origin", "https://evil.test")

		w := httptest.NewRecorder()
		cont := mw(w, req)

		assert.True(t, cont)
		assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("allowed origin on actual request", func(t *testing.T) {
		mw, err := CORS(CORSConfig{
			AllowedOrigins: []string{"https://example.com"},
			ExposeHeaders:  []string{"X-Total-Count"},
		})
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Origin", "https://example.com")

		w := httptest.NewRecorder()
		cont := mw(w, req)

		assert.True(t, cont)
		assert.Equal(t, "https://example.com", w.Header().Get("Access-Control-Allow-Origin"))
		assert.Equal(t, "X-Total-Count", w.Header().Get("Access-Control-Expose-Headers"))
	})

	t.Run("wildcard origin without credentials reflects star", func(t *testing.T) {
		mw, err := CORS(CORSConfig{AllowedOrigins: []string{"*"}})
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Origin", "https://anything.test")

		w := httptest.NewRecorder()
		mw(w, req)
		assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("subdomain wildcard pattern matches", func(t *testing.T) {
		mw, err := CORS(CORSConfig{AllowedOrigins: []string{"https://*.example.com"}})
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Origin", "https://api.example.com")

		w := httptest.NewRecorder()
		mw(w, req)
		assert.Equal(t, "https://api.example.com", w.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("preflight aborts the pipeline with 204", func(t *testing.T) {
		mw, err := CORS(CORSConfig{
			AllowedOrigins: []string{"https://example.com"},
			AllowedHeaders: []string{"Content-Type"},
			MaxAge:         600,
		})
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodOptions, "/anything", nil)
		req.Header.Set("Origin", "https://example.com")
		req.Header.Set("Access-Control-Request-Method", http.MethodPost)

		w := httptest.NewRecorder()
		cont := mw(w, req)

		assert.False(t, cont)
		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), http.MethodPost)
		assert.Equal(t, "Content-Type", w.Header().Get("Access-Control-Allow-Headers"))
		assert.Equal(t, "600", w.Header().Get("Access-Control-Max-Age"))
	})

	t.Run("preflight short-circuits the dispatcher", func(t *testing.T) {
		d := dispatch.New()
		mw, err := CORS(CORSConfig{AllowedOrigins: []string{"https://example.com"}})
		require.NoError(t, err)
		d.Use(mw)

		handlerRan := false
		require.NoError(t, d.Post("/users", func(_ http.ResponseWriter, _ *http.Request) {
			handlerRan = true
		}))

		req := httptest.NewRequest(http.MethodOptions, "/users", nil)
		req.Header.Set("Origin", "https://example.com")
		req.Header.Set("Access-Control-Request-Method", http.MethodPost)

		w := httptest.NewRecorder()
		d.Dispatch(w, req)

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Empty(t, w.Body.String(), "no 404 body after preflight abort")
		assert.False(t, handlerRan)
	})

	t.Run("dynamic origin callback", func(t *testing.T) {
		mw, err := CORS(CORSConfig{
			AllowOriginFunc: func(origin string) bool { return origin == "https://dynamic.test" },
		})
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Origin", "https://dynamic.test")

		w := httptest.NewRecorder()
		mw(w, req)
		assert.Equal(t, "https://dynamic.test", w.Header().Get("Access-Control-Allow-Origin"))
	})
}
