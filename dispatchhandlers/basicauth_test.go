package dispatchhandlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBasicAuth(t *testing.T) {
	t.Run("requires an auth source", func(t *testing.T) {
		_, err := BasicAuth(BasicAuthConfig{})
		assert.ErrorIs(t, err, ErrNoAuthSource)
	})

	t.Run("missing credentials abort with 401", func(t *testing.T) {
		mw, err := BasicAuth(BasicAuthConfig{Credentials: map[string]string{"admin": "secret"}})
		require.NoError(t, err)

		w := httptest.NewRecorder()
		cont := mw(w, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.False(t, cont)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, `Basic realm="Restricted"`, w.Header().Get("WWW-Authenticate"))
	})

	t.Run("valid static credentials continue", func(t *testing.T) {
		mw, err := BasicAuth(BasicAuthConfig{Credentials: map[string]string{"admin": "secret"}})
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.SetBasicAuth("admin", "secret")

		assert.True(t, mw(httptest.NewRecorder(), req))
	})

	t.Run("wrong password aborts", func(t *testing.T) {
		mw, err := BasicAuth(BasicAuthConfig{Credentials: map[string]string{"admin": "secret"}})
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.SetBasicAuth("admin", "wrong")

		w := httptest.NewRecorder()
		assert.False(t, mw(w, req))
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("unknown user aborts", func(t *testing.T) {
		mw, err := BasicAuth(BasicAuthConfig{Credentials: map[string]string{"admin": "secret"}})
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.SetBasicAuth("ghost", "secret")

		w := httptest.NewRecorder()
		assert.False(t, mw(w, req))
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("validate func takes priority", func(t *testing.T) {
		mw, err := BasicAuth(BasicAuthConfig{
			ValidateFunc: func(username, password string) bool {
				return username == "svc" && password == "token"
			},
			Credentials: map[string]string{"admin": "secret"},
		})
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.SetBasicAuth("svc", "token")
		assert.True(t, mw(httptest.NewRecorder(), req))

		req = httptest.NewRequest(http.MethodGet, "/", nil)
		req.SetBasicAuth("admin", "secret")
		assert.False(t, mw(httptest.NewRecorder(), req))
	})

	t.Run("custom realm", func(t *testing.T) {
		mw, err := BasicAuth(BasicAuthConfig{
			Realm:       "Admin Area",
			Credentials: map[string]string{"admin": "secret"},
		})
		require.NoError(t, err)

		w := httptest.NewRecorder()
		mw(w, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, `Basic realm="Admin Area"`, w.Header().Get("WWW-Authenticate"))
	})
}
