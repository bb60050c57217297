package guard_test

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/barberpro-web/internal/barberapi"
	"github.com/magabrotheeeer/barberpro-web/internal/config"
	"github.com/magabrotheeeer/barberpro-web/internal/session"
	"github.com/magabrotheeeer/barberpro-web/internal/web/guard"
)

const cookieName = "barber_token"

func newGuard() *guard.Guard {
	log := slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
	cfg := config.Session{
		CookieName: cookieName,
		TokenTTL:   720 * time.Hour,
		SecretKey:  "test-secret",
	}
	factory := func(token string) barberapi.API { return new(barberapi.Mock) }
	store := session.New(cfg, log, factory)
	return guard.New(log, store, factory)
}

func signedToken(t *testing.T, exp time.Time) string {
	t.Helper()

	claims := jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(exp)}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return signed
}

func requestWithToken(token string) *http.Request {
	r := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	if token != "" {
		r.AddCookie(&http.Cookie{Name: cookieName, Value: token})
	}
	return r
}

func clearedCookie(w *httptest.ResponseRecorder) bool {
	for _, c := range w.Result().Cookies() {
		if c.Name == cookieName && c.MaxAge == -1 {
			return true
		}
	}
	return false
}

func TestRequireAuth(t *testing.T) {
	liveToken := signedToken(t, time.Now().Add(time.Hour))
	expiredToken := signedToken(t, time.Now().Add(-time.Hour))

	tests := []struct {
		name           string
		token          string
		loaderProps    any
		loaderErr      error
		wantRedirect   string
		wantLoaderRun  bool
		wantCookieGone bool
	}{
		{
			name:         "no token redirects to login",
			token:        "",
			wantRedirect: "/login",
		},
		{
			name:           "expired token redirects to login",
			token:          expiredToken,
			wantRedirect:   "/login",
			wantCookieGone: true,
		},
		{
			name:          "live token runs loader",
			token:         liveToken,
			loaderProps:   "props",
			wantLoaderRun: true,
		},
		{
			name:           "auth error from loader expires cookie",
			token:          liveToken,
			loaderErr:      &barberapi.APIError{Status: http.StatusUnauthorized},
			wantRedirect:   "/login",
			wantLoaderRun:  true,
			wantCookieGone: true,
		},
		{
			name:          "other loader error falls back to dashboard",
			token:         liveToken,
			loaderErr:     errors.New("remote api unreachable"),
			wantRedirect:  "/dashboard",
			wantLoaderRun: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newGuard()
			w := httptest.NewRecorder()

			var loaderRan bool
			res := g.RequireAuth(w, requestWithToken(tt.token), func(_ *http.Request, _ barberapi.API) (any, error) {
				loaderRan = true
				return tt.loaderProps, tt.loaderErr
			})

			assert.Equal(t, tt.wantRedirect, res.RedirectTo)
			assert.Equal(t, tt.wantLoaderRun, loaderRan)
			assert.Equal(t, tt.wantCookieGone, clearedCookie(w))
			if tt.wantRedirect == "" {
				assert.Equal(t, tt.loaderProps, res.Props)
			} else {
				assert.Nil(t, res.Props)
			}
		})
	}
}

func TestRequireGuest(t *testing.T) {
	liveToken := signedToken(t, time.Now().Add(time.Hour))
	expiredToken := signedToken(t, time.Now().Add(-time.Hour))

	t.Run("live token redirects to dashboard", func(t *testing.T) {
		g := newGuard()

		var loaderRan bool
		res := g.RequireGuest(httptest.NewRecorder(), requestWithToken(liveToken), func(_ *http.Request, _ barberapi.API) (any, error) {
			loaderRan = true
			return nil, nil
		})

		assert.Equal(t, "/dashboard", res.RedirectTo)
		assert.False(t, loaderRan)
	})

	t.Run("expired token is treated as guest and cookie is cleaned", func(t *testing.T) {
		g := newGuard()
		w := httptest.NewRecorder()

		res := g.RequireGuest(w, requestWithToken(expiredToken), func(_ *http.Request, _ barberapi.API) (any, error) {
			return "props", nil
		})

		assert.Empty(t, res.RedirectTo)
		assert.Equal(t, "props", res.Props)
		assert.True(t, clearedCookie(w))
	})

	t.Run("nil loader renders empty props", func(t *testing.T) {
		g := newGuard()

		res := g.RequireGuest(httptest.NewRecorder(), requestWithToken(""), nil)
		assert.Empty(t, res.RedirectTo)
		assert.Nil(t, res.Props)
	})

	t.Run("loader error degrades to empty props", func(t *testing.T) {
		g := newGuard()

		res := g.RequireGuest(httptest.NewRecorder(), requestWithToken(""), func(_ *http.Request, _ barberapi.API) (any, error) {
			return nil, errors.New("remote api unreachable")
		})

		assert.Empty(t, res.RedirectTo)
		assert.Nil(t, res.Props)
	})
}
