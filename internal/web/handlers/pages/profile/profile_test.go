package profile_test

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/barberpro-web/internal/barberapi"
	"github.com/magabrotheeeer/barberpro-web/internal/config"
	"github.com/magabrotheeeer/barberpro-web/internal/models"
	"github.com/magabrotheeeer/barberpro-web/internal/session"
	"github.com/magabrotheeeer/barberpro-web/internal/web/flash"
	"github.com/magabrotheeeer/barberpro-web/internal/web/handlers/pages/profile"
	"github.com/magabrotheeeer/barberpro-web/internal/web/render"
)

const cookieName = "barber_token"

func newHandler(t *testing.T, api barberapi.API) *profile.Handler {
	t.Helper()

	log := slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
	cfg := config.Session{CookieName: cookieName, TokenTTL: 720 * time.Hour, SecretKey: "test-secret"}
	factory := func(token string) barberapi.API { return api }

	store := session.New(cfg, log, factory)
	flashes := flash.New(log, "test-secret", false)
	renderer, err := render.New(log, flashes)
	require.NoError(t, err)

	return profile.New(log, renderer, store, factory, flashes)
}

func signedToken(t *testing.T, exp time.Time) string {
	t.Helper()

	claims := jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(exp)}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return signed
}

func clearedCookie(w *httptest.ResponseRecorder) bool {
	for _, c := range w.Result().Cookies() {
		if c.Name == cookieName && c.MaxAge == -1 {
			return true
		}
	}
	return false
}

func TestShow(t *testing.T) {
	t.Run("no session redirects to login", func(t *testing.T) {
		api := new(barberapi.Mock)
		h := newHandler(t, api)

		w := httptest.NewRecorder()
		h.Show(w, httptest.NewRequest(http.MethodGet, "/profile", nil))

		assert.Equal(t, http.StatusSeeOther, w.Code)
		assert.Equal(t, "/login", w.Header().Get("Location"))
		api.AssertNotCalled(t, "Me")
	})

	t.Run("expired token cleans cookie without remote call", func(t *testing.T) {
		api := new(barberapi.Mock)
		h := newHandler(t, api)

		r := httptest.NewRequest(http.MethodGet, "/profile", nil)
		r.AddCookie(&http.Cookie{Name: cookieName, Value: signedToken(t, time.Now().Add(-time.Hour))})
		w := httptest.NewRecorder()
		h.Show(w, r)

		assert.Equal(t, http.StatusSeeOther, w.Code)
		assert.Equal(t, "/login", w.Header().Get("Location"))
		assert.True(t, clearedCookie(w))
		api.AssertNotCalled(t, "Me")
	})

	t.Run("token rejected by remote api cleans cookie", func(t *testing.T) {
		api := new(barberapi.Mock)
		api.On("Me", mock.Anything).Return(nil, &barberapi.APIError{Status: http.StatusUnauthorized})
		h := newHandler(t, api)

		r := httptest.NewRequest(http.MethodGet, "/profile", nil)
		r.AddCookie(&http.Cookie{Name: cookieName, Value: signedToken(t, time.Now().Add(time.Hour))})
		w := httptest.NewRecorder()
		h.Show(w, r)

		assert.Equal(t, http.StatusSeeOther, w.Code)
		assert.Equal(t, "/login", w.Header().Get("Location"))
		assert.True(t, clearedCookie(w))
	})

	t.Run("remote failure redirects to dashboard", func(t *testing.T) {
		api := new(barberapi.Mock)
		api.On("Me", mock.Anything).Return(nil, &barberapi.APIError{Status: http.StatusInternalServerError})
		h := newHandler(t, api)

		r := httptest.NewRequest(http.MethodGet, "/profile", nil)
		r.AddCookie(&http.Cookie{Name: cookieName, Value: signedToken(t, time.Now().Add(time.Hour))})
		w := httptest.NewRecorder()
		h.Show(w, r)

		assert.Equal(t, http.StatusSeeOther, w.Code)
		assert.Equal(t, "/dashboard", w.Header().Get("Location"))
		assert.False(t, clearedCookie(w))
	})

	t.Run("renders user data", func(t *testing.T) {
		api := new(barberapi.Mock)
		api.On("Me", mock.Anything).Return(&models.Me{
			User:          models.User{ID: "u1", Name: "Barbearia do Zé", Endereco: "Rua 1"},
			Subscriptions: &models.Subscription{ID: "sub1", Status: models.SubscriptionActive},
		}, nil)
		h := newHandler(t, api)

		r := httptest.NewRequest(http.MethodGet, "/profile", nil)
		r.AddCookie(&http.Cookie{Name: cookieName, Value: signedToken(t, time.Now().Add(time.Hour))})
		w := httptest.NewRecorder()
		h.Show(w, r)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Barbearia do Zé")
		assert.Contains(t, w.Body.String(), "Premium")
	})
}

func TestSubmit(t *testing.T) {
	t.Run("empty name skips remote call", func(t *testing.T) {
		api := new(barberapi.Mock)
		h := newHandler(t, api)

		r := httptest.NewRequest(http.MethodPost, "/profile",
			strings.NewReader(url.Values{"name": {""}, "endereco": {"Rua 1"}}.Encode()))
		r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		r.AddCookie(&http.Cookie{Name: cookieName, Value: signedToken(t, time.Now().Add(time.Hour))})
		w := httptest.NewRecorder()
		h.Submit(w, r)

		assert.Equal(t, http.StatusSeeOther, w.Code)
		assert.Equal(t, "/profile", w.Header().Get("Location"))
		api.AssertNotCalled(t, "UpdateUser")
	})

	t.Run("success updates user", func(t *testing.T) {
		api := new(barberapi.Mock)
		api.On("UpdateUser", mock.Anything, "Barbearia do Zé", "Rua 1").Return(nil)
		h := newHandler(t, api)

		r := httptest.NewRequest(http.MethodPost, "/profile",
			strings.NewReader(url.Values{"name": {"Barbearia do Zé"}, "endereco": {"Rua 1"}}.Encode()))
		r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		r.AddCookie(&http.Cookie{Name: cookieName, Value: signedToken(t, time.Now().Add(time.Hour))})
		w := httptest.NewRecorder()
		h.Submit(w, r)

		assert.Equal(t, http.StatusSeeOther, w.Code)
		assert.Equal(t, "/profile", w.Header().Get("Location"))
		api.AssertExpectations(t)
	})
}
