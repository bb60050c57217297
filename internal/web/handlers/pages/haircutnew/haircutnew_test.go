package haircutnew_test

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
	"github.com/magabrotheeeer/barberpro-web/internal/web/guard"
	"github.com/magabrotheeeer/barberpro-web/internal/web/handlers/pages/haircutnew"
	"github.com/magabrotheeeer/barberpro-web/internal/web/render"
)

const cookieName = "barber_token"

func newHandler(t *testing.T, api barberapi.API) *haircutnew.Handler {
	t.Helper()

	log := slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
	cfg := config.Session{CookieName: cookieName, TokenTTL: 720 * time.Hour, SecretKey: "test-secret"}
	factory := func(token string) barberapi.API { return api }

	store := session.New(cfg, log, factory)
	flashes := flash.New(log, "test-secret", false)
	renderer, err := render.New(log, flashes)
	require.NoError(t, err)

	return haircutnew.New(log, renderer, guard.New(log, store, factory), store, factory, flashes)
}

func signedToken(t *testing.T, exp time.Time) string {
	t.Helper()

	claims := jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(exp)}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return signed
}

func postForm(t *testing.T, h *haircutnew.Handler, form url.Values) *httptest.ResponseRecorder {
	t.Helper()

	r := httptest.NewRequest(http.MethodPost, "/haircuts/new", strings.NewReader(form.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	r.AddCookie(&http.Cookie{Name: cookieName, Value: signedToken(t, time.Now().Add(time.Hour))})
	w := httptest.NewRecorder()
	h.Submit(w, r)
	return w
}

func TestShow(t *testing.T) {
	t.Run("free plan at limit renders notice", func(t *testing.T) {
		api := new(barberapi.Mock)
		api.On("CheckSubscription", mock.Anything).Return(nil, nil)
		api.On("CountHaircuts", mock.Anything).Return(3, nil)
		h := newHandler(t, api)

		r := httptest.NewRequest(http.MethodGet, "/haircuts/new", nil)
		r.AddCookie(&http.Cookie{Name: cookieName, Value: signedToken(t, time.Now().Add(time.Hour))})
		w := httptest.NewRecorder()
		h.Show(w, r)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Você atingiu seu limite de cortes.")
	})

	t.Run("premium plan never hits the limit", func(t *testing.T) {
		api := new(barberapi.Mock)
		api.On("CheckSubscription", mock.Anything).
			Return(&models.Subscription{ID: "sub1", Status: models.SubscriptionActive}, nil)
		h := newHandler(t, api)

		r := httptest.NewRequest(http.MethodGet, "/haircuts/new", nil)
		r.AddCookie(&http.Cookie{Name: cookieName, Value: signedToken(t, time.Now().Add(time.Hour))})
		w := httptest.NewRecorder()
		h.Show(w, r)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.NotContains(t, w.Body.String(), "Você atingiu seu limite de cortes.")
		api.AssertNotCalled(t, "CountHaircuts")
	})
}

func TestSubmit(t *testing.T) {
	t.Run("empty fields skip remote call", func(t *testing.T) {
		api := new(barberapi.Mock)
		h := newHandler(t, api)

		w := postForm(t, h, url.Values{"name": {""}, "price": {""}})

		assert.Equal(t, http.StatusSeeOther, w.Code)
		assert.Equal(t, "/haircuts/new", w.Header().Get("Location"))
		api.AssertNotCalled(t, "CreateHaircut")
		api.AssertNotCalled(t, "CheckSubscription")
	})

	t.Run("free plan at limit redirects to planos", func(t *testing.T) {
		api := new(barberapi.Mock)
		api.On("CheckSubscription", mock.Anything).Return(nil, nil)
		api.On("CountHaircuts", mock.Anything).Return(3, nil)
		h := newHandler(t, api)

		w := postForm(t, h, url.Values{"name": {"Corte Completo"}, "price": {"59.90"}})

		assert.Equal(t, http.StatusSeeOther, w.Code)
		assert.Equal(t, "/planos", w.Header().Get("Location"))
		api.AssertNotCalled(t, "CreateHaircut")
	})

	t.Run("success creates haircut", func(t *testing.T) {
		api := new(barberapi.Mock)
		api.On("CheckSubscription", mock.Anything).Return(nil, nil)
		api.On("CountHaircuts", mock.Anything).Return(1, nil)
		api.On("CreateHaircut", mock.Anything, "Corte Completo", 59.9).Return(nil)
		h := newHandler(t, api)

		w := postForm(t, h, url.Values{"name": {"Corte Completo"}, "price": {"59,90"}})

		assert.Equal(t, http.StatusSeeOther, w.Code)
		assert.Equal(t, "/haircuts", w.Header().Get("Location"))
		api.AssertExpectations(t)
	})
}
