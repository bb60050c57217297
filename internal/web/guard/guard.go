// Package guard реализует обёртки доступа к страницам панели.
// RequireAuth пускает только запросы с живым токеном, RequireGuest — только
// без него. Решение принимается на каждый запрос заново, между запросами
// ничего не сохраняется.
package guard

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/middleware"

	"github.com/magabrotheeeer/barberpro-web/internal/barberapi"
	"github.com/magabrotheeeer/barberpro-web/internal/lib/sl"
	"github.com/magabrotheeeer/barberpro-web/internal/lib/token"
	"github.com/magabrotheeeer/barberpro-web/internal/session"
)

// Loader загружает данные страницы через клиент удалённого API.
type Loader func(r *http.Request, api barberapi.API) (any, error)

// Result — решение guard-обёртки: либо редирект, либо данные для отрисовки.
type Result struct {
	RedirectTo string
	Props      any
}

// Guard принимает решения о доступе на основе cookie-сессии.
type Guard struct {
	log     *slog.Logger
	session *session.Store
	factory session.Factory
	now     func() time.Time
}

// New создает Guard поверх хранилища сессии и фабрики клиентов API.
func New(log *slog.Logger, store *session.Store, factory session.Factory) *Guard {
	return &Guard{
		log:     log,
		session: store,
		factory: factory,
		now:     time.Now,
	}
}

// RequireAuth выполняет loader только при живой сессии.
// Без токена или с истёкшим токеном loader не запускается, запрос уходит
// на страницу входа. Ошибка аутентификации из loader стирает cookie;
// любая другая ошибка уводит на /dashboard.
func (g *Guard) RequireAuth(w http.ResponseWriter, r *http.Request, loader Loader) Result {
	const op = "guard.RequireAuth"

	log := g.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	tok, err := g.session.Token(r)
	if err != nil {
		return Result{RedirectTo: "/login"}
	}
	if token.Expired(tok, g.now()) {
		g.session.SignOut(w)
		return Result{RedirectTo: "/login"}
	}

	props, err := loader(r, g.factory(tok))
	if err != nil {
		if barberapi.IsAuthError(err) {
			log.Warn("token rejected by remote api", sl.Err(err))
			g.session.SignOut(w)
			return Result{RedirectTo: "/login"}
		}
		log.Error("page loader failed", sl.Err(err))
		return Result{RedirectTo: "/dashboard"}
	}
	return Result{Props: props}
}

// RequireGuest выполняет loader только без живой сессии.
// Запрос с живым токеном уходит на /dashboard, истёкший токен стирается
// из cookie и считается отсутствием сессии. Ошибка loader не блокирует
// страницу: гостевые страницы отрисовываются и с пустыми данными.
func (g *Guard) RequireGuest(w http.ResponseWriter, r *http.Request, loader Loader) Result {
	const op = "guard.RequireGuest"

	if tok, err := g.session.Token(r); err == nil {
		if !token.Expired(tok, g.now()) {
			return Result{RedirectTo: "/dashboard"}
		}
		g.session.SignOut(w)
	}

	if loader == nil {
		return Result{}
	}

	props, err := loader(r, g.factory(""))
	if err != nil {
		g.log.Error("guest page loader failed",
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
			sl.Err(err))
		return Result{}
	}
	return Result{Props: props}
}
