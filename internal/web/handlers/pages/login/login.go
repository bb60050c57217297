// Package login реализует страницу входа владельца барбершопа.
//
// GET отрисовывает форму, POST обменивает учётные данные на токен
// через хранилище сессии. Пустые поля не порождают сетевой запрос,
// попытки входа ограничиваются счётчиком в redis.
package login

import (
	"errors"
	"log/slog"
	"net"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/barberpro-web/internal/barberapi"
	"github.com/magabrotheeeer/barberpro-web/internal/lib/sl"
	"github.com/magabrotheeeer/barberpro-web/internal/session"
	"github.com/magabrotheeeer/barberpro-web/internal/web/flash"
	"github.com/magabrotheeeer/barberpro-web/internal/web/guard"
	"github.com/magabrotheeeer/barberpro-web/internal/web/middlewarectx"
	"github.com/magabrotheeeer/barberpro-web/internal/web/render"
)

// Props — данные шаблона login.html.
type Props struct {
	Email string
}

// Handler обрабатывает запросы страницы входа.
type Handler struct {
	log      *slog.Logger
	render   *render.Renderer
	guard    *guard.Guard
	session  *session.Store
	flash    *flash.Store
	limiter  *middlewarectx.LoginLimiter
	validate *validator.Validate
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, renderer *render.Renderer, g *guard.Guard,
	store *session.Store, flashes *flash.Store, limiter *middlewarectx.LoginLimiter) *Handler {
	return &Handler{
		log:      log,
		render:   renderer,
		guard:    g,
		session:  store,
		flash:    flashes,
		limiter:  limiter,
		validate: validator.New(),
	}
}

// Show отрисовывает форму входа.
func (h *Handler) Show(w http.ResponseWriter, r *http.Request) {
	res := h.guard.RequireGuest(w, r, func(_ *http.Request, _ barberapi.API) (any, error) {
		return Props{}, nil
	})
	if res.RedirectTo != "" {
		http.Redirect(w, r, res.RedirectTo, http.StatusSeeOther)
		return
	}
	h.render.HTML(w, r, "login.html", "BarberPRO - Faça login para acessar", res.Props)
}

// Submit обрабатывает отправку формы входа.
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.pages.login"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	if res := h.guard.RequireGuest(w, r, nil); res.RedirectTo != "" {
		http.Redirect(w, r, res.RedirectTo, http.StatusSeeOther)
		return
	}

	if err := r.ParseForm(); err != nil {
		log.Error("failed to parse form", sl.Err(err))
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	creds := session.Credentials{
		Email:    r.PostFormValue("email"),
		Password: r.PostFormValue("password"),
	}

	// Непройденная валидация не считается попыткой входа:
	// счётчик попыток ведётся только для полностью заполненной формы.
	if err := h.validate.Struct(creds); err != nil {
		h.flash.Notify(w, r, "warning", "Ops, ...verifique!", "Revise todos os campos não preenchidos!")
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	if !h.limiter.Allow(creds.Email, clientIP(r)) {
		log.Warn("login attempt limit reached", slog.String("email", creds.Email))
		h.flash.Notify(w, r, "warning", "Ops, ...verifique!", "Muitas tentativas de login, aguarde um instante.")
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	err := h.session.SignIn(r.Context(), w, creds)
	if err == nil {
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
		return
	}

	switch {
	case errors.Is(err, barberapi.ErrInvalidCredentials):
		h.flash.Notify(w, r, "error", "Ops, ...verifique!", "Usuário ou senha incorretos.")
	default:
		log.Error("sign in failed", sl.Err(err))
		h.flash.Notify(w, r, "warning", "Ops, ...verifique!", "Erro ao acessar, tente novamente.")
	}
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
