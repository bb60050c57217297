// Package register реализует страницу регистрации барбершопа.
package register

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/barberpro-web/internal/barberapi"
	"github.com/magabrotheeeer/barberpro-web/internal/lib/sl"
	"github.com/magabrotheeeer/barberpro-web/internal/session"
	"github.com/magabrotheeeer/barberpro-web/internal/web/flash"
	"github.com/magabrotheeeer/barberpro-web/internal/web/guard"
	"github.com/magabrotheeeer/barberpro-web/internal/web/render"
)

// Props — данные шаблона register.html.
type Props struct {
	Name  string
	Email string
}

// Handler обрабатывает запросы страницы регистрации.
type Handler struct {
	log     *slog.Logger
	render  *render.Renderer
	guard   *guard.Guard
	session *session.Store
	flash   *flash.Store
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, renderer *render.Renderer, g *guard.Guard,
	store *session.Store, flashes *flash.Store) *Handler {
	return &Handler{
		log:     log,
		render:  renderer,
		guard:   g,
		session: store,
		flash:   flashes,
	}
}

// Show отрисовывает форму регистрации.
func (h *Handler) Show(w http.ResponseWriter, r *http.Request) {
	res := h.guard.RequireGuest(w, r, func(_ *http.Request, _ barberapi.API) (any, error) {
		return Props{}, nil
	})
	if res.RedirectTo != "" {
		http.Redirect(w, r, res.RedirectTo, http.StatusSeeOther)
		return
	}
	h.render.HTML(w, r, "register.html", "Crie sua conta no BarberPRO", res.Props)
}

// Submit обрабатывает отправку формы регистрации.
// После успешной регистрации пользователь входит через форму входа.
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.pages.register"

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
		http.Redirect(w, r, "/register", http.StatusSeeOther)
		return
	}

	creds := session.RegisterCredentials{
		Name:     r.PostFormValue("name"),
		Email:    r.PostFormValue("email"),
		Password: r.PostFormValue("password"),
	}

	err := h.session.SignUp(r.Context(), creds)
	if err == nil {
		h.flash.Notify(w, r, "success", "Eba, um novo colega!", creds.Name+" adicionada com sucesso.")
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	var verr validator.ValidationErrors
	switch {
	case errors.As(err, &verr):
		h.flash.Notify(w, r, "warning", "Ops, ...verifique!", "Revise todos os campos não preenchidos!")
	case errors.Is(err, barberapi.ErrInvalidCredentials):
		h.flash.Notify(w, r, "error", "Ops, ...verifique!", "Não foi possível criar a conta, revise seus dados.")
	default:
		log.Error("sign up failed", sl.Err(err))
		h.flash.Notify(w, r, "warning", "Ops, ...verifique!", "Erro ao criar a conta, tente novamente.")
	}
	http.Redirect(w, r, "/register", http.StatusSeeOther)
}
