// Package schedulenew реализует форму регистрации клиента на стрижку.
package schedulenew

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"

	"github.com/magabrotheeeer/barberpro-web/internal/barberapi"
	"github.com/magabrotheeeer/barberpro-web/internal/lib/sl"
	"github.com/magabrotheeeer/barberpro-web/internal/models"
	"github.com/magabrotheeeer/barberpro-web/internal/session"
	"github.com/magabrotheeeer/barberpro-web/internal/web/flash"
	"github.com/magabrotheeeer/barberpro-web/internal/web/guard"
	"github.com/magabrotheeeer/barberpro-web/internal/web/render"
)

// Props — данные шаблона schedule_new.html.
type Props struct {
	Haircuts []models.Haircut
}

// Handler обрабатывает запросы формы нового клиента.
type Handler struct {
	log     *slog.Logger
	render  *render.Renderer
	guard   *guard.Guard
	session *session.Store
	factory session.Factory
	flash   *flash.Store
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, renderer *render.Renderer, g *guard.Guard,
	store *session.Store, factory session.Factory, flashes *flash.Store) *Handler {
	return &Handler{
		log:     log,
		render:  renderer,
		guard:   g,
		session: store,
		factory: factory,
		flash:   flashes,
	}
}

// Show отрисовывает форму поверх активных моделей стрижек.
// Без доступных моделей форма не имеет смысла, запрос уходит на /dashboard.
func (h *Handler) Show(w http.ResponseWriter, r *http.Request) {
	res := h.guard.RequireAuth(w, r, func(r *http.Request, api barberapi.API) (any, error) {
		haircuts, err := api.ListHaircuts(r.Context(), true)
		if err != nil {
			return nil, err
		}
		if len(haircuts) == 0 {
			return nil, errors.New("no active haircuts to schedule")
		}
		return Props{Haircuts: haircuts}, nil
	})
	if res.RedirectTo != "" {
		http.Redirect(w, r, res.RedirectTo, http.StatusSeeOther)
		return
	}
	h.render.HTML(w, r, "schedule_new.html", "Modelos de corte - Minha barbearia", res.Props)
}

// Submit регистрирует клиента. Пустое имя клиента не порождает
// сетевой запрос.
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.pages.schedulenew"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	tok, err := h.session.Token(r)
	if err != nil {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	if err := r.ParseForm(); err != nil {
		log.Error("failed to parse form", sl.Err(err))
		http.Redirect(w, r, "/new", http.StatusSeeOther)
		return
	}

	customer := r.PostFormValue("customer")
	haircutID := r.PostFormValue("haircut_id")
	if customer == "" || haircutID == "" {
		h.flash.Notify(w, r, "warning", "Ops, ...verifique!", "O cliente não foi adicionado!")
		http.Redirect(w, r, "/new", http.StatusSeeOther)
		return
	}

	if err := h.factory(tok).CreateSchedule(r.Context(), customer, haircutID); err != nil {
		if barberapi.IsAuthError(err) {
			h.session.SignOut(w)
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		log.Error("failed to create schedule", sl.Err(err))
		h.flash.Notify(w, r, "warning", "Ops, ...verifique!", "O cliente "+customer+" não foi adicionado!")
		http.Redirect(w, r, "/new", http.StatusSeeOther)
		return
	}

	h.flash.Notify(w, r, "success", "Eba, um novo cliente!", customer+" adicionado com sucesso.")
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}
