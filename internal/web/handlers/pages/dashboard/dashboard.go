// Package dashboard реализует страницу агенды: список записей на сегодня.
//
// Кнопка «Finalizar Serviço» в модальном окне вызывает JSON-действие
// DELETE /api/v1/schedule и убирает обслуженную запись без перезагрузки.
package dashboard

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"

	"github.com/magabrotheeeer/barberpro-web/internal/barberapi"
	"github.com/magabrotheeeer/barberpro-web/internal/lib/sl"
	"github.com/magabrotheeeer/barberpro-web/internal/models"
	"github.com/magabrotheeeer/barberpro-web/internal/web/guard"
	"github.com/magabrotheeeer/barberpro-web/internal/web/render"
)

// Props — данные шаблона dashboard.html.
type Props struct {
	Schedule []models.ScheduleItem
}

// Handler обрабатывает запросы страницы агенды.
type Handler struct {
	log    *slog.Logger
	render *render.Renderer
	guard  *guard.Guard
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, renderer *render.Renderer, g *guard.Guard) *Handler {
	return &Handler{log: log, render: renderer, guard: g}
}

// Show отрисовывает агенду. Недоступность удалённого API не блокирует
// страницу: список деградирует до пустого.
func (h *Handler) Show(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.pages.dashboard"

	res := h.guard.RequireAuth(w, r, func(r *http.Request, api barberapi.API) (any, error) {
		items, err := api.ListSchedule(r.Context())
		if err != nil {
			if barberapi.IsAuthError(err) {
				return nil, err
			}
			h.log.Error("failed to load schedule",
				slog.String("op", op),
				slog.String("request_id", middleware.GetReqID(r.Context())),
				sl.Err(err))
			return Props{Schedule: []models.ScheduleItem{}}, nil
		}
		return Props{Schedule: items}, nil
	})
	if res.RedirectTo != "" {
		http.Redirect(w, r, res.RedirectTo, http.StatusSeeOther)
		return
	}
	h.render.HTML(w, r, "dashboard.html", "BarberPRO - Minha barbearia", res.Props)
}
