// Package haircuts реализует список моделей стрижек с переключателем
// активных и отключённых моделей.
package haircuts

import (
	"log/slog"
	"net/http"

	"github.com/magabrotheeeer/barberpro-web/internal/barberapi"
	"github.com/magabrotheeeer/barberpro-web/internal/models"
	"github.com/magabrotheeeer/barberpro-web/internal/web/guard"
	"github.com/magabrotheeeer/barberpro-web/internal/web/render"
)

// Props — данные шаблона haircuts.html.
type Props struct {
	Haircuts     []models.Haircut
	ShowDisabled bool
}

// Handler обрабатывает запросы списка моделей стрижек.
type Handler struct {
	log    *slog.Logger
	render *render.Renderer
	guard  *guard.Guard
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, renderer *render.Renderer, g *guard.Guard) *Handler {
	return &Handler{log: log, render: renderer, guard: g}
}

// Show отрисовывает список. Параметр ?enabled=false показывает
// отключённые модели.
func (h *Handler) Show(w http.ResponseWriter, r *http.Request) {
	enabled := r.URL.Query().Get("enabled") != "false"

	res := h.guard.RequireAuth(w, r, func(r *http.Request, api barberapi.API) (any, error) {
		haircuts, err := api.ListHaircuts(r.Context(), enabled)
		if err != nil {
			return nil, err
		}
		return Props{Haircuts: haircuts, ShowDisabled: !enabled}, nil
	})
	if res.RedirectTo != "" {
		http.Redirect(w, r, res.RedirectTo, http.StatusSeeOther)
		return
	}
	h.render.HTML(w, r, "haircuts.html", "Modelos de corte - Minha barbearia", res.Props)
}
