// Package landing реализует главную страницу для неаутентифицированных гостей.
package landing

import (
	"log/slog"
	"net/http"

	"github.com/magabrotheeeer/barberpro-web/internal/web/guard"
	"github.com/magabrotheeeer/barberpro-web/internal/web/render"
)

// Handler обрабатывает запросы главной страницы.
type Handler struct {
	log    *slog.Logger
	render *render.Renderer
	guard  *guard.Guard
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, renderer *render.Renderer, g *guard.Guard) *Handler {
	return &Handler{log: log, render: renderer, guard: g}
}

// Show отрисовывает главную страницу. Запрос с живой сессией
// уходит на /dashboard.
func (h *Handler) Show(w http.ResponseWriter, r *http.Request) {
	res := h.guard.RequireGuest(w, r, nil)
	if res.RedirectTo != "" {
		http.Redirect(w, r, res.RedirectTo, http.StatusSeeOther)
		return
	}
	h.render.HTML(w, r, "landing.html", "BarberPRO - Seu sistema completo", nil)
}
