// Package planos реализует страницу сравнения бесплатного и premium планов.
package planos

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"

	"github.com/magabrotheeeer/barberpro-web/internal/lib/sl"
	"github.com/magabrotheeeer/barberpro-web/internal/session"
	"github.com/magabrotheeeer/barberpro-web/internal/web/render"
)

// Props — данные шаблона planos.html.
type Props struct {
	Premium bool
}

// Handler обрабатывает запросы страницы планов.
type Handler struct {
	log     *slog.Logger
	render  *render.Renderer
	session *session.Store
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, renderer *render.Renderer, store *session.Store) *Handler {
	return &Handler{log: log, render: renderer, session: store}
}

// Show отрисовывает сравнение планов с признаком premium из /me.
// Пользователь восстанавливается через сессию: истёкший или отклонённый
// токен стирается из cookie и запрос уходит на страницу входа.
func (h *Handler) Show(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.pages.planos"

	me, err := h.session.Recover(r.Context(), w, r)
	if err != nil {
		if errors.Is(err, session.ErrNoSession) || errors.Is(err, session.ErrSessionExpired) {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		h.log.Error("failed to recover session",
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
			sl.Err(err))
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
		return
	}

	h.render.HTML(w, r, "planos.html", "BarberPRO - Sua assinatura Premium", Props{Premium: me.Premium()})
}
