// Package profile реализует страницу учётной записи: редактирование имени
// и адреса барбершопа, выход из аккаунта.
package profile

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
	"github.com/magabrotheeeer/barberpro-web/internal/web/render"
)

// Props — данные шаблона profile.html.
type Props struct {
	User    models.User
	Premium bool
}

// Handler обрабатывает запросы страницы учётной записи.
type Handler struct {
	log     *slog.Logger
	render  *render.Renderer
	session *session.Store
	factory session.Factory
	flash   *flash.Store
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, renderer *render.Renderer,
	store *session.Store, factory session.Factory, flashes *flash.Store) *Handler {
	return &Handler{
		log:     log,
		render:  renderer,
		session: store,
		factory: factory,
		flash:   flashes,
	}
}

// Show отрисовывает учётную запись. Пользователь восстанавливается через
// сессию: истёкший или отклонённый токен стирается из cookie и запрос
// уходит на страницу входа.
func (h *Handler) Show(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.pages.profile"

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

	h.render.HTML(w, r, "profile.html", "Minha Conta - BarberPRO",
		Props{User: me.User, Premium: me.Premium()})
}

// Submit обновляет имя и адрес барбершопа. Пустое имя не порождает
// сетевой запрос.
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.pages.profile"

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
		http.Redirect(w, r, "/profile", http.StatusSeeOther)
		return
	}

	name := r.PostFormValue("name")
	endereco := r.PostFormValue("endereco")
	if name == "" {
		h.flash.Notify(w, r, "warning", "Ops, ...verifique!", "Seu cadastro não foi atualizado!")
		http.Redirect(w, r, "/profile", http.StatusSeeOther)
		return
	}

	if err := h.factory(tok).UpdateUser(r.Context(), name, endereco); err != nil {
		if barberapi.IsAuthError(err) {
			h.session.SignOut(w)
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		log.Error("failed to update user", sl.Err(err))
		h.flash.Notify(w, r, "warning", "Ops, ...verifique!", "Seu cadastro não foi atualizado!")
		http.Redirect(w, r, "/profile", http.StatusSeeOther)
		return
	}

	h.flash.Notify(w, r, "success", "Eba, mandou bem!", "Cadastro atualizado com sucesso.")
	http.Redirect(w, r, "/profile", http.StatusSeeOther)
}

// Logout стирает cookie сессии и уводит на страницу входа.
// Выход без живой сессии так же заканчивается на /login.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	h.session.SignOut(w)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}
