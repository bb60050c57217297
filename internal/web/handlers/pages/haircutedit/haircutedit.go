// Package haircutedit реализует страницу редактирования модели стрижки.
// Редактирование доступно только при активной подписке: без неё форма
// отрисовывается только для чтения, а отправка отклоняется.
package haircutedit

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/barberpro-web/internal/barberapi"
	"github.com/magabrotheeeer/barberpro-web/internal/lib/sl"
	"github.com/magabrotheeeer/barberpro-web/internal/models"
	"github.com/magabrotheeeer/barberpro-web/internal/session"
	"github.com/magabrotheeeer/barberpro-web/internal/web/flash"
	"github.com/magabrotheeeer/barberpro-web/internal/web/guard"
	"github.com/magabrotheeeer/barberpro-web/internal/web/render"
)

// Props — данные шаблона haircut_edit.html.
type Props struct {
	Haircut *models.Haircut
	Premium bool

	// Failed выставляется loader-ом, когда модель не удалось загрузить:
	// страница в этом случае уходит обратно на /haircuts.
	Failed bool
}

// Request — входные данные формы редактирования.
type Request struct {
	Name  string  `validate:"required"`
	Price float64 `validate:"required,gt=0"`
}

// Handler обрабатывает запросы страницы редактирования модели стрижки.
type Handler struct {
	log      *slog.Logger
	render   *render.Renderer
	guard    *guard.Guard
	session  *session.Store
	factory  session.Factory
	flash    *flash.Store
	validate *validator.Validate
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, renderer *render.Renderer, g *guard.Guard,
	store *session.Store, factory session.Factory, flashes *flash.Store) *Handler {
	return &Handler{
		log:      log,
		render:   renderer,
		guard:    g,
		session:  store,
		factory:  factory,
		flash:    flashes,
		validate: validator.New(),
	}
}

// Show отрисовывает форму редактирования.
func (h *Handler) Show(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.pages.haircutedit"

	haircutID := chi.URLParam(r, "id")

	res := h.guard.RequireAuth(w, r, func(r *http.Request, api barberapi.API) (any, error) {
		log := h.log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		sub, err := api.CheckSubscription(r.Context())
		if err != nil {
			if barberapi.IsAuthError(err) {
				return nil, err
			}
			log.Error("failed to check subscription", sl.Err(err))
			return Props{Failed: true}, nil
		}

		haircut, err := api.HaircutDetail(r.Context(), haircutID)
		if err != nil {
			if barberapi.IsAuthError(err) {
				return nil, err
			}
			log.Error("failed to load haircut", sl.Err(err))
			return Props{Failed: true}, nil
		}

		return Props{Haircut: haircut, Premium: sub.Active()}, nil
	})
	if res.RedirectTo != "" {
		http.Redirect(w, r, res.RedirectTo, http.StatusSeeOther)
		return
	}
	if props, ok := res.Props.(Props); ok && props.Failed {
		http.Redirect(w, r, "/haircuts", http.StatusSeeOther)
		return
	}
	h.render.HTML(w, r, "haircut_edit.html", "Editando modelo de corte - BarberPRO", res.Props)
}

// Submit обновляет модель стрижки. Без активной подписки отправка
// отклоняется независимо от содержимого формы.
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.pages.haircutedit"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	tok, err := h.session.Token(r)
	if err != nil {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	haircutID := chi.URLParam(r, "id")

	if err := r.ParseForm(); err != nil {
		log.Error("failed to parse form", sl.Err(err))
		http.Redirect(w, r, "/haircuts/"+haircutID, http.StatusSeeOther)
		return
	}

	rawPrice := strings.Replace(r.PostFormValue("price"), ",", ".", 1)
	price, _ := strconv.ParseFloat(rawPrice, 64)
	req := Request{
		Name:  r.PostFormValue("name"),
		Price: price,
	}
	status := r.PostFormValue("status") != ""

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		h.flash.Notify(w, r, "warning", "Ops, ...verifique!", "Revise todos os campos não preenchidos!")
		http.Redirect(w, r, "/haircuts/"+haircutID, http.StatusSeeOther)
		return
	}

	api := h.factory(tok)

	sub, err := api.CheckSubscription(r.Context())
	if err != nil {
		if barberapi.IsAuthError(err) {
			h.session.SignOut(w)
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		log.Error("failed to check subscription", sl.Err(err))
		h.flash.Notify(w, r, "warning", "Ops, ...verifique!", req.Name+" não foi atualizado!")
		http.Redirect(w, r, "/haircuts/"+haircutID, http.StatusSeeOther)
		return
	}
	if !sub.Active() {
		http.Redirect(w, r, "/planos", http.StatusSeeOther)
		return
	}

	if err := api.UpdateHaircut(r.Context(), haircutID, req.Name, req.Price, status); err != nil {
		if barberapi.IsAuthError(err) {
			h.session.SignOut(w)
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		log.Error("failed to update haircut", sl.Err(err))
		h.flash.Notify(w, r, "warning", "Ops, ...verifique!", req.Name+" não foi atualizado!")
		http.Redirect(w, r, "/haircuts/"+haircutID, http.StatusSeeOther)
		return
	}

	h.flash.Notify(w, r, "success", "Eba, sempre no estilo!", req.Name+" atualizado com sucesso.")
	http.Redirect(w, r, "/haircuts/"+haircutID, http.StatusSeeOther)
}
