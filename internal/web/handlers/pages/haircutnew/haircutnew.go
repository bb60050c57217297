// Package haircutnew реализует форму новой модели стрижки.
//
// Бесплатный план ограничен тремя моделями: при достигнутом лимите
// форма блокируется, а отправка уводит на страницу планов.
package haircutnew

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/middleware"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/barberpro-web/internal/barberapi"
	"github.com/magabrotheeeer/barberpro-web/internal/lib/sl"
	"github.com/magabrotheeeer/barberpro-web/internal/session"
	"github.com/magabrotheeeer/barberpro-web/internal/web/flash"
	"github.com/magabrotheeeer/barberpro-web/internal/web/guard"
	"github.com/magabrotheeeer/barberpro-web/internal/web/render"
)

// freePlanLimit — максимум моделей стрижек на бесплатном плане.
const freePlanLimit = 3

// Props — данные шаблона haircut_new.html.
type Props struct {
	LimitReached bool
}

// Request — входные данные формы новой модели.
type Request struct {
	Name  string  `validate:"required"`
	Price float64 `validate:"required,gt=0"`
}

// Handler обрабатывает запросы формы новой модели стрижки.
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

// limitReached сообщает, упёрся ли пользователь в лимит бесплатного плана.
func limitReached(r *http.Request, api barberapi.API) (bool, error) {
	sub, err := api.CheckSubscription(r.Context())
	if err != nil {
		return false, err
	}
	if sub.Active() {
		return false, nil
	}

	count, err := api.CountHaircuts(r.Context())
	if err != nil {
		return false, err
	}
	return count >= freePlanLimit, nil
}

// Show отрисовывает форму новой модели стрижки.
func (h *Handler) Show(w http.ResponseWriter, r *http.Request) {
	res := h.guard.RequireAuth(w, r, func(r *http.Request, api barberapi.API) (any, error) {
		reached, err := limitReached(r, api)
		if err != nil {
			return nil, err
		}
		return Props{LimitReached: reached}, nil
	})
	if res.RedirectTo != "" {
		http.Redirect(w, r, res.RedirectTo, http.StatusSeeOther)
		return
	}
	h.render.HTML(w, r, "haircut_new.html", "BarberPRO - Novo modelo de corte", res.Props)
}

// Submit добавляет модель стрижки. Пустые имя или цена не порождают
// сетевой запрос на создание, достигнутый лимит уводит на /planos.
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.pages.haircutnew"

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
		http.Redirect(w, r, "/haircuts/new", http.StatusSeeOther)
		return
	}

	rawPrice := strings.Replace(r.PostFormValue("price"), ",", ".", 1)
	price, _ := strconv.ParseFloat(rawPrice, 64)
	req := Request{
		Name:  r.PostFormValue("name"),
		Price: price,
	}

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		h.flash.Notify(w, r, "warning", "Ops, ...verifique!", "Revise todos os campos não preenchidos!")
		http.Redirect(w, r, "/haircuts/new", http.StatusSeeOther)
		return
	}

	api := h.factory(tok)

	reached, err := limitReached(r, api)
	if err != nil {
		if barberapi.IsAuthError(err) {
			h.session.SignOut(w)
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		log.Error("failed to check plan limit", sl.Err(err))
		h.flash.Notify(w, r, "warning", "Ops, ...verifique!", "Erro ao cadastrar este modelo!")
		http.Redirect(w, r, "/haircuts/new", http.StatusSeeOther)
		return
	}
	if reached {
		http.Redirect(w, r, "/planos", http.StatusSeeOther)
		return
	}

	if err := api.CreateHaircut(r.Context(), req.Name, req.Price); err != nil {
		if barberapi.IsAuthError(err) {
			h.session.SignOut(w)
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		log.Error("failed to create haircut", sl.Err(err))
		h.flash.Notify(w, r, "warning", "Ops, ...verifique!", "Erro ao cadastrar este modelo!")
		http.Redirect(w, r, "/haircuts/new", http.StatusSeeOther)
		return
	}

	h.flash.Notify(w, r, "success", "Eba, sempre no estilo!", req.Name+" cadastrado com sucesso.")
	http.Redirect(w, r, "/haircuts", http.StatusSeeOther)
}
