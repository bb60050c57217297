// Package schedulefinish реализует JSON-действие «обслужить клиента».
//
// Его вызывает скрипт страницы агенды: запись удаляется в удалённом API,
// а строка исчезает из списка без перезагрузки страницы.
package schedulefinish

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/barberpro-web/internal/barberapi"
	"github.com/magabrotheeeer/barberpro-web/internal/lib/sl"
	"github.com/magabrotheeeer/barberpro-web/internal/session"
	"github.com/magabrotheeeer/barberpro-web/internal/web/response"
)

// Request — параметры запроса завершения обслуживания.
type Request struct {
	ScheduleID string `validate:"required"`
}

// Handler обрабатывает JSON-запросы завершения обслуживания.
type Handler struct {
	log      *slog.Logger
	session  *session.Store
	factory  session.Factory
	validate *validator.Validate
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, store *session.Store, factory session.Factory) *Handler {
	return &Handler{log: log, session: store, factory: factory, validate: validator.New()}
}

// ServeHTTP godoc
// @Summary Завершить обслуживание клиента
// @Description Удаляет запись из агенды по её идентификатору. Токен берётся из cookie сессии.
// @Tags Schedule
// @Produce json
// @Param schedule_id query string true "Идентификатор записи"
// @Success 200 {object} response.Response "Запись удалена, идентификатор в data"
// @Failure 400 {object} response.Response "Не передан schedule_id"
// @Failure 401 {object} response.ErrorResponse "Сессия отсутствует или отклонена"
// @Failure 500 {object} response.ErrorResponse "Ошибка удалённого API"
// @Router /api/v1/schedule [delete]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.actions.schedulefinish"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	tok, err := h.session.Token(r)
	if err != nil {
		log.Warn("finish request without session")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	req := Request{ScheduleID: r.URL.Query().Get("schedule_id")}
	if err := h.validate.Struct(req); err != nil {
		var verr validator.ValidationErrors
		errors.As(err, &verr)
		log.Error("invalid request", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.ValidationError(verr))
		return
	}

	if err := h.factory(tok).FinishSchedule(r.Context(), req.ScheduleID); err != nil {
		if barberapi.IsAuthError(err) {
			log.Warn("token rejected by remote api", sl.Err(err))
			h.session.SignOut(w)
			w.WriteHeader(http.StatusUnauthorized)
			render.JSON(w, r, response.Error("unauthorized"))
			return
		}
		log.Error("failed to finish schedule", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to finish service"))
		return
	}

	log.Info("service finished", slog.String("schedule_id", req.ScheduleID))
	render.JSON(w, r, response.OKWithData(map[string]string{"schedule_id": req.ScheduleID}))
}
