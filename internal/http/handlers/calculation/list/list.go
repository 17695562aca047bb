// Package list реализует HTTP-обработчик получения списка вычислений пользователя.
package list

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/calculations-api/internal/http/middlewarectx"
	"github.com/magabrotheeeer/calculations-api/internal/http/response"
	"github.com/magabrotheeeer/calculations-api/internal/lib/sl"
	"github.com/magabrotheeeer/calculations-api/internal/models"
)

// Handler обрабатывает запросы на получение списка вычислений.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики получения списка вычислений.
type Service interface {
	List(ctx context.Context, userUID string) ([]*models.Calculation, error)
}

// New создает новый Handler с переданным логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Список вычислений пользователя
// @Description Возвращает вычисления текущего пользователя от новых к старым.
// @Tags Calculations
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} map[string]any "Список вычислений"
// @Failure 401 {object} response.ErrorResponse "Не авторизован"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /calculations [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.calculation.list"

	log := h.log.With(
		sl.Op(op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	userUID, ok := r.Context().Value(middlewarectx.UserUID).(string)
	if !ok || userUID == "" {
		log.Error("user uid not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Unauthorized())
		return
	}

	calcs, err := h.service.List(r.Context(), userUID)
	if err != nil {
		log.Error("failed to list calculations", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Internal())
		return
	}

	log.Info("success to list calculations", slog.Int("count", len(calcs)))
	render.JSON(w, r, map[string]any{
		"calculations": calcs,
	})
}
