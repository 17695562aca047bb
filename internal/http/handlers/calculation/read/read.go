// Package read реализует HTTP-обработчик получения конкретного вычисления по ID.
//
// Handler извлекает ID из URL-параметров и возвращает вычисление, если оно
// принадлежит текущему пользователю.
package read

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/calculations-api/internal/http/middlewarectx"
	"github.com/magabrotheeeer/calculations-api/internal/http/response"
	"github.com/magabrotheeeer/calculations-api/internal/lib/sl"
	"github.com/magabrotheeeer/calculations-api/internal/models"
	"github.com/magabrotheeeer/calculations-api/internal/storage"
)

// Handler обрабатывает запросы на получение вычисления по идентификатору.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики чтения вычисления.
type Service interface {
	Read(ctx context.Context, userUID, id string) (*models.Calculation, error)
}

// New создает новый Handler с переданным логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Получить вычисление по ID
// @Description Возвращает вычисление текущего пользователя по идентификатору.
// @Tags Calculations
// @Produce  json
// @Security BearerAuth
// @Param id path string true "Идентификатор вычисления"
// @Success 200 {object} models.Calculation "Вычисление"
// @Failure 401 {object} response.ErrorResponse "Не авторизован"
// @Failure 404 {object} response.ErrorResponse "Вычисление не найдено"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /calculations/{id} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.calculation.read"

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

	id := chi.URLParam(r, "id")
	if id == "" {
		log.Error("missing id in url")
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Validation("id", "is a required field"))
		return
	}

	calc, err := h.service.Read(r.Context(), userUID, id)
	if err != nil {
		if errors.Is(err, storage.ErrCalculationNotFound) {
			log.Error("calculation not found", slog.String("id", id))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.NotFound())
			return
		}
		log.Error("failed to read calculation", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Internal())
		return
	}

	log.Info("success to read calculation", slog.String("id", id))
	render.JSON(w, r, calc)
}
