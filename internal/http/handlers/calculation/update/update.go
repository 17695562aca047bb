// Package update реализует HTTP-обработчик обновления операндов вычисления.
//
// Handler извлекает ID из URL-параметров, декодирует новые операнды,
// пересчитывает результат по сохранённому типу операции и обновляет запись.
package update

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/calculations-api/internal/http/middlewarectx"
	"github.com/magabrotheeeer/calculations-api/internal/http/response"
	"github.com/magabrotheeeer/calculations-api/internal/lib/sl"
	"github.com/magabrotheeeer/calculations-api/internal/models"
	services "github.com/magabrotheeeer/calculations-api/internal/services/calculation"
	"github.com/magabrotheeeer/calculations-api/internal/storage"
)

// Request — структура входных данных для обновления вычисления.
type Request struct {
	Inputs []float64 `json:"inputs" validate:"required,min=2"`
}

// Handler обрабатывает запросы на обновление вычисления.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс бизнес-логики обновления вычисления.
type Service interface {
	Update(ctx context.Context, userUID, id string, inputs []float64) (*models.Calculation, error)
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: response.NewValidator(),
	}
}

// ServeHTTP godoc
// @Summary Обновить операнды вычисления
// @Description Заменяет операнды и пересчитывает результат по сохранённому типу.
// @Tags Calculations
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param id path string true "Идентификатор вычисления"
// @Param request body Request true "Новые операнды"
// @Success 200 {object} models.Calculation "Обновленное вычисление"
// @Failure 400 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 401 {object} response.ErrorResponse "Не авторизован"
// @Failure 404 {object} response.ErrorResponse "Вычисление не найдено"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /calculations/{id} [put]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.calculation.update"

	log := h.log.With(
		sl.Op(op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Validation("", "invalid request body"))
		return
	}
	log.Info("request body decoded", slog.Any("request", req))

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}
	log.Info("all fields are validated")

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

	calc, err := h.service.Update(r.Context(), userUID, id, req.Inputs)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrCalculationNotFound):
			log.Error("calculation not found", slog.String("id", id))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.NotFound())
		case errors.Is(err, services.ErrNotEnoughInputs),
			errors.Is(err, services.ErrPowerInputs),
			errors.Is(err, services.ErrDivisionByZero):
			log.Error("invalid inputs", sl.Err(err))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Validation("inputs", err.Error()))
		default:
			log.Error("failed to update calculation", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Internal())
		}
		return
	}

	log.Info("success to update calculation", slog.String("id", id))
	render.JSON(w, r, calc)
}
