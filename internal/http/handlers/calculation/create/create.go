// Package create реализует HTTP-обработчик создания вычисления.
//
// Handler декодирует JSON, валидирует поля, вычисляет результат и сохраняет
// запись за текущим пользователем.
package create

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/calculations-api/internal/http/middlewarectx"
	"github.com/magabrotheeeer/calculations-api/internal/http/response"
	"github.com/magabrotheeeer/calculations-api/internal/lib/sl"
	"github.com/magabrotheeeer/calculations-api/internal/models"
	services "github.com/magabrotheeeer/calculations-api/internal/services/calculation"
)

// Request — структура входных данных для создания вычисления.
type Request struct {
	Type   string    `json:"type" validate:"required,oneof=addition subtraction multiplication division power"`
	Inputs []float64 `json:"inputs" validate:"required,min=2"`
}

// Handler обрабатывает запросы на создание вычисления.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс бизнес-логики создания вычисления.
type Service interface {
	Create(ctx context.Context, userUID, calcType string, inputs []float64) (*models.Calculation, error)
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
// @Summary Создать новое вычисление
// @Description Вычисляет результат по типу операции и операндам и сохраняет запись.
// @Tags Calculations
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param request body Request true "Тип операции и операнды"
// @Success 201 {object} models.Calculation "Созданное вычисление"
// @Failure 400 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 401 {object} response.ErrorResponse "Не авторизован"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /calculations [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.calculation.create"

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

	calc, err := h.service.Create(r.Context(), userUID, req.Type, req.Inputs)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUnknownType):
			log.Error("unknown calculation type", slog.String("type", req.Type))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Validation("type", "has unsupported value"))
		case errors.Is(err, services.ErrNotEnoughInputs),
			errors.Is(err, services.ErrPowerInputs),
			errors.Is(err, services.ErrDivisionByZero):
			log.Error("invalid inputs", sl.Err(err))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Validation("inputs", err.Error()))
		default:
			log.Error("failed to create calculation", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Internal())
		}
		return
	}

	log.Info("success to create calculation", slog.String("id", calc.ID))
	w.WriteHeader(http.StatusCreated)
	render.JSON(w, r, calc)
}
