// Package services содержит бизнес-логику вычислений и их кеширования.
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/magabrotheeeer/calculations-api/internal/models"
)

// Ошибки проверки входных данных вычисления.
var (
	// ErrUnknownType неизвестный тип операции.
	ErrUnknownType = errors.New("unknown calculation type")
	// ErrNotEnoughInputs операции нужно минимум два операнда.
	ErrNotEnoughInputs = errors.New("calculation requires at least two inputs")
	// ErrPowerInputs возведение в степень принимает ровно два операнда.
	ErrPowerInputs = errors.New("power requires exactly two inputs")
	// ErrDivisionByZero деление на ноль.
	ErrDivisionByZero = errors.New("division by zero")
)

// CalculationRepository определяет методы для работы с вычислениями в хранилище.
type CalculationRepository interface {
	// CreateCalculation добавляет новое вычисление и возвращает запись.
	CreateCalculation(ctx context.Context, calc models.Calculation) (*models.Calculation, error)
	// GetCalculation возвращает вычисление пользователя по ID.
	GetCalculation(ctx context.Context, userUID, id string) (*models.Calculation, error)
	// ListCalculations возвращает все вычисления пользователя.
	ListCalculations(ctx context.Context, userUID string) ([]*models.Calculation, error)
	// UpdateCalculationInputs заменяет операнды и результат.
	UpdateCalculationInputs(ctx context.Context, userUID, id string, inputs []float64, result float64) (*models.Calculation, error)
	// RemoveCalculation удаляет вычисление пользователя.
	RemoveCalculation(ctx context.Context, userUID, id string) error
}

// Cache описывает методы для кэширования данных.
type Cache interface {
	Get(key string, result any) (bool, error)
	Set(key string, value any, expiration time.Duration) error
	Invalidate(key string) error
}

// CalculationService реализует бизнес-логику вычислений, включая кеширование чтений.
type CalculationService struct {
	repo  CalculationRepository
	cache Cache
	log   *slog.Logger
}

// NewCalculationService создает новый экземпляр CalculationService.
func NewCalculationService(repo CalculationRepository, cache Cache, log *slog.Logger) *CalculationService {
	return &CalculationService{
		repo:  repo,
		cache: cache,
		log:   log,
	}
}

// Compute вычисляет результат операции над операндами.
func Compute(calcType string, inputs []float64) (float64, error) {
	if len(inputs) < 2 {
		return 0, ErrNotEnoughInputs
	}

	switch calcType {
	case models.CalculationAddition:
		result := 0.0
		for _, v := range inputs {
			result += v
		}
		return result, nil
	case models.CalculationSubtraction:
		result := inputs[0]
		for _, v := range inputs[1:] {
			result -= v
		}
		return result, nil
	case models.CalculationMultiplication:
		result := 1.0
		for _, v := range inputs {
			result *= v
		}
		return result, nil
	case models.CalculationDivision:
		result := inputs[0]
		for _, v := range inputs[1:] {
			if v == 0 {
				return 0, ErrDivisionByZero
			}
			result /= v
		}
		return result, nil
	case models.CalculationPower:
		if len(inputs) != 2 {
			return 0, ErrPowerInputs
		}
		return math.Pow(inputs[0], inputs[1]), nil
	default:
		return 0, ErrUnknownType
	}
}

// Create вычисляет результат и сохраняет новое вычисление пользователя.
func (s *CalculationService) Create(ctx context.Context, userUID, calcType string, inputs []float64) (*models.Calculation, error) {
	result, err := Compute(calcType, inputs)
	if err != nil {
		return nil, err
	}

	created, err := s.repo.CreateCalculation(ctx, models.Calculation{
		UserUID: userUID,
		Type:    calcType,
		Inputs:  inputs,
		Result:  result,
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("created new calculation", slog.String("id", created.ID), slog.String("type", calcType))

	cacheKey := fmt.Sprintf("calculation:%s", created.ID)
	if err := s.cache.Set(cacheKey, created, time.Hour); err != nil {
		s.log.Warn("failed to cache calculation", slog.String("key", cacheKey), slog.Any("err", err))
	}

	return created, nil
}

// Read возвращает вычисление пользователя, используя кеш или репозиторий.
func (s *CalculationService) Read(ctx context.Context, userUID, id string) (*models.Calculation, error) {
	var result *models.Calculation
	cacheKey := fmt.Sprintf("calculation:%s", id)
	found, err := s.cache.Get(cacheKey, &result)
	if err != nil {
		return nil, err
	}
	// запись из кеша отдается только владельцу
	if found && result != nil && result.UserUID == userUID {
		return result, nil
	}

	result, err = s.repo.GetCalculation(ctx, userUID, id)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(cacheKey, result, time.Hour); err != nil {
		s.log.Warn("failed to add to cache", slog.String("key", cacheKey), slog.Any("err", err))
	}
	return result, nil
}

// List возвращает все вычисления пользователя.
func (s *CalculationService) List(ctx context.Context, userUID string) ([]*models.Calculation, error) {
	return s.repo.ListCalculations(ctx, userUID)
}

// Update заменяет операнды вычисления и пересчитывает результат
// по сохранённому типу операции.
func (s *CalculationService) Update(ctx context.Context, userUID, id string, inputs []float64) (*models.Calculation, error) {
	current, err := s.repo.GetCalculation(ctx, userUID, id)
	if err != nil {
		return nil, err
	}

	result, err := Compute(current.Type, inputs)
	if err != nil {
		return nil, err
	}

	updated, err := s.repo.UpdateCalculationInputs(ctx, userUID, id, inputs, result)
	if err != nil {
		return nil, err
	}
	s.log.Info("updated calculation", slog.String("id", id))

	cacheKey := fmt.Sprintf("calculation:%s", id)
	if err := s.cache.Set(cacheKey, updated, time.Hour); err != nil {
		s.log.Warn("failed to cache calculation", slog.String("key", cacheKey), slog.Any("err", err))
	}
	return updated, nil
}

// Remove удаляет вычисление пользователя и инвалидирует кеш.
func (s *CalculationService) Remove(ctx context.Context, userUID, id string) error {
	cacheKey := fmt.Sprintf("calculation:%s", id)
	if err := s.cache.Invalidate(cacheKey); err != nil {
		s.log.Warn("failed to remove from cache", slog.String("key", cacheKey), slog.Any("err", err))
	}

	return s.repo.RemoveCalculation(ctx, userUID, id)
}
