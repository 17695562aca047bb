package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/magabrotheeeer/calculations-api/internal/models"
)

func scanCalculation(row *sql.Row) (*models.Calculation, error) {
	c := &models.Calculation{}
	var inputs []byte
	err := row.Scan(&c.ID, &c.UserUID, &c.Type, &inputs, &c.Result, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(inputs, &c.Inputs); err != nil {
		return nil, err
	}
	return c, nil
}

// CreateCalculation сохраняет новое вычисление и возвращает запись целиком.
func (s *Storage) CreateCalculation(ctx context.Context, calc models.Calculation) (*models.Calculation, error) {
	const op = "storage.CreateCalculation"

	inputs, err := json.Marshal(calc.Inputs)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	query := `INSERT INTO calculations (user_uid, type, inputs, result)
			  VALUES ($1, $2, $3, $4)
			  RETURNING id, user_uid, type, inputs, result, created_at, updated_at`
	c, err := scanCalculation(s.DB.QueryRowContext(ctx, query, calc.UserUID, calc.Type, inputs, calc.Result))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return c, nil
}

// GetCalculation возвращает вычисление по id в пределах записей владельца.
func (s *Storage) GetCalculation(ctx context.Context, userUID, id string) (*models.Calculation, error) {
	const op = "storage.GetCalculation"

	query := `SELECT id, user_uid, type, inputs, result, created_at, updated_at
			  FROM calculations
			  WHERE id = $1 AND user_uid = $2`
	c, err := scanCalculation(s.DB.QueryRowContext(ctx, query, id, userUID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCalculationNotFound
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return c, nil
}

// ListCalculations возвращает все вычисления пользователя, новые первыми.
func (s *Storage) ListCalculations(ctx context.Context, userUID string) ([]*models.Calculation, error) {
	const op = "storage.ListCalculations"

	query := `SELECT id, user_uid, type, inputs, result, created_at, updated_at
			  FROM calculations
			  WHERE user_uid = $1
			  ORDER BY created_at DESC`
	rows, err := s.DB.QueryContext(ctx, query, userUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Calculation
	for rows.Next() {
		c := &models.Calculation{}
		var inputs []byte
		if err = rows.Scan(&c.ID, &c.UserUID, &c.Type, &inputs, &c.Result, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		if err = json.Unmarshal(inputs, &c.Inputs); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, c)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// UpdateCalculationInputs заменяет операнды и результат вычисления.
func (s *Storage) UpdateCalculationInputs(ctx context.Context, userUID, id string, newInputs []float64, newResult float64) (*models.Calculation, error) {
	const op = "storage.UpdateCalculationInputs"

	inputs, err := json.Marshal(newInputs)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	query := `UPDATE calculations
			  SET inputs = $1,
			      result = $2,
			      updated_at = now()
			  WHERE id = $3 AND user_uid = $4
			  RETURNING id, user_uid, type, inputs, result, created_at, updated_at`
	c, err := scanCalculation(s.DB.QueryRowContext(ctx, query, inputs, newResult, id, userUID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCalculationNotFound
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return c, nil
}

// RemoveCalculation удаляет вычисление пользователя.
func (s *Storage) RemoveCalculation(ctx context.Context, userUID, id string) error {
	const op = "storage.RemoveCalculation"

	res, err := s.DB.ExecContext(ctx, `DELETE FROM calculations WHERE id = $1 AND user_uid = $2`, id, userUID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if affected == 0 {
		return ErrCalculationNotFound
	}
	return nil
}
