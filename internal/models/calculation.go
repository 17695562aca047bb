package models

import "time"

// Типы поддерживаемых вычислений.
const (
	CalculationAddition       = "addition"
	CalculationSubtraction    = "subtraction"
	CalculationMultiplication = "multiplication"
	CalculationDivision       = "division"
	CalculationPower          = "power"
)

// Calculation представляет одно сохранённое вычисление пользователя.
type Calculation struct {
	ID        string    `json:"id"`       // Уникальный идентификатор вычисления
	UserUID   string    `json:"user_uid"` // Владелец вычисления
	Type      string    `json:"type"`     // Тип операции: addition, subtraction, multiplication, division, power
	Inputs    []float64 `json:"inputs"`   // Операнды
	Result    float64   `json:"result"`   // Результат, вычисляется сервером
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
