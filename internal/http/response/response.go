// Package response содержит вспомогательные типы и функции для формирования
// унифицированных JSON‑ответов HTTP‑обработчиков. Ошибки возвращаются в едином
// формате: код ошибки и, где применимо, имя поля и причина нарушения.
package response

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator"
)

// ErrorResponse описывает стандартную структуру JSON‑ответа с ошибкой.
// Поле Error — машинно‑читаемый код ошибки.
// Поля Field и Reason заполняются для ошибок валидации и конфликтов.
type ErrorResponse struct {
	Error  string `json:"error" example:"validation"`
	Field  string `json:"field,omitempty" example:"email"`
	Reason string `json:"reason,omitempty" example:"invalid email format"`
}

// StatusResponse описывает успешный ответ без данных.
type StatusResponse struct {
	Status string `json:"status" example:"updated"`
}

const (
	// ErrValidation — код ошибки валидации входных данных.
	ErrValidation = "validation"
	// ErrConflict — код конфликта уникальности.
	ErrConflict = "conflict"
	// ErrNotFound — код отсутствия запрошенного ресурса.
	ErrNotFound = "not_found"
	// ErrUnauthorized — код отказа в авторизации.
	ErrUnauthorized = "unauthorized"
	// ErrInternal — код внутренней ошибки сервера.
	ErrInternal = "internal"
)

// NewValidator возвращает валидатор, сообщающий в ошибках имена полей
// по тегу json структуры запроса, а не имена полей Go.
func NewValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validation возвращает ошибку валидации с именем поля и причиной.
func Validation(field, reason string) ErrorResponse {
	return ErrorResponse{
		Error:  ErrValidation,
		Field:  field,
		Reason: reason,
	}
}

// Conflict возвращает ошибку конфликта уникальности по полю.
func Conflict(field string) ErrorResponse {
	return ErrorResponse{
		Error: ErrConflict,
		Field: field,
	}
}

// NotFound возвращает ошибку отсутствия ресурса.
func NotFound() ErrorResponse {
	return ErrorResponse{Error: ErrNotFound}
}

// Unauthorized возвращает ошибку авторизации.
func Unauthorized() ErrorResponse {
	return ErrorResponse{Error: ErrUnauthorized}
}

// Internal возвращает внутреннюю ошибку сервера.
func Internal() ErrorResponse {
	return ErrorResponse{Error: ErrInternal}
}

// Updated возвращает успешный ответ об обновлении.
func Updated() StatusResponse {
	return StatusResponse{Status: "updated"}
}

// ValidationError формирует ErrorResponse по первому нарушению из ошибок
// валидатора. Поле берется из тега json структуры запроса.
func ValidationError(errs validator.ValidationErrors) ErrorResponse {
	if len(errs) == 0 {
		return Validation("", "invalid request body")
	}

	err := errs[0]
	// При валидаторе из NewValidator Field() уже содержит имя из тега json;
	// ToLower остается запасным вариантом для полей без тега.
	field := strings.ToLower(err.Field())

	var reason string
	switch err.ActualTag() {
	case "required":
		reason = "is a required field"
	case "email":
		reason = "invalid email format"
	case "min":
		reason = "is too short"
	case "max":
		reason = "is too long"
	case "alphanum":
		reason = "can contain only numbers and letters"
	case "numeric":
		reason = "can contain only numbers"
	case "uuid":
		reason = "can contain only uuid"
	case "oneof":
		reason = "has unsupported value"
	case "eqfield":
		reason = "does not match"
	default:
		reason = "is not valid"
	}

	return Validation(field, reason)
}
