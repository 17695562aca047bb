// Package models содержит доменные модели сервиса: учётную запись
// пользователя и вычисление.
package models

import "time"

// User представляет зарегистрированного пользователя системы.
//
// UID назначается базой при создании и неизменяем. Username и Email
// уникальны среди всех пользователей. PasswordHash хранит bcrypt-хэш,
// исходный пароль в модель не попадает никогда.
type User struct {
	UID          string    // Уникальный идентификатор пользователя
	Username     string    // Имя пользователя (уникальное)
	Email        string    // Электронная почта (уникальная)
	FirstName    string    // Имя
	LastName     string    // Фамилия
	PasswordHash string    // Хэш пароля пользователя
	IsActive     bool      // Активна ли учётная запись
	IsVerified   bool      // Подтверждена ли почта
	CreatedAt    time.Time // Дата создания, неизменяема
	UpdatedAt    time.Time // Обновляется при каждой успешной мутации
}

// UserProfile внешнее представление пользователя для JSON-ответов.
// Хэш пароля и служебные флаги наружу не отдаются.
type UserProfile struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ToUserProfile строит внешнее представление пользователя.
func ToUserProfile(u *User) UserProfile {
	return UserProfile{
		ID:        u.UID,
		Username:  u.Username,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		UpdatedAt: u.UpdatedAt,
	}
}

// PasswordChangedEvent событие успешной смены пароля, публикуется
// в очередь уведомлений. Пароли (и их хэши) в событие не входят.
type PasswordChangedEvent struct {
	UserUID   string    `json:"user_uid"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	ChangedAt time.Time `json:"changed_at"`
}
