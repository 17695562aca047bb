// Package validation содержит смысловую валидацию профиля и смены пароля.
//
// Функции пакета чистые: без I/O и побочных эффектов. Результат — тегированная
// первая найденная ошибка (*Error c полем и причиной) либо nil, если проверка
// пройдена. Ошибка валидации никогда не покидает слой сервисов как
// нетипизированная: обработчики переводят её в пользовательский ответ.
package validation

import (
	"fmt"
	"net/mail"
	"regexp"
	"unicode"
)

const (
	// UsernameMinLen минимальная длина имени пользователя.
	UsernameMinLen = 3
	// UsernameMaxLen максимальная длина имени пользователя.
	UsernameMaxLen = 150
)

// usernameRe допустимые символы имени пользователя: буквы, цифры, "_", ".", "-".
var usernameRe = regexp.MustCompile(`^[a-zA-Z0-9_.-]+$`)

// Error описывает первое найденное нарушение правила валидации.
type Error struct {
	Field  string // Поле запроса, не прошедшее проверку
	Reason string // Причина в человекочитаемом виде
}

func (e *Error) Error() string {
	return fmt.Sprintf("validation failed: %s: %s", e.Field, e.Reason)
}

// PasswordPolicy набор требований к новому паролю. Каждое правило
// включается отдельно, значения задаются в конфигурации сервиса.
// Теги env-default здесь не используются: cleanenv не отличает явный
// false от незаполненного поля, поэтому значения по умолчанию
// подставляются через DefaultPasswordPolicy до чтения конфига.
type PasswordPolicy struct {
	MinLength     int  `yaml:"min_length"`     // Минимальная длина нового пароля
	RequireDigit  bool `yaml:"require_digit"`  // Требовать хотя бы одну цифру
	RequireLetter bool `yaml:"require_letter"` // Требовать хотя бы одну букву
	DisallowReuse bool `yaml:"disallow_reuse"` // Запретить совпадение с текущим паролем
}

// DefaultPasswordPolicy возвращает политику по умолчанию: длина от 8,
// обязательные буква и цифра, запрет повторного использования.
func DefaultPasswordPolicy() PasswordPolicy {
	return PasswordPolicy{
		MinLength:     8,
		RequireDigit:  true,
		RequireLetter: true,
		DisallowReuse: true,
	}
}

// Profile проверяет имя пользователя и email при редактировании профиля.
// Возвращает первое нарушение или nil.
func Profile(username, email string) *Error {
	if username == "" {
		return &Error{Field: "username", Reason: "must not be empty"}
	}
	if len(username) < UsernameMinLen || len(username) > UsernameMaxLen {
		return &Error{
			Field:  "username",
			Reason: fmt.Sprintf("length must be between %d and %d characters", UsernameMinLen, UsernameMaxLen),
		}
	}
	if !usernameRe.MatchString(username) {
		return &Error{
			Field:  "username",
			Reason: "may contain only letters, digits, '_', '.' and '-'",
		}
	}

	if email == "" {
		return &Error{Field: "email", Reason: "must not be empty"}
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return &Error{Field: "email", Reason: "must be a valid email address"}
	}
	return nil
}

// Password проверяет новый пароль на соответствие политике.
// Возвращает первое нарушение или nil.
func Password(p PasswordPolicy, newPassword string) *Error {
	if len(newPassword) < p.MinLength {
		return &Error{
			Field:  "new_password",
			Reason: fmt.Sprintf("must be at least %d characters long", p.MinLength),
		}
	}
	if p.RequireLetter && !containsFunc(newPassword, unicode.IsLetter) {
		return &Error{Field: "new_password", Reason: "must contain at least one letter"}
	}
	if p.RequireDigit && !containsFunc(newPassword, unicode.IsDigit) {
		return &Error{Field: "new_password", Reason: "must contain at least one digit"}
	}
	return nil
}

// PasswordChange проверяет пару "текущий пароль — новый пароль" при смене.
// Помимо политики нового пароля проверяется запрет повторного использования.
func PasswordChange(p PasswordPolicy, currentPassword, newPassword string) *Error {
	if verr := Password(p, newPassword); verr != nil {
		return verr
	}
	if p.DisallowReuse && newPassword == currentPassword {
		return &Error{Field: "new_password", Reason: "must differ from the current password"}
	}
	return nil
}

func containsFunc(s string, f func(rune) bool) bool {
	for _, r := range s {
		if f(r) {
			return true
		}
	}
	return false
}
