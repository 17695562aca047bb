// Package password реализует безопасное хеширование и проверку паролей.
//
// Используется bcrypt: соль встраивается в сам хеш, поэтому два вызова
// GetHash для одного пароля дают разные значения, а CompareHash проверяет
// пароль за константное время относительно места несовпадения.
package password

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// GetHash принимает пароль пользователя и возвращает его bcrypt-хэш
// для хранения в базе данных. Исходный пароль нигде не сохраняется.
func GetHash(password string) (string, error) {
	const op = "password.GetHash"
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return string(hashedPassword), nil
}

// CompareHash сравнивает сохранённый bcrypt-хэш с введённым паролем.
//
// Возвращает nil при совпадении. Несовпадение пароля возвращается как
// bcrypt.ErrMismatchedHashAndPassword; любая другая ошибка означает,
// что сам хеш повреждён, и вызывающий слой обязан трактовать её как
// внутренний сбой, а не как неверный пароль.
func CompareHash(originalHash, externalPassword string) error {
	const op = "password.CompareHash"
	if err := bcrypt.CompareHashAndPassword([]byte(originalHash), []byte(externalPassword)); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// IsMismatch сообщает, означает ли ошибка CompareHash именно неверный
// пароль, а не повреждённый хеш.
func IsMismatch(err error) bool {
	return err != nil && errors.Is(err, bcrypt.ErrMismatchedHashAndPassword)
}
