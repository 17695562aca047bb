// Package storage реализует хранилище данных на основе PostgreSQL
// для пользователей и вычислений. Ожидаемые исходы (запись не найдена,
// нарушение уникальности) возвращаются как типизированные ошибки пакета,
// а не как сырые ошибки драйвера.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	// Регистрация драйвера pgx для использования с database/sql.
	_ "github.com/jackc/pgx/v5/stdlib"
)

// Типизированные ошибки хранилища.
var (
	// ErrUserNotFound пользователь с таким идентификатором не существует.
	ErrUserNotFound = errors.New("user not found")
	// ErrUsernameTaken имя пользователя занято другим пользователем.
	ErrUsernameTaken = errors.New("username is already taken")
	// ErrEmailTaken адрес почты занят другим пользователем.
	ErrEmailTaken = errors.New("email is already taken")
	// ErrCalculationNotFound вычисление не существует или принадлежит другому пользователю.
	ErrCalculationNotFound = errors.New("calculation not found")
)

// Storage инкапсулирует соединение с базой данных PostgreSQL.
type Storage struct {
	DB *sql.DB
}

// New создаёт подключение к PostgreSQL и проверяет его доступность.
func New(storageConnectionString string) (*Storage, error) {
	const op = "storage.New"

	db, err := sql.Open("pgx", storageConnectionString)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err = db.PingContext(context.Background()); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Storage{
		DB: db,
	}, nil
}

// uniqueViolation переводит нарушение уникального ограничения в
// типизированную ошибку по имени ограничения. Проверка уникальности и
// запись выполняются одним оператором, сериализацию конкурирующих
// запросов обеспечивает сама база.
func uniqueViolation(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != pgerrcode.UniqueViolation {
		return nil
	}
	switch pgErr.ConstraintName {
	case "users_username_key":
		return ErrUsernameTaken
	case "users_email_key":
		return ErrEmailTaken
	}
	return nil
}
