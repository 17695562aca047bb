// Package services содержит бизнес-логику управления профилем
// и паролем пользователя.
package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/calculations-api/internal/lib/password"
	"github.com/magabrotheeeer/calculations-api/internal/lib/sl"
	"github.com/magabrotheeeer/calculations-api/internal/lib/validation"
	"github.com/magabrotheeeer/calculations-api/internal/models"
)

// ErrInvalidCredentials текущий пароль не подошёл к сохранённому хэшу.
// Ответ одинаков для любых деталей несовпадения, чтобы по нему нельзя было
// перебирать учётные записи.
var ErrInvalidCredentials = errors.New("invalid credentials")

// UserRepository описывает контракт хранилища пользователей.
type UserRepository interface {
	// GetUser возвращает пользователя по UID или storage.ErrUserNotFound.
	GetUser(ctx context.Context, userUID string) (*models.User, error)

	// UpdateUserProfile атомарно обновляет профиль; конфликт уникальности
	// возвращается как storage.ErrUsernameTaken/ErrEmailTaken.
	UpdateUserProfile(ctx context.Context, userUID, username, email, firstName, lastName string) (*models.User, error)

	// UpdateUserPassword заменяет хэш пароля.
	UpdateUserPassword(ctx context.Context, userUID, passwordHash string) error
}

// EventPublisher публикует событие смены пароля в очередь уведомлений.
type EventPublisher interface {
	PublishPasswordChanged(ctx context.Context, event models.PasswordChangedEvent) error
}

// UserService оркестрирует операции над профилем: валидация, чтение текущей
// записи, проверка пароля (для смены пароля), мутация и сохранение.
type UserService struct {
	repo   UserRepository
	events EventPublisher
	policy validation.PasswordPolicy
	log    *slog.Logger
}

// NewUserService создает новый экземпляр UserService. events может быть nil,
// тогда уведомления о смене пароля не публикуются.
func NewUserService(repo UserRepository, events EventPublisher, policy validation.PasswordPolicy, log *slog.Logger) *UserService {
	return &UserService{
		repo:   repo,
		events: events,
		policy: policy,
		log:    log,
	}
}

// GetProfile возвращает профиль пользователя по UID.
func (s *UserService) GetProfile(ctx context.Context, userUID string) (*models.User, error) {
	return s.repo.GetUser(ctx, userUID)
}

// UpdateProfile обновляет username, email и имя пользователя.
//
// Ошибка валидации возвращается как *validation.Error; отсутствие записи и
// конфликты уникальности приходят типизированными из хранилища. Повторная
// отправка текущих значений не требует отдельной проверки уникальности:
// UPDATE с теми же значениями не может нарушить ограничение о самого себя.
func (s *UserService) UpdateProfile(ctx context.Context, userUID, username, email, firstName, lastName string) (*models.User, error) {
	if verr := validation.Profile(username, email); verr != nil {
		return nil, verr
	}

	if _, err := s.repo.GetUser(ctx, userUID); err != nil {
		return nil, err
	}

	updated, err := s.repo.UpdateUserProfile(ctx, userUID, username, email, firstName, lastName)
	if err != nil {
		return nil, err
	}

	s.log.Info("profile updated",
		slog.String("user_uid", userUID),
		slog.String("username", updated.Username))
	return updated, nil
}

// ChangePassword меняет пароль пользователя.
//
// Порядок строгий: валидация политики, чтение записи, проверка текущего
// пароля, хэширование нового, сохранение. Пароли в открытом виде живут
// только в рамках этого вызова и никогда не логируются. Повреждённый
// сохранённый хэш не маскируется под неверный пароль, а возвращается как
// внутренняя ошибка.
func (s *UserService) ChangePassword(ctx context.Context, userUID, currentPassword, newPassword string) error {
	if verr := validation.PasswordChange(s.policy, currentPassword, newPassword); verr != nil {
		return verr
	}

	user, err := s.repo.GetUser(ctx, userUID)
	if err != nil {
		return err
	}

	if err := password.CompareHash(user.PasswordHash, currentPassword); err != nil {
		if password.IsMismatch(err) {
			return ErrInvalidCredentials
		}
		return err
	}

	newHash, err := password.GetHash(newPassword)
	if err != nil {
		return err
	}

	if err := s.repo.UpdateUserPassword(ctx, userUID, newHash); err != nil {
		return err
	}

	s.log.Info("password changed", slog.String("user_uid", userUID))

	if s.events != nil {
		event := models.PasswordChangedEvent{
			UserUID:   user.UID,
			Username:  user.Username,
			Email:     user.Email,
			ChangedAt: time.Now().UTC(),
		}
		if err := s.events.PublishPasswordChanged(ctx, event); err != nil {
			// уведомление не должно ломать уже выполненную смену пароля
			s.log.Warn("failed to publish password changed event",
				slog.String("user_uid", userUID), sl.Err(err))
		}
	}

	return nil
}
