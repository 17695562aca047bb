// Package services содержит логику регистрации, входа и проверки JWT.
package services

import (
	"context"
	"errors"
	"log/slog"

	"github.com/magabrotheeeer/calculations-api/internal/lib/jwt"
	"github.com/magabrotheeeer/calculations-api/internal/lib/password"
	"github.com/magabrotheeeer/calculations-api/internal/lib/validation"
	"github.com/magabrotheeeer/calculations-api/internal/models"
	"github.com/magabrotheeeer/calculations-api/internal/storage"
)

// ErrInvalidCredentials неверная пара username/пароль. Ответ одинаков
// для неизвестного пользователя и неверного пароля, чтобы по нему нельзя
// было перечислять учётные записи.
var ErrInvalidCredentials = errors.New("invalid credentials")

// UserRepository описывает контракт для работы с пользователями в базе данных.
type UserRepository interface {
	// CreateUser сохраняет нового пользователя и возвращает его UID.
	CreateUser(ctx context.Context, user models.User) (string, error)

	// GetUser возвращает пользователя по UID.
	GetUser(ctx context.Context, userUID string) (*models.User, error)

	// GetUserByUsername возвращает пользователя по имени.
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
}

// AuthService отвечает за регистрацию, авторизацию и валидацию JWT.
type AuthService struct {
	users    UserRepository
	jwtMaker jwt.Maker
	policy   validation.PasswordPolicy
	log      *slog.Logger
}

// NewAuthService создает новый экземпляр AuthService.
func NewAuthService(users UserRepository, jwtMaker jwt.Maker, policy validation.PasswordPolicy, log *slog.Logger) *AuthService {
	return &AuthService{
		users:    users,
		jwtMaker: jwtMaker,
		policy:   policy,
		log:      log,
	}
}

// Register создает нового пользователя с хэшированием пароля.
// Возвращает созданную запись.
func (s *AuthService) Register(ctx context.Context, username, email, firstName, lastName, rawPassword string) (*models.User, error) {
	if verr := validation.Profile(username, email); verr != nil {
		return nil, verr
	}
	if verr := validation.Password(s.policy, rawPassword); verr != nil {
		return nil, verr
	}

	hashed, err := password.GetHash(rawPassword)
	if err != nil {
		return nil, err
	}

	uid, err := s.users.CreateUser(ctx, models.User{
		Username:     username,
		Email:        email,
		FirstName:    firstName,
		LastName:     lastName,
		PasswordHash: hashed,
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("user registered", slog.String("user_uid", uid), slog.String("username", username))
	return s.users.GetUser(ctx, uid)
}

// Login проверяет пароль пользователя и генерирует JWT.
func (s *AuthService) Login(ctx context.Context, username, rawPassword string) (string, *models.User, error) {
	user, err := s.users.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, err
	}
	if err := password.CompareHash(user.PasswordHash, rawPassword); err != nil {
		if password.IsMismatch(err) {
			return "", nil, ErrInvalidCredentials
		}
		// повреждённый хэш — внутренний сбой, а не неверный пароль
		return "", nil, err
	}

	token, err := s.jwtMaker.GenerateToken(user.Username, user.UID)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

// ValidateToken проверяет JWT и возвращает идентичность пользователя из claims.
func (s *AuthService) ValidateToken(_ context.Context, token string) (*models.User, error) {
	claims, err := s.jwtMaker.ParseToken(token)
	if err != nil {
		return nil, err
	}
	return &models.User{
		Username: claims.Username,
		UID:      claims.UserUID,
	}, nil
}
