package services_test

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/calculations-api/internal/lib/password"
	"github.com/magabrotheeeer/calculations-api/internal/lib/validation"
	"github.com/magabrotheeeer/calculations-api/internal/models"
	services "github.com/magabrotheeeer/calculations-api/internal/services/user"
	"github.com/magabrotheeeer/calculations-api/internal/storage"
)

// Мок для UserRepository
type UserRepoMock struct {
	mock.Mock
}

func (m *UserRepoMock) GetUser(ctx context.Context, userUID string) (*models.User, error) {
	args := m.Called(ctx, userUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *UserRepoMock) UpdateUserProfile(ctx context.Context, userUID, username, email, firstName, lastName string) (*models.User, error) {
	args := m.Called(ctx, userUID, username, email, firstName, lastName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *UserRepoMock) UpdateUserPassword(ctx context.Context, userUID, passwordHash string) error {
	args := m.Called(ctx, userUID, passwordHash)
	return args.Error(0)
}

// Мок для EventPublisher
type PublisherMock struct {
	mock.Mock
}

func (m *PublisherMock) PublishPasswordChanged(ctx context.Context, event models.PasswordChangedEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func testUser(hash string) *models.User {
	return &models.User{
		UID:          "uid-1",
		Username:     "carol",
		Email:        "carol@example.com",
		PasswordHash: hash,
		IsActive:     true,
	}
}

func TestUserService_UpdateProfile(t *testing.T) {
	tests := []struct {
		name       string
		username   string
		email      string
		setupMocks func(r *UserRepoMock)
		wantErr    error
		wantVerr   bool
	}{
		{
			name:     "успешное обновление профиля",
			username: "carol_new",
			email:    "carol.new@example.com",
			setupMocks: func(r *UserRepoMock) {
				r.On("GetUser", mock.Anything, "uid-1").Return(testUser("hash"), nil).Once()
				r.On("UpdateUserProfile", mock.Anything, "uid-1", "carol_new", "carol.new@example.com", "Carol", "N").
					Return(&models.User{UID: "uid-1", Username: "carol_new", Email: "carol.new@example.com"}, nil).Once()
			},
		},
		{
			name:       "ошибка валидации не доходит до хранилища",
			username:   "ab",
			email:      "carol@example.com",
			setupMocks: func(_ *UserRepoMock) {},
			wantVerr:   true,
		},
		{
			name:     "пользователь не найден",
			username: "carol_new",
			email:    "carol.new@example.com",
			setupMocks: func(r *UserRepoMock) {
				r.On("GetUser", mock.Anything, "uid-1").Return(nil, storage.ErrUserNotFound).Once()
			},
			wantErr: storage.ErrUserNotFound,
		},
		{
			name:     "конфликт username",
			username: "alice",
			email:    "carol@example.com",
			setupMocks: func(r *UserRepoMock) {
				r.On("GetUser", mock.Anything, "uid-1").Return(testUser("hash"), nil).Once()
				r.On("UpdateUserProfile", mock.Anything, "uid-1", "alice", "carol@example.com", "Carol", "N").
					Return(nil, storage.ErrUsernameTaken).Once()
			},
			wantErr: storage.ErrUsernameTaken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(UserRepoMock)
			tt.setupMocks(repo)
			svc := services.NewUserService(repo, nil, validation.DefaultPasswordPolicy(), newTestLogger())

			got, err := svc.UpdateProfile(context.Background(), "uid-1", tt.username, tt.email, "Carol", "N")

			switch {
			case tt.wantVerr:
				var verr *validation.Error
				require.Error(t, err)
				assert.True(t, errors.As(err, &verr))
				assert.Nil(t, got)
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)
			default:
				require.NoError(t, err)
				assert.Equal(t, tt.username, got.Username)
			}

			repo.AssertExpectations(t)
		})
	}
}

func TestUserService_ChangePassword(t *testing.T) {
	currentHash, err := password.GetHash("OldPass1")
	require.NoError(t, err)

	tests := []struct {
		name       string
		current    string
		new        string
		setupMocks func(r *UserRepoMock)
		wantErr    error
		wantVerr   bool
	}{
		{
			name:    "успешная смена пароля",
			current: "OldPass1",
			new:     "NewPass1",
			setupMocks: func(r *UserRepoMock) {
				r.On("GetUser", mock.Anything, "uid-1").Return(testUser(currentHash), nil).Once()
				r.On("UpdateUserPassword", mock.Anything, "uid-1", mock.MatchedBy(func(hash string) bool {
					// сохраняется именно хэш нового пароля, а не открытый текст
					return hash != "NewPass1" && password.CompareHash(hash, "NewPass1") == nil
				})).Return(nil).Once()
			},
		},
		{
			name:       "новый пароль короче восьми символов",
			current:    "OldPass1",
			new:        "abcdef1",
			setupMocks: func(_ *UserRepoMock) {},
			wantVerr:   true,
		},
		{
			name:       "новый пароль совпадает с текущим",
			current:    "SamePass1",
			new:        "SamePass1",
			setupMocks: func(_ *UserRepoMock) {},
			wantVerr:   true,
		},
		{
			name:    "неверный текущий пароль",
			current: "WrongPass1",
			new:     "NewPass1",
			setupMocks: func(r *UserRepoMock) {
				r.On("GetUser", mock.Anything, "uid-1").Return(testUser(currentHash), nil).Once()
			},
			wantErr: services.ErrInvalidCredentials,
		},
		{
			name:    "пользователь не найден",
			current: "OldPass1",
			new:     "NewPass1",
			setupMocks: func(r *UserRepoMock) {
				r.On("GetUser", mock.Anything, "uid-1").Return(nil, storage.ErrUserNotFound).Once()
			},
			wantErr: storage.ErrUserNotFound,
		},
		{
			name:    "повреждённый хэш не принимается за неверный пароль",
			current: "OldPass1",
			new:     "NewPass1",
			setupMocks: func(r *UserRepoMock) {
				r.On("GetUser", mock.Anything, "uid-1").Return(testUser("corrupted-hash"), nil).Once()
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(UserRepoMock)
			tt.setupMocks(repo)
			svc := services.NewUserService(repo, nil, validation.DefaultPasswordPolicy(), newTestLogger())

			err := svc.ChangePassword(context.Background(), "uid-1", tt.current, tt.new)

			switch {
			case tt.wantVerr:
				var verr *validation.Error
				require.Error(t, err)
				assert.True(t, errors.As(err, &verr))
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
			case tt.name == "повреждённый хэш не принимается за неверный пароль":
				require.Error(t, err)
				assert.NotErrorIs(t, err, services.ErrInvalidCredentials)
			default:
				require.NoError(t, err)
			}

			repo.AssertExpectations(t)
		})
	}
}

func TestUserService_ChangePassword_PublishesEvent(t *testing.T) {
	currentHash, err := password.GetHash("OldPass1")
	require.NoError(t, err)

	repo := new(UserRepoMock)
	repo.On("GetUser", mock.Anything, "uid-1").Return(testUser(currentHash), nil).Once()
	repo.On("UpdateUserPassword", mock.Anything, "uid-1", mock.AnythingOfType("string")).Return(nil).Once()

	events := new(PublisherMock)
	events.On("PublishPasswordChanged", mock.Anything, mock.MatchedBy(func(e models.PasswordChangedEvent) bool {
		return e.UserUID == "uid-1" && e.Email == "carol@example.com" && !e.ChangedAt.IsZero()
	})).Return(nil).Once()

	svc := services.NewUserService(repo, events, validation.DefaultPasswordPolicy(), newTestLogger())
	require.NoError(t, svc.ChangePassword(context.Background(), "uid-1", "OldPass1", "NewPass1"))

	repo.AssertExpectations(t)
	events.AssertExpectations(t)
}

func TestUserService_ChangePassword_PublishFailureDoesNotFailRequest(t *testing.T) {
	currentHash, err := password.GetHash("OldPass1")
	require.NoError(t, err)

	repo := new(UserRepoMock)
	repo.On("GetUser", mock.Anything, "uid-1").Return(testUser(currentHash), nil).Once()
	repo.On("UpdateUserPassword", mock.Anything, "uid-1", mock.AnythingOfType("string")).Return(nil).Once()

	events := new(PublisherMock)
	events.On("PublishPasswordChanged", mock.Anything, mock.Anything).
		Return(errors.New("broker unavailable")).Once()

	svc := services.NewUserService(repo, events, validation.DefaultPasswordPolicy(), newTestLogger())
	assert.NoError(t, svc.ChangePassword(context.Background(), "uid-1", "OldPass1", "NewPass1"))
}

func TestUserService_ChangePassword_UnauthorizedLeavesHashUntouched(t *testing.T) {
	currentHash, err := password.GetHash("OldPass1")
	require.NoError(t, err)

	repo := new(UserRepoMock)
	repo.On("GetUser", mock.Anything, "uid-1").Return(testUser(currentHash), nil).Once()
	// UpdateUserPassword не настроен: любой вызов провалит тест

	svc := services.NewUserService(repo, nil, validation.DefaultPasswordPolicy(), newTestLogger())
	err = svc.ChangePassword(context.Background(), "uid-1", "WrongPass1", "NewPass1")

	assert.ErrorIs(t, err, services.ErrInvalidCredentials)
	repo.AssertExpectations(t)
	repo.AssertNotCalled(t, "UpdateUserPassword", mock.Anything, mock.Anything, mock.Anything)
}
