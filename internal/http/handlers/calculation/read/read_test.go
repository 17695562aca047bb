package read

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/calculations-api/internal/http/middlewarectx"
	"github.com/magabrotheeeer/calculations-api/internal/models"
	"github.com/magabrotheeeer/calculations-api/internal/storage"
)

// MockService реализует интерфейс read.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) Read(ctx context.Context, userUID, id string) (*models.Calculation, error) {
	args := m.Called(ctx, userUID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Calculation), args.Error(1)
}

func TestReadHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	calc := &models.Calculation{
		ID:      "calc-1",
		UserUID: "uid-1",
		Type:    models.CalculationAddition,
		Inputs:  []float64{1, 2},
		Result:  3,
	}

	tests := []struct {
		name           string
		id             string
		userUID        string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:    "успешное чтение вычисления",
			id:      "calc-1",
			userUID: "uid-1",
			setupMock: func(m *MockService) {
				m.On("Read", mock.Anything, "uid-1", "calc-1").
					Return(calc, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"result":3`,
		},
		{
			name:    "вычисление не найдено",
			id:      "calc-gone",
			userUID: "uid-1",
			setupMock: func(m *MockService) {
				m.On("Read", mock.Anything, "uid-1", "calc-gone").
					Return(nil, storage.ErrCalculationNotFound)
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `"error":"not_found"`,
		},
		{
			name:           "отсутствует авторизация",
			id:             "calc-1",
			userUID:        "",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `"error":"unauthorized"`,
		},
		{
			name:    "ошибка сервиса",
			id:      "calc-1",
			userUID: "uid-1",
			setupMock: func(m *MockService) {
				m.On("Read", mock.Anything, "uid-1", "calc-1").
					Return(nil, errors.New("db error"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `"error":"internal"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			req := httptest.NewRequest(http.MethodGet, "/calculations/"+tt.id, nil)

			ctx := context.WithValue(req.Context(), middlewarectx.UserUID, tt.userUID)
			ctx = context.WithValue(ctx, middleware.RequestIDKey, "req-id")
			req = req.WithContext(ctx)

			// Устанавливаем URL параметр id для chi
			rctx := chi.NewRouteContext()
			rctx.URLParams.Add("id", tt.id)
			req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))

			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.expectedBody)

			mockService.AssertExpectations(t)
		})
	}
}
