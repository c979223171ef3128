package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"task_backend/internal/feature/auth/domain/entity"
	"task_backend/internal/feature/auth/usecase"
)

// mockAuthUsecase is a func-field mock of AuthUsecase.
type mockAuthUsecase struct {
	RegisterFunc func(ctx context.Context, in usecase.RegisterInput) (*entity.User, error)
	LoginFunc    func(ctx context.Context, username, password string) (string, error)
}

func (m *mockAuthUsecase) Register(ctx context.Context, in usecase.RegisterInput) (*entity.User, error) {
	if m.RegisterFunc != nil {
		return m.RegisterFunc(ctx, in)
	}
	return nil, errors.New("register not stubbed")
}

func (m *mockAuthUsecase) Login(ctx context.Context, username, password string) (string, error) {
	if m.LoginFunc != nil {
		return m.LoginFunc(ctx, username, password)
	}
	return "", usecase.ErrInvalidCredentials
}

func performJSON(t *testing.T, h gin.HandlerFunc, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	router := gin.New()
	router.POST(path, h)

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestAuthHandler_Register(t *testing.T) {
	gin.SetMode(gin.TestMode)

	created := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name             string
		requestBody      any
		mockRegisterFunc func(ctx context.Context, in usecase.RegisterInput) (*entity.User, error)
		expectedStatus   int
		expectedMessage  string
	}{
		{
			name:        "success: returns the user without the hash",
			requestBody: gin.H{"username": "alice", "firstName": "Alice", "lastName": "L", "password": "wonderland"},
			mockRegisterFunc: func(ctx context.Context, in usecase.RegisterInput) (*entity.User, error) {
				return &entity.User{
					ID: 1, Username: in.Username, FirstName: in.FirstName, LastName: in.LastName,
					PasswordHash: "$2a$10$secret", CreatedOn: created, Version: 1,
				}, nil
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:        "failure: missing username reaches the credential service",
			requestBody: gin.H{"password": "wonderland"},
			mockRegisterFunc: func(ctx context.Context, in usecase.RegisterInput) (*entity.User, error) {
				if in.Username == "" {
					return nil, usecase.ErrUsernameRequired
				}
				return nil, errors.New("unexpected username")
			},
			expectedStatus:  http.StatusBadRequest,
			expectedMessage: "Username is required.",
		},
		{
			name:            "failure: missing password",
			requestBody:     gin.H{"username": "alice"},
			expectedStatus:  http.StatusBadRequest,
			expectedMessage: "Invalid request body.",
		},
		{
			name:            "failure: empty body",
			requestBody:     nil,
			expectedStatus:  http.StatusBadRequest,
			expectedMessage: "Invalid request body.",
		},
		{
			name:        "failure: duplicate username",
			requestBody: gin.H{"username": "alice", "password": "wonderland"},
			mockRegisterFunc: func(ctx context.Context, in usecase.RegisterInput) (*entity.User, error) {
				return nil, usecase.ErrDuplicateUsername
			},
			expectedStatus:  http.StatusBadRequest,
			expectedMessage: "Username already exists.",
		},
		{
			name:        "failure: persistence fault is a generic 500",
			requestBody: gin.H{"username": "alice", "password": "wonderland"},
			mockRegisterFunc: func(ctx context.Context, in usecase.RegisterInput) (*entity.User, error) {
				return nil, errors.New("dial tcp 10.0.0.5:5432: connection refused")
			},
			expectedStatus:  http.StatusInternalServerError,
			expectedMessage: "Internal server error.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewAuthHandler(&mockAuthUsecase{RegisterFunc: tt.mockRegisterFunc})

			w := performJSON(t, h.Register, "/auth/register", tt.requestBody)

			assert.Equal(t, tt.expectedStatus, w.Code)
			var body map[string]any
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))

			if tt.expectedStatus == http.StatusOK {
				assert.Equal(t, "alice", body["username"])
				assert.Equal(t, "Alice", body["firstName"])
				assert.NotContains(t, body, "passwordHash")
				assert.NotContains(t, w.Body.String(), "$2a$10$secret")
				return
			}
			assert.Equal(t, tt.expectedMessage, body["message"])
			assert.NotContains(t, w.Body.String(), "10.0.0.5")
			assert.NotContains(t, w.Body.String(), "RegisterReq")
		})
	}
}

func TestAuthHandler_Login(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name           string
		requestBody    any
		mockLoginFunc  func(ctx context.Context, username, password string) (string, error)
		expectedStatus int
		expectedBody   gin.H
	}{
		{
			name:           "success: user login",
			requestBody:    gin.H{"username": "alice", "password": "wonderland"},
			mockLoginFunc:  func(ctx context.Context, username, password string) (string, error) { return "dummy-jwt-token", nil },
			expectedStatus: http.StatusOK,
			expectedBody:   gin.H{"token": "dummy-jwt-token"},
		},
		{
			name:           "failure: invalid credentials",
			requestBody:    gin.H{"username": "alice", "password": "nope"},
			mockLoginFunc:  nil,
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   gin.H{"code": "INVALID_CREDENTIALS", "message": "Invalid username or password"},
		},
		{
			name:           "failure: missing password",
			requestBody:    gin.H{"username": "alice"},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   gin.H{"code": "INVALID_REQUEST", "message": "Invalid request body."},
		},
		{
			name:           "failure: malformed json",
			requestBody:    "{not json",
			expectedStatus: http.StatusBadRequest,
			expectedBody:   gin.H{"code": "INVALID_REQUEST", "message": "Invalid request body."},
		},
		{
			name:        "failure: token issue error is a 500",
			requestBody: gin.H{"username": "alice", "password": "wonderland"},
			mockLoginFunc: func(ctx context.Context, username, password string) (string, error) {
				return "", errors.New("failed to generate token: key is invalid")
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   gin.H{"code": "INTERNAL_ERROR", "message": "Internal server error."},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewAuthHandler(&mockAuthUsecase{LoginFunc: tt.mockLoginFunc})

			w := performJSON(t, h.Login, "/auth/login", tt.requestBody)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedBody == nil {
				return
			}
			var body gin.H
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tt.expectedBody, body)
		})
	}
}
