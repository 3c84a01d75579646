package login

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/messmate/internal/ledger"
	"github.com/magabrotheeeer/messmate/internal/models"
	"github.com/magabrotheeeer/messmate/internal/services/auth"
)

type AuthServiceMock struct {
	mock.Mock
}

func (m *AuthServiceMock) Login(username, pin string) (models.User, error) {
	args := m.Called(username, pin)
	return args.Get(0).(models.User), args.Error(1)
}

func (m *AuthServiceMock) IssueToken(user models.User) (string, error) {
	args := m.Called(user)
	return args.String(0), args.Error(1)
}

type SessionMock struct {
	mock.Mock
}

func (m *SessionMock) SignIn(ctx context.Context, user models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func TestLoginHandler_ServeHTTP(t *testing.T) {
	owner := models.User{Username: "admin", PinHash: "hash", Role: models.RoleOwner}

	tests := []struct {
		name           string
		body           string
		setup          func(a *AuthServiceMock, s *SessionMock)
		wantStatusCode int
		wantStatus     string
		wantError      string
		wantWarning    bool
	}{
		{
			name: "valid login",
			body: `{"username":"Admin","pin":"1234"}`,
			setup: func(a *AuthServiceMock, s *SessionMock) {
				a.On("Login", "Admin", "1234").Return(owner, nil)
				a.On("IssueToken", owner).Return("tok", nil)
				s.On("SignIn", mock.Anything, owner).Return(nil)
			},
			wantStatusCode: http.StatusOK,
			wantStatus:     "OK",
		},
		{
			name:           "invalid json body",
			body:           `not a json`,
			wantStatusCode: http.StatusBadRequest,
			wantStatus:     "Error",
			wantError:      "invalid request body",
		},
		{
			name:           "missing pin",
			body:           `{"username":"admin"}`,
			wantStatusCode: http.StatusUnprocessableEntity,
			wantStatus:     "Error",
			wantError:      "field Pin is a required field",
		},
		{
			name: "wrong pin",
			body: `{"username":"admin","pin":"9999"}`,
			setup: func(a *AuthServiceMock, _ *SessionMock) {
				a.On("Login", "admin", "9999").Return(models.User{}, auth.ErrInvalidCredentials)
			},
			wantStatusCode: http.StatusUnauthorized,
			wantStatus:     "Error",
			wantError:      auth.ErrInvalidCredentials.Error(),
		},
		{
			name: "token error",
			body: `{"username":"admin","pin":"1234"}`,
			setup: func(a *AuthServiceMock, _ *SessionMock) {
				a.On("Login", "admin", "1234").Return(owner, nil)
				a.On("IssueToken", owner).Return("", errors.New("sign"))
			},
			wantStatusCode: http.StatusInternalServerError,
			wantStatus:     "Error",
			wantError:      "internal error",
		},
		{
			name: "session not saved",
			body: `{"username":"admin","pin":"1234"}`,
			setup: func(a *AuthServiceMock, s *SessionMock) {
				a.On("Login", "admin", "1234").Return(owner, nil)
				a.On("IssueToken", owner).Return("tok", nil)
				s.On("SignIn", mock.Anything, owner).Return(fmt.Errorf("x: %w", ledger.ErrPersistenceFailed))
			},
			wantStatusCode: http.StatusOK,
			wantStatus:     "OK",
			wantWarning:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, s := new(AuthServiceMock), new(SessionMock)
			if tt.setup != nil {
				tt.setup(a, s)
			}
			h := New(newNoopLogger(), a, s)

			req := httptest.NewRequest(http.MethodPost, "/api/v1/login", bytes.NewBufferString(tt.body))
			req = req.WithContext(context.WithValue(req.Context(), middleware.RequestIDKey, "reqid123"))
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatusCode, rec.Code)
			var resp map[string]any
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, tt.wantStatus, resp["status"])
			if tt.wantError != "" {
				assert.Equal(t, tt.wantError, resp["error"])
			}
			if tt.wantStatus == "OK" {
				data := resp["data"].(map[string]any)
				assert.Equal(t, "tok", data["token"])
				assert.Equal(t, "OWNER", data["role"])
				_, hasWarning := resp["warning"]
				assert.Equal(t, tt.wantWarning, hasWarning)
			}
			a.AssertExpectations(t)
			s.AssertExpectations(t)
		})
	}
}
