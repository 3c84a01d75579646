package auth_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	customjwt "github.com/magabrotheeeer/messmate/internal/lib/jwt"
	"github.com/magabrotheeeer/messmate/internal/lib/password"
	"github.com/magabrotheeeer/messmate/internal/models"
	"github.com/magabrotheeeer/messmate/internal/services/auth"
)

type JwtMakerMock struct {
	mock.Mock
}

func (m *JwtMakerMock) GenerateToken(username string, role models.Role) (string, error) {
	args := m.Called(username, role)
	return args.String(0), args.Error(1)
}

func (m *JwtMakerMock) ParseToken(token string) (*customjwt.CustomClaims, error) {
	args := m.Called(token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*customjwt.CustomClaims), args.Error(1)
}

func TestService_Login(t *testing.T) {
	svc := auth.New(nil, &JwtMakerMock{})

	tests := []struct {
		name     string
		username string
		pin      string
		wantRole models.Role
		wantErr  error
	}{
		{name: "owner", username: "admin", pin: "1234", wantRole: models.RoleOwner},
		{name: "staff", username: "staff", pin: "0000", wantRole: models.RoleStaff},
		{name: "case insensitive name", username: "ADMIN", pin: "1234", wantRole: models.RoleOwner},
		{name: "surrounding spaces", username: " Staff ", pin: "0000", wantRole: models.RoleStaff},
		{name: "wrong pin", username: "admin", pin: "0000", wantErr: auth.ErrInvalidCredentials},
		{name: "unknown user", username: "cook", pin: "1234", wantErr: auth.ErrInvalidCredentials},
		{name: "empty", username: "", pin: "", wantErr: auth.ErrInvalidCredentials},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user, err := svc.Login(tt.username, tt.pin)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, user.Username)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantRole, user.Role)
		})
	}
}

func TestService_Login_ConfiguredUsers(t *testing.T) {
	users := []models.User{{Username: "cook", PinHash: password.MustHash("4321"), Role: models.RoleStaff}}
	svc := auth.New(users, &JwtMakerMock{})

	_, err := svc.Login("admin", "1234")
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)

	user, err := svc.Login("Cook", "4321")
	require.NoError(t, err)
	assert.Equal(t, "cook", user.Username)
}

func TestService_IssueToken(t *testing.T) {
	maker := &JwtMakerMock{}
	maker.On("GenerateToken", "admin", models.RoleOwner).Return("token123", nil)
	maker.On("GenerateToken", "staff", models.RoleStaff).Return("", errors.New("sign failed"))
	svc := auth.New(nil, maker)

	token, err := svc.IssueToken(models.User{Username: "admin", Role: models.RoleOwner})
	require.NoError(t, err)
	assert.Equal(t, "token123", token)

	_, err = svc.IssueToken(models.User{Username: "staff", Role: models.RoleStaff})
	assert.ErrorContains(t, err, "auth.IssueToken")
	maker.AssertExpectations(t)
}

func TestService_ParseToken(t *testing.T) {
	maker := &JwtMakerMock{}
	maker.On("ParseToken", "good").Return(&customjwt.CustomClaims{Username: "staff", Role: models.RoleStaff}, nil)
	maker.On("ParseToken", "bad").Return(nil, errors.New("expired"))
	svc := auth.New(nil, maker)

	user, err := svc.ParseToken("good")
	require.NoError(t, err)
	assert.Equal(t, models.User{Username: "staff", Role: models.RoleStaff}, user)

	_, err = svc.ParseToken("bad")
	assert.Error(t, err)
}

func TestService_RealMaker(t *testing.T) {
	svc := auth.New(nil, customjwt.NewJWTMaker("secret", time.Hour))

	user, err := svc.Login("admin", "1234")
	require.NoError(t, err)
	token, err := svc.IssueToken(user)
	require.NoError(t, err)

	got, err := svc.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "admin", got.Username)
	assert.Equal(t, models.RoleOwner, got.Role)
}
