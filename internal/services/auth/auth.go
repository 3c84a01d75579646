// Package auth проверяет учётные данные сотрудников столовой и выпускает токены сессии.
package auth

import (
	"errors"
	"fmt"
	"strings"

	"github.com/magabrotheeeer/messmate/internal/lib/jwt"
	"github.com/magabrotheeeer/messmate/internal/lib/password"
	"github.com/magabrotheeeer/messmate/internal/models"
)

// ErrInvalidCredentials возвращается при неизвестном имени или неверном PIN.
var ErrInvalidCredentials = errors.New("auth: invalid credentials")

// TokenMaker выпускает и проверяет токены сессии.
type TokenMaker interface {
	GenerateToken(username string, role models.Role) (string, error)
	ParseToken(token string) (*jwt.CustomClaims, error)
}

// DefaultUsers возвращает встроенных пользователей: admin/1234 (OWNER) и staff/0000 (STAFF).
func DefaultUsers() []models.User {
	return []models.User{
		{Username: "admin", PinHash: password.MustHash("1234"), Role: models.RoleOwner},
		{Username: "staff", PinHash: password.MustHash("0000"), Role: models.RoleStaff},
	}
}

// Service отвечает за вход по имени и PIN и за токены.
type Service struct {
	users    []models.User
	jwtMaker TokenMaker
}

// New создаёт Service. Пустой список users заменяется на DefaultUsers.
func New(users []models.User, jwtMaker TokenMaker) *Service {
	if len(users) == 0 {
		users = DefaultUsers()
	}
	return &Service{users: users, jwtMaker: jwtMaker}
}

// Login ищет пользователя без учёта регистра имени и сверяет PIN с хэшем.
func (s *Service) Login(username, pin string) (models.User, error) {
	name := strings.TrimSpace(username)
	for _, u := range s.users {
		if !strings.EqualFold(u.Username, name) {
			continue
		}
		if err := password.CompareHash(u.PinHash, pin); err != nil {
			return models.User{}, ErrInvalidCredentials
		}
		return u, nil
	}
	return models.User{}, ErrInvalidCredentials
}

// IssueToken выпускает токен сессии для пользователя.
func (s *Service) IssueToken(user models.User) (string, error) {
	const op = "auth.IssueToken"
	token, err := s.jwtMaker.GenerateToken(user.Username, user.Role)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return token, nil
}

// ParseToken проверяет токен и восстанавливает пользователя без хэша PIN.
func (s *Service) ParseToken(token string) (models.User, error) {
	const op = "auth.ParseToken"
	claims, err := s.jwtMaker.ParseToken(token)
	if err != nil {
		return models.User{}, fmt.Errorf("%s: %w", op, err)
	}
	return models.User{Username: claims.Username, Role: claims.Role}, nil
}
