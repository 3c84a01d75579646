// Package jwt выпускает и проверяет JWT-токены сессии с именем и ролью пользователя.
package jwt

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/magabrotheeeer/messmate/internal/models"
)

// CustomClaims описывает пользовательские данные, хранящиеся в JWT.
type CustomClaims struct {
	Username             string      `json:"username"`
	Role                 models.Role `json:"role"`
	jwt.RegisteredClaims             // ExpiresAt, IssuedAt и пр.
}

// MakerImpl выпускает токены, подписанные секретным ключом.
type MakerImpl struct {
	secretKey string
	tokenTTL  time.Duration
	now       func() time.Time
}

// NewJWTMaker создаёт MakerImpl на основе секретного ключа и TTL.
func NewJWTMaker(secretKey string, ttl time.Duration) *MakerImpl {
	return &MakerImpl{
		secretKey: secretKey,
		tokenTTL:  ttl,
		now:       time.Now,
	}
}
