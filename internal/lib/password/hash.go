// Package password реализует хеширование и проверку PIN-кодов пользователей.
package password

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// GetHash возвращает bcrypt-хэш PIN-кода.
func GetHash(pin string) (string, error) {
	const op = "password.GetHash"
	hashed, err := bcrypt.GenerateFromPassword([]byte(pin), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return string(hashed), nil
}

// MustHash как GetHash, но паникует при ошибке. Используется для встроенных пользователей.
func MustHash(pin string) string {
	h, err := GetHash(pin)
	if err != nil {
		panic(err)
	}
	return h
}

// CompareHash сравнивает bcrypt-хэш с введённым PIN-кодом.
// Возвращает nil, если PIN подходит.
func CompareHash(originalHash, pin string) error {
	const op = "password.CompareHash"
	if err := bcrypt.CompareHashAndPassword([]byte(originalHash), []byte(pin)); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
