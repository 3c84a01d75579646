package models

// Role — роль пользователя приложения.
type Role string

const (
	// RoleOwner — владелец, имеет доступ к настройкам и выгрузке.
	RoleOwner Role = "OWNER"
	// RoleStaff — сотрудник.
	RoleStaff Role = "STAFF"
)

// User представляет пользователя, который может войти в приложение.
type User struct {
	Username string `json:"username" yaml:"username"`
	PinHash  string `json:"pinHash" yaml:"pin_hash"` // bcrypt-хэш PIN-кода
	Role     Role   `json:"role" yaml:"role"`
}
