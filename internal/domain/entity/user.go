package entity

import "time"

// User representa un usuario del sistema (login por nombre).
type User struct {
	ID           string
	Name         string // único
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	CreatedAt    time.Time
}
