package repository

import "github.com/jhoicas/cafe-stock/internal/domain/entity"

// UserRepository puerto de persistencia para User.
// Los getters devuelven (nil, nil) cuando el usuario no existe.
type UserRepository interface {
	Create(user *entity.User) error
	GetByID(id string) (*entity.User, error)
	GetByName(name string) (*entity.User, error)
	Count() (int64, error)
}
