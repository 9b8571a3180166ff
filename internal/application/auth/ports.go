package auth

import (
	"context"

	"github.com/jhoicas/cafe-stock/internal/domain/entity"
)

// SessionStore almacén de sesiones vivas, keyed por ID de sesión.
// Get devuelve (nil, nil) cuando la sesión no existe o ya fue purgada.
type SessionStore interface {
	Put(ctx context.Context, session *entity.Session) error
	Get(ctx context.Context, id string) (*entity.Session, error)
	Delete(ctx context.Context, id string) error
}
