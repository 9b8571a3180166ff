package entity

import "time"

// Session vincula un token opaco con un usuario autenticado.
// Vive solo en el session store (memoria o Redis), nunca en PostgreSQL.
type Session struct {
	ID        string
	UserID    string
	CreatedAt time.Time
	ExpiresAt time.Time
}

// Expired indica si la sesión ya venció en el instante dado.
func (s *Session) Expired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}
