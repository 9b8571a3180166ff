package entity

import "time"

// Product representa un producto del catálogo de la cafetería.
// Stock solo se modifica al registrar asientos en el libro de movimientos;
// MinStock es informativo (umbral de reposición).
type Product struct {
	ID        int64
	Name      string
	Stock     int64 // invariante: >= 0
	MinStock  int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// BelowMinimum indica si el stock actual está por debajo del umbral mínimo.
func (p *Product) BelowMinimum() bool {
	return p.Stock < p.MinStock
}
