package repository

import "github.com/jhoicas/cafe-stock/internal/domain/entity"

// LedgerRepository puerto de persistencia para el libro de movimientos (append-only).
type LedgerRepository interface {
	// Create inserta el asiento y asigna entry.ID.
	Create(entry *entity.LedgerEntry) error
	ListByProduct(productID int64, limit, offset int) ([]*entity.LedgerEntry, error)
	// SumByProduct devuelve el total de entradas y salidas registradas para un producto.
	SumByProduct(productID int64) (in int64, out int64, err error)
}
