package entity

import "time"

// Tipos de asiento del libro de movimientos.
const (
	KindIn  = "IN"  // entrada
	KindOut = "OUT" // salida
)

// LedgerEntry representa un asiento del libro de movimientos de stock.
// Es append-only: nunca se modifica ni se borra. La suma de entradas menos
// salidas de un producto debe coincidir siempre con Product.Stock.
type LedgerEntry struct {
	ID        int64
	ProductID int64
	Kind      string // IN | OUT
	Quantity  int64  // siempre positivo; el signo lo da Kind
	UserID    string
	PostedAt  time.Time
}
