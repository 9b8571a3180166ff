package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/cafe-stock/internal/domain/entity"
	"github.com/jhoicas/cafe-stock/internal/domain/repository"
)

var _ repository.LedgerRepository = (*LedgerRepo)(nil)

// LedgerRepo implementación del puerto LedgerRepository sobre PostgreSQL (usable con pool o tx).
// La tabla es append-only: no hay UPDATE ni DELETE.
type LedgerRepo struct {
	q Querier
}

// NewLedgerRepository construye el adaptador. Pasar pool o tx (Querier).
func NewLedgerRepository(q Querier) *LedgerRepo {
	return &LedgerRepo{q: q}
}

// Create inserta un asiento y asigna entry.ID.
func (r *LedgerRepo) Create(entry *entity.LedgerEntry) error {
	query := `
		INSERT INTO ledger_entries (product_id, kind, quantity, user_id, posted_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`
	err := r.q.QueryRow(context.Background(), query,
		entry.ProductID, entry.Kind, entry.Quantity, entry.UserID, entry.PostedAt,
	).Scan(&entry.ID)
	if err != nil {
		return fmt.Errorf("insert ledger entry: %w", err)
	}
	return nil
}

// ListByProduct lista los asientos de un producto, más recientes primero.
func (r *LedgerRepo) ListByProduct(productID int64, limit, offset int) ([]*entity.LedgerEntry, error) {
	query := `
		SELECT id, product_id, kind, quantity, user_id, posted_at
		FROM ledger_entries WHERE product_id = $1
		ORDER BY posted_at DESC, id DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, productID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list ledger entries: %w", err)
	}
	defer rows.Close()
	var list []*entity.LedgerEntry
	for rows.Next() {
		var e entity.LedgerEntry
		if err := rows.Scan(&e.ID, &e.ProductID, &e.Kind, &e.Quantity, &e.UserID, &e.PostedAt); err != nil {
			return nil, fmt.Errorf("scan ledger entry: %w", err)
		}
		list = append(list, &e)
	}
	return list, rows.Err()
}

// SumByProduct devuelve el total de entradas y salidas de un producto,
// para conciliar el libro contra products.stock.
func (r *LedgerRepo) SumByProduct(productID int64) (in int64, out int64, err error) {
	query := `
		SELECT
			COALESCE(SUM(quantity) FILTER (WHERE kind = 'IN'), 0),
			COALESCE(SUM(quantity) FILTER (WHERE kind = 'OUT'), 0)
		FROM ledger_entries WHERE product_id = $1`
	if err := r.q.QueryRow(context.Background(), query, productID).Scan(&in, &out); err != nil {
		return 0, 0, fmt.Errorf("sum ledger entries: %w", err)
	}
	return in, out, nil
}
