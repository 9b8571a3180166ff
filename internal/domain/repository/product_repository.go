package repository

import "github.com/jhoicas/cafe-stock/internal/domain/entity"

// ProductRepository puerto de persistencia para Product.
// Los getters devuelven (nil, nil) cuando el producto no existe.
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id int64) (*entity.Product, error)
	// GetForUpdate obtiene el producto bloqueando la fila (SELECT FOR UPDATE).
	// Solo tiene sentido dentro de una transacción.
	GetForUpdate(id int64) (*entity.Product, error)
	UpdateStock(id int64, stock int64) error
	List() ([]*entity.Product, error)
}
