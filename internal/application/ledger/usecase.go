package ledger

import (
	"context"
	"time"

	"github.com/jhoicas/cafe-stock/internal/domain"
	"github.com/jhoicas/cafe-stock/internal/domain/entity"
	"github.com/jhoicas/cafe-stock/internal/domain/repository"
)

// PostingUseCase registra asientos de entrada/salida de stock de forma transaccional,
// con bloqueo de fila (SELECT FOR UPDATE) y Commit/Rollback. La verificación de stock
// insuficiente se hace sobre la fila ya bloqueada, en la misma transacción que la
// mutación, para que dos salidas concurrentes no puedan dejar el stock en negativo.
type PostingUseCase struct {
	txRunner    TxRunner
	productRepo repository.ProductRepository
	ledgerRepo  repository.LedgerRepository
}

// NewPostingUseCase construye el caso de uso.
func NewPostingUseCase(
	txRunner TxRunner,
	productRepo repository.ProductRepository,
	ledgerRepo repository.LedgerRepository,
) *PostingUseCase {
	return &PostingUseCase{
		txRunner:    txRunner,
		productRepo: productRepo,
		ledgerRepo:  ledgerRepo,
	}
}

// PostInputDTO entrada para registrar un asiento de stock.
type PostInputDTO struct {
	ProductID int64
	Kind      string // entity.KindIn | entity.KindOut
	Quantity  int64
	UserID    string
}

// PostEntry valida la entrada y registra el asiento.
//
// Dentro de una sola transacción: bloquea la fila del producto, verifica stock
// suficiente para salidas, actualiza el stock (+cantidad IN, -cantidad OUT) e
// inserta el asiento en ledger_entries. Si algo falla no queda ninguna de las
// dos escrituras.
func (uc *PostingUseCase) PostEntry(ctx context.Context, input PostInputDTO) (*entity.LedgerEntry, error) {
	if input.Quantity <= 0 {
		return nil, domain.ErrInvalidQuantity
	}
	if input.Kind != entity.KindIn && input.Kind != entity.KindOut {
		return nil, domain.ErrInvalidInput
	}
	if input.UserID == "" {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now()
	entry := &entity.LedgerEntry{
		ProductID: input.ProductID,
		Kind:      input.Kind,
		Quantity:  input.Quantity,
		UserID:    input.UserID,
		PostedAt:  now,
	}

	err := uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		ledgerRepo repository.LedgerRepository,
	) error {
		// Bloquea la fila del producto; el snapshot de stock queda fijo hasta el commit.
		product, err := productRepo.GetForUpdate(input.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrProductNotFound
		}

		newStock := product.Stock
		switch input.Kind {
		case entity.KindIn:
			newStock += input.Quantity
		case entity.KindOut:
			if input.Quantity > product.Stock {
				return domain.ErrInsufficientStock
			}
			newStock -= input.Quantity
		}

		if err := productRepo.UpdateStock(input.ProductID, newStock); err != nil {
			return err
		}
		return ledgerRepo.Create(entry)
	})
	if err != nil {
		return nil, err
	}
	return entry, nil
}

// GetProduct obtiene un producto por ID para las pantallas de confirmación.
func (uc *PostingUseCase) GetProduct(ctx context.Context, id int64) (*entity.Product, error) {
	product, err := uc.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrProductNotFound
	}
	return product, nil
}

// ListProducts devuelve el catálogo completo con su stock actual.
func (uc *PostingUseCase) ListProducts(ctx context.Context) ([]*entity.Product, error) {
	return uc.productRepo.List()
}

// ListEntries devuelve el historial de movimientos de un producto (más recientes primero).
func (uc *PostingUseCase) ListEntries(ctx context.Context, productID int64, limit, offset int) ([]*entity.LedgerEntry, error) {
	product, err := uc.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrProductNotFound
	}
	if limit <= 0 {
		limit = 50
	}
	return uc.ledgerRepo.ListByProduct(productID, limit, offset)
}
