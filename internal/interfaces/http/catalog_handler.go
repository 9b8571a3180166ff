package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/cafe-stock/internal/application/ledger"
)

// CatalogHandler renderiza el catálogo de productos (protegido).
type CatalogHandler struct {
	uc *ledger.PostingUseCase
}

// NewCatalogHandler construye el handler.
func NewCatalogHandler(uc *ledger.PostingUseCase) *CatalogHandler {
	return &CatalogHandler{uc: uc}
}

// Index lista todos los productos con id, nombre, stock y stock mínimo.
func (h *CatalogHandler) Index(c *fiber.Ctx) error {
	products, err := h.uc.ListProducts(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).Render("error", fiber.Map{
			"Message": "error interno, intente de nuevo",
		})
	}
	return c.Render("index", fiber.Map{
		"Products": products,
	})
}
