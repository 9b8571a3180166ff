package http

import (
	"errors"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/cafe-stock/internal/application/dto"
	"github.com/jhoicas/cafe-stock/internal/application/ledger"
	"github.com/jhoicas/cafe-stock/internal/domain"
	"github.com/jhoicas/cafe-stock/internal/domain/entity"
)

// MovementHandler maneja las pantallas y formularios de entrada/salida de stock (protegido).
type MovementHandler struct {
	uc *ledger.PostingUseCase
}

// NewMovementHandler construye el handler.
func NewMovementHandler(uc *ledger.PostingUseCase) *MovementHandler {
	return &MovementHandler{uc: uc}
}

// EntryForm renderiza la confirmación de entrada para un producto.
func (h *MovementHandler) EntryForm(c *fiber.Ctx) error {
	return h.renderForm(c, "entry")
}

// ExitForm renderiza la confirmación de salida para un producto.
func (h *MovementHandler) ExitForm(c *fiber.Ctx) error {
	return h.renderForm(c, "exit")
}

func (h *MovementHandler) renderForm(c *fiber.Ctx, view string) error {
	id, err := productID(c)
	if err != nil {
		return renderNotFound(c)
	}
	product, err := h.uc.GetProduct(c.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			return renderNotFound(c)
		}
		return renderInternal(c)
	}
	return c.Render(view, fiber.Map{
		"Product": product,
	})
}

// PostEntry consume el campo quantity y registra una entrada (IN).
func (h *MovementHandler) PostEntry(c *fiber.Ctx) error {
	return h.post(c, entity.KindIn)
}

// PostExit consume el campo quantity y registra una salida (OUT).
func (h *MovementHandler) PostExit(c *fiber.Ctx) error {
	return h.post(c, entity.KindOut)
}

func (h *MovementHandler) post(c *fiber.Ctx, kind string) error {
	id, err := productID(c)
	if err != nil {
		return renderNotFound(c)
	}
	var in dto.QuantityForm
	if err := c.BodyParser(&in); err != nil {
		return renderQuantityError(c)
	}
	quantity, err := strconv.ParseInt(strings.TrimSpace(in.Quantity), 10, 64)
	if err != nil {
		return renderQuantityError(c)
	}

	_, err = h.uc.PostEntry(c.Context(), ledger.PostInputDTO{
		ProductID: id,
		Kind:      kind,
		Quantity:  quantity,
		UserID:    GetUserID(c),
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrProductNotFound):
			return renderNotFound(c)
		case errors.Is(err, domain.ErrInvalidQuantity):
			return renderQuantityError(c)
		case errors.Is(err, domain.ErrInsufficientStock):
			return c.Status(fiber.StatusConflict).Render("error", fiber.Map{
				"Message": "La salida supera el stock disponible.",
			})
		default:
			return renderInternal(c)
		}
	}
	return c.Redirect("/", fiber.StatusSeeOther)
}

// History renderiza el historial de movimientos de un producto.
func (h *MovementHandler) History(c *fiber.Ctx) error {
	id, err := productID(c)
	if err != nil {
		return renderNotFound(c)
	}
	product, err := h.uc.GetProduct(c.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			return renderNotFound(c)
		}
		return renderInternal(c)
	}
	entries, err := h.uc.ListEntries(c.Context(), id, 50, 0)
	if err != nil {
		return renderInternal(c)
	}
	return c.Render("ledger", fiber.Map{
		"Product": product,
		"Entries": entries,
	})
}

func productID(c *fiber.Ctx) (int64, error) {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return 0, domain.ErrProductNotFound
	}
	return int64(id), nil
}

func renderNotFound(c *fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).Render("not_found", fiber.Map{})
}

func renderQuantityError(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).Render("error", fiber.Map{
		"Message": "La cantidad debe ser un número entero positivo.",
	})
}

func renderInternal(c *fiber.Ctx) error {
	return c.Status(fiber.StatusInternalServerError).Render("error", fiber.Map{
		"Message": "error interno, intente de nuevo",
	})
}
