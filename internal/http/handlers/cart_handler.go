package handlers

import (
	applog "modublock/internal/log"
	"modublock/internal/services"
	"modublock/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type CartHandler struct {
	Cart *services.CartService
}

// GET /api/v1/cart
func (h *CartHandler) View(c *fiber.Ctx) error {
	cv, err := h.Cart.View(ensureSID(c))
	if err != nil {
		applog.Error(c, "cart.view.fail", err, nil)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "could not load cart"})
	}
	return c.JSON(cv)
}

// POST /api/v1/cart
func (h *CartHandler) Add(c *fiber.Ctx) error {
	sid := ensureSID(c)
	productID, ok := validate.ID(c.FormValue("productId"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "missing productId"})
	}
	qty := validate.Qty(c.FormValue("qty"))

	if err := h.Cart.Add(sid, productID, qty); err != nil {
		if err == services.ErrInactiveProduct {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "product is not available"})
		}
		if err == services.ErrCheckoutBusy {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "checkout in progress"})
		}
		applog.Error(c, "cart.add.fail", err, map[string]any{"product": productID})
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "could not add to cart"})
	}
	applog.Info(c, "cart.add", map[string]any{"product": productID, "qty": qty})
	return h.View(c)
}

// POST /api/v1/cart/qty
func (h *CartHandler) AdjustQty(c *fiber.Ctx) error {
	sid := ensureSID(c)
	productID, ok := validate.ID(c.FormValue("productId"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "missing productId"})
	}
	delta := validate.Delta(c.FormValue("delta"))
	if delta == 0 {
		return h.View(c)
	}
	if err := h.Cart.AdjustQty(sid, productID, delta); err != nil {
		if err == services.ErrCheckoutBusy {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "checkout in progress"})
		}
		applog.Error(c, "cart.qty.fail", err, map[string]any{"product": productID})
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "could not update quantity"})
	}
	return h.View(c)
}

// POST /api/v1/cart/remove
func (h *CartHandler) Remove(c *fiber.Ctx) error {
	sid := ensureSID(c)
	productID, ok := validate.ID(c.FormValue("productId"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "missing productId"})
	}
	if err := h.Cart.Remove(sid, productID); err != nil {
		if err == services.ErrCheckoutBusy {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "checkout in progress"})
		}
		applog.Error(c, "cart.remove.fail", err, map[string]any{"product": productID})
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "could not remove item"})
	}
	return h.View(c)
}
