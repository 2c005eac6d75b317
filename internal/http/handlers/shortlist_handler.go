package handlers

import (
	applog "modublock/internal/log"
	"modublock/internal/services"
	"modublock/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type ShortlistHandler struct {
	Short *services.ShortlistService
}

// GET /api/v1/shortlist
func (h *ShortlistHandler) List(c *fiber.Ctx) error {
	rows, err := h.Short.List(ensureSID(c))
	if err != nil {
		applog.Error(c, "shortlist.list.fail", err, nil)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "could not load shortlist"})
	}
	return c.JSON(fiber.Map{"items": rows, "count": len(rows)})
}

// POST /api/v1/shortlist
func (h *ShortlistHandler) Save(c *fiber.Ctx) error {
	productID, ok := validate.ID(c.FormValue("productId"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "missing productId"})
	}
	if err := h.Short.Save(ensureSID(c), productID); err != nil {
		applog.Error(c, "shortlist.save.fail", err, map[string]any{"product": productID})
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "could not save product"})
	}
	return h.List(c)
}

// POST /api/v1/shortlist/delete
func (h *ShortlistHandler) Unsave(c *fiber.Ctx) error {
	productID, ok := validate.ID(c.FormValue("productId"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "missing productId"})
	}
	if err := h.Short.Unsave(ensureSID(c), productID); err != nil {
		applog.Error(c, "shortlist.unsave.fail", err, map[string]any{"product": productID})
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "could not remove product"})
	}
	return h.List(c)
}
