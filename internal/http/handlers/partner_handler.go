package handlers

import (
	"github.com/gofiber/fiber/v2"

	applog "modublock/internal/log"
	"modublock/internal/services"
	"modublock/internal/validate"
)

type PartnerHandler struct {
	Partners *services.PartnerService
}

// POST /api/v1/partners/apply
func (h *PartnerHandler) Apply(c *fiber.Ctx) error {
	name, ok := validate.Name(c.FormValue("name"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "name must be 1-60 characters"})
	}
	contact, ok := validate.Phone(c.FormValue("contact"))
	if !ok {
		applog.Security(c, "validation.fail", map[string]any{"field": "contact"})
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "enter a valid contact number"})
	}
	location, _ := validate.Name(c.FormValue("location"))
	tier, _ := validate.Tier(c.FormValue("tier"))
	capacity := validate.Qty(c.FormValue("capacity"))

	p, err := h.Partners.Apply(name, location, contact, tier, capacity)
	if err != nil {
		applog.Error(c, "partner.apply.fail", err, nil)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "could not file application"})
	}
	applog.Audit(c, "partner.apply", map[string]any{"partner_id": p.ID, "tier": p.Tier})
	return c.Status(fiber.StatusCreated).JSON(p)
}

// GET /api/v1/partners/:id
func (h *PartnerHandler) Get(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid partner id"})
	}
	p, err := h.Partners.Get(id)
	if err != nil {
		if err == services.ErrUnknownPartner {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "partner not found"})
		}
		applog.Error(c, "partner.get.fail", err, nil)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "could not load partner"})
	}
	return c.JSON(p)
}

// POST /api/v1/partners/:id/stats
// Operational figures reported from the partner dashboard.
func (h *PartnerHandler) RecordStats(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid partner id"})
	}
	revenue := validate.Dim(c.FormValue("revenue"))
	fleet := validate.Delta(c.FormValue("fleet"))
	capacity := validate.Delta(c.FormValue("capacity"))
	if fleet < 0 || capacity < 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid figures"})
	}

	if err := h.Partners.RecordStats(id, revenue, fleet, capacity); err != nil {
		if err == services.ErrUnknownPartner {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "partner not found"})
		}
		applog.Error(c, "partner.stats.fail", err, map[string]any{"partner_id": id})
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "could not record stats"})
	}
	applog.Audit(c, "partner.stats", map[string]any{"partner_id": id})
	return c.SendStatus(fiber.StatusNoContent)
}
