package handlers

import (
	"github.com/gofiber/fiber/v2"

	"modublock/internal/domain"
	applog "modublock/internal/log"
	"modublock/internal/services"
	"modublock/internal/validate"
)

// TrackingHandler serves the public order-tracking lookup. No auth: a
// correct order id is the credential, and a miss is a neutral 404.
type TrackingHandler struct {
	Order *services.OrderService
}

// GET /api/v1/track?order=MOD-12345
func (h *TrackingHandler) Lookup(c *fiber.Ctx) error {
	raw := c.Query("order")
	oid, ok := validate.OrderID(raw)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "enter a valid order number (e.g. MOD-12345)"})
	}

	o, _, found, err := h.Order.Find(oid)
	if err != nil {
		applog.Error(c, "track.lookup.fail", err, nil)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "could not look up order"})
	}
	if !found {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"found": false})
	}

	// Public subset only: no payment or line-item details.
	return c.JSON(fiber.Map{
		"found":     true,
		"orderId":   o.ID,
		"status":    o.Status,
		"createdAt": o.CreatedAt,
		"total":     o.Total,
		"currency":  o.Currency,
		"tracking": domain.Tracking{
			CurrentLocation:  o.TrackingLocation,
			EstimatedArrival: o.TrackingETA,
			DriverName:       o.DriverName,
			DriverPhone:      o.DriverPhone,
		},
	})
}
