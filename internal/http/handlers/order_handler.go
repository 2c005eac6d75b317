package handlers

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"modublock/internal/domain"
	applog "modublock/internal/log"
	"modublock/internal/repos"
	"modublock/internal/services"
	"modublock/internal/validate"
)

type OrderHandler struct {
	Cart  *services.CartService
	Order *services.OrderService
	Repo  *repos.OrderRepo
	Auth  *services.AuthService
}

// POST /api/v1/orders
func (h *OrderHandler) Place(c *fiber.Ctx) error {
	sid := ensureSID(c)

	currency := "GHS"
	if raw := strings.TrimSpace(c.FormValue("currency")); raw != "" {
		cur, ok := validate.Currency(raw)
		if !ok {
			applog.Security(c, "validation.fail", map[string]any{"field": "currency", "value": raw})
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid currency"})
		}
		currency = cur
	}
	rate := 1.0
	if raw := strings.TrimSpace(c.FormValue("exchangeRate")); raw != "" {
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil || f <= 0 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid exchange rate"})
		}
		rate = f
	}
	payment := strings.ToLower(strings.TrimSpace(c.FormValue("paymentMethod")))
	switch payment {
	case "momo", "card", "bank", "cod":
	default:
		payment = "momo"
	}

	orderID, bd, err := h.Order.Checkout(sid, currency, rate, payment)
	if err != nil {
		switch err {
		case services.ErrEmptyCart:
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "cart is empty"})
		case services.ErrCheckoutBusy:
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "checkout already in progress"})
		}
		applog.Error(c, "order.place.fail", err, nil)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "could not place order"})
	}
	applog.Audit(c, "order.place", map[string]any{
		"order_id": orderID,
		"subtotal": bd.Subtotal,
		"discount": bd.DiscountAmount,
		"total":    bd.Total,
	})
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"orderId": orderID, "breakdown": bd})
}

// GET /api/v1/orders/:id
func (h *OrderHandler) View(c *fiber.Ctx) error {
	oid := c.Params("id")
	o, items, found, err := h.Order.Find(oid)
	if err != nil {
		applog.Error(c, "order.view.fail", err, nil)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "could not load order"})
	}
	if !found {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "order not found"})
	}

	// Ownership check: session owner or admin; otherwise respond as a miss.
	sid := c.Cookies("sid")
	var role string
	if h.Auth != nil && sid != "" {
		if u, err := h.Auth.CurrentUser(sid); err == nil && u != nil {
			role = u.Role
		}
	}
	if sid != o.SessionID && role != "ADMIN" {
		applog.Security(c, "access.denied.order", map[string]any{"order_id": oid})
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "order not found"})
	}

	return c.JSON(fiber.Map{"order": orderPayload(o), "items": items})
}

// GET /api/v1/orders
// Order history for the current session.
func (h *OrderHandler) History(c *fiber.Ctx) error {
	sid := ensureSID(c)
	orders, err := h.Repo.ListBySession(sid)
	if err != nil {
		applog.Error(c, "orders.history.fail", err, nil)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "could not load orders"})
	}
	return c.JSON(fiber.Map{"orders": orders, "count": len(orders)})
}

// orderPayload shapes the order row with tracking as a nested object.
func orderPayload(o repos.OrderRow) fiber.Map {
	return fiber.Map{
		"id":             o.ID,
		"transactionId":  o.TransactionID,
		"subtotal":       o.Subtotal,
		"discountAmount": o.DiscountAmount,
		"total":          o.Total,
		"currency":       o.Currency,
		"exchangeRate":   o.ExchangeRate,
		"paymentMethod":  o.PaymentMethod,
		"status":         o.Status,
		"createdAt":      o.CreatedAt,
		"tracking": domain.Tracking{
			CurrentLocation:  o.TrackingLocation,
			EstimatedArrival: o.TrackingETA,
			DriverName:       o.DriverName,
			DriverPhone:      o.DriverPhone,
		},
	}
}
