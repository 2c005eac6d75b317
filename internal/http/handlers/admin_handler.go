package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"modublock/internal/domain"
	applog "modublock/internal/log"
	"modublock/internal/repos"
	"modublock/internal/services"
	"modublock/internal/validate"
)

type AdminHandler struct {
	OrderRepo *repos.OrderRepo
	Order     *services.OrderService
	Partners  *services.PartnerService
	Prods     *repos.ProductRepo
	Users     *repos.UserRepo
}

// GET /admin/orders
func (h *AdminHandler) Orders(c *fiber.Ctx) error {
	ords, err := h.OrderRepo.ListLatest(100)
	if err != nil {
		applog.Error(c, "admin.orders.list.fail", err, nil)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "could not load orders"})
	}
	return c.JSON(fiber.Map{"orders": ords, "count": len(ords)})
}

// POST /admin/orders/:id/advance
// One lifecycle step forward. Arbitrary status strings are not
// accepted anywhere.
func (h *AdminHandler) AdvanceOrder(c *fiber.Ctx) error {
	id := c.Params("id")
	status, err := h.Order.Advance(id)
	if err != nil {
		if err == services.ErrUnknownOrder {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "order not found"})
		}
		applog.Error(c, "admin.orders.advance.fail", err, map[string]any{"order_id": id})
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "could not advance order"})
	}
	applog.Audit(c, "admin.orders.advance", map[string]any{"order_id": id, "status": status})
	return c.JSON(fiber.Map{"orderId": id, "status": status})
}

// POST /admin/orders/:id/tracking
func (h *AdminHandler) AssignTracking(c *fiber.Ctx) error {
	id := c.Params("id")
	driver, ok := validate.Name(c.FormValue("driverName"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "driver name required"})
	}
	phone, ok := validate.Phone(c.FormValue("driverPhone"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "enter a valid driver phone"})
	}
	location, _ := validate.Name(c.FormValue("location"))
	eta, _ := validate.Name(c.FormValue("eta"))

	err := h.Order.AssignTracking(id, domain.Tracking{
		CurrentLocation:  location,
		EstimatedArrival: eta,
		DriverName:       driver,
		DriverPhone:      phone,
	})
	if err != nil {
		if err == services.ErrUnknownOrder {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "order not found"})
		}
		applog.Error(c, "admin.orders.tracking.fail", err, map[string]any{"order_id": id})
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "could not assign tracking"})
	}
	applog.Audit(c, "admin.orders.tracking", map[string]any{"order_id": id, "driver": driver})
	return c.SendStatus(fiber.StatusNoContent)
}

// GET /admin/partners
func (h *AdminHandler) PartnersPage(c *fiber.Ctx) error {
	status := ""
	if raw := c.Query("status"); raw != "" {
		switch raw {
		case domain.PartnerPending, domain.PartnerApproved, domain.PartnerRejected:
			status = raw
		default:
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid status filter"})
		}
	}
	partners, err := h.Partners.List(status)
	if err != nil {
		applog.Error(c, "admin.partners.list.fail", err, nil)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "could not load partners"})
	}
	return c.JSON(fiber.Map{"partners": partners, "count": len(partners)})
}

// POST /admin/partners/:id/decision
func (h *AdminHandler) DecidePartner(c *fiber.Ctx) error {
	id := c.Params("id")
	var approve bool
	switch c.FormValue("decision") {
	case "approve":
		approve = true
	case "reject":
		approve = false
	default:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "decision must be approve or reject"})
	}

	p, err := h.Partners.Decide(id, approve)
	if err != nil {
		switch err {
		case services.ErrUnknownPartner:
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "partner not found"})
		case services.ErrAlreadyDecided:
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "application already decided"})
		}
		applog.Error(c, "admin.partners.decide.fail", err, map[string]any{"partner_id": id})
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "could not decide application"})
	}
	applog.Audit(c, "admin.partners.decide", map[string]any{"partner_id": id, "status": p.Status})
	return c.JSON(p)
}

// POST /admin/products/:id/price
func (h *AdminHandler) UpdatePrice(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid product id"})
	}
	price, err := strconv.ParseFloat(c.FormValue("price"), 64)
	if err != nil || price < 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid price"})
	}
	if err := h.Prods.UpdatePrice(id, price); err != nil {
		applog.Error(c, "admin.products.price.fail", err, map[string]any{"product": id})
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "could not update price"})
	}
	applog.Audit(c, "admin.products.price", map[string]any{"product": id, "price": price})
	return c.SendStatus(fiber.StatusNoContent)
}

// POST /admin/products/:id/active
func (h *AdminHandler) SetActive(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid product id"})
	}
	active := c.FormValue("active") == "true"
	if err := h.Prods.SetActive(id, active); err != nil {
		applog.Error(c, "admin.products.active.fail", err, map[string]any{"product": id})
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "could not update product"})
	}
	applog.Audit(c, "admin.products.active", map[string]any{"product": id, "active": active})
	return c.SendStatus(fiber.StatusNoContent)
}

// GET /admin/users
func (h *AdminHandler) UsersPage(c *fiber.Ctx) error {
	var users []struct {
		ID    string `db:"id" json:"id"`
		Email string `db:"email" json:"email"`
		Name  string `db:"name" json:"name"`
		Role  string `db:"role" json:"role"`
	}
	if err := h.Users.DB.Select(&users, `SELECT id,email,name,role FROM users WHERE role != 'ADMIN' ORDER BY email`); err != nil {
		applog.Error(c, "admin.users.list.fail", err, nil)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "could not load users"})
	}
	return c.JSON(fiber.Map{"users": users, "count": len(users)})
}

// POST /admin/users/:id/delete
// Removes the user and session data; orders stay for audit.
func (h *AdminHandler) DeleteUser(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "missing id"})
	}
	if err := h.Users.DeleteUserCascade(id); err != nil {
		applog.Error(c, "admin.users.delete.fail", err, map[string]any{"user_id": id})
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "could not delete user"})
	}
	applog.Audit(c, "admin.users.delete", map[string]any{"user_id": id})
	return c.SendStatus(fiber.StatusNoContent)
}
