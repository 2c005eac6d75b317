package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	applog "modublock/internal/log"
	"modublock/internal/services"
	"modublock/internal/validate"
)

type CatalogHandler struct {
	Catalog *services.CatalogService
}

// GET /api/v1/products
func (h *CatalogHandler) List(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	category := strings.TrimSpace(c.Query("category"))
	if category != "" {
		cat, ok := validate.Category(category)
		if !ok {
			applog.Security(c, "validation.fail", map[string]any{"field": "category", "value": category})
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid category"})
		}
		products, err := h.Catalog.ListByCategory(cat, page, 12)
		if err != nil {
			applog.Error(c, "catalog.list.fail", err, nil)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "could not load catalogue"})
		}
		return c.JSON(fiber.Map{"products": products, "count": len(products)})
	}

	products, err := h.Catalog.List(page, 12)
	if err != nil {
		applog.Error(c, "catalog.list.fail", err, nil)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "could not load catalogue"})
	}
	return c.JSON(fiber.Map{"products": products, "count": len(products)})
}

// GET /api/v1/products/:id
func (h *CatalogHandler) Get(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid product id"})
	}
	p, err := h.Catalog.Get(id)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "product not found"})
	}
	return c.JSON(p)
}

// GET /api/v1/search
func (h *CatalogHandler) Search(c *fiber.Ctx) error {
	q := strings.ToLower(strings.TrimSpace(c.Query("q")))
	if len(q) > 50 {
		q = q[:50]
	}
	category := ""
	if raw := strings.TrimSpace(c.Query("category")); raw != "" {
		cat, ok := validate.Category(raw)
		if !ok {
			applog.Security(c, "validation.fail", map[string]any{"field": "category", "value": raw})
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid category"})
		}
		category = cat
	}

	products, err := h.Catalog.Search(q, category, c.QueryInt("page", 1), 20)
	if err != nil {
		applog.Error(c, "search.fail", err, nil)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "could not load results"})
	}
	return c.JSON(fiber.Map{"q": q, "products": products, "count": len(products)})
}
