package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"modublock/internal/estimate"
	"modublock/internal/validate"
)

type EstimateHandler struct{}

// GET /api/v1/estimate/presets
func (h *EstimateHandler) Presets(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"presets": estimate.Presets()})
}

// GET /api/v1/estimate?length=10&height=3&blockType=6
// GET /api/v1/estimate?preset=4bed&blockType=8
// Dimensions parse tolerantly: junk reads as zero, never an error.
func (h *EstimateHandler) Estimate(c *fiber.Ctx) error {
	blockType := validate.BlockType(c.Query("blockType"))

	if preset := strings.TrimSpace(c.Query("preset")); preset != "" {
		return c.JSON(estimate.FromPreset(preset, blockType))
	}

	length := validate.Dim(c.Query("length"))
	height := validate.Dim(c.Query("height"))
	return c.JSON(estimate.FromWall(length, height, blockType))
}
