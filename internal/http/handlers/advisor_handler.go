package handlers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	applog "modublock/internal/log"
	"modublock/internal/services"
)

type AdvisorHandler struct {
	Advisor *services.AdvisorService
	Timeout time.Duration
}

type chatRequest struct {
	Messages []services.Turn `json:"messages"`
}

// POST /api/v1/advisor
// Proxies a chat transcript to the consultant model. Upstream trouble
// never surfaces as an error; the client gets
// the fixed fallback reply instead.
func (h *AdvisorHandler) Chat(c *fiber.Ctx) error {
	var req chatRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if err := services.ValidateTranscript(req.Messages); err != nil {
		applog.Security(c, "advisor.transcript.invalid", map[string]any{"reason": err.Error()})
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.UserContext(), h.Timeout)
	defer cancel()
	reply := h.Advisor.Ask(ctx, req.Messages)

	return c.JSON(fiber.Map{"reply": reply})
}
