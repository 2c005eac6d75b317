package main

import (
	"io"
	"log"
	"os"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"modublock/internal/config"
	"modublock/internal/http/handlers"
	applog "modublock/internal/log"
	"modublock/internal/repos"
	"modublock/internal/services"
)

func main() {
	cfg := config.Load()

	// Optional file logging
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			log.Printf("[warn] could not open log file %s: %v", cfg.LogFile, err)
		} else {
			mw := io.MultiWriter(os.Stdout, f)
			log.SetOutput(mw)
		}
	}

	db, err := repos.OpenDB(cfg.DBDSN)
	if err != nil {
		log.Fatal(err)
	}

	// Auth wiring
	userRepo := repos.NewUserRepo(db)
	authSvc := &services.AuthService{Users: userRepo}
	authH := &handlers.AuthHandler{Auth: authSvc}

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			applog.Error(c, "server.error", err, nil)
			// Avoid leaking internals
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Something went wrong. Please try again.",
			})
		},
	})
	// Global body size guard
	app.Server().MaxRequestBodySize = 1 << 20 // 1 MiB

	// ---------- Middlewares ----------
	app.Use(requestid.New())
	app.Use(logger.New())
	app.Use(helmet.New())
	// Attach user to context if logged in
	app.Use(func(c *fiber.Ctx) error {
		if sid := c.Cookies("sid"); sid != "" {
			if u, err := authSvc.CurrentUser(sid); err == nil && u != nil {
				c.Locals("user", u)
			}
		}
		return c.Next()
	})
	app.Use(limiter.New(limiter.Config{
		Max:        120,
		Expiration: time.Minute,
		Next: func(c *fiber.Ctx) bool {
			return strings.HasPrefix(c.Path(), "/healthz")
		},
	}))

	// ---------- App handlers ----------
	deps := handlers.NewDeps(db, cfg, authSvc)

	api := app.Group("/api/v1")

	// Catalogue
	api.Get("/products", deps.CatalogHandler.List)
	api.Get("/products/:id", deps.CatalogHandler.Get)
	api.Get("/search", limiter.New(limiter.Config{Max: 20, Expiration: time.Minute}), deps.CatalogHandler.Search)

	// Materials estimator
	api.Get("/estimate", deps.EstimateHandler.Estimate)
	api.Get("/estimate/presets", deps.EstimateHandler.Presets)

	// Cart & checkout
	api.Get("/cart", deps.CartHandler.View)
	api.Post("/cart", deps.CartHandler.Add)
	api.Post("/cart/qty", deps.CartHandler.AdjustQty)
	api.Post("/cart/remove", deps.CartHandler.Remove)
	api.Post("/orders", deps.OrderHandler.Place)
	api.Get("/orders", deps.OrderHandler.History)
	api.Get("/orders/:id", deps.OrderHandler.View)

	// Public tracking lookup (throttled per IP)
	trackLimiter := limiter.New(limiter.Config{
		Max:        15,
		Expiration: 30 * time.Second,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP() + "|track"
		},
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.track.hit", nil)
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{"error": "rate limit exceeded, retry soon"})
		},
	})
	api.Get("/track", trackLimiter, deps.TrackingHandler.Lookup)

	// Shortlist
	api.Get("/shortlist", deps.ShortlistHandler.List)
	api.Post("/shortlist", deps.ShortlistHandler.Save)
	api.Post("/shortlist/delete", deps.ShortlistHandler.Unsave)

	// Partner onboarding & dashboard
	api.Post("/partners/apply", deps.PartnerHandler.Apply)
	api.Get("/partners/:id", handlers.RequirePartner(authSvc), deps.PartnerHandler.Get)
	api.Post("/partners/:id/stats", handlers.RequirePartner(authSvc), deps.PartnerHandler.RecordStats)

	// AI consultant proxy (throttled; failures fall back locally)
	api.Post("/advisor", limiter.New(limiter.Config{Max: 10, Expiration: time.Minute}), deps.AdvisorHandler.Chat)

	// Auth (login throttled)
	app.Post("/login", limiter.New(limiter.Config{
		Max:        5,
		Expiration: 10 * time.Minute,
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.login.hit", nil)
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{"error": "too many attempts, try again later"})
		},
	}), authH.Login)
	app.Post("/logout", authH.Logout)

	// Admin console
	admin := app.Group("/admin", handlers.RequireAdmin(authSvc))
	admin.Get("/orders", deps.AdminHandler.Orders)
	admin.Post("/orders/:id/advance", deps.AdminHandler.AdvanceOrder)
	admin.Post("/orders/:id/tracking", deps.AdminHandler.AssignTracking)
	admin.Get("/partners", deps.AdminHandler.PartnersPage)
	admin.Post("/partners/:id/decision", deps.AdminHandler.DecidePartner)
	admin.Post("/products/:id/price", deps.AdminHandler.UpdatePrice)
	admin.Post("/products/:id/active", deps.AdminHandler.SetActive)
	admin.Get("/users", deps.AdminHandler.UsersPage)
	admin.Post("/users/:id/delete", deps.AdminHandler.DeleteUser)

	// Health & 404
	app.Get("/healthz", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"ok": true}) })
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not found"})
	})

	log.Fatal(app.Listen(":" + cfg.Port))
}
