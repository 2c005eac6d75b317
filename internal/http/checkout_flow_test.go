package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/jmoiron/sqlx"

	"modublock/internal/config"
	"modublock/internal/http/handlers"
	"modublock/internal/repos"
	"modublock/internal/services"
)

func apiApp(t *testing.T) (*fiber.App, *sqlx.DB) {
	t.Helper()
	db, err := repos.OpenDB(":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	userRepo := repos.NewUserRepo(db)
	authSvc := &services.AuthService{Users: userRepo}
	deps := handlers.NewDeps(db, config.Config{}, authSvc)

	app := fiber.New()
	api := app.Group("/api/v1")
	api.Get("/cart", deps.CartHandler.View)
	api.Post("/cart", deps.CartHandler.Add)
	api.Post("/cart/qty", deps.CartHandler.AdjustQty)
	api.Post("/orders", deps.OrderHandler.Place)
	api.Get("/orders/:id", deps.OrderHandler.View)
	return app, db
}

func form(method, target, body, sid string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if sid != "" {
		req.AddCookie(&http.Cookie{Name: "sid", Value: sid})
	}
	return req
}

func TestCheckoutOverHTTP(t *testing.T) {
	app, _ := apiApp(t)
	sid := "sess-http-checkout"

	resp, err := app.Test(form("POST", "/api/v1/cart", "productId=blk-hollow-6&qty=400", sid))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("add: want 200, got %d", resp.StatusCode)
	}

	resp, err = app.Test(form("POST", "/api/v1/orders", "paymentMethod=momo", sid))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("place: want 201, got %d", resp.StatusCode)
	}
	var placed struct {
		OrderID   string `json:"orderId"`
		Breakdown struct {
			Subtotal float64 `json:"subtotal"`
			Total    float64 `json:"total"`
		} `json:"breakdown"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&placed); err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(placed.OrderID, "MOD-") {
		t.Fatalf("bad order id: %q", placed.OrderID)
	}
	if placed.Breakdown.Subtotal != 4.50*400 {
		t.Fatalf("want subtotal 1800, got %v", placed.Breakdown.Subtotal)
	}

	// session owner can read the order back
	resp, err = app.Test(form("GET", "/api/v1/orders/"+placed.OrderID, "", sid))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("view: want 200, got %d", resp.StatusCode)
	}

	// a stranger session gets a neutral 404
	resp, err = app.Test(form("GET", "/api/v1/orders/"+placed.OrderID, "", "sess-other"))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("stranger view: want 404, got %d", resp.StatusCode)
	}
}

func TestCheckoutEmptyCartOverHTTP(t *testing.T) {
	app, db := apiApp(t)

	resp, err := app.Test(form("POST", "/api/v1/orders", "paymentMethod=card", "sess-http-empty"))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("want 400 on empty cart, got %d", resp.StatusCode)
	}
	var n int
	if err := db.Get(&n, `SELECT COUNT(*) FROM orders`); err != nil {
		t.Fatal(err)
	}
	if n != 0 {
		t.Fatalf("no order should be created, got %d", n)
	}
}
