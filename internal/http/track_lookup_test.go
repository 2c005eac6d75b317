package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"

	"modublock/internal/http/handlers"
	"modublock/internal/repos"
	"modublock/internal/services"
)

func trackApp(t *testing.T) (*fiber.App, *services.OrderService, *services.CartService) {
	t.Helper()
	db, err := repos.OpenDB(":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	cartRepo := repos.NewCartRepo(db)
	prodRepo := repos.NewProductRepo(db)
	orderRepo := repos.NewOrderRepo(db)
	guard := services.NewCheckoutGuard()
	cartSvc := services.NewCartService(cartRepo, prodRepo, orderRepo, guard)
	orderSvc := services.NewOrderService(db, cartRepo, orderRepo, guard)

	app := fiber.New()
	h := &handlers.TrackingHandler{Order: orderSvc}
	app.Get("/api/v1/track", h.Lookup)
	return app, orderSvc, cartSvc
}

func TestTrackLookupCaseInsensitive(t *testing.T) {
	app, orderSvc, cartSvc := trackApp(t)

	sid := "sess-track-http"
	if err := cartSvc.Add(sid, "blk-hollow-6", 5); err != nil {
		t.Fatal(err)
	}
	oid, _, err := orderSvc.Checkout(sid, "GHS", 1, "momo")
	if err != nil {
		t.Fatal(err)
	}

	lower := strings.ToLower(oid)
	resp, err := app.Test(httptest.NewRequest("GET", "/api/v1/track?order="+lower, nil))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("want 200, got %d", resp.StatusCode)
	}
	var body struct {
		Found   bool   `json:"found"`
		OrderID string `json:"orderId"`
		Status  string `json:"status"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if !body.Found || body.OrderID != oid || body.Status != "PROCESSING" {
		t.Fatalf("unexpected payload: %+v", body)
	}
}

func TestTrackLookupMissAndBadInput(t *testing.T) {
	app, _, _ := trackApp(t)

	// well-formed id, no such order: neutral 404, not an error page
	resp, err := app.Test(httptest.NewRequest("GET", "/api/v1/track?order=MOD-00000", nil))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("want 404 on miss, got %d", resp.StatusCode)
	}

	// free text rejected before lookup
	resp, err = app.Test(httptest.NewRequest("GET", "/api/v1/track?order=hello+world", nil))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("want 400 on bad input, got %d", resp.StatusCode)
	}
}
