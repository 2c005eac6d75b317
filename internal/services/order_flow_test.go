package services_test

import (
	"testing"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite" // pure-Go SQLite driver

	"modublock/internal/domain"
	"modublock/internal/repos"
	"modublock/internal/services"
)

func memdb(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := repos.OpenDB(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	return db
}

func newCheckoutSvcs(t *testing.T, db *sqlx.DB) (*services.CartService, *services.OrderService) {
	t.Helper()
	cartRepo := repos.NewCartRepo(db)
	prodRepo := repos.NewProductRepo(db)
	orderRepo := repos.NewOrderRepo(db)
	guard := services.NewCheckoutGuard()
	cartSvc := services.NewCartService(cartRepo, prodRepo, orderRepo, guard)
	orderSvc := services.NewOrderService(db, cartRepo, orderRepo, guard)
	return cartSvc, orderSvc
}

func TestCheckoutFlow(t *testing.T) {
	db := memdb(t)
	cartSvc, orderSvc := newCheckoutSvcs(t, db)

	sid := "sess-checkout"
	if err := cartSvc.Add(sid, "blk-hollow-6", 200); err != nil {
		t.Fatal(err)
	}
	if err := cartSvc.Add(sid, "cem-42-5", 10); err != nil {
		t.Fatal(err)
	}

	cv, err := cartSvc.View(sid)
	if err != nil {
		t.Fatal(err)
	}
	wantSub := 4.50*200 + 58.00*10
	if cv.Breakdown.Subtotal != wantSub {
		t.Fatalf("want subtotal %v, got %v", wantSub, cv.Breakdown.Subtotal)
	}
	// 210 units: below every bulk tier, first order: no discounts.
	if cv.Breakdown.DiscountAmount != 0 {
		t.Fatalf("unexpected discount: %v", cv.Breakdown.DiscountAmount)
	}

	oid, bd, err := orderSvc.Checkout(sid, "GHS", 1, "momo")
	if err != nil {
		t.Fatal(err)
	}
	if len(oid) != len("MOD-12345") || oid[:4] != "MOD-" {
		t.Fatalf("bad order id format: %q", oid)
	}
	if bd.Total != wantSub {
		t.Fatalf("want total %v, got %v", wantSub, bd.Total)
	}

	o, items, found, err := orderSvc.Find(oid)
	if err != nil || !found {
		t.Fatalf("order should be findable: %v", err)
	}
	if o.Status != domain.StatusProcessing {
		t.Fatalf("new orders start PROCESSING, got %s", o.Status)
	}
	if o.TransactionID[:4] != "TXN-" || len(o.TransactionID) != len("TXN-ABCDEFGHI") {
		t.Fatalf("bad transaction id: %q", o.TransactionID)
	}
	if o.TrackingLocation != "Central Hub, Shai Hills" || o.TrackingETA != "Pending Dispatch" {
		t.Fatalf("tracking stub missing: %+v", o)
	}
	if len(items) != 2 {
		t.Fatalf("want 2 line items, got %d", len(items))
	}

	// cart cleared atomically with order creation
	cv, err = cartSvc.View(sid)
	if err != nil {
		t.Fatal(err)
	}
	if len(cv.Items) != 0 {
		t.Fatalf("cart should be empty after checkout, got %d items", len(cv.Items))
	}
}

func TestCheckoutEmptyCartRejected(t *testing.T) {
	db := memdb(t)
	_, orderSvc := newCheckoutSvcs(t, db)

	if _, _, err := orderSvc.Checkout("sess-empty", "GHS", 1, "card"); err != services.ErrEmptyCart {
		t.Fatalf("want ErrEmptyCart, got %v", err)
	}
	var n int
	if err := db.Get(&n, `SELECT COUNT(*) FROM orders`); err != nil {
		t.Fatal(err)
	}
	if n != 0 {
		t.Fatalf("no order row should exist, got %d", n)
	}
}

// A checkout that fails mid-transaction commits nothing: no order row
// appears and the cart keeps its lines.
func TestCheckoutAbortLeavesCartIntact(t *testing.T) {
	db := memdb(t)
	cartSvc, orderSvc := newCheckoutSvcs(t, db)

	sid := "sess-abort"
	if err := cartSvc.Add(sid, "blk-hollow-6", 7); err != nil {
		t.Fatal(err)
	}

	// break line-item insertion so checkout fails after the order header
	if _, err := db.Exec(`DROP TABLE order_items`); err != nil {
		t.Fatal(err)
	}
	if _, _, err := orderSvc.Checkout(sid, "GHS", 1, "card"); err == nil {
		t.Fatal("checkout should fail once order_items is gone")
	}

	var n int
	if err := db.Get(&n, `SELECT COUNT(*) FROM orders`); err != nil {
		t.Fatal(err)
	}
	if n != 0 {
		t.Fatalf("failed checkout must not leave an order row, got %d", n)
	}
	cv, err := cartSvc.View(sid)
	if err != nil {
		t.Fatal(err)
	}
	if len(cv.Items) != 1 || cv.Items[0].Qty != 7 {
		t.Fatalf("cart must survive a failed checkout: %+v", cv.Items)
	}
}

// While a checkout holds a session, cart mutations and a second
// checkout for that session are refused rather than racing the
// open transaction.
func TestCartFrozenDuringCheckout(t *testing.T) {
	db := memdb(t)
	guard := services.NewCheckoutGuard()
	cartRepo := repos.NewCartRepo(db)
	orderRepo := repos.NewOrderRepo(db)
	cartSvc := services.NewCartService(cartRepo, repos.NewProductRepo(db), orderRepo, guard)
	orderSvc := services.NewOrderService(db, cartRepo, orderRepo, guard)

	sid := "sess-frozen"
	if err := cartSvc.Add(sid, "blk-hollow-6", 3); err != nil {
		t.Fatal(err)
	}

	if !guard.Begin(sid) {
		t.Fatal("guard should start free")
	}
	if err := cartSvc.Add(sid, "blk-hollow-6", 1); err != services.ErrCheckoutBusy {
		t.Fatalf("add during checkout: want ErrCheckoutBusy, got %v", err)
	}
	if err := cartSvc.AdjustQty(sid, "blk-hollow-6", 1); err != services.ErrCheckoutBusy {
		t.Fatalf("adjust during checkout: want ErrCheckoutBusy, got %v", err)
	}
	if err := cartSvc.Remove(sid, "blk-hollow-6"); err != services.ErrCheckoutBusy {
		t.Fatalf("remove during checkout: want ErrCheckoutBusy, got %v", err)
	}
	if _, _, err := orderSvc.Checkout(sid, "GHS", 1, "card"); err != services.ErrCheckoutBusy {
		t.Fatalf("second checkout: want ErrCheckoutBusy, got %v", err)
	}
	guard.End(sid)

	// the session thaws once checkout resolves
	if err := cartSvc.Add(sid, "blk-hollow-6", 1); err != nil {
		t.Fatal(err)
	}
	cv, err := cartSvc.View(sid)
	if err != nil {
		t.Fatal(err)
	}
	if len(cv.Items) != 1 || cv.Items[0].Qty != 4 {
		t.Fatalf("want a single 4-unit line after thaw, got %+v", cv.Items)
	}
}

// Order line items keep add-time prices even after the catalogue moves.
func TestOrderSnapshotIsolation(t *testing.T) {
	db := memdb(t)
	cartSvc, orderSvc := newCheckoutSvcs(t, db)
	prodRepo := repos.NewProductRepo(db)

	sid := "sess-snapshot"
	if err := cartSvc.Add(sid, "blk-solid-5", 10); err != nil {
		t.Fatal(err)
	}
	oid, _, err := orderSvc.Checkout(sid, "GHS", 1, "card")
	if err != nil {
		t.Fatal(err)
	}

	if err := prodRepo.UpdatePrice("blk-solid-5", 99.99); err != nil {
		t.Fatal(err)
	}

	_, items, found, err := orderSvc.Find(oid)
	if err != nil || !found {
		t.Fatal(err)
	}
	if items[0].Price != 6.00 {
		t.Fatalf("order must keep the snapshot price 6.00, got %v", items[0].Price)
	}
}

func TestLoyaltyAppliesFromSecondOrder(t *testing.T) {
	db := memdb(t)
	cartSvc, orderSvc := newCheckoutSvcs(t, db)

	sid := "sess-loyal"
	if err := cartSvc.Add(sid, "blk-paving-std", 10); err != nil {
		t.Fatal(err)
	}
	if _, bd, err := orderSvc.Checkout(sid, "GHS", 1, "card"); err != nil || bd.LoyaltyRate != 0 {
		t.Fatalf("first order must not get loyalty: rate=%v err=%v", bd.LoyaltyRate, err)
	}

	if err := cartSvc.Add(sid, "blk-paving-std", 10); err != nil {
		t.Fatal(err)
	}
	if _, bd, err := orderSvc.Checkout(sid, "GHS", 1, "card"); err != nil || bd.LoyaltyRate != 0.05 {
		t.Fatalf("second order should get 5%% loyalty: rate=%v err=%v", bd.LoyaltyRate, err)
	}
}

func TestLifecycleStrictlyForward(t *testing.T) {
	db := memdb(t)
	cartSvc, orderSvc := newCheckoutSvcs(t, db)

	sid := "sess-lifecycle"
	if err := cartSvc.Add(sid, "blk-hollow-8", 50); err != nil {
		t.Fatal(err)
	}
	oid, _, err := orderSvc.Checkout(sid, "GHS", 1, "card")
	if err != nil {
		t.Fatal(err)
	}

	want := []string{domain.StatusInProduction, domain.StatusOutForDelivery, domain.StatusDelivered}
	for i, w := range want {
		got, err := orderSvc.Advance(oid)
		if err != nil {
			t.Fatal(err)
		}
		if got != w {
			t.Fatalf("advance %d: want %s, got %s", i+1, w, got)
		}
	}

	// 4th advance is a no-op at the terminal status
	got, err := orderSvc.Advance(oid)
	if err != nil {
		t.Fatal(err)
	}
	if got != domain.StatusDelivered {
		t.Fatalf("delivered is terminal, got %s", got)
	}
}

func TestFindOrderCaseInsensitive(t *testing.T) {
	db := memdb(t)
	cartSvc, orderSvc := newCheckoutSvcs(t, db)

	sid := "sess-find"
	if err := cartSvc.Add(sid, "blk-hollow-5", 1); err != nil {
		t.Fatal(err)
	}
	oid, _, err := orderSvc.Checkout(sid, "GHS", 1, "card")
	if err != nil {
		t.Fatal(err)
	}

	lower := "mod-" + oid[4:]
	if _, _, found, err := orderSvc.Find(lower); err != nil || !found {
		t.Fatalf("lookup should be case-insensitive: found=%v err=%v", found, err)
	}

	// a miss is not an error
	if _, _, found, err := orderSvc.Find("MOD-00000000"); err != nil || found {
		t.Fatalf("miss should be found=false, nil error: found=%v err=%v", found, err)
	}
}

func TestAssignTracking(t *testing.T) {
	db := memdb(t)
	cartSvc, orderSvc := newCheckoutSvcs(t, db)

	sid := "sess-track"
	if err := cartSvc.Add(sid, "blk-inter-uni", 100); err != nil {
		t.Fatal(err)
	}
	oid, _, err := orderSvc.Checkout(sid, "GHS", 1, "card")
	if err != nil {
		t.Fatal(err)
	}

	tr := domain.Tracking{
		CurrentLocation:  "Tema Motorway",
		EstimatedArrival: "Today 16:00",
		DriverName:       "Yaw Mensah",
		DriverPhone:      "+233 20 123 4567",
	}
	if err := orderSvc.AssignTracking(oid, tr); err != nil {
		t.Fatal(err)
	}
	o, _, _, err := orderSvc.Find(oid)
	if err != nil {
		t.Fatal(err)
	}
	if o.DriverName != "Yaw Mensah" || o.TrackingLocation != "Tema Motorway" {
		t.Fatalf("tracking not assigned: %+v", o)
	}

	if err := orderSvc.AssignTracking("MOD-99999999", tr); err != services.ErrUnknownOrder {
		t.Fatalf("want ErrUnknownOrder, got %v", err)
	}
}
