package services_test

import (
	"testing"

	"modublock/internal/repos"
	"modublock/internal/services"
)

func newCartSvc(t *testing.T) *services.CartService {
	t.Helper()
	db := memdb(t)
	return services.NewCartService(repos.NewCartRepo(db), repos.NewProductRepo(db), repos.NewOrderRepo(db), services.NewCheckoutGuard())
}

func TestAdjustQtyFloorsAtOne(t *testing.T) {
	svc := newCartSvc(t)
	sid := "sess-floor"

	if err := svc.Add(sid, "blk-hollow-6", 1); err != nil {
		t.Fatal(err)
	}
	if err := svc.AdjustQty(sid, "blk-hollow-6", -5); err != nil {
		t.Fatal(err)
	}

	cv, err := svc.View(sid)
	if err != nil {
		t.Fatal(err)
	}
	if len(cv.Items) != 1 || cv.Items[0].Qty != 1 {
		t.Fatalf("qty must floor at 1, line must survive: %+v", cv.Items)
	}

	if err := svc.AdjustQty(sid, "blk-hollow-6", 9); err != nil {
		t.Fatal(err)
	}
	cv, _ = svc.View(sid)
	if cv.Items[0].Qty != 10 {
		t.Fatalf("want qty 10, got %d", cv.Items[0].Qty)
	}
}

func TestAddAccumulatesAndSnapshotsPrice(t *testing.T) {
	svc := newCartSvc(t)
	sid := "sess-accumulate"

	if err := svc.Add(sid, "cem-42-5", 3); err != nil {
		t.Fatal(err)
	}
	if err := svc.Add(sid, "cem-42-5", 2); err != nil {
		t.Fatal(err)
	}

	cv, err := svc.View(sid)
	if err != nil {
		t.Fatal(err)
	}
	if len(cv.Items) != 1 || cv.Items[0].Qty != 5 {
		t.Fatalf("adds should merge into one line: %+v", cv.Items)
	}
	if cv.Items[0].PriceAtAdd != 58.00 {
		t.Fatalf("want snapshot price 58.00, got %v", cv.Items[0].PriceAtAdd)
	}
}

func TestRemoveDeletesLine(t *testing.T) {
	svc := newCartSvc(t)
	sid := "sess-remove"

	if err := svc.Add(sid, "blk-paving-std", 4); err != nil {
		t.Fatal(err)
	}
	if err := svc.Remove(sid, "blk-paving-std"); err != nil {
		t.Fatal(err)
	}
	cv, err := svc.View(sid)
	if err != nil {
		t.Fatal(err)
	}
	if len(cv.Items) != 0 {
		t.Fatalf("line should be gone: %+v", cv.Items)
	}
}

func TestAddInactiveProductRejected(t *testing.T) {
	db := memdb(t)
	prodRepo := repos.NewProductRepo(db)
	svc := services.NewCartService(repos.NewCartRepo(db), prodRepo, repos.NewOrderRepo(db), services.NewCheckoutGuard())

	if err := prodRepo.SetActive("blk-deco-vent", false); err != nil {
		t.Fatal(err)
	}
	if err := svc.Add("sess-inactive", "blk-deco-vent", 1); err != services.ErrInactiveProduct {
		t.Fatalf("want ErrInactiveProduct, got %v", err)
	}
}
