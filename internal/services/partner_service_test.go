package services_test

import (
	"testing"

	"modublock/internal/domain"
	"modublock/internal/repos"
	"modublock/internal/services"
)

func TestPartnerApplyAndDecideOnce(t *testing.T) {
	db := memdb(t)
	svc := services.NewPartnerService(repos.NewPartnerRepo(db))

	p, err := svc.Apply("Kumasi Block Works", "Kumasi", "+233 24 555 0000", "premium", 9000)
	if err != nil {
		t.Fatal(err)
	}
	if p.Status != domain.PartnerPending {
		t.Fatalf("new applications start PENDING, got %s", p.Status)
	}
	if p.SubscriptionFee != 450 {
		t.Fatalf("premium fee should be 450, got %v", p.SubscriptionFee)
	}

	approved, err := svc.Decide(p.ID, true)
	if err != nil {
		t.Fatal(err)
	}
	if approved.Status != domain.PartnerApproved {
		t.Fatalf("want APPROVED, got %s", approved.Status)
	}

	// the transition happens exactly once
	if _, err := svc.Decide(p.ID, false); err != services.ErrAlreadyDecided {
		t.Fatalf("want ErrAlreadyDecided, got %v", err)
	}
	again, err := svc.Get(p.ID)
	if err != nil {
		t.Fatal(err)
	}
	if again.Status != domain.PartnerApproved {
		t.Fatalf("status must not flip after decision: %s", again.Status)
	}
}

func TestPartnerUnknownTierDefaultsToStandard(t *testing.T) {
	db := memdb(t)
	svc := services.NewPartnerService(repos.NewPartnerRepo(db))

	p, err := svc.Apply("Cape Coast Blocks", "Cape Coast", "+233 24 555 1111", "platinum", 3000)
	if err != nil {
		t.Fatal(err)
	}
	if p.Tier != "standard" || p.SubscriptionFee != 150 {
		t.Fatalf("unknown tier should fall back to standard/150: %+v", p)
	}
}

func TestPartnerDecideUnknown(t *testing.T) {
	db := memdb(t)
	svc := services.NewPartnerService(repos.NewPartnerRepo(db))

	if _, err := svc.Decide("ptn-missing", true); err != services.ErrUnknownPartner {
		t.Fatalf("want ErrUnknownPartner, got %v", err)
	}
}

func TestPartnerRecordStats(t *testing.T) {
	db := memdb(t)
	svc := services.NewPartnerService(repos.NewPartnerRepo(db))

	if err := svc.RecordStats("ptn-tema-cw", 120000, 5, 9500); err != nil {
		t.Fatal(err)
	}
	p, err := svc.Get("ptn-tema-cw")
	if err != nil {
		t.Fatal(err)
	}
	if p.RevenueGenerated != 120000 || p.ActiveFleetCount != 5 || p.ProductionCapacity != 9500 {
		t.Fatalf("stats not recorded: %+v", p)
	}
}
