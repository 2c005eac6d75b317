package repos

import (
	"modublock/internal/domain"

	"github.com/jmoiron/sqlx"
)

type PartnerRepo struct{ db *sqlx.DB }

func NewPartnerRepo(db *sqlx.DB) *PartnerRepo { return &PartnerRepo{db: db} }

const partnerCols = `
  id, name, COALESCE(location,'') AS location, COALESCE(contact,'') AS contact,
  status, tier, subscription_fee, revenue_generated,
  active_fleet_count, production_capacity, created_at`

func (r *PartnerRepo) Create(p domain.Partner) error {
	_, err := r.db.Exec(`
	  INSERT INTO partners
	    (id, name, location, contact, status, tier, subscription_fee,
	     revenue_generated, active_fleet_count, production_capacity, created_at)
	  VALUES (?, ?, ?, ?, 'PENDING', ?, ?, 0, 0, ?, CURRENT_TIMESTAMP)
	`, p.ID, p.Name, p.Location, p.Contact, p.Tier, p.SubscriptionFee, p.ProductionCapacity)
	return err
}

func (r *PartnerRepo) Get(id string) (domain.Partner, error) {
	var p domain.Partner
	err := r.db.Get(&p, `SELECT `+partnerCols+` FROM partners WHERE id = ?`, id)
	return p, err
}

func (r *PartnerRepo) List(status string) ([]domain.Partner, error) {
	var out []domain.Partner
	if status == "" {
		err := r.db.Select(&out, `SELECT `+partnerCols+` FROM partners ORDER BY name`)
		return out, err
	}
	err := r.db.Select(&out, `SELECT `+partnerCols+` FROM partners WHERE status = ? ORDER BY name`, status)
	return out, err
}

// Decide flips a PENDING application to APPROVED or REJECTED exactly
// once; rows already decided are untouched (zero rows affected).
func (r *PartnerRepo) Decide(id, status string) (bool, error) {
	res, err := r.db.Exec(`
		UPDATE partners SET status = ?
		WHERE id = ? AND status = 'PENDING'
	`, status, id)
	if err != nil {
		return false, err
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

// UpsertStats records operational figures reported for a partner.
func (r *PartnerRepo) UpsertStats(id string, revenue float64, fleet, capacity int) error {
	_, err := r.db.Exec(`
		UPDATE partners
		SET revenue_generated = ?, active_fleet_count = ?, production_capacity = ?
		WHERE id = ?
	`, revenue, fleet, capacity, id)
	return err
}
