package repos

import (
	"time"

	"github.com/jmoiron/sqlx"
)

type ShortlistRepo struct{ db *sqlx.DB }

func NewShortlistRepo(db *sqlx.DB) *ShortlistRepo { return &ShortlistRepo{db: db} }

type ShortlistRow struct {
	ProductID   string  `db:"product_id" json:"productId"`
	Name        string  `db:"name" json:"name"`
	Category    string  `db:"category" json:"category"`
	Price       float64 `db:"price" json:"price"`
	FactoryName string  `db:"factory_name" json:"factoryName"`
}

func (r *ShortlistRepo) Ensure(sessionID string) (string, error) {
	var id string
	if err := r.db.Get(&id, `SELECT id FROM shortlists WHERE session_id = ?`, sessionID); err == nil {
		return id, nil
	}
	_, err := r.db.Exec(`INSERT INTO shortlists(id,session_id,updated_at) VALUES(?,?,?)`,
		sessionID, sessionID, time.Now().Format(time.RFC3339))
	if err != nil {
		return "", err
	}
	return sessionID, nil
}

func (r *ShortlistRepo) Save(listID, productID string) error {
	_, err := r.db.Exec(`
		INSERT INTO shortlist_items(shortlist_id,product_id,created_at)
		VALUES(?,?,CURRENT_TIMESTAMP)
		ON CONFLICT(shortlist_id,product_id) DO NOTHING
	`, listID, productID)
	return err
}

func (r *ShortlistRepo) Unsave(listID, productID string) error {
	_, err := r.db.Exec(`DELETE FROM shortlist_items WHERE shortlist_id = ? AND product_id = ?`, listID, productID)
	return err
}

// List joins the live catalogue: a shortlist shows current prices, not
// snapshots (only carts snapshot).
func (r *ShortlistRepo) List(listID string) ([]ShortlistRow, error) {
	rows := []ShortlistRow{}
	err := r.db.Select(&rows, `
		SELECT si.product_id, p.name, p.category, p.price, p.factory_name
		FROM shortlist_items si JOIN products p ON p.id = si.product_id
		WHERE si.shortlist_id = ? AND p.active = 1
		ORDER BY si.rowid
	`, listID)
	return rows, err
}
