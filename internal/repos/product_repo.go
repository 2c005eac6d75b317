package repos

import (
	"modublock/internal/domain"

	"github.com/jmoiron/sqlx"
)

type ProductRepo struct{ db *sqlx.DB }

func NewProductRepo(db *sqlx.DB) *ProductRepo { return &ProductRepo{db: db} }

const productCols = `
  id, name, category, price, factory_name,
  COALESCE(dimensions,'') AS dimensions, COALESCE(weight,'') AS weight,
  COALESCE(strength,'') AS strength, avg_rating, review_count, active,
  created_at, COALESCE(updated_at,'') AS updated_at`

func (r *ProductRepo) List(limit, offset int) ([]domain.Product, error) {
	var out []domain.Product
	err := r.db.Select(&out, `
	  SELECT `+productCols+`
	  FROM products
	  WHERE active = 1
	  ORDER BY category, name
	  LIMIT ? OFFSET ?
	`, limit, offset)
	return out, err
}

func (r *ProductRepo) ListByCategory(category string, limit, offset int) ([]domain.Product, error) {
	var out []domain.Product
	err := r.db.Select(&out, `
	  SELECT `+productCols+`
	  FROM products
	  WHERE category = ? AND active = 1
	  ORDER BY name
	  LIMIT ? OFFSET ?
	`, category, limit, offset)
	return out, err
}

func (r *ProductRepo) Get(id string) (domain.Product, error) {
	var p domain.Product
	err := r.db.Get(&p, `
	  SELECT `+productCols+`
	  FROM products
	  WHERE id = ?
	`, id)
	return p, err
}

func (r *ProductRepo) Search(q, category string, limit, offset int) ([]domain.Product, error) {
	where := `active = 1`
	args := []any{}
	if q != "" {
		where += ` AND (LOWER(name) LIKE ? OR LOWER(factory_name) LIKE ?)`
		args = append(args, "%"+q+"%", "%"+q+"%")
	}
	if category != "" {
		where += ` AND category = ?`
		args = append(args, category)
	}

	sql := `
	  SELECT ` + productCols + `
	  FROM products
	  WHERE ` + where + `
	  ORDER BY name
	  LIMIT ? OFFSET ?`
	args = append(args, limit, offset)

	var out []domain.Product
	err := r.db.Select(&out, sql, args...)
	return out, err
}

// UpdatePrice changes the catalogue price. Historical orders keep their
// snapshots; only future adds see the new price.
func (r *ProductRepo) UpdatePrice(id string, price float64) error {
	_, err := r.db.Exec(`UPDATE products SET price = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`, price, id)
	return err
}

func (r *ProductRepo) SetActive(id string, active bool) error {
	_, err := r.db.Exec(`UPDATE products SET active = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`, active, id)
	return err
}
