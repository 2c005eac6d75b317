package repos

import "github.com/jmoiron/sqlx"

type OrderRepo struct{ db *sqlx.DB }

func NewOrderRepo(db *sqlx.DB) *OrderRepo { return &OrderRepo{db: db} }

// ---------- Admin list summary ----------
type OrderSummary struct {
	ID        string  `db:"id" json:"id"`
	SessionID string  `db:"session_id" json:"-"`
	Total     float64 `db:"total" json:"total"`
	Currency  string  `db:"currency" json:"currency"`
	Status    string  `db:"status" json:"status"`
	CreatedAt string  `db:"created_at" json:"createdAt"`
}

// ---------- Order detail ----------
type OrderRow struct {
	ID               string  `db:"id" json:"id"`
	TransactionID    string  `db:"transaction_id" json:"transactionId"`
	SessionID        string  `db:"session_id" json:"-"`
	Subtotal         float64 `db:"subtotal" json:"subtotal"`
	DiscountAmount   float64 `db:"discount_amount" json:"discountAmount"`
	Total            float64 `db:"total" json:"total"`
	Currency         string  `db:"currency" json:"currency"`
	ExchangeRate     float64 `db:"exchange_rate" json:"exchangeRate"`
	PaymentMethod    string  `db:"payment_method" json:"paymentMethod"`
	Status           string  `db:"status" json:"status"`
	TrackingLocation string  `db:"tracking_location" json:"trackingLocation"`
	TrackingETA      string  `db:"tracking_eta" json:"trackingEta"`
	DriverName       string  `db:"driver_name" json:"driverName"`
	DriverPhone      string  `db:"driver_phone" json:"driverPhone"`
	CreatedAt        string  `db:"created_at" json:"createdAt"`
}

type OrderItemRow struct {
	ProductID string  `db:"product_id" json:"productId"`
	Name      string  `db:"name" json:"name"`
	Qty       int     `db:"qty" json:"qty"`
	Price     float64 `db:"price" json:"price"`
	Subtotal  float64 `db:"subtotal" json:"subtotal"`
}

// NewOrder carries everything needed to insert an order header.
type NewOrder struct {
	ID               string
	TransactionID    string
	SessionID        string
	Subtotal         float64
	DiscountAmount   float64
	Total            float64
	Currency         string
	ExchangeRate     float64
	PaymentMethod    string
	TrackingLocation string
	TrackingETA      string
	DriverName       string
	DriverPhone      string
}

// CreateTx inserts the order header inside an open transaction so that
// checkout (insert header, insert items, clear cart) commits atomically.
func (r *OrderRepo) CreateTx(tx *sqlx.Tx, o NewOrder) error {
	_, err := tx.Exec(`
	  INSERT INTO orders
	    (id, transaction_id, session_id, subtotal, discount_amount, total,
	     currency, exchange_rate, payment_method, status,
	     tracking_location, tracking_eta, driver_name, driver_phone, created_at)
	  VALUES
	    (?, ?, ?, ?, ?, ?, ?, ?, ?, 'PROCESSING', ?, ?, ?, ?, CURRENT_TIMESTAMP)
	`, o.ID, o.TransactionID, o.SessionID, o.Subtotal, o.DiscountAmount, o.Total,
		o.Currency, o.ExchangeRate, o.PaymentMethod,
		o.TrackingLocation, o.TrackingETA, o.DriverName, o.DriverPhone)
	return err
}

func (r *OrderRepo) InsertItemTx(tx *sqlx.Tx, orderID, productID, name string, qty int, price float64) error {
	_, err := tx.Exec(`
	  INSERT INTO order_items(order_id, product_id, name, qty, price)
	  VALUES(?, ?, ?, ?, ?)
	`, orderID, productID, name, qty, price)
	return err
}

const orderCols = `
  id, transaction_id, COALESCE(session_id,'') AS session_id,
  subtotal, discount_amount, total, currency, exchange_rate,
  COALESCE(payment_method,'') AS payment_method, status,
  COALESCE(tracking_location,'') AS tracking_location,
  COALESCE(tracking_eta,'') AS tracking_eta,
  COALESCE(driver_name,'') AS driver_name,
  COALESCE(driver_phone,'') AS driver_phone,
  created_at`

// Get matches the order id case-insensitively; a miss surfaces as
// sql.ErrNoRows for the service layer to translate into not-found.
func (r *OrderRepo) Get(orderID string) (OrderRow, []OrderItemRow, error) {
	var o OrderRow
	if err := r.db.Get(&o, `
		SELECT `+orderCols+`
		FROM orders
		WHERE UPPER(id) = UPPER(?)
	`, orderID); err != nil {
		return OrderRow{}, nil, err
	}

	var items []OrderItemRow
	if err := r.db.Select(&items, `
		SELECT product_id, name, qty, price, (qty * price) AS subtotal
		FROM order_items
		WHERE order_id = ?
		ORDER BY rowid
	`, o.ID); err != nil {
		return OrderRow{}, nil, err
	}

	return o, items, nil
}

func (r *OrderRepo) ListLatest(limit int) ([]OrderSummary, error) {
	if limit <= 0 {
		limit = 100
	}
	var out []OrderSummary
	err := r.db.Select(&out, `
		SELECT id, COALESCE(session_id,'') AS session_id, total, currency, status, created_at
		FROM orders
		ORDER BY datetime(created_at) DESC
		LIMIT ?
	`, limit)
	return out, err
}

func (r *OrderRepo) ListBySession(sessionID string) ([]OrderSummary, error) {
	var out []OrderSummary
	err := r.db.Select(&out, `
		SELECT id, COALESCE(session_id,'') AS session_id, total, currency, status, created_at
		FROM orders
		WHERE session_id = ?
		ORDER BY datetime(created_at) DESC
	`, sessionID)
	return out, err
}

// CountBySession feeds the loyalty rule: any prior order earns the rate.
func (r *OrderRepo) CountBySession(sessionID string) (int, error) {
	var n int
	err := r.db.Get(&n, `SELECT COUNT(*) FROM orders WHERE session_id = ?`, sessionID)
	return n, err
}

func (r *OrderRepo) UpdateStatus(id, status string) error {
	_, err := r.db.Exec(`UPDATE orders SET status = ? WHERE id = ?`, status, id)
	return err
}

// AssignTracking sets dispatch details once a driver is allocated.
func (r *OrderRepo) AssignTracking(id, location, eta, driverName, driverPhone string) error {
	_, err := r.db.Exec(`
		UPDATE orders
		SET tracking_location = ?, tracking_eta = ?, driver_name = ?, driver_phone = ?
		WHERE id = ?
	`, location, eta, driverName, driverPhone, id)
	return err
}
