package services

import (
	"database/sql"
	"errors"
	"math/rand"
	"strings"

	"github.com/jmoiron/sqlx"

	"modublock/internal/domain"
	"modublock/internal/pricing"
	"modublock/internal/repos"
)

var (
	ErrEmptyCart    = errors.New("cart is empty")
	ErrCheckoutBusy = errors.New("checkout already in progress")
	ErrUnknownOrder = errors.New("order not found")
)

// Tracking stub attached to every order at creation, before a driver is
// dispatched.
const (
	stubLocation = "Central Hub, Shai Hills"
	stubETA      = "Pending Dispatch"
	stubDriver   = "TBD"
)

const txnChars = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

type OrderService struct {
	DB     *sqlx.DB
	Carts  *repos.CartRepo
	Orders *repos.OrderRepo
	Guard  *CheckoutGuard
}

func NewOrderService(db *sqlx.DB, carts *repos.CartRepo, orders *repos.OrderRepo, guard *CheckoutGuard) *OrderService {
	return &OrderService{DB: db, Carts: carts, Orders: orders, Guard: guard}
}

func genOrderID() string {
	b := make([]byte, 5)
	for i := range b {
		b[i] = byte('0' + rand.Intn(10))
	}
	return "MOD-" + string(b)
}

func genTransactionID() string {
	b := make([]byte, 9)
	for i := range b {
		b[i] = txnChars[rand.Intn(len(txnChars))]
	}
	return "TXN-" + string(b)
}

// Checkout prices the session cart, creates the order and clears the
// cart in a single transaction. On any failure nothing is committed and
// the cart is left exactly as it was. The guard is held for the whole
// of it, so cart mutations cannot slip in between the price snapshot
// and the clear.
func (s *OrderService) Checkout(sessionID, currency string, exchangeRate float64, paymentMethod string) (string, pricing.Breakdown, error) {
	if !s.Guard.Begin(sessionID) {
		return "", pricing.Breakdown{}, ErrCheckoutBusy
	}
	defer s.Guard.End(sessionID)

	cartID, err := s.Carts.EnsureCart(sessionID)
	if err != nil {
		return "", pricing.Breakdown{}, err
	}
	items, err := s.Carts.Items(cartID)
	if err != nil {
		return "", pricing.Breakdown{}, err
	}
	if len(items) == 0 {
		return "", pricing.Breakdown{}, ErrEmptyCart
	}

	prior, err := s.Orders.CountBySession(sessionID)
	if err != nil {
		return "", pricing.Breakdown{}, err
	}

	lines := make([]pricing.Line, 0, len(items))
	for _, it := range items {
		lines = append(lines, pricing.Line{ProductID: it.ProductID, UnitPrice: it.Price, Qty: it.Qty})
	}
	bd := pricing.Compute(lines, prior > 0)

	if currency == "" {
		currency = pricing.BaseCurrency
	}
	if currency == pricing.BaseCurrency {
		exchangeRate = 1
	}

	tx, err := s.DB.Beginx()
	if err != nil {
		return "", pricing.Breakdown{}, err
	}
	defer func() { _ = tx.Rollback() }()

	// Random 5-digit ids collide eventually; retry on the primary key
	// instead of trusting the dice.
	var orderID string
	for attempt := 0; ; attempt++ {
		orderID = genOrderID()
		err = s.Orders.CreateTx(tx, repos.NewOrder{
			ID:               orderID,
			TransactionID:    genTransactionID(),
			SessionID:        sessionID,
			Subtotal:         bd.Subtotal,
			DiscountAmount:   bd.DiscountAmount,
			Total:            bd.Total,
			Currency:         currency,
			ExchangeRate:     exchangeRate,
			PaymentMethod:    paymentMethod,
			TrackingLocation: stubLocation,
			TrackingETA:      stubETA,
			DriverName:       stubDriver,
			DriverPhone:      stubDriver,
		})
		if err == nil {
			break
		}
		if attempt < 4 && strings.Contains(err.Error(), "UNIQUE constraint failed: orders.id") {
			continue
		}
		return "", pricing.Breakdown{}, err
	}

	for _, it := range items {
		if err := s.Orders.InsertItemTx(tx, orderID, it.ProductID, it.Name, it.Qty, it.Price); err != nil {
			return "", pricing.Breakdown{}, err
		}
	}
	if err := s.Carts.ClearTx(tx, cartID); err != nil {
		return "", pricing.Breakdown{}, err
	}
	if err := tx.Commit(); err != nil {
		return "", pricing.Breakdown{}, err
	}

	return orderID, bd, nil
}

// NextStatus is the lifecycle lookup: strictly forward, no skipping. The
// terminal status maps to itself.
func NextStatus(status string) string {
	switch status {
	case domain.StatusProcessing:
		return domain.StatusInProduction
	case domain.StatusInProduction:
		return domain.StatusOutForDelivery
	case domain.StatusOutForDelivery:
		return domain.StatusDelivered
	default:
		return domain.StatusDelivered
	}
}

// Advance moves an order one step forward. Advancing a delivered order
// is a no-op and reports the unchanged status.
func (s *OrderService) Advance(orderID string) (string, error) {
	o, _, err := s.Orders.Get(orderID)
	if err != nil {
		if err == sql.ErrNoRows {
			return "", ErrUnknownOrder
		}
		return "", err
	}
	if o.Status == domain.StatusDelivered {
		return o.Status, nil
	}
	next := NextStatus(o.Status)
	if err := s.Orders.UpdateStatus(o.ID, next); err != nil {
		return "", err
	}
	return next, nil
}

// Find looks an order up by id, case-insensitively. A miss is an
// expected outcome, reported via found=false rather than an error.
func (s *OrderService) Find(orderID string) (repos.OrderRow, []repos.OrderItemRow, bool, error) {
	o, items, err := s.Orders.Get(orderID)
	if err == sql.ErrNoRows {
		return repos.OrderRow{}, nil, false, nil
	}
	if err != nil {
		return repos.OrderRow{}, nil, false, err
	}
	return o, items, true, nil
}

// AssignTracking records dispatch details. Status is unaffected; the
// progress view is keyed off status alone.
func (s *OrderService) AssignTracking(orderID string, t domain.Tracking) error {
	o, _, err := s.Orders.Get(orderID)
	if err != nil {
		if err == sql.ErrNoRows {
			return ErrUnknownOrder
		}
		return err
	}
	return s.Orders.AssignTracking(o.ID, t.CurrentLocation, t.EstimatedArrival, t.DriverName, t.DriverPhone)
}
