package services

import (
	"errors"

	"modublock/internal/pricing"
	"modublock/internal/repos"
)

var ErrInactiveProduct = errors.New("product is not available")

type CartService struct {
	Carts  *repos.CartRepo
	Prods  *repos.ProductRepo
	Orders *repos.OrderRepo
	Guard  *CheckoutGuard
}

func NewCartService(carts *repos.CartRepo, prods *repos.ProductRepo, orders *repos.OrderRepo, guard *CheckoutGuard) *CartService {
	return &CartService{Carts: carts, Prods: prods, Orders: orders, Guard: guard}
}

// Add puts qty units in the cart at the product's current price. The
// price is snapshotted here; later catalogue edits do not touch the line.
func (s *CartService) Add(sessionID, productID string, qty int) error {
	if s.Guard.Busy(sessionID) {
		return ErrCheckoutBusy
	}
	if qty < 1 {
		qty = 1
	}
	cartID, err := s.Carts.EnsureCart(sessionID)
	if err != nil {
		return err
	}
	p, err := s.Prods.Get(productID)
	if err != nil {
		return err
	}
	if !p.Active {
		return ErrInactiveProduct
	}
	return s.Carts.UpsertItem(cartID, productID, qty, p.Price)
}

func (s *CartService) AdjustQty(sessionID, productID string, delta int) error {
	if s.Guard.Busy(sessionID) {
		return ErrCheckoutBusy
	}
	cartID, err := s.Carts.EnsureCart(sessionID)
	if err != nil {
		return err
	}
	return s.Carts.AdjustQty(cartID, productID, delta)
}

func (s *CartService) Remove(sessionID, productID string) error {
	if s.Guard.Busy(sessionID) {
		return ErrCheckoutBusy
	}
	cartID, err := s.Carts.EnsureCart(sessionID)
	if err != nil {
		return err
	}
	return s.Carts.RemoveItem(cartID, productID)
}

type CartView struct {
	Items     []repos.CartItemRow `json:"items"`
	Breakdown pricing.Breakdown   `json:"breakdown"`
}

// View returns the cart with a fresh pricing breakdown; the breakdown is
// recomputed on every read, never cached.
func (s *CartService) View(sessionID string) (CartView, error) {
	cartID, err := s.Carts.EnsureCart(sessionID)
	if err != nil {
		return CartView{}, err
	}
	items, err := s.Carts.View(cartID)
	if err != nil {
		return CartView{}, err
	}
	prior, err := s.Orders.CountBySession(sessionID)
	if err != nil {
		return CartView{}, err
	}

	lines := make([]pricing.Line, 0, len(items))
	for _, it := range items {
		lines = append(lines, pricing.Line{ProductID: it.ProductID, UnitPrice: it.PriceAtAdd, Qty: it.Qty})
	}
	return CartView{Items: items, Breakdown: pricing.Compute(lines, prior > 0)}, nil
}
