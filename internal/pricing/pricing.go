// Package pricing computes cart monetary breakdowns: subtotal, bulk and
// loyalty discounts, the NHIL levy line and currency conversion. All
// functions are pure; inputs are assumed non-negative (the cart layer
// clamps quantities before anything reaches here).
package pricing

// BaseCurrency is the currency all catalogue prices are stored in.
const BaseCurrency = "GHS"

// NHILRate is the 2.5% levy shown on receipts. It is informational only
// and never folded into the stored order total.
const NHILRate = 0.025

// Bulk discount tiers, keyed on total unit count across the whole cart.
const (
	bulkTier1Qty  = 1000
	bulkTier1Rate = 0.03
	bulkTier2Qty  = 5000
	bulkTier2Rate = 0.07
)

// LoyaltyDiscountRate applies once a customer has any prior order.
const LoyaltyDiscountRate = 0.05

type Line struct {
	ProductID string
	UnitPrice float64 // snapshot taken at add-to-cart time
	Qty       int
}

// Breakdown is derived on every cart mutation and snapshotted into the
// order at checkout; it is never stored on its own.
type Breakdown struct {
	Subtotal       float64 `json:"subtotal"`
	BulkRate       float64 `json:"bulkDiscountPct"`
	LoyaltyRate    float64 `json:"loyaltyDiscountPct"`
	DiscountAmount float64 `json:"discountAmount"`
	TaxAmount      float64 `json:"taxAmount"`
	Total          float64 `json:"total"`
}

func Subtotal(lines []Line) float64 {
	s := 0.0
	for _, l := range lines {
		s += l.UnitPrice * float64(l.Qty)
	}
	return s
}

func TotalQty(lines []Line) int {
	n := 0
	for _, l := range lines {
		n += l.Qty
	}
	return n
}

// BulkRate is a step function of the combined unit count; thresholds are
// inclusive.
func BulkRate(totalQty int) float64 {
	switch {
	case totalQty >= bulkTier2Qty:
		return bulkTier2Rate
	case totalQty >= bulkTier1Qty:
		return bulkTier1Rate
	default:
		return 0
	}
}

// LoyaltyRate is a flat first-vs-repeat customer rule: any prior order
// earns the full rate, none earns nothing.
func LoyaltyRate(hasPriorOrders bool) float64 {
	if hasPriorOrders {
		return LoyaltyDiscountRate
	}
	return 0
}

// EffectiveRate adds the two rates. The sum is applied once to the
// subtotal and is deliberately uncapped (see DESIGN.md).
func EffectiveRate(bulk, loyalty float64) float64 {
	return bulk + loyalty
}

func DiscountAmount(subtotal, rate float64) float64 {
	return subtotal * rate
}

func Total(subtotal, discount float64) float64 {
	return subtotal - discount
}

// Tax computes the NHIL line on the post-discount total.
func Tax(total float64) float64 {
	return total * NHILRate
}

// Convert applies an exchange rate to a base-currency amount. Converting
// to the base currency is the identity regardless of the rate supplied.
func Convert(amount, rate float64, target string) float64 {
	if target == BaseCurrency {
		return amount
	}
	return amount * rate
}

// Compute assembles the full breakdown for a cart snapshot.
func Compute(lines []Line, hasPriorOrders bool) Breakdown {
	sub := Subtotal(lines)
	bulk := BulkRate(TotalQty(lines))
	loyal := LoyaltyRate(hasPriorOrders)
	disc := DiscountAmount(sub, EffectiveRate(bulk, loyal))
	tot := Total(sub, disc)
	return Breakdown{
		Subtotal:       sub,
		BulkRate:       bulk,
		LoyaltyRate:    loyal,
		DiscountAmount: disc,
		TaxAmount:      Tax(tot),
		Total:          tot,
	}
}
