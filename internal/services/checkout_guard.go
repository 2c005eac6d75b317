package services

import "sync"

// CheckoutGuard marks sessions with a checkout in flight. While a
// session is marked, a second checkout and any cart mutation for the
// same session are refused instead of racing the open transaction.
type CheckoutGuard struct {
	mu       sync.Mutex
	inFlight map[string]bool
}

func NewCheckoutGuard() *CheckoutGuard {
	return &CheckoutGuard{inFlight: map[string]bool{}}
}

// Begin claims the session's checkout critical section. It reports
// false if another checkout already holds it.
func (g *CheckoutGuard) Begin(sessionID string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.inFlight[sessionID] {
		return false
	}
	g.inFlight[sessionID] = true
	return true
}

func (g *CheckoutGuard) End(sessionID string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.inFlight, sessionID)
}

func (g *CheckoutGuard) Busy(sessionID string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.inFlight[sessionID]
}
