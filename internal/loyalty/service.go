// Package loyalty accrues reward points for shoppers. One point per
// whole currency unit of order total, tracked in memory per shopper.
package loyalty

import (
	"math"
	"sync"
)

// Service tracks loyalty balances keyed by shopper (cart) ID.
type Service struct {
	mu       sync.RWMutex
	balances map[string]int
}

// NewService creates an empty loyalty ledger.
func NewService() *Service {
	return &Service{balances: make(map[string]int)}
}

// Award credits points for an order total and returns the new balance.
func (s *Service) Award(shopperID string, orderTotal float64) int {
	points := int(math.Floor(orderTotal))
	if points < 0 {
		points = 0
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.balances[shopperID] += points
	return s.balances[shopperID]
}

// Balance returns the current point balance for a shopper.
func (s *Service) Balance(shopperID string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.balances[shopperID]
}
