// Package customer keeps the tickets each registered customer owns.
package customer

import (
	"slices"
	"sync"

	"github.com/metinatakli/cinema-seating/internal/domain"
)

type TicketBook struct {
	mu      sync.RWMutex
	tickets map[domain.CustomerID][]domain.Sale
}

func NewTicketBook() *TicketBook {
	return &TicketBook{
		tickets: make(map[domain.CustomerID][]domain.Sale),
	}
}

func (b *TicketBook) AddOwnTicket(customer domain.CustomerID, sale domain.Sale) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.tickets[customer] = append(b.tickets[customer], sale)
}

// Tickets returns the customer's tickets in purchase order.
func (b *TicketBook) Tickets(customer domain.CustomerID) []domain.Sale {
	b.mu.RLock()
	defer b.mu.RUnlock()

	return slices.Clone(b.tickets[customer])
}
