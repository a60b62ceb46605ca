package repository

import (
	"context"
	"fmt"
	"sync"

	"github.com/metinatakli/cinema-seating/internal/domain"
)

// MemoryTicketRegistry is the ticket registry used when no database is
// configured.
type MemoryTicketRegistry struct {
	mu      sync.RWMutex
	tickets map[string]domain.Sale
}

func NewMemoryTicketRegistry() *MemoryTicketRegistry {
	return &MemoryTicketRegistry{
		tickets: make(map[string]domain.Sale),
	}
}

func (m *MemoryTicketRegistry) Register(_ context.Context, sales ...domain.Sale) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	seen := make(map[string]struct{}, len(sales))
	for _, sale := range sales {
		_, taken := m.tickets[sale.Code]
		_, repeated := seen[sale.Code]
		if taken || repeated || sale.Code == "" {
			return fmt.Errorf("%w: %q", domain.ErrDuplicateTicket, sale.Code)
		}
		seen[sale.Code] = struct{}{}
	}

	for _, sale := range sales {
		m.tickets[sale.Code] = sale
	}

	return nil
}

func (m *MemoryTicketRegistry) GetByCode(_ context.Context, code string) (*domain.Sale, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	sale, ok := m.tickets[code]
	if !ok {
		return nil, domain.ErrRecordNotFound
	}

	return &sale, nil
}
