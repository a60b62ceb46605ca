package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Sale is an issued ticket together with the price charged for it. The price
// is fixed when the sale is minted.
type Sale struct {
	Code      string
	ShowingID int
	Seat      Seat
	Customer  *CustomerID
	Price     decimal.Decimal
	IssuedAt  time.Time
}

func (s Sale) Anonymous() bool {
	return s.Customer == nil
}

// CustomerTicketBook keeps the own-ticket list of every customer.
type CustomerTicketBook interface {
	AddOwnTicket(customer CustomerID, sale Sale)
}

// TicketRegistry is the chain-wide append-only index of issued tickets.
type TicketRegistry interface {
	Register(ctx context.Context, sales ...Sale) error
	GetByCode(ctx context.Context, code string) (*Sale, error)
}
