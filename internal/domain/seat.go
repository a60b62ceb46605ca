package domain

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

type SeatCategory string

const (
	SeatCategoryStandard   SeatCategory = "standard"
	SeatCategoryPremium    SeatCategory = "premium"
	SeatCategoryPromo      SeatCategory = "promo"
	SeatCategorySuperPromo SeatCategory = "super_promo"
)

func (c SeatCategory) Valid() bool {
	switch c {
	case SeatCategoryStandard, SeatCategoryPremium, SeatCategoryPromo, SeatCategorySuperPromo:
		return true
	}

	return false
}

type SeatStatus string

const (
	SeatAvailable SeatStatus = "AVAILABLE"
	SeatHeld      SeatStatus = "HELD"
	SeatSold      SeatStatus = "SOLD"
)

// Seat is a physical seat of a room. It is owned by the venue and never
// changes once the room is built.
type Seat struct {
	Row      string
	Number   int
	Category SeatCategory
}

func NewSeat(row string, number int, category SeatCategory) (Seat, error) {
	row = strings.ToUpper(strings.TrimSpace(row))

	if row == "" {
		return Seat{}, fmt.Errorf("%w: row is empty", ErrInvalidSeat)
	}

	if number < 1 {
		return Seat{}, fmt.Errorf("%w: seat number must be greater than zero", ErrInvalidSeat)
	}

	if !category.Valid() {
		return Seat{}, fmt.Errorf("%w: unknown category %q", ErrInvalidSeat, category)
	}

	return Seat{Row: row, Number: number, Category: category}, nil
}

// Code is the room-scoped identifier of the seat, e.g. "A7".
func (s Seat) Code() string {
	return s.Row + strconv.Itoa(s.Number)
}

type PricingPolicy interface {
	Price(seat Seat, vip, threeD bool) (decimal.Decimal, error)
}
