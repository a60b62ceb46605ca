package domain

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidRequest  = errors.New("invalid request")
	ErrInvalidSeat     = errors.New("invalid seat")
	ErrSeatNotFound    = errors.New("seat not found")
	ErrSeatUnavailable = errors.New("seat is not available")
	ErrSeatAlreadySold = errors.New("seat already sold")
	ErrSeatHeldByOther = errors.New("seat is held by someone else")
	ErrRecordNotFound  = errors.New("record not found")
	ErrDuplicateTicket = errors.New("ticket code already registered")
)

// SeatError reports the seat that caused a request to be rejected.
type SeatError struct {
	Seat string
	Err  error
}

func NewSeatError(seat string, err error) *SeatError {
	return &SeatError{Seat: seat, Err: err}
}

func (e *SeatError) Error() string {
	return fmt.Sprintf("%s: %s", e.Err, e.Seat)
}

func (e *SeatError) Unwrap() error {
	return e.Err
}
