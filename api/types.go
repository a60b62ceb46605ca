// Package api holds the request and response bodies of the front-of-house
// HTTP API.
package api

import (
	"time"

	"github.com/shopspring/decimal"
)

type ErrorResponse struct {
	Message   string    `json:"message"`
	RequestId string    `json:"requestId"`
	Timestamp time.Time `json:"timestamp"`
}

type ValidationError struct {
	Field string `json:"field"`
	Issue string `json:"issue"`
}

type ValidationErrorResponse struct {
	Message          string            `json:"message"`
	RequestId        string            `json:"requestId"`
	Timestamp        time.Time         `json:"timestamp"`
	ValidationErrors []ValidationError `json:"validationErrors"`
}

type SystemInfo struct {
	Version     string `json:"version"`
	Environment string `json:"environment"`
}

type HealthcheckResponse struct {
	Status     string     `json:"status"`
	SystemInfo SystemInfo `json:"systemInfo"`
}

type Showing struct {
	Id             int       `json:"id"`
	Title          string    `json:"title"`
	Room           string    `json:"room"`
	StartsAt       time.Time `json:"startsAt"`
	Vip            bool      `json:"vip"`
	ThreeD         bool      `json:"threeD"`
	HoldTtlSeconds int64     `json:"holdTtlSeconds"`
}

type ShowingListResponse struct {
	Showings []Showing `json:"showings"`
}

type Seat struct {
	Code     string `json:"code"`
	Row      string `json:"row"`
	Number   int    `json:"number"`
	Category string `json:"category"`
	Status   string `json:"status"`
}

type SeatTotals struct {
	Available int `json:"available"`
	Held      int `json:"held"`
	Sold      int `json:"sold"`
}

type SeatMapResponse struct {
	ShowingId int        `json:"showingId"`
	Room      string     `json:"room"`
	Seats     []Seat     `json:"seats"`
	Totals    SeatTotals `json:"totals"`
}

type HoldRequest struct {
	SeatCodes []string `json:"seatCodes" validate:"required,min=1,max=10,dive,seatcode"`
}

type HoldResponse struct {
	ShowingId int      `json:"showingId"`
	SeatCodes []string `json:"seatCodes"`
	Token     *string  `json:"token,omitempty"`
}

type ReleaseHoldRequest struct {
	SeatCodes []string `json:"seatCodes" validate:"required,min=1,max=10,dive,seatcode"`
}

type PurchaseRequest struct {
	SeatCodes []string `json:"seatCodes" validate:"required,min=1,max=10,dive,seatcode"`
	Token     *string  `json:"token,omitempty" validate:"omitempty,alphanum,min=10"`
}

type Ticket struct {
	Code       string          `json:"code"`
	ShowingId  int             `json:"showingId"`
	Seat       string          `json:"seat"`
	Category   string          `json:"category"`
	Price      decimal.Decimal `json:"price"`
	CustomerId *string         `json:"customerId,omitempty"`
	IssuedAt   time.Time       `json:"issuedAt"`
}

type PurchaseResponse struct {
	Tickets []Ticket        `json:"tickets"`
	Total   decimal.Decimal `json:"total"`
}

type TicketListResponse struct {
	Tickets []Ticket `json:"tickets"`
}

type HoldSummary struct {
	Owner      string    `json:"owner"`
	SeatCodes  []string  `json:"seatCodes"`
	CreatedAt  time.Time `json:"createdAt"`
	ExtendedAt time.Time `json:"extendedAt"`
}

type HoldListResponse struct {
	ShowingId int           `json:"showingId"`
	Holds     []HoldSummary `json:"holds"`
}
