package app

import (
	"net/http"
	"strings"

	"github.com/metinatakli/cinema-seating/api"
	"github.com/metinatakli/cinema-seating/internal/domain"
	"github.com/shopspring/decimal"
)

// CreatePurchaseHandler sells seats. A customer header buys as that customer;
// otherwise a hold token from the body or the session buys the seats held
// under it, and a request with neither is a plain anonymous purchase.
func (app *Application) CreatePurchaseHandler(w http.ResponseWriter, r *http.Request) {
	logger := app.contextGetLogger(r)

	s, ok := app.showingFromRequest(w, r)
	if !ok {
		return
	}

	var input api.PurchaseRequest

	err := app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.validator.Struct(input)
	if err != nil {
		app.failedValidationResponse(w, r, err)
		return
	}

	showingID := s.Info().ID
	codes := normalizeSeatCodes(input.SeatCodes)

	var (
		sales []domain.Sale
		token string
	)

	customer, isCustomer := app.contextGetCustomer(r)

	switch {
	case isCustomer:
		sales, err = s.PurchaseForCustomer(customer, codes)
	default:
		if input.Token != nil {
			token = strings.TrimSpace(*input.Token)
		} else {
			token = app.sessionHoldToken(r, showingID)
		}

		if token != "" {
			sales, err = s.PurchaseWithToken(token, codes)
		} else {
			sales, err = s.PurchaseAsGuest(codes)
		}
	}

	if err != nil {
		logger.Warn("purchase rejected", "showing_id", showingID, "seats", codes, "error", err)
		app.metrics.rejections.Add(r.Context(), 1, showingAttr(showingID))
		app.seatErrorResponse(w, r, err)
		return
	}

	app.metrics.ticketsSold.Add(r.Context(), int64(len(sales)), showingAttr(showingID))

	if token != "" && token == app.sessionHoldToken(r, showingID) && len(s.HeldByToken(token)) == 0 {
		app.forgetHoldToken(r, showingID)
	}

	// The seats are sold at this point. A registry failure only loses the
	// chain-wide lookup, so it is logged instead of failing the purchase.
	err = app.ticketRegistry.Register(r.Context(), sales...)
	if err != nil {
		logger.Error("failed to register tickets", "showing_id", showingID, "error", err)
	}

	resp := api.PurchaseResponse{
		Tickets: make([]api.Ticket, len(sales)),
		Total:   decimal.Zero,
	}

	for i, sale := range sales {
		resp.Tickets[i] = toTicketResponse(sale)
		resp.Total = resp.Total.Add(sale.Price)
	}

	err = app.writeJSON(w, http.StatusCreated, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func toTicketResponse(sale domain.Sale) api.Ticket {
	ticket := api.Ticket{
		Code:      sale.Code,
		ShowingId: sale.ShowingID,
		Seat:      sale.Seat.Code(),
		Category:  string(sale.Seat.Category),
		Price:     sale.Price,
		IssuedAt:  sale.IssuedAt,
	}

	if sale.Customer != nil {
		id := string(*sale.Customer)
		ticket.CustomerId = &id
	}

	return ticket
}
