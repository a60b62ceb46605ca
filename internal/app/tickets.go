package app

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/metinatakli/cinema-seating/api"
	"github.com/metinatakli/cinema-seating/internal/domain"
)

// GetShowingTicketHandler looks a ticket up among the sales of one showing.
func (app *Application) GetShowingTicketHandler(w http.ResponseWriter, r *http.Request) {
	s, ok := app.showingFromRequest(w, r)
	if !ok {
		return
	}

	sale, ok := s.FindSale(chi.URLParam(r, "code"))
	if !ok {
		app.notFoundResponse(w, r)
		return
	}

	err := app.writeJSON(w, http.StatusOK, toTicketResponse(sale), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// GetTicketHandler looks a ticket up in the chain-wide registry.
func (app *Application) GetTicketHandler(w http.ResponseWriter, r *http.Request) {
	sale, err := app.ticketRegistry.GetByCode(r.Context(), chi.URLParam(r, "code"))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	err = app.writeJSON(w, http.StatusOK, toTicketResponse(*sale), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) GetMyTicketsHandler(w http.ResponseWriter, r *http.Request) {
	customer, _ := app.contextGetCustomer(r)

	sales := app.ticketBook.Tickets(customer)

	resp := api.TicketListResponse{
		Tickets: make([]api.Ticket, len(sales)),
	}

	for i, sale := range sales {
		resp.Tickets[i] = toTicketResponse(sale)
	}

	err := app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}
