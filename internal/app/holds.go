package app

import (
	"net/http"

	"github.com/metinatakli/cinema-seating/api"
)

// CreateHoldHandler holds seats for the customer named by the request header
// or, without one, for a guest. A guest receives a fresh hold token that is
// also remembered in the session.
func (app *Application) CreateHoldHandler(w http.ResponseWriter, r *http.Request) {
	logger := app.contextGetLogger(r)

	s, ok := app.showingFromRequest(w, r)
	if !ok {
		return
	}

	var input api.HoldRequest

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

	resp := api.HoldResponse{
		ShowingId: showingID,
	}

	if customer, ok := app.contextGetCustomer(r); ok {
		err = s.HoldForCustomer(customer, codes)
		if err != nil {
			logger.Warn("hold rejected", "showing_id", showingID, "seats", codes, "error", err)
			app.metrics.rejections.Add(r.Context(), 1, showingAttr(showingID))
			app.seatErrorResponse(w, r, err)
			return
		}

		resp.SeatCodes = s.HeldByCustomer(customer)
	} else {
		token, err := s.HoldAsGuest(codes)
		if err != nil {
			logger.Warn("guest hold rejected", "showing_id", showingID, "seats", codes, "error", err)
			app.metrics.rejections.Add(r.Context(), 1, showingAttr(showingID))
			app.seatErrorResponse(w, r, err)
			return
		}

		app.rememberHoldToken(r, showingID, token)

		resp.SeatCodes = s.HeldByToken(token)
		resp.Token = &token
	}

	app.metrics.seatsHeld.Add(r.Context(), int64(len(codes)), showingAttr(showingID))

	err = app.writeJSON(w, http.StatusCreated, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// GetMyHoldHandler lists the seats held by the acting customer, or by the
// guest token kept in the session.
func (app *Application) GetMyHoldHandler(w http.ResponseWriter, r *http.Request) {
	s, ok := app.showingFromRequest(w, r)
	if !ok {
		return
	}

	showingID := s.Info().ID

	resp := api.HoldResponse{
		ShowingId: showingID,
		SeatCodes: []string{},
	}

	if customer, ok := app.contextGetCustomer(r); ok {
		resp.SeatCodes = s.HeldByCustomer(customer)
	} else if token := app.sessionHoldToken(r, showingID); token != "" {
		resp.SeatCodes = s.HeldByToken(token)
		if len(resp.SeatCodes) > 0 {
			resp.Token = &token
		}
	}

	err := app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// ReleaseHoldHandler gives held seats back before they expire.
func (app *Application) ReleaseHoldHandler(w http.ResponseWriter, r *http.Request) {
	s, ok := app.showingFromRequest(w, r)
	if !ok {
		return
	}

	var input api.ReleaseHoldRequest

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

	if customer, ok := app.contextGetCustomer(r); ok {
		err = s.ReleaseForCustomer(customer, codes)
	} else {
		token := app.sessionHoldToken(r, showingID)
		if token == "" {
			app.notFoundResponse(w, r)
			return
		}

		err = s.ReleaseWithToken(token, codes)
		if err == nil && len(s.HeldByToken(token)) == 0 {
			app.forgetHoldToken(r, showingID)
		}
	}

	if err != nil {
		app.seatErrorResponse(w, r, err)
		return
	}

	app.metrics.seatsReleased.Add(r.Context(), int64(len(codes)), showingAttr(showingID))

	w.WriteHeader(http.StatusNoContent)
}

// ListHoldsHandler reports the live holds of a showing. Guest tokens are bearer
// credentials, so guests are listed without them.
func (app *Application) ListHoldsHandler(w http.ResponseWriter, r *http.Request) {
	s, ok := app.showingFromRequest(w, r)
	if !ok {
		return
	}

	holds := s.Holds()

	resp := api.HoldListResponse{
		ShowingId: s.Info().ID,
		Holds:     make([]api.HoldSummary, len(holds)),
	}

	for i, h := range holds {
		owner := "guest"
		if id, ok := h.Owner.Customer(); ok {
			owner = "customer:" + string(id)
		}

		resp.Holds[i] = api.HoldSummary{
			Owner:      owner,
			SeatCodes:  h.SeatCodes,
			CreatedAt:  h.CreatedAt,
			ExtendedAt: h.ExtendedAt,
		}
	}

	err := app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}
