package app

import (
	"fmt"
	"net/http"
	"time"

	"github.com/metinatakli/cinema-seating/api"
	"github.com/metinatakli/cinema-seating/internal/seating"
	"github.com/metinatakli/cinema-seating/internal/showing"
)

func (app *Application) ListShowingsHandler(w http.ResponseWriter, r *http.Request) {
	from, err := readTimeParam(r, "from")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	to, err := readTimeParam(r, "to")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if !from.IsZero() && !to.IsZero() && !from.Before(to) {
		app.badRequestResponse(w, r, fmt.Errorf("from must be before to"))
		return
	}

	showings := app.showings.Between(from, to)

	resp := api.ShowingListResponse{
		Showings: make([]api.Showing, len(showings)),
	}

	for i, s := range showings {
		resp.Showings[i] = toShowingResponse(s.Info())
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) GetSeatMapHandler(w http.ResponseWriter, r *http.Request) {
	s, ok := app.showingFromRequest(w, r)
	if !ok {
		return
	}

	states, totals := s.SeatMap()

	resp := toSeatMapResponse(s.Info(), states, totals)

	err := app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// showingFromRequest resolves the {showingID} parameter and writes the error
// response itself when it cannot.
func (app *Application) showingFromRequest(w http.ResponseWriter, r *http.Request) (*showing.Showing, bool) {
	id, err := readShowingID(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return nil, false
	}

	s, ok := app.showings.Get(id)
	if !ok {
		app.contextGetLogger(r).Warn("showing not found", "showing_id", id)
		app.notFoundResponse(w, r)
		return nil, false
	}

	return s, true
}

func readTimeParam(r *http.Request, name string) (time.Time, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return time.Time{}, nil
	}

	t, err := time.Parse(time.RFC3339, v)
	if err != nil {
		return time.Time{}, fmt.Errorf("%s must be an RFC 3339 timestamp", name)
	}

	return t, nil
}

func toShowingResponse(info showing.Info) api.Showing {
	return api.Showing{
		Id:             info.ID,
		Title:          info.Title,
		Room:           info.Room,
		StartsAt:       info.StartsAt,
		Vip:            info.VIP,
		ThreeD:         info.ThreeD,
		HoldTtlSeconds: int64(info.HoldTTL / time.Second),
	}
}

func toSeatMapResponse(info showing.Info, states []seating.SeatState, totals seating.Totals) api.SeatMapResponse {
	seats := make([]api.Seat, len(states))

	for i, st := range states {
		seats[i] = api.Seat{
			Code:     st.Seat.Code(),
			Row:      st.Seat.Row,
			Number:   st.Seat.Number,
			Category: string(st.Seat.Category),
			Status:   string(st.Status),
		}
	}

	return api.SeatMapResponse{
		ShowingId: info.ID,
		Room:      info.Room,
		Seats:     seats,
		Totals: api.SeatTotals{
			Available: totals.Available,
			Held:      totals.Held,
			Sold:      totals.Sold,
		},
	}
}
