package app

import (
	"context"
	"fmt"
	"net/http"

	"github.com/metinatakli/cinema-seating/internal/domain"
)

type contextKey string

const (
	contextKeyCustomer = contextKey("customer")
	contextKeyLogger   = contextKey("logger")
)

// CustomerHeader identifies a registered customer. Requests without it act as
// anonymous guests.
const CustomerHeader = "X-Customer-ID"

func (app *Application) contextSetCustomer(r *http.Request, customer domain.CustomerID) *http.Request {
	ctx := context.WithValue(r.Context(), contextKeyCustomer, customer)
	return r.WithContext(ctx)
}

func (app *Application) contextGetCustomer(r *http.Request) (domain.CustomerID, bool) {
	customer, ok := r.Context().Value(contextKeyCustomer).(domain.CustomerID)
	return customer, ok
}

func holdTokenKey(showingID int) string {
	return fmt.Sprintf("hold_token:%d", showingID)
}

// sessionHoldToken returns the guest hold token this session received for the
// showing, if any.
func (app *Application) sessionHoldToken(r *http.Request, showingID int) string {
	return app.sessionManager.GetString(r.Context(), holdTokenKey(showingID))
}

func (app *Application) rememberHoldToken(r *http.Request, showingID int, token string) {
	app.sessionManager.Put(r.Context(), holdTokenKey(showingID), token)
}

func (app *Application) forgetHoldToken(r *http.Request, showingID int) {
	app.sessionManager.Remove(r.Context(), holdTokenKey(showingID))
}
