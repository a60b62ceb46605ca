package app

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/riandyrn/otelchi"
)

func (app *Application) Routes() http.Handler {
	r := chi.NewRouter()

	r.NotFound(app.notFoundResponse)
	r.MethodNotAllowed(app.methodNotAllowedResponse)

	r.Use(middleware.RequestID)
	r.Use(otelchi.Middleware("cinema-seating-api", otelchi.WithChiRoutes(r)))
	r.Use(middleware.Logger)
	r.Use(app.requestLogger)
	r.Use(app.recoverPanic)
	r.Use(app.sessionManager.LoadAndSave)
	r.Use(app.identifyCustomer)

	r.Get("/healthcheck", app.GetHealth)

	r.Get("/showings", app.ListShowingsHandler)

	r.Route("/showings/{showingID}", func(r chi.Router) {
		r.Get("/seats", app.GetSeatMapHandler)

		r.Get("/holds", app.ListHoldsHandler)
		r.Post("/holds", app.CreateHoldHandler)
		r.Delete("/holds", app.ReleaseHoldHandler)
		r.Get("/holds/me", app.GetMyHoldHandler)

		r.Post("/purchases", app.CreatePurchaseHandler)

		r.Get("/tickets/{code}", app.GetShowingTicketHandler)
	})

	r.Get("/tickets/{code}", app.GetTicketHandler)

	r.With(app.requireCustomer).Get("/customers/me/tickets", app.GetMyTicketsHandler)

	return r
}
