package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/metinatakli/cinema-seating/internal/customer"
	"github.com/metinatakli/cinema-seating/internal/domain"
	"github.com/metinatakli/cinema-seating/internal/showing"
)

// ShowingDeps are the collaborators shared by every hosted showing.
type ShowingDeps struct {
	HoldTTL    time.Duration
	Pricing    domain.PricingPolicy
	Clock      domain.Clock
	Logger     *slog.Logger
	TicketBook *customer.TicketBook
}

func (d ShowingDeps) open(layout domain.ShowingLayout) (*showing.Showing, error) {
	var opts []showing.Option

	if d.Logger != nil {
		opts = append(opts, showing.WithLogger(d.Logger))
	}

	if d.TicketBook != nil {
		opts = append(opts, showing.WithTicketBook(d.TicketBook))
	}

	return showing.New(showing.Config{
		ID:       layout.ID,
		Title:    layout.Title,
		Room:     layout.Room.Name,
		StartsAt: layout.StartsAt,
		VIP:      layout.VIP,
		ThreeD:   layout.ThreeD,
		Seats:    layout.Room.Seats,
		HoldTTL:  d.HoldTTL,
		Pricing:  d.Pricing,
		Clock:    d.Clock,
	}, opts...)
}

// LoadShowings opens a showing for every layout stored in the repository.
func LoadShowings(ctx context.Context, repo domain.LayoutRepository, deps ShowingDeps) (*showing.Catalog, error) {
	layouts, err := repo.GetShowings(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading showings: %w", err)
	}

	return openShowings(layouts, deps)
}

// DemoShowings hosts a single 3D showing in a fifteen-seat room, used when no
// database is configured.
func DemoShowings(deps ShowingDeps, startsAt time.Time) (*showing.Catalog, error) {
	seats := make([]domain.Seat, 0, 15)
	for i := 1; i <= 10; i++ {
		seats = append(seats, domain.Seat{Row: "A", Number: i, Category: domain.SeatCategoryStandard})
	}
	for i := 1; i <= 5; i++ {
		seats = append(seats, domain.Seat{Row: "B", Number: i, Category: domain.SeatCategoryPremium})
	}

	layout := domain.ShowingLayout{
		ID:    1,
		Title: "Avatar: The Way of Water",
		Room: domain.Room{
			ID:     1,
			Name:   "Sala 1",
			Cinema: "Demo Cinema",
			Seats:  seats,
		},
		StartsAt: startsAt,
		ThreeD:   true,
	}

	return openShowings([]domain.ShowingLayout{layout}, deps)
}

func openShowings(layouts []domain.ShowingLayout, deps ShowingDeps) (*showing.Catalog, error) {
	showings := make([]*showing.Showing, 0, len(layouts))

	for _, layout := range layouts {
		s, err := deps.open(layout)
		if err != nil {
			return nil, err
		}

		showings = append(showings, s)
	}

	return showing.NewCatalog(showings...)
}
