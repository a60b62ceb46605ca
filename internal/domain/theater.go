package domain

import (
	"context"
	"time"
)

type Room struct {
	ID     int
	Name   string
	Cinema string
	Seats  []Seat
}

// ShowingLayout is everything needed to open a showing: the room it plays in
// and its schedule attributes.
type ShowingLayout struct {
	ID       int
	Title    string
	Room     Room
	StartsAt time.Time
	VIP      bool
	ThreeD   bool
}

type LayoutRepository interface {
	GetShowings(ctx context.Context) ([]ShowingLayout, error)
	GetRoomSeats(ctx context.Context, roomID int) ([]Seat, error)
}
