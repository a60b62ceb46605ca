// Package seating keeps the seat state of a single showing: which seats are
// available, held or sold, who holds them and since when.
package seating

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/metinatakli/cinema-seating/internal/domain"
)

// SeatState is a read-only view of one seat of the plan.
type SeatState struct {
	Seat   domain.Seat
	Status domain.SeatStatus
	Owner  domain.OwnerKey
	HeldAt time.Time
}

type Totals struct {
	Available int
	Held      int
	Sold      int
}

type seatRecord struct {
	seat   domain.Seat
	status domain.SeatStatus
	owner  domain.OwnerKey
	heldAt time.Time
}

type holdRecord struct {
	seats      []int
	createdAt  time.Time
	extendedAt time.Time
}

// Plan is the authoritative seat state of one showing. Seats are stored in an
// arena in room layout order; a seat's index never changes.
//
// A Plan is not safe for concurrent use. The owning showing serializes every
// call.
type Plan struct {
	ttl   time.Duration
	index map[string]int
	seats []seatRecord
	holds map[domain.OwnerKey]*holdRecord
	held  int
}

// New builds a plan with every seat available. A ttl of zero or less disables
// hold expiry.
func New(seats []domain.Seat, ttl time.Duration) (*Plan, error) {
	if len(seats) == 0 {
		return nil, fmt.Errorf("%w: room has no seats", domain.ErrInvalidSeat)
	}

	p := &Plan{
		ttl:   ttl,
		index: make(map[string]int, len(seats)),
		seats: make([]seatRecord, len(seats)),
		holds: make(map[domain.OwnerKey]*holdRecord),
	}

	for i, seat := range seats {
		code := seat.Code()
		if _, exists := p.index[code]; exists {
			return nil, fmt.Errorf("%w: duplicate seat code %s", domain.ErrInvalidSeat, code)
		}

		p.index[code] = i
		p.seats[i] = seatRecord{seat: seat, status: domain.SeatAvailable}
	}

	return p, nil
}

func (p *Plan) TTL() time.Duration {
	return p.ttl
}

// Seat returns the seat with the given code.
func (p *Plan) Seat(code string) (domain.Seat, bool) {
	i, ok := p.index[code]
	if !ok {
		return domain.Seat{}, false
	}

	return p.seats[i].seat, true
}

// Seats returns the room layout in index order.
func (p *Plan) Seats() []domain.Seat {
	seats := make([]domain.Seat, len(p.seats))
	for i, rec := range p.seats {
		seats[i] = rec.seat
	}

	return seats
}

// ExpireStaleHolds frees every held seat whose hold is older than the TTL at
// now and returns the freed seat codes in layout order.
func (p *Plan) ExpireStaleHolds(now time.Time) []string {
	if p.ttl <= 0 || p.held == 0 {
		return nil
	}

	var expired []string

	for i := range p.seats {
		rec := &p.seats[i]
		if rec.status != domain.SeatHeld || !now.After(rec.heldAt.Add(p.ttl)) {
			continue
		}

		owner := rec.owner
		p.free(i)
		p.removeFromHold(owner, i)

		expired = append(expired, rec.seat.Code())
	}

	return expired
}

// Hold puts every listed seat on hold for owner. The whole batch is checked in
// the given order before anything changes; the first failing seat rejects the
// request.
func (p *Plan) Hold(owner domain.OwnerKey, codes []string, now time.Time) error {
	p.ExpireStaleHolds(now)

	if owner.IsZero() {
		return fmt.Errorf("%w: hold requires an owner", domain.ErrInvalidRequest)
	}

	indexes, err := p.resolve(codes, func(rec *seatRecord) error {
		if rec.status != domain.SeatAvailable {
			return domain.ErrSeatUnavailable
		}
		return nil
	})
	if err != nil {
		return err
	}

	for _, i := range indexes {
		rec := &p.seats[i]
		rec.status = domain.SeatHeld
		rec.owner = owner
		rec.heldAt = now
	}
	p.held += len(indexes)

	h, ok := p.holds[owner]
	if !ok {
		h = &holdRecord{createdAt: now}
		p.holds[owner] = h
	}
	h.seats = append(h.seats, indexes...)
	h.extendedAt = now

	return nil
}

// AuthorizePurchase checks, without changing any seat, that buyer may buy
// every listed seat. A zero buyer is an anonymous customer without a hold
// token and may only buy available seats.
func (p *Plan) AuthorizePurchase(buyer domain.OwnerKey, codes []string, now time.Time) error {
	p.ExpireStaleHolds(now)

	_, err := p.resolve(codes, func(rec *seatRecord) error {
		switch rec.status {
		case domain.SeatSold:
			return domain.ErrSeatAlreadySold
		case domain.SeatHeld:
			if buyer.IsZero() || rec.owner != buyer {
				return domain.ErrSeatHeldByOther
			}
		}
		return nil
	})

	return err
}

// MarkSold sells one seat. A held seat leaves its owner's hold.
func (p *Plan) MarkSold(code string) error {
	i, ok := p.index[code]
	if !ok {
		return domain.NewSeatError(code, domain.ErrSeatNotFound)
	}

	rec := &p.seats[i]

	switch rec.status {
	case domain.SeatSold:
		return domain.NewSeatError(code, domain.ErrSeatAlreadySold)
	case domain.SeatHeld:
		owner := rec.owner
		p.free(i)
		p.removeFromHold(owner, i)
	}

	rec.status = domain.SeatSold

	return nil
}

// ReleaseFromHold removes the listed seats from owner's hold. Seats that are
// still held by owner become available again; sold seats and seats held by
// anyone else are left alone. The hold is deleted once it is empty.
func (p *Plan) ReleaseFromHold(owner domain.OwnerKey, codes []string) {
	if owner.IsZero() {
		return
	}

	for _, code := range codes {
		i, ok := p.index[code]
		if !ok {
			continue
		}

		if rec := &p.seats[i]; rec.status == domain.SeatHeld && rec.owner == owner {
			p.free(i)
		}

		p.removeFromHold(owner, i)
	}
}

func (p *Plan) Status(code string, now time.Time) (domain.SeatStatus, error) {
	p.ExpireStaleHolds(now)

	i, ok := p.index[code]
	if !ok {
		return "", domain.NewSeatError(code, domain.ErrSeatNotFound)
	}

	return p.seats[i].status, nil
}

// HeldBy lists the seats held by owner in the order they were held.
func (p *Plan) HeldBy(owner domain.OwnerKey, now time.Time) []string {
	p.ExpireStaleHolds(now)

	h, ok := p.holds[owner]
	if !ok {
		return []string{}
	}

	return p.codes(h.seats)
}

func (p *Plan) Snapshot(now time.Time) []SeatState {
	p.ExpireStaleHolds(now)

	states := make([]SeatState, len(p.seats))
	for i, rec := range p.seats {
		states[i] = SeatState{
			Seat:   rec.seat,
			Status: rec.status,
			Owner:  rec.owner,
			HeldAt: rec.heldAt,
		}
	}

	return states
}

// Holds returns every active hold sorted by owner.
func (p *Plan) Holds(now time.Time) []domain.Hold {
	p.ExpireStaleHolds(now)

	holds := make([]domain.Hold, 0, len(p.holds))
	for owner, h := range p.holds {
		holds = append(holds, domain.Hold{
			Owner:      owner,
			SeatCodes:  p.codes(h.seats),
			CreatedAt:  h.createdAt,
			ExtendedAt: h.extendedAt,
		})
	}

	slices.SortFunc(holds, func(a, b domain.Hold) int {
		return strings.Compare(a.Owner.String(), b.Owner.String())
	})

	return holds
}

func (p *Plan) Totals(now time.Time) Totals {
	p.ExpireStaleHolds(now)

	var t Totals
	for _, rec := range p.seats {
		switch rec.status {
		case domain.SeatAvailable:
			t.Available++
		case domain.SeatHeld:
			t.Held++
		case domain.SeatSold:
			t.Sold++
		}
	}

	return t
}

// resolve maps codes to seat indexes, running check on each seat in order.
// It never mutates the plan.
func (p *Plan) resolve(codes []string, check func(*seatRecord) error) ([]int, error) {
	if len(codes) == 0 {
		return nil, fmt.Errorf("%w: no seat codes provided", domain.ErrInvalidRequest)
	}

	indexes := make([]int, 0, len(codes))
	seen := make(map[int]struct{}, len(codes))

	for _, code := range codes {
		i, ok := p.index[code]
		if !ok {
			return nil, domain.NewSeatError(code, domain.ErrSeatNotFound)
		}

		if _, dup := seen[i]; dup {
			return nil, domain.NewSeatError(code, domain.ErrInvalidRequest)
		}
		seen[i] = struct{}{}

		if err := check(&p.seats[i]); err != nil {
			return nil, domain.NewSeatError(code, err)
		}

		indexes = append(indexes, i)
	}

	return indexes, nil
}

func (p *Plan) free(i int) {
	rec := &p.seats[i]
	rec.status = domain.SeatAvailable
	rec.owner = domain.OwnerKey{}
	rec.heldAt = time.Time{}
	p.held--
}

func (p *Plan) removeFromHold(owner domain.OwnerKey, i int) {
	h, ok := p.holds[owner]
	if !ok {
		return
	}

	h.seats = slices.DeleteFunc(h.seats, func(seat int) bool { return seat == i })
	if len(h.seats) == 0 {
		delete(p.holds, owner)
	}
}

func (p *Plan) codes(indexes []int) []string {
	codes := make([]string, len(indexes))
	for i, idx := range indexes {
		codes[i] = p.seats[idx].seat.Code()
	}

	return codes
}
