// Package showing is the public entry point for one scheduled showing. It
// resolves who is acting, drives the seating plan, prices seats and issues
// sales.
package showing

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/metinatakli/cinema-seating/internal/clock"
	"github.com/metinatakli/cinema-seating/internal/domain"
	"github.com/metinatakli/cinema-seating/internal/seating"
	"github.com/shopspring/decimal"
)

type Config struct {
	ID       int
	Title    string
	Room     string
	StartsAt time.Time
	VIP      bool
	ThreeD   bool
	Seats    []domain.Seat
	HoldTTL  time.Duration
	Pricing  domain.PricingPolicy
	Clock    domain.Clock
}

// Info describes the schedule attributes of a showing.
type Info struct {
	ID       int
	Title    string
	Room     string
	StartsAt time.Time
	VIP      bool
	ThreeD   bool
	HoldTTL  time.Duration
}

type Option func(*Showing)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Showing) {
		s.logger = logger
	}
}

// WithTicketBook hands every sale made to a known customer to book.
func WithTicketBook(book domain.CustomerTicketBook) Option {
	return func(s *Showing) {
		s.tickets = book
	}
}

func WithTokenGenerator(gen func() string) Option {
	return func(s *Showing) {
		s.newToken = gen
	}
}

// Showing serializes every operation on its seating plan behind one mutex.
// Two showings share no state.
type Showing struct {
	mu sync.Mutex

	info    Info
	plan    *seating.Plan
	pricing domain.PricingPolicy
	clock   domain.Clock
	sold    map[string]domain.Sale

	tickets  domain.CustomerTicketBook
	newToken func() string
	newCode  func() string
	logger   *slog.Logger
}

func New(cfg Config, opts ...Option) (*Showing, error) {
	if cfg.Pricing == nil {
		return nil, errors.New("showing: pricing policy is required")
	}

	plan, err := seating.New(cfg.Seats, cfg.HoldTTL)
	if err != nil {
		return nil, fmt.Errorf("showing %d: %w", cfg.ID, err)
	}

	s := &Showing{
		info: Info{
			ID:       cfg.ID,
			Title:    cfg.Title,
			Room:     cfg.Room,
			StartsAt: cfg.StartsAt,
			VIP:      cfg.VIP,
			ThreeD:   cfg.ThreeD,
			HoldTTL:  cfg.HoldTTL,
		},
		plan:     plan,
		pricing:  cfg.Pricing,
		clock:    cfg.Clock,
		sold:     make(map[string]domain.Sale),
		newToken: newHoldToken,
		newCode:  uuid.NewString,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	if s.clock == nil {
		s.clock = clock.System{}
	}

	for _, opt := range opts {
		opt(s)
	}

	s.logger = s.logger.With("showing_id", cfg.ID)

	return s, nil
}

func (s *Showing) Info() Info {
	return s.info
}

// Seats returns the room layout. The layout never changes, so no sweep is
// needed.
func (s *Showing) Seats() []domain.Seat {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.plan.Seats()
}

func (s *Showing) HoldForCustomer(customer domain.CustomerID, codes []string) error {
	owner, err := customerOwner(customer)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.sweep()

	return s.hold(owner, codes, now)
}

// HoldAsGuest holds seats for an anonymous customer and returns the token
// that identifies the hold from now on.
func (s *Showing) HoldAsGuest(codes []string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.sweep()

	token := s.newToken()
	if err := s.hold(domain.GuestOwner(token), codes, now); err != nil {
		return "", err
	}

	return token, nil
}

// ReleaseForCustomer gives the customer's held seats back.
func (s *Showing) ReleaseForCustomer(customer domain.CustomerID, codes []string) error {
	owner, err := customerOwner(customer)
	if err != nil {
		return err
	}

	return s.release(owner, codes)
}

func (s *Showing) ReleaseWithToken(token string, codes []string) error {
	owner, err := guestOwner(token)
	if err != nil {
		return err
	}

	return s.release(owner, codes)
}

// PurchaseAsGuest sells available seats to an anonymous customer.
func (s *Showing) PurchaseAsGuest(codes []string) ([]domain.Sale, error) {
	return s.purchase(domain.OwnerKey{}, codes)
}

// PurchaseForCustomer sells available seats and seats held by the customer.
func (s *Showing) PurchaseForCustomer(customer domain.CustomerID, codes []string) ([]domain.Sale, error) {
	owner, err := customerOwner(customer)
	if err != nil {
		return nil, err
	}

	return s.purchase(owner, codes)
}

// PurchaseWithToken sells available seats and seats held under token.
func (s *Showing) PurchaseWithToken(token string, codes []string) ([]domain.Sale, error) {
	owner, err := guestOwner(token)
	if err != nil {
		return nil, err
	}

	return s.purchase(owner, codes)
}

func (s *Showing) FindSale(code string) (domain.Sale, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sale, ok := s.sold[code]

	return sale, ok
}

func (s *Showing) SeatStatus(code string) (domain.SeatStatus, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.plan.Status(code, s.sweep())
}

func (s *Showing) HeldByCustomer(customer domain.CustomerID) []string {
	if strings.TrimSpace(string(customer)) == "" {
		return []string{}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.plan.HeldBy(domain.CustomerOwner(customer), s.sweep())
}

func (s *Showing) HeldByToken(token string) []string {
	if strings.TrimSpace(token) == "" {
		return []string{}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.plan.HeldBy(domain.GuestOwner(token), s.sweep())
}

// SeatMap is the state of every seat in room layout order together with the
// per-status totals.
func (s *Showing) SeatMap() ([]seating.SeatState, seating.Totals) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.sweep()

	return s.plan.Snapshot(now), s.plan.Totals(now)
}

func (s *Showing) Holds() []domain.Hold {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.plan.Holds(s.sweep())
}

// sweep frees expired holds and returns the instant it used. Callers hold mu.
func (s *Showing) sweep() time.Time {
	now := s.clock.Now()

	if expired := s.plan.ExpireStaleHolds(now); len(expired) > 0 {
		s.logger.Debug("released expired holds", "seats", expired)
	}

	return now
}

func (s *Showing) hold(owner domain.OwnerKey, codes []string, now time.Time) error {
	err := s.plan.Hold(owner, codes, now)
	if err != nil {
		s.logger.Debug("hold rejected", "owner", owner.String(), "seats", codes, "error", err)
		return err
	}

	s.logger.Info("seats held", "owner", owner.String(), "seats", codes)

	return nil
}

func (s *Showing) release(owner domain.OwnerKey, codes []string) error {
	if len(codes) == 0 {
		return fmt.Errorf("%w: no seat codes provided", domain.ErrInvalidRequest)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.sweep()
	s.plan.ReleaseFromHold(owner, codes)

	s.logger.Info("hold released", "owner", owner.String(), "seats", codes)

	return nil
}

// purchase authorizes and prices the whole batch before any seat changes
// state, so a rejected purchase leaves the showing untouched.
func (s *Showing) purchase(buyer domain.OwnerKey, codes []string) ([]domain.Sale, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.sweep()

	err := s.plan.AuthorizePurchase(buyer, codes, now)
	if err != nil {
		s.logger.Debug("purchase rejected", "buyer", buyer.String(), "seats", codes, "error", err)
		return nil, err
	}

	seats := make([]domain.Seat, len(codes))
	prices := make([]decimal.Decimal, len(codes))

	for i, code := range codes {
		seat, ok := s.plan.Seat(code)
		if !ok {
			return nil, domain.NewSeatError(code, domain.ErrSeatNotFound)
		}

		price, err := s.pricing.Price(seat, s.info.VIP, s.info.ThreeD)
		if err != nil {
			return nil, fmt.Errorf("pricing seat %s: %w", code, err)
		}

		seats[i] = seat
		prices[i] = price
	}

	var customer *domain.CustomerID
	if id, ok := buyer.Customer(); ok {
		customer = &id
	}

	sales := make([]domain.Sale, len(codes))

	for i, code := range codes {
		sale := domain.Sale{
			Code:      s.newCode(),
			ShowingID: s.info.ID,
			Seat:      seats[i],
			Customer:  customer,
			Price:     prices[i],
			IssuedAt:  now,
		}

		// authorized above, so the seat exists and is not sold
		if err := s.plan.MarkSold(code); err != nil {
			panic(fmt.Sprintf("showing %d: selling authorized seat: %v", s.info.ID, err))
		}

		s.sold[sale.Code] = sale
		sales[i] = sale

		if customer != nil && s.tickets != nil {
			s.tickets.AddOwnTicket(*customer, sale)
		}
	}

	s.plan.ReleaseFromHold(buyer, codes)

	s.logger.Info("tickets sold", "buyer", buyer.String(), "seats", codes)

	return sales, nil
}

func customerOwner(customer domain.CustomerID) (domain.OwnerKey, error) {
	if strings.TrimSpace(string(customer)) == "" {
		return domain.OwnerKey{}, fmt.Errorf("%w: customer id is required", domain.ErrInvalidRequest)
	}

	return domain.CustomerOwner(customer), nil
}

func guestOwner(token string) (domain.OwnerKey, error) {
	if strings.TrimSpace(token) == "" {
		return domain.OwnerKey{}, fmt.Errorf("%w: reservation token is required", domain.ErrInvalidRequest)
	}

	return domain.GuestOwner(token), nil
}

// newHoldToken returns 32 random hex characters.
func newHoldToken() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}
