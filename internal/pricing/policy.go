package pricing

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/metinatakli/cinema-seating/internal/domain"
	"github.com/shopspring/decimal"
)

var (
	ErrNoBasePrice   = errors.New("no base price for seat category")
	ErrNegativePrice = errors.New("price must not be negative")
)

type Config struct {
	BasePrices      map[domain.SeatCategory]decimal.Decimal
	ThreeDSurcharge decimal.Decimal
	VIPSurcharge    decimal.Decimal
}

// DefaultConfig is the chain's published tariff.
func DefaultConfig() Config {
	return Config{
		BasePrices: map[domain.SeatCategory]decimal.Decimal{
			domain.SeatCategoryStandard:   decimal.NewFromInt(30),
			domain.SeatCategoryPremium:    decimal.NewFromInt(45),
			domain.SeatCategoryPromo:      decimal.NewFromInt(25),
			domain.SeatCategorySuperPromo: decimal.NewFromInt(20),
		},
		ThreeDSurcharge: decimal.NewFromInt(5),
		VIPSurcharge:    decimal.NewFromInt(10),
	}
}

// Policy charges a base price per seat category plus fixed surcharges for 3D
// and VIP showings.
type Policy struct {
	basePrices      map[domain.SeatCategory]decimal.Decimal
	threeDSurcharge decimal.Decimal
	vipSurcharge    decimal.Decimal
}

func New(cfg Config) (*Policy, error) {
	for category, price := range cfg.BasePrices {
		if price.IsNegative() {
			return nil, fmt.Errorf("%w: base price of %s", ErrNegativePrice, category)
		}
	}

	if cfg.ThreeDSurcharge.IsNegative() {
		return nil, fmt.Errorf("%w: 3D surcharge", ErrNegativePrice)
	}

	if cfg.VIPSurcharge.IsNegative() {
		return nil, fmt.Errorf("%w: VIP surcharge", ErrNegativePrice)
	}

	return &Policy{
		basePrices:      maps.Clone(cfg.BasePrices),
		threeDSurcharge: cfg.ThreeDSurcharge,
		vipSurcharge:    cfg.VIPSurcharge,
	}, nil
}

func (p *Policy) Price(seat domain.Seat, vip, threeD bool) (decimal.Decimal, error) {
	price, ok := p.basePrices[seat.Category]
	if !ok {
		return decimal.Zero, fmt.Errorf("%w: %s", ErrNoBasePrice, seat.Category)
	}

	if threeD {
		price = price.Add(p.threeDSurcharge)
	}

	if vip {
		price = price.Add(p.vipSurcharge)
	}

	// amounts are never negative, so rounding half away from zero is half-up
	return price.Round(2), nil
}

// ParseBasePrices reads a "category=amount,category=amount" list.
func ParseBasePrices(s string) (map[domain.SeatCategory]decimal.Decimal, error) {
	prices := make(map[domain.SeatCategory]decimal.Decimal)

	for _, pair := range strings.Split(s, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}

		name, amount, ok := strings.Cut(pair, "=")
		if !ok {
			return nil, fmt.Errorf("invalid base price entry %q, expected category=amount", pair)
		}

		category := domain.SeatCategory(strings.ToLower(strings.TrimSpace(name)))
		if !category.Valid() {
			return nil, fmt.Errorf("unknown seat category %q", name)
		}

		price, err := decimal.NewFromString(strings.TrimSpace(amount))
		if err != nil {
			return nil, fmt.Errorf("invalid base price for %s: %w", category, err)
		}

		prices[category] = price
	}

	return prices, nil
}

// FormatBasePrices is the inverse of ParseBasePrices with categories sorted by name.
func FormatBasePrices(prices map[domain.SeatCategory]decimal.Decimal) string {
	categories := slices.Sorted(maps.Keys(prices))

	pairs := make([]string, len(categories))
	for i, c := range categories {
		pairs[i] = fmt.Sprintf("%s=%s", c, prices[c].String())
	}

	return strings.Join(pairs, ",")
}
