package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/metinatakli/cinema-seating/internal/domain"
	"github.com/shopspring/decimal"
)

type PostgresTicketRegistry struct {
	db *pgxpool.Pool
}

func NewPostgresTicketRegistry(db *pgxpool.Pool) *PostgresTicketRegistry {
	return &PostgresTicketRegistry{
		db: db,
	}
}

// Register stores all sales in one transaction. A code that is already
// registered rejects the whole batch with domain.ErrDuplicateTicket.
func (p *PostgresTicketRegistry) Register(ctx context.Context, sales ...domain.Sale) error {
	if len(sales) == 0 {
		return nil
	}

	return runInTx(ctx, p.db, func(tx pgx.Tx) error {
		query := `
			INSERT INTO tickets (code, showing_id, seat_row, seat_number, seat_category, customer_id, price, issued_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7::numeric, $8)
		`

		for _, sale := range sales {
			var customerID *string
			if sale.Customer != nil {
				id := string(*sale.Customer)
				customerID = &id
			}

			_, err := tx.Exec(
				ctx,
				query,
				sale.Code,
				sale.ShowingID,
				sale.Seat.Row,
				sale.Seat.Number,
				string(sale.Seat.Category),
				customerID,
				sale.Price.StringFixed(2),
				sale.IssuedAt,
			)
			if err != nil {
				var pgErr *pgconn.PgError
				if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
					return fmt.Errorf("%w: %s", domain.ErrDuplicateTicket, sale.Code)
				}

				return err
			}
		}

		return nil
	})
}

func (p *PostgresTicketRegistry) GetByCode(ctx context.Context, code string) (*domain.Sale, error) {
	query := `
		SELECT code, showing_id, seat_row, seat_number, seat_category, customer_id, price::text, issued_at
		FROM tickets
		WHERE code = $1
	`

	var (
		sale       domain.Sale
		category   string
		customerID *string
		price      string
	)

	err := p.db.QueryRow(ctx, query, code).Scan(
		&sale.Code,
		&sale.ShowingID,
		&sale.Seat.Row,
		&sale.Seat.Number,
		&category,
		&customerID,
		&price,
		&sale.IssuedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}

		return nil, err
	}

	sale.Seat.Category = domain.SeatCategory(category)

	if customerID != nil {
		id := domain.CustomerID(*customerID)
		sale.Customer = &id
	}

	sale.Price, err = decimal.NewFromString(price)
	if err != nil {
		return nil, fmt.Errorf("parsing price of ticket %s: %w", code, err)
	}

	return &sale, nil
}

func runInTx(ctx context.Context, db *pgxpool.Pool, fn func(tx pgx.Tx) error) error {
	var txOptions pgx.TxOptions

	tx, err := db.BeginTx(ctx, txOptions)
	if err != nil {
		return err
	}

	err = fn(tx)
	if err == nil {
		return tx.Commit(ctx)
	}

	rollbackErr := tx.Rollback(ctx)
	if rollbackErr != nil {
		return errors.Join(err, rollbackErr)
	}

	return err
}
