package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/metinatakli/cinema-seating/internal/domain"
)

type PostgresLayoutRepository struct {
	db *pgxpool.Pool
}

func NewPostgresLayoutRepository(db *pgxpool.Pool) *PostgresLayoutRepository {
	return &PostgresLayoutRepository{
		db: db,
	}
}

func (p *PostgresLayoutRepository) GetShowings(ctx context.Context) ([]domain.ShowingLayout, error) {
	query := `
		SELECT
			sh.id,
			sh.title,
			sh.starts_at,
			sh.is_vip,
			sh.is_3d,
			r.id AS room_id,
			r.name AS room_name,
			r.cinema
		FROM showings sh
		JOIN rooms r
			ON sh.room_id = r.id
		ORDER BY sh.starts_at, sh.id
	`

	rows, err := p.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	showings := make([]domain.ShowingLayout, 0)

	for rows.Next() {
		var s domain.ShowingLayout

		err = rows.Scan(
			&s.ID,
			&s.Title,
			&s.StartsAt,
			&s.VIP,
			&s.ThreeD,
			&s.Room.ID,
			&s.Room.Name,
			&s.Room.Cinema,
		)
		if err != nil {
			return nil, err
		}

		showings = append(showings, s)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	seatsByRoom := make(map[int][]domain.Seat)

	for i := range showings {
		roomID := showings[i].Room.ID

		seats, ok := seatsByRoom[roomID]
		if !ok {
			seats, err = p.GetRoomSeats(ctx, roomID)
			if err != nil {
				return nil, fmt.Errorf("loading seats of room %d: %w", roomID, err)
			}
			seatsByRoom[roomID] = seats
		}

		showings[i].Room.Seats = seats
	}

	return showings, nil
}

func (p *PostgresLayoutRepository) GetRoomSeats(ctx context.Context, roomID int) ([]domain.Seat, error) {
	query := `
		SELECT seat_row, seat_number, category
		FROM seats
		WHERE room_id = $1
		ORDER BY seat_row, seat_number
	`

	rows, err := p.db.Query(ctx, query, roomID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	seats := make([]domain.Seat, 0)

	for rows.Next() {
		var (
			row      string
			number   int
			category string
		)

		err = rows.Scan(&row, &number, &category)
		if err != nil {
			return nil, err
		}

		seat, err := domain.NewSeat(row, number, domain.SeatCategory(category))
		if err != nil {
			return nil, err
		}

		seats = append(seats, seat)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	if len(seats) == 0 {
		return nil, domain.ErrRecordNotFound
	}

	return seats, nil
}
