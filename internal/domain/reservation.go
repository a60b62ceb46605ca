package domain

import "time"

// Hold is the set of seats currently held under one owner key for a showing.
// SeatCodes keeps the order in which the seats were held.
type Hold struct {
	Owner      OwnerKey
	SeatCodes  []string
	CreatedAt  time.Time
	ExtendedAt time.Time
}
