package integration_test

import (
	"context"
	"testing"

	"github.com/metinatakli/cinema-seating/internal/domain"
	"github.com/metinatakli/cinema-seating/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type LayoutRepositoryTestSuite struct {
	BaseSuite
}

func TestLayoutRepositorySuite(t *testing.T) {
	if testing.Short() {
		t.Skip()
	}

	suite.Run(t, new(LayoutRepositoryTestSuite))
}

func (s *LayoutRepositoryTestSuite) TestGetShowings() {
	t := s.T()
	repo := repository.NewPostgresLayoutRepository(s.app.DB)

	showings, err := repo.GetShowings(context.Background())
	require.NoError(t, err)
	require.Len(t, showings, 2)

	first := showings[0]
	assert.Equal(t, TestShowingID, first.ID)
	assert.Equal(t, TestRoomName, first.Room.Name)
	assert.True(t, first.ThreeD)
	assert.False(t, first.VIP)
	assert.Len(t, first.Room.Seats, 4)
	assert.Equal(t, domain.Seat{Row: "B", Number: 2, Category: domain.SeatCategoryPromo}, first.Room.Seats[3])

	assert.True(t, showings[1].VIP)
}

func (s *LayoutRepositoryTestSuite) TestGetRoomSeatsNotFound() {
	repo := repository.NewPostgresLayoutRepository(s.app.DB)

	_, err := repo.GetRoomSeats(context.Background(), 999)
	assert.ErrorIs(s.T(), err, domain.ErrRecordNotFound)
}
