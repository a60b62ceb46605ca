package customer

import (
	"testing"

	"github.com/metinatakli/cinema-seating/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestTicketBook(t *testing.T) {
	book := NewTicketBook()

	assert.Empty(t, book.Tickets("x"))

	book.AddOwnTicket("x", domain.Sale{Code: "t1"})
	book.AddOwnTicket("x", domain.Sale{Code: "t2"})
	book.AddOwnTicket("y", domain.Sale{Code: "t3"})

	got := book.Tickets("x")
	assert.Equal(t, []string{"t1", "t2"}, []string{got[0].Code, got[1].Code})
	assert.Len(t, book.Tickets("y"), 1)

	got[0].Code = "changed"
	assert.Equal(t, "t1", book.Tickets("x")[0].Code)
}
