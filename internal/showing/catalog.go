package showing

import (
	"cmp"
	"fmt"
	"slices"
	"time"
)

// Catalog is the fixed set of showings hosted by one process. It is built
// once at startup and only read afterwards, so it needs no lock; each
// showing guards its own state.
type Catalog struct {
	byID    map[int]*Showing
	ordered []*Showing
}

func NewCatalog(showings ...*Showing) (*Catalog, error) {
	c := &Catalog{
		byID:    make(map[int]*Showing, len(showings)),
		ordered: make([]*Showing, 0, len(showings)),
	}

	for _, s := range showings {
		id := s.Info().ID
		if _, exists := c.byID[id]; exists {
			return nil, fmt.Errorf("duplicate showing id %d", id)
		}

		c.byID[id] = s
		c.ordered = append(c.ordered, s)
	}

	slices.SortFunc(c.ordered, func(a, b *Showing) int {
		ai, bi := a.Info(), b.Info()
		if n := ai.StartsAt.Compare(bi.StartsAt); n != 0 {
			return n
		}
		return cmp.Compare(ai.ID, bi.ID)
	})

	return c, nil
}

func (c *Catalog) Get(id int) (*Showing, bool) {
	s, ok := c.byID[id]
	return s, ok
}

// List returns every showing ordered by start time.
func (c *Catalog) List() []*Showing {
	return slices.Clone(c.ordered)
}

// Between returns the showings starting in [from, to). A zero bound is open.
func (c *Catalog) Between(from, to time.Time) []*Showing {
	showings := make([]*Showing, 0)

	for _, s := range c.ordered {
		start := s.Info().StartsAt
		if !from.IsZero() && start.Before(from) {
			continue
		}
		if !to.IsZero() && !start.Before(to) {
			continue
		}

		showings = append(showings, s)
	}

	return showings
}

func (c *Catalog) Len() int {
	return len(c.ordered)
}
