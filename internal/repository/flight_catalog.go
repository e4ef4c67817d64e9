package repository

import (
	"fmt"
	"strings"
	"time"

	"github.com/Domenick1991/airline-booking/internal/domain"
	"github.com/google/uuid"
)

// FlightSeed describes a flight before it is given an identifier.
type FlightSeed struct {
	Origin      string
	Destination string
	Date        time.Time
	PriceCents  int64
}

// flightNamespace scopes the name-based flight ids.
var flightNamespace = uuid.MustParse("5f0c7a52-3d1e-4b7a-9c61-2e8d4f1a6b30")

// FlightCatalog is a read-only set of flights. All state is built by
// NewFlightCatalog, so a catalog is never visible partially populated and
// needs no locking afterwards.
type FlightCatalog struct {
	flights []domain.Flight
	byID    map[uuid.UUID]int
}

func NewFlightCatalog(seeds []FlightSeed) *FlightCatalog {
	c := &FlightCatalog{
		flights: make([]domain.Flight, 0, len(seeds)),
		byID:    make(map[uuid.UUID]int, len(seeds)),
	}
	for _, s := range seeds {
		id := flightID(s, 0)
		for n := 1; c.has(id); n++ {
			id = flightID(s, n)
		}
		c.byID[id] = len(c.flights)
		c.flights = append(c.flights, domain.Flight{
			ID:          id,
			Origin:      s.Origin,
			Destination: s.Destination,
			Date:        domain.TruncateDate(s.Date),
			PriceCents:  s.PriceCents,
		})
	}
	return c
}

// flightID derives a stable id from the seed, so the same schedule yields
// the same ids in every process and cached search results stay resolvable.
// n separates identical seeds.
func flightID(s FlightSeed, n int) uuid.UUID {
	name := fmt.Sprintf("%s|%s|%s|%d|%d",
		strings.ToUpper(s.Origin),
		strings.ToUpper(s.Destination),
		domain.TruncateDate(s.Date).Format(domain.DateLayout),
		s.PriceCents,
		n,
	)
	return uuid.NewSHA1(flightNamespace, []byte(name))
}

func (c *FlightCatalog) has(id uuid.UUID) bool {
	_, ok := c.byID[id]
	return ok
}

func (c *FlightCatalog) FindByID(id uuid.UUID) (domain.Flight, bool) {
	i, ok := c.byID[id]
	if !ok {
		return domain.Flight{}, false
	}
	return c.flights[i], true
}

// Search returns flights in catalog order. The result is never nil.
func (c *FlightCatalog) Search(origin, destination string, date time.Time) []domain.Flight {
	day := domain.TruncateDate(date)
	found := make([]domain.Flight, 0)
	for _, f := range c.flights {
		if strings.EqualFold(f.Origin, origin) &&
			strings.EqualFold(f.Destination, destination) &&
			f.Date.Equal(day) {
			found = append(found, f)
		}
	}
	return found
}

// All returns a copy of every flight in catalog order.
func (c *FlightCatalog) All() []domain.Flight {
	out := make([]domain.Flight, len(c.flights))
	copy(out, c.flights)
	return out
}

func (c *FlightCatalog) Len() int {
	return len(c.flights)
}

var _ FlightRepository = (*FlightCatalog)(nil)
