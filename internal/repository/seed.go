package repository

import (
	"time"
)

func seedDate(day int) time.Time {
	return time.Date(2026, time.March, day, 0, 0, 0, 0, time.UTC)
}

// DefaultFlightSeeds is the built-in schedule used when config provides none.
func DefaultFlightSeeds() []FlightSeed {
	return []FlightSeed{
		{Origin: "OPO", Destination: "LIS", Date: seedDate(1), PriceCents: 4999},
		{Origin: "OPO", Destination: "LIS", Date: seedDate(2), PriceCents: 5999},
		{Origin: "LIS", Destination: "OPO", Date: seedDate(1), PriceCents: 4500},
		{Origin: "LIS", Destination: "FAO", Date: seedDate(1), PriceCents: 3999},
		{Origin: "OPO", Destination: "FAO", Date: seedDate(3), PriceCents: 6999},
		{Origin: "FAO", Destination: "LIS", Date: seedDate(1), PriceCents: 3500},
		{Origin: "LIS", Destination: "MAD", Date: seedDate(1), PriceCents: 8999},
		{Origin: "OPO", Destination: "MAD", Date: seedDate(2), PriceCents: 9999},
	}
}
