package bootstrap

import (
	"fmt"

	"github.com/Domenick1991/airline-booking/config"
	"github.com/Domenick1991/airline-booking/internal/domain"
	"github.com/Domenick1991/airline-booking/internal/repository"
)

// CatalogSeeds converts catalog.flights from config, falling back to the
// built-in schedule when none are configured.
func CatalogSeeds(cfg config.CatalogConfig) ([]repository.FlightSeed, error) {
	if len(cfg.Flights) == 0 {
		return repository.DefaultFlightSeeds(), nil
	}

	seeds := make([]repository.FlightSeed, 0, len(cfg.Flights))
	for i, f := range cfg.Flights {
		date, err := domain.ParseDate(f.Date)
		if err != nil {
			return nil, fmt.Errorf("catalog flight %d: %w", i, err)
		}
		price, err := domain.ParsePrice(f.Price)
		if err != nil {
			return nil, fmt.Errorf("catalog flight %d: %w", i, err)
		}
		seeds = append(seeds, repository.FlightSeed{
			Origin:      f.Origin,
			Destination: f.Destination,
			Date:        date,
			PriceCents:  price,
		})
	}
	return seeds, nil
}
