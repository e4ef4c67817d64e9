package flights

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Domenick1991/airline-booking/internal/domain"
	"github.com/Domenick1991/airline-booking/internal/logger"
	"github.com/Domenick1991/airline-booking/internal/repository"
	"github.com/google/uuid"
)

var ErrFlightNotFound = errors.New("flight not found")

type FlightUseCase interface {
	Search(ctx context.Context, origin, destination string, date time.Time) ([]domain.Flight, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Flight, error)
}

// SearchCache returns nil flights on a miss.
type SearchCache interface {
	GetSearch(ctx context.Context, origin, destination string, date time.Time) ([]domain.Flight, error)
	SetSearch(ctx context.Context, origin, destination string, date time.Time, flights []domain.Flight) error
}

type FlightService struct {
	repo  repository.FlightRepository
	cache SearchCache
	log   *logger.Logger
}

type FlightServiceOption func(*FlightService)

func WithCache(cache SearchCache) FlightServiceOption {
	return func(s *FlightService) {
		s.cache = cache
	}
}

func WithLogger(l *logger.Logger) FlightServiceOption {
	return func(s *FlightService) {
		if l != nil {
			s.log = l
		}
	}
}

func NewFlightService(repo repository.FlightRepository, opts ...FlightServiceOption) *FlightService {
	s := &FlightService{repo: repo, log: logger.Discard()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Search never returns a nil slice. Cache failures fall back to the catalog.
func (s *FlightService) Search(ctx context.Context, origin, destination string, date time.Time) ([]domain.Flight, error) {
	day := date.Format(domain.DateLayout)
	s.log.Info("searching flights", "origin", origin, "destination", destination, "date", day)

	if s.cache != nil {
		cached, err := s.cache.GetSearch(ctx, origin, destination, date)
		if err != nil {
			s.log.Warn("flight search cache read failed", "error", err)
		} else if cached != nil {
			s.log.Debug("flight search served from cache", "origin", origin, "destination", destination, "date", day)
			s.logResult(len(cached), origin, destination, day)
			return cached, nil
		}
	}

	flights := s.repo.Search(origin, destination, date)
	if flights == nil {
		flights = make([]domain.Flight, 0)
	}

	if s.cache != nil {
		if err := s.cache.SetSearch(ctx, origin, destination, date, flights); err != nil {
			s.log.Warn("flight search cache write failed", "error", err)
		}
	}

	s.logResult(len(flights), origin, destination, day)
	return flights, nil
}

func (s *FlightService) logResult(count int, origin, destination, day string) {
	if count == 0 {
		s.log.Warn("no flights found", "origin", origin, "destination", destination, "date", day)
		return
	}
	s.log.Info("flights found", "count", count, "origin", origin, "destination", destination, "date", day)
}

func (s *FlightService) GetByID(_ context.Context, id uuid.UUID) (*domain.Flight, error) {
	flight, ok := s.repo.FindByID(id)
	if !ok {
		return nil, fmt.Errorf("get flight %s: %w", id, ErrFlightNotFound)
	}
	return &flight, nil
}

var _ FlightUseCase = (*FlightService)(nil)
