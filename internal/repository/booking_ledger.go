package repository

import (
	"hash/fnv"
	"sync"
	"time"

	"github.com/Domenick1991/airline-booking/internal/domain"
	"github.com/google/uuid"
)

const DefaultLedgerShards = 32

type ledgerShard struct {
	mu       sync.RWMutex
	bookings map[uuid.UUID]domain.Booking
}

// BookingLedger stores bookings in a fixed number of independently locked
// shards. Operations on one id always hit the same shard and serialize on
// its lock; operations on other shards proceed in parallel.
type BookingLedger struct {
	shards      []*ledgerShard
	transitions domain.TransitionTable
	newID       func() uuid.UUID
	now         func() time.Time
}

type LedgerOption func(*BookingLedger)

func WithShardCount(n int) LedgerOption {
	return func(l *BookingLedger) {
		if n > 0 {
			l.shards = make([]*ledgerShard, n)
		}
	}
}

func WithTransitions(t domain.TransitionTable) LedgerOption {
	return func(l *BookingLedger) {
		l.transitions = t
	}
}

func WithIDGenerator(fn func() uuid.UUID) LedgerOption {
	return func(l *BookingLedger) {
		l.newID = fn
	}
}

func WithClock(now func() time.Time) LedgerOption {
	return func(l *BookingLedger) {
		l.now = now
	}
}

// NewBookingLedger defaults to LenientTransitions and DefaultLedgerShards.
func NewBookingLedger(opts ...LedgerOption) *BookingLedger {
	l := &BookingLedger{
		shards:      make([]*ledgerShard, DefaultLedgerShards),
		transitions: domain.LenientTransitions(),
		newID:       uuid.New,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}
	for i := range l.shards {
		l.shards[i] = &ledgerShard{bookings: make(map[uuid.UUID]domain.Booking)}
	}
	return l
}

func (l *BookingLedger) shardFor(id uuid.UUID) *ledgerShard {
	h := fnv.New32a()
	_, _ = h.Write(id[:])
	return l.shards[h.Sum32()%uint32(len(l.shards))]
}

// Create stores a new Pending booking. The flight id is not checked.
func (l *BookingLedger) Create(flightID uuid.UUID, passengerName string) domain.Booking {
	for {
		id := l.newID()
		shard := l.shardFor(id)

		shard.mu.Lock()
		if _, taken := shard.bookings[id]; taken {
			shard.mu.Unlock()
			continue
		}
		now := l.now()
		b := domain.Booking{
			ID:            id,
			FlightID:      flightID,
			PassengerName: passengerName,
			Status:        domain.BookingStatusPending,
			CreatedAt:     now,
			UpdatedAt:     now,
		}
		shard.bookings[id] = b
		shard.mu.Unlock()
		return b
	}
}

func (l *BookingLedger) FindByID(id uuid.UUID) (domain.Booking, bool) {
	shard := l.shardFor(id)
	shard.mu.RLock()
	defer shard.mu.RUnlock()

	b, ok := shard.bookings[id]
	return b, ok
}

// TryTransition moves the booking to target when the transition table allows
// it from the current status. It returns false for unknown ids.
func (l *BookingLedger) TryTransition(id uuid.UUID, target domain.BookingStatus) bool {
	shard := l.shardFor(id)
	shard.mu.Lock()
	defer shard.mu.Unlock()

	b, ok := shard.bookings[id]
	if !ok || !l.transitions.Allows(b.Status, target) {
		return false
	}
	b.Status = target
	b.UpdatedAt = l.now()
	shard.bookings[id] = b
	return true
}

// CompareAndTransition applies target only if the stored status still equals
// expected. The returned booking is the stored state after the call; it is
// the zero value when the id is unknown.
func (l *BookingLedger) CompareAndTransition(id uuid.UUID, expected, target domain.BookingStatus) (domain.Booking, bool) {
	shard := l.shardFor(id)
	shard.mu.Lock()
	defer shard.mu.Unlock()

	b, ok := shard.bookings[id]
	if !ok {
		return domain.Booking{}, false
	}
	if b.Status != expected || !l.transitions.Allows(expected, target) {
		return b, false
	}
	b.Status = target
	b.UpdatedAt = l.now()
	shard.bookings[id] = b
	return b, true
}

func (l *BookingLedger) CanTransition(from, to domain.BookingStatus) bool {
	return l.transitions.Allows(from, to)
}

func (l *BookingLedger) Transitions() domain.TransitionTable {
	return l.transitions
}

func (l *BookingLedger) Len() int {
	n := 0
	for _, shard := range l.shards {
		shard.mu.RLock()
		n += len(shard.bookings)
		shard.mu.RUnlock()
	}
	return n
}

var _ BookingRepository = (*BookingLedger)(nil)
