package repository

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Domenick1991/airline-booking/internal/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBookingLedger_CreateAndFind(t *testing.T) {
	fixed := time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC)
	ledger := NewBookingLedger(WithClock(func() time.Time { return fixed }))
	flightID := uuid.New()

	created := ledger.Create(flightID, "Ana Silva")

	assert.NotEqual(t, uuid.Nil, created.ID)
	assert.Equal(t, flightID, created.FlightID)
	assert.Equal(t, "Ana Silva", created.PassengerName)
	assert.Equal(t, domain.BookingStatusPending, created.Status)
	assert.Equal(t, fixed, created.CreatedAt)

	found, ok := ledger.FindByID(created.ID)
	require.True(t, ok)
	assert.Equal(t, created, found)
	assert.Equal(t, 1, ledger.Len())
}

func TestBookingLedger_CreateAcceptsAnyInput(t *testing.T) {
	ledger := NewBookingLedger()

	b := ledger.Create(uuid.Nil, "")

	found, ok := ledger.FindByID(b.ID)
	require.True(t, ok)
	assert.Equal(t, "", found.PassengerName)
	assert.Equal(t, uuid.Nil, found.FlightID)
}

func TestBookingLedger_FindUnknown(t *testing.T) {
	ledger := NewBookingLedger()
	ledger.Create(uuid.New(), "Ana")

	_, ok := ledger.FindByID(uuid.New())

	assert.False(t, ok)
}

func TestBookingLedger_CreateRetriesOnIDCollision(t *testing.T) {
	first := uuid.MustParse("6f1c7c1e-0000-4000-8000-000000000001")
	second := uuid.MustParse("6f1c7c1e-0000-4000-8000-000000000002")
	sequence := []uuid.UUID{first, first, second}
	var calls int
	ledger := NewBookingLedger(WithIDGenerator(func() uuid.UUID {
		id := sequence[calls]
		calls++
		return id
	}))

	a := ledger.Create(uuid.New(), "A")
	b := ledger.Create(uuid.New(), "B")

	assert.Equal(t, first, a.ID)
	assert.Equal(t, second, b.ID)
	assert.Equal(t, 3, calls)
	assert.Equal(t, 2, ledger.Len())
}

func TestBookingLedger_TryTransition(t *testing.T) {
	ledger := NewBookingLedger()
	b := ledger.Create(uuid.New(), "Ana")

	assert.True(t, ledger.TryTransition(b.ID, domain.BookingStatusConfirmed))

	found, _ := ledger.FindByID(b.ID)
	assert.Equal(t, domain.BookingStatusConfirmed, found.Status)
	assert.False(t, ledger.TryTransition(b.ID, domain.BookingStatusConfirmed), "confirmed is terminal for confirm")
	assert.True(t, ledger.TryTransition(b.ID, domain.BookingStatusCanceled), "lenient table allows cancel after confirm")
	assert.False(t, ledger.TryTransition(b.ID, domain.BookingStatusPending))
}

func TestBookingLedger_TryTransitionUnknownID(t *testing.T) {
	ledger := NewBookingLedger()
	b := ledger.Create(uuid.New(), "Ana")

	for _, status := range []domain.BookingStatus{
		domain.BookingStatusPending,
		domain.BookingStatusConfirmed,
		domain.BookingStatusCanceled,
	} {
		assert.False(t, ledger.TryTransition(uuid.New(), status))
	}

	found, _ := ledger.FindByID(b.ID)
	assert.Equal(t, domain.BookingStatusPending, found.Status)
	assert.Equal(t, 1, ledger.Len())
}

func TestBookingLedger_UnrestrictedOverwrites(t *testing.T) {
	ledger := NewBookingLedger(WithTransitions(domain.UnrestrictedTransitions()))
	b := ledger.Create(uuid.New(), "Ana")

	assert.True(t, ledger.TryTransition(b.ID, domain.BookingStatusCanceled))
	assert.True(t, ledger.TryTransition(b.ID, domain.BookingStatusConfirmed))
	assert.True(t, ledger.TryTransition(b.ID, domain.BookingStatusConfirmed))

	found, _ := ledger.FindByID(b.ID)
	assert.Equal(t, domain.BookingStatusConfirmed, found.Status)
}

func TestBookingLedger_CompareAndTransition(t *testing.T) {
	testCases := []struct {
		name       string
		table      domain.TransitionTable
		setup      []domain.BookingStatus
		expected   domain.BookingStatus
		target     domain.BookingStatus
		wantOK     bool
		wantStatus domain.BookingStatus
	}{
		{
			name:       "pending to confirmed",
			table:      domain.StrictTransitions(),
			expected:   domain.BookingStatusPending,
			target:     domain.BookingStatusConfirmed,
			wantOK:     true,
			wantStatus: domain.BookingStatusConfirmed,
		},
		{
			name:       "stale expectation",
			table:      domain.StrictTransitions(),
			setup:      []domain.BookingStatus{domain.BookingStatusCanceled},
			expected:   domain.BookingStatusPending,
			target:     domain.BookingStatusConfirmed,
			wantOK:     false,
			wantStatus: domain.BookingStatusCanceled,
		},
		{
			name:       "strict rejects cancel after confirm",
			table:      domain.StrictTransitions(),
			setup:      []domain.BookingStatus{domain.BookingStatusConfirmed},
			expected:   domain.BookingStatusConfirmed,
			target:     domain.BookingStatusCanceled,
			wantOK:     false,
			wantStatus: domain.BookingStatusConfirmed,
		},
		{
			name:       "lenient allows cancel after confirm",
			table:      domain.LenientTransitions(),
			setup:      []domain.BookingStatus{domain.BookingStatusConfirmed},
			expected:   domain.BookingStatusConfirmed,
			target:     domain.BookingStatusCanceled,
			wantOK:     true,
			wantStatus: domain.BookingStatusCanceled,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ledger := NewBookingLedger(WithTransitions(tc.table))
			b := ledger.Create(uuid.New(), "Ana")
			for _, s := range tc.setup {
				require.True(t, ledger.TryTransition(b.ID, s))
			}

			got, ok := ledger.CompareAndTransition(b.ID, tc.expected, tc.target)

			assert.Equal(t, tc.wantOK, ok)
			assert.Equal(t, tc.wantStatus, got.Status)
			found, _ := ledger.FindByID(b.ID)
			assert.Equal(t, tc.wantStatus, found.Status)
		})
	}
}

func TestBookingLedger_CompareAndTransitionUnknownID(t *testing.T) {
	ledger := NewBookingLedger()

	got, ok := ledger.CompareAndTransition(uuid.New(), domain.BookingStatusPending, domain.BookingStatusConfirmed)

	assert.False(t, ok)
	assert.Equal(t, domain.Booking{}, got)
}

func TestBookingLedger_ConcurrentCreates(t *testing.T) {
	const n = 1000
	ledger := NewBookingLedger()
	flightID := uuid.New()

	ids := make([]uuid.UUID, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			ids[i] = ledger.Create(flightID, "passenger").ID
		}(i)
	}
	wg.Wait()

	assert.Equal(t, n, ledger.Len())
	seen := make(map[uuid.UUID]struct{}, n)
	for _, id := range ids {
		seen[id] = struct{}{}
		_, ok := ledger.FindByID(id)
		assert.True(t, ok)
	}
	assert.Len(t, seen, n)
}

func TestBookingLedger_ConcurrentCompareAndTransitionHasOneWinner(t *testing.T) {
	for _, shards := range []int{1, DefaultLedgerShards} {
		ledger := NewBookingLedger(WithShardCount(shards), WithTransitions(domain.StrictTransitions()))
		b := ledger.Create(uuid.New(), "Ana")

		const workers = 64
		var wins atomic.Int32
		var wg sync.WaitGroup
		start := make(chan struct{})
		for i := 0; i < workers; i++ {
			target := domain.BookingStatusConfirmed
			if i%2 == 1 {
				target = domain.BookingStatusCanceled
			}
			wg.Add(1)
			go func() {
				defer wg.Done()
				<-start
				if _, ok := ledger.CompareAndTransition(b.ID, domain.BookingStatusPending, target); ok {
					wins.Add(1)
				}
			}()
		}
		close(start)
		wg.Wait()

		assert.Equal(t, int32(1), wins.Load(), "shards=%d", shards)
		found, _ := ledger.FindByID(b.ID)
		assert.NotEqual(t, domain.BookingStatusPending, found.Status)
	}
}

func TestBookingLedger_ConcurrentMixedOperations(t *testing.T) {
	ledger := NewBookingLedger(WithShardCount(4))
	seeded := make([]uuid.UUID, 50)
	for i := range seeded {
		seeded[i] = ledger.Create(uuid.New(), "seed").ID
	}

	var wg sync.WaitGroup
	for i := 0; i < 200; i++ {
		wg.Add(3)
		go func() {
			defer wg.Done()
			ledger.Create(uuid.New(), "late")
		}()
		go func(id uuid.UUID) {
			defer wg.Done()
			ledger.TryTransition(id, domain.BookingStatusConfirmed)
		}(seeded[i%len(seeded)])
		go func(id uuid.UUID) {
			defer wg.Done()
			_, _ = ledger.FindByID(id)
		}(seeded[i%len(seeded)])
	}
	wg.Wait()

	assert.Equal(t, 250, ledger.Len())
	for _, id := range seeded {
		found, ok := ledger.FindByID(id)
		require.True(t, ok)
		assert.Equal(t, domain.BookingStatusConfirmed, found.Status)
	}
}

func TestBookingLedger_WithShardCountIgnoresNonPositive(t *testing.T) {
	ledger := NewBookingLedger(WithShardCount(0))

	assert.Len(t, ledger.shards, DefaultLedgerShards)
	assert.Equal(t, "lenient", ledger.Transitions().Name())
}
