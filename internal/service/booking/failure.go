package booking

import (
	"context"
	"errors"
	"math/rand/v2"
	"sync"

	"github.com/google/uuid"
)

var ErrSimulatedFailure = errors.New("payment gateway timeout")

// Operation identifies the state change a FailurePolicy is asked about.
type Operation struct {
	Name      string
	BookingID uuid.UUID
}

const (
	OperationConfirm = "confirm"
	OperationCancel  = "cancel"
)

// FailurePolicy decides whether a confirm or cancel attempt should fail before
// the ledger is touched. A non-nil error aborts the operation.
type FailurePolicy interface {
	Decide(ctx context.Context, op Operation) error
}

type FailurePolicyFunc func(ctx context.Context, op Operation) error

func (f FailurePolicyFunc) Decide(ctx context.Context, op Operation) error {
	return f(ctx, op)
}

func NeverFail() FailurePolicy {
	return FailurePolicyFunc(func(context.Context, Operation) error { return nil })
}

// AlwaysFail fails every attempt with err, or ErrSimulatedFailure when err is nil.
func AlwaysFail(err error) FailurePolicy {
	if err == nil {
		err = ErrSimulatedFailure
	}
	return FailurePolicyFunc(func(context.Context, Operation) error { return err })
}

type randomFailure struct {
	rate float64
	mu   sync.Mutex
	rng  *rand.Rand
}

// RandomFailure fails roughly rate of all attempts. rng may be nil to use the
// global source; a non-nil rng is guarded by a mutex.
func RandomFailure(rate float64, rng *rand.Rand) FailurePolicy {
	if rate <= 0 {
		return NeverFail()
	}
	return &randomFailure{rate: rate, rng: rng}
}

func (r *randomFailure) Decide(context.Context, Operation) error {
	if r.draw() < r.rate {
		return ErrSimulatedFailure
	}
	return nil
}

func (r *randomFailure) draw() float64 {
	if r.rng == nil {
		return rand.Float64()
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rng.Float64()
}
