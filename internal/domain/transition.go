package domain

import "fmt"

type Transition struct {
	From BookingStatus
	To   BookingStatus
}

// TransitionTable is an immutable set of allowed status transitions.
type TransitionTable struct {
	name    string
	allowed map[Transition]struct{}
}

func NewTransitionTable(name string, transitions ...Transition) TransitionTable {
	allowed := make(map[Transition]struct{}, len(transitions))
	for _, t := range transitions {
		allowed[t] = struct{}{}
	}
	return TransitionTable{name: name, allowed: allowed}
}

func (t TransitionTable) Allows(from, to BookingStatus) bool {
	if t.allowed == nil {
		return false
	}
	_, ok := t.allowed[Transition{From: from, To: to}]
	return ok
}

func (t TransitionTable) Name() string {
	return t.name
}

// StrictTransitions only lets a pending booking move to a terminal state.
func StrictTransitions() TransitionTable {
	return NewTransitionTable("strict",
		Transition{From: BookingStatusPending, To: BookingStatusConfirmed},
		Transition{From: BookingStatusPending, To: BookingStatusCanceled},
	)
}

// LenientTransitions additionally allows canceling a confirmed booking.
func LenientTransitions() TransitionTable {
	return NewTransitionTable("lenient",
		Transition{From: BookingStatusPending, To: BookingStatusConfirmed},
		Transition{From: BookingStatusPending, To: BookingStatusCanceled},
		Transition{From: BookingStatusConfirmed, To: BookingStatusCanceled},
	)
}

// UnrestrictedTransitions accepts every pair, including self transitions.
func UnrestrictedTransitions() TransitionTable {
	statuses := []BookingStatus{BookingStatusPending, BookingStatusConfirmed, BookingStatusCanceled}
	var all []Transition
	for _, from := range statuses {
		for _, to := range statuses {
			all = append(all, Transition{From: from, To: to})
		}
	}
	return NewTransitionTable("unrestricted", all...)
}

func TransitionTableByName(name string) (TransitionTable, error) {
	switch name {
	case "", "lenient":
		return LenientTransitions(), nil
	case "strict":
		return StrictTransitions(), nil
	case "unrestricted":
		return UnrestrictedTransitions(), nil
	default:
		return TransitionTable{}, fmt.Errorf("unknown transition table %q", name)
	}
}
