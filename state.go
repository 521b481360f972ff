package gcra

import (
	"math/bits"
	"time"
)

// State holds the GCRA theoretical arrival time (TAT) of one rate-limited
// entity. The zero value has no TAT and grants full capacity.
//
// A State must not be used by multiple goroutines at once; callers keep one
// per entity and serialise calls on it.
type State struct {
	tat    time.Time
	hasTAT bool
}

// StateAt returns a State whose TAT is tat, e.g. one loaded from storage.
func StateAt(tat time.Time) State {
	return State{tat: tat, hasTAT: true}
}

// TAT returns the theoretical arrival time and whether it is set.
func (s State) TAT() (time.Time, bool) {
	return s.tat, s.hasTAT
}

// Reset returns the state to brand new.
func (s *State) Reset() {
	*s = State{}
}

// CheckAndModify is CheckAndModifyAt with the current time.
func (s *State) CheckAndModify(q Quota, cost uint32) error {
	return s.CheckAndModifyAt(q, time.Now(), cost)
}

// CheckAndModifyAt reports whether cost units may be consumed at arrivedAt
// and, if so, advances the TAT. On denial the state is left untouched and
// the returned error is a *DeniedIndefinitelyError or a *DeniedUntilError.
func (s *State) CheckAndModifyAt(q Quota, arrivedAt time.Time, cost uint32) error {
	increment := q.IncrementInterval(cost)
	if increment > q.period {
		return &DeniedIndefinitelyError{Cost: cost}
	}

	// First request ever.
	if !s.hasTAT {
		s.tat, s.hasTAT = arrivedAt.Add(increment), true
		return nil
	}

	// The bucket drained since the last request; grow from now, not from
	// the stale TAT.
	if s.tat.Before(arrivedAt) {
		s.tat = arrivedAt.Add(increment)
		return nil
	}

	newTAT := s.tat.Add(increment)
	nextAllowedAt := newTAT.Add(-q.period)
	if nextAllowedAt.After(arrivedAt) {
		return &DeniedUntilError{NextAllowedAt: nextAllowedAt}
	}
	s.tat = newTAT
	return nil
}

// Revert is RevertAt with the current time.
func (s *State) Revert(q Quota, cost uint32) error {
	return s.RevertAt(q, time.Now(), cost)
}

// RevertAt gives back cost units by moving the TAT backwards. It is
// best-effort accounting, not a ledger: nothing checks that cost was charged
// before, so reverting more than was consumed grants extra capacity. If the
// TAT already lies before arrivedAt the state becomes brand new.
//
// The returned error is always nil.
func (s *State) RevertAt(q Quota, arrivedAt time.Time, cost uint32) error {
	if !s.hasTAT {
		return nil
	}
	if s.tat.Before(arrivedAt) {
		s.Reset()
		return nil
	}
	s.tat = s.tat.Add(-q.IncrementInterval(cost))
	return nil
}

// RemainingResources estimates how many units could be consumed at now. The
// count is rounded down, so it never promises more than is available.
func (s State) RemainingResources(q Quota, now time.Time) uint32 {
	if q.period == 0 {
		return 0
	}
	if !s.hasTAT || !s.tat.After(now) {
		return q.resourceLimit
	}

	timeToTAT := uint64(s.tat.Sub(now))
	period := uint64(q.period)
	if timeToTAT >= period {
		return 0
	}

	// consumed = ceil(timeToTAT * limit / period); hi < period holds because
	// timeToTAT < period.
	hi, lo := bits.Mul64(timeToTAT, uint64(q.resourceLimit))
	consumed, rem := bits.Div64(hi, lo, period)
	if rem != 0 {
		consumed++
	}
	if consumed >= uint64(q.resourceLimit) {
		return 0
	}
	return q.resourceLimit - uint32(consumed)
}

// ResetAfter is the time from now until the bucket is fully replenished.
func (s State) ResetAfter(now time.Time) time.Duration {
	if !s.hasTAT || !s.tat.After(now) {
		return 0
	}
	return s.tat.Sub(now)
}
