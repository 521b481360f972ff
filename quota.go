package gcra

import (
	"errors"
	"fmt"
	"math"
	"math/bits"
	"time"
)

// ErrInvalidQuota is wrapped by every Quota construction error.
var ErrInvalidQuota = errors.New("invalid quota")

// Quota describes the rate configuration: ResourceLimit cost units are
// replenished every Period. It is immutable and may be shared by any number
// of State values.
type Quota struct {
	resourceLimit    uint32
	period           time.Duration
	emissionInterval time.Duration
}

// NewQuota returns a Quota allowing resourceLimit units per period.
//
// The emission interval is period / resourceLimit using truncating Duration
// division, so the sub-nanosecond remainder is lost: a limit of 3 per 1ns has
// an emission interval of 0.
func NewQuota(resourceLimit uint32, period time.Duration) (Quota, error) {
	if resourceLimit == 0 {
		return Quota{}, fmt.Errorf("%w: resource limit must be greater than zero", ErrInvalidQuota)
	}
	if period < 0 {
		return Quota{}, fmt.Errorf("%w: period %s must not be negative", ErrInvalidQuota, period)
	}
	return Quota{
		resourceLimit:    resourceLimit,
		period:           period,
		emissionInterval: period / time.Duration(resourceLimit),
	}, nil
}

func mustQuota(resourceLimit uint32, period time.Duration) Quota {
	q, err := NewQuota(resourceLimit, period)
	if err != nil {
		panic(err)
	}
	return q
}

// PerSecond returns a Quota of n units per second. It panics if n is zero.
func PerSecond(n uint32) Quota {
	return mustQuota(n, time.Second)
}

// PerMinute returns a Quota of n units per minute. It panics if n is zero.
func PerMinute(n uint32) Quota {
	return mustQuota(n, time.Minute)
}

// PerHour returns a Quota of n units per hour. It panics if n is zero.
func PerHour(n uint32) Quota {
	return mustQuota(n, time.Hour)
}

// PerDay returns a Quota of n units per day. It panics if n is zero.
func PerDay(n uint32) Quota {
	return mustQuota(n, 24*time.Hour)
}

// ResourceLimit is the number of cost units allowed per Period.
func (q Quota) ResourceLimit() uint32 { return q.resourceLimit }

// Period is the window over which ResourceLimit units are replenished. It
// doubles as the burst tolerance.
func (q Quota) Period() time.Duration { return q.period }

// EmissionInterval is the time cost of a single unit.
func (q Quota) EmissionInterval() time.Duration { return q.emissionInterval }

// IncrementInterval returns the time cost of admitting cost units at once.
// The product saturates at the largest representable Duration instead of
// wrapping.
func (q Quota) IncrementInterval(cost uint32) time.Duration {
	hi, lo := bits.Mul64(uint64(q.emissionInterval), uint64(cost))
	if hi != 0 || lo > math.MaxInt64 {
		return time.Duration(math.MaxInt64)
	}
	return time.Duration(lo)
}

func (q Quota) String() string {
	return fmt.Sprintf("%d per %s", q.resourceLimit, q.period)
}
