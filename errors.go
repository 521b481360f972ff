package gcra

import (
	"errors"
	"fmt"
	"time"
)

// ErrDenied matches both denial errors with errors.Is.
var ErrDenied = errors.New("gcra: denied")

// DeniedIndefinitelyError is returned when the cost of a request exceeds
// what the quota can ever admit. Retrying the same cost will never succeed.
type DeniedIndefinitelyError struct {
	Cost uint32
}

func (e *DeniedIndefinitelyError) Error() string {
	return fmt.Sprintf("cost of the increment %d exceeds the rate limit and will never succeed", e.Cost)
}

func (e *DeniedIndefinitelyError) Is(target error) bool { return target == ErrDenied }

// DeniedUntilError is returned when a request is limited. A request of the
// same cost presented at NextAllowedAt succeeds, provided nothing else has
// changed the state in between.
type DeniedUntilError struct {
	NextAllowedAt time.Time
}

func (e *DeniedUntilError) Error() string {
	return fmt.Sprintf("denied until %s", e.NextAllowedAt.Format(time.RFC3339Nano))
}

func (e *DeniedUntilError) Is(target error) bool { return target == ErrDenied }

// RetryAfter is how long after now the caller should wait before retrying.
// It is never negative.
func (e *DeniedUntilError) RetryAfter(now time.Time) time.Duration {
	if d := e.NextAllowedAt.Sub(now); d > 0 {
		return d
	}
	return 0
}
