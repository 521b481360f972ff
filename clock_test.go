package gcra

import (
	"sync"
	"time"
)

// testTime is a fake clock for driving time-dependent tests.
type testTime struct {
	mu    sync.Mutex
	cur   time.Time
	start time.Time
}

func newTestTime(start time.Time) *testTime {
	return &testTime{cur: start, start: start}
}

// now returns the current fake time.
func (tt *testTime) now() time.Time {
	tt.mu.Lock()
	defer tt.mu.Unlock()
	return tt.cur
}

// elapsed returns the fake time since the clock was created.
func (tt *testTime) elapsed() time.Duration {
	tt.mu.Lock()
	defer tt.mu.Unlock()
	return tt.cur.Sub(tt.start)
}

// advance advances the fake time.
func (tt *testTime) advance(dur time.Duration) {
	tt.mu.Lock()
	defer tt.mu.Unlock()
	tt.cur = tt.cur.Add(dur)
}
