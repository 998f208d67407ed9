package tdma

import "time"

var processStart = time.Now()

// localClockFunc is swapped out by tests that need to pin LocalClock()
// to exact values (see the monotone-refinement scenarios in clock_test.go).
var localClockFunc = func() uint64 {
	return uint64(time.Since(processStart) / time.Microsecond)
}

// LocalClock returns a monotonic, microsecond-granularity timestamp.
// It is steady across wall-clock adjustments since it is derived from
// time.Now()'s monotonic reading rather than wall time.
func LocalClock() uint64 {
	return localClockFunc()
}

// MasterClock returns the channel's view of the shared master clock:
// LocalClock() minus the learned offset. It returns 0 when no master
// sync has been observed yet (offset == 0) — a sentinel, not an error;
// callers must treat 0 as "unknown".
func (c *Channel) MasterClock() uint64 {
	if c.masterClockOffsetUs == 0 {
		return 0
	}
	return LocalClock() - c.masterClockOffsetUs
}
