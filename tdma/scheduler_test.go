package tdma

import "testing"

func syncedChannel(t *testing.T, slot uint32, slotCount, slotWidthUs uint32) *Channel {
	t.Helper()
	ch := newTestChannel(t, slot)

	// Pin a realistic, nonzero one-way-latency offset — a zero-gap sync
	// would leave masterClockOffsetUs at 0, which clock.go treats as
	// "never synced" and MasterClock() would read back as 0 regardless
	// of LocalClock().
	const syncLatencyUs = 50
	withFakeClock(t, syncLatencyUs)
	ch.applyMasterSync(encodeSlotStats(slotCount, slotWidthUs), 0)
	return ch
}

// S4 — slot-window accept/reject.
func TestInSlotWindowAcceptReject(t *testing.T) {
	ch := syncedChannel(t, 3, 10, 1000)

	withFakeMasterClock(t, ch, 53_400)
	if !ch.inSlotWindow(3, ch.MasterClock()) {
		t.Fatalf("expected acceptance at master_clock=53400")
	}

	withFakeMasterClock(t, ch, 54_050)
	if ch.inSlotWindow(3, ch.MasterClock()) {
		t.Fatalf("expected rejection at master_clock=54050")
	}
}

func TestSleepDurationBeforeSyncFails(t *testing.T) {
	ch := newTestChannel(t, 3)
	if _, err := ch.SleepDuration(); err == nil {
		t.Fatalf("expected error before master sync")
	}
}

// Invariant 6: sleep_duration(t) + t lies within the channel's own slot window.
func TestSleepDurationLandsInOwnWindow(t *testing.T) {
	ch := syncedChannel(t, 3, 10, 1000)

	for _, now := range []uint64{0, 999, 3_500, 52_999, 60_000} {
		withFakeMasterClock(t, ch, now)
		d, err := ch.SleepDuration()
		if err != nil {
			t.Fatalf("SleepDuration() at t=%d: %v", now, err)
		}
		landing := now + uint64(d.Microseconds())
		if !ch.inSlotWindow(ch.slot, landing) {
			// landing on the window's start edge (exclusive) is the one
			// legal non-acceptance per the strict inequality; nextSlotStart
			// always returns the window's start instant, so assert that
			// directly instead of re-deriving it here.
			duration := ch.cycleDuration()
			start := cycleStart(landing, duration) + uint64(ch.slot)*uint64(ch.slotWidthUs)
			if landing != start {
				t.Fatalf("sleep landed at %d, not inside or at the start of slot %d's window", landing, ch.slot)
			}
		}
	}
}
