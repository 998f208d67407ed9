package tdma

import "testing"

// withFakeClock pins localClockFunc to usec and restores the previous
// function in t.Cleanup when the test ends.
func withFakeClock(t *testing.T, usec uint64) {
	t.Helper()
	prev := localClockFunc
	localClockFunc = func() uint64 { return usec }
	t.Cleanup(func() { localClockFunc = prev })
}

// withFakeMasterClock freezes the local clock so that ch.MasterClock()
// reads masterUs, given ch's already-pinned (nonzero) offset. Tests use
// this instead of withFakeClock directly once a channel is synced, since
// masterClockOffsetUs == 0 is the "not yet synced" sentinel (clock.go)
// and a naive zero-gap sync would make MasterClock() read back as 0.
func withFakeMasterClock(t *testing.T, ch *Channel, masterUs uint64) {
	t.Helper()
	withFakeClock(t, masterUs+ch.masterClockOffsetUs)
}

func newTestChannel(t *testing.T, slot uint32) *Channel {
	t.Helper()
	ch, err := NewChannel(RoleReceiver, "224.0.0.123", 49234, slot)
	if err != nil {
		t.Fatalf("NewChannel: %v", err)
	}
	return ch
}

// S2 — first master-sync pins offset.
func TestApplyMasterSyncFirstPinsOffset(t *testing.T) {
	ch := newTestChannel(t, 3)
	withFakeClock(t, 1_000_000)

	tid := encodeSlotStats(10, 200)
	ch.applyMasterSync(tid, 400_000)

	if ch.slotCount != 10 || ch.slotWidthUs != 200 {
		t.Fatalf("geometry = (%d, %d), want (10, 200)", ch.slotCount, ch.slotWidthUs)
	}
	if ch.masterClockOffsetUs != 600_000 {
		t.Fatalf("offset = %d, want 600000", ch.masterClockOffsetUs)
	}
	if got := ch.MasterClock(); got != 400_000 {
		t.Fatalf("MasterClock() = %d, want 400000", got)
	}
}

// S3 — monotone refinement, offset never shrinks.
func TestApplyMasterSyncMonotoneRefinement(t *testing.T) {
	ch := newTestChannel(t, 3)

	withFakeClock(t, 1_000_000)
	tid := encodeSlotStats(10, 200)
	ch.applyMasterSync(tid, 400_000)
	if ch.masterClockOffsetUs != 600_000 {
		t.Fatalf("after first sync offset = %d, want 600000", ch.masterClockOffsetUs)
	}

	withFakeClock(t, 1_500_000)
	ch.applyMasterSync(tid, 850_000)
	if ch.masterClockOffsetUs != 650_000 {
		t.Fatalf("after second sync offset = %d, want 650000", ch.masterClockOffsetUs)
	}

	withFakeClock(t, 1_700_000)
	ch.applyMasterSync(tid, 1_000_000)
	if ch.masterClockOffsetUs != 700_000 {
		t.Fatalf("after third sync offset = %d, want 700000", ch.masterClockOffsetUs)
	}
}

// Invariant 3: offset is monotone non-decreasing across a sequence of
// later syncs, whether or not each incoming clock field lies below the
// current master-clock estimate (only those below it refine the offset).
func TestOffsetNeverShrinks(t *testing.T) {
	ch := newTestChannel(t, 0)
	withFakeClock(t, 100_000)
	ch.applyMasterSync(encodeSlotStats(4, 50), 10_000)
	prev := ch.masterClockOffsetUs

	clocks := []uint64{120_000, 150_000, 300_000}
	fields := []uint64{25_000, 55_000, 60_000}
	for i := range clocks {
		withFakeClock(t, clocks[i])
		ch.applyMasterSync(encodeSlotStats(4, 50), fields[i])
		if ch.masterClockOffsetUs < prev {
			t.Fatalf("offset shrank: %d -> %d", prev, ch.masterClockOffsetUs)
		}
		prev = ch.masterClockOffsetUs
	}
}

// Invariant 2: MasterClock is monotone non-decreasing once synced, given
// a monotone non-decreasing local clock.
func TestMasterClockMonotone(t *testing.T) {
	ch := newTestChannel(t, 0)
	withFakeClock(t, 1_000_000)
	ch.applyMasterSync(encodeSlotStats(10, 200), 400_000)

	var last uint64
	for _, t2 := range []uint64{1_000_000, 1_000_500, 2_000_000} {
		localClockFunc = func() uint64 { return t2 }
		got := ch.MasterClock()
		if got < last {
			t.Fatalf("MasterClock regressed: %d -> %d", last, got)
		}
		last = got
	}
}

func TestMasterClockUnknownBeforeSync(t *testing.T) {
	ch := newTestChannel(t, 0)
	if got := ch.MasterClock(); got != 0 {
		t.Fatalf("MasterClock() before sync = %d, want 0", got)
	}
}
