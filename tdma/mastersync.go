package tdma

// applyMasterSync updates channel geometry and the master-clock offset
// from a decoded slot-0 packet. tid carries (slot_count << 32 |
// slot_width_us), clockField is the master's local clock at send time.
//
// The offset is a monotone-refined, one-sided estimate of the minimum
// one-way delay: the first sync pins it; every later sync only tightens
// it (never widens it), so slot windows already accepted stay valid
// across refinements. See spec §4.3.
func (c *Channel) applyMasterSync(tid uint64, clockField uint64) {
	slotCount, slotWidthUs := decodeSlotStats(tid)
	c.slotCount = slotCount
	c.slotWidthUs = slotWidthUs

	localClock := LocalClock()

	if c.masterClockOffsetUs == 0 {
		c.masterClockOffsetUs = localClock - clockField
		return
	}

	localMaster := localClock - c.masterClockOffsetUs
	if clockField < localMaster {
		c.masterClockOffsetUs += localMaster - clockField
	}
}
