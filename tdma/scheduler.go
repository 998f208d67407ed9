package tdma

import "time"

// cycleDuration returns slot_count * slot_width_us, or 0 if geometry is
// not yet known.
func (c *Channel) cycleDuration() uint64 {
	return uint64(c.slotCount) * uint64(c.slotWidthUs)
}

// cycleStart returns the start, in master-clock microseconds, of the
// cycle containing t.
func cycleStart(t, duration uint64) uint64 {
	return t / duration * duration
}

// nextSlotStart returns this channel's next slot-window start at or
// after t, advancing by one cycle if the window for the current cycle
// has already begun.
func (c *Channel) nextSlotStart(t uint64) uint64 {
	duration := c.cycleDuration()
	start := cycleStart(t, duration) + uint64(c.slot)*uint64(c.slotWidthUs)
	if start < t {
		start += duration
	}
	return start
}

// SleepDuration returns how long to sleep before this channel's next
// transmit window begins. It fails with IllegalArgument if no master
// sync has been observed yet (slot_width_us == 0 makes cycle duration
// undefined) — per spec §9's explicit resolution of that open question.
func (c *Channel) SleepDuration() (time.Duration, error) {
	if c.slotWidthUs == 0 || c.slotCount == 0 {
		return 0, newErr("SleepDuration", IllegalArgument, nil)
	}

	if c.masterClockOffsetUs == 0 {
		return 0, newErr("SleepDuration", IllegalArgument, nil)
	}

	now := c.MasterClock()
	start := c.nextSlotStart(now)
	return time.Duration(start-now) * time.Microsecond, nil
}

// WaitAndSend sleeps until this channel's slot window, then sends
// payload.
func (c *Channel) WaitAndSend(payload []byte) error {
	d, err := c.SleepDuration()
	if err != nil {
		return err
	}
	time.Sleep(d)
	return c.Send(payload)
}
