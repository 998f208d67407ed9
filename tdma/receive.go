package tdma

// scatterReceiveFunc is indirected so channel_test.go can drive the
// receive state machine with synthetic datagrams instead of a real
// socket.
var scatterReceiveFunc = scatterReceive

// Receive reads one logical application packet from the channel,
// transparently consuming and applying any number of master-sync (slot
// 0) packets along the way. On success it returns Ok, the payload
// length written into buf, the measured one-way latency in
// microseconds, and whether a gap was detected in the owned slot's
// transaction id sequence.
//
// Per-datagram advisory results (MalformedPacket, SlotMismatch,
// OutOfSync) are returned to the caller immediately without looping;
// the channel remains usable afterward. TryAgain is produced only by the
// internal receiveOnce step; this method loops on it and never returns
// TryAgain itself.
func (c *Channel) Receive(buf []byte) (res Result, n int, latencyUs uint64, lossDetected bool, err error) {
	if c.conn == nil {
		return NotConnected, 0, 0, false, newErr("Receive", NotConnected, nil)
	}

	for {
		res, n, latencyUs, lossDetected, err = c.receiveOnce(buf)
		if res == TryAgain {
			continue
		}
		return
	}
}

// receiveOnce performs exactly one scatter-receive and classifies it,
// returning TryAgain when the outer Receive loop should read again.
func (c *Channel) receiveOnce(buf []byte) (Result, int, uint64, bool, error) {
	hdrBuf := make([]byte, HeaderSize)
	n, err := scatterReceiveFunc(c.conn, hdrBuf, buf)
	if err != nil {
		return NetworkError, 0, 0, false, newErr("Receive", NetworkError, err)
	}
	if n < HeaderSize {
		return MalformedPacket, 0, 0, false, newErr("Receive", MalformedPacket, nil)
	}

	h := decodeHeader(hdrBuf)

	if h.slot != c.slot && h.slot != 0 {
		return SlotMismatch, 0, 0, false, newErr("Receive", SlotMismatch, nil)
	}

	if h.slot == 0 {
		// Master sync: update geometry/offset for every channel,
		// sender or receiver (spec §9 open question resolution — a
		// sender's own WaitAndSend needs a valid offset too), then loop
		// for another datagram. The sync payload is always empty and
		// must never reach the caller.
		c.applyMasterSync(h.tid, h.clock)
		return TryAgain, 0, 0, false, nil
	}

	if c.role == RoleSender {
		// Own multicast loopback of a data-slot packet; senders never
		// surface data traffic.
		return TryAgain, 0, 0, false, nil
	}

	now := c.MasterClock()
	if now == 0 {
		return TryAgain, 0, 0, false, nil
	}

	if !c.inSlotWindow(h.slot, now) {
		return OutOfSync, 0, 0, false, newErr("Receive", OutOfSync, nil)
	}

	loss := c.transactionID != 0 && h.tid != c.transactionID+1
	c.transactionID = h.tid

	payloadLen := n - HeaderSize
	latency := c.MasterClock() - h.clock

	return Ok, payloadLen, latency, loss, nil
}

// inSlotWindow reports whether now falls strictly inside slot's window
// of the cycle containing now: S < now < S+width. Strict on both ends,
// matching the original implementation's _is_in_slot_window (spec §9
// flags this boundary behavior as an open question; this implementation
// follows the original rather than guessing at [S, S+w)).
func (c *Channel) inSlotWindow(slot uint32, now uint64) bool {
	duration := c.cycleDuration()
	if duration == 0 {
		return false
	}
	start := cycleStart(now, duration) + uint64(slot)*uint64(c.slotWidthUs)
	return start < now && now < start+uint64(c.slotWidthUs)
}
