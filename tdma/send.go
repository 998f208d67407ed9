package tdma

// Send transmits payload immediately on this channel's owned slot,
// incrementing the transaction id first so ids are strictly monotonic
// across calls. Fails with NotSender if the channel is a receiver.
func (c *Channel) Send(payload []byte) error {
	if c.role != RoleSender {
		return newErr("Send", NotSender, nil)
	}
	if c.conn == nil {
		return newErr("Send", NotConnected, nil)
	}

	c.transactionID++

	hdr := make([]byte, HeaderSize)
	encodeHeader(hdr, c.slot, c.transactionID, c.MasterClock())

	if err := gatherSend(c.conn, c.addr, hdr, payload); err != nil {
		return newErr("Send", NetworkError, err)
	}
	return nil
}
