package tdma

import "net"

// SendRaw is the primitive the master program uses to emit a slot-0
// sync (or any raw header+payload datagram) on a socket it owns
// directly, rather than through a Channel. It does not touch any
// Channel state (no transaction-id increment, no master-sync
// processing) — the caller is responsible for tid/clock semantics.
func SendRaw(conn *net.UDPConn, addr *net.UDPAddr, slot uint32, tid uint64, clock uint64, payload []byte) error {
	if payload == nil {
		payload = []byte{}
	}
	hdr := make([]byte, HeaderSize)
	encodeHeader(hdr, slot, tid, clock)
	if err := gatherSend(conn, addr, hdr, payload); err != nil {
		return newErr("SendRaw", NetworkError, err)
	}
	return nil
}
