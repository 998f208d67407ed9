package tdma

import (
	"encoding/binary"
	"net"
)

// HeaderSize is the fixed, big-endian wire header: slot(4) | tid(8) | clock(8).
const HeaderSize = 20

// header is the decoded form of the 20-byte wire header.
type header struct {
	slot  uint32
	tid   uint64
	clock uint64
}

// encodeHeader writes slot, tid, and clock into buf, which must be at
// least HeaderSize bytes.
func encodeHeader(buf []byte, slot uint32, tid uint64, clock uint64) {
	binary.BigEndian.PutUint32(buf[0:4], slot)
	binary.BigEndian.PutUint64(buf[4:12], tid)
	binary.BigEndian.PutUint64(buf[12:20], clock)
}

// decodeHeader parses the first HeaderSize bytes of buf. Callers must
// check len(buf) >= HeaderSize first.
func decodeHeader(buf []byte) header {
	return header{
		slot:  binary.BigEndian.Uint32(buf[0:4]),
		tid:   binary.BigEndian.Uint64(buf[4:12]),
		clock: binary.BigEndian.Uint64(buf[12:20]),
	}
}

// encodeSlotStats packs (slot_count, slot_width_us) into the tid field
// of a master-sync packet. Each half is independently big-endian
// encoded, then the halves are combined into one uint64 — not a single
// 64-bit byte-swap of the combined value.
func encodeSlotStats(slotCount, slotWidthUs uint32) uint64 {
	var tmp [8]byte
	binary.BigEndian.PutUint32(tmp[0:4], slotCount)
	binary.BigEndian.PutUint32(tmp[4:8], slotWidthUs)
	return binary.BigEndian.Uint64(tmp[:])
}

// decodeSlotStats is the inverse of encodeSlotStats.
func decodeSlotStats(tid uint64) (slotCount, slotWidthUs uint32) {
	var tmp [8]byte
	binary.BigEndian.PutUint64(tmp[:], tid)
	slotCount = binary.BigEndian.Uint32(tmp[0:4])
	slotWidthUs = binary.BigEndian.Uint32(tmp[4:8])
	return
}

// EncodeSlotStats packs (slot_count, slot_width_us) into the tid field
// a slot-0 master-sync datagram carries. Exported for the master
// program, which emits sync packets directly via SendRaw rather than
// through a Channel.
func EncodeSlotStats(slotCount, slotWidthUs uint32) uint64 {
	return encodeSlotStats(slotCount, slotWidthUs)
}

// gatherSend emits header and payload as one datagram. Every Channel
// socket (sender or receiver) is unconnected and bound to the shared
// group port — see Channel.Attach — so a send must carry its
// destination address on every call, the same way the original
// implementation's sendmsg(fd, &msghdr{msg_name: addr, msg_iov: [hdr,
// payload]}) addressed an unconnected socket. Go's net package only
// exposes a vectored write (net.Buffers, writev) for connected sockets,
// so this assembles header and payload into one buffer before the
// single WriteToUDP call; the receive side (scatterReceive) still
// performs a genuine vectored read into separate buffers.
func gatherSend(conn *net.UDPConn, addr *net.UDPAddr, hdr []byte, payload []byte) error {
	combined := make([]byte, 0, len(hdr)+len(payload))
	combined = append(combined, hdr...)
	combined = append(combined, payload...)
	_, err := conn.WriteToUDP(combined, addr)
	return err
}
