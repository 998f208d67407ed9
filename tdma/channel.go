package tdma

import (
	"context"
	"net"

	"golang.org/x/net/ipv4"
)

// Role is the channel's exclusive sender/receiver mode.
type Role int

const (
	RoleSender Role = iota
	RoleReceiver
)

// Channel binds one multicast endpoint, one owned slot, and one role.
// Zero value is not usable; construct with NewChannel. A Channel is
// owned by a single caller and is not safe for concurrent mutation;
// distinct channels share no state and may be driven in parallel.
//
// Lifecycle: NewChannel (init) -> Attach -> (Send/WaitAndSend/Receive,
// repeated) -> Destroy.
type Channel struct {
	role Role
	addr *net.UDPAddr
	slot uint32

	conn *net.UDPConn
	pc   *ipv4.PacketConn // both roles, used for JoinGroup and multicast loopback

	slotCount   uint32 // 0 until first master sync
	slotWidthUs uint32 // 0 until first master sync

	transactionID uint64 // sender: last emitted tid; receiver: last accepted tid on own slot

	masterClockOffsetUs uint64 // 0 == not yet synchronized; monotone non-decreasing once set

	// MinLatency, MaxLatency, MinFrequency, MaxFrequency are retained
	// channel metadata for a possible future enforcement layer (see
	// FrequencyViolation/LatencyViolation in errors.go). Nothing in this
	// package reads or enforces them.
	MinLatencyUs   uint32
	MaxLatencyUs   uint32
	MinFrequencyHz uint32
	MaxFrequencyHz uint32
}

// NewChannel initializes a channel for the given role, multicast group
// address, port, and owned slot. It performs no I/O; call Attach to
// acquire the socket.
func NewChannel(role Role, address string, port int, slot uint32) (*Channel, error) {
	ip := net.ParseIP(address)
	if ip == nil || ip.To4() == nil {
		return nil, newErr("NewChannel", IllegalAddress, nil)
	}
	return &Channel{
		role: role,
		addr: &net.UDPAddr{IP: ip.To4(), Port: port},
		slot: slot,
	}, nil
}

// Slot returns the channel's owned slot.
func (c *Channel) Slot() uint32 { return c.slot }

// Role returns the channel's role.
func (c *Channel) Role() Role { return c.role }

// SlotCount and SlotWidthUs return the slot geometry learned from the
// master; both are 0 until the first master sync is processed.
func (c *Channel) SlotCount() uint32    { return c.slotCount }
func (c *Channel) SlotWidthUs() uint32  { return c.slotWidthUs }
func (c *Channel) TransactionID() uint64 { return c.transactionID }

// Attach creates the socket, binds to (ANY, port) with address reuse,
// and joins the multicast group on the default interface. Senders join
// the group too (not just receivers): per spec §9's resolution of the
// sender-self-reception open question, a sender must still be able to
// observe the master's slot-0 sync traffic so WaitAndSend has a valid
// offset to schedule against. The socket is left unconnected since a
// multicast sender addresses the group explicitly on every send (see
// gatherSend), the same way the original implementation's single
// attach routine serves both roles.
func (c *Channel) Attach() error {
	if c.conn != nil {
		return newErr("Attach", SubscriptionFailure, nil)
	}

	lc := net.ListenConfig{Control: reuseAddrControl}
	pconn, err := lc.ListenPacket(context.Background(), "udp4", portOnly(c.addr.Port))
	if err != nil {
		return newErr("Attach", SubscriptionFailure, err)
	}
	conn, ok := pconn.(*net.UDPConn)
	if !ok {
		pconn.Close()
		return newErr("Attach", SubscriptionFailure, nil)
	}

	pc := ipv4.NewPacketConn(conn)
	_ = pc.SetMulticastLoopback(true)
	if err := pc.JoinGroup(nil, &net.UDPAddr{IP: c.addr.IP}); err != nil {
		conn.Close()
		return newErr("Attach", SubscriptionFailure, err)
	}

	c.conn = conn
	c.pc = pc
	return nil
}

// Addr returns the multicast group address and port this channel was
// constructed with.
func (c *Channel) Addr() *net.UDPAddr { return c.addr }

// UDPConn exposes the channel's underlying socket, attached or not, so
// the master program can drive SendRaw directly instead of through
// Send (whose clock field is the channel's own MasterClock, not the
// master's LocalClock — see cmd/master).
func (c *Channel) UDPConn() *net.UDPConn { return c.conn }

// SocketHandle exposes the underlying socket so applications can
// multiplex it with their own readiness-polling primitive. ok is false
// until the channel is attached.
func (c *Channel) SocketHandle() (fd uintptr, ok bool) {
	if c.conn == nil {
		return 0, false
	}
	raw, err := c.conn.SyscallConn()
	if err != nil {
		return 0, false
	}
	var handle uintptr
	err = raw.Control(func(f uintptr) { handle = f })
	if err != nil {
		return 0, false
	}
	return handle, true
}

// Destroy closes the socket and returns the channel to the "not
// attached" state. Safe to call multiple times.
func (c *Channel) Destroy() error {
	if c.conn == nil {
		return nil
	}
	err := c.conn.Close()
	c.conn = nil
	c.pc = nil
	if err != nil {
		return newErr("Destroy", NetworkError, err)
	}
	return nil
}
