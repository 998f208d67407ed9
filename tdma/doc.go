// Package tdma implements a lightweight Time-Division Multiple Access
// layer over IPv4 UDP multicast.
//
// Multiple publisher processes share one multicast group/port endpoint.
// Each publisher owns an integer slot; the timeline is partitioned into
// fixed-width slot windows so only the slot's owner may transmit during
// its window. A master process (see cmd/master) distributes the slot
// count, slot width, and a reference clock on slot 0, letting every
// participant agree on "whose turn it is" without per-packet
// negotiation.
//
// A Channel binds one multicast endpoint to one owned slot and one role
// (sender or receiver). Create one with NewChannel, call Attach to join
// the group and acquire a socket, then drive Send/WaitAndSend or
// Receive. Destroy releases the socket and is safe to call more than
// once.
//
// A Channel is not safe for concurrent use: it is owned by a single
// goroutine. Distinct Channel values may be driven concurrently since
// they share no state.
package tdma
