//go:build !linux

package tdma

import "net"

// scatterReceive is the portable fallback: a single Read into a
// combined buffer, whose header and payload parts are then copied into
// headerBuf and payloadBuf. Unlike the Linux Readv path, this costs one
// extra copy per datagram. Used on platforms without golang.org/x/sys/unix
// raw-fd vectored reads wired up.
func scatterReceive(conn *net.UDPConn, headerBuf, payloadBuf []byte) (int, error) {
	combined := make([]byte, len(headerBuf)+len(payloadBuf))
	n, err := conn.Read(combined)
	if err != nil {
		return 0, err
	}
	copy(headerBuf, combined[:min(n, len(headerBuf))])
	if n > len(headerBuf) {
		copy(payloadBuf, combined[len(headerBuf):n])
	}
	return n, nil
}
