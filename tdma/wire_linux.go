//go:build linux

package tdma

import (
	"net"

	"golang.org/x/sys/unix"
)

// scatterReceive performs a single vectored read of one datagram into
// headerBuf then payloadBuf via Readv on the socket's raw file
// descriptor, avoiding the copy a combined-buffer ReadFromUDP would
// need to split header from payload. Grounded in the pack's raw-socket
// vectored I/O examples (uping/ptp), which use golang.org/x/sys/unix
// directly against a socket fd rather than net's higher-level API.
func scatterReceive(conn *net.UDPConn, headerBuf, payloadBuf []byte) (int, error) {
	raw, err := conn.SyscallConn()
	if err != nil {
		return 0, err
	}

	var n int
	var readErr error
	ctrlErr := raw.Read(func(fd uintptr) bool {
		n, readErr = unix.Readv(int(fd), [][]byte{headerBuf, payloadBuf})
		return readErr != unix.EAGAIN
	})
	if ctrlErr != nil {
		return 0, ctrlErr
	}
	return n, readErr
}
