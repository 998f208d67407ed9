package tdma

import (
	"fmt"
	"runtime"
	"syscall"
)

// reuseAddrControl enables SO_REUSEADDR (and, off Windows, SO_REUSEPORT)
// on the listening socket before bind, so a master restart or multiple
// receivers on the same host don't collide. Grounded in the pack's
// multicast receiver setup (other_examples rcarmo-codebits-tv/mcast.go).
func reuseAddrControl(_, _ string, c syscall.RawConn) error {
	var ctrlErr error
	err := c.Control(func(fd uintptr) {
		if e := syscall.SetsockoptInt(int(fd), syscall.SOL_SOCKET, syscall.SO_REUSEADDR, 1); e != nil {
			ctrlErr = e
			return
		}
		if runtime.GOOS != "windows" {
			// best-effort; not all platforms define SO_REUSEPORT identically
			_ = trySetReusePort(int(fd))
		}
	})
	if err != nil {
		return err
	}
	return ctrlErr
}

func portOnly(port int) string {
	return fmt.Sprintf(":%d", port)
}
