// Command publish attaches a sender channel on a given slot and
// transmits one payload per slot window, read line by line from stdin
// (or a synthetic counter payload with -demo).
package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"net"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/odin-tdma/tdma"
	"github.com/odin-tdma/tdma/internal/config"
	"github.com/odin-tdma/tdma/internal/logging"
)

func main() {
	var (
		group    = flag.String("group", "224.0.0.123", "multicast group address")
		port     = flag.Int("port", 49234, "multicast group port")
		slot     = flag.Uint("slot", 1, "slot to attach to")
		logLevel = flag.String("log-level", "info", "zap log level")
		demo     = flag.Bool("demo", false, "send an incrementing counter payload instead of reading stdin")
	)
	flag.Parse()

	logger, err := logging.NewLogger(config.LoggingConfig{Level: *logLevel})
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync() // nolint:errcheck

	ch, err := tdma.NewChannel(tdma.RoleSender, *group, *port, uint32(*slot))
	if err != nil {
		logger.Fatal("failed to construct channel", zap.Error(err))
	}
	if err := ch.Attach(); err != nil {
		logger.Fatal("failed to attach channel", zap.Error(err))
	}
	defer ch.Destroy() // nolint:errcheck

	if *demo {
		runDemo(ch, logger)
		return
	}
	runStdin(ch, logger)
}

func runDemo(ch *tdma.Channel, logger *zap.Logger) {
	absorbBuf := make([]byte, 65507)
	for i := 0; ; i++ {
		absorbPendingSyncs(ch, absorbBuf, logger)

		payload := []byte(fmt.Sprintf("counter=%d", i))
		if err := ch.WaitAndSend(payload); err != nil {
			logger.Warn("send failed", zap.Error(err))
			continue
		}
		logger.Info("sent", zap.Int("counter", i), zap.Uint64("tid", ch.TransactionID()))
	}
}

func runStdin(ch *tdma.Channel, logger *zap.Logger) {
	absorbBuf := make([]byte, 65507)
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		absorbPendingSyncs(ch, absorbBuf, logger)

		line := scanner.Bytes()
		if err := ch.WaitAndSend(line); err != nil {
			logger.Warn("send failed", zap.Error(err))
			continue
		}
		logger.Info("sent", zap.Int("bytes", len(line)), zap.Uint64("tid", ch.TransactionID()))
	}
	if err := scanner.Err(); err != nil {
		logger.Error("stdin read failed", zap.Error(err))
	}
}

// absorbPendingSyncs reads from the channel's socket until a 5 ms read
// deadline expires, or until Receive reports a non-timeout error such as
// SlotMismatch for another slot's data, so master-sync packets get
// applied before the next WaitAndSend is scheduled. Without this, a sender that never reads its
// own socket never processes slot 0 and SleepDuration fails forever with
// IllegalArgument. Mirrors the original sender's epoll loop, which
// watches the channel descriptor alongside its input specifically "to
// process slot 0 packets sent by the master" (slotted_udp_test.c's
// send_data); a short read deadline stands in for epoll's readiness
// check so this runs inline, without a second goroutine mutating the
// single-owner Channel concurrently.
func absorbPendingSyncs(ch *tdma.Channel, buf []byte, logger *zap.Logger) {
	conn := ch.UDPConn()
	if err := conn.SetReadDeadline(time.Now().Add(5 * time.Millisecond)); err != nil {
		return
	}
	defer conn.SetReadDeadline(time.Time{}) // nolint:errcheck

	_, _, _, _, err := ch.Receive(buf)
	if err == nil {
		return
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return
	}
	logger.Warn("sync absorption read failed", zap.Error(err))
}
