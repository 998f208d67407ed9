// Command subscribe attaches a receiver channel on a given slot and
// logs each accepted packet, or the advisory result when a datagram
// is rejected, alongside loss and latency metrics.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/odin-tdma/tdma"
	"github.com/odin-tdma/tdma/internal/config"
	"github.com/odin-tdma/tdma/internal/logging"
	"github.com/odin-tdma/tdma/internal/metrics"
)

func main() {
	var (
		group    = flag.String("group", "224.0.0.123", "multicast group address")
		port     = flag.Int("port", 49234, "multicast group port")
		slot     = flag.Uint("slot", 1, "slot to attach to")
		logLevel = flag.String("log-level", "info", "zap log level")
	)
	flag.Parse()

	logger, err := logging.NewLogger(config.LoggingConfig{Level: *logLevel})
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync() // nolint:errcheck

	registry := metrics.NewRegistry()

	ch, err := tdma.NewChannel(tdma.RoleReceiver, *group, *port, uint32(*slot))
	if err != nil {
		logger.Fatal("failed to construct channel", zap.Error(err))
	}
	if err := ch.Attach(); err != nil {
		logger.Fatal("failed to attach channel", zap.Error(err))
	}
	defer ch.Destroy() // nolint:errcheck

	buf := make([]byte, 65507)
	for {
		res, n, latencyUs, loss, err := ch.Receive(buf)
		if err != nil {
			var terr *tdma.Error
			label := "error"
			if errors.As(err, &terr) {
				label = terr.Result.String()
			}
			registry.Packets.Rejected.WithLabelValues(label).Inc()
			logger.Warn("packet rejected", zap.String("result", res.String()), zap.Error(err))
			if loss {
				registry.Loss.Detected.Inc()
			}
			continue
		}

		registry.Packets.Received.Inc()
		registry.Latency.Observe(float64(latencyUs))
		if loss {
			registry.Loss.Detected.Inc()
		}

		logger.Info("packet accepted",
			zap.Int("bytes", n),
			zap.Uint64("latency_us", latencyUs),
			zap.Bool("loss", loss),
		)
	}
}
