package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "go.uber.org/automaxprocs"
	"go.uber.org/zap"

	"github.com/odin-tdma/tdma"
	"github.com/odin-tdma/tdma/internal/config"
	"github.com/odin-tdma/tdma/internal/logging"
	"github.com/odin-tdma/tdma/internal/metrics"
)

func main() {
	var (
		slotCount     = flag.Uint("c", 10, "number of slots in a cycle")
		slotWidthUs   = flag.Uint("w", 1000, "slot width in microseconds")
		intervalUs    = flag.Uint("i", 1_000_000, "transmit interval for master-sync packets, in microseconds")
		group         = flag.String("group", "224.0.0.123", "multicast group address")
		port          = flag.Int("port", 49234, "multicast group port")
		metricsAddr   = flag.String("metrics-addr", ":9095", "listen address for /metrics and /health")
		logLevel      = flag.String("log-level", "info", "zap log level")
	)
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	cfg.Logging.Level = *logLevel
	cfg.Metrics.ListenAddr = *metricsAddr

	logger, err := logging.NewLogger(cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync() // nolint:errcheck

	metricsRegistry := metrics.NewRegistry()
	metricsRegistry.SlotState.Set(float64(*slotWidthUs))

	ch, err := tdma.NewChannel(tdma.RoleSender, *group, *port, 0)
	if err != nil {
		logger.Fatal("failed to construct master channel", zap.Error(err))
	}
	if err := ch.Attach(); err != nil {
		logger.Fatal("failed to attach master channel", zap.Error(err))
	}
	defer ch.Destroy() // nolint:errcheck

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	httpErrCh := make(chan error, 1)
	go func() {
		httpErrCh <- runHTTPServer(ctx, cfg, metricsRegistry, logger)
	}()

	go broadcastSync(ctx, ch, metricsRegistry, logger, uint32(*slotCount), uint32(*slotWidthUs), time.Duration(*intervalUs)*time.Microsecond)

	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case err := <-httpErrCh:
		if err != nil {
			logger.Error("http server error", zap.Error(err))
		}
		stop()
	}
}

// broadcastSync emits a slot-0 master-sync datagram every interval,
// advertising the current cycle geometry and this process's local
// clock. It bypasses Channel.Send because the sync clock field is the
// master's own LocalClock, not a MasterClock reading.
func broadcastSync(ctx context.Context, ch *tdma.Channel, reg *metrics.Registry, logger *zap.Logger, slotCount, slotWidthUs uint32, interval time.Duration) {
	var tid uint64
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			tid = tdma.EncodeSlotStats(slotCount, slotWidthUs)
			if err := tdma.SendRaw(ch.UDPConn(), ch.Addr(), 0, tid, tdma.LocalClock(), nil); err != nil {
				logger.Warn("master-sync send failed", zap.Error(err))
				reg.Packets.Rejected.WithLabelValues("network_error").Inc()
				continue
			}
			reg.Packets.Sent.Inc()
			reg.Sync.Applied.Inc()
		}
	}
}

func runHTTPServer(ctx context.Context, cfg config.Config, metricsRegistry *metrics.Registry, logger *zap.Logger) error {
	mux := http.NewServeMux()

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]any{
			"status":    "healthy",
			"timestamp": time.Now().UTC().Format(time.RFC3339Nano),
		})
	})

	mux.Handle("/metrics", metricsRegistry.Handler())

	httpServer := &http.Server{
		Addr:         cfg.Metrics.ListenAddr,
		Handler:      mux,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 5 * time.Second,
		IdleTimeout:  30 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("metrics http server starting", zap.String("addr", cfg.Metrics.ListenAddr))
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Warn("metrics http server shutdown error", zap.Error(err))
		}
		return nil
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	}
}

func writeJSON(w http.ResponseWriter, payload any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}
