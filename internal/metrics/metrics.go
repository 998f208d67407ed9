package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry wraps the Prometheus collectors that cmd/master serves over
// /metrics and that cmd/subscribe updates.
type Registry struct {
	Packets   packetCounters
	Loss      lossCounters
	Sync      syncCounters
	Latency   prometheus.Histogram
	SlotState prometheus.Gauge
}

type packetCounters struct {
	Sent     prometheus.Counter
	Received prometheus.Counter
	Rejected *prometheus.CounterVec
}

type lossCounters struct {
	Detected prometheus.Counter
}

type syncCounters struct {
	Applied prometheus.Counter
}

// NewRegistry creates the Prometheus metrics collectors a channel reports
// through as it sends, receives, and resynchronizes.
func NewRegistry() *Registry {
	return &Registry{
		Packets: packetCounters{
			Sent: promauto.NewCounter(prometheus.CounterOpts{
				Name: "tdma_packets_sent_total",
				Help: "Total number of datagrams transmitted on an owned slot",
			}),
			Received: promauto.NewCounter(prometheus.CounterOpts{
				Name: "tdma_packets_received_total",
				Help: "Total number of datagrams accepted from the channel",
			}),
			Rejected: promauto.NewCounterVec(prometheus.CounterOpts{
				Name: "tdma_packets_rejected_total",
				Help: "Total number of datagrams rejected, labeled by result",
			}, []string{"result"}),
		},
		Loss: lossCounters{
			Detected: promauto.NewCounter(prometheus.CounterOpts{
				Name: "tdma_loss_events_total",
				Help: "Total number of transaction id gaps detected on the owned slot",
			}),
		},
		Sync: syncCounters{
			Applied: promauto.NewCounter(prometheus.CounterOpts{
				Name: "tdma_sync_applied_total",
				Help: "Total number of master-sync packets applied",
			}),
		},
		Latency: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "tdma_latency_microseconds",
			Help:    "One-way latency measured between a packet's clock field and its receipt time",
			Buckets: prometheus.ExponentialBuckets(10, 2, 14),
		}),
		SlotState: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "tdma_slot_width_microseconds",
			Help: "Slot width last advertised by the master, as currently known to this channel",
		}),
	}
}

// Handler returns an HTTP handler exposing Prometheus metrics.
func (r *Registry) Handler() http.Handler {
	return promhttp.Handler()
}
