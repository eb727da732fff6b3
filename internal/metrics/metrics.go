package metrics

import (
	"log/slog"
	"net/http"
	"sync/atomic"

	dto "github.com/prometheus/client_model/go"
	"github.com/prometheus/common/expfmt"
	"google.golang.org/protobuf/proto"
)

// Counters holds bin-server's monotonic counters. All fields are safe for
// concurrent use; handlers bump them directly.
type Counters struct {
	PastesStored  atomic.Uint64
	PastesServed  atomic.Uint64
	PastesEvicted atomic.Uint64
	LookupMisses  atomic.Uint64
	DevicesIssued atomic.Uint64
}

// StoreStats is the live-state view the gauges are read from at scrape
// time. *store.Store satisfies it.
type StoreStats interface {
	Count() int
	DeviceCount() int
}

// Handler serves GET /metrics in the Prometheus text exposition format.
type Handler struct {
	counters *Counters
	stats    StoreStats
}

// NewHandler creates a Handler exposing the given counters plus live gauges
// read from stats.
func NewHandler(c *Counters, stats StoreStats) *Handler {
	return &Handler{counters: c, stats: stats}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	format := expfmt.NewFormat(expfmt.TypeTextPlain)
	w.Header().Set("Content-Type", string(format))

	enc := expfmt.NewEncoder(w, format)
	for _, mf := range h.families() {
		if err := enc.Encode(mf); err != nil {
			slog.Error("metrics: encode failed", "family", mf.GetName(), "err", err)
			return
		}
	}
}

// families builds the current metric families from the counters and the store.
func (h *Handler) families() []*dto.MetricFamily {
	return []*dto.MetricFamily{
		counter("bin_pastes_stored_total",
			"Pastes accepted and inserted into the store.",
			h.counters.PastesStored.Load()),
		counter("bin_pastes_served_total",
			"Successful ownership-checked paste lookups.",
			h.counters.PastesServed.Load()),
		counter("bin_pastes_evicted_total",
			"Pastes rotated out by per-device retention.",
			h.counters.PastesEvicted.Load()),
		counter("bin_lookup_misses_total",
			"Lookups that found no paste for the presented device code.",
			h.counters.LookupMisses.Load()),
		counter("bin_devices_issued_total",
			"Device codes handed out.",
			h.counters.DevicesIssued.Load()),
		gauge("bin_pastes_live",
			"Pastes currently held in memory.",
			float64(h.stats.Count())),
		gauge("bin_devices_live",
			"Devices currently owning at least one live paste.",
			float64(h.stats.DeviceCount())),
	}
}

func counter(name, help string, v uint64) *dto.MetricFamily {
	return &dto.MetricFamily{
		Name: proto.String(name),
		Help: proto.String(help),
		Type: dto.MetricType_COUNTER.Enum(),
		Metric: []*dto.Metric{
			{Counter: &dto.Counter{Value: proto.Float64(float64(v))}},
		},
	}
}

func gauge(name, help string, v float64) *dto.MetricFamily {
	return &dto.MetricFamily{
		Name: proto.String(name),
		Help: proto.String(help),
		Type: dto.MetricType_GAUGE.Enum(),
		Metric: []*dto.Metric{
			{Gauge: &dto.Gauge{Value: proto.Float64(v)}},
		},
	}
}
