package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// POSMetrics records terminal activity: sales, drafts and storage health.
type POSMetrics struct {
	sales           *prometheus.CounterVec
	revenue         *prometheus.CounterVec
	drafts          *prometheus.CounterVec
	storageWrite    *prometheus.HistogramVec
	storageFailures *prometheus.CounterVec
	degraded        prometheus.Gauge
}

// NewPOSMetrics registers the terminal metrics on the provided registerer.
// A nil registerer yields a no-op recorder.
func NewPOSMetrics(reg prometheus.Registerer) *POSMetrics {
	if reg == nil {
		return &POSMetrics{}
	}
	sales := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "pos_sales_completed_total",
		Help: "Completed sales by payment method.",
	}, []string{"payment_method"})
	revenue := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "pos_sales_revenue_total",
		Help: "Sum of completed sale totals by payment method.",
	}, []string{"payment_method"})
	drafts := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "pos_drafts_total",
		Help: "Draft lifecycle events.",
	}, []string{"action"})
	storageWrite := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "pos_storage_write_seconds",
		Help:    "Duration of key-value writes in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"key"})
	storageFailures := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "pos_storage_failures_total",
		Help: "Failed key-value operations.",
	}, []string{"op"})
	degraded := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "pos_storage_degraded",
		Help: "1 while the transaction store runs in memory only.",
	})
	reg.MustRegister(sales, revenue, drafts, storageWrite, storageFailures, degraded)
	return &POSMetrics{
		sales:           sales,
		revenue:         revenue,
		drafts:          drafts,
		storageWrite:    storageWrite,
		storageFailures: storageFailures,
		degraded:        degraded,
	}
}

// IncSale counts a completed sale and adds its total to revenue.
func (m *POSMetrics) IncSale(paymentMethod string, total float64) {
	if m == nil || m.sales == nil {
		return
	}
	label := normalizeLabel(paymentMethod)
	m.sales.WithLabelValues(label).Inc()
	if total > 0 {
		m.revenue.WithLabelValues(label).Add(total)
	}
}

// IncDraft counts a draft event (saved, loaded, deleted).
func (m *POSMetrics) IncDraft(action string) {
	if m == nil || m.drafts == nil {
		return
	}
	m.drafts.WithLabelValues(normalizeLabel(action)).Inc()
}

// ObserveWrite records how long persisting key took.
func (m *POSMetrics) ObserveWrite(key string, duration time.Duration) {
	if m == nil || m.storageWrite == nil {
		return
	}
	m.storageWrite.WithLabelValues(normalizeLabel(key)).Observe(duration.Seconds())
}

// IncStorageFailure counts a failed storage operation (load, save, delete).
func (m *POSMetrics) IncStorageFailure(op string) {
	if m == nil || m.storageFailures == nil {
		return
	}
	m.storageFailures.WithLabelValues(normalizeLabel(op)).Inc()
}

// SetDegraded flips the degraded gauge.
func (m *POSMetrics) SetDegraded(degraded bool) {
	if m == nil || m.degraded == nil {
		return
	}
	if degraded {
		m.degraded.Set(1)
		return
	}
	m.degraded.Set(0)
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
