package jobs

import "github.com/prometheus/client_golang/prometheus"

type Metrics struct {
	items    *prometheus.CounterVec
	duration *prometheus.HistogramVec
	lastRun  *prometheus.GaugeVec
	aborted  *prometheus.CounterVec
	removed  *prometheus.CounterVec
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		items: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "eldercare_job_items_total",
			Help: "Per-senior outcomes of daily jobs.",
		}, []string{"job", "status"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "eldercare_job_duration_seconds",
			Help:    "Wall time of daily job runs.",
			Buckets: prometheus.ExponentialBuckets(0.5, 2, 12),
		}, []string{"job"}),
		lastRun: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "eldercare_job_last_run_timestamp_seconds",
			Help: "Unix time the job last finished.",
		}, []string{"job"}),
		aborted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "eldercare_job_aborted_total",
			Help: "Runs that stopped before visiting every senior.",
		}, []string{"job"}),
		removed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "eldercare_job_removed_rows_total",
			Help: "Rows deleted by housekeeping jobs.",
		}, []string{"job"}),
	}
	reg.MustRegister(m.items, m.duration, m.lastRun, m.aborted, m.removed)
	return m
}

// Observe is a Listener.
func (m *Metrics) Observe(r Report) {
	for _, st := range []Status{StatusSent, StatusSkipped, StatusFailed} {
		if n := r.Count(st); n > 0 {
			m.items.WithLabelValues(r.Job, string(st)).Add(float64(n))
		}
	}
	m.duration.WithLabelValues(r.Job).Observe(r.Duration().Seconds())
	m.lastRun.WithLabelValues(r.Job).Set(float64(r.FinishedAt.Unix()))
	if r.Err != nil {
		m.aborted.WithLabelValues(r.Job).Inc()
	}
	if r.Removed > 0 {
		m.removed.WithLabelValues(r.Job).Add(float64(r.Removed))
	}
}
