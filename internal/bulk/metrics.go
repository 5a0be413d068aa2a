package bulk

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	dErrors "github.com/betafcc/cpf/pkg/domain-errors"
)

// Metrics holds Prometheus metrics for bulk validation.
type Metrics struct {
	Inputs        *prometheus.CounterVec
	Rejections    *prometheus.CounterVec
	BatchDuration prometheus.Histogram
}

// NewMetrics creates the bulk validation metrics and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Inputs: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "cpf_bulk_inputs_total",
			Help: "Total number of inputs checked, by result",
		}, []string{"result"}),
		Rejections: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "cpf_bulk_rejections_total",
			Help: "Total number of rejected inputs, by domain error code",
		}, []string{"code"}),
		BatchDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "cpf_bulk_batch_duration_seconds",
			Help:    "Time taken to check a whole batch",
			Buckets: prometheus.DefBuckets,
		}),
	}
}

func (m *Metrics) observe(r Result) {
	if r.Valid() {
		m.Inputs.WithLabelValues("valid").Inc()
		return
	}
	m.Inputs.WithLabelValues("invalid").Inc()
	m.Rejections.WithLabelValues(string(dErrors.CodeOf(r.Err))).Inc()
}

func (m *Metrics) observeBatch(d time.Duration) {
	m.BatchDuration.Observe(d.Seconds())
}
