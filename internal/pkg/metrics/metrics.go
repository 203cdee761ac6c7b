package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/murkotick/product-form-service/internal/app/productform/registry"
)

const namespace = "productform"

// Outcome label values of productform_save_runs_total.
const (
	OutcomeSuccess          = "success"
	OutcomeValidationFailed = "validation_failed"
	OutcomeHandlerFailed    = "handler_failed"
)

// SaveMetrics records save runs. It satisfies actors.Observer.
type SaveMetrics struct {
	SaveRuns           *prometheus.CounterVec
	HandlerDuration    *prometheus.HistogramVec
	ValidationFailures *prometheus.CounterVec
}

// NewSaveMetrics registers the collectors on reg.
func NewSaveMetrics(reg prometheus.Registerer) *SaveMetrics {
	f := promauto.With(reg)
	return &SaveMetrics{
		SaveRuns: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "save_runs_total",
			Help:      "Save-all runs by outcome.",
		}, []string{"outcome"}),
		HandlerDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "save_handler_duration_seconds",
			Help:      "Duration of individual save handlers.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"tab"}),
		ValidationFailures: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "validation_failures_total",
			Help:      "Tabs that failed validation during save-all.",
		}, []string{"tab"}),
	}
}

func (m *SaveMetrics) ValidationFailed(_ string, res registry.ValidationResult) {
	m.SaveRuns.WithLabelValues(OutcomeValidationFailed).Inc()
	for tab, errs := range res.ErrorsByTab {
		if errs.HasErrors() {
			m.ValidationFailures.WithLabelValues(string(tab)).Inc()
		}
	}
}

func (m *SaveMetrics) SaveFinished(_ string, res registry.SaveAllResult) {
	for _, run := range res.Runs {
		m.HandlerDuration.WithLabelValues(string(run.Tab)).Observe(run.Duration.Seconds())
	}
	if res.Failed != nil {
		m.SaveRuns.WithLabelValues(OutcomeHandlerFailed).Inc()
		return
	}
	m.SaveRuns.WithLabelValues(OutcomeSuccess).Inc()
}
