package metrics

import (
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// ReportObserver exporta a Prometheus la telemetria de generacion de reportes.
type ReportObserver struct {
	generationDuration  *prometheus.HistogramVec
	narrativeDegraded   *prometheus.CounterVec
	persistenceDegraded prometheus.Counter
	cacheLookups        *prometheus.CounterVec
}

// NewReportObserver registra las metricas en reg (DefaultRegisterer si es nil).
func NewReportObserver(namespace string, reg prometheus.Registerer) (*ReportObserver, error) {
	if namespace == "" {
		namespace = "reading_persona"
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	o := &ReportObserver{
		generationDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "report_generation_duration_seconds",
			Help:      "Latency of report generation by outcome.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"outcome"}),
		narrativeDegraded: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "narrative_degraded_total",
			Help:      "Reports built with fallback narrative text.",
		}, []string{"reason"}),
		persistenceDegraded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "report_persistence_degraded_total",
			Help:      "Reports returned without being persisted.",
		}),
		cacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "report_cache_lookups_total",
			Help:      "Report cache lookups by result.",
		}, []string{"result"}),
	}

	o.generationDuration = register(reg, o.generationDuration)
	o.narrativeDegraded = register(reg, o.narrativeDegraded)
	o.persistenceDegraded = register(reg, o.persistenceDegraded)
	o.cacheLookups = register(reg, o.cacheLookups)
	if o.generationDuration == nil || o.narrativeDegraded == nil || o.persistenceDegraded == nil || o.cacheLookups == nil {
		return nil, fmt.Errorf("register report metrics: conflicting collector")
	}
	return o, nil
}

// register reutiliza el collector existente si ya estaba registrado (tests, reinicios en caliente).
func register[C prometheus.Collector](reg prometheus.Registerer, c C) C {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing
			}
		}
		var zero C
		return zero
	}
	return c
}

func (o *ReportObserver) ObserveGeneration(d time.Duration, outcome string) {
	if o == nil {
		return
	}
	o.generationDuration.WithLabelValues(outcome).Observe(d.Seconds())
}

func (o *ReportObserver) NarrativeDegraded(reason string) {
	if o == nil {
		return
	}
	o.narrativeDegraded.WithLabelValues(reason).Inc()
}

func (o *ReportObserver) PersistenceDegraded() {
	if o == nil {
		return
	}
	o.persistenceDegraded.Inc()
}

// CacheLookup cuenta aciertos y fallos del cache de reportes.
func (o *ReportObserver) CacheLookup(hit bool) {
	if o == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	o.cacheLookups.WithLabelValues(result).Inc()
}
