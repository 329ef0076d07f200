package sim

import (
	"github.com/prometheus/client_golang/prometheus"

	"rescueops-sim/internal/telemetry"
)

// Metrics holds the per-mission Prometheus collectors on a private registry so
// parallel runs never share counters.
type Metrics struct {
	registry        *prometheus.Registry
	PointsTotal     *prometheus.CounterVec
	InferenceErrors prometheus.Counter
	PriorityScore   prometheus.Histogram
	BatteryPct      prometheus.Gauge
	VictimsDetected prometheus.Counter
}

// NewMetrics creates and registers the mission collectors. missionID and
// scenario become constant labels.
func NewMetrics(missionID, scenario string) *Metrics {
	registry := prometheus.NewRegistry()
	labels := prometheus.Labels{"mission_id": missionID, "scenario": scenario}

	pointsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name:        "rescue_points_total",
			Help:        "Fused points by logistics command",
			ConstLabels: labels,
		},
		[]string{"command"},
	)

	inferenceErrors := prometheus.NewCounter(prometheus.CounterOpts{
		Name:        "rescue_inference_errors_total",
		Help:        "Points whose victim inference failed",
		ConstLabels: labels,
	})

	priorityScore := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:        "rescue_priority_score",
		Help:        "Distribution of composite rescue priority scores",
		ConstLabels: labels,
		Buckets:     []float64{25, 50, 100, 150, 200, 250, 300, 400, 600},
	})

	batteryPct := prometheus.NewGauge(prometheus.GaugeOpts{
		Name:        "rescue_battery_pct",
		Help:        "Battery percentage at the last fused point",
		ConstLabels: labels,
	})

	victimsDetected := prometheus.NewCounter(prometheus.CounterOpts{
		Name:        "rescue_victims_detected_total",
		Help:        "Points where the classifier reported a victim",
		ConstLabels: labels,
	})

	registry.MustRegister(pointsTotal, inferenceErrors, priorityScore, batteryPct, victimsDetected)

	return &Metrics{
		registry:        registry,
		PointsTotal:     pointsTotal,
		InferenceErrors: inferenceErrors,
		PriorityScore:   priorityScore,
		BatteryPct:      batteryPct,
		VictimsDetected: victimsDetected,
	}
}

// Registry returns the Prometheus registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Observe records one fused point.
func (m *Metrics) Observe(fp telemetry.FusedPoint) {
	m.PointsTotal.WithLabelValues(string(fp.Command)).Inc()
	m.BatteryPct.Set(fp.BatteryPct)
	if fp.Gap {
		return
	}
	m.PriorityScore.Observe(float64(fp.PriorityScore))
	if fp.VictimDetected {
		m.VictimsDetected.Inc()
	}
}

// WriteTextfile writes the registry in the node-exporter textfile format.
func (m *Metrics) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.registry)
}
