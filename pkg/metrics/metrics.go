package metrics

import (
	"math"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

const (
	Namespace = "src2dw"
)

var (
	TableNumGauge = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: Namespace,
			Name:      "table_num",
			Help:      "number of destination tables",
		})
	RowsUpsertedCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "rows_upserted",
			Help:      "rows upserted per destination table",
		}, []string{"table"})
	RowsDeletedCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "rows_deleted",
			Help:      "rows deleted per destination table",
		}, []string{"table"})
	CheckpointCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "checkpoint_count",
			Help:      "checkpoints persisted per connector",
		}, []string{"table"})
	ErrorCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "error_count",
			Help:      "Total error count during extraction",
		}, []string{"table"})
)

// RegisterTo registers all collectors on the given registry.
func RegisterTo(registry prometheus.Registerer) {
	registry.MustRegister(TableNumGauge)
	registry.MustRegister(RowsUpsertedCounter)
	registry.MustRegister(RowsDeletedCounter)
	registry.MustRegister(CheckpointCounter)
	registry.MustRegister(ErrorCounter)
}

// UnregisterFrom unregisters all collectors from the given registry.
func UnregisterFrom(registry *prometheus.Registry) {
	registry.Unregister(TableNumGauge)
	registry.Unregister(RowsUpsertedCounter)
	registry.Unregister(RowsDeletedCounter)
	registry.Unregister(CheckpointCounter)
	registry.Unregister(ErrorCounter)
}

// ReadCounter reports the current value of the counter for a specific table.
func ReadCounter(counterVec *prometheus.CounterVec, table string) float64 {
	if counterVec == nil {
		return math.NaN()
	}
	counter := counterVec.With(prometheus.Labels{"table": table})
	var metric dto.Metric
	if err := counter.Write(&metric); err != nil {
		return math.NaN()
	}
	return metric.Counter.GetValue()
}

// AddCounter adds a counter for a specific table.
func AddCounter(counterVec *prometheus.CounterVec, v float64, table string) {
	if counterVec == nil {
		return
	}
	counterVec.With(prometheus.Labels{"table": table}).Add(v)
}

// ReadGauge reports the current value of the gauge for a specific table.
func ReadGauge(gaugeVec *prometheus.GaugeVec, table string) float64 {
	if gaugeVec == nil {
		return math.NaN()
	}
	gauge := gaugeVec.With(prometheus.Labels{"table": table})
	var metric dto.Metric
	if err := gauge.Write(&metric); err != nil {
		return math.NaN()
	}
	return metric.Gauge.GetValue()
}

// AddGauge adds a gauge for a specific table.
func AddGauge(gaugeVec *prometheus.GaugeVec, v float64, table string) {
	if gaugeVec == nil {
		return
	}
	gaugeVec.With(prometheus.Labels{"table": table}).Add(v)
}
