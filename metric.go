package tossup

import (
	"time"

	"go.uber.org/zap"
)

const (
	MetricSimulationTrials     = "simulation_trials"
	MetricSimulationTies       = "simulation_ties"
	MetricSimulationDurationMs = "simulation_duration_ms"
)

type MetricsExporter interface {
	Record(time time.Time, name string, value interface{})
}

// LoggingMetricsExporter writes every metric as a debug log entry.
type LoggingMetricsExporter struct {
	logger *zap.SugaredLogger
}

func NewLoggingMetricsExporter(logger *zap.SugaredLogger) *LoggingMetricsExporter {
	return &LoggingMetricsExporter{logger: logger}
}

func (e *LoggingMetricsExporter) Record(time time.Time, name string, value interface{}) {
	e.logger.Debugw("metric", "time", time, "name", name, "value", value)
}
