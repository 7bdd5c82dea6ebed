package tossup

import (
	"runtime"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type simulatorOptions struct {
	workers         int
	seed            int64
	logLevel        zapcore.Level
	logger          *zap.SugaredLogger
	metricsExporter MetricsExporter
}

type SimulatorOption func(options *simulatorOptions)

func defaultSimulatorOptions() *simulatorOptions {
	return &simulatorOptions{
		workers:         runtime.NumCPU(),
		seed:            time.Now().UnixNano(),
		logLevel:        zap.InfoLevel,
		logger:          nil,
		metricsExporter: nil,
	}
}

func applySimulatorOpts(opts ...SimulatorOption) *simulatorOptions {
	options := defaultSimulatorOptions()
	for _, opt := range opts {
		opt(options)
	}
	if options.workers <= 0 {
		options.workers = 1
	}
	return options
}

// WorkersOption sets how many goroutines share the trials of a run.
func WorkersOption(workers int) SimulatorOption {
	return func(options *simulatorOptions) {
		options.workers = workers
	}
}

// SeedOption fixes the base seed. Runs with the same seed and worker count
// produce the same summary.
func SeedOption(seed int64) SimulatorOption {
	return func(options *simulatorOptions) {
		options.seed = seed
	}
}

func LogLevelOption(level zapcore.Level) SimulatorOption {
	return func(options *simulatorOptions) {
		options.logLevel = level
	}
}

// LoggerOption replaces the console logger built from the log level.
func LoggerOption(logger *zap.SugaredLogger) SimulatorOption {
	return func(options *simulatorOptions) {
		options.logger = logger
	}
}

func MetricsExporterOption(exporter MetricsExporter) SimulatorOption {
	return func(options *simulatorOptions) {
		options.metricsExporter = exporter
	}
}
