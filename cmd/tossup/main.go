package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"net"
	"os"
	"text/tabwriter"
	"time"

	"github.com/sumimakito/tossup"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var logLevels = map[string]zapcore.Level{
	"debug":  zap.DebugLevel,
	"info":   zap.InfoLevel,
	"warn":   zap.WarnLevel,
	"error":  zap.ErrorLevel,
	"dpanic": zap.DPanicLevel,
	"panic":  zap.PanicLevel,
	"fatal":  zap.FatalLevel,
}

type options struct {
	scenario string
	trials   int
	workers  int
	seed     int64
	db       string
	api      string
	logLevel string

	fixed   string
	favored string
	other   string
	mean    float64
	stdDev  float64
	bias    float64
	width   float64
}

func (o *options) register(fs *flag.FlagSet) {
	fs.StringVar(&o.scenario, "scenario", "",
		"Path to a YAML scenario file. The built-in tossup states are used when empty.")
	fs.IntVar(&o.trials, "trials", 10000, "Number of simulated elections.")
	fs.IntVar(&o.workers, "workers", 0, "Number of simulation workers (default: number of CPUs).")
	fs.Int64Var(&o.seed, "seed", 0, "Base random seed (default: current time).")
	fs.StringVar(&o.db, "db", "", "Path to a bbolt file that simulation results are stored in.")
	fs.StringVar(&o.api, "api", "", "Address for the API server to listen on. Runs the server instead of a single simulation.")
	fs.StringVar(&o.logLevel, "log", "info",
		"Logging level (available: debug, info, warn, error, dpanic, panic, fatal).")
	fs.StringVar(&o.fixed, "fixed", "", "Award every tossup to this party.")
	fs.StringVar(&o.favored, "favored", "", "Party that wins a tossup when the sample is positive.")
	fs.StringVar(&o.other, "other", "", "Party that wins a tossup otherwise.")
	fs.Float64Var(&o.mean, "mean", 0, "Mean of the sampling distribution.")
	fs.Float64Var(&o.stdDev, "stddev", 1, "Standard deviation of the sampling distribution.")
	fs.Float64Var(&o.bias, "bias", 0, "Center of the sampling distribution when -range is used.")
	fs.Float64Var(&o.width, "range", 0, "Width holding ~95% of samples around -bias (stddev = range/4).")
}

// distribution overlays the distribution flags that were set on the command
// line onto base. -fixed drops the gaussian settings of base and any gaussian
// flag drops its fixed party.
func (o *options) distribution(fs *flag.FlagSet, base tossup.DistributionSpec) tossup.DistributionSpec {
	d := base
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "fixed":
			d = tossup.DistributionSpec{Fixed: d.Fixed}
		case "favored", "other", "mean", "stddev", "bias", "range":
			d.Fixed = ""
		}
	})
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "fixed":
			d.Fixed = o.fixed
		case "favored":
			d.Favored = o.favored
		case "other":
			d.Other = o.other
		case "mean":
			d.Mean, d.Bias, d.Range = tossup.Ptr(o.mean), nil, nil
		case "stddev":
			d.StdDev, d.Bias, d.Range = tossup.Ptr(o.stdDev), nil, nil
		case "bias":
			d.Bias, d.Mean, d.StdDev = tossup.Ptr(o.bias), nil, nil
		case "range":
			d.Range, d.Mean, d.StdDev = tossup.Ptr(o.width), nil, nil
		}
	})
	return d
}

func main() {
	workDir, err := os.Getwd()
	if err != nil {
		log.Panic(err)
	}

	var o options
	fs := flag.CommandLine
	o.register(fs)
	fs.Usage = func() {
		fmt.Printf("Usage: %s [OPTIONS]\n", os.Args[0])
		fmt.Println()
		fmt.Println("Options:")
		fs.PrintDefaults()
	}
	flag.Parse()

	logLevel, ok := logLevels[o.logLevel]
	if !ok {
		log.Panicf("unknown log level: %s", o.logLevel)
	}
	logger := tossup.NewLogger(logLevel)
	defer logger.Sync()

	election := tossup.DefaultElection()
	var base tossup.DistributionSpec
	if o.scenario != "" {
		scenario, err := tossup.LoadScenario(tossup.PathJoin(workDir, o.scenario))
		if err != nil {
			logger.Fatalw("failed to load scenario", "path", o.scenario, zap.Error(err))
		}
		built, _, err := scenario.Build()
		if err != nil {
			logger.Fatalw("failed to build scenario", "path", o.scenario, zap.Error(err))
		}
		election, base = built, scenario.Distribution
	}
	distribution := o.distribution(fs, base)
	factory, err := distribution.Factory(election)
	if err != nil {
		logger.Fatalw("invalid distribution", zap.Error(err))
	}

	var store tossup.ResultStore
	if o.db != "" {
		boltStore, err := tossup.OpenBoltResultStore(tossup.PathJoin(workDir, o.db))
		if err != nil {
			logger.Fatalw("failed to open result store", "path", o.db, zap.Error(err))
		}
		store = boltStore
		defer store.Close()
	}

	simOpts := []tossup.SimulatorOption{
		tossup.LoggerOption(logger),
		tossup.MetricsExporterOption(tossup.NewLoggingMetricsExporter(logger)),
	}
	if o.workers > 0 {
		simOpts = append(simOpts, tossup.WorkersOption(o.workers))
	}
	if o.seed != 0 {
		simOpts = append(simOpts, tossup.SeedOption(o.seed))
	}

	if o.api != "" {
		if store == nil {
			store = tossup.NewMemoryResultStore()
		}
		if err := serveAPI(o.api, election, store, logger, simOpts); err != nil {
			logger.Fatalw("API server failed", zap.Error(err))
		}
		return
	}

	simulator := tossup.NewSimulator(election, factory, simOpts...)
	run := simulator.Start(context.Background(), o.trials)
	select {
	case sig := <-terminalSignalCh():
		logger.Warnw("cancelling simulation", "signal", sig.String())
		run.Cancel()
	case <-run.Done():
	}
	summary, err := run.Result()
	if err != nil {
		logger.Fatalw("simulation failed", zap.Error(err))
	}
	printSummary(os.Stdout, election, summary)

	if store != nil {
		id, err := store.Put(tossup.NewSimulationRecord(simulator, distribution, summary))
		if err != nil {
			logger.Fatalw("failed to store simulation", zap.Error(err))
		}
		logger.Infow("simulation stored", "id", id, "path", o.db)
	}
}

func serveAPI(address string, election *tossup.Election, store tossup.ResultStore,
	logger *zap.SugaredLogger, simOpts []tossup.SimulatorOption) error {
	listener, err := net.Listen("tcp", address)
	if err != nil {
		return err
	}
	server := tossup.NewAPIServer(election, store, logger, simOpts...)
	serveErrCh := make(chan error, 1)
	go func() {
		serveErrCh <- server.Serve(listener)
	}()
	select {
	case err := <-serveErrCh:
		return err
	case sig := <-terminalSignalCh():
		logger.Infow("shutting down API server", "signal", sig.String())
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return server.Shutdown(ctx)
	}
}

func printSummary(out io.Writer, election *tossup.Election, summary *tossup.Summary) {
	model := election.Model
	fmt.Fprintf(out, "Election: %s (%d tossups, %d votes at stake)\n", election.Name, model.Len(), model.TotalWeight())
	fmt.Fprintf(out, "Trials:   %d in %s\n\n", summary.Trials, summary.Duration.Round(time.Millisecond))

	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "PARTY\tWINS\tRATE")
	for _, r := range summary.Results {
		fmt.Fprintf(w, "%s\t%d\t%.2f%%\n", r.Name, r.Wins, r.WinRate*100)
	}
	fmt.Fprintf(w, "(tie)\t%d\t%.2f%%\n", summary.Ties, summary.TieRate*100)
	w.Flush()

	if m := summary.Margin; m != nil {
		fmt.Fprintf(out, "\nMargin %s - %s: mean %.2f, min %d, max %d\n", m.Party, m.Opponent, m.Mean, m.Min, m.Max)
	}
}
