package tossup

import (
	"context"
	"sort"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/sync/errgroup"
)

// StochasticElection runs a single trial: the distributor picks a winner for
// every region of the model and the picks are tallied into a fresh ledger
// seeded with bias.
func StochasticElection(model *ElectionModel, distributor Distributor, bias map[*Party]int) *VoteLedger {
	choices := make([]*Party, len(model.regions))
	for i, region := range model.regions {
		choices[i] = distributor.Choose(region)
	}
	ledger := NewVoteLedger(bias)
	// choices is built from the model's own regions, so the lengths always match.
	Must1(model.TallyVotes(choices, ledger))
	return ledger
}

type PartyResult struct {
	ID      PartyID `json:"id"`
	Name    string  `json:"name"`
	Wins    int     `json:"wins"`
	WinRate float64 `json:"win_rate"`
}

// MarginSummary describes Votes(Party) - Votes(Opponent) across all trials.
type MarginSummary struct {
	Party    string  `json:"party"`
	Opponent string  `json:"opponent"`
	Mean     float64 `json:"mean"`
	Min      int     `json:"min"`
	Max      int     `json:"max"`
}

type Summary struct {
	Trials   int            `json:"trials"`
	Ties     int            `json:"ties"`
	TieRate  float64        `json:"tie_rate"`
	Results  []PartyResult  `json:"results"`
	Margin   *MarginSummary `json:"margin,omitempty"`
	Duration time.Duration  `json:"duration"`
}

// Result returns the entry of the party with the given ID.
func (s *Summary) Result(id PartyID) (PartyResult, bool) {
	for _, r := range s.Results {
		if r.ID == id {
			return r, true
		}
	}
	return PartyResult{}, false
}

func (s *Summary) MarshalLogObject(e zapcore.ObjectEncoder) error {
	e.AddInt("trials", s.Trials)
	e.AddInt("ties", s.Ties)
	for _, r := range s.Results {
		e.AddFloat64(r.Name, r.WinRate)
	}
	if s.Margin != nil {
		e.AddFloat64("mean_margin", s.Margin.Mean)
	}
	e.AddDuration("duration", s.Duration)
	return nil
}

// trialTally is owned by exactly one worker until the run completes.
type trialTally struct {
	wins    map[PartyID]int
	winners map[PartyID]*Party
	ties    int
	margin  marginStats
}

func newTrialTally() *trialTally {
	return &trialTally{wins: map[PartyID]int{}, winners: map[PartyID]*Party{}}
}

func (t *trialTally) record(ledger *VoteLedger, parties []*Party) {
	if winner, ok := ledger.Winner(); ok {
		t.wins[winner.id]++
		t.winners[winner.id] = winner
	} else {
		t.ties++
	}
	if len(parties) >= 2 {
		t.margin.Push(ledger.DiffParty(parties[0], parties[1]))
	}
}

// Simulator estimates win probabilities by running many independent trials of
// an election.
type Simulator struct {
	election *Election
	factory  DistributorFactory
	opts     *simulatorOptions
	logger   *zap.SugaredLogger
}

func NewSimulator(election *Election, factory DistributorFactory, opts ...SimulatorOption) *Simulator {
	s := &Simulator{
		election: election,
		factory:  factory,
		opts:     applySimulatorOpts(opts...),
	}
	if s.opts.logger != nil {
		s.logger = s.opts.logger
	} else {
		s.logger = NewLogger(s.opts.logLevel)
	}
	return s
}

func (s *Simulator) Election() *Election {
	return s.election
}

// Run executes trials split across the configured workers. Each worker builds
// its own distributor seeded with seed+workerIndex. Run returns the context's
// error if it is cancelled before all trials finish.
func (s *Simulator) Run(ctx context.Context, trials int) (*Summary, error) {
	if trials <= 0 {
		return nil, ErrNoTrials
	}
	workers := s.opts.workers
	if workers > trials {
		workers = trials
	}

	s.logger.Infow("simulation started", logFields(s, "trials", trials)...)
	start := time.Now()

	tallies := make([]*trialTally, workers)
	group, ctx := errgroup.WithContext(ctx)
	for i := 0; i < workers; i++ {
		n := trials / workers
		if i < trials%workers {
			n++
		}
		tally := newTrialTally()
		tallies[i] = tally
		distributor := s.factory(s.opts.seed + int64(i))
		group.Go(func() error {
			return s.runWorker(ctx, distributor, n, tally)
		})
	}
	if err := group.Wait(); err != nil {
		s.logger.Warnw("simulation aborted", logFields(s, zap.Error(err))...)
		return nil, err
	}

	summary := s.summarize(trials, tallies, time.Since(start))
	s.logger.Infow("simulation finished", logFields(s, zap.Object("summary", summary))...)

	if exporter := s.opts.metricsExporter; exporter != nil {
		now := time.Now()
		exporter.Record(now, MetricSimulationTrials, summary.Trials)
		exporter.Record(now, MetricSimulationTies, summary.Ties)
		exporter.Record(now, MetricSimulationDurationMs, summary.Duration.Milliseconds())
	}
	return summary, nil
}

func (s *Simulator) runWorker(ctx context.Context, distributor Distributor, trials int, tally *trialTally) error {
	for i := 0; i < trials; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		ledger := StochasticElection(s.election.Model, distributor, s.election.Bias)
		tally.record(ledger, s.election.Parties)
	}
	return nil
}

func (s *Simulator) summarize(trials int, tallies []*trialTally, elapsed time.Duration) *Summary {
	wins := map[PartyID]int{}
	winners := map[PartyID]*Party{}
	var margin marginStats
	summary := &Summary{Trials: trials, Duration: elapsed}
	for _, t := range tallies {
		for id, n := range t.wins {
			wins[id] += n
			winners[id] = t.winners[id]
		}
		summary.Ties += t.ties
		margin.Merge(t.margin)
	}
	summary.TieRate = float64(summary.Ties) / float64(trials)

	listed := map[PartyID]struct{}{}
	for _, p := range s.election.Parties {
		listed[p.id] = struct{}{}
		summary.Results = append(summary.Results, PartyResult{
			ID:      p.id,
			Name:    p.name,
			Wins:    wins[p.id],
			WinRate: float64(wins[p.id]) / float64(trials),
		})
	}
	// A distributor may hand regions to a party outside the display list.
	// Those are appended in ID order.
	var extra []PartyResult
	for id, p := range winners {
		if _, ok := listed[id]; ok {
			continue
		}
		extra = append(extra, PartyResult{
			ID:      id,
			Name:    p.name,
			Wins:    wins[id],
			WinRate: float64(wins[id]) / float64(trials),
		})
	}
	sort.Slice(extra, func(i, j int) bool { return extra[i].ID < extra[j].ID })
	summary.Results = append(summary.Results, extra...)

	if parties := s.election.Parties; len(parties) >= 2 {
		summary.Margin = &MarginSummary{
			Party:    parties[0].name,
			Opponent: parties[1].name,
			Mean:     margin.Avg(),
			Min:      margin.Min(),
			Max:      margin.Max(),
		}
	}
	return summary
}

// SimulationRun is a Run executing in the background.
type SimulationRun struct {
	ctl    *asyncCtl
	future Future[*Summary]
}

// Start launches Run in a new goroutine. Cancelling parent or calling Cancel
// stops the run between trials.
func (s *Simulator) Start(parent context.Context, trials int) *SimulationRun {
	run := &SimulationRun{ctl: newAsyncCtl(parent), future: newFuture[*Summary]()}
	go func() {
		defer run.ctl.Release()
		run.future.setResult(s.Run(run.ctl.Context(), trials))
	}()
	return run
}

func (r *SimulationRun) Cancel() {
	r.ctl.Cancel()
}

// Done is closed once the run has stopped and its result is available.
func (r *SimulationRun) Done() <-chan struct{} {
	return r.ctl.WaitRelease()
}

// Result blocks until the run stops.
func (r *SimulationRun) Result() (*Summary, error) {
	return r.future.Result()
}
