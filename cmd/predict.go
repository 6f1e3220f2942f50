package cmd

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/jataware/flee-modeling/sim"
	"github.com/jataware/flee-modeling/sim/scenario"
	"github.com/jataware/flee-modeling/sim/store"
	"github.com/jataware/flee-modeling/sim/trace"
)

// loadScenario resolves the run length and window size, then loads dir.
// Days default to the scenario's conflict period and the window size to
// gcd(days, days/20).
func loadScenario(dir string, cfg RunConfig) (*scenario.Scenario, sim.Config, error) {
	days := cfg.Days
	if days == 0 {
		period, err := scenario.LoadScenarioPeriod(dir)
		if err != nil {
			return nil, sim.Config{}, err
		}
		if period == nil {
			return nil, sim.Config{}, fmt.Errorf("no --days given and %s has no %s", dir, scenario.PeriodFile)
		}
		days = period.Length
	}
	window := cfg.WindowSize
	if window == 0 {
		window = sim.DefaultWindowSize(days)
	}

	s, err := scenario.Load(dir, window)
	if err != nil {
		return nil, sim.Config{}, err
	}
	simCfg := sim.Config{
		SimulationDays: days,
		WindowSize:     window,
		Voters:         cfg.Voters,
		Aggregation:    sim.Aggregation(cfg.Aggregation),
		SkipInvalid:    cfg.SkipInvalid,
		TraceLevel:     trace.TraceLevel(cfg.Trace),
	}
	if err := simCfg.Validate(); err != nil {
		return nil, sim.Config{}, err
	}
	return s, simCfg, nil
}

// runPredict performs one seeded prediction of the scenario in dir, prints
// its evaluation to w, writes the day-level conflict schedule and, when a
// history database is configured, records the run.
func runPredict(ctx context.Context, dir string, cfg RunConfig, w io.Writer) error {
	s, simCfg, err := loadScenario(dir, cfg)
	if err != nil {
		return err
	}
	logrus.Infof("Starting prediction of %s with seed=%d, days=%d, window=%d, voters=%v, aggregation=%s",
		s.Name, cfg.Seed, simCfg.SimulationDays, simCfg.WindowSize, simCfg.Voters, simCfg.Aggregation)

	startTime := time.Now()
	rng := sim.NewPartitionedRNG(sim.NewSimulationKey(cfg.Seed))
	simulator, err := sim.NewSimulator(s.Dataset, simCfg, rng.ForSubsystem(sim.SubsystemVoting))
	if err != nil {
		return err
	}
	result := simulator.Run()
	for _, sk := range result.Skipped {
		fmt.Fprintf(w, "skipped %s: %v\n", sk.Name, sk.Err)
	}

	report := sim.Evaluate(result)
	report.Print(w)
	if result.Trace != nil {
		printTraceSummary(w, trace.Summarize(result.Trace))
	}

	days, err := sim.Expand(result.Predictions, simCfg.WindowSize, rng.ForSubsystem(sim.SubsystemExpansion))
	if err != nil {
		return err
	}
	output := cfg.Output
	if output == "" {
		output = scenario.ConflictsPath(dir)
	}
	if err := scenario.WriteConflictsFile(output, result.Names, days); err != nil {
		return err
	}
	fmt.Fprintf(w, "Wrote %d days x %d locations to %s\n", days.Rows(), len(result.Names), output)

	if cfg.DB != "" {
		run, predictions := store.FromResult(store.RunParams{Scenario: s.Name, Seed: cfg.Seed, Config: simCfg}, result, report)
		if err := recordRun(ctx, cfg.DB, run, predictions); err != nil {
			return err
		}
	}
	logrus.Infof("Prediction complete in %v.", time.Since(startTime))
	return nil
}

func recordRun(ctx context.Context, path string, run store.Run, predictions []store.Prediction) error {
	db, err := store.Open(path)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()
	id, err := db.RecordRun(ctx, run, predictions)
	if err != nil {
		return err
	}
	logrus.Infof("Recorded run %d in %s", id, path)
	return nil
}

func printTraceSummary(w io.Writer, ts *trace.TraceSummary) {
	fmt.Fprintln(w, "=== Decision Trace ===")
	fmt.Fprintf(w, "Ballots cast         : %d\n", ts.TotalVotes)
	fmt.Fprintf(w, "Ballots drawn        : %d\n", ts.DrawnVotes)
	fmt.Fprintf(w, "Flare ballots        : %d\n", ts.FlareVotes)
	fmt.Fprintf(w, "Pre-flared locations : %d\n", ts.PreFlared)
	for _, name := range sortedKeys(ts.VotesByVoter) {
		fmt.Fprintf(w, "  %-22s %d ballots\n", name, ts.VotesByVoter[name])
	}
}
