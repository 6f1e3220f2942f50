// sim/simulator.go
package sim

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/jataware/flee-modeling/sim/trace"
)

// SkippedLocation is a location dropped from a run in skip mode.
type SkippedLocation struct {
	Name string
	Err  error
}

// Result is the finalized output of one prediction run.
type Result struct {
	Names       []string // column order of Predictions
	Predictions Matrix   // [window][location], 1 once a location has flared
	WindowSize  int
	Skipped     []SkippedLocation
	// Dataset is the run's working copy with final IsFlared flags. It holds
	// only the locations that were simulated.
	Dataset *Dataset
	Trace   *trace.PredictionTrace // nil unless tracing was enabled
}

// Simulator drives the window loop over its own copy of a Dataset.
// A Simulator runs once; create a new one per run.
type Simulator struct {
	Config  Config
	Dataset *Dataset
	Voters  []Voter
	Window  int

	predictions Matrix
	skipped     []SkippedLocation
	trace       *trace.PredictionTrace
	done        bool
}

// NewSimulator validates cfg, deep-copies ds and initialises every location's
// IsFlared flag from its ground-truth window. Votes draw from src.
//
// In strict mode (the default) the first invalid location fails construction
// with a *ValidationError. With cfg.SkipInvalid, invalid locations are dropped
// and reported in Result.Skipped. A link to an unknown location is always a
// *ConfigError.
func NewSimulator(ds *Dataset, cfg Config, src RandomSource) (*Simulator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if ds == nil || ds.Len() == 0 {
		return nil, &ConfigError{Reason: "dataset has no locations"}
	}
	if src == nil {
		return nil, fmt.Errorf("nil random source")
	}
	if err := ds.Validate(); err != nil {
		return nil, err
	}

	working := NewDataset()
	var skipped []SkippedLocation
	for _, loc := range ds.Clone().Locations() {
		if err := loc.Validate(); err != nil {
			if !cfg.SkipInvalid {
				return nil, err
			}
			logrus.Warnf("skipping location %q: %v", loc.Name, err)
			skipped = append(skipped, SkippedLocation{Name: loc.Name, Err: err})
			continue
		}
		loc.IsFlared = loc.FlareWindow == 0
		if err := working.Add(loc); err != nil {
			return nil, err
		}
	}
	if working.Len() == 0 {
		return nil, &ConfigError{Reason: "every location failed validation"}
	}

	voters := make([]Voter, 0, len(cfg.voterNames()))
	for _, name := range cfg.voterNames() {
		voters = append(voters, NewVoter(name, src))
	}

	s := &Simulator{
		Config:      cfg,
		Dataset:     working,
		Voters:      voters,
		predictions: make(Matrix, 0, cfg.TotalWindows()),
		skipped:     skipped,
	}
	if cfg.TraceLevel == trace.TraceLevelVotes {
		s.trace = trace.NewPredictionTrace(cfg.TraceLevel)
		for _, loc := range working.Locations() {
			if loc.IsFlared {
				s.trace.RecordFlare(trace.FlareRecord{Window: 0, Location: loc.Name, PreFlared: true})
			}
		}
	}
	return s, nil
}

// Step advances one window and returns that window's prediction row.
func (s *Simulator) Step() []int {
	row := make([]int, 0, s.Dataset.Len())
	flared := 0
	for _, loc := range s.Dataset.Locations() {
		if !loc.IsFlared && s.predict(loc) {
			loc.IsFlared = true
			flared++
			if s.trace != nil {
				s.trace.RecordFlare(trace.FlareRecord{Window: s.Window, Location: loc.Name})
			}
		}
		if loc.IsFlared {
			row = append(row, 1)
		} else {
			row = append(row, 0)
		}
	}
	logrus.Debugf("[window %03d] %d new flares", s.Window, flared)
	s.predictions = append(s.predictions, row)
	s.Window++
	return row
}

// predict polls every voter in order and aggregates their ballots.
func (s *Simulator) predict(loc *Location) bool {
	ballots := make([]Ballot, len(s.Voters))
	for i, v := range s.Voters {
		ballots[i] = v.Vote(s.Dataset, loc, s.Window)
		if s.trace != nil {
			s.trace.RecordVote(trace.VoteRecord{
				Window:      s.Window,
				Location:    loc.Name,
				Voter:       v.Name(),
				Probability: ballots[i].Probability,
				Drawn:       ballots[i].Drawn,
				Flare:       ballots[i].Flare,
			})
		}
	}
	return s.Config.Aggregation.Decide(ballots)
}

// Run steps through every window and returns the finalized result.
// Calling Run twice panics; the working dataset has already been mutated.
func (s *Simulator) Run() *Result {
	if s.done {
		panic("simulator already ran")
	}
	total := s.Config.TotalWindows()
	logrus.Infof("Predicting %d locations over %d windows of %d days", s.Dataset.Len(), total, s.Config.WindowSize)
	for s.Window < total {
		s.Step()
	}
	s.done = true
	logrus.Infof("[window %03d] Prediction ended", s.Window)
	return &Result{
		Names:       s.Dataset.Names(),
		Predictions: s.predictions,
		WindowSize:  s.Config.WindowSize,
		Skipped:     s.skipped,
		Dataset:     s.Dataset,
		Trace:       s.trace,
	}
}
