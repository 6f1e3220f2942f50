package store

import (
	"strings"

	"github.com/jataware/flee-modeling/sim"
	"github.com/jataware/flee-modeling/sim/ensemble"
)

// RunParams identifies what was run.
type RunParams struct {
	Scenario string
	Seed     int64
	Config   sim.Config
}

func (p RunParams) run() Run {
	aggregation := p.Config.Aggregation
	if aggregation == "" {
		aggregation = sim.AggregateAny
	}
	voters := p.Config.Voters
	if len(voters) == 0 {
		voters = sim.DefaultVoters()
	}
	return Run{
		Scenario:    p.Scenario,
		Seed:        p.Seed,
		Days:        p.Config.SimulationDays,
		WindowSize:  p.Config.WindowSize,
		Aggregation: string(aggregation),
		Voters:      strings.Join(voters, ","),
		Members:     1,
	}
}

// FromResult builds the history row and predictions of a single run.
func FromResult(p RunParams, r *sim.Result, rep *sim.Report) (Run, []Prediction) {
	run := p.run()
	run.TruePositives = rep.TruePositives
	run.FalsePositives = rep.FalsePositives
	run.TrueNegatives = rep.TrueNegatives
	run.FalseNegatives = rep.FalseNegatives
	run.WindowErrors = rep.WindowErrors
	run.Precision = rep.Precision
	run.Recall = rep.Recall
	run.MCC = rep.MCC
	run.WindowErrorRate = rep.WindowErrorRate

	predictions := make([]Prediction, len(r.Names))
	for col, name := range r.Names {
		predictions[col] = Prediction{
			Location:    name,
			FirstWindow: r.Predictions.FirstFlare(col),
			GroundTruth: r.Dataset.Get(name).FlareWindow,
		}
	}
	return run, predictions
}

// FromEnsemble builds the history row of an ensemble. Scores are member
// means; each location's prediction is its minimum first-flare window.
func FromEnsemble(p RunParams, s *ensemble.Summary) (Run, []Prediction) {
	run := p.run()
	run.Members = len(s.Members)
	run.Precision = s.MeanPrecision
	run.Recall = s.MeanRecall
	run.MCC = s.MeanMCC

	predictions := make([]Prediction, len(s.Locations))
	for i, l := range s.Locations {
		predictions[i] = Prediction{Location: l.Name, FirstWindow: l.MinWindow, GroundTruth: l.GroundTruth}
	}
	return run, predictions
}
