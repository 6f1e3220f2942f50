// Package ensemble runs independently seeded predictions of one scenario and
// summarises how often, and how early, each location flares.
package ensemble

import (
	"context"
	"fmt"
	"math"
	"runtime"
	"sort"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/jataware/flee-modeling/sim"
)

// Options sizes an ensemble.
type Options struct {
	Members     int // number of independent runs (must be > 0)
	Concurrency int // runs in flight at once; <= 0 uses GOMAXPROCS
}

// Member is one finished run of the ensemble.
type Member struct {
	Index  int
	Key    sim.SimulationKey
	Result *sim.Result
	Report *sim.Report
}

// LocationSummary aggregates one location across members. The window
// statistics cover only the members in which the location flared; they are
// NoWindow (or NaN) when it never did.
type LocationSummary struct {
	Name          string
	GroundTruth   int // ground-truth flare window, sim.NoFlare if none
	Flared        int // members in which the location flared
	FlareFraction float64
	MinWindow     int
	MaxWindow     int
	MedianWindow  float64
	MeanWindow    float64
}

// NoWindow marks window statistics of a location that never flared.
const NoWindow = -1

// Summary is the aggregated outcome of an ensemble.
type Summary struct {
	Members   []Member
	Locations []LocationSummary

	MeanPrecision float64
	MeanRecall    float64
	MeanMCC       float64
}

// Run executes opts.Members predictions of ds under cfg. Member i votes from
// a generator seeded with rng.MemberKey(i), so a summary depends only on the
// master key and never on scheduling. The first failing member cancels the
// rest.
func Run(ctx context.Context, ds *sim.Dataset, cfg sim.Config, rng *sim.PartitionedRNG, opts Options) (*Summary, error) {
	if opts.Members <= 0 {
		return nil, fmt.Errorf("ensemble needs at least one member, got %d", opts.Members)
	}
	limit := opts.Concurrency
	if limit <= 0 {
		limit = runtime.GOMAXPROCS(0)
	}

	members := make([]Member, opts.Members)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i := range members {
		i := i
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			key := rng.MemberKey(i)
			s, err := sim.NewSimulator(ds, cfg, sim.NewPartitionedRNG(key).ForSubsystem(sim.SubsystemVoting))
			if err != nil {
				return fmt.Errorf("member %d: %w", i, err)
			}
			r := s.Run()
			members[i] = Member{Index: i, Key: key, Result: r, Report: sim.Evaluate(r)}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	logrus.Infof("Ensemble finished: %d members, concurrency %d", len(members), limit)
	return summarize(members), nil
}

func summarize(members []Member) *Summary {
	s := &Summary{Members: members}

	precision := make([]float64, len(members))
	recall := make([]float64, len(members))
	mcc := make([]float64, len(members))
	for i, m := range members {
		precision[i] = m.Report.Precision
		recall[i] = m.Report.Recall
		mcc[i] = m.Report.MCC
	}
	s.MeanPrecision = stat.Mean(precision, nil)
	s.MeanRecall = stat.Mean(recall, nil)
	s.MeanMCC = stat.Mean(mcc, nil)

	// Every member simulates the same locations in the same order.
	first := members[0].Result
	for col, name := range first.Names {
		var windows []float64
		for _, m := range members {
			if w := m.Result.Predictions.FirstFlare(col); w >= 0 {
				windows = append(windows, float64(w))
			}
		}
		s.Locations = append(s.Locations, summarizeLocation(name, first.Dataset.Get(name).FlareWindow, windows, len(members)))
	}
	return s
}

func summarizeLocation(name string, truth int, windows []float64, members int) LocationSummary {
	ls := LocationSummary{
		Name:          name,
		GroundTruth:   truth,
		Flared:        len(windows),
		FlareFraction: float64(len(windows)) / float64(members),
		MinWindow:     NoWindow,
		MaxWindow:     NoWindow,
		MedianWindow:  math.NaN(),
		MeanWindow:    math.NaN(),
	}
	if len(windows) == 0 {
		return ls
	}
	sort.Float64s(windows)
	ls.MinWindow = int(floats.Min(windows))
	ls.MaxWindow = int(floats.Max(windows))
	ls.MedianWindow = median(windows)
	ls.MeanWindow = stat.Mean(windows, nil)
	return ls
}

// median of sorted values; an even count averages the two middle values.
func median(sorted []float64) float64 {
	n := len(sorted)
	if n%2 == 1 {
		return stat.Quantile(0.5, stat.Empirical, sorted, nil)
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}
