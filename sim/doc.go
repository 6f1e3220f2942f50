// Package sim provides the Flare conflict-onset prediction engine.
//
// # Reading Guide
//
// Start with these files to understand the engine:
//   - location.go, dataset.go: per-location features and the ordered registry
//   - rules.go, voter.go: literal probability tables and the threshold vote
//   - simulator.go: the window loop that polls voters for unflared locations
//
// # Architecture
//
// A run deep-copies a Dataset, steps through Config.TotalWindows() windows and
// produces a [window][location] Matrix. Evaluate scores the matrix against the
// scenario's ground truth; Expand turns it into the per-day conflict table
// consumed by the displacement simulator. Sub-packages:
//   - sim/scenario/: scenario directory loaders and the conflicts.csv writer
//   - sim/ensemble/: many seeded runs aggregated per location
//   - sim/store/: SQLite history of runs and their scores
//   - sim/trace/: vote and flare decision trace
//
// # Randomness
//
// CastVote is the only place votes consume randomness, and Expand the only
// place onset days do. Both draw from an injected RandomSource; PartitionedRNG
// derives isolated, seeded sources so equal seeds give identical runs.
//
// # Key Interfaces
//   - RandomSource: uniform samples in [0, 1)
//   - Voter: one named rule's ballot on a location in a window
//   - Aggregation: folds ballots into a prediction (any, plurality, majority)
package sim
