package sim

import (
	"fmt"

	"github.com/jataware/flee-modeling/sim/trace"
)

// Config groups the explicit parameters of one prediction run.
type Config struct {
	SimulationDays int         // days covered by the conflict schedule
	WindowSize     int         // days per prediction window (must be > 0)
	Voters         []string    // voter names polled each window; empty = DefaultVoters()
	Aggregation    Aggregation // "" = AggregateAny
	// SkipInvalid drops locations that fail validation instead of failing the
	// run. Dropped locations are listed in Result.Skipped.
	SkipInvalid bool
	TraceLevel  trace.TraceLevel
}

// NewConfig creates a Config with the default voters and aggregation.
func NewConfig(simulationDays, windowSize int) Config {
	return Config{
		SimulationDays: simulationDays,
		WindowSize:     windowSize,
		Voters:         DefaultVoters(),
		Aggregation:    AggregateAny,
		TraceLevel:     trace.TraceLevelNone,
	}
}

// TotalWindows is SimulationDays / WindowSize, floor-divided.
func (c Config) TotalWindows() int {
	if c.WindowSize <= 0 {
		return 0
	}
	return c.SimulationDays / c.WindowSize
}

// voterNames returns the configured voters or the defaults.
func (c Config) voterNames() []string {
	if len(c.Voters) == 0 {
		return DefaultVoters()
	}
	return c.Voters
}

// Validate checks names and parameter ranges.
func (c Config) Validate() error {
	if c.SimulationDays <= 0 {
		return fmt.Errorf("simulation days must be positive, got %d", c.SimulationDays)
	}
	if c.WindowSize <= 0 {
		return fmt.Errorf("window size must be positive, got %d", c.WindowSize)
	}
	if c.WindowSize > c.SimulationDays {
		return fmt.Errorf("window size %d exceeds simulation days %d", c.WindowSize, c.SimulationDays)
	}
	for _, name := range c.Voters {
		if !IsValidVoter(name) {
			return fmt.Errorf("unknown voter %q", name)
		}
	}
	if !IsValidAggregation(string(c.Aggregation)) {
		return fmt.Errorf("unknown aggregation %q", c.Aggregation)
	}
	if !trace.IsValidTraceLevel(string(c.TraceLevel)) {
		return fmt.Errorf("unknown trace level %q", c.TraceLevel)
	}
	return nil
}

// DefaultWindowSize derives a window size from the simulation length as
// gcd(days, days/20), which yields about twenty windows for long runs and a
// single window for runs shorter than twenty days.
func DefaultWindowSize(days int) int {
	a, b := days, days/20
	for b != 0 {
		a, b = b, a%b
	}
	return a
}
