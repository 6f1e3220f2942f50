package sim

import (
	"fmt"
	"math"
)

// NoFlare is the ground-truth flare window of a location that never flares.
// Any negative window is read the same way.
const NoFlare = -1

// Link is one adjacency edge from a location to a neighbour.
type Link struct {
	Target string
	Weight float64 // route distance in the source scenario
}

// Location is one simulated geographic unit.
type Location struct {
	Name    string
	Region  string
	Country string

	PCNationalPopulation float64 // % of national population
	PCRegionalPopulation float64 // % of regional population

	Links []Link

	// FlareWindow is ground truth, read only by the evaluator.
	FlareWindow int
	// IsFlared is runtime state; once true it stays true for the rest of a run.
	IsFlared bool

	// Extra holds features for rules that are not wired into the default voters.
	Extra map[string]float64
}

// HasGroundTruthFlare reports whether the location flares in the labelled scenario.
func (l *Location) HasGroundTruthFlare() bool {
	return l.FlareWindow >= 0
}

// Validate checks the numeric features used by the population voters.
// Loaders store missing or non-numeric values as NaN so they surface here.
func (l *Location) Validate() error {
	if l.Name == "" {
		return &ValidationError{Location: l.Name, Field: "name", Reason: "empty"}
	}
	if err := checkFeature(l.Name, "pc_national_population", l.PCNationalPopulation); err != nil {
		return err
	}
	return checkFeature(l.Name, "pc_regional_population", l.PCRegionalPopulation)
}

func checkFeature(location, field string, v float64) error {
	if math.IsNaN(v) {
		return &ValidationError{Location: location, Field: field, Reason: "missing or non-numeric"}
	}
	if math.IsInf(v, 0) {
		return &ValidationError{Location: location, Field: field, Reason: fmt.Sprintf("not finite (%v)", v)}
	}
	return nil
}

func (l *Location) clone() *Location {
	c := *l
	if l.Links != nil {
		c.Links = append([]Link(nil), l.Links...)
	}
	if l.Extra != nil {
		c.Extra = make(map[string]float64, len(l.Extra))
		for k, v := range l.Extra {
			c.Extra[k] = v
		}
	}
	return &c
}
