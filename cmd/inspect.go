package cmd

import (
	"fmt"
	"io"
	"math"

	"gonum.org/v1/gonum/stat"
)

// runInspect prints a scenario's size, ground truth, feature distribution
// and link graph connectivity.
func runInspect(dir string, cfg RunConfig, w io.Writer) error {
	s, simCfg, err := loadScenario(dir, cfg)
	if err != nil {
		return err
	}
	ds := s.Dataset

	var national, regional []float64
	preFlared, flaring, invalid := 0, 0, 0
	for _, loc := range ds.Locations() {
		if loc.Validate() != nil {
			invalid++
		}
		if !math.IsNaN(loc.PCNationalPopulation) {
			national = append(national, loc.PCNationalPopulation)
		}
		if !math.IsNaN(loc.PCRegionalPopulation) {
			regional = append(regional, loc.PCRegionalPopulation)
		}
		switch {
		case loc.FlareWindow == 0:
			preFlared++
		case loc.HasGroundTruthFlare():
			flaring++
		}
	}

	fmt.Fprintf(w, "=== Scenario %s ===\n", s.Name)
	fmt.Fprintf(w, "Locations            : %d (%d excluded)\n", ds.Len(), len(s.Excluded))
	fmt.Fprintf(w, "Invalid locations    : %d\n", invalid)
	fmt.Fprintf(w, "Windows              : %d x %d days\n", simCfg.TotalWindows(), simCfg.WindowSize)
	fmt.Fprintf(w, "Pre-flared           : %d\n", preFlared)
	fmt.Fprintf(w, "Flare later          : %d\n", flaring)
	fmt.Fprintf(w, "Never flare          : %d\n", ds.Len()-preFlared-flaring)
	printFeature(w, "National share (%)", national)
	printFeature(w, "Regional share (%)", regional)

	components := ds.Components()
	largest := 0
	if len(components) > 0 {
		largest = len(components[0])
	}
	fmt.Fprintf(w, "Link components      : %d (largest %d)\n", len(components), largest)
	if s.Period != nil {
		fmt.Fprintf(w, "Conflict period      : %s to %s\n",
			s.Period.StartDate.Format("2006-01-02"), s.Period.EndDate().Format("2006-01-02"))
	}
	return nil
}

func printFeature(w io.Writer, label string, values []float64) {
	if len(values) == 0 {
		fmt.Fprintf(w, "%-21s: n/a\n", label)
		return
	}
	mean, std := stat.MeanStdDev(values, nil)
	fmt.Fprintf(w, "%-21s: mean %.3f, std %.3f\n", label, mean, std)
}
