// Package scenario loads Flare inputs from a scenario directory and writes
// the conflict schedule consumed by the displacement simulator.
//
// A scenario directory holds input_csv/ with either features.csv (precomputed
// population ratios and flare windows) or a Flee locations.csv to derive them
// from, an optional routes.csv, and an optional conflict_period.csv.
package scenario

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/jataware/flee-modeling/sim"
)

// File names inside a scenario's input directory.
const (
	InputDir      = "input_csv"
	FeaturesFile  = "features.csv"
	LocationsFile = "locations.csv"
	RoutesFile    = "routes.csv"
	PeriodFile    = "conflict_period.csv"
	ConflictsFile = "conflicts.csv"
)

// Scenario is a loaded scenario directory.
type Scenario struct {
	Name    string
	Dir     string
	Dataset *sim.Dataset
	Period  *Period // nil when the scenario has no conflict_period.csv
	// Excluded names locations present in the source data but not predicted.
	Excluded map[string]bool
}

// InputPath returns the path of a file in the scenario's input directory.
func InputPath(dir, file string) string {
	return filepath.Join(dir, InputDir, file)
}

// ConflictsPath is where the conflict schedule for the simulator is written.
func ConflictsPath(dir string) string {
	return InputPath(dir, ConflictsFile)
}

// LoadScenarioPeriod reads the scenario's conflict_period.csv, returning nil
// without error when the file does not exist.
func LoadScenarioPeriod(dir string) (*Period, error) {
	p, err := LoadPeriod(InputPath(dir, PeriodFile))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	return p, err
}

// Load reads the scenario in dir. windowSize converts Flee conflict dates
// to windows and is unused when features.csv is present.
func Load(dir string, windowSize int) (*Scenario, error) {
	s := &Scenario{Name: filepath.Base(filepath.Clean(dir)), Dir: dir, Excluded: map[string]bool{}}

	var err error
	featuresPath := InputPath(dir, FeaturesFile)
	if exists(featuresPath) {
		s.Dataset, err = LoadFeatures(featuresPath)
	} else {
		s.Dataset, s.Excluded, err = LoadFleeLocations(InputPath(dir, LocationsFile), windowSize)
	}
	if err != nil {
		return nil, fmt.Errorf("loading scenario %s: %w", s.Name, err)
	}

	if routesPath := InputPath(dir, RoutesFile); exists(routesPath) {
		if err := LoadRoutes(routesPath, s.Dataset, s.Excluded); err != nil {
			return nil, fmt.Errorf("loading scenario %s: %w", s.Name, err)
		}
	}

	if s.Period, err = LoadScenarioPeriod(dir); err != nil {
		return nil, fmt.Errorf("loading scenario %s: %w", s.Name, err)
	}
	logrus.Infof("Loaded scenario %s: %d locations, %d excluded", s.Name, s.Dataset.Len(), len(s.Excluded))
	return s, nil
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
