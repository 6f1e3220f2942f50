package scenario

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/jataware/flee-modeling/sim"
)

// LoadFleeLocations derives features from a Flee locations.csv
// (#name,region,country,lat,lon,location_type,conflict_date,pop/cap).
//
// Camps are not conflict locations and are returned in excluded. For every
// other location the population share of its country and of its region are
// computed from pop/cap, and a conflict_date (in days) becomes the
// ground-truth window conflict_date / windowSize.
func LoadFleeLocations(path string, windowSize int) (ds *sim.Dataset, excluded map[string]bool, err error) {
	if windowSize <= 0 {
		return nil, nil, fmt.Errorf("window size must be positive, got %d", windowSize)
	}
	t, err := readTable(path)
	if err != nil {
		return nil, nil, err
	}
	nameCol, err := t.require("name")
	if err != nil {
		return nil, nil, err
	}
	popCol, err := t.require("pop/cap", "population")
	if err != nil {
		return nil, nil, err
	}
	regionCol := t.column("region")
	countryCol := t.column("country")
	typeCol := t.column("location_type", "type")
	conflictCol := t.column("conflict_date")

	type entry struct {
		loc *sim.Location
		pop float64
	}
	var entries []entry
	countryTotals := make(map[string]float64)
	regionTotals := make(map[string]float64)
	excluded = make(map[string]bool)

	for _, row := range t.rows {
		name := cell(row, nameCol)
		if strings.Contains(strings.ToLower(cell(row, typeCol)), "camp") {
			excluded[name] = true
			continue
		}
		loc := &sim.Location{
			Name:        name,
			Region:      cell(row, regionCol),
			Country:     cell(row, countryCol),
			FlareWindow: sim.NoFlare,
		}
		if raw := cell(row, conflictCol); raw != "" {
			day, err := strconv.Atoi(raw)
			if err != nil {
				return nil, nil, &sim.ValidationError{Location: name, Field: "conflict_date", Reason: strconv.Quote(raw) + " is not a day number"}
			}
			if day >= 0 {
				loc.FlareWindow = day / windowSize
			}
		}
		pop := parseFeature(cell(row, popCol))
		if !math.IsNaN(pop) {
			countryTotals[loc.Country] += pop
			regionTotals[loc.Region] += pop
		}
		entries = append(entries, entry{loc: loc, pop: pop})
	}

	ds = sim.NewDataset()
	for _, e := range entries {
		e.loc.PCNationalPopulation = share(e.pop, countryTotals[e.loc.Country])
		e.loc.PCRegionalPopulation = share(e.pop, regionTotals[e.loc.Region])
		if err := ds.Add(e.loc); err != nil {
			return nil, nil, err
		}
	}
	logrus.Debugf("Derived features for %d locations from %s (%d camps excluded)", ds.Len(), path, len(excluded))
	return ds, excluded, nil
}

// share is pop as a percentage of total; NaN when either is unusable.
func share(pop, total float64) float64 {
	if math.IsNaN(pop) || total <= 0 {
		return math.NaN()
	}
	return pop / total * 100
}
