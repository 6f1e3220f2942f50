package scenario

import (
	"math"
	"strconv"

	"github.com/sirupsen/logrus"

	"github.com/jataware/flee-modeling/sim"
)

// Feature table columns. Any other numeric column lands in Location.Extra.
const (
	ColumnName        = "name"
	ColumnNational    = "pc_national_population"
	ColumnRegional    = "pc_regional_population"
	ColumnFlareWindow = "flare_window"
	ColumnRegion      = "region"
	ColumnCountry     = "country"
)

// LoadFeatures reads a precomputed per-location feature table. Row order is
// dataset order. An empty flare_window means the location never flares.
// Missing or non-numeric population ratios are kept as NaN and rejected when
// a Simulator validates the dataset.
func LoadFeatures(path string) (*sim.Dataset, error) {
	t, err := readTable(path)
	if err != nil {
		return nil, err
	}
	nameCol, err := t.require(ColumnName)
	if err != nil {
		return nil, err
	}
	nationalCol, err := t.require(ColumnNational)
	if err != nil {
		return nil, err
	}
	regionalCol, err := t.require(ColumnRegional)
	if err != nil {
		return nil, err
	}
	windowCol := t.column(ColumnFlareWindow)
	regionCol := t.column(ColumnRegion)
	countryCol := t.column(ColumnCountry)
	known := map[int]bool{nameCol: true, nationalCol: true, regionalCol: true, windowCol: true, regionCol: true, countryCol: true}

	ds := sim.NewDataset()
	for _, row := range t.rows {
		loc := &sim.Location{
			Name:                 cell(row, nameCol),
			Region:               cell(row, regionCol),
			Country:              cell(row, countryCol),
			PCNationalPopulation: parseFeature(cell(row, nationalCol)),
			PCRegionalPopulation: parseFeature(cell(row, regionalCol)),
			FlareWindow:          sim.NoFlare,
		}
		if raw := cell(row, windowCol); raw != "" {
			w, err := strconv.Atoi(raw)
			if err != nil {
				return nil, &sim.ValidationError{Location: loc.Name, Field: ColumnFlareWindow, Reason: strconv.Quote(raw) + " is not an integer"}
			}
			loc.FlareWindow = w
		}
		for i, name := range t.header {
			if known[i] {
				continue
			}
			if v := parseFeature(cell(row, i)); !math.IsNaN(v) {
				if loc.Extra == nil {
					loc.Extra = make(map[string]float64)
				}
				loc.Extra[normalizeColumn(name)] = v
			}
		}
		if math.IsNaN(loc.PCNationalPopulation) || math.IsNaN(loc.PCRegionalPopulation) {
			logrus.Debugf("%s: location %q has a missing or non-numeric population ratio", path, loc.Name)
		}
		if err := ds.Add(loc); err != nil {
			return nil, err
		}
	}
	logrus.Debugf("Loaded %d locations from %s", ds.Len(), path)
	return ds, nil
}
