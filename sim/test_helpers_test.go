package sim

import "testing"

// loc builds a Location with the two population features and a ground-truth window.
func loc(name string, national, regional float64, flareWindow int, links ...string) *Location {
	l := &Location{
		Name:                 name,
		PCNationalPopulation: national,
		PCRegionalPopulation: regional,
		FlareWindow:          flareWindow,
	}
	for _, target := range links {
		l.Links = append(l.Links, Link{Target: target, Weight: 1})
	}
	return l
}

// dataset builds a Dataset in argument order, failing the test on duplicates.
func dataset(t testing.TB, locs ...*Location) *Dataset {
	t.Helper()
	ds := NewDataset()
	for _, l := range locs {
		if err := ds.Add(l); err != nil {
			t.Fatalf("adding %q: %v", l.Name, err)
		}
	}
	return ds
}

// mixedDataset covers every national bucket plus out-of-range values.
func mixedDataset(t testing.TB) *Dataset {
	return dataset(t,
		loc("Capital", 40, 60, 3),
		loc("Town", 5, 25, 1),
		loc("Village", 0.8, 10, 9),
		loc("Hamlet", 0.1, 1, NoFlare),
		loc("Outpost", 0.001, 0.01, NoFlare),
		loc("Border", 2, 55, 0),
	)
}
