package scenario

import (
	"fmt"
	"math"

	"github.com/jataware/flee-modeling/sim"
)

// LoadRoutes reads a Flee routes.csv (#name1,name2,distance[,...]) and adds
// each route as a link in both directions. Routes touching a name in ignore
// (such as excluded camps) are dropped. Any other unknown name is a
// *sim.ConfigError.
func LoadRoutes(path string, ds *sim.Dataset, ignore map[string]bool) error {
	t, err := readTable(path)
	if err != nil {
		return err
	}
	fromCol, err := t.require("name1")
	if err != nil {
		return err
	}
	toCol, err := t.require("name2")
	if err != nil {
		return err
	}
	distCol := t.column("distance")

	for _, row := range t.rows {
		a, b := cell(row, fromCol), cell(row, toCol)
		if ignore[a] || ignore[b] {
			continue
		}
		from, to := ds.Get(a), ds.Get(b)
		if from == nil || to == nil {
			missing := a
			if from != nil {
				missing = b
			}
			return &sim.ConfigError{Reason: fmt.Sprintf("route %s - %s references unknown location %q", a, b, missing)}
		}
		dist := parseFeature(cell(row, distCol))
		if math.IsNaN(dist) {
			dist = 0
		}
		from.Links = append(from.Links, sim.Link{Target: b, Weight: dist})
		to.Links = append(to.Links, sim.Link{Target: a, Weight: dist})
	}
	return nil
}
