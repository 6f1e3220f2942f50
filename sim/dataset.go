package sim

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"
)

// Dataset is an insertion-ordered mapping of location name to Location.
// Iteration order is the column order of every prediction and output table.
type Dataset struct {
	order  []string
	byName map[string]*Location
}

// NewDataset creates an empty Dataset.
func NewDataset() *Dataset {
	return &Dataset{byName: make(map[string]*Location)}
}

// Add appends a location. Names must be unique.
func (d *Dataset) Add(loc *Location) error {
	if loc == nil {
		return fmt.Errorf("nil location")
	}
	if _, exists := d.byName[loc.Name]; exists {
		return &ConfigError{Reason: fmt.Sprintf("duplicate location %q", loc.Name)}
	}
	d.order = append(d.order, loc.Name)
	d.byName[loc.Name] = loc
	return nil
}

// Get returns the named location or nil.
func (d *Dataset) Get(name string) *Location {
	return d.byName[name]
}

// Len returns the number of locations.
func (d *Dataset) Len() int { return len(d.order) }

// Names returns location names in insertion order.
func (d *Dataset) Names() []string {
	return append([]string(nil), d.order...)
}

// Locations returns the locations in insertion order. The pointers are live.
func (d *Dataset) Locations() []*Location {
	out := make([]*Location, len(d.order))
	for i, name := range d.order {
		out[i] = d.byName[name]
	}
	return out
}

// Clone returns a deep copy that shares nothing with d.
func (d *Dataset) Clone() *Dataset {
	c := &Dataset{
		order:  append([]string(nil), d.order...),
		byName: make(map[string]*Location, len(d.byName)),
	}
	for name, loc := range d.byName {
		c.byName[name] = loc.clone()
	}
	return c
}

// Validate checks that every link points at a known location.
func (d *Dataset) Validate() error {
	for _, name := range d.order {
		for _, link := range d.byName[name].Links {
			if _, ok := d.byName[link.Target]; !ok {
				return &ConfigError{Reason: fmt.Sprintf("location %q links to unknown location %q", name, link.Target)}
			}
		}
	}
	return nil
}

// FlaredNeighbours counts the links of loc whose target is flared.
// A neighbour listed twice is counted twice.
func (d *Dataset) FlaredNeighbours(loc *Location) int {
	n := 0
	for _, link := range loc.Links {
		if target := d.byName[link.Target]; target != nil && target.IsFlared {
			n++
		}
	}
	return n
}

// Graph builds the adjacency graph. Node IDs are dataset positions.
// Self links are dropped and unknown targets ignored; call Validate first.
func (d *Dataset) Graph() *simple.WeightedUndirectedGraph {
	g := simple.NewWeightedUndirectedGraph(0, 0)
	index := make(map[string]int64, len(d.order))
	for i, name := range d.order {
		index[name] = int64(i)
		g.AddNode(simple.Node(i))
	}
	for _, name := range d.order {
		from := index[name]
		for _, link := range d.byName[name].Links {
			to, ok := index[link.Target]
			if !ok || to == from {
				continue
			}
			g.SetWeightedEdge(g.NewWeightedEdge(simple.Node(from), simple.Node(to), link.Weight))
		}
	}
	return g
}

// Components returns the connected components of the adjacency graph as
// location names, largest first.
func (d *Dataset) Components() [][]string {
	comps := topo.ConnectedComponents(d.Graph())
	out := make([][]string, 0, len(comps))
	for _, comp := range comps {
		names := make([]string, len(comp))
		sort.Slice(comp, func(i, j int) bool { return comp[i].ID() < comp[j].ID() })
		for i, n := range comp {
			names[i] = d.nameOf(n)
		}
		out = append(out, names)
	}
	sort.SliceStable(out, func(i, j int) bool { return len(out[i]) > len(out[j]) })
	return out
}

func (d *Dataset) nameOf(n graph.Node) string {
	return d.order[n.ID()]
}
