package sim

import "math"

// Row maps a set of windows to one flare probability.
type Row struct {
	Windows     []int
	Probability float64
}

// Bucket is a half-open feature range (Lower, Upper]. Rows are checked in order.
type Bucket struct {
	Lower float64
	Upper float64
	Rows  []Row
}

// Contains reports whether Lower < v <= Upper.
func (b Bucket) Contains(v float64) bool {
	return b.Lower < v && v <= b.Upper
}

// RuleTable is a literal (feature range, window) -> probability lookup.
type RuleTable struct {
	Feature string
	Buckets []Bucket
}

// Lookup returns the flare probability for a feature value in a window.
// ok is false when the value falls outside every bucket or the window has
// no row; the caller then votes "no flare" without drawing.
func (t RuleTable) Lookup(value float64, window int) (p float64, ok bool) {
	for _, b := range t.Buckets {
		if !b.Contains(value) {
			continue
		}
		for _, row := range b.Rows {
			for _, w := range row.Windows {
				if w == window {
					return row.Probability, true
				}
			}
		}
		return 0, false
	}
	return 0, false
}

// Range boundaries and probabilities below were elicited from labelled
// scenarios and must not be rounded.

// NationalPopulationRules buckets pc_national_population.
var NationalPopulationRules = RuleTable{
	Feature: "pc_national_population",
	Buckets: []Bucket{
		{Lower: 31.841, Upper: math.Inf(1), Rows: []Row{
			{Windows: []int{3}, Probability: 0.75},
		}},
		{Lower: 1.348, Upper: 31.841, Rows: []Row{
			{Windows: []int{1}, Probability: 0.14285714285},
			{Windows: []int{2, 4, 5, 8, 11, 12, 14}, Probability: 0.02857142857},
			{Windows: []int{7, 10}, Probability: 0.05714285714},
		}},
		{Lower: 0.362, Upper: 1.348, Rows: []Row{
			{Windows: []int{1, 10, 11, 13, 15, 16}, Probability: 0.0078125},
			{Windows: []int{2, 3, 4}, Probability: 0.0234375},
			{Windows: []int{9}, Probability: 0.0390625},
		}},
		{Lower: 0.019, Upper: 0.362, Rows: []Row{
			{Windows: []int{1, 4}, Probability: 0.0390625},
			{Windows: []int{2, 3, 5, 6, 8, 11, 12, 14}, Probability: 0.00398406374},
			{Windows: []int{10}, Probability: 0.01195219123},
		}},
	},
}

// RegionalPopulationRules buckets pc_regional_population. Values at or below
// 0.031 fall in no bucket and never flare.
var RegionalPopulationRules = RuleTable{
	Feature: "pc_regional_population",
	Buckets: []Bucket{
		{Lower: 50.226, Upper: math.Inf(1), Rows: []Row{
			{Windows: []int{1}, Probability: 0.08},
			{Windows: []int{2, 7, 9, 10}, Probability: 0.04},
			{Windows: []int{3, 5, 8, 14}, Probability: 0.02666666666},
			{Windows: []int{4, 6, 11, 12, 13, 16}, Probability: 0.01333333333},
		}},
		{Lower: 0.031, Upper: 7.543, Rows: []Row{
			{Windows: []int{13}, Probability: 0.0071942446},
		}},
		{Lower: 7.543, Upper: 20.588, Rows: []Row{
			{Windows: []int{1, 2, 4, 10, 11, 12, 14}, Probability: 0.00833333333},
			{Windows: []int{15}, Probability: 0.01666666666},
		}},
		{Lower: 20.588, Upper: 50.226, Rows: []Row{
			{Windows: []int{1, 4}, Probability: 0.0487804878},
			{Windows: []int{3, 5, 6, 7, 9, 11}, Probability: 0.01219512195},
		}},
	},
}
