// Package testutil provides deterministic random sources shared by the sim
// test packages. It does not import sim, so sim's own tests can use it.
package testutil

// FixedSource returns the same sample on every draw and counts draws.
type FixedSource struct {
	Value float64
	Draws int
}

// NewFixedSource creates a FixedSource returning v.
func NewFixedSource(v float64) *FixedSource {
	return &FixedSource{Value: v}
}

func (s *FixedSource) Float64() float64 {
	s.Draws++
	return s.Value
}

// SequenceSource returns scripted samples in order, then repeats the last one.
type SequenceSource struct {
	Values []float64
	Draws  int
}

// NewSequenceSource creates a SequenceSource over values.
func NewSequenceSource(values ...float64) *SequenceSource {
	return &SequenceSource{Values: values}
}

func (s *SequenceSource) Float64() float64 {
	i := s.Draws
	if i >= len(s.Values) {
		i = len(s.Values) - 1
	}
	s.Draws++
	if i < 0 {
		return 0
	}
	return s.Values[i]
}
