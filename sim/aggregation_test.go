package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func ballots(votes ...bool) []Ballot {
	out := make([]Ballot, len(votes))
	for i, v := range votes {
		out[i] = Ballot{Flare: v}
	}
	return out
}

func TestAggregation_Decide(t *testing.T) {
	tests := []struct {
		name  string
		agg   Aggregation
		votes []bool
		want  bool
	}{
		{"any: one flare wins", AggregateAny, []bool{false, true}, true},
		{"any: none", AggregateAny, []bool{false, false}, false},
		{"empty name behaves as any", "", []bool{true, false}, true},
		{"plurality: tie follows first voter (flare)", AggregatePlurality, []bool{true, false}, true},
		{"plurality: tie follows first voter (calm)", AggregatePlurality, []bool{false, true}, false},
		{"plurality: clear winner", AggregatePlurality, []bool{false, true, true}, true},
		{"majority: tie is calm", AggregateMajority, []bool{true, false}, false},
		{"majority: two of three", AggregateMajority, []bool{true, false, true}, true},
		{"majority: unanimous", AggregateMajority, []bool{true, true}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.agg.Decide(ballots(tt.votes...)))
		})
	}
}

func TestAggregation_NoBallots_NoFlare(t *testing.T) {
	for _, agg := range []Aggregation{AggregateAny, AggregatePlurality, AggregateMajority} {
		assert.False(t, agg.Decide(nil), string(agg))
	}
}

func TestIsValidAggregation(t *testing.T) {
	assert.True(t, IsValidAggregation(""))
	assert.True(t, IsValidAggregation("plurality"))
	assert.False(t, IsValidAggregation("unanimous"))
}
