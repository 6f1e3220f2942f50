package sim

import "fmt"

// Aggregation names how ballots from several voters become one prediction.
type Aggregation string

const (
	// AggregateAny predicts a flare when any voter votes flare.
	AggregateAny Aggregation = "any"
	// AggregatePlurality picks the most common vote; on a tie the vote cast
	// first in voter order wins. With the two default voters this means the
	// national-population vote breaks ties.
	AggregatePlurality Aggregation = "plurality"
	// AggregateMajority needs strictly more than half the votes; ties are no flare.
	AggregateMajority Aggregation = "majority"
)

// ValidAggregations is the set of recognized aggregation names.
var ValidAggregations = map[string]bool{
	"":                         true, // empty defaults to any
	string(AggregateAny):       true,
	string(AggregatePlurality): true,
	string(AggregateMajority):  true,
}

// IsValidAggregation returns true if name is a recognized aggregation.
func IsValidAggregation(name string) bool {
	return ValidAggregations[name]
}

// Decide folds ballots, in voter order, into one prediction.
func (a Aggregation) Decide(ballots []Ballot) bool {
	if len(ballots) == 0 {
		return false
	}
	flares := 0
	for _, b := range ballots {
		if b.Flare {
			flares++
		}
	}
	switch a {
	case "", AggregateAny:
		return flares > 0
	case AggregatePlurality:
		calm := len(ballots) - flares
		if flares != calm {
			return flares > calm
		}
		return ballots[0].Flare
	case AggregateMajority:
		return 2*flares > len(ballots)
	default:
		panic(fmt.Sprintf("unhandled aggregation %q", a))
	}
}
