package sim

import "fmt"

const (
	minThresholdSample = 0.001
	maxThresholdSample = 1.0

	// AdjacentFlareMultiplier is the flare probability added per flared neighbour.
	AdjacentFlareMultiplier = 0.005
)

// CastVote draws one sample uniformly from (0.001, 1) and returns true iff
// the sample does not exceed probability.
func CastVote(src RandomSource, probability float64) bool {
	sample := minThresholdSample + (maxThresholdSample-minThresholdSample)*src.Float64()
	return sample <= probability
}

// Ballot is one voter's opinion on a location in a window.
type Ballot struct {
	Flare       bool
	Probability float64
	Drawn       bool // false when the rule decided without a random draw
}

// Voter is a named rule that votes on whether a location flares in a window.
// The dataset is the run's working copy; voters must not mutate it.
type Voter interface {
	Name() string
	Vote(ds *Dataset, loc *Location, window int) Ballot
}

// Voter names accepted by NewVoter.
const (
	VoterNationalPopulation = "national-population"
	VoterRegionalPopulation = "regional-population"
	VoterAdjacency          = "adjacency"
)

// ValidVoters is the set of recognized voter names.
var ValidVoters = map[string]bool{
	VoterNationalPopulation: true,
	VoterRegionalPopulation: true,
	VoterAdjacency:          true,
}

// DefaultVoters are the rules polled when a Config lists none.
func DefaultVoters() []string {
	return []string{VoterNationalPopulation, VoterRegionalPopulation}
}

// IsValidVoter returns true if name is a recognized voter.
func IsValidVoter(name string) bool {
	return ValidVoters[name]
}

// NewVoter creates a voter by name drawing from src.
// Panics on unrecognized names; Config.Validate rejects them first.
func NewVoter(name string, src RandomSource) Voter {
	switch name {
	case VoterNationalPopulation:
		return &TableVoter{name: name, table: NationalPopulationRules, feature: nationalPopulation, src: src}
	case VoterRegionalPopulation:
		return &TableVoter{name: name, table: RegionalPopulationRules, feature: regionalPopulation, src: src}
	case VoterAdjacency:
		return &AdjacencyVoter{src: src}
	default:
		panic(fmt.Sprintf("unknown voter %q", name))
	}
}

func nationalPopulation(l *Location) float64 { return l.PCNationalPopulation }
func regionalPopulation(l *Location) float64 { return l.PCRegionalPopulation }

// TableVoter votes from a RuleTable over one location feature.
type TableVoter struct {
	name    string
	table   RuleTable
	feature func(*Location) float64
	src     RandomSource
}

// NewTableVoter creates a voter over a custom rule table. feature extracts the
// value looked up in table, typically from Location.Extra.
func NewTableVoter(name string, table RuleTable, feature func(*Location) float64, src RandomSource) *TableVoter {
	return &TableVoter{name: name, table: table, feature: feature, src: src}
}

func (v *TableVoter) Name() string { return v.name }

func (v *TableVoter) Vote(_ *Dataset, loc *Location, window int) Ballot {
	p, ok := v.table.Lookup(v.feature(loc), window)
	if !ok {
		return Ballot{}
	}
	return Ballot{Flare: CastVote(v.src, p), Probability: p, Drawn: true}
}

// AdjacencyVoter votes with probability AdjacentFlareMultiplier times the
// number of flared neighbours. It always draws, even with no flared neighbours.
type AdjacencyVoter struct {
	src RandomSource
}

func (v *AdjacencyVoter) Name() string { return VoterAdjacency }

func (v *AdjacencyVoter) Vote(ds *Dataset, loc *Location, _ int) Ballot {
	p := AdjacentFlareMultiplier * float64(ds.FlaredNeighbours(loc))
	return Ballot{Flare: CastVote(v.src, p), Probability: p, Drawn: true}
}
