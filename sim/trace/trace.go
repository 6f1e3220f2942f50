package trace

// TraceLevel controls the verbosity of decision tracing.
type TraceLevel string

const (
	// TraceLevelNone disables tracing (zero overhead).
	TraceLevelNone TraceLevel = "none"
	// TraceLevelVotes captures every ballot and every flare onset.
	TraceLevelVotes TraceLevel = "votes"
)

// validTraceLevels maps accepted trace level strings.
var validTraceLevels = map[TraceLevel]bool{
	TraceLevelNone:  true,
	TraceLevelVotes: true,
	"":              true, // empty defaults to none
}

// IsValidTraceLevel returns true if the given level string is a recognized trace level.
func IsValidTraceLevel(level string) bool {
	return validTraceLevels[TraceLevel(level)]
}

// PredictionTrace collects decision records during one prediction run.
type PredictionTrace struct {
	Level  TraceLevel
	Votes  []VoteRecord
	Flares []FlareRecord
}

// NewPredictionTrace creates a PredictionTrace ready for recording.
func NewPredictionTrace(level TraceLevel) *PredictionTrace {
	return &PredictionTrace{
		Level:  level,
		Votes:  make([]VoteRecord, 0),
		Flares: make([]FlareRecord, 0),
	}
}

// RecordVote appends a ballot record.
func (pt *PredictionTrace) RecordVote(record VoteRecord) {
	pt.Votes = append(pt.Votes, record)
}

// RecordFlare appends a flare onset record.
func (pt *PredictionTrace) RecordFlare(record FlareRecord) {
	pt.Flares = append(pt.Flares, record)
}
