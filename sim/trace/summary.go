package trace

// TraceSummary aggregates statistics from a PredictionTrace.
type TraceSummary struct {
	TotalVotes     int
	DrawnVotes     int
	FlareVotes     int
	PreFlared      int
	VotesByVoter   map[string]int // voter name → ballots cast
	FlaresByWindow map[int]int    // window → locations first flaring in it
}

// Summarize computes aggregate statistics from a PredictionTrace.
// Safe for nil or empty traces (returns zero-value fields).
func Summarize(pt *PredictionTrace) *TraceSummary {
	summary := &TraceSummary{
		VotesByVoter:   make(map[string]int),
		FlaresByWindow: make(map[int]int),
	}
	if pt == nil {
		return summary
	}

	summary.TotalVotes = len(pt.Votes)
	for _, v := range pt.Votes {
		summary.VotesByVoter[v.Voter]++
		if v.Drawn {
			summary.DrawnVotes++
		}
		if v.Flare {
			summary.FlareVotes++
		}
	}
	for _, f := range pt.Flares {
		summary.FlaresByWindow[f.Window]++
		if f.PreFlared {
			summary.PreFlared++
		}
	}
	return summary
}
