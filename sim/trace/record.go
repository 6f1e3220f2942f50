// Package trace provides decision-trace recording for prediction runs.
// This package has no dependencies on sim/; it stores pure data types.
package trace

// VoteRecord captures a single voter's ballot on a location in a window.
type VoteRecord struct {
	Window      int
	Location    string
	Voter       string
	Probability float64
	Drawn       bool // false when the rule answered "no flare" without drawing
	Flare       bool
}

// FlareRecord captures the window in which a location first flared.
type FlareRecord struct {
	Window    int
	Location  string
	PreFlared bool // flared from ground truth at window 0, no votes cast
}
