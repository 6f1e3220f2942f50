package sim

import (
	"fmt"
	"io"
	"math"

	"github.com/sirupsen/logrus"
)

// Sentinels reported when a metric's denominator is zero.
const (
	UndefinedRatio = 0.0
	UndefinedMCC   = -1.0
)

// Report scores a prediction run against a labelled scenario's ground truth.
// Only meaningful for historical scenarios where FlareWindow is known.
type Report struct {
	TruePositives  int
	FalsePositives int
	TrueNegatives  int
	FalseNegatives int
	// WindowErrors counts true positives whose predicted first window differs
	// from the ground-truth window.
	WindowErrors int

	Precision       float64
	Recall          float64
	MCC             float64
	WindowErrorRate float64 // WindowErrors / TruePositives

	// Messages explains every metric that fell back to its sentinel.
	Messages []string
}

// Evaluate scores a Result against the ground truth held in its dataset.
func Evaluate(r *Result) *Report {
	return EvaluatePredictions(r.Names, r.Predictions, r.Dataset)
}

// EvaluatePredictions scores a [window][location] matrix whose columns follow
// names against the FlareWindow of each named location in ds.
func EvaluatePredictions(names []string, predictions Matrix, ds *Dataset) *Report {
	rep := &Report{}
	for col, name := range names {
		loc := ds.Get(name)
		if loc == nil {
			rep.Messages = append(rep.Messages, fmt.Sprintf("location %q has no ground truth; not scored", name))
			continue
		}
		predicted := predictions.FirstFlare(col)
		switch {
		case predicted >= 0 && loc.HasGroundTruthFlare():
			rep.TruePositives++
			if predicted != loc.FlareWindow {
				rep.WindowErrors++
			}
		case predicted >= 0:
			rep.FalsePositives++
		case loc.HasGroundTruthFlare():
			rep.FalseNegatives++
		default:
			rep.TrueNegatives++
		}
	}
	rep.computeMetrics()
	return rep
}

func (r *Report) computeMetrics() {
	tp, fp := float64(r.TruePositives), float64(r.FalsePositives)
	tn, fn := float64(r.TrueNegatives), float64(r.FalseNegatives)

	r.Precision = r.ratio("precision", tp, tp+fp, UndefinedRatio)
	r.Recall = r.ratio("recall", tp, tp+fn, UndefinedRatio)

	denom := math.Sqrt((tp + fp) * (tp + fn) * (tn + fp) * (tn + fn))
	r.MCC = r.ratio("MCC", tp*tn-fp*fn, denom, UndefinedMCC)

	if r.TruePositives == 0 {
		r.WindowErrorRate = UndefinedRatio
		r.Messages = append(r.Messages, "window error rate undefined: no correctly predicted flares")
	} else {
		r.WindowErrorRate = float64(r.WindowErrors) / tp
	}
}

func (r *Report) ratio(metric string, num, denom, sentinel float64) float64 {
	if denom == 0 {
		msg := fmt.Sprintf("%s undefined: zero denominator, reporting %v", metric, sentinel)
		logrus.Warn(msg)
		r.Messages = append(r.Messages, msg)
		return sentinel
	}
	return num / denom
}

// Print writes the report as human-readable text.
func (r *Report) Print(w io.Writer) {
	fmt.Fprintln(w, "=== Flare Evaluation ===")
	fmt.Fprintf(w, "True positives       : %d\n", r.TruePositives)
	fmt.Fprintf(w, "False positives      : %d\n", r.FalsePositives)
	fmt.Fprintf(w, "True negatives       : %d\n", r.TrueNegatives)
	fmt.Fprintf(w, "False negatives      : %d\n", r.FalseNegatives)
	fmt.Fprintf(w, "Precision            : %.4f\n", r.Precision)
	fmt.Fprintf(w, "Recall               : %.4f\n", r.Recall)
	fmt.Fprintf(w, "MCC                  : %.4f\n", r.MCC)
	if r.TruePositives > 0 {
		fmt.Fprintf(w, "Window error rate    : %.4f (%d of %d)\n", r.WindowErrorRate, r.WindowErrors, r.TruePositives)
	} else {
		fmt.Fprintln(w, "Window error rate    : n/a (no correctly predicted flares)")
	}
	for _, m := range r.Messages {
		fmt.Fprintf(w, "note: %s\n", m)
	}
}
