package ensemble

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"sort"
	"strconv"
)

var csvHeader = []string{
	"name", "ground_truth_window", "flared", "flare_fraction",
	"min_window", "max_window", "median_window", "mean_window",
}

// WriteCSV writes one row per location in dataset order. Window statistics
// of a location that never flared are left empty.
func WriteCSV(w io.Writer, s *Summary) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(csvHeader); err != nil {
		return fmt.Errorf("writing CSV header: %w", err)
	}
	for _, l := range s.Locations {
		row := []string{
			l.Name,
			window(l.GroundTruth),
			strconv.Itoa(l.Flared),
			strconv.FormatFloat(l.FlareFraction, 'f', 4, 64),
			window(l.MinWindow),
			window(l.MaxWindow),
			formatStat(l.MedianWindow),
			formatStat(l.MeanWindow),
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("writing CSV row for %s: %w", l.Name, err)
		}
	}
	writer.Flush()
	return writer.Error()
}

// Print writes the ensemble scores and the locations most likely to flare.
func (s *Summary) Print(w io.Writer, top int) {
	fmt.Fprintln(w, "=== Ensemble Summary ===")
	fmt.Fprintf(w, "Members              : %d\n", len(s.Members))
	fmt.Fprintf(w, "Mean precision       : %.4f\n", s.MeanPrecision)
	fmt.Fprintf(w, "Mean recall          : %.4f\n", s.MeanRecall)
	fmt.Fprintf(w, "Mean MCC             : %.4f\n", s.MeanMCC)
	for i, l := range s.Ranked() {
		if i == top {
			break
		}
		fmt.Fprintf(w, "  %-24s %.2f  median window %s\n", l.Name, l.FlareFraction, formatStat(l.MedianWindow))
	}
}

// Ranked returns the locations by descending flare fraction, then by name.
func (s *Summary) Ranked() []LocationSummary {
	out := append([]LocationSummary(nil), s.Locations...)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].FlareFraction != out[j].FlareFraction {
			return out[i].FlareFraction > out[j].FlareFraction
		}
		return out[i].Name < out[j].Name
	})
	return out
}

func window(w int) string {
	if w < 0 {
		return ""
	}
	return strconv.Itoa(w)
}

func formatStat(v float64) string {
	if math.IsNaN(v) {
		return ""
	}
	return strconv.FormatFloat(v, 'f', 2, 64)
}
