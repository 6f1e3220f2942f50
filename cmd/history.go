package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/jataware/flee-modeling/sim/store"
)

// runHistory lists the newest recorded runs, optionally of one scenario.
func runHistory(ctx context.Context, path, scenarioName string, limit int, w io.Writer) error {
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("run history %s: %w", path, err)
	}
	db, err := store.Open(path)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	runs, err := db.ListRuns(ctx, scenarioName, limit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Fprintln(w, "No recorded runs.")
		return nil
	}
	fmt.Fprintf(w, "%-5s %-20s %-16s %8s %5s %6s %-10s %7s %9s %7s %8s\n",
		"ID", "Created", "Scenario", "Seed", "Days", "Window", "Aggregate", "Members", "Precision", "Recall", "MCC")
	for _, r := range runs {
		fmt.Fprintf(w, "%-5d %-20s %-16s %8d %5d %6d %-10s %7d %9.4f %7.4f %8.4f\n",
			r.ID, r.CreatedAt.Format("2006-01-02 15:04:05"), r.Scenario, r.Seed, r.Days, r.WindowSize,
			r.Aggregation, r.Members, r.Precision, r.Recall, r.MCC)
	}
	return nil
}
