package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/jataware/flee-modeling/sim"
	"github.com/jataware/flee-modeling/sim/ensemble"
	"github.com/jataware/flee-modeling/sim/store"
)

// EnsembleFile is the default summary written into the scenario directory.
const EnsembleFile = "ensemble.csv"

// runEnsemble runs cfg.Members seeded predictions of the scenario in dir and
// writes the per-location summary.
func runEnsemble(ctx context.Context, dir string, cfg RunConfig, top int, w io.Writer) error {
	s, simCfg, err := loadScenario(dir, cfg)
	if err != nil {
		return err
	}
	rng := sim.NewPartitionedRNG(sim.NewSimulationKey(cfg.Seed))
	summary, err := ensemble.Run(ctx, s.Dataset, simCfg, rng, ensemble.Options{Members: cfg.Members, Concurrency: cfg.Concurrency})
	if err != nil {
		return err
	}
	summary.Print(w, top)

	output := cfg.Output
	if output == "" {
		output = filepath.Join(dir, EnsembleFile)
	}
	file, err := os.Create(output)
	if err != nil {
		return fmt.Errorf("creating ensemble summary: %w", err)
	}
	if err := ensemble.WriteCSV(file, summary); err != nil {
		_ = file.Close()
		return err
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("closing ensemble summary: %w", err)
	}
	fmt.Fprintf(w, "Wrote summary of %d locations to %s\n", len(summary.Locations), output)

	if cfg.DB != "" {
		run, predictions := store.FromEnsemble(store.RunParams{Scenario: s.Name, Seed: cfg.Seed, Config: simCfg}, summary)
		return recordRun(ctx, cfg.DB, run, predictions)
	}
	return nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
