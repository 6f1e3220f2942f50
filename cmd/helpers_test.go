package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jataware/flee-modeling/sim"
	"github.com/jataware/flee-modeling/sim/scenario"
)

// writeScenario creates a scenario directory with a feature table of three
// linked locations and a 100-day conflict period.
func writeScenario(t *testing.T) string {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "toy")
	require.NoError(t, os.MkdirAll(filepath.Join(dir, scenario.InputDir), 0o755))
	files := map[string]string{
		scenario.FeaturesFile: "name,pc_national_population,pc_regional_population,flare_window\n" +
			"Capital,5,60,0\nMarket,1.2,40,2\nVillage,0.001,0.01,\n",
		scenario.RoutesFile: "#name1,name2,distance\nCapital,Market,10\nMarket,Village,4\n",
		scenario.PeriodFile: "StartDate,2012-02-29\nLength,100\n",
	}
	for name, content := range files {
		require.NoError(t, os.WriteFile(scenario.InputPath(dir, name), []byte(content), 0o644))
	}
	return dir
}

func defaultRunConfig() RunConfig {
	return RunConfig{
		Seed:        42,
		Voters:      sim.DefaultVoters(),
		Aggregation: string(sim.AggregateAny),
		Trace:       "none",
		Members:     5,
	}
}
