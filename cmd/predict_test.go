package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jataware/flee-modeling/sim/scenario"
)

func TestRunPredict_WritesConflictSchedule(t *testing.T) {
	// GIVEN a 100-day scenario and no explicit window size
	dir := writeScenario(t)
	var out bytes.Buffer

	// WHEN predicted
	require.NoError(t, runPredict(context.Background(), dir, defaultRunConfig(), &out))

	// THEN conflicts.csv holds 100 day rows after the header
	data, err := os.ReadFile(scenario.ConflictsPath(dir))
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 101)
	assert.Equal(t, "#Days,Capital,Market,Village", lines[0])

	// AND the pre-flared Capital is in conflict from day 0
	assert.Equal(t, "0,1,", lines[1][:4])
	assert.Contains(t, out.String(), "=== Flare Evaluation ===")
}

func TestRunPredict_SameSeed_SameSchedule(t *testing.T) {
	dir := writeScenario(t)
	cfg := defaultRunConfig()
	cfg.Output = filepath.Join(t.TempDir(), "a.csv")
	require.NoError(t, runPredict(context.Background(), dir, cfg, &bytes.Buffer{}))
	first, err := os.ReadFile(cfg.Output)
	require.NoError(t, err)

	cfg.Output = filepath.Join(t.TempDir(), "b.csv")
	require.NoError(t, runPredict(context.Background(), dir, cfg, &bytes.Buffer{}))
	second, err := os.ReadFile(cfg.Output)
	require.NoError(t, err)

	assert.Equal(t, string(first), string(second))
}

func TestRunPredict_TraceAndHistory(t *testing.T) {
	// GIVEN tracing and a run history database
	dir := writeScenario(t)
	cfg := defaultRunConfig()
	cfg.Trace = "votes"
	cfg.DB = filepath.Join(t.TempDir(), "flare.db")
	var out bytes.Buffer

	// WHEN predicted
	require.NoError(t, runPredict(context.Background(), dir, cfg, &out))

	// THEN the trace summary is printed
	assert.Contains(t, out.String(), "=== Decision Trace ===")
	assert.Contains(t, out.String(), "Pre-flared locations : 1")

	// AND history lists the run
	var hist bytes.Buffer
	require.NoError(t, runHistory(context.Background(), cfg.DB, "toy", 10, &hist))
	assert.Contains(t, hist.String(), "toy")
	assert.Contains(t, hist.String(), "any")
}

func TestRunPredict_ExplicitDaysWithoutPeriod(t *testing.T) {
	dir := writeScenario(t)
	require.NoError(t, os.Remove(scenario.InputPath(dir, scenario.PeriodFile)))

	cfg := defaultRunConfig()
	err := runPredict(context.Background(), dir, cfg, &bytes.Buffer{})
	assert.ErrorContains(t, err, scenario.PeriodFile)

	cfg.Days = 30
	cfg.WindowSize = 10
	require.NoError(t, runPredict(context.Background(), dir, cfg, &bytes.Buffer{}))
}

func TestRunPredict_InvalidAggregation(t *testing.T) {
	cfg := defaultRunConfig()
	cfg.Aggregation = "unanimous"

	err := runPredict(context.Background(), writeScenario(t), cfg, &bytes.Buffer{})
	assert.ErrorContains(t, err, "unanimous")
}

func TestRunEnsemble_WritesSummary(t *testing.T) {
	dir := writeScenario(t)
	cfg := defaultRunConfig()
	cfg.DB = filepath.Join(t.TempDir(), "flare.db")
	var out bytes.Buffer

	require.NoError(t, runEnsemble(context.Background(), dir, cfg, 3, &out))

	data, err := os.ReadFile(filepath.Join(dir, EnsembleFile))
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 4)
	assert.True(t, strings.HasPrefix(lines[1], "Capital,0,5,1.0000,0,0,"))
	assert.Contains(t, out.String(), "Members              : 5")

	var hist bytes.Buffer
	require.NoError(t, runHistory(context.Background(), cfg.DB, "", 0, &hist))
	assert.Contains(t, hist.String(), "toy")
}

func TestRunInspect(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, runInspect(writeScenario(t), defaultRunConfig(), &out))

	s := out.String()
	assert.Contains(t, s, "=== Scenario toy ===")
	assert.Contains(t, s, "Locations            : 3 (0 excluded)")
	assert.Contains(t, s, "Windows              : 20 x 5 days")
	assert.Contains(t, s, "Pre-flared           : 1")
	assert.Contains(t, s, "Link components      : 1 (largest 3)")
	assert.Contains(t, s, "Conflict period      : 2012-02-29 to 2012-06-07")
}

func TestRunHistory_MissingDatabase(t *testing.T) {
	err := runHistory(context.Background(), filepath.Join(t.TempDir(), "none.db"), "", 0, &bytes.Buffer{})
	assert.Error(t, err)
}
