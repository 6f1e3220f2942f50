package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testFlagSet(flags *RunConfig) *pflag.FlagSet {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.Int64Var(&flags.Seed, "seed", 42, "")
	fs.IntVar(&flags.Days, "days", 0, "")
	fs.IntVar(&flags.WindowSize, "window-size", 0, "")
	fs.StringSliceVar(&flags.Voters, "voters", []string{"national-population"}, "")
	fs.StringVar(&flags.Aggregation, "aggregation", "any", "")
	return fs
}

func writeYAML(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "run.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestResolveRunConfig_ExplicitFlagsWinOverYAML(t *testing.T) {
	// GIVEN a YAML config setting seed, days and aggregation
	path := writeYAML(t, "seed: 3\ndays: 300\naggregation: majority\n")
	var flags RunConfig
	fs := testFlagSet(&flags)

	// WHEN --seed is given explicitly
	require.NoError(t, fs.Parse([]string{"--seed=7"}))
	cfg, err := resolveRunConfig(fs, flags, path)
	require.NoError(t, err)

	// THEN the flag wins, YAML fills what was not given, defaults fill the rest
	assert.Equal(t, int64(7), cfg.Seed)
	assert.Equal(t, 300, cfg.Days)
	assert.Equal(t, "majority", cfg.Aggregation)
	assert.Equal(t, []string{"national-population"}, cfg.Voters)
}

func TestResolveRunConfig_NoConfigFile_UsesFlags(t *testing.T) {
	var flags RunConfig
	fs := testFlagSet(&flags)
	require.NoError(t, fs.Parse([]string{"--days=50"}))

	cfg, err := resolveRunConfig(fs, flags, "")
	require.NoError(t, err)
	assert.Equal(t, 50, cfg.Days)
	assert.Equal(t, int64(42), cfg.Seed)
}

func TestResolveRunConfig_UnknownKey_Fails(t *testing.T) {
	// GIVEN a typo in the YAML keys
	path := writeYAML(t, "sead: 3\n")
	var flags RunConfig
	fs := testFlagSet(&flags)
	require.NoError(t, fs.Parse(nil))

	// THEN strict parsing rejects it
	_, err := resolveRunConfig(fs, flags, path)
	assert.ErrorContains(t, err, "sead")
}

func TestResolveRunConfig_MissingFile(t *testing.T) {
	var flags RunConfig
	fs := testFlagSet(&flags)

	_, err := resolveRunConfig(fs, flags, filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}
