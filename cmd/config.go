package cmd

import (
	"bytes"
	"fmt"
	"os"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"
)

// RunConfig holds every parameter of a prediction run. It can be read from a
// YAML file given with --config; flags set on the command line win over it.
type RunConfig struct {
	Seed        int64    `yaml:"seed"`
	Days        int      `yaml:"days"`        // 0 = Length from conflict_period.csv
	WindowSize  int      `yaml:"window_size"` // 0 = gcd(days, days/20)
	Voters      []string `yaml:"voters"`
	Aggregation string   `yaml:"aggregation"`
	SkipInvalid bool     `yaml:"skip_invalid"`
	Trace       string   `yaml:"trace"`
	Output      string   `yaml:"output"` // "" = <scenario>/input_csv/conflicts.csv
	DB          string   `yaml:"db"`     // run history; "" disables recording
	Members     int      `yaml:"members"`
	Concurrency int      `yaml:"concurrency"`
}

// loadRunConfig decodes the YAML file at path over cfg. Keys absent from the
// file keep their current value; unknown keys are an error.
func loadRunConfig(path string, cfg *RunConfig) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading run config: %w", err)
	}
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(cfg); err != nil {
		return fmt.Errorf("parsing run config %s: %w", path, err)
	}
	return nil
}

// override copies into c each field of flags whose flag was set explicitly.
func (c *RunConfig) override(flags RunConfig, fs *pflag.FlagSet) {
	set := map[string]func(){
		"seed":         func() { c.Seed = flags.Seed },
		"days":         func() { c.Days = flags.Days },
		"window-size":  func() { c.WindowSize = flags.WindowSize },
		"voters":       func() { c.Voters = flags.Voters },
		"aggregation":  func() { c.Aggregation = flags.Aggregation },
		"skip-invalid": func() { c.SkipInvalid = flags.SkipInvalid },
		"trace":        func() { c.Trace = flags.Trace },
		"output":       func() { c.Output = flags.Output },
		"db":           func() { c.DB = flags.DB },
		"members":      func() { c.Members = flags.Members },
		"concurrency":  func() { c.Concurrency = flags.Concurrency },
	}
	for name, apply := range set {
		if f := fs.Lookup(name); f != nil && f.Changed {
			apply()
		}
	}
}

// resolveRunConfig merges the flag values with the --config file, if any.
func resolveRunConfig(fs *pflag.FlagSet, flags RunConfig, configPath string) (RunConfig, error) {
	cfg := flags
	if configPath == "" {
		return cfg, nil
	}
	if err := loadRunConfig(configPath, &cfg); err != nil {
		return RunConfig{}, err
	}
	cfg.override(flags, fs)
	return cfg, nil
}
