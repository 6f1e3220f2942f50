package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewConfig_Defaults(t *testing.T) {
	got := NewConfig(300, 15)
	assert.Equal(t, 20, got.TotalWindows())
	assert.Equal(t, DefaultVoters(), got.Voters)
	assert.Equal(t, AggregateAny, got.Aggregation)
	assert.NoError(t, got.Validate())
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		ok     bool
	}{
		{"defaults", func(*Config) {}, true},
		{"empty voters use defaults", func(c *Config) { c.Voters = nil }, true},
		{"adjacency voter", func(c *Config) { c.Voters = []string{VoterAdjacency} }, true},
		{"zero days", func(c *Config) { c.SimulationDays = 0 }, false},
		{"negative window", func(c *Config) { c.WindowSize = -1 }, false},
		{"window longer than run", func(c *Config) { c.WindowSize = 400 }, false},
		{"unknown voter", func(c *Config) { c.Voters = []string{"rainfall"} }, false},
		{"unknown aggregation", func(c *Config) { c.Aggregation = "unanimous" }, false},
		{"unknown trace level", func(c *Config) { c.TraceLevel = "everything" }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewConfig(300, 15)
			tt.mutate(&cfg)
			if tt.ok {
				assert.NoError(t, cfg.Validate())
			} else {
				assert.Error(t, cfg.Validate())
			}
		})
	}
}

func TestDefaultWindowSize(t *testing.T) {
	tests := []struct {
		days, want int
	}{
		{2000, 100},
		{300, 15},
		{604, 2}, // gcd(604, 30)
		{10, 10}, // fewer than 20 days: one window
		{20, 1},
	}
	for _, tt := range tests {
		assert.Equalf(t, tt.want, DefaultWindowSize(tt.days), "days=%d", tt.days)
	}
}

func TestMatrix_Helpers(t *testing.T) {
	m := Matrix{{0, 1}, {1, 1}, {1, 1}}
	assert.Equal(t, 1, m.FirstFlare(0))
	assert.Equal(t, 0, m.FirstFlare(1))
	assert.Equal(t, -1, Matrix{{0}, {0}}.FirstFlare(0))
	assert.Equal(t, Matrix{{0, 1, 1}, {1, 1, 1}}, m.Transpose())
	assert.Equal(t, 0, Matrix{}.Cols())
}
