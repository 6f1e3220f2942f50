package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jataware/flee-modeling/sim/internal/testutil"
)

func TestExpand_Shape(t *testing.T) {
	// GIVEN a W x L matrix
	m := Matrix{{0, 1, 0}, {0, 1, 1}, {1, 1, 1}, {1, 1, 1}}

	// WHEN expanded with S = 7
	days, err := Expand(m, 7, NewPartitionedRNG(NewSimulationKey(1)).ForSubsystem(SubsystemExpansion))
	require.NoError(t, err)

	// THEN the output is W*S rows by L columns
	assert.Equal(t, 28, days.Rows())
	assert.Equal(t, 3, days.Cols())
}

func TestExpand_OnsetDay(t *testing.T) {
	tests := []struct {
		name string
		draw float64
		want []int // days of the single location over two windows of 4
	}{
		{"lowest draw flares on day 0", 0, []int{0, 0, 0, 0, 1, 1, 1, 1}},
		{"middle draw", 0.5, []int{0, 0, 0, 0, 0, 0, 1, 1}},
		{"highest draw defers to next window", 0.99, []int{0, 0, 0, 0, 0, 0, 0, 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			days, err := Expand(Matrix{{0}, {1}}, 4, testutil.NewFixedSource(tt.draw))
			require.NoError(t, err)
			assert.Equal(t, tt.want, days.Column(0))
		})
	}
}

func TestExpand_DeferredOnset_FillsLaterWindows(t *testing.T) {
	// GIVEN an onset drawn at window_size in window 1
	days, err := Expand(Matrix{{0}, {1}, {1}}, 3, testutil.NewFixedSource(0.99))
	require.NoError(t, err)

	// THEN window 1 stays calm and window 2 is fully flared
	assert.Equal(t, []int{0, 0, 0, 0, 0, 0, 1, 1, 1}, days.Column(0))
}

func TestExpand_WindowZeroFlare_CoversWholeWindowWithoutDraw(t *testing.T) {
	src := testutil.NewFixedSource(0.99)
	days, err := Expand(Matrix{{1}, {1}}, 5, src)
	require.NoError(t, err)

	assert.Equal(t, []int{1, 1, 1, 1, 1, 1, 1, 1, 1, 1}, days.Column(0))
	assert.Equal(t, 0, src.Draws)
}

func TestExpand_OneDrawPerFlaringLocation(t *testing.T) {
	src := testutil.NewFixedSource(0.2)
	_, err := Expand(Matrix{{0, 0, 0}, {1, 0, 0}, {1, 1, 0}}, 10, src)
	require.NoError(t, err)
	assert.Equal(t, 2, src.Draws)
}

func TestExpand_Monotonic(t *testing.T) {
	m := Matrix{{0, 0}, {0, 1}, {1, 1}, {1, 1}, {1, 1}}
	rng := NewPartitionedRNG(NewSimulationKey(9)).ForSubsystem(SubsystemExpansion)
	days, err := Expand(m, 6, rng)
	require.NoError(t, err)
	for col := 0; col < days.Cols(); col++ {
		on := false
		for d, v := range days.Column(col) {
			if on {
				require.Equalf(t, 1, v, "column %d day %d", col, d)
			}
			on = on || v == 1
		}
	}
}

func TestExpand_Errors(t *testing.T) {
	_, err := Expand(Matrix{{0}}, 0, testutil.NewFixedSource(0))
	assert.Error(t, err)

	_, err = Expand(Matrix{{0, 1}, {1}}, 2, testutil.NewFixedSource(0))
	assert.Error(t, err)
}
