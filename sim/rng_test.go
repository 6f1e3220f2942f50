package sim

import (
	"math"
	"math/rand"
	"testing"
)

// === SimulationKey Tests ===

func TestSimulationKey_Creation(t *testing.T) {
	tests := []struct {
		name string
		seed int64
	}{
		{"positive seed", 42},
		{"zero seed", 0},
		{"negative seed", -1},
		{"max int64", math.MaxInt64},
		{"min int64", math.MinInt64},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key := NewSimulationKey(tt.seed)
			if int64(key) != tt.seed {
				t.Errorf("NewSimulationKey(%d) = %d, want %d", tt.seed, key, tt.seed)
			}
		})
	}
}

// === PartitionedRNG Tests ===

func TestPartitionedRNG_DeterministicDerivation(t *testing.T) {
	// Same key+name produces same sequence
	rng1 := NewPartitionedRNG(NewSimulationKey(42))
	rng2 := NewPartitionedRNG(NewSimulationKey(42))

	for i := 0; i < 3; i++ {
		v1 := rng1.ForSubsystem(SubsystemExpansion).Float64()
		v2 := rng2.ForSubsystem(SubsystemExpansion).Float64()
		if v1 != v2 {
			t.Errorf("Value %d: got %v and %v, want identical", i, v1, v2)
		}
	}
}

func TestPartitionedRNG_SubsystemIsolation(t *testing.T) {
	// Drawing votes must not shift the onset-day sequence
	rngA := NewPartitionedRNG(NewSimulationKey(42))
	rngB := NewPartitionedRNG(NewSimulationKey(42))

	for i := 0; i < 10; i++ {
		rngA.ForSubsystem(SubsystemVoting).Float64()
	}

	a := rngA.ForSubsystem(SubsystemExpansion).Float64()
	b := rngB.ForSubsystem(SubsystemExpansion).Float64()
	if a != b {
		t.Errorf("expansion first value = %v after voting draws, want %v (isolation broken)", a, b)
	}
}

func TestPartitionedRNG_VotingUsesMasterSeed(t *testing.T) {
	seed := int64(42)
	voting := NewPartitionedRNG(NewSimulationKey(seed)).ForSubsystem(SubsystemVoting)
	direct := rand.New(rand.NewSource(seed))

	for i := 0; i < 10; i++ {
		if got, want := voting.Float64(), direct.Float64(); got != want {
			t.Errorf("Value %d: voting RNG = %v, direct RNG = %v", i, got, want)
		}
	}
}

func TestPartitionedRNG_CachesInstance(t *testing.T) {
	rng := NewPartitionedRNG(NewSimulationKey(42))
	if rng.ForSubsystem(SubsystemVoting) != rng.ForSubsystem(SubsystemVoting) {
		t.Error("ForSubsystem returned different instances for same name")
	}
}

func TestPartitionedRNG_Key(t *testing.T) {
	seed := int64(12345)
	rng := NewPartitionedRNG(NewSimulationKey(seed))

	if rng.Key() != SimulationKey(seed) {
		t.Errorf("Key() = %v, want %v", rng.Key(), seed)
	}
}

func TestPartitionedRNG_MemberKeys_DistinctAndStable(t *testing.T) {
	rng := NewPartitionedRNG(NewSimulationKey(7))
	seen := make(map[SimulationKey]int)
	for i := 0; i < 50; i++ {
		k := rng.MemberKey(i)
		if prev, ok := seen[k]; ok {
			t.Fatalf("members %d and %d share key %d", prev, i, k)
		}
		seen[k] = i
	}
	if NewPartitionedRNG(NewSimulationKey(7)).MemberKey(3) != rng.MemberKey(3) {
		t.Error("MemberKey not deterministic")
	}
}

func TestPartitionedRNG_LazyInitialization(t *testing.T) {
	rng := NewPartitionedRNG(NewSimulationKey(42))

	if len(rng.subsystems) != 0 {
		t.Errorf("New PartitionedRNG has %d subsystems, want 0", len(rng.subsystems))
	}

	rng.ForSubsystem(SubsystemVoting)

	if len(rng.subsystems) != 1 {
		t.Errorf("After one ForSubsystem call, have %d subsystems, want 1", len(rng.subsystems))
	}
}

func TestFnv1a64_Collision(t *testing.T) {
	names := []string{SubsystemVoting, SubsystemExpansion, "member_0", "member_1", "member_100", ""}

	hashes := make(map[int64]string)
	for _, name := range names {
		h := fnv1a64(name)
		if existing, ok := hashes[h]; ok {
			t.Errorf("Hash collision: %q and %q both hash to %d", name, existing, h)
		}
		hashes[h] = name
	}
}

func TestSubsystemMember(t *testing.T) {
	tests := []struct {
		id   int
		want string
	}{
		{0, "member_0"},
		{1, "member_1"},
		{100, "member_100"},
	}

	for _, tt := range tests {
		if got := SubsystemMember(tt.id); got != tt.want {
			t.Errorf("SubsystemMember(%d) = %q, want %q", tt.id, got, tt.want)
		}
	}
}

func BenchmarkPartitionedRNG_ForSubsystem_CacheHit(b *testing.B) {
	rng := NewPartitionedRNG(NewSimulationKey(42))
	rng.ForSubsystem(SubsystemVoting)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		rng.ForSubsystem(SubsystemVoting)
	}
}
