package sim

import (
	"fmt"
	"hash/fnv"
	"math/rand"
)

// RandomSource yields uniform samples in [0, 1). *math/rand.Rand satisfies it,
// and tests inject fixed or scripted sources.
type RandomSource interface {
	Float64() float64
}

// === SimulationKey ===

// SimulationKey uniquely identifies a reproducible prediction run.
// Two runs with the same SimulationKey, Dataset and Config MUST produce
// bit-for-bit identical prediction matrices and day tables.
type SimulationKey int64

// NewSimulationKey creates a SimulationKey from a seed value.
func NewSimulationKey(seed int64) SimulationKey {
	return SimulationKey(seed)
}

// === Subsystem Constants ===

const (
	// SubsystemVoting feeds every threshold vote. Uses the master seed directly.
	SubsystemVoting = "voting"

	// SubsystemExpansion picks onset days when windows are expanded to days.
	SubsystemExpansion = "expansion"
)

// SubsystemMember returns the subsystem name for ensemble member i.
func SubsystemMember(i int) string {
	return fmt.Sprintf("member_%d", i)
}

// === PartitionedRNG ===

// PartitionedRNG provides deterministic, isolated RNG instances per subsystem,
// so drawing an onset day never shifts the sequence of votes.
//
// Derivation formula:
//   - For SubsystemVoting: uses masterSeed directly
//   - For all other subsystems: masterSeed XOR fnv1a64(subsystemName)
//
// Thread-safety: NOT thread-safe. Each run owns its own PartitionedRNG.
type PartitionedRNG struct {
	key        SimulationKey
	subsystems map[string]*rand.Rand
}

// NewPartitionedRNG creates a PartitionedRNG from a SimulationKey.
func NewPartitionedRNG(key SimulationKey) *PartitionedRNG {
	return &PartitionedRNG{
		key:        key,
		subsystems: make(map[string]*rand.Rand),
	}
}

// ForSubsystem returns a deterministically-seeded RNG for the named subsystem.
// The same subsystem name always returns the same *rand.Rand instance (cached).
func (p *PartitionedRNG) ForSubsystem(name string) *rand.Rand {
	if rng, ok := p.subsystems[name]; ok {
		return rng
	}
	derivedSeed := int64(p.key)
	if name != SubsystemVoting {
		derivedSeed ^= fnv1a64(name)
	}
	rng := rand.New(rand.NewSource(derivedSeed))
	p.subsystems[name] = rng
	return rng
}

// MemberKey derives the SimulationKey of ensemble member i.
func (p *PartitionedRNG) MemberKey(i int) SimulationKey {
	return SimulationKey(int64(p.key) ^ fnv1a64(SubsystemMember(i)))
}

// Key returns the SimulationKey used to create this PartitionedRNG.
func (p *PartitionedRNG) Key() SimulationKey {
	return p.key
}

func fnv1a64(s string) int64 {
	h := fnv.New64a()
	h.Write([]byte(s))
	return int64(h.Sum64())
}
