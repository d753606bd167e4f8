// Package constraint implements the rule set that decides, for each entity
// the pipeline generates, which values are legal given everything generated
// so far: chronological date windows, tumor/normal pairing, gene-to-drug
// matching, pathogenicity skew, and disease-trajectory plausibility.
//
// Every rule is a pure function of its inputs plus an injected random
// source, so a fixed seed reproduces a run's decisions exactly.
package constraint

import (
	"math/rand"
	"time"
)

// Generation count policies, inclusive bounds.
const (
	MinDiagnosesPerPatient = 1
	MaxDiagnosesPerPatient = 2
	MinSamplesPerDiagnosis = 1
	MaxSamplesPerDiagnosis = 3
	MinVariantsPerJob      = 2
	MaxVariantsPerJob      = 5
	MinFollowupsPerPatient = 1
	MaxFollowupsPerPatient = 3
)

// Temporal policies, in days.
const (
	MinPatientAgeYears    = 30
	MaxPatientAgeYears    = 80
	DiagnosisLookbackDays = 2 * 365
	MinFollowupLagDays    = 30
	MaxFollowupLagDays    = 60
	MinFollowupGapDays    = 60
	MaxFollowupGapDays    = 120
)

// Engine is the injectable random source behind every constrained choice.
// A zero seed selects a time-based seed for production runs; tests pass a
// fixed seed for reproducibility.
type Engine struct {
	rng *rand.Rand
	now func() time.Time
}

// New returns an Engine seeded with seed, or with the current time when
// seed is zero.
func New(seed int64) *Engine {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Engine{
		rng: rand.New(rand.NewSource(seed)),
		now: time.Now,
	}
}

// NewWithClock returns an Engine with a fixed clock, for tests that assert
// date-window boundaries.
func NewWithClock(seed int64, now func() time.Time) *Engine {
	e := New(seed)
	if now != nil {
		e.now = now
	}
	return e
}

// Now returns the engine's notion of the current time.
func (e *Engine) Now() time.Time {
	return e.now()
}

// IntBetween returns a uniform int in [lo, hi].
func (e *Engine) IntBetween(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + e.rng.Intn(hi-lo+1)
}

// Int64Between returns a uniform int64 in [lo, hi].
func (e *Engine) Int64Between(lo, hi int64) int64 {
	if hi <= lo {
		return lo
	}
	return lo + e.rng.Int63n(hi-lo+1)
}

// FloatBetween returns a uniform float64 in [lo, hi).
func (e *Engine) FloatBetween(lo, hi float64) float64 {
	return lo + e.rng.Float64()*(hi-lo)
}

// Intn exposes the underlying uniform integer draw.
func (e *Engine) Intn(n int) int {
	return e.rng.Intn(n)
}

// Perm exposes the underlying permutation draw.
func (e *Engine) Perm(n int) []int {
	return e.rng.Perm(n)
}

// Pick returns a uniformly chosen element of pool. Empty pools panic; every
// reference table this is used with is non-empty by construction.
func Pick[T any](e *Engine, pool []T) T {
	return pool[e.rng.Intn(len(pool))]
}

// Sample returns up to n distinct elements of pool in random order.
func Sample[T any](e *Engine, pool []T, n int) []T {
	if n > len(pool) {
		n = len(pool)
	}
	idx := e.rng.Perm(len(pool))[:n]
	out := make([]T, 0, n)
	for _, i := range idx {
		out = append(out, pool[i])
	}
	return out
}

// Weighted pairs a candidate value with its selection weight.
type Weighted[T any] struct {
	Value  T
	Weight int
}

// WeightedChoice draws one value from a weighted categorical distribution.
// Items with non-positive weight are never chosen.
func WeightedChoice[T any](e *Engine, items []Weighted[T]) T {
	total := 0
	for _, it := range items {
		if it.Weight > 0 {
			total += it.Weight
		}
	}
	n := e.rng.Intn(total)
	for _, it := range items {
		if it.Weight <= 0 {
			continue
		}
		if n < it.Weight {
			return it.Value
		}
		n -= it.Weight
	}
	// Unreachable with a positive total.
	return items[len(items)-1].Value
}
