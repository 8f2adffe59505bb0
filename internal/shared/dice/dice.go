// Package dice holds the deterministic randomness primitives shared by every
// generation stage: weighted tables, per-system seeding and keyed hashes.
package dice

import (
	"crypto/sha256"
	"encoding/binary"
	"math/rand/v2"
)

// goldenRatio32 spreads consecutive system ids across the seed space.
const goldenRatio32 = 0x9E3779B1

type Weighted[T any] struct {
	Value  T
	Weight int
}

// Table is an ordered list of weighted values. Order matters: cumulative
// thresholds are accumulated front to back.
type Table[T any] []Weighted[T]

func (t Table[T]) Total() int {
	total := 0
	for _, w := range t {
		total += w.Weight
	}
	return total
}

// Pick selects the entry whose cumulative threshold first exceeds draw, where
// draw is expected in [0, Total()). Draws at or past the total (floating point
// edge) fall back to the last entry.
func (t Table[T]) Pick(draw float64) T {
	acc := 0
	for _, w := range t {
		acc += w.Weight
		if draw < float64(acc) {
			return w.Value
		}
	}
	return t[len(t)-1].Value
}

// PickHash selects using an integer draw reduced modulo the total weight.
func (t Table[T]) PickHash(h uint32) T {
	return t.Pick(float64(h % uint32(t.Total())))
}

// Roll draws uniformly in [0, Total()) from rng and picks.
func (t Table[T]) Roll(rng *rand.Rand) T {
	return t.Pick(rng.Float64() * float64(t.Total()))
}

// Filter returns the entries accepted by keep, preserving order.
func (t Table[T]) Filter(keep func(T) bool) Table[T] {
	out := make(Table[T], 0, len(t))
	for _, w := range t {
		if keep(w.Value) {
			out = append(out, w)
		}
	}
	return out
}

// SystemSeed derives the local seed of one system from the global seed. It is
// a pure function of its inputs so systems can be generated in any order.
func SystemSeed(globalSeed int64, systemID int) uint64 {
	return uint64(globalSeed) ^ (uint64(systemID) * goldenRatio32)
}

// NewRand returns a generator private to the caller, seeded from seed.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^goldenRatio32))
}

// Sum is the SHA-256 digest of key.
func Sum(key string) [sha256.Size]byte {
	return sha256.Sum256([]byte(key))
}

// Hash32 is the first four bytes of SHA-256(key), big endian.
func Hash32(key string) uint32 {
	h := Sum(key)
	return binary.BigEndian.Uint32(h[:4])
}

// Hash16 is the first two bytes of SHA-256(key), big endian.
func Hash16(key string) uint16 {
	h := Sum(key)
	return binary.BigEndian.Uint16(h[:2])
}

// Unit maps a 32-bit hash uniformly onto [0, 1).
func Unit(h uint32) float64 {
	return float64(h) / (1 << 32)
}

func Clamp(value, lo, hi int) int {
	return max(lo, min(hi, value))
}
