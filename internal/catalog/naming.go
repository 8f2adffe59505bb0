package catalog

import (
	"encoding/binary"
	"fmt"
	"strings"

	"universe-builder/internal/shared/dice"
)

var sectorPrefixes = []string{
	"Helion", "Koros", "Velarn", "Nadir", "Procyon",
	"Altaris", "Veyra", "Talios", "Meridian", "Triarch",
	"Nomad", "Aurigon", "Serpentis", "Draxis", "Cygnera",
	"Luyten", "Epsara", "Tauven", "Sigmar", "Zethys",
	"Khoras", "Frontier", "Pioneer", "Arcturon", "Vegaine",
}

var sectorTypes = []string{
	"Sector", "Cluster", "Reach", "Arc", "Belt", "Verge", "Expanse",
}

// SyntheticName returns a stable "<prefix> <type>-<NN>" name for a star the
// catalog left unnamed, such as "Koros Cluster-03".
func SyntheticName(s RawStar) string {
	rng := dice.NewRand(uint64(nameSeed(s)))

	prefix := sectorPrefixes[rng.IntN(len(sectorPrefixes))]
	kind := sectorTypes[rng.IntN(len(sectorTypes))]
	number := 1 + rng.IntN(99)

	return fmt.Sprintf("%s %s-%02d", prefix, kind, number)
}

// nameSeed derives a 31-bit seed from the catalog id, else the HIP number,
// else the position. Numeric identifiers are used directly.
func nameSeed(s RawStar) uint32 {
	base := strings.TrimSpace(s.CatalogID)
	if base == "" {
		base = strings.TrimSpace(s.HIP)
	}
	if base == "" {
		base = fmt.Sprintf("%.5f,%.5f,%.5f", s.XLY, s.YLY, s.ZLY)
	}

	if isDigits(base) {
		// Reducing digit by digit gives value & 0x7FFFFFFF for any length.
		var v uint64
		for _, r := range base {
			v = (v*10 + uint64(r-'0')) & 0x7FFFFFFF
		}
		return uint32(v)
	}

	sum := dice.Sum(base)
	return uint32(binary.BigEndian.Uint64(sum[:8]) & 0x7FFFFFFF)
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
