package catalog

import (
	"cmp"
	"math"
	"slices"
	"strconv"
	"strings"
)

// compareStars orders by distance and then by catalog identity so the result
// does not depend on input row order.
func compareStars(a, b RawStar) int {
	return cmp.Or(
		cmp.Compare(a.DistLY, b.DistLY),
		strings.Compare(a.CatalogID, b.CatalogID),
		strings.Compare(a.HIP, b.HIP),
		strings.Compare(a.Proper, b.Proper),
		cmp.Compare(a.XLY, b.XLY),
		cmp.Compare(a.YLY, b.YLY),
		cmp.Compare(a.ZLY, b.ZLY),
	)
}

// Select keeps the stars within radiusLY, nearest first, capped at maxStars.
// The nearest star is always kept and flagged as home.
func Select(stars []RawStar, radiusLY float64, maxStars int) []RawStar {
	within := make([]RawStar, 0, len(stars))
	for _, s := range stars {
		if s.DistLY <= radiusLY {
			s.IsHome = false
			within = append(within, s)
		}
	}
	if len(within) == 0 {
		return nil
	}

	slices.SortStableFunc(within, compareStars)

	if maxStars < 1 {
		maxStars = 1
	}
	if len(within) > maxStars {
		within = within[:maxStars]
	}
	within[0].IsHome = true
	return within
}

// Project assigns grid cells centered on the grid midpoint, scale light-years
// per cell. Stars falling outside the grid are dropped and counted.
func Project(stars []RawStar, scale float64) ([]RawStar, int) {
	center := float64(GridSize / 2)
	placed := make([]RawStar, 0, len(stars))
	offMap := 0

	for _, s := range stars {
		gx := int(math.RoundToEven(center + s.XLY/scale))
		gy := int(math.RoundToEven(center + s.YLY/scale))
		if gx < 0 || gx >= GridSize || gy < 0 || gy >= GridSize {
			offMap++
			continue
		}
		s.GridX, s.GridY = gx, gy
		placed = append(placed, s)
	}
	return placed, offMap
}

type cell struct{ x, y int }

// ResolveCollisions keeps one star per grid cell. The home star always wins
// its cell; otherwise catalog-named stars are preferred and the largest of
// the candidates is kept. Equal candidates resolve to the earliest in input
// order.
func ResolveCollisions(stars []RawStar) ([]RawStar, int) {
	var order []cell
	occupants := make(map[cell][]RawStar)
	for _, s := range stars {
		c := cell{s.GridX, s.GridY}
		if _, seen := occupants[c]; !seen {
			order = append(order, c)
		}
		occupants[c] = append(occupants[c], s)
	}

	survivors := make([]RawStar, 0, len(order))
	pruned := 0
	for _, c := range order {
		candidates := occupants[c]
		survivors = append(survivors, pickOccupant(candidates))
		pruned += len(candidates) - 1
	}
	return survivors, pruned
}

func pickOccupant(candidates []RawStar) RawStar {
	for _, s := range candidates {
		if s.IsHome {
			return s
		}
	}

	pool := candidates
	named := make([]RawStar, 0, len(candidates))
	for _, s := range candidates {
		if s.HasCatalogName() {
			named = append(named, s)
		}
	}
	if len(named) > 0 {
		pool = named
	}

	best := pool[0]
	bestSize := sizeOf(best)
	for _, s := range pool[1:] {
		if size := sizeOf(s); size.greater(bestSize) {
			best, bestSize = s, size
		}
	}
	return best
}

// starSize ranks stars lexicographically: luminosity data beats magnitude
// data, which beats proximity.
type starSize struct {
	hasLum  int
	primary float64
	second  float64
}

func (a starSize) greater(b starSize) bool {
	if a.hasLum != b.hasLum {
		return a.hasLum > b.hasLum
	}
	if a.primary != b.primary {
		return a.primary > b.primary
	}
	return a.second > b.second
}

func sizeOf(s RawStar) starSize {
	if lum, ok := parseOptional(s.Lum); ok {
		return starSize{hasLum: 1, primary: lum}
	}
	if mag, ok := parseOptional(s.Mag); ok {
		return starSize{primary: -mag}
	}
	return starSize{second: -s.DistLY}
}

func parseOptional(v string) (float64, bool) {
	if v == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || math.IsNaN(f) {
		return 0, false
	}
	return f, true
}

// Finalize sorts survivors by distance and assigns dense ids from 0, naming
// stars the source catalog left unnamed.
func Finalize(survivors []RawStar) []StarRecord {
	sorted := slices.Clone(survivors)
	slices.SortStableFunc(sorted, compareStars)

	records := make([]StarRecord, len(sorted))
	for i, s := range sorted {
		name := strings.TrimSpace(s.Proper)
		if name == "" {
			name = SyntheticName(s)
		}
		records[i] = StarRecord{
			ID:         i,
			Name:       name,
			DistanceLY: s.DistLY,
			GridX:      s.GridX,
			GridY:      s.GridY,
			Spect:      s.Spect,
		}
	}
	return records
}
