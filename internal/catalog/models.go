package catalog

import (
	"strings"
	"unicode"
)

const (
	// GridSize is the side length of the square galaxy grid.
	GridSize = 100

	// PCToLY converts parsecs to light-years.
	PCToLY = 3.26156
)

// RawStar is one usable row of the source catalog, positions in light-years.
type RawStar struct {
	CatalogID string
	HIP       string
	Proper    string
	RA        string
	Dec       string
	DistPC    float64
	DistLY    float64
	XLY       float64
	YLY       float64
	ZLY       float64
	Spect     string
	Mag       string
	Lum       string
	AbsMag    string

	IsHome bool
	GridX  int
	GridY  int
}

// HasCatalogName reports whether the source catalog supplied a proper name.
func (s *RawStar) HasCatalogName() bool {
	return strings.TrimSpace(s.Proper) != ""
}

// StarRecord is one surviving star of the built catalog.
type StarRecord struct {
	ID         int     `json:"id"`
	Name       string  `json:"proper"`
	DistanceLY float64 `json:"dist_ly"`
	GridX      int     `json:"grid_x"`
	GridY      int     `json:"grid_y"`
	Spect      string  `json:"spect"`
}

// SpectralLetter is the first letter of the spectral type, upper-cased, or
// '?' when the type carries none.
func (s StarRecord) SpectralLetter() byte {
	return SpectralLetter(s.Spect)
}

func SpectralLetter(spect string) byte {
	for _, r := range strings.ToUpper(spect) {
		if unicode.IsLetter(r) && r < unicode.MaxASCII {
			return byte(r)
		}
	}
	return '?'
}

// Params configures one catalog build.
type Params struct {
	RadiusLY float64
	MaxStars int
	Scale    float64
}

// Report counts what each pipeline stage kept and dropped.
type Report struct {
	Loaded          int `json:"loaded"`
	SkippedRows     int `json:"skipped_rows"`
	WithinRadius    int `json:"within_radius"`
	Selected        int `json:"selected"`
	PrunedOffMap    int `json:"pruned_off_map"`
	PrunedCollision int `json:"pruned_collision"`
	Survivors       int `json:"survivors"`
}

// Catalog is the output of a build: stars ordered by distance with dense ids
// from 0, and the rendered grid.
type Catalog struct {
	Stars  []StarRecord `json:"stars"`
	Map    *GridMap     `json:"-"`
	Report Report       `json:"report"`
}

// Home returns the home star, which is always id 0.
func (c *Catalog) Home() (StarRecord, bool) {
	if len(c.Stars) == 0 {
		return StarRecord{}, false
	}
	return c.Stars[0], true
}

func (c *Catalog) Star(id int) (StarRecord, bool) {
	if id < 0 || id >= len(c.Stars) {
		return StarRecord{}, false
	}
	return c.Stars[id], true
}
