package universe

import (
	"cmp"
	"slices"
	"time"

	"universe-builder/internal/artifact"
	"universe-builder/internal/catalog"
	"universe-builder/internal/planet"
)

// Params configures one universe build. Every stage receives its slice
// explicitly.
type Params struct {
	Name         string
	Catalog      catalog.Params
	Planet       planet.Params
	ArtifactRate float64
}

// Metadata describes a built universe. It heads universe.json and is the
// row stored in the universes table.
type Metadata struct {
	ID           int            `json:"id,omitempty"`
	Name         string         `json:"name"`
	Seed         int64          `json:"seed"`
	RadiusLY     float64        `json:"radius_ly"`
	Scale        float64        `json:"scale"`
	MaxStars     int            `json:"max_stars"`
	MaxPrimaries int            `json:"max_primaries"`
	ArtifactRate float64        `json:"artifact_rate"`
	StarCount    int            `json:"star_count"`
	ObjectCount  int            `json:"object_count"`
	Fingerprint  string         `json:"fingerprint"`
	Report       catalog.Report `json:"report"`
	Artifacts    artifact.Stats `json:"artifacts"`
	CreatedAt    time.Time      `json:"created_at,omitzero"`
}

// Universe is the full output of a build.
type Universe struct {
	Metadata Metadata
	Catalog  *catalog.Catalog
	Objects  []planet.ObjectRow

	params Params
	raw    []catalog.RawStar
	stats  catalog.LoadStats
}

func (u *Universe) Fingerprint() string { return u.Metadata.Fingerprint }

func (u *Universe) Star(id int) (catalog.StarRecord, bool) { return u.Catalog.Star(id) }

func (u *Universe) PlanetParams() planet.Params { return u.params.Planet }

func (u *Universe) Params() Params { return u.params }

// ObjectsForSystem returns the stored objects of one system.
func (u *Universe) ObjectsForSystem(systemID int) []planet.ObjectRow {
	lo, _ := slices.BinarySearchFunc(u.Objects, systemID, func(o planet.ObjectRow, id int) int {
		return cmp.Compare(o.SystemID, id)
	})
	end := lo
	for end < len(u.Objects) && u.Objects[end].SystemID == systemID {
		end++
	}
	return u.Objects[lo:end]
}

// Bundle is the JSON document written as universe.json.
type Bundle struct {
	Metadata Metadata             `json:"metadata"`
	Stars    []catalog.StarRecord `json:"stars"`
	Objects  []planet.ObjectRow   `json:"objects"`
}
