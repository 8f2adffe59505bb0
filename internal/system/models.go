package system

import (
	"universe-builder/internal/catalog"
	"universe-builder/internal/planet"
)

// Universe is the read side of the universe currently being served.
type Universe interface {
	Fingerprint() string
	Star(id int) (catalog.StarRecord, bool)
	PlanetParams() planet.Params
}

// Provider hands out the current universe. It returns an error while no
// universe has been built yet.
type Provider interface {
	Current() (Universe, error)
}

// View is one star system as served over the API.
type View struct {
	Star    catalog.StarRecord       `json:"star"`
	Objects []planet.CelestialObject `json:"objects"`
	Summary Summary                  `json:"summary"`
}

type Summary struct {
	Primaries int                      `json:"primaries"`
	Moons     int                      `json:"moons"`
	ByClass   map[planet.ClassCode]int `json:"by_class"`
}

func summarize(objects []planet.CelestialObject) Summary {
	s := Summary{ByClass: make(map[planet.ClassCode]int)}
	for _, o := range objects {
		if o.IsMoon {
			s.Moons++
		} else {
			s.Primaries++
		}
		s.ByClass[o.Class]++
	}
	return s
}
