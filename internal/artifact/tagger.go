// Package artifact marks objects hosting alien ruins or relics. Placement is
// a pure function of the seed, the object's ids and its class.
package artifact

import (
	"encoding/binary"
	"fmt"
	"strconv"
	"strings"

	"universe-builder/internal/planet"
	"universe-builder/internal/shared/dice"
	"universe-builder/internal/shared/errors"

	"github.com/zyedidia/generic/mapset"
)

type Type string

const (
	TypeRelic      Type = "ARC"
	TypeRuins      Type = "RUI"
	TypeFacility   Type = "FAC"
	TypeBeacon     Type = "BEA"
	TypeEnergy     Type = "ENG"
	TypeTechnology Type = "TEC"
)

var typeTable = dice.Table[Type]{
	{Value: TypeRelic, Weight: 40},
	{Value: TypeRuins, Weight: 25},
	{Value: TypeFacility, Weight: 15},
	{Value: TypeBeacon, Weight: 10},
	{Value: TypeEnergy, Weight: 7},
	{Value: TypeTechnology, Weight: 3},
}

// DefaultRate is the share of eligible objects that host an artifact.
const DefaultRate = 0.02

var eligibleClasses = func() mapset.Set[planet.ClassCode] {
	s := mapset.New[planet.ClassCode]()
	for _, c := range []planet.ClassCode{
		planet.ClassRockyPlanet, planet.ClassDesertPlanet, planet.ClassIcePlanet,
		planet.ClassRockyMoon, planet.ClassIcyMoon, planet.ClassAsteroid,
	} {
		s.Put(c)
	}
	return s
}()

// Eligible reports whether objects of class c can host artifacts. Gas giants
// never do.
func Eligible(c planet.ClassCode) bool {
	return eligibleClasses.Has(c)
}

type Tag struct {
	Flag bool `json:"artifact_flag"`
	Type Type `json:"artifact_type,omitempty"`
}

type Tagger struct {
	seed int64
	rate float64
}

func NewTagger(seed int64, rate float64) (*Tagger, error) {
	if rate < 0 || rate > 1 {
		return nil, errors.Configf("artifact rate must be between 0.0 and 1.0, got %v", rate)
	}
	return &Tagger{seed: seed, rate: rate}, nil
}

// TagFields tags an object given its ids as they appear in the objects table.
func (t *Tagger) TagFields(systemID, objectID, class string) Tag {
	c := planet.ClassCode(strings.ToUpper(strings.TrimSpace(class)))
	if !Eligible(c) {
		return Tag{}
	}

	key := fmt.Sprintf("%d:%s:%s:artifact", t.seed, strings.TrimSpace(systemID), strings.TrimSpace(objectID))
	sum := dice.Sum(key)
	hMain := binary.BigEndian.Uint32(sum[0:4])
	extra := binary.BigEndian.Uint32(sum[4:8])

	if dice.Unit(hMain) >= t.rate {
		return Tag{}
	}
	return Tag{Flag: true, Type: typeTable.PickHash(extra)}
}

func (t *Tagger) Tag(o planet.CelestialObject) Tag {
	return t.TagFields(strconv.Itoa(o.SystemID), strconv.Itoa(o.ObjectID), string(o.Class))
}

// TagAll returns the objects with their artifact tags attached.
func (t *Tagger) TagAll(objects []planet.CelestialObject) []planet.ObjectRow {
	rows := make([]planet.ObjectRow, len(objects))
	for i, o := range objects {
		tag := t.Tag(o)
		rows[i] = planet.ObjectRow{
			CelestialObject: o,
			ArtifactFlag:    tag.Flag,
			ArtifactType:    string(tag.Type),
		}
	}
	return rows
}

// Stats counts the outcome of a tagging pass.
type Stats struct {
	Objects  int          `json:"objects"`
	Eligible int          `json:"eligible"`
	Flagged  int          `json:"flagged"`
	ByType   map[Type]int `json:"by_type"`
}

func (s *Stats) add(class string, tag Tag) {
	s.Objects++
	if Eligible(planet.ClassCode(strings.ToUpper(strings.TrimSpace(class)))) {
		s.Eligible++
	}
	if !tag.Flag {
		return
	}
	s.Flagged++
	if s.ByType == nil {
		s.ByType = make(map[Type]int)
	}
	s.ByType[tag.Type]++
}

func Summarize(rows []planet.ObjectRow) Stats {
	var s Stats
	for _, r := range rows {
		s.add(string(r.Class), Tag{Flag: r.ArtifactFlag, Type: Type(r.ArtifactType)})
	}
	return s
}
