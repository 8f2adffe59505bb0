package planet

import (
	"universe-builder/internal/shared/dice"

	"github.com/zyedidia/generic/mapset"
)

// asteroidChance is the probability that one primary of a multi-primary
// system is debris instead of a planet.
const asteroidChance = 0.20

var primaryCountTable = dice.Table[int]{
	{Value: 0, Weight: 10},
	{Value: 1, Weight: 25},
	{Value: 2, Weight: 30},
	{Value: 3, Weight: 20},
	{Value: 4, Weight: 10},
	{Value: 5, Weight: 5},
}

var primaryClassTable = dice.Table[ClassCode]{
	{Value: ClassRockyPlanet, Weight: 60},
	{Value: ClassDesertPlanet, Weight: 15},
	{Value: ClassIcePlanet, Weight: 15},
	{Value: ClassGasGiant, Weight: 10},
}

var (
	gasGiantMoonCounts = dice.Table[int]{
		{Value: 0, Weight: 20},
		{Value: 1, Weight: 40},
		{Value: 2, Weight: 30},
		{Value: 3, Weight: 10},
	}
	planetMoonCounts = dice.Table[int]{
		{Value: 0, Weight: 50},
		{Value: 1, Weight: 50},
	}
)

var (
	gasGiantMoonClasses = dice.Table[ClassCode]{
		{Value: ClassRockyMoon, Weight: 50},
		{Value: ClassIcyMoon, Weight: 50},
	}
	planetMoonClasses = dice.Table[ClassCode]{
		{Value: ClassRockyMoon, Weight: 70},
		{Value: ClassIcyMoon, Weight: 30},
	}
)

// moonHosts are the classes allowed to be a moon's parent.
var moonHosts = newClassSet(ClassRockyPlanet, ClassDesertPlanet, ClassIcePlanet, ClassGasGiant)

func newClassSet(classes ...ClassCode) mapset.Set[ClassCode] {
	s := mapset.New[ClassCode]()
	for _, c := range classes {
		s.Put(c)
	}
	return s
}

// CanHostMoons reports whether objects of class c may have moons.
func CanHostMoons(c ClassCode) bool {
	return moonHosts.Has(c)
}

func moonCountTable(parent ClassCode) dice.Table[int] {
	table := planetMoonCounts
	if parent == ClassGasGiant {
		table = gasGiantMoonCounts
	}
	limit := parent.MaxMoons()
	return table.Filter(func(n int) bool { return n <= limit })
}

func moonClassTable(parent ClassCode) dice.Table[ClassCode] {
	if parent == ClassGasGiant {
		return gasGiantMoonClasses
	}
	return planetMoonClasses
}
