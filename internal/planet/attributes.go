package planet

import (
	"fmt"

	"universe-builder/internal/catalog"
	"universe-builder/internal/shared/dice"
)

var habitabilityByStar = map[byte]int{
	'O': 5, 'B': 5, 'A': 15, 'F': 30, 'G': 50, 'K': 45, 'M': 35,
}

var riskByStar = map[byte]int{
	'O': 25, 'B': 25, 'A': 15, 'F': 10, 'G': 0, 'K': -5, 'M': -10,
}

var habitabilityByClass = map[ClassCode]int{
	ClassRockyPlanet:  30,
	ClassDesertPlanet: 10,
	ClassIcePlanet:    0,
	ClassGasGiant:     -25,
	ClassRockyMoon:    20,
	ClassIcyMoon:      0,
	ClassAsteroid:     -10,
}

var riskByClass = map[ClassCode]int{
	ClassRockyPlanet:  40,
	ClassDesertPlanet: 60,
	ClassIcePlanet:    50,
	ClassGasGiant:     80,
	ClassRockyMoon:    45,
	ClassIcyMoon:      55,
	ClassAsteroid:     65,
}

const (
	defaultStarHabitability = 30
	defaultClassRisk        = 50
)

type Attributes struct {
	Habitability int
	Risk         int
	OreRichness  int
	FuelRichness int
}

// ComputeAttributes derives an object's attributes from a hash of its
// identity, so any single object can be regenerated on its own.
func ComputeAttributes(systemID, objectID int, class ClassCode, spect string) Attributes {
	h := dice.Hash32(fmt.Sprintf("%d:%d:%s", systemID, objectID, class))
	letter := catalog.SpectralLetter(spect)

	habStar, ok := habitabilityByStar[letter]
	if !ok {
		habStar = defaultStarHabitability
	}
	riskClass, ok := riskByClass[class]
	if !ok {
		riskClass = defaultClassRisk
	}

	habJitter := int(h&0x0F) - 8
	riskJitter := int((h>>4)&0x0F) - 8

	return Attributes{
		Habitability: dice.Clamp(habStar+habitabilityByClass[class]+habJitter, 0, 100),
		Risk:         dice.Clamp(riskClass+riskByStar[letter]+riskJitter, 0, 100),
		OreRichness:  oreTier(class, byte(h>>8)),
		FuelRichness: fuelTier(class, byte(h>>16)),
	}
}

func oreTier(class ClassCode, b byte) int {
	switch class {
	case ClassRockyPlanet, ClassDesertPlanet, ClassRockyMoon, ClassAsteroid:
		return tier(b, 25, 100, 200)
	case ClassIcePlanet, ClassIcyMoon:
		return tier(b, 80, 180, 230)
	default:
		return 0
	}
}

func fuelTier(class ClassCode, b byte) int {
	if class == ClassGasGiant {
		if b < 128 {
			return 2
		}
		return 3
	}
	return tier(b, 40, 160, 230)
}

// tier buckets b into 0..3 by ascending thresholds.
func tier(b byte, t1, t2, t3 byte) int {
	switch {
	case b < t1:
		return 0
	case b < t2:
		return 1
	case b < t3:
		return 2
	default:
		return 3
	}
}

func applyAttributes(spect string, objects []CelestialObject) {
	for i := range objects {
		o := &objects[i]
		a := ComputeAttributes(o.SystemID, o.ObjectID, o.Class, spect)
		o.Habitability = a.Habitability
		o.Risk = a.Risk
		o.OreRichness = a.OreRichness
		o.FuelRichness = a.FuelRichness
	}
}
