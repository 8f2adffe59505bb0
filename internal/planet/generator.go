package planet

import (
	"universe-builder/internal/catalog"
	"universe-builder/internal/shared/dice"
)

// HomeSystemID is the catalog id of the home star.
const HomeSystemID = 0

// Generate returns the objects of one star system. The result is a pure
// function of the star's id, name and spectral type and of params.
func Generate(star catalog.StarRecord, params Params) []CelestialObject {
	if star.ID == HomeSystemID {
		return homeSystem(star)
	}

	rng := dice.NewRand(dice.SystemSeed(params.GlobalSeed, star.ID))

	count := primaryCountTable.Roll(rng)
	if count <= 0 || params.MaxPrimaries <= 0 {
		return nil
	}
	count = min(count, params.MaxPrimaries)

	objects := make([]CelestialObject, 0, count*2)
	for range count {
		objects = append(objects, CelestialObject{
			SystemID: star.ID,
			ObjectID: len(objects),
			Class:    primaryClassTable.Roll(rng),
		})
	}

	if count >= 2 && rng.Float64() < asteroidChance {
		objects[rng.IntN(count)].Class = ClassAsteroid
	}

	for parent := 0; parent < count; parent++ {
		parentClass := objects[parent].Class
		if !CanHostMoons(parentClass) {
			continue
		}
		classes := moonClassTable(parentClass)
		moons := moonCountTable(parentClass).Roll(rng)
		for range moons {
			parentID := parent
			objects = append(objects, CelestialObject{
				SystemID:       star.ID,
				ObjectID:       len(objects),
				Class:          classes.Roll(rng),
				ParentObjectID: &parentID,
				IsMoon:         true,
			})
		}
	}

	assignNames(star.Name, objects)
	applyAttributes(star.Spect, objects)
	assignLocalCoordinates(star.ID, objects)
	return objects
}

// homeSystem is the fixed set of bodies around the home star. Only names,
// classes and hierarchy are fixed; attributes and placement follow the same
// hashing as every other system.
func homeSystem(star catalog.StarRecord) []CelestialObject {
	earth := 0
	objects := []CelestialObject{
		{SystemID: star.ID, ObjectID: 0, Name: "Earth", Class: ClassRockyPlanet},
		{SystemID: star.ID, ObjectID: 1, Name: "Luna", Class: ClassRockyMoon, ParentObjectID: &earth, IsMoon: true},
		{SystemID: star.ID, ObjectID: 2, Name: "Mars", Class: ClassRockyPlanet},
		{SystemID: star.ID, ObjectID: 3, Name: "Ceres", Class: ClassAsteroid},
	}
	applyAttributes(star.Spect, objects)
	assignLocalCoordinates(star.ID, objects)
	return objects
}
