package planet

// ClassCode is the two-letter physical type of a celestial object.
type ClassCode string

const (
	ClassRockyPlanet  ClassCode = "RP"
	ClassDesertPlanet ClassCode = "DP"
	ClassIcePlanet    ClassCode = "IC"
	ClassGasGiant     ClassCode = "GG"
	ClassRockyMoon    ClassCode = "RM"
	ClassIcyMoon      ClassCode = "IM"
	ClassAsteroid     ClassCode = "AS"
)

var AllClasses = []ClassCode{
	ClassRockyPlanet, ClassDesertPlanet, ClassIcePlanet, ClassGasGiant,
	ClassRockyMoon, ClassIcyMoon, ClassAsteroid,
}

func (c ClassCode) Valid() bool {
	switch c {
	case ClassRockyPlanet, ClassDesertPlanet, ClassIcePlanet, ClassGasGiant,
		ClassRockyMoon, ClassIcyMoon, ClassAsteroid:
		return true
	}
	return false
}

// MaxMoons is the most moons a primary of this class may host.
func (c ClassCode) MaxMoons() int {
	switch c {
	case ClassRockyPlanet, ClassDesertPlanet, ClassIcePlanet:
		return 1
	case ClassGasGiant:
		return 3
	default:
		return 0
	}
}

const (
	// LocalMapSize is the side length of a system's local orbital map.
	LocalMapSize = 50

	localCenter = LocalMapSize / 2
)

// CelestialObject is one planet, moon or asteroid of a star system.
type CelestialObject struct {
	SystemID       int       `json:"system_id"`
	ObjectID       int       `json:"object_id"`
	Name           string    `json:"name"`
	Class          ClassCode `json:"class"`
	ParentObjectID *int      `json:"parent_object_id"`
	IsMoon         bool      `json:"is_moon"`
	LocalX         int       `json:"local_x"`
	LocalY         int       `json:"local_y"`
	OreRichness    int       `json:"ore_richness"`
	FuelRichness   int       `json:"fuel_richness"`
	Habitability   int       `json:"habitability"`
	Risk           int       `json:"risk"`
}

// Params are the generation inputs shared by every system of a run.
type Params struct {
	GlobalSeed   int64
	MaxPrimaries int
}

// ObjectRow is the persisted form of an object, including its artifact tag.
type ObjectRow struct {
	CelestialObject
	ArtifactFlag bool   `json:"artifact_flag"`
	ArtifactType string `json:"artifact_type"`
}
