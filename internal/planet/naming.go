package planet

import (
	"fmt"
	"strconv"
)

var romanNumerals = []string{"I", "II", "III", "IV", "V", "VI", "VII", "VIII", "IX", "X"}

func primarySuffix(index int) string {
	if index < len(romanNumerals) {
		return romanNumerals[index]
	}
	return strconv.Itoa(index + 1)
}

// assignNames names primaries in order ("<system> II", "<system> Asteroid")
// and moons after their parent ("<system> II-a").
func assignNames(systemName string, objects []CelestialObject) {
	primary := 0
	for i := range objects {
		o := &objects[i]
		if o.IsMoon {
			continue
		}
		if o.Class == ClassAsteroid {
			o.Name = systemName + " Asteroid"
		} else {
			o.Name = fmt.Sprintf("%s %s", systemName, primarySuffix(primary))
		}
		primary++
	}

	moonsPerParent := make(map[int]int)
	for i := range objects {
		o := &objects[i]
		if !o.IsMoon || o.ParentObjectID == nil {
			continue
		}
		parentID := *o.ParentObjectID
		base := systemName
		if parentID >= 0 && parentID < len(objects) {
			base = objects[parentID].Name
		}
		letter := rune('a' + moonsPerParent[parentID])
		moonsPerParent[parentID]++
		o.Name = fmt.Sprintf("%s-%c", base, letter)
	}
}
