package planet

import (
	"fmt"
	"math"

	"universe-builder/internal/shared/dice"
)

var orbitRadii = []float64{5, 8, 11, 14, 17, 20}

// assignLocalCoordinates puts primaries on concentric rings around the map
// center and clusters moons next to their parent.
func assignLocalCoordinates(systemID int, objects []CelestialObject) {
	ring := 0
	for i := range objects {
		if objects[i].IsMoon {
			continue
		}
		radius := orbitRadii[min(ring, len(orbitRadii)-1)]
		ring++

		angle := 2 * math.Pi * dice.Unit(dice.Hash32(fmt.Sprintf("orbit:%d:%d", systemID, i)))
		objects[i].LocalX = toLocal(localCenter + radius*math.Cos(angle))
		objects[i].LocalY = toLocal(localCenter + radius*math.Sin(angle))
	}

	for i := range objects {
		o := &objects[i]
		if !o.IsMoon || o.ParentObjectID == nil {
			continue
		}
		parent := objects[*o.ParentObjectID]

		h := dice.Hash16(fmt.Sprintf("moonpos:%d:%d", systemID, o.ObjectID))
		dx := int(h&0x03) - 1
		dy := int((h>>2)&0x03) - 1

		o.LocalX = dice.Clamp(parent.LocalX+dx, 0, LocalMapSize-1)
		o.LocalY = dice.Clamp(parent.LocalY+dy, 0, LocalMapSize-1)
	}
}

func toLocal(v float64) int {
	return dice.Clamp(int(math.RoundToEven(v)), 0, LocalMapSize-1)
}
