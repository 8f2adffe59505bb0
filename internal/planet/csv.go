package planet

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
)

// Columns is the header of the objects table.
var Columns = []string{
	"system_id", "object_id", "name", "class", "parent_object_id", "is_moon",
	"local_x", "local_y", "ore_richness", "fuel_richness", "habitability", "risk",
}

// Record renders o in Columns order. parent_object_id is empty for primaries.
func (o CelestialObject) Record() []string {
	parent := ""
	if o.ParentObjectID != nil {
		parent = strconv.Itoa(*o.ParentObjectID)
	}
	isMoon := "0"
	if o.IsMoon {
		isMoon = "1"
	}
	return []string{
		strconv.Itoa(o.SystemID),
		strconv.Itoa(o.ObjectID),
		o.Name,
		string(o.Class),
		parent,
		isMoon,
		strconv.Itoa(o.LocalX),
		strconv.Itoa(o.LocalY),
		strconv.Itoa(o.OreRichness),
		strconv.Itoa(o.FuelRichness),
		strconv.Itoa(o.Habitability),
		strconv.Itoa(o.Risk),
	}
}

func WriteCSV(w io.Writer, objects []CelestialObject) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Columns); err != nil {
		return fmt.Errorf("failed to write objects header: %w", err)
	}
	for _, o := range objects {
		if err := cw.Write(o.Record()); err != nil {
			return fmt.Errorf("failed to write object %d:%d: %w", o.SystemID, o.ObjectID, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("failed to flush objects: %w", err)
	}
	return nil
}
