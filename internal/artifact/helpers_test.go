package artifact

import "universe-builder/internal/catalog"

func planetStar() catalog.StarRecord {
	return catalog.StarRecord{ID: 0, Name: "Sol", Spect: "G2V"}
}
