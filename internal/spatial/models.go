package spatial

import "universe-builder/internal/catalog"

// Neighbor is a star seen from another star on the galaxy grid.
type Neighbor struct {
	Star catalog.StarRecord `json:"star"`
	// GridDistance is the Euclidean distance in cells.
	GridDistance float64 `json:"grid_distance"`
	// MapDistanceLY is GridDistance scaled back to light-years.
	MapDistanceLY float64 `json:"map_distance_ly"`
}

// Region is an inclusive rectangle of grid cells.
type Region struct {
	X0 int `json:"x0"`
	Y0 int `json:"y0"`
	X1 int `json:"x1"`
	Y1 int `json:"y1"`
}

func (r Region) normalize() Region {
	if r.X0 > r.X1 {
		r.X0, r.X1 = r.X1, r.X0
	}
	if r.Y0 > r.Y1 {
		r.Y0, r.Y1 = r.Y1, r.Y0
	}
	return r
}

func (r Region) contains(x, y int) bool {
	return x >= r.X0 && x <= r.X1 && y >= r.Y0 && y <= r.Y1
}

// CatalogSource hands out the catalog currently being served and its grid
// scale in light-years per cell.
type CatalogSource interface {
	CurrentCatalog() (*catalog.Catalog, float64, error)
}
