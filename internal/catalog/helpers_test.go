package catalog

import (
	"io"
	"log/slog"
	"math"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

// planar builds a star in the galactic plane at (x, y) light-years.
func planar(id string, x, y float64) RawStar {
	return RawStar{CatalogID: id, XLY: x, YLY: y, DistLY: math.Hypot(x, y)}
}
