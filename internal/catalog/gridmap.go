package catalog

import (
	"io"
	"math"
	"strings"
)

const (
	MarkHome       = 'X'
	MarkStar       = '*'
	MarkEmpty      = '.'
	MarkOutOfRange = ' '
)

// GridMap is the rendered galaxy grid, indexed [y][x].
type GridMap struct {
	cells [GridSize][GridSize]byte
}

// RenderMap draws stars onto the grid. Empty cells farther than radiusLY
// from the home cell, measured in cells times scale, are left blank.
func RenderMap(stars []StarRecord, scale, radiusLY float64) *GridMap {
	m := &GridMap{}
	for y := range m.cells {
		for x := range m.cells[y] {
			m.cells[y][x] = MarkEmpty
		}
	}
	if len(stars) == 0 {
		return m
	}

	home := stars[0]
	for _, s := range stars[1:] {
		if m.inBounds(s.GridX, s.GridY) {
			m.cells[s.GridY][s.GridX] = MarkStar
		}
	}
	m.cells[home.GridY][home.GridX] = MarkHome

	for y := range m.cells {
		for x := range m.cells[y] {
			if m.cells[y][x] != MarkEmpty {
				continue
			}
			dx, dy := float64(x-home.GridX), float64(y-home.GridY)
			if math.Sqrt(dx*dx+dy*dy)*scale > radiusLY {
				m.cells[y][x] = MarkOutOfRange
			}
		}
	}
	return m
}

func (m *GridMap) inBounds(x, y int) bool {
	return x >= 0 && x < GridSize && y >= 0 && y < GridSize
}

// At returns the marker at (x, y), or MarkOutOfRange outside the grid.
func (m *GridMap) At(x, y int) byte {
	if !m.inBounds(x, y) {
		return MarkOutOfRange
	}
	return m.cells[y][x]
}

func (m *GridMap) Lines() []string {
	lines := make([]string, GridSize)
	for y := range m.cells {
		lines[y] = string(m.cells[y][:])
	}
	return lines
}

// String renders one line per grid row, each terminated by a newline.
func (m *GridMap) String() string {
	return strings.Join(m.Lines(), "\n") + "\n"
}

func (m *GridMap) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, m.String())
	return int64(n), err
}
