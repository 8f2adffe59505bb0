package catalog

import (
	"bufio"
	"io"
	"os"

	"github.com/gookit/color"
	"golang.org/x/term"
)

var (
	styleHome  = color.Style{color.FgYellow, color.OpBold}
	styleStar  = color.Style{color.FgCyan}
	styleEmpty = color.Style{color.FgGray}
)

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// TerminalWidth returns the width of the terminal on f, or 0 when unknown.
func TerminalWidth(f *os.File) int {
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil {
		return 0
	}
	return width
}

// Preview writes the map with colored markers. Rows are cut to maxWidth
// columns when it is positive and narrower than the grid.
func Preview(w io.Writer, m *GridMap, colored bool, maxWidth int) error {
	width := GridSize
	if maxWidth > 0 && maxWidth < width {
		width = maxWidth
	}

	out := bufio.NewWriter(w)
	for y := range GridSize {
		for x := range width {
			if _, err := out.WriteString(styleMarker(m.At(x, y), colored)); err != nil {
				return err
			}
		}
		if err := out.WriteByte('\n'); err != nil {
			return err
		}
	}
	return out.Flush()
}

func styleMarker(mark byte, colored bool) string {
	s := string(mark)
	if !colored {
		return s
	}
	switch mark {
	case MarkHome:
		return styleHome.Sprint(s)
	case MarkStar:
		return styleStar.Sprint(s)
	case MarkEmpty:
		return styleEmpty.Sprint(s)
	default:
		return s
	}
}
