package tui

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

const sgrReset = "\x1b[0m"

// canvas composes styled blocks line by line. Later draws cover earlier ones.
type canvas struct {
	width int
	lines []string
}

func newCanvas(width, height int) *canvas {
	c := &canvas{width: max(0, width), lines: make([]string, max(0, height))}
	for i := range c.lines {
		c.lines[i] = strings.Repeat(" ", c.width)
	}
	return c
}

// draw places block with its top-left corner at (col, row). shear returns
// an extra column offset for each line of the block and may be nil.
func (c *canvas) draw(block string, col, row int, shear func(line, height int) int) {
	rows := strings.Split(block, "\n")
	for i, ln := range rows {
		r := row + i
		if r < 0 || r >= len(c.lines) {
			continue
		}
		x := col
		if shear != nil {
			x += shear(i, len(rows))
		}
		c.lines[r] = splice(c.lines[r], ln, x, c.width)
	}
}

func (c *canvas) String() string {
	return strings.Join(c.lines, "\n")
}

// splice writes over onto base starting at cell x, clipped to width cells.
func splice(base, over string, x, width int) string {
	ow := ansi.StringWidth(over)
	if x < 0 {
		over = ansi.TruncateLeft(over, -x, "")
		ow += x
		x = 0
	}
	if ow <= 0 || x >= width {
		return base
	}
	if x+ow > width {
		over = ansi.Truncate(over, width-x, "")
		ow = width - x
	}
	left := ansi.Truncate(base, x, "")
	right := ansi.TruncateLeft(base, x+ow, "")
	return left + sgrReset + over + sgrReset + right
}
