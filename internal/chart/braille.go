package chart

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Braille patterns use a 2x4 dot matrix per character:
//
//	  Col 0  Col 1
//	Row 0:   ⠁      ⠈     (dots 1, 4)
//	Row 1:   ⠂      ⠐     (dots 2, 5)
//	Row 2:   ⠄      ⠠     (dots 3, 6)
//	Row 3:   ⡀      ⢀     (dots 7, 8)
//
// Unicode braille starts at U+2800 (empty); each dot is one bit.
const brailleBase = '⠀'

// brailleDots maps [row][col] within a cell to the bit for that dot.
var brailleDots = [4][2]uint8{
	{0, 3},
	{1, 4},
	{2, 5},
	{6, 7},
}

type dotPoint struct {
	x, y int
}

type brailleCell struct {
	bits      uint8
	dotColor  string
	text      rune
	textColor string
}

// Braille is a Surface that paints onto a grid of terminal cells.
// Drawing happens in a virtual coordinate space that is scaled onto
// cols*2 by rows*4 dots. Line widths are ignored; every line is one dot wide.
type Braille struct {
	cols, rows int
	sx, sy     float64
	cells      []brailleCell

	stroke string
	fill   string
	align  string

	subpaths [][]dotPoint
	markers  []dotPoint
}

// NewBraille creates a cols by rows grid that renders a chart of the given virtual size.
func NewBraille(cols, rows int, virtual Size) *Braille {
	cols = max(cols, 1)
	rows = max(rows, 1)
	b := &Braille{
		cols:   cols,
		rows:   rows,
		cells:  make([]brailleCell, cols*rows),
		stroke: HexString(MustColor(DefaultColor)),
		fill:   HexString(MustColor(DefaultColor)),
		align:  "start",
	}
	if virtual.Width > 0 {
		b.sx = float64(cols*2) / virtual.Width
	}
	if virtual.Height > 0 {
		b.sy = float64(rows*4) / virtual.Height
	}
	return b
}

// Dims returns the grid size in cells.
func (b *Braille) Dims() (cols, rows int) { return b.cols, b.rows }

func (b *Braille) toDot(x, y float64) dotPoint {
	return dotPoint{x: int(math.Floor(x * b.sx)), y: int(math.Floor(y * b.sy))}
}

func (b *Braille) cell(col, row int) *brailleCell {
	if col < 0 || row < 0 || col >= b.cols || row >= b.rows {
		return nil
	}
	return &b.cells[row*b.cols+col]
}

func (b *Braille) setDot(p dotPoint, color string) {
	c := b.cell(p.x/2, p.y/4)
	if c == nil || p.x < 0 || p.y < 0 {
		return
	}
	c.bits |= 1 << brailleDots[p.y%4][p.x%2]
	c.dotColor = color
}

func (b *Braille) ClearRect(x, y, w, h float64) {
	from, to := b.toDot(x, y), b.toDot(x+w, y+h)
	for row := max(from.y/4, 0); row <= min((to.y-1)/4, b.rows-1); row++ {
		for col := max(from.x/2, 0); col <= min((to.x-1)/2, b.cols-1); col++ {
			b.cells[row*b.cols+col] = brailleCell{}
		}
	}
}

func (b *Braille) SetStrokeStyle(c string) { b.stroke = HexString(MustColor(c)) }
func (b *Braille) SetFillStyle(c string)   { b.fill = HexString(MustColor(c)) }
func (b *Braille) SetLineWidth(float64)    {}

func (b *Braille) BeginPath() {
	b.subpaths = b.subpaths[:0]
	b.markers = b.markers[:0]
}

func (b *Braille) MoveTo(x, y float64) {
	b.subpaths = append(b.subpaths, []dotPoint{b.toDot(x, y)})
}

func (b *Braille) LineTo(x, y float64) {
	if len(b.subpaths) == 0 {
		b.MoveTo(x, y)
		return
	}
	last := len(b.subpaths) - 1
	b.subpaths[last] = append(b.subpaths[last], b.toDot(x, y))
}

// Arc records a marker. At terminal resolution a marker is a single dot.
func (b *Braille) Arc(x, y, _ float64) {
	b.markers = append(b.markers, b.toDot(x, y))
}

func (b *Braille) Stroke() {
	for _, sp := range b.subpaths {
		for i := 1; i < len(sp); i++ {
			b.line(sp[i-1], sp[i], b.stroke)
		}
		if len(sp) == 1 {
			b.setDot(sp[0], b.stroke)
		}
	}
}

func (b *Braille) Fill() {
	for _, m := range b.markers {
		b.setDot(m, b.fill)
	}
}

// FillRect marks the cell containing the rectangle's origin with a block.
func (b *Braille) FillRect(x, y, _, _ float64) {
	p := b.toDot(x, y)
	if c := b.cell(p.x/2, p.y/4); c != nil {
		c.text = '■'
		c.textColor = b.fill
	}
}

func (b *Braille) SetFont(string)            {}
func (b *Braille) SetTextAlign(align string) { b.align = align }

// FillText writes text on the cell row containing the baseline.
// Text that would overlap earlier text is dropped so tick labels never smear.
func (b *Braille) FillText(text string, x, y float64) {
	runes := []rune(text)
	p := b.toDot(x, y)
	col, row := p.x/2, p.y/4
	if p.y >= b.rows*4 {
		row = b.rows - 1
	}

	switch b.align {
	case "center":
		col -= len(runes) / 2
	case "right", "end":
		col -= len(runes)
	}

	for i := range runes {
		c := b.cell(col+i, row)
		if c == nil || c.text != 0 {
			return
		}
	}
	for i, r := range runes {
		c := b.cell(col+i, row)
		c.text = r
		c.textColor = b.fill
	}
}

// line plots a straight line between two dots (Bresenham).
func (b *Braille) line(from, to dotPoint, color string) {
	dx := abs(to.x - from.x)
	dy := -abs(to.y - from.y)
	sx, sy := 1, 1
	if from.x > to.x {
		sx = -1
	}
	if from.y > to.y {
		sy = -1
	}

	err := dx + dy
	x, y := from.x, from.y
	for {
		b.setDot(dotPoint{x, y}, color)
		if x == to.x && y == to.y {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x += sx
		}
		if e2 <= dx {
			err += dx
			y += sy
		}
	}
}

// String renders the grid, one line per row, coloring runs of same-colored cells.
func (b *Braille) String() string {
	lines := make([]string, b.rows)
	for row := 0; row < b.rows; row++ {
		var line strings.Builder
		var run strings.Builder
		runColor := ""

		flush := func() {
			if run.Len() == 0 {
				return
			}
			if runColor == "" {
				line.WriteString(run.String())
			} else {
				line.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(runColor)).Render(run.String()))
			}
			run.Reset()
		}

		for col := 0; col < b.cols; col++ {
			c := b.cells[row*b.cols+col]
			ch, color := ' ', ""
			switch {
			case c.text != 0:
				ch, color = c.text, c.textColor
			case c.bits != 0:
				ch, color = brailleBase+rune(c.bits), c.dotColor
			}
			if color != runColor {
				flush()
				runColor = color
			}
			run.WriteRune(ch)
		}
		flush()
		lines[row] = line.String()
	}
	return strings.Join(lines, "\n")
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
