package chart

// Op identifies a drawing instruction.
type Op int

const (
	OpClearRect Op = iota
	OpStrokeStyle
	OpFillStyle
	OpLineWidth
	OpBeginPath
	OpMoveTo
	OpLineTo
	OpArc
	OpStroke
	OpFill
	OpFillRect
	OpFont
	OpTextAlign
	OpFillText
)

var opNames = [...]string{
	"clearRect", "strokeStyle", "fillStyle", "lineWidth", "beginPath", "moveTo",
	"lineTo", "arc", "stroke", "fill", "fillRect", "font", "textAlign", "fillText",
}

func (o Op) String() string {
	if o < 0 || int(o) >= len(opNames) {
		return "unknown"
	}
	return opNames[o]
}

// Instruction is a single drawing call. Fields are used per Op:
// X/Y for points and origins, W/H for rectangles and line width (W),
// R for arc radius, and Arg for colors, fonts, alignment and text.
type Instruction struct {
	Op   Op
	X, Y float64
	W, H float64
	R    float64
	Arg  string
}

// Render produces the full instruction list for one frame.
// It does not modify m. Datasets that Validate rejects are skipped.
func Render(m *Model, size Size, opts Options) []Instruction {
	rec := NewRecorder()
	drawFrame(rec, m, size, opts)
	return rec.Instructions()
}

func drawFrame(s Surface, m *Model, size Size, opts Options) {
	s.ClearRect(0, 0, size.Width, size.Height)
	drawAxes(s, size)
	drawGrid(s, size)

	if m == nil || len(m.Labels) < 2 {
		return
	}

	n := len(m.Labels)
	for _, ds := range m.Datasets {
		if len(ds.Data) != n {
			continue
		}
		drawSeries(s, ds, n, size)
	}

	drawLabels(s, m.Labels, size)

	if opts.Legend {
		drawLegend(s, m.Datasets, size)
	}
}

func drawAxes(s Surface, size Size) {
	s.SetStrokeStyle(AxisColor)
	s.SetLineWidth(1)
	s.BeginPath()
	s.MoveTo(Padding, Padding)
	s.LineTo(Padding, size.Height-Padding)
	s.LineTo(size.Width-Padding, size.Height-Padding)
	s.Stroke()
}

// drawGrid draws lines at the 100, 80, 60, 40 and 20 levels. The 0 level is the x axis.
func drawGrid(s Surface, size Size) {
	s.SetStrokeStyle(GridColor)
	s.SetLineWidth(0.5)
	step := size.PlotHeight() / GridLines
	for i := 0; i < GridLines; i++ {
		y := Padding + step*float64(i)
		s.BeginPath()
		s.MoveTo(Padding, y)
		s.LineTo(size.Width-Padding, y)
		s.Stroke()
	}
}

func drawSeries(s Surface, ds Dataset, n int, size Size) {
	s.SetStrokeStyle(strokeColor(ds))
	s.SetLineWidth(SeriesWidth)
	s.BeginPath()
	for i, v := range ds.Data {
		x, y := X(i, n, size), Y(v, size)
		if i == 0 {
			s.MoveTo(x, y)
		} else {
			s.LineTo(x, y)
		}
	}
	s.Stroke()

	s.SetFillStyle(fillColor(ds))
	for i, v := range ds.Data {
		s.BeginPath()
		s.Arc(X(i, n, size), Y(v, size), MarkerRadius)
		s.Fill()
	}
}

func drawLabels(s Surface, labels []string, size Size) {
	s.SetFillStyle(LabelColor)
	s.SetFont(LabelFont)
	s.SetTextAlign("center")
	n := len(labels)
	for i, label := range labels {
		s.FillText(label, X(i, n, size), size.Height-Padding+20)
	}
}

func drawLegend(s Surface, datasets []Dataset, size Size) {
	x := size.Width - legendWidth
	s.SetFont(LabelFont)
	s.SetTextAlign("left")
	for i, ds := range datasets {
		y := legendTop + float64(i)*legendStep
		s.SetFillStyle(strokeColor(ds))
		s.FillRect(x, y, legendSwatch, legendSwatch)
		s.SetFillStyle(LegendTextColor)
		s.FillText(datasetLabel(ds, i), x+20, y+12)
	}
}
