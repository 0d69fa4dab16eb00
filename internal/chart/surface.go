package chart

// Surface is a 2D drawing context in the style of an HTML canvas.
// Coordinates are in surface units with the origin at the top left.
type Surface interface {
	ClearRect(x, y, w, h float64)
	SetStrokeStyle(color string)
	SetFillStyle(color string)
	SetLineWidth(w float64)
	BeginPath()
	MoveTo(x, y float64)
	LineTo(x, y float64)
	Arc(x, y, r float64)
	Stroke()
	Fill()
	FillRect(x, y, w, h float64)
	SetFont(font string)
	SetTextAlign(align string)
	FillText(text string, x, y float64)
}

// Replay issues every instruction against s in order.
func Replay(s Surface, instructions []Instruction) {
	for _, in := range instructions {
		switch in.Op {
		case OpClearRect:
			s.ClearRect(in.X, in.Y, in.W, in.H)
		case OpStrokeStyle:
			s.SetStrokeStyle(in.Arg)
		case OpFillStyle:
			s.SetFillStyle(in.Arg)
		case OpLineWidth:
			s.SetLineWidth(in.W)
		case OpBeginPath:
			s.BeginPath()
		case OpMoveTo:
			s.MoveTo(in.X, in.Y)
		case OpLineTo:
			s.LineTo(in.X, in.Y)
		case OpArc:
			s.Arc(in.X, in.Y, in.R)
		case OpStroke:
			s.Stroke()
		case OpFill:
			s.Fill()
		case OpFillRect:
			s.FillRect(in.X, in.Y, in.W, in.H)
		case OpFont:
			s.SetFont(in.Arg)
		case OpTextAlign:
			s.SetTextAlign(in.Arg)
		case OpFillText:
			s.FillText(in.Arg, in.X, in.Y)
		}
	}
}

// Recorder is a Surface that keeps every call as an Instruction. A clear
// starting at the origin begins a new frame, so a recorder that is redrawn
// repeatedly only ever holds the latest frame.
type Recorder struct {
	instructions []Instruction
}

// NewRecorder returns an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Instructions returns a copy of the recorded calls.
func (r *Recorder) Instructions() []Instruction {
	out := make([]Instruction, len(r.instructions))
	copy(out, r.instructions)
	return out
}

// Reset drops everything recorded so far.
func (r *Recorder) Reset() {
	r.instructions = r.instructions[:0]
}

func (r *Recorder) add(in Instruction) {
	r.instructions = append(r.instructions, in)
}

func (r *Recorder) ClearRect(x, y, w, h float64) {
	if x == 0 && y == 0 {
		r.Reset()
	}
	r.add(Instruction{Op: OpClearRect, X: x, Y: y, W: w, H: h})
}
func (r *Recorder) SetStrokeStyle(color string) { r.add(Instruction{Op: OpStrokeStyle, Arg: color}) }
func (r *Recorder) SetFillStyle(color string)   { r.add(Instruction{Op: OpFillStyle, Arg: color}) }
func (r *Recorder) SetLineWidth(w float64)      { r.add(Instruction{Op: OpLineWidth, W: w}) }
func (r *Recorder) BeginPath()                  { r.add(Instruction{Op: OpBeginPath}) }
func (r *Recorder) MoveTo(x, y float64)         { r.add(Instruction{Op: OpMoveTo, X: x, Y: y}) }
func (r *Recorder) LineTo(x, y float64)         { r.add(Instruction{Op: OpLineTo, X: x, Y: y}) }
func (r *Recorder) Arc(x, y, radius float64)    { r.add(Instruction{Op: OpArc, X: x, Y: y, R: radius}) }
func (r *Recorder) Stroke()                     { r.add(Instruction{Op: OpStroke}) }
func (r *Recorder) Fill()                       { r.add(Instruction{Op: OpFill}) }
func (r *Recorder) FillRect(x, y, w, h float64) {
	r.add(Instruction{Op: OpFillRect, X: x, Y: y, W: w, H: h})
}
func (r *Recorder) SetFont(font string)       { r.add(Instruction{Op: OpFont, Arg: font}) }
func (r *Recorder) SetTextAlign(align string) { r.add(Instruction{Op: OpTextAlign, Arg: align}) }
func (r *Recorder) FillText(text string, x, y float64) {
	r.add(Instruction{Op: OpFillText, X: x, Y: y, Arg: text})
}
