package chart

import (
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"

	"github.com/wcharczuk/go-chart/v2/drawing"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/rileyhilliard/hwmon/internal/errors"
)

// Raster is a Surface backed by an in-memory RGBA image.
// Paths go through go-chart's rasterizer; text uses the fixed 7x13 bitmap face,
// so font size requests are ignored.
type Raster struct {
	img        *image.RGBA
	gc         *drawing.RasterGraphicContext
	background color.Color
	fill       drawing.Color
	align      string
	face       font.Face
}

// NewRaster creates a white surface of the given pixel size.
func NewRaster(width, height int) (*Raster, error) {
	if width <= 0 || height <= 0 {
		return nil, errors.New(errors.ErrRender, "Chart size must be positive",
			"Set chart.width and chart.height above zero")
	}
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	gc, err := drawing.NewRasterGraphicContext(img)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrRender, "Cannot create raster surface", "")
	}

	r := &Raster{
		img:        img,
		gc:         gc,
		background: color.White,
		fill:       MustColor(DefaultColor),
		align:      "start",
		face:       basicfont.Face7x13,
	}
	draw.Draw(img, img.Bounds(), image.NewUniform(r.background), image.Point{}, draw.Src)
	return r, nil
}

// Image returns the backing image.
func (r *Raster) Image() *image.RGBA { return r.img }

// WritePNG encodes the current image as PNG.
func (r *Raster) WritePNG(w io.Writer) error {
	if err := png.Encode(w, r.img); err != nil {
		return errors.WrapWithCode(err, errors.ErrRender, "Cannot encode chart PNG", "")
	}
	return nil
}

func (r *Raster) ClearRect(x, y, w, h float64) {
	rect := image.Rect(round(x), round(y), round(x+w), round(y+h))
	draw.Draw(r.img, rect, image.NewUniform(r.background), image.Point{}, draw.Src)
}

func (r *Raster) SetStrokeStyle(c string) { r.gc.SetStrokeColor(MustColor(c)) }

func (r *Raster) SetFillStyle(c string) {
	r.fill = MustColor(c)
	r.gc.SetFillColor(r.fill)
}

func (r *Raster) SetLineWidth(w float64) { r.gc.SetLineWidth(w) }
func (r *Raster) BeginPath()             { r.gc.BeginPath() }
func (r *Raster) MoveTo(x, y float64)    { r.gc.MoveTo(x, y) }
func (r *Raster) LineTo(x, y float64)    { r.gc.LineTo(x, y) }

func (r *Raster) Arc(x, y, radius float64) {
	r.gc.ArcTo(x, y, radius, radius, 0, 2*math.Pi)
}

func (r *Raster) Stroke() { r.gc.Stroke() }
func (r *Raster) Fill()   { r.gc.Fill() }

func (r *Raster) FillRect(x, y, w, h float64) {
	rect := image.Rect(round(x), round(y), round(x+w), round(y+h))
	draw.Draw(r.img, rect, image.NewUniform(r.fill), image.Point{}, draw.Over)
}

func (r *Raster) SetFont(string) {}

func (r *Raster) SetTextAlign(align string) { r.align = align }

// FillText draws text with y as the baseline, like a canvas context.
func (r *Raster) FillText(text string, x, y float64) {
	d := &font.Drawer{Dst: r.img, Src: image.NewUniform(r.fill), Face: r.face}
	width := d.MeasureString(text).Ceil()

	left := round(x)
	switch r.align {
	case "center":
		left -= width / 2
	case "right", "end":
		left -= width
	}

	d.Dot = fixed.Point26_6{X: fixed.I(left), Y: fixed.I(round(y))}
	d.DrawString(text)
}

func round(v float64) int {
	return int(math.Round(v))
}
