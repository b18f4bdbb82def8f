// Package plotcanvas renders the photo, cursor and sample histograms with
// gonum/plot into images the Tk view can display.
package plotcanvas

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/soocke/plumage-go/domain/sampler"
)

// DPI used for every canvas, so one vg pixel equals one screen pixel.
const DPI = 96

// ErrCanvasSize reports a non-positive canvas size.
var ErrCanvasSize = errors.New("plotcanvas: canvas size must be positive")

var (
	cursorColor = color.RGBA{R: 255, G: 255, A: 255}
	crossColor  = color.RGBA{R: 255, A: 255}
)

// Viewport maps rendered canvas pixels back to image pixels.
type Viewport struct {
	// Data area in canvas pixels, y growing downwards.
	Left, Top, Right, Bottom float64
	// Data range shown in the area.
	XMin, XMax, YMin, YMax float64
	// Image size in pixels.
	Width, Height int
}

// ToImage converts a canvas pixel into the image pixel under it.
func (v Viewport) ToImage(px, py int) (image.Point, bool) {
	if v.Right <= v.Left || v.Bottom <= v.Top {
		return image.Point{}, false
	}
	fx := (float64(px) + 0.5 - v.Left) / (v.Right - v.Left)
	fy := (v.Bottom - float64(py) - 0.5) / (v.Bottom - v.Top)
	dx := v.XMin + fx*(v.XMax-v.XMin)
	dy := v.YMin + fy*(v.YMax-v.YMin)
	p := image.Pt(int(math.Floor(dx)), int(math.Floor(float64(v.Height)-dy)))
	if p.X < 0 || p.Y < 0 || p.X >= v.Width || p.Y >= v.Height {
		return p, false
	}
	return p, true
}

// ToCanvas returns the canvas position of the centre of image pixel p.
func (v Viewport) ToCanvas(p image.Point) (float64, float64) {
	dx := float64(p.X) + 0.5
	dy := float64(v.Height-p.Y) - 0.5
	cx := v.Left + (dx-v.XMin)/(v.XMax-v.XMin)*(v.Right-v.Left)
	cy := v.Bottom - (dy-v.YMin)/(v.YMax-v.YMin)*(v.Bottom-v.Top)
	return cx, cy
}

// PixelTicks labels an axis in image pixels. With Flip set the axis value v
// is labelled Extent-v, so image row 0 sits at the top.
type PixelTicks struct {
	Step   float64
	Extent float64
	Flip   bool
}

// Ticks implements plot.Ticker.
func (t PixelTicks) Ticks(min, max float64) []plot.Tick {
	var ticks []plot.Tick
	if t.Step <= 0 {
		return ticks
	}
	for l := 0.0; l <= t.Extent; l += t.Step {
		v := l
		if t.Flip {
			v = t.Extent - l
		}
		if v < min || v > max {
			continue
		}
		ticks = append(ticks, plot.Tick{Value: v, Label: fmt.Sprintf("%.0f", l)})
	}
	return ticks
}

// niceStep rounds extent/n up to 1, 2 or 5 times a power of ten.
func niceStep(extent float64, n int) float64 {
	if extent <= 0 || n <= 0 {
		return 1
	}
	raw := extent / float64(n)
	mag := math.Pow(10, math.Floor(math.Log10(raw)))
	for _, m := range []float64{1, 2, 5, 10} {
		if raw <= m*mag {
			return math.Max(1, m*mag)
		}
	}
	return math.Max(1, 10*mag)
}

func newCanvas(w, h int) (*vgimg.Canvas, draw.Canvas, error) {
	if w <= 0 || h <= 0 {
		return nil, draw.Canvas{}, fmt.Errorf("%w: %dx%d", ErrCanvasSize, w, h)
	}
	c := vgimg.NewWith(
		vgimg.UseWH(vg.Length(w)*vg.Inch/DPI, vg.Length(h)*vg.Inch/DPI),
		vgimg.UseDPI(DPI),
		vgimg.UseBackgroundColor(color.White),
	)
	return c, draw.New(c), nil
}

// toPixels converts a vg length on a DPI canvas into screen pixels.
func toPixels(l vg.Length) float64 { return float64(l) * DPI / float64(vg.Inch) }

// squarePixels widens one axis so image pixels stay square. The data area
// depends on the tick labels, which depend on the range, so the fit is
// repeated until the area stops moving.
func squarePixels(p *plot.Plot, dc draw.Canvas, iw, ih float64) {
	var lastW, lastH float64
	for pass := 0; pass < 4; pass++ {
		da := p.DataCanvas(dc)
		aw, ah := float64(da.Max.X-da.Min.X), float64(da.Max.Y-da.Min.Y)
		if aw <= 0 || ah <= 0 {
			return
		}
		if pass > 0 && math.Abs(aw-lastW) < 0.01 && math.Abs(ah-lastH) < 0.01 {
			return
		}
		lastW, lastH = aw, ah
		p.X.Min, p.X.Max = 0, iw
		p.Y.Min, p.Y.Max = 0, ih
		if iw/ih > aw/ah {
			span := iw * ah / aw
			p.Y.Min, p.Y.Max = (ih-span)/2, (ih+span)/2
		} else {
			span := ih * aw / ah
			p.X.Min, p.X.Max = (iw-span)/2, (iw+span)/2
		}
	}
}

// RenderPhoto draws img with pixel axes and the cursor described by sel.
// The returned viewport maps clicks on the rendered image back to img.
func RenderPhoto(img image.Image, sel sampler.Selection, w, h int) (image.Image, Viewport, error) {
	if img == nil {
		return nil, Viewport{}, errors.New("plotcanvas: nil image")
	}
	c, dc, err := newCanvas(w, h)
	if err != nil {
		return nil, Viewport{}, err
	}
	b := img.Bounds()
	iw, ih := float64(b.Dx()), float64(b.Dy())

	p := plot.New()
	p.X.Padding, p.Y.Padding = 0, 0
	p.X.Tick.Marker = PixelTicks{Step: niceStep(iw, 8), Extent: iw}
	p.Y.Tick.Marker = PixelTicks{Step: niceStep(ih, 6), Extent: ih, Flip: true}
	p.Add(plotter.NewImage(img, 0, 0, iw, ih))
	if err := addCursor(p, sel, ih); err != nil {
		return nil, Viewport{}, err
	}
	// The cursor may reach past the image; the range stays on the image.
	p.X.Min, p.X.Max = 0, iw
	p.Y.Min, p.Y.Max = 0, ih

	squarePixels(p, dc, iw, ih)

	p.Draw(dc)

	da := p.DataCanvas(dc)
	vp := Viewport{
		Left:   toPixels(da.Min.X),
		Right:  toPixels(da.Max.X),
		Top:    float64(h) - toPixels(da.Max.Y),
		Bottom: float64(h) - toPixels(da.Min.Y),
		XMin:   p.X.Min,
		XMax:   p.X.Max,
		YMin:   p.Y.Min,
		YMax:   p.Y.Max,
		Width:  b.Dx(),
		Height: b.Dy(),
	}
	return c.Image(), vp, nil
}

// addCursor overlays the sampling circle and a crosshair at sel.Center.
func addCursor(p *plot.Plot, sel sampler.Selection, ih float64) error {
	cx := float64(sel.Center.X) + 0.5
	cy := ih - float64(sel.Center.Y) - 0.5
	r := math.Max(float64(sel.Radius), 0.5)

	const segments = 64
	circle := make(plotter.XYs, segments+1)
	for i := range circle {
		a := 2 * math.Pi * float64(i) / segments
		circle[i].X = cx + r*math.Cos(a)
		circle[i].Y = cy + r*math.Sin(a)
	}
	ring, err := plotter.NewLine(circle)
	if err != nil {
		return err
	}
	ring.Color = cursorColor
	ring.Width = vg.Points(1)
	p.Add(ring)

	arm := math.Max(1.5*r, 5)
	for _, seg := range []plotter.XYs{
		{{X: cx - arm, Y: cy}, {X: cx + arm, Y: cy}},
		{{X: cx, Y: cy - arm}, {X: cx, Y: cy + arm}},
	} {
		l, err := plotter.NewLine(seg)
		if err != nil {
			return err
		}
		l.Color = crossColor
		l.Width = vg.Points(0.5)
		l.Dashes = []vg.Length{vg.Points(3), vg.Points(2)}
		p.Add(l)
	}
	return nil
}
