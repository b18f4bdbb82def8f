package plotcanvas

import (
	"errors"
	"image"
	"image/color"
	"image/draw"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	vgdraw "gonum.org/v1/plot/vg/draw"

	"github.com/soocke/plumage-go/domain/sampler"
)

// ErrNoValues reports a result without per-pixel values.
var ErrNoValues = errors.New("plotcanvas: result has no values")

var channelColors = [3]color.RGBA{
	{R: 200, G: 40, B: 40, A: 200},
	{R: 40, G: 160, B: 40, A: 200},
	{R: 40, G: 60, B: 200, A: 200},
}

// Bins returns the histogram bin count for n values.
func Bins(n int) int {
	b := int(math.Ceil(math.Sqrt(float64(n))))
	return min(max(b, 4), 64)
}

// RenderHistogram draws one histogram per channel of res, stacked vertically.
func RenderHistogram(res sampler.Result, w, h int) (image.Image, error) {
	if len(res.Values[0]) == 0 {
		return nil, ErrNoValues
	}
	c, dc, err := newCanvas(w, h)
	if err != nil {
		return nil, err
	}
	names := res.Space.ChannelNames()
	plots := make([][]*plot.Plot, 3)
	for i := range plots {
		p := plot.New()
		p.Y.Label.Text = names[i]
		p.Y.Tick.Label.Font.Size = vg.Points(7)
		p.X.Tick.Label.Font.Size = vg.Points(7)
		if err := addChannel(p, res.Values[i], channelColors[i]); err != nil {
			return nil, err
		}
		plots[i] = []*plot.Plot{p}
	}
	tiles := vgdraw.Tiles{Rows: 3, Cols: 1, PadY: vg.Millimeter, PadTop: vg.Millimeter, PadBottom: vg.Millimeter}
	canvases := plot.Align(plots, tiles, dc)
	for i := range plots {
		plots[i][0].Draw(canvases[i][0])
	}
	return c.Image(), nil
}

func addChannel(p *plot.Plot, vs []float64, fill color.Color) error {
	lo, hi := floats.Min(vs), floats.Max(vs)
	if lo == hi {
		// Constant channel: a single bar at the value.
		bar, err := plotter.NewLine(plotter.XYs{{X: lo, Y: 0}, {X: lo, Y: float64(len(vs))}})
		if err != nil {
			return err
		}
		bar.Color = fill
		bar.Width = vg.Points(3)
		p.Add(bar)
		p.X.Min, p.X.Max = lo-1, hi+1
		return nil
	}
	hist, err := plotter.NewHist(plotter.Values(vs), Bins(len(vs)))
	if err != nil {
		return err
	}
	hist.FillColor = fill
	hist.LineStyle.Width = 0
	p.Add(hist)
	return nil
}

// MeanColor returns the colour of the channel means of an RGB result.
func MeanColor(res sampler.Result) color.NRGBA {
	var c [3]uint8
	for i := range c {
		c[i] = uint8(math.Round(math.Min(math.Max(res.Channels[i].Mean, 0), 255)))
	}
	return color.NRGBA{R: c[0], G: c[1], B: c[2], A: 255}
}

// Swatch returns a w×h image filled with c.
func Swatch(c color.Color, w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, max(w, 1), max(h, 1)))
	draw.Draw(img, img.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)
	return img
}
