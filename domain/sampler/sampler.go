package sampler

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"sort"

	"github.com/lucasb-eyer/go-colorful"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Sample reduces the pixels of the selection window in the given space.
// Alpha is dropped; RGB values are on the 0-255 scale. HSV uses hue in
// degrees [0,360) with saturation and value in [0,1].
func Sample(img image.Image, sel Selection, space Space, opts Options) (Result, error) {
	if img == nil {
		return Result{}, ErrEmptySelection
	}
	win, err := Window(img.Bounds(), sel, opts.Bias)
	if err != nil {
		return Result{}, fmt.Errorf("sample at %v r=%d: %w", sel.Center, sel.Radius, err)
	}
	vals := flatten(img, win)
	if space == HSV {
		toHSV(&vals)
	}
	res := Result{Space: space, Window: win, Size: win.Dx() * win.Dy(), Values: vals}
	for i := range vals {
		res.Channels[i] = reduce(vals[i])
	}
	if space == HSV && opts.RoundDecimals >= 0 {
		for i := range res.Channels {
			res.Channels[i].Mean = round(res.Channels[i].Mean, opts.RoundDecimals)
			res.Channels[i].Std = round(res.Channels[i].Std, opts.RoundDecimals)
		}
	}
	return res, nil
}

// SampleBoth runs Sample in RGB and HSV over the same window.
func SampleBoth(img image.Image, sel Selection, opts Options) (rgb, hsv Result, err error) {
	rgb, err = Sample(img, sel, RGB, opts)
	if err != nil {
		return Result{}, Result{}, err
	}
	hsv, err = Sample(img, sel, HSV, opts)
	if err != nil {
		return Result{}, Result{}, err
	}
	return rgb, hsv, nil
}

// flatten copies the window's channel values in row-major order.
func flatten(img image.Image, win image.Rectangle) [3][]float64 {
	n := win.Dx() * win.Dy()
	var out [3][]float64
	for i := range out {
		out[i] = make([]float64, 0, n)
	}
	if nrgba, ok := img.(*image.NRGBA); ok {
		for y := win.Min.Y; y < win.Max.Y; y++ {
			off := nrgba.PixOffset(win.Min.X, y)
			for x := win.Min.X; x < win.Max.X; x++ {
				out[0] = append(out[0], float64(nrgba.Pix[off]))
				out[1] = append(out[1], float64(nrgba.Pix[off+1]))
				out[2] = append(out[2], float64(nrgba.Pix[off+2]))
				off += 4
			}
		}
		return out
	}
	for y := win.Min.Y; y < win.Max.Y; y++ {
		for x := win.Min.X; x < win.Max.X; x++ {
			c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			out[0] = append(out[0], float64(c.R))
			out[1] = append(out[1], float64(c.G))
			out[2] = append(out[2], float64(c.B))
		}
	}
	return out
}

// toHSV converts flattened 0-255 RGB values in place.
func toHSV(vals *[3][]float64) {
	for i := range vals[0] {
		c := colorful.Color{R: vals[0][i] / 255, G: vals[1][i] / 255, B: vals[2][i] / 255}
		vals[0][i], vals[1][i], vals[2][i] = c.Hsv()
	}
}

// reduce computes population statistics; x must be non-empty.
func reduce(x []float64) ChannelStats {
	mean, variance := stat.PopMeanVariance(x, nil)
	return ChannelStats{
		Mean:     mean,
		Median:   median(x),
		Std:      math.Sqrt(variance),
		Variance: variance,
		Min:      floats.Min(x),
		Max:      floats.Max(x),
	}
}

// median averages the two middle values for even lengths.
func median(x []float64) float64 {
	s := append([]float64(nil), x...)
	sort.Float64s(s)
	n := len(s)
	if n%2 == 1 {
		return s[n/2]
	}
	return (s[n/2-1] + s[n/2]) / 2
}

func round(v float64, decimals int) float64 {
	p := math.Pow(10, float64(decimals))
	return math.Round(v*p) / p
}
