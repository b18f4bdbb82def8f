package sampler

import (
	"errors"
	"image"
	"image/color"
	"math"
	"testing"
)

// uniform creates a w x h NRGBA image filled with c.
func uniform(w, h int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

func near(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestWindow_FullyInsideHasSideTwiceRadius(t *testing.T) {
	b := image.Rect(0, 0, 100, 100)
	for _, r := range []int{1, 3, 7, 20} {
		win, err := Window(b, Selection{Center: image.Pt(50, 50), Radius: r}, DefaultBias)
		if err != nil {
			t.Fatalf("r=%d: %v", r, err)
		}
		if win.Dx()*win.Dy() != 4*r*r {
			t.Fatalf("r=%d: expected %d pixels, got %v", r, 4*r*r, win)
		}
		if win.Min.X != 50-r+DefaultBias || win.Min.Y != 50-r+DefaultBias {
			t.Fatalf("r=%d: unexpected origin %v", r, win.Min)
		}
	}
}

func TestWindow_ZeroRadiusIsSinglePixel(t *testing.T) {
	win, err := Window(image.Rect(0, 0, 10, 10), Selection{Center: image.Pt(3, 7)}, DefaultBias)
	if err != nil {
		t.Fatal(err)
	}
	if win != image.Rect(3, 7, 4, 8) {
		t.Fatalf("expected single pixel at (3,7), got %v", win)
	}
}

func TestWindow_ClipsAtEdges(t *testing.T) {
	win, err := Window(image.Rect(0, 0, 10, 10), Selection{Center: image.Pt(9, 9), Radius: 4}, DefaultBias)
	if err != nil {
		t.Fatal(err)
	}
	if win.Max.X > 10 || win.Max.Y > 10 || win.Min != image.Pt(7, 7) {
		t.Fatalf("unexpected clipped window %v", win)
	}
}

func TestWindow_Failures(t *testing.T) {
	b := image.Rect(0, 0, 10, 10)
	if _, err := Window(b, Selection{Center: image.Pt(-1, 4), Radius: 2}, 0); !errors.Is(err, ErrOutOfBounds) {
		t.Fatalf("expected ErrOutOfBounds, got %v", err)
	}
	if _, err := Window(b, Selection{Center: image.Pt(10, 0)}, 0); !errors.Is(err, ErrOutOfBounds) {
		t.Fatalf("expected ErrOutOfBounds for exclusive edge, got %v", err)
	}
	// a large bias pushes the whole window past the right/bottom edge
	if _, err := Window(b, Selection{Center: image.Pt(8, 8), Radius: 1}, 5); !errors.Is(err, ErrEmptySelection) {
		t.Fatalf("expected ErrEmptySelection, got %v", err)
	}
}

func TestSample_UniformRedSquare(t *testing.T) {
	img := uniform(10, 10, color.NRGBA{R: 255, A: 255})
	res, err := Sample(img, Selection{Center: image.Pt(5, 5), Radius: 3}, RGB, DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	if res.Size != 36 || len(res.Values[0]) != 36 {
		t.Fatalf("expected 36 pixels, got size=%d values=%d", res.Size, len(res.Values[0]))
	}
	want := [3]float64{255, 0, 0}
	for i, ch := range res.Channels {
		if ch.Mean != want[i] || ch.Min != want[i] || ch.Max != want[i] || ch.Median != want[i] {
			t.Fatalf("channel %d: unexpected stats %+v", i, ch)
		}
		if ch.Std != 0 || ch.Variance != 0 {
			t.Fatalf("channel %d: expected zero spread, got %+v", i, ch)
		}
	}
}

func TestSample_SinglePixelMatchesPixel(t *testing.T) {
	img := uniform(4, 4, color.NRGBA{R: 10, G: 20, B: 30, A: 255})
	img.SetNRGBA(2, 1, color.NRGBA{R: 200, G: 100, B: 50, A: 128})
	res, err := Sample(img, Selection{Center: image.Pt(2, 1)}, RGB, DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	want := [3]float64{200, 100, 50}
	for i, ch := range res.Channels {
		if ch.Mean != want[i] || ch.Min != want[i] || ch.Max != want[i] {
			t.Fatalf("channel %d: expected %v got %+v", i, want[i], ch)
		}
		if ch.Std != 0 || ch.Variance != 0 {
			t.Fatalf("channel %d: expected zero spread", i)
		}
	}
}

func TestSample_PopulationStatistics(t *testing.T) {
	// 2x2 window: greys 0, 10, 20, 30 -> mean 15, pop var 125, median 15
	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	greys := []uint8{0, 10, 20, 30}
	for i, g := range greys {
		img.SetNRGBA(i%2, i/2, color.NRGBA{R: g, G: g, B: g, A: 255})
	}
	res, err := Sample(img, Selection{Center: image.Pt(1, 1), Radius: 1}, RGB, Options{Bias: 0, RoundDecimals: -1})
	if err != nil {
		t.Fatal(err)
	}
	if res.Size != 4 {
		t.Fatalf("expected 4 pixels, got %d", res.Size)
	}
	ch := res.Channels[0]
	if !near(ch.Mean, 15) || !near(ch.Variance, 125) || !near(ch.Std, math.Sqrt(125)) || !near(ch.Median, 15) {
		t.Fatalf("unexpected stats %+v", ch)
	}
	if ch.Min != 0 || ch.Max != 30 {
		t.Fatalf("unexpected extremes %+v", ch)
	}
}

func TestSample_HSVConversionAndRounding(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 1))
	img.SetNRGBA(0, 0, color.NRGBA{R: 255, A: 255})
	img.SetNRGBA(1, 0, color.NRGBA{G: 255, A: 255})
	sel := Selection{Center: image.Pt(0, 0), Radius: 1}

	res, err := Sample(img, sel, HSV, Options{Bias: 1, RoundDecimals: -1})
	if err != nil {
		t.Fatal(err)
	}
	if res.Size != 2 {
		t.Fatalf("expected 2 pixels, got %d (window %v)", res.Size, res.Window)
	}
	h := res.Channels[0]
	if !near(h.Min, 0) || !near(h.Max, 120) || !near(h.Mean, 60) {
		t.Fatalf("unexpected hue stats %+v", h)
	}
	if !near(res.Channels[1].Mean, 1) || !near(res.Channels[2].Mean, 1) {
		t.Fatalf("expected full saturation/value, got %+v %+v", res.Channels[1], res.Channels[2])
	}

	img.SetNRGBA(1, 0, color.NRGBA{R: 10, G: 20, B: 250, A: 255})
	rounded, err := Sample(img, sel, HSV, Options{Bias: 1, RoundDecimals: 2})
	if err != nil {
		t.Fatal(err)
	}
	for i, ch := range rounded.Channels {
		if ch.Mean != math.Round(ch.Mean*100)/100 || ch.Std != math.Round(ch.Std*100)/100 {
			t.Fatalf("channel %d not rounded: %+v", i, ch)
		}
	}
}

func TestSample_NonNRGBASourceDropsAlpha(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 3, 3))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = 40, 80, 120, 255
	}
	res, err := Sample(img, Selection{Center: image.Pt(1, 1)}, RGB, DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	if res.Channels[0].Mean != 40 || res.Channels[1].Mean != 80 || res.Channels[2].Mean != 120 {
		t.Fatalf("unexpected means %+v", res.Channels)
	}
}

func TestSampleBoth_PropagatesErrors(t *testing.T) {
	img := uniform(5, 5, color.NRGBA{A: 255})
	if _, _, err := SampleBoth(img, Selection{Center: image.Pt(9, 9), Radius: 1}, DefaultOptions()); !errors.Is(err, ErrOutOfBounds) {
		t.Fatalf("expected ErrOutOfBounds, got %v", err)
	}
	rgb, hsv, err := SampleBoth(img, Selection{Center: image.Pt(2, 2), Radius: 1}, DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	if rgb.Window != hsv.Window || rgb.Space != RGB || hsv.Space != HSV {
		t.Fatalf("results disagree: %v/%v %v/%v", rgb.Window, hsv.Window, rgb.Space, hsv.Space)
	}
}
