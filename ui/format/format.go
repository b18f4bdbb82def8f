// Package format turns sample statistics into display strings.
package format

import (
	"fmt"
	"strconv"

	"github.com/dustin/go-humanize"

	"github.com/soocke/plumage-go/domain/sampler"
)

// StatHeaders are the column titles of the statistics table.
var StatHeaders = []string{"mean", "median", "std", "var", "min", "max"}

// StatRow formats the statistics of channel ch in StatHeaders order.
// RGB channels and hue use one decimal, saturation and value three.
func StatRow(res sampler.Result, ch int) []string {
	c := res.Channels[ch]
	prec := 1
	if res.Space == sampler.HSV && ch > 0 {
		prec = 3
	}
	out := make([]string, 0, len(StatHeaders))
	for _, v := range []float64{c.Mean, c.Median, c.Std, c.Variance, c.Min, c.Max} {
		out = append(out, strconv.FormatFloat(v, 'f', prec, 64))
	}
	return out
}

// SampleSize describes the pixel count and window of a sample.
func SampleSize(res sampler.Result) string {
	return fmt.Sprintf("n = %s px (%dx%d at %d,%d)",
		humanize.Comma(int64(res.Size)), res.Window.Dx(), res.Window.Dy(), res.Window.Min.X, res.Window.Min.Y)
}
