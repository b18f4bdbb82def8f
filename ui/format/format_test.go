package format

import (
	"image"
	"testing"

	"github.com/soocke/plumage-go/domain/sampler"
)

func TestStatRow_Precision(t *testing.T) {
	res := sampler.Result{Space: sampler.HSV}
	res.Channels[0] = sampler.ChannelStats{Mean: 120.04, Max: 359.99}
	res.Channels[1] = sampler.ChannelStats{Mean: 0.12345}
	hue := StatRow(res, 0)
	if len(hue) != len(StatHeaders) || hue[0] != "120.0" || hue[5] != "360.0" {
		t.Fatalf("unexpected hue row %v", hue)
	}
	if sat := StatRow(res, 1); sat[0] != "0.123" {
		t.Fatalf("unexpected saturation row %v", sat)
	}
	res.Space = sampler.RGB
	if r := StatRow(res, 1); r[0] != "0.1" {
		t.Fatalf("rgb should use one decimal: %v", r)
	}
}

func TestSampleSize(t *testing.T) {
	res := sampler.Result{Size: 1600, Window: image.Rect(10, 20, 50, 60)}
	if got := SampleSize(res); got != "n = 1,600 px (40x40 at 10,20)" {
		t.Fatalf("unexpected %q", got)
	}
}
