package view

import (
	"image"

	"github.com/soocke/plumage-go/ui/images"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// SamplePreview shows the magnified cursor area, the mean colour swatch and
// the channel histograms of the last sample.
type SamplePreview interface {
	UpdateMagnifier(img image.Image)
	UpdateSwatch(img image.Image)
	UpdateHistogram(img image.Image)
	Reset()
}

type previewSlot struct {
	label *LabelWidget
	photo *Img
	w, h  int
}

type samplePreview struct {
	magnifier, swatch, histogram previewSlot
}

// NewSamplePreview grids the three preview labels into parent at row.
// Magnifier and swatch share the row; the histogram goes below them.
func NewSamplePreview(parent *FrameWidget, row int) SamplePreview {
	v := &samplePreview{
		magnifier: newSlot(120, 120),
		swatch:    newSlot(48, 48),
		histogram: newSlot(300, 240),
	}
	Grid(v.magnifier.label, In(parent), Row(row), Column(0), Sticky("w"), Padx("0.4m"), Pady("0.4m"))
	Grid(v.swatch.label, In(parent), Row(row), Column(1), Sticky("w"), Padx("0.4m"), Pady("0.4m"))
	Grid(v.histogram.label, In(parent), Row(row+1), Column(0), Columnspan(2), Sticky("we"), Padx("0.4m"), Pady("0.4m"))
	return v
}

func newSlot(w, h int) previewSlot {
	photo := NewPhoto(Data(images.EncodePNG(placeholder(w, h))))
	return previewSlot{label: Label(Image(photo), Borderwidth(1), Relief("sunken")), photo: photo, w: w, h: h}
}

// show replaces the slot photo, scaled to the slot size for display only.
func (s *previewSlot) show(img image.Image) {
	if s.label == nil || img == nil {
		return
	}
	pngBytes := images.EncodePNG(images.ScaleToFit(img, s.w, s.h))
	if s.photo != nil {
		s.photo.Delete()
	}
	s.photo = NewPhoto(Data(pngBytes))
	s.label.Configure(Image(s.photo))
}

func (v *samplePreview) UpdateMagnifier(img image.Image) { v.magnifier.show(img) }
func (v *samplePreview) UpdateSwatch(img image.Image)    { v.swatch.show(img) }
func (v *samplePreview) UpdateHistogram(img image.Image) { v.histogram.show(img) }

func (v *samplePreview) Reset() {
	for _, s := range []*previewSlot{&v.swatch, &v.histogram} {
		s.show(placeholder(s.w, s.h))
	}
}
