package images

import (
	"errors"
	"image"

	"github.com/disintegration/imaging"
)

// ExtractROI crops a square of side size centred at c, shifted and clamped
// so it stays inside the frame. The result is at least 1x1 and its bounds
// start at the origin. The returned rectangle is in frame coordinates.
func ExtractROI(frame image.Image, c image.Point, size int) (*image.NRGBA, image.Rectangle, error) {
	if frame == nil {
		return nil, image.Rectangle{}, errors.New("nil frame")
	}
	b := frame.Bounds()
	if b.Empty() {
		return nil, image.Rectangle{}, errors.New("empty frame")
	}
	size = max(size, 1)
	x0 := min(max(c.X-size/2, b.Min.X), max(b.Max.X-size, b.Min.X))
	y0 := min(max(c.Y-size/2, b.Min.Y), max(b.Max.Y-size, b.Min.Y))
	roi := image.Rect(x0, y0, x0+size, y0+size).Intersect(b)
	return imaging.Crop(frame, roi), roi, nil
}

// Magnify returns the ROI around c enlarged by zoom with nearest-neighbour
// sampling, so individual pixels stay visible.
func Magnify(frame image.Image, c image.Point, size, zoom int) (*image.NRGBA, error) {
	roi, _, err := ExtractROI(frame, c, size)
	if err != nil {
		return nil, err
	}
	zoom = max(zoom, 1)
	return imaging.Resize(roi, roi.Bounds().Dx()*zoom, roi.Bounds().Dy()*zoom, imaging.NearestNeighbor), nil
}
