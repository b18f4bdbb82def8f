package sampler

import "image"

// Window computes the axis-aligned sampling rectangle for sel inside bounds.
//
// A radius <= 0 selects the single pixel under the centre. Otherwise the
// window has side 2*radius, shifted by bias in both axes, and is clipped to
// bounds.
func Window(bounds image.Rectangle, sel Selection, bias int) (image.Rectangle, error) {
	c := sel.Center
	if !c.In(bounds) {
		return image.Rectangle{}, ErrOutOfBounds
	}
	if sel.Radius <= 0 {
		return image.Rect(c.X, c.Y, c.X+1, c.Y+1), nil
	}
	r := sel.Radius
	win := image.Rect(c.X-r+bias, c.Y-r+bias, c.X+r+bias, c.Y+r+bias).Intersect(bounds)
	if win.Empty() {
		return image.Rectangle{}, ErrEmptySelection
	}
	return win, nil
}
