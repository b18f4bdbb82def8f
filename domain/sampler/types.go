package sampler

import (
	"errors"
	"image"
)

var (
	// ErrEmptySelection reports a sampling window with zero pixels.
	ErrEmptySelection = errors.New("sampler: empty selection")
	// ErrOutOfBounds reports a selection centre outside the image.
	ErrOutOfBounds = errors.New("sampler: selection outside image bounds")
)

// DefaultBias is the historic +2 pixel window offset.
const DefaultBias = 2

// Space identifies the colour space a Result was reduced in.
type Space int

const (
	RGB Space = iota
	HSV
)

func (s Space) String() string {
	switch s {
	case RGB:
		return "rgb"
	case HSV:
		return "hsv"
	default:
		return "unknown"
	}
}

// ChannelNames returns the lower-case channel identifiers of the space.
func (s Space) ChannelNames() [3]string {
	if s == HSV {
		return [3]string{"h", "s", "v"}
	}
	return [3]string{"r", "g", "b"}
}

// Selection is a cursor position in image pixel space plus a radius.
type Selection struct {
	Center image.Point
	Radius int
}

// Options tune window placement and HSV post-processing.
type Options struct {
	// Bias shifts the window down-right by a fixed number of pixels.
	Bias int
	// RoundDecimals rounds HSV mean and std to that many places. Negative disables.
	RoundDecimals int
}

// DefaultOptions matches the historic behaviour: biased window, no rounding.
func DefaultOptions() Options { return Options{Bias: DefaultBias, RoundDecimals: -1} }

// ChannelStats summarises one channel over the sampling window.
type ChannelStats struct {
	Mean     float64
	Median   float64
	Std      float64
	Variance float64
	Min      float64
	Max      float64
}

// Result is the reduction of a sampling window in one colour space.
// Values holds the per-pixel channel values in row-major window order.
type Result struct {
	Space    Space
	Window   image.Rectangle
	Size     int
	Channels [3]ChannelStats
	Values   [3][]float64
}
