package annotation

import (
	"errors"
	"fmt"
	"image"
	"path/filepath"
	"strings"
	"time"

	"github.com/soocke/plumage-go/domain/record"
	"github.com/soocke/plumage-go/domain/sampler"
)

var (
	// ErrNoImage reports an operation that needs a loaded image.
	ErrNoImage = errors.New("annotation: no image loaded")
	// ErrNoSample reports an insert before any successful click.
	ErrNoSample = errors.New("annotation: no sample taken")
	// ErrUnknownField reports a form field outside the editable set.
	ErrUnknownField = errors.New("annotation: unknown form field")
)

// Form carries the metadata fields edited through the side panel.
type Form struct {
	Genus         string
	Species       string
	Subspecies    string
	PlumageRegion string
	Sex           string
	Age           string
	ImageSource   string
	ImageType     string
	ColorCategory string
}

// State is the whole annotation session state. Handlers take a State by
// value and return the successor; the image itself is treated as read-only.
type State struct {
	Image     image.Image
	ImageName string
	Cursor    sampler.Selection
	Options   sampler.Options
	MaxRadius int
	Form      Form

	// Last successful sample; nil until the first click on the current image.
	// Sampled is the selection the results were taken with. Cursor may have
	// moved on since.
	RGB     *sampler.Result
	HSV     *sampler.Result
	Sampled sampler.Selection
}

// New returns the initial state.
func New(opts sampler.Options, radius, maxRadius int) State {
	if maxRadius <= 0 {
		maxRadius = 100
	}
	return State{Options: opts, MaxRadius: maxRadius, Cursor: sampler.Selection{Radius: clamp(radius, 0, maxRadius)}}
}

// HasSample reports whether the state holds stats for the current image.
func (s State) HasSample() bool { return s.RGB != nil && s.HSV != nil }

// LoadImage installs a new image, centring the cursor and discarding stats.
// The form is kept so consecutive photos of one specimen need no re-entry.
func LoadImage(s State, name string, img image.Image) State {
	s.Image = img
	s.ImageName = name
	s.RGB, s.HSV = nil, nil
	s.Sampled = sampler.Selection{}
	if img != nil {
		b := img.Bounds()
		s.Cursor.Center = image.Pt(b.Min.X+b.Dx()/2, b.Min.Y+b.Dy()/2)
	}
	return s
}

// Click samples the region around p. On failure the input state is returned
// unchanged together with the error.
func Click(s State, p image.Point) (State, error) {
	if s.Image == nil {
		return s, ErrNoImage
	}
	sel := sampler.Selection{Center: p, Radius: s.Cursor.Radius}
	rgb, hsv, err := sampler.SampleBoth(s.Image, sel, s.Options)
	if err != nil {
		return s, err
	}
	s.Cursor, s.Sampled = sel, sel
	s.RGB, s.HSV = &rgb, &hsv
	return s, nil
}

// Scroll grows or shrinks the cursor radius by delta within [0, MaxRadius].
func Scroll(s State, delta int) State {
	s.Cursor.Radius = clamp(s.Cursor.Radius+delta, 0, s.MaxRadius)
	return s
}

// Drag moves the cursor without sampling. Points outside the image are ignored.
func Drag(s State, p image.Point) State {
	if s.Image == nil || !p.In(s.Image.Bounds()) {
		return s
	}
	s.Cursor.Center = p
	return s
}

// SetField updates one form field by its record column name.
func SetField(s State, name, value string) (State, error) {
	value = strings.TrimSpace(value)
	switch name {
	case record.FieldGenus:
		s.Form.Genus = value
	case record.FieldSpecies:
		s.Form.Species = value
	case record.FieldSubspecies:
		s.Form.Subspecies = value
	case record.FieldPlumageRegion:
		s.Form.PlumageRegion = value
	case record.FieldSex:
		s.Form.Sex = value
	case record.FieldAge:
		s.Form.Age = value
	case record.FieldImageSource:
		s.Form.ImageSource = value
	case record.FieldImageType:
		s.Form.ImageType = value
	case record.FieldColorCategory:
		s.Form.ColorCategory = value
	default:
		return s, fmt.Errorf("%w: %q", ErrUnknownField, name)
	}
	return s, nil
}

// SetSpecies splits a binomial into genus and species and clears the subspecies.
func SetSpecies(s State, binomial string) State {
	genus, species, _ := strings.Cut(strings.TrimSpace(binomial), " ")
	s.Form.Genus = genus
	s.Form.Species = strings.TrimSpace(species)
	s.Form.Subspecies = ""
	return s
}

// Insert builds the dataset record for the last sample. Position and radius
// come from the sampled selection, not from the live cursor.
func Insert(s State, schema *record.Schema, now time.Time, id string) (record.Record, error) {
	if s.Image == nil {
		return record.Record{}, ErrNoImage
	}
	if !s.HasSample() {
		return record.Record{}, ErrNoSample
	}
	rec := record.New(schema)
	values := []struct {
		name string
		v    any
	}{
		{record.FieldSampleID, id},
		{record.FieldAnnotatedAt, now.UTC().Format(time.RFC3339)},
		{record.FieldImageFile, filepath.Base(s.ImageName)},
		{record.FieldGenus, s.Form.Genus},
		{record.FieldSpecies, s.Form.Species},
		{record.FieldSubspecies, s.Form.Subspecies},
		{record.FieldPlumageRegion, s.Form.PlumageRegion},
		{record.FieldSex, s.Form.Sex},
		{record.FieldAge, s.Form.Age},
		{record.FieldImageSource, s.Form.ImageSource},
		{record.FieldImageType, s.Form.ImageType},
		{record.FieldColorCategory, s.Form.ColorCategory},
		{record.FieldX, s.Sampled.Center.X},
		{record.FieldY, s.Sampled.Center.Y},
		{record.FieldRadius, s.Sampled.Radius},
		{record.FieldSampleSize, s.RGB.Size},
	}
	for _, f := range values {
		if err := rec.Set(f.name, f.v); err != nil {
			return record.Record{}, err
		}
	}
	for _, res := range []*sampler.Result{s.RGB, s.HSV} {
		names := res.Space.ChannelNames()
		for i, ch := range res.Channels {
			stats := [6]float64{ch.Mean, ch.Median, ch.Std, ch.Variance, ch.Min, ch.Max}
			for j, stat := range record.StatNames {
				if err := rec.Set(record.StatField(res.Space.String(), names[i], stat), stats[j]); err != nil {
					return record.Record{}, err
				}
			}
		}
	}
	return rec, nil
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
