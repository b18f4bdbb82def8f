package record

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	// ErrUnknownField reports a field name absent from the schema.
	ErrUnknownField = errors.New("record: unknown field")
	// ErrFieldType reports a value whose type does not match the field kind.
	ErrFieldType = errors.New("record: value does not match field kind")
	// ErrHeaderMismatch reports a CSV header that differs from the schema.
	ErrHeaderMismatch = errors.New("record: csv header does not match schema")
)

// Kind is the value type of a schema field.
type Kind int

const (
	String Kind = iota
	Int
	Float
)

func (k Kind) String() string {
	switch k {
	case String:
		return "string"
	case Int:
		return "int"
	case Float:
		return "float"
	default:
		return "unknown"
	}
}

// Field is a named, typed column.
type Field struct {
	Name string
	Kind Kind
}

// Field names shared by the annotation form and the CSV header.
const (
	FieldSampleID      = "sample_id"
	FieldAnnotatedAt   = "annotated_at"
	FieldImageFile     = "image_file"
	FieldGenus         = "genus"
	FieldSpecies       = "species"
	FieldSubspecies    = "subspecies"
	FieldPlumageRegion = "plumage_region"
	FieldSex           = "sex"
	FieldAge           = "age"
	FieldImageSource   = "image_source"
	FieldImageType     = "image_type"
	FieldColorCategory = "color_category"
	FieldX             = "x"
	FieldY             = "y"
	FieldRadius        = "radius"
	FieldSampleSize    = "sample_size"
)

// StatNames lists the per-channel statistics in column order.
var StatNames = [6]string{"mean", "median", "std", "var", "min", "max"}

// StatField names the column holding a statistic, for example "rgb_r_mean".
func StatField(space, channel, stat string) string {
	return space + "_" + channel + "_" + stat
}

// Schema is an ordered list of fields. The zero value has no fields.
type Schema struct {
	fields []Field
	index  map[string]int
}

// NewSchema builds a schema; duplicate names are rejected.
func NewSchema(fields ...Field) (*Schema, error) {
	s := &Schema{fields: append([]Field(nil), fields...), index: make(map[string]int, len(fields))}
	for i, f := range fields {
		if f.Name == "" {
			return nil, fmt.Errorf("record: field %d has no name", i)
		}
		if _, dup := s.index[f.Name]; dup {
			return nil, fmt.Errorf("record: duplicate field %q", f.Name)
		}
		s.index[f.Name] = i
	}
	return s, nil
}

// DefaultSchema is the annotation dataset layout.
func DefaultSchema() *Schema {
	fields := []Field{
		{FieldSampleID, String},
		{FieldAnnotatedAt, String},
		{FieldImageFile, String},
		{FieldGenus, String},
		{FieldSpecies, String},
		{FieldSubspecies, String},
		{FieldPlumageRegion, String},
		{FieldSex, String},
		{FieldAge, String},
		{FieldImageSource, String},
		{FieldImageType, String},
		{FieldColorCategory, String},
		{FieldX, Int},
		{FieldY, Int},
		{FieldRadius, Int},
		{FieldSampleSize, Int},
	}
	spaces := []struct {
		name     string
		channels [3]string
	}{
		{"rgb", [3]string{"r", "g", "b"}},
		{"hsv", [3]string{"h", "s", "v"}},
	}
	for _, sp := range spaces {
		for _, ch := range sp.channels {
			for _, st := range StatNames {
				fields = append(fields, Field{StatField(sp.name, ch, st), Float})
			}
		}
	}
	s, err := NewSchema(fields...)
	if err != nil {
		panic(err) // static layout
	}
	return s
}

// Len returns the number of fields.
func (s *Schema) Len() int { return len(s.fields) }

// Header returns the field names in order.
func (s *Schema) Header() []string {
	out := make([]string, len(s.fields))
	for i, f := range s.fields {
		out[i] = f.Name
	}
	return out
}

// Lookup returns the position and definition of name.
func (s *Schema) Lookup(name string) (int, Field, bool) {
	i, ok := s.index[name]
	if !ok {
		return -1, Field{}, false
	}
	return i, s.fields[i], true
}

// CheckHeader compares a CSV header against the schema.
func (s *Schema) CheckHeader(header []string) error {
	want := s.Header()
	if len(header) != len(want) {
		return fmt.Errorf("%w: %d columns, want %d", ErrHeaderMismatch, len(header), len(want))
	}
	for i := range want {
		if strings.TrimSpace(header[i]) != want[i] {
			return fmt.Errorf("%w: column %d is %q, want %q", ErrHeaderMismatch, i, header[i], want[i])
		}
	}
	return nil
}

func format(k Kind, v any) string {
	switch k {
	case Int:
		return strconv.Itoa(v.(int))
	case Float:
		return strconv.FormatFloat(v.(float64), 'g', -1, 64)
	default:
		return v.(string)
	}
}

func parse(k Kind, s string) (any, error) {
	switch k {
	case Int:
		return strconv.Atoi(s)
	case Float:
		return strconv.ParseFloat(s, 64)
	default:
		return s, nil
	}
}
