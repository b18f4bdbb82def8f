package record

import "fmt"

// Record holds one value per schema field. Unset fields format as empty
// strings; Get reports them as absent.
type Record struct {
	schema *Schema
	values []any
}

// New returns an empty record bound to schema.
func New(schema *Schema) Record {
	return Record{schema: schema, values: make([]any, schema.Len())}
}

// Schema returns the schema the record is bound to.
func (r Record) Schema() *Schema { return r.schema }

// Set stores value under name after checking it against the field kind.
// The receiver is updated in place; copy with Clone before sharing.
func (r Record) Set(name string, value any) error {
	i, f, ok := r.schema.Lookup(name)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownField, name)
	}
	if !matches(f.Kind, value) {
		return fmt.Errorf("%w: %s is %s, got %T", ErrFieldType, name, f.Kind, value)
	}
	r.values[i] = value
	return nil
}

// Get returns the value stored under name.
func (r Record) Get(name string) (any, bool) {
	i, _, ok := r.schema.Lookup(name)
	if !ok || r.values[i] == nil {
		return nil, false
	}
	return r.values[i], true
}

// Text returns a string field, or "" when unset or not a string.
func (r Record) Text(name string) string {
	v, _ := r.Get(name)
	s, _ := v.(string)
	return s
}

// Clone returns an independent copy.
func (r Record) Clone() Record {
	return Record{schema: r.schema, values: append([]any(nil), r.values...)}
}

// Strings formats the record as a CSV row in schema order.
func (r Record) Strings() []string {
	out := make([]string, len(r.values))
	for i, v := range r.values {
		if v == nil {
			continue
		}
		out[i] = format(r.schema.fields[i].Kind, v)
	}
	return out
}

// Parse converts a CSV row back into a record. Empty cells stay unset.
func Parse(schema *Schema, row []string) (Record, error) {
	if len(row) != schema.Len() {
		return Record{}, fmt.Errorf("record: %d values, want %d", len(row), schema.Len())
	}
	rec := New(schema)
	for i, cell := range row {
		if cell == "" {
			continue
		}
		f := schema.fields[i]
		v, err := parse(f.Kind, cell)
		if err != nil {
			return Record{}, fmt.Errorf("record: field %s: %w", f.Name, err)
		}
		rec.values[i] = v
	}
	return rec, nil
}

func matches(k Kind, v any) bool {
	switch k {
	case Int:
		_, ok := v.(int)
		return ok
	case Float:
		_, ok := v.(float64)
		return ok
	default:
		_, ok := v.(string)
		return ok
	}
}
