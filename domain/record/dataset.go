package record

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
)

// Dataset accumulates inserted records until they are saved to a CSV file.
// Not safe for concurrent use; it is owned by the UI thread.
type Dataset struct {
	schema  *Schema
	pending []Record
}

// NewDataset returns an empty dataset for schema.
func NewDataset(schema *Schema) *Dataset { return &Dataset{schema: schema} }

// Schema returns the dataset schema.
func (d *Dataset) Schema() *Schema { return d.schema }

// Insert appends a copy of rec to the pending list.
func (d *Dataset) Insert(rec Record) error {
	if rec.schema != d.schema {
		return fmt.Errorf("record: schema mismatch on insert")
	}
	d.pending = append(d.pending, rec.Clone())
	return nil
}

// RemoveLast drops the most recent pending record.
func (d *Dataset) RemoveLast() bool {
	if len(d.pending) == 0 {
		return false
	}
	d.pending = d.pending[:len(d.pending)-1]
	return true
}

// Pending returns the unsaved records.
func (d *Dataset) Pending() []Record { return append([]Record(nil), d.pending...) }

// Len returns the number of unsaved records.
func (d *Dataset) Len() int { return len(d.pending) }

// Save appends the pending records to the CSV file at path, writing a header
// when the file is new or empty. The file is replaced atomically; pending
// records are cleared only once the write has succeeded.
func (d *Dataset) Save(path string) error {
	if len(d.pending) == 0 {
		return nil
	}
	var buf bytes.Buffer
	existing, err := os.ReadFile(path)
	switch {
	case err == nil && len(bytes.TrimSpace(existing)) > 0:
		header, herr := csv.NewReader(bytes.NewReader(existing)).Read()
		if herr != nil {
			return fmt.Errorf("read header of %s: %w", path, herr)
		}
		if herr := d.schema.CheckHeader(header); herr != nil {
			return herr
		}
		buf.Write(existing)
		if existing[len(existing)-1] != '\n' {
			buf.WriteByte('\n')
		}
	case err == nil || os.IsNotExist(err):
	default:
		return err
	}
	w := csv.NewWriter(&buf)
	if buf.Len() == 0 {
		if err := w.Write(d.schema.Header()); err != nil {
			return err
		}
	}
	for _, rec := range d.pending {
		if err := w.Write(rec.Strings()); err != nil {
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}
	if err := writeAtomic(path, buf.Bytes()); err != nil {
		return err
	}
	d.pending = nil
	return nil
}

// Load reads every record of a dataset file written by Save.
func Load(schema *Schema, path string) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if len(rows) == 0 {
		return nil, nil
	}
	if err := schema.CheckHeader(rows[0]); err != nil {
		return nil, err
	}
	out := make([]Record, 0, len(rows)-1)
	for i, row := range rows[1:] {
		rec, err := Parse(schema, row)
		if err != nil {
			return nil, fmt.Errorf("%s row %d: %w", path, i+2, err)
		}
		out = append(out, rec)
	}
	return out, nil
}

// writeAtomic writes data next to path and renames it into place. The
// permissions of an existing file are kept; a new file gets 0644.
func writeAtomic(path string, data []byte) error {
	mode := os.FileMode(0o644)
	if fi, err := os.Stat(path); err == nil {
		mode = fi.Mode().Perm()
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	name := tmp.Name()
	if err := tmp.Chmod(mode); err != nil {
		tmp.Close()
		os.Remove(name)
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(name)
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(name)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(name)
		return err
	}
	if err := os.Rename(name, path); err != nil {
		os.Remove(name)
		return err
	}
	return nil
}
