package taxonomy

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// speciesColumns is the column count of the species reference table.
const speciesColumns = 9

// SpeciesRef is one row of the species reference table.
type SpeciesRef struct {
	TaxonID    int
	FirstName  string
	LastName   string
	Genus      string
	Species    string
	Subspecies string
	TaxonCode  string
	OrderA     string // legacy ordering code
	OrderB     string // legacy ordering code
}

// Binomial returns "Genus species".
func (r SpeciesRef) Binomial() string { return r.Genus + " " + r.Species }

// English joins the first and last name columns.
func (r SpeciesRef) English() string {
	return strings.TrimSpace(r.FirstName + " " + r.LastName)
}

// LoadSpeciesCSV reads the species reference table. A leading header row is
// detected by a non-numeric taxon id and skipped.
func LoadSpeciesCSV(r io.Reader) ([]SpeciesRef, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = speciesColumns
	cr.TrimLeadingSpace = true
	var out []SpeciesRef
	for line := 1; ; line++ {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("species reference: %w", err)
		}
		id, err := strconv.Atoi(strings.TrimSpace(row[0]))
		if err != nil {
			if line == 1 {
				continue
			}
			return nil, fmt.Errorf("species reference line %d: bad taxon id %q", line, row[0])
		}
		ref := SpeciesRef{
			TaxonID:    id,
			FirstName:  strings.TrimSpace(row[1]),
			LastName:   strings.TrimSpace(row[2]),
			Genus:      strings.TrimSpace(row[3]),
			Species:    strings.TrimSpace(row[4]),
			Subspecies: strings.TrimSpace(row[5]),
			TaxonCode:  strings.TrimSpace(row[6]),
			OrderA:     strings.TrimSpace(row[7]),
			OrderB:     strings.TrimSpace(row[8]),
		}
		if ref.Genus == "" || ref.Species == "" {
			return nil, fmt.Errorf("species reference line %d: missing genus or species", line)
		}
		out = append(out, ref)
	}
	return out, nil
}
