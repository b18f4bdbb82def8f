package assets

import (
	"bytes"
	"embed"
	"fmt"
	"io"
)

// Data holds the bundled reference files: the default taxonomy document, the
// species reference table and one list file per form picker.
//
//go:embed data/*.xml data/*.csv
var Data embed.FS

// TaxonomyXML returns a reader over the embedded default taxonomy document.
func TaxonomyXML() (io.Reader, error) { return open("data/ioc.xml") }

// SpeciesCSV returns a reader over the embedded species reference table.
func SpeciesCSV() (io.Reader, error) { return open("data/species.csv") }

// List returns a reader over the embedded reference list with the given base
// name (for example "sex" or "plumage_regions").
func List(name string) (io.Reader, error) { return open("data/" + name + ".csv") }

func open(name string) (io.Reader, error) {
	b, err := Data.ReadFile(name)
	if err != nil {
		return nil, err
	}
	if len(b) == 0 {
		return nil, fmt.Errorf("embedded %s is empty", name)
	}
	return bytes.NewReader(b), nil
}
