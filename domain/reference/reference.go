package reference

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/soocke/plumage-go/assets"
)

// Entry is one line of a field reference file: index, short code, display name.
type Entry struct {
	Index int
	Code  string
	Name  string
}

// Kind names a form picker backed by a reference list. The value doubles as
// the base name of the list file.
type Kind string

const (
	PlumageRegion Kind = "plumage_regions"
	Sex           Kind = "sex"
	Age           Kind = "age"
	ImageSource   Kind = "image_source"
	ImageType     Kind = "image_type"
	ColorCategory Kind = "color_category"
)

// Kinds lists every picker in form order.
func Kinds() []Kind {
	return []Kind{PlumageRegion, Sex, Age, ImageSource, ImageType, ColorCategory}
}

// Set holds the loaded reference lists keyed by kind.
type Set map[Kind][]Entry

// Names returns the display names of kind in file order.
func (s Set) Names(k Kind) []string {
	out := make([]string, 0, len(s[k]))
	for _, e := range s[k] {
		out = append(out, e.Name)
	}
	return out
}

// Load parses a reference list. Blank lines are skipped; any other malformed
// line fails the whole list.
func Load(r io.Reader) ([]Entry, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = 3
	cr.TrimLeadingSpace = true
	var out []Entry
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		line, _ := cr.FieldPos(0)
		idx, err := strconv.Atoi(strings.TrimSpace(row[0]))
		if err != nil {
			return nil, fmt.Errorf("line %d: bad index %q", line, row[0])
		}
		name := strings.TrimSpace(row[2])
		if name == "" {
			return nil, fmt.Errorf("line %d: empty display name", line)
		}
		out = append(out, Entry{Index: idx, Code: strings.TrimSpace(row[1]), Name: name})
	}
	return out, nil
}

// LoadSet reads every list from dir, falling back to the embedded default for
// lists the directory does not provide. An empty dir uses only the defaults.
func LoadSet(dir string) (Set, error) {
	set := make(Set)
	for _, k := range Kinds() {
		entries, err := loadKind(dir, k)
		if err != nil {
			return nil, fmt.Errorf("reference %s: %w", k, err)
		}
		set[k] = entries
	}
	return set, nil
}

func loadKind(dir string, k Kind) ([]Entry, error) {
	if dir != "" {
		f, err := os.Open(filepath.Join(dir, string(k)+".csv"))
		if err == nil {
			defer f.Close()
			return Load(f)
		}
		if !os.IsNotExist(err) {
			return nil, err
		}
	}
	r, err := assets.List(string(k))
	if err != nil {
		return nil, err
	}
	return Load(r)
}
