// Package taxonomy answers order / family / species queries over a static
// Order → Family → Genus → Species reference document.
package taxonomy

import (
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/beevik/etree"
)

// All is the filter sentinel matching every order or family.
const All = "ALL"

var (
	// ErrMalformed reports a reference document that cannot back a catalog.
	ErrMalformed = errors.New("taxonomy: malformed reference document")
	// ErrNotImplemented is returned by Subspecies when no subspecies data is attached.
	ErrNotImplemented = errors.New("taxonomy: subspecies lookup not implemented")
)

// Species pairs a binomial Latin name with its English name.
type Species struct {
	Binomial string
	English  string
}

// Catalog is a read-only view over a parsed taxonomy document.
// Not safe for concurrent mutation; AttachReference must happen before sharing.
type Catalog struct {
	list       *etree.Element
	subspecies map[string][]string // keyed by binomial; nil until AttachReference
}

// Load parses and validates a taxonomy document. No partial catalog is returned.
func Load(r io.Reader) (*Catalog, error) {
	doc := etree.NewDocument()
	if _, err := doc.ReadFrom(r); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	root := doc.Root()
	if root == nil {
		return nil, fmt.Errorf("%w: no root element", ErrMalformed)
	}
	list := root.FindElement("./list")
	if list == nil {
		return nil, fmt.Errorf("%w: missing list element", ErrMalformed)
	}
	if err := validate(list); err != nil {
		return nil, err
	}
	return &Catalog{list: list}, nil
}

// LoadFile opens path and calls Load.
func LoadFile(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	c, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return c, nil
}

// validate checks every node down to species carries the names queries rely on.
func validate(list *etree.Element) error {
	levels := []string{"./order", "./order/family", "./order/family/genus", "./order/family/genus/species"}
	for _, path := range levels {
		for _, el := range list.FindElements(path) {
			if latin(el) == "" {
				return fmt.Errorf("%w: %s without latin_name", ErrMalformed, el.Tag)
			}
		}
	}
	for _, sp := range list.FindElements("./order/family/genus/species") {
		if text(sp, "english_name") == "" {
			return fmt.Errorf("%w: species %q without english_name", ErrMalformed, latin(sp))
		}
	}
	return nil
}

// Orders returns order Latin names in document order.
func (c *Catalog) Orders() []string {
	return names(c.list.SelectElements("order"))
}

// Families returns the families of order, or of every order when order is
// empty or All. Unknown orders yield an empty slice.
func (c *Catalog) Families(order string) []string {
	if isAll(order) {
		return names(c.list.FindElements("./order/family"))
	}
	var out []*etree.Element
	for _, o := range filter(c.list.SelectElements("order"), order) {
		out = append(out, o.SelectElements("family")...)
	}
	return names(out)
}

// Species lists binomials under the optional order and family filters.
func (c *Catalog) Species(order, family string) []Species {
	out := []Species{}
	for _, o := range filter(c.list.SelectElements("order"), order) {
		for _, f := range filter(o.SelectElements("family"), family) {
			for _, g := range f.SelectElements("genus") {
				genus := latin(g)
				for _, sp := range g.SelectElements("species") {
					out = append(out, Species{
						Binomial: genus + " " + latin(sp),
						English:  text(sp, "english_name"),
					})
				}
			}
		}
	}
	return out
}

// Subspecies returns the attached subspecies epithets of genus species.
// Without attached reference data it fails with ErrNotImplemented.
func (c *Catalog) Subspecies(genus, species string) ([]string, error) {
	if c.subspecies == nil {
		return nil, ErrNotImplemented
	}
	subs := c.subspecies[genus+" "+species]
	return append([]string{}, subs...), nil
}

// AttachReference indexes the subspecies column of a species reference table.
func (c *Catalog) AttachReference(refs []SpeciesRef) {
	idx := make(map[string][]string)
	for _, r := range refs {
		key := r.Binomial()
		if _, ok := idx[key]; !ok {
			idx[key] = []string{}
		}
		if r.Subspecies == "" || slices.Contains(idx[key], r.Subspecies) {
			continue
		}
		idx[key] = append(idx[key], r.Subspecies)
	}
	c.subspecies = idx
}

func isAll(v string) bool { return v == "" || v == All }

// filter keeps elements whose latin_name equals name exactly.
func filter(els []*etree.Element, name string) []*etree.Element {
	if isAll(name) {
		return els
	}
	var out []*etree.Element
	for _, el := range els {
		if latin(el) == name {
			out = append(out, el)
		}
	}
	return out
}

func names(els []*etree.Element) []string {
	out := make([]string, 0, len(els))
	for _, el := range els {
		out = append(out, latin(el))
	}
	return out
}

func latin(el *etree.Element) string { return text(el, "latin_name") }

func text(el *etree.Element, tag string) string {
	child := el.SelectElement(tag)
	if child == nil {
		return ""
	}
	return strings.TrimSpace(child.Text())
}
