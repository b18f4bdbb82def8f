package presenter

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/soocke/plumage-go/domain/record"
	"github.com/soocke/plumage-go/domain/taxonomy"
)

// Catalog is the taxonomy query surface the species picker needs.
type Catalog interface {
	Orders() []string
	Families(order string) []string
	Species(order, family string) []taxonomy.Species
	Subspecies(genus, species string) ([]string, error)
}

// SpeciesView shows the cascading order, family, species and subspecies lists.
type SpeciesView interface {
	SetOrders(items []string)
	SetFamilies(items []string)
	SetSpecies(items []string)
	SetSubspecies(items []string)
}

// SpeciesTarget receives the picked species.
type SpeciesTarget interface {
	SetSpecies(binomial string)
	SetField(name, value string)
}

// SpeciesPresenter drives the species picker. List position 0 of the order
// and family lists is always the "ALL" entry.
type SpeciesPresenter struct {
	catalog Catalog
	view    SpeciesView
	target  SpeciesTarget
	logger  *slog.Logger

	order   string
	family  string
	species []taxonomy.Species
	picked  taxonomy.Species
}

// NewSpeciesPresenter returns a presenter bound to catalog.
func NewSpeciesPresenter(catalog Catalog, view SpeciesView, target SpeciesTarget, logger *slog.Logger) *SpeciesPresenter {
	if logger == nil {
		logger = slog.Default()
	}
	return &SpeciesPresenter{catalog: catalog, view: view, target: target, logger: logger, order: taxonomy.All, family: taxonomy.All}
}

// Init fills the lists with every order, family and species.
func (p *SpeciesPresenter) Init() {
	p.order, p.family = taxonomy.All, taxonomy.All
	p.view.SetOrders(withAll(p.catalog.Orders()))
	p.view.SetFamilies(withAll(p.catalog.Families(taxonomy.All)))
	p.refreshSpecies()
}

// SelectOrder narrows families and species to order.
func (p *SpeciesPresenter) SelectOrder(order string) {
	if order == "" {
		order = taxonomy.All
	}
	p.order, p.family = order, taxonomy.All
	p.view.SetFamilies(withAll(p.catalog.Families(order)))
	p.refreshSpecies()
}

// SelectFamily narrows species to family within the current order.
func (p *SpeciesPresenter) SelectFamily(family string) {
	if family == "" {
		family = taxonomy.All
	}
	p.family = family
	p.refreshSpecies()
}

// SelectSpecies picks the species at index i of the species list.
func (p *SpeciesPresenter) SelectSpecies(i int) {
	if i < 0 || i >= len(p.species) {
		return
	}
	p.picked = p.species[i]
	p.target.SetSpecies(p.picked.Binomial)
	genus, species, _ := strings.Cut(p.picked.Binomial, " ")
	subs, err := p.catalog.Subspecies(genus, species)
	if err != nil {
		if !errors.Is(err, taxonomy.ErrNotImplemented) {
			p.logger.Error("subspecies lookup", "species", p.picked.Binomial, "error", err)
		}
		subs = nil
	}
	p.view.SetSubspecies(subs)
}

// SelectSubspecies records the subspecies of the picked species.
func (p *SpeciesPresenter) SelectSubspecies(name string) {
	if p.picked.Binomial == "" {
		return
	}
	p.target.SetField(record.FieldSubspecies, name)
}

// Picked returns the last picked species.
func (p *SpeciesPresenter) Picked() taxonomy.Species { return p.picked }

func (p *SpeciesPresenter) refreshSpecies() {
	p.species = p.catalog.Species(p.order, p.family)
	p.view.SetSpecies(SpeciesLabels(p.species))
	p.view.SetSubspecies(nil)
}

// SpeciesLabels formats species for display as "Genus species (English name)".
func SpeciesLabels(list []taxonomy.Species) []string {
	out := make([]string, len(list))
	for i, s := range list {
		if s.English == "" {
			out[i] = s.Binomial
			continue
		}
		out[i] = fmt.Sprintf("%s (%s)", s.Binomial, s.English)
	}
	return out
}

func withAll(items []string) []string {
	return append([]string{taxonomy.All}, items...)
}
