package taxonomy

import (
	"errors"
	"reflect"
	"sort"
	"strings"
	"testing"

	"github.com/soocke/plumage-go/assets"
)

const twoOrders = `<?xml version="1.0"?>
<ioclist>
  <list>
    <order>
      <latin_name>Passeriformes</latin_name>
      <family>
        <latin_name>Ploceidae</latin_name>
        <genus>
          <latin_name>Ploceus</latin_name>
          <species><latin_name>nelicourvi</latin_name><english_name>Nelicourvi Weaver</english_name></species>
          <species><latin_name>sakalava</latin_name><english_name>Sakalava Weaver</english_name></species>
        </genus>
      </family>
      <family>
        <latin_name>Vangidae</latin_name>
        <genus>
          <latin_name>Vanga</latin_name>
          <species><latin_name>curvirostris</latin_name><english_name>Hook-billed Vanga</english_name></species>
        </genus>
      </family>
    </order>
    <order>
      <latin_name>Piciformes</latin_name>
      <family>
        <latin_name>Picidae</latin_name>
        <genus>
          <latin_name>Picus</latin_name>
          <species><latin_name>viridis</latin_name><english_name>European Green Woodpecker</english_name></species>
        </genus>
      </family>
    </order>
  </list>
</ioclist>`

func mustLoad(t *testing.T, doc string) *Catalog {
	t.Helper()
	c, err := Load(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	return c
}

func TestOrders_DocumentOrder(t *testing.T) {
	c := mustLoad(t, twoOrders)
	if got := c.Orders(); !reflect.DeepEqual(got, []string{"Passeriformes", "Piciformes"}) {
		t.Fatalf("unexpected orders %v", got)
	}
}

func TestFamilies_AllIsUnionOfOrders(t *testing.T) {
	c := mustLoad(t, twoOrders)
	all := c.Families(All)
	var union []string
	for _, o := range c.Orders() {
		union = append(union, c.Families(o)...)
	}
	sort.Strings(all)
	sort.Strings(union)
	if !reflect.DeepEqual(all, union) {
		t.Fatalf("ALL=%v union=%v", all, union)
	}
	if !reflect.DeepEqual(c.Families(""), c.Families(All)) {
		t.Fatalf("empty filter should behave like ALL")
	}
}

func TestFamilies_ExactCaseSensitiveMatch(t *testing.T) {
	c := mustLoad(t, twoOrders)
	if got := c.Families("Piciformes"); !reflect.DeepEqual(got, []string{"Picidae"}) {
		t.Fatalf("unexpected families %v", got)
	}
	if got := c.Families("piciformes"); len(got) != 0 {
		t.Fatalf("expected no match for lower-case order, got %v", got)
	}
}

func TestSpecies_Filters(t *testing.T) {
	c := mustLoad(t, twoOrders)
	got := c.Species("Passeriformes", "Ploceidae")
	want := []Species{
		{Binomial: "Ploceus nelicourvi", English: "Nelicourvi Weaver"},
		{Binomial: "Ploceus sakalava", English: "Sakalava Weaver"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v want %v", got, want)
	}
	if n := len(c.Species(All, All)); n != 4 {
		t.Fatalf("expected 4 species overall, got %d", n)
	}
	if got := c.Species(All, "Picidae"); len(got) != 1 || got[0].Binomial != "Picus viridis" {
		t.Fatalf("family-only filter failed: %v", got)
	}
	// family under a different order
	if got := c.Species("Piciformes", "Ploceidae"); len(got) != 0 {
		t.Fatalf("expected empty result, got %v", got)
	}
	if got := c.Species("Strigiformes", ""); got == nil || len(got) != 0 {
		t.Fatalf("unknown order should give an empty, non-nil slice: %#v", got)
	}
}

func TestLoad_RejectsMalformed(t *testing.T) {
	cases := map[string]string{
		"not xml":         "<<<",
		"missing list":    "<ioclist><order/></ioclist>",
		"order no name":   "<ioclist><list><order><family/></order></list></ioclist>",
		"species no name": "<ioclist><list><order><latin_name>A</latin_name><family><latin_name>B</latin_name><genus><latin_name>C</latin_name><species><latin_name>d</latin_name></species></genus></family></order></list></ioclist>",
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			c, err := Load(strings.NewReader(doc))
			if err == nil || c != nil {
				t.Fatalf("expected failure, got catalog=%v err=%v", c, err)
			}
			if !errors.Is(err, ErrMalformed) {
				t.Fatalf("expected ErrMalformed, got %v", err)
			}
		})
	}
}

func TestSubspecies_NotImplementedUntilAttached(t *testing.T) {
	c := mustLoad(t, twoOrders)
	if _, err := c.Subspecies("Ploceus", "sakalava"); !errors.Is(err, ErrNotImplemented) {
		t.Fatalf("expected ErrNotImplemented, got %v", err)
	}
	c.AttachReference([]SpeciesRef{
		{TaxonID: 1, Genus: "Ploceus", Species: "sakalava", Subspecies: "sakalava"},
		{TaxonID: 2, Genus: "Ploceus", Species: "sakalava", Subspecies: "minor"},
		{TaxonID: 3, Genus: "Ploceus", Species: "sakalava", Subspecies: "minor"},
		{TaxonID: 4, Genus: "Ploceus", Species: "nelicourvi"},
	})
	subs, err := c.Subspecies("Ploceus", "sakalava")
	if err != nil || !reflect.DeepEqual(subs, []string{"sakalava", "minor"}) {
		t.Fatalf("unexpected subspecies %v err=%v", subs, err)
	}
	subs, err = c.Subspecies("Ploceus", "nelicourvi")
	if err != nil || len(subs) != 0 {
		t.Fatalf("expected none, got %v err=%v", subs, err)
	}
}

func TestEmbeddedReferenceData(t *testing.T) {
	r, err := assets.TaxonomyXML()
	if err != nil {
		t.Fatal(err)
	}
	c, err := Load(r)
	if err != nil {
		t.Fatalf("embedded taxonomy: %v", err)
	}
	if len(c.Orders()) == 0 || len(c.Species(All, All)) == 0 {
		t.Fatalf("embedded taxonomy is empty")
	}
	sr, err := assets.SpeciesCSV()
	if err != nil {
		t.Fatal(err)
	}
	refs, err := LoadSpeciesCSV(sr)
	if err != nil {
		t.Fatalf("embedded species table: %v", err)
	}
	c.AttachReference(refs)
	subs, err := c.Subspecies("Coua", "cristata")
	if err != nil || len(subs) != 3 {
		t.Fatalf("expected 3 Coua cristata subspecies, got %v err=%v", subs, err)
	}
}

func TestLoadSpeciesCSV(t *testing.T) {
	body := "taxon_id,first,last,genus,species,subspecies,code,a,b\n" +
		"7, Red, Fody, Foudia, madagascariensis, , FOUMAD, 1, 2\n"
	refs, err := LoadSpeciesCSV(strings.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}
	if len(refs) != 1 || refs[0].Binomial() != "Foudia madagascariensis" || refs[0].English() != "Red Fody" || refs[0].TaxonID != 7 {
		t.Fatalf("unexpected refs %+v", refs)
	}
	if _, err := LoadSpeciesCSV(strings.NewReader("1,a,b,G,s,,c,1\n")); err == nil {
		t.Fatalf("expected column count error")
	}
	if _, err := LoadSpeciesCSV(strings.NewReader("1,a,b,G,s,,c,1,2\nx,a,b,G,s,,c,1,2\n")); err == nil {
		t.Fatalf("expected bad id error on non-header line")
	}
}
