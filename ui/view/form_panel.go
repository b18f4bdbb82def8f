package view

import (
	"log/slog"
	"strconv"

	"github.com/soocke/plumage-go/domain/annotation"
	"github.com/soocke/plumage-go/domain/record"
	"github.com/soocke/plumage-go/domain/reference"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// FormPanel holds the metadata fields of the next sample: the picked
// species and one drop-down per reference list.
type FormPanel interface {
	Build(parent *FrameWidget, startRow int) (endRow int)
	SetForm(f annotation.Form)
	SetEditable(enabled bool)
}

// FieldChanged is called with the record column name and the chosen value.
type FieldChanged func(field, value string)

type formPanel struct {
	refs      reference.Set
	logger    *slog.Logger
	onChange  FieldChanged
	onPick    func()
	species   *LabelWidget
	subspec   *LabelWidget
	pickBtn   *ButtonWidget
	combos    map[string]*TComboboxWidget // keyed by record field
	comboVals map[string][]string
}

// formFields maps reference lists onto record columns in display order.
var formFields = []struct {
	field string
	kind  reference.Kind
	label string
}{
	{record.FieldPlumageRegion, reference.PlumageRegion, "Plumage region"},
	{record.FieldSex, reference.Sex, "Sex"},
	{record.FieldAge, reference.Age, "Age"},
	{record.FieldImageSource, reference.ImageSource, "Image source"},
	{record.FieldImageType, reference.ImageType, "Image type"},
	{record.FieldColorCategory, reference.ColorCategory, "Colour category"},
}

// NewFormPanel creates the panel. onPick opens the species picker.
func NewFormPanel(refs reference.Set, onChange FieldChanged, onPick func(), logger *slog.Logger) FormPanel {
	return &formPanel{
		refs:      refs,
		logger:    logger,
		onChange:  onChange,
		onPick:    onPick,
		combos:    make(map[string]*TComboboxWidget),
		comboVals: make(map[string][]string),
	}
}

func (v *formPanel) Build(parent *FrameWidget, startRow int) (row int) {
	row = startRow
	v.pickBtn = Button(Txt("Species..."), Command(v.onPick))
	Grid(v.pickBtn, In(parent), Row(row), Column(0), Sticky("we"), Padx("0.4m"), Pady("0.15m"))
	v.species = Label(Txt("<no species>"), Anchor("w"))
	Grid(v.species, In(parent), Row(row), Column(1), Sticky("we"), Padx("0.4m"), Pady("0.15m"))
	row++
	Grid(Label(Txt("Subspecies"), Anchor("w")), In(parent), Row(row), Column(0), Sticky("w"), Padx("0.4m"), Pady("0.15m"))
	v.subspec = Label(Txt("-"), Anchor("w"))
	Grid(v.subspec, In(parent), Row(row), Column(1), Sticky("we"), Padx("0.4m"), Pady("0.15m"))
	row++
	for _, f := range formFields {
		field := f.field
		names := v.refs.Names(f.kind)
		if len(names) == 0 {
			names = []string{""}
		}
		lbl := Label(Txt(f.label), Anchor("w"))
		Grid(lbl, In(parent), Row(row), Column(0), Sticky("w"), Padx("0.4m"), Pady("0.15m"))
		cb := TCombobox(Values(names), Width(22), State("readonly"))
		Grid(cb, In(parent), Row(row), Column(1), Sticky("we"), Padx("0.4m"), Pady("0.15m"))
		v.combos[field] = cb
		v.comboVals[field] = names
		Bind(cb, "<<ComboboxSelected>>", Command(func() { v.selected(field) }))
		row++
	}
	return row
}

func (v *formPanel) selected(field string) {
	cb := v.combos[field]
	if cb == nil || v.onChange == nil {
		return
	}
	idx, err := strconv.Atoi(cb.Current(nil))
	vals := v.comboVals[field]
	if err != nil || idx < 0 || idx >= len(vals) {
		if v.logger != nil {
			v.logger.Error("form selection parse error", "field", field, "error", err)
		}
		return
	}
	v.onChange(field, vals[idx])
}

func (v *formPanel) SetForm(f annotation.Form) {
	if v.species == nil {
		return
	}
	name := f.Genus + " " + f.Species
	if f.Genus == "" {
		name = "<no species>"
	}
	v.species.Configure(Txt(name))
	sub := f.Subspecies
	if sub == "" {
		sub = "-"
	}
	v.subspec.Configure(Txt(sub))
}

func (v *formPanel) SetEditable(enabled bool) {
	state := "disabled"
	if enabled {
		state = "readonly"
	}
	for _, cb := range v.combos {
		cb.Configure(State(state))
	}
	if v.pickBtn != nil {
		if enabled {
			v.pickBtn.Configure(State("normal"))
		} else {
			v.pickBtn.Configure(State("disabled"))
		}
	}
}
