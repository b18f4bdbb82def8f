package view

import (
	"fmt"
	"log/slog"
	"strconv"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders
	. "modernc.org/tk9.0"
)

// SpeciesHandlers receive the picker selections.
type SpeciesHandlers struct {
	Order      func(order string)
	Family     func(family string)
	Species    func(index int)
	Subspecies func(name string)
	Opened     func()
}

// SpeciesDialog is the cascading order/family/species/subspecies picker
// shown in its own window.
type SpeciesDialog interface {
	OpenOrFocus()
	SetHandlers(h SpeciesHandlers)
	SetOrders(items []string)
	SetFamilies(items []string)
	SetSpecies(items []string)
	SetSubspecies(items []string)
}

type speciesDialog struct {
	logger *slog.Logger
	h      SpeciesHandlers
	win    *ToplevelWidget

	combos [4]*TComboboxWidget
	values [4][]string
}

const (
	levelOrder = iota
	levelFamily
	levelSpecies
	levelSubspecies
)

// NewSpeciesDialog creates the picker; the window is built on first open.
func NewSpeciesDialog(logger *slog.Logger) SpeciesDialog {
	return &speciesDialog{logger: logger}
}

func (v *speciesDialog) SetHandlers(h SpeciesHandlers) { v.h = h }

func (v *speciesDialog) OpenOrFocus() {
	if v.win != nil {
		Focus(v.win)
		return
	}
	win := App.Toplevel(Borderwidth(2))
	win.WmTitle("Species")
	v.win = win
	WmProtocol(win.Window, "WM_DELETE_WINDOW", v.close)
	GridColumnConfigure(win.Window, 1, Weight(1))
	labels := [4]string{"Order", "Family", "Species", "Subspecies"}
	widths := [4]int{24, 24, 48, 24}
	for i := range v.combos {
		level := i
		Grid(win.Label(Txt(labels[i]), Anchor("w")), Row(i), Column(0), Sticky("w"), Padx("0.4m"), Pady("0.3m"))
		cb := win.TCombobox(Values(display(i, v.values[i])), Width(widths[i]), State("readonly"))
		Grid(cb, Row(i), Column(1), Sticky("we"), Padx("0.4m"), Pady("0.3m"))
		Bind(cb, "<<ComboboxSelected>>", Command(func() { v.selected(level) }))
		v.combos[i] = cb
	}
	done := win.Button(Txt("Close [Esc]"), Command(v.close))
	Grid(done, Row(4), Column(0), Columnspan(2), Sticky("we"), Padx("0.4m"), Pady("0.3m"))
	Bind(win, "<Escape>", Command(v.close))
	if v.h.Opened != nil {
		v.h.Opened()
	}
}

func (v *speciesDialog) close() {
	if v.win != nil {
		Destroy(v.win)
		v.win = nil
		v.combos = [4]*TComboboxWidget{}
	}
}

func (v *speciesDialog) selected(level int) {
	cb := v.combos[level]
	if cb == nil {
		return
	}
	idx, ok, err := entryIndex(level, cb.Current(nil), len(v.values[level]))
	if err != nil && v.logger != nil {
		v.logger.Error("species selection parse error", "level", level, "error", err)
	}
	if !ok {
		return
	}
	val := v.values[level][idx]
	switch level {
	case levelOrder:
		call(v.h.Order, val)
	case levelFamily:
		call(v.h.Family, val)
	case levelSpecies:
		if v.h.Species != nil {
			v.h.Species(idx)
		}
	case levelSubspecies:
		call(v.h.Subspecies, val)
	}
}

// entryIndex maps a combobox position to an index into the level's values.
// The blank entry of the species and subspecies lists is not a selection.
func entryIndex(level int, current string, n int) (int, bool, error) {
	idx, err := strconv.Atoi(current)
	if err != nil {
		return 0, false, err
	}
	if blankFirst(level) {
		idx--
		if idx == -1 {
			return 0, false, nil
		}
	}
	if n == 0 {
		return 0, false, nil // placeholder of an empty list
	}
	if idx < 0 || idx >= n {
		return 0, false, fmt.Errorf("index %d out of %d entries", idx, n)
	}
	return idx, true, nil
}

func (v *speciesDialog) SetOrders(items []string)     { v.set(levelOrder, items) }
func (v *speciesDialog) SetFamilies(items []string)   { v.set(levelFamily, items) }
func (v *speciesDialog) SetSpecies(items []string)    { v.set(levelSpecies, items) }
func (v *speciesDialog) SetSubspecies(items []string) { v.set(levelSubspecies, items) }

// set stores items and refreshes the open combobox. Order and family lists
// start on their ALL entry; species and subspecies on a blank entry.
func (v *speciesDialog) set(level int, items []string) {
	v.values[level] = items
	cb := v.combos[level]
	if cb == nil {
		return
	}
	cb.Configure(Values(display(level, items)))
	cb.Current(0)
}

func blankFirst(level int) bool { return level == levelSpecies || level == levelSubspecies }

// display returns the combobox values for level. Tk never receives an empty list.
func display(level int, items []string) []string {
	if blankFirst(level) || len(items) == 0 {
		return append([]string{""}, items...)
	}
	return items
}

func call(fn func(string), v string) {
	if fn != nil {
		fn(v)
	}
}
