package view

import (
	"github.com/soocke/plumage-go/domain/sampler"
	"github.com/soocke/plumage-go/ui/format"
	"github.com/soocke/plumage-go/ui/theme"

	//lint:ignore ST1001 Dot import for concise Tk widget DSL.
	. "modernc.org/tk9.0"
)

// StatsTable lists the per-channel statistics of the last sample.
type StatsTable interface {
	Show(rgb, hsv sampler.Result)
	Clear()
}

type statsTable struct {
	size  *LabelWidget
	cells [2][3][]*LabelWidget // space, channel, stat
}

// NewStatsTable lays out a header row and one row per channel for RGB and
// HSV inside parent, starting at startRow.
func NewStatsTable(parent *FrameWidget, startRow int) StatsTable {
	t := &statsTable{}
	row := startRow
	t.size = Label(Txt("n = -"), Anchor("w"))
	Grid(t.size, In(parent), Row(row), Column(0), Columnspan(7), Sticky("w"), Padx("0.2m"))
	row++
	for i, h := range format.StatHeaders {
		Grid(TLabel(Txt(h), Anchor("e"), Style(theme.StyleHeaderLabel)), In(parent), Row(row), Column(i+1), Sticky("e"), Padx("0.3m"))
	}
	row++
	for si, space := range []sampler.Space{sampler.RGB, sampler.HSV} {
		for ci, ch := range space.ChannelNames() {
			Grid(Label(Txt(space.String()+" "+ch), Anchor("w")), In(parent), Row(row), Column(0), Sticky("w"), Padx("0.3m"))
			cells := make([]*LabelWidget, len(format.StatHeaders))
			for k := range cells {
				cells[k] = Label(Txt("-"), Width(8), Anchor("e"))
				Grid(cells[k], In(parent), Row(row), Column(k+1), Sticky("e"), Padx("0.3m"))
			}
			t.cells[si][ci] = cells
			row++
		}
	}
	return t
}

func (t *statsTable) Show(rgb, hsv sampler.Result) {
	if t == nil {
		return
	}
	t.size.Configure(Txt(format.SampleSize(rgb)))
	for si, res := range []sampler.Result{rgb, hsv} {
		for ci := range res.Channels {
			for k, v := range format.StatRow(res, ci) {
				t.cells[si][ci][k].Configure(Txt(v))
			}
		}
	}
}

func (t *statsTable) Clear() {
	if t == nil {
		return
	}
	t.size.Configure(Txt("n = -"))
	for si := range t.cells {
		for ci := range t.cells[si] {
			for _, c := range t.cells[si][ci] {
				c.Configure(Txt("-"))
			}
		}
	}
}
