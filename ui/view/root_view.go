package view

import (
	"fmt"
	"image"
	"log/slog"
	"time"

	"github.com/soocke/plumage-go/config"
	"github.com/soocke/plumage-go/domain/annotation"
	"github.com/soocke/plumage-go/domain/imagesource"
	"github.com/soocke/plumage-go/domain/reference"
	"github.com/soocke/plumage-go/domain/sampler"
	"github.com/soocke/plumage-go/ui/theme"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

const appTitle = "Plumage Sampler"

// Handlers are the toolbar and keyboard actions wired by the app.
type Handlers struct {
	Open        func()
	Grab        func()
	Prev        func()
	Next        func()
	Insert      func()
	Undo        func()
	Save        func()
	SaveAs      func()
	ToggleDark  func()
	Exit        func()
	Field       FieldChanged
	PickSpecies func()
}

// RootView composes the top-level application layout.
// It owns the subviews and satisfies the presenter view contracts.
type RootView struct {
	cfg    *config.Config
	refs   reference.Set
	logger *slog.Logger

	// Subviews
	Canvas  PhotoCanvas
	Form    FormPanel
	Stats   StatsTable
	Preview SamplePreview
	Session SessionStats
	Species SpeciesDialog

	StatusLabel *TLabelWidget
}

// UI abstracts the subset of view operations needed by presenters, enabling decoupling
// from the concrete RootView implementation.
type UI interface {
	ShowPhoto(img image.Image)
	ShowMagnifier(img image.Image)
	ShowStats(rgb, hsv sampler.Result)
	ClearStats()
	ShowHistogram(img image.Image)
	ShowSwatch(img image.Image)
	SetForm(f annotation.Form)
	SetTitle(text string)
	SetStatus(text string)
	ShowError(title string, err error)
	SetSession(image, total time.Duration)
	SetCounts(inserted, saved int)
}

var _ UI = (*RootView)(nil)

// NewRootView returns an unbuilt view. The species dialog exists from the
// start so its lists can be filled before the window is first shown.
func NewRootView(cfg *config.Config, refs reference.Set, logger *slog.Logger) *RootView {
	return &RootView{cfg: cfg, refs: refs, logger: logger, Species: NewSpeciesDialog(logger)}
}

// Build constructs the layout: toolbar on top, photo plot on the left,
// form, statistics and previews on the right, status line at the bottom.
func (rv *RootView) Build(h Handlers) {
	if rv == nil {
		return
	}
	App.WmTitle(appTitle)
	GridColumnConfigure(App, 0, Weight(1))
	GridRowConfigure(App, 1, Weight(1))

	bar := Frame()
	Grid(bar, Row(0), Column(0), Columnspan(2), Sticky("we"), Padx("0.3m"), Pady("0.3m"))
	col := 0
	button := func(text, style string, cmd func()) {
		opts := []Opt{Txt(text), Command(cmd)}
		if style != "" {
			opts = append(opts, Style(style))
		}
		Grid(TButton(opts...), In(bar), Row(0), Column(col), Sticky("we"), Padx("0.2m"), Pady("0.2m"))
		col++
	}
	button("Open... [o]", "", h.Open)
	button("Grab screen", "", h.Grab)
	button("< Prev", "", h.Prev)
	button("Next >", "", h.Next)
	button("Insert [i]", theme.StylePrimaryButton, h.Insert)
	button("Undo", "", h.Undo)
	button("Save [s]", theme.StylePrimaryButton, h.Save)
	button("Save as...", "", h.SaveAs)
	button("Dark mode", "", h.ToggleDark)
	button("Exit", theme.StyleDangerButton, h.Exit)

	left := Frame()
	Grid(left, Row(1), Column(0), Sticky("nsew"))
	rv.Canvas = NewPhotoCanvas(left, 0, rv.cfg.CanvasWidth, rv.cfg.CanvasHeight)

	right := Frame()
	Grid(right, Row(1), Column(1), Sticky("nsew"), Padx("0.4m"))
	rv.Form = NewFormPanel(rv.refs, h.Field, h.PickSpecies, rv.logger)
	row := rv.Form.Build(right, 0)
	rv.Form.SetEditable(false)

	statsFrame := Frame()
	Grid(statsFrame, In(right), Row(row), Column(0), Columnspan(2), Sticky("we"), Pady("0.4m"))
	rv.Stats = NewStatsTable(statsFrame, 0)
	row++

	previewFrame := Frame()
	Grid(previewFrame, In(right), Row(row), Column(0), Columnspan(2), Sticky("we"))
	rv.Preview = NewSamplePreview(previewFrame, 0)

	bottom := Frame()
	Grid(bottom, Row(2), Column(0), Columnspan(2), Sticky("we"), Padx("0.3m"))
	rv.StatusLabel = TLabel(Txt("Open an image to start"), Anchor("w"), Style(theme.StyleStatusLabel))
	Grid(rv.StatusLabel, In(bottom), Row(0), Column(0), Sticky("we"), Padx("0.2m"))
	GridColumnConfigure(bottom.Window, 0, Weight(1))
	rv.Session = NewSessionStats(bottom, 0, 1)

	if rv.Species == nil {
		rv.Species = NewSpeciesDialog(rv.logger)
	}

	Bind(App, "<KeyPress-o>", Command(h.Open))
	Bind(App, "<KeyPress-i>", Command(h.Insert))
	Bind(App, "<KeyPress-s>", Command(h.Save))
	Bind(App, "<KeyPress-Right>", Command(h.Next))
	Bind(App, "<KeyPress-Left>", Command(h.Prev))
}

// AskImage shows the open dialog and returns the chosen path or "".
func (rv *RootView) AskImage(dir string) string {
	exts := append([]string(nil), imagesource.Extensions...)
	files := GetOpenFile(
		Title("Open image"),
		Initialdir(dir),
		Filetypes([]FileType{{TypeName: "Images", Extensions: exts}, {TypeName: "All files", Extensions: []string{"*"}}}),
	)
	if len(files) == 0 {
		return ""
	}
	return files[0]
}

// AskDataset shows the save dialog for the dataset file and returns the path or "".
func (rv *RootView) AskDataset(current string) string {
	return GetSaveFile(
		Title("Save samples as"),
		Initialfile(current),
		Defaultextension(".csv"),
		Filetypes([]FileType{{TypeName: "CSV", Extensions: []string{".csv"}}}),
	)
}

// Confirm asks a yes/no question.
func (rv *RootView) Confirm(title, msg string) bool {
	return MessageBox(Title(title), Msg(msg), Icon("question"), Type("yesno")) == "yes"
}

// ShowPhoto also unlocks the form, which stays read-only until a photo is shown.
func (rv *RootView) ShowPhoto(img image.Image) {
	if rv == nil || rv.Canvas == nil {
		return
	}
	rv.Canvas.Show(img)
	if rv.Form != nil {
		rv.Form.SetEditable(true)
	}
}

func (rv *RootView) ShowMagnifier(img image.Image) {
	if rv != nil && rv.Preview != nil {
		rv.Preview.UpdateMagnifier(img)
	}
}

func (rv *RootView) ShowSwatch(img image.Image) {
	if rv != nil && rv.Preview != nil {
		rv.Preview.UpdateSwatch(img)
	}
}

func (rv *RootView) ShowHistogram(img image.Image) {
	if rv != nil && rv.Preview != nil {
		rv.Preview.UpdateHistogram(img)
	}
}

func (rv *RootView) ShowStats(rgb, hsv sampler.Result) {
	if rv != nil && rv.Stats != nil {
		rv.Stats.Show(rgb, hsv)
	}
}

// ClearStats empties the table and the sample previews.
func (rv *RootView) ClearStats() {
	if rv == nil {
		return
	}
	if rv.Stats != nil {
		rv.Stats.Clear()
	}
	if rv.Preview != nil {
		rv.Preview.Reset()
	}
}

func (rv *RootView) SetForm(f annotation.Form) {
	if rv != nil && rv.Form != nil {
		rv.Form.SetForm(f)
	}
}

func (rv *RootView) SetTitle(text string) {
	App.WmTitle(appTitle + " - " + text)
}

func (rv *RootView) SetStatus(text string) {
	if rv != nil && rv.StatusLabel != nil {
		rv.StatusLabel.Configure(Txt(text))
	}
}

func (rv *RootView) ShowError(title string, err error) {
	if rv != nil && rv.logger != nil {
		rv.logger.Debug("error dialog", "title", title, "error", err)
	}
	MessageBox(Title(title), Msg(title), Detail(fmt.Sprint(err)), Icon("error"))
}

func (rv *RootView) SetSession(image, total time.Duration) {
	if rv != nil && rv.Session != nil {
		rv.Session.SetSession(image, total)
	}
}

func (rv *RootView) SetOrders(items []string)     { rv.Species.SetOrders(items) }
func (rv *RootView) SetFamilies(items []string)   { rv.Species.SetFamilies(items) }
func (rv *RootView) SetSpecies(items []string)    { rv.Species.SetSpecies(items) }
func (rv *RootView) SetSubspecies(items []string) { rv.Species.SetSubspecies(items) }

func (rv *RootView) SetCounts(inserted, saved int) {
	if rv != nil && rv.Session != nil {
		rv.Session.SetCounts(inserted, saved)
	}
}
