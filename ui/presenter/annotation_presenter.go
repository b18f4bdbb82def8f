package presenter

import (
	"errors"
	"fmt"
	"image"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/soocke/plumage-go/domain/annotation"
	"github.com/soocke/plumage-go/domain/imagesource"
	"github.com/soocke/plumage-go/domain/record"
	"github.com/soocke/plumage-go/domain/sampler"
	"github.com/soocke/plumage-go/ui/images"
	"github.com/soocke/plumage-go/ui/model"
	"github.com/soocke/plumage-go/ui/plotcanvas"
)

// PointerEvents is the capability the canvas view forwards user input to.
// Coordinates are canvas pixels.
type PointerEvents interface {
	OnClick(px, py int)
	OnScroll(delta int)
	OnDrag(px, py int)
}

// ImageSource opens photos and grabs the screen.
type ImageSource interface {
	Open(path string) (*image.NRGBA, error)
	Grab() (*image.NRGBA, error)
}

// SampleStore collects inserted records and writes them out.
type SampleStore interface {
	Schema() *record.Schema
	Insert(rec record.Record) error
	RemoveLast() bool
	Len() int
	Save(path string) error
}

// AnnotationView is the UI surface updated by the presenter.
type AnnotationView interface {
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
}

const (
	magnifierSize = 24
	magnifierZoom = 5
	histogramW    = 300
	histogramH    = 240
	swatchSize    = 48
)

// AnnotationPresenter handles pointer input, image navigation, form edits
// and dataset writes for the annotation window.
type AnnotationPresenter struct {
	model   *model.AnnotationModel
	session *model.SessionModel
	source  ImageSource
	store   SampleStore
	view    AnnotationView
	logger  *slog.Logger

	datasetPath string
	folder      *imagesource.Folder
	viewport    plotcanvas.Viewport
	canvasW     int
	canvasH     int

	NewID func() string
	Now   func() time.Time
}

var _ PointerEvents = (*AnnotationPresenter)(nil)

// NewAnnotationPresenter wires the presenter. canvasW and canvasH size the photo plot.
func NewAnnotationPresenter(m *model.AnnotationModel, sess *model.SessionModel, source ImageSource, store SampleStore, view AnnotationView, datasetPath string, canvasW, canvasH int, logger *slog.Logger) *AnnotationPresenter {
	if logger == nil {
		logger = slog.Default()
	}
	return &AnnotationPresenter{
		model:       m,
		session:     sess,
		source:      source,
		store:       store,
		view:        view,
		logger:      logger,
		datasetPath: datasetPath,
		canvasW:     canvasW,
		canvasH:     canvasH,
		NewID:       uuid.NewString,
		Now:         time.Now,
	}
}

// HasImage reports whether a photo is loaded.
func (p *AnnotationPresenter) HasImage() bool { return p.model.State().Image != nil }

// DatasetPath returns the file Save writes to.
func (p *AnnotationPresenter) DatasetPath() string { return p.datasetPath }

// SetDatasetPath changes the file Save writes to.
func (p *AnnotationPresenter) SetDatasetPath(path string) {
	if path == "" {
		return
	}
	p.datasetPath = path
	p.status()
}

// OpenImage loads the photo at path and makes its directory browsable.
func (p *AnnotationPresenter) OpenImage(path string) {
	img, err := p.source.Open(path)
	if err != nil {
		p.logger.Error("open image", "path", path, "error", err)
		p.view.ShowError("Cannot open image", err)
		return
	}
	if p.folder == nil || p.folder.Dir() != filepath.Dir(path) {
		if f, ferr := imagesource.OpenFolder(filepath.Dir(path), path); ferr == nil {
			p.folder = f
		} else {
			p.folder = nil
		}
	}
	p.install(path, img)
}

// GrabScreen replaces the photo with a capture of the screen.
func (p *AnnotationPresenter) GrabScreen() {
	img, err := p.source.Grab()
	if err != nil {
		p.logger.Error("screen grab", "error", err)
		p.view.ShowError("Screen grab failed", err)
		return
	}
	p.folder = nil
	p.install(imagesource.ScreenName, img)
}

// Next opens the following image of the current folder.
func (p *AnnotationPresenter) Next() { p.step(true) }

// Prev opens the previous image of the current folder.
func (p *AnnotationPresenter) Prev() { p.step(false) }

func (p *AnnotationPresenter) step(forward bool) {
	if p.folder == nil {
		p.view.SetStatus("No folder to browse")
		return
	}
	var (
		path string
		ok   bool
	)
	if forward {
		path, ok = p.folder.Next()
	} else {
		path, ok = p.folder.Prev()
	}
	if !ok {
		p.view.SetStatus(fmt.Sprintf("%d/%d %s", p.folder.Index()+1, p.folder.Len(), filepath.Base(path)))
		return
	}
	p.OpenImage(path)
}

func (p *AnnotationPresenter) install(name string, img *image.NRGBA) {
	p.model.Apply(func(s annotation.State) annotation.State { return annotation.LoadImage(s, name, img) })
	p.session.OnImageChanged(p.Now())
	title := filepath.Base(name)
	if p.folder != nil {
		title = fmt.Sprintf("%s (%d/%d)", title, p.folder.Index()+1, p.folder.Len())
	}
	p.view.SetTitle(title)
	p.view.ClearStats()
	p.logger.Info("image loaded", "name", name, "width", img.Bounds().Dx(), "height", img.Bounds().Dy())
	p.renderPhoto()
	p.status()
}

// OnClick samples the image pixel under the canvas position.
func (p *AnnotationPresenter) OnClick(px, py int) {
	if !p.HasImage() {
		p.view.SetStatus("Open an image first")
		return
	}
	pt, ok := p.viewport.ToImage(px, py)
	if !ok {
		p.view.SetStatus("Click outside the image")
		return
	}
	s, err := p.model.ApplyErr(func(s annotation.State) (annotation.State, error) { return annotation.Click(s, pt) })
	if err != nil {
		p.logger.Warn("sample failed", "x", pt.X, "y", pt.Y, "error", err)
		p.view.SetStatus(err.Error())
		return
	}
	p.logger.Debug("sampled", "x", pt.X, "y", pt.Y, "radius", s.Cursor.Radius, "pixels", s.RGB.Size)
	p.renderPhoto()
	p.renderSample(s)
	p.status()
}

// OnScroll grows or shrinks the sampling radius.
func (p *AnnotationPresenter) OnScroll(delta int) {
	p.model.Apply(func(s annotation.State) annotation.State { return annotation.Scroll(s, delta) })
	if p.HasImage() {
		p.renderPhoto()
	}
	p.status()
}

// OnDrag moves the cursor preview without sampling.
func (p *AnnotationPresenter) OnDrag(px, py int) {
	pt, ok := p.viewport.ToImage(px, py)
	if !ok || !p.HasImage() {
		return
	}
	p.model.Apply(func(s annotation.State) annotation.State { return annotation.Drag(s, pt) })
	p.renderPhoto()
}

// SetField updates one metadata field of the form.
func (p *AnnotationPresenter) SetField(name, value string) {
	s, err := p.model.ApplyErr(func(s annotation.State) (annotation.State, error) {
		return annotation.SetField(s, name, value)
	})
	if err != nil {
		p.logger.Error("set field", "field", name, "error", err)
		return
	}
	p.view.SetForm(s.Form)
}

// SetSpecies fills genus and species from a binomial and clears the subspecies.
func (p *AnnotationPresenter) SetSpecies(binomial string) {
	s := p.model.Apply(func(s annotation.State) annotation.State { return annotation.SetSpecies(s, binomial) })
	p.view.SetForm(s.Form)
}

// Insert adds the current sample to the pending records.
func (p *AnnotationPresenter) Insert() {
	rec, err := annotation.Insert(p.model.State(), p.store.Schema(), p.Now(), p.NewID())
	if err != nil {
		msg := err.Error()
		switch {
		case errors.Is(err, annotation.ErrNoImage):
			msg = "Open an image first"
		case errors.Is(err, annotation.ErrNoSample):
			msg = "Click the image to take a sample first"
		}
		p.view.SetStatus(msg)
		return
	}
	if err := p.store.Insert(rec); err != nil {
		p.logger.Error("insert", "error", err)
		p.view.ShowError("Insert failed", err)
		return
	}
	p.session.OnInsert()
	p.logger.Info("sample inserted", "id", rec.Text(record.FieldSampleID), "pending", p.store.Len())
	p.status()
}

// UndoInsert drops the most recent pending record.
func (p *AnnotationPresenter) UndoInsert() {
	if p.store.RemoveLast() {
		p.session.OnUndo()
	}
	p.status()
}

// Save appends the pending records to the dataset file. On failure the
// records stay pending and the user is told why.
func (p *AnnotationPresenter) Save() error {
	n := p.store.Len()
	if n == 0 {
		p.view.SetStatus("Nothing to save")
		return nil
	}
	if err := p.store.Save(p.datasetPath); err != nil {
		p.logger.Error("save dataset", "path", p.datasetPath, "pending", n, "error", err)
		p.view.ShowError("Save failed", fmt.Errorf("%d samples kept unsaved: %w", n, err))
		return err
	}
	p.session.OnSaved()
	p.logger.Info("dataset saved", "path", p.datasetPath, "records", n)
	p.view.SetStatus(fmt.Sprintf("Saved %d samples to %s", n, p.datasetPath))
	return nil
}

// Pending returns the number of unsaved samples.
func (p *AnnotationPresenter) Pending() int { return p.store.Len() }

func (p *AnnotationPresenter) renderPhoto() {
	s := p.model.State()
	img, vp, err := plotcanvas.RenderPhoto(s.Image, s.Cursor, p.canvasW, p.canvasH)
	if err != nil {
		p.logger.Error("render photo", "error", err)
		return
	}
	p.viewport = vp
	p.view.ShowPhoto(img)
	if mag, err := images.Magnify(s.Image, s.Cursor.Center, magnifierSize, magnifierZoom); err == nil {
		p.view.ShowMagnifier(mag)
	}
}

func (p *AnnotationPresenter) renderSample(s annotation.State) {
	if !s.HasSample() {
		return
	}
	p.view.ShowStats(*s.RGB, *s.HSV)
	p.view.ShowSwatch(plotcanvas.Swatch(plotcanvas.MeanColor(*s.RGB), swatchSize, swatchSize))
	hist, err := plotcanvas.RenderHistogram(*s.RGB, histogramW, histogramH)
	if err != nil {
		p.logger.Error("render histogram", "error", err)
		return
	}
	p.view.ShowHistogram(hist)
}

func (p *AnnotationPresenter) status() {
	s := p.model.State()
	p.view.SetStatus(fmt.Sprintf("r=%d  pending=%d  dataset=%s", s.Cursor.Radius, p.store.Len(), filepath.Base(p.datasetPath)))
}
