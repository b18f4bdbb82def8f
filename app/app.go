package app

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"

	"github.com/soocke/plumage-go/config"
	"github.com/soocke/plumage-go/ui/theme"
	"github.com/soocke/plumage-go/ui/view"
)

const tick = time.Second

type app struct {
	c       *AppContainer
	logger  *slog.Logger
	width   int
	height  int
	afterID string
}

// NewApp builds the container and sizes the main window.
func NewApp(width, height int, cfg *config.Config, cfgPath string, logger *slog.Logger) (*app, error) {
	c, err := BuildContainer(cfg, cfgPath, logger)
	if err != nil {
		return nil, err
	}
	a := &app{c: c, logger: logger, width: width, height: height}
	WmProtocol(App, "WM_DELETE_WINDOW", a.exitHandler)
	WmGeometry(App, fmt.Sprintf("%dx%d+100+100", width, height))
	return a, nil
}

// Start builds the UI, optionally opens initialImage and enters the Tk loop.
func (a *app) Start(initialImage string) {
	theme.InitStyles()
	c := a.c
	rv := c.RootView
	rv.Build(view.Handlers{
		Open:        a.openImage,
		Grab:        func() { c.AnnotationPresenter.GrabScreen() },
		Prev:        func() { c.AnnotationPresenter.Prev() },
		Next:        func() { c.AnnotationPresenter.Next() },
		Insert:      func() { c.AnnotationPresenter.Insert() },
		Undo:        func() { c.AnnotationPresenter.UndoInsert() },
		Save:        func() { _ = c.AnnotationPresenter.Save() },
		SaveAs:      a.saveAs,
		ToggleDark:  func() { a.logger.Debug("theme switched", "dark", theme.ToggleDark()) },
		Exit:        a.exitHandler,
		Field:       func(field, value string) { c.AnnotationPresenter.SetField(field, value) },
		PickSpecies: func() { rv.Species.OpenOrFocus() },
	})
	c.WirePresenters(a.scheduleUpdate)

	sp := c.SpeciesPresenter
	rv.Species.SetHandlers(view.SpeciesHandlers{
		Order:      sp.SelectOrder,
		Family:     sp.SelectFamily,
		Species:    sp.SelectSpecies,
		Subspecies: sp.SelectSubspecies,
		Opened:     sp.Init,
	})
	rv.Canvas.Bind(c.AnnotationPresenter)
	rv.SetForm(c.Annotation.State().Form)

	if initialImage != "" {
		c.AnnotationPresenter.OpenImage(initialImage)
	}
	a.logger.Info("ui ready", "dataset", c.Config.DatasetPath, "orders", len(c.Catalog.Orders()))

	a.scheduleUpdate()
	App.Wait()
}

func (a *app) openImage() {
	dir := a.c.Config.LastImageDir
	path := a.c.RootView.AskImage(dir)
	if path == "" {
		return
	}
	a.c.AnnotationPresenter.OpenImage(path)
	a.c.Config.LastImageDir = filepath.Dir(path)
	a.persistConfig()
}

func (a *app) saveAs() {
	path := a.c.RootView.AskDataset(a.c.AnnotationPresenter.DatasetPath())
	if path == "" {
		return
	}
	a.c.AnnotationPresenter.SetDatasetPath(path)
	a.c.Config.DatasetPath = path
	a.persistConfig()
	_ = a.c.AnnotationPresenter.Save()
}

func (a *app) persistConfig() {
	if a.c.ConfigPath == "" {
		return
	}
	if err := a.c.Config.Save(a.c.ConfigPath); err != nil {
		a.logger.Warn("config save failed", "path", a.c.ConfigPath, "error", err)
	}
}

func (a *app) exitHandler() {
	if n := a.c.Dataset.Len(); n > 0 {
		msg := fmt.Sprintf("%d samples are not saved. Quit anyway?", n)
		if !a.c.RootView.Confirm("Unsaved samples", msg) {
			return
		}
		a.logger.Warn("exiting with unsaved samples", "pending", n)
	}
	if a.afterID != "" {
		TclAfterCancel(a.afterID)
	}
	Destroy(App)
}

func (a *app) scheduleUpdate() {
	// TclAfter keeps the refresh on Tk's event loop thread.
	a.afterID = TclAfter(tick, func() { a.c.Loop.Tick() })
}
