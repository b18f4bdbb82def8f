package app

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/soocke/plumage-go/assets"
	"github.com/soocke/plumage-go/config"
	"github.com/soocke/plumage-go/domain/annotation"
	"github.com/soocke/plumage-go/domain/imagesource"
	"github.com/soocke/plumage-go/domain/record"
	"github.com/soocke/plumage-go/domain/reference"
	"github.com/soocke/plumage-go/domain/sampler"
	"github.com/soocke/plumage-go/domain/taxonomy"
	"github.com/soocke/plumage-go/ui/model"
	"github.com/soocke/plumage-go/ui/presenter"
	"github.com/soocke/plumage-go/ui/view"
)

// AppContainer assembles models, services, presenters and the root view.
type AppContainer struct {
	Config     *config.Config
	ConfigPath string
	Logger     *slog.Logger

	Catalog    *taxonomy.Catalog
	References reference.Set
	Dataset    *record.Dataset
	Images     *imagesource.Loader

	Annotation *model.AnnotationModel
	Session    *model.SessionModel
	RootView   *view.RootView

	// Presenters
	AnnotationPresenter *presenter.AnnotationPresenter
	SpeciesPresenter    *presenter.SpeciesPresenter
	SessionPresenter    *presenter.SessionPresenter
	Loop                *presenter.Loop
}

// BuildContainer loads the reference data and constructs every component.
// Presenters are wired by the app once the view has been built.
func BuildContainer(cfg *config.Config, cfgPath string, logger *slog.Logger) (*AppContainer, error) {
	c := &AppContainer{Config: cfg, ConfigPath: cfgPath, Logger: logger}

	cat, err := loadCatalog(cfg)
	if err != nil {
		return nil, fmt.Errorf("taxonomy: %w", err)
	}
	if refs, err := loadSpeciesRefs(cfg); err != nil {
		logger.Warn("species reference unavailable, subspecies lists disabled", "error", err)
	} else {
		cat.AttachReference(refs)
	}
	c.Catalog = cat

	c.References, err = reference.LoadSet(cfg.ReferenceDir)
	if err != nil {
		return nil, err
	}

	c.Dataset = record.NewDataset(record.DefaultSchema())
	c.Images, err = imagesource.NewLoader(cfg.ImageCacheSize, logger)
	if err != nil {
		return nil, err
	}

	opts := sampler.Options{Bias: cfg.WindowBias, RoundDecimals: cfg.HSVRoundDecimals}
	c.Annotation = model.NewAnnotationModel(annotation.New(opts, cfg.DefaultRadius, cfg.MaxRadius))
	c.Session = model.NewSessionModel()
	c.RootView = view.NewRootView(cfg, c.References, logger)
	return c, nil
}

// WirePresenters creates the presenters against the built root view.
func (c *AppContainer) WirePresenters(schedule func()) {
	rv := c.RootView
	c.AnnotationPresenter = presenter.NewAnnotationPresenter(c.Annotation, c.Session, c.Images, c.Dataset, rv,
		c.Config.DatasetPath, c.Config.CanvasWidth, c.Config.CanvasHeight, c.Logger)
	c.SpeciesPresenter = presenter.NewSpeciesPresenter(c.Catalog, rv, c.AnnotationPresenter, c.Logger)
	c.SessionPresenter = presenter.NewSessionPresenter(c.Session, c.AnnotationPresenter, rv)
	c.Loop = presenter.NewLoop(c.SessionPresenter, schedule)
}

func loadCatalog(cfg *config.Config) (*taxonomy.Catalog, error) {
	if cfg.TaxonomyPath != "" {
		return taxonomy.LoadFile(cfg.TaxonomyPath)
	}
	r, err := assets.TaxonomyXML()
	if err != nil {
		return nil, err
	}
	return taxonomy.Load(r)
}

func loadSpeciesRefs(cfg *config.Config) ([]taxonomy.SpeciesRef, error) {
	var r io.Reader
	if cfg.SpeciesCSVPath != "" {
		f, err := os.Open(cfg.SpeciesCSVPath)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	} else {
		er, err := assets.SpeciesCSV()
		if err != nil {
			return nil, err
		}
		r = er
	}
	return taxonomy.LoadSpeciesCSV(r)
}
