// Package imagesource loads the photos being annotated: files on disk,
// directories browsed one image at a time, and screen grabs.
package imagesource

import (
	"errors"
	"fmt"
	"image"
	"image/draw"
	_ "image/gif"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
	"github.com/dustin/go-humanize"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/vova616/screenshot"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// ScreenName is the source label used for screen grabs.
const ScreenName = "screen"

// ErrUnsupported reports a file none of the registered decoders accept.
var ErrUnsupported = errors.New("imagesource: unsupported image format")

// Extensions lists the file extensions Folder considers images.
var Extensions = []string{".jpg", ".jpeg", ".png", ".gif", ".bmp", ".tif", ".tiff", ".webp"}

// Loader decodes images and keeps the most recent ones in memory.
type Loader struct {
	cache  *lru.Cache[string, *image.NRGBA]
	logger *slog.Logger
	grab   func() (*image.RGBA, error)
}

// NewLoader returns a loader caching up to size decoded images.
func NewLoader(size int, logger *slog.Logger) (*Loader, error) {
	if size < 1 {
		size = 1
	}
	c, err := lru.New[string, *image.NRGBA](size)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{cache: c, logger: logger, grab: screenshot.CaptureScreen}, nil
}

// Open decodes the image at path, honouring EXIF orientation. Repeated
// opens of the same path are served from the cache.
func (l *Loader) Open(path string) (*image.NRGBA, error) {
	key, err := filepath.Abs(path)
	if err != nil {
		key = path
	}
	if img, ok := l.cache.Get(key); ok {
		return img, nil
	}
	img, err := decodeFile(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	out := toNRGBA(img)
	l.cache.Add(key, out)
	if fi, err := os.Stat(path); err == nil {
		l.logger.Debug("image decoded", "path", path,
			"size", humanize.Bytes(uint64(fi.Size())),
			"width", out.Bounds().Dx(), "height", out.Bounds().Dy(),
			"cached", l.cache.Len())
	}
	return out, nil
}

// Grab captures the primary screen. Grabs are never cached.
func (l *Loader) Grab() (*image.NRGBA, error) {
	img, err := l.grab()
	if err != nil {
		return nil, fmt.Errorf("screen grab: %w", err)
	}
	out := toNRGBA(img)
	l.logger.Debug("screen grabbed", "width", out.Bounds().Dx(), "height", out.Bounds().Dy())
	return out, nil
}

func decodeFile(path string) (image.Image, error) {
	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err == nil {
		return img, nil
	}
	if !strings.EqualFold(filepath.Ext(path), ".webp") {
		if errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrUnsupported, err)
	}
	// x/image/webp lacks some encoder extensions; libwebp handles the rest.
	f, ferr := os.Open(path)
	if ferr != nil {
		return nil, ferr
	}
	defer f.Close()
	img, werr := webp.Decode(f)
	if werr != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupported, werr)
	}
	return img, nil
}

func toNRGBA(img image.Image) *image.NRGBA {
	if n, ok := img.(*image.NRGBA); ok && n.Bounds().Min == (image.Point{}) {
		return n
	}
	b := img.Bounds()
	out := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(out, out.Bounds(), img, b.Min, draw.Src)
	return out
}

// IsImage reports whether name has one of the supported extensions.
func IsImage(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, e := range Extensions {
		if ext == e {
			return true
		}
	}
	return false
}
