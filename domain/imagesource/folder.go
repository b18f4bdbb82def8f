package imagesource

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// ErrEmptyFolder reports a directory without any supported image.
var ErrEmptyFolder = errors.New("imagesource: no images in folder")

// Folder steps through the images of one directory in name order.
type Folder struct {
	dir   string
	files []string
	pos   int
}

// OpenFolder lists the images in dir. When start names one of them the
// cursor is placed on it, otherwise on the first file.
func OpenFolder(dir, start string) (*Folder, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", dir, err)
	}
	f := &Folder{dir: dir}
	for _, e := range entries {
		if e.Type().IsRegular() && IsImage(e.Name()) {
			f.files = append(f.files, e.Name())
		}
	}
	if len(f.files) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptyFolder, dir)
	}
	sort.Strings(f.files)
	if start != "" {
		base := filepath.Base(start)
		if i := sort.SearchStrings(f.files, base); i < len(f.files) && f.files[i] == base {
			f.pos = i
		}
	}
	return f, nil
}

// Dir returns the browsed directory.
func (f *Folder) Dir() string { return f.dir }

// Len returns the number of images.
func (f *Folder) Len() int { return len(f.files) }

// Index returns the zero-based position of the current image.
func (f *Folder) Index() int { return f.pos }

// Current returns the path of the current image.
func (f *Folder) Current() string { return filepath.Join(f.dir, f.files[f.pos]) }

// Next advances to the following image and returns its path. It stops at the last one.
func (f *Folder) Next() (string, bool) {
	if f.pos+1 >= len(f.files) {
		return f.Current(), false
	}
	f.pos++
	return f.Current(), true
}

// Prev moves back one image. It stops at the first one.
func (f *Folder) Prev() (string, bool) {
	if f.pos == 0 {
		return f.Current(), false
	}
	f.pos--
	return f.Current(), true
}
