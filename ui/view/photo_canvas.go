package view

import (
	"image"

	"github.com/soocke/plumage-go/ui/images"
	"github.com/soocke/plumage-go/ui/presenter"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// PhotoCanvas shows the rendered photo plot and forwards pointer input.
type PhotoCanvas interface {
	Show(img image.Image)
	Bind(events presenter.PointerEvents)
}

type photoCanvas struct {
	label   *LabelWidget
	photo   *Img
	dragged bool
}

// NewPhotoCanvas creates the photo label at (row, 0) of parent sized w x h.
func NewPhotoCanvas(parent *FrameWidget, row, w, h int) PhotoCanvas {
	v := &photoCanvas{}
	v.photo = NewPhoto(Data(images.EncodePNG(placeholder(w, h))))
	v.label = Label(Image(v.photo), Borderwidth(1), Relief("sunken"))
	Grid(v.label, In(parent), Row(row), Column(0), Sticky("nsew"), Padx("0.4m"), Pady("0.4m"))
	return v
}

// Bind routes clicks, drags and wheel steps on the photo to events.
// A drag samples once at the release point.
func (v *photoCanvas) Bind(events presenter.PointerEvents) {
	if v == nil || events == nil {
		return
	}
	Bind(v.label, "<Button-1>", Command(func(e *Event) {
		v.dragged = false
		events.OnClick(e.X, e.Y)
	}))
	Bind(v.label, "<B1-Motion>", Command(func(e *Event) {
		v.dragged = true
		events.OnDrag(e.X, e.Y)
	}))
	Bind(v.label, "<ButtonRelease-1>", Command(func(e *Event) {
		if v.dragged {
			v.dragged = false
			events.OnClick(e.X, e.Y)
		}
	}))
	// X11 reports wheel steps as buttons 4 and 5.
	Bind(v.label, "<Button-4>", Command(func() { events.OnScroll(1) }))
	Bind(v.label, "<Button-5>", Command(func() { events.OnScroll(-1) }))
	Bind(App, "<KeyPress-plus>", Command(func() { events.OnScroll(1) }))
	Bind(App, "<KeyPress-minus>", Command(func() { events.OnScroll(-1) }))
}

func (v *photoCanvas) Show(img image.Image) {
	if v == nil || v.label == nil || img == nil {
		return
	}
	v.replace(images.EncodePNG(img))
}

// replace swaps in a new Tk photo and frees the previous one.
func (v *photoCanvas) replace(png []byte) {
	if v.photo != nil {
		v.photo.Delete()
	}
	v.photo = NewPhoto(Data(png))
	v.label.Configure(Image(v.photo))
}

func placeholder(w, h int) image.Image {
	return image.NewRGBA(image.Rect(0, 0, max(w, 1), max(h, 1)))
}
