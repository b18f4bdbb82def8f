package images

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"
)

func TestExtractROI_CentersAndClamps(t *testing.T) {
	frame := image.NewNRGBA(image.Rect(0, 0, 100, 100))
	roi, rect, err := ExtractROI(frame, image.Pt(50, 50), 40)
	if err != nil || roi == nil {
		t.Fatalf("expected ROI, got err=%v", err)
	}
	if rect != image.Rect(30, 30, 70, 70) {
		t.Fatalf("unexpected rect %v", rect)
	}
	if roi.Bounds() != image.Rect(0, 0, 40, 40) {
		t.Fatalf("roi not rebased: %v", roi.Bounds())
	}
}

func TestExtractROI_ShiftsAtEdge(t *testing.T) {
	frame := image.NewNRGBA(image.Rect(0, 0, 20, 20))
	_, rect, err := ExtractROI(frame, image.Pt(19, 1), 10)
	if err != nil {
		t.Fatal(err)
	}
	if rect != image.Rect(10, 0, 20, 10) {
		t.Fatalf("expected window shifted inside frame, got %v", rect)
	}
}

func TestExtractROI_SizeLimits(t *testing.T) {
	frame := image.NewNRGBA(image.Rect(0, 0, 30, 30))
	if _, rect, _ := ExtractROI(frame, image.Pt(5, 5), 50); rect != frame.Bounds() {
		t.Fatalf("oversized request should cover the frame, got %v", rect)
	}
	if _, rect, _ := ExtractROI(frame, image.Pt(0, 0), 0); rect.Dx() != 1 || rect.Dy() != 1 {
		t.Fatalf("expected 1x1 got %v", rect)
	}
	if _, _, err := ExtractROI(nil, image.Pt(0, 0), 3); err == nil {
		t.Fatalf("expected error for nil frame")
	}
}

func TestMagnify_KeepsPixelsSharp(t *testing.T) {
	frame := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	frame.SetNRGBA(1, 1, color.NRGBA{R: 255, A: 255})
	out, err := Magnify(frame, image.Pt(2, 2), 4, 3)
	if err != nil {
		t.Fatal(err)
	}
	if out.Bounds().Dx() != 12 {
		t.Fatalf("unexpected size %v", out.Bounds())
	}
	if out.NRGBAAt(4, 4).R != 255 || out.NRGBAAt(2, 2).R != 0 {
		t.Fatalf("nearest-neighbour blocks not preserved")
	}
}

func TestScaleToFitAndEncode(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 400, 200))
	out := ScaleToFit(src, 100, 100)
	if out.Bounds().Dx() != 100 || out.Bounds().Dy() != 50 {
		t.Fatalf("unexpected fit %v", out.Bounds())
	}
	if ScaleToFit(src, 500, 500) != image.Image(src) {
		t.Fatalf("fitting image should be returned as is")
	}
	if _, err := png.Decode(bytes.NewReader(EncodePNG(out))); err != nil {
		t.Fatalf("encoded png unreadable: %v", err)
	}
}
