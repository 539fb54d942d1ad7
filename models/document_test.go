package models

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"testing"

	"bitbucket.org/ksar/surveillance_backend/utils"
	"github.com/disintegration/imaging"
)

func samplePNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 128, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

func TestCreateThumbnail_ScalesToWidth200(t *testing.T) {
	thumb, err := createThumbnail(samplePNG(t, 800, 400))
	if err != nil {
		t.Fatalf("createThumbnail: %v", err)
	}
	img, err := imaging.Decode(bytes.NewReader(thumb))
	if err != nil {
		t.Fatalf("decode thumbnail: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 200 || b.Dy() != 100 {
		t.Fatalf("unexpected thumbnail size %dx%d", b.Dx(), b.Dy())
	}
}

func TestCreateThumbnail_RejectsNonImage(t *testing.T) {
	if _, err := createThumbnail([]byte("%PDF-1.4")); err == nil {
		t.Fatalf("expected decode error")
	}
}

func TestThumbnailObjectKey(t *testing.T) {
	got := thumbnailObjectKey("documents/abc.png")
	if got != "documents/thumbnails/abc.jpg" {
		t.Fatalf("got %q", got)
	}
}

func TestParseOptionalDate(t *testing.T) {
	empty := "  "
	if d, err := parseOptionalDate(&empty, "issue_date"); err != nil || d != nil {
		t.Fatalf("blank: %v %v", d, err)
	}
	if d, err := parseOptionalDate(nil, "issue_date"); err != nil || d != nil {
		t.Fatalf("nil: %v %v", d, err)
	}
	bad := "31/12/2020"
	if _, err := parseOptionalDate(&bad, "issue_date"); !errors.Is(err, utils.ErrorInvalidInput) {
		t.Fatalf("expected ErrorInvalidInput, got %v", err)
	}
	good := "2020-12-31"
	d, err := parseOptionalDate(&good, "issue_date")
	if err != nil || d == nil || d.Format(utils.DateLayout) != good {
		t.Fatalf("good: %v %v", d, err)
	}
}

func TestDocumentInfo(t *testing.T) {
	name := "Programme"
	key := "documents/thumbnails/x.jpg"
	d := Document{ID: 3, FullName: &name, CodeName: "PM-1", Filename: "Scan.PNG", FileSize: 10, ThumbnailKey: &key}
	info := d.Info()
	if info.FileExtension != "png" || !info.HasThumbnail || info.Status != "active" || info.IssueDate != nil {
		t.Fatalf("unexpected info: %+v", info)
	}
}
