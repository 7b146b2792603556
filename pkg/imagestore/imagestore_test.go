package imagestore

import (
	"bytes"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/disintegration/imaging"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := imaging.New(w, h, color.NRGBA{R: 200, G: 30, B: 30, A: 255})
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		t.Fatalf("encode: %v", err)
	}
	return buf.Bytes()
}

func TestSaveWritesFileAndThumb(t *testing.T) {
	s := New(t.TempDir())
	data := pngBytes(t, 800, 600)

	saved, err := s.Save(BucketProducts, "Kaos Skull 01.png", bytes.NewReader(data))
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if saved.ContentType != "image/png" {
		t.Errorf("content type = %q, want image/png", saved.ContentType)
	}
	if !strings.HasPrefix(saved.PublicURL, "/public/"+BucketProducts+"/") {
		t.Errorf("public url = %q", saved.PublicURL)
	}
	if strings.ContainsAny(saved.FileName, " /") {
		t.Errorf("file name not sanitized: %q", saved.FileName)
	}

	full := filepath.Join(s.BucketDir(BucketProducts), saved.FileName)
	got, err := os.ReadFile(full)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if !bytes.Equal(got, data) {
		t.Error("stored bytes differ from upload")
	}

	thumbPath := filepath.Join(s.BucketDir(BucketProducts), "thumbs", thumbFileName(saved.FileName))
	thumb, err := imaging.Open(thumbPath)
	if err != nil {
		t.Fatalf("open thumb: %v", err)
	}
	if w := thumb.Bounds().Dx(); w > ThumbWidth {
		t.Errorf("thumb width = %d, want <= %d", w, ThumbWidth)
	}
}

func TestSaveRejectsNonImage(t *testing.T) {
	s := New(t.TempDir())
	if _, err := s.Save(BucketBanners, "notes.txt", strings.NewReader("just text, no pixels")); err == nil {
		t.Fatal("expected error for non-image payload")
	}
}

func TestSaveRejectsOversized(t *testing.T) {
	s := New(t.TempDir())
	big := make([]byte, MaxFileSize+1)
	if _, err := s.Save(BucketBanners, "big.bin", bytes.NewReader(big)); err == nil {
		t.Fatal("expected error for oversized payload")
	}
}

func TestRemoveDeletesFile(t *testing.T) {
	s := New(t.TempDir())
	saved, err := s.Save(BucketBanners, "promo.png", bytes.NewReader(pngBytes(t, 64, 64)))
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := s.Remove(BucketBanners, saved.FileName); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if _, err := os.Stat(filepath.Join(s.BucketDir(BucketBanners), saved.FileName)); !os.IsNotExist(err) {
		t.Error("file still present after Remove")
	}
}

func TestSanitizeName(t *testing.T) {
	cases := map[string]string{
		"foto produk (1).jpg": "foto_produk__1_.jpg",
		"../../etc/passwd":    "passwd",
		"":                    "upload",
	}
	for in, want := range cases {
		if got := sanitizeName(in); got != want {
			t.Errorf("sanitizeName(%q) = %q, want %q", in, got, want)
		}
	}
}
