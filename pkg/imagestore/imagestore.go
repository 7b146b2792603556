package imagestore

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/disintegration/imaging"
)

// Bucket names. Mirrors the storage layout the admin console expects.
const (
	BucketProducts = "product-images"
	BucketBanners  = "promo-banners"
)

// MaxFileSize caps a single upload at 5MB.
const MaxFileSize = 5 * 1024 * 1024

// ThumbWidth is the bounding box for generated thumbnails.
const ThumbWidth = 480

// Store writes images into per-bucket directories under BaseDir and maps
// them to public URLs under PublicPrefix.
type Store struct {
	BaseDir      string
	PublicPrefix string
}

// Saved describes a stored image.
type Saved struct {
	FileName    string
	StorePath   string
	PublicURL   string
	ContentType string
}

func New(baseDir string) *Store {
	return &Store{BaseDir: baseDir, PublicPrefix: "/public"}
}

// Save validates r as an image, writes it into bucket under a unique name
// and drops a thumbnail next to it (thumbs/ subdirectory). The original
// bytes are stored untouched; the thumbnail is always JPEG.
func (s *Store) Save(bucket, originalName string, r io.Reader) (Saved, error) {
	data, err := io.ReadAll(io.LimitReader(r, MaxFileSize+1))
	if err != nil {
		return Saved{}, err
	}
	if len(data) > MaxFileSize {
		return Saved{}, fmt.Errorf("file too large (max 5MB)")
	}
	ct := http.DetectContentType(data)
	if !strings.HasPrefix(ct, "image/") {
		return Saved{}, fmt.Errorf("not an image (%s)", ct)
	}
	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return Saved{}, fmt.Errorf("broken image: %w", err)
	}

	name := fmt.Sprintf("%d_%s", time.Now().UnixMilli(), sanitizeName(originalName))
	dir := filepath.Join(s.BaseDir, bucket)
	if err := os.MkdirAll(filepath.Join(dir, "thumbs"), 0755); err != nil {
		return Saved{}, err
	}
	full := filepath.Join(dir, name)
	if err := os.WriteFile(full, data, 0644); err != nil {
		return Saved{}, err
	}

	thumb := imaging.Fit(img, ThumbWidth, ThumbWidth, imaging.Lanczos)
	thumbName := thumbFileName(name)
	if err := imaging.Save(thumb, filepath.Join(dir, "thumbs", thumbName)); err != nil {
		// The original is already in place; a missing thumbnail only costs
		// bandwidth, so don't fail the upload.
		_ = os.Remove(filepath.Join(dir, "thumbs", thumbName))
	}

	return Saved{
		FileName:    name,
		StorePath:   filepath.ToSlash(filepath.Join(bucket, name)),
		PublicURL:   path.Join(s.PublicPrefix, bucket, name),
		ContentType: ct,
	}, nil
}

// Remove deletes a stored file and its thumbnail, if any.
func (s *Store) Remove(bucket, fileName string) error {
	dir := filepath.Join(s.BaseDir, bucket)
	_ = os.Remove(filepath.Join(dir, "thumbs", thumbFileName(fileName)))
	return os.Remove(filepath.Join(dir, fileName))
}

// BucketDir returns the directory a bucket maps to.
func (s *Store) BucketDir(bucket string) string {
	return filepath.Join(s.BaseDir, bucket)
}

func thumbFileName(name string) string {
	ext := filepath.Ext(name)
	return strings.TrimSuffix(name, ext) + ".jpg"
}

// sanitizeName keeps the user-supplied file name recognizable while making
// it safe to join into a path.
func sanitizeName(name string) string {
	name = filepath.Base(name)
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9',
			r == '.', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	out := b.String()
	if out == "" || out == "." {
		out = "upload"
	}
	return out
}
