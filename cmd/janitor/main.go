package main

import (
	"flag"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"bangskull/models"
	"bangskull/pkg/imagestore"
)

// The janitor reconciles the image buckets against the URLs live rows still
// reference. Orphans are expected: product creation uploads images before
// the insert and keeps earlier files when a later one fails, and deleting a
// product or banner never removes its files. Default is a dry run.

var log zerolog.Logger

var (
	doDelete = flag.Bool("delete", false, "actually delete orphaned files (default: report only)")
	watch    = flag.Bool("watch", false, "keep watching the buckets and re-sweep on changes")
	minAge   = flag.Duration("min-age", time.Hour, "ignore files newer than this (may belong to an in-flight create)")
)

func main() {
	flag.Parse()
	_ = godotenv.Load()
	log = zlog.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		log.Fatal().Msg("DB_DSN not set in env")
	}
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatal().Err(err).Msg("open db")
	}

	store := imagestore.New(uploadBaseDir())
	buckets := []string{imagestore.BucketProducts, imagestore.BucketBanners}

	sweep(db, store, buckets)
	if !*watch {
		return
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		log.Fatal().Err(err).Msg("fsnotify watcher")
	}
	defer watcher.Close()
	for _, b := range buckets {
		if err := watcher.Add(store.BucketDir(b)); err != nil {
			log.Fatal().Err(err).Str("bucket", b).Msg("watch bucket")
		}
	}

	dirty := false
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()
	for {
		select {
		case ev, ok := <-watcher.Events:
			if !ok {
				return
			}
			log.Debug().Str("op", ev.Op.String()).Str("file", ev.Name).Msg("bucket changed")
			dirty = true
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			log.Warn().Err(err).Msg("watch error")
		case <-ticker.C:
			if dirty {
				dirty = false
				sweep(db, store, buckets)
			}
		}
	}
}

func sweep(db *gorm.DB, store *imagestore.Store, buckets []string) {
	refs, err := referencedFiles(db)
	if err != nil {
		log.Error().Err(err).Msg("collect references")
		return
	}
	cutoff := time.Now().Add(-*minAge)

	for _, bucket := range buckets {
		entries, err := os.ReadDir(store.BucketDir(bucket))
		if err != nil {
			log.Warn().Err(err).Str("bucket", bucket).Msg("read bucket")
			continue
		}
		for _, e := range entries {
			if e.IsDir() {
				continue // thumbs/
			}
			name := e.Name()
			if refs[bucket+"/"+name] {
				continue
			}
			info, err := e.Info()
			if err != nil || info.ModTime().After(cutoff) {
				continue
			}
			if !*doDelete {
				log.Info().Str("bucket", bucket).Str("file", name).Msg("orphan (dry run)")
				continue
			}
			if err := store.Remove(bucket, name); err != nil {
				log.Warn().Err(err).Str("file", name).Msg("delete failed")
				continue
			}
			db.Where("bucket = ? AND file_name = ?", bucket, name).Delete(&models.Upload{})
			log.Info().Str("bucket", bucket).Str("file", name).Msg("orphan deleted")
		}
	}
}

// referencedFiles returns the set of "bucket/filename" keys some live row
// still points at: product images, banner images and the QRIS image URL.
func referencedFiles(db *gorm.DB) (map[string]bool, error) {
	refs := make(map[string]bool)
	add := func(url string) {
		url = strings.TrimSpace(url)
		if url == "" {
			return
		}
		dir, name := filepath.Split(url)
		bucket := filepath.Base(strings.TrimSuffix(dir, "/"))
		if name != "" && bucket != "" {
			refs[bucket+"/"+name] = true
		}
	}

	var products []models.Product
	if err := db.Find(&products).Error; err != nil {
		return nil, err
	}
	for _, p := range products {
		for _, u := range p.Images {
			add(u)
		}
	}

	var banners []models.PromoBanner
	if err := db.Find(&banners).Error; err != nil {
		return nil, err
	}
	for _, b := range banners {
		add(b.ImageURL)
	}

	var qris models.PaymentMethod
	if err := db.Where("method = ?", models.MethodQRIS).First(&qris).Error; err == nil {
		add(qris.AccountNumber)
	}

	return refs, nil
}

func uploadBaseDir() string {
	if v := os.Getenv("UPLOAD_BASE"); v != "" {
		return v
	}
	return "uploads"
}
