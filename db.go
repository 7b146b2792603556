package main

import (
	"os"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"bangskull/models"
	"bangskull/pkg/imagestore"
)

var db *gorm.DB

func initDB() {
	var err error
	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		log.Fatal().Msg("DB_DSN is not set. This project requires a Postgres DSN in DB_DSN.")
	}
	db, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect postgres database")
	}
	// Control schema migrations with env DB_AUTO_MIGRATE (default true).
	shouldMigrate := true
	if v := os.Getenv("DB_AUTO_MIGRATE"); v != "" {
		lv := strings.ToLower(v)
		if lv == "false" || lv == "0" || lv == "no" {
			shouldMigrate = false
		}
	}
	// Roles first so the users FK can be applied safely.
	if shouldMigrate {
		if err := db.AutoMigrate(&models.Role{}); err != nil {
			log.Warn().Err(err).Msg("migration warning (roles)")
		}
	}
	seedRoles()

	if shouldMigrate {
		// Migrate models individually so a failure on one doesn't block others
		for name, m := range map[string]any{
			"users":           &models.User{},
			"products":        &models.Product{},
			"payment_methods": &models.PaymentMethod{},
			"announcements":   &models.Announcement{},
			"promo_banners":   &models.PromoBanner{},
			"refresh_tokens":  &models.RefreshToken{},
			"uploads":         &models.Upload{},
		} {
			if err := db.AutoMigrate(m); err != nil {
				log.Warn().Err(err).Str("table", name).Msg("migration warning")
			}
		}
	}
	seedDB()
}

func seedRoles() {
	roles := []models.Role{
		{Name: models.RoleAdmin, Description: "full console access"},
		{Name: models.RoleUser, Description: "regular account"},
	}
	for _, r := range roles {
		var cnt int64
		db.Model(&models.Role{}).Where("name = ?", r.Name).Count(&cnt)
		if cnt == 0 {
			db.Create(&r)
		}
	}
}

func seedDB() {
	seedRoles()
	seedPaymentMethods()
	seedAdminUser()
	ensureUploadBase()
}

// seedPaymentMethods guarantees exactly one row per channel. The set is
// closed; admins only ever edit these rows, so a missing channel here would
// be invisible in the console forever.
func seedPaymentMethods() {
	for _, method := range models.KnownMethods() {
		var cnt int64
		db.Model(&models.PaymentMethod{}).Where("method = ?", method).Count(&cnt)
		if cnt == 0 {
			if err := db.Create(&models.PaymentMethod{Method: method, IsActive: false}).Error; err != nil {
				log.Warn().Err(err).Str("method", method).Msg("failed to seed payment method")
			}
		}
	}
}

func seedAdminUser() {
	email := os.Getenv("ADMIN_EMAIL")
	if email == "" {
		email = "admin@bangskull.id"
	}
	var count int64
	db.Model(&models.User{}).Where("email = ?", email).Count(&count)
	if count > 0 {
		return
	}
	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		password = "admin123" // development fallback, change in production
	}
	var role models.Role
	if err := db.Where("name = ?", models.RoleAdmin).First(&role).Error; err != nil {
		log.Warn().Err(err).Msg("failed to find admin role")
		return
	}
	rid := role.ID
	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	admin := models.User{Email: email, HashedPassword: hashedPassword, RoleID: &rid}
	if err := db.Create(&admin).Error; err != nil {
		log.Warn().Err(err).Msg("failed to seed admin user")
		return
	}
	log.Info().Str("email", email).Msg("seeded admin user")
}

// ensureUploadBase creates the bucket directories for local image storage.
func ensureUploadBase() {
	base := uploadBaseDir()
	for _, bucket := range []string{imagestore.BucketProducts, imagestore.BucketBanners} {
		if err := os.MkdirAll(base+"/"+bucket, 0755); err != nil {
			log.Warn().Err(err).Str("dir", base+"/"+bucket).Msg("failed to create upload dir")
		}
	}
}

// uploadBaseDir returns the base directory for local uploads (configurable via UPLOAD_BASE env)
func uploadBaseDir() string {
	if v := os.Getenv("UPLOAD_BASE"); v != "" {
		return v
	}
	return "uploads"
}
