package main

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"bangskull/models"
)

// There is no public signup; console accounts are provisioned here (or by
// the boot seeding). An existing account is promoted to admin instead of
// duplicated.
func main() {
	if len(os.Args) < 3 {
		fmt.Println("usage: go run ./cmd/createadmin <email> <password>")
		os.Exit(2)
	}
	email := strings.ToLower(strings.TrimSpace(os.Args[1]))
	password := os.Args[2]

	_ = godotenv.Load()
	dsn := os.Getenv("DB_DSN")
	if strings.TrimSpace(dsn) == "" {
		log.Fatal("DB_DSN not set in environment")
	}
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}

	var role models.Role
	if err := db.Where("name = ?", models.RoleAdmin).First(&role).Error; err != nil {
		role = models.Role{Name: models.RoleAdmin, Description: "full console access"}
		db.Create(&role)
	}
	rid := role.ID

	var existing models.User
	if err := db.Where("email = ?", email).First(&existing).Error; err == nil {
		if err := db.Model(&existing).Update("role_id", rid).Error; err != nil {
			log.Fatalf("failed to promote user: %v", err)
		}
		fmt.Printf("promoted %s to admin (id=%d)\n", email, existing.ID)
		return
	}

	hpw, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("bcrypt failed: %v", err)
	}
	user := models.User{Email: email, HashedPassword: hpw, RoleID: &rid}
	if err := db.Create(&user).Error; err != nil {
		log.Fatalf("failed to create user: %v", err)
	}
	fmt.Printf("created admin %s id=%d\n", email, user.ID)
}
