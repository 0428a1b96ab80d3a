package database

import (
	"log"
	"strings"

	"rplsite/models"

	"github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// SeedAdmin creates the first ADMIN account when the users table is empty.
// It returns false when nothing had to be created.
func SeedAdmin(db *gorm.DB, email, password string, saltRound int) (bool, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return false, nil
	}

	var count int64
	if err := db.Model(&models.User{}).Count(&count).Error; err != nil {
		return false, errors.Wrap(err, "count users")
	}
	if count > 0 {
		return false, nil
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), saltRound)
	if err != nil {
		return false, errors.Wrap(err, "hash admin password")
	}

	admin := models.User{
		Name:     "Administrator",
		Email:    email,
		Password: string(hashedPassword),
		Role:     models.RoleAdmin,
	}
	if err := db.Create(&admin).Error; err != nil {
		return false, errors.Wrap(err, "create admin")
	}

	log.Printf("[SEED] Bootstrap admin %s created", email)
	return true, nil
}
