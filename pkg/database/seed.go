package database

import (
	"errors"
	"log"
	"time"

	"eventhub/internal/domain/place"
	"eventhub/internal/domain/user"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// SeedConfig holds configuration for seeding the database
type SeedConfig struct {
	DemoEmail       string
	DemoPassword    string
	DemoUsername    string
	DemoDisplayName string
	DemoPlaceName   string
}

// DefaultSeedConfig returns default seed configuration
func DefaultSeedConfig() *SeedConfig {
	return &SeedConfig{
		DemoEmail:       "demo@eventhub.local",
		DemoPassword:    "Demo@123!",
		DemoUsername:    "demo",
		DemoDisplayName: "Demo Organizer",
		DemoPlaceName:   "Demo Venue",
	}
}

// Seed creates a demo organizer with a place so events can be created right
// after startup. It is a no-op when the demo user already exists.
func Seed(db *gorm.DB, cfg *SeedConfig) error {
	if cfg == nil {
		cfg = DefaultSeedConfig()
	}

	var existing user.User
	err := db.Where("email = ?", cfg.DemoEmail).First(&existing).Error
	if err == nil {
		log.Println("Seed: demo user already exists, skipping")
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.DemoPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	return db.Transaction(func(tx *gorm.DB) error {
		u := user.User{
			ID:           uuid.New(),
			Email:        cfg.DemoEmail,
			Username:     cfg.DemoUsername,
			PasswordHash: string(hash),
			DisplayName:  cfg.DemoDisplayName,
			CreatedAt:    time.Now(),
			UpdatedAt:    time.Now(),
		}
		if err := tx.Create(&u).Error; err != nil {
			return err
		}

		p := place.Place{
			ID:        uuid.New(),
			OwnerID:   u.ID,
			Name:      cfg.DemoPlaceName,
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		}
		if err := tx.Create(&p).Error; err != nil {
			return err
		}

		if err := tx.Model(&user.User{}).Where("id = ?", u.ID).Update("has_place_id", p.ID).Error; err != nil {
			return err
		}

		log.Printf("Seed: created demo user %s with place %s", u.Email, p.Name)
		return nil
	})
}
