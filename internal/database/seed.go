package database

import (
	"fmt"
	"time"

	"vibelink-backend/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Seed inserts a demo room with three users for local development. Safe to
// run twice: it skips when any user already exists.
func Seed(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.User{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	users := []models.User{
		{Username: "ava", DisplayName: "Ava", PasswordHash: string(hash)},
		{Username: "ben", DisplayName: "Ben", PasswordHash: string(hash)},
		{Username: "cleo", DisplayName: "Cleo", PasswordHash: string(hash)},
	}
	for i := range users {
		if err := db.Create(&users[i]).Error; err != nil {
			return fmt.Errorf("seed user %s: %w", users[i].Username, err)
		}
	}

	room := models.Room{
		OwnerID:   users[0].ID,
		Code:      "000001",
		Title:     "Demo Lounge",
		Status:    models.RoomStatusActive,
		CreatedAt: time.Now(),
	}
	if err := db.Create(&room).Error; err != nil {
		return fmt.Errorf("seed room: %w", err)
	}
	return nil
}
