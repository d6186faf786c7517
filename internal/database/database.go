package database

import (
	"fmt"

	"vibelink-backend/internal/config"
	"vibelink-backend/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func Connect(cfg *config.Config) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}
	return db, nil
}

func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Room{},
		&models.GameSession{},
		&models.RoundResponse{},
		&models.Match{},
		&models.ChatMessage{},
		&models.MemeUpload{},
		&models.MemeReaction{},
		&models.AudienceVote{},
		&models.ConnectionEvent{},
	)
}
