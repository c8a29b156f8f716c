package database

import (
	"log"

	"messenger-bot/internal/config"
	"messenger-bot/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Open connects to PostgreSQL when DATABASE_URL is set, otherwise to a
// local SQLite file, and runs the schema migration.
func Open(cfg *config.Config) (*gorm.DB, error) {
	var dialector gorm.Dialector
	if cfg.DatabaseURL != "" {
		dialector = postgres.Open(cfg.DatabaseURL)
	} else {
		dialector = sqlite.Open(cfg.DBPath)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.ConversationSession{},
	); err != nil {
		return nil, err
	}

	log.Println("Database initialized successfully (users, conversation_sessions)")
	return db, nil
}
