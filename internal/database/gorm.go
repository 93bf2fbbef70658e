package database

import (
	"log"

	"bakked-marketing/internal/config"
	"bakked-marketing/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Init opens the database connection. Supabase Postgres when DATABASE_URL is
// set, a local sqlite file otherwise.
func Init(cfg *config.Config) (*gorm.DB, error) {
	var dialector gorm.Dialector
	if cfg.DatabaseURL != "" {
		dialector = postgres.Open(cfg.DatabaseURL)
	} else {
		log.Println("DATABASE_URL not set, using local sqlite at " + cfg.DBPath)
		dialector = sqlite.Open(cfg.DBPath)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, err
	}

	err = db.AutoMigrate(
		&models.Contact{},
		&models.Campaign{},
		&models.MessageLog{},
		&models.Media{},
		&models.MessageTemplate{},
		&models.RecipientGroup{},
		&models.GroupMember{},
	)
	if err != nil {
		return nil, err
	}

	log.Println("Database migration completed")
	return db, nil
}
