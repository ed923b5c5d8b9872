package database

import (
	"fmt"
	"log"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/barriolink/community-events-backend/config"
)

// Connect opens the postgres connection. The returned handle is passed down
// explicitly; nothing in the request path reaches for a package global.
func Connect(cfg *config.Config) *gorm.DB {
	dsn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBSSLMode,
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Panicf("❌ Failed to connect to database: %v", err)
	}

	log.Println("✅ Database connection established")
	return db
}
