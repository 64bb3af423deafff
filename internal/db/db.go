package db

import (
	"log"
	"os"
	"strings"

	"hobbyhub/internal/models"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Init opens the database named by DATABASE_URL and runs migrations.
// "postgres://..." selects Postgres, "sqlite://<file>" the pure-Go SQLite
// driver; unset defaults to a local SQLite file for development.
func Init() (*gorm.DB, error) {
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		dbURL = "sqlite://hobbyhub.db"
		log.Println("DATABASE_URL not set, defaulting to 'sqlite://hobbyhub.db'")
	}

	var dialector gorm.Dialector
	switch {
	case strings.HasPrefix(dbURL, "postgres://"):
		dialector = postgres.Open(dbURL)
		log.Println("Connecting to PostgreSQL database...")
	case strings.HasPrefix(dbURL, "sqlite://"):
		dsn := strings.TrimPrefix(dbURL, "sqlite://")
		dialector = sqlite.Open(dsn)
		log.Println("Connecting to SQLite database at", dsn)
	default:
		log.Fatalf("Invalid DATABASE_URL prefix. Must start with 'postgres://' or 'sqlite://'")
	}

	conn, err := gorm.Open(dialector, &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true, // Surface duplicate-key violations as gorm.ErrDuplicatedKey
	})
	if err != nil {
		return nil, err
	}

	if err := conn.AutoMigrate(
		&models.User{},
		&models.Post{},
		&models.Upvote{},
		&models.Comment{},
	); err != nil {
		return nil, err
	}
	log.Println("Database migration completed")

	return conn, nil
}
