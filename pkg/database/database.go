package database

import (
	"time"

	"github.com/jinzhu/gorm"
	_ "github.com/jinzhu/gorm/dialects/postgres"
	_ "github.com/jinzhu/gorm/dialects/sqlite"
	"github.com/sirupsen/logrus"

	"clipshare/cmd/config"
	"clipshare/pkg/models"
	"clipshare/pkg/store"
)

// Open connects to Postgres when DATABASE_URL is set, otherwise to a local
// sqlite file, and migrates the schema.
func Open(cfg *config.Config) (*gorm.DB, error) {
	dialect, dsn := "sqlite3", cfg.SQLitePath
	if cfg.DatabaseURL != "" {
		dialect, dsn = "postgres", cfg.DatabaseURL
	}

	db, err := gorm.Open(dialect, dsn)
	if err != nil {
		return nil, err
	}

	db.DB().SetMaxOpenConns(25)
	db.DB().SetMaxIdleConns(5)
	db.DB().SetConnMaxLifetime(30 * time.Minute)

	if err := db.AutoMigrate(&models.User{}, &models.Clip{}).Error; err != nil {
		db.Close()
		return nil, err
	}

	logrus.WithField("dialect", dialect).Info("Database connected")
	return db, nil
}

// Seed creates the bootstrap administrative account when the users table is
// empty. The credential comes from ADMIN_USERNAME/ADMIN_PASSWORD.
func Seed(users *store.UserStore, cfg *config.Config) error {
	n, err := users.Count()
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	if _, err := users.Create(cfg.AdminUsername, cfg.AdminPassword); err != nil {
		return err
	}
	logrus.WithField("username", cfg.AdminUsername).Warn("Seeded default admin account, change its password")
	return nil
}
