package client

import (
	"fmt"
	"time"

	"artmarket-backend/internal/config"
	"artmarket-backend/internal/model"

	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// InitDB opens MySQL when DB_URL is set and falls back to a local sqlite
// file otherwise, then migrates and seeds the lookup tables.
func InitDB(dbCfg *config.Database) (*gorm.DB, error) {
	var (
		db  *gorm.DB
		err error
	)
	if dbCfg.URL != "" {
		db, err = gorm.Open(mysql.Open(dbCfg.URL), &gorm.Config{})
	} else {
		db, err = gorm.Open(sqlite.Open(dbCfg.SQLitePath), &gorm.Config{})
	}
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql db: %w", err)
	}

	// Connection pool (important for concurrent checkouts)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(50)
	sqlDB.SetConnMaxLifetime(time.Hour)

	if err := Migrate(db); err != nil {
		return nil, err
	}

	return db, nil
}

// Migrate runs AutoMigrate and seeds the status/role lookup tables. Exposed
// separately so tests can run it against their own database.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&model.Role{},
		&model.Category{},
		&model.ProductStatus{},
		&model.User{},
		&model.Product{},
		&model.Image{},
		&model.Order{},
		&model.OrderItem{},
		&model.Payment{},
		&model.Review{},
		&model.Commission{},
		&model.PasswordResetToken{},
	); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}

	statuses := []model.ProductStatus{
		{ID: model.ProductStatusActiveID, Status: "active"},
		{ID: model.ProductStatusSoldOutID, Status: "sold_out"},
		{ID: model.ProductStatusInactiveID, Status: "inactive"},
	}
	if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&statuses).Error; err != nil {
		return fmt.Errorf("seed product statuses: %w", err)
	}

	roles := []model.Role{
		{ID: model.RoleAdminID, Description: "admin"},
		{ID: model.RoleArtistID, Description: "artist"},
		{ID: model.RoleBuyerID, Description: "buyer"},
	}
	if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&roles).Error; err != nil {
		return fmt.Errorf("seed roles: %w", err)
	}

	return nil
}
