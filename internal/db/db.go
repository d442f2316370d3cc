package db

import (
	"encoding/json"
	"fmt"

	"github.com/arkadasai/demo-api/internal/config"
	"github.com/arkadasai/demo-api/internal/models"
	"github.com/glebarez/sqlite"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// MemoryDSN opens a process-private database that is discarded at exit.
// The shared cache keeps every pooled connection on the same memory store.
const MemoryDSN = "file::memory:?cache=shared"

// Open opens the in-memory database.
func Open() (*gorm.DB, error) {
	conn, err := gorm.Open(sqlite.Open(MemoryDSN), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("db: open: %w", err)
	}
	sqlDB, errDB := conn.DB()
	if errDB != nil {
		return nil, fmt.Errorf("db: unwrap: %w", errDB)
	}
	// Single writer; mutations never interleave.
	sqlDB.SetMaxOpenConns(1)
	return conn, nil
}

// Migrate creates the schema for the current process.
func Migrate(conn *gorm.DB) error {
	if conn == nil {
		return fmt.Errorf("db: nil connection")
	}
	if errAutoMigrate := conn.AutoMigrate(
		&models.Plan{},
		&models.User{},
	); errAutoMigrate != nil {
		return fmt.Errorf("db: migrate: %w", errAutoMigrate)
	}
	return nil
}

// SeedCatalog populates the plan catalog once per process. Config overrides
// replace the built-in catalog wholesale when present.
func SeedCatalog(conn *gorm.DB, overrides []config.PlanConfig) error {
	if conn == nil {
		return fmt.Errorf("db: nil connection")
	}

	var count int64
	if errCount := conn.Model(&models.Plan{}).Count(&count).Error; errCount != nil {
		return fmt.Errorf("db: count plans: %w", errCount)
	}
	if count > 0 {
		return nil
	}

	catalog := DefaultCatalog()
	if len(overrides) > 0 {
		built, errBuild := catalogFromConfig(overrides)
		if errBuild != nil {
			return errBuild
		}
		catalog = built
	}

	if errCreate := conn.Create(&catalog).Error; errCreate != nil {
		return fmt.Errorf("db: seed catalog: %w", errCreate)
	}
	return nil
}

// DefaultCatalog returns the built-in plan catalog in display order.
func DefaultCatalog() []models.Plan {
	return []models.Plan{
		{
			ID:        "free",
			Name:      "Free",
			Price:     "₺0",
			Features:  mustFeatures("Basic chat", "Limited usage"),
			SortOrder: 0,
		},
		{
			ID:        "pro",
			Name:      "Pro",
			Price:     "₺199/ay",
			Features:  mustFeatures("Faster replies", "Longer context"),
			SortOrder: 1,
		},
		{
			ID:        "team",
			Name:      "Team",
			Price:     "₺499/ay",
			Features:  mustFeatures("Priority latency", "Shared workspace", "Admin controls"),
			SortOrder: 2,
		},
	}
}

// catalogFromConfig builds the catalog from config overrides. The "free"
// plan must be present: new accounts start on it.
func catalogFromConfig(overrides []config.PlanConfig) ([]models.Plan, error) {
	hasFree := false
	catalog := make([]models.Plan, 0, len(overrides))
	for i, entry := range overrides {
		if entry.ID == "" {
			return nil, fmt.Errorf("db: plan override %d: missing id", i)
		}
		if entry.ID == "free" {
			hasFree = true
		}
		features, errMarshal := json.Marshal(entry.Features)
		if errMarshal != nil {
			return nil, fmt.Errorf("db: plan override %s: marshal features: %w", entry.ID, errMarshal)
		}
		catalog = append(catalog, models.Plan{
			ID:        entry.ID,
			Name:      entry.Name,
			Price:     entry.Price,
			Features:  datatypes.JSON(features),
			SortOrder: i,
		})
	}
	if !hasFree {
		return nil, fmt.Errorf("db: plan overrides must include the free plan")
	}
	return catalog, nil
}

func mustFeatures(features ...string) datatypes.JSON {
	data, _ := json.Marshal(features)
	return datatypes.JSON(data)
}
