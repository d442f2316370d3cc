package db

import (
	"errors"
	"fmt"
	"testing"

	"github.com/arkadasai/demo-api/internal/config"
	"github.com/arkadasai/demo-api/internal/models"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// openTestDB opens a uniquely named in-memory database so tests stay isolated.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	return conn
}

func TestMigrateAndSeed_DefaultCatalog(t *testing.T) {
	conn := openTestDB(t)
	if errMigrate := Migrate(conn); errMigrate != nil {
		t.Fatalf("migrate: %v", errMigrate)
	}
	if errSeed := SeedCatalog(conn, nil); errSeed != nil {
		t.Fatalf("seed: %v", errSeed)
	}

	var plans []models.Plan
	if errFind := conn.Order("sort_order ASC").Find(&plans).Error; errFind != nil {
		t.Fatalf("find plans: %v", errFind)
	}
	if len(plans) != 3 {
		t.Fatalf("expected 3 plans, got %d", len(plans))
	}
	want := []string{"free", "pro", "team"}
	for i, id := range want {
		if plans[i].ID != id {
			t.Fatalf("expected plan %d to be %q, got %q", i, id, plans[i].ID)
		}
	}
}

func TestSeedCatalog_SeedsOnce(t *testing.T) {
	conn := openTestDB(t)
	if errMigrate := Migrate(conn); errMigrate != nil {
		t.Fatalf("migrate: %v", errMigrate)
	}
	if errSeed := SeedCatalog(conn, nil); errSeed != nil {
		t.Fatalf("seed: %v", errSeed)
	}
	if errSeed := SeedCatalog(conn, []config.PlanConfig{{ID: "extra"}}); errSeed != nil {
		t.Fatalf("reseed: %v", errSeed)
	}

	var count int64
	if errCount := conn.Model(&models.Plan{}).Count(&count).Error; errCount != nil {
		t.Fatalf("count: %v", errCount)
	}
	if count != 3 {
		t.Fatalf("expected catalog unchanged at 3 plans, got %d", count)
	}
}

func TestSeedCatalog_ConfigOverride(t *testing.T) {
	conn := openTestDB(t)
	if errMigrate := Migrate(conn); errMigrate != nil {
		t.Fatalf("migrate: %v", errMigrate)
	}

	overrides := []config.PlanConfig{
		{ID: "free", Name: "Free", Price: "$0", Features: []string{"Basic chat"}},
		{ID: "pro", Name: "Pro", Price: "$19", Features: []string{"Faster replies"}},
	}
	if errSeed := SeedCatalog(conn, overrides); errSeed != nil {
		t.Fatalf("seed: %v", errSeed)
	}

	var plans []models.Plan
	if errFind := conn.Order("sort_order ASC").Find(&plans).Error; errFind != nil {
		t.Fatalf("find plans: %v", errFind)
	}
	if len(plans) != 2 {
		t.Fatalf("expected 2 plans from overrides, got %d", len(plans))
	}
	if plans[1].Price != "$19" {
		t.Fatalf("expected override price, got %q", plans[1].Price)
	}
}

func TestSeedCatalog_OverrideMissingID(t *testing.T) {
	conn := openTestDB(t)
	if errMigrate := Migrate(conn); errMigrate != nil {
		t.Fatalf("migrate: %v", errMigrate)
	}
	if errSeed := SeedCatalog(conn, []config.PlanConfig{{Name: "Nameless"}}); errSeed == nil {
		t.Fatalf("expected error for override without id")
	}
}

func TestSeedCatalog_OverrideMissingFree(t *testing.T) {
	conn := openTestDB(t)
	if errMigrate := Migrate(conn); errMigrate != nil {
		t.Fatalf("migrate: %v", errMigrate)
	}
	overrides := []config.PlanConfig{{ID: "pro", Name: "Pro", Price: "$19"}}
	if errSeed := SeedCatalog(conn, overrides); errSeed == nil {
		t.Fatalf("expected error for catalog without the free plan")
	}
}

func TestUserEmailUnique(t *testing.T) {
	conn := openTestDB(t)
	if errMigrate := Migrate(conn); errMigrate != nil {
		t.Fatalf("migrate: %v", errMigrate)
	}

	first := models.User{ID: "u1", Email: "a@example.com", Name: "A", Password: "x", Plan: "free"}
	if errCreate := conn.Create(&first).Error; errCreate != nil {
		t.Fatalf("create first: %v", errCreate)
	}
	second := models.User{ID: "u2", Email: "a@example.com", Name: "B", Password: "x", Plan: "free"}
	errCreate := conn.Create(&second).Error
	if !errors.Is(errCreate, gorm.ErrDuplicatedKey) {
		t.Fatalf("expected duplicated key error, got %v", errCreate)
	}

	var count int64
	if errCount := conn.Model(&models.User{}).Where("email = ?", "a@example.com").Count(&count).Error; errCount != nil {
		t.Fatalf("count: %v", errCount)
	}
	if count != 1 {
		t.Fatalf("expected exactly one user row, got %d", count)
	}
}
