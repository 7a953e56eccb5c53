package testutils

import (
	"fmt"
	"os"
	"testing"

	"github.com/pegatrainingexilent2-lang/pega-learning-app/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// SetupTestDB connects to the test Postgres described by environment variables,
// migrates all tables and returns a transaction that is rolled back on cleanup.
// The test is skipped when the database is unreachable.
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_DSN")
	if dsn == "" {
		dsn = fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
			getEnvOrDefault("POSTGRES_HOST", "localhost"),
			getEnvOrDefault("POSTGRES_PORT", "5433"),
			getEnvOrDefault("POSTGRES_USER", "test"),
			getEnvOrDefault("POSTGRES_PASSWORD", "test"),
			getEnvOrDefault("POSTGRES_DB", "pega_learning_test"),
		)
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Skipf("test database unavailable: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil || sqlDB.Ping() != nil {
		t.Skip("test database unavailable")
	}

	if err := model.InitTable(db); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	tx := db.Begin()
	t.Cleanup(func() {
		tx.Rollback()
		sqlDB.Close()
	})

	return tx
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
