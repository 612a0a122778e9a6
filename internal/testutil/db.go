package testutil

import (
	"fmt"
	"os"
	"testing"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/dramoir/dramoir-backend/internal/database"
)

// OpenTestDB connects to the test Postgres instance, runs migrations and
// truncates all tables. Tests are skipped when TEST_DB_HOST is not set.
func OpenTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	host := os.Getenv("TEST_DB_HOST")
	if host == "" {
		t.Skip("TEST_DB_HOST not set, skipping postgres test")
	}

	dsn := fmt.Sprintf(
		"host=%s user=dramoir password=dramoir_pass dbname=dramoir_test port=5432 sslmode=disable",
		host,
	)
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}

	if err := database.RunMigrations(db); err != nil {
		t.Fatalf("migrations: %v", err)
	}

	tables := []string{
		"one_time_codes", "favorites", "watch_histories", "ticket_replies",
		"tickets", "content_requests", "weekly_schedules", "short_descriptions",
		"download_files", "episodes", "seasons", "series", "movies",
		"genres", "countries", "languages", "users",
	}
	for _, table := range tables {
		if err := db.Exec("TRUNCATE TABLE " + table + " RESTART IDENTITY CASCADE").Error; err != nil {
			t.Fatalf("truncate %s: %v", table, err)
		}
	}

	return db
}
