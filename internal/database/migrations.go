package database

import (
	"gorm.io/gorm"

	"github.com/dramoir/dramoir-backend/internal/models"
)

func RunMigrations(db *gorm.DB) error {
	// Create tables if they don't exist
	err := db.AutoMigrate(
		&models.User{},
		&models.OneTimeCode{},
		&models.Genre{},
		&models.Country{},
		&models.Language{},
		&models.Movie{},
		&models.Series{},
		&models.Season{},
		&models.Episode{},
		&models.DownloadFile{},
		&models.Favorite{},
		&models.WatchHistory{},
		&models.WeeklySchedule{},
		&models.ShortDescription{},
		&models.Ticket{},
		&models.TicketReply{},
		&models.ContentRequest{},
	)
	if err != nil {
		return err
	}

	// Older deployments stored verification and reset codes in two
	// parallel tables; the purpose column replaced them.
	if db.Migrator().HasTable(&models.OneTimeCode{}) {
		if err := db.Exec(`ALTER TABLE one_time_codes ALTER COLUMN purpose SET NOT NULL`).Error; err != nil {
			return err
		}
	}

	return nil
}
