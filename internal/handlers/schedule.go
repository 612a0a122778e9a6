package handlers

import (
	"log"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/dramoir/dramoir-backend/internal/models"
	"github.com/dramoir/dramoir-backend/internal/services"
)

var scheduleDays = []string{
	"saturday", "sunday", "monday", "tuesday", "wednesday", "thursday", "friday",
}

// GetSchedule returns the weekly airing schedule. Without a day filter the
// active entries are grouped by day of week; the grouped payload is
// cached in Redis.
func GetSchedule(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		day := c.Query("day")

		if day != "" {
			var entries []models.WeeklySchedule
			if err := db.Preload("Series").
				Where("is_active = ? AND day_of_week = ?", true, day).
				Find(&entries).Error; err != nil {
				c.JSON(500, gin.H{"error": "Failed to load schedule"})
				return
			}
			c.JSON(200, entries)
			return
		}

		ctx := c.Request.Context()
		if cached, err := services.GetCachedSchedule(ctx); err == nil {
			c.Data(200, "application/json", cached)
			return
		}

		var entries []models.WeeklySchedule
		if err := db.Preload("Series").
			Where("is_active = ?", true).
			Find(&entries).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to load schedule"})
			return
		}

		byDay := make(map[string][]models.WeeklySchedule)
		for _, entry := range entries {
			byDay[entry.DayOfWeek] = append(byDay[entry.DayOfWeek], entry)
		}

		payload := gin.H{}
		for _, d := range scheduleDays {
			if schedules, ok := byDay[d]; ok {
				payload[d] = schedules
			}
		}

		if err := services.CacheSchedule(ctx, payload); err != nil {
			log.Printf("Failed to cache schedule: %v", err)
		}

		c.JSON(200, payload)
	}
}
