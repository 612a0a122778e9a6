package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/dramoir/dramoir-backend/internal/models"
)

type WatchHistoryInput struct {
	ContentID   uint   `json:"content_id" binding:"required"`
	ContentType string `json:"content_type" binding:"required,oneof=movie series"`
}

// GetWatchHistory lists what the user has opened, most recent first
func GetWatchHistory(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userId := c.GetUint("userId")

		var history []models.WatchHistory
		if err := db.Where("user_id = ?", userId).
			Order("updated_at DESC").
			Find(&history).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to load watch history"})
			return
		}

		c.JSON(200, history)
	}
}

// RecordWatch upserts a watch history row for the content. Re-watching
// refreshes the existing row.
func RecordWatch(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userId := c.GetUint("userId")

		var input WatchHistoryInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}

		// Pull the first country off the content for the stats screens
		var country string
		switch models.ContentType(input.ContentType) {
		case models.ContentTypeMovie:
			var movie models.Movie
			if err := db.Preload("Countries").First(&movie, input.ContentID).Error; err != nil {
				c.JSON(404, gin.H{"error": "Content not found"})
				return
			}
			if len(movie.Countries) > 0 {
				country = movie.Countries[0].Name
			}
		case models.ContentTypeSeries:
			var series models.Series
			if err := db.Preload("Countries").First(&series, input.ContentID).Error; err != nil {
				c.JSON(404, gin.H{"error": "Content not found"})
				return
			}
			if len(series.Countries) > 0 {
				country = series.Countries[0].Name
			}
		}

		var entry models.WatchHistory
		err := db.Where("user_id = ? AND content_id = ? AND content_type = ?",
			userId, input.ContentID, input.ContentType).
			First(&entry).Error
		switch {
		case err == nil:
			entry.Country = country
			if err := db.Save(&entry).Error; err != nil {
				c.JSON(500, gin.H{"error": "Failed to update watch history"})
				return
			}
		default:
			entry = models.WatchHistory{
				UserID:      userId,
				ContentID:   input.ContentID,
				ContentType: models.ContentType(input.ContentType),
				Country:     country,
			}
			if err := db.Create(&entry).Error; err != nil {
				c.JSON(500, gin.H{"error": "Failed to record watch history"})
				return
			}
		}

		c.JSON(201, entry)
	}
}

// DeleteWatchHistory removes a history row identified by content id and
// type
func DeleteWatchHistory(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userId := c.GetUint("userId")
		contentId := c.Param("contentId")

		contentType := c.Query("type")
		if contentType != "movie" && contentType != "series" {
			c.JSON(400, gin.H{"error": "Content type must be either 'movie' or 'series'"})
			return
		}

		result := db.Where("user_id = ? AND content_id = ? AND content_type = ?",
			userId, contentId, contentType).
			Delete(&models.WatchHistory{})
		if result.Error != nil {
			c.JSON(500, gin.H{"error": "Failed to remove watch history"})
			return
		}
		if result.RowsAffected == 0 {
			c.JSON(404, gin.H{"error": "This content is not in your watch history"})
			return
		}

		c.Status(204)
	}
}

type watchCountryStat struct {
	Country string `json:"country"`
	Movies  int64  `json:"movies"`
	Series  int64  `json:"series"`
}

// GetWatchHistoryStats returns how much the user has watched: totals per
// content type and a per-country breakdown.
func GetWatchHistoryStats(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userId := c.GetUint("userId")

		var totalMovies, totalSeries int64
		if err := db.Model(&models.WatchHistory{}).
			Where("user_id = ? AND content_type = ?", userId, models.ContentTypeMovie).
			Count(&totalMovies).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to load watch history stats"})
			return
		}
		if err := db.Model(&models.WatchHistory{}).
			Where("user_id = ? AND content_type = ?", userId, models.ContentTypeSeries).
			Count(&totalSeries).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to load watch history stats"})
			return
		}

		var byCountry []watchCountryStat
		if err := db.Model(&models.WatchHistory{}).
			Select("country, "+
				"COUNT(*) FILTER (WHERE content_type = 'movie') AS movies, "+
				"COUNT(*) FILTER (WHERE content_type = 'series') AS series").
			Where("user_id = ? AND country <> ''", userId).
			Group("country").
			Order("country").
			Scan(&byCountry).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to load watch history stats"})
			return
		}

		c.JSON(200, gin.H{
			"total_movies": totalMovies,
			"total_series": totalSeries,
			"by_country":   byCountry,
		})
	}
}
