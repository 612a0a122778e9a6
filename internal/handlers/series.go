package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/dramoir/dramoir-backend/internal/models"
)

func seriesShelfFilters(c *gin.Context, db *gorm.DB, query *gorm.DB) *gorm.DB {
	if c.Query("trend") == "true" {
		query = query.Where("trend = ?", true)
	}
	if chosen := c.Query("chosen"); chosen != "" {
		query = query.Where("chosen_home_page = ?", chosen == "true")
	}
	if country := c.Query("country"); country != "" {
		query = query.Where("series.id IN (?)", seriesIDsByCountry(db, country))
	}
	if exclude := c.Query("exclude_country"); exclude != "" {
		query = query.Where("series.id NOT IN (?)", seriesIDsByCountry(db, exclude))
	}
	return query
}

func seriesIDsByCountry(db *gorm.DB, country string) *gorm.DB {
	return db.Table("series_countries").
		Select("series_countries.series_id").
		Joins("JOIN countries ON countries.id = series_countries.country_id").
		Where("countries.name = ?", country)
}

// ListSeries lists series with optional shelf filters, highest rated first
func ListSeries(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit, offset := parsePaging(c)

		query := seriesShelfFilters(c, db, db.Model(&models.Series{}))

		var series []models.Series
		if err := query.Preload("Genres").Preload("Countries").Preload("Languages").
			Order("rate DESC").
			Limit(limit).Offset(offset).
			Find(&series).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to load series"})
			return
		}

		c.JSON(200, gin.H{"results": series, "limit": limit, "offset": offset})
	}
}

// GetSeries returns one series with its seasons, episodes and download
// files
func GetSeries(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var series models.Series
		if err := db.Preload("Genres").Preload("Countries").Preload("Languages").
			Preload("Seasons", func(db *gorm.DB) *gorm.DB {
				return db.Order("seasons.number ASC")
			}).
			Preload("Seasons.Episodes", func(db *gorm.DB) *gorm.DB {
				return db.Order("episodes.number ASC")
			}).
			Preload("Seasons.Episodes.DownloadFiles").
			First(&series, c.Param("id")).Error; err != nil {
			c.JSON(404, gin.H{"error": "Series not found"})
			return
		}

		c.JSON(200, series)
	}
}
