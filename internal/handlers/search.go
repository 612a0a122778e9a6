package handlers

import (
	"log"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/dramoir/dramoir-backend/internal/models"
	"github.com/dramoir/dramoir-backend/internal/services"
)

// Search looks up movies and series by title substring. Results for a
// query are cached briefly in Redis.
func Search(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		query := strings.TrimSpace(c.Query("q"))
		if query == "" {
			c.JSON(200, gin.H{"movies": []models.Movie{}, "series": []models.Series{}})
			return
		}

		ctx := c.Request.Context()
		if cached, err := services.GetCachedSearchResults(ctx, query); err == nil {
			c.Data(200, "application/json", cached)
			return
		}

		pattern := "%" + query + "%"

		var movies []models.Movie
		if err := db.Where("title ILIKE ?", pattern).Limit(50).Find(&movies).Error; err != nil {
			c.JSON(500, gin.H{"error": "Search failed"})
			return
		}

		var series []models.Series
		if err := db.Where("title ILIKE ?", pattern).Limit(50).Find(&series).Error; err != nil {
			c.JSON(500, gin.H{"error": "Search failed"})
			return
		}

		results := gin.H{"movies": movies, "series": series}
		if err := services.CacheSearchResults(ctx, query, results); err != nil {
			log.Printf("Failed to cache search results: %v", err)
		}

		c.JSON(200, results)
	}
}
