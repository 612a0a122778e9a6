package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/dramoir/dramoir-backend/internal/models"
)

type AddFavoriteInput struct {
	ContentID   uint   `json:"content_id" binding:"required"`
	ContentType string `json:"content_type" binding:"required,oneof=movie series"`
}

// GetFavorites lists the user's favorites, latest first
func GetFavorites(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userId := c.GetUint("userId")

		var favorites []models.Favorite
		if err := db.Where("user_id = ?", userId).
			Order("created_at DESC").
			Find(&favorites).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to load favorites"})
			return
		}

		c.JSON(200, favorites)
	}
}

// AddFavorite bookmarks a movie or series, copying its display fields onto
// the favorite row
func AddFavorite(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userId := c.GetUint("userId")

		var input AddFavoriteInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}

		favorite := models.Favorite{
			UserID:      userId,
			ContentID:   input.ContentID,
			ContentType: models.ContentType(input.ContentType),
		}

		switch favorite.ContentType {
		case models.ContentTypeMovie:
			var movie models.Movie
			if err := db.First(&movie, input.ContentID).Error; err != nil {
				c.JSON(404, gin.H{"error": "Content not found"})
				return
			}
			favorite.Title = movie.Title
			favorite.PosterPath = movie.PosterPath
			favorite.Overview = movie.Overview
			favorite.Rate = movie.Rate
		case models.ContentTypeSeries:
			var series models.Series
			if err := db.First(&series, input.ContentID).Error; err != nil {
				c.JSON(404, gin.H{"error": "Content not found"})
				return
			}
			favorite.Title = series.Title
			favorite.PosterPath = series.PosterPath
			favorite.Overview = series.Overview
			favorite.Rate = series.Rate
		}

		if err := db.Create(&favorite).Error; err != nil {
			c.JSON(409, gin.H{"error": "Content is already in your favorites"})
			return
		}

		c.JSON(201, favorite)
	}
}

// RemoveFavorite deletes a favorite identified by content id and type
func RemoveFavorite(db *gorm.DB) gin.HandlerFunc {
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
			Delete(&models.Favorite{})
		if result.Error != nil {
			c.JSON(500, gin.H{"error": "Failed to remove favorite"})
			return
		}
		if result.RowsAffected == 0 {
			c.JSON(404, gin.H{"error": "This content is not in your favorites"})
			return
		}

		c.Status(204)
	}
}
