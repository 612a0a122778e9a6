package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/dramoir/dramoir-backend/internal/models"
)

// GetGenre returns a genre by name with its movies and series
func GetGenre(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var genre models.Genre
		if err := db.Preload("Movies").Preload("Series").
			Where("name = ?", c.Param("name")).
			First(&genre).Error; err != nil {
			c.JSON(404, gin.H{"error": "Genre not found"})
			return
		}
		c.JSON(200, genre)
	}
}

// GetCountry returns a country by name with its movies and series
func GetCountry(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var country models.Country
		if err := db.Preload("Movies").Preload("Series").
			Where("name = ?", c.Param("name")).
			First(&country).Error; err != nil {
			c.JSON(404, gin.H{"error": "Country not found"})
			return
		}
		c.JSON(200, country)
	}
}

// GetLanguage returns a language by name with its movies and series
func GetLanguage(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var language models.Language
		if err := db.Preload("Movies").Preload("Series").
			Where("name = ?", c.Param("name")).
			First(&language).Error; err != nil {
			c.JSON(404, gin.H{"error": "Language not found"})
			return
		}
		c.JSON(200, language)
	}
}

// GetShortDescription returns one active editorial blurb
func GetShortDescription(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var desc models.ShortDescription
		if err := db.Where("is_active = ?", true).
			First(&desc, c.Param("id")).Error; err != nil {
			c.JSON(404, gin.H{"error": "Description not found"})
			return
		}
		c.JSON(200, desc)
	}
}
