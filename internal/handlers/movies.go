package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/dramoir/dramoir-backend/internal/models"
)

func parsePaging(c *gin.Context) (limit, offset int) {
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "20"))
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	offset, _ = strconv.Atoi(c.DefaultQuery("offset", "0"))
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

// movieShelfFilters narrows a movie query using the shared shelf query
// params: trend, chosen, country, exclude_country.
func movieShelfFilters(c *gin.Context, db *gorm.DB, query *gorm.DB) *gorm.DB {
	if c.Query("trend") == "true" {
		query = query.Where("trend = ?", true)
	}
	if chosen := c.Query("chosen"); chosen != "" {
		query = query.Where("chosen_home_page = ?", chosen == "true")
	}
	if country := c.Query("country"); country != "" {
		query = query.Where("movies.id IN (?)", movieIDsByCountry(db, country))
	}
	if exclude := c.Query("exclude_country"); exclude != "" {
		query = query.Where("movies.id NOT IN (?)", movieIDsByCountry(db, exclude))
	}
	return query
}

func movieIDsByCountry(db *gorm.DB, country string) *gorm.DB {
	return db.Table("movie_countries").
		Select("movie_countries.movie_id").
		Joins("JOIN countries ON countries.id = movie_countries.country_id").
		Where("countries.name = ?", country)
}

// ListMovies lists movies with optional shelf filters, highest rated first
func ListMovies(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit, offset := parsePaging(c)

		query := movieShelfFilters(c, db, db.Model(&models.Movie{}))

		var movies []models.Movie
		if err := query.Preload("Genres").Preload("Countries").Preload("Languages").
			Order("rate DESC").
			Limit(limit).Offset(offset).
			Find(&movies).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to load movies"})
			return
		}

		c.JSON(200, gin.H{"results": movies, "limit": limit, "offset": offset})
	}
}

// GetMovie returns one movie with its download files
func GetMovie(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var movie models.Movie
		if err := db.Preload("Genres").Preload("Countries").Preload("Languages").
			Preload("DownloadFiles").
			First(&movie, c.Param("id")).Error; err != nil {
			c.JSON(404, gin.H{"error": "Movie not found"})
			return
		}

		c.JSON(200, movie)
	}
}
