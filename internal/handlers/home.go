package handlers

import (
	"log"
	"math/rand"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/dramoir/dramoir-backend/internal/models"
	"github.com/dramoir/dramoir-backend/internal/services"
)

// sampleMovies picks up to n random movies from the slice
func sampleMovies(movies []models.Movie, n int) []models.Movie {
	rand.Shuffle(len(movies), func(i, j int) {
		movies[i], movies[j] = movies[j], movies[i]
	})
	if len(movies) > n {
		movies = movies[:n]
	}
	return movies
}

func sampleSeries(series []models.Series, n int) []models.Series {
	rand.Shuffle(len(series), func(i, j int) {
		series[i], series[j] = series[j], series[i]
	})
	if len(series) > n {
		series = series[:n]
	}
	return series
}

// HomePage assembles the curated landing shelves. The payload is cached in
// Redis for a few minutes; Redis being down just means uncached reads.
func HomePage(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		if cached, err := services.GetCachedHomePage(ctx); err == nil {
			c.Data(200, "application/json", cached)
			return
		}

		var trendMovies []models.Movie
		db.Preload("Genres").Where("trend = ?", true).Find(&trendMovies)

		var trendSeries []models.Series
		db.Preload("Genres").Where("trend = ?", true).Find(&trendSeries)

		var chosenKoreanMovies []models.Movie
		db.Where("chosen_home_page = ? AND movies.id IN (?)", true,
			movieIDsByCountry(db, "South Korea")).Find(&chosenKoreanMovies)

		var chosenMovies []models.Movie
		db.Where("chosen_home_page = ? AND movies.id NOT IN (?)", true,
			movieIDsByCountry(db, "South Korea")).Find(&chosenMovies)

		var chosenKoreanSeries []models.Series
		db.Where("chosen_home_page = ? AND series.id IN (?)", true,
			seriesIDsByCountry(db, "South Korea")).Find(&chosenKoreanSeries)

		var bestKoreanSeries []models.Series
		db.Where("chosen_home_page = ? AND series.id IN (?)", false,
			seriesIDsByCountry(db, "South Korea")).
			Order("rate DESC").Limit(6).Find(&bestKoreanSeries)

		var bestChineseSeries []models.Series
		db.Where("chosen_home_page = ? AND series.id IN (?)", false,
			seriesIDsByCountry(db, "China")).
			Order("rate DESC").Limit(6).Find(&bestChineseSeries)

		var bestSeries []models.Series
		db.Where("chosen_home_page = ? AND series.id NOT IN (?) AND series.id NOT IN (?)", false,
			seriesIDsByCountry(db, "South Korea"), seriesIDsByCountry(db, "China")).
			Order("rate DESC").Limit(6).Find(&bestSeries)

		payload := gin.H{
			"trend_movies":         trendMovies,
			"trend_series":         trendSeries,
			"chosen_korean_movies": sampleMovies(chosenKoreanMovies, 8),
			"chosen_movies":        sampleMovies(chosenMovies, 8),
			"chosen_korean_series": sampleSeries(chosenKoreanSeries, 6),
			"best_korean_series":   bestKoreanSeries,
			"best_chinese_series":  bestChineseSeries,
			"best_series":          bestSeries,
		}

		if err := services.CacheHomePage(ctx, payload); err != nil {
			log.Printf("Failed to cache home page: %v", err)
		}

		c.JSON(200, payload)
	}
}
