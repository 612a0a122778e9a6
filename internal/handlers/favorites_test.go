package handlers_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/dramoir/dramoir-backend/internal/handlers"
	"github.com/dramoir/dramoir-backend/internal/models"
	"github.com/dramoir/dramoir-backend/internal/testutil"
)

// newFavoritesRouter wires the favorites handlers behind a stub that puts a
// fixed user ID on the context, standing in for the auth middleware.
func newFavoritesRouter(t *testing.T, db *gorm.DB, userID uint) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("userId", userID)
	})
	r.GET("/favorites", handlers.GetFavorites(db))
	r.POST("/favorites", handlers.AddFavorite(db))
	r.DELETE("/favorites/:contentId", handlers.RemoveFavorite(db))
	return r
}

func seedMovie(t *testing.T, db *gorm.DB, title string) *models.Movie {
	t.Helper()
	movie := &models.Movie{
		Title:      title,
		Overview:   "overview",
		PosterPath: "/p.jpg",
		Rate:       7.5,
	}
	require.NoError(t, db.Create(movie).Error)
	return movie
}

func TestAddAndListFavorites(t *testing.T) {
	db := testutil.OpenTestDB(t)

	user := models.User{Username: "someone", Email: "a@x.com", PasswordHash: "x"}
	require.NoError(t, db.Create(&user).Error)
	movie := seedMovie(t, db, "Some Movie")

	r := newFavoritesRouter(t, db, user.ID)

	w := doJSON(t, r, "POST", "/favorites", gin.H{
		"content_id":   movie.ID,
		"content_type": "movie",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	// The display fields are copied off the movie
	var favorite models.Favorite
	require.NoError(t, db.First(&favorite).Error)
	require.Equal(t, "Some Movie", favorite.Title)
	require.Equal(t, "/p.jpg", favorite.PosterPath)
	require.Equal(t, 7.5, favorite.Rate)

	w = doJSON(t, r, "GET", "/favorites", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var listed []models.Favorite
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &listed))
	require.Len(t, listed, 1)
}

func TestDuplicateFavoriteRejected(t *testing.T) {
	db := testutil.OpenTestDB(t)

	user := models.User{Username: "someone", Email: "a@x.com", PasswordHash: "x"}
	require.NoError(t, db.Create(&user).Error)
	movie := seedMovie(t, db, "Some Movie")

	r := newFavoritesRouter(t, db, user.ID)

	body := gin.H{"content_id": movie.ID, "content_type": "movie"}
	w := doJSON(t, r, "POST", "/favorites", body)
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, r, "POST", "/favorites", body)
	require.Equal(t, http.StatusConflict, w.Code)
}

func TestRemoveFavorite(t *testing.T) {
	db := testutil.OpenTestDB(t)

	user := models.User{Username: "someone", Email: "a@x.com", PasswordHash: "x"}
	require.NoError(t, db.Create(&user).Error)
	movie := seedMovie(t, db, "Some Movie")

	r := newFavoritesRouter(t, db, user.ID)

	w := doJSON(t, r, "POST", "/favorites", gin.H{
		"content_id":   movie.ID,
		"content_type": "movie",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	// Missing type query is a bad request
	w = doJSON(t, r, "DELETE", "/favorites/1", nil)
	require.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, r, "DELETE", "/favorites/1?type=movie", nil)
	require.Equal(t, http.StatusNoContent, w.Code)

	w = doJSON(t, r, "DELETE", "/favorites/1?type=movie", nil)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestFavoriteUnknownContent(t *testing.T) {
	db := testutil.OpenTestDB(t)

	user := models.User{Username: "someone", Email: "a@x.com", PasswordHash: "x"}
	require.NoError(t, db.Create(&user).Error)

	r := newFavoritesRouter(t, db, user.ID)

	w := doJSON(t, r, "POST", "/favorites", gin.H{
		"content_id":   999,
		"content_type": "series",
	})
	require.Equal(t, http.StatusNotFound, w.Code)
}
