package models

import (
	"gorm.io/gorm"
)

type Movie struct {
	gorm.Model
	Title          string         `json:"title" gorm:"not null;index"`
	Overview       string         `json:"overview" gorm:"type:text"`
	ReleaseDate    string         `json:"release_date"`
	PosterPath     string         `json:"poster_path"`
	BackdropPath   string         `json:"backdrop_path"`
	Rate           float64        `json:"rate" gorm:"default:0"`
	VoteCount      int            `json:"vote_count" gorm:"default:0"`
	Popularity     float64        `json:"popularity" gorm:"default:0"`
	TMDBID         int            `json:"tmdb_id" gorm:"column:tmdb_id;index"`
	Trend          bool           `json:"trend" gorm:"default:false"`
	ChosenHomePage bool           `json:"chosen_home_page" gorm:"default:false"`
	Genres         []Genre        `json:"genres" gorm:"many2many:movie_genres;"`
	Countries      []Country      `json:"countries" gorm:"many2many:movie_countries;"`
	Languages      []Language     `json:"languages" gorm:"many2many:movie_languages;"`
	DownloadFiles  []DownloadFile `json:"download_files" gorm:"foreignKey:MovieID"`
}

func (Movie) TableName() string {
	return "movies"
}

// DownloadFile is a single downloadable encode of a movie or an episode.
type DownloadFile struct {
	gorm.Model
	MovieID   *uint  `json:"movie_id" gorm:"index"`
	EpisodeID *uint  `json:"episode_id" gorm:"index"`
	Quality   int    `json:"quality"` // 480, 720, 1080, ...
	Source    string `json:"source"`  // WEB-DL, BluRay, ...
	URL       string `json:"url" gorm:"not null"`
}

func (DownloadFile) TableName() string {
	return "download_files"
}
