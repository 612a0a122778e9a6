package models

import (
	"gorm.io/gorm"
)

type Series struct {
	gorm.Model
	Title            string     `json:"title" gorm:"not null;index"`
	Overview         string     `json:"overview" gorm:"type:text"`
	FirstAirDate     string     `json:"first_air_date"`
	PosterPath       string     `json:"poster_path"`
	BackdropPath     string     `json:"backdrop_path"`
	Rate             float64    `json:"rate" gorm:"default:0"`
	VoteCount        int        `json:"vote_count" gorm:"default:0"`
	Popularity       float64    `json:"popularity" gorm:"default:0"`
	TMDBID           int        `json:"tmdb_id" gorm:"column:tmdb_id;index"`
	Status           string     `json:"status"` // Running, Ended
	NumberOfSeasons  int        `json:"number_of_seasons" gorm:"default:0"`
	NumberOfEpisodes int        `json:"number_of_episodes" gorm:"default:0"`
	Trend            bool       `json:"trend" gorm:"default:false"`
	ChosenHomePage   bool       `json:"chosen_home_page" gorm:"default:false"`
	Genres           []Genre    `json:"genres" gorm:"many2many:series_genres;"`
	Countries        []Country  `json:"countries" gorm:"many2many:series_countries;"`
	Languages        []Language `json:"languages" gorm:"many2many:series_languages;"`
	Seasons          []Season   `json:"seasons" gorm:"foreignKey:SeriesID"`
}

func (Series) TableName() string {
	return "series"
}

type Season struct {
	gorm.Model
	SeriesID uint      `json:"series_id" gorm:"index;not null"`
	Number   int       `json:"number" gorm:"not null"`
	Title    string    `json:"title"`
	Episodes []Episode `json:"episodes" gorm:"foreignKey:SeasonID"`
}

func (Season) TableName() string {
	return "seasons"
}

type Episode struct {
	gorm.Model
	SeasonID      uint           `json:"season_id" gorm:"index;not null"`
	Number        int            `json:"number" gorm:"not null"`
	Title         string         `json:"title"`
	AirDate       string         `json:"air_date"`
	DownloadFiles []DownloadFile `json:"download_files" gorm:"foreignKey:EpisodeID"`
}

func (Episode) TableName() string {
	return "episodes"
}
