package models

import (
	"gorm.io/gorm"
)

type ContentType string

const (
	ContentTypeMovie  ContentType = "movie"
	ContentTypeSeries ContentType = "series"
)

// Favorite is a user's bookmark of a movie or series. The content fields
// are denormalized copies so the list renders without joining the catalog.
type Favorite struct {
	gorm.Model
	UserID      uint        `json:"user_id" gorm:"uniqueIndex:idx_user_content;not null"`
	ContentID   uint        `json:"content_id" gorm:"uniqueIndex:idx_user_content;not null"`
	ContentType ContentType `json:"content_type" gorm:"uniqueIndex:idx_user_content;size:10;not null"`
	Title       string      `json:"title"`
	PosterPath  string      `json:"poster_path"`
	Overview    string      `json:"overview" gorm:"type:text"`
	Rate        float64     `json:"rate" gorm:"default:0"`
}

func (Favorite) TableName() string {
	return "favorites"
}
