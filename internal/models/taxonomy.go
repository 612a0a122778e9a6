package models

import (
	"gorm.io/gorm"
)

// Genre, Country and Language are lookup tables shared by movies and
// series through join tables.

type Genre struct {
	gorm.Model
	Name   string   `json:"name" gorm:"unique;not null"`
	Movies []Movie  `json:"movies,omitempty" gorm:"many2many:movie_genres;"`
	Series []Series `json:"series,omitempty" gorm:"many2many:series_genres;"`
}

func (Genre) TableName() string {
	return "genres"
}

type Country struct {
	gorm.Model
	Name   string   `json:"name" gorm:"unique;not null"`
	Movies []Movie  `json:"movies,omitempty" gorm:"many2many:movie_countries;"`
	Series []Series `json:"series,omitempty" gorm:"many2many:series_countries;"`
}

func (Country) TableName() string {
	return "countries"
}

type Language struct {
	gorm.Model
	Name   string   `json:"name" gorm:"unique;not null"`
	Movies []Movie  `json:"movies,omitempty" gorm:"many2many:movie_languages;"`
	Series []Series `json:"series,omitempty" gorm:"many2many:series_languages;"`
}

func (Language) TableName() string {
	return "languages"
}
