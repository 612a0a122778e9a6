package models

import (
	"gorm.io/gorm"
)

// WeeklySchedule marks which day of the week a series airs new episodes.
type WeeklySchedule struct {
	gorm.Model
	SeriesID  uint   `json:"series_id" gorm:"index;not null"`
	Series    Series `json:"series"`
	DayOfWeek string `json:"day_of_week" gorm:"size:16;not null"` // saturday ... friday
	AirTime   string `json:"air_time"`
	IsActive  bool   `json:"is_active" gorm:"default:true"`
}

func (WeeklySchedule) TableName() string {
	return "weekly_schedules"
}

// ShortDescription is a standalone editorial blurb shown on landing pages.
type ShortDescription struct {
	gorm.Model
	Title    string `json:"title"`
	Text     string `json:"text" gorm:"type:text;not null"`
	IsActive bool   `json:"is_active" gorm:"default:true"`
}

func (ShortDescription) TableName() string {
	return "short_descriptions"
}
