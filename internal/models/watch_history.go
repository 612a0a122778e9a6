package models

import (
	"gorm.io/gorm"
)

// WatchHistory records that a user opened a movie or series. One row per
// user+content; re-watching refreshes the row instead of adding another.
type WatchHistory struct {
	gorm.Model
	UserID      uint        `json:"user_id" gorm:"uniqueIndex:idx_user_watch;not null"`
	ContentID   uint        `json:"content_id" gorm:"uniqueIndex:idx_user_watch;not null"`
	ContentType ContentType `json:"content_type" gorm:"uniqueIndex:idx_user_watch;size:10;not null"`
	Country     string      `json:"country"`
}

func (WatchHistory) TableName() string {
	return "watch_histories"
}
