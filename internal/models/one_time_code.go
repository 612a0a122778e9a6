package models

import (
	"time"

	"gorm.io/gorm"
)

// CodePurpose defines which flow a one-time code belongs to. Codes are
// never valid across purposes.
type CodePurpose string

const (
	CodePurposeEmailVerification CodePurpose = "email_verification"
	CodePurposePasswordReset     CodePurpose = "password_reset"
)

// OneTimeCode is a single issuance of a short-lived 6-digit code for one
// purpose. Rows are kept forever; expiry is derived from ExpiresAt at read
// time, never stored as a status.
type OneTimeCode struct {
	gorm.Model
	UserID    uint        `json:"user_id" gorm:"index;not null;constraint:OnDelete:CASCADE"`
	User      User        `json:"-"`
	Code      string      `json:"code" gorm:"size:6;not null"`
	Purpose   CodePurpose `json:"purpose" gorm:"size:32;not null"`
	ExpiresAt time.Time   `json:"expires_at" gorm:"not null"`
	Used      bool        `json:"used" gorm:"default:false"`
}

func (OneTimeCode) TableName() string {
	return "one_time_codes"
}

// IsValid reports whether the code can still be consumed at the given
// instant.
func (c *OneTimeCode) IsValid(now time.Time) bool {
	return !c.Used && now.Before(c.ExpiresAt)
}
