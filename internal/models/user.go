package models

import (
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type User struct {
	gorm.Model            // Embeds ID, CreatedAt, UpdatedAt, DeletedAt
	Username       string `gorm:"column:username;unique;not null"`
	Email          string `gorm:"column:email;unique;not null"`
	Password       string `gorm:"-"` // Plaintext input only, never persisted
	PasswordHash   string `gorm:"column:password_hash;not null"`
	IsVerified     bool   `gorm:"column:is_verified;default:false"`
	ProfilePicture string `gorm:"column:profile_picture"`
}

// TableName specifies the table name
func (User) TableName() string {
	return "users"
}

func (u *User) HashPassword() error {
	if u.Password == "" {
		return nil
	}
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hashedPassword)
	return nil
}

func (u *User) CheckPassword(password string) error {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password))
}
