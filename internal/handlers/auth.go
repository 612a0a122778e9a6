package handlers

import (
	"errors"
	"log"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/dramoir/dramoir-backend/internal/codes"
	"github.com/dramoir/dramoir-backend/internal/models"
	"github.com/dramoir/dramoir-backend/internal/services"
	"github.com/dramoir/dramoir-backend/pkg/utils"
)

type RegisterInput struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type VerifyEmailInput struct {
	Email string `json:"email" binding:"required,email"`
	Code  string `json:"code" binding:"required,len=6"`
}

type ForgotPasswordInput struct {
	Email string `json:"email" binding:"required,email"`
}

type ResetPasswordInput struct {
	Email       string `json:"email" binding:"required,email"`
	Code        string `json:"code" binding:"required,len=6"`
	NewPassword string `json:"newPassword" binding:"required,min=6"`
}

type RefreshInput struct {
	Refresh string `json:"refresh" binding:"required"`
}

// Register creates an unverified account, issues a verification code and
// queues its delivery. The code itself is never part of the response.
func Register(db *gorm.DB, codeMgr *codes.Manager, mailer *services.Mailer) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input RegisterInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}

		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
		if err != nil {
			c.JSON(500, gin.H{"error": "Failed to hash password"})
			return
		}

		user := models.User{
			Username:     input.Username,
			Email:        input.Email,
			PasswordHash: string(hashedPassword),
			IsVerified:   false,
		}

		if result := db.Create(&user); result.Error != nil {
			c.JSON(400, gin.H{"error": "Could not create account with these details"})
			return
		}

		code, err := codeMgr.Issue(user.ID, models.CodePurposeEmailVerification)
		if err != nil {
			c.JSON(500, gin.H{"error": "Failed to generate verification code"})
			return
		}

		mailer.EnqueueVerificationCode(user.Email, code)

		c.JSON(201, gin.H{
			"message": "User registered successfully. Please check your email for verification code.",
			"email":   user.Email,
		})
	}
}

// VerifyEmail consumes a verification code and flips the account to
// verified. The consume and the flag update commit in one transaction.
func VerifyEmail(db *gorm.DB, codeMgr *codes.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input VerifyEmailInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}

		var user models.User
		if result := db.Where("email = ?", input.Email).First(&user); result.Error != nil {
			// Same response as a bad code, no account enumeration
			c.JSON(400, gin.H{"error": "Invalid or expired code"})
			return
		}

		err := db.Transaction(func(tx *gorm.DB) error {
			if _, err := codeMgr.Consume(tx, user.ID, input.Code, models.CodePurposeEmailVerification); err != nil {
				return err
			}
			// Idempotent for already-verified accounts; never un-verifies
			return tx.Model(&models.User{}).Where("id = ?", user.ID).Update("is_verified", true).Error
		})
		if err != nil {
			if errors.Is(err, codes.ErrInvalidCode) {
				c.JSON(400, gin.H{"error": "Invalid or expired code"})
				return
			}
			c.JSON(500, gin.H{"error": "Failed to verify email"})
			return
		}

		user.IsVerified = true
		token, err := utils.GenerateToken(&user)
		if err != nil {
			c.JSON(500, gin.H{"error": "Failed to generate token"})
			return
		}
		refresh, err := utils.GenerateRefreshToken(&user)
		if err != nil {
			c.JSON(500, gin.H{"error": "Failed to generate token"})
			return
		}

		c.JSON(200, gin.H{
			"message": "Email verified successfully",
			"access":  token,
			"refresh": refresh,
		})
	}
}

func Login(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input LoginInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}

		var user models.User
		if result := db.Where("email = ?", input.Email).First(&user); result.Error != nil {
			c.JSON(401, gin.H{"error": "Invalid credentials"})
			return
		}

		if err := user.CheckPassword(input.Password); err != nil {
			c.JSON(401, gin.H{"error": "Invalid credentials"})
			return
		}

		if !user.IsVerified {
			c.JSON(403, gin.H{"error": "Please verify your email first"})
			return
		}

		token, err := utils.GenerateToken(&user)
		if err != nil {
			c.JSON(500, gin.H{"error": "Failed to generate token"})
			return
		}
		refresh, err := utils.GenerateRefreshToken(&user)
		if err != nil {
			c.JSON(500, gin.H{"error": "Failed to generate token"})
			return
		}

		c.JSON(200, gin.H{
			"access":  token,
			"refresh": refresh,
			"user": gin.H{
				"id":       user.ID,
				"email":    user.Email,
				"username": user.Username,
			},
		})
	}
}

// RefreshToken exchanges a valid refresh token for a new access token.
func RefreshToken(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input RefreshInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}

		userID, err := utils.ParseRefreshToken(input.Refresh)
		if err != nil {
			c.JSON(401, gin.H{"error": "Invalid token"})
			return
		}

		var user models.User
		if result := db.First(&user, userID); result.Error != nil {
			c.JSON(401, gin.H{"error": "Invalid token"})
			return
		}

		token, err := utils.GenerateToken(&user)
		if err != nil {
			c.JSON(500, gin.H{"error": "Failed to generate token"})
			return
		}

		c.JSON(200, gin.H{"access": token})
	}
}

// ForgotPassword issues a reset code for the account behind the email.
// The response is identical whether or not the account exists.
func ForgotPassword(db *gorm.DB, codeMgr *codes.Manager, mailer *services.Mailer) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input ForgotPasswordInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}

		var user models.User
		if result := db.Where("email = ?", input.Email).First(&user); result.Error != nil {
			// Keep the address out of the logs too
			log.Printf("Password reset requested for an unknown account")
			c.JSON(200, gin.H{"message": "If the email is registered, a reset code has been sent."})
			return
		}

		code, err := codeMgr.Issue(user.ID, models.CodePurposePasswordReset)
		if err != nil {
			c.JSON(500, gin.H{"error": "Failed to generate reset code"})
			return
		}

		mailer.EnqueuePasswordResetCode(user.Email, code)

		c.JSON(200, gin.H{"message": "If the email is registered, a reset code has been sent."})
	}
}

// ResetPassword consumes a reset code and replaces the password hash. Both
// writes commit in one transaction, never one without the other.
func ResetPassword(db *gorm.DB, codeMgr *codes.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input ResetPasswordInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}

		var user models.User
		if result := db.Where("email = ?", input.Email).First(&user); result.Error != nil {
			c.JSON(400, gin.H{"error": "Invalid or expired code"})
			return
		}

		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.NewPassword), bcrypt.DefaultCost)
		if err != nil {
			c.JSON(500, gin.H{"error": "Failed to hash password"})
			return
		}

		err = db.Transaction(func(tx *gorm.DB) error {
			if _, err := codeMgr.Consume(tx, user.ID, input.Code, models.CodePurposePasswordReset); err != nil {
				return err
			}
			return tx.Model(&models.User{}).Where("id = ?", user.ID).
				Update("password_hash", string(hashedPassword)).Error
		})
		if err != nil {
			if errors.Is(err, codes.ErrInvalidCode) {
				c.JSON(400, gin.H{"error": "Invalid or expired code"})
				return
			}
			c.JSON(500, gin.H{"error": "Failed to reset password"})
			return
		}

		c.JSON(200, gin.H{"message": "Password reset successful"})
	}
}
