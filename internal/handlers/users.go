package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/dramoir/dramoir-backend/internal/models"
	"github.com/dramoir/dramoir-backend/internal/services"
)

// GetProfile retrieves the user's profile
func GetProfile(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userId := c.GetUint("userId")

		var user models.User
		if err := db.First(&user, userId).Error; err != nil {
			c.JSON(404, gin.H{"error": "User not found"})
			return
		}

		c.JSON(200, gin.H{
			"id":             user.ID,
			"email":          user.Email,
			"username":       user.Username,
			"isVerified":     user.IsVerified,
			"profilePicture": services.GetImageURL(user.ProfilePicture),
			"joinedAt":       user.CreatedAt,
		})
	}
}

// UpdateProfile updates the user's profile information
func UpdateProfile(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userId := c.GetUint("userId")

		var input struct {
			Username *string `json:"username"`
		}

		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}

		var user models.User
		if err := db.First(&user, userId).Error; err != nil {
			c.JSON(404, gin.H{"error": "User not found"})
			return
		}

		if input.Username != nil {
			user.Username = *input.Username
		}

		if err := db.Save(&user).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to update profile"})
			return
		}

		c.JSON(200, gin.H{
			"id":             user.ID,
			"email":          user.Email,
			"username":       user.Username,
			"isVerified":     user.IsVerified,
			"profilePicture": services.GetImageURL(user.ProfilePicture),
		})
	}
}

// UploadProfilePicture stores a new profile picture and replaces the old
// one.
func UploadProfilePicture(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userId := c.GetUint("userId")

		file, err := c.FormFile("picture")
		if err != nil {
			c.JSON(400, gin.H{"error": "Picture file is required"})
			return
		}

		var user models.User
		if err := db.First(&user, userId).Error; err != nil {
			c.JSON(404, gin.H{"error": "User not found"})
			return
		}

		path, err := services.UploadImage(file, "profile_pictures")
		if err != nil {
			c.JSON(500, gin.H{"error": "Failed to upload picture"})
			return
		}

		oldPicture := user.ProfilePicture
		user.ProfilePicture = path
		if err := db.Save(&user).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to update profile"})
			return
		}

		if oldPicture != "" {
			// Best effort, a stale file is not worth failing the request
			_ = services.DeleteImage(oldPicture)
		}

		c.JSON(200, gin.H{"profilePicture": services.GetImageURL(path)})
	}
}
