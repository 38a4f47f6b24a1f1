package controllers

import (
	"net/http"
	"time"

	"github.com/111AHMED/touskiebackend/auth"
	"github.com/111AHMED/touskiebackend/config"
	"github.com/111AHMED/touskiebackend/dto"
	"github.com/111AHMED/touskiebackend/models"
	"github.com/111AHMED/touskiebackend/utils"
	"github.com/gin-gonic/gin"
)

func currentEmail(c *gin.Context) (string, bool) {
	emailVal, ok := c.Get("email")
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing auth context"})
		return "", false
	}
	return emailVal.(string), true
}

// UpdateProfile applies a partial profile update for the authenticated user.
func UpdateProfile(users auth.UserStore, roleStore auth.RoleStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		email, ok := currentEmail(c)
		if !ok {
			return
		}

		var body dto.UpdateProfileDTO
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		ctx := c.Request.Context()
		now := time.Now().UTC()
		update := body.ToUserUpdate()
		update.UpdatedAt = &now

		if _, err := users.Update(ctx, email, update); err != nil {
			abortWithAuthError(c, err)
			return
		}

		user, err := users.FindByEmail(ctx, email)
		if err != nil {
			abortWithAuthError(c, err)
			return
		}
		if user == nil {
			abortWithAuthError(c, auth.ErrUserNotFound)
			return
		}

		payload, err := userPayload(ctx, roleStore, user)
		if err != nil {
			abortWithAuthError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"detail": "Profile updated successfully",
			"user":   payload,
		})
	}
}

// UploadProfilePicture validates the uploaded image, stores it in GCS and
// writes the public URL to the user's picture field.
func UploadProfilePicture(users auth.UserStore, cfg *config.Config, v *utils.FileValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		email, ok := currentEmail(c)
		if !ok {
			return
		}
		if cfg.GCSBucket == "" {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "storage not configured"})
			return
		}

		fileHeader, err := c.FormFile("file")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "missing file"})
			return
		}
		if _, err := v.ValidateFile(fileHeader); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		ctx := c.Request.Context()
		user, err := users.FindByEmail(ctx, email)
		if err != nil {
			abortWithAuthError(c, err)
			return
		}
		if user == nil {
			abortWithAuthError(c, auth.ErrUserNotFound)
			return
		}

		client, err := utils.NewGCSClient(ctx, cfg.CredentialsFileLocation)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "storage client failed"})
			return
		}
		defer client.Close()

		publicURL, err := utils.UploadAvatarToGCS(ctx, client, cfg.GCSBucket, user.ID.Hex(), fileHeader)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		now := time.Now().UTC()
		update := models.UserUpdate{Picture: &publicURL, UpdatedAt: &now}
		if _, err := users.Update(ctx, email, update); err != nil {
			abortWithAuthError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"picture": publicURL})
	}
}
