package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/111AHMED/touskiebackend/auth"
	"github.com/111AHMED/touskiebackend/models"
	"github.com/gin-gonic/gin"
)

// abortWithAuthError maps the session-lifecycle error taxonomy onto HTTP
// statuses. Credential problems are client errors; store and provider
// failures are server errors and are never retried here.
func abortWithAuthError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, auth.ErrMissingCredential):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing refresh token"})
	case errors.Is(err, auth.ErrInvalidCredential):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
	case errors.Is(err, auth.ErrRevokedCredential):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid refresh token"})
	case errors.Is(err, auth.ErrUserNotFound):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
	case errors.Is(err, auth.ErrStoreUnavailable):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "service unavailable"})
	case errors.Is(err, auth.ErrProviderExchangeFailed):
		c.JSON(http.StatusBadGateway, gin.H{"error": "provider exchange failed"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

// userPayload serializes a user for responses: the refresh credential is
// stripped (json:"-") and role ids are expanded into role documents.
func userPayload(ctx context.Context, roleStore auth.RoleStore, user *models.User) (gin.H, error) {
	data, err := json.Marshal(user)
	if err != nil {
		return nil, err
	}
	payload := gin.H{}
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, err
	}

	roles, err := roleStore.FindByIDs(ctx, user.Roles)
	if err != nil {
		return nil, err
	}
	expanded := make([]gin.H, 0, len(roles))
	for _, role := range roles {
		expanded = append(expanded, gin.H{
			"_id":         role.ID.Hex(),
			"name":        role.Name,
			"permissions": role.Permissions,
		})
	}
	payload["roles"] = expanded

	return payload, nil
}
