package controllers

import (
	"fmt"
	"log"
	"net/http"

	"github.com/111AHMED/touskiebackend/auth"
	"github.com/111AHMED/touskiebackend/dto"
	"github.com/111AHMED/touskiebackend/providers"
	"github.com/111AHMED/touskiebackend/utils"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// The mobile surface shares Session Manager semantics with the web surface
// but delivers credentials in the response body instead of cookies.

func MobileLogin(reg providers.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		provider, ok := reg.Get(c.Param("provider"))
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "unknown provider"})
			return
		}
		c.Redirect(http.StatusFound, provider.AuthCodeURL(uuid.New().String()))
	}
}

// MobileCallback returns both credentials and the user profile as JSON.
func MobileCallback(sm *auth.SessionManager, reg providers.Registry, roleStore auth.RoleStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := uuid.New().String()
		ctx := c.Request.Context()

		provider, ok := reg.Get(c.Param("provider"))
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "unknown provider"})
			return
		}

		code := c.Query("code")
		if code == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "missing code parameter"})
			return
		}

		token, err := provider.Exchange(ctx, code)
		if err != nil {
			log.Printf("[%s] %s mobile exchange failed: %v", requestID, provider.Name(), err)
			abortWithAuthError(c, fmt.Errorf("%w: %v", auth.ErrProviderExchangeFailed, err))
			return
		}

		claims, err := provider.FetchUserInfo(ctx, token)
		if err != nil {
			log.Printf("[%s] %s mobile userinfo failed: %v", requestID, provider.Name(), err)
			abortWithAuthError(c, fmt.Errorf("%w: %v", auth.ErrProviderExchangeFailed, err))
			return
		}

		pair, err := sm.Login(ctx, provider.Name(), *claims)
		if err != nil {
			abortWithAuthError(c, err)
			return
		}

		payload, err := userPayload(ctx, roleStore, pair.User)
		if err != nil {
			abortWithAuthError(c, err)
			return
		}

		log.Printf("[%s] %s mobile auth successful for %s", requestID, provider.Name(), pair.User.Email)
		c.JSON(http.StatusOK, gin.H{
			"access_token":  pair.AccessToken,
			"refresh_token": pair.RefreshToken,
			"token_type":    "bearer",
			"user":          payload,
		})
	}
}

// MobileRefresh rotates the pair using a refresh token from the request body,
// with the cookie as a fallback source.
func MobileRefresh(sm *auth.SessionManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body dto.RefreshTokenDTO
		_ = c.ShouldBindJSON(&body)

		presented := body.RefreshToken
		if presented == "" {
			presented, _ = c.Cookie(utils.RefreshCookieName)
		}

		pair, err := sm.Refresh(c.Request.Context(), presented)
		if err != nil {
			abortWithAuthError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"access_token":  pair.AccessToken,
			"refresh_token": pair.RefreshToken,
			"token_type":    "bearer",
		})
	}
}

// MobileLogout clears the stored refresh credential using a token from the
// request body.
func MobileLogout(sm *auth.SessionManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body dto.RefreshTokenDTO
		_ = c.ShouldBindJSON(&body)

		if err := sm.Logout(c.Request.Context(), body.RefreshToken); err != nil {
			abortWithAuthError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"detail": "Successfully logged out"})
	}
}

// MobileMe returns the user for an access token passed as a query parameter.
func MobileMe(sm *auth.SessionManager, roleStore auth.RoleStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		accessToken := c.Query("token")
		user, err := sm.CurrentUser(ctx, accessToken)
		if err != nil {
			abortWithAuthError(c, err)
			return
		}

		payload, err := userPayload(ctx, roleStore, user)
		if err != nil {
			abortWithAuthError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"access_token": accessToken,
			"token_type":   "bearer",
			"user":         payload,
		})
	}
}
