package controllers

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"

	"github.com/111AHMED/touskiebackend/auth"
	"github.com/111AHMED/touskiebackend/config"
	"github.com/111AHMED/touskiebackend/providers"
	"github.com/111AHMED/touskiebackend/utils"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Login starts the OAuth flow for the web surface. The frontend redirect URI
// is carried through the OAuth state parameter so the callback knows where to
// send the user agent afterwards.
func Login(reg providers.Registry, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		provider, ok := reg.Get(c.Param("provider"))
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "unknown provider"})
			return
		}

		state := c.DefaultQuery("redirect_uri", cfg.FrontendCallbackURI)
		c.Redirect(http.StatusFound, provider.AuthCodeURL(state))
	}
}

// Callback finishes the OAuth flow for the web surface: code exchange,
// userinfo fetch, reconcile + credential issuance, then a 303 redirect to the
// frontend carrying the user profile as a query parameter with both
// credential cookies attached. Every failure collapses into an error
// redirect; this is the one endpoint that never returns a raw error.
func Callback(sm *auth.SessionManager, reg providers.Registry, roleStore auth.RoleStore, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := uuid.New().String()
		ctx := c.Request.Context()

		fail := func(stage string, err error) {
			log.Printf("[%s] %s callback failed at %s: %v", requestID, c.Param("provider"), stage, err)
			c.Redirect(http.StatusSeeOther, cfg.FrontendCallbackURI+"?error=auth_failed")
		}

		provider, ok := reg.Get(c.Param("provider"))
		if !ok {
			fail("lookup", fmt.Errorf("unknown provider %q", c.Param("provider")))
			return
		}

		code := c.Query("code")
		if code == "" {
			fail("code", fmt.Errorf("missing code parameter"))
			return
		}

		token, err := provider.Exchange(ctx, code)
		if err != nil {
			fail("exchange", fmt.Errorf("%w: %v", auth.ErrProviderExchangeFailed, err))
			return
		}

		claims, err := provider.FetchUserInfo(ctx, token)
		if err != nil {
			fail("userinfo", fmt.Errorf("%w: %v", auth.ErrProviderExchangeFailed, err))
			return
		}

		pair, err := sm.Login(ctx, provider.Name(), *claims)
		if err != nil {
			fail("login", err)
			return
		}

		payload, err := userPayload(ctx, roleStore, pair.User)
		if err != nil {
			fail("payload", err)
			return
		}
		userJSON, err := json.Marshal(payload)
		if err != nil {
			fail("payload", err)
			return
		}

		frontendRedirect := c.Query("state")
		if frontendRedirect == "" {
			frontendRedirect = cfg.FrontendCallbackURI
		}
		redirectURL := frontendRedirect + "?user=" + url.QueryEscape(string(userJSON))

		// Cookies must ride on the redirect response itself for the
		// browser to pick them up.
		utils.SetSessionCookies(c, cfg, pair.AccessToken, pair.RefreshToken)
		log.Printf("[%s] %s auth successful for %s", requestID, provider.Name(), pair.User.Email)
		c.Redirect(http.StatusSeeOther, redirectURL)
	}
}

// Refresh rotates the credential pair using the refresh token cookie.
func Refresh(sm *auth.SessionManager, roleStore auth.RoleStore, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		presented, _ := c.Cookie(utils.RefreshCookieName)
		pair, err := sm.Refresh(ctx, presented)
		if err != nil {
			abortWithAuthError(c, err)
			return
		}

		payload, err := userPayload(ctx, roleStore, pair.User)
		if err != nil {
			abortWithAuthError(c, err)
			return
		}

		utils.SetSessionCookies(c, cfg, pair.AccessToken, pair.RefreshToken)
		c.JSON(http.StatusOK, gin.H{
			"access_token": pair.AccessToken,
			"token_type":   "bearer",
			"user":         payload,
		})
	}
}

// Logout clears the stored refresh credential using the cookie. The cookies
// are cleared client-side even when validation fails, so a browser never
// keeps credentials the server already considers dead.
func Logout(sm *auth.SessionManager, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		presented, _ := c.Cookie(utils.RefreshCookieName)
		utils.ClearSessionCookies(c, cfg)

		if err := sm.Logout(c.Request.Context(), presented); err != nil {
			abortWithAuthError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"detail": "Successfully logged out"})
	}
}

// Session returns the current user based on the access_token cookie.
func Session(sm *auth.SessionManager, roleStore auth.RoleStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		accessToken, _ := c.Cookie(utils.AccessCookieName)
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
		c.JSON(http.StatusOK, gin.H{"user": payload})
	}
}

// DecodeToken decodes an access token and returns its claims.
func DecodeToken(codec *auth.Codec) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := codec.DecodeAccess(c.Query("token"))
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"user_data": claims})
	}
}
