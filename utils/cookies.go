package utils

import (
	"net/http"
	"time"

	"github.com/111AHMED/touskiebackend/config"
	"github.com/gin-gonic/gin"
)

const (
	AccessCookieName  = "access_token"
	RefreshCookieName = "refresh_token"
)

// SetSessionCookies attaches both credentials as HttpOnly, SameSite=Lax
// cookies with lifetimes matching each credential class. Secure only in
// production so the flow still works over plain http in development.
func SetSessionCookies(c *gin.Context, cfg *config.Config, accessToken, refreshToken string) {
	secure := cfg.IsProduction()
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     AccessCookieName,
		Value:    accessToken,
		Path:     "/",
		Domain:   cfg.CookieDomain,
		MaxAge:   int(cfg.AccessTTL() / time.Second),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     RefreshCookieName,
		Value:    refreshToken,
		Path:     "/",
		Domain:   cfg.CookieDomain,
		MaxAge:   int(cfg.RefreshTTL() / time.Second),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func ClearSessionCookies(c *gin.Context, cfg *config.Config) {
	secure := cfg.IsProduction()
	for _, name := range []string{AccessCookieName, RefreshCookieName} {
		http.SetCookie(c.Writer, &http.Cookie{
			Name:     name,
			Value:    "",
			Path:     "/",
			Domain:   cfg.CookieDomain,
			MaxAge:   -1,
			HttpOnly: true,
			Secure:   secure,
			SameSite: http.SameSiteLaxMode,
		})
	}
}
