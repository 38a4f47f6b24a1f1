package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/111AHMED/touskiebackend/auth"
	"github.com/111AHMED/touskiebackend/config"
	"github.com/111AHMED/touskiebackend/controllers"
	"github.com/111AHMED/touskiebackend/database"
	"github.com/111AHMED/touskiebackend/middleware"
	"github.com/111AHMED/touskiebackend/providers"
	"github.com/111AHMED/touskiebackend/utils"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()
	db, err := database.Connect(ctx, cfg.MongoURI, cfg.DatabaseName)
	if err != nil {
		log.Fatal(err)
	}
	defer func() {
		if err := db.Disconnect(context.Background()); err != nil {
			log.Println("mongo disconnect:", err)
		}
	}()

	userStore := database.NewUserStore(db)
	roleStore := database.NewRoleStore(db)

	// seeding roles and staff users
	if err := utils.SeedRoles(ctx, db.Collection("roles")); err != nil {
		log.Fatal(err)
	}
	if err := utils.SeedStaffUsers(ctx, db.Collection("users"), roleStore, cfg.AdminEmails, cfg.CreatorEmails); err != nil {
		log.Fatal(err)
	}

	codec, err := auth.NewCodec(
		cfg.AccessSecretKey, cfg.AccessAlgorithm,
		cfg.RefreshSecretKey, cfg.RefreshAlgorithm,
		cfg.AccessTTL(), cfg.RefreshTTL(),
	)
	if err != nil {
		log.Fatal(err)
	}
	reconciler := auth.NewReconciler(userStore, roleStore, codec)
	sessions := auth.NewSessionManager(reconciler, userStore, codec)

	webProviders := providers.Registry{
		providers.Google:   providers.NewGoogleProvider(cfg.GoogleClientID, cfg.GoogleClientSecret, cfg.GoogleRedirectURI),
		providers.Facebook: providers.NewFacebookProvider(cfg.FacebookClientID, cfg.FacebookClientSecret, cfg.FacebookRedirectURI),
	}
	mobileProviders := providers.Registry{
		providers.Google:   providers.NewGoogleProvider(cfg.GoogleClientID, cfg.GoogleClientSecret, cfg.GoogleRedirectURIMobile),
		providers.Facebook: providers.NewFacebookProvider(cfg.FacebookClientID, cfg.FacebookClientSecret, cfg.FacebookRedirectURIMobile),
	}

	v := utils.NewImageValidator(cfg.AllowedFileExts, cfg.AllowedFileMimeTypes, cfg.MaxUploadSizeMB)

	r := gin.New()

	allowedOrigins := map[string]bool{}
	for _, origin := range cfg.AllowedOrigins {
		if origin != "" {
			allowedOrigins[origin] = true
		}
	}
	log.Printf("Allowed origins: %v", allowedOrigins)
	r.Use(cors.New(cors.Config{
		AllowOriginFunc: func(origin string) bool {
			return allowedOrigins[origin]
		},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(gin.Logger())
	r.Use(gin.Recovery())

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
		})
	})

	web := r.Group("/api/v1/auth")
	{
		web.GET("/login/:provider", controllers.Login(webProviders, cfg))
		web.GET("/callback/:provider", controllers.Callback(sessions, webProviders, roleStore, cfg))
		web.POST("/refresh", controllers.Refresh(sessions, roleStore, cfg))
		web.POST("/logout", controllers.Logout(sessions, cfg))
		web.GET("/session", controllers.Session(sessions, roleStore))
		web.GET("/decode-token", controllers.DecodeToken(codec))

		authed := web.Group("")
		authed.Use(middleware.AuthMiddleware(codec))
		{
			authed.PUT("/profile", controllers.UpdateProfile(userStore, roleStore))
			authed.PUT("/profile/picture", controllers.UploadProfilePicture(userStore, cfg, v))
		}
	}

	mobile := r.Group("/api/v1/auth/mobile")
	{
		mobile.GET("/login/:provider", controllers.MobileLogin(mobileProviders))
		mobile.GET("/callback/:provider", controllers.MobileCallback(sessions, mobileProviders, roleStore))
		mobile.POST("/refresh", controllers.MobileRefresh(sessions))
		mobile.POST("/logout", controllers.MobileLogout(sessions))
		mobile.GET("/me", controllers.MobileMe(sessions, roleStore))
		mobile.GET("/decode-token", controllers.DecodeToken(codec))
	}

	// Start server on port 8080 (default)
	r.Run()
}
