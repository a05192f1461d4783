package routes

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/inkwellhq/inkwell/config"
	"github.com/inkwellhq/inkwell/controllers"
	"github.com/inkwellhq/inkwell/middleware"
	"github.com/inkwellhq/inkwell/services"
	"github.com/inkwellhq/inkwell/utils"
)

// SetupRouter wires middleware, services and controllers into the gin engine.
func SetupRouter(db *gorm.DB) *gin.Engine {
	cfg := config.Get()

	gin.SetMode(cfg.GinMode)
	router := gin.New()

	ginLogger, err := utils.NewRollingFileLogger(cfg.GinPath, cfg.LogLevel, cfg.LogMaxSizeMB, cfg.LogMaxBackups, cfg.LogMaxAgeDays, cfg.LogCompress)
	if err == nil {
		router.Use(utils.Ginzap(ginLogger, time.RFC3339, true))
		router.Use(utils.RecoveryWithZap(ginLogger, true))
	} else {
		router.Use(gin.Logger(), gin.Recovery())
	}

	corsCfg := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) == 1 && cfg.AllowedOrigins[0] == "*" {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = cfg.AllowedOrigins
	}
	corsCfg.AllowHeaders = append(corsCfg.AllowHeaders, "Authorization")
	router.Use(cors.New(corsCfg))

	notifier := services.NewNotificationService(db)
	interactions := services.NewInteractionService(db, notifier)
	feeds := services.NewFeedService(db)
	social := services.NewSocialService(db, notifier)
	reports := services.NewReportService(db, notifier)

	auth := controllers.NewAuthController(db, social)
	blogs := controllers.NewBlogController(db, feeds, interactions)
	comments := controllers.NewCommentController(interactions)
	notifications := controllers.NewNotificationController(notifier)
	reportCtrl := controllers.NewReportController(reports)
	admin := controllers.NewAdminController(db)

	router.Static("/uploads", cfg.UploadDir)

	router.GET("/health", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api/v1")
	api.Use(middleware.RateLimitMiddleware())
	{
		authGroup := api.Group("/auth")
		{
			authGroup.POST("/register", auth.Register)
			authGroup.POST("/login", auth.Login)
			authGroup.GET("/captcha", auth.Captcha)
			authGroup.GET("/oauth/:provider", auth.OAuthRedirect)
			authGroup.GET("/oauth/:provider/callback", auth.OAuthCallback)
			authGroup.POST("/logout", middleware.AuthRequired(), auth.Logout)
			authGroup.GET("/me", middleware.AuthRequired(), auth.Me)
			authGroup.PUT("/me", middleware.AuthRequired(), auth.UpdateProfile)
		}

		users := api.Group("/users")
		{
			users.GET("/:username", middleware.AuthOptional(), auth.GetProfile)
			users.GET("/:username/blogs", middleware.AuthOptional(), blogs.ByUser)
			users.POST("/:username/follow", middleware.AuthRequired(), auth.ToggleFollow)
		}

		blogGroup := api.Group("/blogs")
		{
			blogGroup.GET("", middleware.AuthOptional(), blogs.List)
			blogGroup.GET("/feed", middleware.AuthOptional(), blogs.ForYou)
			blogGroup.GET("/following", middleware.AuthRequired(), blogs.Following)
			blogGroup.GET("/bookmarked", middleware.AuthRequired(), blogs.Bookmarked)
			blogGroup.GET("/:id", middleware.AuthOptional(), blogs.Get)
			blogGroup.POST("", middleware.AuthRequired(), blogs.Create)
			blogGroup.PUT("/:id", middleware.AuthRequired(), blogs.Update)
			blogGroup.DELETE("/:id", middleware.AuthRequired(), blogs.Delete)
			blogGroup.POST("/:id/like", middleware.AuthRequired(), blogs.ToggleLike)
			blogGroup.POST("/:id/bookmark", middleware.AuthRequired(), blogs.ToggleBookmark)
			blogGroup.GET("/:id/comments", middleware.AuthOptional(), comments.List)
			blogGroup.POST("/:id/comments", middleware.AuthRequired(), comments.Create)
		}

		commentGroup := api.Group("/comments", middleware.AuthRequired())
		{
			commentGroup.DELETE("/:id", comments.Delete)
			commentGroup.POST("/:id/like", comments.ToggleLike)
		}

		api.POST("/uploads", middleware.AuthRequired(), blogs.Upload)

		notificationGroup := api.Group("/notifications", middleware.AuthRequired())
		{
			notificationGroup.GET("", notifications.List)
			notificationGroup.PUT("/:id/read", notifications.MarkRead)
			notificationGroup.PUT("/read-all", notifications.MarkAllRead)
		}

		api.POST("/reports", middleware.AuthRequired(), reportCtrl.Create)

		adminGroup := api.Group("/admin", middleware.AuthRequired(), middleware.AdminRequired())
		{
			adminGroup.GET("/reports", reportCtrl.List)
			adminGroup.PUT("/reports/:id", reportCtrl.UpdateStatus)
			adminGroup.GET("/users", admin.ListUsers)
			adminGroup.GET("/blogs", admin.ListBlogs)
			adminGroup.PUT("/users/:id/role", admin.UpdateUserRole)
			adminGroup.GET("/stats", admin.Stats)
		}
	}

	router.NoRoute(func(ctx *gin.Context) {
		utils.Error(ctx, http.StatusNotFound, "route not found")
	})

	return router
}
