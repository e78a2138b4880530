package app

import (
	"habit_coach_backend/docs"
	"habit_coach_backend/internal/config"
	"habit_coach_backend/internal/middleware"

	"habit_coach_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, repos *repositories, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	// 1. 公共路由（无需鉴权）
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/admin/login", c.auth.Login)
	}

	// 2. 机器人服务路由（静态 API Key）
	bot := router.Group("/api")
	bot.Use(middleware.APIKeyMiddleware(cfg), middleware.ActivityMiddleware(repos.user))
	{
		bot.POST("/users", c.user.CreateUser)
		bot.GET("/tg-users/:tgUserId", c.user.GetUser)

		users := bot.Group("/users/:userId")
		{
			users.POST("/avatar", c.user.UploadAvatar)
			users.POST("/habits", c.habit.UpsertHabits)
			users.GET("/habits", c.habit.ListHabits)
			users.POST("/checkins", c.checkin.CreateCheckIn)
			users.GET("/stats", c.stats.GetStats)
			users.GET("/trend", c.stats.GetTrend)
			users.GET("/achievements", c.achievement.ListUserAchievements)
		}
	}

	// 3. 管理后台路由（JWT）
	admin := router.Group("/api/admin")
	admin.Use(middleware.AuthMiddleware(cfg))
	{
		admin.GET("/users", c.user.ListUsers)
		admin.GET("/achievement-definitions", c.achievement.ListDefinitions)
		admin.PATCH("/achievement-definitions/:key/active", c.achievement.SetDefinitionActive)
	}
}
