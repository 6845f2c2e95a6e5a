package app

import (
	"mindcheck_backend/docs"
	"mindcheck_backend/internal/config"
	"mindcheck_backend/internal/middleware"
	"mindcheck_backend/internal/model"
	"mindcheck_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	// 1. 公共路由(无需登录)
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/register", c.auth.Register)
		public.POST("/login", c.auth.Login)
	}

	// 2. 需要授权的路由
	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg.JWT.Secret))
	{
		a.registerUserRoutes(authGroup, c)
		a.registerAdminRoutes(authGroup, c)
	}
}

func (a *App) registerUserRoutes(group *gin.RouterGroup, c *controllers) {
	group.GET("/profile", c.auth.GetProfile)

	quizzes := group.Group("/quizzes")
	{
		quizzes.GET("", c.quiz.ListPublished)
		quizzes.GET("/:id", c.quiz.GetPublished)
		quizzes.POST("/:id/submit", c.result.Submit)
		quizzes.GET("/:id/history", c.result.History)
		quizzes.GET("/:id/progress", c.result.Progress)
	}

	results := group.Group("/results")
	{
		results.GET("", c.result.ListMine)
		results.GET("/:id", c.result.GetResult)
	}
}

func (a *App) registerAdminRoutes(group *gin.RouterGroup, c *controllers) {
	admin := group.Group("/admin")
	admin.Use(middleware.RoleMiddleware(model.RoleAdmin))
	{
		admin.GET("/quizzes", c.quiz.ListQuizzes)
		admin.POST("/quizzes", c.quiz.CreateQuiz)
		admin.POST("/quizzes/validate", c.quiz.ValidateQuiz)
		admin.GET("/quizzes/:id", c.quiz.GetQuiz)
		admin.PUT("/quizzes/:id", c.quiz.UpdateQuiz)
		admin.DELETE("/quizzes/:id", c.quiz.DeleteQuiz)
		admin.POST("/quizzes/:id/publish", c.quiz.SetPublished)
		admin.POST("/quizzes/:id/export", c.export.ExportResults)
		admin.GET("/exports/:file", c.export.Download)
	}
}
