package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/satvocab/vocab-api/internal/middleware"
)

// Handlers собирает обработчики для регистрации маршрутов
type Handlers struct {
	Auth     *AuthHandler
	Words    *WordHandler
	Stats    *StatsHandler
	User     *UserHandler
	Quiz     *QuizHandler
	Learning *LearningHandler
	WS       *WSHandler
	Health   *HealthHandler
}

// RouteDeps - middleware, общие для маршрутов
type RouteDeps struct {
	Auth        *middleware.AuthMiddleware
	RateLimiter *middleware.RateLimiter
	AuthLimit   middleware.RateLimitConfig
}

// SetupRoutes регистрирует все маршруты API
func SetupRoutes(router *gin.Engine, h Handlers, deps RouteDeps) {
	router.GET("/health", h.Health.Health)

	api := router.Group("/api")
	{
		// Аутентификация
		authGroup := api.Group("/auth")
		{
			limited := authGroup.Group("")
			if deps.RateLimiter != nil {
				limited.Use(deps.RateLimiter.Limit(deps.AuthLimit))
			}
			limited.POST("/register", h.Auth.Register)
			limited.POST("/login", h.Auth.Login)

			authGroup.POST("/logout", h.Auth.Logout)
			authGroup.GET("/me", deps.Auth.RequireAuth(), h.Auth.Me)
		}

		// Словарь
		words := api.Group("/words")
		{
			words.GET("", h.Words.ListWords)
			words.GET("/:id", middleware.ExtractIntParam("id", "wordID"), h.Words.GetWord)
		}

		// Глобальная статистика (публичная)
		stats := api.Group("/stats")
		{
			stats.GET("/global", h.Stats.GetGlobalStats)
			stats.POST("/submit", h.Stats.Submit)
			stats.GET("/top-missed", h.Stats.TopMissed)
		}

		// Персональная статистика
		user := api.Group("/user")
		user.Use(deps.Auth.RequireAuth())
		{
			user.GET("/performance", h.User.GetPerformance)
			user.DELETE("/performance", h.User.ResetPerformance)
			user.POST("/update-performance", h.User.UpdatePerformance)
			user.GET("/stats", h.User.GetStats)
			user.GET("/stats/export", h.User.ExportStats)
		}

		// Викторина: гости и авторизованные пользователи
		quiz := api.Group("/quiz")
		quiz.Use(deps.Auth.OptionalAuth())
		{
			quiz.POST("/questions", h.Quiz.GenerateQuestions)
			quiz.POST("/sessions", h.Quiz.StartSession)

			session := quiz.Group("/sessions/:id")
			session.Use(middleware.ExtractUUIDParam("id", "sessionID"))
			{
				session.GET("", h.Quiz.GetSession)
				session.GET("/question", h.Quiz.GetQuestion)
				session.POST("/answers", h.Quiz.SubmitAnswer)
				session.POST("/finish", h.Quiz.FinishSession)
			}
		}

		api.GET("/learning/words", h.Learning.GetWords)
	}

	// WebSocket лента глобальной статистики
	if h.WS != nil {
		router.GET("/ws/stats", h.WS.HandleConnection)
	}
}
