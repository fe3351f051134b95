package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/rafabene/aeo-studio/internal/domain/ports"
	"github.com/rafabene/aeo-studio/internal/handlers/dto"
	"github.com/rafabene/aeo-studio/internal/handlers/middleware"
	"github.com/rafabene/aeo-studio/internal/infrastructure/i18n"
)

// RouterConfig reúne o que o router precisa além dos handlers
type RouterConfig struct {
	Env            string
	BaseURL        string
	AllowedOrigins []string
	Tokens         middleware.TokenValidator
	I18n           *i18n.Service
	Logger         ports.Logger
}

// Handlers agrupa os handlers montados no main
type Handlers struct {
	User       *UserHandler
	Topic      *TopicHandler
	Content    *ContentHandler
	Competitor *CompetitorHandler
	AEO        *AEOHandler
	Onboarding *OnboardingHandler
	Realtime   *RealtimeHandler
}

// NewRouter monta o engine com os middlewares globais e as rotas /api/v1
func NewRouter(cfg RouterConfig, h Handlers) *gin.Engine {
	dto.RegisterValidators()

	router := gin.New()

	// Middleware global para adicionar base URL ao contexto
	router.Use(func(c *gin.Context) {
		c.Set(dto.BaseURLContextKey, cfg.BaseURL)
		c.Next()
	})
	router.Use(middleware.RequestID())
	router.Use(middleware.RequestLogger(cfg.Logger))
	router.Use(gin.Recovery())
	router.Use(middleware.NewI18nMiddleware(cfg.I18n).DetectLanguage())
	router.Use(middleware.CORS(cfg.AllowedOrigins))

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
			"env":    cfg.Env,
		})
	})
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := router.Group("/api/v1")
	{
		authRoutes := v1.Group("/auth")
		{
			authRoutes.POST("/signup", h.User.Signup)
			authRoutes.POST("/login", h.User.Login)
		}

		private := v1.Group("")
		private.Use(middleware.RequireAuth(cfg.Tokens, Unauthorized))

		me := private.Group("/me")
		{
			me.GET("", h.User.GetProfile)
			me.PUT("", h.User.UpdateProfile)
			me.GET("/onboarding", h.User.OnboardingStatus)
		}

		onboarding := private.Group("/onboarding")
		{
			onboarding.POST("", h.Onboarding.Complete)
			onboarding.POST("/brand", h.Onboarding.SaveBrand)
			onboarding.GET("/suggestions", h.Topic.Suggestions)
		}

		topics := private.Group("/topics")
		{
			topics.GET("", h.Topic.Board)
			topics.POST("", h.Topic.Create)
			topics.POST("/brainstorm", h.Topic.Brainstorm)
			topics.GET("/:id", h.Topic.Get)
			topics.DELETE("/:id", h.Topic.Delete)
			topics.PATCH("/:id/status", h.Topic.UpdateStatus)
			topics.PUT("/:id/content", h.Topic.UpdateContent)

			topics.POST("/:id/outline", h.Content.Outline)
			topics.POST("/:id/entities", h.Content.Entities)
			topics.POST("/:id/section", h.Content.Section)
			topics.POST("/:id/maximize", h.Content.Maximize)
			topics.POST("/:id/coverage", h.Content.Coverage)
			topics.POST("/:id/edit", h.Content.Edit)
			topics.POST("/:id/publish", h.Content.Publish)
		}

		competitors := private.Group("/competitors")
		{
			competitors.GET("", h.Competitor.List)
			competitors.POST("", h.Competitor.Add)
			competitors.GET("/search", h.Competitor.Search)
			competitors.DELETE("/:id", h.Competitor.Delete)
			competitors.POST("/:id/gap-analysis", h.Competitor.GapAnalysis)
		}

		aeo := private.Group("/aeo")
		{
			aeo.POST("/scan", h.AEO.Scan)
			aeo.GET("/audit", h.AEO.Audit)
		}

		private.GET("/ws/pipeline", h.Realtime.Pipeline)
	}

	return router
}
