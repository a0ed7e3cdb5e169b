package http

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"hri-companion/internal/ai"
	appsvc "hri-companion/internal/app"
	"hri-companion/internal/bootstrap"
	"hri-companion/internal/cache"
	"hri-companion/internal/platform/rabbitmq"
	"hri-companion/internal/repository"
	"hri-companion/internal/transport/http/handler"
	"hri-companion/internal/transport/http/middleware"
)

func NewRouter(app *bootstrap.App) *gin.Engine {
	gin.SetMode(app.Config.App.GinMode)
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization")
	router.Use(cors.New(corsConfig))

	healthHandler := handler.NewHealthHandler(app)
	router.GET("/healthz", healthHandler.Check)

	userRepo := repository.NewUserRepository(app.Store)
	childRepo := repository.NewChildRepository(app.Store)
	sessionRepo := repository.NewSessionRepository(app.Store)

	var childCache appsvc.ChildCache
	if app.Redis != nil {
		childCache = cache.NewChildCache(
			app.Redis,
			time.Duration(app.Config.Redis.ChildTTLSeconds)*time.Second,
		)
	}
	ownership := appsvc.NewOwnership(childRepo, sessionRepo, childCache)

	llmClient := ai.NewOpenAICompatibleClient()
	llmTimeout := time.Duration(app.Config.LLM.TimeoutSecond) * time.Second
	extractor := ai.NewKeywordExtractor(llmClient, ai.ChatConfig{
		BaseURL: app.Config.LLM.BaseURL,
		APIKey:  app.Config.LLM.APIKey,
		Model:   app.Config.LLM.KeywordModel,
	}, llmTimeout)
	synthesizer := ai.NewPromptSynthesizer(llmClient, ai.ChatConfig{
		BaseURL: app.Config.LLM.BaseURL,
		APIKey:  app.Config.LLM.APIKey,
		Model:   app.Config.LLM.PromptModel,
	}, llmTimeout)

	var publisher appsvc.SessionEventPublisher
	if app.MQConn != nil {
		publisher = rabbitmq.NewSessionEventPublisher(app.MQConn, app.Config.RabbitMQ.SessionEventQueue)
	}

	authService := appsvc.NewAuthService(
		userRepo,
		app.Config.Auth.JWTSecret,
		time.Duration(app.Config.Auth.JWTExpireMinute)*time.Minute,
	)
	childService := appsvc.NewChildService(childRepo, ownership, extractor)
	sessionService := appsvc.NewSessionService(sessionRepo, ownership, synthesizer, publisher)

	authHandler := handler.NewAuthHandler(authService)
	childHandler := handler.NewChildHandler(childService, sessionService)
	sessionHandler := handler.NewSessionHandler(sessionService)

	v1 := router.Group("/api/v1")
	authGroup := v1.Group("/auth")
	authGroup.POST("/register", authHandler.Register)
	authGroup.POST("/login", authHandler.Login)
	authGroup.GET("/me", middleware.AuthJWT(app.Config.Auth.JWTSecret), authHandler.Me)

	childGroup := v1.Group("/children")
	childGroup.Use(middleware.AuthJWT(app.Config.Auth.JWTSecret))
	childGroup.POST("", childHandler.Create)
	childGroup.GET("", childHandler.List)
	childGroup.GET("/:id", childHandler.Get)
	childGroup.GET("/:id/sessions/latest", childHandler.LatestSession)

	sessionGroup := v1.Group("/sessions")
	sessionGroup.Use(middleware.AuthJWT(app.Config.Auth.JWTSecret))
	sessionGroup.POST("", sessionHandler.Create)
	sessionGroup.GET("/:id", sessionHandler.Get)

	return router
}
