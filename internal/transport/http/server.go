package http

import (
	"time"

	"github.com/gin-gonic/gin"

	appsvc "wellnesshub/internal/app"
	"wellnesshub/internal/bootstrap"
	"wellnesshub/internal/transport/http/handler"
	"wellnesshub/internal/transport/http/middleware"
)

func NewRouter(app *bootstrap.App) *gin.Engine {
	gin.SetMode(app.Config.App.GinMode)
	router := gin.New()
	router.Use(middleware.RequestID(), middleware.AccessLog(app.Logger), gin.Recovery())

	healthHandler := handler.NewHealthHandler(app)
	router.StaticFile("/", "web/index.html")
	router.StaticFile("/login", "web/login.html")
	router.StaticFile("/register", "web/register.html")
	router.StaticFile("/chatbot", "web/chatbot.html")
	router.StaticFile("/profile", "web/profile.html")
	router.StaticFile("/settings", "web/settings.html")
	router.StaticFile("/purchases", "web/purchases.html")
	router.GET("/healthz", healthHandler.Check)

	authService := appsvc.NewAuthService(
		app.UserRepo,
		app.Config.Auth.JWTSecret,
		time.Duration(app.Config.Auth.JWTExpireMinute)*time.Minute,
	)
	prefService := appsvc.NewPreferenceService(app.UserRepo)
	chatService := appsvc.NewChatService(
		app.SessionRepo,
		app.MessageRepo,
		app.UserRepo,
		app.Publisher,
		app.HistoryCache,
		app.LLMClient,
		app.DefaultLLM(),
		app.Config.LLM.TranscribeModel,
		app.Config.LLM.MaxContextMessage,
	)

	authHandler := handler.NewAuthHandler(authService)
	prefHandler := handler.NewPreferenceHandler(prefService)
	chatHandler := handler.NewChatHandler(chatService)
	voiceHandler := handler.NewVoiceHandler(chatService)

	authJWT := middleware.AuthJWT(app.Config.Auth.JWTSecret)

	v1 := router.Group("/api/v1")
	authGroup := v1.Group("/auth")
	authGroup.POST("/register", authHandler.Register)
	authGroup.POST("/login", authHandler.Login)
	authGroup.GET("/me", authJWT, authHandler.Me)

	chatGroup := v1.Group("/chat")
	chatGroup.Use(authJWT)
	chatGroup.POST("", chatHandler.Chat)
	chatGroup.POST("/sessions", chatHandler.CreateSession)
	chatGroup.GET("/sessions", chatHandler.ListSessions)
	chatGroup.DELETE("/sessions/:id", chatHandler.DeleteSession)
	chatGroup.POST("/messages", chatHandler.SendMessage)
	chatGroup.POST("/messages/stream", chatHandler.StreamMessage)
	chatGroup.GET("/history", chatHandler.GetHistory)

	voiceGroup := v1.Group("/voice")
	voiceGroup.Use(authJWT)
	voiceGroup.POST("/transcriptions", voiceHandler.Transcribe)

	prefGroup := v1.Group("/preferences")
	prefGroup.Use(authJWT)
	prefGroup.GET("", prefHandler.Get)
	prefGroup.PUT("/theme", prefHandler.SetTheme)
	prefGroup.PUT("/language", prefHandler.SetLanguage)
	prefGroup.PUT("/notifications", prefHandler.SetNotifications)
	prefGroup.PUT("/incognito", prefHandler.SetIncognito)

	return router
}
