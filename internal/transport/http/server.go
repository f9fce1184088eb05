package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"nano-banking/internal/ai"
	appsvc "nano-banking/internal/app"
	"nano-banking/internal/bootstrap"
	"nano-banking/internal/cache"
	"nano-banking/internal/repository"
	"nano-banking/internal/transport/http/handler"
	"nano-banking/internal/transport/http/middleware"
)

func NewRouter(app *bootstrap.App) *gin.Engine {
	gin.SetMode(app.Config.App.GinMode)
	router := gin.New()
	router.Use(
		gin.Recovery(),
		middleware.RequestLogger(app.Log),
		middleware.SecurityHeaders(),
		middleware.RateLimit(app.Redis, app.Config.Banking.RateLimitPerMinute, app.Log),
	)

	cfg := app.Config
	timeout := time.Duration(cfg.Banking.SessionTimeoutMinutes) * time.Minute
	jwtExpire := time.Duration(cfg.Auth.JWTExpireMinute) * time.Minute

	customerRepo := repository.NewCustomerRepository(app.MySQL)
	transactionRepo := repository.NewTransactionRepository(app.MySQL)
	sessionRepo := repository.NewSessionRepository(app.MySQL)
	messageRepo := repository.NewMessageRepository(app.MySQL)
	documentRepo := repository.NewDocumentRepository(app.MySQL)
	auditRepo := repository.NewAuditRepository(app.MySQL)
	escalationRepo := repository.NewEscalationRepository(app.MySQL)

	sessionCache := cache.NewSessionCache(app.Redis, timeout)
	historyCache := cache.NewHistoryCache(app.Redis,
		time.Duration(cfg.Redis.HistoryTTLSeconds)*time.Second,
		time.Duration(cfg.Redis.DirtyTTLSeconds)*time.Second)

	auditor := appsvc.NewAuditor(app.AuditPublisher, app.Log)
	identityService := appsvc.NewIdentityService(customerRepo, sessionRepo, auditor, cfg.Banking.MaxLoginAttempts)
	accountService := appsvc.NewAccountService(customerRepo, transactionRepo, auditor)
	documentService := appsvc.NewDocumentService(documentRepo, auditor, cfg.Storage.CustomerFilesPath, cfg.Storage.MaxFileSizeMB)
	supportService := appsvc.NewSupportService(escalationRepo, auditRepo, auditor, cfg.Banking.BankName)
	sessionService := appsvc.NewSessionService(sessionRepo, sessionCache, auditor, timeout)
	adminService := appsvc.NewAdminService(supportService, auditRepo,
		cfg.Auth.AdminUsername, cfg.Auth.AdminPasswordHash, cfg.Auth.JWTSecret, jwtExpire)

	chatService := appsvc.NewChatService(appsvc.ChatDeps{
		Sessions:  sessionService,
		Identity:  identityService,
		Accounts:  accountService,
		Documents: documentService,
		Support:   supportService,
		Messages:  messageRepo,
		History:   historyCache,
		Publisher: app.MessagePublisher,
		LLM:       ai.NewClient(),
		LLMConfig: ai.ChatConfig{
			BaseURL: cfg.LLM.BaseURL,
			APIKey:  cfg.LLM.APIKey,
			Model:   cfg.LLM.Model,
		},
		Auditor:           auditor,
		Log:               app.Log,
		MaxContextMessage: cfg.LLM.MaxContextMessage,
		JWTSecret:         cfg.Auth.JWTSecret,
		JWTExpire:         jwtExpire,
		BankName:          cfg.Banking.BankName,
	})

	chatHandler := handler.NewChatHandler(chatService, sessionService)
	sessionHandler := handler.NewSessionHandler(sessionService, supportService)
	documentHandler := handler.NewDocumentHandler(documentService)
	adminHandler := handler.NewAdminHandler(adminService)
	healthHandler := handler.NewHealthHandler(app)

	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"service": cfg.App.Name,
			"bank":    cfg.Banking.BankName,
			"status":  "running",
		})
	})

	router.GET("/health", healthHandler.Check)
	router.GET("/health/detailed", healthHandler.Detailed)
	router.GET("/health/ready", healthHandler.Ready)
	router.GET("/health/live", healthHandler.Live)

	v1 := router.Group("/api/v1")
	v1.GET("/health", healthHandler.Check)

	v1.GET("/info", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"service": cfg.App.Name,
			"bank":    cfg.Banking.BankName,
			"capabilities": []string{
				"identity_verification",
				"balance_inquiry",
				"transaction_history",
				"update_information",
				"document_management",
				"general_support",
				"escalation",
			},
			"session_timeout_minutes": cfg.Banking.SessionTimeoutMinutes,
		})
	})

	v1.POST("/chat", chatHandler.SendMessage)
	v1.POST("/chat/stream", chatHandler.StreamMessage)
	v1.GET("/chat/history", chatHandler.GetHistory)

	v1.POST("/session", sessionHandler.Create)
	v1.DELETE("/session/:id", sessionHandler.Terminate)
	v1.GET("/session/:id/summary", sessionHandler.Summary)

	documents := v1.Group("/documents")
	documents.Use(middleware.AuthSession(cfg.Auth.JWTSecret))
	documents.POST("", documentHandler.Upload)
	documents.GET("", documentHandler.List)
	documents.GET("/:id", documentHandler.Info)
	documents.POST("/:id/archive", documentHandler.Archive)

	admin := v1.Group("/admin")
	admin.POST("/login", adminHandler.Login)
	protected := admin.Group("")
	protected.Use(middleware.AuthAdmin(cfg.Auth.JWTSecret))
	protected.GET("/audit-logs", adminHandler.AuditLogs)
	protected.GET("/escalations", adminHandler.Escalations)

	return router
}
