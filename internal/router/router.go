package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prepiq/prepiq-backend/internal/config"
	"github.com/prepiq/prepiq-backend/internal/handler"
	"github.com/prepiq/prepiq-backend/internal/middleware"
	"github.com/prepiq/prepiq-backend/internal/response"
	"github.com/prepiq/prepiq-backend/internal/service"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Auth     *handler.AuthHandler
	Subject  *handler.SubjectHandler
	Practice *handler.PracticeHandler
	Question *handler.QuestionHandler
	Report   *handler.ReportHandler
	Result   *handler.ResultHandler
	WS       *handler.WSHandler
}

// SetupRouter configures all Gin route groups with appropriate middlewares.
func SetupRouter(
	authService *service.AuthService,
	handlers *Handlers,
	cfg *config.Config,
) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	router := gin.Default()

	// ─── CORS ──────────────────────────────────────────────────────────
	// If AllowedOrigins is set in config, restrict to that list;
	// otherwise allow all (*) so dev works without extra config.
	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"}
	corsConfig.ExposeHeaders = []string{"X-Request-ID"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	// Apply request ID middleware globally so every response includes metadata.
	router.Use(response.RequestIDMiddleware())

	// Apply brotli middleware globally.
	router.Use(middleware.Brotli())

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{"status": "ok"})
	})

	// Rate limiter for auth routes (30 requests per minute per IP).
	authLimiter := middleware.NewRateLimiter(30, time.Minute)

	// ─── 1. Auth Group (Public, Rate Limited) ──────────────────────────
	auth := router.Group("/api/v1/auth")
	auth.Use(authLimiter.Middleware())
	{
		auth.POST("/register", handlers.Auth.Register)
		auth.POST("/login", handlers.Auth.Login)
		auth.POST("/admin/login", handlers.Auth.AdminLogin)

		// Authenticated profile routes
		auth.GET("/me", middleware.RequireUserJWT(authService), handlers.Auth.Me)
		auth.POST("/logout", middleware.RequireUserJWT(authService), handlers.Auth.Logout)
	}

	// ─── 2. Learner Group (JWT + Single Device) ────────────────────────
	userAPI := router.Group("/api/v1")
	userAPI.Use(
		middleware.RequireUserJWT(authService),
		middleware.CheckSingleDeviceSession(authService),
	)
	{
		// Catalog. Chapter listings change rarely; let clients cache briefly.
		userAPI.GET("/subjects", middleware.CacheControl(300), handlers.Subject.ListSubjects)
		userAPI.GET("/subjects/:subject/topics", middleware.CacheControl(300), handlers.Subject.ListTopics)

		// Live sessions
		userAPI.POST("/practice/sessions", handlers.Practice.StartSession)
		userAPI.GET("/practice/sessions/active", handlers.Practice.GetActiveSession)
		userAPI.GET("/practice/sessions/:session_id", handlers.Practice.GetSnapshot)
		userAPI.GET("/practice/sessions/:session_id/paper", handlers.Practice.GetPaper)
		userAPI.POST("/practice/sessions/:session_id/answer", handlers.Practice.SelectAnswer)
		userAPI.POST("/practice/sessions/:session_id/clear", handlers.Practice.ClearAnswer)
		userAPI.POST("/practice/sessions/:session_id/goto", handlers.Practice.GoTo)
		userAPI.POST("/practice/sessions/:session_id/next", handlers.Practice.Next)
		userAPI.POST("/practice/sessions/:session_id/prev", handlers.Practice.Prev)
		userAPI.POST("/practice/sessions/:session_id/mark-review", handlers.Practice.MarkForReview)
		userAPI.POST("/practice/sessions/:session_id/bookmark", handlers.Practice.ToggleBookmark)
		userAPI.POST("/practice/sessions/:session_id/finish", handlers.Practice.Finish)
		userAPI.GET("/practice/sessions/:session_id/result", handlers.Practice.GetResult)
		userAPI.POST("/practice/sessions/:session_id/restart", handlers.Practice.Restart)
		userAPI.DELETE("/practice/sessions/:session_id", handlers.Practice.AbandonSession)

		// History
		userAPI.GET("/results", handlers.Result.History)

		// Question reporting
		userAPI.GET("/reports/reasons", handlers.Report.ListReasons)
		userAPI.POST("/questions/:id/report", handlers.Report.FileReport)
	}

	// ─── 3. WebSocket Group (WS Auth via query token) ──────────────────
	ws := router.Group("/ws/v1")
	ws.Use(middleware.RequireUserWSAuth(authService))
	{
		ws.GET("/practice/sessions/:session_id/stream", handlers.WS.SessionStream)
	}

	// ─── 4. Admin Group (JWT) ──────────────────────────────────────────
	adminAPI := router.Group("/api/v1/admin")
	adminAPI.Use(middleware.RequireAdminJWT(authService))
	{
		// Question bank
		adminAPI.GET("/questions", handlers.Question.ListQuestions)
		adminAPI.GET("/questions/:id", handlers.Question.GetQuestion)
		adminAPI.POST("/questions", handlers.Question.CreateQuestion)
		adminAPI.PUT("/questions/:id", handlers.Question.UpdateQuestion)
		adminAPI.DELETE("/questions/:id", handlers.Question.DeleteQuestion)

		// Subjects
		adminAPI.POST("/subjects", handlers.Subject.CreateSubject)
		adminAPI.PUT("/subjects/:id", handlers.Subject.UpdateSubject)
		adminAPI.DELETE("/subjects/:id", handlers.Subject.DeleteSubject)

		// Report triage
		adminAPI.GET("/reports", handlers.Report.ListPendingReports)
		adminAPI.PATCH("/reports/:id", handlers.Report.ResolveReport)
	}

	return router
}
