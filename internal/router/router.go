package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/secureexam/portal-backend/internal/config"
	"github.com/secureexam/portal-backend/internal/handler"
	"github.com/secureexam/portal-backend/internal/middleware"
	"github.com/secureexam/portal-backend/internal/response"
	"github.com/secureexam/portal-backend/internal/service"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Auth       *handler.AuthHandler
	AdminUser  *handler.AdminUserHandler
	Exam       *handler.ExamHandler
	Question   *handler.QuestionHandler
	Assignment *handler.AssignmentHandler
	Student    *handler.StudentHandler
	Report     *handler.ReportHandler
	Monitor    *handler.MonitorHandler
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
		auth.POST("/google/callback", handlers.Auth.GoogleCallback)

		// Authenticated profile routes
		auth.GET("/me", middleware.RequireAuth(authService), handlers.Auth.Me)
		auth.POST("/logout", middleware.RequireAuth(authService), handlers.Auth.Logout)
	}

	// ─── 2. Student Group (JWT + Role + Single Session) ────────────────
	studentAPI := router.Group("/api/v1/student")
	studentAPI.Use(
		middleware.RequireAuth(authService),
		middleware.RequireRole(service.TokenTypeStudent),
		middleware.CheckSingleSession(authService),
	)
	{
		studentAPI.GET("/dashboard", handlers.Student.Dashboard)
		studentAPI.GET("/attempts/:id", handlers.Student.OpenAttempt)
		studentAPI.POST("/attempts/:id/submit", handlers.Student.Submit)
	}

	// ─── 3. Shared Results (owner or admin, checked in the service) ────
	router.GET("/api/v1/results/:id",
		middleware.RequireAuth(authService),
		handlers.Student.GetResult,
	)

	// ─── 4. Admin Group (JWT + Role) ───────────────────────────────────
	adminAPI := router.Group("/api/v1/admin")
	adminAPI.Use(
		middleware.RequireAuth(authService),
		middleware.RequireRole(service.TokenTypeAdmin),
	)
	{
		// User management
		adminAPI.GET("/users", handlers.AdminUser.List)
		adminAPI.POST("/users", handlers.AdminUser.Create)
		adminAPI.GET("/users/:id", handlers.AdminUser.Get)
		adminAPI.PUT("/users/:id", handlers.AdminUser.Update)
		adminAPI.DELETE("/users/:id", handlers.AdminUser.Delete)

		// Exam catalog
		adminAPI.GET("/exams", handlers.Exam.List)
		adminAPI.POST("/exams", handlers.Exam.Create)
		adminAPI.GET("/exams/:id", handlers.Exam.Get)
		adminAPI.PUT("/exams/:id", handlers.Exam.Update)
		adminAPI.DELETE("/exams/:id", handlers.Exam.Delete)

		// Question authoring
		adminAPI.GET("/exams/:id/questions", handlers.Question.List)
		adminAPI.POST("/exams/:id/questions", handlers.Question.Create)
		adminAPI.DELETE("/questions/:id", handlers.Question.Delete)

		// Assignment ledger
		adminAPI.POST("/users/:id/assignments", handlers.Assignment.Assign)
		adminAPI.DELETE("/results/:id", handlers.Assignment.DeleteResult)

		// Reporting
		adminAPI.GET("/dashboard", handlers.Report.Summary)
		adminAPI.GET("/reports", handlers.Report.Report)
	}

	// ─── 5. WebSocket Group (Admin WS Auth) ────────────────────────────
	ws := router.Group("/ws/v1")
	ws.Use(
		middleware.RequireWSAuth(authService),
		middleware.RequireRole(service.TokenTypeAdmin),
	)
	{
		ws.GET("/admin/monitor", handlers.Monitor.MonitorStream)
	}

	return router
}
