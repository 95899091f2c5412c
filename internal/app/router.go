package app

import (
	"olympiades_backend/internal/config"
	"olympiades_backend/internal/middleware"
	"olympiades_backend/internal/model"

	"olympiades_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, repos *repositories, cfg *config.Config) {
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	router.GET("/metrics", monitoring.PrometheusHandler())
	router.GET("/health", c.health.HealthCheck)

	// 1. Routes publiques (sans authentification)
	a.registerPublicRoutes(router, c)

	// 2. Espace candidat (authentifié)
	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg, a.Redis), middleware.ActivityMiddleware(repos.user))
	{
		a.registerCandidateRoutes(authGroup, c)
	}

	// 3. Espace administration
	a.registerAdminRoutes(router, c, repos, cfg)
}

func (a *App) registerPublicRoutes(router *gin.Engine, c *controllers) {
	public := router.Group("/api")
	{
		auth := public.Group("/auth")
		{
			auth.POST("/register", c.auth.Register)
			auth.POST("/login", c.auth.Login)
			auth.POST("/forgot-password", c.auth.ForgotPassword)
			auth.POST("/reset-password", c.auth.ResetPassword)
			auth.POST("/reset-password-otp", c.auth.ResetPasswordOTP)
		}

		schools := public.Group("/schools")
		{
			schools.GET("/search", c.school.Search)
			schools.GET("/regions", c.school.Regions)
		}

		content := public.Group("/content")
		{
			content.GET("/news", c.content.ListNews)
			content.GET("/news/:id", c.content.GetNews)
			content.GET("/faq", c.content.ListFAQs)
			content.GET("/timeline", c.content.ListPhases)
			content.GET("/partners", c.content.ListPartners)
			content.GET("/pages/:slug", c.content.GetPage)
		}

		public.GET("/rankings", c.ranking.Rankings)
		public.GET("/certificates/verify/:code", c.certificate.Verify)
	}
}

func (a *App) registerCandidateRoutes(rg *gin.RouterGroup, c *controllers) {
	rg.GET("/auth/me", c.auth.Me)
	rg.POST("/auth/refresh", c.auth.Refresh)
	rg.POST("/auth/logout", c.auth.Logout)
	rg.PUT("/auth/password", c.auth.ChangePassword)

	candidate := rg.Group("/candidate")
	{
		candidate.GET("/profile", c.candidate.GetProfile)
		candidate.PUT("/profile", c.candidate.UpdateProfile)
		candidate.POST("/documents/:kind", c.candidate.UploadDocument)
		candidate.POST("/submit", c.candidate.Submit)
	}

	exam := rg.Group("/exam")
	{
		exam.GET("/status", c.exam.Status)
		exam.POST("/start", c.exam.Start)
		exam.PUT("/attempts/:id/answers", c.exam.SaveAnswer)
		exam.POST("/attempts/:id/submit", c.exam.Submit)
		exam.GET("/attempts/:id/result", c.exam.Result)
		exam.POST("/attempts/:id/events", c.exam.ReportCheatEvent)
	}

	notifications := rg.Group("/notifications")
	{
		notifications.GET("", c.notification.List)
		notifications.PUT("/:id/read", c.notification.MarkRead)
		notifications.PUT("/read-all", c.notification.MarkAllRead)
	}

	rg.GET("/rankings/me", c.ranking.MyRanking)
	rg.GET("/certificates/:kind", c.certificate.Download)
}

func (a *App) registerAdminRoutes(router *gin.Engine, c *controllers, repos *repositories, cfg *config.Config) {
	admin := router.Group("/api/admin")
	admin.Use(
		middleware.AuthMiddleware(cfg, a.Redis),
		middleware.ActivityMiddleware(repos.user),
		middleware.RoleMiddleware(model.RoleAdmin),
	)
	{
		candidates := admin.Group("/candidates")
		{
			candidates.GET("", c.candidate.List)
			candidates.GET("/:id", c.candidate.Detail)
			candidates.POST("/:id/validate", c.candidate.Validate)
			candidates.POST("/:id/reject", c.candidate.Reject)
			candidates.GET("/:id/certificates/:kind", c.certificate.DownloadForCandidate)
		}

		questions := admin.Group("/questions")
		{
			questions.GET("", c.question.List)
			questions.POST("", c.question.Create)
			questions.GET("/:id", c.question.Get)
			questions.PUT("/:id", c.question.Update)
			questions.DELETE("/:id", c.question.Delete)
			questions.PUT("/:id/active", c.question.SetActive)
			questions.POST("/import", c.question.Import)
			questions.POST("/import-xlsx", c.question.ImportXLSX)
			questions.GET("/export", c.question.ExportJSON)
			questions.GET("/export-xlsx", c.question.ExportXLSX)
		}

		exam := admin.Group("/exam")
		{
			exam.GET("/settings", c.exam.GetSettings)
			exam.PUT("/settings", c.exam.UpdateSettings)
			exam.GET("/attempts", c.exam.ListAttempts)
			exam.GET("/attempts/:id", c.exam.AttemptDetail)
			exam.GET("/stats", c.exam.Stats)
		}

		schools := admin.Group("/schools")
		{
			schools.GET("", c.school.List)
			schools.POST("", c.school.Create)
			schools.PUT("/:id", c.school.Update)
			schools.DELETE("/:id", c.school.Delete)
			schools.POST("/import", c.school.Import)
		}

		stats := admin.Group("/stats")
		{
			stats.GET("/dashboard", c.stats.Dashboard)
			stats.GET("/breakdown", c.stats.Breakdown)
			stats.GET("/registrations", c.stats.Registrations)
			stats.GET("/categories", c.stats.CategoryPerformance)
			stats.GET("/report", c.stats.Report)
			stats.GET("/export-candidates", c.stats.ExportCandidates)
		}

		content := admin.Group("/content")
		{
			content.GET("/news", c.content.AdminListNews)
			content.POST("/news", c.content.CreateNews)
			content.PUT("/news/:id", c.content.UpdateNews)
			content.DELETE("/news/:id", c.content.DeleteNews)
			content.POST("/news/:id/image", c.content.UploadNewsImage)

			content.GET("/faq", c.content.AdminListFAQs)
			content.POST("/faq", c.content.CreateFAQ)
			content.PUT("/faq/:id", c.content.UpdateFAQ)
			content.DELETE("/faq/:id", c.content.DeleteFAQ)

			content.POST("/timeline", c.content.CreatePhase)
			content.PUT("/timeline/:id", c.content.UpdatePhase)
			content.DELETE("/timeline/:id", c.content.DeletePhase)

			content.GET("/partners", c.content.AdminListPartners)
			content.POST("/partners", c.content.CreatePartner)
			content.PUT("/partners/:id", c.content.UpdatePartner)
			content.DELETE("/partners/:id", c.content.DeletePartner)
			content.POST("/partners/:id/logo", c.content.UploadPartnerLogo)

			content.GET("/pages", c.content.ListPages)
			content.PUT("/pages/:slug", c.content.SavePage)
		}

		admin.POST("/notifications/broadcast", c.notification.Broadcast)
	}
}
