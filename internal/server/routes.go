package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (s *Server) RegisterRoutes() http.Handler {
	router := gin.Default()

	// Health check endpoint
	router.GET("/health", s.handlers.Health)

	// Auth routes (public)
	auth := router.Group("/api/auth")
	{
		auth.POST("/register", s.handlers.Register)
		auth.POST("/login", s.handlers.Login)
	}

	// Protected routes
	api := router.Group("/api")
	api.Use(s.middleware.Auth())
	api.Use(s.middleware.RateLimit())
	{
		api.GET("/auth/me", s.handlers.Me)

		subjects := api.Group("/subjects")
		{
			subjects.POST("/add", s.handlers.AddSubject)
			subjects.GET("/", s.handlers.ListSubjects)
			subjects.GET("/results", s.handlers.GetResults)
			subjects.GET("/gpa", s.handlers.GetOverallGPA)
			subjects.PUT("/:id", s.handlers.UpdateSubject)
			subjects.DELETE("/:id", s.handlers.DeleteSubject)
		}

		analytics := api.Group("/analytics")
		{
			analytics.GET("/degree-progress", s.handlers.GetDegreeProgress)
			analytics.PUT("/degree-progress", s.handlers.UpdateDegreeProgress)
			analytics.GET("/semester-history", s.handlers.GetSemesterHistory)
			analytics.GET("/subject-performance", s.handlers.GetSubjectPerformance)
			analytics.POST("/target-gpa", s.handlers.SolveTargetGPA)
			analytics.GET("/summary", s.handlers.GetSummary)
			analytics.GET("/credit-categories", s.handlers.GetCreditCategories)
			analytics.PUT("/credit-categories", s.handlers.UpdateCreditCategories)
		}

		export := api.Group("/export")
		{
			export.GET("/excel", s.handlers.ExportExcel)
			export.GET("/pdf", s.handlers.ExportPDF)
			export.GET("/share", s.handlers.ShareReport)
		}
	}

	return router
}
