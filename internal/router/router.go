package router

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"taxsage/internal/domain"
	"taxsage/internal/handler"
	"taxsage/internal/middleware"
	"taxsage/internal/service"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	authSvc service.AuthService,
	allowedOrigins []string,
	authH *handler.AuthHandler,
	userH *handler.UserHandler,
	caH *handler.CAHandler,
	filingH *handler.FilingHandler,
	reviewH *handler.ReviewHandler,
	fileH *handler.FileHandler,
	healthH *handler.HealthHandler,
) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(allowedOrigins))

	// Health checks
	r.GET("/healthz", healthH.Liveness)
	r.GET("/readyz", healthH.Readiness)

	// API documentation
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := r.Group("/api/v1")

	// Public auth routes
	auth := v1.Group("/auth")
	auth.POST("/register", authH.Register)
	auth.POST("/login", authH.Login)
	auth.POST("/refresh", authH.RefreshToken)

	// Protected routes - require valid JWT
	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(authSvc))

	// User accounts
	users := protected.Group("/users")
	users.GET("/me", userH.Me)
	users.PUT("/me", userH.UpdateMe)
	users.GET("", middleware.RequireRole(domain.RoleAdmin), userH.List)
	users.GET("/:id", middleware.RequireRole(domain.RoleAdmin), userH.GetByID)
	users.DELETE("/:id", middleware.RequireRole(domain.RoleAdmin), userH.Deactivate)

	// CA marketplace
	cas := protected.Group("/cas")
	cas.GET("", caH.List)
	cas.POST("/me", middleware.RequireRole(domain.RoleCA), caH.CreateMyProfile)
	cas.GET("/me", middleware.RequireRole(domain.RoleCA), caH.MyProfile)
	cas.PUT("/me", middleware.RequireRole(domain.RoleCA), caH.UpdateMyProfile)
	cas.PATCH("/me/availability", middleware.RequireRole(domain.RoleCA), caH.SetAvailability)
	cas.GET("/:id", caH.GetByID)

	// Filing wizard and exports
	filings := protected.Group("/filings")
	filings.POST("", filingH.Create)
	filings.GET("", filingH.List)
	filings.GET("/export/csv", filingH.ExportCSV)
	filings.GET("/:id", filingH.GetByID)
	filings.PUT("/:id", filingH.UpdateInput)
	filings.DELETE("/:id", filingH.Delete)
	filings.GET("/:id/computation", filingH.Compute)
	filings.POST("/:id/validate", filingH.Validate)
	filings.GET("/:id/itr", filingH.ExportITR)
	filings.POST("/:id/submit", filingH.Submit)
	filings.POST("/:id/file", filingH.MarkFiled)
	filings.GET("/:id/export", filingH.ExportWorkbook)
	filings.POST("/:id/files", fileH.Upload)
	filings.GET("/:id/files", fileH.ListByFiling)

	// Supporting documents
	files := protected.Group("/files")
	files.GET("/:id/download", fileH.DownloadURL)
	files.DELETE("/:id", fileH.Delete)

	// CA review workflow
	reviews := protected.Group("/reviews")
	reviews.POST("", reviewH.Request)
	reviews.GET("", reviewH.ListMine)
	reviews.GET("/assigned", middleware.RequireRole(domain.RoleCA), reviewH.ListAssigned)
	reviews.POST("/:id/accept", middleware.RequireRole(domain.RoleCA), reviewH.Accept)
	reviews.POST("/:id/reject", middleware.RequireRole(domain.RoleCA), reviewH.Reject)
	reviews.POST("/:id/complete", middleware.RequireRole(domain.RoleCA), reviewH.Complete)
	reviews.GET("/:id/filing", middleware.RequireRole(domain.RoleCA), reviewH.Filing)

	return r
}
