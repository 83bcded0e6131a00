package router

import (
	"github.com/gin-gonic/gin"

	"paymax/internal/handler"
	"paymax/internal/middleware"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	payslipH *handler.PayslipHandler,
	diagH *handler.DiagnosticsHandler,
	healthH *handler.HealthHandler,
	allowedOrigins []string,
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

	v1 := r.Group("/api/v1")

	payslips := v1.Group("/payslips")
	payslips.POST("/parse", payslipH.Parse)
	payslips.GET("", payslipH.List)
	payslips.GET("/export", payslipH.Export)
	payslips.GET("/:id", payslipH.GetByID)

	diag := v1.Group("/diagnostics")
	diag.GET("/attempts", diagH.Attempts)
	diag.GET("/unknown-components", diagH.UnknownComponents)

	return r
}
