package router

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"egstify/internal/config"
	"egstify/internal/handler"
	"egstify/internal/middleware"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	corsCfg config.CORSConfig,
	healthH *handler.HealthHandler,
	gstH *handler.GSTHandler,
	invoiceH *handler.InvoiceHandler,
	ledgerH *handler.LedgerHandler,
	assistantH *handler.AssistantHandler,
	newsH *handler.NewsHandler,
) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(corsCfg))

	// Health checks
	r.GET("/health", healthH.Health)
	r.GET("/healthz", healthH.Liveness)
	r.GET("/readyz", healthH.Readiness)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Tax-query relay
	r.POST("/granite", assistantH.Relay)

	v1 := r.Group("/api/v1")

	gstRoutes := v1.Group("/gst")
	gstRoutes.GET("/rates", gstH.Rates)
	gstRoutes.POST("/calculate", gstH.Calculate)

	invoices := v1.Group("/invoices")
	invoices.POST("", invoiceH.Submit)
	invoices.POST("/validate", invoiceH.Validate)
	invoices.POST("/verify", invoiceH.Verify)
	invoices.POST("/reconcile", invoiceH.Reconcile)
	invoices.POST("/pdf", invoiceH.PDF)

	ledger := v1.Group("/ledger")
	ledger.GET("", ledgerH.Get)
	ledger.GET("/export", ledgerH.Export)

	v1.POST("/chat", assistantH.Chat)
	v1.GET("/news", newsH.Get)

	return r
}
