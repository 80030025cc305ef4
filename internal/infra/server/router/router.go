// Package router sets up the HTTP routing for the application.
package router

import (
	"github.com/gin-gonic/gin"

	"github.com/freight-backoffice/backend/internal/integration/entrypoint/controller"
	"github.com/freight-backoffice/backend/internal/integration/entrypoint/middleware"
)

// Router holds the Gin engine and controller dependencies.
type Router struct {
	engine                   *gin.Engine
	healthController         *controller.HealthController
	statementController      *controller.StatementController
	transactionController    *controller.TransactionController
	classificationController *controller.ClassificationController
	reconciliationController *controller.ReconciliationController
	invoiceController        *controller.InvoiceController
	shipmentController       *controller.ShipmentController
	quoteController          *controller.QuoteController
	pickupController         *controller.PickupController
	contactController        *controller.ContactController
	syncController           *controller.SyncController
	writeRateLimiter         *middleware.RateLimiter
}

// Controllers groups the controllers served by the router.
type Controllers struct {
	Health         *controller.HealthController
	Statement      *controller.StatementController
	Transaction    *controller.TransactionController
	Classification *controller.ClassificationController
	Reconciliation *controller.ReconciliationController
	Invoice        *controller.InvoiceController
	Shipment       *controller.ShipmentController
	Quote          *controller.QuoteController
	Pickup         *controller.PickupController
	Contact        *controller.ContactController
	Sync           *controller.SyncController
}

// NewRouter creates a new router instance with all dependencies.
// writeRateLimiter guards the routes that rewrite a whole ledger.
func NewRouter(controllers Controllers, writeRateLimiter *middleware.RateLimiter) *Router {
	return &Router{
		healthController:         controllers.Health,
		statementController:      controllers.Statement,
		transactionController:    controllers.Transaction,
		classificationController: controllers.Classification,
		reconciliationController: controllers.Reconciliation,
		invoiceController:        controllers.Invoice,
		shipmentController:       controllers.Shipment,
		quoteController:          controllers.Quote,
		pickupController:         controllers.Pickup,
		contactController:        controllers.Contact,
		syncController:           controllers.Sync,
		writeRateLimiter:         writeRateLimiter,
	}
}

// Setup configures and returns the Gin engine with all routes.
func (r *Router) Setup(environment string) *gin.Engine {
	// Set Gin mode based on environment
	if environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else if environment == "test" {
		gin.SetMode(gin.TestMode)
	}

	// Create router with default middleware (logger and recovery)
	r.engine = gin.Default()
	r.engine.Use(middleware.Session())

	// Setup routes
	r.setupHealthRoutes()
	r.setupAPIRoutes()

	return r.engine
}

// setupHealthRoutes configures health check endpoints.
func (r *Router) setupHealthRoutes() {
	r.engine.GET("/health", r.healthController.Check)
}

// guarded returns the rate limiter middleware, or a pass-through when none is configured.
func (r *Router) guarded() gin.HandlerFunc {
	if r.writeRateLimiter == nil {
		return func(c *gin.Context) { c.Next() }
	}
	return r.writeRateLimiter.Middleware()
}

// setupAPIRoutes configures the main API routes.
func (r *Router) setupAPIRoutes() {
	v1 := r.engine.Group("/api/v1")

	if r.statementController != nil {
		statements := v1.Group("/statements")
		{
			statements.POST("/preview", r.statementController.Preview)
			statements.POST("/import", r.guarded(), r.statementController.Import)
		}
	}

	if r.transactionController != nil {
		transactions := v1.Group("/transactions")
		{
			transactions.GET("", r.transactionController.List)
			transactions.GET("/summary", r.transactionController.Summary)
			transactions.GET("/pending-classification", r.transactionController.PendingClassification)
			transactions.PATCH("/:id/classification", r.transactionController.UpdateClassification)
			transactions.POST("/classification-suggestions", r.transactionController.Suggest)
		}
	}

	if r.classificationController != nil {
		classification := v1.Group("/classification")
		{
			classification.GET("/rules", r.classificationController.Rules)
			classification.POST("/test", r.classificationController.Test)
		}
	}

	if r.reconciliationController != nil {
		reconciliation := v1.Group("/reconciliation")
		{
			reconciliation.GET("/unreconciled", r.reconciliationController.Unreconciled)
			reconciliation.POST("/link", r.reconciliationController.Link)
			reconciliation.POST("/invoices", r.reconciliationController.Invoices)
		}
	}

	if r.invoiceController != nil {
		invoices := v1.Group("/invoices")
		{
			invoices.GET("", r.invoiceController.List)
			invoices.GET("/:number", r.invoiceController.Detail)
		}
	}

	if r.shipmentController != nil {
		shipments := v1.Group("/shipments")
		{
			shipments.GET("/search", r.shipmentController.Search)
			shipments.GET("/dashboard", r.shipmentController.Dashboard)
			shipments.POST("/refresh", r.shipmentController.Refresh)
		}
	}

	if r.quoteController != nil {
		quotes := v1.Group("/quotes")
		{
			quotes.POST("", r.quoteController.Calculate)
			quotes.GET("", r.quoteController.List)
		}
	}

	if r.pickupController != nil {
		pickups := v1.Group("/pickups")
		{
			pickups.POST("", r.pickupController.Create)
			pickups.GET("", r.pickupController.List)
			pickups.PATCH("/:number/status", r.pickupController.UpdateStatus)
		}
	}

	if r.contactController != nil {
		contacts := v1.Group("/contacts")
		{
			contacts.GET("", r.contactController.List)
			contacts.GET("/lookup", r.contactController.Lookup)
			contacts.POST("/import", r.guarded(), r.contactController.Import)
			contacts.POST("", r.contactController.Create)
			contacts.PUT("/:id", r.contactController.Update)
			contacts.DELETE("/:id", r.contactController.Delete)
		}
	}

	if r.syncController != nil {
		v1.POST("/sync", r.guarded(), r.syncController.Sync)
	}
}
