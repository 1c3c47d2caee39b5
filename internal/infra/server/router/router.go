// Package router sets up the HTTP routing for the application.
package router

import (
	"github.com/gin-gonic/gin"

	"github.com/finance-ledger/backend/internal/integration/entrypoint/controller"
	"github.com/finance-ledger/backend/internal/integration/entrypoint/middleware"
)

// Router holds the Gin engine and controller dependencies.
type Router struct {
	engine                 *gin.Engine
	healthController       *controller.HealthController
	currencyController     *controller.CurrencyController
	exchangeRateController *controller.ExchangeRateController
	categoryController     *controller.CategoryController
	transferController     *controller.TransferController
	reportController       *controller.ReportController
	goalController         *controller.GoalController
	identityMiddleware     *middleware.IdentityMiddleware
}

// NewRouter creates a new router instance with all dependencies.
func NewRouter(
	healthController *controller.HealthController,
	currencyController *controller.CurrencyController,
	exchangeRateController *controller.ExchangeRateController,
	categoryController *controller.CategoryController,
	transferController *controller.TransferController,
	reportController *controller.ReportController,
	goalController *controller.GoalController,
	identityMiddleware *middleware.IdentityMiddleware,
) *Router {
	return &Router{
		healthController:       healthController,
		currencyController:     currencyController,
		exchangeRateController: exchangeRateController,
		categoryController:     categoryController,
		transferController:     transferController,
		reportController:       reportController,
		goalController:         goalController,
		identityMiddleware:     identityMiddleware,
	}
}

// Setup configures and returns the Gin engine with all routes.
func (r *Router) Setup(environment string) *gin.Engine {
	if environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else if environment == "test" {
		gin.SetMode(gin.TestMode)
	}

	r.engine = gin.Default()

	r.engine.GET("/health", r.healthController.Check)
	r.setupAPIRoutes()

	return r.engine
}

// setupAPIRoutes configures the main API routes. Every route is scoped to
// the owner resolved by the identity middleware.
func (r *Router) setupAPIRoutes() {
	v1 := r.engine.Group("/api/v1")
	v1.Use(r.identityMiddleware.Resolve())
	{
		currencies := v1.Group("/currencies")
		{
			currencies.GET("", r.currencyController.List)
			currencies.POST("", r.currencyController.Create)
			currencies.DELETE("/:id", r.currencyController.Delete)
		}

		exchangeRates := v1.Group("/exchange-rates")
		{
			exchangeRates.GET("", r.exchangeRateController.List)
			exchangeRates.POST("", r.exchangeRateController.Create)
			exchangeRates.PATCH("/:id", r.exchangeRateController.Update)
			exchangeRates.DELETE("/:id", r.exchangeRateController.Delete)
		}

		categories := v1.Group("/categories")
		{
			categories.GET("", r.categoryController.List)
			categories.POST("", r.categoryController.Create)
			categories.GET("/:id", r.categoryController.Get)
			categories.POST("/:id/move", r.categoryController.Move)
			categories.DELETE("/:id", r.categoryController.Delete)
		}

		transfers := v1.Group("/transfers")
		{
			transfers.GET("", r.transferController.List)
			transfers.POST("", r.transferController.Create)
			transfers.GET("/:id", r.transferController.Get)
			transfers.PUT("/:id", r.transferController.Update)
			transfers.DELETE("/:id", r.transferController.Delete)
		}

		reports := v1.Group("/reports")
		{
			reports.GET("", r.reportController.List)
			reports.POST("", r.reportController.Save)
			reports.POST("/generate", r.reportController.Generate)
			reports.GET("/:id", r.reportController.Get)
			reports.PUT("/:id", r.reportController.Update)
			reports.DELETE("/:id", r.reportController.Delete)
			reports.POST("/:id/generate", r.reportController.GenerateSaved)
		}

		goals := v1.Group("/goals")
		{
			goals.GET("", r.goalController.List)
			goals.POST("", r.goalController.Create)
			goals.GET("/:id", r.goalController.Get)
			goals.GET("/:id/progress", r.goalController.Progress)
			goals.PATCH("/:id", r.goalController.Update)
			goals.POST("/:id/finish", r.goalController.Finish)
			goals.DELETE("/:id", r.goalController.Delete)
		}
	}
}

// Engine returns the underlying Gin engine.
func (r *Router) Engine() *gin.Engine {
	return r.engine
}
