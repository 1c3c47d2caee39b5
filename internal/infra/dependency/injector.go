// Package dependency provides dependency injection for the application.
package dependency

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/finance-ledger/backend/config"
	"github.com/finance-ledger/backend/internal/application/adapter"
	"github.com/finance-ledger/backend/internal/application/usecase/category"
	"github.com/finance-ledger/backend/internal/application/usecase/exchange"
	"github.com/finance-ledger/backend/internal/application/usecase/goal"
	"github.com/finance-ledger/backend/internal/application/usecase/report"
	"github.com/finance-ledger/backend/internal/application/usecase/transfer"
	"github.com/finance-ledger/backend/internal/domain/entity"
	domainerror "github.com/finance-ledger/backend/internal/domain/error"
	"github.com/finance-ledger/backend/internal/infra/server/router"
	"github.com/finance-ledger/backend/internal/integration/cache"
	"github.com/finance-ledger/backend/internal/integration/entrypoint/controller"
	"github.com/finance-ledger/backend/internal/integration/entrypoint/middleware"
	"github.com/finance-ledger/backend/internal/integration/persistence"
)

// Injector holds all application dependencies.
type Injector struct {
	Config *config.Config
	DB     *gorm.DB
	Router *router.Router
}

// NewInjector creates a new dependency injector with all dependencies wired.
// A nil redis client disables the report cache.
func NewInjector(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) (*Injector, error) {
	// Create repositories
	currencyRepo := persistence.NewCurrencyRepository(db)
	rateRepo := persistence.NewExchangeRateRepository(db)
	categoryRepo := persistence.NewCategoryRepository(db)
	transferRepo := persistence.NewTransferRepository(db)
	reportRepo := persistence.NewReportRepository(db)
	goalRepo := persistence.NewGoalRepository(db)

	var reportCache adapter.ReportCache
	if redisClient != nil {
		reportCache = cache.NewReportCache(redisClient)
	}

	resolver := exchange.NewResolver(rateRepo)
	treeConfig := category.Config{
		EnforceTypeHomogeneity: cfg.Ledger.EnforceTypeHomogeneity,
	}

	// Percent goals fall back to the shared default currency; make sure it
	// exists before anything evaluates against it.
	defaultCurrency, err := ensureDefaultCurrency(currencyRepo, cfg.Ledger.DefaultCurrencyCode)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve default currency: %w", err)
	}

	// Create currency and exchange rate use cases
	listCurrenciesUseCase := exchange.NewListCurrenciesUseCase(currencyRepo)
	createCurrencyUseCase := exchange.NewCreateCurrencyUseCase(currencyRepo)
	deleteCurrencyUseCase := exchange.NewDeleteCurrencyUseCase(currencyRepo)
	listRatesUseCase := exchange.NewListExchangeRatesUseCase(rateRepo)
	createRateUseCase := exchange.NewCreateExchangeRateUseCase(rateRepo, currencyRepo)
	updateRateUseCase := exchange.NewUpdateExchangeRateUseCase(rateRepo)
	deleteRateUseCase := exchange.NewDeleteExchangeRateUseCase(rateRepo)

	// Create category use cases
	listCategoriesUseCase := category.NewListCategoriesUseCase(categoryRepo)
	getCategoryUseCase := category.NewGetCategoryUseCase(categoryRepo)
	createCategoryUseCase := category.NewCreateCategoryUseCase(categoryRepo, treeConfig)
	moveCategoryUseCase := category.NewMoveCategoryUseCase(categoryRepo, treeConfig)
	deleteCategoryUseCase := category.NewDeleteCategoryUseCase(categoryRepo)

	// Create transfer use cases
	listTransfersUseCase := transfer.NewListTransfersUseCase(transferRepo)
	getTransferUseCase := transfer.NewGetTransferUseCase(transferRepo)
	createTransferUseCase := transfer.NewCreateTransferUseCase(transferRepo, currencyRepo, categoryRepo, resolver)
	updateTransferUseCase := transfer.NewUpdateTransferUseCase(transferRepo, currencyRepo, categoryRepo, resolver)
	deleteTransferUseCase := transfer.NewDeleteTransferUseCase(transferRepo)

	// Create report use cases
	generateReportUseCase := report.NewGenerateReportUseCase(transferRepo, categoryRepo, resolver, reportCache, cfg.Ledger.ReportCacheTTL)
	listReportsUseCase := report.NewListReportsUseCase(reportRepo)
	getReportUseCase := report.NewGetReportUseCase(reportRepo)
	saveReportUseCase := report.NewSaveReportUseCase(reportRepo)
	updateReportUseCase := report.NewUpdateReportUseCase(reportRepo)
	deleteReportUseCase := report.NewDeleteReportUseCase(reportRepo)

	// Create goal use cases
	progressEvaluator := goal.NewProgressEvaluator(generateReportUseCase, categoryRepo, defaultCurrency.ID)
	listGoalsUseCase := goal.NewListGoalsUseCase(goalRepo, progressEvaluator)
	getGoalUseCase := goal.NewGetGoalUseCase(goalRepo, progressEvaluator)
	createGoalUseCase := goal.NewCreateGoalUseCase(goalRepo, categoryRepo)
	updateGoalUseCase := goal.NewUpdateGoalUseCase(goalRepo)
	finishGoalUseCase := goal.NewFinishGoalUseCase(goalRepo)
	deleteGoalUseCase := goal.NewDeleteGoalUseCase(goalRepo)

	// Create controllers
	healthController := controller.NewHealthController(
		func() bool {
			sqlDB, err := db.DB()
			if err != nil {
				return false
			}
			return sqlDB.Ping() == nil
		},
		func() bool {
			if redisClient == nil {
				return false
			}
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			return redisClient.Ping(ctx).Err() == nil
		},
	)

	currencyController := controller.NewCurrencyController(
		listCurrenciesUseCase,
		createCurrencyUseCase,
		deleteCurrencyUseCase,
	)

	exchangeRateController := controller.NewExchangeRateController(
		listRatesUseCase,
		createRateUseCase,
		updateRateUseCase,
		deleteRateUseCase,
	)

	categoryController := controller.NewCategoryController(
		listCategoriesUseCase,
		getCategoryUseCase,
		createCategoryUseCase,
		moveCategoryUseCase,
		deleteCategoryUseCase,
	)

	transferController := controller.NewTransferController(
		listTransfersUseCase,
		getTransferUseCase,
		createTransferUseCase,
		updateTransferUseCase,
		deleteTransferUseCase,
	)

	reportController := controller.NewReportController(
		listReportsUseCase,
		getReportUseCase,
		saveReportUseCase,
		updateReportUseCase,
		deleteReportUseCase,
		generateReportUseCase,
	)

	goalController := controller.NewGoalController(
		listGoalsUseCase,
		getGoalUseCase,
		createGoalUseCase,
		updateGoalUseCase,
		finishGoalUseCase,
		deleteGoalUseCase,
	)

	identityMiddleware := middleware.NewIdentityMiddleware()

	r := router.NewRouter(
		healthController,
		currencyController,
		exchangeRateController,
		categoryController,
		transferController,
		reportController,
		goalController,
		identityMiddleware,
	)

	return &Injector{
		Config: cfg,
		DB:     db,
		Router: r,
	}, nil
}

// ensureDefaultCurrency loads the shared currency with the configured code,
// creating it on first start.
func ensureDefaultCurrency(currencyRepo adapter.CurrencyRepository, code string) (*entity.Currency, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	currency, err := currencyRepo.FindSharedByCode(ctx, code)
	if err == nil {
		return currency, nil
	}
	if !errors.Is(err, domainerror.ErrCurrencyNotFound) {
		return nil, err
	}

	currency = entity.NewCurrency(code, code, code, nil)
	if err := currencyRepo.Create(ctx, currency); err != nil {
		return nil, err
	}
	return currency, nil
}
