// Package dependency provides dependency injection for the application.
package dependency

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/kakeibo/backend/config"
	"github.com/kakeibo/backend/internal/application/adapter"
	"github.com/kakeibo/backend/internal/application/usecase/auth"
	"github.com/kakeibo/backend/internal/application/usecase/category"
	"github.com/kakeibo/backend/internal/application/usecase/dashboard"
	"github.com/kakeibo/backend/internal/application/usecase/entry"
	"github.com/kakeibo/backend/internal/infra/messaging"
	"github.com/kakeibo/backend/internal/infra/server/router"
	"github.com/kakeibo/backend/internal/integration/adapters"
	"github.com/kakeibo/backend/internal/integration/entrypoint/controller"
	"github.com/kakeibo/backend/internal/integration/entrypoint/middleware"
	"github.com/kakeibo/backend/internal/integration/events"
	"github.com/kakeibo/backend/internal/integration/persistence"
)

// EventBus carries ledger events from mutating use cases to live aggregators.
type EventBus interface {
	adapter.EventPublisher
	adapter.EventSubscriber
}

// Options holds optional collaborators of the injector.
type Options struct {
	// Redis switches the event bus to Redis pub/sub when set.
	Redis *redis.Client
	// BcryptCost overrides adapters.DefaultBcryptCost when positive.
	BcryptCost int
	// Clock overrides time.Now when resolving the default month.
	Clock  func() time.Time
	Logger *slog.Logger
}

// Injector holds all application dependencies.
type Injector struct {
	Config          *config.Config
	DB              *gorm.DB
	Router          *router.Router
	Bus             EventBus
	TokenRepository persistence.TokenRepository
}

// NewInjector creates a new dependency injector with all dependencies wired.
func NewInjector(cfg *config.Config, db *gorm.DB, opts Options) (*Injector, error) {
	scheme, err := cfg.Scheme()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve category scheme: %w", err)
	}

	clock := opts.Clock
	if clock == nil {
		clock = time.Now
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	// Event bus
	var bus EventBus
	if opts.Redis != nil {
		bus = events.NewRedisBus(opts.Redis, cfg.Redis.ChannelPrefix, events.DefaultBufferSize)
	} else {
		bus = events.NewMemoryBus(events.DefaultBufferSize)
	}

	// Repositories
	userRepo := persistence.NewUserRepository(db)
	tokenRepo := persistence.NewTokenRepository(db)
	categoryRepo := persistence.NewCategoryRepository(db)
	entryRepo := persistence.NewEntryRepository(db)

	// Adapters/services
	bcryptCost := adapters.DefaultBcryptCost
	if opts.BcryptCost > 0 {
		bcryptCost = opts.BcryptCost
	}
	passwordService := adapters.NewPasswordService(bcryptCost)
	tokenService := adapters.NewTokenService(adapters.TokenConfig{
		Secret:     cfg.JWT.Secret,
		AccessTTL:  cfg.JWT.AccessTokenExpiry,
		RefreshTTL: cfg.JWT.RefreshTokenExpiry,
	}, tokenRepo)
	exporter := adapters.NewExcelExporter()

	// Category use cases
	listCategoriesUseCase := category.NewListCategoriesUseCase(categoryRepo, scheme)
	createCategoryUseCase := category.NewCreateCategoryUseCase(categoryRepo, scheme)
	updateCategoryUseCase := category.NewUpdateCategoryUseCase(categoryRepo, scheme)
	deleteCategoryUseCase := category.NewDeleteCategoryUseCase(categoryRepo, bus, scheme)
	ensureParentsUseCase := category.NewEnsureParentsUseCase(categoryRepo, scheme)
	ensureAllParentsUseCase := category.NewEnsureAllParentsUseCase(ensureParentsUseCase)

	// Auth use cases
	registerUseCase := auth.NewRegisterUserUseCase(userRepo, passwordService, tokenService, ensureAllParentsUseCase)
	loginUseCase := auth.NewLoginUserUseCase(userRepo, passwordService, tokenService, ensureAllParentsUseCase)
	refreshTokenUseCase := auth.NewRefreshTokenUseCase(tokenService)
	logoutUseCase := auth.NewLogoutUserUseCase(tokenService)

	// Entry use cases
	listEntriesUseCase := entry.NewListEntriesUseCase(entryRepo).WithClock(clock)
	createEntryUseCase := entry.NewCreateEntryUseCase(entryRepo, categoryRepo, bus)
	updateEntryUseCase := entry.NewUpdateEntryUseCase(entryRepo, categoryRepo, bus)
	deleteEntryUseCase := entry.NewDeleteEntryUseCase(entryRepo, bus)

	// Dashboard use cases
	getMonthlySummaryUseCase := dashboard.NewGetMonthlySummaryUseCase(entryRepo).WithClock(clock)
	watchMonthlySummaryUseCase := dashboard.NewWatchMonthlySummaryUseCase(entryRepo, bus).WithClock(clock)
	getCategoryEntriesUseCase := dashboard.NewGetCategoryEntriesUseCase(entryRepo, categoryRepo).WithClock(clock)
	exportMonthlySummaryUseCase := dashboard.NewExportMonthlySummaryUseCase(entryRepo, exporter).WithClock(clock)
	getMonthlyTrendsUseCase := dashboard.NewGetMonthlyTrendsUseCase(entryRepo).WithClock(clock)

	// Controllers
	healthChecks := map[string]controller.HealthChecker{
		"database": func(ctx context.Context) error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		},
	}
	if opts.Redis != nil {
		healthChecks["redis"] = messaging.HealthCheck(opts.Redis)
	}
	healthController := controller.NewHealthController(healthChecks)

	authController := controller.NewAuthController(
		registerUseCase,
		loginUseCase,
		refreshTokenUseCase,
		logoutUseCase,
	)

	categoryController := controller.NewCategoryController(
		listCategoriesUseCase,
		createCategoryUseCase,
		updateCategoryUseCase,
		deleteCategoryUseCase,
		ensureParentsUseCase,
		ensureAllParentsUseCase,
		scheme,
	)

	entryController := controller.NewEntryController(
		listEntriesUseCase,
		createEntryUseCase,
		updateEntryUseCase,
		deleteEntryUseCase,
	)

	dashboardController := controller.NewDashboardController(
		getMonthlySummaryUseCase,
		watchMonthlySummaryUseCase,
		getCategoryEntriesUseCase,
		exportMonthlySummaryUseCase,
		getMonthlyTrendsUseCase,
	)

	// Middleware
	loginRateLimiter := middleware.NewRateLimiter(
		middleware.DefaultMaxAttempts,
		middleware.DefaultWindowDuration,
		cfg.IsTest(),
	)
	authMiddleware := middleware.NewAuthMiddleware(tokenService)

	r := router.NewRouter(
		healthController,
		authController,
		categoryController,
		entryController,
		dashboardController,
		loginRateLimiter,
		authMiddleware,
		logger,
	)

	return &Injector{
		Config:          cfg,
		DB:              db,
		Router:          r,
		Bus:             bus,
		TokenRepository: tokenRepo,
	}, nil
}
