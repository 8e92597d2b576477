package app

import (
	"context"
	"fmt"
	"net/http"

	"fnp-marketplace/app/controller"
	"fnp-marketplace/app/router"
	"fnp-marketplace/config"
	"fnp-marketplace/db"
	"fnp-marketplace/logger"
	"fnp-marketplace/messaging"
	"fnp-marketplace/metrics"
	"fnp-marketplace/repository"
	"fnp-marketplace/repository/cache"
	"fnp-marketplace/service"
)

// Initialize connects every backing service, wires the layers together and returns the HTTP handler.
// The returned cleanup closes what Initialize opened and must be called on shutdown.
func Initialize(ctx context.Context, cfg *config.Config) (http.Handler, func(), error) {
	var closers []func()
	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	// Initialize database connection
	dsn, err := cfg.DSN()
	if err != nil {
		return nil, nil, err
	}
	if err := db.InitDB(dsn); err != nil {
		return nil, nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	closers = append(closers, func() {
		if err := db.CloseDB(); err != nil {
			logger.Log.Warnf("⚠️ Failed to close database: %v", err)
		}
	})
	if err := db.Migrate(ctx); err != nil {
		cleanup()
		return nil, nil, err
	}

	// Price list read cache
	var priceListCache cache.PriceListCache = cache.NopPriceListCache{}
	if cfg.RedisAddr != "" {
		redisCache, err := cache.NewRedisPriceListCache(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.CacheTTL)
		if err != nil {
			cleanup()
			return nil, nil, err
		}
		priceListCache = redisCache
		closers = append(closers, func() { redisCache.Close() })
		logger.Log.Infof("✓ Price list cache: redis at %s (ttl %s)", cfg.RedisAddr, cfg.CacheTTL)
	}

	// Price list events
	var publisher messaging.Publisher = messaging.NopPublisher{}
	if cfg.NATSURL != "" {
		natsPublisher, err := messaging.NewNATSPublisher(cfg.NATSURL)
		if err != nil {
			cleanup()
			return nil, nil, err
		}
		publisher = natsPublisher
		closers = append(closers, natsPublisher.Close)
		logger.Log.Infof("✓ Price list events: nats at %s", cfg.NATSURL)
	}

	store, err := newImageStore(ctx, cfg)
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	logger.Log.Infof("✓ Image store: %s", store.Kind())

	// Initialize repositories
	priceListRepo := repository.NewPriceListRepository()
	userRepo := repository.NewUserRepository()
	brandRepo := repository.NewBrandRepository()
	productRepo := repository.NewProductRepository()
	farmProduceRepo := repository.NewFarmProduceRepository()
	imageRepo := repository.NewImageRepository()

	// Initialize services
	metricsManager := metrics.NewManager()
	priceListService := service.NewPriceListService(priceListRepo, priceListCache, publisher, metricsManager)
	documentService := service.NewPriceListDocumentService(cfg.ChromePath)
	authService := service.NewAuthService(userRepo, cfg.JWTSecret, cfg.TokenTTL)
	userService := service.NewUserService(userRepo)
	catalogService := service.NewCatalogService(brandRepo, productRepo, farmProduceRepo)
	imageService := service.NewImageService(store, imageRepo)

	if cfg.AdminEmail != "" && cfg.AdminPassword != "" {
		if err := userService.EnsureAdmin(ctx, cfg.AdminEmail, cfg.AdminPassword); err != nil {
			cleanup()
			return nil, nil, err
		}
	}

	// Create controllers
	controllers := &router.Controllers{
		PriceList: controller.NewPriceListController(priceListService, documentService),
		Grade:     controller.NewGradeController(),
		Auth:      controller.NewAuthController(authService),
		User:      controller.NewUserController(userService),
		Catalog:   controller.NewCatalogController(catalogService),
		Image:     controller.NewImageController(imageService),
	}

	opts := router.Options{Tokens: authService, Metrics: metricsManager}
	if local, ok := store.(*service.LocalImageStore); ok {
		opts.ImageDir = local.Dir()
	}

	return router.SetupRoutes(controllers, opts), cleanup, nil
}

// newImageStore builds the image host selected by IMAGE_STORE
func newImageStore(ctx context.Context, cfg *config.Config) (service.ImageStore, error) {
	switch cfg.ImageStore {
	case service.StoreDrive:
		store, err := service.NewDriveService(ctx, cfg.DriveCredentials, cfg.DriveFolderID)
		if err != nil {
			return nil, err
		}
		return store, nil
	case service.StoreMinio:
		store, err := service.NewMinioImageStore(ctx, cfg.MinioEndpoint, cfg.MinioAccessKey, cfg.MinioSecretKey,
			cfg.MinioBucket, cfg.MinioUseSSL, cfg.MinioPublicURL)
		if err != nil {
			return nil, err
		}
		return store, nil
	default:
		store, err := service.NewLocalImageStore(cfg.ImageDir, cfg.BaseURL)
		if err != nil {
			return nil, err
		}
		return store, nil
	}
}
