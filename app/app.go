package app

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"time"

	"art-customizer/app/controller"
	"art-customizer/app/router"
	"art-customizer/catalog"
	"art-customizer/config"
	"art-customizer/db"
	"art-customizer/preview"
	"art-customizer/pricing"
	"art-customizer/repository"
	"art-customizer/service"
	"art-customizer/session"
)

// App is the wired application
type App struct {
	Handler  http.Handler
	Sessions *session.Manager
	db       *sql.DB
}

// Initialize initializes the application. Background workers stop when ctx is done.
func Initialize(ctx context.Context, cfg *config.Config) (*App, error) {
	// Initialize database connection
	conn, err := db.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	if err := db.EnsureSchema(ctx, conn); err != nil {
		conn.Close()
		return nil, err
	}

	a, err := build(ctx, cfg, conn)
	if err != nil {
		conn.Close()
		return nil, err
	}
	return a, nil
}

// build wires every component on top of an open database
func build(ctx context.Context, cfg *config.Config, conn *sql.DB) (*App, error) {
	cat := catalog.Default()

	engine, err := pricing.NewEngine(cat, cfg.PricingConfigPath)
	if err != nil {
		return nil, err
	}

	// Repositories
	artworkRepo := repository.NewArtworkRepository(conn)
	customizationRepo := repository.NewCustomizationRepository(conn, cat)
	cartRepo := repository.NewCartRepository(conn)
	savedRepo := repository.NewSavedArtworkRepository(conn)

	// Image sources; Drive is only used when credentials are configured
	var driveSource service.ImageSource
	if cfg.GoogleCredentials != "" {
		driveService, err := service.NewDriveService(ctx, cfg.GoogleCredentials)
		if err != nil {
			return nil, err
		}
		driveSource = driveService
	} else {
		log.Printf("⚠️  GOOGLE_APPLICATION_CREDENTIALS not set, drive: images are unavailable")
	}
	imageService := service.NewImageService(
		cfg.ImageCacheDir,
		service.NewHTTPImageSource(cfg.BaseURL, nil),
		driveSource,
		service.NewFileImageSource("static"),
	)
	if err := imageService.EnsureCacheDir(); err != nil {
		return nil, err
	}

	quoteService := service.NewQuoteService(cat, cfg.ChromePath)

	sessions := session.NewManager(session.Dependencies{
		Catalog:  cat,
		Pricer:   engine,
		Composer: preview.NewCompositor(cat),
		Artworks: artworkRepo,
		Store:    customizationRepo,
		Cart:     cartRepo,
	})
	sessions.StartCleanup(ctx, cfg.SweepInterval, cfg.SessionTTL)

	limiter := router.NewRateLimiter(cfg.CommitRatePerSec, cfg.CommitBurst)
	limiter.StartCleanup(ctx, 10*time.Minute, time.Hour)

	// Create controllers
	controllers := &router.Controllers{
		Catalog:       controller.NewCatalogController(cat, engine),
		Artwork:       controller.NewArtworkController(artworkRepo, savedRepo, imageService),
		Session:       controller.NewSessionController(sessions, imageService, quoteService),
		Cart:          controller.NewCartController(cartRepo),
		Customization: controller.NewCustomizationController(customizationRepo),
	}

	mux := http.NewServeMux()
	router.SetupRoutes(mux, controllers, limiter)

	return &App{
		Handler:  router.Instrument(mux),
		Sessions: sessions,
		db:       conn,
	}, nil
}

// Close releases the database connection
func (a *App) Close() error {
	if a.db != nil {
		return a.db.Close()
	}
	return nil
}
