package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"

	httpapi "github.com/i474232898/plant-suitability/internal/api/http"
	"github.com/i474232898/plant-suitability/internal/catalog"
	"github.com/i474232898/plant-suitability/internal/config"
	"github.com/i474232898/plant-suitability/internal/identify"
	"github.com/i474232898/plant-suitability/internal/region"
	"github.com/i474232898/plant-suitability/internal/scheduler"
	"github.com/i474232898/plant-suitability/internal/store"
	"github.com/i474232898/plant-suitability/internal/suitability"
	"github.com/i474232898/plant-suitability/internal/weather"
	"github.com/i474232898/plant-suitability/internal/weather/providers"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.SlogLevel()})))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Shared HTTP client for outbound provider calls.
	httpClient := &http.Client{
		Timeout: cfg.Timeout,
	}

	cat := loadCatalog(ctx, cfg.Catalog)
	slog.Info("catalog loaded", "entries", cat.Len())

	// Optional snapshot cache; pruned on a schedule.
	var cache weather.Cache
	if cfg.Weather.CacheTTL > 0 {
		memStore := store.NewMemoryStore(cfg.Weather.CacheTTL)
		cache = memStore

		sched := scheduler.New(memStore, cfg.Weather.PruneInterval)
		if err := sched.Start(); err != nil {
			slog.Error("failed to start scheduler", "error", err)
			os.Exit(1)
		}
		defer sched.Stop()
	}

	provs := buildProviders(cfg.Weather, httpClient)
	service := weather.NewService(cache, provs)
	slog.Info("weather providers configured", "providers", service.ProviderNames())

	loc, err := cfg.Location()
	if err != nil {
		slog.Error("invalid timezone", "error", err)
		os.Exit(1)
	}

	regions := region.NewClassifier(
		cfg.Region.SplitLatitude,
		region.Key(cfg.Region.SouthKey),
		region.Key(cfg.Region.NorthKey),
		region.Key(cfg.Region.DefaultKey),
	)

	var source suitability.WeatherSource
	if len(provs) > 0 {
		source = service
	}
	engine := suitability.NewEngine(cat, source,
		suitability.WithRegions(regions),
		suitability.WithClock(func() time.Time { return time.Now().In(loc) }),
		suitability.WithRecommender(suitability.NewRecommender(
			suitability.DefaultCandidates,
			suitability.CatalogCandidates(cat),
			cfg.Recommend.Concurrency,
		)),
	)

	plantNet := identify.NewPlantNetClient(httpClient, cfg.PlantNet.APIKey)
	if !plantNet.Configured() {
		slog.Warn("PLANTNET_API_KEY not set; identification will report no_api_key")
	}

	app := fiber.New(fiber.Config{
		AppName:               httpapi.ServiceName,
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          2 * cfg.Timeout,
		BodyLimit:             16 * 1024 * 1024,
		ErrorHandler:          httpapi.ErrorHandler,
	})

	// Global middleware
	app.Use(requestid.New(requestid.Config{Generator: uuid.NewString}))
	app.Use(logger.New(logger.Config{
		Format: "${time} ${locals:requestid} ${status} - ${method} ${path} ${latency}\n",
	}))
	app.Use(recover.New())

	deps := httpapi.Deps{
		Engine:     engine,
		Identifier: plantNet,
		Catalog:    cat,
	}
	if len(provs) > 0 {
		deps.Weather = service
	}
	httpapi.RegisterRoutes(app, deps)

	go func() {
		slog.Info("listening", "port", cfg.Port)
		if err := app.Listen(":" + cfg.Port); err != nil {
			slog.Error("fiber server stopped", "error", err)
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		slog.Error("error during shutdown", "error", err)
	}
}

// loadCatalog picks the configured source. Any load failure degrades to the
// empty catalog, where every species resolves through the heuristic rules.
func loadCatalog(ctx context.Context, cfg config.CatalogConfig) *catalog.Catalog {
	var (
		cat *catalog.Catalog
		err error
	)

	switch {
	case cfg.DatabaseURL != "":
		cat, err = loadPostgresCatalog(ctx, cfg.DatabaseURL)
	case cfg.Path != "":
		cat, err = catalog.LoadFile(cfg.Path)
	default:
		cat, err = catalog.Default()
	}
	if err != nil {
		slog.Warn("catalog unavailable, using heuristic rules only", "error", err)
		return catalog.Empty()
	}
	return cat
}

func loadPostgresCatalog(ctx context.Context, url string) (*catalog.Catalog, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	pool, err := catalog.OpenPool(ctx, url)
	if err != nil {
		return nil, err
	}
	// The catalog is read once at start-up.
	defer pool.Close()

	return catalog.LoadPostgres(ctx, pool)
}

// buildProviders returns the providers enabled by cfg, in a stable order.
func buildProviders(cfg config.WeatherConfig, client *http.Client) []weather.Provider {
	var provs []weather.Provider

	if cfg.OpenWeatherAPIKey != "" {
		provs = append(provs, providers.NewOpenWeatherProvider(client, cfg.OpenWeatherAPIKey))
	}
	if cfg.WeatherAPIKey != "" {
		provs = append(provs, providers.NewWeatherAPIProvider(client, cfg.WeatherAPIKey))
	}
	if cfg.OpenMeteoEnabled {
		// Open-Meteo needs no key; place names come from the geocoder when
		// one is configured.
		var reverser providers.Reverser
		if cfg.GeocoderAPIKey != "" {
			reverser = providers.NewGoogleReverser(cfg.GeocoderAPIKey)
		}
		provs = append(provs, providers.NewOpenMeteoProvider(client, reverser))
	}
	return provs
}
