package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	_ "tripsmith/api" // swagger docs

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/lib/pq"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"tripsmith/cfg"
	"tripsmith/internal/booking"
	"tripsmith/internal/flight"
	"tripsmith/internal/itinerary"
	"tripsmith/internal/prefs"
	"tripsmith/internal/trips"
	"tripsmith/pkg/auth"
	"tripsmith/pkg/cache"
	"tripsmith/pkg/db"
	"tripsmith/pkg/idgen"
	"tripsmith/pkg/logger"
	"tripsmith/pkg/travelapi"
)

func main() {
	// ============
	// config
	// ============
	config, err := cfg.Load()
	if err != nil {
		log.Fatal(err)
	}

	// ============
	// logger
	// ============
	zlogger := logger.NewZeroLog(config.AppEnv)

	// ============
	// Otel
	// ============
	shutdownOtel, err := initOtel(context.Background(), &config.Observability, zlogger)
	if err != nil {
		log.Fatalf("failed to initialize OpenTelemetry: %v", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownOtel(ctx); err != nil {
			log.Printf("failed to shutdown OpenTelemetry: %v", err)
		}
	}()

	// ============
	// Postgres
	// ============
	pg := config.Postgres
	pgDSN := fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		pg.User, pg.Password, pg.Host, pg.Port, pg.DBName, pg.SSLMode,
	)

	sqlClient, err := db.NewSQLClient("postgres", pgDSN)
	if err != nil {
		log.Fatal(err)
	}

	// =========
	// Migrate
	// =========
	m, err := migrate.New("file://db/migrations", pgDSN)
	if err != nil {
		log.Fatal(err)
	}
	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		log.Fatal(err)
	}

	// ============
	// Cache
	// ============
	redisAddr := config.Redis.Host + ":" + config.Redis.Port
	redisCache := cache.NewRedisCache(redisAddr, config.Redis.Password)
	cacheTTL := time.Duration(config.CacheTTLMinutes) * time.Minute

	// ============
	// ID generator
	// ============
	ids, err := idgen.NewSnowflakeGenerator(1)
	if err != nil {
		log.Fatal(err)
	}

	// ============
	// Provider clients
	// ============
	httpClient := &http.Client{Timeout: 15 * time.Second}
	limiter := travelapi.NewProviderLimiter(travelapi.DefaultRateLimitConfig())

	offerClient := travelapi.NewFlightAPIClient(httpClient, config.FlightAPI.BaseURL, limiter, zlogger)
	weatherClient := travelapi.NewWeatherClient(httpClient, config.WeatherAPI.BaseURL, limiter, zlogger)
	placesClient := travelapi.NewPlacesClient(httpClient, config.PlacesAPI.BaseURL, config.PlacesAPI.APIKey, limiter, zlogger)
	carbonClient := travelapi.NewCarbonClient(httpClient, config.CarbonAPI.BaseURL, limiter, zlogger)

	// ============
	// Services
	// ============
	calc := flight.NewCalculator(config.CarbonCreditThreshold)
	flightService := flight.NewService(offerClient, redisCache, config.CacheTTLMinutes, calc, zlogger)
	selections := flight.NewSelectionStore(redisCache, cacheTTL)
	planService := itinerary.NewService(
		offerClient, weatherClient, placesClient, carbonClient,
		redisCache, calc, config.PlanTimeoutSeconds, zlogger,
	)
	prefStore := prefs.NewStore(sqlClient)
	prefSummaries := prefs.NewVersionedCache(redisCache, cacheTTL)
	tripRepo := trips.NewRepository(sqlClient)
	bookingStore := booking.NewStore(sqlClient)

	// ============
	// Auth
	// ============
	verifier, err := auth.NewVerifier(context.Background(), config.Auth.IssuerURL, config.Auth.ClientID, zlogger)
	if err != nil {
		log.Fatal(err)
	}

	// ============
	// HTTP
	// ============
	r := gin.Default()
	r.Use(otelgin.Middleware(config.Observability.ServiceName))
	r.Use(TraceLoggerMiddleware(zlogger))
	r.Use(corsMiddleware(config.FrontendOrigins))

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := r.Group("/v1")
	v1.Use(verifier.Middleware())
	{
		flight.NewFlightHandler(flightService, selections).RegisterRoutes(v1)
		itinerary.NewItineraryHandler(planService).RegisterRoutes(v1)
		prefs.NewPrefsHandler(prefStore, prefSummaries, zlogger).RegisterRoutes(v1)
		trips.NewTripsHandler(tripRepo).RegisterRoutes(v1)
		booking.NewBookingHandler(bookingStore, selections, ids).RegisterRoutes(v1)
	}

	if err := r.Run(":" + config.AppPort); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func corsMiddleware(origins string) gin.HandlerFunc {
	corsConfig := cors.DefaultConfig()
	if origins == "" {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = strings.Split(origins, ",")
	}
	corsConfig.AllowCredentials = true
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization")
	return cors.New(corsConfig)
}
