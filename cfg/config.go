package cfg

import (
	"errors"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type RedisConfig struct {
	Host     string
	Port     string
	Password string
}

type PostgresConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type ObservabilityConfig struct {
	ServiceName  string
	Environment  string
	OTLPEndpoint string
}

type AuthConfig struct {
	IssuerURL string
	ClientID  string
}

type FlightAPIConfig struct {
	BaseURL string
}

type WeatherAPIConfig struct {
	BaseURL string
}

type PlacesAPIConfig struct {
	BaseURL string
	APIKey  string
}

type CarbonAPIConfig struct {
	BaseURL string
	APIKey  string
}

type Config struct {
	AppEnv          string
	AppPort         string
	FrontendOrigins string

	Redis         RedisConfig
	Postgres      PostgresConfig
	Observability ObservabilityConfig
	Auth          AuthConfig

	FlightAPI  FlightAPIConfig
	WeatherAPI WeatherAPIConfig
	PlacesAPI  PlacesAPIConfig
	CarbonAPI  CarbonAPIConfig

	CacheTTLMinutes       int
	PlanTimeoutSeconds    int
	CarbonCreditThreshold float64
}

func Load() (*Config, error) {
	var errs []error

	err := godotenv.Load()
	if err != nil {
		return nil, errors.New("failed load cfg: " + err.Error())
	}

	appEnv := mustEnv("APP_ENV", &errs)
	appPort := mustEnv("APP_PORT", &errs)
	frontendOrigins := os.Getenv("FRONTEND_ORIGINS")

	redisHost := mustEnv("REDIS_HOST", &errs)
	redisPort := mustEnv("REDIS_PORT", &errs)
	redisPassword := os.Getenv("REDIS_PASSWORD")

	pgHost := mustEnv("POSTGRES_HOST", &errs)
	pgPort := mustEnv("POSTGRES_PORT", &errs)
	pgUser := mustEnv("POSTGRES_USER", &errs)
	pgPassword := mustEnv("POSTGRES_PASSWORD", &errs)
	pgDBName := mustEnv("POSTGRES_DB", &errs)
	pgSSLMode := envOrDefault("POSTGRES_SSLMODE", "disable")

	serviceName := envOrDefault("OTEL_SERVICE_NAME", "tripsmith")
	otlpEndpoint := mustEnv("OTLP_ENDPOINT", &errs)

	authIssuerURL := mustEnv("AUTH_ISSUER_URL", &errs)
	authClientID := mustEnv("AUTH_CLIENT_ID", &errs)

	flightAPIBaseURL := mustEnv("FLIGHT_API_BASE_URL", &errs)
	weatherAPIBaseURL := mustEnv("WEATHER_API_BASE_URL", &errs)
	placesAPIBaseURL := mustEnv("PLACES_API_BASE_URL", &errs)
	placesAPIKey := os.Getenv("PLACES_API_KEY")
	carbonAPIBaseURL := mustEnv("CARBON_API_BASE_URL", &errs)
	carbonAPIKey := os.Getenv("CARBON_API_KEY")

	cacheTTLMinutes, err := strconv.Atoi(mustEnv("CACHE_TTL_MINUTES", &errs))
	if err != nil {
		errs = append(errs, errors.New("conversion failed env: CACHE_TTL_MINUTES"))
	}

	planTimeoutSeconds, err := strconv.Atoi(envOrDefault("PLAN_TIMEOUT_SECONDS", "120"))
	if err != nil {
		errs = append(errs, errors.New("conversion failed env: PLAN_TIMEOUT_SECONDS"))
	}

	creditThreshold, err := strconv.ParseFloat(envOrDefault("CARBON_CREDIT_THRESHOLD", "0.05"), 64)
	if err != nil {
		errs = append(errs, errors.New("conversion failed env: CARBON_CREDIT_THRESHOLD"))
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	return &Config{
		AppEnv:          appEnv,
		AppPort:         appPort,
		FrontendOrigins: frontendOrigins,
		Redis: RedisConfig{
			Host:     redisHost,
			Port:     redisPort,
			Password: redisPassword,
		},
		Postgres: PostgresConfig{
			Host:     pgHost,
			Port:     pgPort,
			User:     pgUser,
			Password: pgPassword,
			DBName:   pgDBName,
			SSLMode:  pgSSLMode,
		},
		Observability: ObservabilityConfig{
			ServiceName:  serviceName,
			Environment:  appEnv,
			OTLPEndpoint: otlpEndpoint,
		},
		Auth: AuthConfig{
			IssuerURL: authIssuerURL,
			ClientID:  authClientID,
		},
		FlightAPI:  FlightAPIConfig{BaseURL: flightAPIBaseURL},
		WeatherAPI: WeatherAPIConfig{BaseURL: weatherAPIBaseURL},
		PlacesAPI:  PlacesAPIConfig{BaseURL: placesAPIBaseURL, APIKey: placesAPIKey},
		CarbonAPI:  CarbonAPIConfig{BaseURL: carbonAPIBaseURL, APIKey: carbonAPIKey},

		CacheTTLMinutes:       cacheTTLMinutes,
		PlanTimeoutSeconds:    planTimeoutSeconds,
		CarbonCreditThreshold: creditThreshold,
	}, nil
}

func mustEnv(key string, errs *[]error) string {
	value, exists := os.LookupEnv(key)
	if !exists || value == "" {
		*errs = append(*errs, errors.New("missing env: "+key))
	}
	return value
}

func envOrDefault(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return fallback
}
