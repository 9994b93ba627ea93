package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Store drivers.
const (
	StoreDriverMongo  = "mongo"
	StoreDriverMemory = "memory"
)

// JWTConfig defines issuer/secret pair for auth verification.
type JWTConfig struct {
	Issuer string
	Secret []byte
}

// Config holds runtime configuration shared across the application.
type Config struct {
	Addr                  string
	StoreDriver           string
	MongoURI              string
	MongoDatabase         string
	JobCollection         string
	ApplicationCollection string
	Timeout               time.Duration
	JWTConfigs            []JWTConfig
	JWTAudience           string
	AllowedOrigins        []string
	RedisAddr             string
	RedisPassword         string
	RedisDB               int
	IdempotencyTTL        time.Duration
	NATSURL               string
	NATSConnTimeout       time.Duration
	OTELCollectorURL      string
	SessionIdleTTL        time.Duration
	SessionSweepInterval  time.Duration
	LogLevel              string
	Logger                *zap.Logger
}

// Load reads the optional .env file and environment variables and returns a fully populated Config.
func Load() (Config, error) {
	_ = godotenv.Load()

	driver := strings.ToLower(envOrDefault("STORE_DRIVER", StoreDriverMongo))
	if driver != StoreDriverMongo && driver != StoreDriverMemory {
		return Config{}, errors.New("STORE_DRIVER must be mongo or memory")
	}

	var jwtConfigs []JWTConfig
	if secret := strings.TrimSpace(os.Getenv("AUTH_JWT_SECRET")); secret != "" {
		jwtConfigs = append(jwtConfigs, JWTConfig{
			Issuer: envOrDefault("AUTH_JWT_ISSUER", "jobboard-auth"),
			Secret: []byte(secret),
		})
	}
	if secret := strings.TrimSpace(os.Getenv("AUTH_JWT_PREVIOUS_SECRET")); secret != "" {
		jwtConfigs = append(jwtConfigs, JWTConfig{
			Issuer: envOrDefault("AUTH_JWT_ISSUER", "jobboard-auth"),
			Secret: []byte(secret),
		})
	}
	if len(jwtConfigs) == 0 {
		return Config{}, errors.New("JWT secret not configured, set AUTH_JWT_SECRET")
	}

	redisDB := 0
	if raw := strings.TrimSpace(os.Getenv("REDIS_DB")); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			return Config{}, errors.New("REDIS_DB must be a non-negative integer")
		}
		redisDB = parsed
	}

	logLevel := envOrDefault("LOG_LEVEL", "info")
	logger, err := newLogger(logLevel, envOrDefault("LOG_FORMAT", "json"))
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		Addr:                  envOrDefault("HTTP_ADDR", ":8080"),
		StoreDriver:           driver,
		MongoURI:              envOrDefault("MONGO_URI", "mongodb://mongo:27017"),
		MongoDatabase:         envOrDefault("MONGO_DB", "jobboard"),
		JobCollection:         envOrDefault("JOB_COLLECTION", "jobs"),
		ApplicationCollection: envOrDefault("APPLICATION_COLLECTION", "applications"),
		Timeout:               parseDuration("MONGO_CONNECT_TIMEOUT", 10*time.Second),
		JWTConfigs:            jwtConfigs,
		JWTAudience:           strings.TrimSpace(os.Getenv("AUTH_JWT_AUDIENCE")),
		AllowedOrigins:        parseList("API_ALLOWED_ORIGINS", []string{"*"}),
		RedisAddr:             strings.TrimSpace(os.Getenv("REDIS_ADDR")),
		RedisPassword:         os.Getenv("REDIS_PASSWORD"),
		RedisDB:               redisDB,
		IdempotencyTTL:        parseDuration("IDEMPOTENCY_TTL", 24*time.Hour),
		NATSURL:               strings.TrimSpace(os.Getenv("NATS_URL")),
		NATSConnTimeout:       parseDuration("NATS_CONN_TIMEOUT", 10*time.Second),
		OTELCollectorURL:      strings.TrimSpace(os.Getenv("OTEL_COLLECTOR_URL")),
		SessionIdleTTL:        parseDuration("SESSION_IDLE_TTL", 30*time.Minute),
		SessionSweepInterval:  parseDuration("SESSION_SWEEP_INTERVAL", time.Minute),
		LogLevel:              logLevel,
		Logger:                logger,
	}

	cfg.Logger.Info("loaded config",
		zap.String("addr", cfg.Addr),
		zap.String("storeDriver", cfg.StoreDriver),
		zap.Bool("redis", cfg.RedisAddr != ""),
		zap.Bool("nats", cfg.NATSURL != ""),
		zap.Bool("tracing", cfg.OTELCollectorURL != ""))

	return cfg, nil
}

func newLogger(level, format string) (*zap.Logger, error) {
	atomic, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, err
	}
	zcfg := zap.NewProductionConfig()
	if strings.EqualFold(format, "console") {
		zcfg = zap.NewDevelopmentConfig()
	}
	zcfg.Level = atomic
	zcfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	return zcfg.Build()
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parseDuration(key string, fallback time.Duration) time.Duration {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}
	return parsed
}

func parseList(key string, fallback []string) []string {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}

	parts := strings.Split(raw, ",")
	values := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part != "" {
			values = append(values, part)
		}
	}

	if len(values) == 0 {
		return fallback
	}
	return values
}
