package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config is the full process configuration. Build it with FromEnv.
type Config struct {
	Server    Server
	Mongo     MongoConfig
	Redis     RedisConfig
	JWT       JWTConfig
	Seed      SeedConfig
	Email     EmailConfig
	Applicant ApplicantConfig
	RateLimit RateLimitConfig
	LogLevel  string
}

// Server captures HTTP server level configuration.
type Server struct {
	Addr            string
	CORSOrigins     []string
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration
}

// MongoConfig locates the document store.
type MongoConfig struct {
	URI            string
	Database       string
	ConnectTimeout time.Duration
}

// RedisConfig is optional; an empty URL keeps revocation and rate limits in
// process memory.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// JWTConfig configures admin tokens.
type JWTConfig struct {
	Secret string
	Issuer string
	TTL    time.Duration
}

// ApplicantConfig holds the registration and dashboard knobs.
type ApplicantConfig struct {
	HoldStatus        string
	InstitutionDomain string
}

// RateLimitConfig bounds login attempts per window. A zero limit disables it.
type RateLimitConfig struct {
	LoginLimit  int
	LoginWindow time.Duration
}

const (
	defaultPort              = "5100"
	defaultMongoDB           = "hrcc"
	defaultHoldStatus        = "omitted"
	defaultInstitutionDomain = "srmist.edu.in"
	devJWTSecret             = "your-secret-key"
)

// ErrInvalidConfig marks configuration that cannot start the server.
var ErrInvalidConfig = errors.New("invalid configuration")

// FromEnv loads .env when present and builds the configuration from the
// environment. Missing Mongo settings are reported by ValidateMongo so that
// the notify CLI can reuse the same loader.
func FromEnv() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		Server: Server{
			Addr:            serverAddr(),
			CORSOrigins:     splitList(getEnv("CORS_ORIGINS", "http://localhost:3000,http://localhost:3001")),
			RequestTimeout:  getDuration("REQUEST_TIMEOUT", 30*time.Second),
			ShutdownTimeout: getDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
		},
		Mongo: MongoConfig{
			URI:            strings.TrimSpace(os.Getenv("MONGO_URI")),
			Database:       getEnv("MONGO_DB", defaultMongoDB),
			ConnectTimeout: getDuration("MONGO_CONNECT_TIMEOUT", 10*time.Second),
		},
		Redis: RedisConfig{
			URL:          strings.TrimSpace(os.Getenv("REDIS_URL")),
			PoolSize:     getInt("REDIS_POOL_SIZE", 10),
			MinIdleConns: getInt("REDIS_MIN_IDLE_CONNS", 2),
			DialTimeout:  getDuration("REDIS_DIAL_TIMEOUT", 5*time.Second),
			ReadTimeout:  getDuration("REDIS_READ_TIMEOUT", 3*time.Second),
			WriteTimeout: getDuration("REDIS_WRITE_TIMEOUT", 3*time.Second),
		},
		JWT: JWTConfig{
			Secret: getEnv("JWT_SECRET", devJWTSecret),
			Issuer: getEnv("JWT_ISSUER", "hrcc"),
			TTL:    getDuration("JWT_TTL", 24*time.Hour),
		},
		Email: emailFromEnv(),
		Applicant: ApplicantConfig{
			HoldStatus:        strings.ToLower(getEnv("APPLICANT_HOLD_STATUS", defaultHoldStatus)),
			InstitutionDomain: strings.ToLower(getEnv("INSTITUTION_EMAIL_DOMAIN", defaultInstitutionDomain)),
		},
		RateLimit: RateLimitConfig{
			LoginLimit:  getInt("LOGIN_RATE_LIMIT", 10),
			LoginWindow: getDuration("LOGIN_RATE_WINDOW", 15*time.Minute),
		},
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}

	seed, err := seedFromEnv()
	if err != nil {
		return Config{}, err
	}
	cfg.Seed = seed

	switch cfg.Applicant.HoldStatus {
	case "omitted", "holded":
	default:
		return Config{}, fmt.Errorf("%w: APPLICANT_HOLD_STATUS must be omitted or holded, got %q", ErrInvalidConfig, cfg.Applicant.HoldStatus)
	}
	return cfg, nil
}

// ValidateMongo reports whether the Mongo URI can be used.
func (c Config) ValidateMongo() error {
	if c.Mongo.URI == "" {
		return fmt.Errorf("%w: MONGO_URI is not set", ErrInvalidConfig)
	}
	if !strings.HasPrefix(c.Mongo.URI, "mongodb://") && !strings.HasPrefix(c.Mongo.URI, "mongodb+srv://") {
		return fmt.Errorf("%w: MONGO_URI must start with mongodb:// or mongodb+srv://", ErrInvalidConfig)
	}
	return nil
}

// UsesDevSecret is true when JWT_SECRET was not provided.
func (c Config) UsesDevSecret() bool {
	return c.JWT.Secret == devJWTSecret
}

func serverAddr() string {
	if addr := strings.TrimSpace(os.Getenv("ADDR")); addr != "" {
		return addr
	}
	return ":" + getEnv("PORT", defaultPort)
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getBool(key string) bool {
	v, err := strconv.ParseBool(strings.TrimSpace(os.Getenv(key)))
	return err == nil && v
}

func getInt(key string, fallback int) int {
	v, err := strconv.Atoi(strings.TrimSpace(os.Getenv(key)))
	if err != nil {
		return fallback
	}
	return v
}

func getDuration(key string, fallback time.Duration) time.Duration {
	v, err := time.ParseDuration(strings.TrimSpace(os.Getenv(key)))
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
