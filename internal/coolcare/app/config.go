package app

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata" // APP_TIMEZONE must resolve in minimal images

	"github.com/coolcare/coolcare/internal/coolcare/push"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Env                  string        // Environment (dev, staging, prod) (default: dev)
	LogLevel             string        // Log level (debug, info, warn, error) (default: info)
	LogFormat            string        // Log format (json, text) (default: json)
	Port                 int           // HTTP server port (default: 8000)
	ShutdownGracePeriod  time.Duration // Graceful shutdown timeout (default: 10s)
	HousekeepingInterval time.Duration // Expired code cleanup interval (default: 1h)

	DatabaseDriver string // sqlite or postgres (default: sqlite)
	DatabaseFile   string // SQLite database file (default: ./coolcare.db)
	DatabaseURL    string // Postgres DSN, required for the postgres driver

	CodeStore     string // Where verification codes live: database, memory, redis (default: database)
	RedisAddr     string // Required for the redis code store
	RedisPassword string
	RedisDB       int

	JWTAlgorithm      string        // HS256 or EdDSA (default: HS256)
	JWTSecret         string        // HS256 secret, at least 32 bytes. Generated per process when empty
	JWTPrivateKeyFile string        // EdDSA PKCS8 PEM file. Generated per process when empty
	Issuer            string        // iss claim (default: coolcare)
	AccessTTL         time.Duration // JWT_EXPIRE_HOURS (default: 24h)
	RefreshTTL        time.Duration // JWT_REFRESH_DAYS (default: 30 days)

	CodeTTL          time.Duration // Verification code lifetime (default: 10m)
	ExposeDebugCodes bool          // Return issued codes in send-code responses (default: true in dev)
	Timezone         string        // IANA zone for naive timestamps and calendar days (default: UTC)

	VAPIDPublicKey   string
	VAPIDPrivateKey  string
	VAPIDSubject     string
	ReminderWindow   time.Duration // PUSH_REMINDER_MINUTES (default: 30m)
	ReminderInterval time.Duration // Reminder sweep interval (default: 5m)
}

// LoadConfig reads the configuration from the environment. When CONFIG_FILE
// names a flat YAML file of KEY: value pairs, its entries are used for keys
// the environment leaves unset.
func LoadConfig() (Config, error) {
	file, err := loadConfigFile(os.Getenv("CONFIG_FILE"))
	if err != nil {
		return Config{}, err
	}
	src := source{file: file}

	env := src.getEnvOrDefault("ENV", "dev")
	cfg := Config{
		Env:                  env,
		LogLevel:             src.getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:            src.getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                 src.getEnvIntOrDefault("PORT", 8000),
		ShutdownGracePeriod:  src.getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
		HousekeepingInterval: src.getEnvDurationOrDefault("HOUSEKEEPING_INTERVAL", 1*time.Hour),

		DatabaseDriver: strings.ToLower(src.getEnvOrDefault("DATABASE_DRIVER", "sqlite")),
		DatabaseFile:   src.getEnvOrDefault("DATABASE_FILE", "coolcare.db"),
		DatabaseURL:    src.get("DATABASE_URL"),

		CodeStore:     strings.ToLower(src.getEnvOrDefault("CODE_STORE", "database")),
		RedisAddr:     src.get("REDIS_ADDR"),
		RedisPassword: src.get("REDIS_PASSWORD"),
		RedisDB:       src.getEnvIntOrDefault("REDIS_DB", 0),

		JWTAlgorithm:      src.getEnvOrDefault("JWT_ALGORITHM", "HS256"),
		JWTSecret:         src.get("JWT_SECRET"),
		JWTPrivateKeyFile: src.get("JWT_PRIVATE_KEY_FILE"),
		Issuer:            src.getEnvOrDefault("JWT_ISSUER", "coolcare"),
		AccessTTL:         time.Duration(src.getEnvIntOrDefault("JWT_EXPIRE_HOURS", 24)) * time.Hour,
		RefreshTTL:        time.Duration(src.getEnvIntOrDefault("JWT_REFRESH_DAYS", 30)) * 24 * time.Hour,

		CodeTTL:          src.getEnvDurationOrDefault("CODE_TTL", 10*time.Minute),
		ExposeDebugCodes: src.getEnvBoolOrDefault("EXPOSE_DEBUG_CODES", env == "dev"),
		Timezone:         src.getEnvOrDefault("APP_TIMEZONE", "UTC"),

		VAPIDPublicKey:   src.get("VAPID_PUBLIC_KEY"),
		VAPIDPrivateKey:  src.get("VAPID_PRIVATE_KEY"),
		VAPIDSubject:     src.get("VAPID_SUBJECT"),
		ReminderWindow:   time.Duration(src.getEnvIntOrDefault("PUSH_REMINDER_MINUTES", 30)) * time.Minute,
		ReminderInterval: src.getEnvDurationOrDefault("PUSH_REMINDER_INTERVAL", 5*time.Minute),
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects combinations the application cannot start with.
func (c Config) Validate() error {
	var errs []error

	switch c.DatabaseDriver {
	case "sqlite":
	case "postgres":
		if c.DatabaseURL == "" {
			errs = append(errs, errors.New("DATABASE_URL is required for the postgres driver"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown DATABASE_DRIVER %q", c.DatabaseDriver))
	}

	switch c.CodeStore {
	case "database", "memory":
	case "redis":
		if c.RedisAddr == "" {
			errs = append(errs, errors.New("REDIS_ADDR is required for the redis code store"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown CODE_STORE %q", c.CodeStore))
	}

	switch c.JWTAlgorithm {
	case "HS256", "EdDSA":
	default:
		errs = append(errs, fmt.Errorf("unsupported JWT_ALGORITHM %q", c.JWTAlgorithm))
	}

	if (c.VAPIDPublicKey == "") != (c.VAPIDPrivateKey == "") {
		errs = append(errs, errors.New("VAPID_PUBLIC_KEY and VAPID_PRIVATE_KEY must be set together"))
	}

	if _, err := c.Location(); err != nil {
		errs = append(errs, err)
	}

	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// Location resolves Timezone.
func (c Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("unknown APP_TIMEZONE %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// VAPID returns the web push key configuration.
func (c Config) VAPID() push.VAPIDConfig {
	return push.VAPIDConfig{
		PublicKey:  c.VAPIDPublicKey,
		PrivateKey: c.VAPIDPrivateKey,
		Subject:    c.VAPIDSubject,
	}
}

// loadConfigFile reads a flat YAML mapping. Keys are matched case-insensitively
// against the environment variable names.
func loadConfigFile(path string) (map[string]string, error) {
	if path == "" {
		return nil, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	values := make(map[string]string, len(raw))
	for k, v := range raw {
		switch v.(type) {
		case nil:
			continue
		case map[string]any, []any:
			return nil, fmt.Errorf("config file %s: %s must be a scalar", path, k)
		}
		values[strings.ToUpper(k)] = fmt.Sprint(v)
	}
	return values, nil
}

// source resolves a key from the environment first, then the config file.
type source struct {
	file map[string]string
}

func (s source) get(key string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return s.file[key]
}

func (s source) getEnvOrDefault(key, defaultValue string) string {
	if value := s.get(key); value != "" {
		return value
	}
	return defaultValue
}

func (s source) getEnvIntOrDefault(key string, defaultValue int) int {
	value := s.get(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func (s source) getEnvBoolOrDefault(key string, defaultValue bool) bool {
	value := s.get(key)
	if value == "" {
		return defaultValue
	}

	if boolValue, err := strconv.ParseBool(value); err == nil {
		return boolValue
	}

	return defaultValue
}

func (s source) getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := s.get(key)
	if value == "" {
		return defaultValue
	}

	// Try parsing as duration (e.g., "1h", "30m", "90s")
	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Try parsing as integer minutes
	if minutes, err := strconv.Atoi(value); err == nil {
		return time.Duration(minutes) * time.Minute
	}

	return defaultValue
}
