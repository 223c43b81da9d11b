package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"unicode/utf8"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Auth     AuthConfig
	Filter   FilterConfig
}

type ServerConfig struct {
	Host string
	Port int
}

type DatabaseConfig struct {
	URL            string
	MaxConns       int
	MinConns       int
	MigrationsPath string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type AuthConfig struct {
	JWTSecret    string
	APIKeyHeader string
}

type FilterConfig struct {
	MaskChar              rune
	FuzzyMatch            bool
	CaseSensitive         bool
	MediumReviewThreshold int
	// WordsFile points at an optional JSON file with per-tier word lists.
	WordsFile string
	// Per-tier word lists supplied directly through the environment,
	// comma-separated.
	HighWords   []string
	MediumWords []string
	LowWords    []string
	// ReloadChannel is the Redis pub/sub channel used to fan dictionary
	// reloads out to every running instance.
	ReloadChannel string
}

func Load() (*Config, error) {
	port, err := getEnvInt("SERVER_PORT", 8080)
	if err != nil {
		return nil, fmt.Errorf("invalid SERVER_PORT: %w", err)
	}

	maxConns, err := getEnvInt("DB_MAX_CONNS", 20)
	if err != nil {
		return nil, fmt.Errorf("invalid DB_MAX_CONNS: %w", err)
	}

	minConns, err := getEnvInt("DB_MIN_CONNS", 5)
	if err != nil {
		return nil, fmt.Errorf("invalid DB_MIN_CONNS: %w", err)
	}

	redisDB, err := getEnvInt("REDIS_DB", 0)
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	threshold, err := getEnvInt("FILTER_MEDIUM_REVIEW_THRESHOLD", 3)
	if err != nil {
		return nil, fmt.Errorf("invalid FILTER_MEDIUM_REVIEW_THRESHOLD: %w", err)
	}

	maskChar, err := getEnvRune("FILTER_MASK_CHAR", '*')
	if err != nil {
		return nil, fmt.Errorf("invalid FILTER_MASK_CHAR: %w", err)
	}

	cfg := &Config{
		Server: ServerConfig{
			Host: getEnv("SERVER_HOST", "0.0.0.0"),
			Port: port,
		},
		Database: DatabaseConfig{
			URL:            getEnv("DATABASE_URL", ""),
			MaxConns:       maxConns,
			MinConns:       minConns,
			MigrationsPath: getEnv("MIGRATIONS_PATH", "migrations"),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       redisDB,
		},
		Auth: AuthConfig{
			JWTSecret:    getEnv("JWT_SECRET", ""),
			APIKeyHeader: getEnv("API_KEY_HEADER", "X-API-Key"),
		},
		Filter: FilterConfig{
			MaskChar:              maskChar,
			FuzzyMatch:            getEnvBool("FILTER_FUZZY_MATCH", true),
			CaseSensitive:         getEnvBool("FILTER_CASE_SENSITIVE", false),
			MediumReviewThreshold: threshold,
			WordsFile:             getEnv("FILTER_WORDS_FILE", ""),
			HighWords:             getEnvList("FILTER_HIGH_WORDS"),
			MediumWords:           getEnvList("FILTER_MEDIUM_WORDS"),
			LowWords:              getEnvList("FILTER_LOW_WORDS"),
			ReloadChannel:         getEnv("FILTER_RELOAD_CHANNEL", "sensitive_words:reload"),
		},
	}

	return cfg, nil
}

func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

func (c *Config) Validate() error {
	var missing []string
	if c.Auth.JWTSecret == "" {
		missing = append(missing, "JWT_SECRET")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required env vars: %s", strings.Join(missing, ", "))
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	return strconv.Atoi(v)
}

func getEnvBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}

func getEnvRune(key string, fallback rune) (rune, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	if utf8.RuneCountInString(v) != 1 {
		return 0, fmt.Errorf("%s must be a single character, got %q", key, v)
	}
	r, _ := utf8.DecodeRuneInString(v)
	return r, nil
}

func getEnvList(key string) []string {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
