package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	// HTTP Server
	Port string

	// BaseURL is the externally visible address share links point at.
	BaseURL string

	// Upload limits
	MaxUploadBytes int64

	// Worksheet layout
	DateColumn     int
	AmountColumn   int
	LabelColumn    int
	HeaderScanRows int
	HeaderMarkers  []string

	// CategoryRulesPath optionally overrides the built-in keyword table.
	CategoryRulesPath string

	// Share links
	ShareURLWarnLength int

	// Report cache
	CacheTTL  time.Duration
	CacheSize int

	// Rate limiting
	RateLimitPerMinute int
}

func Load() *Config {
	cfg := &Config{
		Port:    getEnv("PORT", "8081"),
		BaseURL: getEnv("BASE_URL", "http://localhost:8081"),

		MaxUploadBytes: getEnvInt64("MAX_UPLOAD_BYTES", 10<<20),

		DateColumn:     getEnvInt("SHEET_DATE_COLUMN", 0),
		AmountColumn:   getEnvInt("SHEET_AMOUNT_COLUMN", 15),
		LabelColumn:    getEnvInt("SHEET_LABEL_COLUMN", 26),
		HeaderScanRows: getEnvInt("SHEET_HEADER_SCAN_ROWS", 5),
		HeaderMarkers:  getEnvList("SHEET_HEADER_MARKERS", nil),

		CategoryRulesPath: getEnv("CATEGORY_RULES_PATH", ""),

		ShareURLWarnLength: getEnvInt("SHARE_URL_WARN_LENGTH", 2000),

		CacheTTL:  getEnvDuration("REPORT_CACHE_TTL", 5*time.Minute),
		CacheSize: getEnvInt("REPORT_CACHE_SIZE", 64),

		RateLimitPerMinute: getEnvInt("RATE_LIMIT_PER_MINUTE", 120),
	}

	return cfg
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	var errors []string

	if port, err := strconv.Atoi(c.Port); err != nil {
		errors = append(errors, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		errors = append(errors, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	if parsed, err := url.Parse(c.BaseURL); err != nil {
		errors = append(errors, fmt.Sprintf("invalid base URL '%s': %v", c.BaseURL, err))
	} else if parsed.Scheme != "http" && parsed.Scheme != "https" {
		errors = append(errors, fmt.Sprintf("invalid base URL scheme '%s': must be 'http' or 'https'", parsed.Scheme))
	}

	if c.MaxUploadBytes < 1024 {
		errors = append(errors, fmt.Sprintf("invalid max upload size %d: must be at least 1KiB", c.MaxUploadBytes))
	}

	for name, col := range map[string]int{
		"date column":   c.DateColumn,
		"amount column": c.AmountColumn,
		"label column":  c.LabelColumn,
	} {
		if col < 0 {
			errors = append(errors, fmt.Sprintf("invalid %s %d: must be zero or positive", name, col))
		}
	}
	if c.DateColumn == c.AmountColumn || c.DateColumn == c.LabelColumn || c.AmountColumn == c.LabelColumn {
		errors = append(errors, fmt.Sprintf("sheet columns must be distinct: date=%d amount=%d label=%d",
			c.DateColumn, c.AmountColumn, c.LabelColumn))
	}

	if c.HeaderScanRows < 1 {
		errors = append(errors, fmt.Sprintf("invalid header scan rows %d: must be at least 1", c.HeaderScanRows))
	}

	if c.CategoryRulesPath != "" {
		if _, err := os.Stat(c.CategoryRulesPath); os.IsNotExist(err) {
			errors = append(errors, fmt.Sprintf("category rules file does not exist: %s", c.CategoryRulesPath))
		}
	}

	if c.ShareURLWarnLength < 0 {
		errors = append(errors, fmt.Sprintf("invalid share URL warn length %d: must be zero (disabled) or positive", c.ShareURLWarnLength))
	}

	if c.CacheTTL < time.Second {
		errors = append(errors, fmt.Sprintf("invalid report cache TTL %v: must be at least 1 second", c.CacheTTL))
	} else if c.CacheTTL > 24*time.Hour {
		errors = append(errors, fmt.Sprintf("invalid report cache TTL %v: must be at most 24 hours", c.CacheTTL))
	}
	if c.CacheSize < 1 {
		errors = append(errors, fmt.Sprintf("invalid report cache size %d: must be at least 1", c.CacheSize))
	}

	if c.RateLimitPerMinute < 1 {
		errors = append(errors, fmt.Sprintf("invalid rate limit %d: must be at least 1 request per minute", c.RateLimitPerMinute))
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.ParseInt(value, 10, 64); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func getEnvList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
