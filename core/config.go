// Package core provides shared configuration, error types and small
// utilities for AsciiVision components.
package core

import "time"

// Config holds all application-level configuration values. Conversion calls
// receive their own per-call settings; Config only carries process-wide
// concerns resolved from the environment at startup.
type Config struct {
	// Description service
	OpenAIAPIKey  string        // API key for image descriptions (optional)
	DescribeModel string        // Vision model for descriptions
	DescribeURL   string        // API endpoint override (default: OpenAI)
	AITimeout     time.Duration // Timeout for description requests

	// Conversion defaults (overridable per call via CLI flags)
	FontName        string
	FontSizePx      int
	Background      string
	Foreground      string
	PaddingPx       int
	WrapWidth       int
	OutputCharWidth int

	// Storage
	HistoryDBPath  string // SQLite conversion-history database path
	MigrationsPath string // External migrations override in "file://..." form (empty: embedded)
	LogFile        string // Log file path
}

// Default configuration values
const (
	DefaultDescribeModel   = "gpt-4o"
	DefaultAITimeoutSecs   = 60
	DefaultFontName        = "courier"
	DefaultFontSizePx      = 12
	DefaultBackground      = "white"
	DefaultForeground      = "black"
	DefaultPaddingPx       = 20
	DefaultWrapWidth       = 80
	DefaultOutputCharWidth = 100
	DefaultHistoryDBPath   = "asciivision.db"
	DefaultLogFile         = "asciivision.log"
)

// LoadConfig builds the configuration from environment variables, applying
// defaults for anything unset. Callers load .env into the environment first
// (godotenv in main). LoadConfig never fails on absent optional values; the
// description API key is only required when a description is requested.
func LoadConfig() *Config {
	return &Config{
		OpenAIAPIKey:  GetEnvOrDefault("OPENAI_API_KEY", ""),
		DescribeModel: GetEnvOrDefault("ASCIIVISION_MODEL", DefaultDescribeModel),
		DescribeURL:   GetEnvOrDefault("ASCIIVISION_DESCRIBE_URL", ""),
		AITimeout:     ParseDurationEnv("ASCIIVISION_AI_TIMEOUT", DefaultAITimeoutSecs),

		FontName:        GetEnvOrDefault("ASCIIVISION_FONT", DefaultFontName),
		FontSizePx:      ParseIntEnv("ASCIIVISION_FONT_SIZE", DefaultFontSizePx),
		Background:      GetEnvOrDefault("ASCIIVISION_BG", DefaultBackground),
		Foreground:      GetEnvOrDefault("ASCIIVISION_FG", DefaultForeground),
		PaddingPx:       ParseIntEnv("ASCIIVISION_PADDING", DefaultPaddingPx),
		WrapWidth:       ParseIntEnv("ASCIIVISION_WRAP", DefaultWrapWidth),
		OutputCharWidth: ParseIntEnv("ASCIIVISION_WIDTH", DefaultOutputCharWidth),

		HistoryDBPath:  GetEnvOrDefault("ASCIIVISION_DB_PATH", DefaultHistoryDBPath),
		MigrationsPath: GetEnvOrDefault("ASCIIVISION_MIGRATIONS", ""),
		LogFile:        GetEnvOrDefault("ASCIIVISION_LOG_FILE", DefaultLogFile),
	}
}
