package cmd

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Config holds CLI configuration.
type Config struct {
	DBPath       string
	PostgresDSN  string
	PlacesAPIKey string
	SeedPath     string
	Version      string
}

// ParseFlags parses command-line flags and returns configuration.
func ParseFlags(version string) (*Config, error) {
	config := &Config{Version: version}

	// Load .env files first so env-based defaults work with existing flag parsing.
	loadDotEnv(".env")
	loadDotEnv(".env.local")

	flag.StringVar(&config.DBPath, "db", "", "Path to SQLite database file (default: ~/.felt/felt.db)")
	flag.StringVar(&config.PostgresDSN, "dsn", "", "Postgres connection string for the shared directory (or set FELT_DATABASE_URL)")
	flag.StringVar(&config.PlacesAPIKey, "places-key", "", "Google Places API key for live opening hours (or set PLACES_API_KEY)")
	flag.StringVar(&config.SeedPath, "seed", "", "JSON file of venues to import into a fresh local database")
	flag.Parse()

	if config.PostgresDSN == "" {
		config.PostgresDSN = os.Getenv("FELT_DATABASE_URL")
	}
	if config.PlacesAPIKey == "" {
		config.PlacesAPIKey = os.Getenv("PLACES_API_KEY")
	}

	// Set default DB path if not specified
	if config.DBPath == "" && config.PostgresDSN == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}

		configDir := filepath.Join(home, ".felt")
		if err := os.MkdirAll(configDir, 0700); err != nil {
			return nil, fmt.Errorf("failed to create config directory: %w", err)
		}

		config.DBPath = filepath.Join(configDir, "felt.db")
	}

	return config, nil
}

func loadDotEnv(path string) {
	f, err := os.Open(path)
	if err != nil {
		return
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			continue
		}

		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])
		if key == "" {
			continue
		}

		value = strings.Trim(value, `"'`)
		if os.Getenv(key) == "" {
			_ = os.Setenv(key, value)
		}
	}
}
