package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	BackendFile     = "file"
	BackendMemory   = "memory"
	BackendPostgres = "postgres"
	BackendMySQL    = "mysql"
)

type Config struct {
	Backend     string
	DataDir     string
	DatabaseURL string
	MySQLDSN    string
	Verbose     bool
}

// Load reads the environment, after merging an optional .env file from the
// working directory. Variables already set in the environment win.
func Load() Config {
	_ = godotenv.Load()

	cfg := Config{
		Backend:     BackendFile,
		DataDir:     os.Getenv("TODOLIST_DATA_DIR"),
		DatabaseURL: os.Getenv("TODOLIST_DATABASE_URL"),
		MySQLDSN:    os.Getenv("TODOLIST_MYSQL_DSN"),
	}

	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}

	if v := strings.ToLower(strings.TrimSpace(os.Getenv("TODOLIST_BACKEND"))); v != "" {
		cfg.Backend = v
	}

	if v := os.Getenv("TODOLIST_VERBOSE"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Verbose = b
		}
	}

	return cfg
}
