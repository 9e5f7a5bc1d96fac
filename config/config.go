// Package config loads runtime settings from the environment, after reading
// an optional .env file.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/yeremiapane/table-reservation/utils"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type Config struct {
	Port    string
	GinMode string

	DBDriver string // sqlite or mysql
	DBDSN    string

	JWTSecret string
	TokenTTL  time.Duration

	// LoadDir, when set, is watched for restaurant files.
	LoadDir      string
	LoadInterval time.Duration

	RateLimit  int // requests per second per client IP
	CORSOrigin string
}

// Load reads .env (when present) and then the environment. Variables already
// set in the environment win over .env.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		utils.InfoLogger.Printf("Warning: .env not loaded: %v", err)
	}

	cfg := Config{
		Port:       getenv("PORT", "8080"),
		GinMode:    os.Getenv("GIN_MODE"),
		DBDriver:   strings.ToLower(getenv("DB_DRIVER", "sqlite")),
		DBDSN:      getenv("DB_DSN", "reservations.db"),
		JWTSecret:  os.Getenv("JWT_SECRET"),
		LoadDir:    os.Getenv("LOAD_DIR"),
		CORSOrigin: getenv("CORS_ORIGIN", "*"),
	}

	var err error
	if cfg.TokenTTL, err = parseDuration("TOKEN_TTL", "24h"); err != nil {
		return Config{}, err
	}
	if cfg.LoadInterval, err = parseDuration("LOAD_INTERVAL", "2s"); err != nil {
		return Config{}, err
	}
	if cfg.RateLimit, err = strconv.Atoi(getenv("RATE_LIMIT", "50")); err != nil || cfg.RateLimit < 1 {
		return Config{}, fmt.Errorf("invalid RATE_LIMIT %q", os.Getenv("RATE_LIMIT"))
	}
	if cfg.DBDriver != "sqlite" && cfg.DBDriver != "mysql" {
		return Config{}, fmt.Errorf("unsupported DB_DRIVER %q (want sqlite or mysql)", cfg.DBDriver)
	}
	switch cfg.GinMode {
	case "", "debug", "release", "test":
	default:
		return Config{}, fmt.Errorf("invalid GIN_MODE %q", cfg.GinMode)
	}
	if cfg.JWTSecret == "" {
		utils.InfoLogger.Println("Warning: JWT_SECRET not set, using development secret")
	}
	return cfg, nil
}

// InitDB opens the configured database.
func InitDB(cfg Config) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.DBDriver {
	case "mysql":
		dialector = mysql.Open(cfg.DBDSN)
	default:
		dialector = sqlite.Open(cfg.DBDSN)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("open %s database: %w", cfg.DBDriver, err)
	}
	return db, nil
}

func getenv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func parseDuration(key, def string) (time.Duration, error) {
	d, err := time.ParseDuration(getenv(key, def))
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s %q", key, os.Getenv(key))
	}
	return d, nil
}
