package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/subosito/gotenv"
)

const (
	StorageInMemory = "inmemory"
	StorageMySQL    = "mysql"
	StorageMongo    = "mongo"
	StorageSQLite   = "sqlite"
)

type Config struct {
	App     AppConfig     `toml:"app"`
	Log     LogConfig     `toml:"log"`
	Storage StorageConfig `toml:"storage"`
	MySQL   MySQLConfig   `toml:"mysql"`
	SQLite  SQLiteConfig  `toml:"sqlite"`
	Mongo   MongoConfig   `toml:"mongo"`
	Finance FinanceConfig `toml:"finance"`
}

type AppConfig struct {
	Env            string `toml:"env"`
	Port           string `toml:"port"`
	AdminTokenHash string `toml:"admin_token_hash,omitempty"`
}

type LogConfig struct {
	Level string `toml:"level"`
	Dir   string `toml:"dir"`
}

type StorageConfig struct {
	Type string `toml:"type"`
}

type MySQLConfig struct {
	User    string `toml:"user"`
	Pass    string `toml:"pass,omitempty"`
	Host    string `toml:"host"`
	Port    string `toml:"port"`
	Name    string `toml:"name"`
	FullDSN string `toml:"full_dsn,omitempty"`
}

type SQLiteConfig struct {
	Path string `toml:"path"`
}

type MongoConfig struct {
	URI      string `toml:"uri"`
	Database string `toml:"database"`
}

type FinanceConfig struct {
	DefaultCurrency           string  `toml:"default_currency"`
	DefaultContingencyPercent float64 `toml:"default_contingency_percent"`
}

func DefaultConfig() Config {
	return Config{
		App: AppConfig{
			Env:  "development",
			Port: "8080",
		},
		Log: LogConfig{
			Level: "info",
			Dir:   "./logging/logs",
		},
		Storage: StorageConfig{
			Type: StorageInMemory,
		},
		MySQL: MySQLConfig{
			Name: "event_finance",
		},
		SQLite: SQLiteConfig{
			Path: "event_finance.db",
		},
		Mongo: MongoConfig{
			URI:      "mongodb://localhost:27017",
			Database: "event_finance",
		},
		Finance: FinanceConfig{
			DefaultCurrency:           "USD",
			DefaultContingencyPercent: 10,
		},
	}
}

// Path returns the TOML config location: FINANCE_CONFIG or ./config.toml.
func Path() string {
	if p := os.Getenv("FINANCE_CONFIG"); p != "" {
		return p
	}
	return "config.toml"
}

// Load layers defaults, the optional TOML file, the optional .env file and the process environment.
func Load() (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(Path())
	if err != nil && !os.IsNotExist(err) {
		return cfg, fmt.Errorf("failed to read config file: %w", err)
	}
	if err == nil {
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	if err := gotenv.Load(); err != nil && !os.IsNotExist(err) {
		return cfg, fmt.Errorf("failed to load env variables: %w", err)
	}

	if err := applyEnv(&cfg); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) error {
	setString(&cfg.App.Env, "APP_ENV")
	setString(&cfg.App.Port, "APP_PORT")
	setString(&cfg.App.AdminTokenHash, "ADMIN_TOKEN_HASH")
	setString(&cfg.Log.Level, "LOG_LEVEL")
	setString(&cfg.Log.Dir, "LOG_DIR")
	setString(&cfg.Storage.Type, "STORAGE_TYPE")
	setString(&cfg.MySQL.User, "DB_USER")
	setString(&cfg.MySQL.Pass, "DB_PASS")
	setString(&cfg.MySQL.Host, "DB_HOST")
	setString(&cfg.MySQL.Port, "DB_PORT")
	setString(&cfg.MySQL.Name, "DB_NAME")
	setString(&cfg.MySQL.FullDSN, "FULL_DSN")
	setString(&cfg.SQLite.Path, "SQLITE_PATH")
	setString(&cfg.Mongo.URI, "MONGO_URI")
	setString(&cfg.Mongo.Database, "MONGO_DB")
	setString(&cfg.Finance.DefaultCurrency, "DEFAULT_CURRENCY")

	if v := os.Getenv("DEFAULT_CONTINGENCY_PERCENT"); v != "" {
		pct, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("invalid DEFAULT_CONTINGENCY_PERCENT '%s': %w", v, err)
		}
		cfg.Finance.DefaultContingencyPercent = pct
	}
	cfg.Storage.Type = strings.ToLower(cfg.Storage.Type)
	return nil
}

func setString(dst *string, key string) {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		*dst = v
	}
}

func (c Config) Validate() error {
	switch strings.ToLower(c.Storage.Type) {
	case StorageInMemory, StorageMySQL, StorageMongo, StorageSQLite:
	default:
		return fmt.Errorf("unknown storage type '%s', allowed: %s, %s, %s, %s", c.Storage.Type, StorageInMemory, StorageMySQL, StorageMongo, StorageSQLite)
	}
	if c.Finance.DefaultContingencyPercent < 0 || c.Finance.DefaultContingencyPercent >= 100 {
		return fmt.Errorf("default contingency percent must be in [0, 100), got %.2f", c.Finance.DefaultContingencyPercent)
	}
	if c.Finance.DefaultCurrency == "" {
		return fmt.Errorf("default currency cannot be empty")
	}
	return nil
}

// DSN builds the MySQL DSN for the configured database, honoring FullDSN first.
func (c MySQLConfig) DSN() (string, error) {
	if c.FullDSN != "" {
		return c.FullDSN, nil
	}
	if c.User == "" || c.Pass == "" || c.Host == "" || c.Port == "" {
		return "", fmt.Errorf("missing required DB environment variables")
	}
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?parseTime=true", c.User, c.Pass, c.Host, c.Port, c.Name), nil
}
