package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaultsWithoutFiles(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("FINANCE_CONFIG", filepath.Join(dir, "missing.toml"))

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, StorageInMemory, cfg.Storage.Type)
	require.Equal(t, "USD", cfg.Finance.DefaultCurrency)
	require.Equal(t, 10.0, cfg.Finance.DefaultContingencyPercent)
}

func TestLoadFileThenEnvOverrides(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	path := filepath.Join(dir, "config.toml")
	content := `
[storage]
type = "mongo"

[finance]
default_currency = "EUR"
default_contingency_percent = 5.0
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	t.Setenv("FINANCE_CONFIG", path)
	t.Setenv("DEFAULT_CURRENCY", "GBP")
	t.Setenv("APP_PORT", "9090")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, StorageMongo, cfg.Storage.Type)
	require.Equal(t, "GBP", cfg.Finance.DefaultCurrency)
	require.Equal(t, 5.0, cfg.Finance.DefaultContingencyPercent)
	require.Equal(t, "9090", cfg.App.Port)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{name: "defaults", mutate: func(c *Config) {}},
		{name: "unknown storage", mutate: func(c *Config) { c.Storage.Type = "redis" }, wantErr: true},
		{name: "negative contingency", mutate: func(c *Config) { c.Finance.DefaultContingencyPercent = -1 }, wantErr: true},
		{name: "full contingency", mutate: func(c *Config) { c.Finance.DefaultContingencyPercent = 100 }, wantErr: true},
		{name: "empty currency", mutate: func(c *Config) { c.Finance.DefaultCurrency = "" }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestMySQLDSN(t *testing.T) {
	_, err := MySQLConfig{Name: "x"}.DSN()
	require.Error(t, err)

	dsn, err := MySQLConfig{User: "u", Pass: "p", Host: "h", Port: "3306", Name: "db"}.DSN()
	require.NoError(t, err)
	require.Equal(t, "u:p@tcp(h:3306)/db?parseTime=true", dsn)

	dsn, err = MySQLConfig{FullDSN: "root:x@tcp(db:3306)/other"}.DSN()
	require.NoError(t, err)
	require.Equal(t, "root:x@tcp(db:3306)/other", dsn)
}
