package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "furniture_db", cfg.MySQL.Database)
	assert.Equal(t, "Econest Bedding Inc.", cfg.SMTP.FromName)
	assert.Equal(t, "order-status-events", cfg.AMQP.Queue)
	assert.Empty(t, cfg.AMQP.URL)
	assert.Equal(t, 10, cfg.Reports.LowStockThreshold)
	assert.Equal(t, 30*time.Second, cfg.Outbox.Interval)
	assert.Equal(t, 5, cfg.Outbox.MaxAttempts)
	assert.Empty(t, cfg.Admin.APIKey)
}

func TestLoadOverridesFromEnv(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("DB_NAME", "storefront_test")
	t.Setenv("LOW_STOCK_THRESHOLD", "3")
	t.Setenv("OUTBOX_INTERVAL", "5s")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "storefront_test", cfg.MySQL.Database)
	assert.Equal(t, 3, cfg.Reports.LowStockThreshold)
	assert.Equal(t, 5*time.Second, cfg.Outbox.Interval)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	t.Setenv("OUTBOX_MAX_ATTEMPTS", "0")

	_, err := Load()
	assert.Error(t, err)
}

func TestMySQLDSN(t *testing.T) {
	cfg := MySQLConfig{
		Host:     "db.internal",
		Port:     3307,
		Username: "store",
		Password: "pw",
		Database: "furniture_db",
	}
	assert.Equal(t,
		"store:pw@tcp(db.internal:3307)/furniture_db?charset=utf8mb4&parseTime=True&loc=Local",
		cfg.DSN())
}
