package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server  ServerConfig
	MySQL   MySQLConfig
	SMTP    SMTPConfig
	AMQP    AMQPConfig
	Store   StoreConfig
	Reports ReportsConfig
	Outbox  OutboxConfig
	Admin   AdminConfig
}

type ServerConfig struct {
	Port string
}

type MySQLConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	Database string
}

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	Secure   bool
	FromName string
}

// AMQPConfig is optional; an empty URL disables the status-event relay.
type AMQPConfig struct {
	URL   string
	Queue string
}

type StoreConfig struct {
	UploadDir  string
	InvoiceDir string
	BackupDir  string
}

type ReportsConfig struct {
	LowStockThreshold int
}

type OutboxConfig struct {
	Interval    time.Duration
	MaxAttempts int
}

type AdminConfig struct {
	APIKey string
}

// Load reads configuration from the environment. Every value has a default
// so a bare process still boots against a local MySQL.
func Load() (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("PORT", "8080")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 3306)
	v.SetDefault("DB_USER", "root")
	v.SetDefault("DB_PASS", "")
	v.SetDefault("DB_NAME", "furniture_db")
	v.SetDefault("SMTP_HOST", "")
	v.SetDefault("SMTP_PORT", 587)
	v.SetDefault("SMTP_USER", "")
	v.SetDefault("SMTP_PASS", "")
	v.SetDefault("SMTP_SECURE", false)
	v.SetDefault("SMTP_FROM_NAME", "Econest Bedding Inc.")
	v.SetDefault("AMQP_URL", "")
	v.SetDefault("AMQP_QUEUE", "order-status-events")
	v.SetDefault("UPLOAD_DIR", "uploads")
	v.SetDefault("INVOICE_DIR", "invoices")
	v.SetDefault("BACKUP_DIR", "backup/uploads")
	v.SetDefault("LOW_STOCK_THRESHOLD", 10)
	v.SetDefault("OUTBOX_INTERVAL", "30s")
	v.SetDefault("OUTBOX_MAX_ATTEMPTS", 5)
	v.SetDefault("ADMIN_API_KEY", "")

	cfg := &Config{
		Server: ServerConfig{
			Port: v.GetString("PORT"),
		},
		MySQL: MySQLConfig{
			Host:     v.GetString("DB_HOST"),
			Port:     v.GetInt("DB_PORT"),
			Username: v.GetString("DB_USER"),
			Password: v.GetString("DB_PASS"),
			Database: v.GetString("DB_NAME"),
		},
		SMTP: SMTPConfig{
			Host:     v.GetString("SMTP_HOST"),
			Port:     v.GetInt("SMTP_PORT"),
			Username: v.GetString("SMTP_USER"),
			Password: v.GetString("SMTP_PASS"),
			Secure:   v.GetBool("SMTP_SECURE"),
			FromName: v.GetString("SMTP_FROM_NAME"),
		},
		AMQP: AMQPConfig{
			URL:   v.GetString("AMQP_URL"),
			Queue: v.GetString("AMQP_QUEUE"),
		},
		Store: StoreConfig{
			UploadDir:  v.GetString("UPLOAD_DIR"),
			InvoiceDir: v.GetString("INVOICE_DIR"),
			BackupDir:  v.GetString("BACKUP_DIR"),
		},
		Reports: ReportsConfig{
			LowStockThreshold: v.GetInt("LOW_STOCK_THRESHOLD"),
		},
		Outbox: OutboxConfig{
			Interval:    v.GetDuration("OUTBOX_INTERVAL"),
			MaxAttempts: v.GetInt("OUTBOX_MAX_ATTEMPTS"),
		},
		Admin: AdminConfig{
			APIKey: v.GetString("ADMIN_API_KEY"),
		},
	}

	if cfg.Reports.LowStockThreshold < 0 {
		return nil, fmt.Errorf("LOW_STOCK_THRESHOLD must not be negative")
	}
	if cfg.Outbox.MaxAttempts < 1 {
		return nil, fmt.Errorf("OUTBOX_MAX_ATTEMPTS must be at least 1")
	}
	return cfg, nil
}

func (c *MySQLConfig) DSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		c.Username, c.Password, c.Host, c.Port, c.Database)
}
