package config

import (
	"fmt"
	"net"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"

	applog "valterbank/internal/log"
)

type Config struct {
	// Bank
	BankName              string
	DefaultOverdraftLimit string

	// Logging
	LogLevel  string
	LogFormat string

	// AMQP (optional; empty URL disables event publishing)
	AMQPURL      string
	AMQPExchange string
	AMQPQueue    string
	AMQPRetries  int

	// Notifier
	SummaryInterval time.Duration
	MetricsAddr     string
	ShutdownTimeout time.Duration
}

// LoadEnvFile loads a .env file for local development. A missing file is not
// an error.
func LoadEnvFile(paths ...string) error {
	err := godotenv.Load(paths...)
	if err != nil && os.IsNotExist(err) {
		return nil
	}
	return err
}

func Load() *Config {
	return &Config{
		BankName:              getEnv("BANK_NAME", "Valter Digital Bank"),
		DefaultOverdraftLimit: getEnv("DEFAULT_OVERDRAFT_LIMIT", "500"),

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "text"),

		AMQPURL:      getEnv("AMQP_URL", ""),
		AMQPExchange: getEnv("AMQP_EXCHANGE", "valterbank"),
		AMQPQueue:    getEnv("AMQP_QUEUE", "transactions"),
		AMQPRetries:  getEnvInt("AMQP_PUBLISH_RETRIES", 3),

		SummaryInterval: getEnvDuration("SUMMARY_INTERVAL", time.Minute),
		MetricsAddr:     getEnv("METRICS_ADDR", ""),
		ShutdownTimeout: getEnvDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
	}
}

// OverdraftLimit parses DefaultOverdraftLimit. Call Validate first.
func (c *Config) OverdraftLimit() decimal.Decimal {
	d, err := decimal.NewFromString(strings.TrimSpace(c.DefaultOverdraftLimit))
	if err != nil {
		return decimal.Zero
	}
	return d
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	var errors []string

	if strings.TrimSpace(c.BankName) == "" {
		errors = append(errors, "bank name cannot be empty")
	}

	if d, err := decimal.NewFromString(strings.TrimSpace(c.DefaultOverdraftLimit)); err != nil {
		errors = append(errors, fmt.Sprintf("invalid default overdraft limit '%s': must be a decimal number", c.DefaultOverdraftLimit))
	} else if d.IsNegative() {
		errors = append(errors, fmt.Sprintf("invalid default overdraft limit %s: must not be negative", d.String()))
	}

	if _, err := applog.ParseLevel(c.LogLevel); err != nil {
		errors = append(errors, fmt.Sprintf("invalid log level '%s': must be one of [debug info warn error]", c.LogLevel))
	}
	if c.LogFormat != "text" && c.LogFormat != "json" {
		errors = append(errors, fmt.Sprintf("invalid log format '%s': must be 'text' or 'json'", c.LogFormat))
	}

	// Validate AMQP URL if provided
	if c.AMQPURL != "" {
		if parsedURL, err := url.Parse(c.AMQPURL); err != nil {
			errors = append(errors, fmt.Sprintf("invalid AMQP URL '%s': %v", c.AMQPURL, err))
		} else if parsedURL.Scheme != "amqp" && parsedURL.Scheme != "amqps" {
			errors = append(errors, fmt.Sprintf("invalid AMQP URL scheme '%s': must be 'amqp' or 'amqps'", parsedURL.Scheme))
		}
		if c.AMQPExchange == "" {
			errors = append(errors, "AMQP exchange name cannot be empty when AMQP URL is provided")
		}
		if c.AMQPQueue == "" {
			errors = append(errors, "AMQP queue name cannot be empty when AMQP URL is provided")
		}
		if c.AMQPRetries < 0 || c.AMQPRetries > 10 {
			errors = append(errors, fmt.Sprintf("invalid AMQP publish retries %d: must be between 0 and 10", c.AMQPRetries))
		}
	}

	if c.SummaryInterval < time.Second {
		errors = append(errors, fmt.Sprintf("invalid summary interval %v: must be at least 1 second", c.SummaryInterval))
	}
	if c.MetricsAddr != "" {
		if _, port, err := net.SplitHostPort(c.MetricsAddr); err != nil || port == "" {
			errors = append(errors, fmt.Sprintf("invalid metrics address '%s': must be host:port", c.MetricsAddr))
		}
	}
	if c.ShutdownTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("invalid shutdown timeout %v: must be positive", c.ShutdownTimeout))
	}

	// Return combined errors
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

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
