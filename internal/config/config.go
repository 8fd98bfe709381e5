// Package config loads runtime settings from MARQUEE_* environment
// variables, with sensible defaults for local development.
package config

import (
	"strconv"
	"strings"

	"github.com/spf13/viper"
)

type Runtime struct {
	Port     string
	DBPath   string
	LogLevel string

	AdminUser         string
	AdminPasswordHash string

	PostmarkToken string
	FromEmail     string
}

func Load() Runtime {
	v := viper.New()
	v.SetEnvPrefix("MARQUEE")
	v.AutomaticEnv()

	_ = v.BindEnv("port", "MARQUEE_PORT", "PORT")
	_ = v.BindEnv("db_path", "MARQUEE_DB_PATH")
	_ = v.BindEnv("log_level", "MARQUEE_LOG_LEVEL")
	_ = v.BindEnv("admin_user", "MARQUEE_ADMIN_USER")
	_ = v.BindEnv("admin_password_hash", "MARQUEE_ADMIN_PASSWORD_HASH")
	_ = v.BindEnv("postmark_token", "MARQUEE_POSTMARK_TOKEN")
	_ = v.BindEnv("from_email", "MARQUEE_FROM_EMAIL")

	v.SetDefault("port", "8080")
	v.SetDefault("db_path", "marquee.db")
	v.SetDefault("log_level", "info")
	v.SetDefault("admin_user", "admin")

	port := strings.TrimSpace(v.GetString("port"))
	if _, err := strconv.Atoi(port); err != nil {
		port = "8080"
	}

	logLevel := strings.ToLower(strings.TrimSpace(v.GetString("log_level")))
	switch logLevel {
	case "debug", "info", "warn", "error":
	default:
		logLevel = "info"
	}

	dbPath := strings.TrimSpace(v.GetString("db_path"))
	if dbPath == "" {
		dbPath = "marquee.db"
	}

	adminUser := strings.TrimSpace(v.GetString("admin_user"))
	if adminUser == "" {
		adminUser = "admin"
	}

	return Runtime{
		Port:              port,
		DBPath:            dbPath,
		LogLevel:          logLevel,
		AdminUser:         adminUser,
		AdminPasswordHash: strings.TrimSpace(v.GetString("admin_password_hash")),
		PostmarkToken:     strings.TrimSpace(v.GetString("postmark_token")),
		FromEmail:         strings.TrimSpace(v.GetString("from_email")),
	}
}
