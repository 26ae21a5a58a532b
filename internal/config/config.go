/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Database backend selection.
type DatabaseBackend string

const (
	DatabasePostgres DatabaseBackend = "postgres"
	DatabaseMySQL    DatabaseBackend = "mysql"
	DatabaseSQLite   DatabaseBackend = "sqlite"
)

// Config covers process level configuration read from environment variables.
type Config struct {
	Environment string
	HTTPBind    string
	HTTPPort    int
	MetricsBind string

	DBBackend DatabaseBackend
	DBDSN     string

	MediaRoot    string
	TickInterval time.Duration
	SelectorSeed int64 // 0 means seed from the clock
}

// Load reads environment variables, applies defaults, and validates the result.
func Load() (*Config, error) {
	cfg := &Config{
		Environment:  getEnv("BRAGI_ENV", "development"),
		HTTPBind:     getEnv("BRAGI_HTTP_BIND", "0.0.0.0"),
		HTTPPort:     getEnvInt("BRAGI_HTTP_PORT", 8080),
		MetricsBind:  getEnv("BRAGI_METRICS_BIND", "127.0.0.1:9000"),
		DBBackend:    DatabaseBackend(getEnv("BRAGI_DB_BACKEND", string(DatabaseSQLite))),
		DBDSN:        getEnv("BRAGI_DB_DSN", ""),
		MediaRoot:    getEnv("BRAGI_MEDIA_ROOT", "./media"),
		TickInterval: time.Duration(getEnvInt("BRAGI_TICK_SECONDS", 5)) * time.Second,
		SelectorSeed: int64(getEnvInt("BRAGI_SELECTOR_SEED", 0)),
	}

	if cfg.DBBackend != DatabasePostgres && cfg.DBBackend != DatabaseMySQL && cfg.DBBackend != DatabaseSQLite {
		return nil, fmt.Errorf("unsupported database backend %q", cfg.DBBackend)
	}

	if cfg.DBDSN == "" {
		return nil, fmt.Errorf("BRAGI_DB_DSN must be provided")
	}

	if cfg.TickInterval < time.Second {
		cfg.TickInterval = time.Second
	}

	return cfg, nil
}

func getEnv(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

func getEnvInt(key string, def int) int {
	if val := os.Getenv(key); val != "" {
		if parsed, err := strconv.Atoi(strings.TrimSpace(val)); err == nil {
			return parsed
		}
	}
	return def
}
