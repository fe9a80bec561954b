// Tunedeck - Personal Music Streaming and Recommendation Backend
// SPDX-License-Identifier: MIT
// https://github.com/tunedeck/tunedeck

package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists where the config file is searched, in order.
// The first file found wins.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/tunedeck/config.yaml",
	"/etc/tunedeck/config.yml",
}

// ConfigPathEnvVar overrides the config file search.
const ConfigPathEnvVar = "TUNEDECK_CONFIG"

// Load builds the configuration from layered sources:
//  1. built-in defaults
//  2. optional YAML config file
//  3. environment variables (highest priority)
func Load() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(Default(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if path := findConfigFile(); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider("", ".", envTransform), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func findConfigFile() string {
	if path := os.Getenv(ConfigPathEnvVar); path != "" {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// envMappings binds environment variable names to config paths.
// Unlisted variables are ignored.
var envMappings = map[string]string{
	"tunedeck_log_level":  "logging.level",
	"tunedeck_log_format": "logging.format",
	"tunedeck_log_caller": "logging.caller",

	"tunedeck_store_path": "store.path",

	"tunedeck_provider_url":          "provider.base_url",
	"tunedeck_provider_api_key":      "provider.api_key",
	"tunedeck_search_limit":          "provider.search_limit",
	"tunedeck_breaker_max_requests":  "provider.breaker.max_requests",
	"tunedeck_breaker_interval":      "provider.breaker.interval",
	"tunedeck_breaker_timeout":       "provider.breaker.timeout",
	"tunedeck_breaker_min_requests":  "provider.breaker.min_requests",
	"tunedeck_breaker_failure_ratio": "provider.breaker.failure_ratio",

	"tunedeck_ingest_interval":     "ingest.interval",
	"tunedeck_ingest_artist_delay": "ingest.artist_delay",

	"tunedeck_popular_interval":   "popular.interval",
	"tunedeck_popular_chart_kind": "popular.chart_kind",
	"tunedeck_popular_chart_size": "popular.chart_size",

	"tunedeck_history_limit": "history.limit",

	"tunedeck_recommend_play_weight":   "recommend.play_weight",
	"tunedeck_recommend_like_weight":   "recommend.like_weight",
	"tunedeck_recommend_top_artists":   "recommend.top_artists",
	"tunedeck_recommend_default_limit": "recommend.default_limit",
}

// envTransform maps an environment variable name to its config path,
// or empty to skip it.
func envTransform(key string) string {
	if mapped, ok := envMappings[strings.ToLower(key)]; ok {
		return mapped
	}
	return ""
}
