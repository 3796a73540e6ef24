package config

import (
	"os"
	"strings"
	"time"

	"github.com/shkcodes/inkwell/internal/log"
)

// ParseString reads a string from the environment, falling back to def when
// the variable is unset or empty.
func ParseString(key, def string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	logger := log.WithComponent("config")
	if strings.Contains(strings.ToLower(key), "token") {
		logger.Debug().Str("key", key).Bool("sensitive", true).Msg("using environment variable")
	} else {
		logger.Debug().Str("key", key).Str("value", v).Msg("using environment variable")
	}
	return v
}

// ParseBool reads a boolean from the environment. It accepts "true",
// "false", "1", "0", "yes", "no" (case-insensitive) and falls back to def
// on anything else.
func ParseBool(key string, def bool) bool {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	logger := log.WithComponent("config")
	switch strings.ToLower(v) {
	case "true", "1", "yes":
		logger.Debug().Str("key", key).Bool("value", true).Msg("using environment variable")
		return true
	case "false", "0", "no":
		logger.Debug().Str("key", key).Bool("value", false).Msg("using environment variable")
		return false
	}
	logger.Warn().Str("key", key).Str("value", v).Bool("default", def).
		Msg("invalid boolean in environment variable, using default")
	return def
}

// ParseDuration reads a Go duration (e.g. "30s", "5m") from the
// environment, falling back to def on parse errors.
func ParseDuration(key string, def time.Duration) time.Duration {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	logger := log.WithComponent("config")
	d, err := time.ParseDuration(v)
	if err != nil {
		logger.Warn().Str("key", key).Str("value", v).Dur("default", def).
			Msg("invalid duration in environment variable, using default")
		return def
	}
	logger.Debug().Str("key", key).Dur("value", d).Msg("using environment variable")
	return d
}
