package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/recipevault/backend/internal/common/constants"
)

var ErrMissingRequiredEnv = errors.New("missing required environment variable")

type APIConfig struct {
	HTTPPort       string
	DatabaseURL    string
	RequestTimeout time.Duration
}

func LoadAPIConfig() (APIConfig, error) {
	databaseURL, err := mustEnv("DATABASE_URL")
	if err != nil {
		return APIConfig{}, err
	}

	return APIConfig{
		HTTPPort:       getEnv("API_HTTP_PORT", constants.DefaultHTTPPort),
		DatabaseURL:    databaseURL,
		RequestTimeout: getDurationEnv("API_REQUEST_TIMEOUT", constants.DefaultRequestTimeout),
	}, nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}

func mustEnv(key string) (string, error) {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return "", fmt.Errorf("%w: %s", ErrMissingRequiredEnv, key)
	}
	return v, nil
}

func getDurationEnv(key string, fallback time.Duration) time.Duration {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}
