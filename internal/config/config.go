// Package config loads runtime settings from the environment.
//
// Every setting has a default so the CLI works against a local backend with no
// configuration at all. Command-line flags override what Load returns.
package config

import (
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	DefaultAPIPort      = "8010"
	DefaultTimeout      = 30 * time.Second
	DefaultLogLevel     = "INFO"
	DefaultToastTimeout = 5 * time.Second
	DefaultServeAddr    = ":8080"
)

// TwitterCredentials are the OAuth1 keys for posting announcements
type TwitterCredentials struct {
	APIKey       string
	APISecret    string
	AccessToken  string
	AccessSecret string
}

// Complete reports whether all four keys are set
func (c TwitterCredentials) Complete() bool {
	return c.APIKey != "" && c.APISecret != "" && c.AccessToken != "" && c.AccessSecret != ""
}

// Config holds runtime configuration shared across the application.
type Config struct {
	APIBase       string
	Timeout       time.Duration
	LogLevel      string
	Refresh       time.Duration
	ToastDuration time.Duration
	ServeAddr     string

	Twitter          TwitterCredentials
	TelegramToken    string
	TelegramChatID   string
	TelegramEndpoint string
}

// Load reads environment variables and returns a fully populated Config.
//
// VENUE_SLOTS_API_BASE wins outright. Otherwise the base URL is built from
// VENUE_SLOTS_HOST (falling back to the machine hostname, then localhost) and
// VENUE_SLOTS_API_PORT.
func Load() Config {
	host := strings.TrimSpace(os.Getenv("VENUE_SLOTS_HOST"))
	if host == "" {
		host = defaultHost()
	}

	return Config{
		APIBase:       ResolveAPIBase(os.Getenv("VENUE_SLOTS_API_BASE"), host, os.Getenv("VENUE_SLOTS_API_PORT")),
		Timeout:       durationOrDefault("VENUE_SLOTS_TIMEOUT", DefaultTimeout),
		LogLevel:      envOrDefault("VENUE_SLOTS_LOG_LEVEL", DefaultLogLevel),
		Refresh:       durationOrDefault("VENUE_SLOTS_REFRESH", 0),
		ToastDuration: durationOrDefault("VENUE_SLOTS_TOAST_DURATION", DefaultToastTimeout),
		ServeAddr:     envOrDefault("VENUE_SLOTS_ADDR", DefaultServeAddr),
		Twitter: TwitterCredentials{
			APIKey:       strings.TrimSpace(os.Getenv("TWITTER_API_KEY")),
			APISecret:    strings.TrimSpace(os.Getenv("TWITTER_API_SECRET")),
			AccessToken:  strings.TrimSpace(os.Getenv("TWITTER_ACCESS_TOKEN")),
			AccessSecret: strings.TrimSpace(os.Getenv("TWITTER_ACCESS_SECRET")),
		},
		TelegramToken:    strings.TrimSpace(os.Getenv("TELEGRAM_BOT_TOKEN")),
		TelegramChatID:   strings.TrimSpace(os.Getenv("TELEGRAM_CHAT_ID")),
		TelegramEndpoint: strings.TrimSpace(os.Getenv("TELEGRAM_API_ENDPOINT")),
	}
}

// ResolveAPIBase returns override when set, otherwise http://{host}:{port}/api.
// An empty host means localhost and an empty port means DefaultAPIPort.
// Trailing slashes are trimmed.
func ResolveAPIBase(override, host, port string) string {
	if v := strings.TrimSpace(override); v != "" {
		return strings.TrimRight(v, "/")
	}

	host = strings.TrimSpace(host)
	if host == "" {
		host = "localhost"
	}
	port = strings.TrimSpace(port)
	if port == "" {
		port = DefaultAPIPort
	}
	return fmt.Sprintf("http://%s/api", net.JoinHostPort(host, port))
}

func defaultHost() string {
	if name, err := os.Hostname(); err == nil && name != "" {
		return name
	}
	return "localhost"
}

func envOrDefault(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

// durationOrDefault parses a Go duration ("30s") or a bare number of seconds
func durationOrDefault(key string, fallback time.Duration) time.Duration {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}
	if parsed, err := time.ParseDuration(raw); err == nil && parsed >= 0 {
		return parsed
	}
	if seconds, err := strconv.Atoi(raw); err == nil && seconds >= 0 {
		return time.Duration(seconds) * time.Second
	}
	return fallback
}
