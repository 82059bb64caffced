package config

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Feed sources
const (
	SourceHTTP   = "http"
	SourceSQLite = "sqlite"
	SourceMock   = "mock"
)

const (
	defaultDevicesURL = "https://45dd4b13-a54d-424a-ba8f-146262bdb45d.mock.pstmn.io/devices"
	defaultCVEsURL    = "https://45dd4b13-a54d-424a-ba8f-146262bdb45d.mock.pstmn.io/vulns"
)

// Config holds all application configuration.
type Config struct {
	Addr            string
	Source          string
	DevicesURL      string
	CVEsURL         string
	CVEDBPath       string
	DeviceDBPath    string
	RefreshInterval time.Duration
	FetchTimeout    time.Duration
	GRPCPort        int // 0 disables the health server
	Debug           bool
	Trace           bool
	AllowedOrigins  []string
	RefreshLimit    int
	MockScenario    string
	MockSeed        int64
}

// Load parses command line flags and environment variables to populate Config.
// Flags take precedence over environment variables. It exits on invalid input.
func Load() *Config {
	cfg, err := Parse(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	return cfg
}

// Parse builds a Config from the environment and args.
func Parse(args []string) (*Config, error) {
	cfg := &Config{}

	// Defaults and Environment Variables
	cfg.Addr = getEnv("VULNBOARD_ADDR", ":8080")
	cfg.Source = getEnv("VULNBOARD_SOURCE", SourceHTTP)
	cfg.DevicesURL = getEnv("VULNBOARD_DEVICES_URL", defaultDevicesURL)
	cfg.CVEsURL = getEnv("VULNBOARD_CVES_URL", defaultCVEsURL)
	cfg.CVEDBPath = DefaultCVEDBPath()
	cfg.DeviceDBPath = DefaultDeviceDBPath()
	cfg.RefreshInterval = getEnvDuration("VULNBOARD_REFRESH_INTERVAL", 0)
	cfg.FetchTimeout = getEnvDuration("VULNBOARD_FETCH_TIMEOUT", 15*time.Second)
	cfg.GRPCPort = int(getEnvFloat("VULNBOARD_GRPC", 9000))
	cfg.Debug = getEnvBool("VULNBOARD_DEBUG", false)
	cfg.Trace = getEnvBool("VULNBOARD_TRACE", false)
	cfg.RefreshLimit = int(getEnvFloat("VULNBOARD_REFRESH_LIMIT", 6))
	cfg.MockScenario = getEnv("VULNBOARD_MOCK_SCENARIO", "basic")
	cfg.MockSeed = int64(getEnvFloat("VULNBOARD_MOCK_SEED", 1))
	origins := getEnv("VULNBOARD_ALLOWED_ORIGINS", "")
	mock := getEnvBool("VULNBOARD_MOCK", false)

	// Command Line Flags (Override Env)
	fs := flag.NewFlagSet("vulnboard", flag.ContinueOnError)
	fs.StringVar(&cfg.Addr, "addr", cfg.Addr, "HTTP server address")
	fs.StringVar(&cfg.Source, "source", cfg.Source, "Feed source: http, sqlite or mock")
	fs.StringVar(&cfg.DevicesURL, "devices-url", cfg.DevicesURL, "Device feed endpoint")
	fs.StringVar(&cfg.CVEsURL, "cves-url", cfg.CVEsURL, "CVE feed endpoint")
	fs.StringVar(&cfg.CVEDBPath, "cve-db", cfg.CVEDBPath, "Path to the CVE SQLite database")
	fs.StringVar(&cfg.DeviceDBPath, "device-db", cfg.DeviceDBPath, "Path to the device SQLite database")
	fs.DurationVar(&cfg.RefreshInterval, "refresh", cfg.RefreshInterval, "Periodic refresh interval (0 refreshes only at startup)")
	fs.DurationVar(&cfg.FetchTimeout, "fetch-timeout", cfg.FetchTimeout, "Timeout for each feed fetch")
	fs.IntVar(&cfg.GRPCPort, "grpc", cfg.GRPCPort, "gRPC health server port (0 to disable)")
	fs.BoolVar(&cfg.Debug, "debug", cfg.Debug, "Enable verbose debug logging")
	fs.BoolVar(&cfg.Trace, "trace", cfg.Trace, "Write OpenTelemetry spans to stdout")
	fs.StringVar(&origins, "origins", origins, "Extra allowed websocket origins (comma separated)")
	fs.IntVar(&cfg.RefreshLimit, "refresh-limit", cfg.RefreshLimit, "Manual refreshes allowed per client per minute")
	fs.BoolVar(&mock, "mock", mock, "Shorthand for -source=mock")
	fs.StringVar(&cfg.MockScenario, "scenario", cfg.MockScenario, "Mock scenario: basic, crowded or sparse")
	fs.Int64Var(&cfg.MockSeed, "seed", cfg.MockSeed, "Mock data seed")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if mock {
		cfg.Source = SourceMock
	}
	cfg.AllowedOrigins = parseList(origins)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks value ranges and the feed source.
func (c *Config) Validate() error {
	switch c.Source {
	case SourceHTTP:
		if c.DevicesURL == "" || c.CVEsURL == "" {
			return fmt.Errorf("http source requires both feed URLs")
		}
	case SourceSQLite:
		if c.CVEDBPath == "" || c.DeviceDBPath == "" {
			return fmt.Errorf("sqlite source requires both database paths")
		}
	case SourceMock:
	default:
		return fmt.Errorf("unknown feed source %q", c.Source)
	}
	if c.RefreshInterval < 0 {
		return fmt.Errorf("refresh interval must not be negative")
	}
	if c.FetchTimeout < 0 {
		return fmt.Errorf("fetch timeout must not be negative")
	}
	if c.GRPCPort < 0 || c.GRPCPort > 65535 {
		return fmt.Errorf("invalid gRPC port %d", c.GRPCPort)
	}
	return nil
}

func parseList(s string) []string {
	var out []string
	if s == "" {
		return out
	}
	for _, p := range strings.Split(s, ",") {
		trimmed := strings.TrimSpace(p)
		if trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if value, ok := os.LookupEnv(key); ok {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value, ok := os.LookupEnv(key); ok {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}

// DefaultCVEDBPath is the CVE database the server reads with -source=sqlite
// and the CVE loader writes by default.
func DefaultCVEDBPath() string {
	return getEnv("VULNBOARD_CVE_DB", getDefaultDBPath("cves.db"))
}

// DefaultDeviceDBPath is the device database shared by the server and the
// device loader.
func DefaultDeviceDBPath() string {
	return getEnv("VULNBOARD_DEVICE_DB", getDefaultDBPath("devices.db"))
}

// getDefaultDBPath returns name inside ~/.vulnboard, creating the
// directory if needed. Falls back to the working directory.
func getDefaultDBPath(name string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		slog.Warn("Could not get user home directory, using current dir", "error", err)
		return name
	}

	dir := filepath.Join(home, ".vulnboard")
	if err := os.MkdirAll(dir, 0755); err != nil {
		slog.Warn("Could not create data directory, using current dir", "dir", dir, "error", err)
		return name
	}

	return filepath.Join(dir, name)
}
