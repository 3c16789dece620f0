package config

import (
	"flag"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// Config holds all application configuration.
type Config struct {
	Interface    string
	Addr         string
	MockMode     bool
	MockNetworks int
	DBPath       string
	OUIDBPath    string
	OUIFilePath  string
	PcapPath     string
	ScanInterval time.Duration
	Persist      bool
	Debug        bool
}

// Load parses command line flags and environment variables to populate Config.
// Flags take precedence over environment variables.
func Load() *Config {
	cfg := &Config{}

	// Defaults and Environment Variables
	cfg.Interface = getEnv("WSURVEY_INTERFACE", "")
	cfg.Addr = getEnv("WSURVEY_ADDR", ":8080")
	cfg.MockMode = getEnvBool("WSURVEY_MOCK", false)
	cfg.DBPath = getEnv("WSURVEY_DB", getDefaultDBPath())
	cfg.OUIDBPath = getEnv("WSURVEY_OUI_DB", "")
	cfg.PcapPath = getEnv("WSURVEY_PCAP", "")
	intervalSec := getEnvInt("WSURVEY_INTERVAL", 30)

	// Command Line Flags (Override Env)
	flag.StringVar(&cfg.Interface, "i", cfg.Interface, "Wireless interface to survey (empty picks the first found)")
	flag.StringVar(&cfg.Addr, "addr", cfg.Addr, "HTTP server address")
	flag.BoolVar(&cfg.MockMode, "mock", cfg.MockMode, "Run in mock mode (simulation)")
	flag.IntVar(&cfg.MockNetworks, "mock-networks", 8, "Number of networks the mock provider emits")
	flag.StringVar(&cfg.DBPath, "db", cfg.DBPath, "Path to SQLite database")
	flag.StringVar(&cfg.OUIDBPath, "oui-db", cfg.OUIDBPath, "Path to IEEE OUI registry database (empty uses the built-in table)")
	flag.StringVar(&cfg.OUIFilePath, "oui-file", "", "Path to an extra OUI text list")
	flag.StringVar(&cfg.PcapPath, "pcap", cfg.PcapPath, "Replay scans from a capture file instead of live scanning")
	flag.IntVar(&intervalSec, "interval", intervalSec, "Scan interval in seconds")
	flag.BoolVar(&cfg.Persist, "persist", true, "Persist snapshots to the database")
	flag.BoolVar(&cfg.Debug, "debug", false, "Enable verbose debug logging")

	flag.Parse()

	if intervalSec < 1 {
		intervalSec = 1
	}
	cfg.ScanInterval = time.Duration(intervalSec) * time.Second

	return cfg
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if n, err := strconv.Atoi(value); err == nil {
			return n
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

// getDefaultDBPath returns the default database path in user's home directory.
// Creates the directory if it doesn't exist.
func getDefaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		log.Printf("Warning: Could not get user home directory, using current dir: %v", err)
		return "wsurvey.db"
	}

	dir := filepath.Join(home, ".wsurvey")
	if err := os.MkdirAll(dir, 0755); err != nil {
		log.Printf("Warning: Could not create .wsurvey directory, using current dir: %v", err)
		return "wsurvey.db"
	}

	return filepath.Join(dir, "wsurvey.db")
}
