// Package config loads and validates the court service configuration from
// a TOML file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
)

// SessionConfig holds session-related configuration
type SessionConfig struct {
	Duration    string `toml:"duration"`     // How long a session lasts before expiring
	WarningLead string `toml:"warning_lead"` // How long before expiry the warning is sent
}

// GetDuration returns the session duration as time.Duration
func (s *SessionConfig) GetDuration() (time.Duration, error) {
	return ParseDuration(s.Duration)
}

// GetDurationOrDefault returns the session duration as time.Duration
// or panics if the value is invalid
func (s *SessionConfig) GetDurationOrDefault() time.Duration {
	duration, err := s.GetDuration()
	if err != nil {
		panic(fmt.Sprintf("invalid session duration: %v", err))
	}
	return duration
}

// GetWarningLead returns the warning lead time as time.Duration
func (s *SessionConfig) GetWarningLead() (time.Duration, error) {
	return ParseDuration(s.WarningLead)
}

// GetWarningLeadOrDefault returns the warning lead time as time.Duration
// or panics if the value is invalid
func (s *SessionConfig) GetWarningLeadOrDefault() time.Duration {
	duration, err := s.GetWarningLead()
	if err != nil {
		panic(fmt.Sprintf("invalid warning lead: %v", err))
	}
	return duration
}

// StreamConfig holds event stream-related configuration
type StreamConfig struct {
	BufferSize int `toml:"buffer_size"` // Per-observer event buffer capacity
}

// ConfigParam holds all configuration parameters for the court service
type ConfigParam struct {
	// Configuration version
	FormatVersion string `toml:"format_version"` // Version of this configuration file format

	// Server configuration
	ServerHostName string `toml:"server_hostname"` // Hostname for the server
	ServerPort     string `toml:"server_port"`     // Port for the HTTP server
	HandleCORS     bool   `toml:"handle_cors"`     // Whether to handle CORS

	// Session configuration
	Session SessionConfig `toml:"session"`

	// Event stream configuration
	Stream StreamConfig `toml:"stream"`
}

var cfg *ConfigParam

// Config returns the current configuration
func Config() *ConfigParam {
	return cfg
}

// DefaultConfig returns the configuration used when no config file is given.
func DefaultConfig() *ConfigParam {
	return &ConfigParam{
		FormatVersion:  Version,
		ServerHostName: "0.0.0.0",
		ServerPort:     "8190",
		HandleCORS:     true,
		Session: SessionConfig{
			Duration:    "1h",
			WarningLead: "10m",
		},
		Stream: StreamConfig{
			BufferSize: 100,
		},
	}
}

// ParseDuration parses a duration string in the format "<number><unit>" where unit can be:
// - y: years
// - d: days
// - h: hours
// - m: minutes
func ParseDuration(input string) (time.Duration, error) {
	if len(input) < 2 {
		return 0, fmt.Errorf("invalid input format")
	}

	// Extract the unit and the value from the input string
	unit := input[len(input)-1:]
	valueStr := input[:len(input)-1]
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return 0, fmt.Errorf("invalid number: %s", err)
	}

	// Convert the value to a duration based on the unit
	var duration time.Duration
	switch unit {
	case "d":
		duration = time.Duration(value) * 24 * time.Hour
	case "h":
		duration = time.Duration(value) * time.Hour
	case "m":
		duration = time.Duration(value) * time.Minute
	case "y":
		// Assuming 1 year = 365 days for simplicity
		duration = time.Duration(value) * 365 * 24 * time.Hour
	default:
		return 0, fmt.Errorf("unknown time unit: %s", unit)
	}

	return duration, nil
}

// ValidateConfig checks if all required configuration values are present and valid
func ValidateConfig(cfg *ConfigParam) error {
	if err := validateConfigFormatVersion(cfg); err != nil {
		return err
	}
	if err := validateServerConfig(cfg); err != nil {
		return err
	}
	if err := validateSessionConfig(cfg); err != nil {
		return err
	}
	if err := validateStreamConfig(cfg); err != nil {
		return err
	}
	return nil
}

func validateConfigFormatVersion(cfg *ConfigParam) error {
	if cfg.FormatVersion != Version {
		return fmt.Errorf("unsupported config file format version: %s", cfg.FormatVersion)
	}
	return nil
}

func validateServerConfig(cfg *ConfigParam) error {
	if cfg.ServerPort == "" {
		return fmt.Errorf("server_port is required")
	}
	return nil
}

func validateSessionConfig(cfg *ConfigParam) error {
	if cfg.Session.Duration == "" {
		return fmt.Errorf("session.duration is required")
	}
	duration, err := ParseDuration(cfg.Session.Duration)
	if err != nil {
		return fmt.Errorf("invalid session.duration: %v", err)
	}
	if cfg.Session.WarningLead == "" {
		return fmt.Errorf("session.warning_lead is required")
	}
	lead, err := ParseDuration(cfg.Session.WarningLead)
	if err != nil {
		return fmt.Errorf("invalid session.warning_lead: %v", err)
	}
	if lead >= duration {
		return fmt.Errorf("session.warning_lead must be shorter than session.duration")
	}
	return nil
}

func validateStreamConfig(cfg *ConfigParam) error {
	if cfg.Stream.BufferSize <= 0 {
		return fmt.Errorf("stream.buffer_size must be positive")
	}
	return nil
}

// LoadConfig loads configuration from a file
func LoadConfig(filename string) error {
	if filename == "" {
		return fmt.Errorf("config filename is required")
	}

	// Read and parse the config file
	content, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("error reading config file: %v", err)
	}

	cfg = &ConfigParam{}
	if _, err := toml.Decode(string(content), cfg); err != nil {
		return fmt.Errorf("error parsing config file: %v", err)
	}

	// Validate the configuration
	if err := ValidateConfig(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %v", err)
	}

	return nil
}

// LoadDefaultConfig installs the built-in defaults as the current
// configuration.
func LoadDefaultConfig() {
	cfg = DefaultConfig()
}

var isTest = false

func IsTest() bool {
	return isTest
}

func SetTestMode(test bool) {
	isTest = test
}

func TestInit() {
	isTest = true
	wd, err := os.Getwd()
	if err != nil {
		panic(err)
	}

	// Check if we're already in the project root by looking for go.mod
	projectRoot := wd
	for {
		if _, err := os.Stat(filepath.Join(projectRoot, "go.mod")); err == nil {
			break
		}
		parent := filepath.Dir(projectRoot)
		if parent == projectRoot {
			panic("could not find project root (go.mod)")
		}
		projectRoot = parent
	}
	if err := LoadConfig(filepath.Join(projectRoot, "courtsrv.conf")); err != nil {
		panic(fmt.Errorf("error loading config: %v", err))
	}
}
