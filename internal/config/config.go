package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
	"pinatatracks/internal/logger"
	"pinatatracks/pkg/models"
)

const (
	ConfigDir  = ".pinatatracks"
	ConfigFile = "pinatatracks.yml"

	// CredentialEnvVar holds the Pinata JWT. It is read once at startup.
	CredentialEnvVar = "PINATA_JWT"

	DefaultAPIURL          = "https://api.pinata.cloud/v3"
	DefaultGatewayURL      = "https://gateway.pinata.cloud/ipfs"
	DefaultPort            = 8080
	DefaultUpstreamTimeout = 10 * time.Second
)

// DefaultAllowedOrigins are the player front-ends allowed to read responses.
var DefaultAllowedOrigins = []string{
	"http://localhost:3000",
	"https://rodinha.pt",
	"https://rodinha.umaboaquestao.pt",
}

func GetConfigDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ConfigDir), nil
}

// DefaultConfigPath returns ~/.pinatatracks/pinatatracks.yml.
func DefaultConfigPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, ConfigFile), nil
}

// NewDefaultConfig returns a config with every default applied and no credential.
func NewDefaultConfig() *models.Config {
	config := &models.Config{}
	applyDefaults(config)
	return config
}

func applyDefaults(config *models.Config) {
	if config.APIURL == "" {
		config.APIURL = DefaultAPIURL
	}
	if config.GatewayURL == "" {
		config.GatewayURL = DefaultGatewayURL
	}
	if config.AllowedOrigins == nil {
		config.AllowedOrigins = append([]string(nil), DefaultAllowedOrigins...)
	}
	if config.Port == 0 {
		config.Port = DefaultPort
	}
	if config.UpstreamTimeout == 0 {
		config.UpstreamTimeout = DefaultUpstreamTimeout
	}
}

// LoadConfig reads the YAML config at configPath, or at the default
// location when configPath is empty. A missing file is created with defaults.
func LoadConfig(configPath string) (*models.Config, error) {
	if configPath == "" {
		var err error
		configPath, err = DefaultConfigPath()
		if err != nil {
			return nil, err
		}
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		// Create default config if it doesn't exist
		config := NewDefaultConfig()
		return config, SaveConfig(configPath, config)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := &models.Config{}
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	applyDefaults(config)
	return config, nil
}

func SaveConfig(configPath string, config *models.Config) error {
	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	// The file may hold the Pinata JWT.
	return os.WriteFile(configPath, data, 0600)
}

// MergeWithFlags merges configuration with command line flags and environment variables
// Priority: flags > config file > environment variables
func MergeWithFlags(config *models.Config, flags models.Overrides, getenv func(string) string) {
	if getenv == nil {
		getenv = os.Getenv
	}

	if flags.PinataJWT != "" {
		config.PinataJWT = flags.PinataJWT
	} else if envJWT := getenv(CredentialEnvVar); envJWT != "" && config.PinataJWT == "" {
		config.PinataJWT = envJWT
	}

	if flags.APIURL != "" {
		config.APIURL = flags.APIURL
	} else if envURL := getenv("PINATA_API_URL"); envURL != "" && config.APIURL == DefaultAPIURL {
		config.APIURL = envURL
	}

	if flags.GatewayURL != "" {
		config.GatewayURL = flags.GatewayURL
	} else if envURL := getenv("PINATA_GATEWAY_URL"); envURL != "" && config.GatewayURL == DefaultGatewayURL {
		config.GatewayURL = envURL
	}

	if flags.Port != 0 {
		config.Port = flags.Port
	} else if envPort := getenv("PORT"); envPort != "" && config.Port == DefaultPort {
		if parsed, err := strconv.Atoi(envPort); err == nil {
			config.Port = parsed
		} else {
			logger.Warn("Ignoring invalid PORT value %q: %v", envPort, err)
		}
	}

	if len(flags.AllowedOrigins) > 0 {
		config.AllowedOrigins = flags.AllowedOrigins
	}

	if flags.UpstreamTimeout > 0 {
		config.UpstreamTimeout = flags.UpstreamTimeout
	}
}

func ValidateConfig(config *models.Config) error {
	if err := validateBaseURL("api url", config.APIURL); err != nil {
		return err
	}
	if err := validateBaseURL("gateway url", config.GatewayURL); err != nil {
		return err
	}
	if config.Port < 1 || config.Port > 65535 {
		return fmt.Errorf("port must be between 1 and 65535, got %d", config.Port)
	}
	if config.UpstreamTimeout <= 0 {
		return fmt.Errorf("upstream timeout must be positive, got %v", config.UpstreamTimeout)
	}

	// A missing credential fails each tracks request, not the process.
	if config.PinataJWT == "" {
		logger.Warn("Pinata JWT not provided (--pinata-jwt, config file, or %s env var). Track requests will fail.", CredentialEnvVar)
	}

	return nil
}

func validateBaseURL(name, raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid %s %q: %w", name, raw, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("invalid %s %q: scheme must be http or https", name, raw)
	}
	if u.Host == "" {
		return fmt.Errorf("invalid %s %q: missing host", name, raw)
	}
	return nil
}
