// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package config loads the trust manager configuration shared by the CLI and
// the MCP server.
package config

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/H0llyW00dzZ/x509-trust-manager/src/internal/trust"
	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"
)

// Environment variables consulted by [Load].
const (
	EnvConfigFile         = "X509_TRUST_CONFIG_FILE"
	EnvTrustStorePassword = "X509_TRUST_STORE_PASSWORD"
)

// Defaults applied before a configuration file is read.
const (
	DefaultRole           = "server"
	DefaultAuthType       = "UNKNOWN"
	DefaultTimeoutSeconds = 30
	DefaultLogFormat      = "text"
	DefaultMetricsPath    = "/metrics"
)

//go:embed schema.json
var schema string

// ErrInvalidConfig indicates that a configuration file does not match the schema.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// format represents supported configuration file formats.
type format int

const (
	// formatJSON represents JSON configuration format (.json)
	formatJSON format = iota
	// formatYAML represents YAML configuration format (.yaml, .yml)
	formatYAML
)

// Config represents the trust manager configuration.
//
// The configuration can be loaded from a JSON or YAML file given explicitly
// or through the X509_TRUST_CONFIG_FILE environment variable, with defaults
// applied for any missing values.
type Config struct {
	// TrustStore: Where trusted certificates are loaded from
	TrustStore struct {
		// Paths: Files or directories holding PEM, DER, PKCS#7 or PKCS#12 data
		Paths []string `json:"paths,omitempty" yaml:"paths,omitempty"`
		// Password: PKCS#12 password (can also be set via X509_TRUST_STORE_PASSWORD)
		Password string `json:"password,omitempty" yaml:"password,omitempty"`
	} `json:"trustStore" yaml:"trustStore"`

	// Defaults: Default settings for verification requests
	Defaults struct {
		// Role: Handshake side whose chain is verified, "server" or "client"
		Role string `json:"role" yaml:"role"`
		// AuthType: Key exchange / authentication algorithm name passed to the facade
		AuthType string `json:"authType" yaml:"authType"`
		// Timeout: Default timeout in seconds for network operations
		Timeout int `json:"timeoutSeconds" yaml:"timeoutSeconds"`
	} `json:"defaults" yaml:"defaults"`

	// Engine: Verification engine settings
	Engine struct {
		// CheckValidity: Reject certificates outside their validity period
		CheckValidity bool `json:"checkValidity" yaml:"checkValidity"`
	} `json:"engine" yaml:"engine"`

	// Logging: Log output settings
	Logging struct {
		// Format: "text" or "json"
		Format string `json:"format" yaml:"format"`
		// Verbose: Log every chain step
		Verbose bool `json:"verbose" yaml:"verbose"`
	} `json:"logging" yaml:"logging"`

	// Metrics: Prometheus exposition settings
	Metrics struct {
		// ListenAddress: Address for the metrics endpoint; empty disables it
		ListenAddress string `json:"listenAddress,omitempty" yaml:"listenAddress,omitempty"`
		// Path: HTTP path of the metrics endpoint
		Path string `json:"path" yaml:"path"`
	} `json:"metrics" yaml:"metrics"`
}

// Default returns a Config holding the default values.
func Default() *Config {
	c := &Config{}
	c.Defaults.Role = DefaultRole
	c.Defaults.AuthType = DefaultAuthType
	c.Defaults.Timeout = DefaultTimeoutSeconds
	c.Logging.Format = DefaultLogFormat
	c.Metrics.Path = DefaultMetricsPath
	return c
}

// Load loads the configuration from a JSON or YAML file or applies defaults.
//
// Parameters:
//   - path: Path to the configuration file (optional, can be empty)
//     Supported formats: .json, .yaml, .yml
//
// Returns:
//   - *Config: Loaded configuration with defaults applied
//   - error: Error if the file cannot be read, parsed or validated
//
// Configuration Priority:
//  1. Default values are set
//  2. X509_TRUST_CONFIG_FILE environment variable is checked if path is empty
//  3. Config file values override defaults (if a file is given)
//  4. X509_TRUST_STORE_PASSWORD overrides an empty trust store password
func Load(path string) (*Config, error) {
	config := Default()

	if path == "" {
		path = os.Getenv(EnvConfigFile)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}

		if err := parse(data, detectFormat(path), config); err != nil {
			return nil, err
		}
	}

	if config.TrustStore.Password == "" {
		config.TrustStore.Password = os.Getenv(EnvTrustStorePassword)
	}

	return config, nil
}

// detectFormat determines the configuration file format based on file extension.
func detectFormat(path string) format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return formatYAML
	default:
		return formatJSON
	}
}

// parse validates data against the configuration schema and merges it into
// config. Values that are absent or zero keep their defaults.
func parse(data []byte, f format, config *Config) error {
	var doc any
	switch f {
	case formatYAML:
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return fmt.Errorf("failed to parse YAML config file: %w", err)
		}
	default:
		if len(strings.TrimSpace(string(data))) > 0 {
			if err := json.Unmarshal(data, &doc); err != nil {
				return fmt.Errorf("failed to parse JSON config file: %w", err)
			}
		}
	}

	// An empty file keeps every default.
	if doc == nil {
		return nil
	}

	if err := validate(doc); err != nil {
		return err
	}

	switch f {
	case formatYAML:
		if err := yaml.Unmarshal(data, config); err != nil {
			return fmt.Errorf("failed to parse YAML config file: %w", err)
		}
	default:
		if err := json.Unmarshal(data, config); err != nil {
			return fmt.Errorf("failed to parse JSON config file: %w", err)
		}
	}

	if config.Defaults.Timeout <= 0 {
		config.Defaults.Timeout = DefaultTimeoutSeconds
	}
	if config.Defaults.Role == "" {
		config.Defaults.Role = DefaultRole
	}
	if config.Defaults.AuthType == "" {
		config.Defaults.AuthType = DefaultAuthType
	}
	if config.Logging.Format == "" {
		config.Logging.Format = DefaultLogFormat
	}
	if config.Metrics.Path == "" {
		config.Metrics.Path = DefaultMetricsPath
	}

	return nil
}

func validate(doc any) error {
	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(schema),
		gojsonschema.NewGoLoader(doc),
	)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	if !result.Valid() {
		msgs := make([]string, 0, len(result.Errors()))
		for _, e := range result.Errors() {
			msgs = append(msgs, e.String())
		}
		return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(msgs, "; "))
	}

	return nil
}

// Role returns the default role.
func (c *Config) Role() (trust.Role, error) {
	return trust.ParseRole(c.Defaults.Role)
}

// Timeout returns the default timeout as a duration.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.Defaults.Timeout) * time.Second
}
