// ============================================================================
// khwarizmi - Linear Equation Solver
// ============================================================================
//
// Package:     config
// Description: Typed service configuration loaded from TOML or YAML
// Author:      Mike Stoffels
// Created:     2025-12-06
// License:     MIT
// ============================================================================

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	mdwerror "github.com/msto63/khwarizmi/foundation/core/error"
	mdwlog "github.com/msto63/khwarizmi/foundation/core/log"
)

// EnvConfigPath names the environment variable holding the config file path
const EnvConfigPath = "KHWARIZMI_CONFIG"

// Config holds the complete application configuration
type Config struct {
	General GeneralConfig `toml:"general" yaml:"general"`
	Solver  SolverConfig  `toml:"solver" yaml:"solver"`
	Server  ServerConfig  `toml:"server" yaml:"server"`
	History HistoryConfig `toml:"history" yaml:"history"`

	// path of the file the config was loaded from, empty for defaults
	source string
}

// GeneralConfig holds general application settings
type GeneralConfig struct {
	Name        string `toml:"name" yaml:"name"`
	Environment string `toml:"environment" yaml:"environment"`
	DataDir     string `toml:"data_dir" yaml:"data_dir"`
	LogLevel    string `toml:"log_level" yaml:"log_level"`
	LogFormat   string `toml:"log_format" yaml:"log_format"`
	LogFile     string `toml:"log_file" yaml:"log_file"`
}

// SolverConfig holds equation engine settings
type SolverConfig struct {
	// StrictDivision reports DIVISION_BY_ZERO instead of printing ±Inf/NaN.
	// A pointer so that an explicit false survives applyDefaults.
	StrictDivision *bool    `toml:"strict_division" yaml:"strict_division"`
	SwapSides      bool     `toml:"swap_sides" yaml:"swap_sides"`
	CacheTTL       Duration `toml:"cache_ttl" yaml:"cache_ttl"`
	CacheSize      int      `toml:"cache_size" yaml:"cache_size"`
}

// ServerConfig holds the gRPC and HTTP listener settings
type ServerConfig struct {
	Host              string   `toml:"host" yaml:"host"`
	GRPCPort          int      `toml:"grpc_port" yaml:"grpc_port"`
	HTTPPort          int      `toml:"http_port" yaml:"http_port"`
	ReadTimeout       Duration `toml:"read_timeout" yaml:"read_timeout"`
	WriteTimeout      Duration `toml:"write_timeout" yaml:"write_timeout"`
	EnableReflection  bool     `toml:"enable_reflection" yaml:"enable_reflection"`
	MaxRecvMsgSize    int      `toml:"max_recv_msg_size" yaml:"max_recv_msg_size"`
	ShutdownTimeout   Duration `toml:"shutdown_timeout" yaml:"shutdown_timeout"`
	KeepaliveInterval Duration `toml:"keepalive_interval" yaml:"keepalive_interval"`
}

// HistoryConfig holds the solve history store settings
type HistoryConfig struct {
	Enabled   *bool    `toml:"enabled" yaml:"enabled"`
	Path      string   `toml:"path" yaml:"path"`
	Limit     int      `toml:"limit" yaml:"limit"`
	Retention Duration `toml:"retention" yaml:"retention"`
}

// Duration wraps time.Duration for TOML and YAML parsing
type Duration struct {
	time.Duration
}

// UnmarshalText parses a duration string
func (d *Duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	return err
}

// MarshalText formats the duration as a string
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// UnmarshalYAML parses a duration scalar
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	return d.UnmarshalText([]byte(value.Value))
}

// Default returns the configuration used when no file is given
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load loads configuration from a TOML or YAML file. The format follows the
// file extension; unknown extensions are read as TOML.
func Load(path string) (*Config, error) {
	path = os.ExpandEnv(path)

	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, mdwerror.Newf("config file not found: %s", path).
				WithCode(mdwerror.CodeMissingConfig).
				WithOperation("config.Load")
		}
		return nil, mdwerror.Wrap(err, "cannot read config file").
			WithCode(mdwerror.CodeConfigError).
			WithOperation("config.Load").
			WithDetail("path", path)
	}

	cfg, err := Parse(content, DetectFormat(path))
	if err != nil {
		return nil, err
	}
	cfg.source = path
	return cfg, nil
}

// Parse decodes content in the given format ("toml" or "yaml") and applies
// defaults, environment overrides and validation.
func Parse(content []byte, format string) (*Config, error) {
	var cfg Config

	switch format {
	case "yaml":
		if err := yaml.Unmarshal(content, &cfg); err != nil {
			return nil, mdwerror.Wrap(err, "YAML parse error").
				WithCode(mdwerror.CodeInvalidConfig).
				WithOperation("config.Parse")
		}
	case "toml":
		if _, err := toml.Decode(string(content), &cfg); err != nil {
			return nil, mdwerror.Wrap(err, "TOML parse error").
				WithCode(mdwerror.CodeInvalidConfig).
				WithOperation("config.Parse")
		}
	default:
		return nil, mdwerror.Newf("unsupported config format: %s", format).
			WithCode(mdwerror.CodeInvalidConfig).
			WithOperation("config.Parse")
	}

	cfg.applyDefaults()
	cfg.applyEnvOverrides()
	cfg.expandEnvVars()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadFromEnv loads configuration from KHWARIZMI_CONFIG or one of the
// default locations. Without any file it returns Default().
func LoadFromEnv() (*Config, error) {
	path := os.Getenv(EnvConfigPath)
	if path == "" {
		defaultPaths := []string{
			"./configs/khwarizmi.toml",
			"./configs/khwarizmi.yaml",
			"./khwarizmi.toml",
			filepath.Join(os.Getenv("HOME"), ".config/khwarizmi/config.toml"),
		}
		for _, p := range defaultPaths {
			if _, err := os.Stat(p); err == nil {
				path = p
				break
			}
		}
	}

	if path == "" {
		cfg := Default()
		cfg.applyEnvOverrides()
		return cfg, nil
	}

	return Load(path)
}

// DetectFormat determines the configuration format from the file extension
func DetectFormat(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return "yaml"
	default:
		return "toml"
	}
}

// Source returns the file the configuration was loaded from
func (c *Config) Source() string {
	return c.source
}

// applyDefaults sets default values for missing configuration
func (c *Config) applyDefaults() {
	// General
	if c.General.Name == "" {
		c.General.Name = "khwarizmi"
	}
	if c.General.Environment == "" {
		c.General.Environment = "development"
	}
	if c.General.DataDir == "" {
		c.General.DataDir = "./data"
	}
	if c.General.LogLevel == "" {
		c.General.LogLevel = "info"
	}
	if c.General.LogFormat == "" {
		c.General.LogFormat = "json"
	}

	// Solver
	if c.Solver.StrictDivision == nil {
		strict := true
		c.Solver.StrictDivision = &strict
	}
	if c.Solver.CacheTTL.Duration == 0 {
		c.Solver.CacheTTL.Duration = 10 * time.Minute
	}
	if c.Solver.CacheSize == 0 {
		c.Solver.CacheSize = 1000
	}

	// Server
	if c.Server.Host == "" {
		c.Server.Host = "0.0.0.0"
	}
	if c.Server.GRPCPort == 0 {
		c.Server.GRPCPort = 9160
	}
	if c.Server.HTTPPort == 0 {
		c.Server.HTTPPort = 8160
	}
	if c.Server.ReadTimeout.Duration == 0 {
		c.Server.ReadTimeout.Duration = 15 * time.Second
	}
	if c.Server.WriteTimeout.Duration == 0 {
		c.Server.WriteTimeout.Duration = 30 * time.Second
	}
	if c.Server.MaxRecvMsgSize == 0 {
		c.Server.MaxRecvMsgSize = 1 << 20
	}
	if c.Server.ShutdownTimeout.Duration == 0 {
		c.Server.ShutdownTimeout.Duration = 10 * time.Second
	}
	if c.Server.KeepaliveInterval.Duration == 0 {
		c.Server.KeepaliveInterval.Duration = 30 * time.Second
	}

	// History
	if c.History.Enabled == nil {
		enabled := true
		c.History.Enabled = &enabled
	}
	if c.History.Path == "" {
		c.History.Path = filepath.Join(c.General.DataDir, "history.db")
	}
	if c.History.Limit == 0 {
		c.History.Limit = 20
	}
	if c.History.Retention.Duration == 0 {
		c.History.Retention.Duration = 30 * 24 * time.Hour
	}
}

// applyEnvOverrides lets KHWARIZMI_* variables override file values
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("KHWARIZMI_LOG_LEVEL"); v != "" {
		c.General.LogLevel = v
	}
	if v := os.Getenv("KHWARIZMI_LOG_FORMAT"); v != "" {
		c.General.LogFormat = v
	}
	if v := os.Getenv("KHWARIZMI_HISTORY_PATH"); v != "" {
		c.History.Path = v
	}
	if v, err := strconv.Atoi(os.Getenv("KHWARIZMI_GRPC_PORT")); err == nil {
		c.Server.GRPCPort = v
	}
	if v, err := strconv.Atoi(os.Getenv("KHWARIZMI_HTTP_PORT")); err == nil {
		c.Server.HTTPPort = v
	}
}

// expandEnvVars expands environment variables in path values
func (c *Config) expandEnvVars() {
	c.General.DataDir = os.ExpandEnv(c.General.DataDir)
	c.General.LogFile = os.ExpandEnv(c.General.LogFile)
	c.History.Path = os.ExpandEnv(c.History.Path)
}

// Validate checks value ranges
func (c *Config) Validate() error {
	invalid := func(field string, value interface{}) error {
		return mdwerror.Newf("invalid value for %s: %v", field, value).
			WithCode(mdwerror.CodeInvalidConfig).
			WithOperation("config.Validate").
			WithDetail("field", field)
	}

	if _, err := mdwlog.ParseLevel(c.General.LogLevel); err != nil {
		return invalid("general.log_level", c.General.LogLevel)
	}
	if _, err := mdwlog.ParseFormat(c.General.LogFormat); err != nil {
		return invalid("general.log_format", c.General.LogFormat)
	}
	if c.Server.GRPCPort < 1 || c.Server.GRPCPort > 65535 {
		return invalid("server.grpc_port", c.Server.GRPCPort)
	}
	if c.Server.HTTPPort < 1 || c.Server.HTTPPort > 65535 {
		return invalid("server.http_port", c.Server.HTTPPort)
	}
	if c.Solver.CacheSize < 0 {
		return invalid("solver.cache_size", c.Solver.CacheSize)
	}
	if c.History.Limit < 0 {
		return invalid("history.limit", c.History.Limit)
	}
	return nil
}

// IsStrictDivision reports the effective solver.strict_division value
func (c *Config) IsStrictDivision() bool {
	return c.Solver.StrictDivision == nil || *c.Solver.StrictDivision
}

// IsHistoryEnabled reports the effective history.enabled value
func (c *Config) IsHistoryEnabled() bool {
	return c.History.Enabled == nil || *c.History.Enabled
}

// GRPCAddress returns the gRPC listen address
func (c *Config) GRPCAddress() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.GRPCPort)
}

// HTTPAddress returns the HTTP listen address
func (c *Config) HTTPAddress() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.HTTPPort)
}
