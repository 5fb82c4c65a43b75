package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"dbcalls/internal/paths"
)

// CurrentVersion is the config schema version written by Save.
const CurrentVersion = 1

// SupportedConfigVersions lists the schema versions LoadConfig accepts.
var SupportedConfigVersions = []int{1}

// Config represents the complete dbcalls configuration
type Config struct {
	Version int `json:"version" yaml:"version" toml:"version" mapstructure:"version"`

	Scan     ScanConfig     `json:"scan" yaml:"scan" toml:"scan" mapstructure:"scan"`
	Report   ReportConfig   `json:"report" yaml:"report" toml:"report" mapstructure:"report"`
	Resolver ResolverConfig `json:"resolver" yaml:"resolver" toml:"resolver" mapstructure:"resolver"`
	Logging  LoggingConfig  `json:"logging" yaml:"logging" toml:"logging" mapstructure:"logging"`
}

// ScanConfig holds defaults for the scan command. Empty Root or Mode
// means the user is prompted.
type ScanConfig struct {
	Root    string   `json:"root" yaml:"root" toml:"root" mapstructure:"root"`
	Mode    string   `json:"mode" yaml:"mode" toml:"mode" mapstructure:"mode"`
	Output  string   `json:"output" yaml:"output" toml:"output" mapstructure:"output"`
	Exclude []string `json:"exclude" yaml:"exclude" toml:"exclude" mapstructure:"exclude"`
}

// ReportConfig contains report file settings
type ReportConfig struct {
	// OutputDir overrides the directory for file reports (default: scanned root)
	OutputDir string `json:"outputDir" yaml:"outputDir" toml:"outputDir" mapstructure:"outputDir"`
}

// ResolverConfig selects the type resolution backend
type ResolverConfig struct {
	// ScipIndex is the path to a SCIP index; empty means syntax-only resolution
	ScipIndex string `json:"scipIndex" yaml:"scipIndex" toml:"scipIndex" mapstructure:"scipIndex"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level      string `json:"level" yaml:"level" toml:"level" mapstructure:"level"`
	File       string `json:"file" yaml:"file" toml:"file" mapstructure:"file"`
	MaxSize    string `json:"maxSize" yaml:"maxSize" toml:"maxSize" mapstructure:"maxSize"`
	MaxBackups int    `json:"maxBackups" yaml:"maxBackups" toml:"maxBackups" mapstructure:"maxBackups"`
}

// Output values accepted by ScanConfig.Output
const (
	OutputConsole = "console"
	OutputFile    = "file"
)

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Version: CurrentVersion,
		Scan: ScanConfig{
			Output:  OutputConsole,
			Exclude: []string{},
		},
		Logging: LoggingConfig{
			Level:      "warn",
			MaxSize:    "10MB",
			MaxBackups: 3,
		},
	}
}

// EnvOverride records one environment variable applied on top of the file config.
type EnvOverride struct {
	EnvVar string `json:"envVar" yaml:"envVar" toml:"envVar"`
	Field  string `json:"field" yaml:"field" toml:"field"`
	Value  string `json:"value" yaml:"value" toml:"value"`
}

// LoadResult is the outcome of LoadConfigWithDetails
type LoadResult struct {
	Config       *Config
	ConfigPath   string
	UsedDefaults bool
	EnvOverrides []EnvOverride
}

// LoadConfig loads configuration from <dir>/.dbcalls/config.{json,yaml,toml} and applies
// DBCALLS_* environment overrides.
func LoadConfig(dir string) (*Config, error) {
	result, err := LoadConfigWithDetails(dir)
	if err != nil {
		return nil, err
	}
	return result.Config, nil
}

// LoadConfigWithDetails is LoadConfig plus where the values came from.
func LoadConfigWithDetails(dir string) (*LoadResult, error) {
	v := viper.New()

	// config.json, config.yaml or config.toml, whichever viper finds first
	v.SetConfigName("config")
	v.AddConfigPath(paths.ConfigDir(dir))

	cfg := DefaultConfig()
	result := &LoadResult{Config: cfg}

	if err := v.ReadInConfig(); err != nil {
		// If config doesn't exist, keep the defaults
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
		result.UsedDefaults = true
	} else {
		result.ConfigPath = v.ConfigFileUsed()
		if err := v.Unmarshal(cfg); err != nil {
			return nil, err
		}
	}

	result.EnvOverrides = ApplyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return result, nil
}

// envBinding maps an environment variable to a config field.
type envBinding struct {
	envVar string
	field  string
	apply  func(cfg *Config, value string)
}

var envBindings = []envBinding{
	{"DBCALLS_SCAN_ROOT", "scan.root", func(c *Config, v string) { c.Scan.Root = v }},
	{"DBCALLS_SCAN_MODE", "scan.mode", func(c *Config, v string) { c.Scan.Mode = v }},
	{"DBCALLS_SCAN_OUTPUT", "scan.output", func(c *Config, v string) { c.Scan.Output = v }},
	{"DBCALLS_SCAN_EXCLUDE", "scan.exclude", func(c *Config, v string) { c.Scan.Exclude = splitList(v) }},
	{"DBCALLS_REPORT_OUTPUT_DIR", "report.outputDir", func(c *Config, v string) { c.Report.OutputDir = v }},
	{"DBCALLS_RESOLVER_SCIP_INDEX", "resolver.scipIndex", func(c *Config, v string) { c.Resolver.ScipIndex = v }},
	{"DBCALLS_LOG_LEVEL", "logging.level", func(c *Config, v string) { c.Logging.Level = v }},
	{"DBCALLS_LOG_FILE", "logging.file", func(c *Config, v string) { c.Logging.File = v }},
}

// ApplyEnvOverrides applies DBCALLS_* variables to cfg and reports which were set.
func ApplyEnvOverrides(cfg *Config) []EnvOverride {
	var overrides []EnvOverride
	for _, b := range envBindings {
		value, ok := os.LookupEnv(b.envVar)
		if !ok || value == "" {
			continue
		}
		b.apply(cfg, value)
		overrides = append(overrides, EnvOverride{EnvVar: b.envVar, Field: b.field, Value: value})
	}
	return overrides
}

// SupportedEnvVars lists the recognised environment variables and their fields.
func SupportedEnvVars() map[string]string {
	out := make(map[string]string, len(envBindings))
	for _, b := range envBindings {
		out[b.envVar] = b.field
	}
	return out
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// Save writes the configuration to <dir>/.dbcalls/config.json
func (c *Config) Save(dir string) error {
	configDir := paths.ConfigDir(dir)
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(filepath.Join(configDir, "config.json"), data, 0644)
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	supported := false
	for _, v := range SupportedConfigVersions {
		if c.Version == v {
			supported = true
			break
		}
	}
	if !supported {
		return &ConfigError{Field: "version", Message: "unsupported config version"}
	}

	switch c.Scan.Output {
	case OutputConsole, OutputFile:
	default:
		return &ConfigError{Field: "scan.output", Message: "must be 'console' or 'file'"}
	}

	if c.Logging.MaxBackups < 0 {
		return &ConfigError{Field: "logging.maxBackups", Message: "must not be negative"}
	}
	return nil
}

// ConfigError represents a configuration error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return "config error in field '" + e.Field + "': " + e.Message
}
