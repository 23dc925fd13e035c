// Package config loads desktop-clippy settings from defaults, an optional
// YAML file and DESKTOP_CLIPPY_* environment variables, in that order.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/mj1618/desktop-clippy/internal/platform"
)

// TransportType is the MCP transport the server listens on.
type TransportType string

const (
	TransportStdio TransportType = "stdio"
	TransportHTTP  TransportType = "streamable-http"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "DESKTOP_CLIPPY_"

// Config is the complete desktop-clippy configuration, one section per
// concern. The YAML keys match the section and field tags.
type Config struct {
	Server ServerConfig `yaml:"server"`
	Log    LogConfig    `yaml:"log"`
	Input  InputConfig  `yaml:"input"`
	Vision VisionConfig `yaml:"vision"`
	Shell  ShellConfig  `yaml:"shell"`
	Tools  ToolsConfig  `yaml:"tools"`
}

// ServerConfig selects the MCP transport and, for streamable-http, where it
// listens.
type ServerConfig struct {
	Transport TransportType `yaml:"transport"` // default "stdio"
	Host      string        `yaml:"host"`      // default "127.0.0.1"
	Port      int           `yaml:"port"`      // default 8000
	Endpoint  string        `yaml:"endpoint"`  // default "/mcp"
}

// LogConfig controls the zap logger. Logs always go to stderr.
type LogConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // console or json
}

// InputConfig paces synthesized mouse and keyboard input.
type InputConfig struct {
	Pause        time.Duration `yaml:"pause"`         // after every action
	TypeInterval time.Duration `yaml:"type_interval"` // between typed characters
	DragDuration time.Duration `yaml:"drag_duration"`
}

// VisionConfig shapes the screenshot attached to State-Tool replies.
type VisionConfig struct {
	Scale    float64 `yaml:"scale"`    // 0.1 to 1.0
	Annotate bool    `yaml:"annotate"` // outline interactive elements
}

// ShellConfig gates the PowerShell-backed tools.
type ShellConfig struct {
	Enabled bool          `yaml:"enabled"`
	Timeout time.Duration `yaml:"timeout"`
}

// ToolsConfig bounds how long individual tools may run.
type ToolsConfig struct {
	StateTimeout  time.Duration `yaml:"state_timeout"`
	ScrapeTimeout time.Duration `yaml:"scrape_timeout"`
	LaunchTimeout time.Duration `yaml:"launch_timeout"`
	SwitchTimeout time.Duration `yaml:"switch_timeout"`
}

// DefaultConfig returns a Config populated with all default values.
func DefaultConfig() *Config {
	in := platform.DefaultInputConfig()
	return &Config{
		Server: ServerConfig{
			Transport: TransportStdio,
			Host:      "127.0.0.1",
			Port:      8000,
			Endpoint:  "/mcp",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
		Input: InputConfig{
			Pause:        in.Pause,
			TypeInterval: in.TypeInterval,
			DragDuration: in.DragDuration,
		},
		Vision: VisionConfig{
			Scale:    1.0,
			Annotate: false,
		},
		Shell: ShellConfig{
			Enabled: true,
			Timeout: 60 * time.Second,
		},
		Tools: ToolsConfig{
			StateTimeout:  60 * time.Second,
			ScrapeTimeout: 30 * time.Second,
			LaunchTimeout: 15 * time.Second,
			SwitchTimeout: 15 * time.Second,
		},
	}
}

// Load builds the configuration. An empty path skips the file; a missing
// file named explicitly is an error.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config %s: %w", path, err)
		}
	}
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadDotEnv exports the variables in a .env file into the process
// environment so that applyEnv sees them. Variables already set win. A
// missing file is not an error.
func LoadDotEnv(path string) error {
	if path == "" {
		return nil
	}
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("loading env file %s: %w", path, err)
	}
	return nil
}

// ServerAddress returns the listen address in "host:port" format.
func (c *Config) ServerAddress() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// PlatformInput converts the input section for the platform backend.
func (c *Config) PlatformInput() platform.InputConfig {
	return platform.InputConfig{
		Pause:        c.Input.Pause,
		TypeInterval: c.Input.TypeInterval,
		DragDuration: c.Input.DragDuration,
	}
}

// Validate reports the first invalid field.
func (c *Config) Validate() error {
	switch c.Server.Transport {
	case TransportStdio, TransportHTTP:
	default:
		return fmt.Errorf("invalid server.transport %q (must be %q or %q)", c.Server.Transport, TransportStdio, TransportHTTP)
	}
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server.port %d (must be 1-65535)", c.Server.Port)
	}
	if c.Server.Endpoint == "" || c.Server.Endpoint[0] != '/' {
		return fmt.Errorf("invalid server.endpoint %q (must start with /)", c.Server.Endpoint)
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log.level %q", c.Log.Level)
	}
	switch c.Log.Format {
	case "console", "json":
	default:
		return fmt.Errorf("invalid log.format %q (must be console or json)", c.Log.Format)
	}
	if c.Vision.Scale < 0.1 || c.Vision.Scale > 1.0 {
		return fmt.Errorf("invalid vision.scale %v (must be between 0.1 and 1.0)", c.Vision.Scale)
	}
	for name, d := range map[string]time.Duration{
		"input.pause":         c.Input.Pause,
		"input.type_interval": c.Input.TypeInterval,
		"input.drag_duration": c.Input.DragDuration,
	} {
		if d < 0 {
			return fmt.Errorf("invalid %s %v (must not be negative)", name, d)
		}
	}
	for name, d := range map[string]time.Duration{
		"shell.timeout":        c.Shell.Timeout,
		"tools.state_timeout":  c.Tools.StateTimeout,
		"tools.scrape_timeout": c.Tools.ScrapeTimeout,
		"tools.launch_timeout": c.Tools.LaunchTimeout,
		"tools.switch_timeout": c.Tools.SwitchTimeout,
	} {
		if d <= 0 {
			return fmt.Errorf("invalid %s %v (must be positive)", name, d)
		}
	}
	return nil
}

func (c *Config) applyEnv() error {
	c.Server.Transport = TransportType(getEnv("TRANSPORT", string(c.Server.Transport)))
	c.Server.Host = getEnv("HOST", c.Server.Host)
	c.Server.Endpoint = getEnv("ENDPOINT", c.Server.Endpoint)
	c.Log.Level = getEnv("LOG_LEVEL", c.Log.Level)
	c.Log.Format = getEnv("LOG_FORMAT", c.Log.Format)
	c.Vision.Annotate = getEnvAsBool("VISION_ANNOTATE", c.Vision.Annotate)
	c.Shell.Enabled = getEnvAsBool("SHELL_ENABLED", c.Shell.Enabled)

	var errs []error
	var err error
	if c.Server.Port, err = getEnvAsInt("PORT", c.Server.Port); err != nil {
		errs = append(errs, err)
	}
	if c.Vision.Scale, err = getEnvAsFloat("VISION_SCALE", c.Vision.Scale); err != nil {
		errs = append(errs, err)
	}
	for key, d := range map[string]*time.Duration{
		"INPUT_PAUSE":    &c.Input.Pause,
		"TYPE_INTERVAL":  &c.Input.TypeInterval,
		"DRAG_DURATION":  &c.Input.DragDuration,
		"SHELL_TIMEOUT":  &c.Shell.Timeout,
		"STATE_TIMEOUT":  &c.Tools.StateTimeout,
		"SCRAPE_TIMEOUT": &c.Tools.ScrapeTimeout,
		"LAUNCH_TIMEOUT": &c.Tools.LaunchTimeout,
		"SWITCH_TIMEOUT": &c.Tools.SwitchTimeout,
	} {
		if *d, err = getEnvAsDuration(key, *d); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(EnvPrefix + key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	value := os.Getenv(EnvPrefix + key)
	if value == "" {
		return defaultValue
	}
	return value == "true" || value == "1" || value == "yes"
}

func getEnvAsInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(EnvPrefix + key)
	if value == "" {
		return defaultValue, nil
	}
	result, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue, fmt.Errorf("invalid value for %s%s: %q (expected integer)", EnvPrefix, key, value)
	}
	return result, nil
}

func getEnvAsFloat(key string, defaultValue float64) (float64, error) {
	value := os.Getenv(EnvPrefix + key)
	if value == "" {
		return defaultValue, nil
	}
	result, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return defaultValue, fmt.Errorf("invalid value for %s%s: %q (expected number)", EnvPrefix, key, value)
	}
	return result, nil
}

func getEnvAsDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(EnvPrefix + key)
	if value == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue, fmt.Errorf("invalid value for %s%s: %q (expected duration, e.g., '30s', '5m')", EnvPrefix, key, value)
	}
	return d, nil
}
