package shared

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
)

//go:embed config.example.toml
var exampleConf []byte

// Config represents the application configuration loaded from a TOML file.
type Config struct {
	Credentials CredentialsConfig `toml:"credentials"`
	Files       FilesConfig       `toml:"files"`
	Schedule    ScheduleConfig    `toml:"schedule"`
	Database    DatabaseConfig    `toml:"database"`
	Server      ServerConfig      `toml:"server"`
	Log         LogConfig         `toml:"log"`
}

// CredentialsConfig contains service-specific credentials.
type CredentialsConfig struct {
	YouTube YouTubeConfig `toml:"youtube"`
}

// YouTubeConfig contains YouTube Data API credentials and client limits.
type YouTubeConfig struct {
	ClientSecrets     string  `toml:"client_secrets"`
	TokenPath         string  `toml:"token_path"`
	RequestsPerSecond float64 `toml:"requests_per_second"`
}

// FilesConfig locates the smart playlist rules and the uploads playlist cache.
type FilesConfig struct {
	Rules        string `toml:"rules"`
	UploadsCache string `toml:"uploads_cache"`
}

// ScheduleConfig controls the sweep loop.
type ScheduleConfig struct {
	Interval Duration `toml:"interval"`
	Timezone string   `toml:"timezone"`
}

// DatabaseConfig contains database connection settings.
type DatabaseConfig struct {
	Path         string `toml:"path"`
	MaxOpenConns int    `toml:"max_open_conns"`
	MaxIdleConns int    `toml:"max_idle_conns"`
}

// ServerConfig contains settings for the local OAuth callback server.
type ServerConfig struct {
	Host string `toml:"host"`
	Port int    `toml:"port"`
}

// LogConfig sets the default log level.
type LogConfig struct {
	Level string `toml:"level"`
}

// Duration is a [time.Duration] that reads and writes TOML strings such as "30m".
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("%w: duration %q", ErrInvalidConfig, string(text))
	}
	d.Duration = parsed
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// CallbackURL returns the OAuth redirect URL served by the local callback server.
func (s ServerConfig) CallbackURL() string {
	return fmt.Sprintf("http://%s:%d/callback", s.Host, s.Port)
}

// Location resolves the configured timezone. "Local" and "" map to [time.Local].
func (s ScheduleConfig) Location() (*time.Location, error) {
	if s.Timezone == "" || s.Timezone == "Local" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(s.Timezone)
	if err != nil {
		return nil, fmt.Errorf("%w: timezone %q: %v", ErrInvalidConfig, s.Timezone, err)
	}
	return loc, nil
}

// LoadConfig reads and parses a TOML configuration file from the specified path.
//
// Keys missing from the file keep the embedded defaults.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := toml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("%w: failed to parse %s: %v", ErrInvalidConfig, path, err)
	}

	return config, nil
}

// DefaultConfig returns a Config with sensible defaults loaded from the embedded example config.
func DefaultConfig() *Config {
	var config Config
	if err := toml.Unmarshal(exampleConf, &config); err != nil {
		panic(fmt.Sprintf("failed to parse embedded default config: %v", err))
	}
	return &config
}

// CreateConfigFile creates a config.toml file at the specified path using the embedded example config.
// Missing parent directories are created.
func CreateConfigFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	if err := WriteFileAtomic(path, exampleConf, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// SaveConfig encodes config as TOML and writes it to path.
func SaveConfig(path string, config *Config) error {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(config); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return WriteFileAtomic(path, buf.Bytes(), 0600)
}

// ApplyEnv overrides config values from YTSP_* environment variables.
func (c *Config) ApplyEnv() error {
	strs := map[string]*string{
		"YTSP_CLIENT_SECRETS": &c.Credentials.YouTube.ClientSecrets,
		"YTSP_TOKEN_PATH":     &c.Credentials.YouTube.TokenPath,
		"YTSP_RULES":          &c.Files.Rules,
		"YTSP_UPLOADS_CACHE":  &c.Files.UploadsCache,
		"YTSP_TIMEZONE":       &c.Schedule.Timezone,
		"YTSP_DB_PATH":        &c.Database.Path,
		"YTSP_LOG_LEVEL":      &c.Log.Level,
	}
	for key, dst := range strs {
		if v, ok := os.LookupEnv(key); ok && v != "" {
			*dst = v
		}
	}

	if v := os.Getenv("YTSP_INTERVAL"); v != "" {
		if err := c.Schedule.Interval.UnmarshalText([]byte(v)); err != nil {
			return err
		}
	}
	if v := os.Getenv("YTSP_REQUESTS_PER_SECOND"); v != "" {
		rps, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("%w: YTSP_REQUESTS_PER_SECOND=%q", ErrInvalidConfig, v)
		}
		c.Credentials.YouTube.RequestsPerSecond = rps
	}
	return nil
}

// Validate checks the values the sweep loop depends on.
func (c *Config) Validate() error {
	if c.Schedule.Interval.Duration <= 0 {
		return fmt.Errorf("%w: schedule.interval must be positive", ErrInvalidConfig)
	}
	if c.Credentials.YouTube.RequestsPerSecond <= 0 {
		return fmt.Errorf("%w: credentials.youtube.requests_per_second must be positive", ErrInvalidConfig)
	}
	if _, err := c.Schedule.Location(); err != nil {
		return err
	}
	if _, err := ParseLogLevel(c.Log.Level); err != nil {
		return err
	}
	return nil
}
