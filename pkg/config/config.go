package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	VK        VKConfig
	Server    ServerConfig
	Feed      FeedConfig
	Logging   LoggingConfig
	Telemetry TelemetryConfig
}

// VKConfig holds upstream VK API configuration
type VKConfig struct {
	APIURL  string
	SiteURL string
	Timeout time.Duration
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port int
	Host string
}

// FeedConfig holds feed rendering configuration
type FeedConfig struct {
	// TimeOffsetHours is added to post timestamps before they are
	// published. The upstream API reports MSK times.
	TimeOffsetHours int
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string
	Format string // "json" or "text"
}

// TelemetryConfig holds observability configuration
type TelemetryConfig struct {
	Enabled           bool
	JaegerURL         string
	PrometheusEnabled bool
	PrometheusPort    int
	ServiceName       string
}

// Load loads configuration from environment variables and config file
func Load() (*Config, error) {
	// Set defaults
	setDefaults()

	// Load from environment
	viper.SetEnvPrefix("VKFEED")
	viper.AutomaticEnv()

	// Load from config file if exists
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("$HOME/.vkfeed")
	viper.AddConfigPath("/etc/vkfeed")

	if err := viper.ReadInConfig(); err != nil {
		// Config file not found; this is OK if we have env vars
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := &Config{
		VK: VKConfig{
			APIURL:  getString("api_url", "https://api.vk.com/"),
			SiteURL: getString("site_url", "https://vk.com/"),
			Timeout: time.Duration(getInt("request_timeout", 10)) * time.Second,
		},
		Server: ServerConfig{
			Port: getInt("http_server_port", 8080),
			Host: getString("http_server_host", "0.0.0.0"),
		},
		Feed: FeedConfig{
			TimeOffsetHours: getInt("time_offset_hours", 4),
		},
		Logging: LoggingConfig{
			Level:  getString("log_level", "INFO"),
			Format: getString("log_format", "json"),
		},
		Telemetry: TelemetryConfig{
			Enabled:           getBool("telemetry_enabled", false),
			JaegerURL:         getString("jaeger_url", ""),
			PrometheusEnabled: getBool("prometheus_enabled", true),
			PrometheusPort:    getInt("prometheus_port", 9090),
			ServiceName:       getString("service_name", "vkfeed"),
		},
	}

	// Validate required fields
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func setDefaults() {
	viper.SetDefault("api_url", "https://api.vk.com/")
	viper.SetDefault("site_url", "https://vk.com/")
	viper.SetDefault("request_timeout", 10)
	viper.SetDefault("http_server_port", 8080)
	viper.SetDefault("http_server_host", "0.0.0.0")
	viper.SetDefault("time_offset_hours", 4)
	viper.SetDefault("log_level", "INFO")
	viper.SetDefault("log_format", "json")
	viper.SetDefault("telemetry_enabled", false)
	viper.SetDefault("prometheus_enabled", true)
	viper.SetDefault("prometheus_port", 9090)
	viper.SetDefault("service_name", "vkfeed")
}

func getString(key, defaultValue string) string {
	if viper.IsSet(key) {
		return viper.GetString(key)
	}
	// Also check environment variable directly
	if val := os.Getenv("VKFEED_" + toEnvKey(key)); val != "" {
		return val
	}
	return defaultValue
}

func getInt(key string, defaultValue int) int {
	if viper.IsSet(key) {
		return viper.GetInt(key)
	}
	if val := os.Getenv("VKFEED_" + toEnvKey(key)); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return defaultValue
}

func getBool(key string, defaultValue bool) bool {
	if viper.IsSet(key) {
		return viper.GetBool(key)
	}
	if val := os.Getenv("VKFEED_" + toEnvKey(key)); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			return b
		}
	}
	return defaultValue
}

func toEnvKey(key string) string {
	return strings.ToUpper(key)
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.VK.APIURL == "" {
		return fmt.Errorf("api_url is required")
	}
	if !strings.HasSuffix(c.VK.APIURL, "/") {
		return fmt.Errorf("api_url must end with a slash")
	}
	if c.VK.SiteURL == "" {
		return fmt.Errorf("site_url is required")
	}
	if !strings.HasSuffix(c.VK.SiteURL, "/") {
		return fmt.Errorf("site_url must end with a slash")
	}
	if c.VK.Timeout <= 0 {
		return fmt.Errorf("request_timeout must be positive")
	}
	if c.Feed.TimeOffsetHours < -12 || c.Feed.TimeOffsetHours > 14 {
		return fmt.Errorf("time_offset_hours must be between -12 and 14")
	}
	return nil
}
