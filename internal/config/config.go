package config

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/viper"
)

// Hard cap on list results. Requests may ask for less, never more.
const MAX_LIST_LIMIT = 10

const QR_IMAGE_SIZE = 512

type AuthConfig struct {
	// When false the API is wide open, matching the legacy deployment.
	// Enable before exposing this service outside a trusted network.
	Enabled bool `mapstructure:"enabled"`
	// TTL for login tokens in seconds.
	TokenTTL uint `mapstructure:"token_ttl"`
	// Path to the YAML role policy file.
	PolicyFile string `mapstructure:"policy_file"`
}

type PassConfig struct {
	// TTL for visitor pass tokens in seconds.
	TokenTTL uint `mapstructure:"token_ttl"`
}

type SMTPConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	From     string `mapstructure:"from"`
}

type NotifyConfig struct {
	// Incident report notifications go to these addresses. Empty disables them.
	IncidentRecipients []string `mapstructure:"incident_recipients"`
}

type Config struct {
	// Secret key for signing tokens. Must be set in production.
	Secret string `mapstructure:"secret"`

	LogLevel   string `mapstructure:"log_level"`
	ListenAddr string `mapstructure:"listen_addr"`

	// Comma separated list of allowed CIDR networks. Empty means allow all.
	AllowedNetworks string `mapstructure:"allowed_networks"`

	Auth AuthConfig `mapstructure:"auth"`
	Pass PassConfig `mapstructure:"pass"`

	Storage Storage `mapstructure:"storage"`

	Email  SMTPConfig   `mapstructure:"email"`
	Notify NotifyConfig `mapstructure:"notify"`
}

var Cfg *Config

// Check if running in Docker container by checking for the presence of /.dockerenv file
func runningInDocker() bool {
	if _, err := os.Stat("/.dockerenv"); err == nil {
		return true
	}
	return false
}

func getConfigPath() string {
	if runningInDocker() {
		return "/app/instance"
	}
	return "./instance"
}

// LoadConfig reads configuration from config files and environment variables.
func LoadConfig(configFile ...string) (*Config, error) {
	var cfg Config

	v := viper.New()
	v.SetConfigName("config")
	v.AddConfigPath(getConfigPath())
	v.AddConfigPath(".")
	v.SetEnvPrefix("")

	if len(configFile) > 0 {
		for _, path := range configFile {
			v.SetConfigFile(path)
		}
	}

	for k, val := range Defaults() {
		v.SetDefault(k, val)
	}

	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		// A missing config file is fine, defaults plus env vars carry a full setup.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("unable to read config: %v", err)
		}
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode into struct: %v", err)
	}

	// Backend selection. A configured mysql block wins outright;
	// otherwise sqlite is used, falling back to the default path when
	// none (or an empty one) is given.
	if cfg.Storage.MySQL != nil {
		cfg.Storage.SQLite = nil
	} else {
		if cfg.Storage.SQLite == nil || cfg.Storage.SQLite.Path == "" {
			cfg.Storage.SQLite = &SQLiteStorage{Path: defaultSQLitePath}
		}
		// Convert a relative sqlite path to the instance folder
		if path := cfg.Storage.SQLite.Path; path != ":memory:" && !os.IsPathSeparator(path[0]) {
			cfg.Storage.SQLite.Path = fmt.Sprintf("%s/%s", getConfigPath(), path)
		}
	}

	// Warn if secret is missing - required for auth tokens and visitor passes
	if cfg.Secret == "" {
		if os.Getenv("GIN_MODE") == "release" {
			panic("SECRET configuration variable is required in production")
		} else {
			slog.Warn("Secret is not set. Do not use in production.")
		}
	}

	Cfg = &cfg
	return &cfg, nil
}
