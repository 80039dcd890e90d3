package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

//go:generate go run ../../cmd/schema/main.go schema.json

// Config holds the application configuration
type Config struct {
	Server struct {
		Listen  string        `yaml:"listen" json:"listen" jsonschema:"default=:8080,description=HTTP server listen address"`
		Timeout time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=30s,description=HTTP server timeout"`
	} `yaml:"server" json:"server" jsonschema:"description=Server configuration"`

	WebSub struct {
		HubURL          string        `yaml:"hub_url" json:"hub_url" jsonschema:"default=https://pubsubhubbub.appspot.com/subscribe,description=WebSub hub subscribe endpoint"`
		ChannelID       string        `yaml:"channel_id" json:"channel_id" jsonschema:"required,description=YouTube channel id the topic is built from"`
		PublicBaseURL   string        `yaml:"public_base_url" json:"public_base_url" jsonschema:"required,description=Public base URL the hub can reach this server at"`
		Secret          string        `yaml:"secret" json:"secret" jsonschema:"description=Shared secret for X-Hub-Signature verification (empty disables it)"`
		RenewalInterval time.Duration `yaml:"renewal_interval" json:"renewal_interval" jsonschema:"default=12h,description=Subscription renewal period"`
		Timeout         time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=30s,description=Hub request timeout"`
	} `yaml:"websub" json:"websub" jsonschema:"description=WebSub subscription configuration"`

	Discord struct {
		Token     string        `yaml:"token" json:"token" jsonschema:"required,description=Discord bot token"`
		ChannelID string        `yaml:"channel_id" json:"channel_id" jsonschema:"required,description=Discord channel id announcements go to"`
		Timeout   time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=10s,description=Discord API request timeout"`
	} `yaml:"discord" json:"discord" jsonschema:"description=Discord sink configuration"`

	Database struct {
		DSN             string `yaml:"dsn" json:"dsn" jsonschema:"description=SQLite connection string for announcement history (empty disables history)"`
		MaxOpenConns    int    `yaml:"max_open_conns" json:"max_open_conns" jsonschema:"default=10,description=Maximum number of open connections"`
		MaxIdleConns    int    `yaml:"max_idle_conns" json:"max_idle_conns" jsonschema:"default=5,description=Maximum number of idle connections"`
		ConnMaxLifetime int    `yaml:"conn_max_lifetime" json:"conn_max_lifetime" jsonschema:"default=3600,description=Connection maximum lifetime in seconds"`
	} `yaml:"database" json:"database" jsonschema:"description=Database configuration"`
}

// Load reads configuration from a YAML file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // file path comes from CLI flag
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	// expand environment variables
	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	// set defaults for server
	if cfg.Server.Listen == "" {
		cfg.Server.Listen = ":8080"
	}
	if cfg.Server.Timeout == 0 {
		cfg.Server.Timeout = 30 * time.Second
	}

	// set defaults for websub
	if cfg.WebSub.HubURL == "" {
		cfg.WebSub.HubURL = "https://pubsubhubbub.appspot.com/subscribe"
	}
	if cfg.WebSub.RenewalInterval == 0 {
		cfg.WebSub.RenewalInterval = 12 * time.Hour
	}
	if cfg.WebSub.Timeout == 0 {
		cfg.WebSub.Timeout = 30 * time.Second
	}

	// set defaults for discord
	if cfg.Discord.Timeout == 0 {
		cfg.Discord.Timeout = 10 * time.Second
	}

	// set defaults for database
	if cfg.Database.MaxOpenConns == 0 {
		cfg.Database.MaxOpenConns = 10
	}
	if cfg.Database.MaxIdleConns == 0 {
		cfg.Database.MaxIdleConns = 5
	}
	if cfg.Database.ConnMaxLifetime == 0 {
		cfg.Database.ConnMaxLifetime = 3600
	}

	// validate configuration
	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	// verify against embedded schema
	if err := VerifyAgainstEmbeddedSchema(&cfg); err != nil {
		// log warning but don't fail - schema validation is supplementary
		fmt.Printf("warning: schema validation failed: %v\n", err)
	}

	return &cfg, nil
}

// validate checks configuration for correctness
func validate(cfg *Config) error {
	if cfg.WebSub.ChannelID == "" {
		return fmt.Errorf("websub.channel_id is required")
	}
	if cfg.WebSub.PublicBaseURL == "" {
		return fmt.Errorf("websub.public_base_url is required")
	}
	if !strings.HasPrefix(cfg.WebSub.PublicBaseURL, "http://") && !strings.HasPrefix(cfg.WebSub.PublicBaseURL, "https://") {
		return fmt.Errorf("websub.public_base_url must be an absolute http(s) URL")
	}
	if cfg.WebSub.RenewalInterval < time.Minute {
		return fmt.Errorf("websub.renewal_interval must be at least 1 minute")
	}

	if cfg.Discord.Token == "" {
		return fmt.Errorf("discord.token is required")
	}
	if cfg.Discord.ChannelID == "" {
		return fmt.Errorf("discord.channel_id is required")
	}

	if cfg.Server.Timeout < time.Second {
		return fmt.Errorf("server timeout must be at least 1 second")
	}

	return nil
}

// TopicURL returns the feed URL the subscription is registered against
func (c *Config) TopicURL() string {
	return "https://www.youtube.com/feeds/videos.xml?channel_id=" + c.WebSub.ChannelID
}

// CallbackURL returns the public endpoint the hub pushes notifications to
func (c *Config) CallbackURL() string {
	return strings.TrimSuffix(c.WebSub.PublicBaseURL, "/") + "/websub"
}

// GetServerConfig returns server configuration
func (c *Config) GetServerConfig() (listen string, timeout time.Duration) {
	return c.Server.Listen, c.Server.Timeout
}

// GetSecret returns the shared WebSub secret, empty when verification is off
func (c *Config) GetSecret() string {
	return c.WebSub.Secret
}
