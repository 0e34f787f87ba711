package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all consolebot configuration.
type Config struct {
	// Administrators, as @identifiers. The first one is the default acting user.
	BotAdmins []string `yaml:"bot_admins"`

	// Bot identity on the console
	BotIdentity IdentityConfig `yaml:"bot_identity"`

	// Command prefix recognised by the host, e.g. "!" for "!help"
	BotPrefix string `yaml:"bot_prefix"`

	// Text backend settings
	Text TextConfig `yaml:"text"`

	// Logging
	Logging LoggingConfig `yaml:"logging"`
}

// IdentityConfig configures the bot's own identity.
type IdentityConfig struct {
	Username string `yaml:"username"`
}

// TextConfig configures the console backend.
type TextConfig struct {
	// DemoMode prints a single ANSI rendering per outbound message and silences logs.
	DemoMode bool `yaml:"demo_mode"`

	// PacingDelay is slept between two prompts
	PacingDelay string `yaml:"pacing_delay"`

	// WordWrap is the column width for ANSI rendering
	WordWrap int `yaml:"word_wrap"`

	// ANSIStyle is a glamour standard style: dark, light, notty, ascii, dracula...
	ANSIStyle string `yaml:"ansi_style"`

	// HighlightStyle is a chroma style used for the MD and HTML debug blocks.
	HighlightStyle string `yaml:"highlight_style"`
}

// DefaultUsername is the bot identity when none is configured.
const DefaultUsername = "@consolebot"

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		BotAdmins: []string{"@admin"},
		BotIdentity: IdentityConfig{
			Username: DefaultUsername,
		},
		BotPrefix: "!",

		Text: TextConfig{
			DemoMode:       false,
			PacingDelay:    "500ms",
			WordWrap:       80,
			ANSIStyle:      "dark",
			HighlightStyle: "paraiso-dark",
		},

		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// Load loads configuration from a YAML file.
// A missing file is not an error: defaults (plus environment overrides) are returned.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		if err == nil {
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config: %w", err)
			}
		}
	}

	// Override with environment variables
	cfg.applyEnvOverrides()

	return cfg, nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	if admins := os.Getenv("CONSOLEBOT_ADMINS"); admins != "" {
		c.BotAdmins = splitList(admins)
	}
	if username := os.Getenv("CONSOLEBOT_USERNAME"); username != "" {
		c.BotIdentity.Username = username
	}
	if prefix := os.Getenv("CONSOLEBOT_PREFIX"); prefix != "" {
		c.BotPrefix = prefix
	}
	if demo := os.Getenv("CONSOLEBOT_DEMO_MODE"); demo != "" {
		if v, err := strconv.ParseBool(demo); err == nil {
			c.Text.DemoMode = v
		}
	}
	if level := os.Getenv("CONSOLEBOT_LOG_LEVEL"); level != "" {
		c.Logging.Level = level
	}
}

// splitList parses a comma separated list, dropping blanks.
func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if len(c.BotAdmins) == 0 {
		return fmt.Errorf("at least one bot admin must be configured (bot_admins or CONSOLEBOT_ADMINS)")
	}
	for _, admin := range c.BotAdmins {
		if !strings.HasPrefix(admin, "@") || len(admin) < 2 {
			return fmt.Errorf("invalid bot admin %q: must look like @name", admin)
		}
	}
	if u := c.BotIdentity.Username; u != "" && !strings.HasPrefix(u, "@") {
		return fmt.Errorf("invalid bot username %q: must look like @name", u)
	}
	if c.BotPrefix == "" {
		return fmt.Errorf("bot prefix must not be empty")
	}
	if _, err := time.ParseDuration(c.Text.PacingDelay); err != nil {
		return fmt.Errorf("invalid text.pacing_delay %q: %w", c.Text.PacingDelay, err)
	}
	if err := c.Logging.Validate(); err != nil {
		return err
	}
	return nil
}

// FirstAdmin returns the first configured administrator.
func (c *Config) FirstAdmin() string {
	if len(c.BotAdmins) == 0 {
		return ""
	}
	return c.BotAdmins[0]
}

// Username returns the bot username, falling back to DefaultUsername.
func (c *Config) Username() string {
	if c.BotIdentity.Username == "" {
		return DefaultUsername
	}
	return c.BotIdentity.Username
}

// GetPacingDelay returns the pacing delay as a duration.
func (c *Config) GetPacingDelay() time.Duration {
	d, err := time.ParseDuration(c.Text.PacingDelay)
	if err != nil {
		return 500 * time.Millisecond
	}
	return d
}
