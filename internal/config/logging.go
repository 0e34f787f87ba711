package config

import "fmt"

// LoggingConfig configures logging.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // json, console
	File   string `yaml:"file"`   // extra output path, empty for stderr only
}

// ValidLogLevels lists the accepted levels.
var ValidLogLevels = []string{"debug", "info", "warn", "error"}

// Validate checks level and format.
func (c *LoggingConfig) Validate() error {
	valid := false
	for _, l := range ValidLogLevels {
		if c.Level == l {
			valid = true
			break
		}
	}
	if !valid {
		return fmt.Errorf("invalid log level: %s (valid: %v)", c.Level, ValidLogLevels)
	}
	switch c.Format {
	case "json", "console":
	default:
		return fmt.Errorf("invalid log format: %s (valid: json, console)", c.Format)
	}
	return nil
}
