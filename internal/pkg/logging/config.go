package logging

import (
	"fmt"
	"strings"
)

// Output formats.
const (
	FormatJSON = "json"
	FormatText = "text"
)

// Levels.
const (
	LevelDebug = "debug"
	LevelInfo  = "info"
	LevelWarn  = "warn"
	LevelError = "error"
)

// Outputs.
const (
	OutputStderr = "stderr"
	OutputFile   = "file"
)

// Defaults for Config.
const (
	DefaultLevel      = LevelInfo
	DefaultFormat     = FormatText
	DefaultOutput     = OutputStderr
	DefaultFilePath   = "eyeosee.log"
	DefaultMaxSize    = 100 // MB
	DefaultMaxBackups = 3
	DefaultMaxAge     = 7 // days
	DefaultCompress   = true
)

// DefaultConfig returns a Config populated with the defaults.
func DefaultConfig() Config {
	return Config{
		Level:      DefaultLevel,
		Format:     DefaultFormat,
		Output:     DefaultOutput,
		FilePath:   DefaultFilePath,
		MaxSize:    DefaultMaxSize,
		MaxBackups: DefaultMaxBackups,
		MaxAge:     DefaultMaxAge,
		Compress:   DefaultCompress,
	}
}

// Config holds the logging settings.
type Config struct {
	// Level is one of debug, info, warn, error.
	Level string `yaml:"level" env:"LEVEL" env-default:"info"`

	// Format is text or json.
	Format string `yaml:"format" env:"FORMAT" env-default:"text"`

	// Output is stderr or file.
	Output string `yaml:"output" env:"OUTPUT" env-default:"stderr"`

	// FilePath is the log file when Output is file.
	FilePath string `yaml:"filePath" env:"FILE_PATH" env-default:"eyeosee.log"`

	// Rotation settings (lumberjack).
	MaxSize    int  `yaml:"maxSize" env:"MAX_SIZE" env-default:"100"`
	MaxBackups int  `yaml:"maxBackups" env:"MAX_BACKUPS" env-default:"3"`
	MaxAge     int  `yaml:"maxAge" env:"MAX_AGE" env-default:"7"`
	Compress   bool `yaml:"compress" env:"COMPRESS" env-default:"true"`
}

// Validate checks enumerated fields.
func (c Config) Validate() error {
	switch strings.ToLower(c.Level) {
	case "", LevelDebug, LevelInfo, LevelWarn, LevelError:
	default:
		return fmt.Errorf("logging: invalid level %q", c.Level)
	}
	switch c.Format {
	case "", FormatText, FormatJSON:
	default:
		return fmt.Errorf("logging: invalid format %q", c.Format)
	}
	switch c.Output {
	case "", OutputStderr:
	case OutputFile:
		if c.FilePath == "" {
			return fmt.Errorf("logging: output %q requires filePath", OutputFile)
		}
	default:
		return fmt.Errorf("logging: invalid output %q", c.Output)
	}
	return nil
}
