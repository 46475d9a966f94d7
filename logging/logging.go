// Package logging builds the process logger
// Terminal hosts own stdout, so output only ever goes to a file and only in debug mode
package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	DefaultDir  = "logs"
	DefaultFile = "gridiron.log"
)

// Config defines logging behavior
type Config struct {
	Debug  bool   `yaml:"debug"`
	Level  string `yaml:"level"`
	Dir    string `yaml:"dir"`
	File   string `yaml:"file"`
	Format string `yaml:"format"` // json or console
}

// DefaultConfig returns logging disabled, debug level and console format once enabled
func DefaultConfig() Config {
	return Config{
		Level:  "debug",
		Dir:    DefaultDir,
		File:   DefaultFile,
		Format: "console",
	}
}

// Path returns the log file location
func (c Config) Path() string {
	dir, file := c.Dir, c.File
	if dir == "" {
		dir = DefaultDir
	}
	if file == "" {
		file = DefaultFile
	}
	return filepath.Join(dir, file)
}

// Validate checks level and format without touching the filesystem
func (c Config) Validate() error {
	if c.Level != "" {
		if _, err := zapcore.ParseLevel(c.Level); err != nil {
			return fmt.Errorf("log level: %w", err)
		}
	}
	switch strings.ToLower(c.Format) {
	case "", "json", "console":
	default:
		return fmt.Errorf("log format %q: want json or console", c.Format)
	}
	return nil
}

// New returns a file-backed logger when Debug is set and zap.NewNop otherwise
// The returned logger should be synced by the caller before exit
func New(cfg Config) (*zap.Logger, error) {
	if !cfg.Debug {
		return zap.NewNop(), nil
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	path := cfg.Path()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}

	zc := zap.NewDevelopmentConfig()
	if strings.EqualFold(cfg.Format, "json") {
		zc = zap.NewProductionConfig()
		zc.Sampling = nil
	}
	level := zapcore.DebugLevel
	if cfg.Level != "" {
		level, _ = zapcore.ParseLevel(cfg.Level)
	}
	zc.Level = zap.NewAtomicLevelAt(level)
	zc.EncoderConfig.TimeKey = "ts"
	zc.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	zc.OutputPaths = []string{path}
	zc.ErrorOutputPaths = []string{path}

	log, err := zc.Build(zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel))
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	return log, nil
}
