package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/GustavoCaso/expensetrack/internal/logger"
)

type ExportConfig struct {
	// Directory receiving exported files.
	Dir string `toml:"dir"`
	// SettleDelay is the pause between starting an export and writing it.
	SettleDelay Duration `toml:"settle_delay"`
}

// Category assigns Name to imported expenses whose description matches Pattern.
type Category struct {
	Name    string `toml:"name"`
	Pattern string `toml:"pattern"`
}

type Config struct {
	DB         string        `toml:"db"`
	Logger     logger.Config `toml:"logger"`
	Export     ExportConfig  `toml:"export"`
	Categories []Category    `toml:"categories"`
}

// Duration decodes TOML strings such as "600ms".
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = parsed
	return nil
}

const (
	defaultDBFile      = "expensetrack.db"
	defaultLogLevel    = logger.LevelInfo
	defaultLogFormat   = logger.FormatText
	defaultLogOutput   = "stderr"
	defaultExportDir   = "."
	defaultSettleDelay = 600 * time.Millisecond
)

func defaults() *Config {
	return &Config{
		DB: defaultDBFile,
		Logger: logger.Config{
			Level:  defaultLogLevel,
			Format: defaultLogFormat,
			Output: defaultLogOutput,
		},
		Export: ExportConfig{
			Dir:         defaultExportDir,
			SettleDelay: Duration{defaultSettleDelay},
		},
	}
}

func (c *Config) parseFile(path string) error {
	if path == "" {
		return nil
	}

	_, err := toml.DecodeFile(path, c)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to decode config file %s: %w", path, err)
	}

	return nil
}

func (c *Config) parseEnv() error {
	if db := os.Getenv("EXPENSETRACK_DB"); db != "" {
		c.DB = db
	}

	if level := os.Getenv("EXPENSETRACK_LOG_LEVEL"); level != "" {
		c.Logger.Level = logger.Level(level)
	}

	if format := os.Getenv("EXPENSETRACK_LOG_FORMAT"); format != "" {
		c.Logger.Format = logger.Format(format)
	}

	if output := os.Getenv("EXPENSETRACK_LOG_OUTPUT"); output != "" {
		c.Logger.Output = output
	}

	if dir := os.Getenv("EXPENSETRACK_EXPORT_DIR"); dir != "" {
		c.Export.Dir = dir
	}

	if delay := os.Getenv("EXPENSETRACK_EXPORT_DELAY"); delay != "" {
		d, err := time.ParseDuration(delay)
		if err != nil {
			return fmt.Errorf("invalid EXPENSETRACK_EXPORT_DELAY: %w", err)
		}
		c.Export.SettleDelay = Duration{d}
	}

	return nil
}

// Parse builds the configuration from defaults, the optional TOML file at
// path, a .env file in the working directory and EXPENSETRACK_* variables,
// in increasing order of precedence. A missing file is not an error.
func Parse(path string) (*Config, error) {
	conf := defaults()

	if err := conf.parseFile(path); err != nil {
		return nil, err
	}

	// .env is optional
	_ = godotenv.Load()

	if err := conf.parseEnv(); err != nil {
		return nil, err
	}

	return conf, nil
}
