package config

import (
	"fmt"
	"log/slog"

	"github.com/Veraticus/budgetbuddy/internal/common"
	"github.com/Veraticus/budgetbuddy/internal/storage"
	"github.com/spf13/viper"
)

// Configuration keys.
const (
	KeyDataFile      = "data.file"
	KeyLogLevel      = "logging.level"
	KeyLogFormat     = "logging.format"
	DefaultLogLevel  = "info"
	DefaultLogFormat = "console"
)

// Config holds resolved runtime settings.
type Config struct {
	DataFile  string
	LogFormat string
	LogLevel  slog.Level
}

// SetDefaults registers default values on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyDataFile, storage.DefaultDataFile)
	v.SetDefault(KeyLogLevel, DefaultLogLevel)
	v.SetDefault(KeyLogFormat, DefaultLogFormat)
}

// Load resolves and validates the settings held by v.
func Load(v *viper.Viper) (Config, error) {
	SetDefaults(v)

	level, err := common.ParseLevel(v.GetString(KeyLogLevel))
	if err != nil {
		return Config{}, err
	}

	format := v.GetString(KeyLogFormat)
	if format != "console" && format != "json" {
		return Config{}, fmt.Errorf("%w: log format %q", common.ErrInvalidConfig, format)
	}

	dataFile := ExpandPath(v.GetString(KeyDataFile))
	if dataFile == "" {
		return Config{}, fmt.Errorf("%w: %s is empty", common.ErrInvalidConfig, KeyDataFile)
	}

	return Config{
		DataFile:  dataFile,
		LogLevel:  level,
		LogFormat: format,
	}, nil
}
