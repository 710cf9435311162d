package config

import (
	"fmt"
	"os"

	"fml2scene/internal/converter/mapper"

	"github.com/spf13/viper"
)

// ============================================================
// Configuration
// ============================================================

type Config struct {
	Port         string `mapstructure:"port"`
	Environment  string `mapstructure:"env"`
	ReadTimeout  int    `mapstructure:"read_timeout"`
	WriteTimeout int    `mapstructure:"write_timeout"`
	LogLevel     string `mapstructure:"log_level"`

	DBPath    string `mapstructure:"db_path"`
	OutputDir string `mapstructure:"output_dir"`

	// Converter
	SnapValue         float64 `mapstructure:"snap_value"`
	LabelComments     bool    `mapstructure:"label_comments"`
	LabelDefaultFont  string  `mapstructure:"label_default_font"`
	LabelDefaultSize  float64 `mapstructure:"label_default_size"`
	LabelDefaultColor string  `mapstructure:"label_default_color"`
}

// Load загружает конфигурацию из переменных окружения и, если задан
// CONFIG_FILE, из файла.
func Load() (*Config, error) {
	return LoadFile(os.Getenv("CONFIG_FILE"))
}

// LoadFile reads defaults, then the file at path (JSON or YAML, optional),
// then the environment. Later sources win.
func LoadFile(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if cfg.SnapValue < 0 {
		return nil, fmt.Errorf("snap_value must not be negative, got %v", cfg.SnapValue)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	label := mapper.DefaultLabelDefaults()

	v.SetDefault("port", "3000")
	v.SetDefault("env", "development")
	v.SetDefault("read_timeout", 10)
	v.SetDefault("write_timeout", 10)
	v.SetDefault("log_level", "info")

	v.SetDefault("db_path", "data/conversions.db")
	v.SetDefault("output_dir", "data/output")

	v.SetDefault("snap_value", 0.0)
	v.SetDefault("label_comments", false)
	v.SetDefault("label_default_font", label.FontFamily)
	v.SetDefault("label_default_size", label.FontSize)
	v.SetDefault("label_default_color", label.FontColor)
}

// ConverterOptions builds the options passed explicitly to every conversion.
func (c *Config) ConverterOptions() mapper.Options {
	opts := mapper.DefaultOptions()
	opts.SnapValue = c.SnapValue
	opts.EmitLabelComments = c.LabelComments
	opts.LabelDefaults.FontFamily = c.LabelDefaultFont
	opts.LabelDefaults.FontSize = c.LabelDefaultSize
	opts.LabelDefaults.FontColor = c.LabelDefaultColor
	return opts
}
