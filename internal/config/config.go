package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Database DatabaseConfig `mapstructure:"database"`
	Log      LogConfig      `mapstructure:"log"`
	Deck     DeckConfig     `mapstructure:"deck"`
	Input    InputConfig    `mapstructure:"input"`
	UI       UIConfig       `mapstructure:"ui"`
}

// DatabaseConfig holds sqlite settings.
type DatabaseConfig struct {
	Path string `mapstructure:"path" validate:"required"`
}

// LogConfig holds logging settings. Logs go to a file; the terminal belongs
// to the TUI.
type LogConfig struct {
	Level string `mapstructure:"level" validate:"required,oneof=debug info warn error"`
	Dir   string `mapstructure:"dir" validate:"required"`
}

// DeckConfig selects the deck opened when none is named on the command line.
type DeckConfig struct {
	Default string `mapstructure:"default" validate:"required"`
}

// InputConfig maps terminal input onto drag offsets.
type InputConfig struct {
	DragStep     float64 `mapstructure:"drag_step" validate:"gt=0"`
	UnitsPerCell float64 `mapstructure:"units_per_cell" validate:"gt=0"`
}

// UIConfig holds presentation settings.
type UIConfig struct {
	FrameRate  int `mapstructure:"frame_rate" validate:"gte=10,lte=120"`
	CardWidth  int `mapstructure:"card_width" validate:"gte=20,lte=120"`
	CardHeight int `mapstructure:"card_height" validate:"gte=6,lte=60"`
}

func home() string {
	if h, err := os.UserHomeDir(); err == nil {
		return h
	}
	return os.Getenv("HOME")
}

func defaultPath() string {
	return filepath.Join(home(), ".config", "swipedeck", "config.toml")
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("database.path", filepath.Join(home(), ".local", "share", "swipedeck", "swipedeck.db"))
	v.SetDefault("log.level", "info")
	v.SetDefault("log.dir", filepath.Join(home(), ".local", "state", "swipedeck"))
	v.SetDefault("deck.default", "destinations")
	v.SetDefault("input.drag_step", 30.0)
	v.SetDefault("input.units_per_cell", 8.0)
	v.SetDefault("ui.frame_rate", 60)
	v.SetDefault("ui.card_width", 36)
	v.SetDefault("ui.card_height", 14)
}

// Load reads configuration from file and env. Env var overrides use prefix
// SWIPEDECK_. An explicit path wins over SWIPEDECK_CONFIG, which wins over
// the default location.
func Load(path string) (Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigType("toml")

	if path == "" {
		path = os.Getenv("SWIPEDECK_CONFIG")
	}
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(filepath.Dir(defaultPath()))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("SWIPEDECK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := Validate(c); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate checks field constraints.
func Validate(c Config) error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// Save writes the provided config to disk, creating the config directory if
// needed.
func Save(path string, cfg Config) error {
	if path == "" {
		path = os.Getenv("SWIPEDECK_CONFIG")
	}
	if path == "" {
		path = defaultPath()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}

	v := viper.New()
	v.SetConfigType("toml")
	v.Set("database.path", cfg.Database.Path)
	v.Set("log.level", cfg.Log.Level)
	v.Set("log.dir", cfg.Log.Dir)
	v.Set("deck.default", cfg.Deck.Default)
	v.Set("input.drag_step", cfg.Input.DragStep)
	v.Set("input.units_per_cell", cfg.Input.UnitsPerCell)
	v.Set("ui.frame_rate", cfg.UI.FrameRate)
	v.Set("ui.card_width", cfg.UI.CardWidth)
	v.Set("ui.card_height", cfg.UI.CardHeight)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
