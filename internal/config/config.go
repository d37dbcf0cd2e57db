package config

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/couchcryptid/grow-sensor-map/internal/domain"
)

// EnvPrefix namespaces every environment variable: GROWMAP_BOUNDS_LAT_MIN
// maps to bounds.lat_min.
const EnvPrefix = "GROWMAP"

// ConfigEnv names an explicit config file, overriding the growmap.yaml lookup.
const ConfigEnv = "GROWMAP_CONFIG"

// Presenters accepted by the presenter setting.
const (
	PresenterWindow = "window"
	PresenterFile   = "file"
)

// Config holds every run setting, merged from defaults, an optional YAML
// file, GROWMAP_* environment variables, and command-line flags.
type Config struct {
	DataPath    string `mapstructure:"data_path" validate:"required"`
	MapPath     string `mapstructure:"map_path" validate:"required"`
	OutputPath  string `mapstructure:"output_path" validate:"required_if=Presenter file"`
	Presenter   string `mapstructure:"presenter" validate:"oneof=window file"`
	Delimiter   string `mapstructure:"delimiter" validate:"len=1"`
	SwapColumns bool   `mapstructure:"swap_columns"`
	Progress    bool   `mapstructure:"progress"`

	Bounds BoundsConfig `mapstructure:"bounds"`

	FigureWidth  int `mapstructure:"figure_width" validate:"gte=100,lte=10000"`
	FigureHeight int `mapstructure:"figure_height" validate:"gte=100,lte=10000"`

	LogLevel        string `mapstructure:"log_level" validate:"oneof=debug info warn error"`
	LogFormat       string `mapstructure:"log_format" validate:"oneof=json text"`
	MetricsTextfile string `mapstructure:"metrics_textfile"`
}

// BoundsConfig is the plotting and filtering box in degrees.
type BoundsConfig struct {
	LongMin float64 `mapstructure:"long_min" validate:"gte=-180,lte=180,ltfield=LongMax"`
	LongMax float64 `mapstructure:"long_max" validate:"gte=-180,lte=180"`
	LatMin  float64 `mapstructure:"lat_min" validate:"gte=-90,lte=90,ltfield=LatMax"`
	LatMax  float64 `mapstructure:"lat_max" validate:"gte=-90,lte=90"`
}

// Domain converts the configured box into domain.Bounds.
func (b BoundsConfig) Domain() (domain.Bounds, error) {
	return domain.NewBounds(b.LongMin, b.LongMax, b.LatMin, b.LatMax)
}

// Comma returns the delimiter as a rune for encoding/csv.
func (c *Config) Comma() rune {
	r, _ := utf8.DecodeRuneInString(c.Delimiter)
	return r
}

// flagKeys maps command-line flag names onto config keys.
var flagKeys = map[string]string{
	"data":      "data_path",
	"map":       "map_path",
	"output":    "output_path",
	"presenter": "presenter",
	"progress":  "progress",
	"swap":      "swap_columns",
}

// Load reads configuration, applying defaults where unset. flags may be nil;
// only flags the user actually set override the other sources.
func Load(flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if err := readConfigFile(v); err != nil {
		return nil, err
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("bind flag %s: %w", name, err)
				}
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("data_path", "GrowLocations.csv")
	v.SetDefault("map_path", "map7.png")
	v.SetDefault("output_path", "sensor_map.png")
	v.SetDefault("presenter", PresenterWindow)
	v.SetDefault("delimiter", ",")
	v.SetDefault("swap_columns", true)
	v.SetDefault("progress", false)
	v.SetDefault("bounds.long_min", domain.DefaultLongMin)
	v.SetDefault("bounds.long_max", domain.DefaultLongMax)
	v.SetDefault("bounds.lat_min", domain.DefaultLatMin)
	v.SetDefault("bounds.lat_max", domain.DefaultLatMax)
	v.SetDefault("figure_width", 1100)
	v.SetDefault("figure_height", 1500)
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "text")
	v.SetDefault("metrics_textfile", "")
}

// readConfigFile loads GROWMAP_CONFIG when set, which must exist, and
// otherwise an optional growmap.yaml in the working directory.
func readConfigFile(v *viper.Viper) error {
	if path := os.Getenv(ConfigEnv); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("read config %s: %w", path, err)
		}
		return nil
	}

	v.SetConfigName("growmap")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("read config: %w", err)
	}
	return nil
}

// Validate checks the struct tags and the bounds box, collecting every
// problem into one error.
func (c *Config) Validate() error {
	validate := validator.New()
	validate.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("mapstructure"), ",")
		if name == "" {
			return f.Name
		}
		return name
	})

	english := en.New()
	uni := ut.New(english, english)
	trans, _ := uni.GetTranslator("en")
	_ = enTranslations.RegisterDefaultTranslations(validate, trans)

	var errs []string
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return fmt.Errorf("validate config: %w", err)
		}
		for _, e := range verrs {
			errs = append(errs, e.Translate(trans))
		}
	} else if _, err := c.Bounds.Domain(); err != nil {
		errs = append(errs, err.Error())
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}
