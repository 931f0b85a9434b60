package config

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"proxymerge/internal/logger"
	"proxymerge/pkg/source"
)

type Config struct {
	Input   InputConfig  `mapstructure:"input" validate:"required"`
	Output  OutputConfig `mapstructure:"output" validate:"required"`
	Parser  ParserConfig `mapstructure:"parser"`
	Sources []string     `mapstructure:"sources" validate:"required,min=1,unique,dive,source_name"`
	Log     LogConfig    `mapstructure:"log" validate:"required"`
}

type InputConfig struct {
	Dir string `mapstructure:"dir" validate:"required,min=1"`
}

type OutputConfig struct {
	Result        string `mapstructure:"result" validate:"required,file_name"`
	LegacyHeaders bool   `mapstructure:"legacy_headers"`
}

type ParserConfig struct {
	Strict bool `mapstructure:"strict"`
}

type LogConfig struct {
	Level string `mapstructure:"level" validate:"required,oneof=debug info warn error"`
}

// ResultPath is the result file location inside the input directory
func (c *Config) ResultPath() string {
	return filepath.Join(c.Input.Dir, c.Output.Result)
}

// InputPath is the snapshot file location of the named source
func (c *Config) InputPath(name string) string {
	return filepath.Join(c.Input.Dir, name)
}

// setDefaults configures default values for viper
func setDefaults(v *viper.Viper) {
	v.SetDefault("input.dir", "./proxies")

	v.SetDefault("output.result", "result.txt")
	v.SetDefault("output.legacy_headers", false)

	v.SetDefault("parser.strict", true)

	v.SetDefault("sources", source.Names)

	v.SetDefault("log.level", "info")
}

// Flags returns the command line flags that override config keys
func Flags() *pflag.FlagSet {
	fs := pflag.NewFlagSet("proxymerge", pflag.ContinueOnError)
	fs.String("config", "", "Path to config file")
	fs.Bool("gen-config", false, "Generate default config file")
	fs.Bool("version", false, "Show version")
	fs.String("dir", "./proxies", "Directory root")
	fs.String("result", "result.txt", "Result txt")
	fs.Bool("lenient", false, "Skip malformed records instead of aborting")
	return fs
}

// LoadConfig loads configuration from defaults, config file, .env, environment
// and the given flags, in increasing precedence, and validates it
func LoadConfig(configPath string, flags *pflag.FlagSet) (*Config, error) {
	// .env entries become PROXYMERGE_* environment variables; variables
	// already set in the process win
	if err := godotenv.Load(); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to load .env file: %w", err)
		}
		logger.New("config").DebugBg("No .env file found")
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	v.SetEnvPrefix("PROXYMERGE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		logger.New("config").DebugBg("No config file found, using defaults and environment variables")
	}

	if flags != nil {
		if err := bindFlags(v, flags); err != nil {
			return nil, err
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := Validate(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// bindFlags lets flags the user actually set win over every other layer
func bindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	keys := map[string]string{
		"dir":    "input.dir",
		"result": "output.result",
	}
	for flag, key := range keys {
		if f := flags.Lookup(flag); f != nil && f.Changed {
			if err := v.BindPFlag(key, f); err != nil {
				return fmt.Errorf("failed to bind flag %s: %w", flag, err)
			}
		}
	}
	if f := flags.Lookup("lenient"); f != nil && f.Changed {
		lenient, err := flags.GetBool("lenient")
		if err != nil {
			return err
		}
		v.Set("parser.strict", !lenient)
	}
	return nil
}

// Validate checks struct tags and the custom source and file name rules
func Validate(config *Config) error {
	validate := validator.New()

	if err := registerCustomValidators(validate); err != nil {
		return fmt.Errorf("failed to register validators: %w", err)
	}

	if err := validate.Struct(config); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}
	return nil
}

// registerCustomValidators adds custom validation rules
func registerCustomValidators(validate *validator.Validate) error {
	if err := validate.RegisterValidation("source_name", func(fl validator.FieldLevel) bool {
		_, err := source.Lookup(fl.Field().String())
		return err == nil
	}); err != nil {
		return err
	}

	// The result file is relative to the input directory and must stay
	// inside it without replacing one of the snapshots
	return validate.RegisterValidation("file_name", func(fl validator.FieldLevel) bool {
		raw := fl.Field().String()
		if raw == "" || filepath.IsAbs(raw) {
			return false
		}
		name := filepath.Clean(raw)
		if name == "." || name == ".." || strings.HasPrefix(name, ".."+string(filepath.Separator)) {
			return false
		}
		for _, src := range source.Names {
			if name == src {
				return false
			}
		}
		return true
	})
}

// SaveConfigTemplate generates a sample configuration file
func SaveConfigTemplate(path string) error {
	v := viper.New()
	setDefaults(v)
	v.SetConfigType("yaml")

	if err := v.SafeWriteConfigAs(path); err != nil {
		return fmt.Errorf("failed to write config template: %w", err)
	}

	return nil
}

// PrintConfig displays the current configuration
func PrintConfig(config *Config, log *logger.Logger, id string) {
	log.Info(id, "Configuration loaded:")
	log.Info(id, "  Input dir: %s", config.Input.Dir)
	log.Info(id, "  Result: %s (legacy headers: %v)", config.ResultPath(), config.Output.LegacyHeaders)
	log.Info(id, "  Parser: strict=%v", config.Parser.Strict)
	log.Info(id, "  Sources: %v", config.Sources)
}
