// Package config loads cardbrand settings from defaults, an optional YAML
// file, CARDBRAND_* environment variables and command-line flags, in that
// order of increasing precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config is the decoded configuration.
type Config struct {
	Language string `mapstructure:"language" validate:"required,oneof=en pt"`
	Output   string `mapstructure:"output" validate:"required,oneof=text json"`
	// Rules optionally points to a YAML or JSON rule table replacing the
	// built-in one.
	Rules  string `mapstructure:"rules" validate:"omitempty,filepath"`
	Log    Log    `mapstructure:"log"`
	Server Server `mapstructure:"server"`
}

// Log configures the process logger.
type Log struct {
	Level string `mapstructure:"level" validate:"required,oneof=debug info warn error"`
}

// Server configures the HTTP endpoint.
type Server struct {
	Addr string `mapstructure:"addr" validate:"required,hostname_port"`
}

// Defaults mirrors the built-in values; exported for flag help text.
var Defaults = map[string]any{
	"language":    "en",
	"output":      "text",
	"rules":       "",
	"log.level":   "warn",
	"server.addr": "127.0.0.1:8080",
}

const envPrefix = "cardbrand"

// getConfigDir returns the per-user configuration directory.
func getConfigDir() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("could not get user config directory: %w", err)
	}
	return filepath.Join(dir, "cardbrand"), nil
}

// Load builds a Config. explicitFile, when non-empty, must exist. flags may
// be nil; otherwise every flag whose name matches a key with dots written as
// dashes ("language", "log-level") overrides file and environment values
// when set.
func Load(explicitFile string, flags *pflag.FlagSet) (Config, error) {
	var c Config
	v := viper.New()

	for key, value := range Defaults {
		v.SetDefault(key, value)
	}

	v.SetConfigName("cardbrand")
	v.SetConfigType("yaml")
	if explicitFile != "" {
		v.SetConfigFile(explicitFile)
	} else {
		v.AddConfigPath(".")
		if dir, err := getConfigDir(); err == nil {
			v.AddConfigPath(dir)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		// A missing file is fine unless it was asked for explicitly.
		var notFound viper.ConfigFileNotFoundError
		if explicitFile != "" || !errors.As(err, &notFound) {
			return c, fmt.Errorf("config: read: %w", err)
		}
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if flags != nil {
		var bindErr error
		flags.VisitAll(func(f *pflag.Flag) {
			key := strings.ReplaceAll(f.Name, "-", ".")
			if _, ok := Defaults[key]; !ok || bindErr != nil {
				return
			}
			bindErr = v.BindPFlag(key, f)
		})
		if bindErr != nil {
			return c, fmt.Errorf("config: bind flags: %w", bindErr)
		}
	}

	if err := v.Unmarshal(&c); err != nil {
		return c, fmt.Errorf("config: decode: %w", err)
	}
	if err := Validate(c); err != nil {
		return c, err
	}
	return c, nil
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// FieldError describes one invalid setting.
type FieldError struct {
	Field string
	Rule  string
	Value any
}

func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %v does not satisfy %q", e.Field, e.Value, e.Rule)
}

// FieldErrors is returned by Validate.
type FieldErrors []FieldError

func (e FieldErrors) Error() string {
	parts := make([]string, 0, len(e))
	for _, fe := range e {
		parts = append(parts, fe.Error())
	}
	return "config: " + strings.Join(parts, "; ")
}

// Validate checks c against its struct tags.
func Validate(c Config) error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	out := make(FieldErrors, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, FieldError{Field: fe.Namespace(), Rule: fe.Tag(), Value: fe.Value()})
	}
	return out
}
