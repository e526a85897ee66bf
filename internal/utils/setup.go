package utils

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/FlagBrew/pokemon-commons/internal/database/pokedex"
	"github.com/FlagBrew/pokemon-commons/internal/gui"
	"github.com/FlagBrew/pokemon-commons/internal/models"
	"github.com/apex/log"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes the environment variables overriding config.json, e.g.
// POKEDEX_DATABASE_CONNECTION_STRING.
const EnvPrefix = "POKEDEX"

// ErrConfigNotFound is returned by LoadConfig when the file does not exist.
var ErrConfigNotFound = errors.New("config file not found")

var validate = validator.New()

func Setup(ctx context.Context, mode, path string) *models.Config {
	logger := log.FromContext(ctx).WithField("config", path)
	cfg, err := LoadConfig(path)
	if err == nil {
		return cfg
	}

	if !errors.Is(err, ErrConfigNotFound) {
		logger.WithError(err).Fatal("Failed to load configuration")
	}

	if mode == "docker" {
		logger.Fatal("You're running in docker mode and did not volume mount the config.json, interactive set-up is not available for docker.")
	}

	// Start from a blank config with the default prefix.
	cfg = &models.Config{
		Schema: models.SchemaConfig{Prefix: pokedex.DefaultPrefix},
	}

	app := gui.New(cfg)
	if err := app.Start(); err != nil {
		logger.WithError(err).Fatal("Failed to start interactive wizard")
	}

	if err := ValidateConfig(cfg); err != nil {
		logger.WithError(err).Fatal("Wizard produced an invalid configuration")
	}

	// Save the config once done.
	if err := SetConfig(path, cfg); err != nil {
		logger.WithError(err).Error("Failed to save configuration")
	}

	return cfg
}

// LoadConfig reads the JSON config at path. Environment variables prefixed
// with EnvPrefix override values from the file.
func LoadConfig(path string) (*models.Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("json")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("database.db_type", "sqlite")
	v.SetDefault("database.connection_string", "")
	v.SetDefault("schema.prefix", pokedex.DefaultPrefix)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.Is(err, fs.ErrNotExist) || errors.As(err, &notFound) {
			return nil, ErrConfigNotFound
		}
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var cfg models.Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}

	if err := ValidateConfig(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// ValidateConfig checks the struct tags of cfg and that the prefix can be
// used in table names.
func ValidateConfig(cfg *models.Config) error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if err := (pokedex.Naming{Prefix: cfg.Schema.Prefix}).Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// SetConfig writes cfg to path as indented JSON.
func SetConfig(path string, cfg *models.Config) error {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("error opening %s: %w", path, err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(cfg); err != nil {
		return fmt.Errorf("error encoding %s: %w", path, err)
	}
	return nil
}
