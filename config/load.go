package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	// EnvPrefix prefixes every environment override, e.g. ATS_SERVER_PORT.
	EnvPrefix = "ATS"
	// DefaultConfigName is looked up in the working directory when no path is given.
	DefaultConfigName = "ats-scanner"
)

// Load reads settings from path (YAML, TOML or JSON), environment variables and
// a .env file in the working directory, then applies defaults.
// An empty path looks for ats-scanner.{yaml,toml,json} in the working directory
// and silently continues without one.
func Load(path string) (Settings, error) {
	_ = godotenv.Load() // .env is optional

	v := viper.New()
	registerDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Settings{}, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	} else {
		v.AddConfigPath(".")
		v.SetConfigName(DefaultConfigName)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return Settings{}, fmt.Errorf("failed to read config: %w", err)
			}
		}
	}

	var settings Settings
	if err := v.Unmarshal(&settings); err != nil {
		return Settings{}, fmt.Errorf("failed to decode config: %w", err)
	}
	settings.ApplyDefaults()

	if problems := settings.Validate(); len(problems) > 0 {
		return Settings{}, fmt.Errorf("invalid config: %s", strings.Join(problems, "; "))
	}
	return settings, nil
}

// registerDefaults makes every key known to viper so that environment
// variables are picked up by Unmarshal.
func registerDefaults(v *viper.Viper) {
	d := Default()

	v.SetDefault("matcher.stopwords", d.Matcher.Stopwords)
	v.SetDefault("matcher.extra_stopwords", d.Matcher.ExtraStopwords)
	v.SetDefault("matcher.min_term_length", d.Matcher.MinTermLength)
	v.SetDefault("matcher.fold_diacritics", d.Matcher.FoldDiacritics)
	v.SetDefault("matcher.strong_match_threshold", d.Matcher.Strong())
	v.SetDefault("matcher.partial_match_threshold", d.Matcher.Partial())
	v.SetDefault("matcher.display_limit", d.Matcher.DisplayLimit)

	v.SetDefault("server.port", d.Server.Port)
	v.SetDefault("server.max_body_bytes", d.Server.MaxBodyBytes)
	v.SetDefault("server.mode", d.Server.Mode)

	v.SetDefault("storage.region", d.Storage.Region)
	v.SetDefault("storage.endpoint", d.Storage.Endpoint)
	v.SetDefault("storage.access_key_id", d.Storage.AccessKeyID)
	v.SetDefault("storage.secret_access_key", d.Storage.SecretAccessKey)
	v.SetDefault("storage.use_path_style", d.Storage.UsePathStyle)

	v.SetDefault("log.json", d.Log.JSON)
	v.SetDefault("log.debug", d.Log.Debug)
}
