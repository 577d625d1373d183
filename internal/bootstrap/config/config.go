package config

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"strings"

	"github.com/spf13/viper"

	"github.com/Krosebrook/Flash-n-Frame/internal/bootstrap/logging"
	"github.com/Krosebrook/Flash-n-Frame/internal/errs"
)

type Config struct {
	App       AppConfig       `mapstructure:"app"`
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Generator GeneratorConfig `mapstructure:"generator"`
	Source    SourceConfig    `mapstructure:"source"`
	Styles    StylesConfig    `mapstructure:"styles"`
	Cache     CacheConfig     `mapstructure:"cache"`
}

type AppConfig struct {
	Name string `mapstructure:"name"`
	Env  string `mapstructure:"env"`
}

type ServerConfig struct {
	Addr string `mapstructure:"addr"`
}

type DatabaseConfig struct {
	Driver string `mapstructure:"driver"`
	DSN    string `mapstructure:"dsn"`
}

type GeneratorConfig struct {
	APIKey     string `mapstructure:"api_key"`
	ImageModel string `mapstructure:"image_model"`
	TextModel  string `mapstructure:"text_model"`
}

type SourceConfig struct {
	GitHubToken string `mapstructure:"github_token"`
}

type StylesConfig struct {
	File string `mapstructure:"file"`
}

type CacheConfig struct {
	MaxEntries int `mapstructure:"max_entries"`
}

func Load(ctx context.Context, configFile string) (Config, error) {
	if ctx == nil {
		return Config{}, errors.New("context is required")
	}
	if err := ctx.Err(); err != nil {
		return Config{}, errs.Wrap(err, "check context")
	}

	logCtx := logging.WithAttrs(ctx, slog.String("component", "bootstrap.config"))

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("FNF")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./configs")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) || errors.Is(err, fs.ErrNotExist) {
			// Keep default and env-backed config when no file is provided.
			logging.Warn(logCtx, "config file not found, fallback to defaults and env")
		} else {
			return Config{}, errs.Wrap(err, "read config")
		}
	} else {
		logging.Info(logCtx, "using config file", slog.String("path", v.ConfigFileUsed()))
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, errs.Wrap(err, "unmarshal config")
	}

	if cfg.Database.DSN == "" {
		return Config{}, errors.New("database.dsn is required")
	}

	logging.Info(
		logCtx,
		"config loaded",
		slog.String("app", cfg.App.Name),
		slog.String("env", cfg.App.Env),
		slog.String("server_addr", cfg.Server.Addr),
		slog.String("database_driver", cfg.Database.Driver),
	)

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "flashnframe")
	v.SetDefault("app.env", "local")
	v.SetDefault("server.addr", "127.0.0.1:8787")
	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.dsn", ".flashnframe/state/studio.sqlite")
	v.SetDefault("generator.image_model", "gemini-2.5-flash-image-preview")
	v.SetDefault("generator.text_model", "gemini-2.5-flash")
	v.SetDefault("styles.file", "configs/styles.toml")
	v.SetDefault("cache.max_entries", 100)
}
