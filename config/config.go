package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

type metrics struct {
	Enabled bool   `mapstructure:"enabled"`
	Token   string `mapstructure:"token"`
}

type rateLimit struct {
	Limit         int `mapstructure:"limit"`
	WindowSeconds int `mapstructure:"window_seconds"`
}

type Config struct {
	LogLevel       string    `mapstructure:"log_level"`
	HTTPServerAddr string    `mapstructure:"http_server_addr"`
	ProductsFile   string    `mapstructure:"products_file"`
	ImagesBaseURL  string    `mapstructure:"images_base_url"`
	AdminToken     string    `mapstructure:"admin_token"`
	Metrics        metrics   `mapstructure:"metrics"`
	RateLimit      rateLimit `mapstructure:"rate_limit"`
}

// Load resolves configuration from defaults, an optional YAML file
// (--config flag or CATALOG_CONFIG_FILE) and CATALOG_* environment
// variables, in increasing priority.
func Load() (Config, error) {
	v := viper.New()

	v.SetDefault("log_level", "info")
	v.SetDefault("http_server_addr", ":8080")
	v.SetDefault("products_file", "data/products.json")
	v.SetDefault("images_base_url", "http://localhost:3001/images/products")
	v.SetDefault("admin_token", "")
	v.SetDefault("metrics.enabled", false)
	v.SetDefault("metrics.token", "")
	v.SetDefault("rate_limit.limit", 0)
	v.SetDefault("rate_limit.window_seconds", 60)

	v.SetEnvPrefix("CATALOG")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path := configFilepath(); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return cfg, nil
}

func configFilepath() string {
	cmdLine := pflag.NewFlagSet(os.Args[0], pflag.ExitOnError)
	arg := cmdLine.String("config", "", "config file")
	_ = cmdLine.Parse(os.Args[1:])

	if env, ok := os.LookupEnv("CATALOG_CONFIG_FILE"); ok {
		return env
	}
	return *arg
}
