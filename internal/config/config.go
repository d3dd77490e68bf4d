package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type WallConfig struct {
	PageSize          int           `mapstructure:"page_size"`
	ReconcileInterval time.Duration `mapstructure:"reconcile_interval"`
	LoadingDeadline   time.Duration `mapstructure:"loading_deadline"`
}

type PublishConfig struct {
	NetworkHint      string `mapstructure:"network_hint"`
	DegradeThreshold int    `mapstructure:"degrade_threshold"`
}

type LimitsConfig struct {
	AuthPerWindow    int           `mapstructure:"auth_per_window"`
	AuthWindow       time.Duration `mapstructure:"auth_window"`
	SessionPerWindow int           `mapstructure:"session_per_window"`
	SessionWindow    time.Duration `mapstructure:"session_window"`
	APIPerWindow     int           `mapstructure:"api_per_window"`
	APIWindow        time.Duration `mapstructure:"api_window"`
}

type Config struct {
	Mode          string `mapstructure:"mode"`
	Port          int    `mapstructure:"port"`
	Secret        string `mapstructure:"secret"`
	AdminPassword string `mapstructure:"admin_password"`

	// ProviderURL is the media provider's signaling endpoint; ServerURL is
	// where the wall and church clients reach this server's HTTP API.
	ProviderURL string `mapstructure:"provider_url"`
	ServerURL   string `mapstructure:"server_url"`

	SessionCode string `mapstructure:"session_code"`
	ChurchName  string `mapstructure:"church_name"`

	Wall    WallConfig    `mapstructure:"wall"`
	Publish PublishConfig `mapstructure:"publish"`
	Limits  LimitsConfig  `mapstructure:"limits"`
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")

	env := os.Getenv("CONFIG_ENV")
	if env == "" {
		env = "dev"
	}
	fileName := fmt.Sprintf("config/config.%s.yaml", env)

	v.SetConfigFile(fileName)
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	v.SetEnvPrefix("videowall")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("mode", "release")
	v.SetDefault("port", 8080)
	// Env-only keys need a default registered or AutomaticEnv will not
	// surface them through Unmarshal.
	v.SetDefault("secret", "")
	v.SetDefault("admin_password", "")
	v.SetDefault("session_code", "")
	v.SetDefault("church_name", "")
	v.SetDefault("provider_url", "ws://localhost:7880/signal")
	v.SetDefault("server_url", "http://localhost:8080")
	v.SetDefault("wall.page_size", 20)
	v.SetDefault("wall.reconcile_interval", "5s")
	v.SetDefault("wall.loading_deadline", "10s")
	v.SetDefault("publish.network_hint", "")
	v.SetDefault("publish.degrade_threshold", 50)
	v.SetDefault("limits.auth_per_window", 10)
	v.SetDefault("limits.auth_window", "5m")
	v.SetDefault("limits.session_per_window", 15)
	v.SetDefault("limits.session_window", "2m")
	v.SetDefault("limits.api_per_window", 150)
	v.SetDefault("limits.api_window", "1m")

	if err := v.ReadInConfig(); err != nil {
		fmt.Printf("⚠️ Config file not found (%s), using defaults\n", fileName)
	} else {
		fmt.Printf("✅ Loaded config: %s\n", fileName)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	fmt.Printf("🧩 Mode: %s | Port: %d | Provider: %s\n", cfg.Mode, cfg.Port, cfg.ProviderURL)
	return &cfg, nil
}
