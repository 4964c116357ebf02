package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

const (
	BusRedis  = "redis"
	BusMemory = "memory"

	ModeDev     = "dev"
	ModeRelease = "release"
)

// Config is everything cmd/server needs to wire the app
type Config struct {
	Mode     string `mapstructure:"mode"`
	Port     int    `mapstructure:"port"`
	LogLevel string `mapstructure:"log_level"`

	RedisAddr     string `mapstructure:"redis_addr"`
	RedisPassword string `mapstructure:"redis_password"`
	RedisDB       int    `mapstructure:"redis_db"`

	// Bus is redis for multi-replica fan out, memory for a single process
	Bus string `mapstructure:"bus"`

	TokenSecret string        `mapstructure:"token_secret"`
	TokenTTL    time.Duration `mapstructure:"token_ttl"`
	EndGrace    time.Duration `mapstructure:"end_grace"`

	ReactionRateLimit  int           `mapstructure:"reaction_rate_limit"`
	ReactionRateWindow time.Duration `mapstructure:"reaction_rate_window"`

	PublicOrigin   string        `mapstructure:"public_origin"`
	AllowedOrigins []string      `mapstructure:"allowed_origins"`
	SendBuffer     int           `mapstructure:"send_buffer"`
	PingInterval   time.Duration `mapstructure:"ping_interval"`

	// The Discord surface starts only when DiscordToken is set
	DiscordToken         string `mapstructure:"discord_token"`
	DiscordApplicationID string `mapstructure:"discord_application_id"`
	DiscordGuildID       string `mapstructure:"discord_guild_id"`
}

// Load reads .env, then config/config.{CONFIG_ENV}.yaml, then the environment.
// Later sources win.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Warn().Err(err).Str("module", "config").Msg("failed to read .env")
	}

	env := os.Getenv("CONFIG_ENV")
	if env == "" {
		env = ModeDev
	}

	return load(fmt.Sprintf("config/config.%s.yaml", env))
}

func load(fileName string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetConfigFile(fileName)

	setDefaults(v)
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		log.Warn().Str("module", "config").Str("file", fileName).Msg("config file not found, using defaults")
	} else {
		log.Info().Str("module", "config").Str("file", fileName).Msg("loaded config")
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Every key needs a default so AutomaticEnv can override it in Unmarshal
func setDefaults(v *viper.Viper) {
	v.SetDefault("mode", ModeRelease)
	v.SetDefault("port", 8080)
	v.SetDefault("log_level", "info")
	v.SetDefault("redis_addr", "localhost:6379")
	v.SetDefault("redis_password", "")
	v.SetDefault("redis_db", 0)
	v.SetDefault("bus", BusRedis)
	v.SetDefault("token_secret", "")
	v.SetDefault("token_ttl", "12h")
	v.SetDefault("end_grace", "60s")
	v.SetDefault("reaction_rate_limit", 10)
	v.SetDefault("reaction_rate_window", "5s")
	v.SetDefault("public_origin", "http://localhost:8080")
	v.SetDefault("allowed_origins", []string{"*"})
	v.SetDefault("send_buffer", 64)
	v.SetDefault("ping_interval", "30s")
	v.SetDefault("discord_token", "")
	v.SetDefault("discord_application_id", "")
	v.SetDefault("discord_guild_id", "")
}

// Validate rejects settings the server cannot start with
func (c *Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Port)
	}
	if c.Bus != BusRedis && c.Bus != BusMemory {
		return fmt.Errorf("bus must be %q or %q, got %q", BusRedis, BusMemory, c.Bus)
	}
	if c.TokenSecret == "" {
		if c.Mode != ModeDev {
			return errors.New("token_secret is required outside dev mode")
		}
		c.TokenSecret = "dev-only-secret"
	}
	if c.ReactionRateLimit < 1 {
		return fmt.Errorf("reaction_rate_limit must be positive, got %d", c.ReactionRateLimit)
	}
	return nil
}
