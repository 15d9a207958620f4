package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Port             string        `mapstructure:"PORT"`
	Host             string        `mapstructure:"HOST"`
	Env              string        `mapstructure:"ENV"`
	DBHost           string        `mapstructure:"DB_HOST"`
	DBPort           string        `mapstructure:"DB_PORT"`
	DBUser           string        `mapstructure:"DB_USER"`
	DBPassword       string        `mapstructure:"DB_PASSWORD"`
	DBName           string        `mapstructure:"DB_NAME"`
	DBMaxConns       int32         `mapstructure:"DB_MAX_CONNS"`
	DBMinConns       int32         `mapstructure:"DB_MIN_CONNS"`
	DBRetryDelay     time.Duration `mapstructure:"DB_RETRY_DELAY"`
	DBLivenessPeriod time.Duration `mapstructure:"DB_LIVENESS_PERIOD"`
	RequestTimeout   time.Duration `mapstructure:"REQUEST_TIMEOUT"`
	RateLimitRPS     float64       `mapstructure:"RATE_LIMIT_RPS"`
	RateLimitBurst   int           `mapstructure:"RATE_LIMIT_BURST"`
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("PORT", "5000")
	v.SetDefault("HOST", "0.0.0.0")
	v.SetDefault("ENV", "development")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_NAME", "medtrack")
	v.SetDefault("DB_MAX_CONNS", 10)
	v.SetDefault("DB_MIN_CONNS", 2)
	v.SetDefault("DB_RETRY_DELAY", 5*time.Second)
	v.SetDefault("DB_LIVENESS_PERIOD", 30*time.Second)
	v.SetDefault("REQUEST_TIMEOUT", 30*time.Second)
	v.SetDefault("RATE_LIMIT_RPS", 100)
	v.SetDefault("RATE_LIMIT_BURST", 200)

	// Bind env vars explicitly so Unmarshal picks them up
	for _, key := range []string{
		"PORT", "HOST", "ENV",
		"DB_HOST", "DB_PORT", "DB_USER", "DB_PASSWORD", "DB_NAME",
		"DB_MAX_CONNS", "DB_MIN_CONNS", "DB_RETRY_DELAY", "DB_LIVENESS_PERIOD",
		"REQUEST_TIMEOUT", "RATE_LIMIT_RPS", "RATE_LIMIT_BURST",
	} {
		v.BindEnv(key)
	}

	// Try reading .env file, but don't fail if missing
	_ = v.ReadInConfig()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// DatabaseURL assembles a postgres connection string from the discrete
// DB_* settings.
func (c *Config) DatabaseURL() string {
	url := "postgres://" + c.DBUser
	if c.DBPassword != "" {
		url += ":" + c.DBPassword
	}
	return fmt.Sprintf("%s@%s:%s/%s", url, c.DBHost, c.DBPort, c.DBName)
}

// Validate checks that the configuration is safe to run.
func (c *Config) Validate() error {
	if c.DBName == "" {
		return fmt.Errorf("DB_NAME is required")
	}
	if c.DBUser == "" {
		return fmt.Errorf("DB_USER is required")
	}
	if c.Env != "development" && c.Env != "production" {
		return fmt.Errorf("ENV must be \"development\" or \"production\", got %q", c.Env)
	}
	if c.DBRetryDelay <= 0 {
		return fmt.Errorf("DB_RETRY_DELAY must be positive, got %s", c.DBRetryDelay)
	}
	if c.DBLivenessPeriod <= 0 {
		return fmt.Errorf("DB_LIVENESS_PERIOD must be positive, got %s", c.DBLivenessPeriod)
	}
	return nil
}
