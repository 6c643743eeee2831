package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const envPrefix = "THERM_HUB"

// Config holds all runtime settings.
type Config struct {
	Port     string        `mapstructure:"port"`
	CORSHost string        `mapstructure:"cors_host"`
	Log      LogConfig     `mapstructure:"log"`
	DB       DBConfig      `mapstructure:"db"`
	Worker   WorkerConfig  `mapstructure:"worker"`
	Weather  WeatherConfig `mapstructure:"weather"`
	Ecobee   EcobeeConfig  `mapstructure:"ecobee"`
	Token    TokenConfig   `mapstructure:"token"`
	HTTP     HTTPConfig    `mapstructure:"http"`
	Auth     AuthConfig    `mapstructure:"auth"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

type DBConfig struct {
	Driver          string        `mapstructure:"driver"`
	DSN             string        `mapstructure:"dsn"`
	ConnectAttempts int           `mapstructure:"connect_attempts"`
	ConnectDelay    time.Duration `mapstructure:"connect_delay"`
}

type WorkerConfig struct {
	Tick        time.Duration `mapstructure:"tick"`
	Throttle    time.Duration `mapstructure:"throttle"`
	StationName string        `mapstructure:"station_name"`

	// Offline swaps the remote providers for canned data.
	Offline bool `mapstructure:"offline"`
}

type WeatherConfig struct {
	HourlyURL     string        `mapstructure:"hourly_url"`
	DailyURL      string        `mapstructure:"daily_url"`
	RetryAttempts int           `mapstructure:"retry_attempts"`
	RetryDelay    time.Duration `mapstructure:"retry_delay"`
}

type EcobeeConfig struct {
	BaseURL  string `mapstructure:"base_url"`
	ClientID string `mapstructure:"client_id"`
	Scope    string `mapstructure:"scope"`
}

type TokenConfig struct {
	AlwaysRefresh bool `mapstructure:"always_refresh"`
}

type HTTPConfig struct {
	Timeout   time.Duration `mapstructure:"timeout"`
	UserAgent string        `mapstructure:"user_agent"`
}

type AuthConfig struct {
	SharedSecret     string        `mapstructure:"shared_secret"`
	SharedSecretHash string        `mapstructure:"shared_secret_hash"`
	SigningKey       string        `mapstructure:"signing_key"`
	TokenTTL         time.Duration `mapstructure:"token_ttl"`
}

// legacyEnv maps keys to the environment names older deployments use.
var legacyEnv = map[string]string{
	"port":               "LISTEN_PORT",
	"db.dsn":             "DATABASE_URL",
	"weather.hourly_url": "WEATHER_URL_HOURLY",
	"weather.daily_url":  "WEATHER_URL_DAILY",
	"cors_host":          "CORS_HOST",
	"ecobee.client_id":   "ECOBEE_CLIENT_ID",
	"auth.shared_secret": "SHARED_SECRET",
}

// Load reads .env (if any), configs/config.yml under dir (if any) and the environment.
// Environment values win over the file.
func Load(dir string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for key, env := range legacyEnv {
		// prefixed name first so it wins over the legacy one
		if err := v.BindEnv(key, envPrefix+"_"+strings.ToUpper(strings.ReplaceAll(key, ".", "_")), env); err != nil {
			return nil, fmt.Errorf("bind %s: %w", key, err)
		}
	}

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	if dir != "" {
		v.AddConfigPath(dir)
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config file: %w", err)
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
	v.SetDefault("port", "8080")
	v.SetDefault("cors_host", "")
	v.SetDefault("log.level", "info")

	v.SetDefault("db.driver", "sqlite")
	v.SetDefault("db.dsn", "therm_hub.db")
	v.SetDefault("db.connect_attempts", 4)
	v.SetDefault("db.connect_delay", "2s")

	v.SetDefault("worker.tick", "4s")
	v.SetDefault("worker.throttle", "300s")
	v.SetDefault("worker.station_name", "weather.gov")
	v.SetDefault("worker.offline", false)

	v.SetDefault("weather.hourly_url", "")
	v.SetDefault("weather.daily_url", "")
	v.SetDefault("weather.retry_attempts", 5)
	v.SetDefault("weather.retry_delay", "2s")

	v.SetDefault("ecobee.base_url", "https://api.ecobee.com")
	v.SetDefault("ecobee.client_id", "")
	v.SetDefault("ecobee.scope", "smartRead")

	v.SetDefault("token.always_refresh", false)

	v.SetDefault("http.timeout", "15s")
	v.SetDefault("http.user_agent", "")

	v.SetDefault("auth.shared_secret", "")
	v.SetDefault("auth.shared_secret_hash", "")
	v.SetDefault("auth.signing_key", "")
	v.SetDefault("auth.token_ttl", "1h")
}

// Validate reports the first missing required key.
func (c *Config) Validate() error {
	switch c.DB.Driver {
	case "sqlite", "postgres":
	default:
		return fmt.Errorf("db.driver must be sqlite or postgres, got %q", c.DB.Driver)
	}
	if c.DB.DSN == "" {
		return errors.New("db.dsn is required")
	}
	if c.Auth.SharedSecret == "" && c.Auth.SharedSecretHash == "" {
		return errors.New("auth.shared_secret or auth.shared_secret_hash is required")
	}
	if c.Worker.Offline {
		return nil
	}
	if c.Weather.HourlyURL == "" {
		return errors.New("weather.hourly_url is required")
	}
	if c.Weather.DailyURL == "" {
		return errors.New("weather.daily_url is required")
	}
	if c.Ecobee.ClientID == "" {
		return errors.New("ecobee.client_id is required")
	}
	return nil
}
