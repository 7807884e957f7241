package config

import (
	"errors"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"go.uber.org/fx"
)

var Module = fx.Module("config",
	fx.Provide(Load),
)

// Config holds application configuration. It is loaded once at startup and
// never mutated afterwards.
type Config struct {
	AppName     string
	AppVersion  string
	Environment string
	HTTPAddr    string
	SecretKey   string

	InstancePath string
	CacheDir     string

	LogLevel  string
	LogFormat string

	DBType            string
	DBDSN             string
	DBHost            string
	DBPort            string
	DBName            string
	DBUser            string
	DBPassword        string
	DBSSLMode         string
	DBMaxIdleConn     int
	DBMaxOpenConn     int
	DBConnMaxLifetime int
	DBConnMaxIdleTime int

	Tracing   TracingConfig
	RateLimit RateLimitConfig
}

type TracingConfig struct {
	Enabled       bool
	Endpoint      string
	Protocol      string
	SamplingRatio float64
}

// RateLimitConfig throttles admin-key attempts per client address.
type RateLimitConfig struct {
	Enabled       bool
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	AdminKeyRate  float64
	AdminKeyBurst int
}

// Load reads .env, an optional ecomsync.yml and ECOMSYNC_* environment
// variables, in increasing order of precedence.
func Load() (Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("ecomsync")
	v.SetConfigType("yml")
	v.AddConfigPath("/etc/ecomsync")
	v.AddConfigPath(".")

	v.SetEnvPrefix("ECOMSYNC")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, err
		}
	}

	return FromViper(v)
}

// FromViper builds a Config from an already populated viper instance.
func FromViper(v *viper.Viper) (Config, error) {
	instancePath := strings.TrimSpace(v.GetString("instance_path"))
	if instancePath == "" {
		instancePath = "instance"
	}

	cacheDir := strings.TrimSpace(v.GetString("cache_dir"))
	if cacheDir == "" {
		cacheDir = filepath.Join(instancePath, "cache")
	}

	cfg := Config{
		AppName:      strings.TrimSpace(v.GetString("app.name")),
		AppVersion:   strings.TrimSpace(v.GetString("app.version")),
		Environment:  strings.ToLower(strings.TrimSpace(v.GetString("environment"))),
		HTTPAddr:     strings.TrimSpace(v.GetString("http.addr")),
		SecretKey:    strings.TrimSpace(v.GetString("secret_key")),
		InstancePath: instancePath,
		CacheDir:     cacheDir,

		LogLevel:  strings.ToLower(strings.TrimSpace(v.GetString("log.level"))),
		LogFormat: strings.ToLower(strings.TrimSpace(v.GetString("log.format"))),

		DBType:            strings.ToLower(strings.TrimSpace(v.GetString("database.type"))),
		DBDSN:             strings.TrimSpace(v.GetString("database.dsn")),
		DBHost:            v.GetString("database.host"),
		DBPort:            v.GetString("database.port"),
		DBName:            v.GetString("database.name"),
		DBUser:            v.GetString("database.user"),
		DBPassword:        v.GetString("database.password"),
		DBSSLMode:         v.GetString("database.sslmode"),
		DBMaxIdleConn:     v.GetInt("database.max_idle_conn"),
		DBMaxOpenConn:     v.GetInt("database.max_open_conn"),
		DBConnMaxLifetime: v.GetInt("database.conn_max_lifetime"),
		DBConnMaxIdleTime: v.GetInt("database.conn_max_idle_time"),

		Tracing: TracingConfig{
			Enabled:       v.GetBool("tracing.enabled"),
			Endpoint:      strings.TrimSpace(v.GetString("tracing.endpoint")),
			Protocol:      strings.ToLower(strings.TrimSpace(v.GetString("tracing.protocol"))),
			SamplingRatio: v.GetFloat64("tracing.sampling_ratio"),
		},
		RateLimit: RateLimitConfig{
			Enabled:       v.GetBool("rate_limit.enabled"),
			RedisAddr:     strings.TrimSpace(v.GetString("rate_limit.redis_addr")),
			RedisPassword: strings.TrimSpace(v.GetString("rate_limit.redis_password")),
			RedisDB:       v.GetInt("rate_limit.redis_db"),
			AdminKeyRate:  v.GetFloat64("rate_limit.admin_key_rate"),
			AdminKeyBurst: v.GetInt("rate_limit.admin_key_burst"),
		},
	}

	if err := validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "ecomsync")
	v.SetDefault("app.version", "0.1.0")
	v.SetDefault("environment", "development")
	v.SetDefault("http.addr", ":5000")
	v.SetDefault("secret_key", "dev")
	v.SetDefault("instance_path", "instance")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	v.SetDefault("database.type", "sqlite")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", "5432")
	v.SetDefault("database.name", "ecomsync")
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_idle_conn", 5)
	v.SetDefault("database.max_open_conn", 10)
	v.SetDefault("database.conn_max_lifetime", 300)
	v.SetDefault("database.conn_max_idle_time", 60)

	v.SetDefault("tracing.enabled", false)
	v.SetDefault("tracing.endpoint", "localhost:4317")
	v.SetDefault("tracing.protocol", "grpc")
	v.SetDefault("tracing.sampling_ratio", 0.1)

	v.SetDefault("rate_limit.enabled", false)
	v.SetDefault("rate_limit.redis_addr", "localhost:6379")
	v.SetDefault("rate_limit.admin_key_rate", 0.2)
	v.SetDefault("rate_limit.admin_key_burst", 10)
}

// Defaults returns a Config populated only from built-in defaults.
func Defaults() Config {
	v := viper.New()
	setDefaults(v)
	cfg, _ := FromViper(v)
	return cfg
}

func (c Config) IsProduction() bool {
	return c.Environment == "production"
}

// SQLitePath is the database file used when no DSN is configured.
func (c Config) SQLitePath() string {
	return filepath.Join(c.InstancePath, "development.db")
}

func validate(cfg Config) error {
	switch cfg.DBType {
	case "sqlite", "postgres", "mysql":
	default:
		return errors.New("database.type must be one of sqlite, postgres, mysql")
	}
	if cfg.IsProduction() && (cfg.SecretKey == "" || cfg.SecretKey == "dev") {
		return errors.New("secret_key must be set in production")
	}
	if cfg.RateLimit.Enabled {
		if cfg.RateLimit.RedisAddr == "" {
			return errors.New("rate_limit.redis_addr is required when rate limiting is enabled")
		}
		if cfg.RateLimit.AdminKeyRate <= 0 || cfg.RateLimit.AdminKeyBurst <= 0 {
			return errors.New("rate_limit admin key rate and burst must be positive")
		}
	}
	return nil
}
