package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Supported database drivers
const (
	DriverPostgres = "postgres"
	DriverMySQL    = "mysql"
	DriverSQLite   = "sqlite"
)

// Config holds all configuration for the service
type Config struct {
	Server     ServerConfig
	Database   DatabaseConfig
	Redis      RedisConfig
	Monitoring MonitoringConfig
	FileStore  FileStoreConfig
	Auth       AuthConfig
	CORS       CORSConfig
}

type ServerConfig struct {
	Port            int           `mapstructure:"port"`
	Host            string        `mapstructure:"host"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	RequestTimeout  time.Duration `mapstructure:"request_timeout"`
	// TrustProxy takes the client address from X-Forwarded-For / X-Real-IP
	TrustProxy      bool          `mapstructure:"trust_proxy"`
}

type DatabaseConfig struct {
	Driver      string         `mapstructure:"driver"`
	AutoMigrate bool           `mapstructure:"auto_migrate"`
	Postgres    PostgresConfig `mapstructure:"postgres"`
	MySQL       MySQLConfig    `mapstructure:"mysql"`
	SQLite      SQLiteConfig   `mapstructure:"sqlite"`
}

type PostgresConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
	SSLMode  string `mapstructure:"sslmode"`
}

type MySQLConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
}

type SQLiteConfig struct {
	Path string `mapstructure:"path"`
}

type RedisConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Host     string        `mapstructure:"host"`
	Port     int           `mapstructure:"port"`
	Password string        `mapstructure:"password"`
	DB       int           `mapstructure:"db"`
	StatsTTL time.Duration `mapstructure:"stats_ttl"`
}

type MonitoringConfig struct {
	LogLevel string `mapstructure:"log_level"`
}

type FileStoreConfig struct {
	PublicDir         string   `mapstructure:"public_dir"`
	MaxFileSize       int64    `mapstructure:"max_file_size"`
	AllowedExtensions []string `mapstructure:"allowed_extensions"`
	AllowedMimeTypes  []string `mapstructure:"allowed_mime_types"`
}

type AuthConfig struct {
	BcryptCost         int `mapstructure:"bcrypt_cost"`
	LoginRatePerMinute int `mapstructure:"login_rate_per_minute"`
	LoginBurst         int `mapstructure:"login_burst"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// Load initializes configuration from environment variables and config file.
// configFile may be empty, in which case ./config/config.yaml is used if present.
func Load(configFile string) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("SMARTROOMS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "__"))
	v.AutomaticEnv()

	setDefaults(v)

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./config")
	}
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("config validation error: %w", err)
	}

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.port", 5000)
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "60s")
	v.SetDefault("server.shutdown_timeout", "30s")
	v.SetDefault("server.request_timeout", "30s")
	v.SetDefault("server.trust_proxy", false)

	// Database defaults
	v.SetDefault("database.driver", DriverSQLite)
	v.SetDefault("database.auto_migrate", true)
	v.SetDefault("database.sqlite.path", "./data/smartrooms.db")
	v.SetDefault("database.postgres.host", "localhost")
	v.SetDefault("database.postgres.port", 5432)
	v.SetDefault("database.postgres.dbname", "smart_rooms")
	v.SetDefault("database.postgres.sslmode", "disable")
	v.SetDefault("database.mysql.host", "localhost")
	v.SetDefault("database.mysql.port", 3306)
	v.SetDefault("database.mysql.dbname", "smart_rooms")

	// Redis defaults
	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.stats_ttl", "30s")

	// Monitoring defaults
	v.SetDefault("monitoring.log_level", "info")

	// FileStore defaults
	v.SetDefault("filestore.public_dir", "./public")
	v.SetDefault("filestore.max_file_size", 5*1024*1024) // 5MB
	v.SetDefault("filestore.allowed_extensions", []string{".jpg", ".jpeg", ".png", ".gif", ".webp"})
	v.SetDefault("filestore.allowed_mime_types", []string{"image/jpeg", "image/png", "image/gif", "image/webp"})

	// Auth defaults
	v.SetDefault("auth.bcrypt_cost", 12)
	v.SetDefault("auth.login_rate_per_minute", 10)
	v.SetDefault("auth.login_burst", 5)

	v.SetDefault("cors.allowed_origins", []string{"*"})
}

func validateConfig(config *Config) error {
	switch config.Database.Driver {
	case DriverPostgres:
		if config.Database.Postgres.Host == "" {
			return fmt.Errorf("postgres host is required")
		}
	case DriverMySQL:
		if config.Database.MySQL.Host == "" {
			return fmt.Errorf("mysql host is required")
		}
	case DriverSQLite:
		if config.Database.SQLite.Path == "" {
			return fmt.Errorf("sqlite path is required")
		}
	default:
		return fmt.Errorf("unsupported database driver %q", config.Database.Driver)
	}
	if config.FileStore.PublicDir == "" {
		return fmt.Errorf("filestore public_dir is required")
	}
	if config.FileStore.MaxFileSize <= 0 {
		return fmt.Errorf("filestore max_file_size must be positive")
	}
	if config.Server.RequestTimeout <= 0 {
		return fmt.Errorf("server request_timeout must be positive")
	}
	if config.Auth.BcryptCost < 4 || config.Auth.BcryptCost > 31 {
		return fmt.Errorf("auth bcrypt_cost must be between 4 and 31")
	}
	return nil
}
