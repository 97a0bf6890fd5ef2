package core

import (
	"fmt"

	"github.com/bitswalk/staffdb/src/common/paths"
	"github.com/bitswalk/staffdb/src/staffd/backup"
	"github.com/bitswalk/staffdb/src/staffd/db"
	"github.com/bitswalk/staffdb/src/staffd/storage"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Config is the resolved staffd configuration
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Storage  storage.Config `mapstructure:"storage"`
	Backup   BackupConfig   `mapstructure:"backup"`
}

// ServerConfig holds the HTTP listener settings
type ServerConfig struct {
	Bind string `mapstructure:"bind" validate:"required,ip|hostname"`
	Port int    `mapstructure:"port" validate:"min=1,max=65535"`
}

// DatabaseConfig holds the relational store settings
type DatabaseConfig struct {
	Driver      string `mapstructure:"driver" validate:"oneof=sqlite3 sqlite"`
	DSN         string `mapstructure:"dsn" validate:"required"`
	Path        string `mapstructure:"path" validate:"required_if=LoadOnStart true"`
	LoadOnStart bool   `mapstructure:"load_on_start"`
}

// BackupConfig holds the backup settings
type BackupConfig struct {
	Prefix string `mapstructure:"prefix" validate:"required"`
	Keep   int    `mapstructure:"keep" validate:"min=0"`
}

var validate = validator.New()

// setDefaults registers every default on v
func setDefaults(v *viper.Viper) {
	dbDefaults := db.DefaultConfig()
	storageDefaults := storage.DefaultConfig()

	v.SetDefault("server.bind", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("database.driver", dbDefaults.Driver)
	v.SetDefault("database.dsn", dbDefaults.DSN)
	v.SetDefault("database.path", dbDefaults.PersistPath)
	v.SetDefault("database.load_on_start", dbDefaults.LoadOnStart)
	v.SetDefault("storage.type", storageDefaults.Type)
	v.SetDefault("storage.local.path", storageDefaults.Local.BasePath)
	v.SetDefault("storage.s3.region", "us-east-1")
	v.SetDefault("storage.s3.bucket", "staffd-backups")
	v.SetDefault("storage.s3.use_path_style", true)
	v.SetDefault("backup.prefix", backup.DefaultPrefix)
	v.SetDefault("backup.keep", 7)
}

// LoadConfig unmarshals and validates the configuration held by v
func LoadConfig(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode configuration: %w", err)
	}

	if err := validate.Struct(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	if cfg.Storage.Type == storage.TypeS3 && cfg.Storage.S3.Bucket == "" {
		return nil, fmt.Errorf("invalid configuration: storage.s3.bucket is required for s3 storage")
	}

	cfg.Database.Path = paths.Expand(cfg.Database.Path)
	cfg.Storage.Local.BasePath = paths.Expand(cfg.Storage.Local.BasePath)

	return &cfg, nil
}

// DB returns the store configuration
func (c *Config) DB() db.Config {
	return db.Config{
		Driver:      c.Database.Driver,
		DSN:         c.Database.DSN,
		PersistPath: c.Database.Path,
		LoadOnStart: c.Database.LoadOnStart,
	}
}

// Address returns the listen address
func (c *Config) Address() string {
	return fmt.Sprintf("%s:%d", c.Server.Bind, c.Server.Port)
}
