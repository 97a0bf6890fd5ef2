package core

import (
	"strings"
	"testing"

	"github.com/bitswalk/staffdb/src/staffd/db"
	"github.com/spf13/viper"
)

func newViper() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	return v
}

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig(newViper())
	if err != nil {
		t.Fatalf("defaults must validate: %v", err)
	}

	if cfg.Address() != "0.0.0.0:8080" {
		t.Errorf("unexpected address %q", cfg.Address())
	}
	if cfg.Database.Driver != db.DriverCGO {
		t.Errorf("expected default driver %q, got %q", db.DriverCGO, cfg.Database.Driver)
	}
	if strings.HasPrefix(cfg.Database.Path, "~") {
		t.Errorf("expected database path to be expanded, got %q", cfg.Database.Path)
	}
	if cfg.Backup.Prefix == "" || cfg.Backup.Keep != 7 {
		t.Errorf("unexpected backup config %+v", cfg.Backup)
	}

	dbCfg := cfg.DB()
	if dbCfg.DSN != ":memory:" || !dbCfg.LoadOnStart || dbCfg.PersistPath != cfg.Database.Path {
		t.Errorf("unexpected store config %+v", dbCfg)
	}
}

func TestLoadConfig_Invalid(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  interface{}
	}{
		{"unknown driver", "database.driver", "postgres"},
		{"port too high", "server.port", 70000},
		{"port zero", "server.port", 0},
		{"empty bind", "server.bind", ""},
		{"path required when loading", "database.path", ""},
		{"unknown storage", "storage.type", "ftp"},
		{"bad endpoint", "storage.s3.endpoint", "not a url"},
		{"negative keep", "backup.keep", -1},
		{"empty prefix", "backup.prefix", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := newViper()
			v.Set(tt.key, tt.val)
			if _, err := LoadConfig(v); err == nil {
				t.Fatalf("expected %s=%v to be rejected", tt.key, tt.val)
			}
		})
	}
}

func TestLoadConfig_PathOptionalWithoutLoad(t *testing.T) {
	v := newViper()
	v.Set("database.path", "")
	v.Set("database.load_on_start", false)

	if _, err := LoadConfig(v); err != nil {
		t.Fatalf("expected empty path to be allowed without load: %v", err)
	}
}

func TestLoadConfig_S3RequiresBucket(t *testing.T) {
	v := newViper()
	v.Set("storage.type", "s3")
	v.Set("storage.s3.bucket", "")

	if _, err := LoadConfig(v); err == nil {
		t.Fatal("expected s3 storage without bucket to be rejected")
	}

	v.Set("storage.s3.bucket", "backups")
	v.Set("storage.s3.endpoint", "http://localhost:9000")
	cfg, err := LoadConfig(v)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !cfg.Storage.S3.UsePathStyle {
		t.Error("expected path-style addressing by default")
	}
}
