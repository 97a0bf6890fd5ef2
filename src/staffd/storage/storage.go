// Package storage provides object storage backends for staffd database backups.
package storage

import (
	"context"
	"io"
	"time"
)

// Backend types
const (
	TypeLocal = "local"
	TypeS3    = "s3"
)

// Backend defines the interface for backup storage
type Backend interface {
	// Upload stores the reader's content under key, replacing any existing object
	Upload(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error

	// Download opens an object for reading. Missing keys return ErrObjectNotFound.
	Download(ctx context.Context, key string) (io.ReadCloser, *ObjectInfo, error)

	// Delete removes an object; deleting a missing key is not an error
	Delete(ctx context.Context, key string) error

	// Exists checks if an object exists
	Exists(ctx context.Context, key string) (bool, error)

	// GetInfo retrieves metadata for an object
	GetInfo(ctx context.Context, key string) (*ObjectInfo, error)

	// List lists objects with the given prefix, ordered by key
	List(ctx context.Context, prefix string) ([]ObjectInfo, error)

	// Ping checks if the storage is accessible
	Ping(ctx context.Context) error

	// Type returns the storage backend type
	Type() string

	// Location returns a human-readable location description
	Location() string
}

// ObjectInfo holds metadata about a storage object
type ObjectInfo struct {
	Key          string    `json:"key" yaml:"key"`
	Size         int64     `json:"size" yaml:"size"`
	ContentType  string    `json:"content_type,omitempty" yaml:"content_type,omitempty"`
	ETag         string    `json:"etag,omitempty" yaml:"etag,omitempty"`
	LastModified time.Time `json:"last_modified" yaml:"last_modified"`
}

// Config holds the storage configuration
type Config struct {
	// Type is the storage backend type: "s3" or "local"
	Type string `mapstructure:"type" validate:"omitempty,oneof=local s3"`

	// Local storage configuration
	Local LocalConfig `mapstructure:"local"`

	// S3 storage configuration
	S3 S3Config `mapstructure:"s3"`
}

// DefaultConfig returns a default storage configuration (local filesystem)
func DefaultConfig() Config {
	return Config{
		Type: TypeLocal,
		Local: LocalConfig{
			BasePath: "~/.staffd/backups",
		},
	}
}

// New creates a new storage backend based on configuration
func New(cfg Config) (Backend, error) {
	switch cfg.Type {
	case TypeS3:
		return NewS3(cfg.S3)
	default:
		return NewLocal(cfg.Local)
	}
}
