package storage

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"io"
	"mime"
	"os"
	"path/filepath"
	"sort"
	"strings"

	apperrors "github.com/bitswalk/staffdb/src/common/errors"
	"github.com/bitswalk/staffdb/src/common/paths"
)

// LocalConfig holds the local filesystem storage configuration
type LocalConfig struct {
	// BasePath is the root directory for storing backups
	BasePath string `mapstructure:"path"`
}

// LocalBackend implements storage on the local filesystem
type LocalBackend struct {
	basePath string
}

// NewLocal creates a new local filesystem storage backend
func NewLocal(cfg LocalConfig) (*LocalBackend, error) {
	basePath := paths.Expand(cfg.BasePath)
	if basePath == "" {
		return nil, fmt.Errorf("local storage requires a base path")
	}

	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory %s: %w", basePath, err)
	}

	return &LocalBackend{
		basePath: basePath,
	}, nil
}

// fullPath maps a key below basePath; keys cannot escape it
func (b *LocalBackend) fullPath(key string) string {
	cleanKey := filepath.Clean("/" + key)
	return filepath.Join(b.basePath, cleanKey)
}

// Upload writes data to a temp file and renames it into place
func (b *LocalBackend) Upload(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error {
	fullPath := b.fullPath(key)

	if err := paths.EnsureDir(fullPath); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", key, err)
	}

	tempPath := fullPath + ".part"
	file, err := os.Create(tempPath)
	if err != nil {
		return fmt.Errorf("failed to create file %s: %w", tempPath, err)
	}

	written, err := io.Copy(file, reader)
	closeErr := file.Close()
	if err == nil {
		err = closeErr
	}
	if err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("failed to write file %s: %w", fullPath, err)
	}

	if size > 0 && written != size {
		os.Remove(tempPath)
		return fmt.Errorf("size mismatch: expected %d bytes, wrote %d bytes", size, written)
	}

	if err := os.Rename(tempPath, fullPath); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("failed to move %s into place: %w", key, err)
	}

	return nil
}

// Download opens a file from the local filesystem
func (b *LocalBackend) Download(ctx context.Context, key string) (io.ReadCloser, *ObjectInfo, error) {
	info, err := b.GetInfo(ctx, key)
	if err != nil {
		return nil, nil, err
	}

	file, err := os.Open(b.fullPath(key))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open %s: %w", key, err)
	}

	return file, info, nil
}

// Delete deletes a file and any directories it leaves empty
func (b *LocalBackend) Delete(ctx context.Context, key string) error {
	fullPath := b.fullPath(key)

	if err := os.Remove(fullPath); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to delete file %s: %w", fullPath, err)
	}

	b.cleanEmptyDirs(filepath.Dir(fullPath))
	return nil
}

// cleanEmptyDirs removes empty parent directories up to basePath
func (b *LocalBackend) cleanEmptyDirs(dir string) {
	for dir != b.basePath && strings.HasPrefix(dir, b.basePath) {
		entries, err := os.ReadDir(dir)
		if err != nil || len(entries) > 0 {
			break
		}
		os.Remove(dir)
		dir = filepath.Dir(dir)
	}
}

// Exists checks if a file exists
func (b *LocalBackend) Exists(ctx context.Context, key string) (bool, error) {
	fullPath := b.fullPath(key)
	_, err := os.Stat(fullPath)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to stat file %s: %w", fullPath, err)
	}
	return true, nil
}

// GetInfo retrieves metadata for a file
func (b *LocalBackend) GetInfo(ctx context.Context, key string) (*ObjectInfo, error) {
	fullPath := b.fullPath(key)

	stat, err := os.Stat(fullPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, apperrors.ErrObjectNotFound.WithMessagef("Object not found: %s", key)
		}
		return nil, fmt.Errorf("failed to stat file %s: %w", fullPath, err)
	}
	if stat.IsDir() {
		return nil, apperrors.ErrObjectNotFound.WithMessagef("Object not found: %s", key)
	}

	return b.objectInfo(key, stat), nil
}

func (b *LocalBackend) objectInfo(key string, stat os.FileInfo) *ObjectInfo {
	contentType := mime.TypeByExtension(filepath.Ext(key))
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	// ETag from name, size and modification time
	data := fmt.Sprintf("%s-%d-%d", stat.Name(), stat.Size(), stat.ModTime().UnixNano())
	hash := md5.Sum([]byte(data))

	return &ObjectInfo{
		Key:          key,
		Size:         stat.Size(),
		ContentType:  contentType,
		ETag:         fmt.Sprintf("\"%s\"", hex.EncodeToString(hash[:])),
		LastModified: stat.ModTime(),
	}
}

// List lists files whose key starts with prefix. In-progress uploads are skipped.
func (b *LocalBackend) List(ctx context.Context, prefix string) ([]ObjectInfo, error) {
	objects := []ObjectInfo{}
	prefix = strings.TrimPrefix(prefix, "/")

	err := filepath.Walk(b.basePath, func(path string, info os.FileInfo, err error) error {
		if err != nil || info.IsDir() || strings.HasSuffix(path, ".part") {
			return nil
		}

		relPath, err := filepath.Rel(b.basePath, path)
		if err != nil {
			return nil
		}
		key := filepath.ToSlash(relPath)
		if prefix != "" && !strings.HasPrefix(key, prefix) {
			return nil
		}

		objects = append(objects, *b.objectInfo(key, info))
		return nil
	})
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to list files in %s: %w", b.basePath, err)
	}

	sort.Slice(objects, func(i, j int) bool { return objects[i].Key < objects[j].Key })
	return objects, nil
}

// Ping checks if the storage directory is accessible
func (b *LocalBackend) Ping(ctx context.Context) error {
	if _, err := os.Stat(b.basePath); err != nil {
		return apperrors.ErrStorageUnavailable.WithMessage("Backup directory not accessible").WithCause(err)
	}
	return nil
}

// Type returns the storage backend type
func (b *LocalBackend) Type() string {
	return TypeLocal
}

// Location returns the base path
func (b *LocalBackend) Location() string {
	return b.basePath
}
