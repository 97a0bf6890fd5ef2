// Package backup snapshots the staffd store into xz-compressed objects on a
// storage backend and restores them.
package backup

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	apperrors "github.com/bitswalk/staffdb/src/common/errors"
	"github.com/bitswalk/staffdb/src/common/logs"
	"github.com/bitswalk/staffdb/src/staffd/db"
	"github.com/bitswalk/staffdb/src/staffd/metrics"
	"github.com/bitswalk/staffdb/src/staffd/storage"
	"github.com/google/uuid"
	"github.com/ulikunitz/xz"
)

var log = logs.NewDefault()

// SetLogger sets the logger for the backup package
func SetLogger(l *logs.Logger) {
	if l != nil {
		log = l
	}
}

const (
	// DefaultPrefix is the key prefix backups are stored under
	DefaultPrefix = "backups/"

	keyTimeLayout = "20060102T150405Z"
	keySuffix     = ".db.xz"
	contentType   = "application/x-xz"
)

// Backup describes one stored snapshot
type Backup struct {
	Key       string    `json:"key" yaml:"key"`
	ID        string    `json:"id" yaml:"id"`
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
	Size      int64     `json:"size" yaml:"size"`
}

// Manager creates, lists, restores and prunes backups of a store
type Manager struct {
	store   *db.Store
	backend storage.Backend
	prefix  string
	now     func() time.Time
}

// NewManager creates a Manager. An empty prefix uses DefaultPrefix.
func NewManager(store *db.Store, backend storage.Backend, prefix string) *Manager {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	if !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}
	return &Manager{
		store:   store,
		backend: backend,
		prefix:  prefix,
		now:     time.Now,
	}
}

// Create snapshots the store, compresses it and uploads it
func (m *Manager) Create(ctx context.Context) (*Backup, error) {
	b, err := m.create(ctx)
	metrics.RecordBackup("create", err)
	if err != nil {
		return nil, err
	}
	metrics.BackupBytes.Set(float64(b.Size))
	log.Info("Backup created", "key", b.Key, "size", b.Size, "backend", m.backend.Type())
	return b, nil
}

func (m *Manager) create(ctx context.Context) (*Backup, error) {
	tmpDir, err := os.MkdirTemp("", "staffd-backup-")
	if err != nil {
		return nil, apperrors.ErrBackupFailed.WithCause(err)
	}
	defer os.RemoveAll(tmpDir)

	snapshot := filepath.Join(tmpDir, "snapshot.db")
	if err := m.store.Database().SnapshotTo(snapshot); err != nil {
		return nil, apperrors.ErrBackupFailed.WithMessage("Failed to snapshot database").WithCause(err)
	}

	compressed, err := compressFile(snapshot)
	if err != nil {
		return nil, apperrors.ErrBackupFailed.WithMessage("Failed to compress snapshot").WithCause(err)
	}

	createdAt := m.now().UTC()
	id := uuid.New().String()
	key := m.prefix + createdAt.Format(keyTimeLayout) + "-" + id + keySuffix

	size := int64(compressed.Len())
	if err := m.backend.Upload(ctx, key, compressed, size, contentType); err != nil {
		return nil, apperrors.ErrBackupFailed.WithMessage("Failed to upload snapshot").WithCause(err)
	}

	return &Backup{Key: key, ID: id, CreatedAt: createdAt, Size: size}, nil
}

// List returns stored backups, newest first
func (m *Manager) List(ctx context.Context) ([]Backup, error) {
	objects, err := m.backend.List(ctx, m.prefix)
	if err != nil {
		return nil, fmt.Errorf("failed to list backups: %w", err)
	}

	backups := []Backup{}
	for _, obj := range objects {
		b, ok := parseKey(m.prefix, obj.Key)
		if !ok {
			continue
		}
		b.Size = obj.Size
		backups = append(backups, b)
	}

	sort.Slice(backups, func(i, j int) bool { return backups[i].Key > backups[j].Key })
	return backups, nil
}

// Restore replaces the store contents with the backup stored under key.
// An empty key restores the newest backup.
func (m *Manager) Restore(ctx context.Context, key string) (*Backup, error) {
	b, err := m.restore(ctx, key)
	metrics.RecordBackup("restore", err)
	if err != nil {
		return nil, err
	}
	log.Info("Backup restored", "key", b.Key)
	return b, nil
}

func (m *Manager) restore(ctx context.Context, key string) (*Backup, error) {
	if key == "" {
		backups, err := m.List(ctx)
		if err != nil {
			return nil, apperrors.ErrRestoreFailed.WithCause(err)
		}
		if len(backups) == 0 {
			return nil, apperrors.ErrObjectNotFound.WithMessage("No backups found")
		}
		key = backups[0].Key
	}

	b, ok := parseKey(m.prefix, key)
	if !ok {
		return nil, apperrors.ErrRestoreFailed.WithMessagef("Not a backup key: %s", key)
	}

	reader, info, err := m.backend.Download(ctx, key)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrObjectNotFound) {
			return nil, err
		}
		return nil, apperrors.ErrRestoreFailed.WithMessage("Failed to download backup").WithCause(err)
	}
	defer reader.Close()
	b.Size = info.Size

	tmpDir, err := os.MkdirTemp("", "staffd-restore-")
	if err != nil {
		return nil, apperrors.ErrRestoreFailed.WithCause(err)
	}
	defer os.RemoveAll(tmpDir)

	snapshot := filepath.Join(tmpDir, "snapshot.db")
	if err := decompressTo(reader, snapshot); err != nil {
		return nil, apperrors.ErrRestoreFailed.WithMessage("Failed to decompress backup").WithCause(err)
	}

	if err := m.store.Restore(snapshot); err != nil {
		return nil, apperrors.ErrRestoreFailed.WithMessage("Failed to load backup").WithCause(err)
	}

	return &b, nil
}

// Prune deletes all but the newest keep backups and returns the deleted keys
func (m *Manager) Prune(ctx context.Context, keep int) ([]string, error) {
	if keep < 0 {
		return nil, fmt.Errorf("keep must not be negative, got %d", keep)
	}

	backups, err := m.List(ctx)
	if err != nil {
		return nil, err
	}

	deleted := []string{}
	for i := keep; i < len(backups); i++ {
		if err := m.backend.Delete(ctx, backups[i].Key); err != nil {
			return deleted, fmt.Errorf("failed to delete backup %s: %w", backups[i].Key, err)
		}
		deleted = append(deleted, backups[i].Key)
		log.Debug("Backup pruned", "key", backups[i].Key)
	}

	return deleted, nil
}

// parseKey extracts the timestamp and id from prefix<timestamp>-<uuid>.db.xz
func parseKey(prefix, key string) (Backup, bool) {
	if !strings.HasPrefix(key, prefix) {
		return Backup{}, false
	}
	name := key[len(prefix):]
	if !strings.HasSuffix(name, keySuffix) || strings.Contains(name, "/") {
		return Backup{}, false
	}
	name = strings.TrimSuffix(name, keySuffix)

	stamp, id, found := strings.Cut(name, "-")
	if !found {
		return Backup{}, false
	}
	createdAt, err := time.Parse(keyTimeLayout, stamp)
	if err != nil {
		return Backup{}, false
	}
	if _, err := uuid.Parse(id); err != nil {
		return Backup{}, false
	}

	return Backup{Key: key, ID: id, CreatedAt: createdAt}, true
}

func compressFile(path string) (*bytes.Buffer, error) {
	src, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer src.Close()

	var buf bytes.Buffer
	w, err := xz.NewWriter(&buf)
	if err != nil {
		return nil, err
	}
	if _, err := io.Copy(w, src); err != nil {
		w.Close()
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return &buf, nil
}

func decompressTo(r io.Reader, path string) error {
	xr, err := xz.NewReader(r)
	if err != nil {
		return err
	}

	dst, err := os.Create(path)
	if err != nil {
		return err
	}
	if _, err := io.Copy(dst, xr); err != nil {
		dst.Close()
		return err
	}
	return dst.Close()
}
