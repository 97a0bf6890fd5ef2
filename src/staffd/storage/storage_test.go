package storage

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	apperrors "github.com/bitswalk/staffdb/src/common/errors"
)

// =============================================================================
// Local Backend Tests
// =============================================================================

func newLocal(t *testing.T) *LocalBackend {
	t.Helper()
	backend, err := NewLocal(LocalConfig{BasePath: filepath.Join(t.TempDir(), "backups")})
	if err != nil {
		t.Fatalf("failed to create local backend: %v", err)
	}
	return backend
}

func TestLocal_UploadDownload(t *testing.T) {
	ctx := context.Background()
	backend := newLocal(t)

	data := []byte("snapshot bytes")
	if err := backend.Upload(ctx, "backups/one.db.xz", bytes.NewReader(data), int64(len(data)), "application/x-xz"); err != nil {
		t.Fatalf("failed to upload: %v", err)
	}

	reader, info, err := backend.Download(ctx, "backups/one.db.xz")
	if err != nil {
		t.Fatalf("failed to download: %v", err)
	}
	defer reader.Close()

	got, _ := io.ReadAll(reader)
	if !bytes.Equal(got, data) {
		t.Fatalf("expected %q, got %q", data, got)
	}
	if info.Size != int64(len(data)) {
		t.Fatalf("expected size %d, got %d", len(data), info.Size)
	}
	if info.ETag == "" {
		t.Fatal("expected an ETag")
	}
}

func TestLocal_SizeMismatch(t *testing.T) {
	backend := newLocal(t)

	err := backend.Upload(context.Background(), "short", strings.NewReader("abc"), 10, "")
	if err == nil {
		t.Fatal("expected size mismatch error")
	}
	if ok, _ := backend.Exists(context.Background(), "short"); ok {
		t.Fatal("expected failed upload to leave nothing behind")
	}
}

func TestLocal_MissingObject(t *testing.T) {
	backend := newLocal(t)

	if _, _, err := backend.Download(context.Background(), "nope"); !apperrors.Is(err, apperrors.ErrObjectNotFound) {
		t.Fatalf("expected ErrObjectNotFound, got %v", err)
	}
	if ok, err := backend.Exists(context.Background(), "nope"); ok || err != nil {
		t.Fatalf("expected (false, nil), got (%v, %v)", ok, err)
	}
	if err := backend.Delete(context.Background(), "nope"); err != nil {
		t.Fatalf("deleting a missing key should succeed, got %v", err)
	}
}

func TestLocal_KeysStayInsideBase(t *testing.T) {
	backend := newLocal(t)

	if err := backend.Upload(context.Background(), "../../escape", strings.NewReader("x"), 1, ""); err != nil {
		t.Fatalf("failed to upload: %v", err)
	}
	if _, err := os.Stat(filepath.Join(backend.Location(), "escape")); err != nil {
		t.Fatalf("expected traversal key to land inside base path: %v", err)
	}
}

func TestLocal_ListAndDelete(t *testing.T) {
	ctx := context.Background()
	backend := newLocal(t)

	for _, key := range []string{"backups/b", "backups/a", "other/c"} {
		if err := backend.Upload(ctx, key, strings.NewReader(key), 0, ""); err != nil {
			t.Fatalf("failed to upload %s: %v", key, err)
		}
	}

	objects, err := backend.List(ctx, "backups/")
	if err != nil {
		t.Fatalf("failed to list: %v", err)
	}
	if len(objects) != 2 || objects[0].Key != "backups/a" || objects[1].Key != "backups/b" {
		t.Fatalf("unexpected listing: %+v", objects)
	}

	if err := backend.Delete(ctx, "other/c"); err != nil {
		t.Fatalf("failed to delete: %v", err)
	}
	if _, err := os.Stat(filepath.Join(backend.Location(), "other")); !os.IsNotExist(err) {
		t.Fatal("expected empty parent directory to be removed")
	}
}

func TestLocal_Ping(t *testing.T) {
	backend := newLocal(t)
	if err := backend.Ping(context.Background()); err != nil {
		t.Fatalf("ping failed: %v", err)
	}

	os.RemoveAll(backend.Location())
	if err := backend.Ping(context.Background()); !apperrors.Is(err, apperrors.ErrStorageUnavailable) {
		t.Fatalf("expected ErrStorageUnavailable, got %v", err)
	}
}

// =============================================================================
// Factory Tests
// =============================================================================

func TestNew(t *testing.T) {
	backend, err := New(Config{Type: TypeLocal, Local: LocalConfig{BasePath: t.TempDir()}})
	if err != nil {
		t.Fatalf("failed to create backend: %v", err)
	}
	if backend.Type() != TypeLocal {
		t.Fatalf("expected local backend, got %s", backend.Type())
	}

	s3Backend, err := New(Config{Type: TypeS3, S3: S3Config{
		Endpoint:     "http://localhost:9000",
		Bucket:       "staffdb",
		UsePathStyle: true,
	}})
	if err != nil {
		t.Fatalf("failed to create s3 backend: %v", err)
	}
	if s3Backend.Type() != TypeS3 || s3Backend.Location() != "http://localhost:9000/staffdb" {
		t.Fatalf("unexpected s3 backend: %s %s", s3Backend.Type(), s3Backend.Location())
	}

	if _, err := New(Config{Type: TypeS3}); err == nil {
		t.Fatal("expected error for s3 without bucket")
	}
}
