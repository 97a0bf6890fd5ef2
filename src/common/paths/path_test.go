package paths

import (
	"os"
	"os/user"
	"path/filepath"
	"testing"
)

func TestExpand(t *testing.T) {
	usr, err := user.Current()
	if err != nil {
		t.Skipf("no current user: %v", err)
	}
	t.Setenv("STAFFDB_TEST_DIR", "/srv/staffdb")

	tests := []struct {
		in   string
		want string
	}{
		{"~", usr.HomeDir},
		{"~/backups", filepath.Join(usr.HomeDir, "backups")},
		{"$STAFFDB_TEST_DIR/staff.db", "/srv/staffdb/staff.db"},
		{"/var/lib/staffd/staff.db", "/var/lib/staffd/staff.db"},
		{"~other/staff.db", "~other/staff.db"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := Expand(tt.in); got != tt.want {
			t.Errorf("Expand(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestExpandHome_LeavesVariables(t *testing.T) {
	t.Setenv("STAFFDB_TEST_DIR", "/srv/staffdb")
	if got := ExpandHome("$STAFFDB_TEST_DIR"); got != "$STAFFDB_TEST_DIR" {
		t.Errorf("ExpandHome expanded a variable: %q", got)
	}
}

func TestEnsureDirAndIsFile(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "nested", "deeper", "staff.db")

	if IsFile(file) {
		t.Fatal("file should not exist yet")
	}
	if err := EnsureDir(file); err != nil {
		t.Fatalf("EnsureDir: %v", err)
	}
	if IsFile(filepath.Dir(file)) {
		t.Error("a directory is not a file")
	}
	if err := os.WriteFile(file, []byte("x"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if !IsFile(file) {
		t.Error("expected IsFile to be true after writing")
	}
}
