package output

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"testing"
)

// captureStdout captures stdout output during fn execution
func captureStdout(t *testing.T, fn func()) string {
	t.Helper()
	old := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("failed to create pipe: %v", err)
	}
	os.Stdout = w

	fn()

	w.Close()
	os.Stdout = old

	var buf bytes.Buffer
	_, _ = buf.ReadFrom(r)
	return buf.String()
}

func withTerminal(t *testing.T, tty bool) {
	t.Helper()
	old := isTerminal
	isTerminal = func() bool { return tty }
	t.Cleanup(func() { isTerminal = old })
}

// =============================================================================
// Format Tests
// =============================================================================

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"", FormatAuto, false},
		{"auto", FormatAuto, false},
		{"table", FormatTable, false},
		{"JSON", FormatJSON, false},
		{" yaml ", FormatYAML, false},
		{"xml", "", true},
	}

	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if (err != nil) != tt.wantErr {
			t.Fatalf("ParseFormat(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("ParseFormat(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestResolve_Auto(t *testing.T) {
	withTerminal(t, true)
	if got := Resolve(FormatAuto); got != FormatTable {
		t.Errorf("expected table on a terminal, got %q", got)
	}

	withTerminal(t, false)
	if got := Resolve(FormatAuto); got != FormatJSON {
		t.Errorf("expected json when piped, got %q", got)
	}
	if got := Resolve(FormatYAML); got != FormatYAML {
		t.Errorf("explicit formats must be kept, got %q", got)
	}
}

func TestPrintFormatted(t *testing.T) {
	withTerminal(t, false)
	data := map[string]int{"count": 2}

	tableCalled := false
	out := captureStdout(t, func() {
		if err := PrintFormatted("auto", data, func() error {
			tableCalled = true
			return nil
		}); err != nil {
			t.Fatalf("PrintFormatted error: %v", err)
		}
	})
	if tableCalled {
		t.Fatal("table renderer must not run for piped auto output")
	}
	if !strings.Contains(out, `"count": 2`) {
		t.Errorf("expected JSON output, got %q", out)
	}

	captureStdout(t, func() {
		_ = PrintFormatted("table", data, func() error {
			tableCalled = true
			return nil
		})
	})
	if !tableCalled {
		t.Fatal("expected table renderer to run")
	}

	if err := PrintFormatted("xml", data, func() error { return nil }); err == nil {
		t.Fatal("expected error for unknown format")
	}
}

// =============================================================================
// PrintJSON Tests
// =============================================================================

func TestPrintJSON_Map(t *testing.T) {
	data := map[string]string{"key": "value"}
	out := captureStdout(t, func() {
		if err := PrintJSON(data); err != nil {
			t.Fatalf("PrintJSON error: %v", err)
		}
	})
	var result map[string]string
	if err := json.Unmarshal([]byte(out), &result); err != nil {
		t.Fatalf("invalid JSON output: %v", err)
	}
	if result["key"] != "value" {
		t.Errorf("expected key=value, got %v", result)
	}
}

func TestPrintJSON_Indented(t *testing.T) {
	data := map[string]string{"key": "value"}
	out := captureStdout(t, func() {
		_ = PrintJSON(data)
	})
	if !strings.Contains(out, "  ") {
		t.Error("expected indented JSON output")
	}
}

// =============================================================================
// PrintYAML Tests
// =============================================================================

func TestPrintYAML_RespectsJsonTags(t *testing.T) {
	type item struct {
		JobTitle     string `json:"job_title"`
		DepartmentID int64  `json:"department_id"`
	}
	out := captureStdout(t, func() {
		if err := PrintYAML(item{JobTitle: "Engineer", DepartmentID: 3}); err != nil {
			t.Fatalf("PrintYAML error: %v", err)
		}
	})
	if !strings.Contains(out, "job_title: Engineer") {
		t.Errorf("expected job_title (json tag), got %q", out)
	}
	if !strings.Contains(out, "department_id: 3\n") {
		t.Errorf("expected department_id as a plain integer, got %q", out)
	}
}

func TestPrintYAML_List(t *testing.T) {
	data := []map[string]string{{"name": "Engineering"}, {"name": "Sales"}}
	out := captureStdout(t, func() {
		_ = PrintYAML(data)
	})
	if !strings.Contains(out, "- name: Engineering") || !strings.Contains(out, "- name: Sales") {
		t.Errorf("expected a YAML sequence, got %q", out)
	}
}

// =============================================================================
// PrintTable Tests
// =============================================================================

func TestPrintTable_BasicOutput(t *testing.T) {
	out := captureStdout(t, func() {
		PrintTable(
			[]string{"ID", "NAME"},
			[][]string{
				{"1", "Engineering"},
				{"2", "Sales"},
			},
		)
	})
	if !strings.Contains(out, "ID") || !strings.Contains(out, "NAME") {
		t.Errorf("expected headers in output, got %q", out)
	}
	if !strings.Contains(out, "Engineering") || !strings.Contains(out, "Sales") {
		t.Errorf("expected row data in output, got %q", out)
	}
}

func TestPrintTable_EmptyRows(t *testing.T) {
	out := captureStdout(t, func() {
		PrintTable([]string{"ID", "NAME"}, [][]string{})
	})
	if !strings.Contains(out, "ID") {
		t.Errorf("expected headers even with empty rows, got %q", out)
	}
}

func TestPrintTable_Alignment(t *testing.T) {
	out := captureStdout(t, func() {
		PrintTable(
			[]string{"ID", "NAME"},
			[][]string{
				{"1", "short"},
				{"100", "a much longer name"},
			},
		)
	})
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines (header + 2 rows), got %d", len(lines))
	}
	if strings.Index(lines[1], "short") != strings.Index(lines[2], "a much") {
		t.Errorf("expected aligned columns, got %q", out)
	}
}

// =============================================================================
// PrintMessage / PrintError Tests
// =============================================================================

func TestPrintMessage(t *testing.T) {
	out := captureStdout(t, func() {
		PrintMessage("hello world")
	})
	if strings.TrimSpace(out) != "hello world" {
		t.Errorf("expected 'hello world', got %q", out)
	}
}

func TestPrintError(t *testing.T) {
	old := os.Stderr
	r, w, _ := os.Pipe()
	os.Stderr = w

	PrintError(fmt.Errorf("test error"))

	w.Close()
	os.Stderr = old

	var buf bytes.Buffer
	_, _ = buf.ReadFrom(r)
	if !strings.Contains(buf.String(), "test error") {
		t.Errorf("expected error message on stderr, got %q", buf.String())
	}
}
