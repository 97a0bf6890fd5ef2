// Package output renders command results as tables, JSON or YAML.
package output

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"golang.org/x/term"
	"gopkg.in/yaml.v3"
)

// Format selects how results are rendered
type Format string

// Output formats
const (
	FormatAuto  Format = "auto"
	FormatTable Format = "table"
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
)

// Formats lists every accepted format, for flag help and completion
var Formats = []string{string(FormatAuto), string(FormatTable), string(FormatJSON), string(FormatYAML)}

// isTerminal is swapped in tests
var isTerminal = func() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// ParseFormat validates a format name. Empty means auto.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return FormatAuto, nil
	case FormatAuto, FormatTable, FormatJSON, FormatYAML:
		return f, nil
	default:
		return "", fmt.Errorf("unknown output format %q (expected one of %s)", s, strings.Join(Formats, ", "))
	}
}

// Resolve turns auto into table on a terminal and JSON otherwise
func Resolve(f Format) Format {
	if f != FormatAuto {
		return f
	}
	if isTerminal() {
		return FormatTable
	}
	return FormatJSON
}

// PrintFormatted prints data in the given format, calling table to render
// the table form
func PrintFormatted(format string, data interface{}, table func() error) error {
	f, err := ParseFormat(format)
	if err != nil {
		return err
	}

	switch Resolve(f) {
	case FormatJSON:
		return PrintJSON(data)
	case FormatYAML:
		return PrintYAML(data)
	default:
		return table()
	}
}

// PrintJSON writes data as indented JSON to stdout
func PrintJSON(data interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

// PrintYAML writes data as YAML to stdout. Data goes through JSON first so
// field names follow json tags and custom MarshalJSON methods.
func PrintYAML(data interface{}) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return err
	}

	var generic interface{}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&generic); err != nil {
		return err
	}

	enc := yaml.NewEncoder(os.Stdout)
	enc.SetIndent(2)
	if err := enc.Encode(yamlValue(generic)); err != nil {
		return err
	}
	return enc.Close()
}

// yamlValue converts json.Number leaves to int64 or float64 so YAML renders
// them as numbers rather than strings
func yamlValue(v interface{}) interface{} {
	switch t := v.(type) {
	case map[string]interface{}:
		for k, inner := range t {
			t[k] = yamlValue(inner)
		}
		return t
	case []interface{}:
		for i, inner := range t {
			t[i] = yamlValue(inner)
		}
		return t
	case json.Number:
		if n, err := t.Int64(); err == nil {
			return n
		}
		if f, err := t.Float64(); err == nil {
			return f
		}
		return t.String()
	default:
		return v
	}
}

// PrintTable writes tabular data to stdout
func PrintTable(headers []string, rows [][]string) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)

	fmt.Fprintln(w, strings.Join(headers, "\t"))
	for _, row := range rows {
		fmt.Fprintln(w, strings.Join(row, "\t"))
	}

	w.Flush()
}

// PrintMessage writes a plain message to stdout
func PrintMessage(msg string) {
	fmt.Println(msg)
}

// PrintError writes an error message to stderr
func PrintError(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
}
